package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MV-Clouds/quickform-payments/internal/application/formpayment/gateway"
	"github.com/MV-Clouds/quickform-payments/internal/domain/formpayment"
	vo "github.com/MV-Clouds/quickform-payments/internal/domain/formpayment/valueobjects"
	"github.com/MV-Clouds/quickform-payments/internal/shared/services/sanitize"
)

func newProcessUseCase(registry *mockPlanRegistry, gw *mockProviderGateway) *ProcessFormPaymentsUseCase {
	return NewProcessFormPaymentsUseCase(registry, gw, sanitize.NewService(), &mockLogger{})
}

func subscriptionField(t *testing.T, fieldID, merchantID string) *formpayment.PaymentField {
	t.Helper()

	field, err := formpayment.NewPaymentField(fieldID, vo.PaymentTypeSubscription, merchantID)
	require.NoError(t, err)

	cfg := formpayment.DefaultSubscriptionPlanConfig()
	cfg.Name = "Gold Plan"
	cfg.Amount = vo.NewMoney(1999, "USD")
	field.SetSubscription(cfg)

	return field
}

func existingEntry(fieldID, merchantID string) *formpayment.RegistryEntry {
	return &formpayment.RegistryEntry{
		SID:             "pl_existing00001",
		FieldID:         fieldID,
		MerchantID:      merchantID,
		RemotePlanID:    "P-EXISTING",
		RemoteProductID: "PROD-EXISTING",
		PlanStatus:      "ACTIVE",
	}
}

func TestProcessFormPayments_RequiresFormID(t *testing.T) {
	uc := newProcessUseCase(&mockPlanRegistry{}, &mockProviderGateway{})

	_, err := uc.Execute(context.Background(), ProcessFormPaymentsCommand{})

	assert.Error(t, err)
}

func TestProcessFormPayments_CreatesPlanWhenAbsent(t *testing.T) {
	registry := &mockPlanRegistry{}
	gw := &mockProviderGateway{}
	uc := newProcessUseCase(registry, gw)

	field := subscriptionField(t, "field_1", "merchant_a")
	result, err := uc.Execute(context.Background(), ProcessFormPaymentsCommand{
		FormID: "form_1",
		Fields: []*formpayment.PaymentField{field},
	})

	require.NoError(t, err)
	assert.True(t, result.Success)
	require.Len(t, result.ProcessedFields, 1)

	processed := result.ProcessedFields[0]
	assert.Equal(t, formpayment.ActionCreated, processed.Action)
	assert.Equal(t, "P-NEW", processed.RemotePlanID)
	assert.Equal(t, "PROD-NEW", processed.RemoteProductID)
	assert.Equal(t, "ACTIVE", processed.PlanStatus)

	require.Len(t, gw.CreateCalls, 1)
	assert.Empty(t, gw.UpdateCalls)

	require.Len(t, registry.SetCalls, 1)
	entry := registry.SetCalls[0]
	assert.Equal(t, "field_1", entry.FieldID)
	assert.Equal(t, "merchant_a", entry.MerchantID)
	assert.Equal(t, "P-NEW", entry.RemotePlanID)
	assert.False(t, entry.SyncedAt.IsZero())

	var synced gateway.PlanData
	require.NoError(t, json.Unmarshal(entry.SyncedConfig, &synced))
	assert.Equal(t, "Gold Plan", synced.Name)
	assert.Equal(t, "19.99", synced.Price)

	require.NotNil(t, field.Result())
	assert.Equal(t, formpayment.ActionCreated, field.Result().Action)
}

func TestProcessFormPayments_UpdatesExistingPlan(t *testing.T) {
	registry := &mockPlanRegistry{
		GetFunc: func(ctx context.Context, fieldID, merchantID string) (*formpayment.RegistryEntry, error) {
			return existingEntry(fieldID, merchantID), nil
		},
	}
	gw := &mockProviderGateway{}
	uc := newProcessUseCase(registry, gw)

	result, err := uc.Execute(context.Background(), ProcessFormPaymentsCommand{
		FormID: "form_1",
		Fields: []*formpayment.PaymentField{subscriptionField(t, "field_1", "merchant_a")},
	})

	require.NoError(t, err)
	assert.True(t, result.Success)
	require.Len(t, result.ProcessedFields, 1)
	assert.Equal(t, formpayment.ActionUpdated, result.ProcessedFields[0].Action)
	assert.Equal(t, "P-EXISTING", result.ProcessedFields[0].RemotePlanID)

	require.Len(t, gw.UpdateCalls, 1)
	assert.Equal(t, "P-EXISTING", gw.UpdateCalls[0].PlanID)
	assert.Empty(t, gw.CreateCalls)

	require.Len(t, registry.SetCalls, 1)
	assert.Equal(t, "pl_existing00001", registry.SetCalls[0].SID, "refresh must keep the entry identity")
	assert.NotEmpty(t, registry.SetCalls[0].SyncedConfig)
}

func TestProcessFormPayments_FallsBackToCreateOnImmutableViolation(t *testing.T) {
	registry := &mockPlanRegistry{
		GetFunc: func(ctx context.Context, fieldID, merchantID string) (*formpayment.RegistryEntry, error) {
			return existingEntry(fieldID, merchantID), nil
		},
	}
	gw := &mockProviderGateway{
		UpdateSubscriptionPlanFunc: func(ctx context.Context, req gateway.UpdatePlanRequest) (*gateway.UpdatePlanResponse, error) {
			return nil, gateway.NewGatewayError(gateway.KindImmutableViolation, "PLAN_FIELD_IMMUTABLE", "price is locked", 422)
		},
	}
	uc := newProcessUseCase(registry, gw)

	result, err := uc.Execute(context.Background(), ProcessFormPaymentsCommand{
		FormID: "form_1",
		Fields: []*formpayment.PaymentField{subscriptionField(t, "field_1", "merchant_a")},
	})

	require.NoError(t, err)
	assert.True(t, result.Success)
	require.Len(t, result.ProcessedFields, 1)
	assert.Equal(t, formpayment.ActionCreated, result.ProcessedFields[0].Action)
	assert.Equal(t, "P-NEW", result.ProcessedFields[0].RemotePlanID)

	require.Len(t, gw.UpdateCalls, 1)
	require.Len(t, gw.CreateCalls, 1)
}

func TestProcessFormPayments_FallsBackToCreateOnNotFound(t *testing.T) {
	registry := &mockPlanRegistry{
		GetFunc: func(ctx context.Context, fieldID, merchantID string) (*formpayment.RegistryEntry, error) {
			return existingEntry(fieldID, merchantID), nil
		},
	}
	gw := &mockProviderGateway{
		UpdateSubscriptionPlanFunc: func(ctx context.Context, req gateway.UpdatePlanRequest) (*gateway.UpdatePlanResponse, error) {
			return nil, gateway.NewGatewayError(gateway.KindNotFound, "RESOURCE_NOT_FOUND", "plan gone", 404)
		},
	}
	uc := newProcessUseCase(registry, gw)

	result, err := uc.Execute(context.Background(), ProcessFormPaymentsCommand{
		FormID: "form_1",
		Fields: []*formpayment.PaymentField{subscriptionField(t, "field_1", "merchant_a")},
	})

	require.NoError(t, err)
	require.Len(t, result.ProcessedFields, 1)
	assert.Equal(t, formpayment.ActionCreated, result.ProcessedFields[0].Action)
	require.Len(t, gw.CreateCalls, 1)
}

func TestProcessFormPayments_TransientUpdateErrorNeverCreates(t *testing.T) {
	registry := &mockPlanRegistry{
		GetFunc: func(ctx context.Context, fieldID, merchantID string) (*formpayment.RegistryEntry, error) {
			return existingEntry(fieldID, merchantID), nil
		},
	}
	gw := &mockProviderGateway{
		UpdateSubscriptionPlanFunc: func(ctx context.Context, req gateway.UpdatePlanRequest) (*gateway.UpdatePlanResponse, error) {
			return nil, gateway.NewGatewayError(gateway.KindTransient, "", "provider timeout", 504)
		},
	}
	uc := newProcessUseCase(registry, gw)

	result, err := uc.Execute(context.Background(), ProcessFormPaymentsCommand{
		FormID: "form_1",
		Fields: []*formpayment.PaymentField{subscriptionField(t, "field_1", "merchant_a")},
	})

	require.NoError(t, err)
	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "field_1", result.Errors[0].FieldID)
	assert.Empty(t, gw.CreateCalls, "a transient failure must never mint a duplicate plan")
	assert.Empty(t, registry.SetCalls)
}

func TestProcessFormPayments_MerchantChangeForcesCreate(t *testing.T) {
	registry := &mockPlanRegistry{
		GetFunc: func(ctx context.Context, fieldID, merchantID string) (*formpayment.RegistryEntry, error) {
			return existingEntry(fieldID, merchantID), nil
		},
	}
	gw := &mockProviderGateway{}
	uc := newProcessUseCase(registry, gw)

	field := subscriptionField(t, "field_1", "merchant_b")
	field.SetPreviousMerchantID("merchant_a")

	result, err := uc.Execute(context.Background(), ProcessFormPaymentsCommand{
		FormID: "form_1",
		Fields: []*formpayment.PaymentField{field},
	})

	require.NoError(t, err)
	require.Len(t, result.ProcessedFields, 1)
	assert.Equal(t, formpayment.ActionCreated, result.ProcessedFields[0].Action)
	assert.Empty(t, gw.UpdateCalls, "a migrated merchant's plan must not be updated in place")
	require.Len(t, gw.CreateCalls, 1)
	assert.Equal(t, "merchant_b", gw.CreateCalls[0].MerchantID)
}

func TestProcessFormPayments_RegistryErrorSurfaces(t *testing.T) {
	registry := &mockPlanRegistry{
		GetFunc: func(ctx context.Context, fieldID, merchantID string) (*formpayment.RegistryEntry, error) {
			return nil, errors.New("connection refused")
		},
	}
	gw := &mockProviderGateway{}
	uc := newProcessUseCase(registry, gw)

	result, err := uc.Execute(context.Background(), ProcessFormPaymentsCommand{
		FormID: "form_1",
		Fields: []*formpayment.PaymentField{subscriptionField(t, "field_1", "merchant_a")},
	})

	require.NoError(t, err)
	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Error, "registry lookup failed")
	assert.Empty(t, gw.CreateCalls)
}

func TestProcessFormPayments_FieldFailureDoesNotBlockOthers(t *testing.T) {
	registry := &mockPlanRegistry{}
	gw := &mockProviderGateway{}
	uc := newProcessUseCase(registry, gw)

	// No merchant connected; fails the validation gate.
	broken := subscriptionField(t, "field_broken", "")
	healthy := subscriptionField(t, "field_ok", "merchant_a")

	result, err := uc.Execute(context.Background(), ProcessFormPaymentsCommand{
		FormID: "form_1",
		Fields: []*formpayment.PaymentField{broken, healthy},
	})

	require.NoError(t, err)
	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "field_broken", result.Errors[0].FieldID)
	require.Len(t, result.ProcessedFields, 1)
	assert.Equal(t, "field_ok", result.ProcessedFields[0].FieldID)
	assert.Nil(t, broken.Result())
	assert.NotNil(t, healthy.Result())
}

func TestProcessFormPayments_ProviderFailureDoesNotBlockNeighbors(t *testing.T) {
	registry := &mockPlanRegistry{}
	gw := &mockProviderGateway{}
	gw.CreateSubscriptionPlanFunc = func(ctx context.Context, req gateway.CreatePlanRequest) (*gateway.CreatePlanResponse, error) {
		if req.PlanData.Name == "Broken Plan" {
			return nil, gateway.NewGatewayError(gateway.KindTransient, "", "provider unavailable", 503)
		}
		return &gateway.CreatePlanResponse{PlanID: "P-NEW", ProductID: "PROD-NEW", Status: "ACTIVE"}, nil
	}
	uc := newProcessUseCase(registry, gw)

	first := subscriptionField(t, "field_1", "merchant_a")
	second := subscriptionField(t, "field_2", "merchant_a")
	cfg := *second.Subscription()
	cfg.Name = "Broken Plan"
	second.SetSubscription(cfg)
	third := subscriptionField(t, "field_3", "merchant_a")

	result, err := uc.Execute(context.Background(), ProcessFormPaymentsCommand{
		FormID: "form_1",
		Fields: []*formpayment.PaymentField{first, second, third},
	})

	require.NoError(t, err)
	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "field_2", result.Errors[0].FieldID)
	require.Len(t, result.ProcessedFields, 2)
	assert.Equal(t, "field_1", result.ProcessedFields[0].FieldID)
	assert.Equal(t, "field_3", result.ProcessedFields[1].FieldID)
	require.Len(t, registry.SetCalls, 2, "only the surviving fields are registered")
	assert.Nil(t, second.Result())
	assert.NotNil(t, first.Result())
	assert.NotNil(t, third.Result())
}

func TestProcessFormPayments_SkipsNilFields(t *testing.T) {
	uc := newProcessUseCase(&mockPlanRegistry{}, &mockProviderGateway{})

	result, err := uc.Execute(context.Background(), ProcessFormPaymentsCommand{
		FormID: "form_1",
		Fields: []*formpayment.PaymentField{nil, nil},
	})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Empty(t, result.ProcessedFields)
	assert.Empty(t, result.Errors)
}

func TestProcessFormPayments_ResequencesTiersBeforeSend(t *testing.T) {
	registry := &mockPlanRegistry{}
	gw := &mockProviderGateway{}
	uc := newProcessUseCase(registry, gw)

	end := uint(2)
	field := subscriptionField(t, "field_1", "merchant_a")
	cfg := *field.Subscription()
	cfg.TieredPricing = formpayment.TieredPricingConfig{
		Enabled: true,
		Tiers: []formpayment.PriceTier{
			{StartingQuantity: 5, EndingQuantity: &end, Price: vo.NewMoney(1000, "USD")},
			{StartingQuantity: 99, Price: vo.NewMoney(800, "USD")},
		},
	}
	field.SetSubscription(cfg)

	_, err := uc.Execute(context.Background(), ProcessFormPaymentsCommand{
		FormID: "form_1",
		Fields: []*formpayment.PaymentField{field},
	})
	require.NoError(t, err)

	require.Len(t, gw.CreateCalls, 1)
	tiers := gw.CreateCalls[0].PlanData.TieredPricing
	require.Len(t, tiers, 2)
	assert.Equal(t, uint(1), tiers[0].StartingQuantity)
	require.NotNil(t, tiers[0].EndingQuantity)
	assert.Equal(t, uint(2), *tiers[0].EndingQuantity, "an ending above the forced start is kept")
	assert.Equal(t, uint(3), tiers[1].StartingQuantity)
	assert.Nil(t, tiers[1].EndingQuantity, "last tier on the wire must be unbounded")
}

func TestProcessFormPayments_SanitizesPlanText(t *testing.T) {
	registry := &mockPlanRegistry{}
	gw := &mockProviderGateway{}
	uc := newProcessUseCase(registry, gw)

	field := subscriptionField(t, "field_1", "merchant_a")
	cfg := *field.Subscription()
	cfg.Name = "<b>Gold</b> Plan"
	cfg.Description = "<script>alert(1)</script>Best value"
	field.SetSubscription(cfg)

	_, err := uc.Execute(context.Background(), ProcessFormPaymentsCommand{
		FormID: "form_1",
		Fields: []*formpayment.PaymentField{field},
	})
	require.NoError(t, err)

	require.Len(t, gw.CreateCalls, 1)
	assert.Equal(t, "Gold Plan", gw.CreateCalls[0].PlanData.Name)
	assert.NotContains(t, gw.CreateCalls[0].PlanData.Description, "<script>")
}

func TestProcessFormPayments_DonationConfigured(t *testing.T) {
	registry := &mockPlanRegistry{}
	gw := &mockProviderGateway{}
	uc := newProcessUseCase(registry, gw)

	field, err := formpayment.NewPaymentField("field_1", vo.PaymentTypeDonation, "merchant_a")
	require.NoError(t, err)
	field.SetDonation(formpayment.DonationConfig{
		Name:          "Food Drive",
		Currency:      "USD",
		SuggestedAmts: []vo.Money{vo.NewMoney(500, "USD"), vo.NewMoney(1000, "USD")},
		AllowCustom:   true,
	})

	var captured gateway.CreateDonationRequest
	gw.CreateDonationPlanFunc = func(ctx context.Context, req gateway.CreateDonationRequest) (*gateway.CreateDonationResponse, error) {
		captured = req
		return &gateway.CreateDonationResponse{DonationPlanID: "D-1", Status: "ACTIVE"}, nil
	}

	result, err := uc.Execute(context.Background(), ProcessFormPaymentsCommand{
		FormID: "form_1",
		Fields: []*formpayment.PaymentField{field},
	})

	require.NoError(t, err)
	require.Len(t, result.ProcessedFields, 1)
	assert.Equal(t, formpayment.ActionDonationConfigured, result.ProcessedFields[0].Action)
	assert.Equal(t, "D-1", result.ProcessedFields[0].RemotePlanID)
	assert.Equal(t, []string{"5.00", "10.00"}, captured.SuggestedAmounts)
	assert.Empty(t, registry.SetCalls, "donations are not tracked in the plan registry")
}

func TestProcessFormPayments_DonationButtonConfigured(t *testing.T) {
	uc := newProcessUseCase(&mockPlanRegistry{}, &mockProviderGateway{})

	field, err := formpayment.NewPaymentField("field_1", vo.PaymentTypeDonationButton, "merchant_a")
	require.NoError(t, err)
	field.SetDonation(formpayment.DonationConfig{ButtonID: "HB123"})

	result, err := uc.Execute(context.Background(), ProcessFormPaymentsCommand{
		FormID: "form_1",
		Fields: []*formpayment.PaymentField{field},
	})

	require.NoError(t, err)
	require.Len(t, result.ProcessedFields, 1)
	assert.Equal(t, formpayment.ActionDonationButtonConfigured, result.ProcessedFields[0].Action)
}

func TestProcessFormPayments_CheckoutTypesEchoDetails(t *testing.T) {
	registry := &mockPlanRegistry{}
	gw := &mockProviderGateway{}
	uc := newProcessUseCase(registry, gw)

	oneTime, err := formpayment.NewPaymentField("field_ot", vo.PaymentTypeOneTime, "merchant_a")
	require.NoError(t, err)
	oneTime.SetOneTime(formpayment.OneTimeConfig{Amount: vo.NewMoney(2500, "USD"), Label: "Entry fee"})

	products, err := formpayment.NewPaymentField("field_pw", vo.PaymentTypeProductWise, "merchant_a")
	require.NoError(t, err)
	products.SetProducts([]formpayment.Product{
		{SKU: "sku-1", Name: "T-shirt", Price: vo.NewMoney(1500, "USD"), Quantity: 10},
	})

	custom, err := formpayment.NewPaymentField("field_ca", vo.PaymentTypeCustomAmount, "merchant_a")
	require.NoError(t, err)
	custom.SetCustomAmount(formpayment.CustomAmountConfig{
		Currency:  "USD",
		MinAmount: vo.NewMoney(100, "USD"),
		MaxAmount: vo.NewMoney(100000, "USD"),
	})

	result, err := uc.Execute(context.Background(), ProcessFormPaymentsCommand{
		FormID: "form_1",
		Fields: []*formpayment.PaymentField{oneTime, products, custom},
	})

	require.NoError(t, err)
	assert.True(t, result.Success)
	require.Len(t, result.ProcessedFields, 3)

	assert.Equal(t, formpayment.ActionOneTimeConfigured, result.ProcessedFields[0].Action)
	assert.Equal(t, "25.00", result.ProcessedFields[0].Details["amount"])

	assert.Equal(t, formpayment.ActionProductWiseConfigured, result.ProcessedFields[1].Action)
	items, ok := result.ProcessedFields[1].Details["products"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "sku-1", items[0]["sku"])

	assert.Equal(t, formpayment.ActionCustomAmountConfigured, result.ProcessedFields[2].Action)
	assert.Equal(t, "1.00", result.ProcessedFields[2].Details["min_amount"])

	assert.Empty(t, gw.CreateCalls, "checkout-time types never touch the provider")
	assert.Empty(t, registry.SetCalls)
}
