package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MV-Clouds/quickform-payments/internal/application/formpayment/gateway"
	"github.com/MV-Clouds/quickform-payments/internal/domain/formpayment"
	vo "github.com/MV-Clouds/quickform-payments/internal/domain/formpayment/valueobjects"
	"github.com/MV-Clouds/quickform-payments/internal/shared/biztime"
	"github.com/MV-Clouds/quickform-payments/internal/shared/logger"
	"github.com/MV-Clouds/quickform-payments/internal/shared/services/sanitize"
	"github.com/MV-Clouds/quickform-payments/internal/shared/utils"
)

type ProcessFormPaymentsCommand struct {
	FormID        string
	FormVersionID string
	Fields        []*formpayment.PaymentField
}

// ProcessFormPaymentsUseCase synchronizes every payment-capable field of a
// form with the provider at save time. Fields are processed sequentially and
// independently: one field's failure never rolls back or blocks another's
// success.
type ProcessFormPaymentsUseCase struct {
	registry  formpayment.PlanRegistry
	gateway   gateway.ProviderGateway
	sanitizer sanitize.Service
	logger    logger.Interface
}

func NewProcessFormPaymentsUseCase(
	registry formpayment.PlanRegistry,
	providerGateway gateway.ProviderGateway,
	sanitizer sanitize.Service,
	logger logger.Interface,
) *ProcessFormPaymentsUseCase {
	return &ProcessFormPaymentsUseCase{
		registry:  registry,
		gateway:   providerGateway,
		sanitizer: sanitizer,
		logger:    logger,
	}
}

func (uc *ProcessFormPaymentsUseCase) Execute(ctx context.Context, cmd ProcessFormPaymentsCommand) (*formpayment.FormProcessingResult, error) {
	if cmd.FormID == "" {
		return nil, fmt.Errorf("form ID is required")
	}

	result := &formpayment.FormProcessingResult{
		FormID:          cmd.FormID,
		FormVersionID:   cmd.FormVersionID,
		Success:         true,
		ProcessedFields: []formpayment.ProcessingResult{},
		Errors:          []formpayment.FieldError{},
	}

	for _, field := range cmd.Fields {
		if field == nil {
			continue
		}
		fieldResult, err := uc.processField(ctx, field)
		if err != nil {
			uc.logger.Warnw("payment field processing failed",
				"form_id", cmd.FormID,
				"field_id", field.FieldID(),
				"merchant_id", utils.MaskMerchantID(field.MerchantID()),
				"error", err,
			)
			result.Success = false
			result.Errors = append(result.Errors, formpayment.FieldError{
				FieldID: field.FieldID(),
				Error:   err.Error(),
			})
			continue
		}

		field.AttachResult(*fieldResult)
		result.ProcessedFields = append(result.ProcessedFields, *fieldResult)
	}

	uc.logger.Infow("form payments processed",
		"form_id", cmd.FormID,
		"form_version_id", cmd.FormVersionID,
		"fields", len(cmd.Fields),
		"succeeded", len(result.ProcessedFields),
		"failed", len(result.Errors),
	)

	return result, nil
}

// processField runs the full per-field round trip: validation gate, dispatch
// on payment type, remote call, registry write.
func (uc *ProcessFormPaymentsUseCase) processField(ctx context.Context, field *formpayment.PaymentField) (*formpayment.ProcessingResult, error) {
	validation := formpayment.ValidateField(field)
	if !validation.IsValid {
		return nil, fmt.Errorf("validation failed: %s", validation.Errors[0].Message)
	}

	switch field.PaymentType() {
	case vo.PaymentTypeSubscription:
		return uc.reconcileSubscription(ctx, field)
	case vo.PaymentTypeDonation, vo.PaymentTypeDonationButton:
		return uc.configureDonation(ctx, field)
	case vo.PaymentTypeOneTime:
		return uc.echoResult(field, formpayment.ActionOneTimeConfigured, oneTimeDetails(field)), nil
	case vo.PaymentTypeProductWise:
		return uc.echoResult(field, formpayment.ActionProductWiseConfigured, productDetails(field)), nil
	case vo.PaymentTypeCustomAmount:
		return uc.echoResult(field, formpayment.ActionCustomAmountConfigured, customAmountDetails(field)), nil
	}

	return nil, fmt.Errorf("unknown payment type: %s", field.PaymentType())
}

// reconcileSubscription decides between creating a fresh provider plan and
// updating the existing one. An update rejected because the mutation touches
// a locked field, or because the plan vanished at the provider, falls back
// to create; transient failures surface as-is so repeated saves never mint
// duplicate plans.
func (uc *ProcessFormPaymentsUseCase) reconcileSubscription(ctx context.Context, field *formpayment.PaymentField) (*formpayment.ProcessingResult, error) {
	cfg := *field.Subscription()
	cfg.NormalizeTiers()

	existing, err := uc.registry.Get(ctx, field.FieldID(), field.MerchantID())
	if err != nil {
		return nil, fmt.Errorf("registry lookup failed: %w", err)
	}

	shouldCreateNew := existing == nil || field.MerchantChanged()
	if !shouldCreateNew {
		updated, updateErr := uc.updatePlan(ctx, field, &cfg, existing)
		if updateErr == nil {
			return updated, nil
		}
		if !gateway.IsImmutableViolation(updateErr) && !gateway.IsNotFound(updateErr) {
			return nil, updateErr
		}
		uc.logger.Infow("plan update not possible, creating a new plan",
			"field_id", field.FieldID(),
			"plan_id", existing.RemotePlanID,
			"error", updateErr,
		)
	}

	return uc.createPlan(ctx, field, &cfg)
}

func (uc *ProcessFormPaymentsUseCase) createPlan(ctx context.Context, field *formpayment.PaymentField, cfg *formpayment.SubscriptionPlanConfig) (*formpayment.ProcessingResult, error) {
	planData := uc.buildPlanData(cfg)
	req := gateway.CreatePlanRequest{
		MerchantID: field.MerchantID(),
		PlanData:   planData,
	}

	resp, err := uc.gateway.CreateSubscriptionPlan(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription plan: %w", err)
	}

	syncedConfig, _ := json.Marshal(planData)
	entry := &formpayment.RegistryEntry{
		FieldID:         field.FieldID(),
		MerchantID:      field.MerchantID(),
		RemotePlanID:    resp.PlanID,
		RemoteProductID: resp.ProductID,
		PlanStatus:      resp.Status,
		SyncedConfig:    syncedConfig,
		SyncedAt:        biztime.NowUTC(),
	}
	if err := uc.registry.Set(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record plan registry entry: %w", err)
	}

	uc.logger.Infow("subscription plan created",
		"field_id", field.FieldID(),
		"plan_id", resp.PlanID,
		"merchant_id", utils.MaskMerchantID(field.MerchantID()),
	)

	return &formpayment.ProcessingResult{
		FieldID:         field.FieldID(),
		Action:          formpayment.ActionCreated,
		MerchantID:      field.MerchantID(),
		RemotePlanID:    resp.PlanID,
		RemoteProductID: resp.ProductID,
		PlanStatus:      resp.Status,
	}, nil
}

func (uc *ProcessFormPaymentsUseCase) updatePlan(ctx context.Context, field *formpayment.PaymentField, cfg *formpayment.SubscriptionPlanConfig, existing *formpayment.RegistryEntry) (*formpayment.ProcessingResult, error) {
	settings := advancedSettingsData(cfg)
	req := gateway.UpdatePlanRequest{
		MerchantID:       field.MerchantID(),
		PlanID:           existing.RemotePlanID,
		Description:      uc.sanitizer.PlanDescription(cfg.Description),
		AdvancedSettings: settings,
	}

	resp, err := uc.gateway.UpdateSubscriptionPlan(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update subscription plan: %w", err)
	}

	syncedConfig, _ := json.Marshal(uc.buildPlanData(cfg))
	entry := *existing
	entry.PlanStatus = resp.Status
	entry.SyncedConfig = syncedConfig
	entry.SyncedAt = biztime.NowUTC()
	if err := uc.registry.Set(ctx, &entry); err != nil {
		return nil, fmt.Errorf("failed to refresh plan registry entry: %w", err)
	}

	return &formpayment.ProcessingResult{
		FieldID:         field.FieldID(),
		Action:          formpayment.ActionUpdated,
		MerchantID:      field.MerchantID(),
		RemotePlanID:    existing.RemotePlanID,
		RemoteProductID: existing.RemoteProductID,
		PlanStatus:      resp.Status,
	}, nil
}

func (uc *ProcessFormPaymentsUseCase) configureDonation(ctx context.Context, field *formpayment.PaymentField) (*formpayment.ProcessingResult, error) {
	donation := field.Donation()
	if donation == nil {
		donation = &formpayment.DonationConfig{}
	}

	amounts := make([]string, 0, len(donation.SuggestedAmts))
	for _, amt := range donation.SuggestedAmts {
		amounts = append(amounts, amt.Format())
	}

	req := gateway.CreateDonationRequest{
		MerchantID:       field.MerchantID(),
		Name:             uc.sanitizer.PlainText(donation.Name),
		Purpose:          uc.sanitizer.PlanDescription(donation.Purpose),
		ButtonID:         donation.ButtonID,
		Currency:         donation.Currency,
		SuggestedAmounts: amounts,
		AllowCustom:      donation.AllowCustom,
	}

	resp, err := uc.gateway.CreateDonationPlan(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to configure donation: %w", err)
	}

	action := formpayment.ActionDonationConfigured
	if field.PaymentType() == vo.PaymentTypeDonationButton {
		action = formpayment.ActionDonationButtonConfigured
	}

	return &formpayment.ProcessingResult{
		FieldID:      field.FieldID(),
		Action:       action,
		MerchantID:   field.MerchantID(),
		RemotePlanID: resp.DonationPlanID,
		PlanStatus:   resp.Status,
	}, nil
}

// echoResult builds the result for checkout-time payment types: no remote
// object exists at save time, the sub-configuration is echoed back.
func (uc *ProcessFormPaymentsUseCase) echoResult(field *formpayment.PaymentField, action formpayment.ProcessingAction, details map[string]any) *formpayment.ProcessingResult {
	return &formpayment.ProcessingResult{
		FieldID:    field.FieldID(),
		Action:     action,
		MerchantID: field.MerchantID(),
		Details:    details,
	}
}

func (uc *ProcessFormPaymentsUseCase) buildPlanData(cfg *formpayment.SubscriptionPlanConfig) gateway.PlanData {
	data := gateway.PlanData{
		Name:             uc.sanitizer.PlainText(cfg.Name),
		Description:      uc.sanitizer.PlanDescription(cfg.Description),
		BillingFrequency: cfg.BillingFrequency.String(),
		BillingInterval:  cfg.BillingInterval,
		TotalCycles:      cfg.TotalCycles,
		Price:            cfg.Amount.Format(),
		Currency:         cfg.Amount.Currency(),
		TaxPercentage:    cfg.TaxPercentage,
		AdvancedSettings: advancedSettingsData(cfg),
	}

	if cfg.SetupFee.IsPositive() {
		data.SetupFee = cfg.SetupFee.Format()
	}

	if cfg.TrialPeriod.Enabled {
		data.TrialPeriod = &gateway.TrialPeriodData{
			Unit:  cfg.TrialPeriod.Unit.String(),
			Count: cfg.TrialPeriod.Count,
			Price: cfg.TrialPeriod.Price.Format(),
		}
	}

	if cfg.TieredPricing.Enabled {
		tiers := make([]gateway.PricingTierData, 0, len(cfg.TieredPricing.Tiers))
		for _, tier := range cfg.TieredPricing.Tiers {
			tiers = append(tiers, gateway.PricingTierData{
				StartingQuantity: tier.StartingQuantity,
				EndingQuantity:   tier.EndingQuantity,
				Price:            tier.Price.Format(),
			})
		}
		data.TieredPricing = tiers
	}

	return data
}

func advancedSettingsData(cfg *formpayment.SubscriptionPlanConfig) *gateway.AdvancedSettingsData {
	return &gateway.AdvancedSettingsData{
		AutoBillOutstanding:     cfg.AdvancedSettings.AutoBillOutstanding,
		SetupFeeFailureAction:   cfg.AdvancedSettings.SetupFeeFailureAction,
		PaymentFailureThreshold: cfg.AdvancedSettings.PaymentFailureThreshold,
		CancelURL:               cfg.AdvancedSettings.CancelURL,
		ReturnURL:               cfg.AdvancedSettings.ReturnURL,
	}
}

func oneTimeDetails(field *formpayment.PaymentField) map[string]any {
	cfg := field.OneTime()
	if cfg == nil {
		return nil
	}
	return map[string]any{
		"amount":   cfg.Amount.Format(),
		"currency": cfg.Amount.Currency(),
		"label":    cfg.Label,
	}
}

func productDetails(field *formpayment.PaymentField) map[string]any {
	products := field.Products()
	items := make([]map[string]any, 0, len(products))
	for _, p := range products {
		items = append(items, map[string]any{
			"sku":      p.SKU,
			"name":     p.Name,
			"price":    p.Price.Format(),
			"currency": p.Price.Currency(),
			"quantity": p.Quantity,
		})
	}
	return map[string]any{"products": items}
}

func customAmountDetails(field *formpayment.PaymentField) map[string]any {
	cfg := field.CustomAmount()
	if cfg == nil {
		return nil
	}
	return map[string]any{
		"currency":   cfg.Currency,
		"min_amount": cfg.MinAmount.Format(),
		"max_amount": cfg.MaxAmount.Format(),
	}
}
