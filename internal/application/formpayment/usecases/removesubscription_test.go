package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MV-Clouds/quickform-payments/internal/domain/formpayment"
)

func TestRemoveSubscription_RequiresFieldAndMerchant(t *testing.T) {
	uc := NewRemoveSubscriptionUseCase(&mockPlanRegistry{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), RemoveSubscriptionCommand{MerchantID: "merchant_a"})
	assert.Error(t, err)

	_, err = uc.Execute(context.Background(), RemoveSubscriptionCommand{FieldID: "field_1"})
	assert.ErrorIs(t, err, formpayment.ErrMerchantRequired)
}

func TestRemoveSubscription_Removes(t *testing.T) {
	var gotField, gotMerchant string
	registry := &mockPlanRegistry{
		DeleteFunc: func(ctx context.Context, fieldID, merchantID string) (bool, error) {
			gotField, gotMerchant = fieldID, merchantID
			return true, nil
		},
	}
	uc := NewRemoveSubscriptionUseCase(registry, &mockLogger{})

	removed, err := uc.Execute(context.Background(), RemoveSubscriptionCommand{
		FieldID:    "field_1",
		MerchantID: "merchant_a",
	})

	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, "field_1", gotField)
	assert.Equal(t, "merchant_a", gotMerchant)
}

func TestRemoveSubscription_ReportsAbsent(t *testing.T) {
	uc := NewRemoveSubscriptionUseCase(&mockPlanRegistry{}, &mockLogger{})

	removed, err := uc.Execute(context.Background(), RemoveSubscriptionCommand{
		FieldID:    "field_unknown",
		MerchantID: "merchant_a",
	})

	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRemoveSubscription_RegistryError(t *testing.T) {
	registry := &mockPlanRegistry{
		DeleteFunc: func(ctx context.Context, fieldID, merchantID string) (bool, error) {
			return false, errors.New("connection refused")
		},
	}
	uc := NewRemoveSubscriptionUseCase(registry, &mockLogger{})

	_, err := uc.Execute(context.Background(), RemoveSubscriptionCommand{
		FieldID:    "field_1",
		MerchantID: "merchant_a",
	})

	assert.Error(t, err)
}
