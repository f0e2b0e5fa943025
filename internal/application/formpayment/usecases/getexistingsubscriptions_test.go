package usecases

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MV-Clouds/quickform-payments/internal/domain/formpayment"
)

func merchantEntries(n int) []*formpayment.RegistryEntry {
	entries := make([]*formpayment.RegistryEntry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, &formpayment.RegistryEntry{
			FieldID:      fmt.Sprintf("field_%d", i),
			MerchantID:   "merchant_a",
			RemotePlanID: fmt.Sprintf("P-%d", i),
		})
	}
	return entries
}

func TestGetExistingSubscriptions_RequiresMerchant(t *testing.T) {
	uc := NewGetExistingSubscriptionsUseCase(&mockPlanRegistry{}, &mockLogger{})

	_, _, err := uc.Execute(context.Background(), GetExistingSubscriptionsQuery{})

	assert.ErrorIs(t, err, formpayment.ErrMerchantRequired)
}

func TestGetExistingSubscriptions_ReturnsAllWithinOnePage(t *testing.T) {
	registry := &mockPlanRegistry{
		ListByMerchantFunc: func(ctx context.Context, merchantID string) ([]*formpayment.RegistryEntry, error) {
			return merchantEntries(3), nil
		},
	}
	uc := NewGetExistingSubscriptionsUseCase(registry, &mockLogger{})

	entries, total, err := uc.Execute(context.Background(), GetExistingSubscriptionsQuery{
		MerchantID: "merchant_a",
	})

	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, entries, 3)
}

func TestGetExistingSubscriptions_Paginates(t *testing.T) {
	registry := &mockPlanRegistry{
		ListByMerchantFunc: func(ctx context.Context, merchantID string) ([]*formpayment.RegistryEntry, error) {
			return merchantEntries(5), nil
		},
	}
	uc := NewGetExistingSubscriptionsUseCase(registry, &mockLogger{})

	entries, total, err := uc.Execute(context.Background(), GetExistingSubscriptionsQuery{
		MerchantID: "merchant_a",
		Page:       2,
		PageSize:   2,
	})

	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, entries, 2)
	assert.Equal(t, "field_2", entries[0].FieldID)
	assert.Equal(t, "field_3", entries[1].FieldID)
}

func TestGetExistingSubscriptions_PageBeyondEnd(t *testing.T) {
	registry := &mockPlanRegistry{
		ListByMerchantFunc: func(ctx context.Context, merchantID string) ([]*formpayment.RegistryEntry, error) {
			return merchantEntries(3), nil
		},
	}
	uc := NewGetExistingSubscriptionsUseCase(registry, &mockLogger{})

	entries, total, err := uc.Execute(context.Background(), GetExistingSubscriptionsQuery{
		MerchantID: "merchant_a",
		Page:       9,
		PageSize:   10,
	})

	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, entries)
}

func TestGetExistingSubscriptions_RegistryError(t *testing.T) {
	registry := &mockPlanRegistry{
		ListByMerchantFunc: func(ctx context.Context, merchantID string) ([]*formpayment.RegistryEntry, error) {
			return nil, errors.New("connection refused")
		},
	}
	uc := NewGetExistingSubscriptionsUseCase(registry, &mockLogger{})

	_, _, err := uc.Execute(context.Background(), GetExistingSubscriptionsQuery{MerchantID: "merchant_a"})

	assert.Error(t, err)
}
