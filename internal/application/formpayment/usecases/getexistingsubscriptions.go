package usecases

import (
	"context"
	"fmt"

	"github.com/MV-Clouds/quickform-payments/internal/domain/formpayment"
	"github.com/MV-Clouds/quickform-payments/internal/shared/logger"
	"github.com/MV-Clouds/quickform-payments/internal/shared/utils"
)

type GetExistingSubscriptionsQuery struct {
	MerchantID string
	Page       int
	PageSize   int
}

// GetExistingSubscriptionsUseCase lists every (field, plan) pair reconciled
// under a merchant.
type GetExistingSubscriptionsUseCase struct {
	registry formpayment.PlanRegistry
	logger   logger.Interface
}

func NewGetExistingSubscriptionsUseCase(registry formpayment.PlanRegistry, logger logger.Interface) *GetExistingSubscriptionsUseCase {
	return &GetExistingSubscriptionsUseCase{
		registry: registry,
		logger:   logger,
	}
}

// Execute returns one page of the merchant's entries plus the total count.
func (uc *GetExistingSubscriptionsUseCase) Execute(ctx context.Context, query GetExistingSubscriptionsQuery) ([]*formpayment.RegistryEntry, int, error) {
	if query.MerchantID == "" {
		return nil, 0, formpayment.ErrMerchantRequired
	}

	entries, err := uc.registry.ListByMerchant(ctx, query.MerchantID)
	if err != nil {
		uc.logger.Errorw("failed to list registry entries", "error", err)
		return nil, 0, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	return paginate(entries, query.Page, query.PageSize), len(entries), nil
}

// paginate slices the merchant's entries in memory. A merchant has at most
// one entry per payment field, so result sets stay small.
func paginate(entries []*formpayment.RegistryEntry, page, pageSize int) []*formpayment.RegistryEntry {
	p := utils.ValidatePagination(page, pageSize)
	start, end := utils.ApplyPagination(len(entries), p.Page, p.PageSize)
	return entries[start:end]
}
