package usecases

import (
	"context"
	"fmt"

	"github.com/MV-Clouds/quickform-payments/internal/domain/formpayment"
	"github.com/MV-Clouds/quickform-payments/internal/shared/logger"
)

type RemoveSubscriptionCommand struct {
	FieldID    string
	MerchantID string
}

// RemoveSubscriptionUseCase unlinks a field from its remote plan, typically
// when the field is deleted from the form. The remote plan itself is left
// untouched; active subscribers keep billing until the merchant deactivates
// it at the provider.
type RemoveSubscriptionUseCase struct {
	registry formpayment.PlanRegistry
	logger   logger.Interface
}

func NewRemoveSubscriptionUseCase(registry formpayment.PlanRegistry, logger logger.Interface) *RemoveSubscriptionUseCase {
	return &RemoveSubscriptionUseCase{
		registry: registry,
		logger:   logger,
	}
}

func (uc *RemoveSubscriptionUseCase) Execute(ctx context.Context, cmd RemoveSubscriptionCommand) (bool, error) {
	if cmd.FieldID == "" {
		return false, fmt.Errorf("field ID is required")
	}
	if cmd.MerchantID == "" {
		return false, formpayment.ErrMerchantRequired
	}

	removed, err := uc.registry.Delete(ctx, cmd.FieldID, cmd.MerchantID)
	if err != nil {
		uc.logger.Errorw("failed to delete registry entry",
			"field_id", cmd.FieldID,
			"error", err,
		)
		return false, fmt.Errorf("failed to remove subscription: %w", err)
	}

	if removed {
		uc.logger.Infow("subscription unlinked",
			"field_id", cmd.FieldID,
		)
	}

	return removed, nil
}
