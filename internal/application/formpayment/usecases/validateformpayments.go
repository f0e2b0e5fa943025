package usecases

import (
	"context"
	"fmt"

	"github.com/MV-Clouds/quickform-payments/internal/domain/formpayment"
	"github.com/MV-Clouds/quickform-payments/internal/shared/logger"
)

type ValidateFormPaymentsCommand struct {
	FormID string
	Fields []*formpayment.PaymentField
}

// ValidateFormPaymentsUseCase runs the validation gate over every payment
// field of a form, collect-all: the editor gets every problem at once, not
// just the first.
type ValidateFormPaymentsUseCase struct {
	logger logger.Interface
}

func NewValidateFormPaymentsUseCase(logger logger.Interface) *ValidateFormPaymentsUseCase {
	return &ValidateFormPaymentsUseCase{logger: logger}
}

func (uc *ValidateFormPaymentsUseCase) Execute(ctx context.Context, cmd ValidateFormPaymentsCommand) (*formpayment.ValidationResult, error) {
	if cmd.FormID == "" {
		return nil, fmt.Errorf("form ID is required")
	}

	result := formpayment.ValidationResult{IsValid: true}
	for _, field := range cmd.Fields {
		if field == nil {
			continue
		}
		result.Merge(formpayment.ValidateField(field))
	}

	if !result.IsValid {
		uc.logger.Infow("form payment validation failed",
			"form_id", cmd.FormID,
			"errors", len(result.Errors),
			"warnings", len(result.Warnings),
		)
	}

	return &result, nil
}
