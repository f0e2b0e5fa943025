package formpayment

import (
	"fmt"
	"strings"

	vo "github.com/MV-Clouds/quickform-payments/internal/domain/formpayment/valueobjects"
)

// Validation issue codes.
const (
	IssueMissingMerchant         = "missing_merchant"
	IssueInvalidPaymentType      = "invalid_payment_type"
	IssueMissingSubscription     = "missing_subscription_config"
	IssueInvalidAmount           = "invalid_amount"
	IssueMissingBillingFrequency = "missing_billing_frequency"
	IssueInvalidBillingInterval  = "invalid_billing_interval"
	IssueBlankPlanName           = "blank_plan_name"
	IssueMissingButtonID         = "missing_button_id"
	IssueMerchantChanged         = "merchant_changed"
	IssueMalformedTiers          = "malformed_tiers"
)

// ValidateField checks a payment field's configuration for completeness
// before any remote call is attempted. Pure: it reads only field state.
// Merchant migration is reported as a warning, not an error, because the
// reconciler recovers by creating a new remote plan.
func ValidateField(field *PaymentField) ValidationResult {
	result := ValidationResult{IsValid: true}
	if field == nil {
		result.IsValid = false
		result.Errors = append(result.Errors, ValidationIssue{
			Code:    IssueInvalidPaymentType,
			Message: "payment field is nil",
		})
		return result
	}

	fail := func(code, message string) {
		result.IsValid = false
		result.Errors = append(result.Errors, ValidationIssue{
			FieldID: field.FieldID(),
			Code:    code,
			Message: message,
		})
	}
	warn := func(code, message string) {
		result.Warnings = append(result.Warnings, ValidationIssue{
			FieldID: field.FieldID(),
			Code:    code,
			Message: message,
		})
	}

	if !field.PaymentType().IsValid() {
		fail(IssueInvalidPaymentType, fmt.Sprintf("unknown payment type %q", field.PaymentType()))
	}

	if strings.TrimSpace(field.MerchantID()) == "" {
		fail(IssueMissingMerchant, "merchant account is not connected for this field")
	}

	switch field.PaymentType() {
	case vo.PaymentTypeSubscription:
		validateSubscription(field, fail, warn)
	case vo.PaymentTypeDonationButton:
		if field.Donation() == nil || strings.TrimSpace(field.Donation().ButtonID) == "" {
			fail(IssueMissingButtonID, "donation button fields require a hosted button ID")
		}
	}

	if field.MerchantChanged() {
		warn(IssueMerchantChanged, fmt.Sprintf(
			"merchant changed from %s; a new plan will be created instead of updating the existing one",
			field.PreviousMerchantID()))
	}

	return result
}

func validateSubscription(field *PaymentField, fail func(code, message string), warn func(code, message string)) {
	cfg := field.Subscription()
	if cfg == nil {
		fail(IssueMissingSubscription, "subscription fields require a plan configuration")
		return
	}

	if strings.TrimSpace(cfg.Name) == "" {
		fail(IssueBlankPlanName, "plan name must not be blank")
	}
	if !cfg.Amount.IsPositive() {
		fail(IssueInvalidAmount, "plan amount must be greater than zero")
	}
	if !cfg.BillingFrequency.IsValid() {
		fail(IssueMissingBillingFrequency, "billing frequency is required")
	} else if cfg.BillingInterval <= 0 || cfg.BillingInterval > cfg.BillingFrequency.MaxBillingInterval() {
		fail(IssueInvalidBillingInterval, fmt.Sprintf(
			"billing interval must be between 1 and %d for %s cycles",
			cfg.BillingFrequency.MaxBillingInterval(), cfg.BillingFrequency))
	}

	if cfg.TieredPricing.Enabled && !TiersValid(cfg.TieredPricing.Tiers) {
		// The sequencer self-heals tier tables at processing time; the editor
		// only needs a heads-up that quantities will be rewritten.
		warn(IssueMalformedTiers, "tier quantities are inconsistent and will be resequenced on save")
	}
}
