package formpayment

// ProcessingAction is the per-field outcome kind of one save cycle.
type ProcessingAction string

const (
	ActionCreated                  ProcessingAction = "created"
	ActionUpdated                  ProcessingAction = "updated"
	ActionDonationConfigured       ProcessingAction = "donation_configured"
	ActionDonationButtonConfigured ProcessingAction = "donation_button_configured"
	ActionOneTimeConfigured        ProcessingAction = "one_time_configured"
	ActionProductWiseConfigured    ProcessingAction = "product_wise_configured"
	ActionCustomAmountConfigured   ProcessingAction = "custom_amount_configured"
)

// ProcessingResult is the outcome of processing a single payment field.
// Details carries echoed sub-configuration for checkout-time payment types.
type ProcessingResult struct {
	FieldID         string           `json:"field_id"`
	Action          ProcessingAction `json:"action"`
	MerchantID      string           `json:"merchant_id"`
	RemotePlanID    string           `json:"remote_plan_id,omitempty"`
	RemoteProductID string           `json:"remote_product_id,omitempty"`
	PlanStatus      string           `json:"plan_status,omitempty"`
	Details         map[string]any   `json:"details,omitempty"`
}

// FieldError pairs a field with the error that stopped its processing.
type FieldError struct {
	FieldID string `json:"field_id"`
	Error   string `json:"error"`
}

// FormProcessingResult aggregates the outcomes of one save cycle. Success is
// false as soon as any field errored; successful fields are still reported,
// the caller decides whether a partial failure is acceptable.
type FormProcessingResult struct {
	FormID          string             `json:"form_id"`
	FormVersionID   string             `json:"form_version_id,omitempty"`
	Success         bool               `json:"success"`
	ProcessedFields []ProcessingResult `json:"processed_fields"`
	Errors          []FieldError       `json:"errors"`
}

// ValidationIssue is one validation error or warning for a field.
type ValidationIssue struct {
	FieldID string `json:"field_id"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult is the collect-all outcome of validating a form's payment
// fields. Warnings never flip IsValid.
type ValidationResult struct {
	IsValid  bool              `json:"is_valid"`
	Errors   []ValidationIssue `json:"errors"`
	Warnings []ValidationIssue `json:"warnings"`
}

// Merge folds another result into this one.
func (r *ValidationResult) Merge(other ValidationResult) {
	if !other.IsValid {
		r.IsValid = false
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}
