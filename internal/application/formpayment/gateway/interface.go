// Package gateway defines the action-oriented RPC contract the payment
// provider exposes to the form-save pipeline, together with the typed error
// model the reconciler branches on.
package gateway

import "context"

// Provider actions.
const (
	ActionCreateSubscriptionPlan = "create-subscription-plan"
	ActionUpdateSubscriptionPlan = "update-subscription-plan"
	ActionCreateDonationPlan     = "create-donation-plan"
)

// ProviderGateway is the minimum remote contract the processor depends on.
type ProviderGateway interface {
	CreateSubscriptionPlan(ctx context.Context, req CreatePlanRequest) (*CreatePlanResponse, error)
	// UpdateSubscriptionPlan changes only the mutable subset of a live plan.
	// Providers reject price, currency, and billing cycle mutations; such
	// rejections surface as a GatewayError with KindImmutableViolation.
	UpdateSubscriptionPlan(ctx context.Context, req UpdatePlanRequest) (*UpdatePlanResponse, error)
	CreateDonationPlan(ctx context.Context, req CreateDonationRequest) (*CreateDonationResponse, error)
}

// TrialPeriodData mirrors TrialPeriodConfig on the wire.
type TrialPeriodData struct {
	Unit  string `json:"unit"`
	Count int    `json:"count"`
	Price string `json:"price"`
}

// PricingTierData is one resequenced tier on the wire. EndingQuantity is
// omitted for the unbounded last tier.
type PricingTierData struct {
	StartingQuantity uint   `json:"startingQuantity"`
	EndingQuantity   *uint  `json:"endingQuantity,omitempty"`
	Price            string `json:"price"`
}

// AdvancedSettingsData mirrors AdvancedSettings on the wire.
type AdvancedSettingsData struct {
	AutoBillOutstanding     bool   `json:"autoBillOutstanding"`
	SetupFeeFailureAction   string `json:"setupFeeFailureAction,omitempty"`
	PaymentFailureThreshold int    `json:"paymentFailureThreshold,omitempty"`
	CancelURL               string `json:"cancelUrl,omitempty"`
	ReturnURL               string `json:"returnUrl,omitempty"`
}

// PlanData is the full plan payload for create-subscription-plan. Amounts
// are decimal strings in the plan currency.
type PlanData struct {
	Name             string                `json:"name"`
	Description      string                `json:"description,omitempty"`
	BillingFrequency string                `json:"frequency"`
	BillingInterval  int                   `json:"interval"`
	TotalCycles      int                   `json:"totalCycles"`
	Price            string                `json:"price"`
	Currency         string                `json:"currency"`
	SetupFee         string                `json:"setupFee,omitempty"`
	TaxPercentage    float64               `json:"taxPercentage,omitempty"`
	TrialPeriod      *TrialPeriodData      `json:"trialPeriod,omitempty"`
	TieredPricing    []PricingTierData     `json:"tieredPricing,omitempty"`
	AdvancedSettings *AdvancedSettingsData `json:"advancedSettings,omitempty"`
}

type CreatePlanRequest struct {
	MerchantID string
	PlanData   PlanData
}

type CreatePlanResponse struct {
	PlanID    string
	ProductID string
	Name      string
	Status    string
}

// UpdatePlanRequest carries the provider-permitted mutable fields only.
type UpdatePlanRequest struct {
	MerchantID  string
	PlanID      string
	Description string
	// AdvancedSettings may be updated on live plans.
	AdvancedSettings *AdvancedSettingsData
}

type UpdatePlanResponse struct {
	Name   string
	Status string
}

type CreateDonationRequest struct {
	MerchantID       string
	Name             string
	Purpose          string
	ButtonID         string
	Currency         string
	SuggestedAmounts []string
	AllowCustom      bool
}

type CreateDonationResponse struct {
	DonationPlanID string
	Status         string
}
