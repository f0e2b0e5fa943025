package formpayment

import (
	vo "github.com/MV-Clouds/quickform-payments/internal/domain/formpayment/valueobjects"
)

// Setup fee failure actions accepted by the provider.
const (
	SetupFeeFailureContinue = "CONTINUE"
	SetupFeeFailureCancel   = "CANCEL"
)

// TrialPeriodConfig describes an optional free or discounted trial preceding
// the regular billing cycles.
type TrialPeriodConfig struct {
	Enabled bool
	Unit    vo.BillingFrequency
	Count   int
	Price   vo.Money
}

// TieredPricingConfig holds the quantity-priced tier table. Tiers must
// satisfy the tiering invariants before being sent to the provider; the
// processor runs Resequence over them rather than rejecting bad input.
type TieredPricingConfig struct {
	Enabled bool
	Tiers   []PriceTier
}

// AdvancedSettings carries the provider plan options that rarely change.
type AdvancedSettings struct {
	AutoBillOutstanding     bool
	SetupFeeFailureAction   string
	PaymentFailureThreshold int
	CancelURL               string
	ReturnURL               string
}

// SubscriptionPlanConfig is the sub-configuration of a subscription field.
// It is authored in the form editor and mapped onto a provider plan payload
// at save time. TotalCycles 0 means the subscription never expires.
type SubscriptionPlanConfig struct {
	Name             string
	Description      string
	BillingFrequency vo.BillingFrequency
	BillingInterval  int
	TotalCycles      int
	Amount           vo.Money
	SetupFee         vo.Money
	TaxPercentage    float64
	TrialPeriod      TrialPeriodConfig
	TieredPricing    TieredPricingConfig
	AdvancedSettings AdvancedSettings
}

// DefaultSubscriptionPlanConfig returns the editor defaults for a fresh
// subscription field. Call sites must not re-spread these inline; they are
// the single source of plan defaults.
func DefaultSubscriptionPlanConfig() SubscriptionPlanConfig {
	return SubscriptionPlanConfig{
		BillingFrequency: vo.BillingFrequencyMonth,
		BillingInterval:  1,
		TotalCycles:      0,
		Amount:           vo.ZeroMoney("USD"),
		SetupFee:         vo.ZeroMoney("USD"),
		TrialPeriod: TrialPeriodConfig{
			Unit:  vo.BillingFrequencyWeek,
			Count: 1,
			Price: vo.ZeroMoney("USD"),
		},
		AdvancedSettings: AdvancedSettings{
			AutoBillOutstanding:     true,
			SetupFeeFailureAction:   SetupFeeFailureContinue,
			PaymentFailureThreshold: 3,
		},
	}
}

// NormalizeTiers resequences the tier table in place when tiered pricing is
// enabled. Safe to call repeatedly.
func (c *SubscriptionPlanConfig) NormalizeTiers() {
	if !c.TieredPricing.Enabled {
		return
	}
	c.TieredPricing.Tiers = Resequence(c.TieredPricing.Tiers)
}

// DonationConfig is the sub-configuration of donation and donation_button
// fields. ButtonID is required for donation_button only.
type DonationConfig struct {
	Name          string
	Purpose       string
	ButtonID      string
	Currency      string
	SuggestedAmts []vo.Money
	AllowCustom   bool
}

// OneTimeConfig is the sub-configuration of a one_time field. Resolved at
// checkout; the processor only echoes it back.
type OneTimeConfig struct {
	Amount vo.Money
	Label  string
}

// Product is one purchasable item of a product_wise field.
type Product struct {
	SKU      string
	Name     string
	Price    vo.Money
	Quantity int
}

// CustomAmountConfig is the sub-configuration of a custom_amount field.
type CustomAmountConfig struct {
	Currency  string
	MinAmount vo.Money
	MaxAmount vo.Money
}
