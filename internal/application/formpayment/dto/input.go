// Package dto carries the transport-facing shapes of payment fields and
// processing results, and their conversion to domain types.
package dto

import (
	"math"

	"github.com/MV-Clouds/quickform-payments/internal/domain/formpayment"
	vo "github.com/MV-Clouds/quickform-payments/internal/domain/formpayment/valueobjects"
	"github.com/MV-Clouds/quickform-payments/internal/shared/mapper"
)

// MoneyInput is a decimal amount plus currency as authored in the editor.
type MoneyInput struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

func (m MoneyInput) ToDomain() vo.Money {
	return vo.NewMoney(int64(math.Round(m.Value*100)), m.Currency)
}

// TierInput is one tier row. EndingQuantity nil means unbounded; the tier
// sequencer rewrites quantities on save, so inconsistent input is accepted.
type TierInput struct {
	StartingQuantity uint       `json:"starting_quantity"`
	EndingQuantity   *uint      `json:"ending_quantity"`
	Price            MoneyInput `json:"price"`
}

type TrialPeriodInput struct {
	Enabled bool       `json:"enabled"`
	Unit    string     `json:"unit"`
	Count   int        `json:"count"`
	Price   MoneyInput `json:"price"`
}

type TieredPricingInput struct {
	Enabled bool        `json:"enabled"`
	Tiers   []TierInput `json:"tiers"`
}

type AdvancedSettingsInput struct {
	AutoBillOutstanding     bool   `json:"auto_bill_outstanding"`
	SetupFeeFailureAction   string `json:"setup_fee_failure_action"`
	PaymentFailureThreshold int    `json:"payment_failure_threshold"`
	CancelURL               string `json:"cancel_url"`
	ReturnURL               string `json:"return_url"`
}

type SubscriptionInput struct {
	Name             string                 `json:"name"`
	Description      string                 `json:"description"`
	BillingFrequency string                 `json:"billing_frequency" binding:"omitempty,billingfrequency"`
	BillingInterval  int                    `json:"billing_interval"`
	TotalCycles      int                    `json:"total_cycles"`
	Amount           MoneyInput             `json:"amount"`
	SetupFee         *MoneyInput            `json:"setup_fee"`
	TaxPercentage    float64                `json:"tax_percentage"`
	TrialPeriod      *TrialPeriodInput      `json:"trial_period"`
	TieredPricing    *TieredPricingInput    `json:"tiered_pricing"`
	AdvancedSettings *AdvancedSettingsInput `json:"advanced_settings"`
}

type DonationInput struct {
	Name             string       `json:"name"`
	Purpose          string       `json:"purpose"`
	ButtonID         string       `json:"button_id"`
	Currency         string       `json:"currency"`
	SuggestedAmounts []MoneyInput `json:"suggested_amounts"`
	AllowCustom      bool         `json:"allow_custom"`
}

type OneTimeInput struct {
	Amount MoneyInput `json:"amount"`
	Label  string     `json:"label"`
}

type ProductInput struct {
	SKU      string     `json:"sku"`
	Name     string     `json:"name"`
	Price    MoneyInput `json:"price"`
	Quantity int        `json:"quantity"`
}

type CustomAmountInput struct {
	Currency  string     `json:"currency"`
	MinAmount MoneyInput `json:"min_amount"`
	MaxAmount MoneyInput `json:"max_amount"`
}

// PaymentFieldInput is one payment field as submitted by the form editor.
type PaymentFieldInput struct {
	FieldID            string             `json:"field_id" binding:"required"`
	PaymentType        string             `json:"payment_type" binding:"required,paymenttype"`
	MerchantID         string             `json:"merchant_id"`
	PreviousMerchantID string             `json:"previous_merchant_id"`
	Subscription       *SubscriptionInput `json:"subscription"`
	Donation           *DonationInput     `json:"donation"`
	OneTime            *OneTimeInput      `json:"one_time"`
	Products           []ProductInput     `json:"products"`
	CustomAmount       *CustomAmountInput `json:"custom_amount"`
}

// ToDomain converts the input into a domain field. Unknown enum values pass
// through so the domain validator can report them uniformly.
func (in PaymentFieldInput) ToDomain() *formpayment.PaymentField {
	var subscription *formpayment.SubscriptionPlanConfig
	if in.Subscription != nil {
		cfg := in.Subscription.toDomain()
		subscription = &cfg
	}

	var donation *formpayment.DonationConfig
	if in.Donation != nil {
		donation = &formpayment.DonationConfig{
			Name:          in.Donation.Name,
			Purpose:       in.Donation.Purpose,
			ButtonID:      in.Donation.ButtonID,
			Currency:      in.Donation.Currency,
			SuggestedAmts: mapper.MapSlice(in.Donation.SuggestedAmounts, MoneyInput.ToDomain),
			AllowCustom:   in.Donation.AllowCustom,
		}
	}

	var oneTime *formpayment.OneTimeConfig
	if in.OneTime != nil {
		oneTime = &formpayment.OneTimeConfig{
			Amount: in.OneTime.Amount.ToDomain(),
			Label:  in.OneTime.Label,
		}
	}

	products := mapper.MapSlice(in.Products, func(p ProductInput) formpayment.Product {
		return formpayment.Product{
			SKU:      p.SKU,
			Name:     p.Name,
			Price:    p.Price.ToDomain(),
			Quantity: p.Quantity,
		}
	})

	var customAmount *formpayment.CustomAmountConfig
	if in.CustomAmount != nil {
		customAmount = &formpayment.CustomAmountConfig{
			Currency:  in.CustomAmount.Currency,
			MinAmount: in.CustomAmount.MinAmount.ToDomain(),
			MaxAmount: in.CustomAmount.MaxAmount.ToDomain(),
		}
	}

	return formpayment.ReconstructPaymentField(
		in.FieldID,
		vo.PaymentType(in.PaymentType),
		in.MerchantID,
		in.PreviousMerchantID,
		subscription,
		donation,
		oneTime,
		products,
		customAmount,
	)
}

func (in SubscriptionInput) toDomain() formpayment.SubscriptionPlanConfig {
	cfg := formpayment.DefaultSubscriptionPlanConfig()
	cfg.Name = in.Name
	cfg.Description = in.Description
	if in.BillingFrequency != "" {
		cfg.BillingFrequency = vo.BillingFrequency(in.BillingFrequency)
	}
	if in.BillingInterval > 0 {
		cfg.BillingInterval = in.BillingInterval
	}
	cfg.TotalCycles = in.TotalCycles
	cfg.Amount = in.Amount.ToDomain()
	cfg.TaxPercentage = in.TaxPercentage
	if in.SetupFee != nil {
		cfg.SetupFee = in.SetupFee.ToDomain()
	}
	if in.TrialPeriod != nil {
		cfg.TrialPeriod = formpayment.TrialPeriodConfig{
			Enabled: in.TrialPeriod.Enabled,
			Unit:    vo.BillingFrequency(in.TrialPeriod.Unit),
			Count:   in.TrialPeriod.Count,
			Price:   in.TrialPeriod.Price.ToDomain(),
		}
	}
	if in.TieredPricing != nil {
		cfg.TieredPricing = formpayment.TieredPricingConfig{
			Enabled: in.TieredPricing.Enabled,
			Tiers: mapper.MapSlice(in.TieredPricing.Tiers, func(t TierInput) formpayment.PriceTier {
				return formpayment.PriceTier{
					StartingQuantity: t.StartingQuantity,
					EndingQuantity:   t.EndingQuantity,
					Price:            t.Price.ToDomain(),
				}
			}),
		}
	}
	if in.AdvancedSettings != nil {
		cfg.AdvancedSettings = formpayment.AdvancedSettings{
			AutoBillOutstanding:     in.AdvancedSettings.AutoBillOutstanding,
			SetupFeeFailureAction:   in.AdvancedSettings.SetupFeeFailureAction,
			PaymentFailureThreshold: in.AdvancedSettings.PaymentFailureThreshold,
			CancelURL:               in.AdvancedSettings.CancelURL,
			ReturnURL:               in.AdvancedSettings.ReturnURL,
		}
	}
	return cfg
}

// ToDomainFields converts a batch of field inputs.
func ToDomainFields(inputs []PaymentFieldInput) []*formpayment.PaymentField {
	return mapper.MapSlice(inputs, PaymentFieldInput.ToDomain)
}
