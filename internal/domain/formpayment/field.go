package formpayment

import (
	"fmt"

	vo "github.com/MV-Clouds/quickform-payments/internal/domain/formpayment/valueobjects"
)

// PaymentField is one payment-capable input of a form. It is constructed by
// the form editor, consumed once per save cycle by the processor, and has a
// ProcessingResult attached in place after processing.
type PaymentField struct {
	fieldID            string
	paymentType        vo.PaymentType
	merchantID         string
	previousMerchantID string

	subscription *SubscriptionPlanConfig
	donation     *DonationConfig
	oneTime      *OneTimeConfig
	products     []Product
	customAmount *CustomAmountConfig

	result *ProcessingResult
}

func NewPaymentField(fieldID string, paymentType vo.PaymentType, merchantID string) (*PaymentField, error) {
	if fieldID == "" {
		return nil, fmt.Errorf("field ID is required")
	}
	if !paymentType.IsValid() {
		return nil, fmt.Errorf("invalid payment type: %s", paymentType)
	}

	return &PaymentField{
		fieldID:     fieldID,
		paymentType: paymentType,
		merchantID:  merchantID,
	}, nil
}

func (f *PaymentField) FieldID() string {
	return f.fieldID
}

func (f *PaymentField) PaymentType() vo.PaymentType {
	return f.paymentType
}

func (f *PaymentField) MerchantID() string {
	return f.merchantID
}

func (f *PaymentField) PreviousMerchantID() string {
	return f.previousMerchantID
}

// SetPreviousMerchantID records the merchant the field was last reconciled
// under. A differing previous merchant signals that reconciliation must
// create a fresh remote plan instead of updating the existing one.
func (f *PaymentField) SetPreviousMerchantID(merchantID string) {
	f.previousMerchantID = merchantID
}

// MerchantChanged reports whether the field migrated to a different merchant
// since its last successful reconciliation.
func (f *PaymentField) MerchantChanged() bool {
	return f.previousMerchantID != "" && f.previousMerchantID != f.merchantID
}

func (f *PaymentField) Subscription() *SubscriptionPlanConfig {
	return f.subscription
}

func (f *PaymentField) SetSubscription(cfg SubscriptionPlanConfig) {
	f.subscription = &cfg
}

func (f *PaymentField) Donation() *DonationConfig {
	return f.donation
}

func (f *PaymentField) SetDonation(cfg DonationConfig) {
	f.donation = &cfg
}

func (f *PaymentField) OneTime() *OneTimeConfig {
	return f.oneTime
}

func (f *PaymentField) SetOneTime(cfg OneTimeConfig) {
	f.oneTime = &cfg
}

func (f *PaymentField) Products() []Product {
	return f.products
}

func (f *PaymentField) SetProducts(products []Product) {
	f.products = products
}

func (f *PaymentField) CustomAmount() *CustomAmountConfig {
	return f.customAmount
}

func (f *PaymentField) SetCustomAmount(cfg CustomAmountConfig) {
	f.customAmount = &cfg
}

func (f *PaymentField) Result() *ProcessingResult {
	return f.result
}

// AttachResult records the per-save outcome on the field itself so the
// form-save pipeline can echo it back to the editor.
func (f *PaymentField) AttachResult(result ProcessingResult) {
	f.result = &result
}

// ReconstructPaymentField rebuilds a field from transport or persistence
// state without re-running construction checks.
func ReconstructPaymentField(
	fieldID string,
	paymentType vo.PaymentType,
	merchantID string,
	previousMerchantID string,
	subscription *SubscriptionPlanConfig,
	donation *DonationConfig,
	oneTime *OneTimeConfig,
	products []Product,
	customAmount *CustomAmountConfig,
) *PaymentField {
	return &PaymentField{
		fieldID:            fieldID,
		paymentType:        paymentType,
		merchantID:         merchantID,
		previousMerchantID: previousMerchantID,
		subscription:       subscription,
		donation:           donation,
		oneTime:            oneTime,
		products:           products,
		customAmount:       customAmount,
	}
}
