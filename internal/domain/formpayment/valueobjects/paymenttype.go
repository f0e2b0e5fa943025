package valueobjects

import "fmt"

// PaymentType represents the payment mode of a form field. The set is closed:
// the processor dispatches with an exhaustive switch, so adding a new type is
// a compile-time visible change.
type PaymentType string

const (
	// PaymentTypeSubscription creates a recurring billing plan at the provider on save.
	PaymentTypeSubscription PaymentType = "subscription"
	// PaymentTypeDonation captures a provider-side donation configuration on save.
	PaymentTypeDonation PaymentType = "donation"
	// PaymentTypeDonationButton references a pre-built hosted donation button.
	PaymentTypeDonationButton PaymentType = "donation_button"
	// PaymentTypeOneTime is resolved entirely at checkout time.
	PaymentTypeOneTime PaymentType = "one_time"
	// PaymentTypeProductWise is resolved entirely at checkout time.
	PaymentTypeProductWise PaymentType = "product_wise"
	// PaymentTypeCustomAmount is resolved entirely at checkout time.
	PaymentTypeCustomAmount PaymentType = "custom_amount"
)

// IsValid checks if the payment type is one of the known types
func (pt PaymentType) IsValid() bool {
	switch pt {
	case PaymentTypeSubscription, PaymentTypeDonation, PaymentTypeDonationButton,
		PaymentTypeOneTime, PaymentTypeProductWise, PaymentTypeCustomAmount:
		return true
	}
	return false
}

// String returns the string representation of the payment type
func (pt PaymentType) String() string {
	return string(pt)
}

// NewPaymentType creates a new PaymentType from a string
func NewPaymentType(s string) (PaymentType, error) {
	pt := PaymentType(s)
	if !pt.IsValid() {
		return "", fmt.Errorf("invalid payment type: %s", s)
	}
	return pt, nil
}

// RequiresRemotePlan reports whether saving a field of this type creates or
// updates a remote provider object. Checkout-time types never do.
func (pt PaymentType) RequiresRemotePlan() bool {
	switch pt {
	case PaymentTypeSubscription, PaymentTypeDonation, PaymentTypeDonationButton:
		return true
	}
	return false
}

// IsSubscription checks if the payment type is subscription
func (pt PaymentType) IsSubscription() bool {
	return pt == PaymentTypeSubscription
}

// IsDonation checks if the payment type is donation or donation_button
func (pt PaymentType) IsDonation() bool {
	return pt == PaymentTypeDonation || pt == PaymentTypeDonationButton
}

// AllPaymentTypes returns all known payment types in dispatch order.
func AllPaymentTypes() []PaymentType {
	return []PaymentType{
		PaymentTypeSubscription,
		PaymentTypeDonation,
		PaymentTypeDonationButton,
		PaymentTypeOneTime,
		PaymentTypeProductWise,
		PaymentTypeCustomAmount,
	}
}
