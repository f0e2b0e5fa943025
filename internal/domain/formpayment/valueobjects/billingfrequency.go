package valueobjects

import (
	"fmt"
	"strings"
)

// BillingFrequency represents the unit of a subscription billing cycle
type BillingFrequency string

const (
	BillingFrequencyDay   BillingFrequency = "DAY"
	BillingFrequencyWeek  BillingFrequency = "WEEK"
	BillingFrequencyMonth BillingFrequency = "MONTH"
	BillingFrequencyYear  BillingFrequency = "YEAR"
)

// IsValid checks if the billing frequency is valid
func (bf BillingFrequency) IsValid() bool {
	return bf == BillingFrequencyDay || bf == BillingFrequencyWeek ||
		bf == BillingFrequencyMonth || bf == BillingFrequencyYear
}

// String returns the string representation of the billing frequency
func (bf BillingFrequency) String() string {
	return string(bf)
}

// NewBillingFrequency creates a new BillingFrequency from a string.
// Input is normalized to upper case so "month" and "MONTH" are equivalent.
func NewBillingFrequency(s string) (BillingFrequency, error) {
	bf := BillingFrequency(strings.ToUpper(strings.TrimSpace(s)))
	if !bf.IsValid() {
		return "", fmt.Errorf("invalid billing frequency: %s, must be 'DAY', 'WEEK', 'MONTH', or 'YEAR'", s)
	}
	return bf, nil
}

// MaxBillingInterval returns the largest billing interval the provider
// accepts for this frequency (e.g. at most 12 months per cycle).
func (bf BillingFrequency) MaxBillingInterval() int {
	switch bf {
	case BillingFrequencyDay:
		return 365
	case BillingFrequencyWeek:
		return 52
	case BillingFrequencyMonth:
		return 12
	case BillingFrequencyYear:
		return 1
	}
	return 0
}
