package valueobjects

import "fmt"

// Money is an amount in the smallest currency unit plus an ISO currency code.
// Provider payloads want decimal strings; Format produces them.
type Money struct {
	amountInCents int64
	currency      string
}

func NewMoney(amountInCents int64, currency string) Money {
	if currency == "" {
		currency = "USD"
	}
	return Money{
		amountInCents: amountInCents,
		currency:      currency,
	}
}

// ZeroMoney returns a zero amount in the given currency.
func ZeroMoney(currency string) Money {
	return NewMoney(0, currency)
}

func (m Money) AmountInCents() int64 {
	return m.amountInCents
}

func (m Money) Currency() string {
	return m.currency
}

func (m Money) Equals(other Money) bool {
	return m.amountInCents == other.amountInCents && m.currency == other.currency
}

func (m Money) IsPositive() bool {
	return m.amountInCents > 0
}

func (m Money) IsNegative() bool {
	return m.amountInCents < 0
}

func (m Money) IsZero() bool {
	return m.amountInCents == 0
}

// Format returns the decimal string form used in provider payloads, e.g. "10.00".
func (m Money) Format() string {
	cents := m.amountInCents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Format(), m.currency)
}
