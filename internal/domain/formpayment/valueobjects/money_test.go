package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMoneyDefaultsCurrency(t *testing.T) {
	m := NewMoney(1500, "")
	assert.Equal(t, "USD", m.Currency())
	assert.Equal(t, int64(1500), m.AmountInCents())
}

func TestMoneyFormat(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{50, "0.50"},
		{100, "1.00"},
		{1000, "10.00"},
		{1099, "10.99"},
		{123456, "1234.56"},
		{-1, "-0.01"},
		{-2500, "-25.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NewMoney(tt.cents, "USD").Format())
	}
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "10.50 EUR", NewMoney(1050, "EUR").String())
}

func TestMoneyEquals(t *testing.T) {
	assert.True(t, NewMoney(100, "USD").Equals(NewMoney(100, "USD")))
	assert.False(t, NewMoney(100, "USD").Equals(NewMoney(101, "USD")))
	assert.False(t, NewMoney(100, "USD").Equals(NewMoney(100, "EUR")))
}

func TestMoneySignPredicates(t *testing.T) {
	zero := ZeroMoney("USD")
	assert.True(t, zero.IsZero())
	assert.False(t, zero.IsPositive())
	assert.False(t, zero.IsNegative())

	pos := NewMoney(1, "USD")
	assert.True(t, pos.IsPositive())
	assert.False(t, pos.IsZero())

	neg := NewMoney(-1, "USD")
	assert.True(t, neg.IsNegative())
	assert.False(t, neg.IsPositive())
}
