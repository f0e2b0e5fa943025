package formpayment

import (
	vo "github.com/MV-Clouds/quickform-payments/internal/domain/formpayment/valueobjects"
)

const (
	// defaultTierSpan is the quantity span assigned to a tier whose ending
	// quantity is absent or not greater than its starting quantity.
	defaultTierSpan = 9
	// unboundedFallbackSpan is used when a non-last tier unexpectedly carries
	// an unbounded ending and the next tier needs a starting quantity.
	unboundedFallbackSpan = 10
)

// PriceTier is one quantity range of a tiered subscription price table.
// EndingQuantity nil means unbounded; only the last tier may be unbounded.
// StartingQuantity is never operator-editable, it is always derived by
// Resequence.
type PriceTier struct {
	StartingQuantity uint
	EndingQuantity   *uint
	Price            vo.Money
}

// IsUnbounded reports whether the tier has no upper quantity limit.
func (t PriceTier) IsUnbounded() bool {
	return t.EndingQuantity == nil
}

// BoundedEnd returns the ending quantity and true when bounded.
func (t PriceTier) BoundedEnd() (uint, bool) {
	if t.EndingQuantity == nil {
		return 0, false
	}
	return *t.EndingQuantity, true
}

// Resequence normalizes a tier list so that the tiering invariants hold:
// the first tier starts at 1, every later tier starts right after the
// previous tier's end, the last tier is unbounded, and every bounded end is
// strictly greater than its own start. It is total: any finite input,
// including inverted or missing endings, yields a valid list. The input
// slice is not mutated.
func Resequence(tiers []PriceTier) []PriceTier {
	if len(tiers) == 0 {
		return []PriceTier{}
	}

	out := make([]PriceTier, len(tiers))
	copy(out, tiers)

	for i := range out {
		if i == 0 {
			out[i].StartingQuantity = 1
		} else if end, ok := out[i-1].BoundedEnd(); ok {
			out[i].StartingQuantity = end + 1
		} else {
			// The previous tier should never be unbounded unless it is last;
			// fall back to a fixed span so the list stays well formed.
			out[i].StartingQuantity = out[i-1].StartingQuantity + unboundedFallbackSpan
		}

		last := i == len(out)-1
		if last {
			out[i].EndingQuantity = nil
			continue
		}

		if end, ok := out[i].BoundedEnd(); !ok || end <= out[i].StartingQuantity {
			span := out[i].StartingQuantity + defaultTierSpan
			out[i].EndingQuantity = &span
		}
	}

	return out
}

// AppendTier adds a tier priced at price after the current last tier and
// resequences. The new tier becomes the unbounded last tier.
func AppendTier(tiers []PriceTier, price vo.Money) []PriceTier {
	next := append(append([]PriceTier{}, tiers...), PriceTier{Price: price})
	return Resequence(next)
}

// RemoveTier deletes the tier at index and resequences the remainder.
// An out-of-range index leaves the list unchanged apart from resequencing.
func RemoveTier(tiers []PriceTier, index int) []PriceTier {
	if index < 0 || index >= len(tiers) {
		return Resequence(tiers)
	}
	next := append(append([]PriceTier{}, tiers[:index]...), tiers[index+1:]...)
	return Resequence(next)
}

// SetTierEnding edits the ending quantity of the tier at index and
// propagates the change to all subsequent tiers. Edits to the last tier are
// absorbed by resequencing since the last tier is always unbounded.
func SetTierEnding(tiers []PriceTier, index int, ending uint) []PriceTier {
	if index < 0 || index >= len(tiers) {
		return Resequence(tiers)
	}
	next := make([]PriceTier, len(tiers))
	copy(next, tiers)
	e := ending
	next[index].EndingQuantity = &e
	return Resequence(next)
}

// TiersValid reports whether the list already satisfies the tiering
// invariants. Used by validation; the sequencer never needs it.
func TiersValid(tiers []PriceTier) bool {
	for i, t := range tiers {
		if i == 0 && t.StartingQuantity != 1 {
			return false
		}
		if i > 0 {
			prevEnd, ok := tiers[i-1].BoundedEnd()
			if !ok || t.StartingQuantity != prevEnd+1 {
				return false
			}
		}
		if i == len(tiers)-1 {
			if !t.IsUnbounded() {
				return false
			}
		} else if end, ok := t.BoundedEnd(); !ok || end <= t.StartingQuantity {
			return false
		}
	}
	return true
}
