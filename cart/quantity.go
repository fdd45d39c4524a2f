package cart

import "math"

const (
	MinQuantity = 1
	MaxQuantity = 99
)

// ClampQuantity bounds q to [MinQuantity, MaxQuantity].
func ClampQuantity(q int) int {
	if q < MinQuantity {
		return MinQuantity
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}

// NormalizeQuantity floors a client-supplied number and clamps it. NaN maps to MinQuantity.
func NormalizeQuantity(v float64) int {
	if math.IsNaN(v) {
		return MinQuantity
	}
	v = math.Floor(v)
	if v < MinQuantity {
		return MinQuantity
	}
	if v > MaxQuantity {
		return MaxQuantity
	}
	return int(v)
}

// QuantityDelta floors a client-supplied amount to add to a line without clamping it,
// so the bound applies to the sum. It is capped at ±MaxQuantity; NaN maps to 0.
func QuantityDelta(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	v = math.Floor(v)
	if v > MaxQuantity {
		return MaxQuantity
	}
	if v < -MaxQuantity {
		return -MaxQuantity
	}
	return int(v)
}

// addQuantity sums an existing (already clamped) quantity with a requested delta
// without overflowing on absurd deltas.
func addQuantity(existing, delta int) int {
	if delta > MaxQuantity {
		delta = MaxQuantity
	}
	if delta < -MaxQuantity {
		delta = -MaxQuantity
	}
	return ClampQuantity(existing + delta)
}
