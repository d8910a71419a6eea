package geom

import "math"

// Clamp returns v limited to the inclusive range [lo, hi].
// Callers must ensure lo <= hi.
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SatAdd adds a and b, saturating at the int range instead of wrapping.
// Extent accumulation uses this so a misbehaving measurer cannot wrap a
// running offset into negative space.
func SatAdd(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	default:
		return a + b
	}
}

// SatMul multiplies a and b, saturating at the int range instead of wrapping.
// Totals of the count * estimatedExtent kind go through here.
func SatMul(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	sameSign := (a > 0) == (b > 0)
	if a > 0 && b > 0 && a > math.MaxInt/b {
		return math.MaxInt
	}
	if a < 0 && b < 0 && a < math.MaxInt/b {
		return math.MaxInt
	}
	if !sameSign {
		// One negative operand: the product must stay above MinInt.
		if a > 0 && b < math.MinInt/a {
			return math.MinInt
		}
		if b > 0 && a < math.MinInt/b {
			return math.MinInt
		}
	}
	return a * b
}
