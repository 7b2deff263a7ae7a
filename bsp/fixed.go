package bsp

// Fixed is a 32-bit signed fixed-point number with 16 fractional bits, the
// coordinate unit every vertex, splitter and bounding box is stored in.
// Classification math promotes Fixed to float64; results are rounded back
// to Fixed only at the edges (new vertices, output bboxes).
type Fixed int32

// FracBits is the number of fractional bits in a Fixed value.
const FracBits = 16

// Unit is one whole world unit in Fixed.
const Unit Fixed = 1 << FracBits

// FixedFromInt converts a whole-unit integer to Fixed.
func FixedFromInt(n int) Fixed {
	return Fixed(n << FracBits)
}

// FixedFromFloat converts a float64 world coordinate to Fixed, rounding to
// the nearest representable value.
func FixedFromFloat(f float64) Fixed {
	if f >= 0 {
		return Fixed(f*float64(Unit) + 0.5)
	}
	return Fixed(f*float64(Unit) - 0.5)
}

// Float returns the Fixed value as a float64 world coordinate.
func (f Fixed) Float() float64 {
	return float64(f) / float64(Unit)
}

// Angle is a binary angle measure: a full circle is 1<<32, so wraparound is
// implicit two's-complement arithmetic on uint32.
type Angle uint32

// AngleFromRadians converts a radian angle to an Angle, wrapping modulo a
// full circle.
func AngleFromRadians(rad float64) Angle {
	const twoPi = 6.283185307179586476925286766559
	for rad < 0 {
		rad += twoPi
	}
	frac := rad / twoPi
	frac -= float64(int64(frac))
	return Angle(frac * 4294967296.0)
}

// clampInt16 clamps v to the range a legacy int16 bounding box field can
// hold, per spec.md §4.8's classic-node output requirement.
func clampInt16(v int32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
