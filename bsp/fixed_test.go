package bsp

import (
	"math"
	"testing"
)

func TestFixedFromIntRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, -1, 1024, -1024, 32767} {
		f := FixedFromInt(n)
		if got := f.Float(); got != float64(n) {
			t.Errorf("FixedFromInt(%d).Float() = %v, want %v", n, got, n)
		}
	}
}

func TestFixedFromFloatRounding(t *testing.T) {
	cases := []struct {
		in   float64
		want Fixed
	}{
		{0, 0},
		{1, Unit},
		{-1, -Unit},
		{0.5, Fixed(Unit / 2)},
		{-0.5, -Fixed(Unit / 2)},
	}
	for _, c := range cases {
		if got := FixedFromFloat(c.in); got != c.want {
			t.Errorf("FixedFromFloat(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestAngleFromRadiansWraps(t *testing.T) {
	a := AngleFromRadians(0)
	b := AngleFromRadians(2 * math.Pi)
	if a != b {
		t.Errorf("AngleFromRadians(0) = %v, AngleFromRadians(2pi) = %v, want equal", a, b)
	}

	neg := AngleFromRadians(-math.Pi / 2)
	pos := AngleFromRadians(3 * math.Pi / 2)
	if neg != pos {
		t.Errorf("negative angle %v did not wrap to match %v", neg, pos)
	}
}

func TestClampInt16(t *testing.T) {
	cases := []struct {
		in   int32
		want int16
	}{
		{0, 0},
		{32767, 32767},
		{32768, 32767},
		{-32768, -32768},
		{-32769, -32768},
		{1000000, 32767},
	}
	for _, c := range cases {
		if got := clampInt16(c.in); got != c.want {
			t.Errorf("clampInt16(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}
