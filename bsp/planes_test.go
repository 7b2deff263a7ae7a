package bsp

import "testing"

func TestPlaneRegistrySameLineSamePlanenum(t *testing.T) {
	r := NewPlaneRegistry()
	pn1, front1 := r.Lookup(FixedFromInt(0), FixedFromInt(0), FixedFromInt(10), FixedFromInt(0))
	pn2, front2 := r.Lookup(FixedFromInt(2), FixedFromInt(0), FixedFromInt(8), FixedFromInt(0))
	if pn1 != pn2 {
		t.Errorf("two colinear co-directional segs got different planenums: %d, %d", pn1, pn2)
	}
	if front1 != front2 {
		t.Errorf("two co-directional segs disagreed on PlaneFront: %v, %v", front1, front2)
	}
}

func TestPlaneRegistryOppositeDirectionSamePlaneDifferentFront(t *testing.T) {
	r := NewPlaneRegistry()
	_, front1 := r.Lookup(FixedFromInt(0), FixedFromInt(0), FixedFromInt(10), FixedFromInt(0))
	pn2, front2 := r.Lookup(FixedFromInt(10), FixedFromInt(0), FixedFromInt(0), FixedFromInt(0))
	if pn2 != 0 {
		t.Errorf("reversed seg on the same line should share planenum 0, got %d", pn2)
	}
	if front1 == front2 {
		t.Error("opposite-direction segs on the same line should disagree on PlaneFront")
	}
}

func TestPlaneRegistryDistinctLinesDistinctPlanenums(t *testing.T) {
	r := NewPlaneRegistry()
	pn1, _ := r.Lookup(FixedFromInt(0), FixedFromInt(0), FixedFromInt(10), FixedFromInt(0))
	pn2, _ := r.Lookup(FixedFromInt(0), FixedFromInt(0), FixedFromInt(0), FixedFromInt(10))
	if pn1 == pn2 {
		t.Error("perpendicular lines through the same point should get distinct planenums")
	}
	if r.Count() != 2 {
		t.Errorf("Count() = %d, want 2", r.Count())
	}
}
