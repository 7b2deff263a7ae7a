package bsp

import "testing"

func TestVertexMapSelectExact(t *testing.T) {
	vertices := []Vertex{
		{X: FixedFromInt(0), Y: FixedFromInt(0), SegsOut: NoSeg, SegsIn: NoSeg},
		{X: FixedFromInt(100), Y: FixedFromInt(100), SegsOut: NoSeg, SegsIn: NoSeg},
	}
	vm := NewVertexMap(&vertices, FixedFromInt(0), FixedFromInt(0), FixedFromInt(100), FixedFromInt(100))

	if h := vm.SelectExact(FixedFromInt(0), FixedFromInt(0)); h != 0 {
		t.Errorf("SelectExact(0,0) = %v, want handle 0", h)
	}
	if h := vm.SelectExact(FixedFromInt(50), FixedFromInt(50)); h != NoVertex {
		t.Errorf("SelectExact(50,50) = %v, want NoVertex", h)
	}
}

func TestVertexMapSelectCloseReusesNearby(t *testing.T) {
	vertices := []Vertex{
		{X: FixedFromInt(10), Y: FixedFromInt(10), SegsOut: NoSeg, SegsIn: NoSeg},
	}
	vm := NewVertexMap(&vertices, FixedFromInt(0), FixedFromInt(0), FixedFromInt(20), FixedFromInt(20))

	h := vm.SelectClose(FixedFromInt(10)+2, FixedFromInt(10)-2)
	if h != 0 {
		t.Errorf("SelectClose within epsilon = %v, want reused handle 0", h)
	}
	if len(vertices) != 1 {
		t.Errorf("SelectClose within epsilon should not append, len = %d", len(vertices))
	}
}

func TestVertexMapSelectCloseAppendsWhenFar(t *testing.T) {
	vertices := []Vertex{
		{X: FixedFromInt(10), Y: FixedFromInt(10), SegsOut: NoSeg, SegsIn: NoSeg},
	}
	vm := NewVertexMap(&vertices, FixedFromInt(0), FixedFromInt(0), FixedFromInt(200), FixedFromInt(200))

	h := vm.SelectClose(FixedFromInt(100), FixedFromInt(100))
	if h == 0 {
		t.Error("SelectClose far from every vertex should append a new one")
	}
	if len(vertices) != 2 {
		t.Errorf("expected a new vertex to be appended, len = %d", len(vertices))
	}
}
