package bsp

import "testing"

func TestEventTreeInsertOrder(t *testing.T) {
	tr := NewEventTree()
	tr.Insert(5, 0, NoSeg)
	tr.Insert(1, 1, NoSeg)
	tr.Insert(3, 2, NoSeg)

	var got []VertexHandle
	tr.InOrder(func(h eventHandle) {
		_, v, _ := tr.Event(h)
		got = append(got, v)
	})

	want := []VertexHandle{1, 2, 0}
	if len(got) != len(want) {
		t.Fatalf("InOrder returned %d events, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("InOrder[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestEventTreeDeleteAndReuse(t *testing.T) {
	tr := NewEventTree()
	a := tr.Insert(1, 0, NoSeg)
	b := tr.Insert(2, 1, NoSeg)
	tr.Delete(a)
	if tr.Len() != 1 {
		t.Fatalf("Len after delete = %d, want 1", tr.Len())
	}
	_, v, _ := tr.Event(b)
	if v != 1 {
		t.Fatalf("remaining event's vertex = %v, want 1", v)
	}

	// Reinsert: the freed node should be recycled, not leaked.
	nodesBefore := len(tr.nodes)
	tr.Insert(3, 2, NoSeg)
	if len(tr.nodes) != nodesBefore {
		t.Errorf("Insert after Delete grew the arena (%d -> %d); expected free-list reuse", nodesBefore, len(tr.nodes))
	}
}

func TestEventTreeClearResetsButKeepsCapacity(t *testing.T) {
	tr := NewEventTree()
	for i := 0; i < 10; i++ {
		tr.Insert(float64(i), VertexHandle(i), NoSeg)
	}
	nodesBefore := len(tr.nodes)
	tr.Clear()
	if !tr.Empty() {
		t.Error("tree should be empty after Clear")
	}
	tr.Insert(0, 0, NoSeg)
	if len(tr.nodes) != nodesBefore {
		t.Errorf("Insert after Clear grew the arena (%d -> %d); expected free-list reuse", nodesBefore, len(tr.nodes))
	}
}

func TestEventTreeMinAndSuccessor(t *testing.T) {
	tr := NewEventTree()
	tr.Insert(10, 0, NoSeg)
	tr.Insert(2, 1, NoSeg)
	tr.Insert(7, 2, NoSeg)

	m := tr.Min()
	_, v, _ := tr.Event(m)
	if v != 1 {
		t.Fatalf("Min vertex = %v, want 1", v)
	}
	succ := tr.Successor(m)
	_, v, _ = tr.Event(succ)
	if v != 2 {
		t.Fatalf("Successor(Min) vertex = %v, want 2", v)
	}
}

func TestEventTreeFindEvent(t *testing.T) {
	tr := NewEventTree()
	tr.Insert(4, 9, NoSeg)
	h := tr.FindEvent(4)
	if h == nilEvent {
		t.Fatal("FindEvent(4) returned nilEvent")
	}
	_, v, _ := tr.Event(h)
	if v != 9 {
		t.Errorf("FindEvent(4) vertex = %v, want 9", v)
	}
	if tr.FindEvent(99) != nilEvent {
		t.Error("FindEvent of a missing key should return nilEvent")
	}
}
