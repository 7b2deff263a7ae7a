package bsp

import (
	rbt "github.com/emirpasic/gods/trees/redblacktree"
)

// planeKey canonically identifies the infinite line underlying a group of
// colinear segs (§3 "Plane bucket"): a reduced direction vector plus the
// line's perpendicular offset. Two segs on the same infinite line, however
// their own endpoints or directions differ, produce the same key.
type planeKey struct {
	dx, dy int64
	offset float64
}

func planeComparator(a, b interface{}) int {
	ka, kb := a.(planeKey), b.(planeKey)
	if ka.dx != kb.dx {
		if ka.dx < kb.dx {
			return -1
		}
		return 1
	}
	if ka.dy != kb.dy {
		if ka.dy < kb.dy {
			return -1
		}
		return 1
	}
	if ka.offset != kb.offset {
		if ka.offset < kb.offset {
			return -1
		}
		return 1
	}
	return 0
}

// PlaneRegistry assigns a dense integer planenum to each distinct infinite
// line seen during the pre-pass (§4.1), so "is this seg on the candidate
// splitter's line" becomes an integer compare during chooser/splitter
// work. It is populated once per build (groupSegPlanes) and then only
// read, so — unlike the event tree (§4.3) — a generic ordered container is
// a fine fit: see DESIGN.md for why this is gods/redblacktree and the
// event tree is not.
type PlaneRegistry struct {
	tree *rbt.Tree
	next int32
}

// NewPlaneRegistry returns an empty registry.
func NewPlaneRegistry() *PlaneRegistry {
	return &PlaneRegistry{tree: rbt.NewWith(planeComparator)}
}

// Lookup returns the planenum for the infinite line through (v1x,v1y) and
// (v2x,v2y), registering a new one if this is the first seg seen on it.
// front reports whether this seg runs in the plane's canonical direction
// (PlaneFront in Seg).
func (r *PlaneRegistry) Lookup(v1x, v1y, v2x, v2y Fixed) (planenum int32, front bool) {
	dx, dy, offset, reversed := canonicalPlane(v1x, v1y, v2x, v2y)
	key := planeKey{dx: dx, dy: dy, offset: offset}
	if val, ok := r.tree.Get(key); ok {
		return val.(int32), !reversed
	}
	pn := r.next
	r.next++
	r.tree.Put(key, pn)
	return pn, !reversed
}

// Count returns the number of distinct planes registered so far.
func (r *PlaneRegistry) Count() int32 {
	return r.next
}

func canonicalPlane(v1x, v1y, v2x, v2y Fixed) (dx, dy int64, offset float64, reversed bool) {
	dx = int64(v2x) - int64(v1x)
	dy = int64(v2y) - int64(v1y)
	g := gcdInt64(abs64(dx), abs64(dy))
	if g == 0 {
		g = 1
	}
	dx /= g
	dy /= g
	reversed = dx < 0 || (dx == 0 && dy < 0)
	if reversed {
		dx, dy = -dx, -dy
	}
	offset = float64(dy)*float64(v1x) - float64(dx)*float64(v1y)
	return dx, dy, offset, reversed
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func gcdInt64(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
