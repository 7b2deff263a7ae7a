package bsp

// This file holds the append-only seg/vertex arena operations (§3 C3):
// handles are issued once and never reused or mutated out from under a
// caller; a "split" always creates new handles rather than rewriting an
// endpoint in place.

// addVertex appends a new vertex and returns its handle.
func (b *Builder[Sector]) addVertex(x, y Fixed) VertexHandle {
	h := VertexHandle(len(b.vertices))
	b.vertices = append(b.vertices, Vertex{X: x, Y: y, SegsOut: NoSeg, SegsIn: NoSeg})
	return h
}

// addSeg appends a new seg and threads it onto both vertices' per-vertex
// lists. It does not add the seg to any working set; callers do that
// explicitly by chaining Next.
func (b *Builder[Sector]) addSeg(s Seg[Sector]) SegHandle {
	h := SegHandle(len(b.segs))
	s.Partner = NoSeg
	s.Next = NoSeg
	s.NextForV1 = NoSeg
	s.NextForV2 = NoSeg
	b.segs = append(b.segs, s)
	b.linkToVertex1(h)
	b.linkToVertex2(h)
	return h
}

func (b *Builder[Sector]) seg(h SegHandle) *Seg[Sector] {
	return &b.segs[h]
}

func (b *Builder[Sector]) vertex(h VertexHandle) *Vertex {
	return &b.vertices[h]
}

func (b *Builder[Sector]) linkToVertex1(h SegHandle) {
	v := b.seg(h).V1
	b.seg(h).NextForV1 = b.vertex(v).SegsOut
	b.vertex(v).SegsOut = h
}

func (b *Builder[Sector]) linkToVertex2(h SegHandle) {
	v := b.seg(h).V2
	b.seg(h).NextForV2 = b.vertex(v).SegsIn
	b.vertex(v).SegsIn = h
}

// removeFromVertex1 unlinks h from its V1's SegsOut list (O(list length),
// acceptable given the handful of segs meeting at any one vertex, §4.4).
func (b *Builder[Sector]) removeFromVertex1(h SegHandle) {
	v := b.seg(h).V1
	cur := b.vertex(v).SegsOut
	if cur == h {
		b.vertex(v).SegsOut = b.seg(h).NextForV1
		return
	}
	for cur != NoSeg {
		next := b.seg(cur).NextForV1
		if next == h {
			b.seg(cur).NextForV1 = b.seg(h).NextForV1
			return
		}
		cur = next
	}
}

// removeFromVertex2 unlinks h from its V2's SegsIn list.
func (b *Builder[Sector]) removeFromVertex2(h SegHandle) {
	v := b.seg(h).V2
	cur := b.vertex(v).SegsIn
	if cur == h {
		b.vertex(v).SegsIn = b.seg(h).NextForV2
		return
	}
	for cur != NoSeg {
		next := b.seg(cur).NextForV2
		if next == h {
			b.seg(cur).NextForV2 = b.seg(h).NextForV2
			return
		}
		cur = next
	}
}

// workingSet is a singly linked list of seg handles threaded through
// Seg.Next (§4.4): the set currently being partitioned.
type workingSet struct {
	head  SegHandle
	count int32
}

func (b *Builder[Sector]) newWorkingSet() workingSet {
	return workingSet{head: NoSeg}
}

// pushSeg prepends h to ws, threading through Seg.Next.
func (b *Builder[Sector]) pushSeg(ws *workingSet, h SegHandle) {
	b.seg(h).Next = ws.head
	ws.head = h
	ws.count++
}

// forEach walks ws in list order, calling fn with each handle. forEach
// captures each handle's Next before calling fn, so fn is free to reassign
// Next to push the handle onto a *different* set.
func (b *Builder[Sector]) forEach(ws workingSet, fn func(h SegHandle)) {
	h := ws.head
	for h != NoSeg {
		next := b.seg(h).Next
		fn(h)
		h = next
	}
}

// toSlice materializes ws as a slice of handles, in list order.
func (b *Builder[Sector]) toSlice(ws workingSet) []SegHandle {
	out := make([]SegHandle, 0, ws.count)
	b.forEach(ws, func(h SegHandle) { out = append(out, h) })
	return out
}
