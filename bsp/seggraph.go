package bsp

// setPartner links a and b as opposite-facing segs across the same
// geometric segment (I2): each must point at the other, and the new pair
// replaces whatever partner either used to have.
func (b *Builder[Sector]) setPartner(a, bSeg SegHandle) {
	b.seg(a).Partner = bSeg
	if bSeg != NoSeg {
		b.seg(bSeg).Partner = a
	}
}

// isZeroLength reports whether v1 and v2 are within VertexEpsilon of each
// other on both axes — the condition under which a split's product must
// be dropped instead of kept (§4.6 failure modes).
func (b *Builder[Sector]) isZeroLength(v1, v2 VertexHandle) bool {
	a, c := b.vertex(v1), b.vertex(v2)
	dx, dy := a.X-c.X, a.Y-c.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx <= VertexEpsilon && dy <= VertexEpsilon
}

// dropSeg removes h from the per-vertex lists it was threaded onto and
// marks it dropped; it stays in the arena (append-only, §3) but is excised
// from every list a working set could reach it through.
func (b *Builder[Sector]) dropSeg(h SegHandle) {
	b.removeFromVertex1(h)
	b.removeFromVertex2(h)
	b.seg(h).dropped = true
	b.report.DroppedZeroLengthSegs++
}

// markLoop walks the chain of segs sharing loopnum's sector, starting at
// first, following "the next seg leaving the vertex this one arrives at
// that shares a front sector" (§4.4). Segs tagged with a nonzero loopnum
// may not be cut by a splitter unless the chooser's honorNoSplit pass
// finds nothing else (§4.5), preventing gratuitous sector splits.
func (b *Builder[Sector]) markLoop(first SegHandle, loopnum int32) {
	cur := first
	for i := 0; i < len(b.segs)+1; i++ {
		if b.seg(cur).LoopNum != 0 {
			return
		}
		b.seg(cur).LoopNum = loopnum
		next := b.loopContinuation(cur)
		if next == NoSeg || next == first {
			return
		}
		cur = next
	}
}

// loopContinuation finds the seg leaving h's endpoint that continues the
// same sector's boundary, preferring a plain vertex-adjacency match and
// falling back to the partner's own continuation at a T-junction.
func (b *Builder[Sector]) loopContinuation(h SegHandle) SegHandle {
	seg := b.seg(h)
	v2 := seg.V2
	for s := b.vertex(v2).SegsOut; s != NoSeg; s = b.seg(s).NextForV1 {
		if s == h || b.seg(s).dropped {
			continue
		}
		if b.seg(s).FrontSector == seg.FrontSector {
			return s
		}
	}
	if seg.Partner != NoSeg {
		p := b.seg(seg.Partner)
		for s := b.vertex(p.V2).SegsOut; s != NoSeg; s = b.seg(s).NextForV1 {
			if s == h || s == seg.Partner || b.seg(s).dropped {
				continue
			}
			if b.seg(s).FrontSector == seg.FrontSector {
				return s
			}
		}
	}
	return NoSeg
}

// markAllLoops tags every sidedef-carrying seg in the level with a loop
// number, used once right after the initial segs are created.
func (b *Builder[Sector]) markAllLoops() {
	var next int32 = 1
	for h := range b.segs {
		s := &b.segs[h]
		if s.Linedef == NoLinedef || s.LoopNum != 0 || s.dropped {
			continue
		}
		b.markLoop(SegHandle(h), next)
		next++
	}
}
