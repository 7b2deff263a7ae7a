package bsp

// shapeOutput implements §4.8: linearize the tree built by buildTreeTop
// into either classic or GL-nodes records, depending on b.makeGL.
func (b *Builder[Sector]) shapeOutput(root Child, containers []PolyContainer) Output[Sector] {
	out := Output[Sector]{PolyAnchors: containers}

	out.Vertices = make([]OutputVertex, len(b.vertices))
	for i, v := range b.vertices {
		out.Vertices[i] = OutputVertex{X: v.X, Y: v.Y}
	}

	out.Nodes = make([]OutputNode, len(b.nodes))
	for i, n := range b.nodes {
		out.Nodes[i] = OutputNode{
			X: n.X, Y: n.Y, Dx: n.Dx, Dy: n.Dy,
			BBox:  [2][4]int16{worldBBox(n.FrontBBox), worldBBox(n.BackBBox)},
			Child: [2]uint32{encodeChild(n.FrontChild), encodeChild(n.BackChild)},
		}
	}

	finalSubsectors := make([]OutputSubsector, len(b.ssSegOrder))
	if b.makeGL {
		out.GLSegs = b.shapeGLSegs(finalSubsectors)
	} else {
		out.ClassicSegs = b.shapeClassicSegs(finalSubsectors)
	}
	out.Subsectors = finalSubsectors

	return out
}

// shapeClassicSegs drops minisegs (classic builds never create any, since
// addMiniSegs only runs under b.makeGL, but the filter is kept so this
// function stays correct if ever handed a GL-shaped seg order) and recomputes
// each subsector's (firstSeg, numSegs) into the emitted slice.
func (b *Builder[Sector]) shapeClassicSegs(finalSubsectors []OutputSubsector) []OutputSeg {
	var segs []OutputSeg
	for idx, handles := range b.ssSegOrder {
		first := int32(len(segs))
		for _, h := range handles {
			s := b.seg(h)
			if s.Linedef == NoLinedef {
				continue
			}
			segs = append(segs, OutputSeg{
				V1: uint32(s.V1), V2: uint32(s.V2),
				Angle: s.Angle, Linedef: s.Linedef, Side: b.sideIndexOf(s), Offset: s.Offset,
			})
		}
		finalSubsectors[idx] = OutputSubsector{FirstSeg: uint32(first), NumSegs: uint32(len(segs)) - uint32(first)}
	}
	return segs
}

// shapeGLSegs closes every subsector's seg list into a single CCW loop
// (synthesizing a closing connector if one doesn't already chain shut) and
// emits GL seg records with partner indices resolved against the final,
// flattened seg array.
func (b *Builder[Sector]) shapeGLSegs(finalSubsectors []OutputSubsector) []OutputGLSeg {
	ordered := make([][]SegHandle, len(b.ssSegOrder))
	for idx, handles := range b.ssSegOrder {
		ordered[idx] = b.orderClosedLoop(handles)
	}

	outIdx := make(map[SegHandle]int32)
	var allHandles []SegHandle
	for idx, handles := range ordered {
		first := int32(len(allHandles))
		for _, h := range handles {
			outIdx[h] = int32(len(allHandles))
			allHandles = append(allHandles, h)
		}
		finalSubsectors[idx] = OutputSubsector{FirstSeg: uint32(first), NumSegs: uint32(len(allHandles)) - uint32(first)}
	}

	segs := make([]OutputGLSeg, len(allHandles))
	for i, h := range allHandles {
		s := b.seg(h)
		partner := int32(-1)
		if s.Partner != NoSeg {
			if p, ok := outIdx[s.Partner]; ok {
				partner = p
			}
		}
		segs[i] = OutputGLSeg{
			V1: uint32(s.V1), V2: uint32(s.V2),
			Linedef: s.Linedef, Side: b.sideIndexOf(s), Partner: partner,
		}
	}
	return segs
}

// orderClosedLoop walks handles (already in ascending-handle order from
// makeSubsector) by V2->V1 adjacency into a single chain. Where the chain
// breaks, a synthetic connector to the next unchained seg is inserted; if
// the chain doesn't come back around to its own start — or has fewer than 3
// segs — a synthetic closing seg is appended. A subsector that needed
// either is counted once in the Report's UnclosableSubsectors (§4.8, §7).
func (b *Builder[Sector]) orderClosedLoop(handles []SegHandle) []SegHandle {
	if len(handles) == 0 {
		return handles
	}
	remaining := append([]SegHandle(nil), handles[1:]...)
	ordered := make([]SegHandle, 0, len(handles))
	ordered = append(ordered, handles[0])
	cur := handles[0]
	closed := true

	for len(remaining) > 0 {
		curV2 := b.seg(cur).V2
		idx := -1
		for i, h := range remaining {
			if b.seg(h).V1 == curV2 {
				idx = i
				break
			}
		}
		if idx == -1 {
			closed = false
			nextV1 := b.seg(remaining[0]).V1
			ordered = append(ordered, b.addSeg(Seg[Sector]{
				V1: curV2, V2: nextV1, Linedef: NoLinedef, Sidedef: NoSidedef,
				FrontSector: b.seg(ordered[0]).FrontSector,
				Angle:       segAngle(*b.vertex(curV2), *b.vertex(nextV1)),
			}))
			idx = 0
		}
		cur = remaining[idx]
		ordered = append(ordered, cur)
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}

	last := b.seg(ordered[len(ordered)-1]).V2
	first := b.seg(ordered[0]).V1
	if !closed || last != first || len(ordered) < 3 {
		b.report.UnclosableSubsectors++
	}
	if last != first || len(ordered) < 3 {
		closer := b.addSeg(Seg[Sector]{
			V1: last, V2: first, Linedef: NoLinedef, Sidedef: NoSidedef,
			FrontSector: b.seg(ordered[0]).FrontSector,
			Angle:       segAngle(*b.vertex(last), *b.vertex(first)),
		})
		ordered = append(ordered, closer)
	}
	return ordered
}

// sideIndexOf reports which of a linedef's two sidedefs produced s (0 or
// 1); minisegs (no linedef) report 0.
func (b *Builder[Sector]) sideIndexOf(s *Seg[Sector]) int16 {
	if s.Linedef == NoLinedef {
		return 0
	}
	ld := b.input.Linedefs[s.Linedef]
	if ld.Side[0] == s.Sidedef {
		return 0
	}
	return 1
}

func encodeChild(c Child) uint32 {
	if c.IsSubsector {
		return uint32(c.Index) | SubsectorBit
	}
	return uint32(c.Index)
}

// worldBBox converts a fixed-point bbox to the legacy int16 world-unit
// format, in (minX, minY, maxX, maxY) order.
func worldBBox(bb BBox) [4]int16 {
	return [4]int16{
		clampInt16(int32(bb.MinX) >> FracBits),
		clampInt16(int32(bb.MinY) >> FracBits),
		clampInt16(int32(bb.MaxX) >> FracBits),
		clampInt16(int32(bb.MaxY) >> FracBits),
	}
}
