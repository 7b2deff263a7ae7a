package bsp

import (
	"math"
	"sort"

	"github.com/emirpasic/gods/sets/hashset"
)

// numericEpsilon gates the §7 NumericAbort recovery: an intercept
// denominator this close to zero means the seg is (numerically) parallel
// to the splitter despite having classified as crossing.
const numericEpsilon = 1e-6

// touchedSet is a thin typed wrapper over gods/hashset, used for the pure
// membership tests in splitSet's sharer-fixing pass (§4.6 step 4): which
// segs have already been folded into a front/back decision this split, and
// which vertices already produced a touching event. Neither is ever
// iterated in insertion-nondeterministic order, so a hash-backed set is
// safe here even under the determinism requirement (P5) that rules it out
// for the event tree itself.
type touchedSet struct{ s *hashset.Set }

func newTouchedSet() touchedSet { return touchedSet{s: hashset.New()} }

func (t touchedSet) add(h SegHandle)           { t.s.Add(h) }
func (t touchedSet) addVertex(v VertexHandle)  { t.s.Add(v) }
func (t touchedSet) has(h SegHandle) bool      { return t.s.Contains(h) }
func (t touchedSet) hasVertex(v VertexHandle) bool { return t.s.Contains(v) }

// splitSet implements §4.6: classify every seg in ws against splitterSeg's
// line, split the ones that cross it, fix up colinear sharers, and (GL mode
// only) stitch mini-segs along the splitter. Returns the front/back working
// sets.
func (b *Builder[Sector]) splitSet(ws workingSet, splitterSeg SegHandle) (workingSet, workingSet, error) {
	node := b.lineOf(splitterSeg)
	splitterPlane := b.seg(splitterSeg).PlaneNum

	wf := b.newWorkingSet()
	wb := b.newWorkingSet()
	b.events.Clear()

	snapshot := b.toSlice(ws)
	handled := newTouchedSet()

	type sharer struct {
		h     SegHandle
		front bool
	}
	var sharers []sharer

	for _, h := range snapshot {
		if handled.has(h) || b.seg(h).dropped {
			continue
		}

		if h == b.hackSeg || h == b.hackMate {
			b.placeHackSeg(h, &wf, &wb)
			handled.add(h)
			continue
		}

		s := b.seg(h)
		v1, v2 := b.vertex(s.V1), b.vertex(s.V2)
		status, sidev := classifyLine(node, v1.X, v1.Y, v2.X, v2.Y)

		colinear := sidev[0] == SideOn && sidev[1] == SideOn && s.PlaneNum == splitterPlane
		if colinear {
			// A seg's FrontSector always sits on the Back side of its own
			// directed line (walls are authored CCW around their sector, so
			// walking V1->V2 keeps the sector behind you). status==LineFront
			// here only means "codirectional with node", which is the
			// opposite of which node-relative side this seg's own sector
			// belongs on — hence the inversion.
			sharers = append(sharers, sharer{h: h, front: status == LineBack})
			handled.add(h)
			continue
		}

		switch status {
		case LineFront:
			b.pushSeg(&wf, h)
		case LineBack:
			b.pushSeg(&wb, h)
		case LineCrosses:
			if err := b.splitCrossingSeg(h, node, &wf, &wb, handled); err != nil {
				b.hackSeg, b.hackMate = NoSeg, NoSeg
				return workingSet{}, workingSet{}, err
			}
		}
	}

	b.insertTouchingEvents(node, snapshot, handled)

	for _, sh := range sharers {
		b.placeSharer(sh.h, sh.front, node, &wf, &wb)
	}

	if b.makeGL {
		b.addMiniSegs(node, &wf, &wb)
	}

	b.hackSeg, b.hackMate = NoSeg, NoSeg
	return wf, wb, nil
}

func (b *Builder[Sector]) placeHackSeg(h SegHandle, wf, wb *workingSet) {
	if h == b.hackSeg {
		b.pushSeg(wf, h)
	} else {
		b.pushSeg(wb, h)
	}
}

// splitCrossingSeg handles one LineCrosses seg: split it at its intercept
// with node, propagate the split to its partner at the same vertex, and
// record an event for the new vertex.
func (b *Builder[Sector]) splitCrossingSeg(h SegHandle, node Line, wf, wb *workingSet, handled touchedSet) error {
	orig := *b.seg(h)
	v1, v2 := b.vertex(orig.V1), b.vertex(orig.V2)

	t, den := interceptParam(node, v1.X, v1.Y, v2.X, v2.Y)
	if math.Abs(den) < numericEpsilon {
		// Retry once with a widened SIDE_EPSILON per §7: if that resolves
		// the seg to a clean front/back instead of a crossing, use it;
		// otherwise the abort is unrecoverable.
		b.report.WidenedEpsilonRetries++
		widened := sideEpsilonSquared * 4
		status, _ := classifyLineEps(node, v1.X, v1.Y, v2.X, v2.Y, widened)
		switch status {
		case LineFront:
			b.pushSeg(wf, h)
			handled.add(h)
			return nil
		case LineBack:
			b.pushSeg(wb, h)
			handled.add(h)
			return nil
		default:
			return fatalf(ErrNumericAbort, "intercept denominator underflow splitting seg %d", h)
		}
	}

	nx := v1.X + FixedFromFloat(t*float64(v2.X-v1.X))
	ny := v1.Y + FixedFromFloat(t*float64(v2.Y-v1.Y))
	nv := b.vmap.SelectClose(nx, ny)

	_, sidev := classifyLine(node, v1.X, v1.Y, v2.X, v2.Y)

	h1, h2 := b.splitAt(h, nv) // h1: orig.V1 -> nv, h2: nv -> orig.V2
	handled.add(h)

	var frontH, backH SegHandle
	if sidev[0] == SideFront {
		frontH, backH = h1, h2
	} else {
		frontH, backH = h2, h1
	}
	if frontH != NoSeg {
		b.pushSeg(wf, frontH)
	}
	if backH != NoSeg {
		b.pushSeg(wb, backH)
	}

	if orig.Partner != NoSeg && !handled.has(orig.Partner) {
		p1, p2 := b.splitAt(orig.Partner, nv) // p1: orig.V2 -> nv, p2: nv -> orig.V1
		handled.add(orig.Partner)

		if p1 != NoSeg && h2 != NoSeg {
			b.setPartner(p1, h2)
		}
		if p2 != NoSeg && h1 != NoSeg {
			b.setPartner(p2, h1)
		}

		var pFrontH, pBackH SegHandle
		if sidev[0] == SideFront {
			pFrontH, pBackH = p2, p1
		} else {
			pFrontH, pBackH = p1, p2
		}
		if pFrontH != NoSeg {
			b.pushSeg(wf, pFrontH)
		}
		if pBackH != NoSeg {
			b.pushSeg(wb, pBackH)
		}
	}

	eventSeg := frontH
	b.events.Insert(interceptDistanceSquared(node, nx, ny), nv, eventSeg)
	return nil
}

// splitAt cuts h at nv, returning (v1->nv, nv->v2); either half is NoSeg if
// it would be zero-length (§4.6 failure modes), in which case it is still
// created and then dropped, so the drop is counted in the Report rather
// than silently skipped.
func (b *Builder[Sector]) splitAt(h SegHandle, nv VertexHandle) (firstHalf, secondHalf SegHandle) {
	orig := *b.seg(h)
	b.retireSeg(h)

	first := orig
	first.V2 = nv
	fh := b.addSeg(first)
	if b.isZeroLength(orig.V1, nv) {
		b.dropSeg(fh)
		firstHalf = NoSeg
	} else {
		firstHalf = fh
	}

	second := orig
	second.V1 = nv
	second.Offset = orig.Offset + segLength(*b.vertex(orig.V1), *b.vertex(nv))
	sh := b.addSeg(second)
	if b.isZeroLength(nv, orig.V2) {
		b.dropSeg(sh)
		secondHalf = NoSeg
	} else {
		secondHalf = sh
	}
	return
}

// retireSeg excises h from the arena's vertex lists without counting it as
// a failure-mode drop: it is being replaced by split products, not lost.
func (b *Builder[Sector]) retireSeg(h SegHandle) {
	b.removeFromVertex1(h)
	b.removeFromVertex2(h)
	b.seg(h).dropped = true
}

func segLength(v1, v2 Vertex) Fixed {
	dx := v2.X.Float() - v1.X.Float()
	dy := v2.Y.Float() - v1.Y.Float()
	return FixedFromFloat(math.Hypot(dx, dy))
}

// insertTouchingEvents implements §4.6 step 3: any seg endpoint lying "on"
// the splitter, even one belonging to a seg classified front/back overall,
// produces an event too — required so later passes see every vertex that
// lies along the splitter, not only the ones created by an actual crossing.
func (b *Builder[Sector]) insertTouchingEvents(node Line, snapshot []SegHandle, handled touchedSet) {
	seen := newTouchedSet()
	for _, h := range snapshot {
		if handled.has(h) {
			continue
		}
		s := b.seg(h)
		if s.dropped {
			continue
		}
		v1, v2 := b.vertex(s.V1), b.vertex(s.V2)
		if sideOf(node, v1.X, v1.Y) == SideOn && !seen.hasVertex(s.V1) {
			seen.addVertex(s.V1)
			b.events.Insert(interceptDistanceSquared(node, v1.X, v1.Y), s.V1, NoSeg)
		}
		if sideOf(node, v2.X, v2.Y) == SideOn && !seen.hasVertex(s.V2) {
			seen.addVertex(s.V2)
			b.events.Insert(interceptDistanceSquared(node, v2.X, v2.Y), s.V2, NoSeg)
		}
	}
}

// placeSharer implements §4.6 step 4 for one colinear sharer seg: if the
// event list contains vertices strictly inside its span (other colinear
// segs overlapping it), it is cut at each one so the resulting pieces align
// with every other sharer's boundaries — the T-junction case of §8 scenario
// 5. All pieces keep the sharer's own front/back resolution, since that was
// decided by direction, not position.
func (b *Builder[Sector]) placeSharer(h SegHandle, front bool, node Line, wf, wb *workingSet) {
	if b.seg(h).dropped {
		return
	}
	s := b.seg(h)
	v1, v2 := b.vertex(s.V1), b.vertex(s.V2)
	d1 := interceptDistanceSquared(node, v1.X, v1.Y)
	d2 := interceptDistanceSquared(node, v2.X, v2.Y)
	lo, hi := d1, d2
	reversed := d1 > d2
	if reversed {
		lo, hi = hi, lo
	}

	var interior []VertexHandle
	b.events.InOrder(func(eh eventHandle) {
		dist, vertex, _ := b.events.Event(eh)
		if dist > lo && dist < hi && vertex != s.V1 && vertex != s.V2 {
			interior = append(interior, vertex)
		}
	})
	if len(interior) == 0 {
		b.placeWhole(h, front, wf, wb)
		return
	}

	sort.Slice(interior, func(i, j int) bool {
		di := interceptDistanceSquared(node, b.vertex(interior[i]).X, b.vertex(interior[i]).Y)
		dj := interceptDistanceSquared(node, b.vertex(interior[j]).X, b.vertex(interior[j]).Y)
		if reversed {
			return di > dj
		}
		return di < dj
	})

	cur := h
	for _, nv := range interior {
		if cur == NoSeg {
			break
		}
		first, second := b.splitAt(cur, nv)
		b.placeWhole(first, front, wf, wb)
		cur = second
	}
	b.placeWhole(cur, front, wf, wb)
}

func (b *Builder[Sector]) placeWhole(h SegHandle, front bool, wf, wb *workingSet) {
	if h == NoSeg {
		return
	}
	if front {
		b.pushSeg(wf, h)
	} else {
		b.pushSeg(wb, h)
	}
}

// addMiniSegs implements §4.6 step 5 (GL-nodes mode only): walk the ordered
// event list and, on every interval whose running parity is odd — inside
// the level rather than outside it — stitch a pair of partnered minisegs
// closing the gap, one into each child set.
func (b *Builder[Sector]) addMiniSegs(node Line, wf, wb *workingSet) {
	var events []eventHandle
	b.events.InOrder(func(h eventHandle) { events = append(events, h) })
	if len(events) < 2 {
		return
	}

	parity := 0
	var sector Sector
	for i := 0; i+1 < len(events); i++ {
		_, v1, frontSeg := b.events.Event(events[i])
		_, v2, _ := b.events.Event(events[i+1])
		if frontSeg != NoSeg {
			parity++
			sector = b.seg(frontSeg).FrontSector
		}
		if parity%2 != 1 {
			continue
		}
		if v1 == v2 {
			continue
		}
		p1, p2 := b.vertex(v1), b.vertex(v2)
		a := b.addSeg(Seg[Sector]{
			V1: v1, V2: v2, Linedef: NoLinedef, Sidedef: NoSidedef,
			FrontSector: sector, Angle: segAngle(*p1, *p2),
		})
		bm := b.addSeg(Seg[Sector]{
			V1: v2, V2: v1, Linedef: NoLinedef, Sidedef: NoSidedef,
			FrontSector: sector, Angle: segAngle(*p2, *p1),
		})
		b.setPartner(a, bm)
		b.pushSeg(wf, a)
		b.pushSeg(wb, bm)
	}
}
