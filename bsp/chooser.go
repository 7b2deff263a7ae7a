package bsp

// Cost weights for the candidate-plane heuristic of §4.5. SPLIT_W dominates
// BAL_W: a perfectly balanced candidate that slices through ten segs is
// still worse than a lopsided one that slices through none.
const (
	splitWeight      = 20.0
	balanceWeight    = 1.0
	loopSplitPenalty = 1000.0
)

type candidate struct {
	seg      SegHandle
	planenum int32
	cost     float64
}

// chooseSplitter returns the seg to partition on, or (NoSeg, true) if W is
// already convex and the caller should emit a subsector.
func (b *Builder[Sector]) chooseSplitter(ws workingSet) (SegHandle, bool) {
	if b.isConvex(ws) {
		return NoSeg, true
	}
	if h, ok := b.chooserPass(ws, true); ok {
		return h, false
	}
	if h, ok := b.chooserPass(ws, false); ok {
		return h, false
	}
	return NoSeg, false
}

// chooserPass runs one of §4.5's two passes: with honorNoSplit, a candidate
// that would cut through any loop-marked seg is excluded outright rather
// than merely penalized, so pass one only succeeds when at least one
// candidate avoids every loop seg; the caller falls back to an unrestricted
// pass two otherwise.
func (b *Builder[Sector]) chooserPass(ws workingSet, honorNoSplit bool) (SegHandle, bool) {
	var best *candidate
	for _, rep := range b.candidatePlanes(ws) {
		c := b.evaluateCandidate(ws, rep, honorNoSplit)
		if c == nil {
			continue
		}
		if best == nil || c.cost < best.cost || (c.cost == best.cost && c.planenum < best.planenum) {
			best = c
		}
	}
	if best == nil {
		return NoSeg, false
	}
	return best.seg, true
}

// candidatePlanes returns one representative seg per distinct planenum in
// ws, in first-seen (arena/list) order — deterministic given a deterministic
// ws (P5).
func (b *Builder[Sector]) candidatePlanes(ws workingSet) []SegHandle {
	seen := make(map[int32]bool)
	var reps []SegHandle
	b.forEach(ws, func(h SegHandle) {
		pn := b.seg(h).PlaneNum
		if seen[pn] {
			return
		}
		seen[pn] = true
		reps = append(reps, h)
	})
	return reps
}

func (b *Builder[Sector]) evaluateCandidate(ws workingSet, rep SegHandle, honorNoSplit bool) *candidate {
	line := b.lineOf(rep)
	if line.Dx == 0 && line.Dy == 0 {
		return nil
	}
	plane := b.seg(rep).PlaneNum

	var front, back, splits, loopSplits int
	b.forEach(ws, func(h SegHandle) {
		s := b.seg(h)
		v1, v2 := b.vertex(s.V1), b.vertex(s.V2)
		status, sidev := classifyLine(line, v1.X, v1.Y, v2.X, v2.Y)
		if sidev[0] == SideOn && sidev[1] == SideOn && s.PlaneNum == plane {
			// Counted on the side splitSet's sharer pass puts it: the
			// inverse of its direction status.
			if status == LineBack {
				front++
			} else {
				back++
			}
			return
		}
		switch status {
		case LineFront:
			front++
		case LineBack:
			back++
		case LineCrosses:
			splits++
			if s.LoopNum != 0 {
				loopSplits++
			}
		}
	})

	if honorNoSplit && loopSplits > 0 {
		return nil
	}
	// A candidate that cuts nothing and leaves one side empty does not
	// partition the set, unless hackSeg/hackMate already force a split.
	if splits == 0 && (front == 0 || back == 0) && b.hackSeg == NoSeg {
		return nil
	}

	diff := front - back
	if diff < 0 {
		diff = -diff
	}
	cost := float64(splits)*splitWeight + float64(diff)*balanceWeight
	if !honorNoSplit {
		cost += float64(loopSplits) * loopSplitPenalty
	}

	return &candidate{seg: rep, planenum: b.seg(rep).PlaneNum, cost: cost}
}

// isConvex implements §4.5's convexity short-circuit: every seg must share
// one sector; then a working set with at most one plane bucket is convex if
// its segs tile without overlap, and otherwise every pair of segs must have
// non-crossing lines. A single-plane-bucket set whose segs *do* overlap is the
// self-referencing-sector case (§8 scenario 4): it is reported non-convex
// so the chooser's HackSeg override (armed by hasOverlappingColinearSegs)
// can break the cycle.
func (b *Builder[Sector]) isConvex(ws workingSet) bool {
	if ws.count <= 1 {
		return true
	}
	segs := b.toSlice(ws)

	sector := b.seg(segs[0]).FrontSector
	planes := make(map[int32]bool)
	for _, h := range segs {
		s := b.seg(h)
		if s.FrontSector != sector {
			return false
		}
		planes[s.PlaneNum] = true
	}

	if len(planes) <= 1 {
		return !b.hasOverlappingColinearSegs(segs)
	}

	for i, hi := range segs {
		line := b.lineOf(hi)
		for j, hj := range segs {
			if i == j {
				continue
			}
			s := b.seg(hj)
			v1, v2 := b.vertex(s.V1), b.vertex(s.V2)
			status, _ := classifyLine(line, v1.X, v1.Y, v2.X, v2.Y)
			if status == LineCrosses {
				return false
			}
		}
	}
	return true
}

// hasOverlappingColinearSegs looks for two non-partner segs on the same
// line whose projected intervals overlap with positive measure — the
// signature of a self-referencing sector's island boundary. If found, it
// arms hackSeg/hackMate for the next splitSet call (§9 Open Question: the
// trigger is derived from the scenario fixtures, not the visible headers).
func (b *Builder[Sector]) hasOverlappingColinearSegs(segs []SegHandle) bool {
	if len(segs) < 2 {
		return false
	}
	line := b.lineOf(segs[0])

	type interval struct {
		lo, hi float64
		h      SegHandle
	}
	intervals := make([]interval, 0, len(segs))
	for _, h := range segs {
		s := b.seg(h)
		v1, v2 := b.vertex(s.V1), b.vertex(s.V2)
		a := interceptDistanceSquared(line, v1.X, v1.Y)
		c := interceptDistanceSquared(line, v2.X, v2.Y)
		if a > c {
			a, c = c, a
		}
		intervals = append(intervals, interval{lo: a, hi: c, h: h})
	}

	for i := 0; i < len(intervals); i++ {
		for j := i + 1; j < len(intervals); j++ {
			a, c := intervals[i], intervals[j]
			if b.seg(a.h).Partner == c.h {
				continue
			}
			if a.lo < c.hi && c.lo < a.hi {
				b.hackSeg = a.h
				b.hackMate = c.h
				return true
			}
		}
	}
	return false
}
