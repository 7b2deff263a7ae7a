package bsp

import "testing"

// preparedBuilder runs the pre-pass (segs, planes, loops) an end-to-end
// Build would run before the recursive chooser/splitter work starts.
func preparedBuilder(in Input[int]) (*Builder[int], workingSet) {
	b := newBuilder(in)
	b.makeSegsFromSides()
	b.groupSegPlanes()
	b.markAllLoops()
	return b, b.initialWorkingSet()
}

func TestIsConvexSquareRoom(t *testing.T) {
	b, ws := preparedBuilder(squareInput(false))
	if !b.isConvex(ws) {
		t.Error("a simple 4-seg rectangular room should be convex")
	}
}

func TestIsConvexLShapeIsNotConvex(t *testing.T) {
	b, ws := preparedBuilder(lShapeInput())
	if b.isConvex(ws) {
		t.Error("an L-shaped room has a reflex corner and should not be convex")
	}
}

func TestIsConvexTwoSectorsIsNotConvex(t *testing.T) {
	b, ws := preparedBuilder(twoRoomsInput())
	if b.isConvex(ws) {
		t.Error("two distinct sectors in one working set should never be convex")
	}
}

func TestHasOverlappingColinearSegsArmsHackSeg(t *testing.T) {
	b, ws := preparedBuilder(colinearOverlapInput())
	segs := b.toSlice(ws)
	if !b.hasOverlappingColinearSegs(segs) {
		t.Fatal("three partially overlapping colinear segs should be detected as overlapping")
	}
	if b.hackSeg == NoSeg || b.hackMate == NoSeg {
		t.Error("hasOverlappingColinearSegs should arm hackSeg/hackMate when it finds an overlap")
	}
}

func TestHasOverlappingColinearSegsIgnoresPartners(t *testing.T) {
	// A single two-sided wall: front and back segs are partners on the same
	// line and fully coincide, not "overlapping" in the self-referencing
	// sense.
	in := twoRoomsInput()
	b, ws := preparedBuilder(in)
	var sharedWallSegs []SegHandle
	b.forEach(ws, func(h SegHandle) {
		if b.seg(h).Linedef == 1 {
			sharedWallSegs = append(sharedWallSegs, h)
		}
	})
	if len(sharedWallSegs) != 2 {
		t.Fatalf("expected 2 segs on the shared wall linedef, got %d", len(sharedWallSegs))
	}
	if b.hasOverlappingColinearSegs(sharedWallSegs) {
		t.Error("a partnered two-sided wall's own two segs should not be reported as overlapping")
	}
}

func TestChooseSplitterPicksTheSharedWallForTwoRooms(t *testing.T) {
	b, ws := preparedBuilder(twoRoomsInput())
	splitSeg, convex := b.chooseSplitter(ws)
	if convex {
		t.Fatal("two distinct sectors should not be reported convex")
	}
	if splitSeg == NoSeg {
		t.Fatal("chooseSplitter found no usable splitter")
	}
	if b.seg(splitSeg).Linedef != 1 {
		t.Errorf("expected the chooser to pick a seg on the shared wall (linedef 1), got linedef %d", b.seg(splitSeg).Linedef)
	}
}

func TestCandidatePlanesOneRepresentativePerPlane(t *testing.T) {
	b, ws := preparedBuilder(colinearOverlapInput())
	reps := b.candidatePlanes(ws)
	if len(reps) != 1 {
		t.Errorf("three colinear segs on the same line should yield 1 candidate plane, got %d", len(reps))
	}
}
