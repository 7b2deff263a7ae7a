package bsp

import "testing"

// freshSplitterBuilder returns a builder with two vertices and one seg
// between them, ready for splitAt/splitSet tests that don't need a full
// Input pipeline.
func freshSplitterBuilder() (*Builder[int], SegHandle) {
	b := newBuilder(Input[int]{Vertices: []Vertex{
		{X: FixedFromInt(0), Y: FixedFromInt(0), SegsOut: NoSeg, SegsIn: NoSeg},
		{X: FixedFromInt(10), Y: FixedFromInt(0), SegsOut: NoSeg, SegsIn: NoSeg},
	}})
	h := b.addSeg(Seg[int]{V1: 0, V2: 1, Linedef: 0, Sidedef: 0, FrontSector: 1, Offset: 0})
	return b, h
}

func TestSplitAtProducesTwoHalves(t *testing.T) {
	b, h := freshSplitterBuilder()
	nv := b.addVertex(FixedFromInt(5), FixedFromInt(0))

	first, second := b.splitAt(h, nv)
	if first == NoSeg || second == NoSeg {
		t.Fatal("splitting at the midpoint should not produce a zero-length half")
	}
	if b.seg(first).V1 != 0 || b.seg(first).V2 != nv {
		t.Errorf("first half = (%d -> %d), want (0 -> %d)", b.seg(first).V1, b.seg(first).V2, nv)
	}
	if b.seg(second).V1 != nv || b.seg(second).V2 != 1 {
		t.Errorf("second half = (%d -> %d), want (%d -> 1)", b.seg(second).V1, b.seg(second).V2, nv)
	}
	if !b.seg(h).dropped {
		t.Error("the original seg should be retired once split")
	}
}

func TestSplitAtDropsZeroLengthHalf(t *testing.T) {
	b, h := freshSplitterBuilder()
	// A new vertex within VertexEpsilon of v1: the first half degenerates.
	nv := b.addVertex(FixedFromInt(0), FixedFromInt(0))

	first, second := b.splitAt(h, nv)
	if first != NoSeg {
		t.Errorf("first half should be dropped as zero-length, got handle %d", first)
	}
	if second == NoSeg {
		t.Fatal("second half should survive")
	}
	if b.report.DroppedZeroLengthSegs != 1 {
		t.Errorf("DroppedZeroLengthSegs = %d, want 1", b.report.DroppedZeroLengthSegs)
	}
}

func TestSplitSetOnTwoRoomsProducesPartneredHalves(t *testing.T) {
	b, ws := preparedBuilder(twoRoomsInput())
	splitSeg, convex := b.chooseSplitter(ws)
	if convex {
		t.Fatal("two sectors should not be convex")
	}

	wf, wb, err := b.splitSet(ws, splitSeg)
	if err != nil {
		t.Fatalf("splitSet failed: %v", err)
	}
	if wf.count == 0 || wb.count == 0 {
		t.Fatalf("expected both front and back sets to be non-empty, got front=%d back=%d", wf.count, wb.count)
	}

	// Every seg with sector 0 (room A) should land in one set, sector 1
	// (room B) in the other, since the splitter is the wall between them.
	frontSectors := make(map[int]bool)
	b.forEach(wf, func(h SegHandle) { frontSectors[b.seg(h).FrontSector] = true })
	backSectors := make(map[int]bool)
	b.forEach(wb, func(h SegHandle) { backSectors[b.seg(h).FrontSector] = true })
	if len(frontSectors) != 1 || len(backSectors) != 1 {
		t.Errorf("expected each side to contain exactly one sector's segs, front=%v back=%v", frontSectors, backSectors)
	}

	// hackSeg/hackMate must be reset after the split so later calls aren't
	// affected by state left over from this one.
	if b.hackSeg != NoSeg || b.hackMate != NoSeg {
		t.Error("hackSeg/hackMate should be reset to NoSeg at the end of splitSet")
	}
}
