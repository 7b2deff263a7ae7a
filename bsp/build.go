package bsp

import (
	"math"
	"sort"
)

// Builder owns every arena for one build (§5: "the builder owns all
// arenas exclusively for its lifetime"). It is single-use: construct one
// with Build, which drives it end to end.
type Builder[Sector comparable] struct {
	input Input[Sector]

	vertices []Vertex
	segs     []Seg[Sector]

	vmap   *VertexMap
	planes *PlaneRegistry
	events *EventTree

	makeGL            bool
	hackSeg, hackMate SegHandle

	report Report

	nodes       []Node
	subsectors  []Subsector
	ssSegOrder  [][]SegHandle // finalized segs per subsector, in emission order
}

// Build runs the whole pipeline (§4.7's build(W, bbox) driven from the
// full seg set) and returns the finished tree, or a fatal *BuildError per
// §7.
func Build[Sector comparable](input Input[Sector]) (Output[Sector], error) {
	if len(input.Linedefs) == 0 {
		return Output[Sector]{}, fatalf(ErrDegenerateLevel, "no linedefs")
	}
	b := newBuilder(input)
	if b.allVerticesCoincident() {
		return Output[Sector]{}, fatalf(ErrDegenerateLevel, "all vertices coincident")
	}

	b.makeSegsFromSides()
	b.groupSegPlanes()
	b.markAllLoops()

	ws := b.initialWorkingSet()
	if ws.count == 0 {
		return Output[Sector]{}, fatalf(ErrDegenerateLevel, "no segs produced from linedefs")
	}
	bbox := b.bboxOf(ws)

	root, err := b.buildTreeTop(ws, bbox)
	if err != nil {
		return Output[Sector]{}, err
	}

	containers := b.locatePolyobjects(root)

	out := b.shapeOutput(root, containers)
	out.Report = b.report
	return out, nil
}

func newBuilder[Sector comparable](input Input[Sector]) *Builder[Sector] {
	b := &Builder[Sector]{input: input, makeGL: input.MakeGL}
	b.vertices = make([]Vertex, len(input.Vertices))
	copy(b.vertices, input.Vertices)
	for i := range b.vertices {
		b.vertices[i].SegsOut = NoSeg
		b.vertices[i].SegsIn = NoSeg
	}
	minX, minY, maxX, maxY := boundsOf(b.vertices)
	b.vmap = NewVertexMap(&b.vertices, minX, minY, maxX, maxY)
	b.planes = NewPlaneRegistry()
	b.events = NewEventTree()
	b.hackSeg, b.hackMate = NoSeg, NoSeg
	return b
}

func boundsOf(vertices []Vertex) (minX, minY, maxX, maxY Fixed) {
	if len(vertices) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = vertices[0].X, vertices[0].Y
	maxX, maxY = minX, minY
	for _, v := range vertices[1:] {
		if v.X < minX {
			minX = v.X
		}
		if v.X > maxX {
			maxX = v.X
		}
		if v.Y < minY {
			minY = v.Y
		}
		if v.Y > maxY {
			maxY = v.Y
		}
	}
	return
}

func (b *Builder[Sector]) allVerticesCoincident() bool {
	if len(b.vertices) == 0 {
		return true
	}
	x0, y0 := b.vertices[0].X, b.vertices[0].Y
	for _, v := range b.vertices[1:] {
		if v.X != x0 || v.Y != y0 {
			return false
		}
	}
	return true
}

// createSeg builds one side's seg for linedef ld (index lineIdx), side 0
// or 1.
func (b *Builder[Sector]) createSeg(lineIdx int, ld Linedef, side int) SegHandle {
	sdIdx := ld.Side[side]
	sd := b.input.Sidedefs[sdIdx]

	var v1, v2 VertexHandle
	if side == 0 {
		v1, v2 = ld.V1, ld.V2
	} else {
		v1, v2 = ld.V2, ld.V1
	}

	s := Seg[Sector]{
		V1:          v1,
		V2:          v2,
		Linedef:     int32(lineIdx),
		Sidedef:     sdIdx,
		FrontSector: sd.Sector,
		Offset:      0,
	}
	other := ld.Side[1-side]
	if other != NoSidedef {
		backSector := b.input.Sidedefs[other].Sector
		s.BackSector = &backSector
	}
	s.Angle = segAngle(b.vertices[v1], b.vertices[v2])
	return b.addSeg(s)
}

// makeSegsFromSides creates the initial (unsplit) seg list: one seg per
// present sidedef, with two-sided lines' front/back segs set as partners
// of each other (I2).
func (b *Builder[Sector]) makeSegsFromSides() {
	for i, ld := range b.input.Linedefs {
		var front, back SegHandle = NoSeg, NoSeg
		if ld.Side[0] != NoSidedef {
			front = b.createSeg(i, ld, 0)
		}
		if ld.Side[1] != NoSidedef {
			back = b.createSeg(i, ld, 1)
		}
		if front != NoSeg && back != NoSeg {
			b.setPartner(front, back)
		}
	}
}

// groupSegPlanes is the pre-pass of §4.1: every seg is assigned a
// planenum/planefront so "is this seg on the candidate splitter" becomes
// an integer compare during chooser/splitter work.
func (b *Builder[Sector]) groupSegPlanes() {
	for i := range b.segs {
		s := &b.segs[i]
		v1, v2 := b.vertices[s.V1], b.vertices[s.V2]
		pn, front := b.planes.Lookup(v1.X, v1.Y, v2.X, v2.Y)
		s.PlaneNum = pn
		s.PlaneFront = front
	}
}

func (b *Builder[Sector]) initialWorkingSet() workingSet {
	ws := b.newWorkingSet()
	for h := range b.segs {
		if b.segs[h].dropped {
			continue
		}
		b.pushSeg(&ws, SegHandle(h))
	}
	return ws
}

func (b *Builder[Sector]) bboxOf(ws workingSet) BBox {
	bbox := EmptyBBox()
	b.forEach(ws, func(h SegHandle) {
		s := b.seg(h)
		v1, v2 := b.vertices[s.V1], b.vertices[s.V2]
		bbox.Add(v1.X, v1.Y)
		bbox.Add(v2.X, v2.Y)
	})
	return bbox
}

// buildTreeTop drives the recursion of §4.7. Recursion depth tracks the
// seg count, not world size (§5); Go's growable goroutine stack makes true
// recursion safe here without an explicit stack.
func (b *Builder[Sector]) buildTreeTop(ws workingSet, bbox BBox) (Child, error) {
	child, _, err := b.buildTree(ws, bbox, 0)
	return child, err
}

func (b *Builder[Sector]) buildTree(ws workingSet, bbox BBox, depth int) (Child, BBox, error) {
	if depth > len(b.segs)+len(b.input.Linedefs)+64 {
		return Child{}, BBox{}, fatalf(ErrSplitterOverflow, "recursion depth exceeded seg count")
	}

	splitSeg, convex := b.chooseSplitter(ws)
	if convex {
		idx := b.makeSubsector(ws, bbox)
		return Child{IsSubsector: true, Index: idx}, bbox, nil
	}
	if splitSeg == NoSeg {
		return Child{}, BBox{}, fatalf(ErrSplitterOverflow, "no usable splitter for non-convex set of %d segs", ws.count)
	}

	wf, wb, err := b.splitSet(ws, splitSeg)
	if err != nil {
		return Child{}, BBox{}, err
	}

	bboxF := b.bboxOf(wf)
	bboxB := b.bboxOf(wb)

	childF, actualF, err := b.buildTree(wf, bboxF, depth+1)
	if err != nil {
		return Child{}, BBox{}, err
	}
	childB, actualB, err := b.buildTree(wb, bboxB, depth+1)
	if err != nil {
		return Child{}, BBox{}, err
	}

	line := b.lineOf(splitSeg)
	nodeIdx := int32(len(b.nodes))
	b.nodes = append(b.nodes, Node{
		X: line.X, Y: line.Y, Dx: line.Dx, Dy: line.Dy,
		FrontBBox: actualF, BackBBox: actualB,
		FrontChild: childF, BackChild: childB,
	})

	full := actualF
	full.Union(actualB)
	return Child{IsSubsector: false, Index: nodeIdx}, full, nil
}

// lineOf returns the infinite line carried by seg h, in the seg's own
// V1->V2 direction.
func (b *Builder[Sector]) lineOf(h SegHandle) Line {
	s := b.seg(h)
	v1, v2 := b.vertices[s.V1], b.vertices[s.V2]
	return Line{X: v1.X, Y: v1.Y, Dx: v2.X - v1.X, Dy: v2.Y - v1.Y}
}

// makeSubsector finalizes a convex working set as a leaf: its segs are
// frozen in ascending-handle order (the SortSegs decision of §5's Open
// Question resolution — the simplest rule consistent with P5) and recorded
// for output.go to linearize later.
func (b *Builder[Sector]) makeSubsector(ws workingSet, bbox BBox) int32 {
	segs := b.toSlice(ws)
	sort.Slice(segs, func(i, j int) bool { return segs[i] < segs[j] })
	idx := int32(len(b.subsectors))
	b.subsectors = append(b.subsectors, Subsector{BBox: bbox})
	b.ssSegOrder = append(b.ssSegOrder, segs)
	return idx
}

func segAngle(v1, v2 Vertex) Angle {
	dx := v2.X.Float() - v1.X.Float()
	dy := v2.Y.Float() - v1.Y.Float()
	return AngleFromRadians(math.Atan2(dy, dx))
}
