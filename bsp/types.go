package bsp

// VertexHandle is a stable index into a Builder's vertex arena.
type VertexHandle int32

// SegHandle is a stable index into a Builder's seg arena.
type SegHandle int32

// NoVertex and NoSeg are the sentinel "absent" handles. Handles are never
// mutated in place once issued (§3 Lifecycles); a sentinel always means
// "no such link", never "not yet decided".
const (
	NoVertex VertexHandle = -1
	NoSeg    SegHandle    = -1
)

// NoLinedef and NoSidedef mark a seg as a miniseg: synthetic geometry with
// no underlying linedef, created only to close a GL subsector.
const (
	NoLinedef = -1
	NoSidedef = -1
)

// Vertex is a point in the level plus the heads of the two singly linked
// seg lists that use it as an endpoint (spec.md §4.4, C5).
type Vertex struct {
	X, Y Fixed

	// SegsOut is the head of the list of segs whose V1 is this vertex.
	SegsOut SegHandle
	// SegsIn is the head of the list of segs whose V2 is this vertex.
	SegsIn SegHandle

	// Index is not assigned by the builder; output vertices are indexed by
	// their position in the vertex arena (I6).
	Index int32
}

// Seg is a directed fragment of a linedef (or a miniseg) annotated with its
// sector context. Sector is an opaque identifier; the builder never
// inspects it beyond equality (spec.md §6).
type Seg[Sector comparable] struct {
	V1, V2 VertexHandle

	// Linedef and Sidedef are NoLinedef/NoSidedef for minisegs.
	Linedef int32
	Sidedef int32

	// FrontSector is always present for a seg that has a sidedef (I1).
	// Minisegs also carry a FrontSector: the sector they help enclose.
	FrontSector Sector
	// BackSector is nil for one-sided lines and for minisegs (both minisegs
	// of a pair carry the same FrontSector, per I5).
	BackSector *Sector

	// Partner is the seg facing the opposite direction across the same
	// geometric segment, or NoSeg (I2).
	Partner SegHandle

	// Next threads this seg through the current working set.
	Next SegHandle
	// NextForV1/NextForV2 thread this seg through Vertex.SegsOut/SegsIn.
	NextForV1, NextForV2 SegHandle

	// LoopNum is 0 if splitting through this seg is unrestricted, and a
	// positive loop id if it belongs to a no-split sector loop (§4.4).
	LoopNum int32

	Angle  Angle
	Offset Fixed

	// PlaneNum groups this seg with every other seg on the same infinite
	// line, whichever direction it runs (§4.1 plane buckets); PlaneFront records which
	// direction along that plane this seg runs.
	PlaneNum   int32
	PlaneFront bool

	// dropped marks a seg removed by a zero-length split (§4.6 failure
	// modes); dropped segs stay in the arena (append-only) but are excised
	// from every list.
	dropped bool
}

// BBox is an axis-aligned bounding box in Fixed coordinates.
type BBox struct {
	MinX, MinY, MaxX, MaxY Fixed
}

// EmptyBBox returns the canonical empty bbox, ready to be grown by Add.
func EmptyBBox() BBox {
	return BBox{MinX: 1 << 30, MinY: 1 << 30, MaxX: -(1 << 30), MaxY: -(1 << 30)}
}

// Add grows the bbox to include (x, y).
func (b *BBox) Add(x, y Fixed) {
	if x < b.MinX {
		b.MinX = x
	}
	if x > b.MaxX {
		b.MaxX = x
	}
	if y < b.MinY {
		b.MinY = y
	}
	if y > b.MaxY {
		b.MaxY = y
	}
}

// Union grows the bbox to include other.
func (b *BBox) Union(other BBox) {
	b.Add(other.MinX, other.MinY)
	b.Add(other.MaxX, other.MaxY)
}

// Contains reports whether other is fully inside b (used by P6's bounds
// containment property).
func (b BBox) Contains(other BBox) bool {
	return other.MinX >= b.MinX && other.MaxX <= b.MaxX &&
		other.MinY >= b.MinY && other.MaxY <= b.MaxY
}

// Child is a BSP node's reference to either a child node or a leaf
// subsector.
type Child struct {
	IsSubsector bool
	Index       int32
}

// Node is one interior BSP node: a partition line plus two children, each
// with its own tight bbox derived from the actual child geometry (§4.7).
type Node struct {
	X, Y, Dx, Dy Fixed

	FrontBBox, BackBBox     BBox
	FrontChild, BackChild   Child
}

// Subsector is a BSP leaf: a contiguous slice of the final seg list, all
// sharing one sector, plus its bbox.
type Subsector struct {
	FirstSeg int32
	NumSegs  int32
	BBox     BBox
}

// Linedef is one input line: two vertex handles plus up to two sidedef
// references (NoSidedef for a missing side).
type Linedef struct {
	V1, V2       VertexHandle
	Side         [2]int32 // index into Sidedefs, or NoSidedef
	TwoSided     bool
}

// Sidedef attaches a sector to one side of a linedef.
type Sidedef[Sector comparable] struct {
	Sector Sector
}

// PolySpot is a polyobject anchor or start spot: a named point the §6
// post-pass locates within the finished tree.
type PolySpot struct {
	PolyNum int32
	X, Y    Fixed
}

// Input bundles everything the core needs from the level loader
// collaborator (spec.md §6).
type Input[Sector comparable] struct {
	Vertices []Vertex
	Linedefs []Linedef
	Sidedefs []Sidedef[Sector]

	PolySpots []PolySpot
	Anchors   []PolySpot

	// MakeGL selects GL-nodes output (minisegs kept, subsectors closed
	// into polygons) over classic nodes (minisegs stripped).
	MakeGL bool
}

// Output is everything the core hands back (spec.md §6). Either
// ClassicSegs or GLSegs is filled, depending on Input.MakeGL; see output.go.
type Output[Sector comparable] struct {
	Vertices    []OutputVertex
	Nodes       []OutputNode
	Subsectors  []OutputSubsector
	ClassicSegs []OutputSeg
	GLSegs      []OutputGLSeg
	PolyAnchors []PolyContainer

	Report Report
}

// OutputVertex is a finalized, densely and deterministically indexed
// vertex (I6).
type OutputVertex struct {
	X, Y Fixed
}

// OutputNode is the legacy-format node record: fixed partition line, two
// int16-clamped bboxes, two children (high bit of Child marks a
// subsector).
type OutputNode struct {
	X, Y, Dx, Dy Fixed
	BBox         [2][4]int16
	Child        [2]uint32
}

const SubsectorBit = 1 << 31

// OutputSubsector is {numSegs, firstSeg} into the emitted seg list.
type OutputSubsector struct {
	NumSegs  uint32
	FirstSeg uint32
}

// OutputSeg is the classic seg record.
type OutputSeg struct {
	V1, V2  uint32
	Angle   Angle
	Linedef int32
	Side    int16
	Offset  Fixed
}

// OutputGLSeg is the GL-nodes seg record; Linedef is NoLinedef for a
// miniseg and Partner is -1 when there is none.
type OutputGLSeg struct {
	V1, V2  uint32
	Linedef int32
	Side    int16
	Partner int32
}

// PolyContainer records which subsector a polyobject anchor resolved to.
type PolyContainer struct {
	PolyNum   int32
	Subsector int32
}
