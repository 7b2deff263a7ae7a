package bsp

// blockShift/blockSize define the vertex map's grid cell size: 1<<(8+16)
// fixed units, i.e. 256 world units (§4.2).
const (
	blockShift = 8 + FracBits
	blockSize  = Fixed(1) << blockShift
)

// VertexMap is a uniform grid over the level's bounding box used to find
// an existing vertex near a given point, avoiding microscopic duplicates
// at T-junctions when minisegs are created (§4.2).
type VertexMap struct {
	vertices *[]Vertex

	minX, minY Fixed
	blocksWide, blocksTall int32
	cells map[int64][]VertexHandle
}

// NewVertexMap builds a grid covering [minX,maxX] x [minY,maxY]. vertices
// is the builder's vertex arena; new vertices selectClose appends land
// there directly so handles stay valid.
func NewVertexMap(vertices *[]Vertex, minX, minY, maxX, maxY Fixed) *VertexMap {
	vm := &VertexMap{
		vertices: vertices,
		minX:     minX,
		minY:     minY,
		cells:    make(map[int64][]VertexHandle),
	}
	vm.blocksWide = int32((maxX-minX)>>blockShift) + 1
	vm.blocksTall = int32((maxY-minY)>>blockShift) + 1
	if vm.blocksWide < 1 {
		vm.blocksWide = 1
	}
	if vm.blocksTall < 1 {
		vm.blocksTall = 1
	}
	for h := range *vertices {
		vm.insert(VertexHandle(h))
	}
	return vm
}

func (vm *VertexMap) block(x, y Fixed) int64 {
	bx := int64((x - vm.minX) >> blockShift)
	by := int64((y - vm.minY) >> blockShift)
	if bx < 0 {
		bx = 0
	}
	if by < 0 {
		by = 0
	}
	return by*int64(vm.blocksWide) + bx
}

func (vm *VertexMap) insert(h VertexHandle) {
	v := (*vm.vertices)[h]
	c := vm.block(v.X, v.Y)
	vm.cells[c] = append(vm.cells[c], h)
}

// SelectExact returns an existing vertex iff its coordinates match (x, y)
// bit-exactly, or NoVertex if there is none.
func (vm *VertexMap) SelectExact(x, y Fixed) VertexHandle {
	for _, h := range vm.cells[vm.block(x, y)] {
		v := (*vm.vertices)[h]
		if v.X == x && v.Y == y {
			return h
		}
	}
	return NoVertex
}

// SelectClose returns an existing vertex within VertexEpsilon of (x, y),
// searching the owning cell and its 8 neighbours, or appends and returns a
// freshly created vertex if none is close enough.
func (vm *VertexMap) SelectClose(x, y Fixed) VertexHandle {
	bx := int64((x - vm.minX) >> blockShift)
	by := int64((y - vm.minY) >> blockShift)

	var best VertexHandle = NoVertex
	var bestDist Fixed
	for dy := int64(-1); dy <= 1; dy++ {
		for dx := int64(-1); dx <= 1; dx++ {
			nx, ny := bx+dx, by+dy
			if nx < 0 || ny < 0 || nx >= int64(vm.blocksWide) || ny >= int64(vm.blocksTall) {
				continue
			}
			cell := ny*int64(vm.blocksWide) + nx
			for _, h := range vm.cells[cell] {
				v := (*vm.vertices)[h]
				ddx, ddy := v.X-x, v.Y-y
				if ddx < 0 {
					ddx = -ddx
				}
				if ddy < 0 {
					ddy = -ddy
				}
				if ddx > VertexEpsilon || ddy > VertexEpsilon {
					continue
				}
				d := ddx + ddy
				if best == NoVertex || d < bestDist {
					best, bestDist = h, d
				}
			}
		}
	}
	if best != NoVertex {
		return best
	}

	h := VertexHandle(len(*vm.vertices))
	*vm.vertices = append(*vm.vertices, Vertex{X: x, Y: y, SegsOut: NoSeg, SegsIn: NoSeg})
	vm.insert(h)
	return h
}
