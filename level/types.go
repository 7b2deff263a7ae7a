// Package level is the node builder's level-loader collaborator
// (spec.md §6): an in-memory level description plus human-editable YAML
// load/save, standing in for the WAD/lump I/O the core spec places out of
// scope.
package level

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doomtech/zdbsp/bsp"
)

type (
	// Level is a flat, human-editable description of a map: vertices,
	// linedefs referencing them, sidedefs attaching a sector to one side of
	// a linedef, sectors carrying the flat/light data, and polyobject
	// spots/anchors.
	Level struct {
		Vertices  []Vec2      `yaml:"vertices"`
		Linedefs  []Linedef   `yaml:"linedefs"`
		Sidedefs  []Sidedef   `yaml:"sidedefs"`
		Sectors   []Sector    `yaml:"sectors"`
		PolySpots []PolySpot  `yaml:"poly_spots,omitempty"`
		Anchors   []PolySpot  `yaml:"poly_anchors,omitempty"`
	}

	// Vec2 is a 2D point in world units (1 unit = 1<<16 Fixed, per
	// bsp.Unit). Stored as plain floats in YAML so files stay readable;
	// ToInput rounds them to the nearest Fixed with bsp.FixedFromFloat.
	Vec2 struct {
		X float64 `yaml:"x"`
		Y float64 `yaml:"y"`
	}

	// Linedef is one wall: two vertex indices plus up to two sidedef
	// indices (-1 for a missing side).
	Linedef struct {
		V1       int  `yaml:"v1"`
		V2       int  `yaml:"v2"`
		Side0    int  `yaml:"side0"`
		Side1    int  `yaml:"side1"`
		TwoSided bool `yaml:"two_sided,omitempty"`
	}

	// Sidedef attaches a sector to one side of a linedef.
	Sidedef struct {
		Sector int `yaml:"sector"`
	}

	// Sector is a flat region bounded by a ring of linedefs; FloorHeight,
	// CeilingHeight and the texture names are carried through to whatever
	// renders the finished level but never inspected by bsp.Build (which
	// treats Sector as an opaque comparable key, per spec.md §6).
	Sector struct {
		FloorHeight   float64 `yaml:"floor_height"`
		CeilingHeight float64 `yaml:"ceiling_height"`
		FloorTexture  string  `yaml:"floor_texture"`
		CeilingTexture string `yaml:"ceiling_texture"`
	}

	// PolySpot is a polyobject anchor or start spot (spec.md §6's
	// polyobject post-pass).
	PolySpot struct {
		PolyNum  int  `yaml:"poly_num"`
		Position Vec2 `yaml:"position"`
	}
)

// New returns an empty, ready-to-populate Level.
func New() *Level {
	return &Level{
		Vertices: make([]Vec2, 0),
		Linedefs: make([]Linedef, 0),
		Sidedefs: make([]Sidedef, 0),
		Sectors:  make([]Sector, 0),
	}
}

func (l *Level) Save(path string) error {
	_ = os.MkdirAll(filepath.Dir(path), 0755)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := yaml.NewEncoder(f)
	defer encoder.Close()
	encoder.SetIndent(4)

	return encoder.Encode(l)
}

func (l *Level) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	return decoder.Decode(l)
}

const noSide = -1

// ToInput converts the on-disk Level into the bsp package's Input shape,
// using the sector's slice index as the opaque Sector key.
func (l *Level) ToInput() bsp.Input[int] {
	vertices := make([]bsp.Vertex, len(l.Vertices))
	for i, v := range l.Vertices {
		vertices[i] = bsp.Vertex{
			X: bsp.FixedFromFloat(v.X), Y: bsp.FixedFromFloat(v.Y),
			SegsOut: bsp.NoSeg, SegsIn: bsp.NoSeg,
		}
	}

	sidedefs := make([]bsp.Sidedef[int], len(l.Sidedefs))
	for i, sd := range l.Sidedefs {
		sidedefs[i] = bsp.Sidedef[int]{Sector: sd.Sector}
	}

	linedefs := make([]bsp.Linedef, len(l.Linedefs))
	for i, ld := range l.Linedefs {
		linedefs[i] = bsp.Linedef{
			V1: bsp.VertexHandle(ld.V1), V2: bsp.VertexHandle(ld.V2),
			Side:     [2]int32{sideOrNone(ld.Side0), sideOrNone(ld.Side1)},
			TwoSided: ld.TwoSided,
		}
	}

	return bsp.Input[int]{
		Vertices:  vertices,
		Linedefs:  linedefs,
		Sidedefs:  sidedefs,
		PolySpots: toBSPSpots(l.PolySpots),
		Anchors:   toBSPSpots(l.Anchors),
	}
}

func sideOrNone(side int) int32 {
	if side < 0 {
		return bsp.NoSidedef
	}
	return int32(side)
}

func toBSPSpots(spots []PolySpot) []bsp.PolySpot {
	if len(spots) == 0 {
		return nil
	}
	out := make([]bsp.PolySpot, len(spots))
	for i, s := range spots {
		out[i] = bsp.PolySpot{
			PolyNum: int32(s.PolyNum),
			X:       bsp.FixedFromFloat(s.Position.X),
			Y:       bsp.FixedFromFloat(s.Position.Y),
		}
	}
	return out
}
