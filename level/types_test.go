package level

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doomtech/zdbsp/bsp"
)

func squareLevel() *Level {
	l := New()
	l.Vertices = []Vec2{{X: 0, Y: 0}, {X: 64, Y: 0}, {X: 64, Y: 64}, {X: 0, Y: 64}}
	l.Sectors = []Sector{{FloorHeight: 0, CeilingHeight: 128, FloorTexture: "FLOOR0_1", CeilingTexture: "CEIL3_5"}}
	l.Sidedefs = []Sidedef{{Sector: 0}, {Sector: 0}, {Sector: 0}, {Sector: 0}}
	l.Linedefs = []Linedef{
		{V1: 0, V2: 1, Side0: 0, Side1: noSide},
		{V1: 1, V2: 2, Side0: 1, Side1: noSide},
		{V1: 2, V2: 3, Side0: 2, Side1: noSide},
		{V1: 3, V2: 0, Side0: 3, Side1: noSide},
	}
	return l
}

func TestLevelSaveLoadRoundTrip(t *testing.T) {
	l := squareLevel()
	path := filepath.Join(t.TempDir(), "square.yaml")

	require.NoError(t, l.Save(path))

	loaded := New()
	require.NoError(t, loaded.Load(path))

	assert.Equal(t, l.Vertices, loaded.Vertices)
	assert.Equal(t, l.Linedefs, loaded.Linedefs)
	assert.Equal(t, l.Sidedefs, loaded.Sidedefs)
	assert.Equal(t, l.Sectors, loaded.Sectors)
}

func TestToInputPreservesTopology(t *testing.T) {
	l := squareLevel()
	in := l.ToInput()

	require.Len(t, in.Vertices, 4)
	require.Len(t, in.Linedefs, 4)
	require.Len(t, in.Sidedefs, 4)

	for _, ld := range in.Linedefs {
		assert.NotEqual(t, int32(bsp.NoSidedef), ld.Side[0])
		assert.Equal(t, int32(bsp.NoSidedef), ld.Side[1])
	}
}

func TestToInputCarriesSecondSide(t *testing.T) {
	l := squareLevel()
	l.Linedefs[1].TwoSided = true
	l.Linedefs[1].Side1 = 0

	in := l.ToInput()
	assert.Equal(t, int32(0), in.Linedefs[1].Side[1])
	assert.True(t, in.Linedefs[1].TwoSided)
}

func TestToInputBuildsSuccessfully(t *testing.T) {
	l := squareLevel()
	out, err := bsp.Build(l.ToInput())
	require.NoError(t, err)
	assert.Len(t, out.Subsectors, 1)
}

func TestToInputCarriesPolySpots(t *testing.T) {
	l := squareLevel()
	l.PolySpots = []PolySpot{{PolyNum: 1, Position: Vec2{X: 32, Y: 32}}}

	in := l.ToInput()
	require.Len(t, in.PolySpots, 1)
	assert.Equal(t, int32(1), in.PolySpots[0].PolyNum)
}
