package report

import (
	"testing"

	da "github.com/lintang-b-s/Postmanx/pkg/datastructure"
	"github.com/lintang-b-s/Postmanx/pkg/engine/eulerian"
	"github.com/lintang-b-s/Postmanx/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	a = da.NewVertexKey(-84.39, 33.75)
	b = da.NewVertexKey(-84.38, 33.75)
	c = da.NewVertexKey(-84.38, 33.76)
)

func TestBuildCountsArtificialAndDuplicateSteps(t *testing.T) {
	g := da.NewGraph()
	g.AddEdge(a, b, da.NewEdgeAttributes("Peachtree St", 0.6, "primary"))
	g.AddEdge(b, c, da.NewEdgeAttributes("Peachtree St", 0.7, "primary"))
	g.AddEdge(c, a, da.NewEdgeAttributes("", 0.9, "service"))
	old := g.TotalLength()
	g.AddDuplicateEdge(0)
	aId, _ := g.GetVertexID(a)
	bId, _ := g.GetVertexID(b)
	g.AddSyntheticEdge(aId, bId, 123) // stored length is ignored for synthetic steps

	circuit, err := eulerian.ExtractCircuit(g)
	require.NoError(t, err)

	rep := Build(g, circuit, old, geo.Miles)
	require.Len(t, rep.Steps, 5)
	assert.Equal(t, 5, rep.EdgeCount)
	assert.Equal(t, 1, rep.ArtificialEdgeCount)
	assert.Equal(t, 1, rep.DuplicatedEdgeCount)
	assert.Equal(t, "miles", rep.Unit)

	synthetic := geo.Distance(a.Lon, a.Lat, b.Lon, b.Lat, geo.Miles)
	assert.InDelta(t, 0.6+0.7+0.9+0.6+synthetic, rep.TotalDistance, 1e-9)
	assert.InDelta(t, rep.TotalDistance/old, rep.DistanceMultiplier, 1e-12)

	cumulative := 0.0
	for _, s := range rep.Steps {
		cumulative += s.Length
		assert.InDelta(t, cumulative, s.Cumulative, 1e-9)
		assert.GreaterOrEqual(t, s.Bearing, 0.0)
		assert.Less(t, s.Bearing, 360.0)
		assert.NotEmpty(t, s.Name)
		if s.Artificial {
			assert.Equal(t, UNNAMED_ROAD, s.Name)
			assert.InDelta(t, synthetic, s.Length, 1e-12)
		}
	}
	assert.Equal(t, rep.TotalDistance, rep.Steps[len(rep.Steps)-1].Cumulative)
}

func TestBuildOrderIncrementsOnNameChange(t *testing.T) {
	g := da.NewGraph()
	g.AddEdge(a, b, da.NewEdgeAttributes("Peachtree St", 1, ""))
	g.AddEdge(b, c, da.NewEdgeAttributes("Peachtree St", 1, ""))
	g.AddEdge(c, a, da.NewEdgeAttributes("Edgewood Ave", 1, ""))

	circuit, err := eulerian.ExtractCircuit(g)
	require.NoError(t, err)
	rep := Build(g, circuit, g.TotalLength(), geo.Kilometers)

	orders := make([]int, 0, len(rep.Steps))
	for _, s := range rep.Steps {
		orders = append(orders, s.Order)
	}
	assert.Equal(t, []int{0, 0, 1}, orders)
	assert.Equal(t, 1.0, rep.DistanceMultiplier)
	assert.Equal(t, 0, rep.ArtificialEdgeCount)
}

func TestBuildBearing(t *testing.T) {
	g := da.NewGraph()
	g.AddEdge(a, b, da.NewEdgeAttributes("east", 1, ""))
	g.AddDuplicateEdge(0)

	circuit, err := eulerian.ExtractCircuit(g)
	require.NoError(t, err)
	rep := Build(g, circuit, 1, geo.Miles)

	require.Len(t, rep.Steps, 2)
	assert.InDelta(t, 90, rep.Steps[0].Bearing, 0.01)
	assert.InDelta(t, 270, rep.Steps[1].Bearing, 0.01)
	assert.Equal(t, 2.0, rep.DistanceMultiplier)
	assert.Len(t, rep.Coordinates(), 3)
}

func TestBuildEmptyCircuit(t *testing.T) {
	rep := Build(da.NewGraph(), nil, 0, geo.Miles)
	assert.Equal(t, 0.0, rep.TotalDistance)
	assert.Equal(t, 0.0, rep.DistanceMultiplier)
	assert.Empty(t, rep.Steps)
	assert.Empty(t, rep.Coordinates())
}
