package osmparser

import (
	"testing"

	da "github.com/lintang-b-s/Postmanx/pkg/datastructure"
	"github.com/lintang-b-s/Postmanx/pkg/geo"
	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAcceptOsmWay(t *testing.T) {
	tests := []struct {
		name string
		tags osm.Tags
		want bool
	}{
		{name: "residential", tags: osm.Tags{{Key: "highway", Value: "residential"}}, want: true},
		{name: "service", tags: osm.Tags{{Key: "highway", Value: "service"}}, want: true},
		{name: "footway", tags: osm.Tags{{Key: "highway", Value: "footway"}}, want: false},
		{name: "pedestrian area", tags: osm.Tags{{Key: "highway", Value: "residential"}, {Key: "area", Value: "yes"}}, want: false},
		{name: "private", tags: osm.Tags{{Key: "highway", Value: "service"}, {Key: "access", Value: "private"}}, want: false},
		{name: "roundabout without highway", tags: osm.Tags{{Key: "junction", Value: "roundabout"}}, want: true},
		{name: "building", tags: osm.Tags{{Key: "building", Value: "yes"}}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, acceptOsmWay(&osm.Way{Tags: tt.tags}))
		})
	}
}

func TestBuildGraph(t *testing.T) {
	p := NewOSMParser(zap.NewNop(), geo.Kilometers)
	p.addWay(&osm.Way{
		ID:    1,
		Nodes: osm.WayNodes{{ID: 10}, {ID: 11}, {ID: 12}},
		Tags:  osm.Tags{{Key: "highway", Value: "residential"}, {Key: "name", Value: "Jalan Malioboro"}},
	})
	p.addWay(&osm.Way{
		ID:    2,
		Nodes: osm.WayNodes{{ID: 12}, {ID: 10}, {ID: 99}},
		Tags:  osm.Tags{{Key: "highway", Value: "primary"}, {Key: "ref", Value: "N3"}},
	})
	p.acceptedNodeMap[10] = NewNodeCoord(-7.7926, 110.3658)
	p.acceptedNodeMap[11] = NewNodeCoord(-7.7936, 110.3658)
	p.acceptedNodeMap[12] = NewNodeCoord(-7.7936, 110.3668)
	// node 99 lies outside the extract

	g := p.buildGraph()
	require.Equal(t, 3, g.NumberOfVertices())
	require.Equal(t, 3, g.NumberOfEdges())
	assert.Empty(t, g.OddDegreeVertices())

	n10 := da.NewVertexKey(110.3658, -7.7926)
	n11 := da.NewVertexKey(110.3658, -7.7936)
	n12 := da.NewVertexKey(110.3668, -7.7936)

	attrs, ok := g.GetEdgeData(n10, n11)
	require.True(t, ok)
	assert.Equal(t, "Jalan Malioboro", attrs.Name)
	assert.Equal(t, "residential", attrs.Type)
	assert.InDelta(t, 0.1106, attrs.Length, 0.001)

	attrs, ok = g.GetEdgeData(n12, n10)
	require.True(t, ok)
	assert.Equal(t, "N3", attrs.Name)
	assert.Equal(t, "primary", attrs.Type)
}
