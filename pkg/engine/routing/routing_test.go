package routing

import (
	"testing"

	"github.com/lintang-b-s/Postmanx/pkg"
	da "github.com/lintang-b-s/Postmanx/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// a --1-- b --1-- c
// |               |
// +------5--------+   plus a far island d-e
func lineWithShortcut() *da.Graph {
	g := da.NewGraph()
	a, b, c := da.NewVertexKey(0, 0), da.NewVertexKey(1, 0), da.NewVertexKey(2, 0)
	g.AddEdge(a, b, da.NewEdgeAttributes("ab", 1, ""))
	g.AddEdge(b, c, da.NewEdgeAttributes("bc", 1, ""))
	g.AddEdge(a, c, da.NewEdgeAttributes("ac", 5, ""))
	g.AddEdge(da.NewVertexKey(9, 9), da.NewVertexKey(9, 10), da.NewEdgeAttributes("island", 1, ""))
	return g
}

func TestDijkstraPrefersShorterLength(t *testing.T) {
	g := lineWithShortcut()
	spt := NewDijkstra(g).ShortestPath(0)

	assert.Equal(t, 0.0, spt.GetDistance(0))
	assert.Equal(t, 1.0, spt.GetDistance(1))
	assert.Equal(t, 2.0, spt.GetDistance(2))
	assert.False(t, spt.IsReachable(3))
	assert.Equal(t, pkg.INF_WEIGHT, spt.GetDistance(3))

	path, ok := spt.PathTo(g, 2)
	require.True(t, ok)
	assert.Equal(t, []da.Index{0, 1, 2}, path.Vertices)
	assert.Equal(t, []da.Index{0, 1}, path.Edges)
	assert.Equal(t, 2.0, path.Distance)

	_, ok = spt.PathTo(g, 4)
	assert.False(t, ok)

	self, ok := spt.PathTo(g, 0)
	require.True(t, ok)
	assert.Equal(t, []da.Index{0}, self.Vertices)
	assert.Empty(t, self.Edges)
}

func TestDijkstraRelabelsQueuedVertices(t *testing.T) {
	// every vertex is first reached by a long spoke from the hub, then lowered along the chain
	g := da.NewGraph()
	hub := da.NewVertexKey(0, 0)
	prev := hub
	for i := 1; i <= 4; i++ {
		k := da.NewVertexKey(float64(i), 0)
		g.AddEdge(hub, k, da.NewEdgeAttributes("spoke", 10, ""))
		g.AddEdge(prev, k, da.NewEdgeAttributes("chain", 1, ""))
		prev = k
	}

	var spt *ShortestPathTree
	require.NotPanics(t, func() { spt = NewDijkstra(g).ShortestPath(0) })
	for i := 1; i <= 4; i++ {
		v, ok := g.GetVertexID(da.NewVertexKey(float64(i), 0))
		require.True(t, ok)
		assert.Equal(t, float64(i), spt.GetDistance(v))
	}
}

func TestBFSPrefersFewerHops(t *testing.T) {
	g := lineWithShortcut()
	spt := NewBFS(g).ShortestPath(0)

	assert.Equal(t, 1.0, spt.GetDistance(2))
	path, ok := spt.PathTo(g, 2)
	require.True(t, ok)
	assert.Equal(t, []da.Index{2}, path.Edges)
	assert.False(t, spt.IsReachable(3))
}

func TestDijkstraUsesShortestParallelEdge(t *testing.T) {
	g := da.NewGraph()
	a, b := da.NewVertexKey(0, 0), da.NewVertexKey(1, 0)
	g.AddEdge(a, b, da.NewEdgeAttributes("long", 3, ""))
	g.AddEdge(a, b, da.NewEdgeAttributes("short", 2, ""))
	g.AddEdge(a, a, da.NewEdgeAttributes("loop", 0.5, ""))

	spt := NewDijkstra(g).ShortestPath(1)
	path, ok := spt.PathTo(g, 0)
	require.True(t, ok)
	assert.Equal(t, []da.Index{1}, path.Edges)
	assert.Equal(t, 2.0, path.Distance)
}

func TestDijkstraReusableAcrossSources(t *testing.T) {
	g := lineWithShortcut()
	d := NewDijkstra(g)
	first := d.ShortestPath(0)
	second := d.ShortestPath(2)
	assert.Equal(t, 2.0, first.GetDistance(2))
	assert.Equal(t, 2.0, second.GetDistance(0))
	assert.Equal(t, 1.0, second.GetDistance(1))
}
