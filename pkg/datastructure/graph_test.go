package datastructure

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/lintang-b-s/Postmanx/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	sqA = NewVertexKey(0, 0)
	sqB = NewVertexKey(1, 0)
	sqC = NewVertexKey(1, 1)
	sqD = NewVertexKey(0, 1)
)

// square a-b-c-d-a with unit sides and the diagonal a-c.
func squareWithDiagonal(diagonal float64) *Graph {
	g := NewGraph()
	g.AddEdge(sqA, sqB, NewEdgeAttributes("south", 1, "residential"))
	g.AddEdge(sqB, sqC, NewEdgeAttributes("east", 1, "residential"))
	g.AddEdge(sqC, sqD, NewEdgeAttributes("north", 1, "residential"))
	g.AddEdge(sqD, sqA, NewEdgeAttributes("west", 1, "residential"))
	g.AddEdge(sqA, sqC, NewEdgeAttributes("diagonal", diagonal, "service"))
	return g
}

func TestGraphDegreeAndParallelEdges(t *testing.T) {
	g := squareWithDiagonal(1.5)

	require.Equal(t, 4, g.NumberOfVertices())
	require.Equal(t, 5, g.NumberOfEdges())

	deg, ok := g.DegreeOf(sqA)
	require.True(t, ok)
	assert.Equal(t, 3, deg)
	deg, _ = g.DegreeOf(sqB)
	assert.Equal(t, 2, deg)

	_, ok = g.DegreeOf(NewVertexKey(5, 5))
	assert.False(t, ok)

	// parallel edge appends, it does not merge
	g.AddEdge(sqA, sqB, NewEdgeAttributes("south service road", 1.2, "service"))
	deg, _ = g.DegreeOf(sqA)
	assert.Equal(t, 4, deg)

	aId, _ := g.GetVertexID(sqA)
	bId, _ := g.GetVertexID(sqB)
	assert.Equal(t, []Index{0, 5}, g.EdgesBetween(aId, bId))
	assert.Equal(t, []Index{0, 5}, g.EdgesBetween(bId, aId))

	attrs, ok := g.GetEdgeData(sqB, sqA)
	require.True(t, ok)
	assert.Equal(t, "south", attrs.Name)

	_, ok = g.GetEdgeData(sqB, sqD)
	assert.False(t, ok)
}

func TestGraphSelfLoopCountsTwice(t *testing.T) {
	g := NewGraph()
	g.AddEdge(sqA, sqA, NewEdgeAttributes("cul-de-sac", 0.1, ""))
	deg, _ := g.DegreeOf(sqA)
	assert.Equal(t, 2, deg)
	assert.Empty(t, g.OddDegreeVertices())
	assert.Equal(t, []Index{0}, g.EdgesBetween(0, 0))
}

func TestOddDegreeVerticesAlwaysEvenCount(t *testing.T) {
	graphs := map[string]*Graph{
		"square with diagonal": squareWithDiagonal(1.5),
		"path":                 pathGraph(5),
		"star":                 starGraph(5),
	}
	for name, g := range graphs {
		t.Run(name, func(t *testing.T) {
			odd := g.OddDegreeVertices()
			assert.Equal(t, 0, len(odd)%2)
			for _, v := range odd {
				assert.Equal(t, 1, g.Degree(v)%2)
			}
		})
	}
}

func TestEdgesIsRestartable(t *testing.T) {
	g := squareWithDiagonal(1.5)
	count := func() int {
		n := 0
		for range g.Edges() {
			n++
		}
		return n
	}
	assert.Equal(t, 5, count())
	assert.Equal(t, 5, count())

	// early stop does not disturb the next pass
	for e := range g.Edges() {
		if e.GetID() == 1 {
			break
		}
	}
	assert.Equal(t, 5, count())
}

func TestCloneIsIndependent(t *testing.T) {
	g := squareWithDiagonal(1.5)
	c := g.Clone()
	c.AddDuplicateEdge(0)

	assert.Equal(t, 5, g.NumberOfEdges())
	assert.Equal(t, 6, c.NumberOfEdges())
	assert.True(t, c.GetEdge(5).IsDuplicate())
	assert.Equal(t, "south", c.GetEdge(5).GetName())
	assert.InDelta(t, 5.5, g.TotalLength(), 1e-12)
	assert.InDelta(t, 6.5, c.TotalLength(), 1e-12)
}

func TestValidate(t *testing.T) {
	g := squareWithDiagonal(1.5)
	require.NoError(t, g.Validate(true))

	g.AddEdge(sqB, sqD, NewEdgeAttributes("", 1.4, ""))
	require.NoError(t, g.Validate(false))
	err := g.Validate(true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrMissingEdgeAttribute))

	g.AddEdge(sqB, sqD, NewEdgeAttributes("broken", math.NaN(), ""))
	err = g.Validate(false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrMissingEdgeAttribute))
}

func TestParseVertexKey(t *testing.T) {
	tests := []struct {
		in      string
		want    VertexKey
		wantErr bool
	}{
		{in: "(-84.1120371, 34.2071932)", want: NewVertexKey(-84.1120371, 34.2071932)},
		{in: "[-84.1, 34.2]", want: NewVertexKey(-84.1, 34.2)},
		{in: "-84.1,34.2", want: NewVertexKey(-84.1, 34.2)},
		{in: "(-84.1, 34.2, 312.5)", want: NewVertexKey(-84.1, 34.2)},
		{in: "(-84.1)", wantErr: true},
		{in: "(abc, 34.2)", wantErr: true},
		{in: "(200, 34.2)", wantErr: true},
		{in: "(10, NaN)", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVertexKey(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, util.ErrInvalidCoordinate))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVertexKeyStringRoundTrip(t *testing.T) {
	keys := []VertexKey{
		NewVertexKey(-84.11203710000001, 34.20719320000002),
		NewVertexKey(0.1+0.2, -0.3),
		NewVertexKey(179.99999999999997, -89.99999999999999),
	}
	for _, k := range keys {
		got, err := ParseVertexKey(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
}

func TestSignedZeroIsOneVertex(t *testing.T) {
	g := NewGraph()
	pos := g.AddVertex(NewVertexKey(0, 0))
	neg := g.AddVertex(NewVertexKey(math.Copysign(0, -1), math.Copysign(0, -1)))
	assert.Equal(t, pos, neg)
	assert.Equal(t, 1, g.NumberOfVertices())

	g.AddEdge(NewVertexKey(math.Copysign(0, -1), 0), sqB, NewEdgeAttributes("x", 1, ""))
	deg, ok := g.DegreeOf(sqA)
	require.True(t, ok)
	assert.Equal(t, 1, deg)
}

func TestVertexKeyLess(t *testing.T) {
	assert.True(t, NewVertexKey(0, 5).Less(NewVertexKey(1, 0)))
	assert.True(t, NewVertexKey(1, 0).Less(NewVertexKey(1, 2)))
	assert.False(t, NewVertexKey(1, 2).Less(NewVertexKey(1, 2)))
}

func TestConnectedComponents(t *testing.T) {
	g := squareWithDiagonal(1.5)
	g.AddVertex(NewVertexKey(9, 9)) // isolated vertices do not count
	assert.True(t, g.IsConnected())

	far1, far2, far3 := NewVertexKey(10, 10), NewVertexKey(10, 11), NewVertexKey(10, 12)
	g.AddEdge(far1, far2, NewEdgeAttributes("island", 1, ""))
	assert.False(t, g.IsConnected())
	require.Len(t, g.ConnectedComponents(), 2)

	largest := g.LargestComponent()
	assert.Equal(t, 5, largest.NumberOfEdges())
	assert.Equal(t, 4, largest.NumberOfVertices())
	assert.True(t, largest.IsConnected())

	g.AddEdge(far2, far3, NewEdgeAttributes("island", 1, ""))
	g.AddEdge(far3, far1, NewEdgeAttributes("island", 1, ""))
	g.AddEdge(far3, far1, NewEdgeAttributes("island", 1, ""))
	g.AddEdge(far3, far1, NewEdgeAttributes("island", 1, ""))
	g.AddEdge(far3, far1, NewEdgeAttributes("island", 1, ""))
	largest = g.LargestComponent()
	assert.Equal(t, 6, largest.NumberOfEdges())
	_, ok := largest.GetVertexID(far3)
	assert.True(t, ok)
}

func TestGraphSerializationRoundTrip(t *testing.T) {
	g := squareWithDiagonal(1.5)
	g.AddEdge(NewVertexKey(-84.11203710000001, 34.20719320000002), sqA,
		NewEdgeAttributes(`Peachtree "Old" Rd NE`, 0.25, "primary"))
	g.AddDuplicateEdge(2)
	g.AddSyntheticEdge(1, 3, 1.41)

	var buf bytes.Buffer
	require.NoError(t, g.WriteGraph(&buf))

	got, err := ReadGraph(&buf)
	require.NoError(t, err)

	require.Equal(t, g.NumberOfVertices(), got.NumberOfVertices())
	require.Equal(t, g.NumberOfEdges(), got.NumberOfEdges())
	for v, k := range g.Vertices() {
		assert.Equal(t, k, got.GetVertexKey(v))
	}
	for e := range g.Edges() {
		ge := got.GetEdge(e.GetID())
		assert.Equal(t, e.GetFrom(), ge.GetFrom())
		assert.Equal(t, e.GetTo(), ge.GetTo())
		assert.Equal(t, e.GetAttributes(), ge.GetAttributes())
		assert.Equal(t, e.IsSynthetic(), ge.IsSynthetic())
		assert.Equal(t, e.IsDuplicate(), ge.IsDuplicate())
	}
}

func TestMinHeapTieBreak(t *testing.T) {
	h := NewFourAryHeap[string]().WithTieBreak(func(a, b string) bool { return a < b })
	for _, s := range []string{"d", "b", "c", "a", "e"} {
		h.Insert(NewPriorityQueueNode(1.0, s))
	}
	h.Insert(NewPriorityQueueNode(0.5, "z"))

	got := make([]string, 0, 6)
	for !h.IsEmpty() {
		n, err := h.ExtractMin()
		require.NoError(t, err)
		got = append(got, n.GetItem())
	}
	assert.Equal(t, []string{"z", "a", "b", "c", "d", "e"}, got)

	_, err := h.ExtractMin()
	assert.ErrorIs(t, err, ErrHeapEmpty)
}

func TestMinHeapDecreaseKey(t *testing.T) {
	h := NewBinaryHeap[int]()
	nodes := make([]*PriorityQueueNode[int], 0, 5)
	for i := 0; i < 5; i++ {
		n := NewPriorityQueueNode(float64(10+i), i)
		nodes = append(nodes, n)
		h.Insert(n)
	}
	require.NoError(t, h.DecreaseKey(nodes[4], 1))
	require.Error(t, h.DecreaseKey(nodes[3], 100))

	top, err := h.ExtractMin()
	require.NoError(t, err)
	assert.Equal(t, 4, top.GetItem())
	assert.Equal(t, 10.0, h.GetMinRank())
}

func pathGraph(n int) *Graph {
	g := NewGraph()
	for i := 0; i < n-1; i++ {
		g.AddEdge(NewVertexKey(float64(i), 0), NewVertexKey(float64(i+1), 0), NewEdgeAttributes("path", 1, ""))
	}
	return g
}

func starGraph(n int) *Graph {
	g := NewGraph()
	for i := 1; i <= n; i++ {
		g.AddEdge(NewVertexKey(0, 0), NewVertexKey(float64(i), 1), NewEdgeAttributes("spoke", 1, ""))
	}
	return g
}
