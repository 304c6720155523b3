package datastructure

import (
	"iter"
	"math"

	"github.com/lintang-b-s/Postmanx/pkg/util"
)

type Index uint32

const INVALID_VERTEX_ID Index = math.MaxUint32

type EdgeAttributes struct {
	Name   string  `json:"name"`
	Length float64 `json:"length"`
	Type   string  `json:"type,omitempty"`
}

func NewEdgeAttributes(name string, length float64, roadType string) EdgeAttributes {
	return EdgeAttributes{Name: name, Length: length, Type: roadType}
}

// Edge is one undirected street segment. parallel edges between the same pair of vertices are separate Edges.
type Edge struct {
	id        Index
	from, to  Index
	attrs     EdgeAttributes
	synthetic bool // no source road behind it, inserted to pair odd vertices directly
	duplicate bool // parallel copy of a source road inserted by augmentation
}

func (e *Edge) GetID() Index {
	return e.id
}

func (e *Edge) GetFrom() Index {
	return e.from
}

func (e *Edge) GetTo() Index {
	return e.to
}

func (e *Edge) GetAttributes() EdgeAttributes {
	return e.attrs
}

func (e *Edge) GetName() string {
	return e.attrs.Name
}

func (e *Edge) GetLength() float64 {
	return e.attrs.Length
}

func (e *Edge) GetType() string {
	return e.attrs.Type
}

func (e *Edge) IsSynthetic() bool {
	return e.synthetic
}

func (e *Edge) IsDuplicate() bool {
	return e.duplicate
}

func (e *Edge) IsSelfLoop() bool {
	return e.from == e.to
}

// Head returns the endpoint of e opposite to v.
func (e *Edge) Head(v Index) Index {
	if e.from == v {
		return e.to
	}
	return e.from
}

// Graph is an undirected multigraph keyed by exact vertex coordinates.
// vertices and each incidence list keep insertion order, so every traversal over the graph is deterministic.
type Graph struct {
	vertices  []VertexKey
	vertexIds map[VertexKey]Index
	adj       [][]Index // edge ids incident to each vertex. a self-loop appears twice
	edges     []*Edge
}

func NewGraph() *Graph {
	return NewGraphWithSize(0, 0)
}

func NewGraphWithSize(numVertices, numEdges int) *Graph {
	return &Graph{
		vertices:  make([]VertexKey, 0, numVertices),
		vertexIds: make(map[VertexKey]Index, numVertices),
		adj:       make([][]Index, 0, numVertices),
		edges:     make([]*Edge, 0, numEdges),
	}
}

// AddVertex returns the id of k, creating the vertex on first reference.
func (g *Graph) AddVertex(k VertexKey) Index {
	if id, ok := g.vertexIds[k]; ok {
		return id
	}
	id := Index(len(g.vertices))
	g.vertices = append(g.vertices, k)
	g.vertexIds[k] = id
	g.adj = append(g.adj, nil)
	return id
}

func (g *Graph) GetVertexID(k VertexKey) (Index, bool) {
	id, ok := g.vertexIds[k]
	return id, ok
}

func (g *Graph) GetVertexKey(v Index) VertexKey {
	return g.vertices[v]
}

func (g *Graph) NumberOfVertices() int {
	return len(g.vertices)
}

func (g *Graph) NumberOfEdges() int {
	return len(g.edges)
}

// AddEdge always appends a new edge between u and v, it never merges with an existing parallel edge.
func (g *Graph) AddEdge(u, v VertexKey, attrs EdgeAttributes) Index {
	return g.addEdge(g.AddVertex(u), g.AddVertex(v), attrs, false, false)
}

func (g *Graph) AddEdgeByIndex(from, to Index, attrs EdgeAttributes) Index {
	return g.addEdge(from, to, attrs, false, false)
}

// AddDuplicateEdge appends a parallel copy of edge id carrying the same road attributes.
func (g *Graph) AddDuplicateEdge(id Index) Index {
	e := g.edges[id]
	return g.addEdge(e.from, e.to, e.attrs, e.synthetic, true)
}

// AddSyntheticEdge appends a direct link with no source road. length is only an estimate.
func (g *Graph) AddSyntheticEdge(from, to Index, length float64) Index {
	return g.addEdge(from, to, EdgeAttributes{Length: length}, true, false)
}

func (g *Graph) addEdge(from, to Index, attrs EdgeAttributes, synthetic, duplicate bool) Index {
	id := Index(len(g.edges))
	g.edges = append(g.edges, &Edge{
		id:        id,
		from:      from,
		to:        to,
		attrs:     attrs,
		synthetic: synthetic,
		duplicate: duplicate,
	})
	g.adj[from] = append(g.adj[from], id)
	g.adj[to] = append(g.adj[to], id)
	return id
}

func (g *Graph) GetEdge(id Index) *Edge {
	return g.edges[id]
}

// Degree counts incident edges, parallel edges count multiply and a self-loop counts twice.
func (g *Graph) Degree(v Index) int {
	return len(g.adj[v])
}

func (g *Graph) DegreeOf(k VertexKey) (int, bool) {
	id, ok := g.vertexIds[k]
	if !ok {
		return 0, false
	}
	return g.Degree(id), true
}

// IncidentEdges returns the incidence list of v in insertion order. callers must not modify it.
func (g *Graph) IncidentEdges(v Index) []Index {
	return g.adj[v]
}

// ForIncidentEdgesOf calls handle for every edge incident to v with the endpoint on the other side.
func (g *Graph) ForIncidentEdgesOf(v Index, handle func(e *Edge, head Index)) {
	for _, eId := range g.adj[v] {
		e := g.edges[eId]
		handle(e, e.Head(v))
	}
}

// Edges yields every edge in insertion order. each call starts a fresh pass.
func (g *Graph) Edges() iter.Seq[*Edge] {
	return func(yield func(*Edge) bool) {
		for _, e := range g.edges {
			if !yield(e) {
				return
			}
		}
	}
}

// Vertices yields (id, key) in insertion order.
func (g *Graph) Vertices() iter.Seq2[Index, VertexKey] {
	return func(yield func(Index, VertexKey) bool) {
		for i, k := range g.vertices {
			if !yield(Index(i), k) {
				return
			}
		}
	}
}

// EdgesBetween returns the ids of all parallel edges joining u and v, oldest first.
func (g *Graph) EdgesBetween(u, v Index) []Index {
	a, b := u, v
	if len(g.adj[b]) < len(g.adj[a]) {
		a, b = b, a
	}
	var ids []Index
	var prev Index = INVALID_VERTEX_ID
	for _, eId := range g.adj[a] {
		// self-loops are listed twice in a row
		if eId == prev {
			continue
		}
		prev = eId
		if g.edges[eId].Head(a) == b {
			ids = append(ids, eId)
		}
	}
	return ids
}

// GetEdgeData returns the attributes of the first edge (insertion order) joining u and v.
func (g *Graph) GetEdgeData(u, v VertexKey) (EdgeAttributes, bool) {
	uId, ok := g.vertexIds[u]
	if !ok {
		return EdgeAttributes{}, false
	}
	vId, ok := g.vertexIds[v]
	if !ok {
		return EdgeAttributes{}, false
	}
	ids := g.EdgesBetween(uId, vId)
	if len(ids) == 0 {
		return EdgeAttributes{}, false
	}
	return g.edges[ids[0]].attrs, true
}

// ShortestEdgeBetween returns the shortest parallel edge joining u and v, ties going to the oldest.
func (g *Graph) ShortestEdgeBetween(u, v Index) (Index, bool) {
	best, found := Index(0), false
	for _, eId := range g.EdgesBetween(u, v) {
		if !found || g.edges[eId].attrs.Length < g.edges[best].attrs.Length {
			best, found = eId, true
		}
	}
	return best, found
}

// OddDegreeVertices returns every vertex with odd degree, in vertex order.
func (g *Graph) OddDegreeVertices() []Index {
	odd := make([]Index, 0)
	for v := range g.adj {
		if len(g.adj[v])%2 == 1 {
			odd = append(odd, Index(v))
		}
	}
	return odd
}

// TotalLength sums the length attribute of every edge.
func (g *Graph) TotalLength() float64 {
	total := 0.0
	for _, e := range g.edges {
		total += e.attrs.Length
	}
	return total
}

// Clone returns a deep copy, so a pipeline stage can extend it without touching its input.
func (g *Graph) Clone() *Graph {
	c := NewGraphWithSize(len(g.vertices), len(g.edges))
	c.vertices = append(c.vertices, g.vertices...)
	for k, v := range g.vertexIds {
		c.vertexIds[k] = v
	}
	c.adj = make([][]Index, len(g.adj))
	for v := range g.adj {
		c.adj[v] = append([]Index(nil), g.adj[v]...)
	}
	for _, e := range g.edges {
		ec := *e
		c.edges = append(c.edges, &ec)
	}
	return c
}

// Validate rejects negative or non-finite lengths. strict also rejects road edges without a name.
func (g *Graph) Validate(strict bool) error {
	for _, e := range g.edges {
		l := e.attrs.Length
		if math.IsNaN(l) || math.IsInf(l, 0) || l < 0 {
			return util.WrapErrorf(util.ErrMissingEdgeAttribute, util.ErrBadParamInput,
				"edge %d %s-%s has no valid length (got %v)", e.id,
				g.vertices[e.from], g.vertices[e.to], l)
		}
		if strict && !e.synthetic && e.attrs.Name == "" {
			return util.WrapErrorf(util.ErrMissingEdgeAttribute, util.ErrBadParamInput,
				"edge %d %s-%s has no name", e.id, g.vertices[e.from], g.vertices[e.to])
		}
	}
	return nil
}
