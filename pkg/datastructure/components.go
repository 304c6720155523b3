package datastructure

// ConnectedComponents groups every vertex that has at least one edge into connected components.
// components are ordered by their lowest vertex id, and vertices inside a component by discovery order.
func (g *Graph) ConnectedComponents() [][]Index {
	n := g.NumberOfVertices()
	visited := make([]bool, n)
	components := make([][]Index, 0, 1)

	stack := make([]Index, 0, 64)
	for s := Index(0); s < Index(n); s++ {
		if visited[s] || g.Degree(s) == 0 {
			continue
		}
		component := make([]Index, 0, 16)
		visited[s] = true
		stack = append(stack[:0], s)
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			component = append(component, v)
			g.ForIncidentEdgesOf(v, func(e *Edge, head Index) {
				if !visited[head] {
					visited[head] = true
					stack = append(stack, head)
				}
			})
		}
		components = append(components, component)
	}
	return components
}

// IsConnected reports whether all edges lie in a single connected component. isolated vertices are ignored.
func (g *Graph) IsConnected() bool {
	return len(g.ConnectedComponents()) <= 1
}

// LargestComponent returns a new graph restricted to the component holding the most edges
// (ties go to the component found first). vertex and edge order of g is preserved.
func (g *Graph) LargestComponent() *Graph {
	components := g.ConnectedComponents()
	if len(components) <= 1 {
		return g.Clone()
	}

	componentOf := make([]int, g.NumberOfVertices())
	for i := range componentOf {
		componentOf[i] = -1
	}
	edgeCount := make([]int, len(components))
	for c, vs := range components {
		for _, v := range vs {
			componentOf[v] = c
		}
	}
	for _, e := range g.edges {
		edgeCount[componentOf[e.from]]++
	}
	best := 0
	for c := range components {
		if edgeCount[c] > edgeCount[best] {
			best = c
		}
	}

	sub := NewGraphWithSize(len(components[best]), edgeCount[best])
	for v, k := range g.vertices {
		if componentOf[v] == best {
			sub.AddVertex(k)
		}
	}
	for _, e := range g.edges {
		if componentOf[e.from] != best {
			continue
		}
		from, _ := sub.GetVertexID(g.vertices[e.from])
		to, _ := sub.GetVertexID(g.vertices[e.to])
		sub.addEdge(from, to, e.attrs, e.synthetic, e.duplicate)
	}
	return sub
}
