package host

import (
	"sort"
)

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Components splits the complex into its connected components, ordered by
// their smallest vertex. Vertex and face ids are preserved.
func (c *Complex) Components() ([]*Complex, error) {
	g := simple.NewUndirectedGraph()
	for _, v := range c.vertices {
		g.AddNode(simple.Node(v))
	}
	for _, f := range c.Faces {
		for i := 1; i < len(f.Vertices); i++ {
			g.SetEdge(g.NewEdge(simple.Node(f.Vertices[i-1]), simple.Node(f.Vertices[i])))
		}
	}
	ccs := topo.ConnectedComponents(g)
	comp := make(map[int]int, len(c.vertices))
	mins := make([]int, len(ccs))
	for i, cc := range ccs {
		mins[i] = -1
		for _, n := range cc {
			v := int(n.ID())
			comp[v] = i
			if mins[i] < 0 || v < mins[i] {
				mins[i] = v
			}
		}
	}
	order := make([]int, len(ccs))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return mins[order[i]] < mins[order[j]]
	})
	rank := make([]int, len(ccs))
	for r, i := range order {
		rank[i] = r
	}
	faces := make([][]*Face, len(ccs))
	for _, f := range c.Faces {
		r := rank[comp[f.Vertices[0]]]
		faces[r] = append(faces[r], f)
	}
	complexes := make([]*Complex, 0, len(ccs))
	for _, fs := range faces {
		cc, err := New(fs)
		if err != nil {
			return nil, err
		}
		complexes = append(complexes, cc)
	}
	return complexes, nil
}
