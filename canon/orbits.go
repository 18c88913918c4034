package canon

import (
	"sort"
)

// Orbits partitions the vertices of a pattern into automorphism classes. Only
// vertex nodes are recorded; face nodes never share a class with vertices
// because automorphisms preserve colors.
type Orbits struct {
	rep     map[int]int
	members map[int][]int
}

// Rep returns the representative (smallest member) of v's orbit. A vertex
// unknown to the partition is its own representative.
func (o *Orbits) Rep(v int) int {
	if r, has := o.rep[v]; has {
		return r
	}
	return v
}

// Of returns the members of v's orbit, ascending, v included.
func (o *Orbits) Of(v int) []int {
	if m, has := o.members[o.Rep(v)]; has {
		return m
	}
	return []int{v}
}

// Reps returns every orbit representative, ascending.
func (o *Orbits) Reps() []int {
	reps := make([]int, 0, len(o.members))
	for r := range o.members {
		reps = append(reps, r)
	}
	sort.Ints(reps)
	return reps
}

func (o *Orbits) Len() int {
	return len(o.members)
}

type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{
		parent: make([]int, n),
		rank:   make([]int, n),
	}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(i int) int {
	for uf.parent[i] != i {
		uf.parent[i] = uf.parent[uf.parent[i]]
		i = uf.parent[i]
	}
	return i
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	switch {
	case uf.rank[ra] < uf.rank[rb]:
		uf.parent[ra] = rb
	case uf.rank[ra] > uf.rank[rb]:
		uf.parent[rb] = ra
	default:
		uf.parent[rb] = ra
		uf.rank[ra]++
	}
}

func (uf *unionFind) orbits(g *Graph) *Orbits {
	groups := make(map[int][]int)
	for i, node := range g.Nodes {
		if node.Kind != VertexNode {
			continue
		}
		r := uf.find(i)
		groups[r] = append(groups[r], node.Id)
	}
	o := &Orbits{
		rep:     make(map[int]int),
		members: make(map[int][]int, len(groups)),
	}
	for _, ids := range groups {
		sort.Ints(ids)
		o.members[ids[0]] = ids
		for _, id := range ids {
			o.rep[id] = ids[0]
		}
	}
	return o
}
