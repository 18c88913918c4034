package canon

import (
	"sort"
)

import (
	"github.com/timtadh/data-structures/errors"
)

// Canonicalizer computes a canonical labeling of a colored graph. The
// returned slice gives, for every node index, its canonical position. Every
// automorphism generator found along the way is passed to report as a node
// permutation (perm[i] is the image of node i). report may be nil.
type Canonicalizer interface {
	Canonicalize(g *Graph, report func(perm []int)) ([]int, error)
}

// Canonicalize runs c on g and interprets the result. The returned form has
// the nodes ordered by color; within the lowest color the engine's order is
// kept and every other node is placed by the positions of its lower colored
// neighbors. When g is already in that order the labeling is the identity and
// only the edge list is sorted.
func Canonicalize(c Canonicalizer, g *Graph) (*Form, *Orbits, error) {
	n := len(g.Nodes)
	uf := newUnionFind(n)
	if n == 0 {
		return &Form{}, uf.orbits(g), nil
	}
	lab, err := c.Canonicalize(g, func(perm []int) {
		assertPermutation(perm, n)
		for i, p := range perm {
			if i != p {
				uf.union(i, p)
			}
		}
	})
	if err != nil {
		return nil, nil, err
	}
	assertPermutation(lab, n)
	pos := normalize(g, lab)
	form := relabel(g, pos)
	if !isIdentity(pos) {
		id := identity(n)
		if plain := relabel(g, id); plain.Equals(form) {
			form = plain
		}
	}
	return form, uf.orbits(g), nil
}

// Equivalent reports whether two graphs are isomorphic under c.
func Equivalent(c Canonicalizer, a, b *Graph) (bool, error) {
	fa, _, err := Canonicalize(c, a)
	if err != nil {
		return false, err
	}
	fb, _, err := Canonicalize(c, b)
	if err != nil {
		return false, err
	}
	return fa.Equals(fb), nil
}

func normalize(g *Graph, lab []int) []int {
	n := len(g.Nodes)
	colors := make([]int, 0, 2)
	byColor := make(map[int][]int)
	for i, node := range g.Nodes {
		if _, has := byColor[node.Color]; !has {
			colors = append(colors, node.Color)
		}
		byColor[node.Color] = append(byColor[node.Color], i)
	}
	sort.Ints(colors)
	pos := make([]int, n)
	for i := range pos {
		pos[i] = -1
	}
	next := 0
	for ci, color := range colors {
		members := byColor[color]
		if ci == 0 {
			sort.Slice(members, func(a, b int) bool {
				return lab[members[a]] < lab[members[b]]
			})
		} else {
			keys := make(map[int][]int, len(members))
			for _, m := range members {
				key := make([]int, 0, len(g.Adj[m]))
				for _, nbr := range g.Adj[m] {
					if pos[nbr] >= 0 {
						key = append(key, pos[nbr])
					}
				}
				sort.Ints(key)
				keys[m] = key
			}
			sort.Slice(members, func(a, b int) bool {
				ka, kb := keys[members[a]], keys[members[b]]
				if LessInts(ka, kb) {
					return true
				} else if LessInts(kb, ka) {
					return false
				}
				return lab[members[a]] < lab[members[b]]
			})
		}
		for _, m := range members {
			pos[m] = next
			next++
		}
	}
	return pos
}

func relabel(g *Graph, pos []int) *Form {
	n := len(g.Nodes)
	f := &Form{
		Colors: make([]int, n),
		Edges:  make([]Edge, 0, len(g.Edges)),
		Orig:   make([]Node, n),
	}
	for i, node := range g.Nodes {
		f.Colors[pos[i]] = node.Color
		f.Orig[pos[i]] = node
	}
	for _, e := range g.Edges {
		s, d := pos[e.Src], pos[e.Dst]
		if d < s {
			s, d = d, s
		}
		f.Edges = append(f.Edges, Edge{s, d})
	}
	sort.Slice(f.Edges, func(i, j int) bool {
		return f.Edges[i].Less(f.Edges[j])
	})
	return f
}

// LessInts orders int slices lexicographically, a proper prefix first.
func LessInts(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func identity(n int) []int {
	id := make([]int, n)
	for i := range id {
		id[i] = i
	}
	return id
}

func isIdentity(perm []int) bool {
	for i, p := range perm {
		if i != p {
			return false
		}
	}
	return true
}

func assertPermutation(perm []int, n int) {
	if len(perm) != n {
		panic(errors.Errorf("permutation has %d entries for %d nodes", len(perm), n))
	}
	seen := make([]bool, n)
	for _, p := range perm {
		if p < 0 || p >= n || seen[p] {
			panic(errors.Errorf("not a permutation %v", perm))
		}
		seen[p] = true
	}
}
