package canon

import (
	"sort"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/simplets/stats"
)

const DefaultExhaustiveLimit = 9

// Exhaustive canonicalizes by trying every ordering of the lowest colored
// nodes and keeping the ordering whose sorted edge list is smallest. Every
// other node is placed by the positions of its neighbors, so every other
// node may only neighbor lowest colored nodes. Both graph shapes built by
// this package satisfy that.
type Exhaustive struct {
	// Limit bounds the number of lowest colored nodes. Zero means
	// DefaultExhaustiveLimit.
	Limit int
}

func (x Exhaustive) Canonicalize(g *Graph, report func(perm []int)) ([]int, error) {
	limit := x.Limit
	if limit <= 0 {
		limit = DefaultExhaustiveLimit
	}
	n := len(g.Nodes)
	low := 0
	for i, node := range g.Nodes {
		if i == 0 || node.Color < low {
			low = node.Color
		}
	}
	base := make([]int, 0, n)
	rest := make([]int, 0, n)
	for i, node := range g.Nodes {
		if node.Color == low {
			base = append(base, i)
		} else {
			rest = append(rest, i)
		}
	}
	for _, i := range rest {
		for _, j := range g.Adj[i] {
			if g.Nodes[j].Color != low {
				return nil, errors.Errorf("exhaustive canonicalization needs node %d to only neighbor color %d nodes", i, low)
			}
		}
	}
	if len(base) > limit {
		return nil, errors.Errorf("%d nodes are too many for exhaustive canonicalization (limit %d)", len(base), limit)
	}
	var best []int
	var bestEdges []Edge
	stats.Permutations(len(base), func(order []int) bool {
		pos := make([]int, n)
		for p, k := range order {
			pos[base[k]] = p
		}
		place(g, pos, base, rest)
		edges := relabel(g, pos).Edges
		if best == nil {
			best, bestEdges = pos, edges
			return false
		}
		switch cmpEdges(edges, bestEdges) {
		case -1:
			best, bestEdges = pos, edges
		case 0:
			if report != nil {
				report(compose(best, pos))
			}
		}
		return false
	})
	if best == nil {
		best = identity(n)
	}
	return best, nil
}

// place positions the non-base nodes after the base nodes, ordered by color
// then by the sorted positions of their neighbors.
func place(g *Graph, pos []int, base, rest []int) {
	keys := make(map[int][]int, len(rest))
	for _, i := range rest {
		key := make([]int, 0, len(g.Adj[i]))
		for _, j := range g.Adj[i] {
			key = append(key, pos[j])
		}
		sort.Ints(key)
		keys[i] = key
	}
	sorted := make([]int, len(rest))
	copy(sorted, rest)
	sort.SliceStable(sorted, func(a, b int) bool {
		na, nb := g.Nodes[sorted[a]], g.Nodes[sorted[b]]
		if na.Color != nb.Color {
			return na.Color < nb.Color
		}
		return LessInts(keys[sorted[a]], keys[sorted[b]])
	})
	for p, i := range sorted {
		pos[i] = len(base) + p
	}
}

func cmpEdges(a, b []Edge) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] == b[i] {
			continue
		}
		if a[i].Less(b[i]) {
			return -1
		}
		return 1
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}
