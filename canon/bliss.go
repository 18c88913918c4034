package canon

import (
	"github.com/timtadh/goiso/bliss"
)

// Bliss canonicalizes with the bliss canonical labeling. Bliss exposes the
// labeling only, so automorphism generators are recovered by
// individualization: two lowest colored nodes lie in the same orbit iff the
// canonical forms of the graph with either of them recolored are equal, and
// the two labelings then compose into an automorphism mapping one to the
// other.
type Bliss struct{}

func (Bliss) Canonicalize(g *Graph, report func(perm []int)) ([]int, error) {
	colors := make([]int, len(g.Nodes))
	low, high := 0, 0
	for i, n := range g.Nodes {
		colors[i] = n.Color
		if i == 0 || n.Color < low {
			low = n.Color
		}
		if i == 0 || n.Color > high {
			high = n.Color
		}
	}
	lab := blissLabel(g, colors)
	if report == nil {
		return lab, nil
	}
	type individual struct {
		node int
		lab  []int
		form *Form
	}
	classes := make([][]individual, 0, len(g.Nodes))
	for i := range g.Nodes {
		if colors[i] != low {
			continue
		}
		colors[i] = high + 1
		ilab := blissLabel(g, colors)
		colors[i] = low
		ind := individual{node: i, lab: ilab, form: colored(g, colors, ilab, i, high+1)}
		placed := false
		for c := range classes {
			if classes[c][0].form.Equals(ind.form) {
				classes[c] = append(classes[c], ind)
				placed = true
				break
			}
		}
		if !placed {
			classes = append(classes, []individual{ind})
		}
	}
	for _, class := range classes {
		r := class[0]
		for _, w := range class[1:] {
			report(compose(r.lab, w.lab))
		}
	}
	return lab, nil
}

// compose returns the automorphism taking each node i to the node that w
// places where r places i.
func compose(r, w []int) []int {
	inv := make([]int, len(w))
	for i, p := range w {
		inv[p] = i
	}
	perm := make([]int, len(r))
	for i, p := range r {
		perm[i] = inv[p]
	}
	return perm
}

func colored(g *Graph, colors, lab []int, node, color int) *Form {
	f := relabel(g, lab)
	for i := range g.Nodes {
		f.Colors[lab[i]] = colors[i]
	}
	f.Colors[lab[node]] = color
	return f
}

func blissLabel(g *Graph, colors []int) []int {
	bMap := bliss.NewMap(len(g.Nodes), 2*len(g.Edges), vertexIter(colors), edgeIter(g.Edges))
	vord, _, _ := bMap.CanonicalPermutation()
	return vord
}

func vertexIter(colors []int) (vi bliss.VertexIterator) {
	i := 0
	vi = func() (color int, _ bliss.VertexIterator) {
		if i >= len(colors) {
			return 0, nil
		}
		color = colors[i]
		i++
		return color, vi
	}
	return vi
}

// bliss works on digraphs so every undirected edge is given in both
// directions.
func edgeIter(E []Edge) (ei bliss.EdgeIterator) {
	i := 0
	ei = func() (src, targ, color int, _ bliss.EdgeIterator) {
		if i >= 2*len(E) {
			return 0, 0, 0, nil
		}
		e := E[i/2]
		if i%2 == 0 {
			src, targ = e.Src, e.Dst
		} else {
			src, targ = e.Dst, e.Src
		}
		i++
		return src, targ, 0, ei
	}
	return ei
}
