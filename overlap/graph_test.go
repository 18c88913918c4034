package overlap

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"math/rand"
)

// build makes a graph over nodes 0..n-1 with the given edges.
func build(n int, edges [][2]int) *Graph {
	g := New(false)
	for i := 0; i < n; i++ {
		g.nodes = append(g.nodes, &Node{Emb: []int{i}})
	}
	for _, e := range edges {
		a, b := g.nodes[e[0]], g.nodes[e[1]]
		a.adjs = append(a.adjs, b)
		a.deg++
		b.adjs = append(b.adjs, a)
		b.deg++
	}
	return g
}

func cycle(n int) [][2]int {
	edges := make([][2]int, 0, n)
	for i := 0; i < n; i++ {
		edges = append(edges, [2]int{i, (i + 1) % n})
	}
	return edges
}

func petersen() *Graph {
	edges := cycle(5)
	for i := 0; i < 5; i++ {
		edges = append(edges, [2]int{i, i + 5})
		edges = append(edges, [2]int{i + 5, (i+2)%5 + 5})
	}
	return build(10, edges)
}

func TestMISDisjointEdges(t *testing.T) {
	x := assert.New(t)
	g := New(false)
	x.True(g.Add([]int{1, 2}))
	x.True(g.Add([]int{2, 3}))
	x.True(g.Add([]int{4, 5}))
	x.True(g.Add([]int{5, 6}))
	x.True(g.Add([]int{7, 8}))
	x.Equal(5, g.Len())
	x.Equal(1, g.Nodes()[0].Degree())
	x.Equal(0, g.Nodes()[4].Degree())
	x.Equal(3, g.MISSize(false))
	x.True(g.MISSize(true) <= 3)
}

func TestAddIgnoresDuplicates(t *testing.T) {
	x := assert.New(t)
	g := New(false)
	x.True(g.Add([]int{1, 2}))
	x.False(g.Add([]int{1, 2}))
	x.Equal(1, g.Len())
	x.Equal(1, g.MISSize(false))
	x.True(g.Add([]int{2, 1}))
	x.Equal(1, g.MISSize(false))
	x.True(g.Add([]int{3, 4}))
	x.Equal(2, g.MISSize(false))
}

func TestSmallGraphs(t *testing.T) {
	x := assert.New(t)
	x.Equal(0, New(false).MISSize(false))
	x.Equal(2, build(2, nil).MISSize(false))
	x.Equal(1, build(2, [][2]int{{0, 1}}).MISSize(false))
	x.Equal(1, build(3, cycle(3)).MISSize(false))
}

func TestMISExact(t *testing.T) {
	x := assert.New(t)
	cases := []struct {
		name string
		g    func() *Graph
		size int
	}{
		{"c5", func() *Graph { return build(5, cycle(5)) }, 2},
		{"c6", func() *Graph { return build(6, cycle(6)) }, 3},
		{"c7", func() *Graph { return build(7, cycle(7)) }, 3},
		{"k4", func() *Graph {
			return build(4, [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}})
		}, 1},
		{"k33", func() *Graph {
			return build(6, [][2]int{{0, 3}, {0, 4}, {0, 5}, {1, 3}, {1, 4}, {1, 5}, {2, 3}, {2, 4}, {2, 5}})
		}, 3},
		{"bowtie", func() *Graph {
			return build(5, [][2]int{{0, 1}, {1, 2}, {0, 2}, {2, 3}, {3, 4}, {2, 4}})
		}, 2},
		{"petersen", petersen, 4},
		{"c5 and c6", func() *Graph {
			edges := cycle(5)
			for _, e := range cycle(6) {
				edges = append(edges, [2]int{e[0] + 5, e[1] + 5})
			}
			return build(11, edges)
		}, 5},
	}
	for _, c := range cases {
		x.Equal(c.size, c.g().MISSize(false), c.name)
		x.True(c.g().MISSize(true) <= c.size, c.name)
		x.True(c.g().MISSize(true) >= 1, c.name)
	}
}

func TestMISIsRepeatable(t *testing.T) {
	x := assert.New(t)
	g := petersen()
	x.Equal(4, g.MISSize(false))
	x.Equal(4, g.MISSize(false))
}

type nodeState struct {
	deg, red, mark int
}

func prepare(g *Graph) {
	for _, s := range g.nodes {
		s.red = s.deg
		s.mark = -1
	}
	g.sel = 0
	g.rem = len(g.nodes)
	g.pos = 0
	g.stack = make([]*Node, len(g.nodes))
}

func snapshot(g *Graph) ([]nodeState, int, int, int) {
	states := make([]nodeState, 0, len(g.nodes))
	for _, s := range g.nodes {
		states = append(states, nodeState{s.deg, s.red, s.mark})
	}
	return states, g.sel, g.rem, g.pos
}

func TestUndoReplay(t *testing.T) {
	x := assert.New(t)
	graphs := map[string]*Graph{
		"petersen": petersen(),
		"c5":       build(5, cycle(5)),
		"path":     build(4, [][2]int{{0, 1}, {1, 2}, {2, 3}}),
	}
	for name, g := range graphs {
		prepare(g)
		before, sel, rem, pos := snapshot(g)
		for _, s := range g.nodes {
			g.selectNode(s)
			x.True(g.pos >= 1, name)
			g.restore(s)
			after, sel2, rem2, pos2 := snapshot(g)
			x.Equal(before, after, name)
			x.Equal([]int{sel, rem, pos}, []int{sel2, rem2, pos2}, name)

			g.exclude(s)
			g.restore(s)
			after, sel2, rem2, pos2 = snapshot(g)
			x.Equal(before, after, name)
			x.Equal([]int{sel, rem, pos}, []int{sel2, rem2, pos2}, name)
		}
		// nested decisions unwind in order
		a, b := g.nodes[0], g.nodes[len(g.nodes)-1]
		g.exclude(a)
		mid, _, _, _ := snapshot(g)
		if b.mark < 0 {
			g.selectNode(b)
			g.restore(b)
			again, _, _, _ := snapshot(g)
			x.Equal(mid, again, name)
		}
		g.restore(a)
		after, _, _, _ := snapshot(g)
		x.Equal(before, after, name)
	}
}

func TestRestorePanicsOnEmptyStack(t *testing.T) {
	x := assert.New(t)
	g := petersen()
	prepare(g)
	x.Panics(func() { g.restore(g.nodes[0]) })
}

func TestHarmfulOverlap(t *testing.T) {
	x := assert.New(t)
	x.True(OverlapsHarmfully([]int{0, 1, 2}, []int{1, 0, 5}))
	x.False(OverlapsHarmfully([]int{0, 1}, []int{1, 0}))
	x.True(Overlaps([]int{0, 1}, []int{1, 0}))
	x.True(OverlapsHarmfully([]int{0, 1, 2}, []int{0, 3, 4}))
	x.False(OverlapsHarmfully([]int{0, 1, 2}, []int{1, 2, 3}))
	x.True(Overlaps([]int{0, 1, 2}, []int{1, 2, 3}))
	x.False(Overlaps([]int{0, 1, 2}, []int{3, 4, 5}))

	g := New(true)
	x.True(g.Add([]int{0, 1}))
	x.True(g.Add([]int{1, 0}))
	x.True(g.Add([]int{1, 2}))
	// only [1 0] and [1 2] agree on a coordinate
	x.Equal(2, g.MISSize(false))
	g = New(false)
	g.Add([]int{0, 1})
	g.Add([]int{1, 0})
	g.Add([]int{1, 2})
	x.Equal(1, g.MISSize(false))
}

func TestHarmfulImpliesOverlap(t *testing.T) {
	x := assert.New(t)
	r := rand.New(rand.NewSource(7))
	for size := 1; size <= 5; size++ {
		for i := 0; i < 200; i++ {
			a := r.Perm(8)[:size]
			b := r.Perm(8)[:size]
			if OverlapsHarmfully(a, b) {
				x.True(Overlaps(a, b), "%v %v", a, b)
			}
		}
	}
}
