package overlap

import (
	"fmt"
	"sort"
)

import (
	"github.com/timtadh/data-structures/set"
	"github.com/timtadh/data-structures/types"
)

// Node is one embedding in an overlap graph. During a maximum independent
// set computation red is the degree within the undecided nodes and mark is
// negative for undecided nodes, even for selected nodes and odd for excluded
// ones.
type Node struct {
	Emb  []int
	deg  int
	red  int
	mark int
	adjs []*Node
	set  *set.SortedSet
}

func (n *Node) Degree() int {
	return n.deg
}

func (n *Node) Adj() []*Node {
	return n.adjs[:n.deg]
}

// component labels every undecided node reachable from n.
func (n *Node) component(label int) {
	n.mark = label
	for _, d := range n.adjs[:n.deg] {
		if d.mark < 0 {
			d.component(label)
		}
	}
}

func (n *Node) String() string {
	return fmt.Sprintf("<node %v deg %d red %d mark %d>", n.Emb, n.deg, n.red, n.mark)
}

// Graph is the overlap graph over the embeddings of one pattern. It is not
// safe for concurrent use.
type Graph struct {
	Harmful bool
	nodes   []*Node

	// search state
	sel   int
	rem   int
	best  int
	buf   []*Node
	stack []*Node
	pos   int
}

// New creates an empty overlap graph. With harmful set, two embeddings
// overlap only if they agree, as sets, on some proper subset of the pattern
// vertices. Otherwise sharing any host vertex is an overlap.
func New(harmful bool) *Graph {
	return &Graph{
		Harmful: harmful,
		nodes:   make([]*Node, 0, 16),
	}
}

func (g *Graph) Len() int {
	return len(g.nodes)
}

func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// Add inserts an embedding, given as the host vertex of every pattern vertex
// in order. Embeddings already in the graph are ignored. It reports whether
// a node was added.
func (g *Graph) Add(emb []int) bool {
	for _, d := range g.nodes {
		if sameEmbedding(d.Emb, emb) {
			return false
		}
	}
	cp := make([]int, len(emb))
	copy(cp, emb)
	s := &Node{Emb: cp, set: hostSet(cp)}
	n := 0
	for _, d := range g.nodes {
		if g.overlaps(s, d) {
			d.mark = 1
			n++
		} else {
			d.mark = 0
		}
	}
	s.adjs = make([]*Node, 0, n)
	for _, d := range g.nodes {
		if d.mark <= 0 {
			continue
		}
		d.adjs = append(d.adjs, s)
		d.deg++
		s.adjs = append(s.adjs, d)
		s.deg++
	}
	for _, d := range g.nodes {
		d.mark = 0
	}
	g.nodes = append(g.nodes, s)
	return true
}

func (g *Graph) overlaps(a, b *Node) bool {
	if g.Harmful {
		return OverlapsHarmfully(a.Emb, b.Emb)
	}
	return a.set.Overlap(b.set)
}

// Overlaps reports whether two embeddings share a host vertex.
func Overlaps(a, b []int) bool {
	return hostSet(a).Overlap(hostSet(b))
}

// OverlapsHarmfully reports whether some non-empty proper subset of the
// pattern vertices is mapped onto the same set of host vertices by both
// embeddings. Every subset is tried, so the cost is exponential in the
// pattern size.
func OverlapsHarmfully(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	return harmfulSubset(a, b, make([]int, 0, len(a)), make([]int, 0, len(b)), 0)
}

func harmfulSubset(a, b, subA, subB []int, index int) bool {
	if len(subA) == len(a) {
		return false
	}
	if len(subA) > 0 && sameSet(subA, subB) {
		return true
	}
	if index >= len(a) {
		return false
	}
	with := harmfulSubset(a, b, append(subA, a[index]), append(subB, b[index]), index+1)
	return with || harmfulSubset(a, b, subA, subB, index+1)
}

func sameSet(a, b []int) bool {
	x := make([]int, len(a))
	y := make([]int, len(b))
	copy(x, a)
	copy(y, b)
	sort.Ints(x)
	sort.Ints(y)
	return sameEmbedding(x, y)
}

func sameEmbedding(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func hostSet(emb []int) *set.SortedSet {
	s := set.NewSortedSet(len(emb))
	for _, h := range emb {
		if err := s.Add(types.Int(h)); err != nil {
			panic(err)
		}
	}
	return s
}
