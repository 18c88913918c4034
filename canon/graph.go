package canon

import (
	"sort"
)

// Kind tags a node of a colored graph as standing for a pattern vertex or for
// a pattern face. Ids are only unique within a kind.
type Kind uint8

const (
	VertexNode Kind = iota
	FaceNode
)

func (k Kind) String() string {
	switch k {
	case VertexNode:
		return "vertex"
	case FaceNode:
		return "face"
	}
	return "unknown"
}

type Node struct {
	Kind  Kind
	Id    int
	Color int
}

// Edge is undirected and kept with Src < Dst.
type Edge struct {
	Src, Dst int
}

func (e Edge) Less(o Edge) bool {
	return e.Src < o.Src || (e.Src == o.Src && e.Dst < o.Dst)
}

type nodeKey struct {
	kind Kind
	id   int
}

// Graph is an undirected vertex-colored graph handed to a Canonicalizer.
type Graph struct {
	Nodes []Node
	Edges []Edge
	Adj   [][]int
	idx   map[nodeKey]int
	seen  map[Edge]bool
}

func NewGraph() *Graph {
	return &Graph{
		idx:  make(map[nodeKey]int),
		seen: make(map[Edge]bool),
	}
}

// AddNode adds the node if it is new and returns its index.
func (g *Graph) AddNode(kind Kind, id, color int) int {
	k := nodeKey{kind, id}
	if i, has := g.idx[k]; has {
		return i
	}
	i := len(g.Nodes)
	g.idx[k] = i
	g.Nodes = append(g.Nodes, Node{Kind: kind, Id: id, Color: color})
	g.Adj = append(g.Adj, nil)
	return i
}

// Index returns the position of a node previously added.
func (g *Graph) Index(kind Kind, id int) (int, bool) {
	i, has := g.idx[nodeKey{kind, id}]
	return i, has
}

// AddEdge joins two nodes. Loops and repeated edges are ignored.
func (g *Graph) AddEdge(a, b int) {
	if a == b {
		return
	}
	if b < a {
		a, b = b, a
	}
	e := Edge{a, b}
	if g.seen[e] {
		return
	}
	g.seen[e] = true
	g.Edges = append(g.Edges, e)
	g.Adj[a] = append(g.Adj[a], b)
	g.Adj[b] = append(g.Adj[b], a)
}

// Bipartite builds the vertex/face incidence graph of a list of faces. Vertex
// nodes are colored 0 and come first in ascending id order; face nodes are
// colored 1 and follow in the given order, their id being their index.
func Bipartite(faces [][]int) *Graph {
	g := NewGraph()
	for _, v := range vertexSet(faces) {
		g.AddNode(VertexNode, v, 0)
	}
	for fid, f := range faces {
		fn := g.AddNode(FaceNode, fid, 1)
		for _, v := range f {
			vn, _ := g.Index(VertexNode, v)
			g.AddEdge(vn, fn)
		}
	}
	return g
}

// Projection builds the plain adjacency graph of a list of faces: two
// vertices are joined iff they share a face.
func Projection(faces [][]int) *Graph {
	g := NewGraph()
	for _, v := range vertexSet(faces) {
		g.AddNode(VertexNode, v, 0)
	}
	for _, f := range faces {
		for i, u := range f {
			un, _ := g.Index(VertexNode, u)
			for _, v := range f[i+1:] {
				vn, _ := g.Index(VertexNode, v)
				g.AddEdge(un, vn)
			}
		}
	}
	return g
}

func vertexSet(faces [][]int) []int {
	seen := make(map[int]bool)
	verts := make([]int, 0, 8)
	for _, f := range faces {
		for _, v := range f {
			if !seen[v] {
				seen[v] = true
				verts = append(verts, v)
			}
		}
	}
	sort.Ints(verts)
	return verts
}
