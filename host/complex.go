package host

import (
	"sort"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/data-structures/set"
	"github.com/timtadh/data-structures/types"
)

// Face is one recorded face of the host complex. Vertices are sorted and
// distinct.
type Face struct {
	Id       int
	Vertices []int
}

// Complex is the read-only index over the input simplicial complex. It is
// safe for concurrent use once constructed.
type Complex struct {
	Faces      []*Face
	vertices   []int
	cands      []int
	neighbors  map[int]*set.SortedSet
	membership map[int]*set.SortedSet
	empty      *set.SortedSet
}

// New indexes the given faces. The faces are copied; each face's vertex list is
// sorted and deduplicated.
func New(faces []*Face) (*Complex, error) {
	if len(faces) == 0 {
		return nil, errors.Errorf("a complex needs at least one face")
	}
	c := &Complex{
		Faces: make([]*Face, 0, len(faces)),
		empty: set.NewSortedSet(0),
	}
	nbrs := make(map[int]map[int]bool)
	members := make(map[int][]int)
	for _, f := range faces {
		if f == nil || len(f.Vertices) == 0 {
			return nil, errors.Errorf("face %d is empty", len(c.Faces))
		}
		verts := normalize(f.Vertices)
		if verts[0] < 0 {
			return nil, errors.Errorf("face %d references negative vertex %d", f.Id, verts[0])
		}
		pos := len(c.Faces)
		c.Faces = append(c.Faces, &Face{Id: f.Id, Vertices: verts})
		for _, u := range verts {
			members[u] = append(members[u], pos)
			if nbrs[u] == nil {
				nbrs[u] = make(map[int]bool)
			}
			for _, v := range verts {
				if u != v {
					nbrs[u][v] = true
				}
			}
		}
	}
	c.vertices = make([]int, 0, len(members))
	c.membership = make(map[int]*set.SortedSet, len(members))
	for v, pos := range members {
		c.vertices = append(c.vertices, v)
		c.membership[v] = sortedSet(pos)
	}
	sort.Ints(c.vertices)
	c.neighbors = make(map[int]*set.SortedSet, len(nbrs))
	for v, adj := range nbrs {
		if len(adj) == 0 {
			continue
		}
		items := make([]int, 0, len(adj))
		for u := range adj {
			items = append(items, u)
		}
		c.neighbors[v] = sortedSet(items)
	}
	c.cands = make([]int, 0, len(c.neighbors))
	for _, v := range c.vertices {
		if _, has := c.neighbors[v]; has {
			c.cands = append(c.cands, v)
		}
	}
	return c, nil
}

// Vertices returns every vertex appearing in some face, ascending.
func (c *Complex) Vertices() []int {
	return c.vertices
}

// CandVertices returns the vertices with at least one neighbor, ascending.
func (c *Complex) CandVertices() []int {
	return c.cands
}

func (c *Complex) NumVertices() int {
	return len(c.vertices)
}

func (c *Complex) NumFaces() int {
	return len(c.Faces)
}

// Neighbors returns the vertices sharing a face with v. The returned set must
// not be modified.
func (c *Complex) Neighbors(v int) *set.SortedSet {
	if s, has := c.neighbors[v]; has {
		return s
	}
	return c.empty
}

func (c *Complex) Degree(v int) int {
	return c.Neighbors(v).Size()
}

func (c *Complex) Adjacent(u, v int) bool {
	return c.Neighbors(u).Has(types.Int(v))
}

// Members returns the positions in c.Faces of the faces containing v.
func (c *Complex) Members(v int) *set.SortedSet {
	if s, has := c.membership[v]; has {
		return s
	}
	return c.empty
}

// Contains reports whether some recorded face contains every vertex of tuple.
func (c *Complex) Contains(tuple []int) bool {
	if len(tuple) == 0 {
		return true
	}
	smallest := c.Members(tuple[0])
	for _, v := range tuple[1:] {
		if m := c.Members(v); m.Size() < smallest.Size() {
			smallest = m
		}
	}
	for pos, next := smallest.Items()(); next != nil; pos, next = next() {
		inAll := true
		for _, v := range tuple {
			if !c.Members(v).Has(pos) {
				inAll = false
				break
			}
		}
		if inAll {
			return true
		}
	}
	return false
}

// Saturated returns the vertices lying in some face with at least size
// vertices. Any pattern on size vertices embeds into such a face with any of
// its vertices in any pattern position.
func (c *Complex) Saturated(size int) map[int]bool {
	covered := make(map[int]bool)
	for _, f := range c.Faces {
		if len(f.Vertices) >= size {
			for _, v := range f.Vertices {
				covered[v] = true
			}
		}
	}
	return covered
}

func normalize(verts []int) []int {
	out := make([]int, len(verts))
	copy(out, verts)
	sort.Ints(out)
	j := 0
	for i, v := range out {
		if i == 0 || v != out[j-1] {
			out[j] = v
			j++
		}
	}
	return out[:j]
}

func sortedSet(items []int) *set.SortedSet {
	sort.Ints(items)
	s := set.NewSortedSet(len(items))
	for _, item := range items {
		if err := s.Add(types.Int(item)); err != nil {
			panic(err)
		}
	}
	return s
}
