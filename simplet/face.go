package simplet

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Face is a face of a pattern. A face is maximal iff no other face of the
// same pattern strictly contains it.
type Face struct {
	Id       int
	Vertices []int
	Maximal  bool
}

func newFace(id int, verts []int) *Face {
	vs := make([]int, len(verts))
	copy(vs, verts)
	sort.Ints(vs)
	return &Face{Id: id, Vertices: vs, Maximal: true}
}

func (f *Face) Size() int {
	return len(f.Vertices)
}

func (f *Face) Dimension() int {
	return len(f.Vertices) - 1
}

func (f *Face) Contains(v int) bool {
	i := sort.SearchInts(f.Vertices, v)
	return i < len(f.Vertices) && f.Vertices[i] == v
}

// Covers reports whether every vertex of o is in f.
func (f *Face) Covers(o *Face) bool {
	for _, v := range o.Vertices {
		if !f.Contains(v) {
			return false
		}
	}
	return true
}

func (f *Face) copy() *Face {
	return &Face{Id: f.Id, Vertices: f.Vertices, Maximal: f.Maximal}
}

// facets returns the keys of every face obtained by dropping one vertex. The
// single facet of a 0-face is the empty face, keyed "-".
func (f *Face) facets() []string {
	if len(f.Vertices) == 1 {
		return []string{"-"}
	}
	keys := make([]string, 0, len(f.Vertices))
	for skip := range f.Vertices {
		parts := make([]string, 0, len(f.Vertices)-1)
		for i, v := range f.Vertices {
			if i != skip {
				parts = append(parts, strconv.Itoa(v))
			}
		}
		keys = append(keys, strings.Join(parts, ","))
	}
	return keys
}

func (f *Face) String() string {
	return formatVertices(f.Vertices)
}

func formatVertices(verts []int) string {
	parts := make([]string, 0, len(verts))
	for _, v := range verts {
		parts = append(parts, fmt.Sprint(v))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
