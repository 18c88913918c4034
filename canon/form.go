package canon

import (
	"encoding/binary"
	"fmt"
	"strings"
)

import (
	"github.com/timtadh/data-structures/types"
)

// Form is a graph rewritten into canonical position order. Two graphs are
// isomorphic iff their forms are equal.
type Form struct {
	Colors []int
	Edges  []Edge
	// Orig[p] is the node of the input graph placed at position p.
	Orig []Node
}

func (f *Form) Label() []byte {
	size := 8 + len(f.Colors)*4 + len(f.Edges)*8
	label := make([]byte, size)
	binary.BigEndian.PutUint32(label[0:4], uint32(len(f.Edges)))
	binary.BigEndian.PutUint32(label[4:8], uint32(len(f.Colors)))
	off := 8
	for i, c := range f.Colors {
		s := off + i*4
		binary.BigEndian.PutUint32(label[s:s+4], uint32(c))
	}
	off += len(f.Colors) * 4
	for i, e := range f.Edges {
		s := off + i*8
		binary.BigEndian.PutUint32(label[s:s+4], uint32(e.Src))
		binary.BigEndian.PutUint32(label[s+4:s+8], uint32(e.Dst))
	}
	return label
}

func (f *Form) Equals(o types.Equatable) bool {
	b, ok := o.(*Form)
	if !ok || b == nil || f == nil {
		return false
	}
	if len(f.Colors) != len(b.Colors) || len(f.Edges) != len(b.Edges) {
		return false
	}
	for i := range f.Colors {
		if f.Colors[i] != b.Colors[i] {
			return false
		}
	}
	for i := range f.Edges {
		if f.Edges[i] != b.Edges[i] {
			return false
		}
	}
	return true
}

func (f *Form) Less(o types.Sortable) bool {
	a := types.ByteSlice(f.Label())
	switch b := o.(type) {
	case *Form:
		return a.Less(types.ByteSlice(b.Label()))
	default:
		return false
	}
}

func (f *Form) Hash() int {
	return types.ByteSlice(f.Label()).Hash()
}

// VertexOrder maps each original vertex id to its canonical rank among the
// vertex nodes.
func (f *Form) VertexOrder() map[int]int {
	order := make(map[int]int)
	for _, n := range f.Orig {
		if n.Kind == VertexNode {
			order[n.Id] = len(order)
		}
	}
	return order
}

func (f *Form) String() string {
	edges := make([]string, 0, len(f.Edges))
	for _, e := range f.Edges {
		edges = append(edges, fmt.Sprintf("%d-%d", e.Src, e.Dst))
	}
	return fmt.Sprintf("{colors: %v, edges: %v}", f.Colors, strings.Join(edges, " "))
}
