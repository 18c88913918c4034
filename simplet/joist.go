package simplet

import (
	"fmt"
	"sort"
)

import (
	"github.com/timtadh/data-structures/errors"
)

// Joist is a set of sibling faces of one size whose union has one more
// vertex than each of them. Faces holds their positions in Faces(Size).
type Joist struct {
	Size     int
	Vertices []int
	Faces    []int
}

// Open reports whether every facet of the union is present, so the union may
// be added as a face.
func (j *Joist) Open() bool {
	return len(j.Faces) == len(j.Vertices)
}

func (j *Joist) String() string {
	return fmt.Sprintf("joist%v%v", formatVertices(j.Vertices), j.Faces)
}

// Joists lists the open joists of the pattern by face size, then by the
// position of the lowest face, then by the added vertex.
func (s *Simplet) Joists() []*Joist {
	joists := make([]*Joist, 0, 4)
	for _, size := range s.Sizes() {
		joists = append(joists, s.joistsOf(size)...)
	}
	return joists
}

func (s *Simplet) joistsOf(size int) []*Joist {
	faces := s.faces[size]
	inv := make(map[int]map[int]bool)
	for pos, f := range faces {
		for _, v := range f.Vertices {
			if inv[v] == nil {
				inv[v] = make(map[int]bool)
			}
			inv[v][pos] = true
		}
	}
	rows := s.siblings[size]
	positions := make([]int, 0, len(rows))
	for pos := range rows {
		positions = append(positions, pos)
	}
	sort.Ints(positions)
	joists := make([]*Joist, 0)
	for _, pos := range positions {
		f := faces[pos]
		top := f.Vertices[len(f.Vertices)-1]
		extra := make(map[int]bool)
		for sib := range rows[pos] {
			for _, v := range faces[sib].Vertices {
				if v > top {
					extra[v] = true
				}
			}
		}
		vs := make([]int, 0, len(extra))
		for v := range extra {
			vs = append(vs, v)
		}
		sort.Ints(vs)
		for _, v := range vs {
			ids := make([]int, 0, size+1)
			for sib := range inv[v] {
				if rows[pos][sib] {
					ids = append(ids, sib)
				}
			}
			if len(ids) != size {
				continue
			}
			ids = append(ids, pos)
			sort.Ints(ids)
			verts := make([]int, 0, size+1)
			verts = append(verts, f.Vertices...)
			verts = append(verts, v)
			sort.Ints(verts)
			joists = append(joists, &Joist{Size: size, Vertices: verts, Faces: ids})
		}
	}
	return joists
}

// CloseJoist adds the union of an open joist as a new face and drops the
// joist's faces from each other's sibling sets.
func (s *Simplet) CloseJoist(j *Joist) (*Face, error) {
	if !j.Open() {
		return nil, errors.Errorf("cannot close %v: it is not open", j)
	}
	f, err := s.AddFace(j.Vertices)
	if err != nil {
		return nil, err
	}
	s.UpdateCofaces(f)
	rows := s.siblings[j.Size]
	for _, a := range j.Faces {
		for _, b := range j.Faces {
			delete(rows[a], b)
		}
	}
	return f, nil
}
