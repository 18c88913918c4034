package simplet

import (
	"fmt"
	"sort"
)

import (
	"github.com/timtadh/simplets/canon"
)

// Fingerprint is a cheap isomorphism invariant: the number of maximal faces
// of every size and the sorted vertex degrees counted over maximal faces.
type Fingerprint struct {
	Faces   []int
	Degrees []int
}

// Key encodes the fingerprint for use as a hash key.
func (fp Fingerprint) Key() string {
	return fmt.Sprintf("%v|%v", fp.Degrees, fp.Faces)
}

func (s *Simplet) Fingerprint() Fingerprint {
	fp := Fingerprint{
		Faces:   make([]int, s.order),
		Degrees: make([]int, s.n),
	}
	for size, fs := range s.faces {
		for _, f := range fs {
			if !f.Maximal {
				continue
			}
			fp.Faces[size-1]++
			for _, v := range f.Vertices {
				fp.Degrees[v]++
			}
		}
	}
	sort.Ints(fp.Degrees)
	return fp
}

func (s *Simplet) maximalLists() [][]int {
	max := s.MaximalFaces()
	lists := make([][]int, 0, len(max))
	for _, f := range max {
		lists = append(lists, f.Vertices)
	}
	return lists
}

func (s *Simplet) computeCanonical() {
	s.canonForm, s.orbits, s.canonErr = canon.Canonicalize(s.engine, canon.Bipartite(s.maximalLists()))
}

// CanonicalForm is the canonical form of the vertex/maximal-face incidence
// graph. It is computed once; faces added afterwards are not reflected.
func (s *Simplet) CanonicalForm() (*canon.Form, error) {
	s.canonOnce.Do(s.computeCanonical)
	return s.canonForm, s.canonErr
}

// ProjectionForm is the canonical form of the underlying graph.
func (s *Simplet) ProjectionForm() (*canon.Form, error) {
	s.projOnce.Do(func() {
		s.projForm, _, s.projErr = canon.Canonicalize(s.engine, canon.Projection(s.maximalLists()))
	})
	return s.projForm, s.projErr
}

func (s *Simplet) Orbits() (*canon.Orbits, error) {
	s.canonOnce.Do(s.computeCanonical)
	return s.orbits, s.canonErr
}

// OrbitOf returns the vertices v is mapped to by some automorphism,
// including v.
func (s *Simplet) OrbitOf(v int) ([]int, error) {
	orbits, err := s.Orbits()
	if err != nil {
		return nil, err
	}
	orbit := orbits.Of(v)
	if len(orbit) == 0 {
		return []int{v}, nil
	}
	return orbit, nil
}

// IsDuplicate reports whether o is isomorphic to s. The cheap comparisons
// run first and the canonical forms are only computed when they agree.
func (s *Simplet) IsDuplicate(o *Simplet) (bool, error) {
	if s.Dimension() != o.Dimension() || s.NumFaces() != o.NumFaces() {
		return false, nil
	}
	pa, err := s.ProjectionForm()
	if err != nil {
		return false, err
	}
	pb, err := o.ProjectionForm()
	if err != nil {
		return false, err
	}
	if !pa.Equals(pb) {
		return false, nil
	}
	a, err := s.CanonicalForm()
	if err != nil {
		return false, err
	}
	b, err := o.CanonicalForm()
	if err != nil {
		return false, err
	}
	return a.Equals(b), nil
}

// Canonical returns the maximal faces rewritten into canonical vertex order,
// each face sorted and the faces in lexicographic order.
func (s *Simplet) Canonical() ([][]int, error) {
	form, err := s.CanonicalForm()
	if err != nil {
		return nil, err
	}
	order := form.VertexOrder()
	lists := s.maximalLists()
	out := make([][]int, 0, len(lists))
	for _, f := range lists {
		g := make([]int, 0, len(f))
		for _, v := range f {
			g = append(g, order[v])
		}
		sort.Ints(g)
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		return canon.LessInts(out[i], out[j])
	})
	return out, nil
}
