package search

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"github.com/timtadh/simplets/canon"
	"github.com/timtadh/simplets/host"
	"github.com/timtadh/simplets/simplet"
)

func hostOf(t *testing.T, faces ...[]int) *host.Complex {
	fs := make([]*host.Face, 0, len(faces))
	for i, f := range faces {
		fs = append(fs, &host.Face{Id: i, Vertices: f})
	}
	c, err := host.New(fs)
	assert.Nil(t, err)
	return c
}

func twoTriangles(t *testing.T) *host.Complex {
	return hostOf(t, []int{0, 1, 2}, []int{1, 2, 3})
}

func path(t *testing.T) *host.Complex {
	return hostOf(t, []int{0, 1}, []int{1, 2}, []int{2, 3}, []int{3, 4})
}

// pattern grows a pattern from a single vertex. A two vertex face whose
// first vertex is new is added as an edge to a new vertex.
func pattern(t *testing.T, faces ...[]int) *simplet.Simplet {
	s := simplet.Root(0, canon.Exhaustive{})
	for _, f := range faces {
		var face *simplet.Face
		var err error
		if len(f) == 2 && f[0] == s.NumVertices() {
			face, err = s.AddEdge(f[0], f[1])
		} else {
			face, err = s.AddFace(f)
		}
		assert.Nil(t, err)
		s.UpdateCofaces(face)
	}
	return s
}

func edgePattern(t *testing.T) *simplet.Simplet {
	return pattern(t, []int{1, 0})
}

func star(t *testing.T) *simplet.Simplet {
	return pattern(t, []int{1, 0}, []int{2, 0})
}

func hollow(t *testing.T) *simplet.Simplet {
	return pattern(t, []int{1, 0}, []int{2, 0}, []int{1, 2})
}

func filled(t *testing.T) *simplet.Simplet {
	return pattern(t, []int{1, 0}, []int{2, 0}, []int{1, 2}, []int{0, 1, 2})
}

func seedAll(c *host.Complex, p *simplet.Simplet) {
	for v := 0; v < p.NumVertices(); v++ {
		p.SeedImage(v, c.CandVertices())
	}
}

func TestEmbeddingsAreValid(t *testing.T) {
	x := assert.New(t)
	c := twoTriangles(t)
	cases := map[string]struct {
		p     *simplet.Simplet
		count int
	}{
		"filled": {filled(t), 12},
		"hollow": {hollow(t), 12},
		"star":   {star(t), 16},
		"edge":   {edgePattern(t), 10},
	}
	for name, tc := range cases {
		m := New(c, tc.p, Options{Support: 1, Timeout: -1})
		seen := make(map[string]bool)
		found := m.FindAll(NewEmbedding(tc.p.NumVertices()), tc.p.Vertices(), func(e Embedding) {
			x.True(e.Complete(), name)
			seen[e.String()] = true
			for _, f := range tc.p.MaximalFaces() {
				mapped := make([]int, 0, f.Size())
				for _, v := range f.Vertices {
					mapped = append(mapped, e[v])
				}
				x.True(c.Contains(mapped), "%v %v %v", name, e, f)
			}
		})
		x.Equal(tc.count, found, name)
		x.Len(seen, tc.count, name)
	}
}

func TestFilledNeedsAHostFace(t *testing.T) {
	x := assert.New(t)
	c := hostOf(t, []int{0, 1}, []int{1, 2}, []int{0, 2})
	p := filled(t)
	m := New(c, p, Options{Support: 1, Timeout: -1})
	_, out := m.FindMatch(NewEmbedding(3), p.Vertices(), -1)
	x.Equal(NoMatch, out)
	x.True(m.Comparisons > 0)

	p = hollow(t)
	m = New(c, p, Options{Support: 1, Timeout: -1})
	e, out := m.FindMatch(NewEmbedding(3), p.Vertices(), -1)
	x.Equal(Match, out)
	x.True(e.Complete())
	x.True(c.Contains([]int{e[0], e[1]}))
	x.True(c.Contains([]int{e[1], e[2]}))
}

func TestAccepts(t *testing.T) {
	x := assert.New(t)
	c := twoTriangles(t)
	p := filled(t)
	m := New(c, p, Options{Support: 1, Timeout: -1})
	e := NewEmbedding(3)
	x.True(m.Accepts(e, 0, 1))
	e[0] = 0
	x.False(m.Accepts(e, 1, 0))
	x.False(m.Accepts(e, 1, 3))
	x.True(m.Accepts(e, 1, 1))
	e[1] = 1
	x.True(m.Accepts(e, 2, 2))
	x.False(m.Accepts(e, 2, 3))
}

func TestZeroBudgetIsInconclusive(t *testing.T) {
	x := assert.New(t)
	c := twoTriangles(t)
	p := star(t)
	m := New(c, p, Options{Support: 1})
	seed := NewEmbedding(3)
	seed[0] = 1
	e, out := m.FindMatch(seed, p.DFS(0), 0)
	x.Equal(Inconclusive, out)
	x.Nil(e)
	x.Equal(0, m.Comparisons)
	x.Equal(1, m.Inconclusive)

	e, out = m.FindMatch(seed, p.DFS(0), -1)
	x.Equal(Match, out)
	x.Equal(1, e[0])

	// nothing left to compare
	full := Embedding{1, 0, 2}
	e, out = m.FindMatch(full, p.DFS(0), 0)
	x.Equal(Match, out)
	x.Equal(full, e)
}

func TestExamineMNI(t *testing.T) {
	x := assert.New(t)
	c := twoTriangles(t)
	for name, p := range map[string]*simplet.Simplet{
		"edge":   edgePattern(t),
		"star":   star(t),
		"filled": filled(t),
	} {
		seedAll(c, p)
		m := New(c, p, Options{Support: 2, Measure: simplet.MNI, Timeout: -1})
		x.Nil(m.Examine(), name)
		x.False(p.Infeasible(), name)
		x.Equal(4, p.ComputeFrequency(simplet.MNI), name)
	}
}

func TestExamineMNIWithOrbits(t *testing.T) {
	x := assert.New(t)
	c := path(t)
	p := star(t)
	seedAll(c, p)
	m := New(c, p, Options{Support: 2, Measure: simplet.MNI, Timeout: -1})
	x.Nil(m.Examine())
	x.Equal([]int{1, 2, 3}, p.Images().Of(0))
	x.Equal([]int{0, 1, 2, 3, 4}, p.Images().Of(1))
	x.Equal(p.Images().Of(1), p.Images().Of(2))
	x.Equal(3, p.ComputeFrequency(simplet.MNI))

	p = star(t)
	seedAll(c, p)
	m = New(c, p, Options{Support: 4, Measure: simplet.MNI, Timeout: -1})
	x.Nil(m.Examine())
	x.True(p.Infeasible())
	x.Equal(0, p.ComputeFrequency(simplet.MNI))
}

func TestExamineUnseededIsInfeasible(t *testing.T) {
	x := assert.New(t)
	p := star(t)
	m := New(twoTriangles(t), p, Options{Support: 1, Timeout: -1})
	x.Nil(m.Examine())
	x.True(p.Infeasible())
}

func TestExamineMIS(t *testing.T) {
	x := assert.New(t)
	c := twoTriangles(t)
	p := edgePattern(t)
	seedAll(c, p)
	m := New(c, p, Options{Support: 2, Measure: simplet.MIS, Timeout: -1})
	x.Nil(m.Examine())
	x.False(p.Infeasible())
	x.Equal(10, m.Overlap().Len())
	x.Equal(2, p.ComputeFrequency(simplet.MIS))

	p = edgePattern(t)
	seedAll(c, p)
	m = New(c, p, Options{Support: 2, Measure: simplet.MIS, Harmful: true, Timeout: -1})
	x.Nil(m.Examine())
	x.Equal(4, p.ComputeFrequency(simplet.MIS))

	p = edgePattern(t)
	seedAll(c, p)
	m = New(c, p, Options{Support: 2, Measure: simplet.MIS, Greedy: true, Timeout: -1})
	x.Nil(m.Examine())
	x.True(p.ComputeFrequency(simplet.MIS) <= 2)
}

func TestExamineSingle(t *testing.T) {
	x := assert.New(t)
	c := path(t)
	p := star(t)
	m := New(c, p, Options{Support: 2, Measure: simplet.MNI, Timeout: -1})
	x.Nil(m.ExamineSingle(make(simplet.Images), make(simplet.Images)))
	x.False(p.Infeasible())
	x.Equal([]int{1, 2}, p.Images().Of(0))
	x.Equal([]int{0, 1, 2, 3}, p.Images().Of(1))
	x.Equal([]int{0, 1, 2, 3}, p.Images().Of(2))
	x.Equal(2, p.ComputeFrequency(simplet.MNI))
	x.Equal(0, m.Inconclusive)
}

func TestExamineSingleResumesInconclusive(t *testing.T) {
	x := assert.New(t)
	c := path(t)
	p := star(t)
	m := New(c, p, Options{Support: 2, Measure: simplet.MNI, Timeout: 0})
	x.Nil(m.ExamineSingle(make(simplet.Images), make(simplet.Images)))
	x.False(p.Infeasible())
	x.Equal([]int{1, 2}, p.Images().Of(0))
	x.Equal(2, p.ComputeFrequency(simplet.MNI))
	x.Equal(3, m.Inconclusive)
}

func TestExamineSingleUsesNonCandidates(t *testing.T) {
	x := assert.New(t)
	c := path(t)
	p := star(t)
	nonCands := make(simplet.Images)
	nonCands.Add(0, 1)
	m := New(c, p, Options{Support: 2, Measure: simplet.MNI, Timeout: -1})
	x.Nil(m.ExamineSingle(make(simplet.Images), nonCands))
	x.Equal([]int{2, 3}, p.Images().Of(0))
	x.True(p.NonCands().Has(0, 1))
	x.Equal(1, nonCands.Size(0))
}

func TestExamineSinglePrefersParentImages(t *testing.T) {
	x := assert.New(t)
	c := path(t)
	p := star(t)
	parent := make(simplet.Images)
	parent.Add(0, 3)
	parent.Add(0, 2)
	m := New(c, p, Options{Support: 2, Measure: simplet.MNI, Timeout: -1})
	x.Nil(m.ExamineSingle(parent, make(simplet.Images)))
	x.Equal([]int{2, 3}, p.Images().Of(0))
}

func TestExamineSingleInfeasible(t *testing.T) {
	x := assert.New(t)
	c := path(t)
	p := star(t)
	m := New(c, p, Options{Support: 4, Measure: simplet.MNI, Timeout: -1})
	x.Nil(m.ExamineSingle(make(simplet.Images), make(simplet.Images)))
	x.Equal(3, p.ComputeFrequency(simplet.MNI))

	p = star(t)
	m = New(c, p, Options{Support: 6, Measure: simplet.MNI, Timeout: -1})
	x.Nil(m.ExamineSingle(make(simplet.Images), make(simplet.Images)))
	x.True(p.Infeasible())
	x.Equal(0, p.ComputeFrequency(simplet.MNI))
}

func TestPreferred(t *testing.T) {
	x := assert.New(t)
	x.Equal([]int{3, 5, 1, 2, 4}, preferred([]int{1, 2, 3, 4, 5}, map[int]bool{5: true, 3: true}))
}
