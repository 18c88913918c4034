package simplet

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"strings"
)

import (
	"github.com/timtadh/simplets/canon"
)

func edge(t *testing.T, s *Simplet, newV, oldV int) *Simplet {
	ext := s.Extend(s.Id+1, false)
	f, err := ext.AddEdge(newV, oldV)
	assert.Nil(t, err)
	ext.UpdateCofaces(f)
	return ext
}

// star is the path 1-0-2, path is the path 0-1-2
func star(t *testing.T) *Simplet {
	root := Root(0, canon.Exhaustive{})
	return edge(t, edge(t, root, 1, 0), 2, 0)
}

func path(t *testing.T) *Simplet {
	root := Root(0, canon.Exhaustive{})
	return edge(t, edge(t, root, 1, 0), 2, 1)
}

func TestRoot(t *testing.T) {
	x := assert.New(t)
	s := Root(0, canon.Exhaustive{})
	x.Equal(1, s.NumVertices())
	x.Equal(0, s.Dimension())
	x.Equal(1, s.NumFaces())
	max := s.MaximalFaces()
	x.Len(max, 1)
	x.Equal([]int{0}, max[0].Vertices)
	x.Len(s.Joists(), 0)
}

func TestAddEdge(t *testing.T) {
	x := assert.New(t)
	s := star(t)
	x.Equal(3, s.NumVertices())
	x.Equal(1, s.Dimension())
	x.Equal(5, s.NumFaces())
	x.Equal([]int{1, 2}, s.Neighbors(0))
	x.True(s.Adjacent(2, 0))
	x.False(s.Adjacent(1, 2))
	x.Equal(2, s.Degree(0))
	for _, f := range s.Faces(1) {
		x.False(f.Maximal, "%v", f)
	}
	max := s.MaximalFaces()
	x.Len(max, 2)
	x.Equal([]int{0, 1}, max[0].Vertices)
	x.Equal([]int{0, 2}, max[1].Vertices)
	x.Equal([]int{1, 0, 2}, s.DFS(1))
}

func TestMalformedFaces(t *testing.T) {
	x := assert.New(t)
	s := star(t)
	x.Error(s.AddVertex(5, -1))
	_, err := s.AddFace([]int{0, 7})
	x.Error(err)
	_, err = s.AddFace([]int{2, 0})
	x.Error(err)
	_, err = s.AddFace(nil)
	x.Error(err)
	_, err = s.AddEdge(3, 9)
	x.Error(err)
	x.Equal(3, s.NumVertices())
}

func TestExtendIsIndependent(t *testing.T) {
	x := assert.New(t)
	s := star(t)
	s.SeedImage(0, []int{1, 2})
	ext := s.Extend(9, true)
	f, err := ext.AddEdge(3, 2)
	x.Nil(err)
	ext.UpdateCofaces(f)
	x.Equal(3, s.NumVertices())
	x.Equal(4, ext.NumVertices())
	x.True(s.Faces(1)[2].Maximal == false)
	x.Len(s.MaximalFaces(), 2)
	x.Len(ext.MaximalFaces(), 3)
	x.Equal([]int{1, 2}, ext.Images().Of(0))
	ext.Images().Add(0, 7)
	x.Equal(2, s.Images().Size(0))
	x.Equal(0, s.Extend(10, false).Images().Size(0))
}

func TestJoistClosure(t *testing.T) {
	x := assert.New(t)
	s := star(t)
	joists := s.Joists()
	x.Len(joists, 1)
	j := joists[0]
	x.True(j.Open())
	x.Equal(1, j.Size)
	x.Equal([]int{1, 2}, j.Vertices)
	x.Equal([]int{1, 2}, j.Faces)

	hollow := s.Extend(1, false)
	_, err := hollow.CloseJoist(j)
	x.Nil(err)
	x.Len(hollow.MaximalFaces(), 3)
	x.True(hollow.Adjacent(1, 2))
	joists = hollow.Joists()
	x.Len(joists, 1)
	x.Equal(2, joists[0].Size)
	x.Equal([]int{0, 1, 2}, joists[0].Vertices)
	x.Equal([]int{0, 1, 2}, joists[0].Faces)

	filled := hollow.Extend(2, false)
	_, err = filled.CloseJoist(joists[0])
	x.Nil(err)
	x.Equal(2, filled.Dimension())
	max := filled.MaximalFaces()
	x.Len(max, 1)
	x.Equal([]int{0, 1, 2}, max[0].Vertices)
	x.Len(filled.Joists(), 0)

	// the parent keeps its own sibling table
	x.Len(s.Joists(), 1)
	_, err = s.CloseJoist(&Joist{Size: 1, Vertices: []int{0, 1, 2}, Faces: []int{0}})
	x.Error(err)
}

func TestFingerprint(t *testing.T) {
	x := assert.New(t)
	a := star(t)
	b := path(t)
	x.Equal(a.Fingerprint(), b.Fingerprint())
	x.Equal([]int{0, 2}, a.Fingerprint().Faces)
	x.Equal([]int{1, 1, 2}, a.Fingerprint().Degrees)
	x.Equal(a.Fingerprint().Key(), b.Fingerprint().Key())

	hollow := a.Extend(1, false)
	_, err := hollow.CloseJoist(a.Joists()[0])
	x.Nil(err)
	x.NotEqual(a.Fingerprint().Key(), hollow.Fingerprint().Key())
}

func TestIsDuplicate(t *testing.T) {
	x := assert.New(t)
	a := star(t)
	b := path(t)
	dup, err := a.IsDuplicate(b)
	x.Nil(err)
	x.True(dup)

	ca, err := a.Canonical()
	x.Nil(err)
	cb, err := b.Canonical()
	x.Nil(err)
	x.Equal(ca, cb)

	hollow := a.Extend(1, false)
	_, err = hollow.CloseJoist(a.Joists()[0])
	x.Nil(err)
	filled := hollow.Extend(2, false)
	_, err = filled.CloseJoist(hollow.Joists()[0])
	x.Nil(err)
	dup, err = hollow.IsDuplicate(filled)
	x.Nil(err)
	x.False(dup)
	dup, err = a.IsDuplicate(hollow)
	x.Nil(err)
	x.False(dup)
}

func TestOrbits(t *testing.T) {
	x := assert.New(t)
	s := star(t)
	orbit, err := s.OrbitOf(1)
	x.Nil(err)
	x.Equal([]int{1, 2}, orbit)
	orbit, err = s.OrbitOf(0)
	x.Nil(err)
	x.Equal([]int{0}, orbit)
}

func TestFrequency(t *testing.T) {
	x := assert.New(t)
	s := star(t)
	x.Equal(0, s.ComputeFrequency(MNI))
	s.SeedImage(0, []int{1, 2, 3})
	s.SeedImage(1, []int{4, 5})
	s.SeedImage(2, []int{4, 5, 6, 7})
	x.Equal(2, s.ComputeFrequency(MNI))
	s.SetFrequency(5)
	x.Equal(5, s.ComputeFrequency(MIS))
	s.MarkInfeasible()
	x.True(s.Infeasible())
	x.False(s.HasBound(0))
	x.Equal(0, s.ComputeFrequency(MNI))
	x.Equal(0, s.Frequency())
}

func TestString(t *testing.T) {
	x := assert.New(t)
	s := star(t)
	hollow := s.Extend(1, false)
	_, err := hollow.CloseJoist(s.Joists()[0])
	x.Nil(err)
	filled := hollow.Extend(2, false)
	_, err = filled.CloseJoist(hollow.Joists()[0])
	x.Nil(err)
	filled.SetFrequency(3)
	x.Equal("3\t[0 1 2]", filled.String())
	x.Equal("[0 1 2]", filled.Label())
	s.SetFrequency(2)
	str := s.String()
	x.True(strings.HasPrefix(str, "2\t"))
	x.Len(strings.Split(str, " "), 4)
}

func TestParseMeasure(t *testing.T) {
	x := assert.New(t)
	m, err := ParseMeasure("MIS")
	x.Nil(err)
	x.Equal(MIS, m)
	x.Equal("mis", m.String())
	m, err = ParseMeasure("mni")
	x.Nil(err)
	x.Equal(MNI, m)
	_, err = ParseMeasure("fsg")
	x.Error(err)
}

func TestFromFaces(t *testing.T) {
	x := assert.New(t)
	faces, err := ParseFaces("0 1 2, [2 5]")
	x.Nil(err)
	x.Equal([][]int{{0, 1, 2}, {2, 5}}, faces)
	s, err := FromFaces(0, canon.Exhaustive{}, faces)
	x.Nil(err)
	x.Equal(4, s.NumVertices())
	x.Equal(2, s.Dimension())
	x.Equal(9, s.NumFaces())
	max := s.MaximalFaces()
	x.Len(max, 2)
	x.Equal([]int{0, 1, 2}, max[0].Vertices)
	x.Equal([]int{2, 3}, max[1].Vertices)
	x.Len(s.DFS(0), 4)

	labeled, err := ParseFaces(s.Label())
	x.Nil(err)
	x.Len(labeled, 2)

	_, err = ParseFaces("0 x")
	x.Error(err)
	_, err = ParseFaces(" , ")
	x.Error(err)
}
