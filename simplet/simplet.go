package simplet

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/simplets/canon"
)

// Measure selects how a pattern's frequency is computed from its
// occurrences.
type Measure int

const (
	// MNI is the minimum image size over the pattern's vertices.
	MNI Measure = iota
	// MIS is the maximum independent set of the overlap graph of the
	// pattern's embeddings.
	MIS
)

func ParseMeasure(s string) (Measure, error) {
	switch strings.ToLower(s) {
	case "mni":
		return MNI, nil
	case "mis":
		return MIS, nil
	}
	return MNI, errors.Errorf("unknown support measure '%v' (expected mni or mis)", s)
}

func (m Measure) String() string {
	switch m {
	case MNI:
		return "mni"
	case MIS:
		return "mis"
	}
	return fmt.Sprintf("Measure(%d)", int(m))
}

// Simplet is a pattern: a small simplicial complex over the vertices
// 0..n-1 grown one face at a time.
type Simplet struct {
	Id     int
	engine canon.Canonicalizer

	n      int
	faces  map[int][]*Face
	nbrs   []map[int]bool
	order  int
	incrId int

	// facet key -> positions in faces[size] of the faces having that facet
	cofaces map[string][]int
	// size -> position -> positions of the sibling faces
	siblings map[int]map[int]map[int]bool

	images     Images
	nonCands   Images
	infeasible bool
	freq       int

	canonOnce sync.Once
	canonForm *canon.Form
	orbits    *canon.Orbits
	canonErr  error
	projOnce  sync.Once
	projForm  *canon.Form
	projErr   error
}

// New creates an empty pattern canonicalized with engine.
func New(id int, engine canon.Canonicalizer) *Simplet {
	return &Simplet{
		Id:       id,
		engine:   engine,
		faces:    make(map[int][]*Face),
		nbrs:     make([]map[int]bool, 0, 4),
		incrId:   1,
		cofaces:  make(map[string][]int),
		siblings: make(map[int]map[int]map[int]bool),
		images:   make(Images),
		nonCands: make(Images),
	}
}

// Root creates the single vertex pattern every mining run starts from.
func Root(id int, engine canon.Canonicalizer) *Simplet {
	s := New(id, engine)
	if err := s.AddVertex(0, -1); err != nil {
		panic(err)
	}
	return s
}

// Extend copies s into a new pattern ready to receive one more face. The
// image map is carried over as an upper bound only when withImages is set.
// Canonical forms, frequency and the non-candidate cache are not copied.
func (s *Simplet) Extend(id int, withImages bool) *Simplet {
	ext := &Simplet{
		Id:       id,
		engine:   s.engine,
		n:        s.n,
		faces:    make(map[int][]*Face, len(s.faces)),
		nbrs:     make([]map[int]bool, len(s.nbrs), len(s.nbrs)+1),
		order:    s.order,
		incrId:   s.incrId,
		cofaces:  make(map[string][]int, len(s.cofaces)),
		siblings: make(map[int]map[int]map[int]bool, len(s.siblings)),
		nonCands: make(Images),
	}
	for size, fs := range s.faces {
		cp := make([]*Face, 0, len(fs)+1)
		for _, f := range fs {
			cp = append(cp, f.copy())
		}
		ext.faces[size] = cp
	}
	for v, adj := range s.nbrs {
		cp := make(map[int]bool, len(adj)+1)
		for u := range adj {
			cp[u] = true
		}
		ext.nbrs[v] = cp
	}
	for key, pos := range s.cofaces {
		cp := make([]int, len(pos), len(pos)+1)
		copy(cp, pos)
		ext.cofaces[key] = cp
	}
	for size, rows := range s.siblings {
		cpRows := make(map[int]map[int]bool, len(rows)+1)
		for pos, sibs := range rows {
			cp := make(map[int]bool, len(sibs)+1)
			for sib := range sibs {
				cp[sib] = true
			}
			cpRows[pos] = cp
		}
		ext.siblings[size] = cpRows
	}
	if withImages && !s.infeasible {
		ext.images = s.images.Copy()
	} else {
		ext.images = make(Images)
	}
	return ext
}

func (s *Simplet) nextId() int {
	id := s.incrId
	s.incrId++
	return id
}

// AddVertex adds vertex v with its 0-face. v must be the next vertex id.
// joined names the existing vertex v is about to be joined to by an edge (-1
// for none): the two are not siblings since their union is already a face.
func (s *Simplet) AddVertex(v, joined int) error {
	if v != s.n {
		return errors.Errorf("vertex %d would leave a gap (next vertex is %d)", v, s.n)
	}
	s.n++
	s.nbrs = append(s.nbrs, make(map[int]bool))
	f := newFace(s.nextId(), []int{v})
	s.faces[1] = append(s.faces[1], f)
	if s.order < 1 {
		s.order = 1
	}
	pos := len(s.faces[1]) - 1
	rows := s.siblingRows(1)
	sibs := make(map[int]bool, len(s.cofaces["-"]))
	for _, ot := range s.cofaces["-"] {
		sibs[ot] = true
		if ot != joined {
			rows[ot][pos] = true
		}
	}
	rows[pos] = sibs
	s.cofaces["-"] = append(s.cofaces["-"], pos)
	return nil
}

// AddEdge adds the new vertex newV joined to the existing vertex oldV.
func (s *Simplet) AddEdge(newV, oldV int) (*Face, error) {
	if oldV < 0 || oldV >= s.n {
		return nil, errors.Errorf("vertex %d is not in the pattern", oldV)
	}
	if err := s.AddVertex(newV, oldV); err != nil {
		return nil, err
	}
	return s.AddFace([]int{newV, oldV})
}

// AddFace inserts a face over existing vertices and clears the maximal flag
// of every face it covers one size down. The coface table is not touched;
// call UpdateCofaces once the face is kept.
func (s *Simplet) AddFace(verts []int) (*Face, error) {
	if len(verts) == 0 {
		return nil, errors.Errorf("a face needs at least one vertex")
	}
	f := newFace(s.nextId(), verts)
	for i, v := range f.Vertices {
		if v < 0 || v >= s.n {
			return nil, errors.Errorf("face %v references vertex %d outside the pattern", f, v)
		}
		if i > 0 && f.Vertices[i-1] == v {
			return nil, errors.Errorf("face %v repeats vertex %d", f, v)
		}
	}
	size := f.Size()
	for _, ot := range s.faces[size] {
		if ot.Covers(f) {
			return nil, errors.Errorf("face %v is already in the pattern", f)
		}
	}
	s.faces[size] = append(s.faces[size], f)
	for _, u := range f.Vertices {
		for _, w := range f.Vertices {
			if u != w {
				s.nbrs[u][w] = true
			}
		}
	}
	if size > s.order {
		s.order = size
	}
	for _, sub := range s.faces[size-1] {
		if sub.Maximal && f.Covers(sub) {
			sub.Maximal = false
		}
	}
	return f, nil
}

// UpdateCofaces records f, which must be the last face added of its size, in
// the coface table: every face sharing a facet with f becomes its sibling.
func (s *Simplet) UpdateCofaces(f *Face) {
	size := f.Size()
	idx := len(s.faces[size]) - 1
	if s.faces[size][idx] != f {
		panic(errors.Errorf("face %v is not the last face of size %d", f, size))
	}
	rows := s.siblingRows(size)
	if _, has := rows[idx]; !has {
		rows[idx] = make(map[int]bool)
	}
	for _, key := range f.facets() {
		for _, ot := range s.cofaces[key] {
			rows[idx][ot] = true
			rows[ot][idx] = true
		}
		s.cofaces[key] = append(s.cofaces[key], idx)
	}
}

func (s *Simplet) siblingRows(size int) map[int]map[int]bool {
	rows, has := s.siblings[size]
	if !has {
		rows = make(map[int]map[int]bool)
		s.siblings[size] = rows
	}
	return rows
}

// Siblings returns the positions of the faces of the given size sharing a
// facet with the face at pos, ascending.
func (s *Simplet) Siblings(size, pos int) []int {
	sibs := make([]int, 0, len(s.siblings[size][pos]))
	for sib := range s.siblings[size][pos] {
		sibs = append(sibs, sib)
	}
	sort.Ints(sibs)
	return sibs
}

func (s *Simplet) NumVertices() int {
	return s.n
}

func (s *Simplet) Vertices() []int {
	verts := make([]int, s.n)
	for i := range verts {
		verts[i] = i
	}
	return verts
}

// Dimension is the dimension of the largest face.
func (s *Simplet) Dimension() int {
	return s.order - 1
}

func (s *Simplet) NumFaces() int {
	total := 0
	for _, fs := range s.faces {
		total += len(fs)
	}
	return total
}

// Sizes returns the face sizes present, ascending.
func (s *Simplet) Sizes() []int {
	sizes := make([]int, 0, len(s.faces))
	for size := range s.faces {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)
	return sizes
}

// Faces returns the faces with size vertices in insertion order. Positions
// in this slice are the positions used by the coface table.
func (s *Simplet) Faces(size int) []*Face {
	return s.faces[size]
}

// MaximalFaces returns the maximal faces ordered by their vertex lists.
func (s *Simplet) MaximalFaces() []*Face {
	max := make([]*Face, 0, s.n)
	for _, fs := range s.faces {
		for _, f := range fs {
			if f.Maximal {
				max = append(max, f)
			}
		}
	}
	sort.Slice(max, func(i, j int) bool {
		return canon.LessInts(max[i].Vertices, max[j].Vertices)
	})
	return max
}

// Neighbors returns the vertices sharing a face with v, ascending.
func (s *Simplet) Neighbors(v int) []int {
	nbrs := make([]int, 0, len(s.nbrs[v]))
	for u := range s.nbrs[v] {
		nbrs = append(nbrs, u)
	}
	sort.Ints(nbrs)
	return nbrs
}

func (s *Simplet) Degree(v int) int {
	return len(s.nbrs[v])
}

func (s *Simplet) Adjacent(u, v int) bool {
	return s.nbrs[u][v] || s.nbrs[v][u]
}

// DFS orders the vertices reachable from seed depth first, seed first and
// lower ids first among neighbors.
func (s *Simplet) DFS(seed int) []int {
	visited := make([]bool, s.n)
	order := make([]int, 0, s.n)
	var visit func(v int)
	visit = func(v int) {
		visited[v] = true
		order = append(order, v)
		for _, u := range s.Neighbors(v) {
			if !visited[u] {
				visit(u)
			}
		}
	}
	visit(seed)
	return order
}

// Images returns the image map. It is empty once the pattern is infeasible.
func (s *Simplet) Images() Images {
	return s.images
}

func (s *Simplet) SetImages(im Images) {
	s.images = im.Copy()
	s.infeasible = false
}

// SeedImage sets v's image upper bound.
func (s *Simplet) SeedImage(v int, hosts []int) {
	set := make(map[int]bool, len(hosts))
	for _, h := range hosts {
		set[h] = true
	}
	s.images[v] = set
}

// HasBound reports whether v's image set bounds its candidates.
func (s *Simplet) HasBound(v int) bool {
	_, has := s.images[v]
	return has && !s.infeasible
}

// MarkInfeasible clears the image map: the pattern cannot be frequent and
// will be neither reported nor extended.
func (s *Simplet) MarkInfeasible() {
	s.images = make(Images)
	s.infeasible = true
	s.freq = 0
}

func (s *Simplet) Infeasible() bool {
	return s.infeasible
}

func (s *Simplet) NonCands() Images {
	return s.nonCands
}

func (s *Simplet) SetNonCands(nc Images) {
	s.nonCands = nc
}

// Release drops the image map and the non-candidate cache.
func (s *Simplet) Release() {
	s.images = make(Images)
	s.nonCands = make(Images)
}

// ComputeFrequency sets and returns the frequency under m. Under MNI it is
// the smallest image set; under MIS it is the value already set by the
// support engine.
func (s *Simplet) ComputeFrequency(m Measure) int {
	if s.infeasible || len(s.images) == 0 {
		s.freq = 0
		return 0
	}
	if m == MNI {
		min := -1
		for v := 0; v < s.n; v++ {
			if size := s.images.Size(v); min < 0 || size < min {
				min = size
			}
		}
		s.freq = min
	}
	return s.freq
}

func (s *Simplet) Frequency() int {
	return s.freq
}

func (s *Simplet) SetFrequency(freq int) {
	s.freq = freq
}

// Label lists the maximal faces in canonical vertex order. Isomorphic
// patterns have equal labels.
func (s *Simplet) Label() string {
	lists, err := s.Canonical()
	if err != nil {
		lists = s.maximalLists()
	}
	faces := make([]string, 0, len(lists))
	for _, f := range lists {
		faces = append(faces, formatVertices(f))
	}
	return strings.Join(faces, " ")
}

func (s *Simplet) String() string {
	return fmt.Sprintf("%d\t%v", s.freq, s.Label())
}
