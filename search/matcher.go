package search

import (
	"time"
)

import (
	"github.com/timtadh/data-structures/set"
	"github.com/timtadh/data-structures/types"
)

import (
	"github.com/timtadh/simplets/host"
	"github.com/timtadh/simplets/overlap"
	"github.com/timtadh/simplets/simplet"
)

// Options configures how a Matcher examines a pattern.
type Options struct {
	Support int
	Measure simplet.Measure
	Harmful bool
	Greedy  bool
	// Timeout bounds each single match search in ExamineSingle. Negative
	// means no bound.
	Timeout time.Duration
}

// Matcher searches for embeddings of one pattern into the host. A Matcher
// belongs to a single goroutine.
type Matcher struct {
	host    *host.Complex
	pattern *simplet.Simplet
	opts    Options
	faces   []*simplet.Face
	graph   *overlap.Graph
	now     func() time.Time

	// Comparisons counts candidate host vertices tested against the
	// constraints. Inconclusive counts searches stopped by the budget.
	Comparisons  int
	Inconclusive int
}

func New(h *host.Complex, p *simplet.Simplet, opts Options) *Matcher {
	faces := make([]*simplet.Face, 0, 4)
	for _, f := range p.MaximalFaces() {
		if f.Size() > 2 {
			faces = append(faces, f)
		}
	}
	return &Matcher{
		host:    h,
		pattern: p,
		opts:    opts,
		faces:   faces,
		now:     time.Now,
	}
}

// Overlap returns the overlap graph built by the last Examine under the MIS
// measure.
func (m *Matcher) Overlap() *overlap.Graph {
	return m.graph
}

// Accepts reports whether host vertex n may be assigned to pattern vertex w
// given the partial embedding emb.
func (m *Matcher) Accepts(emb Embedding, w, n int) bool {
	if m.host.Degree(n) < m.pattern.Degree(w) {
		return false
	}
	for u, h := range emb {
		if h < 0 {
			continue
		}
		if h == n {
			return false
		}
		if m.pattern.Adjacent(u, w) && !m.host.Adjacent(h, n) {
			return false
		}
	}
	for _, f := range m.faces {
		if !f.Contains(w) {
			continue
		}
		tuple := make([]int, 0, f.Size())
		tuple = append(tuple, n)
		for _, u := range f.Vertices {
			if u != w && emb.Assigned(u) {
				tuple = append(tuple, emb[u])
			}
		}
		if !m.host.Contains(tuple) {
			return false
		}
	}
	return true
}

// candidates lists the host vertices that could extend emb at w: the common
// host neighbors of the images of w's assigned neighbors (every candidate
// vertex when none is assigned), within w's image bound, minus the host
// vertices emb already uses.
func (m *Matcher) candidates(emb Embedding, w int) []int {
	var common *set.SortedSet
	for _, u := range m.pattern.Neighbors(w) {
		if !emb.Assigned(u) {
			continue
		}
		nbrs := m.host.Neighbors(emb[u])
		if common == nil {
			common = nbrs
			continue
		}
		x, err := common.Intersect(nbrs)
		if err != nil {
			panic(err)
		}
		common = x.(*set.SortedSet)
	}
	var pool []int
	if common == nil {
		pool = m.host.CandVertices()
	} else {
		pool = make([]int, 0, common.Size())
		for h, next := common.Items()(); next != nil; h, next = next() {
			pool = append(pool, int(h.(types.Int)))
		}
	}
	bounded := m.pattern.HasBound(w)
	images := m.pattern.Images()
	cands := make([]int, 0, len(pool))
	for _, n := range pool {
		if bounded && !images.Has(w, n) {
			continue
		}
		if emb.Uses(n) {
			continue
		}
		cands = append(cands, n)
	}
	return cands
}

type budget struct {
	timed    bool
	deadline time.Time
	now      func() time.Time
}

func (b *budget) expired() bool {
	return b.timed && !b.now().Before(b.deadline)
}

// FindMatch completes seed into a full embedding, trying pattern vertices
// in the given order. A negative limit searches without a time bound.
// Otherwise the search gives up with Inconclusive once limit has elapsed; a
// zero limit gives up before the first comparison.
func (m *Matcher) FindMatch(seed Embedding, order []int, limit time.Duration) (Embedding, Outcome) {
	b := &budget{now: m.now}
	if limit >= 0 {
		b.timed = true
		b.deadline = m.now().Add(limit)
	}
	emb := seed.Copy()
	out := m.match(emb, order, 0, b)
	if out == Inconclusive {
		m.Inconclusive++
	}
	if out != Match {
		return nil, out
	}
	return emb, Match
}

func (m *Matcher) match(emb Embedding, order []int, i int, b *budget) Outcome {
	if emb.Complete() {
		return Match
	}
	if b.expired() {
		return Inconclusive
	}
	for i < len(order) && emb.Assigned(order[i]) {
		i++
	}
	if i >= len(order) {
		return NoMatch
	}
	w := order[i]
	for _, n := range m.candidates(emb, w) {
		m.Comparisons++
		if m.Accepts(emb, w, n) {
			emb[w] = n
			out := m.match(emb, order, i+1, b)
			if out == Match {
				return Match
			}
			emb[w] = -1
			if out == Inconclusive {
				return Inconclusive
			}
		} else if b.expired() {
			return Inconclusive
		}
	}
	return NoMatch
}

// FindAll calls do with every full embedding extending seed and returns
// how many there were.
func (m *Matcher) FindAll(seed Embedding, order []int, do func(Embedding)) int {
	return m.all(seed.Copy(), order, 0, do)
}

func (m *Matcher) all(emb Embedding, order []int, i int, do func(Embedding)) int {
	if emb.Complete() {
		do(emb.Copy())
		return 1
	}
	for i < len(order) && emb.Assigned(order[i]) {
		i++
	}
	if i >= len(order) {
		return 0
	}
	w := order[i]
	found := 0
	for _, n := range m.candidates(emb, w) {
		m.Comparisons++
		if m.Accepts(emb, w, n) {
			emb[w] = n
			found += m.all(emb, order, i+1, do)
			emb[w] = -1
		}
	}
	return found
}
