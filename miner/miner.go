package miner

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/simplets/canon"
	"github.com/timtadh/simplets/config"
	"github.com/timtadh/simplets/host"
	"github.com/timtadh/simplets/metrics"
	"github.com/timtadh/simplets/search"
	"github.com/timtadh/simplets/simplet"
)

// Miner grows frequent simplets from a single vertex. A Miner mines one host
// complex at a time.
type Miner struct {
	Config  *config.Config
	Engine  canon.Canonicalizer
	Metrics *metrics.Metrics

	host    *host.Complex
	index   *Index
	stack   *Stack
	reports chan *report
	ids     int64
	pending int64
	results int64
}

// node is a frequent pattern whose children are being generated or
// examined. Its image map is released in limited mode once refs drops to
// zero.
type node struct {
	s    *simplet.Simplet
	refs int32
}

type task struct {
	s      *simplet.Simplet
	parent *node
}

type report struct {
	s        *simplet.Simplet
	accepted bool
	done     chan error
}

func New(conf *config.Config, engine canon.Canonicalizer, m *metrics.Metrics) *Miner {
	if m == nil {
		m = metrics.New()
	}
	return &Miner{
		Config:  conf,
		Engine:  engine,
		Metrics: m,
	}
}

// Pending counts the candidates generated but not yet examined.
func (m *Miner) Pending() int {
	return int(atomic.LoadInt64(&m.pending))
}

// Results counts the patterns reported by the last run.
func (m *Miner) Results() int {
	return int(atomic.LoadInt64(&m.results))
}

// Index returns the candidates generated by the last run.
func (m *Miner) Index() *Index {
	return m.index
}

func (m *Miner) dataset() string {
	if m.Config.Component >= 0 {
		return fmt.Sprintf("%v_%d", m.Config.Data, m.Config.Component)
	}
	return m.Config.Data
}

func (m *Miner) nextId() int {
	return int(atomic.AddInt64(&m.ids, 1))
}

// Mine reports every frequent simplet of h with at most Config.MaxSize
// vertices to rptr. The caller closes rptr. A cancelled ctx stops the run
// between candidates.
func (m *Miner) Mine(ctx context.Context, h *host.Complex, rptr Reporter) error {
	start := time.Now()
	m.host = h
	m.index = NewIndex()
	m.stack = NewStack()
	atomic.StoreInt64(&m.ids, 0)
	atomic.StoreInt64(&m.pending, 0)
	atomic.StoreInt64(&m.results, 0)
	errors.Logf("INFO", "mining %v: %d vertices %d faces, %v", m.dataset(), h.NumVertices(), h.NumFaces(), m.Config)

	root := simplet.Root(0, m.Engine)
	root.SeedImage(0, h.Vertices())
	if err := m.expand(&node{s: root, refs: 1}); err != nil {
		return err
	}

	errs := make(chan error, m.Config.Workers()+1)
	m.reports = make(chan *report, m.Config.Workers())
	go func() {
		for r := range m.reports {
			r.done <- m.deliver(rptr, r)
		}
	}()
	var wg sync.WaitGroup
	for i := 0; i < m.Config.Workers(); i++ {
		tid := m.stack.AddThread()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := m.stack.Pop(tid); t != nil; t = m.stack.Pop(tid) {
				if err := ctx.Err(); err != nil {
					errs <- err
					m.stack.Close()
					return
				}
				err := m.step(t)
				atomic.AddInt64(&m.pending, -1)
				if err != nil {
					errs <- err
					m.stack.Close()
					return
				}
			}
		}()
	}
	wg.Wait()
	close(m.reports)
	close(errs)
	for err := range errs {
		if err != nil {
			return err
		}
	}
	elapsed := time.Since(start)
	m.Metrics.Finish(m.dataset(), elapsed, m.Results())
	errors.Logf("INFO", "finished %v in %v: %d frequent simplets reported, %d candidates", m.dataset(), elapsed, m.Results(), m.index.Len())
	return nil
}

func (m *Miner) deliver(rptr Reporter, r *report) error {
	if o, ok := rptr.(Observer); ok {
		if err := o.Observe(r.s); err != nil {
			return err
		}
	}
	if !r.accepted {
		return nil
	}
	return rptr.Report(r.s)
}

func (m *Miner) options() search.Options {
	return search.Options{
		Support: m.Config.Support,
		Measure: m.Config.Measure,
		Harmful: m.Config.Harmful,
		Greedy:  m.Config.Greedy,
		Timeout: m.Config.Timeout,
	}
}

// step examines one candidate. A frequent candidate is reported and its
// children are pushed.
func (m *Miner) step(t *task) error {
	s := t.s
	matcher := search.New(m.host, s, m.options())
	var err error
	if m.Config.AllMatches {
		err = matcher.Examine()
	} else {
		err = matcher.ExamineSingle(t.parent.s.Images(), t.parent.s.NonCands())
	}
	m.release(t.parent)
	m.Metrics.Examined.Inc()
	m.Metrics.Comparisons.Add(float64(matcher.Comparisons))
	m.Metrics.Inconclusive.Add(float64(matcher.Inconclusive))
	if err != nil {
		return err
	}
	freq := s.ComputeFrequency(m.Config.Measure)
	if m.Config.Measure == simplet.MIS && !s.Infeasible() {
		m.Metrics.MISSizes.Observe(float64(freq))
	}
	errors.Logf("DEBUG", "examined %d: %v", s.Id, s)
	if s.Infeasible() {
		m.Metrics.Infeasible.Inc()
	}
	if freq < m.Config.Support {
		return nil
	}
	m.Metrics.Frequent.Inc()
	r := &report{
		s:        s,
		accepted: s.Dimension() >= m.Config.MinDim,
		done:     make(chan error),
	}
	m.reports <- r
	if err := <-r.done; err != nil {
		return err
	}
	if r.accepted {
		atomic.AddInt64(&m.results, 1)
		errors.Logf("INFO", "frequent %v", s)
	}
	return m.expand(&node{s: s, refs: 1})
}

// release drops n's hold on its images after one of its children has been
// examined, or after its children were generated.
func (m *Miner) release(n *node) {
	if atomic.AddInt32(&n.refs, -1) == 0 && m.Config.Limited {
		n.s.Release()
	}
}

// expand generates the children of n: a new vertex joined to every existing
// vertex while there is room, and the closure of every open joist.
func (m *Miner) expand(n *node) error {
	defer m.release(n)
	p := n.s
	u := p.NumVertices()
	if u < m.Config.MaxSize {
		for v := 0; v < u; v++ {
			ext := p.Extend(m.nextId(), m.Config.AllMatches)
			f, err := ext.AddEdge(u, v)
			if err != nil {
				return err
			}
			ext.UpdateCofaces(f)
			ext.SeedImage(u, m.host.CandVertices())
			if err := m.offer(n, ext); err != nil {
				return err
			}
		}
	}
	for _, j := range p.Joists() {
		ext := p.Extend(m.nextId(), m.Config.AllMatches)
		if _, err := ext.CloseJoist(j); err != nil {
			return err
		}
		if err := m.offer(n, ext); err != nil {
			return err
		}
	}
	return nil
}

// offer pushes ext unless it duplicates an earlier candidate.
func (m *Miner) offer(parent *node, ext *simplet.Simplet) error {
	m.Metrics.Generated.Inc()
	added, err := m.index.Add(ext)
	if err != nil {
		return err
	}
	if !added {
		m.Metrics.Duplicates.Inc()
		return nil
	}
	atomic.AddInt32(&parent.refs, 1)
	atomic.AddInt64(&m.pending, 1)
	if !m.stack.Push(&task{s: ext, parent: parent}) {
		atomic.AddInt64(&m.pending, -1)
		m.release(parent)
	}
	return nil
}
