package search

import (
	"sort"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/simplets/overlap"
	"github.com/timtadh/simplets/simplet"
)

// saturated lists host vertices that are images of every pattern vertex
// without search. Only MNI credits them: MIS has to see the embeddings.
func (m *Matcher) saturated() map[int]bool {
	if m.opts.Measure != simplet.MNI {
		return make(map[int]bool)
	}
	return m.host.Saturated(m.pattern.NumVertices())
}

// propagate records every vertex of a full match, and every vertex in the
// same orbit, in images.
func (m *Matcher) propagate(images simplet.Images, match Embedding) error {
	for v, h := range match {
		orbit, err := m.pattern.OrbitOf(v)
		if err != nil {
			return err
		}
		for _, o := range orbit {
			images.Add(o, h)
		}
	}
	return nil
}

// Examine computes the complete image sets of the pattern within its image
// bounds. Under MIS every embedding goes into an overlap graph and the
// frequency is set to the size of its maximum independent set. When some
// vertex cannot reach the support the pattern is marked infeasible.
func (m *Matcher) Examine() error {
	p := m.pattern
	if p.Infeasible() || len(p.Images()) == 0 {
		p.MarkInfeasible()
		return nil
	}
	mis := m.opts.Measure == simplet.MIS
	if mis {
		m.graph = overlap.New(m.opts.Harmful)
	}
	bounds := p.Images()
	order := p.Vertices()
	sort.SliceStable(order, func(i, j int) bool {
		return bounds.Size(order[i]) < bounds.Size(order[j])
	})
	initial := m.saturated()
	images := make(simplet.Images)
	for _, v := range order {
		if bounds.Size(v) < m.opts.Support {
			p.MarkInfeasible()
			return nil
		}
		partial := make(map[int]bool, len(initial))
		for h := range initial {
			partial[h] = true
		}
		for h := range images[v] {
			partial[h] = true
		}
		cands := make([]int, 0, bounds.Size(v))
		for _, h := range bounds.Of(v) {
			if !partial[h] {
				cands = append(cands, h)
			}
		}
		dfs := p.DFS(v)
		for c, n := range cands {
			seed := NewEmbedding(p.NumVertices())
			if m.Accepts(seed, v, n) {
				seed[v] = n
				if mis {
					found := m.FindAll(seed, dfs, func(full Embedding) {
						m.graph.Add(full)
						for u, h := range full {
							images.Add(u, h)
						}
					})
					if found > 0 {
						partial[n] = true
					}
				} else if match, out := m.FindMatch(seed, dfs, -1); out == Match {
					if err := m.propagate(images, match); err != nil {
						return err
					}
					partial[n] = true
				}
			}
			if len(cands)-(c+1)+len(partial) < m.opts.Support {
				p.MarkInfeasible()
				return nil
			}
		}
		for h := range partial {
			images.Add(v, h)
		}
	}
	p.SetImages(images)
	if mis {
		p.SetFrequency(m.graph.MISSize(m.opts.Greedy))
	}
	return nil
}

// ExamineSingle looks for just enough images of every pattern vertex to
// reach the support. parent holds the images of the pattern this one was
// extended from; its members are tried first. parentNonCands seeds the known
// non-candidates. Searches run under Options.Timeout; the inconclusive ones
// are retried without a bound once the bounded pass has not settled the
// vertex.
func (m *Matcher) ExamineSingle(parent, parentNonCands simplet.Images) error {
	p := m.pattern
	images := make(simplet.Images)
	nonCands := parentNonCands.Copy()
	initial := m.saturated()
	all := m.host.CandVertices()
	if len(all) < m.opts.Support {
		p.MarkInfeasible()
		return nil
	}
	for _, v := range p.Vertices() {
		partial := make(map[int]bool, len(initial))
		for h := range initial {
			partial[h] = true
		}
		for h := range images[v] {
			partial[h] = true
		}
		if len(partial) < m.opts.Support {
			dfs := p.DFS(v)
			cands := preferred(all, parent[v])
			c := len(partial)
			resume := make([]int, 0)
			settled := false
			for _, n := range cands {
				if partial[n] {
					continue
				}
				c++
				if nonCands.Has(v, n) {
					continue
				}
				if m.host.Degree(n) < p.Degree(v) {
					continue
				}
				seed := NewEmbedding(p.NumVertices())
				seed[v] = n
				match, out := m.FindMatch(seed, dfs, m.opts.Timeout)
				switch out {
				case Match:
					if err := m.propagate(images, match); err != nil {
						return err
					}
					partial[n] = true
				case Inconclusive:
					resume = append(resume, n)
					c--
				case NoMatch:
					nonCands.Add(v, n)
				}
				if len(cands)-c+len(partial) < m.opts.Support {
					p.MarkInfeasible()
					return nil
				} else if len(partial) >= m.opts.Support {
					settled = true
					break
				}
			}
			if !settled && len(resume) > 0 {
				errors.Logf("DEBUG", "pattern %d vertex %d: retrying %d inconclusive searches without a bound", p.Id, v, len(resume))
				for c, n := range resume {
					if !partial[n] && !nonCands.Has(v, n) {
						seed := NewEmbedding(p.NumVertices())
						seed[v] = n
						if match, out := m.FindMatch(seed, dfs, -1); out == Match {
							if err := m.propagate(images, match); err != nil {
								return err
							}
							partial[n] = true
						} else {
							nonCands.Add(v, n)
						}
					}
					if len(resume)-(c+1)+len(partial) < m.opts.Support {
						p.MarkInfeasible()
						return nil
					} else if len(partial) >= m.opts.Support {
						break
					}
				}
			}
		}
		hosts := make([]int, 0, len(partial))
		for h := range partial {
			hosts = append(hosts, h)
		}
		sort.Ints(hosts)
		for _, h := range hosts {
			if images.Size(v) >= m.opts.Support {
				break
			}
			images.Add(v, h)
		}
		if images.Size(v) == 0 {
			p.MarkInfeasible()
			return nil
		}
	}
	p.SetImages(images)
	p.SetNonCands(nonCands)
	return nil
}

// preferred orders the candidates with the members of first ahead of the
// rest, each group ascending.
func preferred(cands []int, first map[int]bool) []int {
	out := make([]int, 0, len(cands))
	for _, h := range cands {
		if first[h] {
			out = append(out, h)
		}
	}
	for _, h := range cands {
		if !first[h] {
			out = append(out, h)
		}
	}
	return out
}
