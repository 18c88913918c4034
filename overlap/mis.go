package overlap

import (
	"sort"
)

import (
	"github.com/timtadh/data-structures/errors"
)

// MISSize computes the size of a maximum independent set of the graph. Leaves
// and isolated nodes are selected first, then every remaining connected
// component is solved on its own: by branch and bound or, with greedy set,
// by repeatedly selecting a node of minimum reduced degree. The greedy result
// never exceeds the exact one.
func (g *Graph) MISSize(greedy bool) int {
	cnt := len(g.nodes)
	if cnt <= 1 {
		return cnt
	}
	if cnt == 2 {
		return 2 - g.nodes[0].deg
	}
	g.sel = 0
	leaves := 0
	for _, s := range g.nodes {
		s.red = s.deg
		switch {
		case s.deg <= 0:
			s.mark = 0
			g.sel++
		case s.deg == 1:
			s.mark = -1
			leaves++
		default:
			s.mark = -1
		}
	}
	g.rem = cnt - g.sel
	if leaves > 0 {
		for _, s := range g.nodes {
			if s.mark < 0 && s.red == 1 {
				g.selectSafe(s)
			}
		}
	}
	if g.rem <= 3 {
		g.sel += g.rem & 1
		return g.sel
	}
	g.buf = make([]*Node, 0, g.rem)
	for _, s := range g.nodes {
		if s.mark < 0 {
			g.buf = append(g.buf, s)
		}
	}
	comps := 0
	for _, s := range g.buf {
		if s.mark < 0 {
			s.component(comps)
			comps++
		}
	}
	sort.SliceStable(g.buf, func(i, j int) bool {
		return g.buf[i].mark < g.buf[j].mark
	})
	if !greedy {
		g.stack = make([]*Node, len(g.buf))
	}
	end := len(g.buf)
	for c := comps - 1; c >= 0; c-- {
		beg := end
		for beg > 0 && g.buf[beg-1].mark == c {
			beg--
		}
		size := end - beg
		if size <= 3 {
			// every node has degree >= 2 so this is a triangle
			g.sel++
			end = beg
			continue
		}
		for _, s := range g.buf[beg:end] {
			s.mark = -1
		}
		g.rem = size
		if greedy {
			g.greedy(beg, end)
		} else {
			g.pos = 0
			g.best = g.sel
			g.recurse(beg, end)
			g.sel = g.best
		}
		end = beg
	}
	g.stack = nil
	g.buf = nil
	return g.sel
}

// lastUndecided returns the position of the last undecided neighbor of node.
func lastUndecided(node *Node) int {
	i := node.deg - 1
	for node.adjs[i].mark >= 0 {
		i--
	}
	return i
}

// selectSafe selects a node with at most one undecided neighbor and
// excludes that neighbor. Nodes that become leaves are selected in turn.
// Nothing is recorded for undo.
func (g *Graph) selectSafe(node *Node) {
	node.mark = 0
	g.sel++
	g.rem--
	if node.red <= 0 {
		return
	}
	s := node.adjs[lastUndecided(node)]
	s.mark = 1
	g.rem--
	n := 0
	for _, d := range s.adjs[:s.deg] {
		if d.mark < 0 {
			d.red--
			if d.red <= 1 {
				n++
			}
		}
	}
	if n <= 0 {
		return
	}
	for _, d := range s.adjs[:s.deg] {
		if d.mark < 0 && d.red <= 1 {
			g.selectSafe(d)
		}
	}
}

func (g *Graph) greedy(beg, end int) {
	m := 1
	for {
		end--
		for g.buf[end].mark >= 0 {
			end--
		}
		k := end
		node := g.buf[end]
		for i := end - 1; i >= beg; i-- {
			d := g.buf[i]
			if d.mark < 0 && d.red < node.red {
				node = d
				k = i
			}
		}
		g.buf[k] = g.buf[end]
		g.buf[end] = node
		node.mark = 0
		g.sel++
		m++
		g.rem -= node.red + 1
		for _, s := range node.adjs[:node.deg] {
			if s.mark < 0 {
				s.mark = m
			}
		}
		for _, s := range node.adjs[:node.deg] {
			if s.mark != m {
				continue
			}
			s.red = 0
			for _, d := range s.adjs[:s.deg] {
				if d.mark < 0 {
					d.red--
					if d.red <= 1 {
						s.red++
					}
				}
			}
		}
		for _, s := range node.adjs[:node.deg] {
			if s.mark != m || s.red <= 0 {
				continue
			}
			for _, d := range s.adjs[:s.deg] {
				if d.mark < 0 && d.red <= 1 {
					g.selectSafe(d)
				}
			}
		}
		if g.rem <= 3 {
			break
		}
	}
	g.sel += g.rem & 1
}

func (g *Graph) push(node *Node) {
	g.stack[g.pos] = node
	g.pos++
}

// selectSafeRev is selectSafe recording every decision on the undo stack.
func (g *Graph) selectSafeRev(node *Node) {
	g.push(node)
	node.mark = g.pos << 1
	g.sel++
	g.rem--
	if node.red <= 0 {
		return
	}
	s := node.adjs[lastUndecided(node)]
	s.mark = node.mark + 1
	g.rem--
	n := 0
	for _, d := range s.adjs[:s.deg] {
		if d.mark < 0 {
			d.red--
			if d.red <= 1 {
				n++
			}
		}
	}
	if n <= 0 {
		return
	}
	for _, d := range s.adjs[:s.deg] {
		if d.mark < 0 && d.red <= 1 {
			g.selectSafeRev(d)
		}
	}
}

// selectNode puts node into the independent set and excludes its undecided
// neighbors.
func (g *Graph) selectNode(node *Node) {
	g.push(node)
	node.mark = g.pos << 1
	g.sel++
	g.rem--
	m := node.mark + 1
	for _, s := range node.adjs[:node.deg] {
		if s.mark < 0 {
			s.mark = m
		}
	}
	g.rem -= node.red
	n := 0
	for _, s := range node.adjs[:node.deg] {
		if s.mark != m {
			continue
		}
		for _, d := range s.adjs[:s.deg] {
			if d.mark < 0 {
				d.red--
				if d.red <= 1 {
					n++
				}
			}
		}
	}
	if n <= 0 {
		return
	}
	for _, s := range node.adjs[:node.deg] {
		if s.mark != m {
			continue
		}
		for _, d := range s.adjs[:s.deg] {
			if d.mark < 0 && d.red <= 1 {
				g.selectSafeRev(d)
			}
		}
	}
}

// exclude keeps node out of the independent set.
func (g *Graph) exclude(node *Node) {
	g.push(node)
	node.mark = g.pos<<1 + 1
	g.rem--
	n := 0
	for _, d := range node.adjs[:node.deg] {
		if d.mark < 0 {
			d.red--
			if d.red <= 1 {
				n++
			}
		}
	}
	if n <= 0 {
		return
	}
	for _, d := range node.adjs[:node.deg] {
		if d.mark < 0 && d.red <= 1 {
			g.selectSafeRev(d)
		}
	}
}

// restore pops the undo stack down to and including node, reversing every
// degree and mark change made since node was pushed.
func (g *Graph) restore(node *Node) {
	for {
		if g.pos <= 0 {
			panic(errors.Errorf("restore of %v ran off the undo stack", node))
		}
		g.pos--
		r := g.stack[g.pos]
		g.stack[g.pos] = nil
		if r.mark < 0 {
			panic(errors.Errorf("undecided %v found on the undo stack", r))
		}
		if r.mark&1 == 0 {
			for _, s := range r.adjs[:r.deg] {
				if s.mark <= r.mark {
					continue
				}
				for _, d := range s.adjs[:s.deg] {
					if d.mark < 0 {
						d.red++
					}
				}
			}
			for _, s := range r.adjs[:r.deg] {
				if s.mark > r.mark {
					s.mark = -1
				}
			}
			g.rem += r.red
			g.sel--
		} else {
			for _, s := range r.adjs[:r.deg] {
				if s.mark < 0 {
					s.red++
				}
			}
		}
		g.rem++
		r.mark = -1
		if r == node {
			return
		}
	}
}

func (g *Graph) recurse(beg, end int) {
	if g.rem <= 3 {
		if k := g.sel + (g.rem & 1); k > g.best {
			g.best = k
		}
		return
	}
	if g.sel+g.rem <= g.best {
		return
	}
	end--
	for g.buf[end].mark >= 0 {
		end--
	}
	k := end
	s := g.buf[end]
	for i := end - 1; i >= beg; i-- {
		d := g.buf[i]
		if d.mark < 0 && d.red > s.red {
			s = d
			k = i
		}
	}
	g.buf[k] = g.buf[end]
	g.buf[end] = s
	g.selectNode(s)
	g.recurse(beg, end)
	g.restore(s)
	g.exclude(s)
	g.recurse(beg, end)
	g.restore(s)
}
