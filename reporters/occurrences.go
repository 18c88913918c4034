package reporters

import (
	"bufio"
	"fmt"
	"os"
)

import (
	"github.com/tidwall/btree"
)

import (
	"github.com/timtadh/simplets/config"
	"github.com/timtadh/simplets/miner"
	"github.com/timtadh/simplets/simplet"
)

// Occurrence records that host vertex Vertex hosts pattern Pattern.
type Occurrence struct {
	Vertex  int
	Pattern string
}

func occurrenceLess(a, b Occurrence) bool {
	if a.Vertex != b.Vertex {
		return a.Vertex < b.Vertex
	}
	return a.Pattern < b.Pattern
}

// Occurrences builds the vertex to pattern map of every frequent pattern,
// whatever its dimension, and writes it in vertex order on Close. Reported
// patterns are passed on to Reporter when there is one.
type Occurrences struct {
	config   *config.Config
	tree     *btree.BTreeG[Occurrence]
	Reporter miner.Reporter
}

func NewOccurrences(c *config.Config, reporter miner.Reporter) *Occurrences {
	return &Occurrences{
		config:   c,
		tree:     btree.NewBTreeG[Occurrence](occurrenceLess),
		Reporter: reporter,
	}
}

func (r *Occurrences) Observe(s *simplet.Simplet) error {
	label := s.String()
	for _, h := range s.Images().Hosts() {
		r.tree.Set(Occurrence{Vertex: h, Pattern: label})
	}
	if o, ok := r.Reporter.(miner.Observer); ok {
		return o.Observe(s)
	}
	return nil
}

func (r *Occurrences) Report(s *simplet.Simplet) error {
	if r.Reporter == nil {
		return nil
	}
	return r.Reporter.Report(s)
}

func (r *Occurrences) Len() int {
	return r.tree.Len()
}

// Of lists the patterns hosted by vertex v.
func (r *Occurrences) Of(v int) []string {
	patterns := make([]string, 0)
	r.tree.Ascend(Occurrence{Vertex: v}, func(o Occurrence) bool {
		if o.Vertex != v {
			return false
		}
		patterns = append(patterns, o.Pattern)
		return true
	})
	return patterns
}

func (r *Occurrences) Close() error {
	f, err := os.Create(r.config.OutputFile(r.config.ResultName("_OM.txt")))
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	var werr error
	r.tree.Scan(func(o Occurrence) bool {
		_, werr = fmt.Fprintf(w, "%v\t%d\n", o.Pattern, o.Vertex)
		return werr == nil
	})
	if werr == nil {
		werr = w.Flush()
	}
	err = f.Close()
	if werr != nil {
		return werr
	}
	if err != nil {
		return err
	}
	if r.Reporter != nil {
		return r.Reporter.Close()
	}
	return nil
}
