package reporters

import (
	"github.com/timtadh/simplets/simplet"
)

// Collector keeps every reported pattern in memory.
type Collector struct {
	Patterns []*simplet.Simplet
}

func (c *Collector) Report(s *simplet.Simplet) error {
	c.Patterns = append(c.Patterns, s)
	return nil
}

func (c *Collector) Close() error {
	return nil
}
