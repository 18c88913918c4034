package reporters

import ()

import (
	"github.com/timtadh/simplets/miner"
	"github.com/timtadh/simplets/simplet"
)

type Chain struct {
	Reporters []miner.Reporter
}

func (r *Chain) Report(s *simplet.Simplet) error {
	for _, rpt := range r.Reporters {
		err := rpt.Report(s)
		if err != nil {
			return err
		}
	}
	return nil
}

// Observe forwards s to the chained reporters that observe.
func (r *Chain) Observe(s *simplet.Simplet) error {
	for _, rpt := range r.Reporters {
		if o, ok := rpt.(miner.Observer); ok {
			if err := o.Observe(s); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Chain) Close() error {
	for _, rpt := range r.Reporters {
		err := rpt.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
