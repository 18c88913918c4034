package reporters

import ()

import (
	"github.com/timtadh/simplets/miner"
	"github.com/timtadh/simplets/simplet"
)

// Skip passes on every Skip-th pattern.
type Skip struct {
	Skip     int
	Reporter miner.Reporter
	count    int
}

func NewSkip(n int, rptr miner.Reporter) *Skip {
	return &Skip{
		Skip:     n,
		Reporter: rptr,
	}
}

func (r *Skip) Report(s *simplet.Simplet) error {
	r.count++
	if r.count%r.Skip == 0 {
		return r.Reporter.Report(s)
	}
	return nil
}

func (r *Skip) Close() error {
	return r.Reporter.Close()
}
