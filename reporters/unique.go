package reporters

import (
	"fmt"
	"io"
	"os"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/data-structures/hashtable"
	"github.com/timtadh/data-structures/types"
)

import (
	"github.com/timtadh/simplets/config"
	"github.com/timtadh/simplets/miner"
	"github.com/timtadh/simplets/simplet"
)

// Unique passes on the first pattern with each canonical label and counts
// the repeats. With a histogram name it writes the counts as csv on Close.
type Unique struct {
	count     int
	Seen      *hashtable.LinearHash
	Reporter  miner.Reporter
	histogram io.WriteCloser
}

func NewUnique(conf *config.Config, reporter miner.Reporter, histogramName string) (*Unique, error) {
	var histogram io.WriteCloser = nil
	if histogramName != "" {
		var err error
		histogram, err = os.Create(conf.OutputFile(conf.ResultName("_" + histogramName + ".csv")))
		if err != nil {
			return nil, err
		}
	}
	u := &Unique{
		Seen:      hashtable.NewLinearHash(),
		Reporter:  reporter,
		histogram: histogram,
	}
	return u, nil
}

func (r *Unique) Report(s *simplet.Simplet) error {
	r.count++
	label := types.String(s.Label())
	if r.Seen.Has(label) {
		c, err := r.Seen.Get(label)
		if err != nil {
			return err
		}
		return r.Seen.Put(label, c.(int)+1)
	}
	err := r.Seen.Put(label, 1)
	if err != nil {
		return err
	}
	return r.Reporter.Report(s)
}

func (r *Unique) Observe(s *simplet.Simplet) error {
	if o, ok := r.Reporter.(miner.Observer); ok {
		return o.Observe(s)
	}
	return nil
}

func (r *Unique) Close() error {
	if r.histogram != nil {
		for k, v, next := r.Seen.Iterate()(); next != nil; k, v, next = next() {
			c := v.(int)
			fmt.Fprintf(r.histogram, "%d, %.5g, %v\n", c, float64(c)/float64(r.count), k)
		}
		err := r.histogram.Close()
		if err != nil {
			errors.Logf("ERROR", "%v", err)
		}
	}
	return r.Reporter.Close()
}
