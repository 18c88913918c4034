package reporters

import (
	"fmt"
	"os"
)

import (
	"github.com/timtadh/simplets/config"
	"github.com/timtadh/simplets/simplet"
)

// Count writes the number of reported patterns to a file on Close.
type Count struct {
	config   *config.Config
	count    int
	filename string
}

func NewCount(c *config.Config, filename string) *Count {
	return &Count{
		config:   c,
		filename: filename,
	}
}

func (r *Count) Report(s *simplet.Simplet) error {
	r.count++
	return nil
}

func (r *Count) Count() int {
	return r.count
}

func (r *Count) Close() error {
	f, err := os.Create(r.config.OutputFile(r.filename))
	if err != nil {
		return err
	}
	_, perr := fmt.Fprintf(f, "%v\n", r.count)
	err = f.Close()
	if perr != nil {
		return perr
	}
	if err != nil {
		return err
	}
	return nil
}
