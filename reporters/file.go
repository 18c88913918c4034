package reporters

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

import (
	"github.com/timtadh/simplets/config"
	"github.com/timtadh/simplets/simplet"
)

// File writes one line per pattern, `<frequency>\t<face> <face> ...`, to
// the result file named by the configuration. With an images file name it
// also writes the image set of every pattern vertex.
type File struct {
	config   *config.Config
	file     io.WriteCloser
	patterns *bufio.Writer
	imgFile  io.WriteCloser
	images   *bufio.Writer
	count    int
}

func NewFile(c *config.Config, imagesFilename string) (*File, error) {
	f, err := os.Create(c.OutputFile(c.ResultName(".txt")))
	if err != nil {
		return nil, err
	}
	r := &File{
		config:   c,
		file:     f,
		patterns: bufio.NewWriter(f),
	}
	if imagesFilename != "" {
		imgs, err := os.Create(c.OutputFile(c.ResultName("_" + imagesFilename)))
		if err != nil {
			f.Close()
			return nil, err
		}
		r.imgFile = imgs
		r.images = bufio.NewWriter(imgs)
	}
	return r, nil
}

func (r *File) Report(s *simplet.Simplet) error {
	r.count++
	if _, err := fmt.Fprintln(r.patterns, s); err != nil {
		return err
	}
	if r.images == nil {
		return nil
	}
	label := s.Label()
	images := s.Images()
	for v := 0; v < s.NumVertices(); v++ {
		hosts := images.Of(v)
		strs := make([]string, 0, len(hosts))
		for _, h := range hosts {
			strs = append(strs, fmt.Sprint(h))
		}
		_, err := fmt.Fprintf(r.images, "%v\t%d\t%v\n", label, v, strings.Join(strs, " "))
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *File) Close() error {
	err := r.patterns.Flush()
	if err != nil {
		return err
	}
	err = r.file.Close()
	if err != nil {
		return err
	}
	if r.images != nil {
		err = r.images.Flush()
		if err != nil {
			return err
		}
		return r.imgFile.Close()
	}
	return nil
}
