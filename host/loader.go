package host

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
)

// Loader reads one or more complexes from an input stream. Loaders that read
// a single complex return a slice of length one.
type Loader func(r io.Reader) ([]*Complex, error)

var Loaders = map[string]Loader{
	"simplex":    one(LoadSimplices),
	"components": LoadComponents,
	"dot":        one(LoadDot),
}

func one(load func(io.Reader) (*Complex, error)) Loader {
	return func(r io.Reader) ([]*Complex, error) {
		c, err := load(r)
		if err != nil {
			return nil, err
		}
		return []*Complex{c}, nil
	}
}

// LoadSimplices reads one face per line, each a whitespace separated list of
// integer vertex ids. Blank lines and lines starting with '#' are skipped.
func LoadSimplices(r io.Reader) (*Complex, error) {
	faces := make([]*Face, 0, 100)
	err := scanLines(r, func(lineno int, line string) error {
		if len(line) == 0 || line[0] == '#' {
			return nil
		}
		verts, err := parseInts(strings.Fields(line))
		if err != nil {
			return errors.Errorf("line %d: %v", lineno, err)
		}
		faces = append(faces, &Face{Id: len(faces), Vertices: verts})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return New(faces)
}

// LoadComponents reads one connected component per line. The faces of a
// component are separated by two tabs and each face is written as
// "[a, b, c]". Components made of a single face are skipped.
func LoadComponents(r io.Reader) ([]*Complex, error) {
	complexes := make([]*Complex, 0, 10)
	id := 0
	err := scanLines(r, func(lineno int, line string) error {
		if len(line) == 0 {
			return nil
		}
		parts := strings.Split(line, "\t\t")
		faces := make([]*Face, 0, len(parts))
		for _, part := range parts {
			part = strings.TrimSpace(part)
			part = strings.TrimPrefix(part, "[")
			part = strings.TrimSuffix(part, "]")
			fields := make([]string, 0, 4)
			for _, el := range strings.Split(part, ",") {
				if el = strings.TrimSpace(el); len(el) > 0 {
					fields = append(fields, el)
				}
			}
			verts, err := parseInts(fields)
			if err != nil {
				return errors.Errorf("line %d: %v", lineno, err)
			}
			faces = append(faces, &Face{Id: id, Vertices: verts})
			id++
		}
		if len(faces) <= 1 {
			return nil
		}
		c, err := New(faces)
		if err != nil {
			return errors.Errorf("line %d: %v", lineno, err)
		}
		complexes = append(complexes, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(complexes) == 0 {
		return nil, errors.Errorf("no components with more than one face")
	}
	return complexes, nil
}

// WriteSimplices writes c one face per line in the format LoadSimplices
// reads.
func WriteSimplices(w io.Writer, c *Complex) error {
	out := bufio.NewWriter(w)
	for _, f := range c.Faces {
		parts := make([]string, 0, len(f.Vertices))
		for _, v := range f.Vertices {
			parts = append(parts, strconv.Itoa(v))
		}
		if _, err := out.WriteString(strings.Join(parts, " ") + "\n"); err != nil {
			return err
		}
	}
	return out.Flush()
}

func scanLines(r io.Reader, do func(lineno int, line string) error) error {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineno := 0
	for s.Scan() {
		lineno++
		if err := do(lineno, strings.TrimSpace(s.Text())); err != nil {
			return err
		}
	}
	return s.Err()
}

func parseInts(fields []string) ([]int, error) {
	ints := make([]int, 0, len(fields))
	for _, f := range fields {
		i, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.Errorf("expected an int got '%v'", f)
		}
		ints = append(ints, i)
	}
	return ints, nil
}
