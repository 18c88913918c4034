package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

import (
	"github.com/timtadh/data-structures/errors"
	"gopkg.in/yaml.v3"
)

import (
	"github.com/timtadh/simplets/simplet"
)

type Config struct {
	Output string
	// Data names the dataset in result file names.
	Data string
	// Component is the index of the connected component being mined, -1
	// when the whole complex is mined at once.
	Component int

	Support int
	MinDim  int
	MaxSize int
	Measure simplet.Measure
	Harmful bool
	Greedy  bool
	// AllMatches selects the exhaustive search. It is forced on by MIS.
	AllMatches bool
	// Timeout bounds every single match search in the incremental mode.
	// Negative means no bound.
	Timeout     time.Duration
	Limited     bool
	Parallelism int
}

func Default() *Config {
	return &Config{
		Output:      ".",
		Component:   -1,
		Measure:     simplet.MNI,
		Timeout:     -1,
		Parallelism: -1,
	}
}

func (c *Config) Copy() *Config {
	cp := *c
	return &cp
}

func (c *Config) Workers() int {
	if c.Parallelism == 0 {
		return 1
	} else if c.Parallelism == -1 {
		return runtime.NumCPU()
	} else {
		return c.Parallelism
	}
}

func (c *Config) OutputFile(name string) string {
	return filepath.Join(c.Output, name)
}

// Validate checks the mining options and switches on the exhaustive search
// when the MIS measure needs it.
func (c *Config) Validate() error {
	if c.Support <= 0 {
		return errors.Errorf("support must be positive (got %d)", c.Support)
	}
	if c.MaxSize < 1 {
		return errors.Errorf("max size must be at least 1 (got %d)", c.MaxSize)
	}
	if c.MinDim < 0 {
		return errors.Errorf("min dimension must not be negative (got %d)", c.MinDim)
	}
	if c.Parallelism < -1 {
		return errors.Errorf("parallelism must be -1 (all cpus) or at least 0 (got %d)", c.Parallelism)
	}
	switch c.Measure {
	case simplet.MNI:
		if c.Harmful {
			return errors.Errorf("harmful overlap needs the mis measure")
		}
		if c.Greedy {
			return errors.Errorf("the greedy independent set needs the mis measure")
		}
	case simplet.MIS:
		c.AllMatches = true
	default:
		return errors.Errorf("unknown support measure %v", c.Measure)
	}
	return nil
}

func (c *Config) measureName() string {
	if c.Measure == simplet.MNI {
		return c.Measure.String()
	}
	return fmt.Sprintf("%v-%v", c.Measure, c.Harmful)
}

// ResultName names an output file after the dataset, the component and the
// mining options. ext is appended as is.
func (c *Config) ResultName(ext string) string {
	prefix := c.Data
	if c.Component >= 0 {
		prefix = fmt.Sprintf("%v_%d_", prefix, c.Component)
	}
	return fmt.Sprintf("%v_F%dm%dM%dALL%vS%v%v",
		prefix, c.Support, c.MinDim, c.MaxSize, c.AllMatches, c.measureName(), ext)
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"support=%d min-dim=%d max-size=%d measure=%v harmful=%v greedy=%v all-matches=%v timeout=%v limited=%v workers=%d",
		c.Support, c.MinDim, c.MaxSize, c.Measure, c.Harmful, c.Greedy, c.AllMatches, c.Timeout, c.Limited, c.Workers())
}

// file is the YAML form of a Config. Absent keys leave the Config alone.
type file struct {
	Output      *string        `yaml:"output"`
	Support     *int           `yaml:"support"`
	MinDim      *int           `yaml:"min_dim"`
	MaxSize     *int           `yaml:"max_size"`
	Measure     *string        `yaml:"measure"`
	Harmful     *bool          `yaml:"harmful"`
	Greedy      *bool          `yaml:"greedy"`
	AllMatches  *bool          `yaml:"all_matches"`
	Timeout     *time.Duration `yaml:"timeout"`
	Limited     *bool          `yaml:"limited"`
	Parallelism *int           `yaml:"parallelism"`
}

// Load reads the YAML file at path into c. Unknown keys are errors.
func (c *Config) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Errorf("could not read configuration file '%s': %v", path, err)
	}
	return c.Decode(data)
}

func (c *Config) Decode(data []byte) error {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err == io.EOF {
		return nil
	} else if err != nil {
		return errors.Errorf("bad configuration: %v", err)
	}
	if f.Measure != nil {
		m, err := simplet.ParseMeasure(*f.Measure)
		if err != nil {
			return err
		}
		c.Measure = m
	}
	setString(&c.Output, f.Output)
	setInt(&c.Support, f.Support)
	setInt(&c.MinDim, f.MinDim)
	setInt(&c.MaxSize, f.MaxSize)
	setInt(&c.Parallelism, f.Parallelism)
	setBool(&c.Harmful, f.Harmful)
	setBool(&c.Greedy, f.Greedy)
	setBool(&c.AllMatches, f.AllMatches)
	setBool(&c.Limited, f.Limited)
	if f.Timeout != nil {
		c.Timeout = *f.Timeout
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
