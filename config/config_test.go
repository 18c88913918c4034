package config

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"os"
	"path/filepath"
	"time"
)

import (
	"github.com/timtadh/simplets/simplet"
)

func valid() *Config {
	c := Default()
	c.Data = "contacts"
	c.Support = 2
	c.MinDim = 1
	c.MaxSize = 3
	return c
}

func TestValidate(t *testing.T) {
	x := assert.New(t)
	x.Nil(valid().Validate())

	c := valid()
	c.Support = 0
	x.NotNil(c.Validate())

	c = valid()
	c.MaxSize = 0
	x.NotNil(c.Validate())

	c = valid()
	c.Harmful = true
	x.NotNil(c.Validate())

	c = valid()
	c.Greedy = true
	x.NotNil(c.Validate())

	c = valid()
	c.Measure = simplet.Measure(7)
	x.NotNil(c.Validate())

	c = valid()
	c.Measure = simplet.MIS
	c.Harmful = true
	x.False(c.AllMatches)
	x.Nil(c.Validate())
	x.True(c.AllMatches)
}

func TestWorkers(t *testing.T) {
	x := assert.New(t)
	c := valid()
	c.Parallelism = 0
	x.Equal(1, c.Workers())
	c.Parallelism = 3
	x.Equal(3, c.Workers())
	c.Parallelism = -1
	x.True(c.Workers() >= 1)
}

func TestResultName(t *testing.T) {
	x := assert.New(t)
	c := valid()
	x.Equal("contacts_F2m1M3ALLfalseSmni.txt", c.ResultName(".txt"))
	c.Measure = simplet.MIS
	c.Harmful = true
	x.Nil(c.Validate())
	c.Component = 4
	x.Equal("contacts_4__F2m1M3ALLtrueSmis-true_OM.txt", c.ResultName("_OM.txt"))
	x.Equal(filepath.Join(".", "x.txt"), c.OutputFile("x.txt"))
}

func TestCopy(t *testing.T) {
	x := assert.New(t)
	c := valid()
	d := c.Copy()
	d.Component = 2
	x.Equal(-1, c.Component)
	x.Equal(c.Support, d.Support)
}

func TestDecode(t *testing.T) {
	x := assert.New(t)
	c := valid()
	x.Nil(c.Decode([]byte(`
support: 5
measure: MIS
greedy: true
timeout: 250ms
parallelism: 2
`)))
	x.Equal(5, c.Support)
	x.Equal(simplet.MIS, c.Measure)
	x.True(c.Greedy)
	x.Equal(250*time.Millisecond, c.Timeout)
	x.Equal(2, c.Parallelism)
	// untouched
	x.Equal(3, c.MaxSize)
	x.Equal(1, c.MinDim)

	x.Nil(c.Decode([]byte("")))
	x.Equal(5, c.Support)

	x.NotNil(c.Decode([]byte("supprt: 5\n")))
	x.NotNil(c.Decode([]byte("measure: median\n")))
}

func TestLoad(t *testing.T) {
	x := assert.New(t)
	path := filepath.Join(t.TempDir(), "mine.yaml")
	x.Nil(os.WriteFile(path, []byte("max_size: 4\nlimited: true\n"), 0644))
	c := valid()
	x.Nil(c.Load(path))
	x.Equal(4, c.MaxSize)
	x.True(c.Limited)
	x.NotNil(c.Load(filepath.Join(t.TempDir(), "missing.yaml")))
}
