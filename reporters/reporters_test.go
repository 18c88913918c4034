package reporters

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"os"
	"path/filepath"
	"strings"
)

import (
	"github.com/timtadh/simplets/canon"
	"github.com/timtadh/simplets/config"
	"github.com/timtadh/simplets/miner"
	"github.com/timtadh/simplets/simplet"
)

func edge(t *testing.T, freq int, hosts ...int) *simplet.Simplet {
	s := simplet.Root(0, canon.Exhaustive{}).Extend(1, false)
	f, err := s.AddEdge(1, 0)
	assert.Nil(t, err)
	s.UpdateCofaces(f)
	im := make(simplet.Images)
	for _, h := range hosts {
		im.Add(0, h)
		im.Add(1, h)
	}
	s.SetImages(im)
	s.SetFrequency(freq)
	return s
}

func triangle(t *testing.T, freq int, hosts ...int) *simplet.Simplet {
	s := edge(t, freq, hosts...).Extend(2, false)
	f, err := s.AddEdge(2, 0)
	assert.Nil(t, err)
	s.UpdateCofaces(f)
	for _, j := range s.Joists() {
		_, err := s.CloseJoist(j)
		assert.Nil(t, err)
	}
	f, err = s.AddFace([]int{0, 1, 2})
	assert.Nil(t, err)
	s.UpdateCofaces(f)
	im := make(simplet.Images)
	for _, h := range hosts {
		for v := 0; v < 3; v++ {
			im.Add(v, h)
		}
	}
	s.SetImages(im)
	s.SetFrequency(freq)
	return s
}

func testConf(t *testing.T) *config.Config {
	c := config.Default()
	c.Output = t.TempDir()
	c.Data = "tri"
	c.Support = 2
	c.MaxSize = 3
	return c
}

func lines(t *testing.T, path string) []string {
	data, err := os.ReadFile(path)
	assert.Nil(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestFile(t *testing.T) {
	x := assert.New(t)
	c := testConf(t)
	r, err := NewFile(c, "images.txt")
	x.Nil(err)
	x.Nil(r.Report(edge(t, 4, 0, 1, 2, 3)))
	x.Nil(r.Report(triangle(t, 2, 1, 2)))
	x.Nil(r.Close())
	x.Equal([]string{"4\t[0 1]", "2\t[0 1 2]"}, lines(t, filepath.Join(c.Output, "tri_F2m0M3ALLfalseSmni.txt")))
	imgs := lines(t, filepath.Join(c.Output, "tri_F2m0M3ALLfalseSmni_images.txt"))
	x.Len(imgs, 5)
	x.Equal("[0 1]\t0\t0 1 2 3", imgs[0])
	x.Equal("[0 1 2]\t2\t1 2", imgs[4])
}

func TestChainAndCount(t *testing.T) {
	x := assert.New(t)
	c := testConf(t)
	col := &Collector{}
	count := NewCount(c, "count.txt")
	occ := NewOccurrences(c, nil)
	chain := &Chain{[]miner.Reporter{col, NewSkip(2, count), occ, NewLog("DEBUG", "found")}}
	s := edge(t, 3, 0, 1, 2)
	x.Nil(chain.Observe(s))
	for i := 0; i < 5; i++ {
		x.Nil(chain.Report(s))
	}
	x.Len(col.Patterns, 5)
	x.Equal(2, count.Count())
	x.Equal(3, occ.Len())
	x.Nil(chain.Close())
	x.Equal([]string{"2"}, lines(t, filepath.Join(c.Output, "count.txt")))
}

func TestUnique(t *testing.T) {
	x := assert.New(t)
	c := testConf(t)
	col := &Collector{}
	u, err := NewUnique(c, col, "hist")
	x.Nil(err)
	x.Nil(u.Report(edge(t, 3, 0, 1)))
	x.Nil(u.Report(edge(t, 3, 0, 1)))
	x.Nil(u.Report(triangle(t, 2, 0, 1, 2)))
	x.Len(col.Patterns, 2)
	x.Nil(u.Close())
	hist := lines(t, filepath.Join(c.Output, "tri_F2m0M3ALLfalseSmni_hist.csv"))
	x.Len(hist, 2)
	x.Contains(hist, "2, 0.66667, [0 1]")
}

func TestOccurrences(t *testing.T) {
	x := assert.New(t)
	c := testConf(t)
	c.Component = 1
	col := &Collector{}
	occ := NewOccurrences(c, col)
	e := edge(t, 3, 0, 1, 2)
	tri := triangle(t, 2, 1, 2)
	x.Nil(occ.Observe(tri))
	x.Nil(occ.Observe(e))
	x.Nil(occ.Report(e))
	x.Len(col.Patterns, 1)
	x.Equal(5, occ.Len())
	x.Equal([]string{"3\t[0 1]"}, occ.Of(0))
	x.Equal([]string{"2\t[0 1 2]", "3\t[0 1]"}, occ.Of(1))
	x.Len(occ.Of(7), 0)
	x.Nil(occ.Close())
	x.Equal([]string{
		"3\t[0 1]\t0",
		"2\t[0 1 2]\t1",
		"3\t[0 1]\t1",
		"2\t[0 1 2]\t2",
		"3\t[0 1]\t2",
	}, lines(t, filepath.Join(c.Output, "tri_1__F2m0M3ALLfalseSmni_OM.txt")))
}
