package simplet

import (
	"sort"
)

// Images maps pattern vertices to sets of host vertices. It backs both the
// image map and the non-candidate cache of a pattern.
type Images map[int]map[int]bool

func (im Images) Add(v, h int) {
	set, has := im[v]
	if !has {
		set = make(map[int]bool)
		im[v] = set
	}
	set[h] = true
}

func (im Images) Has(v, h int) bool {
	return im[v][h]
}

func (im Images) Size(v int) int {
	return len(im[v])
}

// Of returns v's host vertices, ascending.
func (im Images) Of(v int) []int {
	hosts := make([]int, 0, len(im[v]))
	for h := range im[v] {
		hosts = append(hosts, h)
	}
	sort.Ints(hosts)
	return hosts
}

func (im Images) Copy() Images {
	c := make(Images, len(im))
	for v, set := range im {
		cs := make(map[int]bool, len(set))
		for h := range set {
			cs[h] = true
		}
		c[v] = cs
	}
	return c
}

// Hosts returns every host vertex appearing in some image, ascending.
func (im Images) Hosts() []int {
	seen := make(map[int]bool)
	for _, set := range im {
		for h := range set {
			seen[h] = true
		}
	}
	hosts := make([]int, 0, len(seen))
	for h := range seen {
		hosts = append(hosts, h)
	}
	sort.Ints(hosts)
	return hosts
}
