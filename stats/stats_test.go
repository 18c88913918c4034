package stats

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"fmt"
	"sort"
)

func TestPermutations(t *testing.T) {
	x := assert.New(t)
	seen := make(map[string]bool)
	Permutations(4, func(perm []int) bool {
		sorted := make([]int, len(perm))
		copy(sorted, perm)
		sort.Ints(sorted)
		x.Equal(Srange(4), sorted)
		seen[fmt.Sprint(perm)] = true
		return false
	})
	x.Len(seen, 24)
	x.True(seen["[0 1 2 3]"])
	x.True(seen["[3 2 1 0]"])
}

func TestPermutationsBreak(t *testing.T) {
	x := assert.New(t)
	count := 0
	Permutations(5, func(perm []int) bool {
		count++
		return count == 7
	})
	x.Equal(7, count)
}

func TestPermutationsEmpty(t *testing.T) {
	x := assert.New(t)
	count := 0
	Permutations(0, func(perm []int) bool {
		count++
		x.Len(perm, 0)
		return false
	})
	x.Equal(1, count)
}
