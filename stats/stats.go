package stats

// Srange returns [0, 1, ..., size-1].
func Srange(size int) []int {
	items := make([]int, 0, size)
	for i := 0; i < size; i++ {
		items = append(items, i)
	}
	return items
}

// Permutations calls do with every ordering of Srange(size), stopping early
// when do returns true. The slice handed to do is fresh on every call.
func Permutations(size int, do func(perm []int) (dobreak bool)) {
	indices := Srange(size)
	cycles := make([]int, size)
	for i := range cycles {
		cycles[i] = size - i
	}
	emit := func() bool {
		cur := make([]int, size)
		copy(cur, indices)
		return do(cur)
	}
	if emit() {
		return
	}
	for size > 0 {
		i := size - 1
		for ; i >= 0; i-- {
			cycles[i]--
			if cycles[i] == 0 {
				first := indices[i]
				copy(indices[i:], indices[i+1:])
				indices[size-1] = first
				cycles[i] = size - i
				continue
			}
			j := size - cycles[i]
			indices[i], indices[j] = indices[j], indices[i]
			if emit() {
				return
			}
			break
		}
		if i < 0 {
			return
		}
	}
}
