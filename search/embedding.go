package search

import (
	"fmt"
	"strings"
)

// Outcome is the result of a single embedding search.
type Outcome int

const (
	NoMatch Outcome = iota
	Match
	// Inconclusive means the time budget ran out before the search could
	// decide. It says nothing about whether a match exists.
	Inconclusive
)

func (o Outcome) String() string {
	switch o {
	case NoMatch:
		return "no-match"
	case Match:
		return "match"
	case Inconclusive:
		return "inconclusive"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Embedding maps pattern vertex v to host vertex e[v]. Unassigned pattern
// vertices map to -1.
type Embedding []int

func NewEmbedding(n int) Embedding {
	e := make(Embedding, n)
	for i := range e {
		e[i] = -1
	}
	return e
}

func (e Embedding) Assigned(v int) bool {
	return e[v] >= 0
}

func (e Embedding) Complete() bool {
	for _, h := range e {
		if h < 0 {
			return false
		}
	}
	return true
}

// Uses reports whether some pattern vertex is mapped to h.
func (e Embedding) Uses(h int) bool {
	for _, x := range e {
		if x == h {
			return true
		}
	}
	return false
}

func (e Embedding) Copy() Embedding {
	c := make(Embedding, len(e))
	copy(c, e)
	return c
}

func (e Embedding) String() string {
	parts := make([]string, 0, len(e))
	for v, h := range e {
		if h >= 0 {
			parts = append(parts, fmt.Sprintf("%d->%d", v, h))
		}
	}
	return "{" + strings.Join(parts, " ") + "}"
}
