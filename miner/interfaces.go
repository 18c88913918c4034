package miner

import (
	"github.com/timtadh/simplets/simplet"
)

// Reporter receives the patterns a mining run accepts: frequent and at
// least the minimum dimension.
type Reporter interface {
	Report(*simplet.Simplet) error
	Close() error
}

// Observer is an optional Reporter extension. Observe sees every frequent
// pattern, including those below the minimum dimension.
type Observer interface {
	Observe(*simplet.Simplet) error
}
