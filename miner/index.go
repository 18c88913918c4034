package miner

import (
	"sync"
)

import (
	"github.com/timtadh/data-structures/hashtable"
	"github.com/timtadh/data-structures/types"
)

import (
	"github.com/timtadh/simplets/simplet"
)

const shards = 32

type shard struct {
	mu      sync.Mutex
	buckets *hashtable.LinearHash
}

// Index remembers every candidate generated so far, bucketed by
// fingerprint. It is safe for concurrent use: each shard has its own lock
// and a bucket is checked and extended under that lock.
type Index struct {
	shards [shards]shard
}

func NewIndex() *Index {
	idx := &Index{}
	for i := range idx.shards {
		idx.shards[i].buckets = hashtable.NewLinearHash()
	}
	return idx
}

func shardOf(key types.String) int {
	return int(uint32(key.Hash()) % shards)
}

// Add inserts s unless an isomorphic pattern is already present. It reports
// whether s was new.
func (idx *Index) Add(s *simplet.Simplet) (bool, error) {
	// canonical forms are computed outside the lock
	if _, err := s.ProjectionForm(); err != nil {
		return false, err
	}
	if _, err := s.CanonicalForm(); err != nil {
		return false, err
	}
	key := types.String(s.Fingerprint().Key())
	sh := &idx.shards[shardOf(key)]
	sh.mu.Lock()
	defer sh.mu.Unlock()
	var bucket []*simplet.Simplet
	if sh.buckets.Has(key) {
		v, err := sh.buckets.Get(key)
		if err != nil {
			return false, err
		}
		bucket = v.([]*simplet.Simplet)
	}
	for _, o := range bucket {
		dup, err := s.IsDuplicate(o)
		if err != nil {
			return false, err
		} else if dup {
			return false, nil
		}
	}
	if err := sh.buckets.Put(key, append(bucket, s)); err != nil {
		return false, err
	}
	return true, nil
}

// Len counts the indexed patterns.
func (idx *Index) Len() int {
	n := 0
	for i := range idx.shards {
		sh := &idx.shards[i]
		sh.mu.Lock()
		for v, next := sh.buckets.Values()(); next != nil; v, next = next() {
			n += len(v.([]*simplet.Simplet))
		}
		sh.mu.Unlock()
	}
	return n
}
