// Package sink implements the concurrent, multi-producer,
// single-consumer collector of completed hitting sets (Component C).
package sink

import (
	"sync"

	"github.com/diagx/mhsgen/bitset"
)

// Sink is a mutex-guarded, unbounded collector of hitting sets.
// Enqueue is safe to call from any goroutine; Drain is meant to be
// used only after every producer has quiesced.
type Sink struct {
	mu      sync.Mutex
	results []*bitset.BitSet
}

// New returns an empty Sink.
func New() *Sink {
	return &Sink{}
}

// Enqueue adds a completed hitting set to the sink. The caller must
// not mutate s afterward; Enqueue takes ownership of it.
func (k *Sink) Enqueue(s *bitset.BitSet) {
	k.mu.Lock()
	k.results = append(k.results, s)
	k.mu.Unlock()
}

// Len reports how many results have been enqueued so far.
func (k *Sink) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.results)
}

// Drain removes and returns every result currently in the sink. The
// order of results is unspecified. Intended to be called once, after
// every producing task has finished.
func (k *Sink) Drain() []*bitset.BitSet {
	k.mu.Lock()
	defer k.mu.Unlock()
	out := k.results
	k.results = nil
	return out
}
