// Package engine holds what the MMCS and RS search engines share
// beyond the SHD substrate itself: a common search-algorithm contract,
// per-run counters, and task orchestration — opportunistic forking of
// independent subtrees onto a bounded worker pool, with the parent
// frame's mutable state reused when a fork is not warranted.
package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/diagx/mhsgen/hypergraph"
)

// Algorithm computes the minimal hitting sets of a hypergraph: H ->
// H_trans, where both are hypergraphs over the same vertex set.
//
// ctx follows the conventional shape for a call a caller might want to
// bound, but the search has no cooperative suspension point and always
// runs to completion: implementations must not abandon a branch early
// on ctx cancellation, since the emitted set of hitting sets is only
// guaranteed complete and duplicate-free if every branch runs to the
// end.
type Algorithm interface {
	Transversal(ctx context.Context, h *hypergraph.Hypergraph) (*hypergraph.Hypergraph, error)
}

// Options configures a search engine. NumThreads must be at least 1;
// CutoffSize of 0 means unlimited.
type Options struct {
	NumThreads int
	CutoffSize int
}

// Normalize fills in defaults: an unspecified or non-positive
// NumThreads defaults to 1 rather than leaving the engine unable to
// make progress.
func (o Options) Normalize() Options {
	if o.NumThreads < 1 {
		o.NumThreads = 1
	}
	if o.CutoffSize < 0 {
		o.CutoffSize = 0
	}
	return o
}

// Counters are advisory, best-effort per-run bookkeeping: their final
// values may vary with scheduling and are for diagnostics only, never
// for correctness.
type Counters struct {
	Iterations    int64
	Violators     int64
	UpdateLoops   int64
	CriticalFails int64
	tasksWaiting  int32
}

func (c *Counters) IncIterations()    { atomic.AddInt64(&c.Iterations, 1) }
func (c *Counters) IncViolators()     { atomic.AddInt64(&c.Violators, 1) }
func (c *Counters) IncUpdateLoops()   { atomic.AddInt64(&c.UpdateLoops, 1) }
func (c *Counters) IncCriticalFails() { atomic.AddInt64(&c.CriticalFails, 1) }

// Snapshot returns the current counter values. Safe to call while a
// search is running, though the returned values are only advisory.
func (c *Counters) Snapshot() (iterations, violators, updateLoops, criticalFails int64) {
	return atomic.LoadInt64(&c.Iterations),
		atomic.LoadInt64(&c.Violators),
		atomic.LoadInt64(&c.UpdateLoops),
		atomic.LoadInt64(&c.CriticalFails)
}

// FailedTask is the resource-exhaustion error surfaced when deep
// copying a frame's state or submitting a forked task fails.
type FailedTask struct {
	Err error
}

func (e *FailedTask) Error() string {
	return fmt.Sprintf("engine: forked task failed: %v", e.Err)
}

func (e *FailedTask) Unwrap() error {
	return e.Err
}

// Orchestrator manages opportunistic task forking: a worker pool of a
// fixed size, an approximate tasks-waiting counter used purely as a
// load-shedding heuristic, and first-error capture so a
// resource-exhaustion failure in one forked task can abort the whole
// search.
type Orchestrator struct {
	pool    *errgroup.Group
	counter *Counters

	mu  sync.Mutex
	err error
}

// NewOrchestrator returns an Orchestrator backed by a worker pool of
// the given size.
func NewOrchestrator(numThreads int, counter *Counters) *Orchestrator {
	g := new(errgroup.Group)
	g.SetLimit(numThreads)
	return &Orchestrator{pool: g, counter: counter}
}

// ShouldSpawn is the load-shedding heuristic: fork only while fewer
// than four subtrees are outstanding, and only when the problem is not
// close to terminal. numEdges is the fixed width of uncov for the
// whole search, not its live population count, so the heuristic reads
// as a hard edge-count floor rather than one that tightens as the
// search descends.
func (o *Orchestrator) ShouldSpawn(numEdges int) bool {
	return atomic.LoadInt32(&o.counter.tasksWaiting) < 4 && numEdges > 2
}

// Spawn submits fn to the worker pool, or runs it in the caller's
// goroutine when every worker is busy, so a search frame never blocks
// waiting for a free worker. fn is expected to run a recursive search
// call on state the caller has already deep-copied; Spawn itself only
// manages the tasks-waiting counter and captures a panic (standing in
// for allocation failure during the deep copy or pool exhaustion) as a
// resource-exhaustion error.
func (o *Orchestrator) Spawn(fn func()) {
	atomic.AddInt32(&o.counter.tasksWaiting, 1)
	task := func() (err error) {
		atomic.AddInt32(&o.counter.tasksWaiting, -1)
		defer func() {
			if r := recover(); r != nil {
				err = &FailedTask{Err: fmt.Errorf("%v", r)}
				o.mu.Lock()
				if o.err == nil {
					o.err = err
				}
				o.mu.Unlock()
			}
		}()
		fn()
		return nil
	}
	if !o.pool.TryGo(task) {
		task()
	}
}

// Failed reports whether some forked task has already failed, so
// callers can stop issuing further work early.
func (o *Orchestrator) Failed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err != nil
}

// Wait blocks until every submitted task has completed and returns
// the first resource-exhaustion error encountered, if any.
func (o *Orchestrator) Wait() error {
	if err := o.pool.Wait(); err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}
