// Package rs implements the RS engine (Component F): a depth-first
// search driven by the first uncovered edge, pruned by the
// critical-edge-index rule instead of a shrinking candidate set.
package rs

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/diagx/mhsgen/bitset"
	"github.com/diagx/mhsgen/engine"
	"github.com/diagx/mhsgen/hypergraph"
	"github.com/diagx/mhsgen/shd"
	"github.com/diagx/mhsgen/sink"
)

// RS is an engine.Algorithm computing minimal hitting sets via the RS
// search.
type RS struct {
	opts   engine.Options
	log    logrus.FieldLogger
	counts engine.Counters
}

// New returns an RS engine with the given thread count and cutoff
// size (0 meaning unlimited). A zero-valued Options.NumThreads
// defaults to 1, matching the single-argument constructor in the
// original source that otherwise left it uninitialized. log may be
// nil, in which case a discarding logger is used.
func New(opts engine.Options, log logrus.FieldLogger) *RS {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &RS{opts: opts.Normalize(), log: log}
}

// Counters exposes the current run's advisory bookkeeping counters.
func (r *RS) Counters() *engine.Counters {
	return &r.counts
}

// Transversal computes the minimal hitting sets of h. ctx is accepted
// for the conventional call shape but not consulted: the search always
// runs to completion regardless of cancellation.
func (r *RS) Transversal(ctx context.Context, h *hypergraph.Hypergraph) (*hypergraph.Hypergraph, error) {
	tr := h.Transpose()
	st := shd.NewState(h.NumVerts(), h.NumEdges())
	violating := bitset.New(h.NumVerts())

	out := sink.New()
	orch := engine.NewOrchestrator(r.opts.NumThreads, &r.counts)

	frame := &frame{
		h:     h,
		tr:    tr,
		out:   out,
		orch:  orch,
		log:   r.log,
		opts:  r.opts,
		count: &r.counts,
	}

	if h.NumEdges() == 0 {
		out.Enqueue(bitset.New(h.NumVerts()))
	} else {
		frame.extend(st.S, st.Crit, st.Uncov, violating)
	}

	if err := orch.Wait(); err != nil {
		return nil, fmt.Errorf("rs: %w", err)
	}

	iterations, violators, updateLoops, criticalFails := r.counts.Snapshot()
	r.log.WithFields(logrus.Fields{
		"iterations":     iterations,
		"violators":      violators,
		"update_loops":   updateLoops,
		"critical_fails": criticalFails,
	}).Info("rs complete")

	result := hypergraph.New(h.NumVerts())
	for _, s := range out.Drain() {
		result.AddEdge(s)
	}
	return result, nil
}

type frame struct {
	h    *hypergraph.Hypergraph
	tr   *hypergraph.Hypergraph
	out  *sink.Sink
	orch *engine.Orchestrator
	log  logrus.FieldLogger
	opts engine.Options

	count *engine.Counters
}

// anyEdgeCriticalAfter reports whether some w in S has its first
// critical edge at or beyond i — the critical-edge rule that stands
// in for MMCS's CAND to guarantee each minimal hitting set is
// produced by exactly one branch.
func anyEdgeCriticalAfter(i int, S *bitset.BitSet, crit []*bitset.BitSet) bool {
	for w := S.First(); w != bitset.None; w = S.Next(w) {
		first := crit[w].First()
		// An empty crit[w] has no critical edge to compare against i,
		// which is treated as a critical edge "at infinity" — always
		// at or beyond i.
		if first == bitset.None || first >= i {
			return true
		}
	}
	return false
}

// extend runs one RS search frame. Preconditions: uncov is nonempty,
// and cutoff is either 0 or |S| is still below it.
func (fr *frame) extend(S *bitset.BitSet, crit []*bitset.BitSet, uncov *bitset.BitSet, violating *bitset.BitSet) {
	fr.count.IncIterations()

	if uncov.None() {
		panic("rs: extend called with uncov empty")
	}
	if fr.opts.CutoffSize != 0 && S.Count() >= fr.opts.CutoffSize {
		panic("rs: extend called with |S| at or past the cutoff")
	}

	searchEdge := uncov.First()
	e := fr.h.Edge(searchEdge)
	fr.log.WithField("search_edge", searchEdge).Trace("rs edge selection")

	newViolating := bitset.New(fr.h.NumVerts())
	var indices []int
	for v := e.First(); v != bitset.None; v = e.Next(v) {
		if violating.Test(v) {
			continue
		}
		if shd.WouldViolate(crit, uncov, fr.tr, S, v) {
			newViolating.Insert(v)
			fr.count.IncViolators()
			continue
		}
		indices = append(indices, v)
	}

	// Descending order, mirroring MMCS: it keeps the two engines'
	// branch orderings symmetric even though RS's pruning rule does
	// not depend on order the way MMCS's CAND-narrowing does.
	for i := len(indices) - 1; i >= 0; i-- {
		v := indices[i]
		fr.count.IncUpdateLoops()

		mark := shd.UpdateCritAndUncov(crit, uncov, fr.tr, S, v)

		if anyEdgeCriticalAfter(searchEdge, S, crit) {
			fr.count.IncCriticalFails()
			shd.RestoreCritAndUncov(crit, uncov, S, mark, v)
			continue
		}

		S.Insert(v)

		switch {
		case uncov.None():
			fr.out.Enqueue(S.Clone())
		case fr.opts.CutoffSize == 0 || S.Count() < fr.opts.CutoffSize:
			fr.descend(S, crit, uncov, bitset.Union(violating, newViolating))
		}

		S.Remove(v)
		shd.RestoreCritAndUncov(crit, uncov, S, mark, v)
	}
}

// descend applies the same task-spawn policy as mmcs.frame.descend.
func (fr *frame) descend(S *bitset.BitSet, crit []*bitset.BitSet, uncov *bitset.BitSet, violating *bitset.BitSet) {
	if fr.orch.Failed() {
		return
	}
	if fr.orch.ShouldSpawn(uncov.Width()) {
		newS := S.Clone()
		newCrit := make([]*bitset.BitSet, len(crit))
		for i, c := range crit {
			newCrit[i] = c.Clone()
		}
		newUncov := uncov.Clone()
		newViol := violating.Clone()
		fr.orch.Spawn(func() {
			fr.extend(newS, newCrit, newUncov, newViol)
		})
		return
	}
	fr.extend(S, crit, uncov, violating)
}
