// Package mmcs implements the MMCS engine (Component E): a
// minimality-preserving depth-first search over hitting sets that
// shrinks a candidate vertex set CAND as it descends, selecting the
// branching edge by the M+U rule (most-constrained uncovered edge
// against the current CAND).
package mmcs

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

// MMCS is an engine.Algorithm computing minimal hitting sets via the
// MMCS search.
type MMCS struct {
	opts   engine.Options
	log    logrus.FieldLogger
	counts engine.Counters
}

// New returns an MMCS engine with the given thread count and cutoff
// size (0 meaning unlimited). log may be nil, in which case a
// discarding logger is used.
func New(opts engine.Options, log logrus.FieldLogger) *MMCS {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &MMCS{opts: opts.Normalize(), log: log}
}

// Counters exposes the current run's advisory bookkeeping counters.
func (m *MMCS) Counters() *engine.Counters {
	return &m.counts
}

// Transversal computes the minimal hitting sets of h. ctx is accepted
// for the conventional call shape but not consulted: the search always
// runs to completion regardless of cancellation.
func (m *MMCS) Transversal(ctx context.Context, h *hypergraph.Hypergraph) (*hypergraph.Hypergraph, error) {
	tr := h.Transpose()
	st := shd.NewState(h.NumVerts(), h.NumEdges())
	cand := bitset.New(h.NumVerts())
	cand.SetAll()

	out := sink.New()
	orch := engine.NewOrchestrator(m.opts.NumThreads, &m.counts)

	frame := &frame{
		h:     h,
		tr:    tr,
		out:   out,
		orch:  orch,
		log:   m.log,
		opts:  m.opts,
		count: &m.counts,
	}

	if h.NumEdges() == 0 {
		// The empty set is the unique minimal transversal of a
		// hypergraph with no edges.
		out.Enqueue(bitset.New(h.NumVerts()))
	} else {
		frame.extend(st.S, cand, st.Crit, st.Uncov)
	}

	if err := orch.Wait(); err != nil {
		return nil, fmt.Errorf("mmcs: %w", err)
	}

	iterations, violators, updateLoops, _ := m.counts.Snapshot()
	m.log.WithFields(logrus.Fields{
		"iterations":   iterations,
		"violators":    violators,
		"update_loops": updateLoops,
	}).Info("mmcs complete")

	result := hypergraph.New(h.NumVerts())
	for _, s := range out.Drain() {
		result.AddEdge(s)
	}
	return result, nil
}

// frame carries the read-only views and shared machinery a recursive
// call needs, so extend itself only takes the mutable per-frame state
// as arguments.
type frame struct {
	h    *hypergraph.Hypergraph
	tr   *hypergraph.Hypergraph
	out  *sink.Sink
	orch *engine.Orchestrator
	log  logrus.FieldLogger
	opts engine.Options

	count *engine.Counters
}

// extend runs one MMCS search frame. Preconditions: uncov is nonempty,
// cand is nonempty, and cutoff is either 0 or |S| is still below it.
func (fr *frame) extend(S, cand *bitset.BitSet, crit []*bitset.BitSet, uncov *bitset.BitSet) {
	fr.count.IncIterations()

	if uncov.None() {
		panic("mmcs: extend called with uncov empty")
	}
	if cand.None() {
		panic("mmcs: extend called with CAND empty")
	}
	if fr.opts.CutoffSize != 0 && S.Count() >= fr.opts.CutoffSize {
		panic("mmcs: extend called with |S| at or past the cutoff")
	}

	// M+U rule: pick the uncovered edge minimizing |H[e] & CAND|,
	// ties broken by ascending edge index.
	searchEdge := uncov.First()
	best := bitset.Intersect(fr.h.Edge(searchEdge), cand).Count()
	for e := uncov.Next(searchEdge); e != bitset.None; e = uncov.Next(e) {
		n := bitset.Intersect(fr.h.Edge(e), cand).Count()
		if n < best {
			best = n
			searchEdge = e
		}
	}
	fr.log.WithField("search_edge", searchEdge).Trace("mmcs edge selection")

	e := fr.h.Edge(searchEdge)
	c := bitset.Intersect(cand, e)
	cand.Difference(e)

	// Descending order, so that each minimal hitting set is produced
	// by exactly one branch: a branch commits to "the largest-index
	// vertex of e in S is v", forbidding larger-indexed vertices of e
	// from joining later in this subtree.
	indices := c.Slice()
	violators := bitset.New(fr.h.NumVerts())

	for i := len(indices) - 1; i >= 0; i-- {
		v := indices[i]
		fr.count.IncUpdateLoops()

		if shd.WouldViolate(crit, uncov, fr.tr, S, v) {
			fr.count.IncViolators()
			violators.Insert(v)
			continue
		}

		mark := shd.UpdateCritAndUncov(crit, uncov, fr.tr, S, v)
		S.Insert(v)

		switch {
		case uncov.None() && (fr.opts.CutoffSize == 0 || S.Count() <= fr.opts.CutoffSize):
			fr.out.Enqueue(S.Clone())
		case cand.Any() && (fr.opts.CutoffSize == 0 || S.Count() < fr.opts.CutoffSize):
			fr.descend(S, cand, crit, uncov)
		}

		S.Remove(v)
		cand.Insert(v)
		shd.RestoreCritAndUncov(crit, uncov, S, mark, v)
	}

	cand.Union(violators)
}

// descend applies the task-spawn policy: fork onto the pool with
// deep-copied state when the heuristic allows, otherwise recurse
// inline reusing the current frame's state.
func (fr *frame) descend(S, cand *bitset.BitSet, crit []*bitset.BitSet, uncov *bitset.BitSet) {
	if fr.orch.Failed() {
		return
	}
	if fr.orch.ShouldSpawn(uncov.Width()) {
		newS := S.Clone()
		newCand := cand.Clone()
		newCrit := make([]*bitset.BitSet, len(crit))
		for i, c := range crit {
			newCrit[i] = c.Clone()
		}
		newUncov := uncov.Clone()
		fr.orch.Spawn(func() {
			fr.extend(newS, newCand, newCrit, newUncov)
		})
		return
	}
	fr.extend(S, cand, crit, uncov)
}
