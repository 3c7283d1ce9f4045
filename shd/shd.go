// Package shd implements the SHD (supersets-of-hitting) bookkeeping
// substrate shared by the MMCS and RS search engines (Component D):
// the criticality test, and the paired update/restore of the crit
// table and uncov mask that must be applied and undone exactly on
// backtrack.
package shd

import (
	"github.com/diagx/mhsgen/bitset"
	"github.com/diagx/mhsgen/hypergraph"
)

// CritMark records, for each vertex w that lost criticality for some
// edges when a vertex was added to S, exactly which edges it lost.
// It carries enough information for RestoreCritAndUncov to undo
// UpdateCritAndUncov exactly.
type CritMark map[int]*bitset.BitSet

// State bundles the mutable bookkeeping owned by one DFS frame: the
// current candidate hitting set, the edges not yet covered by it, and
// the per-vertex criticality table. Every field satisfies the
// invariants of the data model: crit[v] is nonempty only for v in S,
// and i is in uncov iff no vertex of S hits edge i.
type State struct {
	S     *bitset.BitSet
	Uncov *bitset.BitSet
	Crit  []*bitset.BitSet
}

// NewState returns a State for a hypergraph with the given vertex and
// edge counts: S empty, uncov full, and every crit[v] empty.
func NewState(numVerts, numEdges int) *State {
	crit := make([]*bitset.BitSet, numVerts)
	for v := range crit {
		crit[v] = bitset.New(numEdges)
	}
	uncov := bitset.New(numEdges)
	uncov.SetAll()
	return &State{
		S:     bitset.New(numVerts),
		Uncov: uncov,
		Crit:  crit,
	}
}

// Clone returns an independent deep copy of the state, suitable for
// handing to a forked task.
func (st *State) Clone() *State {
	crit := make([]*bitset.BitSet, len(st.Crit))
	for v, c := range st.Crit {
		crit[v] = c.Clone()
	}
	return &State{
		S:     st.S.Clone(),
		Uncov: st.Uncov.Clone(),
		Crit:  crit,
	}
}

// WouldViolate reports whether adding v to S would make some w
// already in S lose all of its critical edges, and so become
// redundant — meaning S union {v} could not be a minimal hitting set.
//
// Preconditions: v is not in S, and crit[v] is empty. Both are
// programmer errors if violated; they can never arise from legal
// input given the invariants of State.
func WouldViolate(crit []*bitset.BitSet, uncov *bitset.BitSet, T *hypergraph.Hypergraph, S *bitset.BitSet, v int) bool {
	if S.Test(v) {
		panic("shd: WouldViolate called with v already in S")
	}
	if crit[v].Any() {
		panic("shd: WouldViolate called with non-empty crit[v]")
	}

	// Edges v hits that are already covered by S.
	testEdges := bitset.Difference(T.Edge(v), uncov)

	for w := S.First(); w != bitset.None; w = S.Next(w) {
		if crit[w].IsSubsetOf(testEdges) {
			return true
		}
	}
	return false
}

// UpdateCritAndUncov applies the transition S -> S union {v}: v
// becomes critical for every edge it hits that was uncovered, those
// edges leave uncov, and any w in S that shared one of those edges
// loses criticality for it. The returned CritMark records exactly
// what was removed from each w's crit set so the caller can restore
// it later.
//
// Preconditions as WouldViolate.
func UpdateCritAndUncov(crit []*bitset.BitSet, uncov *bitset.BitSet, T *hypergraph.Hypergraph, S *bitset.BitSet, v int) CritMark {
	if S.Test(v) {
		panic("shd: UpdateCritAndUncov called with v already in S")
	}
	if crit[v].Any() {
		panic("shd: UpdateCritAndUncov called with non-empty crit[v]")
	}

	vEdges := T.Edge(v)

	// v is critical for edges it hits that were previously uncovered.
	crit[v] = bitset.Intersect(vEdges, uncov)

	// Remove everything v hits from uncov.
	uncov.Difference(vEdges)

	// Remove everything v hits from other crit[w]s, recording what was
	// removed so it can be restored on backtrack.
	mark := make(CritMark)
	for w := S.First(); w != bitset.None; w = S.Next(w) {
		removed := bitset.Intersect(crit[w], vEdges)
		mark[w] = removed
		crit[w].Difference(vEdges)
	}
	return mark
}

// RestoreCritAndUncov undoes UpdateCritAndUncov exactly: it assumes v
// has just been removed from S, uncovers whatever edges were critical
// for v, and restores every w's crit set from mark. A w missing from
// mark is skipped silently.
//
// Preconditions: v is not in S, and uncov does not intersect crit[v].
func RestoreCritAndUncov(crit []*bitset.BitSet, uncov *bitset.BitSet, S *bitset.BitSet, mark CritMark, v int) {
	if S.Test(v) {
		panic("shd: RestoreCritAndUncov called with v still in S")
	}
	if uncov.Intersects(crit[v]) {
		panic("shd: RestoreCritAndUncov called with uncov already covering crit[v]")
	}

	uncov.Union(crit[v])
	crit[v].Reset()

	for w := S.First(); w != bitset.None; w = S.Next(w) {
		if removed, ok := mark[w]; ok {
			crit[w].Union(removed)
		}
	}
}
