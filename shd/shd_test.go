package shd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diagx/mhsgen/bitset"
	"github.com/diagx/mhsgen/hypergraph"
)

// triangle returns H = {{0,1}, {1,2}, {0,2}} over 3 vertices, along
// with its transpose.
func triangle(t *testing.T) (*hypergraph.Hypergraph, *hypergraph.Hypergraph) {
	t.Helper()
	h := hypergraph.New(3)
	h.AddEdge(bitset.FromSlice(3, []int{0, 1}))
	h.AddEdge(bitset.FromSlice(3, []int{1, 2}))
	h.AddEdge(bitset.FromSlice(3, []int{0, 2}))
	return h, h.Transpose()
}

func TestUpdateThenRestoreIsIdentity(t *testing.T) {
	h, tr := triangle(t)
	st := NewState(h.NumVerts(), h.NumEdges())

	beforeUncov := st.Uncov.Clone()
	beforeCrit := make([]*bitset.BitSet, len(st.Crit))
	for i, c := range st.Crit {
		beforeCrit[i] = c.Clone()
	}

	mark := UpdateCritAndUncov(st.Crit, st.Uncov, tr, st.S, 0)
	st.S.Insert(0)

	st.S.Remove(0)
	RestoreCritAndUncov(st.Crit, st.Uncov, st.S, mark, 0)

	assert.True(t, st.Uncov.Equal(beforeUncov))
	for i := range st.Crit {
		assert.True(t, st.Crit[i].Equal(beforeCrit[i]), "crit[%d] mismatch", i)
	}
}

func TestUpdateThenRestoreIsIdentityWithExistingMembers(t *testing.T) {
	h, tr := triangle(t)
	st := NewState(h.NumVerts(), h.NumEdges())

	// S = {0}: edges 0 ({0,1}) and 2 ({0,2}) both contain 0, so they
	// become covered and critical for 0.
	mark0 := UpdateCritAndUncov(st.Crit, st.Uncov, tr, st.S, 0)
	st.S.Insert(0)

	beforeUncov := st.Uncov.Clone()
	beforeCrit := make([]*bitset.BitSet, len(st.Crit))
	for i, c := range st.Crit {
		beforeCrit[i] = c.Clone()
	}

	require.False(t, WouldViolate(st.Crit, st.Uncov, tr, st.S, 2))
	mark2 := UpdateCritAndUncov(st.Crit, st.Uncov, tr, st.S, 2)
	st.S.Insert(2)

	st.S.Remove(2)
	RestoreCritAndUncov(st.Crit, st.Uncov, st.S, mark2, 2)

	assert.True(t, st.Uncov.Equal(beforeUncov))
	for i := range st.Crit {
		assert.True(t, st.Crit[i].Equal(beforeCrit[i]), "crit[%d] mismatch", i)
	}

	st.S.Remove(0)
	RestoreCritAndUncov(st.Crit, st.Uncov, st.S, mark0, 0)
	assert.True(t, st.Uncov.None() == false)
	assert.Equal(t, 3, st.Uncov.Count())
}

func TestWouldViolateDetectsRedundancy(t *testing.T) {
	// H = {{0,1}}: once 0 is in S and critical for edge 0, adding 1
	// (which also hits edge 0, the only critical edge for 0) would
	// make 0 redundant.
	h := hypergraph.New(2)
	h.AddEdge(bitset.FromSlice(2, []int{0, 1}))
	tr := h.Transpose()

	st := NewState(h.NumVerts(), h.NumEdges())
	UpdateCritAndUncov(st.Crit, st.Uncov, tr, st.S, 0)
	st.S.Insert(0)

	assert.True(t, WouldViolate(st.Crit, st.Uncov, tr, st.S, 1))
}

func TestWouldViolatePreconditionPanics(t *testing.T) {
	h, tr := triangle(t)
	st := NewState(h.NumVerts(), h.NumEdges())
	st.S.Insert(0)

	assert.Panics(t, func() {
		WouldViolate(st.Crit, st.Uncov, tr, st.S, 0)
	})
}

func TestInvariantCritHoldsUniquelyCoveredEdges(t *testing.T) {
	h, tr := triangle(t)
	st := NewState(h.NumVerts(), h.NumEdges())

	for _, v := range []int{0, 1} {
		if !WouldViolate(st.Crit, st.Uncov, tr, st.S, v) {
			UpdateCritAndUncov(st.Crit, st.Uncov, tr, st.S, v)
			st.S.Insert(v)
		}
	}

	covered := bitset.New(h.NumEdges())
	for w := st.S.First(); w != bitset.None; w = st.S.Next(w) {
		require.False(t, covered.Intersects(st.Crit[w]), "crit sets must be pairwise disjoint")
		covered.Union(st.Crit[w])
	}
	// The crit sets together hold exactly the edges hit by a single
	// member of S. With S = {0,1}, edge 0 ({0,1}) is hit by both, so it
	// is covered but critical for neither.
	want := bitset.New(h.NumEdges())
	for i := 0; i < h.NumEdges(); i++ {
		if bitset.Intersect(h.Edge(i), st.S).Count() == 1 {
			want.Insert(i)
		}
	}
	assert.True(t, covered.Equal(want))
}
