package mhsgen

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diagx/mhsgen/bitset"
	"github.com/diagx/mhsgen/hypergraph"
)

func lessIntSlice(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func edgeSetKeys(h *hypergraph.Hypergraph) []string {
	out := make([]string, 0, h.NumEdges())
	for i := 0; i < h.NumEdges(); i++ {
		verts := h.Edge(i).Slice()
		key := ""
		for _, v := range verts {
			key += string(rune('a' + v))
		}
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func randomHypergraph(seed int64, numVerts, numEdges int) *hypergraph.Hypergraph {
	h := hypergraph.New(numVerts)
	// A small linear congruential generator keeps this test free of
	// math/rand's Source1/Source2 nondeterminism across Go versions.
	state := uint64(seed)
	next := func(n int) int {
		state = state*6364136223846793005 + 1442695040888963407
		return int((state >> 33) % uint64(n))
	}
	for i := 0; i < numEdges; i++ {
		size := 1 + next(3)
		members := map[int]bool{}
		for len(members) < size {
			members[next(numVerts)] = true
		}
		var verts []int
		for v := range members {
			verts = append(verts, v)
		}
		sort.Ints(verts)
		h.AddEdge(bitset.FromSlice(numVerts, verts))
	}
	return h
}

// TestEquivalence checks that MMCS and RS with cutoff_size = 0 emit
// the same set of minimal hitting sets.
func TestEquivalence(t *testing.T) {
	graphs := []*hypergraph.Hypergraph{
		randomHypergraph(1, 5, 6),
		randomHypergraph(2, 6, 8),
		randomHypergraph(3, 4, 5),
	}

	for gi, h := range graphs {
		mmcsResult, err := NewMMCS(2, 0, nil).Transversal(context.Background(), h)
		require.NoError(t, err)
		rsResult, err := NewRS(2, 0, nil).Transversal(context.Background(), h)
		require.NoError(t, err)

		assert.Equal(t, edgeSetKeys(mmcsResult), edgeSetKeys(rsResult), "graph %d: MMCS and RS disagree", gi)
	}
}

// TestThreadIndependence checks that results with num_threads = 1
// equal those with num_threads > 1, as sets.
func TestThreadIndependence(t *testing.T) {
	h := randomHypergraph(42, 6, 8)

	base, err := NewMMCS(1, 0, nil).Transversal(context.Background(), h)
	require.NoError(t, err)
	baseline := edgeSetKeys(base)

	for _, threads := range []int{2, 4} {
		got, err := NewMMCS(threads, 0, nil).Transversal(context.Background(), h)
		require.NoError(t, err)
		assert.Equal(t, baseline, edgeSetKeys(got), "threads=%d", threads)
	}
}

func TestNewRSDefaultUsesSingleThread(t *testing.T) {
	h := hypergraph.New(2)
	h.AddEdge(bitset.FromSlice(2, []int{0, 1}))

	eng := NewRSDefault(0)
	got, err := eng.Transversal(context.Background(), h)
	require.NoError(t, err)
	assert.Equal(t, 2, got.NumEdges())
}
