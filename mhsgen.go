// Package mhsgen is a small facade: a uniform way to construct the two
// SHD-family engines (MMCS and RS) behind the same engine.Algorithm
// interface, so callers — chiefly the driver in cmd/mhsgen — do not
// need to import the engine packages directly.
package mhsgen

import (
	"github.com/sirupsen/logrus"

	"github.com/diagx/mhsgen/engine"
	"github.com/diagx/mhsgen/mmcs"
	"github.com/diagx/mhsgen/rs"
)

// Algorithm computes the minimal hitting sets of a hypergraph.
type Algorithm = engine.Algorithm

// NewMMCS returns an MMCS engine. numThreads must be at least 1;
// cutoffSize of 0 means unlimited.
func NewMMCS(numThreads, cutoffSize int, log logrus.FieldLogger) *mmcs.MMCS {
	return mmcs.New(engine.Options{NumThreads: numThreads, CutoffSize: cutoffSize}, log)
}

// NewRS returns an RS engine with the given thread count and cutoff
// size (0 meaning unlimited).
func NewRS(numThreads, cutoffSize int, log logrus.FieldLogger) *rs.RS {
	return rs.New(engine.Options{NumThreads: numThreads, CutoffSize: cutoffSize}, log)
}

// NewRSDefault returns an RS engine defaulted to a single thread, for
// callers that only care about the cutoff size and want a sane
// single-threaded default rather than an unset thread count.
func NewRSDefault(cutoffSize int) *rs.RS {
	return NewRS(1, cutoffSize, nil)
}
