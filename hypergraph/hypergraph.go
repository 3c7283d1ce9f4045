// Package hypergraph implements the indexed hypergraph view (Component
// B): an ordered sequence of edges over a dense vertex set, its
// transpose, and the ASCII file format used to load and store
// hypergraphs.
package hypergraph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/diagx/mhsgen/bitset"
)

// Hypergraph is an ordered, read-only-once-built sequence of edges
// over a dense vertex set [0, NumVerts).
type Hypergraph struct {
	numVerts int
	edges    []*bitset.BitSet
}

// New returns an empty hypergraph over numVerts vertices.
func New(numVerts int) *Hypergraph {
	return &Hypergraph{numVerts: numVerts}
}

// NumVerts returns the size of the vertex set.
func (h *Hypergraph) NumVerts() int {
	return h.numVerts
}

// NumEdges returns the number of edges currently stored.
func (h *Hypergraph) NumEdges() int {
	return len(h.edges)
}

// Edge returns the i-th edge, a vertex-wide bit set.
func (h *Hypergraph) Edge(i int) *bitset.BitSet {
	return h.edges[i]
}

// AddEdge appends e as a new edge. e must have width NumVerts.
func (h *Hypergraph) AddEdge(e *bitset.BitSet) {
	if e.Width() != h.numVerts {
		panic("hypergraph: edge width does not match vertex count")
	}
	h.edges = append(h.edges, e)
}

// Transpose returns a new Hypergraph whose i-th "edge" is the
// edge-wide bit set of edges of the receiver that contain vertex i.
// Transposition is O(sum of edge sizes).
func (h *Hypergraph) Transpose() *Hypergraph {
	t := &Hypergraph{numVerts: len(h.edges)}
	t.edges = make([]*bitset.BitSet, h.numVerts)
	for v := 0; v < h.numVerts; v++ {
		t.edges[v] = bitset.New(len(h.edges))
	}
	for i, e := range h.edges {
		for v := e.First(); v != bitset.None; v = e.Next(v) {
			t.edges[v].Insert(i)
		}
	}
	return t
}

// ParseError describes a single malformed line encountered while
// loading a hypergraph file.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads an ASCII hypergraph: one edge per line, each a
// whitespace-separated list of nonnegative vertex indices. Vertex
// count is inferred as one plus the maximum index seen across every
// edge. Blank lines are skipped. Every malformed line is collected and
// returned together as a single aggregate error via
// k8s.io/apimachinery/pkg/util/errors, rather than failing on the
// first one.
func Load(r io.Reader) (*Hypergraph, error) {
	var lines [][]int
	var errs []error
	maxVertex := -1

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			// A blank line is skipped rather than treated as the
			// empty edge; Write emits an empty hitting set as a
			// blank line, so round-tripping such a result through
			// Load loses it. Out of scope for the core.
			continue
		}
		fields := strings.Fields(text)
		verts := make([]int, 0, len(fields))
		bad := false
		for _, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil || v < 0 {
				errs = append(errs, &ParseError{Line: lineNo, Text: text, Err: fmt.Errorf("invalid vertex index %q", f)})
				bad = true
				break
			}
			verts = append(verts, v)
			if v > maxVertex {
				maxVertex = v
			}
		}
		if bad {
			continue
		}
		if len(verts) == 0 {
			errs = append(errs, &ParseError{Line: lineNo, Text: text, Err: fmt.Errorf("edge has no vertices")})
			continue
		}
		lines = append(lines, verts)
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, utilerrors.NewAggregate(errs)
	}

	h := New(maxVertex + 1)
	for _, verts := range lines {
		h.AddEdge(bitset.FromSlice(h.numVerts, verts))
	}
	return h, nil
}

// Write serializes h in the same ASCII format Load reads: one line
// per edge, each a space-separated ascending list of vertex indices.
func Write(w io.Writer, h *Hypergraph) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < h.NumEdges(); i++ {
		e := h.Edge(i)
		fields := make([]string, 0, e.Count())
		for v := e.First(); v != bitset.None; v = e.Next(v) {
			fields = append(fields, strconv.Itoa(v))
		}
		if _, err := bw.WriteString(strings.Join(fields, " ")); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
