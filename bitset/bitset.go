// Package bitset implements a fixed-width, dense set of small
// nonnegative integers backed by a slice of uint64 words.
//
// A BitSet's width is fixed at construction and never grows; binary
// operations (Union, Intersect, Difference, IsSubsetOf, ...) require
// their operands to share the same width. Mismatched widths are a
// programmer error and panic rather than silently truncating or
// growing.
package bitset

import "math/bits"

// None is the sentinel returned by First and Next when no member
// satisfies the query.
const None = -1

// BitSet is a fixed-width set of indices in [0, width).
type BitSet struct {
	words []uint64
	width int
}

// New returns an empty BitSet with room for indices in [0, width).
func New(width int) *BitSet {
	if width < 0 {
		panic("bitset: negative width")
	}
	return &BitSet{
		words: make([]uint64, wordCount(width)),
		width: width,
	}
}

func wordCount(width int) int {
	return (width + 63) / 64
}

// Width returns the fixed capacity the set was constructed with.
func (b *BitSet) Width() int {
	return b.width
}

func (b *BitSet) checkIndex(i int) {
	if i < 0 || i >= b.width {
		panic("bitset: index out of range")
	}
}

func (b *BitSet) checkWidth(other *BitSet) {
	if b.width != other.width {
		panic("bitset: width mismatch")
	}
}

// Test reports whether i is a member of the set.
func (b *BitSet) Test(i int) bool {
	b.checkIndex(i)
	return b.words[i/64]&(1<<uint(i%64)) != 0
}

// Insert adds i to the set.
func (b *BitSet) Insert(i int) {
	b.checkIndex(i)
	b.words[i/64] |= 1 << uint(i%64)
}

// Remove removes i from the set.
func (b *BitSet) Remove(i int) {
	b.checkIndex(i)
	b.words[i/64] &^= 1 << uint(i%64)
}

// Reset removes every member of the set.
func (b *BitSet) Reset() {
	for i := range b.words {
		b.words[i] = 0
	}
}

// SetAll makes every index in [0, width) a member of the set.
func (b *BitSet) SetAll() {
	for i := range b.words {
		b.words[i] = ^uint64(0)
	}
	b.clearTail()
}

// clearTail zeroes bits at or beyond width in the final word, so that
// SetAll never fabricates members past the fixed width.
func (b *BitSet) clearTail() {
	if b.width == 0 || len(b.words) == 0 {
		return
	}
	if rem := b.width % 64; rem != 0 {
		b.words[len(b.words)-1] &= (1 << uint(rem)) - 1
	}
}

// Count returns the number of members of the set.
func (b *BitSet) Count() int {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Any reports whether the set has at least one member.
func (b *BitSet) Any() bool {
	for _, w := range b.words {
		if w != 0 {
			return true
		}
	}
	return false
}

// None reports whether the set has no members.
func (b *BitSet) None() bool {
	return !b.Any()
}

// First returns the smallest member of the set, or None if empty.
func (b *BitSet) First() int {
	for i, w := range b.words {
		if w != 0 {
			return i*64 + bits.TrailingZeros64(w)
		}
	}
	return None
}

// Next returns the smallest member strictly greater than i, or None
// if no such member exists.
func (b *BitSet) Next(i int) int {
	i++
	if i >= b.width {
		return None
	}
	wi := i / 64
	// Mask off bits below i in the first word considered.
	w := b.words[wi] &^ ((uint64(1) << uint(i%64)) - 1)
	if w != 0 {
		return wi*64 + bits.TrailingZeros64(w)
	}
	for j := wi + 1; j < len(b.words); j++ {
		if b.words[j] != 0 {
			return j*64 + bits.TrailingZeros64(b.words[j])
		}
	}
	return None
}

// Clone returns an independent copy of the set.
func (b *BitSet) Clone() *BitSet {
	out := &BitSet{
		words: make([]uint64, len(b.words)),
		width: b.width,
	}
	copy(out.words, b.words)
	return out
}

// CopyFrom overwrites the receiver's membership with other's. Both
// must share the same width.
func (b *BitSet) CopyFrom(other *BitSet) {
	b.checkWidth(other)
	copy(b.words, other.words)
}

// Union sets the receiver to the union of itself and other, in place.
func (b *BitSet) Union(other *BitSet) *BitSet {
	b.checkWidth(other)
	for i := range b.words {
		b.words[i] |= other.words[i]
	}
	return b
}

// Intersect sets the receiver to the intersection of itself and
// other, in place.
func (b *BitSet) Intersect(other *BitSet) *BitSet {
	b.checkWidth(other)
	for i := range b.words {
		b.words[i] &= other.words[i]
	}
	return b
}

// Difference removes every member of other from the receiver, in
// place.
func (b *BitSet) Difference(other *BitSet) *BitSet {
	b.checkWidth(other)
	for i := range b.words {
		b.words[i] &^= other.words[i]
	}
	return b
}

// IsSubsetOf reports whether every member of the receiver is also a
// member of other.
func (b *BitSet) IsSubsetOf(other *BitSet) bool {
	b.checkWidth(other)
	for i := range b.words {
		if b.words[i]&^other.words[i] != 0 {
			return false
		}
	}
	return true
}

// Intersects reports whether the receiver and other share at least
// one member.
func (b *BitSet) Intersects(other *BitSet) bool {
	b.checkWidth(other)
	for i := range b.words {
		if b.words[i]&other.words[i] != 0 {
			return true
		}
	}
	return false
}

// Equal reports whether the receiver and other have identical
// membership.
func (b *BitSet) Equal(other *BitSet) bool {
	b.checkWidth(other)
	for i := range b.words {
		if b.words[i] != other.words[i] {
			return false
		}
	}
	return true
}

// Slice returns the members of the set in ascending order.
func (b *BitSet) Slice() []int {
	out := make([]int, 0, b.Count())
	for i := b.First(); i != None; i = b.Next(i) {
		out = append(out, i)
	}
	return out
}

// Union returns a new BitSet holding the union of a and b.
func Union(a, b *BitSet) *BitSet {
	return a.Clone().Union(b)
}

// Intersect returns a new BitSet holding the intersection of a and b.
func Intersect(a, b *BitSet) *BitSet {
	return a.Clone().Intersect(b)
}

// Difference returns a new BitSet holding a with every member of b
// removed.
func Difference(a, b *BitSet) *BitSet {
	return a.Clone().Difference(b)
}

// FromSlice returns a new BitSet of the given width with exactly the
// members listed in idx set.
func FromSlice(width int, idx []int) *BitSet {
	b := New(width)
	for _, i := range idx {
		b.Insert(i)
	}
	return b
}
