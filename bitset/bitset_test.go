package bitset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertTestRemove(t *testing.T) {
	b := New(10)
	assert.True(t, b.None())

	b.Insert(3)
	b.Insert(7)
	assert.True(t, b.Test(3))
	assert.True(t, b.Test(7))
	assert.False(t, b.Test(4))
	assert.Equal(t, 2, b.Count())

	b.Remove(3)
	assert.False(t, b.Test(3))
	assert.Equal(t, 1, b.Count())
}

func TestFirstNextAscending(t *testing.T) {
	b := FromSlice(70, []int{2, 5, 64, 69})
	got := b.Slice()
	assert.Equal(t, []int{2, 5, 64, 69}, got)

	assert.Equal(t, 2, b.First())
	assert.Equal(t, 5, b.Next(2))
	assert.Equal(t, 64, b.Next(5))
	assert.Equal(t, 69, b.Next(64))
	assert.Equal(t, None, b.Next(69))
}

func TestEmptySetFirstIsNone(t *testing.T) {
	b := New(5)
	assert.Equal(t, None, b.First())
}

func TestSetAllRespectsWidth(t *testing.T) {
	b := New(5)
	b.SetAll()
	assert.Equal(t, 5, b.Count())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, b.Slice())
}

func TestSetAlgebra(t *testing.T) {
	a := FromSlice(8, []int{0, 1, 2})
	c := FromSlice(8, []int{1, 2, 3})

	assert.Equal(t, []int{0, 1, 2, 3}, Union(a, c).Slice())
	assert.Equal(t, []int{1, 2}, Intersect(a, c).Slice())
	assert.Equal(t, []int{0}, Difference(a, c).Slice())
}

func TestSubsetAndIntersects(t *testing.T) {
	a := FromSlice(8, []int{1, 2})
	c := FromSlice(8, []int{1, 2, 3})

	assert.True(t, a.IsSubsetOf(c))
	assert.False(t, c.IsSubsetOf(a))
	assert.True(t, a.Intersects(c))

	d := FromSlice(8, []int{4, 5})
	assert.False(t, a.Intersects(d))
}

func TestCloneIsIndependent(t *testing.T) {
	a := FromSlice(8, []int{1, 2})
	c := a.Clone()
	c.Insert(3)

	assert.False(t, a.Test(3))
	assert.True(t, c.Test(3))
}

func TestWidthMismatchPanics(t *testing.T) {
	a := New(4)
	c := New(5)
	assert.Panics(t, func() { a.Union(c) })
}

func TestIndexOutOfRangePanics(t *testing.T) {
	a := New(4)
	assert.Panics(t, func() { a.Insert(4) })
	assert.Panics(t, func() { a.Insert(-1) })
}

func TestInPlaceMutationOnReceiverOnly(t *testing.T) {
	a := FromSlice(8, []int{0, 1})
	c := FromSlice(8, []int{1, 2})

	a.Union(c)
	require.Equal(t, []int{0, 1, 2}, a.Slice())
	require.Equal(t, []int{1, 2}, c.Slice())
}

func TestEqual(t *testing.T) {
	a := FromSlice(8, []int{1, 2})
	c := FromSlice(8, []int{1, 2})
	d := FromSlice(8, []int{1, 3})

	assert.True(t, a.Equal(c))
	assert.False(t, a.Equal(d))
}

func TestCrossWordBoundary(t *testing.T) {
	b := New(130)
	b.Insert(63)
	b.Insert(64)
	b.Insert(128)
	assert.Equal(t, []int{63, 64, 128}, b.Slice())
}
