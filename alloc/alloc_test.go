package alloc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassForNeverShrinks(t *testing.T) {
	for _, size := range []int{1, 8, 48, 64, 65, 200, 4096, 8192} {
		i := classFor(size)
		require.GreaterOrEqual(t, i, 0, "size %d should have a class", size)
		assert.GreaterOrEqual(t, classSizes[i], size)
	}
	assert.Equal(t, -1, classFor(8193))
}

func TestBinIndexExactOnly(t *testing.T) {
	assert.Equal(t, 0, binIndex(64))
	assert.Equal(t, len(classSizes)-1, binIndex(8192))
	assert.Equal(t, -1, binIndex(65))
	assert.Equal(t, -1, binIndex(0))
}

func TestNewZeroesAndStores(t *testing.T) {
	p := New[int32](1)
	require.NotNil(t, p)
	assert.Equal(t, int32(0), *p)

	*p = 20
	assert.Equal(t, int32(20), *p)
	Free(p)
}

func TestDistinctLiveAllocations(t *testing.T) {
	a := New[int64](1)
	b := New[int64](1)
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.NotSame(t, a, b)

	*a, *b = 1, 2
	assert.Equal(t, int64(1), *a)
	assert.Equal(t, int64(2), *b)

	Free(a)
	Free(b)
}

func TestFreeRecyclesClassBlocks(t *testing.T) {
	keep := New[byte](1) // hold the heap open across the free
	require.NotNil(t, keep)

	a := New[int32](1)
	require.NotNil(t, a)
	was := uintptr(unsafe.Pointer(a))
	Free(a)

	b := New[int32](1)
	require.NotNil(t, b)
	assert.Equal(t, was, uintptr(unsafe.Pointer(b)), "class bin should hand the block straight back")

	Free(b)
	Free(keep)
}

func TestNewSliceLength(t *testing.T) {
	s := NewSlice[int](100)
	require.NotNil(t, s)
	require.Len(t, s, 100)

	for i := range s {
		s[i] = i
	}
	assert.Equal(t, 99, s[99])
	FreeSlice(s)
}

func TestLargeAllocationBeyondClasses(t *testing.T) {
	s := NewSlice[byte](64 * 1024)
	require.NotNil(t, s)
	s[0] = 1
	s[len(s)-1] = 2
	assert.Equal(t, byte(1), s[0])
	assert.Equal(t, byte(2), s[len(s)-1])
	FreeSlice(s)
}

func TestLiveCount(t *testing.T) {
	base := Live()

	p := New[int32](1)
	require.NotNil(t, p)
	assert.Equal(t, base+1, Live())

	Free(p)
	assert.Equal(t, base, Live())
}

func TestFreeNilAndDoubleFree(t *testing.T) {
	Free[int32](nil)

	keep := New[byte](1)
	require.NotNil(t, keep)

	p := New[int32](1)
	require.NotNil(t, p)
	Free(p)

	base := Live()
	Free(p) // already free, block not reused: no-op
	assert.Equal(t, base, Live())

	Free(keep)
}

func TestSizeof(t *testing.T) {
	assert.Equal(t, 4, Sizeof(int32(0)))
	assert.Equal(t, 8, Sizeof(int64(0)))
}
