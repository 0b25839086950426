// Package alloc is a manual heap: mmap'd chunks carved into
// boundary-tagged blocks, an explicit free list with coalescing, and
// per-size-class bins for small blocks. Memory obtained here is
// invisible to the Go runtime and must be handed back with Free.
package alloc

import (
	"sync"
	"unsafe"
)

// classSizes are the payload sizes cached on bins. Requests at or
// below the largest class are rounded up to one of these.
var classSizes = []int{
	64,
	128,
	256,
	512,
	1024,
	2048,
	4096,
	8192,
}

var (
	mu   sync.Mutex
	bins = make([]unsafe.Pointer, len(classSizes))
)

// binIndex maps an exact class payload size to its bin, -1 otherwise.
func binIndex(size uintptr) int {
	for i, cs := range classSizes {
		if size == uintptr(cs) {
			return i
		}
	}
	return -1
}

// classFor rounds a request up to its size class, or returns -1 for
// requests above the largest class.
func classFor(size int) int {
	for i, cs := range classSizes {
		if size <= cs {
			return i
		}
	}
	return -1
}

func init() {
	if extend(pageSize) == nil {
		panic("alloc: cannot map initial heap")
	}
}

func allocate(size int) unsafe.Pointer {
	asize := align(size)
	if min := int(4 * wordSize); asize < min {
		asize = min
	}

	mu.Lock()
	defer mu.Unlock()

	if i := classFor(asize); i >= 0 {
		asize = classSizes[i]
		if h := bins[i]; h != nil {
			unlink(&bins[i], h)
			markBlock(h, true)
			live++
			return payload(h)
		}
	}

	h := findFit(asize)
	if h == nil {
		return nil
	}
	carve(h, uintptr(asize))
	live++
	return payload(h)
}

// New returns zeroed, 8-byte-aligned storage for n values of T, or nil
// when the kernel refuses more memory.
func New[T any](n int) *T {
	size := n * int(unsafe.Sizeof(*new(T)))
	p := allocate(size)
	if p == nil {
		return nil
	}
	clear(unsafe.Slice((*byte)(p), size))
	return (*T)(p)
}

// NewSlice returns a zeroed slice of `length` values of T backed by
// manual storage, or nil on exhaustion. Hand it back with FreeSlice.
func NewSlice[T any](length int) []T {
	p := New[T](length)
	if p == nil {
		return nil
	}
	return unsafe.Slice(p, length)
}

// Free returns storage obtained from New. Freeing nil is a no-op, as
// is a double free of a block that has not been reused yet. When the
// last outstanding allocation goes, every chunk is unmapped and the
// heap starts over.
func Free[T any](ptr *T) {
	if ptr == nil {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	h := shift(unsafe.Pointer(ptr), -int(wordSize))
	if !inUse(h) {
		return
	}

	markBlock(h, false)
	if i := binIndex(payloadSize(h)); i >= 0 {
		push(&bins[i], h)
	} else {
		coalesce(h)
	}

	live--
	if live < 1 {
		reset()
	}
}

func FreeSlice[T any](slice []T) {
	if len(slice) == 0 {
		return
	}
	Free(&slice[0])
}

// reset unmaps everything and re-primes the heap with one fresh chunk.
// Caller holds mu and has verified nothing is outstanding.
func reset() {
	for _, c := range chunks {
		munmap(c.base, c.size)
	}
	chunks = chunks[:0]
	freeHead = nil
	for i := range bins {
		bins[i] = nil
	}
	live = 0
	if extend(pageSize) == nil {
		panic("alloc: cannot map initial heap")
	}
}

// Live reports the number of outstanding allocations.
func Live() int {
	mu.Lock()
	defer mu.Unlock()
	return live
}

// Sizeof reports the in-memory size of a value of T in bytes.
func Sizeof[T any](x T) int {
	return int(unsafe.Sizeof(x))
}
