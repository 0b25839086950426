package alloc

import (
	"os"
	"unsafe"
)

var pageSize = os.Getpagesize() // typically 4096

// chunk is one mmap'd region, carved into adjacent blocks.
type chunk struct {
	base unsafe.Pointer
	size int
}

var (
	freeHead unsafe.Pointer // head of the general free list
	chunks   []chunk
	live     int // outstanding allocations across all lists
)

func chunkOf(p unsafe.Pointer) *chunk {
	for i := range chunks {
		start := uintptr(chunks[i].base)
		if q := uintptr(p); q >= start && q < start+uintptr(chunks[i].size) {
			return &chunks[i]
		}
	}
	return nil
}

// nextAdjacent returns the block physically following h within the
// same chunk, or nil at the chunk's end.
func nextAdjacent(h unsafe.Pointer) unsafe.Pointer {
	c := chunkOf(h)
	if c == nil {
		return nil
	}
	n := shift(h, int(payloadSize(h)+2*wordSize))
	if uintptr(n) >= uintptr(c.base)+uintptr(c.size) {
		return nil
	}
	return n
}

// prevAdjacent walks backwards through the previous block's footer,
// which sits one word before h.
func prevAdjacent(h unsafe.Pointer) unsafe.Pointer {
	c := chunkOf(h)
	if c == nil || uintptr(h) <= uintptr(c.base) {
		return nil
	}
	f := shift(h, -int(wordSize))
	size := payloadSize(f)
	if size == 0 {
		return nil
	}
	p := shift(f, -int(size+wordSize))
	if uintptr(p) < uintptr(c.base) {
		return nil
	}
	return p
}

func unlink(head *unsafe.Pointer, h unsafe.Pointer) {
	p, n := prevFree(h), nextFree(h)
	if p != nil {
		setNextFree(p, n)
	} else {
		*head = n
	}
	if n != nil {
		setPrevFree(n, p)
	}
}

func push(head *unsafe.Pointer, h unsafe.Pointer) {
	setPrevFree(h, nil)
	setNextFree(h, *head)
	if *head != nil {
		setPrevFree(*head, h)
	}
	*head = h
}

// release files a free block on the list it belongs to: class-sized
// blocks go to their bin, everything else to the general list. The
// invariant that bins hold exactly the class-sized free blocks is what
// lets mergeable tell the two apart by size alone.
func release(h unsafe.Pointer) {
	if i := binIndex(payloadSize(h)); i >= 0 {
		push(&bins[i], h)
		return
	}
	push(&freeHead, h)
}

// mergeable reports whether h is a free block on the general list.
// Bin-resident blocks are left alone so their list stays intact.
func mergeable(h unsafe.Pointer) bool {
	return h != nil && !inUse(h) && binIndex(payloadSize(h)) < 0
}

func coalesce(h unsafe.Pointer) {
	if n := nextAdjacent(h); mergeable(n) {
		unlink(&freeHead, n)
		writeTag(h, payloadSize(h)+payloadSize(n)+2*wordSize, false)
		writeTag(footer(h), payloadSize(h), false)
	}
	if p := prevAdjacent(h); mergeable(p) {
		unlink(&freeHead, p)
		writeTag(p, payloadSize(p)+payloadSize(h)+2*wordSize, false)
		writeTag(footer(p), payloadSize(p), false)
		h = p
	}
	release(h)
}

// extend maps a new chunk big enough for one block of `size` payload
// bytes, rounded up to whole pages, and files it as a single free
// block. Returns nil when the kernel refuses more memory.
func extend(size int) unsafe.Pointer {
	need := size + 2*int(wordSize)
	if need < pageSize {
		need = pageSize
	} else if r := need % pageSize; r != 0 {
		need += pageSize - r
	}

	p := mmap(need)
	if p == nil {
		return nil
	}

	writeTag(p, uintptr(need)-2*wordSize, false)
	writeTag(footer(p), payloadSize(p), false)
	push(&freeHead, p)

	chunks = append(chunks, chunk{p, need})
	return p
}

// findFit first-fit scans the general list, growing the heap when
// nothing is big enough.
func findFit(size int) unsafe.Pointer {
	for c := freeHead; c != nil; c = nextFree(c) {
		if payloadSize(c) >= uintptr(size) {
			return c
		}
	}
	return extend(size)
}

// carve takes h off the general list, marks `size` bytes of it used
// and gives any worthwhile remainder back as a fresh free block.
func carve(h unsafe.Pointer, size uintptr) {
	unlink(&freeHead, h)
	total := payloadSize(h)

	spare := 4 * wordSize // room for header, footer and both list links
	if total >= size+2*wordSize+spare {
		writeTag(h, size, true)
		writeTag(footer(h), size, true)

		rest := shift(h, int(size+2*wordSize))
		writeTag(rest, total-size-2*wordSize, false)
		writeTag(footer(rest), payloadSize(rest), false)
		coalesce(rest)
		return
	}

	markBlock(h, true)
}
