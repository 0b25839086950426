package alloc

import "unsafe"

// Block layout:
//
//	[HEADER=1 word][PAYLOAD ...][FOOTER=1 word]
//
// Header and footer both hold the payload size with the low bit set
// while the block is in use. A free block's first two payload words
// store the prev/next pointers of whichever free list it sits on.

const alignment = 8

var wordSize = unsafe.Sizeof(uintptr(0))

type tag struct {
	// low 3 bits are flag space, upper bits are the payload size
	info uintptr
}

func writeTag(h unsafe.Pointer, size uintptr, used bool) {
	t := (*tag)(h)
	t.info = size
	if used {
		t.info |= 1
	}
}

func payloadSize(h unsafe.Pointer) uintptr {
	return (*tag)(h).info &^ 7
}

func inUse(h unsafe.Pointer) bool {
	return (*tag)(h).info&1 != 0
}

func shift(p unsafe.Pointer, bytes int) unsafe.Pointer {
	return unsafe.Add(p, bytes)
}

// payload returns the data area, one word past the header.
func payload(h unsafe.Pointer) unsafe.Pointer {
	return shift(h, int(wordSize))
}

// footer is only addressable once the header holds the block's size.
func footer(h unsafe.Pointer) unsafe.Pointer {
	return shift(h, int(wordSize+payloadSize(h)))
}

func markBlock(h unsafe.Pointer, used bool) {
	s := payloadSize(h)
	writeTag(h, s, used)
	writeTag(footer(h), s, used)
}

func prevFree(h unsafe.Pointer) unsafe.Pointer {
	return *(*unsafe.Pointer)(payload(h))
}

func nextFree(h unsafe.Pointer) unsafe.Pointer {
	return *(*unsafe.Pointer)(shift(payload(h), int(wordSize)))
}

func setPrevFree(h, p unsafe.Pointer) {
	*(*unsafe.Pointer)(payload(h)) = p
}

func setNextFree(h, n unsafe.Pointer) {
	*(*unsafe.Pointer)(shift(payload(h), int(wordSize))) = n
}

func align(size int) int {
	return (size + alignment - 1) &^ (alignment - 1)
}
