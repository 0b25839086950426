package manualheap

import (
	"stackheap/alloc"
	"stackheap/internal/memreport"
)

// manualheap sources the dynamic value from the project's mmap-backed
// allocator, the closest analog of malloc/free.
type heap struct{}

// New creates a memreport.Heap over the manual allocator.
func New() memreport.Heap {
	return heap{}
}

func (heap) NewInt32(v int32) *int32 {
	p := alloc.New[int32](1)
	if p == nil {
		return nil
	}
	*p = v
	return p
}

func (heap) Release(p *int32) {
	alloc.Free(p)
}
