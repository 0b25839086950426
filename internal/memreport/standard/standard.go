package standardheap

import (
	"stackheap/internal/memreport"
)

// standardheap sources the dynamic value from the Go runtime heap.
// Release is a no-op; reclamation is the collector's job.
type heap struct{}

func New() memreport.Heap {
	return heap{}
}

func (heap) NewInt32(v int32) *int32 {
	p := new(int32)
	*p = v
	return p
}

func (heap) Release(p *int32) {}
