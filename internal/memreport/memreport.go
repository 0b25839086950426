// Package memreport instantiates one 32-bit integer in each of the
// three storage classes and reports where each one lives.
package memreport

import (
	"errors"
	"fmt"
	"io"
	"unsafe"
)

// Class identifies the storage a value lives in.
type Class int

const (
	Automatic Class = iota // function frame, reclaimed on return
	Dynamic                // heap, explicitly managed
	Static                 // process-wide, initialized once
)

func (c Class) String() string {
	switch c {
	case Automatic:
		return "automatic"
	case Dynamic:
		return "heap"
	case Static:
		return "static"
	}
	return "unknown"
}

// Heap abstracts where the dynamic value comes from, so the same
// report runs against the manual allocator or the Go runtime heap.
type Heap interface {
	// NewInt32 returns exclusively owned storage holding v, or nil
	// when no memory can be obtained.
	NewInt32(v int32) *int32
	// Release returns storage obtained from NewInt32.
	Release(p *int32)
}

// ErrNoMemory is returned when the heap value cannot be allocated.
// Callers treat it as fatal; there is no recovery policy.
var ErrNoMemory = errors.New("memreport: no memory for heap value")

// globalVar has static storage duration: one per process image,
// initialized before first use, never written afterwards.
var globalVar int32 = 42

// GlobalAddr reports the address of the process-wide static value.
// Stable for the lifetime of the process.
func GlobalAddr() uintptr {
	return uintptr(unsafe.Pointer(&globalVar))
}

// Location records where one value lives.
type Location struct {
	Label string
	Class Class
	Addr  uintptr
}

// Snapshot creates one value per storage class and records the three
// addresses while all of them are live, so they are pairwise distinct.
// The heap value is released before returning; its recorded address
// outlives it as an opaque number only.
func Snapshot(h Heap) ([]Location, error) {
	stackVar := int32(10)

	heapVar := h.NewInt32(20)
	if heapVar == nil {
		return nil, ErrNoMemory
	}
	defer h.Release(heapVar)

	return []Location{
		{Label: "stack_var", Class: Automatic, Addr: uintptr(unsafe.Pointer(&stackVar))},
		{Label: "heap_var", Class: Dynamic, Addr: uintptr(unsafe.Pointer(heapVar))},
		{Label: "GLOBAL_VAR", Class: Static, Addr: GlobalAddr()},
	}, nil
}

// Write prints one line per location in the fixed diagnostic form
//
//	Address of <label>: 0x<hex>
func Write(w io.Writer, locs []Location) error {
	for _, l := range locs {
		if _, err := fmt.Fprintf(w, "Address of %s: 0x%x\n", l.Label, l.Addr); err != nil {
			return err
		}
	}
	return nil
}

// Report is Snapshot followed by Write.
func Report(w io.Writer, h Heap) error {
	locs, err := Snapshot(h)
	if err != nil {
		return err
	}
	return Write(w, locs)
}
