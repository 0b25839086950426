package alloc

import (
	"syscall"
	"unsafe"
)

// mmap asks the kernel for an anonymous, private, read-write mapping.
// Returns nil when the kernel refuses, which callers surface as a
// failed allocation.
func mmap(length int) unsafe.Pointer {
	addr, _, errno := syscall.Syscall6(
		syscall.SYS_MMAP,
		0,
		uintptr(length),
		uintptr(syscall.PROT_READ|syscall.PROT_WRITE),
		uintptr(syscall.MAP_PRIVATE|syscall.MAP_ANON),
		^uintptr(0), // fd -1
		0,
	)
	if errno != 0 {
		return nil
	}
	return unsafe.Pointer(addr)
}

func munmap(p unsafe.Pointer, length int) {
	_, _, errno := syscall.Syscall(
		syscall.SYS_MUNMAP,
		uintptr(p),
		uintptr(length),
		0,
	)
	if errno != 0 {
		panic(errno)
	}
}
