package main

import (
	"os"

	"stackheap/internal/memreport"
	standardheap "stackheap/internal/memreport/standard"
)

// Same report as cmd/main.go with the heap value on the runtime heap
// instead of the manual allocator.
func main() {
	if err := memreport.Report(os.Stdout, standardheap.New()); err != nil {
		panic(err)
	}
}
