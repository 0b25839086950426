package main

import (
	"os"

	"stackheap/internal/memreport"
	manualheap "stackheap/internal/memreport/manual"
)

func main() {
	if err := memreport.Report(os.Stdout, manualheap.New()); err != nil {
		panic(err)
	}
}
