package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/sync/errgroup"

	manualheap "stackheap/internal/memreport/manual"
	"stackheap/internal/workload"
)

// parseOps reads the optional total operation count from the args.
func parseOps(args []string) (int, error) {
	if len(args) == 0 {
		return 1_000_000, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, errors.New("operation count must be positive")
	}
	return n, nil
}

// Churns the manual allocator from every P under a memory profile.
func main() {
	n, err := parseOps(os.Args[1:])
	if err != nil {
		panic(err)
	}

	defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()

	workers := runtime.GOMAXPROCS(0)
	if n < workers {
		workers = 1
	}

	h := manualheap.New()
	start := time.Now()

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			_, err := workload.Run(h, n/workers)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		panic(err)
	}

	elapsed := time.Since(start)
	fmt.Printf("Manual Allocator || %d OPS || %d WORKERS || TOTAL: %v || AVERAGE: %v\n",
		n, workers, elapsed, elapsed/time.Duration(n))
}
