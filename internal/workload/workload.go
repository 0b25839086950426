// Package workload churns a Heap with a random mix of allocations and
// releases, for profiling and stress runs.
package workload

import (
	"errors"
	"math/rand/v2"

	"stackheap/internal/memreport"
)

// Stats summarises one churn run.
type Stats struct {
	Allocs   int
	Releases int
}

// chance reports true truePercentage% of the time.
func chance(truePercentage int) bool {
	return rand.IntN(100) < truePercentage
}

// Run performs n random operations against h: even odds of allocating
// a fresh value or releasing a previously allocated one. Everything
// still live at the end is released, so a clean heap stays clean.
func Run(h memreport.Heap, n int) (Stats, error) {
	var st Stats

	held := make([]*int32, 0, n/2+1)
	for i := 0; i < n; i++ {
		if len(held) == 0 || chance(50) {
			p := h.NewInt32(int32(i))
			if p == nil {
				return st, errors.New("workload: allocation failed")
			}
			held = append(held, p)
			st.Allocs++
			continue
		}

		j := rand.IntN(len(held))
		h.Release(held[j])
		held[j] = held[len(held)-1]
		held = held[:len(held)-1]
		st.Releases++
	}

	for _, p := range held {
		h.Release(p)
		st.Releases++
	}
	return st, nil
}
