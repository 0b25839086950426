package workload_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackheap/alloc"
	manualheap "stackheap/internal/memreport/manual"
	standardheap "stackheap/internal/memreport/standard"
	"stackheap/internal/workload"
)

func TestRunLeavesManualHeapClean(t *testing.T) {
	base := alloc.Live()

	st, err := workload.Run(manualheap.New(), 5000)
	require.NoError(t, err)

	assert.Positive(t, st.Allocs)
	assert.Equal(t, st.Allocs, st.Releases)
	assert.Equal(t, base, alloc.Live())
}

func TestRunStandardHeap(t *testing.T) {
	st, err := workload.Run(standardheap.New(), 1000)
	require.NoError(t, err)
	assert.Equal(t, st.Allocs, st.Releases)
	// at least half of the n operations must have been allocations,
	// since a release is only possible after a matching allocation
	assert.GreaterOrEqual(t, st.Allocs, 500)
}

func TestRunZeroOps(t *testing.T) {
	st, err := workload.Run(manualheap.New(), 0)
	require.NoError(t, err)
	assert.Zero(t, st.Allocs)
	assert.Zero(t, st.Releases)
}
