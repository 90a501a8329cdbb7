package server

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionsStartAtOne(t *testing.T) {
	var txn Transactions
	assert.Equal(t, uint32(1), txn.Next())
	assert.Equal(t, uint32(2), txn.Next())
}

func TestTransactionsConcurrentAreDistinct(t *testing.T) {
	const callers = 64
	const perCaller = 500

	var txn Transactions
	ids := make(chan uint32, callers*perCaller)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perCaller; j++ {
				ids <- txn.Next()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint32]bool, callers*perCaller)
	for id := range ids {
		require.False(t, seen[id], "duplicate transaction id %d", id)
		seen[id] = true
	}
	for id := uint32(1); id <= callers*perCaller; id++ {
		assert.True(t, seen[id], "missing transaction id %d", id)
	}
}

func TestTransactionsWrap(t *testing.T) {
	var txn Transactions
	txn.last.Store(math.MaxUint32 - 1)
	assert.Equal(t, uint32(math.MaxUint32), txn.Next())
	assert.Equal(t, uint32(0), txn.Next())
	assert.Equal(t, uint32(1), txn.Next())
}
