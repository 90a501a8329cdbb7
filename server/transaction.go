package server

import "sync/atomic"

// Transactions issues server transaction IDs. IDs start at 1 and wrap on
// uint32 overflow, so 0 follows math.MaxUint32.
type Transactions struct {
	last atomic.Uint32
}

// Next returns the next server transaction ID. It is safe for concurrent use.
func (t *Transactions) Next() uint32 {
	return t.last.Add(1)
}
