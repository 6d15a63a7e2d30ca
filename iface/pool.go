package iface

import (
	"context"

	"github.com/efritz/redpipe/future"
)

type (
	// Pool abstracts a bounded Redis connection pool.
	Pool interface {
		Sender

		// Acquire borrows a ready connection. If the pool is at capacity
		// the caller waits in line until a connection is released, the
		// borrow timeout elapses, or the context is canceled.
		Acquire(ctx context.Context) *future.Future[Conn]

		// Release returns a connection to the pool. This method must be
		// called exactly once for each successful acquisition, whether or
		// not the connection is still usable.
		Release(conn Conn)

		// Stats returns a snapshot of the pool's bookkeeping.
		Stats() PoolStats
	}

	// PoolStats is a snapshot of the pool's bookkeeping.
	PoolStats struct {
		Capacity int
		Active   int
		Idle     int
		Waiting  int
	}
)
