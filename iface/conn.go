package iface

import (
	"github.com/efritz/redpipe/future"
	"github.com/efritz/redpipe/resp"
)

type (
	// Sender is the surface shared by a single connection and a pool of
	// connections.
	Sender interface {
		// Send writes the request and returns a future that completes with
		// the matching response. A Redis error reply is a successful result.
		Send(req resp.Request) *future.Future[resp.Response]

		// SendBatch writes the requests back to back on one connection with
		// nothing interleaved between them. The futures are returned in
		// request order.
		SendBatch(reqs []resp.Request) []*future.Future[resp.Response]

		// Close shuts the sender down. The returned future completes once
		// every underlying connection is closed.
		Close() *future.Future[struct{}]
	}

	// Conn abstracts a single pipelined connection to Redis.
	Conn interface {
		Sender

		// State returns the current lifecycle state of the connection.
		State() State

		// Done returns a channel that is closed once the connection
		// reaches the Closed state.
		Done() <-chan struct{}

		// Err returns the reason the connection closed, or nil if it is
		// still open or was closed on request.
		Err() error
	}

	// State is the lifecycle state of a connection.
	State int
)

const (
	Connecting State = iota
	Ready
	Draining
	Closed
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Ready:
		return "ready"
	case Draining:
		return "draining"
	case Closed:
		return "closed"
	}

	return "unknown"
}
