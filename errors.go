package redpipe

import (
	"errors"
	"fmt"
)

var (
	// ErrConnectionClosed is returned when a request is sent on a draining
	// or closed connection, and wraps the cause of every call failed by an
	// unexpected close.
	ErrConnectionClosed = errors.New("connection closed")

	// ErrTimeout is returned for a call that did not receive its response
	// within the configured call timeout.
	ErrTimeout = errors.New("call timed out")

	// ErrPoolExhausted is returned when the borrow timeout elapses.
	ErrPoolExhausted = errors.New("no connection available in pool")

	// ErrPoolClosed is returned when the pool is used after Close.
	ErrPoolClosed = errors.New("pool closed")

	// ErrInvalidState is returned when a dispatcher is used after Close.
	ErrInvalidState = errors.New("invalid state: no pool or connection available")

	// ErrHandshake is returned when the server rejects AUTH or SELECT.
	ErrHandshake = errors.New("connection handshake failed")
)

func closedBecause(cause error) error {
	if cause == nil || errors.Is(cause, ErrConnectionClosed) {
		return cause
	}

	return fmt.Errorf("%w: %w", ErrConnectionClosed, cause)
}
