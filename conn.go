package redpipe

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/edwingeng/deque/v2"
	"github.com/google/uuid"

	"github.com/efritz/redpipe/future"
	"github.com/efritz/redpipe/iface"
	"github.com/efritz/redpipe/resp"
)

type (
	// State is the lifecycle state of a connection.
	State = iface.State

	// Conn is a single pipelined connection to Redis. Requests are written
	// in the order Send is called and responses are matched to them by
	// position, so any number of calls may be in flight at once.
	Conn struct {
		id        string
		config    *clientConfig
		logger    Logger
		mutex     sync.Mutex
		state     State
		transport net.Conn
		pending   *deque.Deque[*pendingCall]
		outbuf    []byte
		flush     chan struct{}
		drained   chan struct{}
		done      chan struct{}
		err       error
		closing   *future.Future[struct{}]
		up        *future.Future[struct{}]
		connected *future.Future[struct{}]
	}

	pendingCall struct {
		future   *future.Future[resp.Response]
		enqueued time.Time
	}
)

const (
	Connecting = iface.Connecting
	Ready      = iface.Ready
	Draining   = iface.Draining
	Closed     = iface.Closed

	readChunkSize = 16 * 1024
)

var _ iface.Conn = &Conn{}

// Dial creates a connection in the Connecting state and establishes its
// transport in the background. Requests sent before the transport is up
// are written once it is.
func Dial(transport TransportFunc, configs ...ConfigFunc) *Conn {
	c := newConn(newConfig(configs))
	go c.connect(transport)
	return c
}

// NewConn creates a Ready connection over an established transport.
func NewConn(transport net.Conn, configs ...ConfigFunc) *Conn {
	c := newConn(newConfig(configs))
	c.start(transport)
	return c
}

func newConn(config *clientConfig) *Conn {
	id := uuid.New().String()

	c := &Conn{
		id:        id,
		config:    config,
		logger:    newPrefixLogger(config.logger, id),
		state:     Connecting,
		pending:   deque.NewDeque[*pendingCall](),
		flush:     make(chan struct{}, 1),
		drained:   make(chan struct{}),
		done:      make(chan struct{}),
		up:        future.New[struct{}](),
		connected: future.New[struct{}](),
	}

	c.handshake()
	return c
}

// ID returns the unique identifier used in this connection's log lines.
func (c *Conn) ID() string {
	return c.id
}

// State returns the current lifecycle state.
func (c *Conn) State() State {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.state
}

// Done returns a channel that is closed once the connection is Closed.
func (c *Conn) Done() <-chan struct{} {
	return c.done
}

// Err returns the reason the connection closed unexpectedly, if it did.
func (c *Conn) Err() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.err
}

// Connected returns a future that completes once the transport is up and
// the AUTH/SELECT handshake (if configured) has succeeded.
func (c *Conn) Connected() *future.Future[struct{}] {
	return c.connected
}

// Send encodes the request onto the outbound buffer and queues a pending
// call for it. The write itself happens on the connection's writer.
func (c *Conn) Send(req resp.Request) *future.Future[resp.Response] {
	return c.SendBatch([]resp.Request{req})[0]
}

// SendBatch queues the requests back to back under one lock, so no request
// sent from another goroutine can land between them. An invalid request
// fails on its own and is not written.
func (c *Conn) SendBatch(reqs []resp.Request) []*future.Future[resp.Response] {
	results := make([]*future.Future[resp.Response], len(reqs))
	calls := make([]*pendingCall, 0, len(reqs))

	c.mutex.Lock()
	if c.state == Draining || c.state == Closed {
		err := c.closedErr()
		c.mutex.Unlock()

		for i := range results {
			results[i] = future.Failed[resp.Response](err)
		}

		return results
	}

	// Encoding and enqueueing happen under one lock so the order of
	// bytes on the wire always matches the order of the pending queue.
	now := c.config.clock.Now()
	for i, req := range reqs {
		if err := req.Validate(); err != nil {
			results[i] = future.Failed[resp.Response](err)
			continue
		}

		call := &pendingCall{
			future:   future.New[resp.Response](),
			enqueued: now,
		}

		c.outbuf = resp.AppendRequest(c.outbuf, req)
		c.pending.PushFront(call)
		calls = append(calls, call)
		results[i] = call.future
	}
	c.mutex.Unlock()

	if len(calls) > 0 {
		c.signalFlush()
	}

	if c.config.callTimeout > 0 {
		for _, call := range calls {
			go c.watch(call)
		}
	}

	return results
}

// Close closes the connection. Pending calls are given the drain timeout
// to complete before they are failed. Closing a closed connection is a
// no-op.
func (c *Conn) Close() *future.Future[struct{}] {
	c.mutex.Lock()

	switch c.state {
	case Closed:
		c.mutex.Unlock()
		return future.Resolved(struct{}{})

	case Draining:
		closing := c.closing
		c.mutex.Unlock()
		return closing
	}

	if c.pending.Len() == 0 {
		finish := c.shutdownLocked(nil)
		c.mutex.Unlock()
		finish()
		return future.Resolved(struct{}{})
	}

	c.state = Draining
	c.closing = future.New[struct{}]()
	closing := c.closing
	c.mutex.Unlock()

	c.logger.Printf("Draining connection")
	go c.drain(closing)
	return closing
}

//
// Lifecycle

func (c *Conn) connect(transport TransportFunc) {
	ctx, cancel := contextWithTimeout(c.config.connectTimeout)
	defer cancel()

	t, err := transport(ctx)
	if err != nil {
		c.logger.Printf("Could not connect to Redis (%s)", err.Error())
		c.shutdown(err)
		return
	}

	c.start(t)
}

func (c *Conn) start(transport net.Conn) {
	c.mutex.Lock()
	if c.state == Closed {
		c.mutex.Unlock()
		_ = transport.Close()
		return
	}

	c.transport = transport
	if c.state == Connecting {
		c.state = Ready
	}
	c.mutex.Unlock()

	c.up.Complete(struct{}{}, nil)

	go c.readLoop(transport)
	go c.writeLoop(transport)
	c.signalFlush()
}

// Queues AUTH and SELECT ahead of any user request and resolves the
// connected future once their replies are in.
func (c *Conn) handshake() {
	reqs := []resp.Request{}

	if c.config.password != "" {
		reqs = append(reqs, resp.NewRequest("AUTH", c.config.password))
	}

	if c.config.database != 0 {
		reqs = append(reqs, resp.NewRequest("SELECT", c.config.database))
	}

	calls := c.SendBatch(reqs)

	go func() {
		if _, err := c.up.Result(); err != nil {
			c.connected.Complete(struct{}{}, err)
			return
		}

		for _, call := range calls {
			r, err := call.Result()
			if err != nil {
				c.connected.Complete(struct{}{}, err)
				return
			}

			if r.IsError() {
				err := fmt.Errorf("%w: %s", ErrHandshake, r.Str)
				c.logger.Printf("Closing connection (%s)", err.Error())
				c.shutdown(err)
				c.connected.Complete(struct{}{}, err)
				return
			}
		}

		c.connected.Complete(struct{}{}, nil)
	}()
}

func (c *Conn) drain(closing *future.Future[struct{}]) {
	var timeout <-chan time.Time
	if c.config.drainTimeout > 0 {
		timeout = c.config.clock.After(c.config.drainTimeout)
	}

	select {
	case <-c.drained:
	case <-c.done:
	case <-timeout:
		c.logger.Printf("Drain timed out, failing remaining calls")
	}

	c.shutdown(nil)
	closing.Complete(struct{}{}, nil)
}

// A timed out call cannot be dropped from the middle of the queue as the
// response still on its way would be matched to the call behind it. The
// whole connection is closed instead.
func (c *Conn) watch(call *pendingCall) {
	remaining := call.enqueued.Add(c.config.callTimeout).Sub(c.config.clock.Now())

	select {
	case <-call.future.Done():
		return
	case <-c.config.clock.After(remaining):
	}

	if !call.future.Complete(resp.Response{}, ErrTimeout) {
		return
	}

	c.logger.Printf("Call timed out after %s, closing connection", c.config.callTimeout)
	c.shutdown(ErrTimeout)
}

func (c *Conn) shutdown(cause error) {
	c.mutex.Lock()
	finish := c.shutdownLocked(cause)
	c.mutex.Unlock()
	finish()
}

// shutdownLocked moves the connection to Closed. It must be called with
// the mutex held, and the returned function must be called after the mutex
// is released. A nil cause means the close was requested.
func (c *Conn) shutdownLocked(cause error) func() {
	if c.state == Closed {
		return func() {}
	}

	c.state = Closed
	c.err = cause
	close(c.done)

	calls := make([]*pendingCall, 0, c.pending.Len())
	for c.pending.Len() > 0 {
		calls = append(calls, c.pending.PopBack())
	}

	transport := c.transport
	c.outbuf = nil

	return func() {
		if transport != nil {
			if err := transport.Close(); err != nil {
				c.logger.Printf("Could not close connection (%s)", err.Error())
			}
		}

		failure := ErrConnectionClosed
		if cause != nil {
			failure = closedBecause(cause)
		}

		for _, call := range calls {
			call.future.Complete(resp.Response{}, failure)
		}

		c.up.Complete(struct{}{}, failure)
	}
}

// Must be called with the mutex held.
func (c *Conn) closedErr() error {
	if c.err != nil {
		return closedBecause(c.err)
	}

	return ErrConnectionClosed
}

//
// I/O

func (c *Conn) signalFlush() {
	select {
	case c.flush <- struct{}{}:
	default:
	}
}

// writeLoop is the only writer of the transport. It swaps out whatever has
// accumulated in the outbound buffer and writes it in one go.
func (c *Conn) writeLoop(transport net.Conn) {
	for {
		select {
		case <-c.flush:
		case <-c.done:
			return
		}

		c.mutex.Lock()
		buf := c.outbuf
		c.outbuf = nil
		c.mutex.Unlock()

		if len(buf) == 0 {
			continue
		}

		if c.config.writeTimeout > 0 {
			// Socket deadlines are wall-clock times.
			_ = transport.SetWriteDeadline(time.Now().Add(c.config.writeTimeout))
		}

		if _, err := transport.Write(buf); err != nil {
			c.closeUnexpectedly(err)
			return
		}
	}
}

// readLoop accumulates bytes from the transport and resolves the head of
// the pending queue for each complete response. Frames are only decoded
// once the scanner has seen all of their bytes.
func (c *Conn) readLoop(transport net.Conn) {
	var (
		buf     []byte
		chunk   = make([]byte, readChunkSize)
		scanner = resp.NewScanner(c.config.maxDepth)
	)

	for {
		n, readErr := transport.Read(chunk)
		buf = append(buf, chunk[:n]...)

		consumed := 0
		for consumed < len(buf) {
			size, err := scanner.Scan(buf[consumed:])
			if err == resp.ErrIncomplete {
				break
			}

			if err != nil {
				c.closeUnexpectedly(err)
				return
			}

			r, _, err := resp.Decode(buf[consumed:consumed+size], c.config.maxDepth)
			if err != nil {
				c.closeUnexpectedly(err)
				return
			}

			consumed += size

			if !c.deliver(r) {
				return
			}
		}

		// The scanner's position is relative to the start of the frame,
		// which stays valid across the compaction.
		buf = append(buf[:0], buf[consumed:]...)

		if readErr != nil {
			c.closeUnexpectedly(readErr)
			return
		}
	}
}

func (c *Conn) deliver(r resp.Response) bool {
	c.mutex.Lock()
	if c.state == Closed {
		c.mutex.Unlock()
		return false
	}

	if c.pending.Len() == 0 {
		finish := c.shutdownLocked(&resp.ProtocolError{Reason: "response without a pending request"})
		c.mutex.Unlock()
		finish()
		return false
	}

	call := c.pending.PopBack()
	if c.state == Draining && c.pending.Len() == 0 {
		close(c.drained)
	}
	c.mutex.Unlock()

	call.future.Complete(r, nil)
	return true
}

func (c *Conn) closeUnexpectedly(err error) {
	c.mutex.Lock()
	if c.state == Closed {
		c.mutex.Unlock()
		return
	}

	finish := c.shutdownLocked(err)
	c.mutex.Unlock()

	c.logger.Printf("Connection closed unexpectedly (%s)", err.Error())
	finish()
}
