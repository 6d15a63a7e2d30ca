package redpipe

import (
	"sync"

	"github.com/efritz/redpipe/future"
	"github.com/efritz/redpipe/iface"
	"github.com/efritz/redpipe/resp"
)

type (
	// Dispatcher forwards requests either to a pool or to one dedicated
	// connection, chosen when it is created. Once closed it refuses every
	// further call with ErrInvalidState.
	Dispatcher struct {
		mutex   sync.Mutex
		backend backend
	}

	// backend is the tagged variant held by a dispatcher; nil means closed.
	backend interface {
		send(req resp.Request) *future.Future[resp.Response]
		sendBatch(reqs []resp.Request) []*future.Future[resp.Response]
	}

	pooledBackend struct {
		pool iface.Pool
	}

	directBackend struct {
		conn iface.Conn
	}
)

// NewPooledDispatcher creates a dispatcher that borrows a pooled
// connection for each request.
func NewPooledDispatcher(pool iface.Pool) *Dispatcher {
	return &Dispatcher{backend: pooledBackend{pool: pool}}
}

// NewDirectDispatcher creates a dispatcher that sends every request on
// the given connection.
func NewDirectDispatcher(conn iface.Conn) *Dispatcher {
	return &Dispatcher{backend: directBackend{conn: conn}}
}

// Send forwards the request to the pool or connection.
func (d *Dispatcher) Send(req resp.Request) *future.Future[resp.Response] {
	b := d.current()
	if b == nil {
		return future.Failed[resp.Response](ErrInvalidState)
	}

	return b.send(req)
}

// SendBatch pipelines the requests on one connection with nothing
// interleaved between them.
func (d *Dispatcher) SendBatch(reqs []resp.Request) []*future.Future[resp.Response] {
	b := d.current()
	if b == nil {
		results := make([]*future.Future[resp.Response], len(reqs))
		for i := range results {
			results[i] = future.Failed[resp.Response](ErrInvalidState)
		}

		return results
	}

	return b.sendBatch(reqs)
}

// Close closes the pool or connection. In pooled mode the reference is
// dropped right away; in direct mode it is dropped once the connection has
// closed. Closing a dispatcher whose reference is already gone fails with
// ErrInvalidState.
func (d *Dispatcher) Close() *future.Future[struct{}] {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	switch b := d.backend.(type) {
	case pooledBackend:
		d.backend = nil
		return b.pool.Close()

	case directBackend:
		return future.Then(b.conn.Close(), future.New[struct{}](), func(_ struct{}, err error) (struct{}, error) {
			if err == nil {
				d.clear(b)
			}

			return struct{}{}, err
		})
	}

	return future.Failed[struct{}](ErrInvalidState)
}

func (d *Dispatcher) current() backend {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.backend
}

func (d *Dispatcher) clear(b backend) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.backend == b {
		d.backend = nil
	}
}

func (b pooledBackend) send(req resp.Request) *future.Future[resp.Response] {
	return b.pool.Send(req)
}

func (b pooledBackend) sendBatch(reqs []resp.Request) []*future.Future[resp.Response] {
	return b.pool.SendBatch(reqs)
}

func (b directBackend) send(req resp.Request) *future.Future[resp.Response] {
	return b.conn.Send(req)
}

func (b directBackend) sendBatch(reqs []resp.Request) []*future.Future[resp.Response] {
	return b.conn.SendBatch(reqs)
}
