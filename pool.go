package redpipe

import (
	"context"
	"sync"
	"time"

	"github.com/bradhe/stopwatch"
	"github.com/edwingeng/deque/v2"
	"github.com/efritz/glock"

	"github.com/efritz/redpipe/future"
	"github.com/efritz/redpipe/iface"
	"github.com/efritz/redpipe/resp"
)

type (
	// Pool abstracts a bounded Redis connection pool.
	Pool = iface.Pool

	// PoolStats is a snapshot of the pool's bookkeeping.
	PoolStats = iface.PoolStats

	pool struct {
		dialer   DialFunc
		config   *clientConfig
		logger   Logger
		mutex    sync.Mutex
		size     int
		failures int
		dialing  sync.WaitGroup
		active   map[iface.Conn]struct{}
		idle     *deque.Deque[iface.Conn]
		waiters  *deque.Deque[*future.Future[iface.Conn]]
		closed   bool
		closing  *future.Future[struct{}]
	}
)

// NewPool creates a pool with no open connections. Connections are dialed
// on demand, up to the configured capacity.
func NewPool(dialer DialFunc, configs ...ConfigFunc) Pool {
	return newPool(dialer, newConfig(configs))
}

func newPool(dialer DialFunc, config *clientConfig) *pool {
	return &pool{
		dialer:  dialer,
		config:  config,
		logger:  config.logger,
		active:  map[iface.Conn]struct{}{},
		idle:    deque.NewDeque[iface.Conn](),
		waiters: deque.NewDeque[*future.Future[iface.Conn]](),
	}
}

func (p *pool) Acquire(ctx context.Context) *future.Future[iface.Conn] {
	f := future.New[iface.Conn]()

	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.closed {
		return future.Failed[iface.Conn](ErrPoolClosed)
	}

	if conn := p.popIdleLocked(); conn != nil {
		f.Complete(conn, nil)
		return f
	}

	if p.size < p.config.poolCapacity {
		p.size++
		p.dialing.Add(1)
		go p.dialFor(f)
		return f
	}

	p.waiters.PushFront(f)
	go p.await(ctx, f)
	return f
}

func (p *pool) Release(conn iface.Conn) {
	p.mutex.Lock()

	if p.closed || conn.State() != Ready {
		// Bad connections never go back to the pool. Dropping it from the
		// active set frees its slot for a replacement.
		p.evictLocked(conn)
		p.serveLocked()
		p.mutex.Unlock()
		conn.Close()
		return
	}

	p.handoffLocked(conn)
	p.mutex.Unlock()
}

func (p *pool) Send(req resp.Request) *future.Future[resp.Response] {
	result := future.New[resp.Response]()

	go func() {
		conn, err := p.timedAcquire()
		if err != nil {
			result.Complete(resp.Response{}, err)
			return
		}

		// A Redis error reply is a valid response; the connection goes
		// back regardless of the outcome.
		r, err := conn.Send(req).Result()
		p.Release(conn)
		result.Complete(r, err)
	}()

	return result
}

func (p *pool) SendBatch(reqs []resp.Request) []*future.Future[resp.Response] {
	results := make([]*future.Future[resp.Response], len(reqs))
	for i := range results {
		results[i] = future.New[resp.Response]()
	}

	go func() {
		conn, err := p.timedAcquire()
		if err != nil {
			for _, result := range results {
				result.Complete(resp.Response{}, err)
			}

			return
		}

		calls := conn.SendBatch(reqs)
		for _, call := range calls {
			<-call.Done()
		}

		p.Release(conn)

		for i, call := range calls {
			results[i].Complete(call.Result())
		}
	}()

	return results
}

func (p *pool) Close() *future.Future[struct{}] {
	p.mutex.Lock()
	if p.closed {
		closing := p.closing
		p.mutex.Unlock()
		return closing
	}

	p.closed = true
	p.closing = future.New[struct{}]()
	closing := p.closing

	waiters := make([]*future.Future[iface.Conn], 0, p.waiters.Len())
	for p.waiters.Len() > 0 {
		waiters = append(waiters, p.waiters.PopBack())
	}

	for p.idle.Len() > 0 {
		p.idle.PopBack()
	}

	conns := make([]iface.Conn, 0, len(p.active))
	for conn := range p.active {
		conns = append(conns, conn)
	}
	p.mutex.Unlock()

	for _, waiter := range waiters {
		waiter.Complete(nil, ErrPoolClosed)
	}

	go func() {
		closes := make([]*future.Future[struct{}], 0, len(conns))
		for _, conn := range conns {
			closes = append(closes, conn.Close())
		}

		for _, f := range closes {
			if _, err := f.Result(); err != nil {
				p.logger.Printf("Could not close connection (%s)", err.Error())
			}
		}

		// Dials still in flight close their connection themselves once
		// they see the pool is closed.
		p.dialing.Wait()
		closing.Complete(struct{}{}, nil)
	}()

	return closing
}

func (p *pool) Stats() PoolStats {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return PoolStats{
		Capacity: p.config.poolCapacity,
		Active:   len(p.active),
		Idle:     p.idle.Len(),
		Waiting:  p.waiters.Len(),
	}
}

//
// Pool Helper Functions

// Acquires a connection and logs the time it took.
func (p *pool) timedAcquire() (iface.Conn, error) {
	start := stopwatch.Start()
	conn, err := p.Acquire(context.Background()).Result()
	elapsed := start.Stop().Milliseconds()

	if err == nil {
		p.logger.Printf("Received connection after %vms", elapsed)
	} else {
		p.logger.Printf("Could not borrow connection after %vms (%s)", elapsed, err.Error())
	}

	return conn, err
}

// Dial a new connection on behalf of an acquirer that holds a free slot.
func (p *pool) dialFor(f *future.Future[iface.Conn]) {
	defer p.dialing.Done()

	conn, err := p.dial()

	p.mutex.Lock()
	if err != nil {
		p.size--
		p.serveLocked()
		p.mutex.Unlock()
		f.Complete(nil, err)
		return
	}

	if p.closed {
		p.size--
		p.mutex.Unlock()
		f.Complete(nil, ErrPoolClosed)

		if _, err := conn.Close().Result(); err != nil {
			p.logger.Printf("Could not close connection (%s)", err.Error())
		}

		return
	}

	p.active[conn] = struct{}{}
	p.mutex.Unlock()

	go p.watch(conn)

	if !f.Complete(conn, nil) {
		// The acquirer gave up while we were dialing.
		p.Release(conn)
	}
}

// Dial a new Redis connection. The call to the dialer function is wrapped
// in a circuit breaker so that if the remote end is down we are not going
// to hammer it. Consecutive failures also pause for the backoff interval.
func (p *pool) dial() (iface.Conn, error) {
	p.mutex.Lock()
	var pause time.Duration
	if p.failures > 0 {
		pause = p.config.backoff.NextInterval()
	}
	p.mutex.Unlock()

	if pause > 0 {
		<-p.config.clock.After(pause)
	}

	var conn iface.Conn
	err := p.config.breakerFunc(func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, p.config.connectTimeout)
		defer cancel()

		temp, err := p.dialer(ctx)
		conn = temp
		return err
	})

	p.mutex.Lock()
	defer p.mutex.Unlock()

	if err != nil {
		p.failures++
		p.logger.Printf("Could not connect to Redis (%s)", err.Error())
		return nil, err
	}

	if p.failures > 0 {
		p.failures = 0
		p.config.backoff.Reset()
	}

	p.logger.Printf("Established a new connection with Redis")
	return conn, nil
}

// Waits for a wait-listed acquirer to be served, giving up after the borrow
// timeout or when the context is canceled. A waiter that gives up stays in
// the wait-list and is skipped once it reaches the front.
func (p *pool) await(ctx context.Context, f *future.Future[iface.Conn]) {
	select {
	case <-f.Done():
	case <-makeTimeoutChan(p.config.borrowTimeout, p.config.clock):
		f.Complete(nil, ErrPoolExhausted)
	case <-ctx.Done():
		f.Complete(nil, ctx.Err())
	}
}

// Evicts a connection from the active set once it closes, whoever closed it.
// Its slot is re-dialed lazily by the next acquisition.
func (p *pool) watch(conn iface.Conn) {
	<-conn.Done()

	p.mutex.Lock()
	defer p.mutex.Unlock()

	if _, ok := p.active[conn]; !ok {
		return
	}

	if err := conn.Err(); err != nil && !p.closed {
		p.logger.Printf("Evicting closed connection (%s)", err.Error())
	}

	p.evictLocked(conn)
	p.serveLocked()
}

// Pops idle connections until a ready one is found. Must be called with the
// mutex held.
func (p *pool) popIdleLocked() iface.Conn {
	for p.idle.Len() > 0 {
		conn := p.idle.PopBack()
		if conn.State() == Ready {
			return conn
		}

		p.evictLocked(conn)
	}

	return nil
}

// Must be called with the mutex held.
func (p *pool) nextWaiterLocked() *future.Future[iface.Conn] {
	for p.waiters.Len() > 0 {
		if waiter := p.waiters.PopBack(); !waiter.Completed() {
			return waiter
		}
	}

	return nil
}

// Hands the connection directly to the next waiter, or parks it in the idle
// set if nobody is waiting. Must be called with the mutex held.
func (p *pool) handoffLocked(conn iface.Conn) {
	for {
		waiter := p.nextWaiterLocked()
		if waiter == nil {
			p.idle.PushFront(conn)
			return
		}

		if waiter.Complete(conn, nil) {
			return
		}
	}
}

// Serves waiters from idle connections or free slots. Must be called with
// the mutex held.
func (p *pool) serveLocked() {
	if p.closed {
		return
	}

	for p.waiters.Len() > 0 {
		if conn := p.popIdleLocked(); conn != nil {
			p.handoffLocked(conn)
			continue
		}

		if p.size >= p.config.poolCapacity {
			return
		}

		waiter := p.nextWaiterLocked()
		if waiter == nil {
			return
		}

		p.size++
		p.dialing.Add(1)
		go p.dialFor(waiter)
	}
}

// Must be called with the mutex held.
func (p *pool) evictLocked(conn iface.Conn) {
	if _, ok := p.active[conn]; ok {
		delete(p.active, conn)
		p.size--
	}
}

var blockingChan = make(chan time.Time)

// Wraps time.After around a possibly nil-timeout. When timeout is nil this
// method will return a channel which is always open but never written to.
func makeTimeoutChan(timeout *time.Duration, clock glock.Clock) <-chan time.Time {
	if timeout == nil {
		return blockingChan
	}

	return clock.After(*timeout)
}
