package mocks

import (
	context "context"
	"sync"

	future "github.com/efritz/redpipe/future"
	iface "github.com/efritz/redpipe/iface"
	resp "github.com/efritz/redpipe/resp"
)

// MockPool is a mock implementation of the Pool interface (from the
// package github.com/efritz/redpipe/iface) used for unit testing.
type MockPool struct {
	// AcquireFunc is an instance of a mock function object controlling the
	// behavior of the method Acquire.
	AcquireFunc *PoolAcquireFunc
	// CloseFunc is an instance of a mock function object controlling the
	// behavior of the method Close.
	CloseFunc *PoolCloseFunc
	// ReleaseFunc is an instance of a mock function object controlling the
	// behavior of the method Release.
	ReleaseFunc *PoolReleaseFunc
	// SendFunc is an instance of a mock function object controlling the
	// behavior of the method Send.
	SendFunc *PoolSendFunc
	// SendBatchFunc is an instance of a mock function object controlling the
	// behavior of the method SendBatch.
	SendBatchFunc *PoolSendBatchFunc
	// StatsFunc is an instance of a mock function object controlling the
	// behavior of the method Stats.
	StatsFunc *PoolStatsFunc
}

// NewMockPool creates a new mock of the Pool interface. All methods
// return zero values for all results, unless overwritten.
func NewMockPool() *MockPool {
	return &MockPool{
		AcquireFunc: &PoolAcquireFunc{
			defaultHook: func(context.Context) *future.Future[iface.Conn] {
				return nil
			},
		},
		CloseFunc: &PoolCloseFunc{
			defaultHook: func() *future.Future[struct{}] {
				return nil
			},
		},
		ReleaseFunc: &PoolReleaseFunc{
			defaultHook: func(iface.Conn) {
				return
			},
		},
		SendFunc: &PoolSendFunc{
			defaultHook: func(resp.Request) *future.Future[resp.Response] {
				return nil
			},
		},
		SendBatchFunc: &PoolSendBatchFunc{
			defaultHook: func([]resp.Request) []*future.Future[resp.Response] {
				return nil
			},
		},
		StatsFunc: &PoolStatsFunc{
			defaultHook: func() iface.PoolStats {
				return iface.PoolStats{}
			},
		},
	}
}

// Acquire delegates to the next hook function in the queue and stores the
// parameter and result values of this invocation.
func (m *MockPool) Acquire(v0 context.Context) *future.Future[iface.Conn] {
	r0 := m.AcquireFunc.nextHook()(v0)
	m.AcquireFunc.appendCall(PoolAcquireFuncCall{v0, r0})
	return r0
}

// PoolAcquireFunc describes the behavior when the Acquire method of the parent
// MockPool instance is invoked.
type PoolAcquireFunc struct {
	defaultHook func(context.Context) *future.Future[iface.Conn]
	hooks       []func(context.Context) *future.Future[iface.Conn]
	history     []PoolAcquireFuncCall
	mutex       sync.Mutex
}

// SetDefaultHook sets function that is called when the Acquire method of
// the parent instance is invoked and the hook queue is empty.
func (f *PoolAcquireFunc) SetDefaultHook(hook func(context.Context) *future.Future[iface.Conn]) {
	f.defaultHook = hook
}

// PushHook adds a function to the end of hook queue. Each invocation of
// the Acquire method of the parent instance invokes the hook at the front
// of the queue and discards it. After the queue is empty, the default
// hook function is invoked for any future action.
func (f *PoolAcquireFunc) PushHook(hook func(context.Context) *future.Future[iface.Conn]) {
	f.mutex.Lock()
	f.hooks = append(f.hooks, hook)
	f.mutex.Unlock()
}

// SetDefaultReturn calls SetDefaultHook with a function that returns
// the given values.
func (f *PoolAcquireFunc) SetDefaultReturn(r0 *future.Future[iface.Conn]) {
	f.SetDefaultHook(func(context.Context) *future.Future[iface.Conn] {
		return r0
	})
}

// PushReturn calls PushHook with a function that returns the given
// values.
func (f *PoolAcquireFunc) PushReturn(r0 *future.Future[iface.Conn]) {
	f.PushHook(func(context.Context) *future.Future[iface.Conn] {
		return r0
	})
}

func (f *PoolAcquireFunc) nextHook() func(context.Context) *future.Future[iface.Conn] {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if len(f.hooks) == 0 {
		return f.defaultHook
	}

	hook := f.hooks[0]
	f.hooks = f.hooks[1:]
	return hook
}

func (f *PoolAcquireFunc) appendCall(r0 PoolAcquireFuncCall) {
	f.mutex.Lock()
	f.history = append(f.history, r0)
	f.mutex.Unlock()
}

// History returns a sequence of PoolAcquireFuncCall objects describing
// the invocations of this function.
func (f *PoolAcquireFunc) History() []PoolAcquireFuncCall {
	f.mutex.Lock()
	history := make([]PoolAcquireFuncCall, len(f.history))
	copy(history, f.history)
	f.mutex.Unlock()

	return history
}

// PoolAcquireFuncCall is an object that describes an invocation of method
// Acquire on an instance of MockPool.
type PoolAcquireFuncCall struct {
	// Arg0 is the value of the 1st argument passed to this method
	// invocation.
	Arg0 context.Context
	// Result0 is the value of the 1st result returned from this method
	// invocation.
	Result0 *future.Future[iface.Conn]
}

// Args returns an interface slice containing the arguments of this
// invocation.
func (c PoolAcquireFuncCall) Args() []interface{} {
	return []interface{}{c.Arg0}
}

// Results returns an interface slice containing the results of this
// invocation.
func (c PoolAcquireFuncCall) Results() []interface{} {
	return []interface{}{c.Result0}
}

// Close delegates to the next hook function in the queue and stores the
// parameter and result values of this invocation.
func (m *MockPool) Close() *future.Future[struct{}] {
	r0 := m.CloseFunc.nextHook()()
	m.CloseFunc.appendCall(PoolCloseFuncCall{r0})
	return r0
}

// PoolCloseFunc describes the behavior when the Close method of the parent
// MockPool instance is invoked.
type PoolCloseFunc struct {
	defaultHook func() *future.Future[struct{}]
	hooks       []func() *future.Future[struct{}]
	history     []PoolCloseFuncCall
	mutex       sync.Mutex
}

// SetDefaultHook sets function that is called when the Close method of
// the parent instance is invoked and the hook queue is empty.
func (f *PoolCloseFunc) SetDefaultHook(hook func() *future.Future[struct{}]) {
	f.defaultHook = hook
}

// PushHook adds a function to the end of hook queue. Each invocation of
// the Close method of the parent instance invokes the hook at the front
// of the queue and discards it. After the queue is empty, the default
// hook function is invoked for any future action.
func (f *PoolCloseFunc) PushHook(hook func() *future.Future[struct{}]) {
	f.mutex.Lock()
	f.hooks = append(f.hooks, hook)
	f.mutex.Unlock()
}

// SetDefaultReturn calls SetDefaultHook with a function that returns
// the given values.
func (f *PoolCloseFunc) SetDefaultReturn(r0 *future.Future[struct{}]) {
	f.SetDefaultHook(func() *future.Future[struct{}] {
		return r0
	})
}

// PushReturn calls PushHook with a function that returns the given
// values.
func (f *PoolCloseFunc) PushReturn(r0 *future.Future[struct{}]) {
	f.PushHook(func() *future.Future[struct{}] {
		return r0
	})
}

func (f *PoolCloseFunc) nextHook() func() *future.Future[struct{}] {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if len(f.hooks) == 0 {
		return f.defaultHook
	}

	hook := f.hooks[0]
	f.hooks = f.hooks[1:]
	return hook
}

func (f *PoolCloseFunc) appendCall(r0 PoolCloseFuncCall) {
	f.mutex.Lock()
	f.history = append(f.history, r0)
	f.mutex.Unlock()
}

// History returns a sequence of PoolCloseFuncCall objects describing
// the invocations of this function.
func (f *PoolCloseFunc) History() []PoolCloseFuncCall {
	f.mutex.Lock()
	history := make([]PoolCloseFuncCall, len(f.history))
	copy(history, f.history)
	f.mutex.Unlock()

	return history
}

// PoolCloseFuncCall is an object that describes an invocation of method
// Close on an instance of MockPool.
type PoolCloseFuncCall struct {
	// Result0 is the value of the 1st result returned from this method
	// invocation.
	Result0 *future.Future[struct{}]
}

// Args returns an interface slice containing the arguments of this
// invocation.
func (c PoolCloseFuncCall) Args() []interface{} {
	return []interface{}{}
}

// Results returns an interface slice containing the results of this
// invocation.
func (c PoolCloseFuncCall) Results() []interface{} {
	return []interface{}{c.Result0}
}

// Release delegates to the next hook function in the queue and stores the
// parameter and result values of this invocation.
func (m *MockPool) Release(v0 iface.Conn) {
	m.ReleaseFunc.nextHook()(v0)
	m.ReleaseFunc.appendCall(PoolReleaseFuncCall{v0})
	return
}

// PoolReleaseFunc describes the behavior when the Release method of the parent
// MockPool instance is invoked.
type PoolReleaseFunc struct {
	defaultHook func(iface.Conn)
	hooks       []func(iface.Conn)
	history     []PoolReleaseFuncCall
	mutex       sync.Mutex
}

// SetDefaultHook sets function that is called when the Release method of
// the parent instance is invoked and the hook queue is empty.
func (f *PoolReleaseFunc) SetDefaultHook(hook func(iface.Conn)) {
	f.defaultHook = hook
}

// PushHook adds a function to the end of hook queue. Each invocation of
// the Release method of the parent instance invokes the hook at the front
// of the queue and discards it. After the queue is empty, the default
// hook function is invoked for any future action.
func (f *PoolReleaseFunc) PushHook(hook func(iface.Conn)) {
	f.mutex.Lock()
	f.hooks = append(f.hooks, hook)
	f.mutex.Unlock()
}

func (f *PoolReleaseFunc) nextHook() func(iface.Conn) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if len(f.hooks) == 0 {
		return f.defaultHook
	}

	hook := f.hooks[0]
	f.hooks = f.hooks[1:]
	return hook
}

func (f *PoolReleaseFunc) appendCall(r0 PoolReleaseFuncCall) {
	f.mutex.Lock()
	f.history = append(f.history, r0)
	f.mutex.Unlock()
}

// History returns a sequence of PoolReleaseFuncCall objects describing
// the invocations of this function.
func (f *PoolReleaseFunc) History() []PoolReleaseFuncCall {
	f.mutex.Lock()
	history := make([]PoolReleaseFuncCall, len(f.history))
	copy(history, f.history)
	f.mutex.Unlock()

	return history
}

// PoolReleaseFuncCall is an object that describes an invocation of method
// Release on an instance of MockPool.
type PoolReleaseFuncCall struct {
	// Arg0 is the value of the 1st argument passed to this method
	// invocation.
	Arg0 iface.Conn
}

// Args returns an interface slice containing the arguments of this
// invocation.
func (c PoolReleaseFuncCall) Args() []interface{} {
	return []interface{}{c.Arg0}
}

// Results returns an interface slice containing the results of this
// invocation.
func (c PoolReleaseFuncCall) Results() []interface{} {
	return []interface{}{}
}

// Send delegates to the next hook function in the queue and stores the
// parameter and result values of this invocation.
func (m *MockPool) Send(v0 resp.Request) *future.Future[resp.Response] {
	r0 := m.SendFunc.nextHook()(v0)
	m.SendFunc.appendCall(PoolSendFuncCall{v0, r0})
	return r0
}

// PoolSendFunc describes the behavior when the Send method of the parent
// MockPool instance is invoked.
type PoolSendFunc struct {
	defaultHook func(resp.Request) *future.Future[resp.Response]
	hooks       []func(resp.Request) *future.Future[resp.Response]
	history     []PoolSendFuncCall
	mutex       sync.Mutex
}

// SetDefaultHook sets function that is called when the Send method of
// the parent instance is invoked and the hook queue is empty.
func (f *PoolSendFunc) SetDefaultHook(hook func(resp.Request) *future.Future[resp.Response]) {
	f.defaultHook = hook
}

// PushHook adds a function to the end of hook queue. Each invocation of
// the Send method of the parent instance invokes the hook at the front
// of the queue and discards it. After the queue is empty, the default
// hook function is invoked for any future action.
func (f *PoolSendFunc) PushHook(hook func(resp.Request) *future.Future[resp.Response]) {
	f.mutex.Lock()
	f.hooks = append(f.hooks, hook)
	f.mutex.Unlock()
}

// SetDefaultReturn calls SetDefaultHook with a function that returns
// the given values.
func (f *PoolSendFunc) SetDefaultReturn(r0 *future.Future[resp.Response]) {
	f.SetDefaultHook(func(resp.Request) *future.Future[resp.Response] {
		return r0
	})
}

// PushReturn calls PushHook with a function that returns the given
// values.
func (f *PoolSendFunc) PushReturn(r0 *future.Future[resp.Response]) {
	f.PushHook(func(resp.Request) *future.Future[resp.Response] {
		return r0
	})
}

func (f *PoolSendFunc) nextHook() func(resp.Request) *future.Future[resp.Response] {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if len(f.hooks) == 0 {
		return f.defaultHook
	}

	hook := f.hooks[0]
	f.hooks = f.hooks[1:]
	return hook
}

func (f *PoolSendFunc) appendCall(r0 PoolSendFuncCall) {
	f.mutex.Lock()
	f.history = append(f.history, r0)
	f.mutex.Unlock()
}

// History returns a sequence of PoolSendFuncCall objects describing
// the invocations of this function.
func (f *PoolSendFunc) History() []PoolSendFuncCall {
	f.mutex.Lock()
	history := make([]PoolSendFuncCall, len(f.history))
	copy(history, f.history)
	f.mutex.Unlock()

	return history
}

// PoolSendFuncCall is an object that describes an invocation of method
// Send on an instance of MockPool.
type PoolSendFuncCall struct {
	// Arg0 is the value of the 1st argument passed to this method
	// invocation.
	Arg0 resp.Request
	// Result0 is the value of the 1st result returned from this method
	// invocation.
	Result0 *future.Future[resp.Response]
}

// Args returns an interface slice containing the arguments of this
// invocation.
func (c PoolSendFuncCall) Args() []interface{} {
	return []interface{}{c.Arg0}
}

// Results returns an interface slice containing the results of this
// invocation.
func (c PoolSendFuncCall) Results() []interface{} {
	return []interface{}{c.Result0}
}

// SendBatch delegates to the next hook function in the queue and stores the
// parameter and result values of this invocation.
func (m *MockPool) SendBatch(v0 []resp.Request) []*future.Future[resp.Response] {
	r0 := m.SendBatchFunc.nextHook()(v0)
	m.SendBatchFunc.appendCall(PoolSendBatchFuncCall{v0, r0})
	return r0
}

// PoolSendBatchFunc describes the behavior when the SendBatch method of the parent
// MockPool instance is invoked.
type PoolSendBatchFunc struct {
	defaultHook func([]resp.Request) []*future.Future[resp.Response]
	hooks       []func([]resp.Request) []*future.Future[resp.Response]
	history     []PoolSendBatchFuncCall
	mutex       sync.Mutex
}

// SetDefaultHook sets function that is called when the SendBatch method of
// the parent instance is invoked and the hook queue is empty.
func (f *PoolSendBatchFunc) SetDefaultHook(hook func([]resp.Request) []*future.Future[resp.Response]) {
	f.defaultHook = hook
}

// PushHook adds a function to the end of hook queue. Each invocation of
// the SendBatch method of the parent instance invokes the hook at the front
// of the queue and discards it. After the queue is empty, the default
// hook function is invoked for any future action.
func (f *PoolSendBatchFunc) PushHook(hook func([]resp.Request) []*future.Future[resp.Response]) {
	f.mutex.Lock()
	f.hooks = append(f.hooks, hook)
	f.mutex.Unlock()
}

// SetDefaultReturn calls SetDefaultHook with a function that returns
// the given values.
func (f *PoolSendBatchFunc) SetDefaultReturn(r0 []*future.Future[resp.Response]) {
	f.SetDefaultHook(func([]resp.Request) []*future.Future[resp.Response] {
		return r0
	})
}

// PushReturn calls PushHook with a function that returns the given
// values.
func (f *PoolSendBatchFunc) PushReturn(r0 []*future.Future[resp.Response]) {
	f.PushHook(func([]resp.Request) []*future.Future[resp.Response] {
		return r0
	})
}

func (f *PoolSendBatchFunc) nextHook() func([]resp.Request) []*future.Future[resp.Response] {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if len(f.hooks) == 0 {
		return f.defaultHook
	}

	hook := f.hooks[0]
	f.hooks = f.hooks[1:]
	return hook
}

func (f *PoolSendBatchFunc) appendCall(r0 PoolSendBatchFuncCall) {
	f.mutex.Lock()
	f.history = append(f.history, r0)
	f.mutex.Unlock()
}

// History returns a sequence of PoolSendBatchFuncCall objects describing
// the invocations of this function.
func (f *PoolSendBatchFunc) History() []PoolSendBatchFuncCall {
	f.mutex.Lock()
	history := make([]PoolSendBatchFuncCall, len(f.history))
	copy(history, f.history)
	f.mutex.Unlock()

	return history
}

// PoolSendBatchFuncCall is an object that describes an invocation of method
// SendBatch on an instance of MockPool.
type PoolSendBatchFuncCall struct {
	// Arg0 is the value of the 1st argument passed to this method
	// invocation.
	Arg0 []resp.Request
	// Result0 is the value of the 1st result returned from this method
	// invocation.
	Result0 []*future.Future[resp.Response]
}

// Args returns an interface slice containing the arguments of this
// invocation.
func (c PoolSendBatchFuncCall) Args() []interface{} {
	return []interface{}{c.Arg0}
}

// Results returns an interface slice containing the results of this
// invocation.
func (c PoolSendBatchFuncCall) Results() []interface{} {
	return []interface{}{c.Result0}
}

// Stats delegates to the next hook function in the queue and stores the
// parameter and result values of this invocation.
func (m *MockPool) Stats() iface.PoolStats {
	r0 := m.StatsFunc.nextHook()()
	m.StatsFunc.appendCall(PoolStatsFuncCall{r0})
	return r0
}

// PoolStatsFunc describes the behavior when the Stats method of the parent
// MockPool instance is invoked.
type PoolStatsFunc struct {
	defaultHook func() iface.PoolStats
	hooks       []func() iface.PoolStats
	history     []PoolStatsFuncCall
	mutex       sync.Mutex
}

// SetDefaultHook sets function that is called when the Stats method of
// the parent instance is invoked and the hook queue is empty.
func (f *PoolStatsFunc) SetDefaultHook(hook func() iface.PoolStats) {
	f.defaultHook = hook
}

// PushHook adds a function to the end of hook queue. Each invocation of
// the Stats method of the parent instance invokes the hook at the front
// of the queue and discards it. After the queue is empty, the default
// hook function is invoked for any future action.
func (f *PoolStatsFunc) PushHook(hook func() iface.PoolStats) {
	f.mutex.Lock()
	f.hooks = append(f.hooks, hook)
	f.mutex.Unlock()
}

// SetDefaultReturn calls SetDefaultHook with a function that returns
// the given values.
func (f *PoolStatsFunc) SetDefaultReturn(r0 iface.PoolStats) {
	f.SetDefaultHook(func() iface.PoolStats {
		return r0
	})
}

// PushReturn calls PushHook with a function that returns the given
// values.
func (f *PoolStatsFunc) PushReturn(r0 iface.PoolStats) {
	f.PushHook(func() iface.PoolStats {
		return r0
	})
}

func (f *PoolStatsFunc) nextHook() func() iface.PoolStats {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if len(f.hooks) == 0 {
		return f.defaultHook
	}

	hook := f.hooks[0]
	f.hooks = f.hooks[1:]
	return hook
}

func (f *PoolStatsFunc) appendCall(r0 PoolStatsFuncCall) {
	f.mutex.Lock()
	f.history = append(f.history, r0)
	f.mutex.Unlock()
}

// History returns a sequence of PoolStatsFuncCall objects describing
// the invocations of this function.
func (f *PoolStatsFunc) History() []PoolStatsFuncCall {
	f.mutex.Lock()
	history := make([]PoolStatsFuncCall, len(f.history))
	copy(history, f.history)
	f.mutex.Unlock()

	return history
}

// PoolStatsFuncCall is an object that describes an invocation of method
// Stats on an instance of MockPool.
type PoolStatsFuncCall struct {
	// Result0 is the value of the 1st result returned from this method
	// invocation.
	Result0 iface.PoolStats
}

// Args returns an interface slice containing the arguments of this
// invocation.
func (c PoolStatsFuncCall) Args() []interface{} {
	return []interface{}{}
}

// Results returns an interface slice containing the results of this
// invocation.
func (c PoolStatsFuncCall) Results() []interface{} {
	return []interface{}{c.Result0}
}
