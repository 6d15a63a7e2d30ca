// Package mocks contains hand-maintained mocks of the iface interfaces.
// They keep the layout go-mockgen emits (hook queues and call history) so
// that go-mockgen/matchers can assert on them.
package mocks

import (
	"sync"

	future "github.com/efritz/redpipe/future"
	iface "github.com/efritz/redpipe/iface"
	resp "github.com/efritz/redpipe/resp"
)

// MockConn is a mock implementation of the Conn interface (from the
// package github.com/efritz/redpipe/iface) used for unit testing.
type MockConn struct {
	// CloseFunc is an instance of a mock function object controlling the
	// behavior of the method Close.
	CloseFunc *ConnCloseFunc
	// DoneFunc is an instance of a mock function object controlling the
	// behavior of the method Done.
	DoneFunc *ConnDoneFunc
	// ErrFunc is an instance of a mock function object controlling the
	// behavior of the method Err.
	ErrFunc *ConnErrFunc
	// SendFunc is an instance of a mock function object controlling the
	// behavior of the method Send.
	SendFunc *ConnSendFunc
	// SendBatchFunc is an instance of a mock function object controlling
	// the behavior of the method SendBatch.
	SendBatchFunc *ConnSendBatchFunc
	// StateFunc is an instance of a mock function object controlling the
	// behavior of the method State.
	StateFunc *ConnStateFunc
}

// NewMockConn creates a new mock of the Conn interface. All methods
// return zero values for all results, unless overwritten.
func NewMockConn() *MockConn {
	return &MockConn{
		CloseFunc: &ConnCloseFunc{
			defaultHook: func() *future.Future[struct{}] {
				return nil
			},
		},
		DoneFunc: &ConnDoneFunc{
			defaultHook: func() <-chan struct{} {
				return nil
			},
		},
		ErrFunc: &ConnErrFunc{
			defaultHook: func() error {
				return nil
			},
		},
		SendFunc: &ConnSendFunc{
			defaultHook: func(resp.Request) *future.Future[resp.Response] {
				return nil
			},
		},
		SendBatchFunc: &ConnSendBatchFunc{
			defaultHook: func([]resp.Request) []*future.Future[resp.Response] {
				return nil
			},
		},
		StateFunc: &ConnStateFunc{
			defaultHook: func() iface.State {
				return 0
			},
		},
	}
}

// Close delegates to the next hook function in the queue and stores the
// parameter and result values of this invocation.
func (m *MockConn) Close() *future.Future[struct{}] {
	r0 := m.CloseFunc.nextHook()()
	m.CloseFunc.appendCall(ConnCloseFuncCall{r0})
	return r0
}

// ConnCloseFunc describes the behavior when the Close method of the parent
// MockConn instance is invoked.
type ConnCloseFunc struct {
	defaultHook func() *future.Future[struct{}]
	hooks       []func() *future.Future[struct{}]
	history     []ConnCloseFuncCall
	mutex       sync.Mutex
}

// SetDefaultHook sets function that is called when the Close method of
// the parent instance is invoked and the hook queue is empty.
func (f *ConnCloseFunc) SetDefaultHook(hook func() *future.Future[struct{}]) {
	f.defaultHook = hook
}

// PushHook adds a function to the end of hook queue. Each invocation of
// the Close method of the parent instance invokes the hook at the front
// of the queue and discards it. After the queue is empty, the default
// hook function is invoked for any future action.
func (f *ConnCloseFunc) PushHook(hook func() *future.Future[struct{}]) {
	f.mutex.Lock()
	f.hooks = append(f.hooks, hook)
	f.mutex.Unlock()
}

// SetDefaultReturn calls SetDefaultHook with a function that returns
// the given values.
func (f *ConnCloseFunc) SetDefaultReturn(r0 *future.Future[struct{}]) {
	f.SetDefaultHook(func() *future.Future[struct{}] {
		return r0
	})
}

// PushReturn calls PushHook with a function that returns the given
// values.
func (f *ConnCloseFunc) PushReturn(r0 *future.Future[struct{}]) {
	f.PushHook(func() *future.Future[struct{}] {
		return r0
	})
}

func (f *ConnCloseFunc) nextHook() func() *future.Future[struct{}] {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if len(f.hooks) == 0 {
		return f.defaultHook
	}

	hook := f.hooks[0]
	f.hooks = f.hooks[1:]
	return hook
}

func (f *ConnCloseFunc) appendCall(r0 ConnCloseFuncCall) {
	f.mutex.Lock()
	f.history = append(f.history, r0)
	f.mutex.Unlock()
}

// History returns a sequence of ConnCloseFuncCall objects describing
// the invocations of this function.
func (f *ConnCloseFunc) History() []ConnCloseFuncCall {
	f.mutex.Lock()
	history := make([]ConnCloseFuncCall, len(f.history))
	copy(history, f.history)
	f.mutex.Unlock()

	return history
}

// ConnCloseFuncCall is an object that describes an invocation of method
// Close on an instance of MockConn.
type ConnCloseFuncCall struct {
	// Result0 is the value of the 1st result returned from this method
	// invocation.
	Result0 *future.Future[struct{}]
}

// Args returns an interface slice containing the arguments of this
// invocation.
func (c ConnCloseFuncCall) Args() []interface{} {
	return []interface{}{}
}

// Results returns an interface slice containing the results of this
// invocation.
func (c ConnCloseFuncCall) Results() []interface{} {
	return []interface{}{c.Result0}
}

// Done delegates to the next hook function in the queue and stores the
// parameter and result values of this invocation.
func (m *MockConn) Done() <-chan struct{} {
	r0 := m.DoneFunc.nextHook()()
	m.DoneFunc.appendCall(ConnDoneFuncCall{r0})
	return r0
}

// ConnDoneFunc describes the behavior when the Done method of the parent
// MockConn instance is invoked.
type ConnDoneFunc struct {
	defaultHook func() <-chan struct{}
	hooks       []func() <-chan struct{}
	history     []ConnDoneFuncCall
	mutex       sync.Mutex
}

// SetDefaultHook sets function that is called when the Done method of
// the parent instance is invoked and the hook queue is empty.
func (f *ConnDoneFunc) SetDefaultHook(hook func() <-chan struct{}) {
	f.defaultHook = hook
}

// PushHook adds a function to the end of hook queue. Each invocation of
// the Done method of the parent instance invokes the hook at the front
// of the queue and discards it. After the queue is empty, the default
// hook function is invoked for any future action.
func (f *ConnDoneFunc) PushHook(hook func() <-chan struct{}) {
	f.mutex.Lock()
	f.hooks = append(f.hooks, hook)
	f.mutex.Unlock()
}

// SetDefaultReturn calls SetDefaultHook with a function that returns
// the given values.
func (f *ConnDoneFunc) SetDefaultReturn(r0 <-chan struct{}) {
	f.SetDefaultHook(func() <-chan struct{} {
		return r0
	})
}

// PushReturn calls PushHook with a function that returns the given
// values.
func (f *ConnDoneFunc) PushReturn(r0 <-chan struct{}) {
	f.PushHook(func() <-chan struct{} {
		return r0
	})
}

func (f *ConnDoneFunc) nextHook() func() <-chan struct{} {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if len(f.hooks) == 0 {
		return f.defaultHook
	}

	hook := f.hooks[0]
	f.hooks = f.hooks[1:]
	return hook
}

func (f *ConnDoneFunc) appendCall(r0 ConnDoneFuncCall) {
	f.mutex.Lock()
	f.history = append(f.history, r0)
	f.mutex.Unlock()
}

// History returns a sequence of ConnDoneFuncCall objects describing
// the invocations of this function.
func (f *ConnDoneFunc) History() []ConnDoneFuncCall {
	f.mutex.Lock()
	history := make([]ConnDoneFuncCall, len(f.history))
	copy(history, f.history)
	f.mutex.Unlock()

	return history
}

// ConnDoneFuncCall is an object that describes an invocation of method
// Done on an instance of MockConn.
type ConnDoneFuncCall struct {
	// Result0 is the value of the 1st result returned from this method
	// invocation.
	Result0 <-chan struct{}
}

// Args returns an interface slice containing the arguments of this
// invocation.
func (c ConnDoneFuncCall) Args() []interface{} {
	return []interface{}{}
}

// Results returns an interface slice containing the results of this
// invocation.
func (c ConnDoneFuncCall) Results() []interface{} {
	return []interface{}{c.Result0}
}

// Err delegates to the next hook function in the queue and stores the
// parameter and result values of this invocation.
func (m *MockConn) Err() error {
	r0 := m.ErrFunc.nextHook()()
	m.ErrFunc.appendCall(ConnErrFuncCall{r0})
	return r0
}

// ConnErrFunc describes the behavior when the Err method of the parent
// MockConn instance is invoked.
type ConnErrFunc struct {
	defaultHook func() error
	hooks       []func() error
	history     []ConnErrFuncCall
	mutex       sync.Mutex
}

// SetDefaultHook sets function that is called when the Err method of
// the parent instance is invoked and the hook queue is empty.
func (f *ConnErrFunc) SetDefaultHook(hook func() error) {
	f.defaultHook = hook
}

// PushHook adds a function to the end of hook queue. Each invocation of
// the Err method of the parent instance invokes the hook at the front
// of the queue and discards it. After the queue is empty, the default
// hook function is invoked for any future action.
func (f *ConnErrFunc) PushHook(hook func() error) {
	f.mutex.Lock()
	f.hooks = append(f.hooks, hook)
	f.mutex.Unlock()
}

// SetDefaultReturn calls SetDefaultHook with a function that returns
// the given values.
func (f *ConnErrFunc) SetDefaultReturn(r0 error) {
	f.SetDefaultHook(func() error {
		return r0
	})
}

// PushReturn calls PushHook with a function that returns the given
// values.
func (f *ConnErrFunc) PushReturn(r0 error) {
	f.PushHook(func() error {
		return r0
	})
}

func (f *ConnErrFunc) nextHook() func() error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if len(f.hooks) == 0 {
		return f.defaultHook
	}

	hook := f.hooks[0]
	f.hooks = f.hooks[1:]
	return hook
}

func (f *ConnErrFunc) appendCall(r0 ConnErrFuncCall) {
	f.mutex.Lock()
	f.history = append(f.history, r0)
	f.mutex.Unlock()
}

// History returns a sequence of ConnErrFuncCall objects describing
// the invocations of this function.
func (f *ConnErrFunc) History() []ConnErrFuncCall {
	f.mutex.Lock()
	history := make([]ConnErrFuncCall, len(f.history))
	copy(history, f.history)
	f.mutex.Unlock()

	return history
}

// ConnErrFuncCall is an object that describes an invocation of method
// Err on an instance of MockConn.
type ConnErrFuncCall struct {
	// Result0 is the value of the 1st result returned from this method
	// invocation.
	Result0 error
}

// Args returns an interface slice containing the arguments of this
// invocation.
func (c ConnErrFuncCall) Args() []interface{} {
	return []interface{}{}
}

// Results returns an interface slice containing the results of this
// invocation.
func (c ConnErrFuncCall) Results() []interface{} {
	return []interface{}{c.Result0}
}

// Send delegates to the next hook function in the queue and stores the
// parameter and result values of this invocation.
func (m *MockConn) Send(v0 resp.Request) *future.Future[resp.Response] {
	r0 := m.SendFunc.nextHook()(v0)
	m.SendFunc.appendCall(ConnSendFuncCall{v0, r0})
	return r0
}

// ConnSendFunc describes the behavior when the Send method of the parent
// MockConn instance is invoked.
type ConnSendFunc struct {
	defaultHook func(resp.Request) *future.Future[resp.Response]
	hooks       []func(resp.Request) *future.Future[resp.Response]
	history     []ConnSendFuncCall
	mutex       sync.Mutex
}

// SetDefaultHook sets function that is called when the Send method of
// the parent instance is invoked and the hook queue is empty.
func (f *ConnSendFunc) SetDefaultHook(hook func(resp.Request) *future.Future[resp.Response]) {
	f.defaultHook = hook
}

// PushHook adds a function to the end of hook queue. Each invocation of
// the Send method of the parent instance invokes the hook at the front
// of the queue and discards it. After the queue is empty, the default
// hook function is invoked for any future action.
func (f *ConnSendFunc) PushHook(hook func(resp.Request) *future.Future[resp.Response]) {
	f.mutex.Lock()
	f.hooks = append(f.hooks, hook)
	f.mutex.Unlock()
}

// SetDefaultReturn calls SetDefaultHook with a function that returns
// the given values.
func (f *ConnSendFunc) SetDefaultReturn(r0 *future.Future[resp.Response]) {
	f.SetDefaultHook(func(resp.Request) *future.Future[resp.Response] {
		return r0
	})
}

// PushReturn calls PushHook with a function that returns the given
// values.
func (f *ConnSendFunc) PushReturn(r0 *future.Future[resp.Response]) {
	f.PushHook(func(resp.Request) *future.Future[resp.Response] {
		return r0
	})
}

func (f *ConnSendFunc) nextHook() func(resp.Request) *future.Future[resp.Response] {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if len(f.hooks) == 0 {
		return f.defaultHook
	}

	hook := f.hooks[0]
	f.hooks = f.hooks[1:]
	return hook
}

func (f *ConnSendFunc) appendCall(r0 ConnSendFuncCall) {
	f.mutex.Lock()
	f.history = append(f.history, r0)
	f.mutex.Unlock()
}

// History returns a sequence of ConnSendFuncCall objects describing
// the invocations of this function.
func (f *ConnSendFunc) History() []ConnSendFuncCall {
	f.mutex.Lock()
	history := make([]ConnSendFuncCall, len(f.history))
	copy(history, f.history)
	f.mutex.Unlock()

	return history
}

// ConnSendFuncCall is an object that describes an invocation of method
// Send on an instance of MockConn.
type ConnSendFuncCall struct {
	// Arg0 is the value of the 1st argument passed to this method
	// invocation.
	Arg0 resp.Request
	// Result0 is the value of the 1st result returned from this method
	// invocation.
	Result0 *future.Future[resp.Response]
}

// Args returns an interface slice containing the arguments of this
// invocation.
func (c ConnSendFuncCall) Args() []interface{} {
	return []interface{}{c.Arg0}
}

// Results returns an interface slice containing the results of this
// invocation.
func (c ConnSendFuncCall) Results() []interface{} {
	return []interface{}{c.Result0}
}

// SendBatch delegates to the next hook function in the queue and stores the
// parameter and result values of this invocation.
func (m *MockConn) SendBatch(v0 []resp.Request) []*future.Future[resp.Response] {
	r0 := m.SendBatchFunc.nextHook()(v0)
	m.SendBatchFunc.appendCall(ConnSendBatchFuncCall{v0, r0})
	return r0
}

// ConnSendBatchFunc describes the behavior when the SendBatch method of the parent
// MockConn instance is invoked.
type ConnSendBatchFunc struct {
	defaultHook func([]resp.Request) []*future.Future[resp.Response]
	hooks       []func([]resp.Request) []*future.Future[resp.Response]
	history     []ConnSendBatchFuncCall
	mutex       sync.Mutex
}

// SetDefaultHook sets function that is called when the SendBatch method of
// the parent instance is invoked and the hook queue is empty.
func (f *ConnSendBatchFunc) SetDefaultHook(hook func([]resp.Request) []*future.Future[resp.Response]) {
	f.defaultHook = hook
}

// PushHook adds a function to the end of hook queue. Each invocation of
// the SendBatch method of the parent instance invokes the hook at the front
// of the queue and discards it. After the queue is empty, the default
// hook function is invoked for any future action.
func (f *ConnSendBatchFunc) PushHook(hook func([]resp.Request) []*future.Future[resp.Response]) {
	f.mutex.Lock()
	f.hooks = append(f.hooks, hook)
	f.mutex.Unlock()
}

// SetDefaultReturn calls SetDefaultHook with a function that returns
// the given values.
func (f *ConnSendBatchFunc) SetDefaultReturn(r0 []*future.Future[resp.Response]) {
	f.SetDefaultHook(func([]resp.Request) []*future.Future[resp.Response] {
		return r0
	})
}

// PushReturn calls PushHook with a function that returns the given
// values.
func (f *ConnSendBatchFunc) PushReturn(r0 []*future.Future[resp.Response]) {
	f.PushHook(func([]resp.Request) []*future.Future[resp.Response] {
		return r0
	})
}

func (f *ConnSendBatchFunc) nextHook() func([]resp.Request) []*future.Future[resp.Response] {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if len(f.hooks) == 0 {
		return f.defaultHook
	}

	hook := f.hooks[0]
	f.hooks = f.hooks[1:]
	return hook
}

func (f *ConnSendBatchFunc) appendCall(r0 ConnSendBatchFuncCall) {
	f.mutex.Lock()
	f.history = append(f.history, r0)
	f.mutex.Unlock()
}

// History returns a sequence of ConnSendBatchFuncCall objects describing
// the invocations of this function.
func (f *ConnSendBatchFunc) History() []ConnSendBatchFuncCall {
	f.mutex.Lock()
	history := make([]ConnSendBatchFuncCall, len(f.history))
	copy(history, f.history)
	f.mutex.Unlock()

	return history
}

// ConnSendBatchFuncCall is an object that describes an invocation of method
// SendBatch on an instance of MockConn.
type ConnSendBatchFuncCall struct {
	// Arg0 is the value of the 1st argument passed to this method
	// invocation.
	Arg0 []resp.Request
	// Result0 is the value of the 1st result returned from this method
	// invocation.
	Result0 []*future.Future[resp.Response]
}

// Args returns an interface slice containing the arguments of this
// invocation.
func (c ConnSendBatchFuncCall) Args() []interface{} {
	return []interface{}{c.Arg0}
}

// Results returns an interface slice containing the results of this
// invocation.
func (c ConnSendBatchFuncCall) Results() []interface{} {
	return []interface{}{c.Result0}
}

// State delegates to the next hook function in the queue and stores the
// parameter and result values of this invocation.
func (m *MockConn) State() iface.State {
	r0 := m.StateFunc.nextHook()()
	m.StateFunc.appendCall(ConnStateFuncCall{r0})
	return r0
}

// ConnStateFunc describes the behavior when the State method of the parent
// MockConn instance is invoked.
type ConnStateFunc struct {
	defaultHook func() iface.State
	hooks       []func() iface.State
	history     []ConnStateFuncCall
	mutex       sync.Mutex
}

// SetDefaultHook sets function that is called when the State method of
// the parent instance is invoked and the hook queue is empty.
func (f *ConnStateFunc) SetDefaultHook(hook func() iface.State) {
	f.defaultHook = hook
}

// PushHook adds a function to the end of hook queue. Each invocation of
// the State method of the parent instance invokes the hook at the front
// of the queue and discards it. After the queue is empty, the default
// hook function is invoked for any future action.
func (f *ConnStateFunc) PushHook(hook func() iface.State) {
	f.mutex.Lock()
	f.hooks = append(f.hooks, hook)
	f.mutex.Unlock()
}

// SetDefaultReturn calls SetDefaultHook with a function that returns
// the given values.
func (f *ConnStateFunc) SetDefaultReturn(r0 iface.State) {
	f.SetDefaultHook(func() iface.State {
		return r0
	})
}

// PushReturn calls PushHook with a function that returns the given
// values.
func (f *ConnStateFunc) PushReturn(r0 iface.State) {
	f.PushHook(func() iface.State {
		return r0
	})
}

func (f *ConnStateFunc) nextHook() func() iface.State {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if len(f.hooks) == 0 {
		return f.defaultHook
	}

	hook := f.hooks[0]
	f.hooks = f.hooks[1:]
	return hook
}

func (f *ConnStateFunc) appendCall(r0 ConnStateFuncCall) {
	f.mutex.Lock()
	f.history = append(f.history, r0)
	f.mutex.Unlock()
}

// History returns a sequence of ConnStateFuncCall objects describing
// the invocations of this function.
func (f *ConnStateFunc) History() []ConnStateFuncCall {
	f.mutex.Lock()
	history := make([]ConnStateFuncCall, len(f.history))
	copy(history, f.history)
	f.mutex.Unlock()

	return history
}

// ConnStateFuncCall is an object that describes an invocation of method
// State on an instance of MockConn.
type ConnStateFuncCall struct {
	// Result0 is the value of the 1st result returned from this method
	// invocation.
	Result0 iface.State
}

// Args returns an interface slice containing the arguments of this
// invocation.
func (c ConnStateFuncCall) Args() []interface{} {
	return []interface{}{}
}

// Results returns an interface slice containing the results of this
// invocation.
func (c ConnStateFuncCall) Results() []interface{} {
	return []interface{}{c.Result0}
}
