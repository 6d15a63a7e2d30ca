package redpipe

import (
	"errors"
	"strconv"

	"github.com/aphistic/sweet"
	. "github.com/efritz/go-mockgen/matchers"
	. "github.com/onsi/gomega"

	"github.com/efritz/redpipe/future"
	"github.com/efritz/redpipe/mocks"
	"github.com/efritz/redpipe/resp"
)

type DispatcherSuite struct{}

func (s *DispatcherSuite) TestPooledSend(t sweet.T) {
	var (
		pool       = mocks.NewMockPool()
		dispatcher = NewPooledDispatcher(pool)
	)

	pool.SendFunc.SetDefaultReturn(future.Resolved(resp.NewSimpleString("PONG")))

	r, err := dispatcher.Send(resp.NewRequest("PING")).Result()
	Expect(err).To(BeNil())
	Expect(r.String()).To(Equal("PONG"))
	Expect(pool.SendFunc).To(BeCalledN(1))
	Expect(pool.SendFunc.History()[0].Arg0.Command()).To(Equal("PING"))
}

func (s *DispatcherSuite) TestPooledClose(t sweet.T) {
	var (
		pool       = mocks.NewMockPool()
		dispatcher = NewPooledDispatcher(pool)
	)

	pool.CloseFunc.SetDefaultReturn(future.Resolved(struct{}{}))

	_, err := dispatcher.Close().Result()
	Expect(err).To(BeNil())
	Expect(pool.CloseFunc).To(BeCalledN(1))

	_, err = dispatcher.Close().Result()
	Expect(err).To(Equal(ErrInvalidState))
	Expect(pool.CloseFunc).To(BeCalledN(1))

	_, err = dispatcher.Send(resp.NewRequest("PING")).Result()
	Expect(err).To(Equal(ErrInvalidState))
	Expect(pool.SendFunc).NotTo(BeCalled())

	results := dispatcher.SendBatch([]resp.Request{resp.NewRequest("PING"), resp.NewRequest("PING")})
	Expect(results).To(HaveLen(2))

	for _, result := range results {
		_, err := result.Result()
		Expect(err).To(Equal(ErrInvalidState))
	}
}

func (s *DispatcherSuite) TestPooledRoundTrip(t sweet.T) {
	var (
		transport  = &pipeTransport{handler: pingHandler}
		config     = newConfig([]ConfigFunc{WithLogger(testLogger)})
		dispatcher = NewPooledDispatcher(newPool(makeDialer(transport.dial, config), config))
	)

	r, err := dispatcher.Send(resp.NewRequest("PING")).Result()
	Expect(err).To(BeNil())
	Expect(r).To(Equal(resp.NewSimpleString("PONG")))

	_, err = dispatcher.Close().Result()
	Expect(err).To(BeNil())

	_, err = dispatcher.Send(resp.NewRequest("PING")).Result()
	Expect(err).To(Equal(ErrInvalidState))
}

func (s *DispatcherSuite) TestDirectClose(t sweet.T) {
	var (
		closing    = future.New[struct{}]()
		conn       = newReadyConn()
		dispatcher = NewDirectDispatcher(conn)
	)

	conn.CloseFunc.SetDefaultReturn(closing)
	conn.SendFunc.SetDefaultReturn(future.Resolved(resp.NewSimpleString("PONG")))

	f := dispatcher.Close()
	Consistently(f.Done()).ShouldNot(BeClosed())

	// The connection stays referenced until it has closed.
	_, err := dispatcher.Send(resp.NewRequest("PING")).Result()
	Expect(err).To(BeNil())
	Expect(conn.SendFunc).To(BeCalledN(1))

	closing.Complete(struct{}{}, nil)

	_, err = f.Result()
	Expect(err).To(BeNil())

	_, err = dispatcher.Send(resp.NewRequest("PING")).Result()
	Expect(err).To(Equal(ErrInvalidState))
	Expect(conn.SendFunc).To(BeCalledN(1))

	_, err = dispatcher.Close().Result()
	Expect(err).To(Equal(ErrInvalidState))
}

func (s *DispatcherSuite) TestDirectCloseFailure(t sweet.T) {
	var (
		conn       = newReadyConn()
		dispatcher = NewDirectDispatcher(conn)
	)

	conn.CloseFunc.SetDefaultReturn(future.Failed[struct{}](errors.New("close failed")))
	conn.SendFunc.SetDefaultReturn(future.Resolved(resp.NewSimpleString("PONG")))

	_, err := dispatcher.Close().Result()
	Expect(err).To(MatchError("close failed"))

	_, err = dispatcher.Send(resp.NewRequest("PING")).Result()
	Expect(err).To(BeNil())
}

func (s *DispatcherSuite) TestDirectSendBatch(t sweet.T) {
	var (
		conn       = newReadyConn()
		dispatcher = NewDirectDispatcher(conn)
		reqs       = []resp.Request{resp.NewRequest("MULTI"), resp.NewRequest("EXEC")}
	)

	conn.SendBatchFunc.SetDefaultHook(func(reqs []resp.Request) []*future.Future[resp.Response] {
		results := []*future.Future[resp.Response]{}
		for range reqs {
			results = append(results, future.Resolved(resp.NewSimpleString("OK")))
		}

		return results
	})

	results := dispatcher.SendBatch(reqs)
	Expect(results).To(HaveLen(2))
	Expect(conn.SendBatchFunc).To(BeCalledN(1))
	Expect(conn.SendBatchFunc.History()[0].Arg0).To(Equal(reqs))
	Expect(conn.SendFunc).NotTo(BeCalled())
}

func (s *DispatcherSuite) TestDirectRoundTrip(t sweet.T) {
	var (
		conn       = NewConn(serve(pingHandler), WithLogger(testLogger))
		dispatcher = NewDirectDispatcher(conn)
		reqs       = []resp.Request{}
	)

	for i := 0; i < 10; i++ {
		reqs = append(reqs, resp.NewRequest("ECHO", i))
	}

	for i, result := range dispatcher.SendBatch(reqs) {
		r, err := result.Result()
		Expect(err).To(BeNil())
		Expect(string(r.Str)).To(Equal(strconv.Itoa(i)))
	}

	_, err := dispatcher.Close().Result()
	Expect(err).To(BeNil())
	Expect(conn.State()).To(Equal(Closed))

	_, err = dispatcher.Close().Result()
	Expect(err).To(Equal(ErrInvalidState))
}
