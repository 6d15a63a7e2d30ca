package redpipe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aphistic/sweet"
	"github.com/efritz/glock"
	"github.com/gomodule/redigo/redis"
	. "github.com/onsi/gomega"

	"github.com/efritz/redpipe/future"
	"github.com/efritz/redpipe/resp"
)

type ConnSuite struct{}

func (s *ConnSuite) TestSend(t sweet.T) {
	conn := NewConn(serve(pingHandler), WithLogger(testLogger))
	Expect(conn.State()).To(Equal(Ready))

	r, err := conn.Send(resp.NewRequest("PING")).Result()
	Expect(err).To(BeNil())
	Expect(r).To(Equal(resp.NewSimpleString("PONG")))

	r, err = conn.Send(resp.NewRequest("ECHO", "hello world")).Result()
	Expect(err).To(BeNil())
	Expect(r).To(Equal(resp.NewBulkString([]byte("hello world"))))
}

func (s *ConnSuite) TestErrorReplyIsResponse(t sweet.T) {
	conn := NewConn(serve(pingHandler), WithLogger(testLogger))

	r, err := conn.Send(resp.NewRequest("NOPE")).Result()
	Expect(err).To(BeNil())
	Expect(r.IsError()).To(BeTrue())
	Expect(r.String()).To(Equal("(error) ERR unknown command 'NOPE'"))
	Expect(conn.State()).To(Equal(Ready))
}

func (s *ConnSuite) TestSendEmptyRequest(t sweet.T) {
	conn := NewConn(serve(pingHandler), WithLogger(testLogger))

	_, err := conn.Send(resp.NewRawRequest()).Result()
	Expect(err).To(Equal(resp.ErrEmptyRequest))
	Expect(conn.State()).To(Equal(Ready))
}

func (s *ConnSuite) TestPipelinedResponsesInOrder(t sweet.T) {
	var (
		conn    = NewConn(serve(pingHandler), WithLogger(testLogger))
		results = []*future.Future[resp.Response]{}
	)

	for i := 0; i < 200; i++ {
		results = append(results, conn.Send(resp.NewRequest("ECHO", i)))
	}

	for i, result := range results {
		r, err := result.Result()
		Expect(err).To(BeNil())
		Expect(string(r.Str)).To(Equal(strconv.Itoa(i)))
	}
}

func (s *ConnSuite) TestConcurrentSenders(t sweet.T) {
	var (
		conn       = NewConn(serve(pingHandler), WithLogger(testLogger))
		wg         sync.WaitGroup
		mismatches int32
	)

	for g := 0; g < 10; g++ {
		wg.Add(1)

		go func(g int) {
			defer wg.Done()

			results := []*future.Future[resp.Response]{}
			for i := 0; i < 50; i++ {
				results = append(results, conn.Send(resp.NewRequest("ECHO", fmt.Sprintf("%d-%d", g, i))))
			}

			for i, result := range results {
				r, err := result.Result()
				if err != nil || string(r.Str) != fmt.Sprintf("%d-%d", g, i) {
					atomic.AddInt32(&mismatches, 1)
				}
			}
		}(g)
	}

	wg.Wait()
	Expect(atomic.LoadInt32(&mismatches)).To(Equal(int32(0)))
}

func (s *ConnSuite) TestSendBatch(t sweet.T) {
	var (
		conn = NewConn(serve(pingHandler), WithLogger(testLogger))
		reqs = []resp.Request{
			resp.NewRequest("ECHO", "a"),
			resp.NewRawRequest(),
			resp.NewRequest("ECHO", "b"),
			resp.NewRequest("PING"),
		}
	)

	results := conn.SendBatch(reqs)
	Expect(results).To(HaveLen(4))

	r, err := results[0].Result()
	Expect(err).To(BeNil())
	Expect(string(r.Str)).To(Equal("a"))

	// An invalid request fails alone and is never written.
	_, err = results[1].Result()
	Expect(err).To(Equal(resp.ErrEmptyRequest))

	r, err = results[2].Result()
	Expect(err).To(BeNil())
	Expect(string(r.Str)).To(Equal("b"))

	r, err = results[3].Result()
	Expect(err).To(BeNil())
	Expect(r.String()).To(Equal("PONG"))
}

func (s *ConnSuite) TestSendBatchNotInterleaved(t sweet.T) {
	var (
		mutex    sync.Mutex
		requests = []string{}
		conn     = NewConn(serve(func(args []string) string {
			mutex.Lock()
			requests = append(requests, args[0])
			mutex.Unlock()
			return "+OK\r\n"
		}), WithLogger(testLogger))
		wg sync.WaitGroup
	)

	for i := 0; i < 100; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			for _, result := range conn.SendBatch([]resp.Request{
				resp.NewRequest("MULTI"),
				resp.NewRequest("INCR", "counter"),
				resp.NewRequest("EXEC"),
			}) {
				result.Result()
			}
		}()

		go func() {
			defer wg.Done()
			conn.Send(resp.NewRequest("PING")).Result()
		}()
	}

	wg.Wait()

	mutex.Lock()
	defer mutex.Unlock()

	Expect(requests).To(HaveLen(400))
	for i, command := range requests {
		if command == "MULTI" {
			Expect(requests[i+1 : i+3]).To(Equal([]string{"INCR", "EXEC"}))
		}
	}
}

func (s *ConnSuite) TestLargeReply(t sweet.T) {
	elems := make([]resp.Response, 0, 200000)
	for i := 0; i < cap(elems); i++ {
		elems = append(elems, resp.NewBulkString([]byte(strconv.Itoa(i))))
	}

	var (
		reply = string(resp.AppendResponse(nil, resp.NewArray(elems...)))
		conn  = NewConn(serve(func(args []string) string {
			if args[0] == "LRANGE" {
				return reply
			}

			return pingHandler(args)
		}), WithLogger(testLogger))
	)

	big := conn.Send(resp.NewRequest("LRANGE", "list", 0, -1))
	ping := conn.Send(resp.NewRequest("PING"))

	r, err := big.Result()
	Expect(err).To(BeNil())
	Expect(r.Elems).To(HaveLen(200000))
	Expect(string(r.Elems[199999].Str)).To(Equal("199999"))

	r, err = ping.Result()
	Expect(err).To(BeNil())
	Expect(r.String()).To(Equal("PONG"))
}

func (s *ConnSuite) TestCloseIdle(t sweet.T) {
	conn := NewConn(serve(pingHandler), WithLogger(testLogger))

	_, err := conn.Close().Result()
	Expect(err).To(BeNil())
	Expect(conn.State()).To(Equal(Closed))
	Expect(conn.Done()).To(BeClosed())
	Expect(conn.Err()).To(BeNil())

	_, err = conn.Close().Result()
	Expect(err).To(BeNil())

	_, err = conn.Send(resp.NewRequest("PING")).Result()
	Expect(err).To(Equal(ErrConnectionClosed))
}

func (s *ConnSuite) TestCloseDrainsPendingCalls(t sweet.T) {
	var (
		received = make(chan struct{})
		release  = make(chan struct{})
		conn     = NewConn(serve(blockingHandler(received, release)), WithLogger(testLogger))
	)

	blocked := conn.Send(resp.NewRequest("BLPOP", "queue", 0))
	Eventually(received).Should(BeClosed())

	closing := conn.Close()
	Expect(conn.State()).To(Equal(Draining))
	Expect(conn.Close()).To(BeIdenticalTo(closing))

	_, err := conn.Send(resp.NewRequest("PING")).Result()
	Expect(err).To(Equal(ErrConnectionClosed))
	Consistently(closing.Done()).ShouldNot(BeClosed())

	close(release)

	r, err := blocked.Result()
	Expect(err).To(BeNil())
	Expect(r.Kind).To(Equal(resp.Null))

	_, err = closing.Result()
	Expect(err).To(BeNil())
	Expect(conn.State()).To(Equal(Closed))
}

func (s *ConnSuite) TestDrainTimeout(t sweet.T) {
	var (
		clock = glock.NewMockClock()
		conn  = NewConn(
			serve(silentHandler),
			WithDrainTimeout(time.Second*5),
			WithLogger(testLogger),
			withClock(clock),
		)
	)

	blocked := conn.Send(resp.NewRequest("BLPOP", "queue", 0))
	closing := conn.Close()
	Consistently(closing.Done()).ShouldNot(BeClosed())

	clock.BlockingAdvance(time.Second * 5)
	Eventually(closing.Done()).Should(BeClosed())

	_, err := blocked.Result()
	Expect(err).To(Equal(ErrConnectionClosed))
	Expect(conn.State()).To(Equal(Closed))
}

func (s *ConnSuite) TestCallTimeoutClosesConnection(t sweet.T) {
	var (
		clock = glock.NewMockClock()
		conn  = NewConn(
			serve(silentHandler),
			WithCallTimeout(time.Second),
			WithLogger(testLogger),
			withClock(clock),
		)
	)

	results := []*future.Future[resp.Response]{
		conn.Send(resp.NewRequest("GET", "a")),
		conn.Send(resp.NewRequest("GET", "b")),
		conn.Send(resp.NewRequest("GET", "c")),
	}

	clock.BlockingAdvance(time.Second)

	timedOut := 0
	for _, result := range results {
		_, err := result.Result()
		Expect(errors.Is(err, ErrTimeout)).To(BeTrue())

		// Calls that did not time out themselves fail because the
		// connection was closed underneath them.
		if err == ErrTimeout {
			timedOut++
		} else {
			Expect(errors.Is(err, ErrConnectionClosed)).To(BeTrue())
		}
	}

	Expect(timedOut).To(BeNumerically(">=", 1))
	Expect(conn.State()).To(Equal(Closed))
	Expect(conn.Err()).To(Equal(ErrTimeout))

	_, err := conn.Send(resp.NewRequest("PING")).Result()
	Expect(errors.Is(err, ErrConnectionClosed)).To(BeTrue())
	Expect(errors.Is(err, ErrTimeout)).To(BeTrue())
}

func (s *ConnSuite) TestCallTimeoutNotReached(t sweet.T) {
	conn := NewConn(serve(pingHandler), WithCallTimeout(time.Minute), WithLogger(testLogger))

	r, err := conn.Send(resp.NewRequest("PING")).Result()
	Expect(err).To(BeNil())
	Expect(r.String()).To(Equal("PONG"))
	Expect(conn.State()).To(Equal(Ready))
}

func (s *ConnSuite) TestProtocolErrorFailsPendingCalls(t sweet.T) {
	conn := NewConn(serve(func(args []string) string { return "!garbage\r\n" }), WithLogger(testLogger))

	_, err := conn.Send(resp.NewRequest("PING")).Result()
	Expect(resp.IsProtocolError(err)).To(BeTrue())
	Expect(errors.Is(err, ErrConnectionClosed)).To(BeTrue())

	Eventually(conn.Done()).Should(BeClosed())
	Expect(resp.IsProtocolError(conn.Err())).To(BeTrue())
}

func (s *ConnSuite) TestUnsolicitedResponse(t sweet.T) {
	client, server := net.Pipe()
	defer server.Close()

	go server.Write([]byte("+OK\r\n"))

	conn := NewConn(client, WithLogger(testLogger))
	Eventually(conn.Done()).Should(BeClosed())
	Expect(resp.IsProtocolError(conn.Err())).To(BeTrue())
}

func (s *ConnSuite) TestMaxDepth(t sweet.T) {
	conn := NewConn(serve(func(args []string) string {
		if args[0] == "SHALLOW" {
			return "*1\r\n*1\r\n:1\r\n"
		}

		return "*1\r\n*1\r\n*1\r\n:1\r\n"
	}), WithMaxDepth(2), WithLogger(testLogger))

	r, err := conn.Send(resp.NewRequest("SHALLOW")).Result()
	Expect(err).To(BeNil())
	Expect(r).To(Equal(resp.NewArray(resp.NewArray(resp.NewInteger(1)))))

	_, err = conn.Send(resp.NewRequest("DEEP")).Result()
	Expect(resp.IsProtocolError(err)).To(BeTrue())
	Expect(conn.State()).To(Equal(Closed))
}

func (s *ConnSuite) TestRemoteClose(t sweet.T) {
	client, server := net.Pipe()

	go func() {
		redis.NewConn(server, 0, 0).Receive()
		server.Close()
	}()

	conn := NewConn(client, WithLogger(testLogger))

	_, err := conn.Send(resp.NewRequest("PING")).Result()
	Expect(errors.Is(err, ErrConnectionClosed)).To(BeTrue())
	Expect(errors.Is(err, io.EOF)).To(BeTrue())
	Expect(conn.Err()).To(Equal(io.EOF))
}

func (s *ConnSuite) TestDialQueuesRequests(t sweet.T) {
	var (
		gate = make(chan struct{})
		conn = Dial(func(ctx context.Context) (net.Conn, error) {
			<-gate
			return serve(pingHandler), nil
		}, WithLogger(testLogger))
	)

	Expect(conn.State()).To(Equal(Connecting))

	f := conn.Send(resp.NewRequest("PING"))
	Consistently(f.Done()).ShouldNot(BeClosed())
	close(gate)

	r, err := f.Result()
	Expect(err).To(BeNil())
	Expect(r.String()).To(Equal("PONG"))
	Expect(conn.State()).To(Equal(Ready))
	Eventually(conn.Connected().Done()).Should(BeClosed())
}

func (s *ConnSuite) TestDialFailure(t sweet.T) {
	conn := Dial(func(ctx context.Context) (net.Conn, error) {
		return nil, errors.New("connection refused")
	}, WithLogger(testLogger))

	_, err := conn.Send(resp.NewRequest("PING")).Result()
	Expect(errors.Is(err, ErrConnectionClosed)).To(BeTrue())
	Expect(err).To(MatchError(ContainSubstring("connection refused")))

	_, err = conn.Connected().Result()
	Expect(err).To(MatchError(ContainSubstring("connection refused")))
	Eventually(conn.Done()).Should(BeClosed())
}

func (s *ConnSuite) TestCloseWhileConnecting(t sweet.T) {
	var (
		gate = make(chan struct{})
		conn = Dial(func(ctx context.Context) (net.Conn, error) {
			<-gate
			return serve(pingHandler), nil
		}, WithLogger(testLogger))
	)

	_, err := conn.Close().Result()
	Expect(err).To(BeNil())
	Expect(conn.State()).To(Equal(Closed))

	close(gate)
	Consistently(conn.State).Should(Equal(Closed))
}

func (s *ConnSuite) TestHandshake(t sweet.T) {
	var (
		mutex    sync.Mutex
		requests = [][]string{}
		conn     = NewConn(serve(func(args []string) string {
			mutex.Lock()
			requests = append(requests, args)
			mutex.Unlock()

			switch args[0] {
			case "AUTH", "SELECT":
				return "+OK\r\n"
			}

			return pingHandler(args)
		}), WithPassword("secret"), WithDatabase(3), WithLogger(testLogger))
	)

	r, err := conn.Send(resp.NewRequest("PING")).Result()
	Expect(err).To(BeNil())
	Expect(r.String()).To(Equal("PONG"))

	_, err = conn.Connected().Result()
	Expect(err).To(BeNil())

	mutex.Lock()
	defer mutex.Unlock()

	Expect(requests).To(Equal([][]string{
		{"AUTH", "secret"},
		{"SELECT", "3"},
		{"PING"},
	}))
}

func (s *ConnSuite) TestHandshakeRejected(t sweet.T) {
	conn := NewConn(serve(func(args []string) string {
		if args[0] == "AUTH" {
			return "-WRONGPASS invalid username-password pair\r\n"
		}

		return pingHandler(args)
	}), WithPassword("wrong"), WithLogger(testLogger))

	_, err := conn.Connected().Result()
	Expect(errors.Is(err, ErrHandshake)).To(BeTrue())
	Expect(err).To(MatchError(ContainSubstring("WRONGPASS")))

	Eventually(conn.Done()).Should(BeClosed())
	Expect(errors.Is(conn.Err(), ErrHandshake)).To(BeTrue())
}

//
// Handlers

// Answers BLPOP only once release is closed.
func blockingHandler(received, release chan struct{}) handlerFunc {
	return func(args []string) string {
		if args[0] != "BLPOP" {
			return pingHandler(args)
		}

		close(received)
		<-release
		return "*-1\r\n"
	}
}

// Never answers.
func silentHandler(args []string) string {
	return ""
}
