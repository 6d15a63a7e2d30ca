package redpipe

import (
	"context"
	"net"
	"time"

	"github.com/efritz/redpipe/iface"
)

type (
	// TransportFunc opens the byte stream a connection runs over.
	TransportFunc func(ctx context.Context) (net.Conn, error)

	// DialFunc creates a ready connection to Redis or returns an error.
	DialFunc func(ctx context.Context) (iface.Conn, error)
)

// NetTransport dials the given TCP address.
func NetTransport(addr string) TransportFunc {
	return func(ctx context.Context) (net.Conn, error) {
		dialer := &net.Dialer{}
		return dialer.DialContext(ctx, "tcp", addr)
	}
}

// NewDialer creates a DialFunc for NewPool over the given transport.
func NewDialer(transport TransportFunc, configs ...ConfigFunc) DialFunc {
	return makeDialer(transport, newConfig(configs))
}

// makeDialer wraps a transport into connections that are only handed out
// once their handshake has completed.
func makeDialer(transport TransportFunc, config *clientConfig) DialFunc {
	return func(ctx context.Context) (iface.Conn, error) {
		t, err := transport(ctx)
		if err != nil {
			return nil, err
		}

		conn := newConn(config)
		conn.start(t)

		if _, err := conn.Connected().Wait(ctx); err != nil {
			conn.shutdown(err)
			return nil, err
		}

		return conn, nil
	}
}

func contextWithTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}

	return context.WithTimeout(context.Background(), timeout)
}
