package redpipe

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/efritz/backoff"
	"github.com/efritz/glock"
	"github.com/efritz/overcurrent"
	"github.com/ghodss/yaml"

	"github.com/efritz/redpipe/resp"
)

type (
	clientConfig struct {
		password       string
		database       int
		connectTimeout time.Duration
		writeTimeout   time.Duration
		callTimeout    time.Duration
		drainTimeout   time.Duration
		maxDepth       int
		poolCapacity   int
		breakerFunc    BreakerFunc
		backoff        backoff.Backoff
		clock          glock.Clock
		borrowTimeout  *time.Duration
		logger         Logger
	}

	// ConfigFunc is a function used to initialize a new client, pool,
	// or connection.
	ConfigFunc func(*clientConfig)

	// BreakerFunc bridges the interface between the Call function of
	// an overcurrent breaker and an overcurrent registry.
	BreakerFunc func(overcurrent.BreakerFunc) error

	// FileConfig is the on-disk form of the client options.
	FileConfig struct {
		Addr           string `json:"addr"`
		Password       string `json:"password"`
		Database       int    `json:"database"`
		PoolCapacity   int    `json:"poolCapacity"`
		MaxDepth       int    `json:"maxDepth"`
		ConnectTimeout string `json:"connectTimeout"`
		WriteTimeout   string `json:"writeTimeout"`
		CallTimeout    string `json:"callTimeout"`
		DrainTimeout   string `json:"drainTimeout"`
		BorrowTimeout  string `json:"borrowTimeout"`
	}
)

func newConfig(configs []ConfigFunc) *clientConfig {
	config := &clientConfig{
		password:       "",
		database:       0,
		connectTimeout: time.Second * 5,
		writeTimeout:   time.Second * 5,
		callTimeout:    0,
		drainTimeout:   time.Second * 5,
		maxDepth:       resp.DefaultMaxDepth,
		poolCapacity:   10,
		breakerFunc:    noopBreakerFunc,
		backoff:        backoff.NewExponentialBackoff(time.Millisecond*100, time.Second*10),
		clock:          glock.NewRealClock(),
		borrowTimeout:  nil,
		logger:         &defaultLogger{},
	}

	for _, f := range configs {
		f(config)
	}

	return config
}

func noopBreakerFunc(f overcurrent.BreakerFunc) error {
	return f(context.Background())
}

// WithPassword sets the password sent with AUTH on every new connection
// (default is "", which skips AUTH).
func WithPassword(password string) ConfigFunc {
	return func(c *clientConfig) { c.password = password }
}

// WithDatabase sets the database index selected on every new connection
// (default is 0).
func WithDatabase(database int) ConfigFunc {
	return func(c *clientConfig) { c.database = database }
}

// WithConnectTimeout sets the connect timeout for new connections
// (default is 5 seconds).
func WithConnectTimeout(timeout time.Duration) ConfigFunc {
	return func(c *clientConfig) { c.connectTimeout = timeout }
}

// WithWriteTimeout sets the deadline of each socket write (default is
// 5 seconds). Zero disables the deadline.
func WithWriteTimeout(timeout time.Duration) ConfigFunc {
	return func(c *clientConfig) { c.writeTimeout = timeout }
}

// WithCallTimeout sets the maximum time a call may wait for its response.
// A timeout closes the connection, failing every other pending call on it.
// Zero (the default) disables call timeouts.
func WithCallTimeout(timeout time.Duration) ConfigFunc {
	return func(c *clientConfig) { c.callTimeout = timeout }
}

// WithDrainTimeout sets how long a closing connection waits for pending
// calls before failing them (default is 5 seconds). Zero waits forever.
func WithDrainTimeout(timeout time.Duration) ConfigFunc {
	return func(c *clientConfig) { c.drainTimeout = timeout }
}

// WithMaxDepth sets the deepest array nesting accepted from the server
// (default is 32).
func WithMaxDepth(depth int) ConfigFunc {
	return func(c *clientConfig) { c.maxDepth = depth }
}

// WithPoolCapacity sets the maximum number of concurrent connections
// that can be open at once (default is 10).
func WithPoolCapacity(capacity int) ConfigFunc {
	return func(c *clientConfig) { c.poolCapacity = capacity }
}

// WithBreaker sets the circuit breaker instance to use around new
// connections. The default uses a no-op circuit breaker.
func WithBreaker(breaker overcurrent.CircuitBreaker) ConfigFunc {
	return func(c *clientConfig) { c.breakerFunc = breaker.Call }
}

// WithBreakerRegistry sets the overcurrent registry to use and the
// name of the circuit breaker config to use around new connections.
// The default uses a no-op circuit breaker.
func WithBreakerRegistry(registry overcurrent.Registry, name string) ConfigFunc {
	return func(c *clientConfig) {
		c.breakerFunc = func(f overcurrent.BreakerFunc) error {
			return registry.Call(name, f, nil)
		}
	}
}

// WithDialBackoff sets the backoff used to pause between consecutive
// failed dials (default is exponential between 100ms and 10s).
func WithDialBackoff(b backoff.Backoff) ConfigFunc {
	return func(c *clientConfig) { c.backoff = b }
}

// WithBorrowTimeout sets the maximum time to wait for a connection when
// the pool is at capacity (default is to wait forever).
func WithBorrowTimeout(timeout time.Duration) ConfigFunc {
	return func(c *clientConfig) { c.borrowTimeout = &timeout }
}

// WithLogger sets the logger instance (the default will use Go's
// builtin logging library).
func WithLogger(logger Logger) ConfigFunc {
	return func(c *clientConfig) { c.logger = logger }
}

func withClock(clock glock.Clock) ConfigFunc {
	return func(c *clientConfig) { c.clock = clock }
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseConfig(data)
}

// ParseConfig parses a YAML config document.
func ParseConfig(data []byte) (*FileConfig, error) {
	config := &FileConfig{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// ConfigFuncs converts the file settings into options. Unset values keep
// their defaults.
func (c *FileConfig) ConfigFuncs() ([]ConfigFunc, error) {
	configs := []ConfigFunc{}

	if c.Password != "" {
		configs = append(configs, WithPassword(c.Password))
	}

	if c.Database != 0 {
		configs = append(configs, WithDatabase(c.Database))
	}

	if c.PoolCapacity != 0 {
		configs = append(configs, WithPoolCapacity(c.PoolCapacity))
	}

	if c.MaxDepth != 0 {
		configs = append(configs, WithMaxDepth(c.MaxDepth))
	}

	durations := []struct {
		name  string
		value string
		set   func(time.Duration) ConfigFunc
	}{
		{"connectTimeout", c.ConnectTimeout, WithConnectTimeout},
		{"writeTimeout", c.WriteTimeout, WithWriteTimeout},
		{"callTimeout", c.CallTimeout, WithCallTimeout},
		{"drainTimeout", c.DrainTimeout, WithDrainTimeout},
		{"borrowTimeout", c.BorrowTimeout, WithBorrowTimeout},
	}

	for _, d := range durations {
		if d.value == "" {
			continue
		}

		duration, err := time.ParseDuration(d.value)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.name, err)
		}

		configs = append(configs, d.set(duration))
	}

	return configs, nil
}
