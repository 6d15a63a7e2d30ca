package redpipe

import (
	"github.com/gomodule/redigo/redis"

	"github.com/efritz/redpipe/iface"
	"github.com/efritz/redpipe/resp"
)

type (
	// Client is a goroutine-safe, minimal, and pooled Redis client.
	Client = iface.Client

	// Command is a struct that bundles the command and the command arguments
	// together to be used in a transaction.
	Command = iface.Command

	client struct {
		dispatcher *Dispatcher
		logger     Logger
	}
)

// NewClient creates a new Client backed by a pool of connections to the
// given address.
func NewClient(addr string, configs ...ConfigFunc) Client {
	config := newConfig(configs)

	return &client{
		dispatcher: NewPooledDispatcher(newPool(makeDialer(NetTransport(addr), config), config)),
		logger:     config.logger,
	}
}

// NewDirectClient creates a Client that sends every command on the given
// connection.
func NewDirectClient(conn iface.Conn, configs ...ConfigFunc) Client {
	return &client{
		dispatcher: NewDirectDispatcher(conn),
		logger:     newConfig(configs).logger,
	}
}

// NewCommand creates a Command instance.
func NewCommand(command string, args ...interface{}) Command {
	return Command{
		Command: command,
		Args:    args,
	}
}

//
// Client Implementation

func (c *client) Close() error {
	_, err := c.dispatcher.Close().Result()
	return err
}

func (c *client) Do(command string, args ...interface{}) (interface{}, error) {
	return toReply(c.dispatcher.Send(resp.NewRequest(command, args...)).Result())
}

func (c *client) Pipeline() Pipeline {
	return newPipeline(c)
}

func (c *client) Transaction(commands ...Command) (interface{}, error) {
	reqs := make([]resp.Request, 0, len(commands)+2)
	reqs = append(reqs, resp.NewRequest("MULTI"))
	for _, command := range commands {
		reqs = append(reqs, resp.NewRequest(command.Command, command.Args...))
	}
	reqs = append(reqs, resp.NewRequest("EXEC"))

	results := c.dispatcher.SendBatch(reqs)

	// Queued replies are only checked for transport errors; a command
	// rejected at queue time makes EXEC itself fail with EXECABORT.
	for _, result := range results[:len(results)-1] {
		if _, err := result.Result(); err != nil {
			return nil, err
		}
	}

	return toReply(results[len(results)-1].Result())
}

//
// Client Helper Functions

// Runs a batch of commands and converts every reply. Error replies are
// kept inline as redis.Error values.
func (c *client) pipeline(commands []Command) ([]interface{}, error) {
	reqs := make([]resp.Request, 0, len(commands))
	for _, command := range commands {
		reqs = append(reqs, resp.NewRequest(command.Command, command.Args...))
	}

	results := c.dispatcher.SendBatch(reqs)
	replies := make([]interface{}, 0, len(results))

	for _, result := range results {
		r, err := result.Result()
		if err != nil {
			return nil, err
		}

		replies = append(replies, convertReply(r))
	}

	return replies, nil
}

// Converts a response into the shapes produced by redigo so that its
// conversion helpers (redis.String, redis.Int64, ...) can be applied. As
// with redigo, a top-level error reply is returned as both value and error.
func toReply(r resp.Response, err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}

	reply := convertReply(r)
	if rerr, ok := reply.(redis.Error); ok {
		return reply, rerr
	}

	return reply, nil
}

func convertReply(r resp.Response) interface{} {
	switch r.Kind {
	case resp.SimpleString:
		return string(r.Str)
	case resp.Error:
		return redis.Error(r.Str)
	case resp.Integer:
		return r.Int
	case resp.BulkString:
		return r.Str
	case resp.Array:
		elems := make([]interface{}, len(r.Elems))
		for i, elem := range r.Elems {
			elems[i] = convertReply(elem)
		}

		return elems
	}

	return nil
}
