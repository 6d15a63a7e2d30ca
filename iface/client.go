package iface

// Client is a goroutine-safe, minimal, and pooled Redis client.
type Client interface {
	// Close will close all open connections to the remote Redis server.
	Close() error

	// Do runs the command on the remote Redis server and returns its raw
	// response. Replies have the same shapes as those of the redigo
	// package, so its conversion helpers apply.
	Do(command string, args ...interface{}) (interface{}, error)

	// Pipeline returns a builder object to which commands can be attached.
	// All commands in the pipeline are written to one connection before any
	// response is read. A pipeline does NOT guarantee atomicity.
	Pipeline() Pipeline

	// Transaction runs several commands in a single connection. MULTI/EXEC
	// commands are added implicitly by the client.
	Transaction(commands ...Command) (interface{}, error)
}

// Command is a struct that bundles the command and the command arguments
// together to be used in a transaction.
type Command struct {
	Command string
	Args    []interface{}
}

// Pipeline wraps an ordered sequence of commands to be sent back to back
// on one connection. This reduces latency around communication with the
// remote server.
type Pipeline interface {
	// Add will attach a command to this pipeline. This command is
	// not sent to the remote server until Run is invoked.
	Add(command string, args ...interface{})

	// Run will send all commands attached to this pipeline and return
	// a slice of the results of each command.
	Run() ([]interface{}, error)
}
