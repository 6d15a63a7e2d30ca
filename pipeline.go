package redpipe

import "github.com/efritz/redpipe/iface"

type (
	// Pipeline wraps an ordered sequence of commands to be written back
	// to back on one connection. This reduces latency around communication
	// with the remote server.
	Pipeline = iface.Pipeline

	pipeline struct {
		client   *client
		commands []Command
	}
)

func newPipeline(client *client) Pipeline {
	return &pipeline{
		client:   client,
		commands: []Command{},
	}
}

// Add will attach a command to this pipeline. This command is
// not sent to the remote server until Run is invoked.
func (p *pipeline) Add(command string, args ...interface{}) {
	p.commands = append(p.commands, NewCommand(command, args...))
}

// Run will send all commands attached to this pipeline and return a
// slice of the results of each command.
func (p *pipeline) Run() ([]interface{}, error) {
	return p.client.pipeline(p.commands)
}
