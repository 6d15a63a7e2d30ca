package resp

import (
	"errors"
	"fmt"
	"strconv"
)

// Request is an ordered sequence of binary-safe arguments, the first of
// which names the command. A Request does not change once built.
type Request struct {
	args [][]byte
}

// ErrEmptyRequest is returned when a request carries no arguments.
var ErrEmptyRequest = errors.New("request has no arguments")

// NewRequest creates a request from a command name and its arguments.
// Arguments are formatted the same way Redis clients usually do it:
// strings and byte slices are sent as-is, numbers and booleans in their
// decimal form, nil as an empty string, and everything else through
// fmt.Sprint.
func NewRequest(command string, args ...interface{}) Request {
	parts := make([][]byte, 0, len(args)+1)
	parts = append(parts, []byte(command))

	for _, arg := range args {
		parts = append(parts, formatArg(arg))
	}

	return Request{args: parts}
}

// NewRawRequest creates a request from already-encoded arguments. The
// arguments are copied.
func NewRawRequest(args ...[]byte) Request {
	parts := make([][]byte, len(args))
	for i, arg := range args {
		parts[i] = append([]byte(nil), arg...)
	}

	return Request{args: parts}
}

// Command returns the first argument of the request.
func (r Request) Command() string {
	if len(r.args) == 0 {
		return ""
	}

	return string(r.args[0])
}

// Len returns the number of arguments (including the command).
func (r Request) Len() int {
	return len(r.args)
}

// Arg returns a copy of the i-th argument.
func (r Request) Arg(i int) []byte {
	return append([]byte(nil), r.args[i]...)
}

// Validate returns ErrEmptyRequest for a request with no arguments.
func (r Request) Validate() error {
	if len(r.args) == 0 {
		return ErrEmptyRequest
	}

	return nil
}

func (r Request) String() string {
	s := ""
	for i, arg := range r.args {
		if i > 0 {
			s += " "
		}

		s += strconv.Quote(string(arg))
	}

	return s
}

func formatArg(arg interface{}) []byte {
	switch v := arg.(type) {
	case string:
		return []byte(v)
	case []byte:
		return append([]byte(nil), v...)
	case int:
		return strconv.AppendInt(nil, int64(v), 10)
	case int8:
		return strconv.AppendInt(nil, int64(v), 10)
	case int16:
		return strconv.AppendInt(nil, int64(v), 10)
	case int32:
		return strconv.AppendInt(nil, int64(v), 10)
	case int64:
		return strconv.AppendInt(nil, v, 10)
	case uint:
		return strconv.AppendUint(nil, uint64(v), 10)
	case uint8:
		return strconv.AppendUint(nil, uint64(v), 10)
	case uint16:
		return strconv.AppendUint(nil, uint64(v), 10)
	case uint32:
		return strconv.AppendUint(nil, uint64(v), 10)
	case uint64:
		return strconv.AppendUint(nil, v, 10)
	case float32:
		return strconv.AppendFloat(nil, float64(v), 'g', -1, 32)
	case float64:
		return strconv.AppendFloat(nil, v, 'g', -1, 64)
	case bool:
		if v {
			return []byte("1")
		}

		return []byte("0")
	case nil:
		return []byte{}
	default:
		return []byte(fmt.Sprint(v))
	}
}
