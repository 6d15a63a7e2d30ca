package resp

import (
	"strconv"
	"strings"
)

// Kind tags the variant held by a Response. The values are the RESP type
// bytes, except for Null which has no byte of its own in RESP2.
type Kind byte

const (
	SimpleString Kind = '+'
	Error        Kind = '-'
	Integer      Kind = ':'
	BulkString   Kind = '$'
	Array        Kind = '*'
	Null         Kind = '_'
)

func (k Kind) String() string {
	switch k {
	case SimpleString:
		return "simple string"
	case Error:
		return "error"
	case Integer:
		return "integer"
	case BulkString:
		return "bulk string"
	case Array:
		return "array"
	case Null:
		return "null"
	}

	return "unknown(" + strconv.Itoa(int(k)) + ")"
}

// Response is one decoded reply frame. Which fields are meaningful depends
// on Kind: Str for SimpleString, Error and BulkString; Int for Integer;
// Elems for Array.
type Response struct {
	Kind  Kind
	Str   []byte
	Int   int64
	Elems []Response
}

// NewSimpleString creates a status reply.
func NewSimpleString(s string) Response {
	return Response{Kind: SimpleString, Str: []byte(s)}
}

// NewError creates an error reply.
func NewError(s string) Response {
	return Response{Kind: Error, Str: []byte(s)}
}

// NewInteger creates an integer reply.
func NewInteger(n int64) Response {
	return Response{Kind: Integer, Int: n}
}

// NewBulkString creates a bulk string reply.
func NewBulkString(b []byte) Response {
	return Response{Kind: BulkString, Str: b}
}

// NewArray creates an array reply.
func NewArray(elems ...Response) Response {
	if elems == nil {
		elems = []Response{}
	}

	return Response{Kind: Array, Elems: elems}
}

// NewNull creates a null reply.
func NewNull() Response {
	return Response{Kind: Null}
}

// IsError reports whether the server rejected the command.
func (r Response) IsError() bool {
	return r.Kind == Error
}

func (r Response) String() string {
	sb := &strings.Builder{}
	r.write(sb, "")
	return sb.String()
}

func (r Response) write(sb *strings.Builder, indent string) {
	switch r.Kind {
	case SimpleString:
		sb.Write(r.Str)
	case Error:
		sb.WriteString("(error) ")
		sb.Write(r.Str)
	case Integer:
		sb.WriteString("(integer) ")
		sb.WriteString(strconv.FormatInt(r.Int, 10))
	case BulkString:
		sb.WriteString(strconv.Quote(string(r.Str)))
	case Null:
		sb.WriteString("(nil)")
	case Array:
		if len(r.Elems) == 0 {
			sb.WriteString("(empty array)")
			return
		}

		for i, elem := range r.Elems {
			if i > 0 {
				sb.WriteString("\n")
				sb.WriteString(indent)
			}

			prefix := strconv.Itoa(i+1) + ") "
			sb.WriteString(prefix)
			elem.write(sb, indent+strings.Repeat(" ", len(prefix)))
		}
	}
}
