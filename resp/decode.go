package resp

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

const (
	// DefaultMaxDepth is the array nesting depth allowed when the caller
	// passes a non-positive limit to Decode.
	DefaultMaxDepth = 32

	maxBulkLength = 512 * 1024 * 1024
)

type (
	// ProtocolError reports a frame that does not follow the RESP grammar.
	// A connection that reads one can no longer be trusted to correlate
	// responses with requests.
	ProtocolError struct {
		Reason string
	}
)

// ErrIncomplete is returned by Decode when the buffer does not yet hold a
// whole frame.
var ErrIncomplete = errors.New("incomplete frame")

func (e *ProtocolError) Error() string {
	return "protocol error: " + e.Reason
}

func protocolErrorf(format string, args ...interface{}) error {
	return &ProtocolError{Reason: fmt.Sprintf(format, args...)}
}

// IsProtocolError reports whether err is or wraps a *ProtocolError.
func IsProtocolError(err error) bool {
	var perr *ProtocolError
	return errors.As(err, &perr)
}

// Decode reads one response frame from the front of buf. It returns the
// response and the number of bytes it occupied, or ErrIncomplete (with zero
// bytes consumed) if more input is required. Arrays nested deeper than
// maxDepth produce a *ProtocolError. The returned response never aliases buf.
func Decode(buf []byte, maxDepth int) (Response, int, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	r, n, err := decode(buf, 0, 0, maxDepth)
	if err != nil {
		return Response{}, 0, err
	}

	return r, n, nil
}

func decode(buf []byte, pos, depth, maxDepth int) (Response, int, error) {
	line, next, err := readLine(buf, pos)
	if err != nil {
		return Response{}, 0, err
	}

	if len(line) == 0 {
		return Response{}, 0, protocolErrorf("empty frame header")
	}

	switch Kind(line[0]) {
	case SimpleString, Error:
		return Response{Kind: Kind(line[0]), Str: append([]byte{}, line[1:]...)}, next, nil

	case Integer:
		n, err := parseInt(line[1:])
		if err != nil {
			return Response{}, 0, err
		}

		return NewInteger(n), next, nil

	case BulkString:
		n, err := parseLength(line[1:], maxBulkLength)
		if err != nil {
			return Response{}, 0, err
		}

		if n < 0 {
			return NewNull(), next, nil
		}

		end := next + int(n)
		if end+len(crlf) > len(buf) {
			return Response{}, 0, ErrIncomplete
		}

		if !bytes.Equal(buf[end:end+len(crlf)], crlf) {
			return Response{}, 0, protocolErrorf("bulk string not terminated by CRLF")
		}

		return NewBulkString(append([]byte{}, buf[next:end]...)), end + len(crlf), nil

	case Array:
		n, err := parseLength(line[1:], -1)
		if err != nil {
			return Response{}, 0, err
		}

		if n < 0 {
			return NewNull(), next, nil
		}

		if depth+1 > maxDepth {
			return Response{}, 0, protocolErrorf("array nesting exceeds maximum depth of %d", maxDepth)
		}

		size := n
		if size > 1024 {
			size = 1024
		}

		elems := make([]Response, 0, size)
		for i := int64(0); i < n; i++ {
			elem, elemNext, err := decode(buf, next, depth+1, maxDepth)
			if err != nil {
				return Response{}, 0, err
			}

			elems = append(elems, elem)
			next = elemNext
		}

		return NewArray(elems...), next, nil
	}

	return Response{}, 0, protocolErrorf("unknown frame type %q", line[0])
}

// readLine returns the header line starting at pos without its CRLF and
// the offset just past the terminator.
func readLine(buf []byte, pos int) ([]byte, int, error) {
	i := bytes.IndexByte(buf[pos:], '\n')
	if i < 0 {
		return nil, 0, ErrIncomplete
	}

	end := pos + i
	if end == pos || buf[end-1] != '\r' {
		return nil, 0, protocolErrorf("frame header not terminated by CRLF")
	}

	return buf[pos : end-1], end + 1, nil
}

func parseInt(b []byte) (int64, error) {
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return 0, protocolErrorf("invalid integer %q", b)
	}

	return n, nil
}

// parseLength parses a bulk or array length. Only -1 is allowed as a
// negative value; limit bounds the length when positive.
func parseLength(b []byte, limit int64) (int64, error) {
	n, err := parseInt(b)
	if err != nil {
		return 0, err
	}

	if n < -1 {
		return 0, protocolErrorf("invalid length %d", n)
	}

	if limit > 0 && n > limit {
		return 0, protocolErrorf("length %d exceeds limit of %d", n, limit)
	}

	return n, nil
}
