package resp

import "bytes"

// Scanner finds the end of a response frame without decoding it. It keeps
// its place between calls, so a frame that arrives over many reads is
// walked once in total rather than once per read.
type Scanner struct {
	maxDepth int
	pos      int
	open     []int64
}

// NewScanner creates a scanner enforcing the given array nesting limit
// (DefaultMaxDepth when non-positive).
func NewScanner(maxDepth int) *Scanner {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	return &Scanner{maxDepth: maxDepth}
}

// Scan looks for the end of the frame at the front of buf. Between calls
// buf may only grow at the end; its start must stay at the start of the
// frame. Scan returns the length of the frame once it is complete, after
// which the scanner is ready for the next frame. Otherwise it returns
// ErrIncomplete, or a *ProtocolError for input Decode would also reject.
func (s *Scanner) Scan(buf []byte) (int, error) {
	for {
		end, err := s.element(buf)
		if err != nil {
			if err != ErrIncomplete {
				s.Reset()
			}

			return 0, err
		}

		s.pos = end

		if s.closeElement() {
			n := s.pos
			s.Reset()
			return n, nil
		}
	}
}

// Reset discards any partially scanned frame.
func (s *Scanner) Reset() {
	s.pos = 0
	s.open = s.open[:0]
}

// Scans the element header at the current position. Returns the offset
// just past a scalar element, or just past the header of a non-empty array
// after recording its element count.
func (s *Scanner) element(buf []byte) (int, error) {
	for {
		line, next, err := readLine(buf, s.pos)
		if err != nil {
			return 0, err
		}

		if len(line) == 0 {
			return 0, protocolErrorf("empty frame header")
		}

		switch Kind(line[0]) {
		case SimpleString, Error:
			return next, nil

		case Integer:
			if _, err := parseInt(line[1:]); err != nil {
				return 0, err
			}

			return next, nil

		case BulkString:
			n, err := parseLength(line[1:], maxBulkLength)
			if err != nil {
				return 0, err
			}

			if n < 0 {
				return next, nil
			}

			end := next + int(n)
			if end+len(crlf) > len(buf) {
				return 0, ErrIncomplete
			}

			if !bytes.Equal(buf[end:end+len(crlf)], crlf) {
				return 0, protocolErrorf("bulk string not terminated by CRLF")
			}

			return end + len(crlf), nil

		case Array:
			n, err := parseLength(line[1:], -1)
			if err != nil {
				return 0, err
			}

			if n < 0 {
				return next, nil
			}

			if len(s.open)+1 > s.maxDepth {
				return 0, protocolErrorf("array nesting exceeds maximum depth of %d", s.maxDepth)
			}

			if n == 0 {
				return next, nil
			}

			s.open = append(s.open, n)
			s.pos = next
			continue
		}

		return 0, protocolErrorf("unknown frame type %q", line[0])
	}
}

// Counts a finished element against the arrays enclosing it and reports
// whether the outermost frame is now complete.
func (s *Scanner) closeElement() bool {
	for len(s.open) > 0 {
		top := len(s.open) - 1
		if s.open[top]--; s.open[top] > 0 {
			return false
		}

		s.open = s.open[:top]
	}

	return true
}
