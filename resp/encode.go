package resp

import "strconv"

var crlf = []byte("\r\n")

// Encode serializes the request as a RESP array of bulk strings.
func Encode(r Request) []byte {
	return AppendRequest(nil, r)
}

// AppendRequest appends the encoded request to dst.
func AppendRequest(dst []byte, r Request) []byte {
	dst = appendHeader(dst, '*', int64(len(r.args)))
	for _, arg := range r.args {
		dst = appendBulk(dst, arg)
	}

	return dst
}

// AppendResponse appends the encoded response to dst. Null is written in
// its RESP2 bulk form.
func AppendResponse(dst []byte, r Response) []byte {
	switch r.Kind {
	case SimpleString, Error:
		dst = append(dst, byte(r.Kind))
		dst = append(dst, r.Str...)
		return append(dst, crlf...)

	case Integer:
		return appendHeader(dst, ':', r.Int)

	case BulkString:
		return appendBulk(dst, r.Str)

	case Array:
		dst = appendHeader(dst, '*', int64(len(r.Elems)))
		for _, elem := range r.Elems {
			dst = AppendResponse(dst, elem)
		}

		return dst
	}

	return appendHeader(dst, '$', -1)
}

func appendHeader(dst []byte, prefix byte, n int64) []byte {
	dst = append(dst, prefix)
	dst = strconv.AppendInt(dst, n, 10)
	return append(dst, crlf...)
}

func appendBulk(dst, b []byte) []byte {
	dst = appendHeader(dst, '$', int64(len(b)))
	dst = append(dst, b...)
	return append(dst, crlf...)
}
