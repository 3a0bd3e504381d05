package filehost

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

type Request struct {
	Method string // e.g. "GET"
	URL    string // e.g. "/path/to/a/file"

	// Rest holds whatever followed the URL on the request line,
	// usually the protocol, e.g. "HTTP/1.1". It is not validated.
	Rest string
}

// ReadRequest reads everything the client sends until the deadline passes or
// the client closes its side. At most max bytes are kept; the rest is read
// and discarded so no unread input is left on the socket when it is closed.
// Running into the deadline is expected and is not reported. Any other error
// is returned together with the bytes kept before it.
func ReadRequest(conn net.Conn, timeout time.Duration, max int64) ([]byte, error) {
	if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, err
	}

	buf, err := io.ReadAll(io.LimitReader(conn, max))
	if err == nil && int64(len(buf)) == max {
		_, err = io.Copy(io.Discard, conn)
	}
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return buf, nil
	}
	if errors.Is(err, net.ErrClosed) {
		return buf, nil
	}
	return buf, err
}

// ParseRequestLine parses the first line of buf, which must contain at least
// a method and a URL separated by a single space. The URL is the field
// between the first and the second space.
func ParseRequestLine(buf []byte) (*Request, error) {
	if len(buf) == 0 {
		return nil, fmt.Errorf("%w: empty request", ErrMalformedRequest)
	}

	line, _, _ := strings.Cut(string(buf), "\n")
	line = strings.TrimSuffix(line, "\r")

	method, rest, ok := strings.Cut(line, " ")
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMalformedRequest, line)
	}
	url, rest, _ := strings.Cut(rest, " ")
	if url == "" {
		return nil, fmt.Errorf("%w: missing URL in %q", ErrMalformedRequest, line)
	}

	return &Request{Method: method, URL: url, Rest: rest}, nil
}
