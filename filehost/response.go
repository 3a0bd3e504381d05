package filehost

import (
	"errors"
	"fmt"
	"io"
)

const (
	StatusOK                  = 200
	StatusBadRequest          = 400
	StatusNotFound            = 404
	StatusInternalServerError = 500

	// ChunkSize bounds how much of a file is held in memory while streaming.
	ChunkSize = 1024
)

var StatusCodeText = map[int]string{
	StatusOK:                  "OK",
	StatusBadRequest:          "Bad Request",
	StatusNotFound:            "Not Found",
	StatusInternalServerError: "Internal Server Error",
}

// ErrClientWrite wraps failures to write to the connection.
var ErrClientWrite = errors.New("failed to write to client")

type Response struct {
	Proto      string // e.g. "HTTP/1.1"
	StatusCode int    // e.g. 200

	// Body is streamed after the status line. It is nil for error responses.
	Body io.Reader
}

func NewResponse(statusCode int, body io.Reader) *Response {
	return &Response{Proto: "HTTP/1.1", StatusCode: statusCode, Body: body}
}

// StatusLine returns the full status block, including the blank line that
// would normally end the headers. No headers are ever sent.
func (res *Response) StatusLine() string {
	return fmt.Sprintf("%v %v %v\r\n\r\n", res.Proto, res.StatusCode, StatusCodeText[res.StatusCode])
}

// Write writes the status line and then copies Body to w in ChunkSize
// pieces. It returns the number of body bytes written. Anything already
// written stays written when the body fails part way.
func (res *Response) Write(w io.Writer) (int64, error) {
	if _, err := io.WriteString(w, res.StatusLine()); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrClientWrite, err)
	}

	if res.Body == nil {
		return 0, nil
	}

	var written int64
	buf := make([]byte, ChunkSize)
	for {
		n, rerr := res.Body.Read(buf)
		if n > 0 {
			if _, err := w.Write(buf[:n]); err != nil {
				return written, fmt.Errorf("%w: %w", ErrClientWrite, err)
			}
			written += int64(n)
		}
		if rerr == io.EOF {
			return written, nil
		}
		if rerr != nil {
			return written, fmt.Errorf("%w: %w", ErrFileRead, rerr)
		}
	}
}
