package filehost

import (
	"io"
	"log/slog"
	"net"
	"strings"
	"time"
)

// SplitTokens splits every value on whitespace and concatenates the results,
// so "-f a.txt -f /a.txt" and -f "a.txt /a.txt" give the same tokens.
func SplitTokens(values []string) []string {
	var tokens []string
	for _, v := range values {
		tokens = append(tokens, strings.Fields(v)...)
	}
	return tokens
}

// closeConn shuts down both directions before releasing conn.
func closeConn(conn net.Conn, log *slog.Logger) {
	type halfCloser interface {
		CloseRead() error
		CloseWrite() error
	}
	if hc, ok := conn.(halfCloser); ok {
		if err := hc.CloseWrite(); err != nil {
			log.Debug("Failed to close write side", "error", err)
		}
		if err := hc.CloseRead(); err != nil {
			log.Debug("Failed to close read side", "error", err)
		}
	}
	if err := conn.Close(); err != nil {
		log.Debug("Failed to close connection", "error", err)
	}
}

// Fetch sends req to host:port, closes the write side so the server sees the
// end of the request, and returns everything sent back until the server
// closes the connection, along with how long that took.
func Fetch(host string, port string, req []byte) ([]byte, time.Duration, error) {
	start := time.Now()
	conn, err := net.Dial(TCP, net.JoinHostPort(host, port))
	if err != nil {
		return nil, 0, err
	}
	defer conn.Close()

	if _, err := conn.Write(req); err != nil {
		return nil, time.Since(start), err
	}
	if tc, ok := conn.(*net.TCPConn); ok {
		if err := tc.CloseWrite(); err != nil {
			return nil, time.Since(start), err
		}
	}

	resp, err := io.ReadAll(conn)
	return resp, time.Since(start), err
}
