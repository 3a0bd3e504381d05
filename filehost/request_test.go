package filehost

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequestLine(t *testing.T) {
	tests := []struct {
		name    string
		request string
		want    *Request
	}{
		{
			name:    "http request line",
			request: "GET /a.txt HTTP/1.1\r\nHost: example\r\n\r\n",
			want:    &Request{Method: "GET", URL: "/a.txt", Rest: "HTTP/1.1"},
		},
		{
			name:    "bare newline",
			request: "GET /a.txt HTTP/1.1\nHost: example\n",
			want:    &Request{Method: "GET", URL: "/a.txt", Rest: "HTTP/1.1"},
		},
		{
			name:    "two tokens",
			request: "GET /a.txt",
			want:    &Request{Method: "GET", URL: "/a.txt"},
		},
		{
			name:    "extra tokens stay in rest",
			request: "FETCH /a.txt please now\r\n",
			want:    &Request{Method: "FETCH", URL: "/a.txt", Rest: "please now"},
		},
		{
			name:    "url taken verbatim",
			request: "GET a.txt?x=1 HTTP/1.1\r\n",
			want:    &Request{Method: "GET", URL: "a.txt?x=1", Rest: "HTTP/1.1"},
		},
		{name: "empty", request: ""},
		{name: "one token", request: "GET"},
		{name: "one token with crlf", request: "GET\r\n/a.txt HTTP/1.1\r\n"},
		{name: "blank first line", request: "\r\nGET /a.txt HTTP/1.1\r\n"},
		{name: "double space", request: "GET  /a.txt HTTP/1.1\r\n"},
		{name: "trailing space only", request: "GET \r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseRequestLine([]byte(tt.request))
			if tt.want == nil {
				assert.ErrorIs(t, err, ErrMalformedRequest)
				assert.Nil(t, req)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, req)
		})
	}
}

// tcpPair returns both ends of a loopback TCP connection.
func tcpPair(t *testing.T) (client net.Conn, server net.Conn) {
	t.Helper()

	ln, err := net.Listen(TCP, "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			close(accepted)
			return
		}
		accepted <- conn
	}()

	client, err = net.Dial(TCP, ln.Addr().String())
	require.NoError(t, err)
	server, ok := <-accepted
	require.True(t, ok, "accept failed")

	t.Cleanup(func() {
		client.Close()
		server.Close()
	})
	return client, server
}

func TestReadRequestStopsAtDeadline(t *testing.T) {
	client, server := tcpPair(t)

	_, err := client.Write([]byte("GET /a.txt HTTP/1.1\r\n"))
	require.NoError(t, err)

	start := time.Now()
	buf, err := ReadRequest(server, 100*time.Millisecond, DefaultMaxRequestBytes)
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, "GET /a.txt HTTP/1.1\r\n", string(buf))
	assert.GreaterOrEqual(t, elapsed, 90*time.Millisecond)
	assert.Less(t, elapsed, 2*time.Second)
}

func TestReadRequestSilentClient(t *testing.T) {
	_, server := tcpPair(t)

	start := time.Now()
	buf, err := ReadRequest(server, 100*time.Millisecond, DefaultMaxRequestBytes)

	require.NoError(t, err)
	assert.Empty(t, buf)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestReadRequestPeerClose(t *testing.T) {
	client, server := tcpPair(t)

	_, err := client.Write([]byte("GET /a.txt HTTP/1.1\r\n\r\n"))
	require.NoError(t, err)
	require.NoError(t, client.(*net.TCPConn).CloseWrite())

	start := time.Now()
	buf, err := ReadRequest(server, 5*time.Second, DefaultMaxRequestBytes)

	require.NoError(t, err)
	assert.Equal(t, "GET /a.txt HTTP/1.1\r\n\r\n", string(buf))
	assert.Less(t, time.Since(start), 2*time.Second, "EOF ends the read before the deadline")
}

func TestReadRequestLimitDrainsExcess(t *testing.T) {
	client, server := tcpPair(t)

	_, err := client.Write([]byte("GET /a.txt HTTP/1.1\r\nHost: example\r\n\r\n"))
	require.NoError(t, err)
	require.NoError(t, client.(*net.TCPConn).CloseWrite())

	buf, err := ReadRequest(server, 5*time.Second, 8)
	require.NoError(t, err)
	assert.Equal(t, "GET /a.t", string(buf))

	// Everything past the limit was consumed up to the client's EOF.
	n, err := server.Read(make([]byte, 1))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
}
