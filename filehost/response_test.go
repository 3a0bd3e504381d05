package filehost

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseStatusLine(t *testing.T) {
	assert.Equal(t, "HTTP/1.1 200 OK\r\n\r\n", NewResponse(StatusOK, nil).StatusLine())
	assert.Equal(t, "HTTP/1.1 400 Bad Request\r\n\r\n", NewResponse(StatusBadRequest, nil).StatusLine())
	assert.Equal(t, "HTTP/1.1 404 Not Found\r\n\r\n", NewResponse(StatusNotFound, nil).StatusLine())
	assert.Equal(t, "HTTP/1.1 500 Internal Server Error\r\n\r\n", NewResponse(StatusInternalServerError, nil).StatusLine())
}

// chunkRecorder records the size of every write.
type chunkRecorder struct {
	bytes.Buffer
	sizes []int
}

func (c *chunkRecorder) Write(p []byte) (int, error) {
	c.sizes = append(c.sizes, len(p))
	return c.Buffer.Write(p)
}

func TestResponseWriteStreamsInChunks(t *testing.T) {
	body := strings.Repeat("0123456789", 250) // 2500 bytes

	var w chunkRecorder
	n, err := NewResponse(StatusOK, strings.NewReader(body)).Write(&w)
	require.NoError(t, err)

	assert.Equal(t, int64(len(body)), n)
	assert.Equal(t, "HTTP/1.1 200 OK\r\n\r\n"+body, w.String())
	for _, size := range w.sizes[1:] {
		assert.LessOrEqual(t, size, ChunkSize)
	}
}

func TestResponseWriteEmptyBody(t *testing.T) {
	var w bytes.Buffer
	n, err := NewResponse(StatusOK, strings.NewReader("")).Write(&w)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, "HTTP/1.1 200 OK\r\n\r\n", w.String())
}

// failingReader returns data once and then fails.
type failingReader struct {
	data string
	done bool
}

func (f *failingReader) Read(p []byte) (int, error) {
	if f.done {
		return 0, errors.New("disk on fire")
	}
	f.done = true
	return copy(p, f.data), nil
}

func TestResponseWriteBodyFailureKeepsPartialData(t *testing.T) {
	var w bytes.Buffer
	n, err := NewResponse(StatusOK, &failingReader{data: "partial"}).Write(&w)

	assert.ErrorIs(t, err, ErrFileRead)
	assert.Equal(t, int64(len("partial")), n)
	assert.Equal(t, "HTTP/1.1 200 OK\r\n\r\npartial", w.String())
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, io.ErrClosedPipe
}

func TestResponseWriteClientFailure(t *testing.T) {
	_, err := NewResponse(StatusOK, strings.NewReader("x")).Write(brokenWriter{})
	assert.ErrorIs(t, err, ErrClientWrite)
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}
