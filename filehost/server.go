package filehost

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	TCP = "tcp"

	DefaultReadTimeout     = 100 * time.Millisecond
	DefaultMaxRequestBytes = 64 << 10

	maxAcceptDelay = time.Second
)

type Server struct {
	// Addrs lists the TCP addresses to listen on, each in the form
	// "host:port". Every address gets its own listener and accept loop.
	Addrs []string

	// Routes maps the paths clients ask for to files on disk. It must not
	// be modified once the server is started.
	Routes *RouteTable

	// ReadTimeout bounds how long a client may take to send its request.
	// Zero means DefaultReadTimeout.
	ReadTimeout time.Duration

	// MaxRequestBytes caps how much of a request is read. Zero means
	// DefaultMaxRequestBytes.
	MaxRequestBytes int64

	Logger *slog.Logger
}

// Listen binds addr. Failures are returned as *BindError.
func Listen(addr string) (net.Listener, error) {
	ln, err := net.Listen(TCP, addr)
	if err != nil {
		return nil, newBindError(addr, err)
	}
	return ln, nil
}

// ListenAndServe listens on every address in s.Addrs and serves each one
// independently. A bind failure stops only its own endpoint. It returns once
// all endpoints have stopped, with the first error encountered.
func (s *Server) ListenAndServe() error {
	if s.Routes == nil || s.Routes.Len() == 0 {
		return &ConfigError{Err: ErrNoRoutes}
	}
	if len(s.Addrs) == 0 {
		return &ConfigError{Err: ErrNoAddresses}
	}

	var g errgroup.Group
	for _, addr := range s.Addrs {
		g.Go(func() error {
			ln, err := Listen(addr)
			if err != nil {
				s.logger().Error(err.Error(), "addr", addr)
				return err
			}
			return s.Serve(ln)
		})
	}
	return g.Wait()
}

// Serve accepts connections on ln and handles each one in its own
// goroutine. It only returns once ln is closed.
func (s *Server) Serve(ln net.Listener) error {
	// Ensure the listener is closed on exit
	defer func() {
		if err := ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			s.logger().Warn("Failed to close listener", "addr", ln.Addr(), "error", err)
		}
	}()
	s.logger().Info("Listening", "addr", ln.Addr())

	var delay time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return err
			}

			// The connection is lost but the listener keeps going.
			if delay == 0 {
				delay = 5 * time.Millisecond
			} else {
				delay = min(2*delay, maxAcceptDelay)
			}
			s.logger().Error("Failed to accept connection, continuing", "addr", ln.Addr(), "error", err, "retry_in", delay)
			time.Sleep(delay)
			continue
		}
		delay = 0

		go s.HandleConnection(conn)
	}
}

// HandleConnection serves a single request on conn and closes it.
func (s *Server) HandleConnection(conn net.Conn) {
	log := s.logger().With("conn", uuid.NewString(), "remote", conn.RemoteAddr().String())
	defer closeConn(conn, log)

	buf, err := ReadRequest(conn, s.readTimeout(), s.maxRequestBytes())
	if err != nil {
		log.Debug("Request read ended early", "error", err)
	}
	log.Debug("Received request", "bytes", len(buf), "request", string(buf))

	req, err := ParseRequestLine(buf)
	if err != nil {
		log.Warn("Bad request", "error", err)
		// Nothing was asked, so nothing is answered.
		if len(buf) > 0 {
			s.respondError(conn, StatusBadRequest, log)
		}
		return
	}

	local, ok := s.Routes.Lookup(req.URL)
	if !ok {
		log.Warn("Not found", "error", fmt.Errorf("%w: %q", ErrNotFound, req.URL))
		s.respondError(conn, StatusNotFound, log)
		return
	}
	log = log.With("path", req.URL, "file", local)
	log.Info("Requested")

	// Open before anything is written so a missing file never gets a 200.
	file, err := openRegular(local)
	if err != nil {
		log.Error("No such file", "error", err)
		if errors.Is(err, fs.ErrNotExist) {
			s.respondError(conn, StatusNotFound, log)
		} else {
			s.respondError(conn, StatusInternalServerError, log)
		}
		return
	}
	defer file.Close()

	n, err := NewResponse(StatusOK, file).Write(conn)
	if err != nil {
		log.Error("Stream aborted", "error", err, "bytes", n)
		return
	}
	log.Info("Successfully sent", "bytes", n)
}

func (s *Server) respondError(conn net.Conn, statusCode int, log *slog.Logger) {
	if _, err := NewResponse(statusCode, nil).Write(conn); err != nil {
		log.Debug("Failed to send error response", "status", statusCode, "error", err)
	}
}

// openRegular opens path for reading, refusing directories.
func openRegular(path string) (*os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileOpen, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("%w: %w", ErrFileOpen, err)
	}
	if info.IsDir() {
		file.Close()
		return nil, fmt.Errorf("%w: %s is a directory: %w", ErrFileOpen, path, fs.ErrNotExist)
	}

	return file, nil
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s *Server) readTimeout() time.Duration {
	if s.ReadTimeout > 0 {
		return s.ReadTimeout
	}
	return DefaultReadTimeout
}

func (s *Server) maxRequestBytes() int64 {
	if s.MaxRequestBytes > 0 {
		return s.MaxRequestBytes
	}
	return DefaultMaxRequestBytes
}
