// Package eventloop multiplexes one listening socket and all client
// connections on a single goroutine using poll(2). The loop owns the
// connection registry outright: connections are registered on accept and
// torn down on disconnect, protocol violation, or quit, always from the
// same goroutine, so neither the registry nor the per-connection sessions
// need locking.
package eventloop

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sys/unix"

	"github.com/gateline/gateline/internal/logging"
	"github.com/gateline/gateline/internal/server/command"
	"github.com/gateline/gateline/internal/server/session"
	"github.com/gateline/gateline/internal/server/users"
)

const (
	readBufferSize = 1024
	welcomeBanner  = "Welcome! Please log in.\n"
)

// conn is one registry entry: the socket, its session, and whatever bytes
// of an unfinished line arrived in earlier reads.
type conn struct {
	fd      int
	id      string
	addr    string
	sess    *session.Session
	partial []byte
}

// Server is the event loop together with its connection registry.
type Server struct {
	listenFD    int
	port        int
	conns       map[int]*conn
	creds       *users.Store
	pollTimeout time.Duration
	logger      logging.Logger
}

// New binds the listening socket and returns a Server ready to Run.
func New(addr string, creds *users.Store, pollTimeout time.Duration, logger logging.Logger) (*Server, error) {
	fd, err := listen(addr)
	if err != nil {
		return nil, err
	}

	port, err := boundPort(fd)
	if err != nil {
		unix.Close(fd)
		return nil, err
	}

	return &Server{
		listenFD:    fd,
		port:        port,
		conns:       make(map[int]*conn),
		creds:       creds,
		pollTimeout: pollTimeout,
		logger:      logger.With("module", "eventloop"),
	}, nil
}

// Port reports the bound listening port. Useful when the configured
// address asked for port 0.
func (s *Server) Port() int {
	return s.port
}

// Run drives the loop until ctx is cancelled. Each iteration polls the
// listener plus every registered connection, accepts at most one new
// connection, and performs one bounded read per ready client. The poll
// timeout only bounds how quickly cancellation is noticed.
func (s *Server) Run(ctx context.Context) error {
	defer s.closeAll()

	s.logger.Info(ctx, "event loop started", "port", s.port)

	timeoutMs := int(s.pollTimeout.Milliseconds())
	if timeoutMs <= 0 {
		timeoutMs = 250
	}

	readBuf := make([]byte, readBufferSize)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "event loop stopping", "open_connections", len(s.conns))
			return nil
		default:
		}

		pollFDs := make([]unix.PollFd, 0, len(s.conns)+1)
		pollFDs = append(pollFDs, unix.PollFd{Fd: int32(s.listenFD), Events: unix.POLLIN})
		for fd := range s.conns {
			pollFDs = append(pollFDs, unix.PollFd{Fd: int32(fd), Events: unix.POLLIN})
		}

		n, err := unix.Poll(pollFDs, timeoutMs)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return fmt.Errorf("poll: %w", err)
		}
		if n == 0 {
			continue
		}

		for _, p := range pollFDs {
			if p.Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) == 0 {
				continue
			}
			if int(p.Fd) == s.listenFD {
				s.acceptOne(ctx)
				continue
			}
			// The conn may have been torn down earlier in this sweep.
			if c, ok := s.conns[int(p.Fd)]; ok {
				s.serveReady(ctx, c, readBuf)
			}
		}
	}
}

// acceptOne admits a single pending connection, registers it in
// AwaitingUsername, and sends the welcome banner.
func (s *Server) acceptOne(ctx context.Context) {
	fd, sa, err := unix.Accept(s.listenFD)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return
		}
		s.logger.Warn(ctx, "accept failed", "error", err)
		return
	}

	if err := unix.SetNonblock(fd, true); err != nil {
		s.logger.Warn(ctx, "set nonblocking failed", "error", err)
		unix.Close(fd)
		return
	}

	c := &conn{
		fd:   fd,
		id:   uuid.NewString(),
		addr: sockaddrString(sa),
		sess: session.New(),
	}
	s.conns[fd] = c

	s.logger.Info(ctx, "client connected", "conn", c.id, "addr", c.addr)

	if err := s.write(c, welcomeBanner); err != nil {
		s.teardown(ctx, c, "banner write failed")
	}
}

// serveReady performs the one bounded read for a ready connection and feeds
// any completed lines through the session or the dispatcher.
func (s *Server) serveReady(ctx context.Context, c *conn, readBuf []byte) {
	n, err := unix.Read(c.fd, readBuf)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return
		}
		s.teardown(ctx, c, "read failed")
		return
	}
	if n == 0 {
		// Peer closed. Silent teardown, whatever state the session is in.
		s.teardown(ctx, c, "client disconnected")
		return
	}

	c.partial = append(c.partial, readBuf[:n]...)

	for {
		i := bytes.IndexByte(c.partial, '\n')
		if i < 0 {
			return
		}
		line := strings.TrimRight(string(c.partial[:i]), "\r")
		c.partial = c.partial[i+1:]

		if s.handleLine(ctx, c, line) {
			return
		}
	}
}

// handleLine routes one complete line and applies the resulting
// disposition. It reports whether the connection was closed.
func (s *Server) handleLine(ctx context.Context, c *conn, line string) bool {
	var res command.Result

	if c.sess.State() == session.Authenticated {
		res = command.Dispatch(line)
	} else {
		res = c.sess.Handle(line, s.creds)
		if c.sess.State() == session.Authenticated {
			s.logger.Info(ctx, "client authenticated", "conn", c.id, "user", c.sess.Username())
		}
	}

	if res.Reply != "" && res.Disposition != command.CloseSilently {
		if err := s.write(c, res.Reply+"\n"); err != nil {
			s.teardown(ctx, c, "write failed")
			return true
		}
	}

	switch res.Disposition {
	case command.CloseAfterReply:
		s.teardown(ctx, c, "protocol violation")
		return true
	case command.CloseSilently:
		s.teardown(ctx, c, "quit")
		return true
	default:
		return false
	}
}

// write sends the whole payload, retrying short writes. Replies are small
// and sockets are drained by the peer, so EAGAIN here is transient.
func (s *Server) write(c *conn, payload string) error {
	data := []byte(payload)
	for len(data) > 0 {
		n, err := unix.Write(c.fd, data)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
				continue
			}
			return err
		}
		data = data[n:]
	}
	return nil
}

// teardown closes the socket and removes the registry entry. Only the loop
// goroutine calls it, so the registry never needs locking.
func (s *Server) teardown(ctx context.Context, c *conn, reason string) {
	unix.Close(c.fd)
	delete(s.conns, c.fd)
	s.logger.Info(ctx, "connection closed", "conn", c.id, "addr", c.addr, "reason", reason)
}

func (s *Server) closeAll() {
	for fd := range s.conns {
		unix.Close(fd)
		delete(s.conns, fd)
	}
	unix.Close(s.listenFD)
}
