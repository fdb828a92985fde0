// Package server exposes a session over a Unix domain socket. Each line on a
// connection is one request envelope; each reply is one response envelope.
package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/yourusername/webdesk/internal/logging"
	"github.com/yourusername/webdesk/internal/models"
	"github.com/yourusername/webdesk/internal/session"
)

// Version is reported by ping
var Version = "dev"

// maxLine bounds a single request line
const maxLine = 1 << 20

// Server handles socket requests from clients
type Server struct {
	socketPath string
	session    *session.Session
	startTime  time.Time
	methods    map[string]handlerFunc

	mu       sync.Mutex
	listener net.Listener
	conns    map[*conn]struct{}
	wg       sync.WaitGroup
}

// conn serializes writes so responses and broadcast events never interleave
type conn struct {
	net.Conn
	writeMu sync.Mutex
}

func (c *conn) send(env *models.MessageEnvelope) error {
	data, err := env.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_, err = c.Write(data)
	return err
}

// New creates a server for sess listening on socketPath
func New(socketPath string, sess *session.Session) *Server {
	s := &Server{
		socketPath: socketPath,
		session:    sess,
		startTime:  time.Now(),
		conns:      make(map[*conn]struct{}),
	}
	s.methods = s.routes()
	return s
}

// SocketPath returns the path the server listens on
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Serve listens until ctx is cancelled, then closes every connection and
// waits for the handlers to return
func (s *Server) Serve(ctx context.Context) error {
	// Remove a stale socket left by a previous run
	if err := os.Remove(s.socketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove stale socket: %w", err)
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create socket: %w", err)
	}
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	logging.Info().Str("socket", s.socketPath).Msg("server listening")

	go func() {
		<-ctx.Done()
		s.shutdown()
	}()

	for {
		nc, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			logging.Warn().Err(err).Msg("accept error")
			continue
		}

		c := &conn{Conn: nc}
		s.mu.Lock()
		if ctx.Err() != nil {
			s.mu.Unlock()
			nc.Close()
			break
		}
		s.conns[c] = struct{}{}
		s.mu.Unlock()

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(ctx, c)
		}()
	}

	s.wg.Wait()
	os.Remove(s.socketPath)
	logging.Info().Msg("server stopped")
	return nil
}

func (s *Server) shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	for c := range s.conns {
		c.Close()
	}
}

// handleConnection serves requests on one connection until it closes
func (s *Server) handleConnection(ctx context.Context, c *conn) {
	defer func() {
		c.Close()
		s.mu.Lock()
		delete(s.conns, c)
		s.mu.Unlock()
	}()

	scanner := bufio.NewScanner(c)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var resp *models.MessageEnvelope
		env, err := models.ParseEnvelope(line)
		switch {
		case err != nil:
			resp = models.NewErrorResponse("", models.CodeParseError, "invalid request: %v", err)
		case env.Type != models.TypeRequest:
			resp = models.NewErrorResponse("", models.CodeInvalidRequest, "expected request, got %s", env.Type)
		default:
			resp = s.Handle(ctx, env.Request)
		}

		if err := c.send(resp); err != nil {
			logging.Warn().Err(err).Msg("failed to send response")
			return
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		logging.Debug().Err(err).Msg("connection read error")
	}
}

// Broadcast sends an event to every connected client
func (s *Server) Broadcast(eventType string, data map[string]interface{}) {
	env := models.NewEvent(eventType, data)

	s.mu.Lock()
	conns := make([]*conn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		if err := c.send(env); err != nil {
			logging.Debug().Err(err).Str("event", eventType).Msg("broadcast failed")
		}
	}
}
