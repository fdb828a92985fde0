package client

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"time"

	"github.com/yourusername/webdesk/internal/logging"
	"github.com/yourusername/webdesk/internal/models"
)

// Connection manages the Unix domain socket connection to the daemon
type Connection struct {
	socketPath string
	conn       net.Conn
	reader     *bufio.Reader
	timeout    time.Duration
}

// NewConnection creates a new connection instance
func NewConnection(socketPath string, timeout time.Duration) *Connection {
	return &Connection{
		socketPath: socketPath,
		timeout:    timeout,
	}
}

// Connect establishes the Unix domain socket connection
func (c *Connection) Connect() error {
	var err error
	c.conn, err = net.Dial("unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("failed to connect to socket %s: %w", c.socketPath, err)
	}
	c.reader = bufio.NewReader(c.conn)
	return nil
}

// Close closes the connection
func (c *Connection) Close() error {
	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		c.reader = nil
		return err
	}
	return nil
}

// SendRequest sends a request and waits for the matching response. Event
// envelopes received meanwhile are logged and skipped.
func (c *Connection) SendRequest(ctx context.Context, req *models.MessageEnvelope) (*models.Response, error) {
	// Apply timeout if not already set
	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	data, err := req.Marshal()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	deadline, _ := ctx.Deadline()
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return nil, fmt.Errorf("failed to set write deadline: %w", err)
	}
	if _, err := c.conn.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write request: %w", err)
	}

	// Read response with context cancellation support
	respChan := make(chan *models.Response, 1)
	errChan := make(chan error, 1)

	go func() {
		if err := c.conn.SetReadDeadline(deadline); err != nil {
			errChan <- fmt.Errorf("failed to set read deadline: %w", err)
			return
		}

		for {
			line, err := c.reader.ReadBytes('\n')
			if err != nil {
				errChan <- fmt.Errorf("failed to read response: %w", err)
				return
			}

			envelope, err := models.ParseEnvelope(line)
			if err != nil {
				errChan <- err
				return
			}

			switch envelope.Type {
			case models.TypeEvent:
				logging.Debug().Str("event", envelope.Event.EventType).Msg("skipping event")
				continue
			case models.TypeResponse:
				if envelope.Response.ID != req.Request.ID && envelope.Response.ID != "" {
					errChan <- fmt.Errorf("response id %q does not match request %q", envelope.Response.ID, req.Request.ID)
					return
				}
				respChan <- envelope.Response
				return
			default:
				errChan <- fmt.Errorf("expected response, got %s", envelope.Type)
				return
			}
		}
	}()

	select {
	case <-ctx.Done():
		// Unblock the reader goroutine
		c.conn.SetReadDeadline(time.Now())
		return nil, fmt.Errorf("request cancelled or timed out: %w", ctx.Err())
	case err := <-errChan:
		return nil, err
	case resp := <-respChan:
		return resp, nil
	}
}

// IsConnected returns true if the connection is established
func (c *Connection) IsConnected() bool {
	return c.conn != nil
}
