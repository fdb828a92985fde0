package client

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/webdesk/internal/models"
	"github.com/yourusername/webdesk/internal/session"
	"github.com/yourusername/webdesk/internal/types"
)

const (
	DefaultTimeout = 10 * time.Second
	SocketEnv      = "WEBDESK_SOCKET"
)

// DefaultSocketPath returns $WEBDESK_SOCKET, or webdesk.sock in the
// runtime directory (falling back to the temp directory)
func DefaultSocketPath() string {
	if p := os.Getenv(SocketEnv); p != "" {
		return p
	}
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "webdesk.sock")
}

// Client talks to a webdesk daemon
type Client struct {
	conn *Connection
}

// NewClient creates a new client
func NewClient(socketPath string, timeout time.Duration) *Client {
	if socketPath == "" {
		socketPath = DefaultSocketPath()
	}
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		conn: NewConnection(socketPath, timeout),
	}
}

// Connect establishes connection to the server
func (c *Client) Connect() error {
	return c.conn.Connect()
}

// Close closes the connection
func (c *Client) Close() error {
	return c.conn.Close()
}

// request is a helper to send a request and get the response
func (c *Client) request(ctx context.Context, method string, params map[string]interface{}) (*models.Response, error) {
	if !c.conn.IsConnected() {
		if err := c.Connect(); err != nil {
			return nil, err
		}
	}

	req := models.NewRequest(uuid.New().String(), method, params)
	return c.conn.SendRequest(ctx, req)
}

// CallMethod sends a generic RPC request with the given method and parameters
func (c *Client) CallMethod(ctx context.Context, method string, params map[string]interface{}) (map[string]interface{}, error) {
	resp, err := c.request(ctx, method, params)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp.Result, nil
}

// call sends a request and decodes the result into out
func (c *Client) call(ctx context.Context, method string, params map[string]interface{}, out interface{}) error {
	result, err := c.CallMethod(ctx, method, params)
	if err != nil {
		return err
	}
	return models.Decode(result, out)
}

// Result is the reply to a window or desktop transition. OK is false when
// the window no longer exists or the app is unknown.
type Result struct {
	OK       bool        `json:"ok"`
	Window   string      `json:"window,omitempty"`
	Rect     *types.Rect `json:"rect,omitempty"`
	Viewport *types.Size `json:"viewport,omitempty"`
}

// PingResult is the reply to ping
type PingResult struct {
	Pong    bool    `json:"pong"`
	Uptime  float64 `json:"uptime"`
	Windows int     `json:"windows"`
	Version string  `json:"version"`
}

// Ping sends a ping request to test connectivity
func (c *Client) Ping(ctx context.Context) (*PingResult, error) {
	var out PingResult
	if err := c.call(ctx, "ping", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Dump retrieves the complete desktop state
func (c *Client) Dump(ctx context.Context) (*models.State, error) {
	result, err := c.CallMethod(ctx, "desktop.dump", map[string]interface{}{})
	if err != nil {
		return nil, err
	}
	return models.ParseState(result)
}

// Apps lists the registered applications
func (c *Client) Apps(ctx context.Context) ([]*models.App, error) {
	var out struct {
		Apps []*models.App `json:"apps"`
	}
	if err := c.call(ctx, "apps.list", nil, &out); err != nil {
		return nil, err
	}
	return out.Apps, nil
}

// Open opens a window for appID. rect may be nil to use the app default.
func (c *Client) Open(ctx context.Context, appID string, rect *types.Rect) (*Result, error) {
	params := map[string]interface{}{"app": appID}
	if rect != nil {
		params["rect"] = rect
	}
	return c.transition(ctx, "window.open", params)
}

// Focus raises and focuses a window
func (c *Client) Focus(ctx context.Context, id string) (*Result, error) {
	return c.transition(ctx, "window.focus", map[string]interface{}{"window": id})
}

// Minimize minimizes a window
func (c *Client) Minimize(ctx context.Context, id string) (*Result, error) {
	return c.transition(ctx, "window.minimize", map[string]interface{}{"window": id})
}

// Restore restores and focuses a minimized window
func (c *Client) Restore(ctx context.Context, id string) (*Result, error) {
	return c.transition(ctx, "window.restore", map[string]interface{}{"window": id})
}

// CloseWindow closes a window
func (c *Client) CloseWindow(ctx context.Context, id string) (*Result, error) {
	return c.transition(ctx, "window.close", map[string]interface{}{"window": id})
}

// Move drags a window by (dx, dy)
func (c *Client) Move(ctx context.Context, id string, dx, dy int) (*Result, error) {
	return c.transition(ctx, "window.move", map[string]interface{}{"window": id, "dx": dx, "dy": dy})
}

// Resize moves one edge of a window by the pointer offset (dx, dy)
func (c *Client) Resize(ctx context.Context, id string, edge types.Edge, dx, dy int) (*Result, error) {
	return c.transition(ctx, "window.resize", map[string]interface{}{
		"window": id, "edge": edge.String(), "dx": dx, "dy": dy,
	})
}

// Update replaces a window's rectangle
func (c *Client) Update(ctx context.Context, id string, rect types.Rect) (*Result, error) {
	return c.transition(ctx, "window.update", map[string]interface{}{"window": id, "rect": rect})
}

// Blur gives focus to the desktop itself
func (c *Client) Blur(ctx context.Context) (*Result, error) {
	return c.transition(ctx, "desktop.blur", nil)
}

// SetViewport changes the viewport size
func (c *Client) SetViewport(ctx context.Context, size types.Size) (*Result, error) {
	return c.transition(ctx, "viewport.set", map[string]interface{}{"width": size.Width, "height": size.Height})
}

// Pointer sends one pointer event. id may be empty for move/up/leave.
func (c *Client) Pointer(ctx context.Context, id string, phase session.Phase, p types.Point) (*session.PointerResult, error) {
	var out session.PointerResult
	params := map[string]interface{}{"window": id, "phase": phase.String(), "x": p.X, "y": p.Y}
	if err := c.call(ctx, "window.pointer", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FocusDirection focuses the nearest visible window in direction
func (c *Client) FocusDirection(ctx context.Context, dir types.Direction, wrap bool) (*Result, error) {
	return c.transition(ctx, "window.focusDirection", map[string]interface{}{"direction": dir.String(), "wrap": wrap})
}

// Cycle raises the next visible window. reverse switches back to the
// previously focused one instead.
func (c *Client) Cycle(ctx context.Context, reverse bool) (*Result, error) {
	return c.transition(ctx, "window.cycle", map[string]interface{}{"reverse": reverse})
}

// Arrange tiles or cascades the visible windows and returns how many moved
func (c *Client) Arrange(ctx context.Context, mode string, gap int) (int, error) {
	var out struct {
		Arranged int `json:"arranged"`
	}
	if err := c.call(ctx, "desktop.arrange", map[string]interface{}{"mode": mode, "gap": gap}, &out); err != nil {
		return 0, err
	}
	return out.Arranged, nil
}

func (c *Client) transition(ctx context.Context, method string, params map[string]interface{}) (*Result, error) {
	var out Result
	if err := c.call(ctx, method, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResolveWindow expands a window id prefix using a fresh dump
func (c *Client) ResolveWindow(ctx context.Context, prefix string) (string, error) {
	state, err := c.Dump(ctx)
	if err != nil {
		return "", fmt.Errorf("dump failed: %w", err)
	}
	return state.ResolveID(prefix)
}
