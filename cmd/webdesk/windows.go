package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/webdesk/internal/client"
	"github.com/yourusername/webdesk/internal/config"
	"github.com/yourusername/webdesk/internal/output"
	"github.com/yourusername/webdesk/internal/session"
	"github.com/yourusername/webdesk/internal/types"
)

var (
	openLeft, openTop, openWidth, openHeight int

	updateLeft, updateTop, updateWidth, updateHeight int

	showASCII   bool
	showUnicode bool
	showNoIDs   bool
	showWidth   int
	showHeight  int

	pointerWindow string

	focusWrap    bool
	cycleReverse bool
	arrangeGap   int
)

// pingCmd tests server connectivity
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Test connection to the daemon",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		defer c.Close()

		start := time.Now()
		result, err := c.Ping(cmd.Context())
		elapsed := time.Since(start)
		if err != nil {
			return fmt.Errorf("ping failed: %w", err)
		}

		if jsonOutput {
			return printJSON(result)
		}

		successColor.Println("✓ Pong received")
		fmt.Printf("Response time: %v\n", elapsed)
		keyColor.Print("Version: ")
		fmt.Println(result.Version)
		keyColor.Print("Uptime: ")
		fmt.Println(time.Duration(result.Uptime * float64(time.Second)).Round(time.Second))
		keyColor.Print("Windows: ")
		fmt.Println(result.Windows)
		return nil
	},
}

// appsCmd lists the registered applications
var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List launchable applications",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		defer c.Close()

		apps, err := c.Apps(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list apps: %w", err)
		}

		if jsonOutput {
			return printJSON(apps)
		}
		output.PrintAppsTable(cmd.OutOrStdout(), apps)
		return nil
	},
}

// listCmd lists open windows
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List open windows, topmost first",
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := getState(cmd)
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(state.Windows)
		}
		if len(state.Windows) == 0 {
			fmt.Println("No windows open")
			return nil
		}

		output.PrintWindowsTable(cmd.OutOrStdout(), state.Windows)
		fmt.Printf("\nTotal: %d windows\n", len(state.Windows))
		return nil
	},
}

// showCmd draws the desktop
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Draw the desktop in the terminal",
	Long: `Draws the viewport and every visible window, bottom of the stack first.
The focused window has a heavy frame. Minimized windows are listed below.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := getState(cmd)
		if err != nil {
			return err
		}

		opts := output.DefaultVisualizationOptions()
		if showASCII {
			opts.UseUnicode = false
		}
		if showUnicode {
			opts.UseUnicode = true
		}
		if showNoIDs {
			opts.ShowIDs = false
		}
		if showWidth > 0 {
			opts.MaxWidth = showWidth
		}
		if showHeight > 0 {
			opts.MaxHeight = showHeight
		}

		output.PrintVisualization(cmd.OutOrStdout(), state, opts)
		return nil
	},
}

// getCmd shows one window
var getCmd = &cobra.Command{
	Use:   "get <window-id>",
	Short: "Show details of one window",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := getState(cmd)
		if err != nil {
			return err
		}
		id, err := state.ResolveID(args[0])
		if err != nil {
			return err
		}
		win := state.FindWindowByID(id)

		if jsonOutput {
			return printJSON(win)
		}
		output.PrintWindowDetail(cmd.OutOrStdout(), win)
		return nil
	},
}

// dumpCmd dumps the complete state
var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump the complete desktop state as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := getState(cmd)
		if err != nil {
			return err
		}
		return printJSON(state)
	},
}

// openCmd opens a window
var openCmd = &cobra.Command{
	Use:   "open <app-id>",
	Short: "Open a window for an application",
	Long: `Opens a new window on top of the stack and focuses it. The app's default
rectangle is used unless --width and --height are given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var rect *types.Rect
		if openWidth > 0 && openHeight > 0 {
			rect = &types.Rect{Left: openLeft, Top: openTop, Width: openWidth, Height: openHeight}
		}

		c := newClient()
		defer c.Close()

		result, err := c.Open(cmd.Context(), args[0], rect)
		if err != nil {
			return fmt.Errorf("failed to open window: %w", err)
		}
		if !result.OK {
			return fmt.Errorf("unknown app: %s", args[0])
		}
		return printResult(result, "Opened "+result.Window)
	},
}

// transitionCmd builds a command that applies one window transition
func transitionCmd(use, short, verb string, fn func(*client.Client, context.Context, string) (*client.Result, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <window-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			defer c.Close()

			id, err := c.ResolveWindow(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			result, err := fn(c, cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to %s window: %w", use, err)
			}
			return printResult(result, verb+" "+id)
		},
	}
}

var (
	focusCmd    = transitionCmd("focus", "Raise and focus a window", "Focused", (*client.Client).Focus)
	minimizeCmd = transitionCmd("minimize", "Minimize a window", "Minimized", (*client.Client).Minimize)
	restoreCmd  = transitionCmd("restore", "Restore and focus a minimized window", "Restored", (*client.Client).Restore)
	closeCmd    = transitionCmd("close", "Close a window", "Closed", (*client.Client).CloseWindow)
)

// moveCmd drags a window
var moveCmd = &cobra.Command{
	Use:   "move <window-id> <dx> <dy>",
	Short: "Drag a window by an offset",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		dx, dy, err := parseOffset(args[1], args[2])
		if err != nil {
			return err
		}

		c := newClient()
		defer c.Close()

		id, err := c.ResolveWindow(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		result, err := c.Move(cmd.Context(), id, dx, dy)
		if err != nil {
			return fmt.Errorf("failed to move window: %w", err)
		}
		return printResult(result, "Moved "+id)
	},
}

// resizeCmd drags one edge of a window
var resizeCmd = &cobra.Command{
	Use:   "resize <window-id> <edge> <dx> <dy>",
	Short: "Drag an edge or corner of a window",
	Long: `Resizes a window as if its edge were dragged by (dx, dy). Edge is one of
left, right, top, bottom, top-left, top-right, bottom-left, bottom-right.
Dragging a left or top edge keeps the opposite edge in place.`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		edge, ok := types.ParseEdge(args[1])
		if !ok {
			return fmt.Errorf("unknown edge: %s", args[1])
		}
		dx, dy, err := parseOffset(args[2], args[3])
		if err != nil {
			return err
		}

		c := newClient()
		defer c.Close()

		id, err := c.ResolveWindow(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		result, err := c.Resize(cmd.Context(), id, edge, dx, dy)
		if err != nil {
			return fmt.Errorf("failed to resize window: %w", err)
		}
		return printResult(result, "Resized "+id)
	},
}

// updateCmd replaces a window rectangle
var updateCmd = &cobra.Command{
	Use:   "update <window-id>",
	Short: "Set a window's position and size",
	Long:  `Sets any of --left, --top, --width, --height. Unset values keep the current rectangle.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := getState(cmd)
		if err != nil {
			return err
		}
		id, err := state.ResolveID(args[0])
		if err != nil {
			return err
		}

		rect := state.FindWindowByID(id).Rect
		flags := cmd.Flags()
		if flags.Changed("left") {
			rect.Left = updateLeft
		}
		if flags.Changed("top") {
			rect.Top = updateTop
		}
		if flags.Changed("width") {
			rect.Width = updateWidth
		}
		if flags.Changed("height") {
			rect.Height = updateHeight
		}

		c := newClient()
		defer c.Close()

		result, err := c.Update(cmd.Context(), id, rect)
		if err != nil {
			return fmt.Errorf("failed to update window: %w", err)
		}
		return printResult(result, "Updated "+id)
	},
}

// pointerCmd sends a raw pointer event
var pointerCmd = &cobra.Command{
	Use:   "pointer [--window <id>] <down|move|up|leave> <x> <y>",
	Short: "Send a pointer event",
	Long: `Sends one pointer event in viewport coordinates. A press needs --window;
move, up and leave go to the window that owns the open gesture.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		phase, err := session.ParsePhase(args[0])
		if err != nil {
			return err
		}
		x, y, err := parseOffset(args[1], args[2])
		if err != nil {
			return err
		}

		c := newClient()
		defer c.Close()

		id := pointerWindow
		if id != "" {
			if id, err = c.ResolveWindow(cmd.Context(), id); err != nil {
				return err
			}
		}

		result, err := c.Pointer(cmd.Context(), id, phase, types.Point{X: x, Y: y})
		if err != nil {
			return fmt.Errorf("pointer event failed: %w", err)
		}

		if jsonOutput {
			return printJSON(result)
		}
		if !result.OK {
			warnColor.Println("⚠ No window handled the event")
			return nil
		}
		successColor.Printf("✓ %s", phase)
		if result.Region != "" {
			fmt.Printf(" on %s", result.Region)
		}
		if result.Gesture != "" {
			fmt.Printf(" (%s)", result.Gesture)
		}
		if result.Rect != nil {
			fmt.Printf(" -> %s", result.Rect)
		}
		fmt.Println()
		return nil
	},
}

// viewportCmd resizes the viewport
var viewportCmd = &cobra.Command{
	Use:   "viewport <WxH>",
	Short: "Resize the viewport",
	Long:  `Resizes the viewport and pulls every window back into reach.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		size, err := config.ParseSize(args[0])
		if err != nil {
			return err
		}

		c := newClient()
		defer c.Close()

		result, err := c.SetViewport(cmd.Context(), size)
		if err != nil {
			return fmt.Errorf("failed to set viewport: %w", err)
		}
		return printResult(result, "Viewport "+size.String())
	},
}

// blurCmd clears focus
var blurCmd = &cobra.Command{
	Use:   "blur",
	Short: "Clear window focus",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		defer c.Close()

		result, err := c.Blur(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to blur: %w", err)
		}
		return printResult(result, "Focus cleared")
	},
}

// focusDirCmd moves focus spatially
var focusDirCmd = &cobra.Command{
	Use:   "focus-dir <left|right|up|down>",
	Short: "Focus the nearest window in a direction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, ok := types.ParseDirection(args[0])
		if !ok {
			return fmt.Errorf("unknown direction: %s", args[0])
		}

		c := newClient()
		defer c.Close()

		result, err := c.FocusDirection(cmd.Context(), dir, focusWrap)
		if err != nil {
			return fmt.Errorf("failed to move focus: %w", err)
		}
		if !result.OK && !jsonOutput {
			warnColor.Printf("⚠ No window %s\n", dir)
			return nil
		}
		return printResult(result, "Focused "+result.Window)
	},
}

// cycleCmd rotates focus through the stack
var cycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Raise the next window in the stack",
	Long: `Raises the bottom-most visible window, so repeated calls visit every window.
With --reverse, switches back to the window just below the top.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		defer c.Close()

		result, err := c.Cycle(cmd.Context(), cycleReverse)
		if err != nil {
			return fmt.Errorf("failed to cycle focus: %w", err)
		}
		if !result.OK && !jsonOutput {
			warnColor.Println("⚠ No visible windows")
			return nil
		}
		return printResult(result, "Focused "+result.Window)
	},
}

// arrangeCmd tiles or cascades the visible windows
var arrangeCmd = &cobra.Command{
	Use:   "arrange <tile|cascade>",
	Short: "Tile or cascade the visible windows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		defer c.Close()

		n, err := c.Arrange(cmd.Context(), args[0], arrangeGap)
		if err != nil {
			return fmt.Errorf("failed to arrange windows: %w", err)
		}
		if jsonOutput {
			return printJSON(map[string]int{"arranged": n})
		}
		successColor.Print("✓ ")
		fmt.Printf("Arranged %d windows (%s)\n", n, args[0])
		return nil
	},
}

func initWindowFlags() {
	focusDirCmd.Flags().BoolVar(&focusWrap, "wrap", false, "Wrap around to the opposite side")
	cycleCmd.Flags().BoolVar(&cycleReverse, "reverse", false, "Switch back to the previous window")
	arrangeCmd.Flags().IntVar(&arrangeGap, "gap", 0, "Gap between tiles, or the cascade step")

	openCmd.Flags().IntVar(&openLeft, "left", 0, "Left edge")
	openCmd.Flags().IntVar(&openTop, "top", 0, "Top edge")
	openCmd.Flags().IntVar(&openWidth, "width", 0, "Width (with --height, overrides the app default)")
	openCmd.Flags().IntVar(&openHeight, "height", 0, "Height (with --width, overrides the app default)")

	updateCmd.Flags().IntVar(&updateLeft, "left", 0, "Left edge")
	updateCmd.Flags().IntVar(&updateTop, "top", 0, "Top edge")
	updateCmd.Flags().IntVar(&updateWidth, "width", 0, "Width")
	updateCmd.Flags().IntVar(&updateHeight, "height", 0, "Height")

	showCmd.Flags().BoolVar(&showASCII, "ascii", false, "Use ASCII box drawing")
	showCmd.Flags().BoolVar(&showUnicode, "unicode", false, "Use Unicode box drawing")
	showCmd.Flags().BoolVar(&showNoIDs, "no-ids", false, "Hide window ids")
	showCmd.Flags().IntVar(&showWidth, "width", 0, "Canvas width in characters")
	showCmd.Flags().IntVar(&showHeight, "height", 0, "Canvas height in characters")

	pointerCmd.Flags().StringVar(&pointerWindow, "window", "", "Window receiving a press")

	// Offsets may be negative; stop flag parsing at the first argument
	for _, cmd := range []*cobra.Command{moveCmd, resizeCmd, pointerCmd} {
		cmd.Flags().SetInterspersed(false)
	}
}

func parseOffset(xs, ys string) (int, int, error) {
	x, err := strconv.Atoi(xs)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number: %s", xs)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number: %s", ys)
	}
	return x, y, nil
}

// printResult reports a transition. A stale window id is a warning, not an error.
func printResult(result *client.Result, done string) error {
	if jsonOutput {
		return printJSON(result)
	}
	if !result.OK {
		warnColor.Println("⚠ Window no longer exists")
		return nil
	}
	successColor.Print("✓ ")
	fmt.Print(done)
	if result.Rect != nil {
		fmt.Printf(" -> %s", result.Rect)
	}
	fmt.Println()
	return nil
}
