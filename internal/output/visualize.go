package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/sys/unix"

	"github.com/yourusername/webdesk/internal/models"
)

// VisualizationOptions controls the appearance of the visualization
type VisualizationOptions struct {
	UseUnicode bool
	ShowIDs    bool
	MaxWidth   int
	MaxHeight  int
}

// DefaultVisualizationOptions sizes the canvas to the terminal, keeping a
// few rows for the header and footer
func DefaultVisualizationOptions() VisualizationOptions {
	width, height := getTerminalSize()
	return VisualizationOptions{
		UseUnicode: supportsUnicode(),
		ShowIDs:    true,
		MaxWidth:   width,
		MaxHeight:  height - 4,
	}
}

// VisualizeDesktop renders the viewport and every non-minimized window,
// bottom of the z-order first. The focused window gets a heavy frame.
func VisualizeDesktop(state *models.State, opts VisualizationOptions) string {
	sc := NewScalingContext(state.Viewport, opts.MaxWidth, opts.MaxHeight)
	canvas := NewCanvas(sc.TermWidth, sc.TermHeight, opts.UseUnicode)
	canvas.DrawBox(0, 0, sc.TermWidth, sc.TermHeight, canvas.Style(false))

	for _, win := range state.Windows {
		if win.IsMinimized {
			continue
		}
		drawWindow(canvas, sc, win, opts.ShowIDs)
	}

	return canvas.String() + "\n"
}

func drawWindow(canvas *Canvas, sc *ScalingContext, win *models.Window, showID bool) {
	x, y, w, h, ok := sc.RectToTerminal(win.Rect)
	if !ok {
		return
	}

	style := canvas.Style(win.IsFocused)
	canvas.FillRect(x, y, w, h, ' ')
	canvas.DrawBox(x, y, w, h, style)

	inner := w - 2
	if h < 3 || inner < 1 {
		return
	}

	controls := "_"
	if win.Closable {
		controls = "_ x"
	}
	label := createWindowLabel(win, showID)
	if room := inner - len(controls) - 1; room > 0 {
		canvas.DrawText(x+1, y+1, truncate(label, room))
		canvas.DrawTextRight(x+1, y+1, inner, controls)
	} else {
		canvas.DrawText(x+1, y+1, truncate(label, inner))
	}

	if h >= 4 {
		canvas.DrawSeparator(x, y+2, w, style)
	}
	if win.FooterText != "" && h >= 6 {
		canvas.DrawText(x+1, y+h-2, truncate(win.FooterText, inner))
	}
}

// createWindowLabel creates a title bar label for a window
func createWindowLabel(win *models.Window, showID bool) string {
	title := win.Title
	if title == "" {
		title = win.AppID
	}
	if showID {
		return fmt.Sprintf("%s [%s]", title, win.ShortID())
	}
	return title
}

// getTerminalSize returns the current terminal dimensions
func getTerminalSize() (width, height int) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

// supportsUnicode checks if the terminal supports Unicode
func supportsUnicode() bool {
	lang := os.Getenv("LANG")
	lcAll := os.Getenv("LC_ALL")

	return strings.Contains(lang, "UTF-8") || strings.Contains(lcAll, "UTF-8")
}

// PrintVisualization writes a header, the desktop drawing and a footer
// listing focus and minimized windows
func PrintVisualization(w io.Writer, state *models.State, opts VisualizationOptions) {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen, color.Bold)

	visible := len(state.Visible())
	bold.Fprintf(w, "Viewport %s", state.Viewport)
	fmt.Fprintf(w, " (%d windows, %d minimized)\n", len(state.Windows), len(state.Windows)-visible)

	cyan.Fprint(w, VisualizeDesktop(state, opts))

	if f := state.GetFocusedWindow(); f != nil {
		fmt.Fprint(w, "Focused: ")
		green.Fprintln(w, createWindowLabel(f, opts.ShowIDs))
	} else {
		fmt.Fprintln(w, "Focused: none")
	}

	var minimized []string
	for _, win := range state.Windows {
		if win.IsMinimized {
			minimized = append(minimized, createWindowLabel(win, opts.ShowIDs))
		}
	}
	if len(minimized) > 0 {
		fmt.Fprintf(w, "Minimized: %s\n", strings.Join(minimized, ", "))
	}
}
