package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/yourusername/webdesk/internal/models"
	"github.com/yourusername/webdesk/internal/script"
)

const check = "✓"

// PrintWindowsTable prints windows top of the z-order first
func PrintWindowsTable(w io.Writer, windows []*models.Window) {
	table := tablewriter.NewWriter(w)
	table.Header("Z", "ID", "Title", "App", "Frame", "Focused", "Minimized")

	for i := len(windows) - 1; i >= 0; i-- {
		win := windows[i]
		table.Append(
			strconv.Itoa(win.Z),
			win.ShortID(),
			truncate(win.Title, 30),
			truncate(win.AppID, 20),
			win.FormatFrame(),
			mark(win.IsFocused),
			mark(win.IsMinimized),
		)
	}

	table.Render()
}

// PrintAppsTable prints registry entries in registration order
func PrintAppsTable(w io.Writer, apps []*models.App) {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Title", "Default Frame", "Min Size", "Closable", "Content")

	for _, app := range apps {
		table.Append(
			app.ID,
			truncate(app.Title, 30),
			app.DefaultRect.String(),
			app.MinSize.String(),
			mark(app.Closable),
			app.Content,
		)
	}

	table.Render()
}

// PrintStepsTable prints the outcome of a script run
func PrintStepsTable(w io.Writer, steps []script.StepResult) {
	table := tablewriter.NewWriter(w)
	table.Header("#", "Op", "Window", "OK", "Detail")

	for _, st := range steps {
		table.Append(
			strconv.Itoa(st.Index),
			st.Op,
			truncate(st.Window, 20),
			mark(st.OK),
			truncate(st.Detail, 50),
		)
	}

	table.Render()
}

// PrintWindowDetail prints detailed information about a single window
func PrintWindowDetail(w io.Writer, win *models.Window) {
	fmt.Fprintf(w, "Window ID: %s\n", win.ID)
	fmt.Fprintf(w, "Title: %s\n", win.Title)
	fmt.Fprintf(w, "Application: %s\n", win.AppID)
	fmt.Fprintf(w, "Position: (%d, %d)\n", win.Rect.Left, win.Rect.Top)
	fmt.Fprintf(w, "Size: %dx%d\n", win.Rect.Width, win.Rect.Height)
	fmt.Fprintf(w, "Frame: %s\n", win.FormatFrame())
	fmt.Fprintf(w, "Min Size: %s\n", win.MinSize)
	fmt.Fprintf(w, "Z: %d\n", win.Z)
	fmt.Fprintf(w, "Focused: %v\n", win.IsFocused)
	fmt.Fprintf(w, "Minimized: %v\n", win.IsMinimized)
	fmt.Fprintf(w, "Closable: %v\n", win.Closable)
	if win.BarColor != "" {
		fmt.Fprintf(w, "Bar Color: %s\n", win.BarColor)
	}
	if win.FooterText != "" {
		fmt.Fprintf(w, "Footer: %s\n", win.FooterText)
	}
	fmt.Fprintf(w, "Content: %dx%d visible=%v\n", win.Props.Width, win.Props.Height, win.Props.Visible)
}

func mark(b bool) string {
	if b {
		return check
	}
	return ""
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
