package output

import (
	"strings"
)

// BoxStyle is the character set for one kind of frame
type BoxStyle struct {
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	Horizontal  rune
	Vertical    rune
	TeeLeft     rune // Title bar separator, left end
	TeeRight    rune // Title bar separator, right end
}

var (
	// ASCIIStyle draws plain frames with ASCII
	ASCIIStyle = BoxStyle{'+', '+', '+', '+', '-', '|', '+', '+'}

	// ASCIIFocusStyle marks the focused window with ASCII
	ASCIIFocusStyle = BoxStyle{'#', '#', '#', '#', '=', '#', '#', '#'}

	// UnicodeStyle draws plain frames with box drawing characters
	UnicodeStyle = BoxStyle{'┌', '┐', '└', '┘', '─', '│', '├', '┤'}

	// UnicodeFocusStyle marks the focused window with heavy lines
	UnicodeFocusStyle = BoxStyle{'┏', '┓', '┗', '┛', '━', '┃', '┣', '┫'}
)

// Canvas is a 2D character buffer. Later draws overwrite earlier ones, so
// windows are painted bottom first.
type Canvas struct {
	Width   int
	Height  int
	buffer  [][]rune
	unicode bool
}

// NewCanvas creates a blank canvas
func NewCanvas(width, height int, useUnicode bool) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = []rune(strings.Repeat(" ", width))
	}

	return &Canvas{
		Width:   width,
		Height:  height,
		buffer:  buffer,
		unicode: useUnicode,
	}
}

// Style returns the frame style for a plain or focused frame
func (c *Canvas) Style(focused bool) BoxStyle {
	switch {
	case c.unicode && focused:
		return UnicodeFocusStyle
	case c.unicode:
		return UnicodeStyle
	case focused:
		return ASCIIFocusStyle
	default:
		return ASCIIStyle
	}
}

// SetCell sets a character, ignoring positions off the canvas
func (c *Canvas) SetCell(x, y int, r rune) {
	if x >= 0 && x < c.Width && y >= 0 && y < c.Height {
		c.buffer[y][x] = r
	}
}

// GetCell returns the character at a position, or a space off the canvas
func (c *Canvas) GetCell(x, y int) rune {
	if x >= 0 && x < c.Width && y >= 0 && y < c.Height {
		return c.buffer[y][x]
	}
	return ' '
}

// DrawBox draws a frame outline
func (c *Canvas) DrawBox(x, y, width, height int, style BoxStyle) {
	if width < 2 || height < 2 {
		return
	}

	c.SetCell(x, y, style.TopLeft)
	c.SetCell(x+width-1, y, style.TopRight)
	c.SetCell(x, y+height-1, style.BottomLeft)
	c.SetCell(x+width-1, y+height-1, style.BottomRight)

	for i := 1; i < width-1; i++ {
		c.SetCell(x+i, y, style.Horizontal)
		c.SetCell(x+i, y+height-1, style.Horizontal)
	}
	for i := 1; i < height-1; i++ {
		c.SetCell(x, y+i, style.Vertical)
		c.SetCell(x+width-1, y+i, style.Vertical)
	}
}

// DrawSeparator draws a horizontal rule across a frame at row y
func (c *Canvas) DrawSeparator(x, y, width int, style BoxStyle) {
	if width < 2 {
		return
	}
	c.SetCell(x, y, style.TeeLeft)
	for i := 1; i < width-1; i++ {
		c.SetCell(x+i, y, style.Horizontal)
	}
	c.SetCell(x+width-1, y, style.TeeRight)
}

// DrawText writes text starting at x, one rune per cell
func (c *Canvas) DrawText(x, y int, text string) {
	i := 0
	for _, r := range text {
		c.SetCell(x+i, y, r)
		i++
	}
}

// DrawTextRight writes text so it ends at column x+width-1
func (c *Canvas) DrawTextRight(x, y, width int, text string) {
	runes := []rune(text)
	if len(runes) > width {
		runes = runes[len(runes)-width:]
	}
	c.DrawText(x+width-len(runes), y, string(runes))
}

// FillRect fills a rectangle with a character
func (c *Canvas) FillRect(x, y, width, height int, r rune) {
	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			c.SetCell(x+dx, y+dy, r)
		}
	}
}

// String renders the canvas with trailing spaces trimmed from each row
func (c *Canvas) String() string {
	var sb strings.Builder
	for i, row := range c.buffer {
		sb.WriteString(strings.TrimRight(string(row), " "))
		if i < len(c.buffer)-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}
