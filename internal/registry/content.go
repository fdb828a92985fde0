package registry

import (
	"fmt"
	"strings"
)

// Content is the payload mounted inside a window. It only ever sees the
// window's current content size.
type Content interface {
	Kind() string
	Render(width, height int) []string
}

// Empty renders nothing
type Empty struct{}

func (Empty) Kind() string { return "" }

func (Empty) Render(width, height int) []string { return nil }

// Text is word-wrapped prose
type Text string

func (Text) Kind() string { return "text" }

// Render wraps t to width columns and truncates to height lines
func (t Text) Render(width, height int) []string {
	if width <= 0 || height <= 0 {
		return nil
	}

	var lines []string
	for _, para := range strings.Split(string(t), "\n") {
		lines = append(lines, wrap(para, width)...)
		if len(lines) >= height {
			break
		}
	}
	return truncate(lines, height)
}

// Code is inert source text shown verbatim with line numbers. It is never
// parsed or executed.
type Code string

func (Code) Kind() string { return "code" }

// Render numbers each line and cuts it at width columns
func (c Code) Render(width, height int) []string {
	if width <= 0 || height <= 0 {
		return nil
	}

	src := strings.Split(strings.TrimRight(string(c), "\n"), "\n")
	gutter := len(fmt.Sprint(len(src)))

	lines := make([]string, 0, min(len(src), height))
	for i, l := range src {
		if len(lines) == height {
			break
		}
		row := fmt.Sprintf("%*d %s", gutter, i+1, strings.ReplaceAll(l, "\t", "    "))
		lines = append(lines, clip(row, width))
	}
	return lines
}

func wrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}

	var out []string
	var cur []rune
	for _, w := range words {
		rw := []rune(w)
		for len(rw) > width {
			if len(cur) > 0 {
				out = append(out, string(cur))
				cur = nil
			}
			out = append(out, string(rw[:width]))
			rw = rw[width:]
		}
		switch {
		case len(cur) == 0:
			cur = rw
		case len(cur)+1+len(rw) <= width:
			cur = append(append(cur, ' '), rw...)
		default:
			out = append(out, string(cur))
			cur = rw
		}
	}
	if len(cur) > 0 {
		out = append(out, string(cur))
	}
	return out
}

func clip(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width])
}

func truncate(lines []string, n int) []string {
	if len(lines) > n {
		return lines[:n]
	}
	return lines
}
