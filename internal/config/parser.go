package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yourusername/webdesk/internal/types"
)

var (
	sizePattern  = regexp.MustCompile(`^(\d+)\s*[xX×]\s*(\d+)$`)
	colorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

// ParseSize parses a size string into a Size.
// Supported formats:
//   - "150x100", "150X100", "150 x 100", "150×100"
func ParseSize(s string) (types.Size, error) {
	s = strings.TrimSpace(s)

	matches := sizePattern.FindStringSubmatch(s)
	if matches == nil {
		return types.Size{}, fmt.Errorf("invalid size format: %q (want WIDTHxHEIGHT)", s)
	}

	w, err := strconv.Atoi(matches[1])
	if err != nil {
		return types.Size{}, fmt.Errorf("invalid width in %q: %w", s, err)
	}
	h, err := strconv.Atoi(matches[2])
	if err != nil {
		return types.Size{}, fmt.Errorf("invalid height in %q: %w", s, err)
	}
	if w == 0 || h == 0 {
		return types.Size{}, fmt.Errorf("size %q must be non-zero", s)
	}

	return types.Size{Width: w, Height: h}, nil
}

// FormatSize converts a Size back to string representation
func FormatSize(s types.Size) string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// ParseColor validates a "#rgb" or "#rrggbb" colour and returns it in
// lower-case "#rrggbb" form
func ParseColor(s string) (string, error) {
	s = strings.TrimSpace(s)

	matches := colorPattern.FindStringSubmatch(s)
	if matches == nil {
		return "", fmt.Errorf("invalid color: %q (want #rgb or #rrggbb)", s)
	}

	hex := strings.ToLower(matches[1])
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	return "#" + hex, nil
}
