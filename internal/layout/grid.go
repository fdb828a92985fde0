// Package layout computes window arrangements (tiling and cascading) for
// the desktop.
package layout

// TrackType is how a grid track is sized
type TrackType int

const (
	TrackFr TrackType = iota // Share of the space left after fixed tracks
	TrackPx                  // Fixed pixel size
)

// Track is one row or column definition
type Track struct {
	Type  TrackType
	Value int
}

// Fr returns n equal fractional tracks
func Fr(n int) []Track {
	tracks := make([]Track, n)
	for i := range tracks {
		tracks[i] = Track{Type: TrackFr, Value: 1}
	}
	return tracks
}

// CalculateTracks converts track definitions to pixel sizes.
//
// Parameters:
//   - tracks: Track size definitions
//   - available: Total available space in pixels
//   - gap: Gap between tracks in pixels
//
// Pixels lost to integer division go to the last fractional track so the
// tracks and gaps always fill available exactly when any fr track exists.
func CalculateTracks(tracks []Track, available, gap int) []int {
	if len(tracks) == 0 {
		return nil
	}

	remaining := available - gap*(len(tracks)-1)
	sizes := make([]int, len(tracks))

	// First pass: allocate fixed tracks and total the fractions
	totalFr := 0
	lastFr := -1
	for i, t := range tracks {
		switch t.Type {
		case TrackPx:
			sizes[i] = t.Value
			remaining -= t.Value
		case TrackFr:
			totalFr += t.Value
			lastFr = i
		}
	}

	// Second pass: distribute what is left to fr tracks
	if totalFr > 0 && remaining > 0 {
		used := 0
		for i, t := range tracks {
			if t.Type == TrackFr {
				sizes[i] = remaining * t.Value / totalFr
				used += sizes[i]
			}
		}
		sizes[lastFr] += remaining - used
	}

	for i := range sizes {
		if sizes[i] < 0 {
			sizes[i] = 0
		}
	}
	return sizes
}

// CalculateTrackPositions returns the starting position of each track.
// The returned slice has length len(sizes)+1, where positions[i] is the
// start of track i, and positions[len(sizes)] is the end of the last track.
func CalculateTrackPositions(sizes []int, gap int) []int {
	positions := make([]int, len(sizes)+1)
	for i, size := range sizes {
		positions[i+1] = positions[i] + size
		if i < len(sizes)-1 {
			positions[i+1] += gap
		}
	}
	return positions
}
