package focus

import (
	"math"
	"sort"

	"github.com/yourusername/webdesk/internal/types"
)

// FindTarget finds the window to move focus to in the given direction.
// bounds maps candidate window ids to their rectangles and must include
// currentID. If wrapAround is true and nothing lies in that direction, the
// best aligned window on the opposite side is chosen.
func FindTarget(currentID string, direction types.Direction, bounds map[string]types.Rect, wrapAround bool) (string, bool) {
	current, ok := bounds[currentID]
	if !ok {
		return "", false
	}
	from := current.Center()

	best, bestDistance := "", math.MaxFloat64
	for _, id := range sortedIDs(bounds) {
		if id == currentID {
			continue
		}
		to := bounds[id].Center()
		if !isInDirection(from, to, direction) {
			continue
		}
		if d := distanceInDirection(from, to, direction); d < bestDistance {
			best, bestDistance = id, d
		}
	}
	if best != "" {
		return best, true
	}

	if wrapAround {
		return findWrapAround(currentID, direction, bounds)
	}
	return "", false
}

// isInDirection checks if target is in the specified direction from source,
// comparing center points
func isInDirection(source, target types.Point, direction types.Direction) bool {
	switch direction {
	case types.DirLeft:
		return target.X < source.X
	case types.DirRight:
		return target.X > source.X
	case types.DirUp:
		return target.Y < source.Y
	case types.DirDown:
		return target.Y > source.Y
	default:
		return false
	}
}

// distanceInDirection weights movement off the primary axis double, so
// windows in line with the direction win over closer diagonal ones
func distanceInDirection(source, target types.Point, direction types.Direction) float64 {
	dx := math.Abs(float64(target.X - source.X))
	dy := math.Abs(float64(target.Y - source.Y))

	switch direction {
	case types.DirLeft, types.DirRight:
		return dx + dy*2
	case types.DirUp, types.DirDown:
		return dy + dx*2
	default:
		return math.Hypot(dx, dy)
	}
}

// findWrapAround picks the window furthest in the opposite direction,
// preferring the one best aligned with the current window
func findWrapAround(currentID string, direction types.Direction, bounds map[string]types.Rect) (string, bool) {
	from := bounds[currentID].Center()

	best := ""
	bestEdge, bestAlign := math.MaxFloat64, math.MaxFloat64
	for _, id := range sortedIDs(bounds) {
		if id == currentID {
			continue
		}
		to := bounds[id].Center()

		// Smaller is further toward the wrapped-to side
		var edge float64
		switch direction {
		case types.DirLeft:
			edge = -float64(to.X)
		case types.DirRight:
			edge = float64(to.X)
		case types.DirUp:
			edge = -float64(to.Y)
		case types.DirDown:
			edge = float64(to.Y)
		}
		align := perpendicularDistance(from, to, direction)

		if edge < bestEdge || (edge == bestEdge && align < bestAlign) {
			best, bestEdge, bestAlign = id, edge, align
		}
	}
	return best, best != ""
}

// perpendicularDistance returns the distance along the perpendicular axis
func perpendicularDistance(source, target types.Point, direction types.Direction) float64 {
	switch direction {
	case types.DirLeft, types.DirRight:
		return math.Abs(float64(target.Y - source.Y))
	default:
		return math.Abs(float64(target.X - source.X))
	}
}

func sortedIDs(bounds map[string]types.Rect) []string {
	ids := make([]string, 0, len(bounds))
	for id := range bounds {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
