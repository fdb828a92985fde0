package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCalculateTracks(t *testing.T) {
	tests := []struct {
		name      string
		tracks    []Track
		available int
		gap       int
		want      []int
	}{
		{"equal", Fr(2), 1000, 0, []int{500, 500}},
		{"with gap", Fr(2), 1000, 10, []int{495, 495}},
		{"remainder to last fr", Fr(3), 100, 0, []int{33, 33, 34}},
		{"mixed", []Track{{TrackPx, 200}, {TrackFr, 1}, {TrackFr, 3}}, 1000, 0, []int{200, 200, 600}},
		{"fixed overflows", []Track{{TrackPx, 800}, {TrackFr, 1}}, 500, 0, []int{800, 0}},
		{"empty", nil, 1000, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTracks(tt.tracks, tt.available, tt.gap)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("CalculateTracks mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCalculateTrackPositions(t *testing.T) {
	got := CalculateTrackPositions([]int{100, 200, 300}, 10)
	if diff := cmp.Diff([]int{0, 110, 320, 620}, got); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
}
