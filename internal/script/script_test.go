package script

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/yourusername/webdesk/internal/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func mustParse(t *testing.T, src string) *Script {
	t.Helper()
	s, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return s
}

func TestParse(t *testing.T) {
	s := mustParse(t, `
name: basic
viewport: {width: 800, height: 600}
steps:
  - op: open
    app: about
    as: a
  - op: move
    window: a
    dx: 10
    dy: -5
  - op: expect
    expect:
      count: 1
      focused: a
`)
	if s.Name != "basic" {
		t.Errorf("Name = %q", s.Name)
	}
	if s.Viewport != (types.Size{Width: 800, Height: 600}) {
		t.Errorf("Viewport = %v", s.Viewport)
	}
	if len(s.Steps) != 3 {
		t.Fatalf("len(Steps) = %d, want 3", len(s.Steps))
	}
	if s.Steps[1].DX != 10 || s.Steps[1].DY != -5 {
		t.Errorf("move step = %+v", s.Steps[1])
	}
	if e := s.Steps[2].Expect; e == nil || *e.Count != 1 || *e.Focused != "a" {
		t.Errorf("expect step = %+v", s.Steps[2].Expect)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown op", "steps: [{op: explode}]", "unknown op"},
		{"open without app", "steps: [{op: open}]", "app is required"},
		{"focus without window", "steps: [{op: focus}]", "window is required"},
		{"bad edge", "steps: [{op: resize, window: a, edge: middle}]", "unknown edge"},
		{"update without rect", "steps: [{op: update, window: a}]", "rect are required"},
		{"bad phase", "steps: [{op: pointer, phase: hover}]", "unknown phase"},
		{"press without window", "steps: [{op: pointer, phase: down}]", "required for a press"},
		{"zero viewport", "steps: [{op: viewport, width: 0, height: 10}]", "must be positive"},
		{"empty expect", "steps: [{op: expect}]", "expect block"},
		{"bad direction", "steps: [{op: focus-dir, direction: north}]", "unknown direction"},
		{"bad mode", "steps: [{op: arrange, mode: spiral}]", "unknown arrangement"},
		{"bad yaml", "steps: [", "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	if err := os.WriteFile(path, []byte("steps: [{op: blur}]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s.Steps) != 1 || s.Steps[0].Op != OpBlur {
		t.Errorf("Steps = %+v", s.Steps)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRunFocusTransfer(t *testing.T) {
	s := mustParse(t, `
steps:
  - {op: open, app: about, as: a}
  - {op: open, app: about, as: b}
  - {op: open, app: about, as: c}
  - op: expect
    expect: {order: [a, b, c], focused: c}
  - {op: minimize, window: c}
  - op: expect
    expect: {order: [a, c, b], focused: b, minimized: [c]}
  - {op: close, window: b}
  - op: expect
    expect: {order: [c, a], focused: a, count: 2}
  - {op: restore, window: c}
  - op: expect
    expect: {order: [a, c], focused: c}
`)
	res, err := Run(context.Background(), s, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, sr := range res.Steps {
		if !sr.OK {
			t.Errorf("step %d (%s) failed: %s", sr.Index, sr.Op, sr.Detail)
		}
	}
	if res.Failed != 0 {
		t.Errorf("Failed = %d, want 0", res.Failed)
	}
	if len(res.Final.Windows) != 2 {
		t.Errorf("final windows = %d, want 2", len(res.Final.Windows))
	}
}

func TestRunPointerDrag(t *testing.T) {
	s := mustParse(t, `
viewport: {width: 1280, height: 800}
steps:
  - op: open
    app: about
    as: a
    rect: {top: 100, left: 100, width: 400, height: 300}
  - {op: pointer, phase: down, window: a, x: 200, y: 110}
  - {op: pointer, phase: move, x: 250, y: 130}
  - {op: pointer, phase: up, x: 250, y: 130}
  - op: expect
    expect:
      rect:
        window: a
        is: {top: 120, left: 150, width: 400, height: 300}
`)
	res, err := Run(context.Background(), s, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Failed != 0 {
		t.Fatalf("Failed = %d: %+v", res.Failed, res.Steps)
	}
	if got := res.Steps[1].Detail; got != "titlebar" {
		t.Errorf("press region = %q, want titlebar", got)
	}
	if got := res.Steps[1].Window; got != "a" {
		t.Errorf("press window = %q, want alias a", got)
	}
}

func TestRunStaleAndUnknown(t *testing.T) {
	s := mustParse(t, `
steps:
  - {op: open, app: nope}
  - {op: focus, window: ghost}
  - {op: move, window: ghost, dx: 5}
  - op: expect
    expect: {count: 0, focused: ""}
`)
	res, err := Run(context.Background(), s, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := make([]bool, len(res.Steps))
	for i, sr := range res.Steps {
		got[i] = sr.OK
	}
	if diff := cmp.Diff([]bool{false, false, false, true}, got); diff != "" {
		t.Errorf("step results mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(res.Steps[0].Detail, "unknown app") {
		t.Errorf("Detail = %q", res.Steps[0].Detail)
	}
}

func TestRunRejectsInvalidScript(t *testing.T) {
	tests := []struct {
		name string
		step Step
		want string
	}{
		{"update without rect", Step{Op: OpUpdate, Window: "a"}, "rect"},
		{"expect without block", Step{Op: OpExpect}, "expect block"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Script{Steps: []Step{{Op: OpOpen, App: "about", As: "a"}, tt.step}}
			res, err := Run(context.Background(), s, Options{})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Run error = %v, want mention of %q", err, tt.want)
			}
			if res != nil {
				t.Errorf("Result = %+v, want nil", res)
			}
		})
	}
}

func TestRunFailedExpectation(t *testing.T) {
	s := mustParse(t, `
steps:
  - {op: open, app: about, as: a}
  - op: expect
    expect: {count: 3}
  - op: expect
    expect: {focused: ""}
`)
	res, err := Run(context.Background(), s, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Failed != 2 {
		t.Errorf("Failed = %d, want 2", res.Failed)
	}
	if res.Steps[1].Detail != "count = 1, want 3" {
		t.Errorf("Detail = %q", res.Steps[1].Detail)
	}
}

func TestRunViewportReclamp(t *testing.T) {
	s := mustParse(t, `
viewport: {width: 1280, height: 800}
steps:
  - op: open
    app: about
    as: a
    rect: {top: 500, left: 1000, width: 200, height: 150}
  - {op: viewport, width: 800, height: 400}
  - op: expect
    expect:
      rect:
        window: a
        is: {top: 360, left: 760, width: 200, height: 150}
`)
	res, err := Run(context.Background(), s, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Failed != 0 {
		t.Errorf("Failed = %d: %+v", res.Failed, res.Steps)
	}
	if res.Final.Viewport != (types.Size{Width: 800, Height: 400}) {
		t.Errorf("final viewport = %v", res.Final.Viewport)
	}
}

func TestRunNavigation(t *testing.T) {
	s := mustParse(t, `
viewport: {width: 1000, height: 600}
steps:
  - {op: open, app: about, as: a, rect: {top: 100, left: 0, width: 300, height: 200}}
  - {op: open, app: about, as: b, rect: {top: 100, left: 600, width: 300, height: 200}}
  - {op: focus-dir, direction: left}
  - op: expect
    expect: {focused: a, order: [b, a]}
  - {op: cycle}
  - op: expect
    expect: {focused: b}
  - {op: arrange, mode: tile}
  - op: expect
    expect:
      rect:
        window: a
        is: {top: 0, left: 0, width: 500, height: 600}
`)
	res, err := Run(context.Background(), s, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Failed != 0 {
		t.Errorf("Failed = %d: %+v", res.Failed, res.Steps)
	}
	if res.Steps[2].Window != "a" {
		t.Errorf("focus-dir window = %q, want a", res.Steps[2].Window)
	}
}
