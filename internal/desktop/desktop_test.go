package desktop

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/yourusername/webdesk/internal/geometry"
	"github.com/yourusername/webdesk/internal/registry"
	"github.com/yourusername/webdesk/internal/types"
)

var testViewport = types.Size{Width: 1280, Height: 800}

func newTestDesktop(t *testing.T) *Desktop {
	t.Helper()
	n := 0
	return New(registry.Default(), testViewport,
		WithInvariantChecks(),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("w%d", n)
		}),
	)
}

func mustOpen(t *testing.T, d *Desktop, appID string) string {
	t.Helper()
	id, ok := d.Open(appID, nil)
	if !ok {
		t.Fatalf("Open(%q) failed", appID)
	}
	return id
}

func assertInvariants(t *testing.T, d *Desktop) {
	t.Helper()
	if err := d.CheckInvariants(); err != nil {
		t.Fatalf("invariants violated: %v", err)
	}
}

func focusedID(d *Desktop) string {
	if w, ok := d.Focused(); ok {
		return w.ID
	}
	return ""
}

// === Scenarios ===

func TestOpenFirstWindow(t *testing.T) {
	d := newTestDesktop(t)

	id := mustOpen(t, d, "about")

	if d.Len() != 1 {
		t.Fatalf("Len = %d, want 1", d.Len())
	}
	w, _ := d.Get(id)
	if !w.IsFocused {
		t.Error("new window should be focused")
	}
	spec, _ := registry.Default().Lookup("about")
	if w.Rect != spec.DefaultRect {
		t.Errorf("Rect = %v, want registry default %v", w.Rect, spec.DefaultRect)
	}
	if w.Title != spec.Title || w.AppID != "about" {
		t.Errorf("unexpected window %+v", w)
	}
	assertInvariants(t, d)
}

func TestFocusRaisesWindow(t *testing.T) {
	d := newTestDesktop(t)
	about := mustOpen(t, d, "about")
	game := mustOpen(t, d, "game")

	if d.Len() != 2 {
		t.Fatalf("Len = %d, want 2", d.Len())
	}
	if top, _ := d.Topmost(); top.ID != game || !top.IsFocused {
		t.Errorf("game should be topmost and focused, got %+v", top)
	}

	if !d.Focus(about) {
		t.Fatal("Focus(about) returned false")
	}

	if diff := cmp.Diff([]string{game, about}, d.IDs()); diff != "" {
		t.Errorf("z-order mismatch (-want +got):\n%s", diff)
	}
	g, _ := d.Get(game)
	if g.IsFocused {
		t.Error("game should lose focus")
	}
	if focusedID(d) != about {
		t.Errorf("focused = %q, want about", focusedID(d))
	}
	assertInvariants(t, d)
}

func TestMinimizeTransfersFocus(t *testing.T) {
	d := newTestDesktop(t)
	a := mustOpen(t, d, "about")
	b := mustOpen(t, d, "codeview")
	c := mustOpen(t, d, "notice")
	before, _ := d.Get(c)

	if !d.Minimize(c) {
		t.Fatal("Minimize returned false")
	}

	if focusedID(d) != b {
		t.Errorf("focused = %q, want %q", focusedID(d), b)
	}
	if diff := cmp.Diff([]string{a, c, b}, d.IDs()); diff != "" {
		t.Errorf("z-order mismatch (-want +got):\n%s", diff)
	}
	after, ok := d.Get(c)
	if !ok {
		t.Fatal("minimized window should stay in the collection")
	}
	if !after.IsMinimized || after.IsFocused {
		t.Errorf("minimized window flags: %+v", after)
	}
	if after.Rect != before.Rect {
		t.Errorf("Rect changed from %v to %v", before.Rect, after.Rect)
	}
	assertInvariants(t, d)
}

func TestCloseTransfersFocus(t *testing.T) {
	d := newTestDesktop(t)
	a := mustOpen(t, d, "about")
	b := mustOpen(t, d, "game")

	if !d.Close(b) {
		t.Fatal("Close returned false")
	}

	if diff := cmp.Diff([]string{a}, d.IDs()); diff != "" {
		t.Errorf("collection mismatch (-want +got):\n%s", diff)
	}
	if focusedID(d) != a {
		t.Errorf("focused = %q, want %q", focusedID(d), a)
	}
	assertInvariants(t, d)
}

func TestViewportShrinkKeepsWindowVisible(t *testing.T) {
	d := newTestDesktop(t)
	id, ok := d.Open("about", &types.Rect{Top: 500, Left: 1000, Width: 200, Height: 150})
	if !ok {
		t.Fatal("Open failed")
	}

	small := types.Size{Width: 800, Height: 400}
	d.SetViewport(small)

	w, _ := d.Get(id)
	want := types.Rect{Top: 360, Left: 760, Width: 200, Height: 150}
	if w.Rect != want {
		t.Errorf("Rect = %v, want %v", w.Rect, want)
	}
	if !geometry.IsVisible(w.Rect, small, geometry.DefaultVisibleMargin) {
		t.Errorf("window %v not visible in %v", w.Rect, small)
	}
	if d.Viewport() != small {
		t.Errorf("Viewport = %v, want %v", d.Viewport(), small)
	}
	assertInvariants(t, d)
}

// === Transitions ===

func TestOpenUnknownApp(t *testing.T) {
	d := newTestDesktop(t)

	id, ok := d.Open("solitaire", nil)
	if ok || id != "" {
		t.Errorf("Open(unknown) = %q, %v; want \"\", false", id, ok)
	}
	if d.Len() != 0 {
		t.Errorf("Len = %d, want 0", d.Len())
	}
}

func TestOpenClampsInitialRect(t *testing.T) {
	d := newTestDesktop(t)

	id, _ := d.Open("about", &types.Rect{Top: -50, Left: 5000, Width: 10, Height: 10})
	w, _ := d.Get(id)

	want := types.Rect{Top: 0, Left: 1240, Width: 150, Height: 100}
	if w.Rect != want {
		t.Errorf("Rect = %v, want %v", w.Rect, want)
	}
}

func TestOpenClampsOversizedDefault(t *testing.T) {
	d := newTestDesktop(t)
	id := mustOpen(t, d, "game")

	w, _ := d.Get(id)
	if w.Rect.Height != testViewport.Height {
		t.Errorf("Height = %d, want viewport height %d", w.Rect.Height, testViewport.Height)
	}
	if w.Rect.Width != 600 {
		t.Errorf("Width = %d, want 600", w.Rect.Width)
	}
}

func TestOpenSameAppTwice(t *testing.T) {
	d := newTestDesktop(t)
	first := mustOpen(t, d, "about")
	second := mustOpen(t, d, "about")

	if first == second {
		t.Fatal("ids should be unique")
	}
	if len(d.ByApp("about")) != 2 {
		t.Errorf("ByApp(about) = %d windows, want 2", len(d.ByApp("about")))
	}
	assertInvariants(t, d)
}

func TestDefaultIDsAreUUIDs(t *testing.T) {
	d := New(registry.Default(), testViewport)
	id, _ := d.Open("about", nil)
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("id %q is not a uuid: %v", id, err)
	}
}

func TestFocusIdempotent(t *testing.T) {
	d := newTestDesktop(t)
	a := mustOpen(t, d, "about")
	mustOpen(t, d, "game")
	mustOpen(t, d, "codeview")

	d.Focus(a)
	once := d.Windows()
	d.Focus(a)
	twice := d.Windows()

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("second Focus changed state (-once +twice):\n%s", diff)
	}
}

func TestFocusMinimizedIsNoop(t *testing.T) {
	d := newTestDesktop(t)
	a := mustOpen(t, d, "about")
	b := mustOpen(t, d, "game")
	d.Minimize(a)

	before := d.Windows()
	if d.Focus(a) {
		t.Error("Focus on a minimized window should return false")
	}
	if diff := cmp.Diff(before, d.Windows()); diff != "" {
		t.Errorf("state changed (-before +after):\n%s", diff)
	}
	if focusedID(d) != b {
		t.Errorf("focused = %q, want %q", focusedID(d), b)
	}
}

func TestMinimizeUnfocusedKeepsFocus(t *testing.T) {
	d := newTestDesktop(t)
	a := mustOpen(t, d, "about")
	b := mustOpen(t, d, "game")

	d.Minimize(a)

	if focusedID(d) != b {
		t.Errorf("focused = %q, want %q", focusedID(d), b)
	}
	if diff := cmp.Diff([]string{a, b}, d.IDs()); diff != "" {
		t.Errorf("z-order mismatch (-want +got):\n%s", diff)
	}
	assertInvariants(t, d)
}

func TestMinimizeAllLeavesNoFocus(t *testing.T) {
	d := newTestDesktop(t)
	a := mustOpen(t, d, "about")
	b := mustOpen(t, d, "game")

	d.Minimize(b)
	d.Minimize(a)

	if id := focusedID(d); id != "" {
		t.Errorf("focused = %q, want none", id)
	}
	if len(d.Visible()) != 0 {
		t.Errorf("Visible = %d, want 0", len(d.Visible()))
	}
	assertInvariants(t, d)
}

func TestMinimizeTwice(t *testing.T) {
	d := newTestDesktop(t)
	a := mustOpen(t, d, "about")
	d.Minimize(a)
	if !d.Minimize(a) {
		t.Error("Minimize of an already minimized window should still report true")
	}
}

func TestRestore(t *testing.T) {
	d := newTestDesktop(t)
	a := mustOpen(t, d, "about")
	b := mustOpen(t, d, "game")
	d.Minimize(a)

	if !d.Restore(a) {
		t.Fatal("Restore returned false")
	}

	w, _ := d.Get(a)
	if w.IsMinimized || !w.IsFocused {
		t.Errorf("restored window flags: %+v", w)
	}
	if diff := cmp.Diff([]string{b, a}, d.IDs()); diff != "" {
		t.Errorf("z-order mismatch (-want +got):\n%s", diff)
	}
	assertInvariants(t, d)
}

func TestCloseUnfocused(t *testing.T) {
	d := newTestDesktop(t)
	a := mustOpen(t, d, "about")
	b := mustOpen(t, d, "game")

	d.Close(a)

	if focusedID(d) != b {
		t.Errorf("focused = %q, want %q", focusedID(d), b)
	}
	if d.Len() != 1 {
		t.Errorf("Len = %d, want 1", d.Len())
	}
}

func TestCloseReleasesRemovedWindow(t *testing.T) {
	d := newTestDesktop(t)
	a := mustOpen(t, d, "about")
	mustOpen(t, d, "game")
	mustOpen(t, d, "codeview")

	d.Close(a)

	if tail := d.windows[:cap(d.windows)][len(d.windows):]; len(tail) > 0 && tail[0] != nil {
		t.Errorf("backing array still holds %q after close", tail[0].ID)
	}
}

func TestCloseLastWindow(t *testing.T) {
	d := newTestDesktop(t)
	a := mustOpen(t, d, "about")

	d.Close(a)

	if d.Len() != 0 {
		t.Errorf("Len = %d, want 0", d.Len())
	}
	if _, ok := d.Focused(); ok {
		t.Error("no window should be focused")
	}
	if _, ok := d.Topmost(); ok {
		t.Error("Topmost on empty desktop should report false")
	}
}

func TestCloseSkipsMinimizedForFocus(t *testing.T) {
	d := newTestDesktop(t)
	a := mustOpen(t, d, "about")
	b := mustOpen(t, d, "codeview")
	c := mustOpen(t, d, "game")
	d.Minimize(b)
	d.Focus(c)

	d.Close(c)

	if focusedID(d) != a {
		t.Errorf("focused = %q, want %q", focusedID(d), a)
	}
	if diff := cmp.Diff([]string{b, a}, d.IDs()); diff != "" {
		t.Errorf("z-order mismatch (-want +got):\n%s", diff)
	}
	assertInvariants(t, d)
}

func TestUpdateGeometry(t *testing.T) {
	d := newTestDesktop(t)
	a := mustOpen(t, d, "about")
	b := mustOpen(t, d, "game")
	order := d.IDs()

	if !d.UpdateGeometry(a, types.Rect{Top: 10, Left: 20, Width: 50, Height: 5000}) {
		t.Fatal("UpdateGeometry returned false")
	}

	w, _ := d.Get(a)
	want := types.Rect{Top: 10, Left: 20, Width: 150, Height: 800}
	if w.Rect != want {
		t.Errorf("Rect = %v, want %v", w.Rect, want)
	}
	if diff := cmp.Diff(order, d.IDs()); diff != "" {
		t.Errorf("z-order changed (-want +got):\n%s", diff)
	}
	if focusedID(d) != b {
		t.Errorf("focus changed to %q", focusedID(d))
	}
}

func TestUpdateGeometryRespectsAppMinSize(t *testing.T) {
	d := newTestDesktop(t)
	g := mustOpen(t, d, "game")

	d.UpdateGeometry(g, types.Rect{Top: 0, Left: 0, Width: 10, Height: 10})

	w, _ := d.Get(g)
	if w.Rect.Width != 300 || w.Rect.Height != 400 {
		t.Errorf("size = %dx%d, want 300x400", w.Rect.Width, w.Rect.Height)
	}
	c, ok := d.Constraints(g)
	if !ok || c.MinSize != (types.Size{Width: 300, Height: 400}) {
		t.Errorf("Constraints = %+v, %v", c, ok)
	}
}

func TestStaleIDsAreNoops(t *testing.T) {
	d := newTestDesktop(t)
	a := mustOpen(t, d, "about")
	b := mustOpen(t, d, "game")
	d.Close(a)
	before := d.Windows()

	ops := map[string]func() bool{
		"focus":    func() bool { return d.Focus(a) },
		"minimize": func() bool { return d.Minimize(a) },
		"restore":  func() bool { return d.Restore(a) },
		"close":    func() bool { return d.Close(a) },
		"update":   func() bool { return d.UpdateGeometry(a, types.Rect{Width: 300, Height: 300}) },
	}
	for name, op := range ops {
		if op() {
			t.Errorf("%s on stale id returned true", name)
		}
	}

	if diff := cmp.Diff(before, d.Windows()); diff != "" {
		t.Errorf("stale operations changed state (-before +after):\n%s", diff)
	}
	if _, ok := d.Constraints(a); ok {
		t.Error("Constraints on stale id should report false")
	}
	if focusedID(d) != b {
		t.Errorf("focused = %q, want %q", focusedID(d), b)
	}
}

func TestBlur(t *testing.T) {
	d := newTestDesktop(t)
	a := mustOpen(t, d, "about")
	b := mustOpen(t, d, "game")

	d.Blur()

	if _, ok := d.Focused(); ok {
		t.Error("no window should be focused after Blur")
	}
	if diff := cmp.Diff([]string{a, b}, d.IDs()); diff != "" {
		t.Errorf("Blur changed z-order (-want +got):\n%s", diff)
	}

	// Focusing the topmost window again must not be treated as a no-op
	d.Focus(b)
	if focusedID(d) != b {
		t.Errorf("focused = %q, want %q", focusedID(d), b)
	}
	assertInvariants(t, d)
}

func TestDispatch(t *testing.T) {
	d := newTestDesktop(t)
	a := mustOpen(t, d, "about")
	b := mustOpen(t, d, "game")

	steps := []struct {
		intent  Intent
		ok      bool
		focused string
		order   []string
	}{
		{Interact(a), true, a, []string{b, a}},
		{Minimize(a), true, b, []string{a, b}},
		{Restore(a), true, a, []string{b, a}},
		{GeometryChange(b, types.Rect{Top: 1, Left: 2, Width: 300, Height: 400}), true, a, []string{b, a}},
		{Close(a), true, b, []string{b}},
		{Interact(a), false, b, []string{b}},
		{Intent{Kind: 0, WindowID: b}, false, b, []string{b}},
	}

	for i, s := range steps {
		if got := d.Dispatch(s.intent); got != s.ok {
			t.Errorf("step %d %s: Dispatch = %v, want %v", i, s.intent, got, s.ok)
		}
		if focusedID(d) != s.focused {
			t.Errorf("step %d %s: focused = %q, want %q", i, s.intent, focusedID(d), s.focused)
		}
		if diff := cmp.Diff(s.order, d.IDs()); diff != "" {
			t.Errorf("step %d %s: z-order mismatch (-want +got):\n%s", i, s.intent, diff)
		}
		assertInvariants(t, d)
	}

	w, _ := d.Get(b)
	if w.Rect != (types.Rect{Top: 1, Left: 2, Width: 300, Height: 400}) {
		t.Errorf("GeometryChange not applied: %v", w.Rect)
	}
}

func TestParseIntentKind(t *testing.T) {
	for _, k := range []IntentKind{IntentInteract, IntentMinimize, IntentRestore, IntentClose, IntentGeometryChange} {
		got, err := ParseIntentKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseIntentKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseIntentKind("maximize"); err == nil {
		t.Error("expected error for unknown intent")
	}
}

func TestSetRegistry(t *testing.T) {
	d := newTestDesktop(t)
	a := mustOpen(t, d, "about")

	reg, err := registry.New(registry.AppSpec{ID: "only", Title: "Only", DefaultRect: types.Rect{Width: 200, Height: 200}})
	if err != nil {
		t.Fatal(err)
	}
	d.SetRegistry(reg)

	if _, ok := d.Open("about", nil); ok {
		t.Error("about should no longer be openable")
	}
	if _, ok := d.Open("only", nil); !ok {
		t.Error("only should be openable")
	}
	if _, ok := d.Get(a); !ok {
		t.Error("existing windows should survive a registry swap")
	}
}

func TestSummary(t *testing.T) {
	d := newTestDesktop(t)
	a := mustOpen(t, d, "about")
	mustOpen(t, d, "about")
	d.Minimize(a)

	s := d.Summary()
	if s["windowCount"] != 2 || s["minimized"] != 1 {
		t.Errorf("Summary = %v", s)
	}
	if apps := s["apps"].(map[string]int); apps["about"] != 2 {
		t.Errorf("apps = %v", apps)
	}
}

// === Invariants ===

func TestCheckInvariantsDetectsViolations(t *testing.T) {
	d := newTestDesktop(t)
	d.windows = []*WindowState{
		{ID: "x", Rect: types.Rect{Width: 200, Height: 200}, IsFocused: true},
		{ID: "x", Rect: types.Rect{Width: 10, Height: 200}, IsFocused: true, IsMinimized: true},
	}

	err := d.CheckInvariants()
	if err == nil {
		t.Fatal("expected violations")
	}
	for _, want := range []string{"duplicate window id", "not topmost", "is minimized", "below minimum", "2 windows focused"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestInvariantsHoldUnderRandomOperations(t *testing.T) {
	d := newTestDesktop(t)
	rng := rand.New(rand.NewPCG(1, 2))
	apps := registry.Default().IDs()

	var ids []string
	for step := 0; step < 500; step++ {
		pick := func() string {
			if len(ids) == 0 || rng.IntN(8) == 0 {
				return "stale"
			}
			return ids[rng.IntN(len(ids))]
		}

		switch rng.IntN(7) {
		case 0:
			if id, ok := d.Open(apps[rng.IntN(len(apps))], nil); ok {
				ids = append(ids, id)
			}
		case 1:
			d.Focus(pick())
		case 2:
			d.Minimize(pick())
		case 3:
			d.Restore(pick())
		case 4:
			d.Close(pick())
		case 5:
			d.UpdateGeometry(pick(), types.Rect{
				Top:    rng.IntN(2000) - 1000,
				Left:   rng.IntN(3000) - 1500,
				Width:  rng.IntN(2000),
				Height: rng.IntN(2000),
			})
		case 6:
			d.SetViewport(types.Size{Width: 200 + rng.IntN(1800), Height: 150 + rng.IntN(1000)})
		}

		if err := d.CheckInvariants(); err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
		if w, ok := d.Focused(); ok {
			if top, _ := d.Topmost(); top.ID != w.ID {
				t.Fatalf("step %d: focused %s is not topmost %s", step, w.ID, top.ID)
			}
		}
	}
}

