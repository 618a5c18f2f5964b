package ui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/si3rc0-sw/mini-calendar-tool/internal/layout"
	"github.com/si3rc0-sw/mini-calendar-tool/internal/viewstate"
)

func testModel(t *testing.T) Model {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "settings.json"))
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	mm, _ := m.Update(msg)
	out, ok := mm.(Model)
	if !ok {
		t.Fatalf("Update returned %T", mm)
	}
	return out
}

func TestStripeIndex(t *testing.T) {
	// Two colors across a 4-wide cell split 2/2.
	for pos, want := range []int{0, 0, 1, 1} {
		if got := stripeIndex(pos, 4, 2); got != want {
			t.Errorf("stripeIndex(%d, 4, 2) = %d, want %d", pos, got, want)
		}
	}
	// Three colors still cover every position without running past the end.
	for pos := 0; pos < 4; pos++ {
		if got := stripeIndex(pos, 4, 3); got < 0 || got > 2 {
			t.Errorf("stripeIndex(%d, 4, 3) = %d out of range", pos, got)
		}
	}
	if got := stripeIndex(2, 4, 1); got != 0 {
		t.Errorf("single color = %d, want 0", got)
	}
}

func TestContrastFG(t *testing.T) {
	if got := contrastFG("#FFFFFF"); got != "#000000" {
		t.Errorf("white background got %s text", got)
	}
	if got := contrastFG("#000000"); got != "#FFFFFF" {
		t.Errorf("black background got %s text", got)
	}
	if got := contrastFG("not-a-color"); got != "#FFFFFF" {
		t.Errorf("invalid color got %s text", got)
	}
}

func TestDateAt(t *testing.T) {
	m := Model{ctrl: layout.New()}
	m.ctrl.SetFootprint(strideW, strideH)
	m.ctrl.Rebuild(2025, time.February, 2, 1)

	// 1 Feb 2025 is a Saturday: grid row 0, column 5 of the first panel.
	x := weekColW + 5*cellW
	y := navRows + 2
	d, ok := m.dateAt(x, y)
	if !ok || !d.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("dateAt(%d,%d) = %v %v", x, y, d, ok)
	}

	// Same cell in the second panel is 1 Mar 2025 (also a Saturday).
	d, ok = m.dateAt(x+strideW, y)
	if !ok || !d.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("second panel = %v %v", d, ok)
	}

	// Leading empty cell, navigation row and week column all miss.
	if _, ok := m.dateAt(weekColW, y); ok {
		t.Error("empty cell reported a date")
	}
	if _, ok := m.dateAt(x, 0); ok {
		t.Error("navigation row reported a date")
	}
	if _, ok := m.dateAt(0, y); ok {
		t.Error("week column reported a date")
	}
	// Beyond the panel grid.
	if _, ok := m.dateAt(2*strideW+weekColW, y); ok {
		t.Error("out-of-grid column reported a date")
	}
}

func TestResizeDebounceGeneration(t *testing.T) {
	m := testModel(t)
	m.graceUntil = time.Time{} // startup grace elapsed

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 50})
	firstGen := m.resizeGen
	m = update(t, m, tea.WindowSizeMsg{Width: 200, Height: 50})

	cols0, rows0 := m.ctrl.Grid()
	m = update(t, m, resizeTickMsg{gen: firstGen})
	if c, r := m.ctrl.Grid(); c != cols0 || r != rows0 {
		t.Errorf("stale resize tick rebuilt the grid: %dx%d", c, r)
	}

	m = update(t, m, resizeTickMsg{gen: m.resizeGen})
	cols, rows := m.ctrl.Grid()
	wantCols := (200 - layout.MarginX) / strideW
	wantRows := (50 - layout.MarginY) / strideH
	if cols != wantCols || rows != wantRows {
		t.Errorf("auto-fit gave %dx%d, want %dx%d", cols, rows, wantCols, wantRows)
	}
}

func TestResizeSuppressedDuringGrace(t *testing.T) {
	m := testModel(t)
	m.graceUntil = time.Now().Add(time.Minute)

	cols0, rows0 := m.ctrl.Grid()
	m = update(t, m, tea.WindowSizeMsg{Width: 300, Height: 60})
	m = update(t, m, resizeTickMsg{gen: m.resizeGen})
	if c, r := m.ctrl.Grid(); c != cols0 || r != rows0 {
		t.Errorf("grace window did not suppress auto-fit: %dx%d", c, r)
	}
}

func TestEscapeClearsSelectionThenHides(t *testing.T) {
	m := testModel(t)
	m.sel.Press(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	m.sel.Release(time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if _, _, ok := m.sel.Range(); ok {
		t.Fatal("first escape kept the selection")
	}
	if m.hidden {
		t.Fatal("first escape already hid the widget")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.hidden {
		t.Fatal("second escape did not hide the widget")
	}
}

func TestCycleMarker(t *testing.T) {
	m := testModel(t)
	d := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	n := len(m.settings.MarkerColors)

	for i := 0; i < n; i++ {
		m.cycleMarker(d)
		if idx, ok := m.markers[d]; !ok || idx != i {
			t.Fatalf("after %d cycles marker = %d %v", i+1, idx, ok)
		}
	}
	m.cycleMarker(d)
	if _, ok := m.markers[d]; ok {
		t.Error("marker did not clear after a full cycle")
	}

	m.cycleMarker(time.Time{})
	if len(m.markers) != 0 {
		t.Error("zero cursor produced a marker")
	}
}

func TestPersistedGridRestoredVerbatim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	st := viewstate.Defaults()
	cols, rows := 4, 2
	st.GridCols, st.GridRows = &cols, &rows
	if err := viewstate.Save(path, st); err != nil {
		t.Fatal(err)
	}

	m := New(path)
	if c, r := m.ctrl.Grid(); c != 4 || r != 2 {
		t.Errorf("restored grid = %dx%d, want 4x2", c, r)
	}
}

func TestZeroPersistedGridFallsBackToSpan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	st := viewstate.Defaults()
	cols, rows := 0, 0
	st.GridCols, st.GridRows = &cols, &rows
	if err := viewstate.Save(path, st); err != nil {
		t.Fatal(err)
	}

	m := New(path)
	if c, r := m.ctrl.Grid(); c != 3 || r != 1 {
		t.Errorf("zero persisted grid gave %dx%d, want 3x1 months span", c, r)
	}
}

func TestDefaultSpanFromMonthsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	st := viewstate.Defaults()
	st.MonthsBefore, st.MonthsAfter = 2, 3
	if err := viewstate.Save(path, st); err != nil {
		t.Fatal(err)
	}

	m := New(path)
	if c, r := m.ctrl.Grid(); c != 6 || r != 1 {
		t.Errorf("default span grid = %dx%d, want 6x1", c, r)
	}
}

func TestDragSelectionViaMouse(t *testing.T) {
	m := testModel(t)
	m.ctrl.Rebuild(2025, time.February, 2, 1)

	x := weekColW + 5*cellW
	y := navRows + 2
	m = update(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: x + strideW, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: x + strideW, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	lo, hi, ok := m.sel.Range()
	if !ok {
		t.Fatal("drag produced no selection")
	}
	if !lo.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)) ||
		!hi.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("range = %v → %v", lo, hi)
	}
	if m.sel.Dragging() {
		t.Error("still dragging after release")
	}
}
