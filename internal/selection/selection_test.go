package selection

import (
	"strings"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var testPalette = Palette{
	Accent:    "#0078D4",
	AccentFG:  "#FFFFFF",
	SelBG:     "#B3D7F2",
	SelFG:     "#000000",
	GridBG:    "#FFFFFF",
	TextFG:    "#000000",
	WeekendFG: "#CC0000",
}

func TestDragLifecycle(t *testing.T) {
	var e Engine

	if _, _, ok := e.Range(); ok {
		t.Fatal("fresh engine has a range")
	}

	e.Press(date(2025, 3, 10))
	if !e.Dragging() {
		t.Fatal("not dragging after press")
	}
	lo, hi, ok := e.Range()
	if !ok || !lo.Equal(date(2025, 3, 10)) || !hi.Equal(date(2025, 3, 10)) {
		t.Fatalf("range after press = %v..%v", lo, hi)
	}

	if !e.Motion(date(2025, 3, 14)) {
		t.Fatal("motion to a new date reported no change")
	}
	if e.Motion(date(2025, 3, 14)) {
		t.Fatal("motion to the same date reported a change")
	}

	e.Release(date(2025, 3, 12))
	if e.Dragging() {
		t.Fatal("still dragging after release")
	}
	// Range persists after release.
	lo, hi, ok = e.Range()
	if !ok || !lo.Equal(date(2025, 3, 10)) || !hi.Equal(date(2025, 3, 12)) {
		t.Fatalf("range after release = %v..%v", lo, hi)
	}

	// Motion outside a drag is a no-op.
	if e.Motion(date(2025, 3, 20)) {
		t.Fatal("motion while idle changed the range")
	}

	e.Clear()
	if _, _, ok := e.Range(); ok {
		t.Fatal("range survived Clear")
	}
}

func TestBackwardDragNormalized(t *testing.T) {
	var e Engine
	e.Press(date(2025, 5, 20))
	e.Motion(date(2025, 5, 3))
	e.Release(time.Time{})

	lo, hi, ok := e.Range()
	if !ok || !lo.Equal(date(2025, 5, 3)) || !hi.Equal(date(2025, 5, 20)) {
		t.Fatalf("range = %v..%v, want normalized", lo, hi)
	}
	if !e.Contains(date(2025, 5, 10)) || e.Contains(date(2025, 5, 2)) {
		t.Error("Contains disagrees with range")
	}
}

func TestReleaseOutsideCells(t *testing.T) {
	var e Engine
	e.Press(date(2025, 1, 5))
	e.Motion(date(2025, 1, 8))
	e.Release(time.Time{})
	_, hi, _ := e.Range()
	if !hi.Equal(date(2025, 1, 8)) {
		t.Errorf("release outside cells moved the end to %v", hi)
	}
}

func TestSummary(t *testing.T) {
	today := date(2025, 6, 15)
	var e Engine

	if got := e.Summary(today); got != "Today: 15.06.2025" {
		t.Errorf("empty summary = %q", got)
	}

	e.Press(date(2025, 1, 1))
	e.Release(date(2025, 1, 1))
	if got := e.Summary(today); got != "Today: 15.06.2025" {
		t.Errorf("single-day summary = %q", got)
	}

	e.Press(date(2025, 1, 1))
	e.Motion(date(2025, 1, 10))
	e.Release(date(2025, 1, 10))
	got := e.Summary(today)
	want := "01.01 → 10.01:  10 days  (1 week, 3 days)     Today: 15.06.2025"
	if got != want {
		t.Errorf("summary = %q, want %q", got, want)
	}
}

func TestSummaryClauseOmission(t *testing.T) {
	today := date(2025, 6, 15)
	var e Engine

	// Exactly two weeks: no days clause.
	e.Press(date(2025, 2, 3))
	e.Motion(date(2025, 2, 16))
	if got := e.Summary(today); !strings.Contains(got, "14 days  (2 weeks)") {
		t.Errorf("two-week summary = %q", got)
	}

	// Under a week: no weeks clause, singular handled.
	e.Press(date(2025, 2, 3))
	e.Motion(date(2025, 2, 4))
	if got := e.Summary(today); !strings.Contains(got, "2 days  (2 days)") {
		t.Errorf("two-day summary = %q", got)
	}

	// Eight days: 1 week, 1 day — both singular.
	e.Press(date(2025, 2, 3))
	e.Motion(date(2025, 2, 10))
	if got := e.Summary(today); !strings.Contains(got, "8 days  (1 week, 1 day)") {
		t.Errorf("eight-day summary = %q", got)
	}
}

func TestDayColorsPrecedence(t *testing.T) {
	holiday := []string{"#FF0000", "#4CAF50"}

	// Today wins over everything.
	bgs, fg := DayColors(testPalette, true, true, true, holiday)
	if len(bgs) != 1 || bgs[0] != testPalette.Accent || fg != testPalette.AccentFG {
		t.Errorf("today colors = %v/%s", bgs, fg)
	}

	// Selection beats holidays and weekend.
	bgs, _ = DayColors(testPalette, false, true, true, holiday)
	if len(bgs) != 1 || bgs[0] != testPalette.SelBG {
		t.Errorf("selection colors = %v", bgs)
	}

	// Stacked holidays keep all stripes.
	bgs, _ = DayColors(testPalette, false, true, false, holiday)
	if len(bgs) != 2 || bgs[0] != "#FF0000" || bgs[1] != "#4CAF50" {
		t.Errorf("holiday stripes = %v", bgs)
	}

	// Weekend only tints the text.
	bgs, fg = DayColors(testPalette, false, true, false, nil)
	if bgs[0] != testPalette.GridBG || fg != testPalette.WeekendFG {
		t.Errorf("weekend colors = %v/%s", bgs, fg)
	}

	// Plain day.
	bgs, fg = DayColors(testPalette, false, false, false, nil)
	if bgs[0] != testPalette.GridBG || fg != testPalette.TextFG {
		t.Errorf("default colors = %v/%s", bgs, fg)
	}
}
