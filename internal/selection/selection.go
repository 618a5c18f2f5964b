// Package selection tracks the drag-selected date range and derives the
// per-cell display state and the footer span summary.
package selection

import (
	"fmt"
	"strings"
	"time"
)

// Engine is the drag state machine: idle → dragging → idle. The selected
// range survives the pointer release and only disappears on Clear.
type Engine struct {
	start, end time.Time
	hasRange   bool
	dragging   bool
}

// Press starts a drag with start = end = d.
func (e *Engine) Press(d time.Time) {
	e.start, e.end = d, d
	e.hasRange = true
	e.dragging = true
}

// Motion extends the drag to d. It reports whether the range changed, so
// callers can limit themselves to a highlight-only refresh.
func (e *Engine) Motion(d time.Time) bool {
	if !e.dragging || d.Equal(e.end) {
		return false
	}
	e.end = d
	return true
}

// Release finalizes the drag. A zero d leaves the end where the last motion
// put it (pointer released outside any day cell).
func (e *Engine) Release(d time.Time) {
	if !e.dragging {
		return
	}
	e.dragging = false
	if !d.IsZero() {
		e.end = d
	}
}

// Clear drops the range and any drag in progress.
func (e *Engine) Clear() {
	e.start, e.end = time.Time{}, time.Time{}
	e.hasRange = false
	e.dragging = false
}

// Dragging reports whether a drag is in progress.
func (e *Engine) Dragging() bool { return e.dragging }

// Range returns the normalized (low, high) endpoints. ok is false when no
// selection exists.
func (e *Engine) Range() (lo, hi time.Time, ok bool) {
	if !e.hasRange {
		return time.Time{}, time.Time{}, false
	}
	if e.end.Before(e.start) {
		return e.end, e.start, true
	}
	return e.start, e.end, true
}

// Contains reports whether d lies inside the selected range.
func (e *Engine) Contains(d time.Time) bool {
	lo, hi, ok := e.Range()
	if !ok {
		return false
	}
	return !d.Before(lo) && !d.After(hi)
}

// Palette holds the colors the display-state logic hands out. The UI keeps
// one palette per theme.
type Palette struct {
	Accent    string // today's background
	AccentFG  string
	SelBG     string // selection background
	SelFG     string
	GridBG    string
	TextFG    string
	WeekendFG string
}

// DayColors resolves the background stack and text color for one day cell.
// Precedence: today > selected > holiday stripes > weekend > default. The
// returned slice has more than one entry only for stacked holidays.
func DayColors(p Palette, isToday, isWeekend, inSel bool, holidayColors []string) (bgs []string, fg string) {
	switch {
	case isToday:
		return []string{p.Accent}, p.AccentFG
	case inSel:
		return []string{p.SelBG}, p.SelFG
	case len(holidayColors) > 0:
		return holidayColors, p.AccentFG
	case isWeekend:
		return []string{p.GridBG}, p.WeekendFG
	default:
		return []string{p.GridBG}, p.TextFG
	}
}

// Summary renders the footer line. With no selection (or a single selected
// day) only the today part appears; otherwise the inclusive day count is
// decomposed into weeks and days, dropping zero clauses.
func (e *Engine) Summary(today time.Time) string {
	todayStr := "Today: " + today.Format("02.01.2006")

	lo, hi, ok := e.Range()
	if !ok || lo.Equal(hi) {
		return todayStr
	}

	totalDays := int(hi.Sub(lo).Hours()/24) + 1
	weeks := totalDays / 7
	days := totalDays % 7

	var parts []string
	if weeks > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", weeks, plural("week", weeks)))
	}
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", days, plural("day", days)))
	}

	return fmt.Sprintf("%s → %s:  %d days  (%s)     %s",
		lo.Format("02.01"), hi.Format("02.01"),
		totalDays, strings.Join(parts, ", "), todayStr)
}

func plural(unit string, n int) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
