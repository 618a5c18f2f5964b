// Package dategrid holds the pure calendar arithmetic behind the month
// panels: 6×7 grids, ISO week numbers and month stepping. No state, no UI.
package dategrid

import (
	"strconv"
	"time"
)

// Rows and Cols are the fixed dimensions of a month grid. Every month is
// rendered as 6 weeks so panel height stays constant across months.
const (
	Rows = 6
	Cols = 7
)

// DayAbbr are the Monday-first weekday headers.
var DayAbbr = [Cols]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Grid is a 6×7 month layout. A cell holds the day number (1–31) or 0 for
// an empty slot. Weeks start on Monday.
type Grid [Rows][Cols]int

// MonthGrid returns the grid for the given month. The first row is padded
// with empty cells up to the ISO weekday of day 1; trailing rows beyond the
// month's last day stay empty.
func MonthGrid(year int, month time.Month) Grid {
	var g Grid

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	// Monday-first column index of day 1.
	col := (int(first.Weekday()) + 6) % 7
	row := 0

	for day := 1; day <= DaysIn(year, month); day++ {
		g[row][col] = day
		col++
		if col == Cols {
			col = 0
			row++
		}
	}
	return g
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ISOWeekNumbers returns the ISO-8601 week number of each grid row, derived
// from the row's first non-empty day. Rows without a day yield "".
func ISOWeekNumbers(year int, month time.Month) [Rows]string {
	g := MonthGrid(year, month)
	var weeks [Rows]string
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if g[r][c] != 0 {
				_, wk := time.Date(year, month, g[r][c], 0, 0, 0, 0, time.UTC).ISOWeek()
				weeks[r] = strconv.Itoa(wk)
				break
			}
		}
	}
	return weeks
}

// DayOfYear returns the 1-based ordinal day of t within its year.
func DayOfYear(t time.Time) int {
	return t.YearDay()
}

// PrevMonth steps one month back, wrapping the year at January.
func PrevMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

// NextMonth steps one month forward, wrapping the year at December.
func NextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}
