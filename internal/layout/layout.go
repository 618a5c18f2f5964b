// Package layout owns the pool of reusable month panels and decides how
// many of them fit the current window. Panels are allocated once and
// reconfigured in place; the pool never shrinks within a session.
package layout

import (
	"fmt"
	"time"

	"github.com/si3rc0-sw/mini-calendar-tool/internal/dategrid"
)

// Margins subtracted from the window size before dividing by the month
// footprint: MarginX covers the outer horizontal padding, MarginY the
// navigation row and footer.
const (
	MarginX = 4
	MarginY = 3
)

// Panel is one reusable month slot: header, week-number column and the 6×7
// day grid. Inactive panels keep their storage but are not rendered.
type Panel struct {
	Year   int
	Month  time.Month
	Header string
	Weeks  [dategrid.Rows]string
	Grid   dategrid.Grid

	active bool
}

// Active reports whether the panel is currently assigned a month.
func (p *Panel) Active() bool { return p.active }

// fill reconfigures the panel for a month without reallocating anything.
func (p *Panel) fill(year int, month time.Month) {
	p.Year = year
	p.Month = month
	p.Header = fmt.Sprintf("%s %d", month, year)
	p.Weeks = dategrid.ISOWeekNumbers(year, month)
	p.Grid = dategrid.MonthGrid(year, month)
	p.active = true
}

// Controller tracks the visible columns×rows of month panels, the center
// month, and the measured single-month footprint used for auto-fit.
type Controller struct {
	pool []*Panel

	cols, rows int

	// Measured footprint of one month panel, set once after the first
	// render. Zero means auto-fit is not possible yet.
	monthW, monthH int
}

// New returns a controller with an empty pool.
func New() *Controller {
	return &Controller{cols: 1, rows: 1}
}

// SetFootprint records the one-time-measured month panel size.
func (c *Controller) SetFootprint(w, h int) {
	if c.monthW == 0 && w > 0 && h > 0 {
		c.monthW = w
		c.monthH = h
	}
}

// Footprint returns the measured month panel size (zero until measured).
func (c *Controller) Footprint() (w, h int) { return c.monthW, c.monthH }

// Grid returns the current (columns, rows).
func (c *Controller) Grid() (cols, rows int) { return c.cols, c.rows }

// PoolSize returns the number of panels ever allocated.
func (c *Controller) PoolSize() int { return len(c.pool) }

// VisibleMonths derives the ordered month list for a center month and panel
// count: (total−1)/2 months before the center, then total consecutive
// months. This is the single canonical derivation; the center sits as close
// as possible to the middle of the row-major flattening.
func VisibleMonths(centerYear int, centerMonth time.Month, total int) [][2]int {
	before := (total - 1) / 2
	y, m := centerYear, centerMonth
	for i := 0; i < before; i++ {
		y, m = dategrid.PrevMonth(y, m)
	}
	months := make([][2]int, 0, total)
	for i := 0; i < total; i++ {
		months = append(months, [2]int{y, int(m)})
		y, m = dategrid.NextMonth(y, m)
	}
	return months
}

// Rebuild assigns cols×rows months around the center to the pool in
// row-major order, growing the pool if needed and deactivating any excess
// slots. It returns the active panels.
func (c *Controller) Rebuild(centerYear int, centerMonth time.Month, cols, rows int) []*Panel {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	c.cols, c.rows = cols, rows

	total := cols * rows
	for len(c.pool) < total {
		c.pool = append(c.pool, &Panel{})
	}

	for i, ym := range VisibleMonths(centerYear, centerMonth, total) {
		c.pool[i].fill(ym[0], time.Month(ym[1]))
	}
	for i := total; i < len(c.pool); i++ {
		c.pool[i].active = false
	}
	return c.pool[:total]
}

// Active returns the currently assigned panels in row-major order.
func (c *Controller) Active() []*Panel {
	total := c.cols * c.rows
	if total > len(c.pool) {
		total = len(c.pool)
	}
	return c.pool[:total]
}

// AutoFit computes how many panels fit a window of the given size. It
// reports changed=false when the result equals the current grid, so callers
// can skip redundant rebuilds, or when the footprint is not yet measured.
func (c *Controller) AutoFit(width, height int) (cols, rows int, changed bool) {
	if c.monthW <= 0 || c.monthH <= 0 {
		return c.cols, c.rows, false
	}
	cols = (width - MarginX) / c.monthW
	if cols < 1 {
		cols = 1
	}
	rows = (height - MarginY) / c.monthH
	if rows < 1 {
		rows = 1
	}
	return cols, rows, cols != c.cols || rows != c.rows
}
