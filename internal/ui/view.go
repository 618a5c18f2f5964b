package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/si3rc0-sw/mini-calendar-tool/internal/dategrid"
	"github.com/si3rc0-sw/mini-calendar-tool/internal/holiday"
	"github.com/si3rc0-sw/mini-calendar-tool/internal/layout"
	"github.com/si3rc0-sw/mini-calendar-tool/internal/selection"
)

// View implements tea.Model. The panels render with the exact character
// geometry the hit-testing constants describe.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.form != nil {
		return m.form.View()
	}

	footer := m.footerLine()
	if m.hidden {
		return footer + "\n"
	}

	var b strings.Builder
	b.WriteString(m.navLine())
	b.WriteString("\n")

	cols, rows := m.ctrl.Grid()
	panels := m.ctrl.Active()
	for pr := 0; pr < rows; pr++ {
		rendered := make([][]string, 0, cols)
		for pc := 0; pc < cols; pc++ {
			rendered = append(rendered, m.renderPanel(panels[pr*cols+pc]))
		}
		for line := 0; line < panelH; line++ {
			for pc, p := range rendered {
				if pc > 0 {
					b.WriteString(strings.Repeat(" ", gapX))
				}
				b.WriteString(p[line])
			}
			b.WriteString("\n")
		}
		b.WriteString(strings.Repeat("\n", gapY))
	}

	b.WriteString(footer)
	b.WriteString("\n")
	return b.String()
}

func (m Model) navLine() string {
	nav := m.styles.Nav.Render("◀◀ ◀  [t]oday  ▶ ▶▶")
	title := m.styles.Title.Render(
		fmt.Sprintf("Mini Calendar  Day: %d", dategrid.DayOfYear(m.today)))
	return nav + "   " + title
}

func (m Model) footerLine() string {
	line := m.styles.Footer.Render(m.sel.Summary(m.today))
	if m.status != "" {
		line += "   " + m.styles.Status.Render(m.status)
	}
	return line
}

// renderPanel produces the panelH lines of one month, each exactly panelW
// characters wide before styling.
func (m Model) renderPanel(p *layout.Panel) []string {
	lines := make([]string, 0, panelH)
	lines = append(lines, m.styles.Header.Render(p.Header))

	var names strings.Builder
	names.WriteString(strings.Repeat(" ", weekColW))
	for _, d := range dategrid.DayAbbr {
		fmt.Fprintf(&names, "%3s ", d)
	}
	lines = append(lines, m.styles.DayName.Render(names.String()))

	for r := 0; r < dategrid.Rows; r++ {
		var row strings.Builder
		row.WriteString(m.styles.WeekNum.Render(fmt.Sprintf("%2s ", p.Weeks[r])))
		for c := 0; c < dategrid.Cols; c++ {
			row.WriteString(m.renderDay(p, r, c))
		}
		lines = append(lines, row.String())
	}
	return lines
}

func (m Model) renderDay(p *layout.Panel, r, c int) string {
	day := p.Grid[r][c]
	if day == 0 {
		return strings.Repeat(" ", cellW)
	}

	d := holiday.Date(p.Year, p.Month, day)
	bgs, fg := m.dayColors(d, c >= 5)
	return renderCell(fmt.Sprintf("%3d ", day), bgs, fg)
}

// dayColors resolves the display state of one date. The marker overlay
// draws on top of whatever the precedence rules picked.
func (m Model) dayColors(d time.Time, weekend bool) (bgs []string, fg string) {
	var stripes []string
	seen := map[string]bool{}
	for _, occ := range m.holidaysFor(d.Year())[d] {
		if seen[occ.Country] {
			continue
		}
		seen[occ.Country] = true
		if color, ok := m.settings.HolidayColors[occ.Country]; ok {
			stripes = append(stripes, color)
		}
	}

	bgs, fg = selection.DayColors(m.styles.Palette,
		d.Equal(m.today), weekend, m.sel.Contains(d), stripes)

	if idx, ok := m.markers[d]; ok && idx < len(m.settings.MarkerColors) {
		color := m.settings.MarkerColors[idx]
		return []string{color}, contrastFG(color)
	}
	return bgs, fg
}
