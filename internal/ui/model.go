// Package ui hosts the calendar widget as a bubbletea program. The model
// owns all view state; background collaborators (signals, cron) reach it
// only through messages.
package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/si3rc0-sw/mini-calendar-tool/internal/autostart"
	"github.com/si3rc0-sw/mini-calendar-tool/internal/dategrid"
	"github.com/si3rc0-sw/mini-calendar-tool/internal/holiday"
	"github.com/si3rc0-sw/mini-calendar-tool/internal/ics"
	"github.com/si3rc0-sw/mini-calendar-tool/internal/layout"
	applog "github.com/si3rc0-sw/mini-calendar-tool/internal/log"
	"github.com/si3rc0-sw/mini-calendar-tool/internal/selection"
	"github.com/si3rc0-sw/mini-calendar-tool/internal/shell"
	"github.com/si3rc0-sw/mini-calendar-tool/internal/viewstate"
)

const (
	// resizeDebounce coalesces the burst of WindowSizeMsg events an
	// interactive resize produces.
	resizeDebounce = 30 * time.Millisecond

	// showGrace suppresses auto-fit right after a programmatic show, when
	// the terminal may still deliver size events for the old state.
	showGrace = 500 * time.Millisecond
)

// resizeTickMsg fires when a debounced resize settles. A stale generation
// means a newer resize superseded this one.
type resizeTickMsg struct {
	gen int
}

// Model is the bubbletea model of the calendar widget.
type Model struct {
	ctrl *layout.Controller
	sel  selection.Engine

	settings     viewstate.Settings
	settingsPath string

	today       time.Time
	centerYear  int
	centerMonth time.Month

	holidayCache map[int]map[time.Time][]holiday.Occurrence

	// markers maps a date to an index into the marker palette. Ephemeral:
	// not persisted across restarts.
	markers map[time.Time]int

	// cursor is the date last under the mouse pointer; marker actions
	// apply to it.
	cursor time.Time

	width, height int
	hidden        bool

	resizeGen  int
	graceUntil time.Time

	keys   keyMap
	styles styles

	form  *huh.Form
	draft *settingsDraft

	status   string
	quitting bool
}

// New builds the model from persisted view state. A persisted grid is
// restored verbatim; otherwise the months-before/after span decides the
// initial panel count.
func New(settingsPath string) Model {
	st := viewstate.Load(settingsPath)

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	m := Model{
		ctrl:         layout.New(),
		settings:     st,
		settingsPath: settingsPath,
		today:        today,
		centerYear:   today.Year(),
		centerMonth:  today.Month(),
		holidayCache: map[int]map[time.Time][]holiday.Occurrence{},
		markers:      map[time.Time]int{},
		keys:         defaultKeyMap(),
		styles:       newStyles(st.DarkMode),
		graceUntil:   time.Now().Add(showGrace),
	}
	m.ctrl.SetFootprint(strideW, strideH)

	cols, rows := st.MonthsBefore+1+st.MonthsAfter, 1
	// A persisted grid is only trusted when both dimensions are positive;
	// anything else falls back to the months span.
	if st.GridCols != nil && st.GridRows != nil && *st.GridCols > 0 && *st.GridRows > 0 {
		cols, rows = *st.GridCols, *st.GridRows
	}
	m.ctrl.Rebuild(m.centerYear, m.centerMonth, cols, rows)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// An open settings form owns the input until confirmed or aborted.
	if m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resizeGen++
		gen := m.resizeGen
		return m, tea.Tick(resizeDebounce, func(time.Time) tea.Msg {
			return resizeTickMsg{gen: gen}
		})

	case resizeTickMsg:
		if msg.gen != m.resizeGen {
			return m, nil // superseded by a newer resize
		}
		if time.Now().Before(m.graceUntil) {
			return m, nil
		}
		if cols, rows, changed := m.ctrl.AutoFit(m.width, m.height); changed {
			m.ctrl.Rebuild(m.centerYear, m.centerMonth, cols, rows)
			m.persist()
		}
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		return m.updateKeys(msg)

	case shell.ToggleMsg:
		if m.hidden {
			m.hidden = false
			m.graceUntil = time.Now().Add(showGrace)
		} else {
			m.hidden = true
			m.persist()
		}
		return m, nil

	case shell.DayChangedMsg:
		m.today = msg.Today
		if m.centerYear != m.today.Year() || m.centerMonth != m.today.Month() {
			m.centerYear, m.centerMonth = m.today.Year(), m.today.Month()
			m.rebuild()
		}
		return m, nil

	case shell.QuitMsg:
		return m.quit()
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.PrevMonth):
		m.centerYear, m.centerMonth = dategrid.PrevMonth(m.centerYear, m.centerMonth)
		m.rebuild()

	case key.Matches(msg, m.keys.NextMonth):
		m.centerYear, m.centerMonth = dategrid.NextMonth(m.centerYear, m.centerMonth)
		m.rebuild()

	case key.Matches(msg, m.keys.PrevYear):
		m.centerYear--
		m.rebuild()

	case key.Matches(msg, m.keys.NextYear):
		m.centerYear++
		m.rebuild()

	case key.Matches(msg, m.keys.Today):
		// Jumping to today also drops the selection.
		m.sel.Clear()
		m.centerYear, m.centerMonth = m.today.Year(), m.today.Month()
		m.rebuild()

	case key.Matches(msg, m.keys.Escape):
		// First escape clears the selection, second hides the widget.
		if _, _, ok := m.sel.Range(); ok {
			m.sel.Clear()
		} else {
			m.hidden = true
			m.persist()
		}

	case key.Matches(msg, m.keys.Marker):
		m.cycleMarker(m.cursor)

	case key.Matches(msg, m.keys.ClearMarkers):
		m.markers = map[time.Time]int{}

	case key.Matches(msg, m.keys.Export):
		m.status = m.export()

	case key.Matches(msg, m.keys.Settings):
		m.form, m.draft = buildSettingsForm(m.settings)
		return m, m.form.Init()
	}

	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.hidden {
		return m, nil
	}

	d, ok := m.dateAt(msg.X, msg.Y)
	if ok {
		m.cursor = d
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if ok && msg.Button == tea.MouseButtonLeft {
			m.sel.Press(d)
		}
	case tea.MouseActionMotion:
		if ok {
			m.sel.Motion(d)
		}
	case tea.MouseActionRelease:
		if ok {
			m.sel.Release(d)
		} else {
			m.sel.Release(time.Time{})
		}
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.applySettings()
		m.form, m.draft = nil, nil
	case huh.StateAborted:
		m.form, m.draft = nil, nil
	}
	return m, cmd
}

// dateAt resolves terminal coordinates to the date rendered there.
func (m *Model) dateAt(x, y int) (time.Time, bool) {
	y -= navRows
	if x < 0 || y < 0 {
		return time.Time{}, false
	}

	cols, rows := m.ctrl.Grid()
	pc, pr := x/strideW, y/strideH
	if pc >= cols || pr >= rows {
		return time.Time{}, false
	}

	lx, ly := x%strideW, y%strideH
	if lx >= panelW || lx < weekColW {
		return time.Time{}, false
	}
	row := ly - 2 // header and day-name lines
	if row < 0 || row >= dategrid.Rows {
		return time.Time{}, false
	}
	col := (lx - weekColW) / cellW
	if col >= dategrid.Cols {
		return time.Time{}, false
	}

	p := m.ctrl.Active()[pr*cols+pc]
	day := p.Grid[row][col]
	if day == 0 {
		return time.Time{}, false
	}
	return holiday.Date(p.Year, p.Month, day), true
}

// cycleMarker steps d through the marker palette: none → first color →
// … → last color → none.
func (m *Model) cycleMarker(d time.Time) {
	if d.IsZero() || len(m.settings.MarkerColors) == 0 {
		return
	}
	idx, ok := m.markers[d]
	switch {
	case !ok:
		m.markers[d] = 0
	case idx+1 < len(m.settings.MarkerColors):
		m.markers[d] = idx + 1
	default:
		delete(m.markers, d)
	}
}

func (m *Model) rebuild() {
	cols, rows := m.ctrl.Grid()
	m.ctrl.Rebuild(m.centerYear, m.centerMonth, cols, rows)
}

func (m *Model) holidaysFor(year int) map[time.Time][]holiday.Occurrence {
	if h, ok := m.holidayCache[year]; ok {
		return h
	}
	h := holiday.ForYear(year, holiday.EnabledSet(m.settings.Holidays))
	m.holidayCache[year] = h
	return h
}

// persist writes the current grid and window size to the settings file.
func (m *Model) persist() {
	cols, rows := m.ctrl.Grid()
	w, h := m.width, m.height
	m.settings.GridCols, m.settings.GridRows = &cols, &rows
	if w > 0 && h > 0 {
		m.settings.WindowWidth, m.settings.WindowHeight = &w, &h
	}
	if err := viewstate.Save(m.settingsPath, m.settings); err != nil {
		applog.Error("failed to save view state", err, "path", m.settingsPath)
	}
}

// export writes an iCalendar file: the selected range when one exists,
// otherwise the enabled holidays of the center year.
func (m *Model) export() string {
	if lo, hi, ok := m.sel.Range(); ok && !lo.Equal(hi) {
		name := "selection.ics"
		f, err := os.Create(name)
		if err != nil {
			applog.Error("export failed", err)
			return "export failed"
		}
		defer f.Close()
		if err := ics.WriteRange(f, lo, hi, ""); err != nil {
			applog.Error("export failed", err)
			return "export failed"
		}
		return "exported " + name
	}

	name := fmt.Sprintf("holidays-%d.ics", m.centerYear)
	f, err := os.Create(name)
	if err != nil {
		applog.Error("export failed", err)
		return "export failed"
	}
	defer f.Close()
	if err := ics.WriteHolidays(f, m.centerYear, m.settings.Holidays); err != nil {
		applog.Error("export failed", err)
		return "export failed"
	}
	return "exported " + name
}

// applySettings commits a confirmed settings form: persists the new view
// state, re-spans the grid to one row around the center month and resets
// the holiday cache.
func (m *Model) applySettings() {
	st := m.draft.apply(m.settings)

	if st.DarkMode != m.settings.DarkMode {
		m.styles = newStyles(st.DarkMode)
	}
	m.settings = st
	m.holidayCache = map[int]map[time.Time][]holiday.Occurrence{}

	cols, rows := st.MonthsBefore+1+st.MonthsAfter, 1
	m.ctrl.Rebuild(m.centerYear, m.centerMonth, cols, rows)
	m.persist()

	autostart.Set(m.draft.autostart)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.persist()
	m.quitting = true
	return m, tea.Quit
}
