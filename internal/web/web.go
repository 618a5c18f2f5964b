// Package web serves the HTML preview of the calendar plus a small JSON
// API. The /calendar page marks itself data-ready so the snapshot capture
// knows when rendering is complete.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/si3rc0-sw/mini-calendar-tool/internal/config"
	"github.com/si3rc0-sw/mini-calendar-tool/internal/dategrid"
	"github.com/si3rc0-sw/mini-calendar-tool/internal/holiday"
	applog "github.com/si3rc0-sw/mini-calendar-tool/internal/log"
	"github.com/si3rc0-sw/mini-calendar-tool/internal/viewstate"
)

// Server provides the preview HTTP endpoints.
type Server struct {
	cfg          *config.Config
	settingsPath string
	mux          *http.ServeMux
	tmpl         *template.Template
}

// NewServer constructs a Server reading view state from settingsPath.
func NewServer(cfg *config.Config, settingsPath string) *Server {
	s := &Server{
		cfg:          cfg,
		settingsPath: settingsPath,
		mux:          http.NewServeMux(),
		tmpl:         template.Must(template.New("calendar").Parse(calendarTemplate)),
	}
	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler { return s.mux }

// StartServer serves until ListenAndServe fails; graceful shutdown is the
// caller's concern.
func StartServer(_ context.Context, cfg *config.Config, settingsPath string) error {
	s := NewServer(cfg, settingsPath)
	applog.Info("starting preview server", "listen", "http://"+cfg.Listen)
	return http.ListenAndServe(cfg.Listen, s.Handler())
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/grid", s.handleGrid)
	s.mux.HandleFunc("/api/holidays", s.handleHolidays)
	s.mux.HandleFunc("/calendar", s.handleCalendar)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// gridResponse is the JSON shape for /api/grid.
type gridResponse struct {
	Year  int       `json:"year"`
	Month int       `json:"month"`
	Grid  [6][7]int `json:"grid"`
	Weeks [6]string `json:"weeks"`
	Days  [7]string `json:"day_headers"`
}

// handleGrid returns the 6×7 grid for one month.
//
// GET /api/grid?year=2025&month=6 (defaults: current month)
func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	q := r.URL.Query()
	year := parseIntDefault(q.Get("year"), now.Year())
	month := parseIntDefault(q.Get("month"), int(now.Month()))
	if month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "month out of range")
		return
	}

	resp := gridResponse{
		Year:  year,
		Month: month,
		Grid:  dategrid.MonthGrid(year, time.Month(month)),
		Weeks: dategrid.ISOWeekNumbers(year, time.Month(month)),
		Days:  dategrid.DayAbbr,
	}
	writeJSON(w, http.StatusOK, resp)
}

// holidayDTO is a JSON-friendly view of one holiday occurrence.
type holidayDTO struct {
	Date    string `json:"date"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// handleHolidays returns the enabled holidays of a year, sorted by date.
//
// GET /api/holidays?year=2025
func (s *Server) handleHolidays(w http.ResponseWriter, r *http.Request) {
	year := parseIntDefault(r.URL.Query().Get("year"), time.Now().Year())

	st := viewstate.Load(s.settingsPath)
	m := holiday.ForYear(year, holiday.EnabledSet(st.Holidays))

	dtos := make([]holidayDTO, 0, len(m))
	for d, occs := range m {
		for _, occ := range occs {
			dtos = append(dtos, holidayDTO{
				Date:    d.Format("2006-01-02"),
				Name:    occ.Name,
				Country: occ.Country,
			})
		}
	}
	sort.Slice(dtos, func(i, j int) bool {
		if dtos[i].Date != dtos[j].Date {
			return dtos[i].Date < dtos[j].Date
		}
		return dtos[i].Country < dtos[j].Country
	})
	writeJSON(w, http.StatusOK, dtos)
}

// calendarPage is the template payload for /calendar.
type calendarPage struct {
	Title  string
	Months []monthView
	Dark   bool
}

type monthView struct {
	Header string
	Days   [7]string
	Rows   [6]rowView
}

type rowView struct {
	Week  string
	Cells [7]dayCell
}

type dayCell struct {
	Day     int
	Today   bool
	Weekend bool
	Style   template.CSS
	Names   []string
}

// handleCalendar renders the month grid as HTML.
//
// GET /calendar?year=2025&month=6&span=3
// span months are laid out around the center month the same way the
// terminal UI does it.
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	q := r.URL.Query()
	year := parseIntDefault(q.Get("year"), now.Year())
	month := parseIntDefault(q.Get("month"), int(now.Month()))
	span := parseIntDefault(q.Get("span"), 3)
	if month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "month out of range")
		return
	}
	if span < 1 || span > 24 {
		span = 3
	}

	st := viewstate.Load(s.settingsPath)
	enabled := holiday.EnabledSet(st.Holidays)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	months := make([]monthView, 0, span)
	holidayCache := map[int]map[time.Time][]holiday.Occurrence{}

	for _, ym := range visibleMonths(year, time.Month(month), span) {
		y, m := ym[0], time.Month(ym[1])
		if _, ok := holidayCache[y]; !ok {
			holidayCache[y] = holiday.ForYear(y, enabled)
		}
		months = append(months, buildMonthView(y, m, today, holidayCache[y], st.HolidayColors))
	}

	page := calendarPage{
		Title:  "Mini Calendar",
		Months: months,
		Dark:   st.DarkMode,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, page); err != nil {
		applog.Error("calendar template render failed", err)
	}
}

// visibleMonths mirrors layout.VisibleMonths; duplicated here so the web
// package does not need the panel pool.
func visibleMonths(centerYear int, centerMonth time.Month, total int) [][2]int {
	before := (total - 1) / 2
	y, m := centerYear, centerMonth
	for i := 0; i < before; i++ {
		y, m = dategrid.PrevMonth(y, m)
	}
	out := make([][2]int, 0, total)
	for i := 0; i < total; i++ {
		out = append(out, [2]int{y, int(m)})
		y, m = dategrid.NextMonth(y, m)
	}
	return out
}

func buildMonthView(year int, month time.Month, today time.Time,
	holidays map[time.Time][]holiday.Occurrence, colors map[string]string) monthView {

	mv := monthView{
		Header: month.String() + " " + strconv.Itoa(year),
		Days:   dategrid.DayAbbr,
	}
	grid := dategrid.MonthGrid(year, month)
	weeks := dategrid.ISOWeekNumbers(year, month)
	for r := 0; r < dategrid.Rows; r++ {
		mv.Rows[r].Week = weeks[r]
		for c := 0; c < dategrid.Cols; c++ {
			day := grid[r][c]
			cell := dayCell{Day: day, Weekend: c >= 5}
			if day != 0 {
				d := holiday.Date(year, month, day)
				cell.Today = d.Equal(today)
				var stripes []string
				seen := map[string]bool{}
				for _, occ := range holidays[d] {
					cell.Names = append(cell.Names, occ.Name+" ("+occ.Country+")")
					if !seen[occ.Country] {
						seen[occ.Country] = true
						color, ok := colors[occ.Country]
						if !ok {
							color = "#888888"
						}
						stripes = append(stripes, color)
					}
				}
				cell.Style = stripeStyle(stripes)
			}
			mv.Rows[r].Cells[c] = cell
		}
	}
	return mv
}

// stripeStyle turns the stacked holiday colors into an inline background:
// a plain color for one holiday, a hard-stop gradient of equal horizontal
// stripes for several.
func stripeStyle(colors []string) template.CSS {
	switch len(colors) {
	case 0:
		return ""
	case 1:
		return template.CSS("background:" + colors[0] + ";color:#FFFFFF")
	}
	var b strings.Builder
	b.WriteString("background:linear-gradient(to bottom")
	n := len(colors)
	for i, c := range colors {
		fmt.Fprintf(&b, ", %s %d%% %d%%", c, i*100/n, (i+1)*100/n)
	}
	b.WriteString(");color:#FFFFFF")
	return template.CSS(b.String())
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		applog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}
