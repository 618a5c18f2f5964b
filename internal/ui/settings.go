package ui

import (
	"fmt"
	"regexp"

	"github.com/charmbracelet/huh"

	"github.com/si3rc0-sw/mini-calendar-tool/internal/autostart"
	"github.com/si3rc0-sw/mini-calendar-tool/internal/holiday"
	"github.com/si3rc0-sw/mini-calendar-tool/internal/viewstate"
)

// settingsDraft holds the form values while the settings dialog is open.
// Per-country slices are parallel to holiday.Countries; adding a country
// to the registry adds a form group without touching this logic.
type settingsDraft struct {
	monthsBefore int
	monthsAfter  int
	dark         bool
	autostart    bool

	perCountry [][]string
	colors     []string
	markers    []string
}

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func validHex(s string) error {
	if !hexColorRe.MatchString(s) {
		return fmt.Errorf("use #RRGGBB")
	}
	return nil
}

// countrySelect builds one per-country holiday multi-select. The country
// index and code come in as explicit parameters so every field binds its
// own destination slice.
func countrySelect(code, name string, value *[]string) *huh.MultiSelect[string] {
	defs := holiday.ByCountry(code)
	opts := make([]huh.Option[string], 0, len(defs))
	for _, d := range defs {
		opts = append(opts, huh.NewOption(d.Name, d.Key))
	}
	return huh.NewMultiSelect[string]().
		Title(name + " holidays").
		Options(opts...).
		Value(value)
}

// colorInput builds the holiday color field for one country code.
func colorInput(code string, value *string) *huh.Input {
	return huh.NewInput().
		Title(code + " holiday color").
		CharLimit(7).
		Validate(validHex).
		Value(value)
}

// markerInput builds the field for one marker palette slot.
func markerInput(index int, value *string) *huh.Input {
	return huh.NewInput().
		Title(fmt.Sprintf("Marker color %d", index+1)).
		CharLimit(7).
		Validate(validHex).
		Value(value)
}

func spanOptions() []huh.Option[int] {
	opts := make([]huh.Option[int], 0, 7)
	for n := 0; n <= 6; n++ {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%d", n), n))
	}
	return opts
}

// buildSettingsForm seeds a draft from the current settings and lays out
// the dialog: general options, one holiday group per country, colors.
func buildSettingsForm(st viewstate.Settings) (*huh.Form, *settingsDraft) {
	d := &settingsDraft{
		monthsBefore: st.MonthsBefore,
		monthsAfter:  st.MonthsAfter,
		dark:         st.DarkMode,
		autostart:    autostart.Enabled(),
		perCountry:   make([][]string, len(holiday.Countries)),
		colors:       make([]string, len(holiday.Countries)),
		markers:      append([]string(nil), st.MarkerColors...),
	}

	enabled := holiday.EnabledSet(st.Holidays)
	for i, c := range holiday.Countries {
		for _, def := range holiday.ByCountry(c.Code) {
			if enabled[def.Key] {
				d.perCountry[i] = append(d.perCountry[i], def.Key)
			}
		}
		d.colors[i] = st.HolidayColors[c.Code]
	}

	general := huh.NewGroup(
		huh.NewSelect[int]().
			Title("Months before center").
			Options(spanOptions()...).
			Value(&d.monthsBefore),
		huh.NewSelect[int]().
			Title("Months after center").
			Options(spanOptions()...).
			Value(&d.monthsAfter),
		huh.NewSelect[bool]().
			Title("Theme").
			Options(
				huh.NewOption("Light", false),
				huh.NewOption("Dark", true),
			).
			Value(&d.dark),
		huh.NewConfirm().
			Title("Start with the desktop session?").
			Value(&d.autostart),
	).Title("General")

	groups := []*huh.Group{general}
	for i, c := range holiday.Countries {
		groups = append(groups, huh.NewGroup(
			countrySelect(c.Code, c.Name, &d.perCountry[i]),
			colorInput(c.Code, &d.colors[i]),
		).Title(c.Name))
	}

	colorFields := make([]huh.Field, 0, len(d.markers))
	for i := range d.markers {
		colorFields = append(colorFields, markerInput(i, &d.markers[i]))
	}
	if len(colorFields) > 0 {
		groups = append(groups, huh.NewGroup(colorFields...).Title("Marker palette"))
	}

	form := huh.NewForm(groups...)
	if st.DarkMode {
		form = form.WithTheme(huh.ThemeBase16())
	}
	return form, d
}

// apply folds the confirmed draft back into the settings. Holiday keys
// keep registry order across countries.
func (d *settingsDraft) apply(st viewstate.Settings) viewstate.Settings {
	st.MonthsBefore = d.monthsBefore
	st.MonthsAfter = d.monthsAfter
	st.DarkMode = d.dark

	picked := map[string]bool{}
	for _, keys := range d.perCountry {
		for _, k := range keys {
			picked[k] = true
		}
	}
	st.Holidays = make([]string, 0, len(picked))
	for _, def := range holiday.Registry {
		if picked[def.Key] {
			st.Holidays = append(st.Holidays, def.Key)
		}
	}

	if st.HolidayColors == nil {
		st.HolidayColors = map[string]string{}
	}
	for i, c := range holiday.Countries {
		if d.colors[i] != "" {
			st.HolidayColors[c.Code] = d.colors[i]
		}
	}
	st.MarkerColors = append([]string(nil), d.markers...)
	return st
}
