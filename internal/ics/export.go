// Package ics writes the calendar's holidays and selections as iCalendar
// data so they can be imported into a regular calendar application.
package ics

import (
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/si3rc0-sw/mini-calendar-tool/internal/holiday"
	applog "github.com/si3rc0-sw/mini-calendar-tool/internal/log"
)

const prodID = "-//mini-calendar-tool//holiday export//EN"

// WriteHolidays exports every enabled holiday of the given year as all-day
// events. Fixed annual holidays carry a yearly RRULE so the importing
// calendar keeps them beyond the exported year; Easter-relative and
// table-backed dates are emitted as plain single-year events.
func WriteHolidays(w io.Writer, year int, enabledKeys []string) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(prodID)

	now := time.Now()
	for _, key := range enabledKeys {
		def, ok := holiday.ByKey(key)
		if !ok {
			// Same policy as the grid overlay: unknown keys are ignored.
			continue
		}
		dates := def.Dates(year)
		if len(dates) == 0 {
			applog.Debug("holiday yielded no dates for export", "key", key, "year", year)
			continue
		}

		for i, d := range dates {
			uid := fmt.Sprintf("%s-%d-%d@mini-calendar", def.Key, year, i)
			ev := cal.AddEvent(uid)
			ev.SetDtStampTime(now)
			ev.SetSummary(fmt.Sprintf("%s (%s)", def.Name, def.Country))
			ev.SetAllDayStartAt(d)
			ev.SetAllDayEndAt(d.AddDate(0, 0, 1))
			if def.Annual != nil && def.Annual.Span == 1 {
				ev.AddRrule(fmt.Sprintf("FREQ=YEARLY;BYMONTH=%d;BYMONTHDAY=%d",
					int(def.Annual.Month), def.Annual.Day))
			}
		}
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}

// WriteRange exports a selected date span as one all-day event.
func WriteRange(w io.Writer, lo, hi time.Time, summary string) error {
	if hi.Before(lo) {
		lo, hi = hi, lo
	}
	if summary == "" {
		summary = fmt.Sprintf("Selection %s – %s", lo.Format("02.01.2006"), hi.Format("02.01.2006"))
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(prodID)

	uid := fmt.Sprintf("selection-%s@mini-calendar", lo.Format("20060102"))
	ev := cal.AddEvent(uid)
	ev.SetDtStampTime(time.Now())
	ev.SetSummary(summary)
	ev.SetAllDayStartAt(lo)
	// DTEND is exclusive for all-day events.
	ev.SetAllDayEndAt(hi.AddDate(0, 0, 1))

	_, err := io.WriteString(w, cal.Serialize())
	return err
}
