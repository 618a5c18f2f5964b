// Package holiday is the static registry of public holidays the calendar
// can overlay, together with the date generators that expand a definition
// into concrete days of a given year.
package holiday

import (
	"time"

	"github.com/teambition/rrule-go"
)

// Occurrence is one holiday falling on a concrete date.
type Occurrence struct {
	Name    string
	Country string
}

// AnnualRule describes a holiday that recurs on the same month/day every
// year. Span is the number of consecutive days (>= 1). Table-backed and
// Easter-relative holidays have no AnnualRule.
type AnnualRule struct {
	Month time.Month
	Day   int
	Span  int
}

// Definition is one registry entry. Dates expands the holiday for a year
// and may yield zero dates (table-backed entries outside their year range).
type Definition struct {
	Key     string
	Name    string
	Country string
	Annual  *AnnualRule
	Dates   func(year int) []time.Time
}

// Country is a selectable holiday country.
type Country struct {
	Code string
	Name string
}

// Countries lists the supported countries in display order.
var Countries = []Country{
	{"CH", "Switzerland"},
	{"DE", "Germany"},
	{"CN", "China"},
}

// Date returns the canonical midnight-UTC time used as map key throughout
// the holiday and selection code.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Easter computes Easter Sunday via the anonymous Gregorian algorithm
// (Meeus/Jones/Butcher).
func Easter(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return Date(year, time.Month(month), day)
}

// fixed generates the same month/day every year. The expansion runs through
// an rrule yearly recurrence so the definition carries the exact rule the
// ICS exporter emits.
func fixed(month time.Month, day int) *Definition {
	return &Definition{
		Annual: &AnnualRule{Month: month, Day: day, Span: 1},
		Dates: func(year int) []time.Time {
			r, err := rrule.NewRRule(rrule.ROption{
				Freq:       rrule.YEARLY,
				Dtstart:    Date(year, time.January, 1),
				Count:      1,
				Bymonth:    []int{int(month)},
				Bymonthday: []int{day},
			})
			if err != nil {
				return nil
			}
			return r.All()
		},
	}
}

// fixedRange generates a run of n consecutive days from a fixed start.
func fixedRange(month time.Month, day, n int) *Definition {
	return &Definition{
		Annual: &AnnualRule{Month: month, Day: day, Span: n},
		Dates: func(year int) []time.Time {
			start := Date(year, month, day)
			days := make([]time.Time, n)
			for i := range days {
				days[i] = start.AddDate(0, 0, i)
			}
			return days
		},
	}
}

// easterRel generates Easter Sunday plus a fixed day offset.
func easterRel(offset int) *Definition {
	return &Definition{
		Dates: func(year int) []time.Time {
			return []time.Time{Easter(year).AddDate(0, 0, offset)}
		},
	}
}

// tableEntry is a month/day pair inside a year-indexed lookup table.
type tableEntry struct {
	Month time.Month
	Day   int
}

// fromTable generates dates from a closed year lookup table, expanded into
// span consecutive days. Years outside the table yield nothing.
func fromTable(table map[int]tableEntry, span int) *Definition {
	return &Definition{
		Dates: func(year int) []time.Time {
			entry, ok := table[year]
			if !ok {
				return nil
			}
			start := Date(year, entry.Month, entry.Day)
			days := make([]time.Time, span)
			for i := range days {
				days[i] = start.AddDate(0, 0, i)
			}
			return days
		},
	}
}

// Chinese lunar-calendar lookup tables. The tables cover 2024–2036; later
// years need a data update.
var (
	springFestival = map[int]tableEntry{
		2024: {time.February, 10}, 2025: {time.January, 29},
		2026: {time.February, 17}, 2027: {time.February, 6},
		2028: {time.January, 26}, 2029: {time.February, 13},
		2030: {time.February, 3}, 2031: {time.January, 23},
		2032: {time.February, 11}, 2033: {time.January, 31},
		2034: {time.February, 19}, 2035: {time.February, 8},
		2036: {time.January, 28},
	}
	qingming = map[int]tableEntry{
		2024: {time.April, 4}, 2025: {time.April, 4},
		2026: {time.April, 5}, 2027: {time.April, 5},
		2028: {time.April, 4}, 2029: {time.April, 4},
		2030: {time.April, 5}, 2031: {time.April, 5},
		2032: {time.April, 4}, 2033: {time.April, 4},
		2034: {time.April, 5}, 2035: {time.April, 5},
		2036: {time.April, 4},
	}
	dragonBoat = map[int]tableEntry{
		2024: {time.June, 10}, 2025: {time.May, 31},
		2026: {time.June, 19}, 2027: {time.June, 9},
		2028: {time.May, 28}, 2029: {time.June, 16},
		2030: {time.June, 5}, 2031: {time.June, 24},
		2032: {time.June, 13}, 2033: {time.June, 2},
		2034: {time.June, 22}, 2035: {time.June, 11},
		2036: {time.May, 31},
	}
	midAutumn = map[int]tableEntry{
		2024: {time.September, 17}, 2025: {time.October, 6},
		2026: {time.September, 25}, 2027: {time.September, 15},
		2028: {time.October, 3}, 2029: {time.September, 22},
		2030: {time.September, 12}, 2031: {time.October, 1},
		2032: {time.September, 19}, 2033: {time.September, 8},
		2034: {time.September, 28}, 2035: {time.September, 16},
		2036: {time.September, 5},
	}
)

// def finalizes a generator stub with its identity fields.
func def(key, name, country string, d *Definition) Definition {
	d.Key = key
	d.Name = name
	d.Country = country
	return *d
}

// Registry lists every known holiday in declaration order. Adding a country
// means appending entries here and to Countries; the query functions below
// need no changes.
var Registry = []Definition{
	// Switzerland
	def("ch_neujahr", "Neujahr", "CH", fixed(time.January, 1)),
	def("ch_berchtoldstag", "Berchtoldstag", "CH", fixed(time.January, 2)),
	def("ch_karfreitag", "Karfreitag", "CH", easterRel(-2)),
	def("ch_ostermontag", "Ostermontag", "CH", easterRel(1)),
	def("ch_tag_der_arbeit", "Tag der Arbeit", "CH", fixed(time.May, 1)),
	def("ch_auffahrt", "Auffahrt", "CH", easterRel(39)),
	def("ch_pfingstmontag", "Pfingstmontag", "CH", easterRel(49)),
	def("ch_bundesfeier", "Bundesfeier", "CH", fixed(time.August, 1)),
	def("ch_weihnachten", "Weihnachten", "CH", fixed(time.December, 25)),
	// Germany
	def("de_neujahr", "Neujahr", "DE", fixed(time.January, 1)),
	def("de_karfreitag", "Karfreitag", "DE", easterRel(-2)),
	def("de_ostermontag", "Ostermontag", "DE", easterRel(1)),
	def("de_tag_der_arbeit", "Tag der Arbeit", "DE", fixed(time.May, 1)),
	def("de_christi_himmelfahrt", "Christi Himmelfahrt", "DE", easterRel(39)),
	def("de_pfingstmontag", "Pfingstmontag", "DE", easterRel(49)),
	def("de_tag_dt_einheit", "Tag der Deutschen Einheit", "DE", fixed(time.October, 3)),
	def("de_weihnachten1", "1. Weihnachtstag", "DE", fixed(time.December, 25)),
	def("de_weihnachten2", "2. Weihnachtstag", "DE", fixed(time.December, 26)),
	// China
	def("cn_neujahr", "New Year's Day", "CN", fixed(time.January, 1)),
	def("cn_spring_festival", "Spring Festival", "CN", fromTable(springFestival, 3)),
	def("cn_qingming", "Qingming Festival", "CN", fromTable(qingming, 1)),
	def("cn_labour_day", "Labour Day", "CN", fixed(time.May, 1)),
	def("cn_dragon_boat", "Dragon Boat Festival", "CN", fromTable(dragonBoat, 1)),
	def("cn_mid_autumn", "Mid-Autumn Festival", "CN", fromTable(midAutumn, 1)),
	def("cn_national_day", "National Day", "CN", fixedRange(time.October, 1, 3)),
}

var byKey = func() map[string]*Definition {
	m := make(map[string]*Definition, len(Registry))
	for i := range Registry {
		m[Registry[i].Key] = &Registry[i]
	}
	return m
}()

// ForYear expands every enabled holiday for the year into a date→occurrence
// map. Keys not present in the registry are ignored.
func ForYear(year int, enabled map[string]bool) map[time.Time][]Occurrence {
	result := make(map[time.Time][]Occurrence)
	// Walk the registry, not the enabled set, so stacked occurrences on a
	// shared date keep declaration order.
	for i := range Registry {
		d := &Registry[i]
		if !enabled[d.Key] {
			continue
		}
		for _, day := range d.Dates(year) {
			result[day] = append(result[day], Occurrence{Name: d.Name, Country: d.Country})
		}
	}
	return result
}

// ByCountry returns the registry entries for a country code in declaration
// order.
func ByCountry(code string) []Definition {
	var defs []Definition
	for _, d := range Registry {
		if d.Country == code {
			defs = append(defs, d)
		}
	}
	return defs
}

// ByKey looks up a single definition.
func ByKey(key string) (Definition, bool) {
	d, ok := byKey[key]
	if !ok {
		return Definition{}, false
	}
	return *d, true
}

// EnabledSet converts the persisted key list into a lookup set.
func EnabledSet(keys []string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}
