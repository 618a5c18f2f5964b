// Package viewstate is the bridge between the calendar and its flat
// settings file. Loading is defensive: every field falls back to its
// default individually, so a corrupt or truncated file degrades to defaults
// instead of failing.
package viewstate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"

	applog "github.com/si3rc0-sw/mini-calendar-tool/internal/log"
)

// FileName is the settings file created in the user's home directory when
// no explicit path is configured.
const FileName = ".mini-calendar-settings.json"

// Settings is the persisted view state. Nullable ints stay nil until the
// user has resized at least once.
type Settings struct {
	DarkMode      bool              `json:"dark_mode"`
	WindowWidth   *int              `json:"window_width"`
	WindowHeight  *int              `json:"window_height"`
	GridCols      *int              `json:"grid_cols"`
	GridRows      *int              `json:"grid_rows"`
	MonthsBefore  int               `json:"months_before"`
	MonthsAfter   int               `json:"months_after"`
	Holidays      []string          `json:"holidays"`
	HolidayColors map[string]string `json:"holiday_colors"`
	MarkerColors  []string          `json:"marker_colors"`
}

// Defaults returns the out-of-the-box settings.
func Defaults() Settings {
	return Settings{
		DarkMode:     false,
		MonthsBefore: 1,
		MonthsAfter:  1,
		Holidays:     []string{},
		HolidayColors: map[string]string{
			"CH": "#FF0000",
			"DE": "#FFD700",
			"CN": "#4CAF50",
		},
		MarkerColors: []string{
			"#E81123", "#FF8C00", "#FFB900", "#107C10", "#0078D4", "#5C2D91",
		},
	}
}

// DefaultPath returns the settings location in the user's home directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(home, FileName)
}

// Load reads settings from path. It never fails: a missing file, invalid
// JSON, or a type mismatch in any single field yields the default for that
// field while the rest of the file is still honored.
func Load(path string) Settings {
	s := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		applog.Debug("settings file unreadable, using defaults", "path", path, "err", err)
		return s
	}

	field(raw, "dark_mode", &s.DarkMode)
	field(raw, "window_width", &s.WindowWidth)
	field(raw, "window_height", &s.WindowHeight)
	field(raw, "grid_cols", &s.GridCols)
	field(raw, "grid_rows", &s.GridRows)
	field(raw, "months_before", &s.MonthsBefore)
	field(raw, "months_after", &s.MonthsAfter)

	if field(raw, "holidays", &s.Holidays) {
		if s.Holidays == nil {
			s.Holidays = []string{}
		}
	}
	if field(raw, "holiday_colors", &s.HolidayColors) {
		def := Defaults().HolidayColors
		if s.HolidayColors == nil {
			s.HolidayColors = def
		}
		// Countries missing from the stored map keep their default color.
		for code, color := range def {
			if _, ok := s.HolidayColors[code]; !ok {
				s.HolidayColors[code] = color
			}
		}
	}
	if field(raw, "marker_colors", &s.MarkerColors) {
		if len(s.MarkerColors) == 0 {
			s.MarkerColors = Defaults().MarkerColors
		}
	}

	if s.MonthsBefore < 0 || s.MonthsBefore > 6 {
		s.MonthsBefore = 1
	}
	if s.MonthsAfter < 0 || s.MonthsAfter > 6 {
		s.MonthsAfter = 1
	}
	return s
}

// field decodes one key into dst, leaving dst untouched (its default) when
// the key is absent or of the wrong type. It reports whether a value was
// decoded. Decoding goes through a fresh temporary: Unmarshal can partially
// fill dst before failing on a type mismatch (it allocates the pointer
// behind a *int destination first), which would turn a mistyped field into
// a pointer to zero instead of its default.
func field(raw map[string]json.RawMessage, key string, dst any) bool {
	msg, ok := raw[key]
	if !ok {
		return false
	}
	tmp := reflect.New(reflect.TypeOf(dst).Elem())
	if err := json.Unmarshal(msg, tmp.Interface()); err != nil {
		applog.Debug("settings field ignored", "key", key, "err", err)
		return false
	}
	reflect.ValueOf(dst).Elem().Set(tmp.Elem())
	return true
}

// Save writes settings atomically (temp file + rename), matching how the
// app config is persisted. A crash mid-write therefore leaves either the
// old file or the new one, and Load absorbs anything in between.
func Save(path string, s Settings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".mini-calendar-settings-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
