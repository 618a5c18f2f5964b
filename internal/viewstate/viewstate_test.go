package viewstate

import (
	"os"
	"path/filepath"
	"testing"
)

func tempPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "settings.json")
}

func TestLoadMissingFile(t *testing.T) {
	s := Load(tempPath(t))
	if s.DarkMode {
		t.Error("dark mode should default to false")
	}
	if s.WindowWidth != nil || s.GridCols != nil {
		t.Error("nullable ints should default to nil")
	}
	if s.MonthsBefore != 1 || s.MonthsAfter != 1 {
		t.Errorf("months span defaults = %d/%d, want 1/1", s.MonthsBefore, s.MonthsAfter)
	}
	if s.HolidayColors["CH"] != "#FF0000" || s.HolidayColors["DE"] != "#FFD700" || s.HolidayColors["CN"] != "#4CAF50" {
		t.Errorf("holiday color defaults wrong: %v", s.HolidayColors)
	}
	if len(s.MarkerColors) == 0 {
		t.Error("marker palette empty")
	}
}

func TestLoadGarbageFile(t *testing.T) {
	path := tempPath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	s := Load(path)
	if s.MonthsBefore != 1 || len(s.Holidays) != 0 {
		t.Errorf("garbage file did not fall back to defaults: %+v", s)
	}
}

func TestLoadPerFieldFallback(t *testing.T) {
	path := tempPath(t)
	// grid_cols has the wrong type, dark_mode is a string, window_width is
	// fine — only the broken fields may fall back.
	blob := `{
		"dark_mode": "yes",
		"window_width": 640,
		"grid_cols": "five",
		"grid_rows": 2,
		"holidays": ["ch_neujahr", "de_karfreitag"],
		"holiday_colors": {"CH": "#123456"}
	}`
	if err := os.WriteFile(path, []byte(blob), 0o600); err != nil {
		t.Fatal(err)
	}

	s := Load(path)
	if s.DarkMode {
		t.Error("mistyped dark_mode not defaulted")
	}
	if s.WindowWidth == nil || *s.WindowWidth != 640 {
		t.Error("valid window_width lost")
	}
	if s.GridCols != nil {
		t.Error("mistyped grid_cols not defaulted")
	}
	if s.GridRows == nil || *s.GridRows != 2 {
		t.Error("valid grid_rows lost")
	}
	if len(s.Holidays) != 2 || s.Holidays[0] != "ch_neujahr" {
		t.Errorf("holidays = %v", s.Holidays)
	}
	if s.HolidayColors["CH"] != "#123456" {
		t.Errorf("stored CH color lost: %v", s.HolidayColors)
	}
	if s.HolidayColors["DE"] != "#FFD700" {
		t.Errorf("missing DE color not defaulted: %v", s.HolidayColors)
	}
}

func TestMistypedNullableIntsStayNil(t *testing.T) {
	// Unmarshal must not leave a pointer-to-zero behind when the value has
	// the wrong type: nil means "never resized", and a zero-valued grid
	// would otherwise be restored as if the user had saved it.
	path := tempPath(t)
	blob := `{
		"window_width": true,
		"window_height": {},
		"grid_cols": "five",
		"grid_rows": [2]
	}`
	if err := os.WriteFile(path, []byte(blob), 0o600); err != nil {
		t.Fatal(err)
	}

	s := Load(path)
	if s.WindowWidth != nil {
		t.Errorf("window_width = %v, want nil", *s.WindowWidth)
	}
	if s.WindowHeight != nil {
		t.Errorf("window_height = %v, want nil", *s.WindowHeight)
	}
	if s.GridCols != nil {
		t.Errorf("grid_cols = %v, want nil", *s.GridCols)
	}
	if s.GridRows != nil {
		t.Errorf("grid_rows = %v, want nil", *s.GridRows)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := tempPath(t)

	s := Defaults()
	s.DarkMode = true
	w, h, cols, rows := 800, 400, 5, 1
	s.WindowWidth, s.WindowHeight = &w, &h
	s.GridCols, s.GridRows = &cols, &rows
	s.Holidays = []string{"cn_spring_festival"}
	s.MonthsBefore, s.MonthsAfter = 2, 3

	if err := Save(path, s); err != nil {
		t.Fatal(err)
	}

	got := Load(path)
	if !got.DarkMode {
		t.Error("dark mode lost")
	}
	if got.GridCols == nil || *got.GridCols != 5 || got.GridRows == nil || *got.GridRows != 1 {
		t.Errorf("grid dims lost: %+v", got)
	}
	if got.WindowWidth == nil || *got.WindowWidth != 800 {
		t.Errorf("window size lost")
	}
	if got.MonthsBefore != 2 || got.MonthsAfter != 3 {
		t.Errorf("months span lost: %d/%d", got.MonthsBefore, got.MonthsAfter)
	}
	if len(got.Holidays) != 1 || got.Holidays[0] != "cn_spring_festival" {
		t.Errorf("holidays lost: %v", got.Holidays)
	}
}

func TestGridPersistsAcrossRestart(t *testing.T) {
	// Resize to 5x1, "hide" (save), then a fresh Load stands in for the
	// next launch and must restore the grid verbatim.
	path := tempPath(t)

	s := Load(path)
	if s.GridCols != nil {
		t.Fatal("fresh settings should have no saved grid")
	}

	cols, rows := 5, 1
	s.GridCols, s.GridRows = &cols, &rows
	if err := Save(path, s); err != nil {
		t.Fatal(err)
	}

	restarted := Load(path)
	if restarted.GridCols == nil || *restarted.GridCols != 5 ||
		restarted.GridRows == nil || *restarted.GridRows != 1 {
		t.Errorf("grid not restored after restart: %+v", restarted)
	}
}

func TestMonthsSpanClamped(t *testing.T) {
	path := tempPath(t)
	blob := `{"months_before": 40, "months_after": -2}`
	if err := os.WriteFile(path, []byte(blob), 0o600); err != nil {
		t.Fatal(err)
	}
	s := Load(path)
	if s.MonthsBefore != 1 || s.MonthsAfter != 1 {
		t.Errorf("out-of-range span not clamped: %d/%d", s.MonthsBefore, s.MonthsAfter)
	}
}

func TestSaveIsAtomicEnough(t *testing.T) {
	path := tempPath(t)
	if err := Save(path, Defaults()); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("settings file mode = %v, want 0600", info.Mode().Perm())
	}
	// No temp files left behind.
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("stray files next to settings: %v", entries)
	}
}
