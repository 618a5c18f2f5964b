// Package autostart manages the XDG autostart entry for the calendar.
// Failures degrade silently: autostart is a convenience, never a reason to
// abort startup.
package autostart

import (
	"fmt"
	"os"
	"path/filepath"

	applog "github.com/si3rc0-sw/mini-calendar-tool/internal/log"
)

const appID = "mini-calendar"

func entryPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "autostart", appID+".desktop"), nil
}

// Enabled reports whether the autostart entry exists.
func Enabled() bool {
	path, err := entryPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Set creates or removes the autostart entry. Errors are logged at debug
// level and swallowed.
func Set(enable bool) {
	path, err := entryPath()
	if err != nil {
		applog.Debug("autostart path unavailable", "err", err)
		return
	}

	if !enable {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			applog.Debug("autostart entry removal failed", "err", err)
		}
		return
	}

	exe, err := os.Executable()
	if err != nil {
		applog.Debug("autostart executable lookup failed", "err", err)
		return
	}
	entry := fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=Mini Calendar
Exec=%s
Terminal=true
X-GNOME-Autostart-enabled=true
`, exe)

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		applog.Debug("autostart dir creation failed", "err", err)
		return
	}
	if err := os.WriteFile(path, []byte(entry), 0o644); err != nil {
		applog.Debug("autostart entry write failed", "err", err)
	}
}
