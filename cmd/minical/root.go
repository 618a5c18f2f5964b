package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/si3rc0-sw/mini-calendar-tool/internal/config"
	"github.com/si3rc0-sw/mini-calendar-tool/internal/holiday"
	applog "github.com/si3rc0-sw/mini-calendar-tool/internal/log"
	"github.com/si3rc0-sw/mini-calendar-tool/internal/shell"
	"github.com/si3rc0-sw/mini-calendar-tool/internal/ui"
	"github.com/si3rc0-sw/mini-calendar-tool/internal/viewstate"
	"github.com/si3rc0-sw/mini-calendar-tool/internal/web"
)

var (
	flagConfig   string
	flagSettings string
	flagListen   string
	flagDebug    bool
)

var rootCmd = &cobra.Command{
	Use:   "minical",
	Short: "Multi-month calendar widget for the terminal",
	Long: `minical renders a multi-month calendar in the terminal: drag to select
a date range, overlay holidays from several countries, and keep the view
state across restarts. SIGUSR1 toggles the widget between shown and
hidden.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		settingsPath := settingsPath(cfg)
		applog.Info("starting calendar", "settings", settingsPath)

		p := tea.NewProgram(ui.New(settingsPath),
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
		)

		if cfg.Listen != "" {
			go func() {
				if err := web.StartServer(cmd.Context(), cfg, settingsPath); err != nil {
					applog.Error("preview server stopped", err)
				}
			}()
		}

		stop := shell.Start(p, shell.Options{
			Cron:   cfg.DayChangeCron,
			Notify: cfg.NotifyHolidays,
			TodayHolidays: func(day time.Time) []string {
				st := viewstate.Load(settingsPath)
				var names []string
				for _, occ := range holiday.ForYear(day.Year(), holiday.EnabledSet(st.Holidays))[day] {
					names = append(names, occ.Name+" ("+occ.Country+")")
				}
				return names
			},
		})
		defer stop()

		if _, err := p.Run(); err != nil {
			return fmt.Errorf("calendar exited: %w", err)
		}
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "config file (default "+config.DefaultPath()+")")
	pf.StringVar(&flagSettings, "settings", "", "view-state file (default "+viewstate.DefaultPath()+")")
	pf.BoolVar(&flagDebug, "debug", false, "enable debug logging")

	rootCmd.Flags().StringVar(&flagListen, "listen", "", "preview server listen address, e.g. 127.0.0.1:8080")
}

// loadConfig resolves the config path, loads it and applies the flag
// overrides that beat the file.
func loadConfig() (*config.Config, error) {
	if flagDebug {
		applog.SetLevel(applog.LevelDebug)
	}

	path := flagConfig
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	if flagListen != "" {
		cfg.Listen = flagListen
	}
	return cfg, nil
}

func settingsPath(cfg *config.Config) string {
	if flagSettings != "" {
		return flagSettings
	}
	if cfg.SettingsPath != "" {
		return cfg.SettingsPath
	}
	return viewstate.DefaultPath()
}
