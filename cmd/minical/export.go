package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/si3rc0-sw/mini-calendar-tool/internal/holiday"
	"github.com/si3rc0-sw/mini-calendar-tool/internal/ics"
	"github.com/si3rc0-sw/mini-calendar-tool/internal/viewstate"
)

var (
	exportOut  string
	exportYear int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the enabled holidays of a year as iCalendar",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		year := exportYear
		if year == 0 {
			year = time.Now().Year()
		}

		st := viewstate.Load(settingsPath(cfg))
		keys := st.Holidays
		if len(keys) == 0 {
			// Nothing enabled: export the full registry rather than an
			// empty calendar.
			for _, def := range holiday.Registry {
				keys = append(keys, def.Key)
			}
		}

		out := exportOut
		if out == "" {
			out = fmt.Sprintf("holidays-%d.ics", year)
		}
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()

		if err := ics.WriteHolidays(f, year, keys); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "wrote", out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default holidays-<year>.ics)")
	exportCmd.Flags().IntVar(&exportYear, "year", 0, "year to export (default: current)")
	rootCmd.AddCommand(exportCmd)
}
