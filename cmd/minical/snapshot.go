package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/si3rc0-sw/mini-calendar-tool/internal/capture"
	applog "github.com/si3rc0-sw/mini-calendar-tool/internal/log"
	"github.com/si3rc0-sw/mini-calendar-tool/internal/web"
)

var (
	snapshotOut   string
	snapshotYear  int
	snapshotMonth int
	snapshotSpan  int
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Render the calendar to a PNG via headless Chromium",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// The preview server runs on an ephemeral port just for this shot.
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("starting snapshot server: %w", err)
		}
		srv := &http.Server{
			Handler: web.NewServer(cfg, settingsPath(cfg)).Handler(),
		}
		go func() {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				applog.Error("snapshot server stopped", err)
			}
		}()
		defer srv.Close()

		now := time.Now()
		year, month := snapshotYear, snapshotMonth
		if year == 0 {
			year = now.Year()
		}
		if month == 0 {
			month = int(now.Month())
		}

		url := fmt.Sprintf("http://%s/calendar?year=%d&month=%d&span=%d",
			ln.Addr().String(), year, month, snapshotSpan)
		applog.Info("capturing snapshot", "url", url, "out", snapshotOut)

		err = capture.SnapshotPNG(context.Background(), capture.Options{
			URL:        url,
			OutputPath: snapshotOut,
			Width:      cfg.SnapshotWidth,
			Height:     cfg.SnapshotHeight,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "wrote", snapshotOut)
		return nil
	},
}

func init() {
	snapshotCmd.Flags().StringVarP(&snapshotOut, "out", "o", "calendar.png", "output PNG path")
	snapshotCmd.Flags().IntVar(&snapshotYear, "year", 0, "center year (default: current)")
	snapshotCmd.Flags().IntVar(&snapshotMonth, "month", 0, "center month 1-12 (default: current)")
	snapshotCmd.Flags().IntVar(&snapshotSpan, "span", 3, "number of months")
	rootCmd.AddCommand(snapshotCmd)
}
