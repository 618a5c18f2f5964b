// Package shell runs the background collaborators of the terminal UI:
// OS signal handling, the midnight day-change schedule and desktop
// notifications. Collaborators never touch UI state directly; every
// event is marshalled onto the UI loop with Program.Send.
package shell

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"
	"github.com/robfig/cron/v3"

	applog "github.com/si3rc0-sw/mini-calendar-tool/internal/log"
)

// ToggleMsg asks the UI to toggle between shown and hidden.
// Sent when the process receives SIGUSR1.
type ToggleMsg struct{}

// QuitMsg asks the UI to persist state and exit.
type QuitMsg struct{}

// DayChangedMsg tells the UI the calendar day rolled over.
type DayChangedMsg struct {
	Today time.Time
}

// Options configures Start.
type Options struct {
	// Cron is the day-change schedule, e.g. "0 0 * * *".
	Cron string

	// Notify enables a desktop notification on day change when the new
	// day carries holidays.
	Notify bool

	// TodayHolidays returns the display names of the holidays falling on
	// the given day. May be nil.
	TodayHolidays func(day time.Time) []string
}

// Start launches the signal listener and the day-change scheduler.
// The returned stop function tears both down; it is safe to call once
// the tea.Program has exited.
func Start(p *tea.Program, opts Options) (stop func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGUSR1, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigCh:
				switch sig {
				case syscall.SIGUSR1:
					applog.Debug("toggle signal received")
					p.Send(ToggleMsg{})
				case syscall.SIGINT, syscall.SIGTERM:
					applog.Info("shutdown signal received", "signal", sig.String())
					p.Send(QuitMsg{})
				}
			case <-done:
				return
			}
		}
	}()

	sched := cron.New()
	spec := opts.Cron
	if spec == "" {
		spec = "0 0 * * *"
	}
	_, err := sched.AddFunc(spec, func() {
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		applog.Debug("day changed", "today", today.Format("2006-01-02"))
		p.Send(DayChangedMsg{Today: today})
		if opts.Notify && opts.TodayHolidays != nil {
			notifyHolidays(today, opts.TodayHolidays(today))
		}
	})
	if err != nil {
		applog.Error("invalid day-change schedule, scheduler disabled", err, "cron", spec)
	} else {
		sched.Start()
	}

	return func() {
		signal.Stop(sigCh)
		close(done)
		sched.Stop()
	}
}

// notifyHolidays pops a desktop notification listing today's holidays.
// Notification failures are logged and otherwise ignored; a headless
// session has no notification daemon.
func notifyHolidays(today time.Time, names []string) {
	if len(names) == 0 {
		return
	}
	body := names[0]
	for _, n := range names[1:] {
		body += "\n" + n
	}
	if err := beeep.Notify("Mini Calendar — "+today.Format("02.01.2006"), body, ""); err != nil {
		applog.Debug("holiday notification failed", "error", err)
	}
}
