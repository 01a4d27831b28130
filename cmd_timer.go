package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/harrisonrobin/studydesk/pkg/app"
	"github.com/harrisonrobin/studydesk/pkg/timer"
	"github.com/harrisonrobin/studydesk/pkg/tui"
)

func runTimer(ctx context.Context, st *app.State, args []string) error {
	fs := newFlagSet("timer")
	takeBreak := fs.Bool("break", false, "start with a break instead of a pomodoro")
	custom := fs.String("custom", "", `custom length, e.g. "45m", "PT45M" or "45:00"`)
	if _, err := parseFlags(fs, args); err != nil {
		return err
	}

	kind, d := timer.Pomodoro, st.Config.Timer.Pomodoro
	switch {
	case *custom != "":
		parsed, err := timer.ParseDuration(*custom)
		if err != nil {
			return err
		}
		kind, d = timer.Custom, parsed
	case *takeBreak:
		kind, d = timer.Break, st.Config.Timer.Break
	}

	model := tui.NewTimerModel(st.Timer, kind, d, st.Config.Timer.Break, st.Now)
	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("timer stopped: %w", err)
	}

	done, ok := final.(tui.TimerModel)
	if !ok {
		return nil
	}
	for _, s := range done.Sessions() {
		st.Metrics.AddFocus(string(s.Kind), s.Elapsed)
		st.Logger.Info("Timer session",
			zap.String("kind", string(s.Kind)),
			zap.Duration("elapsed", s.Elapsed),
			zap.Bool("completed", s.Completed),
		)
	}
	return nil
}
