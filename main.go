package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	_ "time/tzdata"

	"go.uber.org/zap"

	"github.com/harrisonrobin/studydesk/pkg/app"
	"github.com/harrisonrobin/studydesk/pkg/config"
	"github.com/harrisonrobin/studydesk/pkg/logger"
	"github.com/harrisonrobin/studydesk/pkg/model"
	"github.com/harrisonrobin/studydesk/pkg/storage"
)

const usage = `studydesk - a student productivity dashboard

Usage:
  studydesk <command> [subcommand] [flags] [args]

Commands:
  dashboard    greeting, stats and a quote of the day
  planner      academic events: list, add, delete, priority, day, month, export, import, sync
  study        study resources: list, add, delete
  performance  cgpa, courses and course grades
  tasks        task manager: list, add, done, delete, import
  timer        focus timer (pomodoro, break or custom length)
  quicknotes   scratch notes: list, add, delete
  config       show, set or locate the configuration
  auth         authenticate with Google Calendar

Run "studydesk <command> -h" for the flags of a command.
`

type command func(ctx context.Context, st *app.State, args []string) error

var commands = map[string]command{
	"dashboard":   runDashboard,
	"planner":     runPlanner,
	"study":       runStudy,
	"performance": runPerformance,
	"tasks":       runTasks,
	"timer":       runTimer,
	"quicknotes":  runQuickNotes,
}

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		return 2
	}
	name, args := os.Args[1], os.Args[2:]
	switch name {
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}
	log := logger.WithCommand(logger.New(cfg.LogLevel), name)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch name {
	case "config":
		return report(runConfig(cfg, args))
	case "auth":
		return report(runAuth(ctx, log, args))
	}

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", name, usage)
		return 2
	}

	st, err := app.Open(ctx, cfg, log)
	if err != nil {
		return report(err)
	}
	err = cmd(ctx, st, args)
	if cerr := st.Close(); cerr != nil {
		log.Warn("Failed to close storage", zap.Error(cerr))
	}
	return report(err)
}

// report prints err for the user and picks the exit code.
func report(err error) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return 0
	}

	var (
		usageErr *usageError
		valErr   *model.ValidationError
		writeErr *storage.WriteError
	)
	switch {
	case errors.As(err, &usageErr):
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 2
	case errors.As(err, &valErr):
		fmt.Fprintf(os.Stderr, "Rejected: %v\n", valErr)
		return 1
	case errors.As(err, &writeErr):
		fmt.Fprintf(os.Stderr, "Could not save your changes: %v\n", writeErr)
		return 1
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
}
