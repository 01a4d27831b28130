package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/harrisonrobin/studydesk/pkg/app"
	"github.com/harrisonrobin/studydesk/pkg/events"
	"github.com/harrisonrobin/studydesk/pkg/google"
	"github.com/harrisonrobin/studydesk/pkg/ics"
	"github.com/harrisonrobin/studydesk/pkg/index"
	"github.com/harrisonrobin/studydesk/pkg/model"
	"github.com/harrisonrobin/studydesk/pkg/render"
	"github.com/harrisonrobin/studydesk/pkg/storage"
)

func runPlanner(ctx context.Context, st *app.State, args []string) error {
	sub, args := subcommand(args, "list",
		"list", "add", "delete", "priority", "day", "month", "export", "import", "sync")
	svc := events.NewService(ctx, st.Store, st.Logger, st.Now)
	defer func() {
		st.Metrics.SetRecords(storage.Events, len(svc.Events()))
		st.Metrics.Upcoming.Set(float64(svc.UpcomingCount()))
	}()

	switch sub {
	case "add":
		return addEvent(ctx, svc, args)
	case "delete":
		return deleteEvent(ctx, svc, args)
	case "priority":
		return setEventPriority(ctx, svc, args)
	case "day":
		return daySchedule(st, svc, args)
	case "month":
		return monthView(st, svc, args)
	case "export":
		return exportEvents(st, svc, args)
	case "import":
		return importEvents(ctx, st, svc, args)
	case "sync":
		return syncEvents(ctx, st, svc, args)
	default:
		return listEvents(svc, args)
	}
}

// parseTypes reads a comma-separated type selection. "all" selects every event.
func parseTypes(s string) ([]model.EventType, error) {
	if strings.EqualFold(strings.TrimSpace(s), "all") {
		return nil, nil
	}
	var types []model.EventType
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		t, ok := model.ParseEventType(part)
		if !ok {
			return nil, usagef("unknown event type %q", part)
		}
		types = append(types, t)
	}
	return types, nil
}

func listEvents(svc *events.Service, args []string) error {
	fs := newFlagSet("planner list")
	typeNames := make([]string, 0, len(events.DefaultFilter))
	for _, t := range events.DefaultFilter {
		typeNames = append(typeNames, string(t))
	}
	typ := fs.String("type", strings.Join(typeNames, ","), `comma-separated event types, or "all"`)
	sortBy := fs.String("sort", "date", "sort by date, priority or title")
	if _, err := parseFlags(fs, args); err != nil {
		return err
	}
	types, err := parseTypes(*typ)
	if err != nil {
		return err
	}
	key, ok := events.ParseSortKey(*sortBy)
	if !ok {
		return usagef("unknown sort key %q (want date, priority or title)", *sortBy)
	}

	items := svc.Upcoming(types, key)
	fmt.Println(render.Header(fmt.Sprintf("Upcoming events (%d)", len(items))))
	if len(items) == 0 {
		fmt.Println(render.Muted("Nothing coming up for this selection."))
		return nil
	}
	for _, it := range items {
		fmt.Println(render.EventLine(it))
	}
	return nil
}

func addEvent(ctx context.Context, svc *events.Service, args []string) error {
	fs := newFlagSet("planner add")
	var d events.Draft
	typ := fs.String("type", "", "Exam, Assignment, Lecture, Meeting or Other")
	priority := fs.String("priority", "", "High, Medium or Low")
	fs.StringVar(&d.Date, "date", "", "date as YYYY-MM-DD (required)")
	fs.StringVar(&d.Time, "time", "", "start time as HH:MM; omit for all-day")
	fs.StringVar(&d.Description, "desc", "", "description")
	fs.StringVar(&d.Link, "link", "", "meeting or resource URL")
	fs.StringVar(&d.Location, "location", "", "room or address")
	rest, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	d.Title = strings.Join(rest, " ")
	if *typ != "" {
		t, ok := model.ParseEventType(*typ)
		if !ok {
			return usagef("unknown event type %q", *typ)
		}
		d.Type = t
	}
	if d.Priority, err = parsePriority(*priority); err != nil {
		return err
	}

	e, err := svc.Add(ctx, d)
	if err != nil {
		return err
	}
	fmt.Printf("Added %s %s on %s\n", e.Type, render.Key(e.Title), e.Date)
	return nil
}

func deleteEvent(ctx context.Context, svc *events.Service, args []string) error {
	if len(args) != 1 {
		return usagef("usage: studydesk planner delete <id>")
	}
	id, err := svc.Resolve(args[0])
	if err != nil {
		return err
	}
	e, _ := svc.Get(id)
	if _, err := svc.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Deleted event: %s\n", e.Title)
	return nil
}

func setEventPriority(ctx context.Context, svc *events.Service, args []string) error {
	if len(args) != 2 {
		return usagef("usage: studydesk planner priority <id> <High|Medium|Low>")
	}
	id, err := svc.Resolve(args[0])
	if err != nil {
		return err
	}
	p, err := parsePriority(args[1])
	if err != nil {
		return err
	}
	if _, err := svc.SetPriority(ctx, id, p); err != nil {
		return err
	}
	fmt.Printf("Priority of %s set to %s\n", model.ShortID(id), render.Priority(p))
	return nil
}

func daySchedule(st *app.State, svc *events.Service, args []string) error {
	day := model.Day(st.Now())
	if len(args) > 0 {
		d, err := model.ParseDate(args[0], st.Location)
		if err != nil {
			return model.Invalid("date", "%q is not a YYYY-MM-DD date", args[0])
		}
		day = d
	}

	list := svc.OnDate(day)
	fmt.Println(render.Header("Schedule for " + day.Format("Monday, 2 January 2006")))
	if len(list) == 0 {
		fmt.Println(render.Muted("No events scheduled for this day."))
		return nil
	}
	for _, e := range list {
		fmt.Println(render.ScheduleLine(e))
	}
	return nil
}

func monthView(st *app.State, svc *events.Service, args []string) error {
	now := st.Now()
	year, month := now.Year(), now.Month()
	if len(args) > 0 {
		t, err := time.Parse("2006-01", args[0])
		if err != nil {
			return model.Invalid("month", "%q is not a YYYY-MM month", args[0])
		}
		year, month = t.Year(), t.Month()
	}
	fmt.Print(render.Month(year, month, svc.Events(), now, st.Location))
	return nil
}

func exportEvents(st *app.State, svc *events.Service, args []string) error {
	fs := newFlagSet("planner export")
	out := fs.String("o", "", "write to this file instead of stdout")
	if _, err := parseFlags(fs, args); err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", *out, err)
		}
		defer f.Close()
		w = f
	}

	skipped, err := ics.Export(w, svc.Events(), st.Location, st.Now())
	if err != nil {
		return err
	}
	for _, e := range skipped {
		st.Logger.Warn("Event skipped in export", zap.String("title", e.Title), zap.String("date", e.Date))
	}
	if *out != "" {
		fmt.Printf("Exported %d event(s) to %s\n", len(svc.Events())-len(skipped), *out)
	}
	return nil
}

func importEvents(ctx context.Context, st *app.State, svc *events.Service, args []string) error {
	if len(args) != 1 {
		return usagef("usage: studydesk planner import <file.ics>")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	incoming, err := ics.Import(f, st.Location)
	if err != nil {
		return err
	}
	added, err := svc.Import(ctx, incoming)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d of %d event(s)\n", added, len(incoming))
	return nil
}

func syncEvents(ctx context.Context, st *app.State, svc *events.Service, args []string) error {
	fs := newFlagSet("planner sync")
	calendarName := fs.String("calendar", st.Config.Calendar.Name, "Google Calendar name to sync with")
	prune := fs.Bool("prune", false, "delete calendar copies of events removed locally")
	if _, err := parseFlags(fs, args); err != nil {
		return err
	}

	idx := index.Load(ctx, st.Store)
	client, err := google.NewClient(ctx, *calendarName, idx, st.Location, st.Logger)
	if err != nil {
		return fmt.Errorf("error creating Google Calendar client: %w", err)
	}
	// The index is saved even when a sync step fails so mappings made so far survive.
	defer func() {
		if err := idx.Save(ctx); err != nil {
			st.Logger.Warn("Failed to save event index", zap.Error(err))
		}
	}()

	synced, failed := 0, 0
	for _, e := range svc.Events() {
		if _, err := client.SyncEvent(ctx, e); err != nil {
			st.Logger.Error("Error syncing event", zap.String("id", e.ID), zap.String("title", e.Title), zap.Error(err))
			failed++
			continue
		}
		synced++
	}

	removed := 0
	if *prune {
		if removed, err = client.Prune(ctx, svc.Events()); err != nil {
			st.Logger.Error("Prune stopped early", zap.Error(err))
		}
	}

	fmt.Printf("Synced %d event(s) to %q, %d failed, %d removed\n", synced, *calendarName, failed, removed)
	if failed > 0 {
		return fmt.Errorf("%d event(s) could not be synced", failed)
	}
	return nil
}
