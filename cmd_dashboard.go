package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/harrisonrobin/studydesk/pkg/app"
	"github.com/harrisonrobin/studydesk/pkg/dashboard"
	"github.com/harrisonrobin/studydesk/pkg/events"
	"github.com/harrisonrobin/studydesk/pkg/notes"
	"github.com/harrisonrobin/studydesk/pkg/quote"
	"github.com/harrisonrobin/studydesk/pkg/render"
	"github.com/harrisonrobin/studydesk/pkg/storage"
	"github.com/harrisonrobin/studydesk/pkg/tasks"
)

func runDashboard(ctx context.Context, st *app.State, args []string) error {
	fs := newFlagSet("dashboard")
	offline := fs.Bool("offline", st.Config.Quotes.Disable, "skip the quote service")
	if _, err := parseFlags(fs, args); err != nil {
		return err
	}

	taskSvc := tasks.NewService(ctx, st.Store, st.Logger, st.Now)
	eventSvc := events.NewService(ctx, st.Store, st.Logger, st.Now)
	noteSvc := notes.NewService(ctx, st.Store, st.Logger, st.Now)

	stats := dashboard.NewStats(noteSvc.Count(), taskSvc.Pending(), len(taskSvc.Overdue()), eventSvc.UpcomingCount())

	q, live := quote.Fallback, false
	if !*offline {
		q, live = quote.Fetch(ctx, http.DefaultClient, st.Config.Quotes.URL, st.Config.Quotes.Timeout, st.Logger)
	}

	now := st.Now()
	fmt.Print(render.Dashboard(dashboard.NewSummary(st.Config.UserName, now, stats, q, live)))

	st.Metrics.Observe(stats, now)
	st.Metrics.SetRecords(storage.Tasks, len(taskSvc.Tasks()))
	st.Metrics.SetRecords(storage.Events, len(eventSvc.Events()))
	st.Metrics.SetRecords(storage.QuickNotes, len(noteSvc.QuickNotes()))
	return nil
}
