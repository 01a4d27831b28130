package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/harrisonrobin/studydesk/pkg/app"
	"github.com/harrisonrobin/studydesk/pkg/model"
	"github.com/harrisonrobin/studydesk/pkg/orgmode"
	"github.com/harrisonrobin/studydesk/pkg/render"
	"github.com/harrisonrobin/studydesk/pkg/storage"
	"github.com/harrisonrobin/studydesk/pkg/tasks"
)

func runTasks(ctx context.Context, st *app.State, args []string) error {
	sub, args := subcommand(args, "list", "list", "add", "done", "delete", "import")
	svc := tasks.NewService(ctx, st.Store, st.Logger, st.Now)
	defer func() {
		st.Metrics.SetRecords(storage.Tasks, len(svc.Tasks()))
		st.Metrics.Pending.Set(float64(svc.Pending()))
		st.Metrics.Overdue.Set(float64(len(svc.Overdue())))
	}()

	switch sub {
	case "add":
		return addTask(ctx, svc, args)
	case "done":
		return toggleTask(ctx, svc, args)
	case "delete":
		return deleteTask(ctx, svc, args)
	case "import":
		return importOrg(ctx, st, svc, args)
	default:
		return listTasks(svc, args)
	}
}

func listTasks(svc *tasks.Service, args []string) error {
	fs := newFlagSet("tasks list")
	all := fs.Bool("all", false, "include completed tasks")
	sortBy := fs.String("sort", "priority", "sort by priority or due")
	if _, err := parseFlags(fs, args); err != nil {
		return err
	}
	key, ok := tasks.ParseSortKey(*sortBy)
	if !ok {
		return usagef("unknown sort key %q (want priority or due)", *sortBy)
	}

	items := svc.View(*all, key)
	fmt.Println(render.Header(fmt.Sprintf("Tasks (%d pending)", svc.Pending())))
	if len(items) == 0 {
		fmt.Println(render.Muted("No tasks yet. Add one with: studydesk tasks add <text>"))
		return nil
	}
	for _, it := range items {
		fmt.Println(render.TaskLine(it))
	}
	return nil
}

func addTask(ctx context.Context, svc *tasks.Service, args []string) error {
	fs := newFlagSet("tasks add")
	priority := fs.String("priority", "", "High, Medium or Low (default Medium)")
	due := fs.String("due", "", "due date as YYYY-MM-DD (default today)")
	rest, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	p, err := parsePriority(*priority)
	if err != nil {
		return err
	}
	text, err := readContent(rest, os.Stdin)
	if err != nil {
		return err
	}

	t, err := svc.Add(ctx, text, p, *due)
	if err != nil {
		return err
	}
	fmt.Printf("Added task %s: %s (due %s)\n", render.Key(model.ShortID(t.ID)), t.Text, t.DueDate)
	return nil
}

func toggleTask(ctx context.Context, svc *tasks.Service, args []string) error {
	if len(args) != 1 {
		return usagef("usage: studydesk tasks done <id>")
	}
	id, err := svc.Resolve(args[0])
	if err != nil {
		return err
	}
	t, _, err := svc.Toggle(ctx, id)
	if err != nil {
		return err
	}
	if t.Completed {
		fmt.Printf("Completed: %s\n", t.Title())
	} else {
		fmt.Printf("Reopened: %s\n", t.Title())
	}
	return nil
}

func deleteTask(ctx context.Context, svc *tasks.Service, args []string) error {
	if len(args) != 1 {
		return usagef("usage: studydesk tasks delete <id>")
	}
	id, err := svc.Resolve(args[0])
	if err != nil {
		return err
	}
	if _, err := svc.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Deleted task %s\n", model.ShortID(id))
	return nil
}

func importOrg(ctx context.Context, st *app.State, svc *tasks.Service, args []string) error {
	fs := newFlagSet("tasks import")
	tag := fs.String("tag", "", "only import headlines carrying this tag")
	files, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return usagef("usage: studydesk tasks import [-tag t] <file.org>...")
	}

	entries, err := orgmode.ParseFiles(files, st.Now())
	if err != nil {
		return fmt.Errorf("failed to parse org files: %w", err)
	}
	added, err := svc.Import(ctx, orgmode.FilterTasks(entries, strings.TrimSpace(*tag)))
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d new task(s) from %d file(s)\n", added, len(files))
	return nil
}
