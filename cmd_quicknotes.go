package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/harrisonrobin/studydesk/pkg/app"
	"github.com/harrisonrobin/studydesk/pkg/notes"
	"github.com/harrisonrobin/studydesk/pkg/render"
	"github.com/harrisonrobin/studydesk/pkg/storage"
)

func runQuickNotes(ctx context.Context, st *app.State, args []string) error {
	sub, args := subcommand(args, "list", "list", "add", "delete")
	svc := notes.NewService(ctx, st.Store, st.Logger, st.Now)
	defer func() { st.Metrics.SetRecords(storage.QuickNotes, len(svc.QuickNotes())) }()

	switch sub {
	case "add":
		content, err := readContent(args, os.Stdin)
		if err != nil {
			return err
		}
		n, err := svc.AppendQuick(ctx, content)
		if err != nil {
			return err
		}
		fmt.Printf("Saved note %d at %s\n", len(svc.QuickNotes()), n.Timestamp)
		return nil
	case "delete":
		if len(args) != 1 {
			return usagef("usage: studydesk quicknotes delete <number>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return usagef("%q is not a note number", args[0])
		}
		removed, err := svc.DeleteQuick(ctx, n-1)
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("there is no note %d", n)
		}
		fmt.Printf("Deleted note %d\n", n)
		return nil
	default:
		list := svc.QuickNotes()
		if len(list) == 0 {
			fmt.Println(render.Muted("No quick notes yet."))
			return nil
		}
		for i, n := range list {
			fmt.Println(render.QuickNote(i, n))
			fmt.Println()
		}
		return nil
	}
}
