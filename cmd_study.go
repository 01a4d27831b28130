package main

import (
	"context"
	"fmt"

	"github.com/harrisonrobin/studydesk/pkg/app"
	"github.com/harrisonrobin/studydesk/pkg/model"
	"github.com/harrisonrobin/studydesk/pkg/notes"
	"github.com/harrisonrobin/studydesk/pkg/render"
	"github.com/harrisonrobin/studydesk/pkg/storage"
)

func runStudy(ctx context.Context, st *app.State, args []string) error {
	sub, args := subcommand(args, "list", "list", "add", "delete")
	svc := notes.NewService(ctx, st.Store, st.Logger, st.Now)
	defer func() { st.Metrics.SetRecords(storage.Notes, svc.Count()) }()

	switch sub {
	case "add":
		return addResource(ctx, st, svc, args)
	case "delete":
		if len(args) != 1 {
			return usagef("usage: studydesk study delete <name>")
		}
		removed, err := svc.Delete(ctx, args[0])
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("no resource named %q", args[0])
		}
		fmt.Printf("Deleted resource: %s\n", args[0])
		return nil
	default:
		return listResources(svc, args)
	}
}

func parseResourceType(s string) (model.ResourceType, error) {
	if s == "" || s == "all" {
		return "", nil
	}
	t, ok := model.ParseResourceType(s)
	if !ok {
		return "", usagef("unknown resource type %q (want Notes, Book or Video)", s)
	}
	return t, nil
}

func listResources(svc *notes.Service, args []string) error {
	fs := newFlagSet("study list")
	search := fs.String("search", "", "only show resources whose name contains this")
	typ := fs.String("type", "", "Notes, Book or Video")
	sortBy := fs.String("sort", "name", "sort by name, recent or code")
	if _, err := parseFlags(fs, args); err != nil {
		return err
	}
	t, err := parseResourceType(*typ)
	if err != nil {
		return err
	}
	key, ok := notes.ParseSortKey(*sortBy)
	if !ok {
		return usagef("unknown sort key %q (want name, recent or code)", *sortBy)
	}

	list := svc.List(*search, t, key)
	fmt.Println(render.Header(fmt.Sprintf("Study resources (%d of %d)", len(list), svc.Count())))
	if len(list) == 0 {
		fmt.Println(render.Muted("No resources found."))
		return nil
	}
	for _, r := range list {
		fmt.Println(render.ResourceLine(r))
	}
	return nil
}

func addResource(ctx context.Context, st *app.State, svc *notes.Service, args []string) error {
	fs := newFlagSet("study add")
	desc := fs.String("desc", "", "description")
	link := fs.String("link", "", "URL of the material")
	date := fs.String("date", "", "date as YYYY-MM-DD (default today)")
	tags := fs.String("tags", "", "comma-separated tags")
	code := fs.String("code", "", "course code")
	typ := fs.String("type", "Notes", "Notes, Book or Video")
	rest, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	t, err := parseResourceType(*typ)
	if err != nil {
		return err
	}

	r, err := notes.NewResource(joinArgs(rest), *desc, *link, *date, *tags, *code, t, st.Now())
	if err != nil {
		return err
	}
	replaced, err := svc.Add(ctx, r)
	if err != nil {
		return err
	}
	verb := "Added"
	if replaced {
		verb = "Updated"
	}
	fmt.Printf("%s %s resource: %s\n", verb, r.Type, render.Subject(r.Name))
	return nil
}
