package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/harrisonrobin/studydesk/pkg/app"
	"github.com/harrisonrobin/studydesk/pkg/grades"
	"github.com/harrisonrobin/studydesk/pkg/render"
	"github.com/harrisonrobin/studydesk/pkg/storage"
)

func runPerformance(ctx context.Context, st *app.State, args []string) error {
	sub, args := subcommand(args, "cgpa", "cgpa", "courses", "course", "grade")
	switch sub {
	case "courses", "course":
		courses := grades.LoadCourses(ctx, st.Store, st.Logger)
		defer func() { st.Metrics.SetRecords(storage.Courses, len(courses.List())) }()
		if len(args) > 0 && args[0] == "add" {
			return addCourse(ctx, courses, args[1:])
		}
		return listCourses(courses)
	case "grade":
		return courseGrade(ctx, st, args)
	default:
		return cgpa(args)
	}
}

func cgpa(args []string) error {
	fs := newFlagSet("performance cgpa")
	gpaList := fs.String("gpa", "", "comma-separated semester GPAs, e.g. 8.5,9.1")
	creditList := fs.String("credits", "", "comma-separated credits for each semester")
	if _, err := parseFlags(fs, args); err != nil {
		return err
	}
	gpas, err := parseFloats(*gpaList)
	if err != nil {
		return err
	}
	credits, err := parseFloats(*creditList)
	if err != nil {
		return err
	}
	if len(gpas) == 0 {
		return usagef("usage: studydesk performance cgpa -gpa 8.5,9.1 -credits 20,22")
	}

	value, err := grades.CGPA(gpas, credits)
	if err != nil {
		return err
	}
	fmt.Println(render.CGPA(value))
	return nil
}

func listCourses(courses *grades.Courses) error {
	list := courses.List()
	fmt.Println(render.Header(fmt.Sprintf("Courses (%d)", len(list))))
	if len(list) == 0 {
		fmt.Println(render.Muted("No courses yet. Add one with: studydesk performance course add -code CS101 -credits 4 <name>"))
		return nil
	}
	for _, c := range list {
		fmt.Printf("%s  %s\n", render.Subject(c.Name), render.Muted(fmt.Sprintf("%s | %d credits", c.Code, c.Credits)))
	}
	return nil
}

func addCourse(ctx context.Context, courses *grades.Courses, args []string) error {
	fs := newFlagSet("performance course add")
	code := fs.String("code", "", "course code")
	credits := fs.Int("credits", 3, "credit hours (1-5)")
	rest, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	c, err := courses.Add(ctx, joinArgs(rest), *code, *credits)
	if err != nil {
		return err
	}
	fmt.Printf("Added course %s\n", render.Subject(c.Name))
	return nil
}

func courseGrade(ctx context.Context, st *app.State, args []string) error {
	fs := newFlagSet("performance grade")
	var g grades.CourseGrade
	fs.Float64Var(&g.Assignments, "assignments", 0, "assignment score (0-100)")
	fs.Float64Var(&g.Midterm, "midterm", 0, "midterm score (0-100)")
	fs.Float64Var(&g.Final, "final", 0, "final exam score (0-100)")
	rest, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		return usagef("usage: studydesk performance grade -assignments N -midterm N -final N <course>")
	}
	if err := g.Validate(); err != nil {
		return err
	}

	courses := grades.LoadCourses(ctx, st.Store, st.Logger)
	ref := joinArgs(rest)
	c, ok := courses.Find(ref)
	if !ok {
		return fmt.Errorf("no course named %s; add it with studydesk performance course add", strconv.Quote(ref))
	}
	fmt.Print(render.CourseReport(c, g))
	return nil
}
