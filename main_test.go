package main

import (
	"errors"
	"flag"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/harrisonrobin/studydesk/pkg/model"
	"github.com/harrisonrobin/studydesk/pkg/storage"
)

func TestParseFlagsInterleaved(t *testing.T) {
	fs := newFlagSet("test")
	due := fs.String("due", "", "")
	rest, err := parseFlags(fs, []string{"read", "-due", "2025-03-01", "chapter", "4"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if *due != "2025-03-01" {
		t.Errorf("due = %q", *due)
	}
	if want := []string{"read", "chapter", "4"}; !slices.Equal(rest, want) {
		t.Errorf("rest = %v, want %v", rest, want)
	}
}

func TestParseFlagsUnknownFlagIsUsageError(t *testing.T) {
	fs := newFlagSet("test")
	fs.SetOutput(new(strings.Builder))
	_, err := parseFlags(fs, []string{"-nope"})
	var ue *usageError
	if !errors.As(err, &ue) {
		t.Fatalf("err = %v, want usageError", err)
	}
}

func TestSubcommand(t *testing.T) {
	sub, rest := subcommand([]string{"add", "x"}, "list", "list", "add")
	if sub != "add" || !slices.Equal(rest, []string{"x"}) {
		t.Errorf("got %q %v", sub, rest)
	}
	sub, rest = subcommand([]string{"-all"}, "list", "list", "add")
	if sub != "list" || !slices.Equal(rest, []string{"-all"}) {
		t.Errorf("got %q %v", sub, rest)
	}
}

func TestParseTypes(t *testing.T) {
	types, err := parseTypes("exam, lecture")
	if err != nil {
		t.Fatalf("parseTypes: %v", err)
	}
	if want := []model.EventType{model.EventExam, model.EventLecture}; !slices.Equal(types, want) {
		t.Errorf("types = %v, want %v", types, want)
	}
	if types, _ := parseTypes("all"); types != nil {
		t.Errorf("all = %v, want nil", types)
	}
	if _, err := parseTypes("party"); err == nil {
		t.Error("unknown type accepted")
	}
}

func TestParseFloats(t *testing.T) {
	got, err := parseFloats("8.5, 9,,7")
	if err != nil {
		t.Fatalf("parseFloats: %v", err)
	}
	if want := []float64{8.5, 9, 7}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if _, err := parseFloats("8.5,abc"); err == nil {
		t.Error("non-number accepted")
	}
}

func TestReadContentFromStdin(t *testing.T) {
	got, err := readContent([]string{"-"}, strings.NewReader("from a pipe"))
	if err != nil || got != "from a pipe" {
		t.Errorf("got %q, %v", got, err)
	}
	got, _ = readContent([]string{"two", "words"}, nil)
	if got != "two words" {
		t.Errorf("got %q", got)
	}
}

func TestReportExitCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"help", flag.ErrHelp, 0},
		{"usage", usagef("bad"), 2},
		{"validation", fmt.Errorf("add: %w", model.Invalid("title", "required")), 1},
		{"write", &storage.WriteError{Collection: "tasks", Err: errors.New("disk full")}, 1},
		{"other", errors.New("boom"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := report(tt.err); got != tt.want {
				t.Errorf("report = %d, want %d", got, tt.want)
			}
		})
	}
}
