package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/harrisonrobin/studydesk/pkg/model"
)

// usageError is a bad command line. It exits with status 2.
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

// parseFlags lets flags and positional arguments appear in any order.
func parseFlags(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			if err == flag.ErrHelp {
				return nil, err
			}
			return nil, usagef("%s: %v", fs.Name(), err)
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

// subcommand splits off the first argument when it is one of known.
func subcommand(args []string, def string, known ...string) (string, []string) {
	if len(args) > 0 {
		for _, k := range known {
			if args[0] == k {
				return k, args[1:]
			}
		}
	}
	return def, args
}

func parsePriority(s string) (model.Priority, error) {
	if s == "" {
		return "", nil
	}
	p, ok := model.ParsePriority(s)
	if !ok {
		return "", usagef("unknown priority %q (want High, Medium or Low)", s)
	}
	return p, nil
}

func parseFloats(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, usagef("%q is not a number", part)
		}
		out = append(out, f)
	}
	return out, nil
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}

// readContent joins args, or reads stdin when args is "-".
func readContent(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return strings.Join(args, " "), nil
}
