package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/harrisonrobin/studydesk/pkg/auth"
	"github.com/harrisonrobin/studydesk/pkg/config"
)

func runConfig(cfg *config.Config, args []string) error {
	sub, args := subcommand(args, "show", "show", "set", "path")
	switch sub {
	case "set":
		if len(args) != 2 {
			return usagef("usage: studydesk config set <key> <value>")
		}
		if err := cfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("error saving config: %w", err)
		}
		fmt.Printf("%s set to: %s\n", args[0], args[1])
		return nil
	case "path":
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	default:
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	}
}

// runAuth discards any saved token and walks through the OAuth flow again.
func runAuth(ctx context.Context, logger *zap.Logger, args []string) error {
	fs := newFlagSet("auth")
	if _, err := parseFlags(fs, args); err != nil {
		return err
	}

	if err := auth.RemoveToken(); err != nil {
		return fmt.Errorf("could not delete the old token, please delete it manually: %w", err)
	}
	if _, err := auth.GetCalendarService(ctx, logger); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	path, _ := auth.TokenPath()
	fmt.Printf("Authentication successful! Token saved to %s\n", path)
	return nil
}
