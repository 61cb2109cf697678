package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dargueta/cmpt365/config"
	"github.com/urfave/cli/v2"
)

const environmentKey = "environment"

// environment is the state shared by every subcommand.
type environment struct {
	config *config.Config
	logger *slog.Logger
}

var logOutputs = map[string]io.Writer{
	"stderr": os.Stderr,
	"stdout": os.Stdout,
	"none":   io.Discard,
}

func getEnvironment(context *cli.Context) *environment {
	return context.App.Metadata[environmentKey].(*environment)
}

func setUpEnvironment(context *cli.Context) error {
	cfg, err := config.LoadConfig(context.String("config"))
	if err != nil {
		return err
	}

	if level := context.String("log-level"); level != "" {
		cfg.Logging.Level = level
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, err := createLogger(cfg.Logging)
	if err != nil {
		return err
	}

	if context.App.Metadata == nil {
		context.App.Metadata = map[string]interface{}{}
	}
	context.App.Metadata[environmentKey] = &environment{
		config: cfg,
		logger: logger,
	}
	return nil
}

// createLogger builds a text logger writing to the configured stream.
func createLogger(cfg config.LoggingConfig) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	output, ok := logOutputs[strings.ToLower(cfg.Output)]
	if !ok {
		return nil, fmt.Errorf("invalid log output: %s", cfg.Output)
	}
	return slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: level})), nil
}
