package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const envPrefix = "ICON_RELEASE_"

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level string
	JSON  bool
}

// Flags returns CLI flags for logger configuration
func (c *LoggerConfig) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &c.Level,
			Sources:     cli.EnvVars(envPrefix + "LOG_LEVEL"),
		},
		&cli.BoolFlag{
			Name:        "log-json",
			Usage:       "Output logs in JSON format",
			Destination: &c.JSON,
			Sources:     cli.EnvVars(envPrefix + "LOG_JSON"),
		},
	}
}

// Configure builds a logger writing to w
func (c *LoggerConfig) Configure(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(c.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, goerr.New("invalid log level", goerr.V("level", c.Level))
	}

	if c.JSON {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})), nil
	}

	handler := clog.New(
		clog.WithWriter(w),
		clog.WithLevel(level),
		clog.WithColor(!color.NoColor),
	)
	return slog.New(handler), nil
}

// GateConfig holds the repository location and release thresholds
type GateConfig struct {
	Repo         string
	IconsDir     string
	DayThreshold int
	NewThreshold int
}

// Flags returns CLI flags for gate configuration
func (c *GateConfig) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repo",
			Usage:       "Path to the icon repository",
			Value:       ".",
			Destination: &c.Repo,
			Sources:     cli.EnvVars(envPrefix + "REPO"),
		},
		&cli.StringFlag{
			Name:        "icons-dir",
			Usage:       "Icons directory, relative to the repository root",
			Value:       "svgs",
			Destination: &c.IconsDir,
			Sources:     cli.EnvVars(envPrefix + "ICONS_DIR"),
		},
		&cli.IntFlag{
			Name:        "day-threshold",
			Usage:       "Day of month on which an automatic release may happen",
			Value:       1,
			Destination: &c.DayThreshold,
			Sources:     cli.EnvVars(envPrefix + "DAY_THRESHOLD"),
		},
		&cli.IntFlag{
			Name:        "new-threshold",
			Usage:       "Minimum number of new icons for an automatic release",
			Value:       100,
			Destination: &c.NewThreshold,
			Sources:     cli.EnvVars(envPrefix + "NEW_THRESHOLD"),
		},
	}
}

// Thresholds validates the configured gates
func (c *GateConfig) Thresholds() (Thresholds, error) {
	if c.DayThreshold < 1 || c.DayThreshold > 31 {
		return Thresholds{}, goerr.New("day threshold must be between 1 and 31", goerr.V("day", c.DayThreshold))
	}
	if c.NewThreshold < 0 {
		return Thresholds{}, goerr.New("new icon threshold must not be negative", goerr.V("threshold", c.NewThreshold))
	}

	return Thresholds{Day: c.DayThreshold, NewIcons: c.NewThreshold}, nil
}
