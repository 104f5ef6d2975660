package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/draganm/countdown/internal/countdown"
	"github.com/draganm/countdown/internal/metrics"
	"github.com/draganm/countdown/internal/models"
)

const exitInterrupted = 130

var logLevel = new(slog.LevelVar)

func main() {
	logLevel.Set(slog.LevelWarn)
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})).
		With("run_id", uuid.New().String()[:8])
	slog.SetDefault(log)

	app := &cli.App{
		Name:  "countdown",
		Usage: "Count down a duration in the terminal, press Enter to pause or resume",
		Flags: []cli.Flag{
			&cli.Uint64Flag{
				Name:    "hours",
				Aliases: []string{"H"},
				Usage:   "Hours",
			},
			&cli.Uint64Flag{
				Name:    "minutes",
				Aliases: []string{"m"},
				Usage:   "Minutes",
			},
			&cli.Uint64Flag{
				Name:    "seconds",
				Aliases: []string{"s"},
				Usage:   "Seconds",
			},
			&cli.BoolFlag{
				Name:    "line-mode",
				Aliases: []string{"l"},
				Usage:   "Print remaining time on a single line",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Diagnostics level written to stderr (debug, info, warn, error)",
				EnvVars: []string{"COUNTDOWN_LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			if err := logLevel.UnmarshalText([]byte(c.String("log-level"))); err != nil {
				return fmt.Errorf("invalid log level: %w", err)
			}
			return nil
		},
		Action: run,
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Error("Error running countdown", "error", err)
		if errors.Is(err, context.Canceled) {
			os.Exit(exitInterrupted)
		}
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()

	out := bufio.NewWriter(os.Stdout)

	err := countdown.Run(ctx, &countdown.Config{
		Settings: models.Settings{
			Hours:    c.Uint64("hours"),
			Minutes:  c.Uint64("minutes"),
			Seconds:  c.Uint64("seconds"),
			LineMode: c.Bool("line-mode"),
		},
		In:      os.Stdin,
		Out:     out,
		Metrics: metrics.New(reg),
	})

	if serr := metrics.LogSummary(reg); serr != nil {
		slog.Warn("Failed to log metrics summary", "error", serr)
	}

	return err
}
