package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
)

func main() {
	if err := run(context.Background(), os.Args, os.Stdout); err != nil {
		if !errors.Is(err, errNotEligible) {
			slog.Error("Release check failed", slog.Any("error", err))
		}
		os.Exit(1)
	}
}
