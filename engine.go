package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

var (
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
)

// isManualDispatch reports whether the pipeline run was started by hand.
// GITHUB_EVENT_NAME covers GitHub Actions and Forgejo, CI_PIPELINE_SOURCE
// covers GitLab CI.
func isManualDispatch(getenv func(string) string) bool {
	return getenv("GITHUB_EVENT_NAME") == "workflow_dispatch" || getenv("CI_PIPELINE_SOURCE") == "web"
}

// Evaluator decides whether a release is due and prints why.
type Evaluator struct {
	out io.Writer
	now func() time.Time
}

func NewEvaluator(out io.Writer, now func() time.Time) *Evaluator {
	return &Evaluator{out: out, now: now}
}

// IsGreenlight applies the release gates in order. A manual run skips all of
// them. The day gate uses the local wall clock, not tag or commit times.
func (e *Evaluator) IsGreenlight(newIcons []string, manual bool, th Thresholds) bool {

	if manual {
		green.Fprintln(e.out, "🟢 Manually triggered workflow, skipped all check, greenlighting!")
		return true
	}

	today := e.now().Day()
	if today != th.Day {
		red.Fprintf(e.out, "🔴 Today is %d, which isn't the target release day %d.\n", today, th.Day)
		return false
	}

	if len(newIcons) < th.NewIcons {
		red.Fprintf(e.out, "🔴 Only %d new icons found since the last release, below the threshold of %d.\n", len(newIcons), th.NewIcons)
		return false
	}

	green.Fprintln(e.out, "🟢 Greenlight!")
	return true
}

func printVerdict(out io.Writer, greenlight bool) {
	if !greenlight {
		fmt.Fprintln(out, "🚦 Not eligible for release!")
		return
	}
	fmt.Fprintln(out, "🚦 Eligible for release! Greenlight away!")
}
