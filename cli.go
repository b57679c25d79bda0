package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

var errNotEligible = goerr.New("not eligible for release")

// releaseGate runs one release check against a local repository.
type releaseGate struct {
	repoPath   string
	iconsDir   string
	thresholds Thresholds
	out        io.Writer
	getenv     func(string) string
	now        func() time.Time
}

// Run reports whether a release should be cut.
func (g *releaseGate) Run() (bool, error) {

	repo, err := openRepository(g.repoPath)
	if err != nil {
		return false, err
	}

	release, err := resolveLastRelease(repo)
	if err != nil {
		return false, err
	}
	slog.Info("Resolved last release", slog.String("tag", release.Name), slog.Time("date", release.When))

	fmt.Fprintf(g.out, "Checking out version %s\n", release.Name)
	newIcons, err := newIconsSince(repo, g.iconsDir, release.Name)
	if err != nil {
		return false, err
	}
	fmt.Fprintf(g.out, "🎉 There have been %d new icons since release!\n", len(newIcons))

	greenlight := NewEvaluator(g.out, g.now).IsGreenlight(newIcons, isManualDispatch(g.getenv), g.thresholds)
	printVerdict(g.out, greenlight)

	return greenlight, nil
}

// run is the CLI entry point. It returns errNotEligible when the checks pass
// but no release is due.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	var (
		loggerCfg LoggerConfig
		gateCfg   GateConfig
	)

	cmd := &cli.Command{
		Name:  "icon-release-gate",
		Usage: "Decide whether enough new icons landed to cut a release",
		Flags: append(loggerCfg.Flags(), gateCfg.Flags()...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, err := loggerCfg.Configure(os.Stderr)
			if err != nil {
				return nil, err
			}
			slog.SetDefault(logger)
			return ctx, nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			th, err := gateCfg.Thresholds()
			if err != nil {
				return err
			}

			gate := &releaseGate{
				repoPath:   gateCfg.Repo,
				iconsDir:   gateCfg.IconsDir,
				thresholds: th,
				out:        stdout,
				getenv:     os.Getenv,
				now:        time.Now,
			}

			greenlight, err := gate.Run()
			if err != nil {
				return err
			}
			if !greenlight {
				return errNotEligible
			}
			return nil
		},
	}

	return cmd.Run(ctx, args)
}
