package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/scrylabs/scry/internal/output"
	"github.com/scrylabs/scry/internal/progress"
	"github.com/scrylabs/scry/internal/review"
	"github.com/scrylabs/scry/pkg/models"
)

func reviewCmd() *cli.Command {
	return &cli.Command{
		Name:      "review",
		Usage:     "Generate review comments for detected smells",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-ai",
				Usage: "Use only built-in rule templates, even when an API key is configured",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Override the configured maximum number of smells to review",
			},
		},
		Action: runReviewCmd,
	}
}

func runReviewCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	result, err := analyzePaths(c.Context, cfg, getPaths(c))
	if err != nil {
		return err
	}
	if len(result.Files) == 0 {
		color.Yellow("No Python files found")
		return nil
	}

	smells := collectSmells(result.Project)
	if len(smells) == 0 {
		color.Green("Nothing to review")
		return nil
	}

	limit := cfg.Review.MaxSmells
	if c.IsSet("limit") {
		limit = c.Int("limit")
	}
	if limit > 0 && len(smells) > limit {
		smells = smells[:limit]
	}

	var engine review.Engine = review.NewRuleEngine()
	tracker := progress.NewTracker("Reviewing smells...", len(smells))
	if !c.Bool("no-ai") {
		if ai := review.NewOpenRouterEngine(cfg); ai != nil {
			engine = ai
			tracker = progress.NewSpinner("Waiting for reviews...")
		}
	}

	reviews := make([]review.Review, 0, len(smells))
	for _, smell := range smells {
		rev, err := engine.Review(smell)
		tracker.Tick()
		if err != nil {
			tracker.FinishError(err)
			return err
		}
		reviews = append(reviews, rev)
	}
	tracker.Finish()

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() == output.FormatJSON {
		return formatter.Output(reviews)
	}

	for _, rev := range reviews {
		fmt.Fprintf(formatter.Writer(), "%s %s\n",
			output.SeverityLabel(rev.Smell.Severity, cfg.Output.Color), rev.Title)
		fmt.Fprintf(formatter.Writer(), "  %s:%d (%s)\n", rev.Smell.File, rev.Smell.Line, rev.Source)
		fmt.Fprintf(formatter.Writer(), "  %s\n", rev.Explanation)
		fmt.Fprintf(formatter.Writer(), "  Suggestion: %s\n\n", rev.Suggestion)
	}
	return nil
}

// collectSmells flattens project smells ordered by severity, worst first,
// breaking ties by file and line.
func collectSmells(pm models.ProjectMetrics) []models.Smell {
	var smells []models.Smell
	for _, path := range sortedFilePaths(pm) {
		smells = append(smells, pm.Files[path].Smells...)
	}
	sort.SliceStable(smells, func(i, j int) bool {
		return smells[i].Severity.Rank() > smells[j].Severity.Rank()
	})
	return smells
}
