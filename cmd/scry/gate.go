package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/scrylabs/scry/pkg/models"
)

func gateCmd() *cli.Command {
	return &cli.Command{
		Name:      "gate",
		Usage:     "Fail the build when quality drops below the configured bar",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:  "min-score",
				Usage: "Override the configured minimum average quality score",
			},
		},
		Action: runGateCmd,
	}
}

func runGateCmd(c *cli.Context) error {
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

	minScore := cfg.Gate.MinQualityScore
	if c.IsSet("min-score") {
		minScore = c.Float64("min-score")
	}

	project := result.Project
	var failures []string

	if project.AvgQualityScore < minScore {
		failures = append(failures, fmt.Sprintf(
			"average quality score %.2f is below the minimum %.2f",
			project.AvgQualityScore, minScore))
	}
	for _, sev := range cfg.FailSeverities() {
		if count := project.SeverityDistribution[sev]; count > 0 {
			failures = append(failures, fmt.Sprintf("%d %s severity smell(s) found", count, sev))
		}
	}
	for _, fail := range result.Failed {
		failures = append(failures, fmt.Sprintf("%s could not be parsed: %v", fail.Path, fail.Err))
	}

	fmt.Printf("Files analyzed:    %d\n", project.TotalFiles)
	fmt.Printf("Average quality:   %.2f (minimum %.2f)\n", project.AvgQualityScore, minScore)
	fmt.Printf("Total smells:      %d\n", project.TotalSmells)
	for _, sev := range models.Severities() {
		fmt.Printf("  %-8s %d\n", sev, project.SeverityDistribution[sev])
	}

	if len(failures) > 0 {
		for _, f := range failures {
			color.Red("FAIL: %s", f)
		}
		return cli.Exit("quality gate failed", 1)
	}

	color.Green("Quality gate passed")
	return nil
}
