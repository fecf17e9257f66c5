package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/scrylabs/scry/internal/report"
)

func reportCmd() *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "Write JSON, CSV, and HTML quality reports",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Directory to write report files into (default from config)",
			},
		},
		Action: runReportCmd,
	}
}

func runReportCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	paths := getPaths(c)
	result, err := analyzePaths(c.Context, cfg, paths)
	if err != nil {
		return err
	}
	if len(result.Files) == 0 {
		color.Yellow("No Python files found")
		return nil
	}
	for _, fail := range result.Failed {
		color.Yellow("skipped %s: %v", fail.Path, fail.Err)
	}

	dir := cfg.Output.Dir
	if c.String("dir") != "" {
		dir = c.String("dir")
	}

	rep := report.New(paths[0], c.App.Version, result.Project)
	written, err := report.WriteAll(rep, dir)
	if err != nil {
		return fmt.Errorf("writing reports: %w", err)
	}

	for _, path := range written {
		fmt.Println(path)
	}
	color.Green("Reports written to %s", dir)
	return nil
}
