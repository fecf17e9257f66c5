package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/scrylabs/scry/internal/autofix"
	"github.com/scrylabs/scry/internal/output"
)

func fixCmd() *cli.Command {
	return &cli.Command{
		Name:      "fix",
		Usage:     "Apply safe automatic fixes for configured smell types",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Show what would change without touching any file",
			},
		},
		Action: runFixCmd,
	}
}

func runFixCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	files, err := collectFiles(cfg, getPaths(c))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("No Python files found")
		return nil
	}

	engine := autofix.New(cfg.FixableSmells(), c.Bool("dry-run"))
	fixes, err := engine.FixFiles(files)
	if err != nil {
		return err
	}
	if len(fixes) == 0 {
		color.Green("Nothing to fix")
		return nil
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	applied := 0
	var rows [][]string
	for _, fix := range fixes {
		status := "skipped"
		if fix.Applied {
			status = "applied"
			applied++
		}
		rows = append(rows, []string{
			status,
			fmt.Sprintf("%s:%d", fix.File, fix.Line),
			fix.NodeName,
			fix.Reason,
		})
	}

	title := "Fixes"
	if c.Bool("dry-run") {
		title = "Fixes (dry run)"
	}
	table := output.NewTable(
		title,
		[]string{"Status", "Location", "Imports", "Reason"},
		rows,
		[]string{fmt.Sprintf("Applied: %d", applied), fmt.Sprintf("Skipped: %d", len(fixes)-applied)},
		fixes,
	)
	return formatter.Output(table)
}
