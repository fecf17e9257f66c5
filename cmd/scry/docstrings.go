package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/scrylabs/scry/internal/analyzer"
	"github.com/scrylabs/scry/internal/fileproc"
	"github.com/scrylabs/scry/internal/output"
	"github.com/scrylabs/scry/internal/progress"
	"github.com/scrylabs/scry/pkg/syntax"
)

func docstringsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docstrings",
		Usage:     "Measure docstring coverage of functions and classes",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:  "min-coverage",
				Usage: "fail when overall coverage is below this percentage",
			},
		},
		Action: runDocstringsCmd,
	}
}

type fileDocstrings struct {
	Path  string                  `json:"path"`
	Stats analyzer.DocstringStats `json:"stats"`
}

func runDocstringsCmd(c *cli.Context) error {
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

	tracker := progress.NewTracker("Measuring docstrings...", len(files))
	perFile := fileproc.MapFilesWithProgress(files, func(p *syntax.Parser, path string) (fileDocstrings, error) {
		mod, err := p.ParseFile(path)
		if err != nil {
			return fileDocstrings{}, err
		}
		return fileDocstrings{Path: path, Stats: analyzer.MeasureDocstrings(mod)}, nil
	}, tracker.Tick)
	tracker.Finish()
	sort.Slice(perFile, func(i, j int) bool { return perFile[i].Path < perFile[j].Path })

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	var total analyzer.DocstringStats
	var rows [][]string
	for _, fd := range perFile {
		total.Add(fd.Stats)
		if fd.Stats.Total == 0 {
			continue
		}
		rows = append(rows, []string{
			fd.Path,
			fmt.Sprintf("%d", fd.Stats.Documented),
			fmt.Sprintf("%d", fd.Stats.Total),
			fmt.Sprintf("%.1f%%", fd.Stats.Coverage()),
		})
	}

	table := output.NewTable(
		"Docstring Coverage",
		[]string{"File", "Documented", "Definitions", "Coverage"},
		rows,
		[]string{
			fmt.Sprintf("Overall: %.1f%%", total.Coverage()),
			fmt.Sprintf("Documented: %d/%d", total.Documented, total.Total),
		},
		perFile,
	)
	if err := formatter.Output(table); err != nil {
		return err
	}

	if min := c.Float64("min-coverage"); c.IsSet("min-coverage") && total.Coverage() < min {
		return cli.Exit(fmt.Sprintf("docstring coverage %.1f%% is below %.1f%%", total.Coverage(), min), 1)
	}
	return nil
}
