package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/scrylabs/scry/internal/output"
	"github.com/scrylabs/scry/pkg/models"
)

func scanCmd() *cli.Command {
	return &cli.Command{
		Name:      "scan",
		Usage:     "Analyze Python files for code smells and quality metrics",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "min-severity",
				Usage: "Only show smells at or above this severity (low, medium, high, critical)",
			},
		},
		Action: runScanCmd,
	}
}

func runScanCmd(c *cli.Context) error {
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
	for _, fail := range result.Failed {
		color.Yellow("skipped %s: %v", fail.Path, fail.Err)
	}

	minSeverity := models.SeverityLow
	if name := c.String("min-severity"); name != "" {
		sev, ok := models.ParseSeverity(name)
		if !ok {
			return fmt.Errorf("unknown severity %q", name)
		}
		minSeverity = sev
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	project := result.Project

	var rows [][]string
	for _, path := range sortedFilePaths(project) {
		for _, smell := range project.Files[path].Smells {
			if !smell.Severity.AtLeast(minSeverity) {
				continue
			}
			rows = append(rows, []string{
				output.SeverityLabel(smell.Severity, cfg.Output.Color),
				string(smell.Type),
				fmt.Sprintf("%s:%d", smell.File, smell.Line),
				smell.NodeName,
				smell.Description,
			})
		}
	}

	table := output.NewTable(
		"Code Smells",
		[]string{"Severity", "Type", "Location", "Node", "Description"},
		rows,
		[]string{
			fmt.Sprintf("Files: %d", project.TotalFiles),
			fmt.Sprintf("Smells: %d", len(rows)),
			fmt.Sprintf("Avg Quality: %.2f", project.AvgQualityScore),
			fmt.Sprintf("Project MI: %.2f", project.ProjectMI),
		},
		project,
	)
	return formatter.Output(table)
}

// sortedFilePaths returns project file paths in stable order.
func sortedFilePaths(pm models.ProjectMetrics) []string {
	paths := make([]string, 0, len(pm.Files))
	for p := range pm.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
