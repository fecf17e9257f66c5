package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/scrylabs/scry/internal/analyzer"
	"github.com/scrylabs/scry/internal/fileproc"
	"github.com/scrylabs/scry/internal/output"
	"github.com/scrylabs/scry/internal/progress"
	"github.com/scrylabs/scry/internal/scanner"
	"github.com/scrylabs/scry/pkg/config"
	"github.com/scrylabs/scry/pkg/models"
	"github.com/scrylabs/scry/pkg/syntax"
)

// getPaths returns paths from positional args, defaulting to ["."]
func getPaths(c *cli.Context) []string {
	if c.Args().Len() > 0 {
		return c.Args().Slice()
	}
	return []string{"."}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
		return cfg, nil
	}
	return config.LoadOrDefault(), nil
}

func newFormatter(c *cli.Context, cfg *config.Config) (*output.Formatter, error) {
	format := c.String("format")
	if format == "" {
		format = cfg.Output.Format
	}
	return output.NewFormatter(output.ParseFormat(format), c.String("output"), cfg.Output.Color)
}

// collectFiles scans every requested path for analyzable Python files.
func collectFiles(cfg *config.Config, paths []string) ([]string, error) {
	scan := scanner.New(cfg)
	var files []string
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("invalid path %s: %w", path, err)
		}
		found, err := scan.ScanDir(abs)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", path, err)
		}
		files = append(files, found...)
	}
	return files, nil
}

// analysisResult bundles everything one analysis pass produces.
type analysisResult struct {
	Files      []string
	Project    models.ProjectMetrics
	Docstrings analyzer.DocstringStats
	Failed     []fileproc.ProcessingError
}

// analyzePaths scans, parses, and analyzes all Python files under the
// given paths. Files that fail to parse are reported, not fatal;
// cancellation of the context stops the analysis.
func analyzePaths(ctx context.Context, cfg *config.Config, paths []string) (*analysisResult, error) {
	files, err := collectFiles(cfg, paths)
	if err != nil {
		return nil, err
	}

	result := &analysisResult{Files: files}
	agg := analyzer.NewAggregator()

	if len(files) > 0 {
		tracker := progress.NewTracker("Analyzing files...", len(files))

		perFile, errs := fileproc.MapFilesCtx(ctx, files, func(p *syntax.Parser, path string) (analyzer.DocstringStats, error) {
			mod, err := p.ParseFile(path)
			if err != nil {
				return analyzer.DocstringStats{}, err
			}
			agg.AnalyzeFile(path, mod)
			return analyzer.MeasureDocstrings(mod), nil
		}, tracker.Tick)
		if err := ctx.Err(); err != nil {
			tracker.FinishError(err)
			return nil, err
		}
		tracker.Finish()

		for _, stats := range perFile {
			result.Docstrings.Add(stats)
		}
		if errs != nil {
			result.Failed = errs.Errors
		}
	}

	coverage := result.Docstrings.Coverage()
	result.Project = agg.ProjectMetrics(&coverage)
	return result, nil
}
