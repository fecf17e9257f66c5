package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "scry",
		Usage:   "Python code quality analysis CLI",
		Version: version,
		Description: `Scry analyzes Python codebases for code smells, maintainability,
and overall quality, and can review, report on, and auto-fix what it finds.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"SCRY_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file",
			},
		},
		Commands: []*cli.Command{
			scanCmd(),
			gateCmd(),
			reportCmd(),
			reviewCmd(),
			fixCmd(),
			docstringsCmd(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}
