// Package main provides CLI flag definitions for gogitui.
package main

import "github.com/urfave/cli/v3"

// globalFlags returns all global flags for the application.
// Note: --version is provided automatically by urfave/cli via Version.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "directory",
			Aliases: []string{"d"},
			Usage:   "Repository directory (default: current directory)",
		},
		&cli.StringFlag{
			Name:  "gitdir",
			Usage: "Explicit git directory for a bare/split layout",
		},
		&cli.StringFlag{
			Name:  "workdir",
			Usage: "Working tree directory paired with --gitdir",
		},
		&cli.StringFlag{
			Name:  "debug-log",
			Usage: "Path to debug log file",
		},
		&cli.StringFlag{
			Name:    "theme",
			Aliases: []string{"t"},
			Usage:   "Override the UI theme",
		},
		&cli.StringFlag{
			Name:  "config-file",
			Usage: "Path to configuration file",
		},
	}
}
