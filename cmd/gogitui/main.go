// Package main is the entry point for the gogitui application.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/chmouel/gogitui/internal/app"
	"github.com/chmouel/gogitui/internal/buildinfo"
	"github.com/chmouel/gogitui/internal/config"
	"github.com/chmouel/gogitui/internal/gitrepo"
	"github.com/chmouel/gogitui/internal/log"
	"github.com/chmouel/gogitui/internal/theme"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	buildinfo.Set(version, commit, date, builtBy)
	buildinfo.Enrich()

	cliApp := &cli.Command{
		Name:                  "gogitui",
		Usage:                 "A terminal UI for git repositories",
		Version:               buildinfo.Version(),
		EnableShellCompletion: true,
		Flags:                 globalFlags(),

		Commands: []*cli.Command{
			statusCommand(),
			logCommand(),
			themesCommand(),
		},

		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runTUI(ctx, cmd)
		},
		Suggest: true,
	}

	for _, flag := range cliApp.Flags {
		if strFlag, ok := flag.(*cli.StringFlag); ok && strFlag.Name == "theme" {
			themes := theme.AvailableThemes()
			strFlag.Usage = fmt.Sprintf("Override the UI theme (%s)", joinThemes(themes))
			break
		}
	}

	if err := cliApp.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func runTUI(_ context.Context, cmd *cli.Command) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("standard output is not a terminal; use the status/log subcommands for scripting")
	}

	cfg, repoPath, err := loadConfigAndRepo(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		_ = log.Close()
		return err
	}

	model := app.NewModel(cfg, repoPath)
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err = p.Run()
	model.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		_ = log.Close()
		return err
	}

	if err := log.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing debug log: %v\n", err)
	}
	return nil
}

// loadConfigAndRepo resolves flags into a config plus the repository
// path the handle opens: either --workdir/--gitdir split, or the
// conventional directory (default ".").
func loadConfigAndRepo(cmd *cli.Command) (*config.AppConfig, gitrepo.RepoPath, error) {
	if debugLog := cmd.String("debug-log"); debugLog != "" {
		if err := log.SetFile(debugLog); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening debug log file %q: %v\n", debugLog, err)
		}
	}

	cfg, err := config.LoadConfig(cmd.String("config-file"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	if cmd.String("debug-log") == "" {
		if cfg.DebugLog != "" {
			if err := log.SetFile(cfg.DebugLog); err != nil {
				fmt.Fprintf(os.Stderr, "Error opening debug log file from config %q: %v\n", cfg.DebugLog, err)
			}
		} else {
			// No debug log configured, discard any buffered logs
			_ = log.SetFile("")
		}
	}

	dir := cmd.String("directory")
	if dir == "" {
		dir = "."
	}
	var repoPath gitrepo.RepoPath
	if gitdir := cmd.String("gitdir"); gitdir != "" {
		repoPath = gitrepo.NewSplitRepo(gitdir, cmd.String("workdir"))
	} else {
		repoPath = gitrepo.NewPathRepo(dir)
	}

	config.ApplyGitConfigOverlay(cfg, repoPath.WorkDir)
	if repoPath.Dir != "" {
		config.ApplyGitConfigOverlay(cfg, repoPath.Dir)
	}

	if themeName := cmd.String("theme"); themeName != "" {
		normalized := config.NormalizeThemeName(themeName)
		if normalized == "" {
			return nil, gitrepo.RepoPath{}, fmt.Errorf("unknown theme %q", themeName)
		}
		cfg.Theme = normalized
	}

	return cfg, repoPath, nil
}

func joinThemes(themes []string) string {
	out := ""
	for i, t := range themes {
		if i > 0 {
			out += ", "
		}
		out += t
	}
	return out
}
