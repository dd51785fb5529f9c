package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/chmouel/gogitui/internal/config"
	"github.com/chmouel/gogitui/internal/gitrepo"
	"github.com/chmouel/gogitui/internal/theme"
)

// statusCommand prints the porcelain status without entering the TUI,
// for scripting and quick checks.
func statusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Print the repository status and exit",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, repoPath, err := loadConfigAndRepo(cmd)
			if err != nil {
				return err
			}
			h := gitrepo.Open(repoPath, nil)
			items, err := h.Status(ctx, false)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("working tree clean")
				return nil
			}
			for _, item := range items {
				fmt.Printf("%-10s %s\n", item.Kind, item.Path)
			}
			return nil
		},
	}
}

// logCommand prints a bounded slice of the revlog and exits.
func logCommand() *cli.Command {
	return &cli.Command{
		Name:  "log",
		Usage: "Print recent commits and exit",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Number of commits to print",
				Value:   20,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, repoPath, err := loadConfigAndRepo(cmd)
			if err != nil {
				return err
			}
			h := gitrepo.Open(repoPath, nil)
			commits, err := h.RevList(ctx, "", 0, int(cmd.Int("limit")))
			if err != nil {
				return err
			}
			for _, c := range commits {
				fmt.Printf("%s %s\n", c.ID.ShortString(), c.Subject)
			}
			return nil
		},
	}
}

// themesCommand lists the available UI themes and the syntax style each
// one selects.
func themesCommand() *cli.Command {
	return &cli.Command{
		Name:  "themes",
		Usage: "List available UI themes",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			names := theme.AvailableThemes()
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("  %-18s -> %s\n", name, config.SyntaxThemeForUITheme(name))
			}
			return nil
		},
	}
}
