package list

import (
	"fmt"
	"time"

	"github.com/illusions-app/history/internal/cli"
	"github.com/illusions-app/history/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string  { return "list" }
func (c *Command) Brief() string { return "List recorded snapshots" }
func (c *Command) Usage() string { return `list [<sourceFile>]` }
func (c *Command) Help() string {
	return `List snapshots, newest first.

Usage:
  list              - every snapshot in the workspace
  list <sourceFile> - only snapshots of one document`
}
func (c *Command) Aliases() []string { return []string{"ls"} }

func (c *Command) Run(ctx *cli.Context) error {
	sourceFile := ""
	if len(ctx.Args) > 0 {
		sourceFile = ctx.Args[0]
	}

	entries, err := ctx.Store.Snapshots(sourceFile)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No snapshots recorded.")
		return nil
	}

	bookmarks, err := ctx.Store.Bookmarks()
	if err != nil {
		return err
	}
	marked := make(map[string]bool, len(bookmarks))
	for _, id := range bookmarks {
		marked[id] = true
	}

	for _, e := range entries {
		pin := " "
		if marked[e.ID] {
			pin = "*"
		}
		label := ""
		if e.Label != "" {
			label = fmt.Sprintf("  %q", e.Label)
		}
		fmt.Printf("%s %s  %s  %-9s  %s  %d chars%s\n",
			pin, e.ID, e.Time().Format(time.DateTime), e.Kind, e.SourceFile, e.CharacterCount, label)
	}
	return nil
}

func init() {
	cli.RegisterCommand(
		cli.ApplyMiddlewares(
			&Command{},
			middleware.WithDebugArgsPrint(),
		),
	)
}
