package bookmark

import (
	"fmt"

	"github.com/illusions-app/history/internal/cli"
	"github.com/illusions-app/history/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string  { return "bookmark" }
func (c *Command) Brief() string { return "Toggle or list snapshot bookmarks" }
func (c *Command) Usage() string { return `bookmark [<id>]` }
func (c *Command) Help() string {
	return `Pin snapshots for quick retrieval.

Usage:
  bookmark       - list bookmarked snapshot ids
  bookmark <id>  - toggle the bookmark on one snapshot`
}
func (c *Command) Aliases() []string { return []string{"pin"} }

func (c *Command) Run(ctx *cli.Context) error {
	if len(ctx.Args) == 0 {
		ids, err := ctx.Store.Bookmarks()
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Println("No bookmarks.")
			return nil
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	}

	id := ctx.Args[0]
	on, err := ctx.Store.ToggleBookmark(id)
	if err != nil {
		return err
	}
	if on {
		fmt.Printf("Bookmarked %s\n", id)
	} else {
		fmt.Printf("Removed bookmark from %s\n", id)
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
