package prune

import (
	"fmt"

	"github.com/illusions-app/history/internal/cli"
	"github.com/illusions-app/history/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string  { return "prune" }
func (c *Command) Brief() string { return "Apply the retention policies now" }
func (c *Command) Usage() string { return `prune [<sourceFile>]` }
func (c *Command) Help() string {
	return `Run retention immediately. Pruning also runs automatically after
every snapshot, so this is only needed after editing retention
parameters by hand.

Usage:
  prune               - global cap and age policy
  prune <sourceFile>  - additionally apply the per-file auto cap`
}
func (c *Command) Aliases() []string { return nil }

func (c *Command) Run(ctx *cli.Context) error {
	if err := ctx.Store.PruneOldSnapshots(); err != nil {
		return err
	}
	if len(ctx.Args) > 0 {
		if err := ctx.Store.PruneFileSnapshots(ctx.Args[0]); err != nil {
			return err
		}
	}

	entries, err := ctx.Store.Snapshots("")
	if err != nil {
		return err
	}
	fmt.Printf("Pruned. %d snapshots remain.\n", len(entries))
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
