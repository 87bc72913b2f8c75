package remove

import (
	"fmt"

	"github.com/illusions-app/history/internal/cli"
	"github.com/illusions-app/history/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string  { return "delete" }
func (c *Command) Brief() string { return "Delete a snapshot and its content file" }
func (c *Command) Usage() string { return `delete <id>` }
func (c *Command) Help() string {
	return `Delete one snapshot by id. Deletion is irreversible and works on
milestones too - automatic pruning never touches them, explicit
deletion does.

Usage:
  delete <id>`
}
func (c *Command) Aliases() []string { return []string{"rm"} }

func (c *Command) Run(ctx *cli.Context) error {
	if len(ctx.Args) < 1 {
		return fmt.Errorf("snapshot id required")
	}
	id := ctx.Args[0]

	if err := ctx.Store.DeleteSnapshot(id); err != nil {
		return err
	}
	fmt.Printf("Deleted snapshot %s\n", id)
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
