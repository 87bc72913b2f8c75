package restore

import (
	"fmt"
	"os"
	"strings"

	"github.com/illusions-app/history/internal/cli"
	"github.com/illusions-app/history/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string  { return "restore" }
func (c *Command) Brief() string { return "Restore a snapshot's verified content" }
func (c *Command) Usage() string { return `restore <id> [--out <path>]` }
func (c *Command) Help() string {
	return `Restore the content recorded under a snapshot id.

The content checksum is recomputed before anything is returned; a
mismatch aborts the restore and reports both digests.

Usage:
  restore <id>              - print the content to stdout
  restore <id> --out <path> - write the content to a file`
}
func (c *Command) Aliases() []string { return []string{"cat"} }

func (c *Command) Run(ctx *cli.Context) error {
	var id, out string
	for i := 0; i < len(ctx.Args); i++ {
		arg := ctx.Args[i]
		switch {
		case arg == "--out" && i+1 < len(ctx.Args):
			out = ctx.Args[i+1]
			i++
		case strings.HasPrefix(arg, "--out="):
			out = strings.TrimPrefix(arg, "--out=")
		default:
			if id == "" {
				id = arg
			}
		}
	}
	if id == "" {
		return fmt.Errorf("snapshot id required")
	}

	content, err := ctx.Store.RestoreSnapshot(id)
	if err != nil {
		return err
	}

	if out != "" {
		if err := os.WriteFile(out, []byte(content), 0o644); err != nil {
			return fmt.Errorf("write restored content: %w", err)
		}
		fmt.Printf("Restored snapshot %s to %s\n", id, out)
		return nil
	}
	fmt.Print(content)
	return nil
}

func init() {
	cli.RegisterCommand(
		cli.ApplyMiddlewares(
			&Command{},
			middleware.WithDebugArgsPrint(),
			middleware.WithIntegrityCheck(),
		),
	)
}
