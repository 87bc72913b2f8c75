package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/illusions-app/history/internal/cli"
	"github.com/illusions-app/history/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string  { return "export" }
func (c *Command) Brief() string { return "Export snapshots as a compressed archive" }
func (c *Command) Usage() string { return `export [<sourceFile>] --out <path.tar.gz>` }
func (c *Command) Help() string {
	return `Write a gzip-compressed tar archive holding a manifest plus the
content files of the selected snapshots.

Usage:
  export --out history.tar.gz                - everything
  export novel.mdi --out novel-history.tar.gz - one document`
}
func (c *Command) Aliases() []string { return nil }

func (c *Command) Run(ctx *cli.Context) error {
	var sourceFile, out string
	for i := 0; i < len(ctx.Args); i++ {
		arg := ctx.Args[i]
		switch {
		case arg == "--out" && i+1 < len(ctx.Args):
			out = ctx.Args[i+1]
			i++
		case strings.HasPrefix(arg, "--out="):
			out = strings.TrimPrefix(arg, "--out=")
		default:
			if sourceFile == "" {
				sourceFile = arg
			}
		}
	}
	if out == "" {
		return fmt.Errorf("output path required (--out)")
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create archive %q: %w", out, err)
	}
	defer f.Close()

	if err := ctx.Store.Export(sourceFile, f); err != nil {
		os.Remove(out)
		return err
	}
	fmt.Printf("Exported history to %s\n", out)
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
