package snapshot

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/illusions-app/history/internal/cli"
	"github.com/illusions-app/history/internal/history"
	"github.com/illusions-app/history/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string  { return "snapshot" }
func (c *Command) Brief() string { return "Record a snapshot of a document" }
func (c *Command) Usage() string {
	return `snapshot <sourceFile> [--file <path> | --stdin] [--kind auto|manual|milestone] [--label "<text>"]`
}
func (c *Command) Help() string {
	return `Record a point-in-time snapshot of a document.

Usage:
  snapshot <sourceFile> --file <path>       - snapshot the content of a local file
  snapshot <sourceFile> --stdin             - snapshot content read from stdin
  snapshot <sourceFile> --kind milestone --label "first draft"

The kind defaults to manual when invoked from the command line.`
}
func (c *Command) Aliases() []string { return []string{"snap"} }

func (c *Command) Run(ctx *cli.Context) error {
	var sourceFile, fromFile, label string
	kind := history.KindManual
	useStdin := false

	for i := 0; i < len(ctx.Args); i++ {
		arg := ctx.Args[i]
		switch {
		case arg == "--file" && i+1 < len(ctx.Args):
			fromFile = ctx.Args[i+1]
			i++
		case strings.HasPrefix(arg, "--file="):
			fromFile = strings.TrimPrefix(arg, "--file=")
		case arg == "--stdin":
			useStdin = true
		case arg == "--kind" && i+1 < len(ctx.Args):
			kind = history.Kind(ctx.Args[i+1])
			i++
		case strings.HasPrefix(arg, "--kind="):
			kind = history.Kind(strings.TrimPrefix(arg, "--kind="))
		case arg == "--label" && i+1 < len(ctx.Args):
			label = ctx.Args[i+1]
			i++
		case strings.HasPrefix(arg, "--label="):
			label = strings.TrimPrefix(arg, "--label=")
		default:
			if sourceFile == "" {
				sourceFile = arg
			}
		}
	}

	if sourceFile == "" {
		return fmt.Errorf("source file name required")
	}
	switch kind {
	case history.KindAuto, history.KindManual, history.KindMilestone:
	default:
		return fmt.Errorf("unknown snapshot kind %q", kind)
	}

	var content []byte
	var err error
	switch {
	case useStdin:
		content, err = io.ReadAll(os.Stdin)
	case fromFile != "":
		content, err = os.ReadFile(fromFile)
	default:
		content, err = os.ReadFile(sourceFile)
	}
	if err != nil {
		return fmt.Errorf("read content: %w", err)
	}

	entry, err := ctx.Store.CreateSnapshot(sourceFile, string(content), kind, label)
	if err != nil {
		return err
	}

	fmt.Printf("Snapshot %s recorded (%s, %d bytes, checksum %s)\n",
		entry.ID, entry.Kind, entry.ByteSize, entry.Checksum)
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
