package middleware

import (
	"fmt"
	"os"

	"github.com/illusions-app/history/internal/cli"
)

// WithDebugArgsPrint echoes the parsed arguments when HISTORYCTL_DEBUG
// is set, before the command runs.
func WithDebugArgsPrint() cli.Middleware {
	return func(cmd cli.Command) cli.Command {
		return &cli.WrappedCommand{
			Command: cmd,
			Wrap: func(ctx *cli.Context) error {
				if os.Getenv("HISTORYCTL_DEBUG") != "" {
					fmt.Printf("[debug] %s args: %v\n", cmd.Name(), ctx.Args)
				}
				return cmd.Run(ctx)
			},
		}
	}
}
