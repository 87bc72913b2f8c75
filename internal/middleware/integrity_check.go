package middleware

import (
	"fmt"

	"github.com/illusions-app/history/internal/cli"
	"github.com/illusions-app/history/internal/history"
)

// WithIntegrityCheck scans the snapshot history before the command runs
// and warns about damaged or missing content files.
func WithIntegrityCheck() cli.Middleware {
	return func(cmd cli.Command) cli.Command {
		return &cli.WrappedCommand{
			Command: cmd,
			Wrap: func(ctx *cli.Context) error {
				results, err := ctx.Store.VerifyAll()
				if err != nil {
					return fmt.Errorf("history verification failed: %w", err)
				}
				for _, r := range results {
					if r.Status != history.VerifyOK {
						fmt.Printf("warning: snapshot %s (%s) is %s\n",
							r.Entry.ID, r.Entry.Filename, r.Status)
					}
				}
				return cmd.Run(ctx)
			},
		}
	}
}
