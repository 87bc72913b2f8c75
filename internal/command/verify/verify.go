package verify

import (
	"fmt"

	"github.com/illusions-app/history/internal/cli"
	"github.com/illusions-app/history/internal/history"
	"github.com/illusions-app/history/internal/middleware"
	"github.com/illusions-app/history/internal/progress"
)

type Command struct{}

func (c *Command) Name() string  { return "verify" }
func (c *Command) Brief() string { return "Check every snapshot against its checksum" }
func (c *Command) Usage() string { return `verify` }
func (c *Command) Help() string {
	return `Recompute the checksum of every snapshot content file and report
files that are missing or no longer match their recorded digest.`
}
func (c *Command) Aliases() []string { return []string{"fsck"} }

func (c *Command) Run(ctx *cli.Context) error {
	entries, err := ctx.Store.Snapshots("")
	if err != nil {
		return err
	}

	tracker := progress.Start(len(entries), "Verifying history")
	results, err := ctx.Store.VerifyAll()
	if err != nil {
		tracker.Finish()
		return err
	}

	bad := 0
	for _, r := range results {
		flagged := r.Status != history.VerifyOK
		tracker.Step(flagged)
		if flagged {
			bad++
		}
	}
	tracker.Finish()

	for _, r := range results {
		if r.Status != history.VerifyOK {
			fmt.Printf("%s  %s  %s\n", r.Status, r.Entry.ID, r.Entry.Filename)
		}
	}
	if bad > 0 {
		return fmt.Errorf("%d of %d snapshots failed verification", bad, len(results))
	}
	fmt.Printf("All %d snapshots verified.\n", len(results))
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
