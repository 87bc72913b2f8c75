package help

import (
	"fmt"

	"github.com/illusions-app/history/internal/cli"
)

type Command struct{}

func (c *Command) Name() string  { return "help" }
func (c *Command) Brief() string { return "Show help for commands" }
func (c *Command) Usage() string { return `help [<command>]` }
func (c *Command) Help() string {
	return `Show the command list, or detailed help for one command.`
}
func (c *Command) Aliases() []string { return []string{"-h", "--help"} }

func (c *Command) Run(ctx *cli.Context) error {
	if len(ctx.Args) > 0 {
		cmd, ok := cli.GetCommand(ctx.Args[0])
		if !ok {
			return fmt.Errorf("unknown command %q", ctx.Args[0])
		}
		fmt.Printf("%s - %s\n\nUsage:\n  %s\n\n%s\n", cmd.Name(), cmd.Brief(), cmd.Usage(), cmd.Help())
		return nil
	}

	fmt.Println("Usage: historyctl <command> [args...]")
	fmt.Println()
	fmt.Println("Commands:")
	for _, cmd := range cli.AllCommands() {
		fmt.Printf("  %-10s %s\n", cmd.Name(), cmd.Brief())
	}
	return nil
}

func init() {
	cli.RegisterCommand(&Command{})
}
