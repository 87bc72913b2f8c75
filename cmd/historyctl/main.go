package main

import (
	"fmt"
	"os"

	"github.com/illusions-app/history/internal/cli"
	"github.com/illusions-app/history/internal/config"
	"github.com/illusions-app/history/internal/history"

	_ "github.com/illusions-app/history/internal/command/bookmark"
	_ "github.com/illusions-app/history/internal/command/export"
	_ "github.com/illusions-app/history/internal/command/help"
	_ "github.com/illusions-app/history/internal/command/list"
	_ "github.com/illusions-app/history/internal/command/prune"
	_ "github.com/illusions-app/history/internal/command/remove"
	_ "github.com/illusions-app/history/internal/command/restore"
	_ "github.com/illusions-app/history/internal/command/snapshot"
	_ "github.com/illusions-app/history/internal/command/verify"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: historyctl <command> [args...]")
		fmt.Println("Commands:")
		for _, cmd := range cli.AllCommands() {
			fmt.Printf("  %-10s %s\n", cmd.Name(), cmd.Brief())
		}
		os.Exit(0)
	}

	cmdName := os.Args[1]
	cmd, ok := cli.GetCommand(cmdName)
	if !ok {
		fmt.Printf("Unknown command: %s\n", cmdName)
		os.Exit(1)
	}

	store, err := history.NewStore(config.ResolveWorkspaceRoot(), nil)
	if err != nil {
		fmt.Printf("Failed to open snapshot history: %v\n", err)
		os.Exit(1)
	}

	ctx := &cli.Context{
		Args:  os.Args[2:],
		Store: store,
	}

	if err := cmd.Run(ctx); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
