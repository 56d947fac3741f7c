package main

import (
	"fmt"
	"os"

	"loopsched/internal/cli"
	"loopsched/internal/cli/commands"
	"loopsched/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "loopsched",
		Short:   "Parallel loop iteration scheduler benchmark harness",
		Long:    `A benchmark harness for OpenMP-style parallel loop iteration scheduling. Run static, dynamic, guided, or adaptive work-stealing schedules across goroutine teams and inspect per-worker load.`,
		Version: version,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
