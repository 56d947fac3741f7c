package commands

import (
	"github.com/spf13/cobra"

	"loopsched/internal/cli"
	"loopsched/internal/config"
	"loopsched/internal/storage"
	"loopsched/internal/suite"
	"loopsched/internal/ui"
)

// Commands holds all CLI commands.
type Commands struct {
	Run   *RunCommand
	List  *ListCommand
	Sweep *SweepCommand
	Watch *WatchCommand
}

// NewCommands creates all commands with dependencies.
func NewCommands(cfg *config.Config) *Commands {
	loader := suite.NewLoader([]string{".git"})
	filter := suite.NewFilter()
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg)
	loadViewer := ui.NewLoadViewer(cfg)

	return &Commands{
		Run:   NewRunCommand(cfg, jsonStorage, formatter),
		List:  NewListCommand(cfg, formatter),
		Sweep: NewSweepCommand(cfg, loader, filter, jsonStorage),
		Watch: NewWatchCommand(cfg, jsonStorage, loadViewer),
	}
}

// Register registers all commands with cobra.
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run one parallel loop",
		Long:  "Execute a single scheduled loop across Workers goroutines and report per-worker load",
		RunE:  c.Run.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			applyFlags(cfg, flags)
			return nil
		},
	}
	addLoopFlags(runCmd, flags)
	runCmd.Flags().BoolVar(&flags.Record, "record", false, "Record this run into the MySQL history store")
	rootCmd.AddCommand(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available policies and feature flags",
		Long:  "Print the scheduling policies this build supports and which feature switches are active",
		RunE:  c.List.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			applyFlags(cfg, flags)
			return nil
		},
	}
	rootCmd.AddCommand(listCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run every loop spec in a suite directory",
		Long:  "Load loop specs from a directory of JSON files and run each one sequentially",
		RunE:  c.Sweep.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			if flags.SuitePath != "" {
				cfg.SuitePath = flags.SuitePath
			}
			return nil
		},
	}
	sweepCmd.Flags().StringVarP(&flags.SuitePath, "suite-path", "s", "", "Directory of loop-spec JSON files")
	sweepCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Filter suite entries by name pattern (supports wildcards)")
	rootCmd.AddCommand(sweepCmd)

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "View the last run's per-worker load interactively",
		Long:  "Open an interactive TUI over the last saved run result, sortable by iterations executed",
		RunE:  c.Watch.Execute,
	}
	rootCmd.AddCommand(watchCmd)
}

func addLoopFlags(cmd *cobra.Command, flags *cli.Flags) {
	cmd.Flags().Int64VarP(&flags.Start, "start", "a", 0, "Loop start bound (inclusive)")
	cmd.Flags().Int64VarP(&flags.End, "end", "b", 0, "Loop end bound (exclusive)")
	cmd.Flags().Int64VarP(&flags.Incr, "incr", "i", 0, "Loop step")
	cmd.Flags().Int64VarP(&flags.ChunkSize, "chunk-size", "c", 0, "Chunk size for guided/dynamic/static policies (0 = policy default)")
	cmd.Flags().StringVarP(&flags.Policy, "policy", "p", "", "Scheduling policy: static, dynamic, guided, or adaptive")
	cmd.Flags().IntVarP(&flags.Workers, "workers", "w", 0, "Number of worker goroutines")
	cmd.Flags().StringVar(&flags.NumaGroups, "numa-groups", "", `NUMA group membership, e.g. "0,1|2,3"`)
	cmd.Flags().BoolVar(&flags.PWSStrict, "pws-strict", false, "Forbid cross-NUMA stealing once local victims are exhausted")
	cmd.Flags().BoolVar(&flags.StealEnabled, "steal", true, "Enable adaptive work stealing")
	cmd.Flags().IntVar(&flags.WorkPerIter, "work-per-iter", 0, "Busy-work units per iteration (benchmark load)")
}

func applyFlags(cfg *config.Config, flags *cli.Flags) {
	loaded := config.Load(flags.ToConfigFlags())
	*cfg = *loaded
}
