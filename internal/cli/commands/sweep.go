package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"loopsched/internal/config"
	"loopsched/internal/domain"
	"loopsched/internal/sched"
	"loopsched/internal/storage"
	"loopsched/internal/suite"
	"loopsched/internal/team"
)

// SweepCommand handles the sweep command.
type SweepCommand struct {
	config  *config.Config
	loader  *suite.Loader
	filter  *suite.Filter
	storage storage.Storage
}

// NewSweepCommand creates a new SweepCommand.
func NewSweepCommand(cfg *config.Config, loader *suite.Loader, filter *suite.Filter, st storage.Storage) *SweepCommand {
	return &SweepCommand{
		config:  cfg,
		loader:  loader,
		filter:  filter,
		storage: st,
	}
}

// Execute runs the command. It runs every loop-spec entry in the suite
// directory sequentially — each run already saturates its own Workers
// goroutines, so running entries concurrently would only contend on
// terminal/progress output for no throughput gain.
func (sc *SweepCommand) Execute(cmd *cobra.Command, args []string) error {
	entries, err := sc.loader.Load(sc.config.GetSuitePath())
	if err != nil {
		return err
	}

	entries = sc.filter.ByName(entries, sc.config.Flags.Filter)
	if len(entries) == 0 {
		color.Yellow("No suite entries to run")
		return nil
	}

	result := domain.SweepResult{Entries: entries}
	for _, entry := range entries {
		color.Cyan("running %s (%s, %d workers)", entry.Name, entry.Policy, entry.Workers)

		kind, err := config.ParsePolicy(entry.Policy)
		if err != nil {
			return fmt.Errorf("%s: %w", entry.Name, err)
		}

		var numa *sched.NumaInfo
		if len(entry.NumaGroups) > 0 {
			numa = sched.NewNumaInfo(entry.NumaGroups)
		}

		ws := team.InitWorkShare(kind, entry.Start, entry.End, entry.Incr,
			entry.ChunkSize, entry.Workers, numa, sc.config.SchedConfig())

		body := team.NewBenchmarkBody(sc.config.WorkPerIter)
		runRes, err := team.NewRunner(ws, body).Run()
		if err != nil {
			return fmt.Errorf("%s: %w", entry.Name, err)
		}
		result.Runs = append(result.Runs, runRes)

		if len(runRes.Imbalances) == 0 {
			color.Green("  ok: %.4fs, no imbalance", runRes.Meta.DurationSeconds)
		} else {
			color.Red("  %.4fs, %d worker(s) imbalanced", runRes.Meta.DurationSeconds, len(runRes.Imbalances))
		}
	}

	return sc.storage.SaveSweep(&result)
}
