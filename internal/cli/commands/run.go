package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"loopsched/internal/config"
	"loopsched/internal/domain"
	"loopsched/internal/history"
	"loopsched/internal/storage"
	"loopsched/internal/team"
	"loopsched/internal/ui"
)

// RunCommand handles the run command.
type RunCommand struct {
	config    *config.Config
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewRunCommand creates a new RunCommand.
func NewRunCommand(cfg *config.Config, st storage.Storage, formatter *ui.Formatter) *RunCommand {
	return &RunCommand{
		config:    cfg,
		storage:   st,
		formatter: formatter,
	}
}

// Execute runs the command.
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	kind, err := config.ParsePolicy(rc.config.Policy)
	if err != nil {
		return err
	}

	ws := team.InitWorkShare(kind, rc.config.Start, rc.config.End, rc.config.Incr,
		rc.config.ChunkSize, rc.config.Workers, rc.config.NumaInfo(), rc.config.SchedConfig())

	total := ws.NbIterationsLeft()
	if total == 0 {
		color.Yellow("No iterations to execute")
		return nil
	}

	body := team.NewBenchmarkBody(rc.config.WorkPerIter)
	runner := team.NewRunner(ws, body)
	runner.SetProgress(ui.NewProgressBar(total))

	result, err := runner.Run()
	if err != nil {
		return err
	}

	if err := rc.storage.Save(result); err != nil {
		return fmt.Errorf("failed to save run result: %w", err)
	}

	if rc.config.Flags.Record {
		if err := rc.record(result); err != nil {
			return fmt.Errorf("failed to record run history: %w", err)
		}
	}

	return rc.formatter.PrintRunStats()
}

// record inserts result into the MySQL history store, opening a fresh
// connection per invocation rather than holding one open for the whole
// command lifetime — a `run` is a one-shot CLI invocation, not a
// long-lived process.
func (rc *RunCommand) record(result domain.RunResult) error {
	store, err := history.Open(rc.config.ProjectPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.EnsureSchema(); err != nil {
		return err
	}
	_, err = store.InsertRun(result)
	return err
}
