package commands

import (
	"github.com/spf13/cobra"

	"loopsched/internal/config"
	"loopsched/internal/storage"
	"loopsched/internal/ui"
)

// WatchCommand handles the watch command.
type WatchCommand struct {
	config  *config.Config
	storage storage.Storage
	viewer  *ui.LoadViewer
}

// NewWatchCommand creates a new WatchCommand.
func NewWatchCommand(cfg *config.Config, st storage.Storage, viewer *ui.LoadViewer) *WatchCommand {
	return &WatchCommand{
		config:  cfg,
		storage: st,
		viewer:  viewer,
	}
}

// Execute runs the command.
func (wc *WatchCommand) Execute(cmd *cobra.Command, args []string) error {
	result, err := wc.storage.Load()
	if err != nil {
		return err
	}

	return wc.viewer.View(result)
}
