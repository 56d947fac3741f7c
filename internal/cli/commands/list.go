package commands

import (
	"github.com/spf13/cobra"

	"loopsched/internal/config"
	"loopsched/internal/ui"
)

// ListCommand handles the list command.
type ListCommand struct {
	config    *config.Config
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand.
func NewListCommand(cfg *config.Config, formatter *ui.Formatter) *ListCommand {
	return &ListCommand{
		config:    cfg,
		formatter: formatter,
	}
}

// Execute runs the command.
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	return lc.formatter.PrintPolicyList()
}
