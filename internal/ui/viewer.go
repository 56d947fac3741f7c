package ui

import "loopsched/internal/domain"

// Viewer displays a run result in an interactive TUI.
type Viewer interface {
	View(result *domain.RunResult) error
}
