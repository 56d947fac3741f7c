package team

import "loopsched/internal/domain"

// Executor drains one published WorkShare across its team of goroutines
// and returns the aggregated result.
type Executor interface {
	Run() (domain.RunResult, error)
}
