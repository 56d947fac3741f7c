package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"loopsched/internal/config"
	"loopsched/internal/domain"
)

// Formatter formats and displays run results and policy listings.
type Formatter struct {
	config *config.Config
}

// NewFormatter creates a new Formatter.
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg}
}

// PrintRunStats reads the last saved RunResult from the configured JSON
// output file and prints the boxed stats table, replacing the teacher's
// PrintMetaStats test pass/fail table with loop policy/bounds/duration
// and a per-worker bar chart in place of the failed-tests tree.
func (f *Formatter) PrintRunStats() error {
	fmt.Print("\033[2J\033[H")

	data, err := os.ReadFile(f.config.GetOutputPath())
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}

	var result domain.RunResult
	if err := json.Unmarshal(data, &result); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	return f.printResult(result)
}

func (f *Formatter) printResult(result domain.RunResult) error {
	meta := result.Meta

	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                   Loop Scheduling Statistics                  ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")

	fmt.Printf("│ %-31s │ ", "Policy")
	color.White("%-27s │\n", meta.Policy)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Bounds")
	bounds := fmt.Sprintf("[%d, %d) by %d", meta.Start, meta.End, meta.Incr)
	color.White("%-27s │\n", bounds)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Chunk Size")
	color.White("%-27d │\n", meta.ChunkSize)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Total Iterations")
	color.White("%-27d │\n", meta.TotalIterations)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Workers")
	color.White("%-27d │\n", meta.Workers)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Duration")
	durationStr := fmt.Sprintf("%.4fs", meta.DurationSeconds)
	color.White("%-27s │\n", durationStr)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Timestamp")
	color.White("%-27s │\n", meta.Timestamp)

	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Println()
	if len(result.Imbalances) == 0 {
		color.Green("✓ No worker imbalance detected")
	} else {
		color.Red("✗ %d worker(s) deviated from an even split", len(result.Imbalances))
	}
	fmt.Println()
	f.printWorkerBarChart(result.Workers)

	return nil
}

// printWorkerBarChart replaces the teacher's failed-tests tree with a
// colored horizontal bar per worker, proportional to iterations executed.
func (f *Formatter) printWorkerBarChart(workers []domain.WorkerStat) {
	if len(workers) == 0 {
		return
	}

	sorted := make([]domain.WorkerStat, len(workers))
	copy(sorted, workers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].TeamID < sorted[j].TeamID })

	var maxExecuted int64
	for _, w := range sorted {
		if w.Executed > maxExecuted {
			maxExecuted = w.Executed
		}
	}
	if maxExecuted == 0 {
		return
	}

	const barWidth = 40
	for _, w := range sorted {
		filled := int(float64(w.Executed) / float64(maxExecuted) * float64(barWidth))
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

		label := fmt.Sprintf("worker %-3d", w.TeamID)
		stealNote := ""
		if w.StealsMade > 0 || w.StealsReceived > 0 {
			stealNote = fmt.Sprintf("  (stole %d, given %d)", w.StealsMade, w.StealsReceived)
		}

		if w.LocalShare > 0 && w.Executed > w.LocalShare {
			color.Green("%s │%s│ %d%s", label, bar, w.Executed, stealNote)
		} else if w.LocalShare > 0 && w.Executed < w.LocalShare {
			color.Yellow("%s │%s│ %d%s", label, bar, w.Executed, stealNote)
		} else {
			color.Cyan("%s │%s│ %d%s", label, bar, w.Executed, stealNote)
		}
	}
}

// PrintPolicyList prints the available scheduling policies and the
// active feature flags, replacing the teacher's discovered-test listing.
func (f *Formatter) PrintPolicyList() error {
	color.Green("Available policies:\n")
	for _, p := range []string{"static", "dynamic", "guided", "adaptive"} {
		marker := "  "
		if p == f.config.Policy {
			marker = "* "
		}
		color.Cyan("%s%s", marker, p)
	}

	fmt.Println()
	color.Green("Active feature flags:\n")
	printFlag("atomics-available", true)
	printFlag("adaptive-enabled", true)
	printFlag("numa-aware", f.config.NumaAware)
	printFlag("pws-strict", f.config.PWSStrict)
	printFlag("steal-enabled", f.config.StealEnabled)

	return nil
}

func printFlag(name string, enabled bool) {
	if enabled {
		color.Green("  %-20s on", name)
	} else {
		color.White("  %-20s off", name)
	}
}
