package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// ProgressBar creates and manages the live iteration-count progress bar
// shown while a Runner drains a WorkShare. Satisfies team.ProgressReporter.
type ProgressBar struct {
	bar *progressbar.ProgressBar
}

// NewProgressBar creates a new progress bar over totalIterations.
func NewProgressBar(totalIterations int64) *ProgressBar {
	bar := progressbar.NewOptions64(totalIterations,
		progressbar.OptionSetDescription(
			color.CyanString("Draining loop: ")+color.GreenString("[0 iterations]"),
		),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &ProgressBar{bar: bar}
}

// Update sets the bar to completed out of total, per team.ProgressReporter.
func (p *ProgressBar) Update(completed, total int64) {
	p.bar.Set64(completed)
	p.bar.Describe(
		color.CyanString("Draining loop: ") +
			color.GreenString("[%d/%d iterations]", completed, total),
	)
}

// Finish completes the progress bar.
func (p *ProgressBar) Finish() {
	p.bar.Finish()
}
