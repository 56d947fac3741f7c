package ui

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"loopsched/internal/config"
	"loopsched/internal/domain"
)

// LoadViewer displays a RunResult's per-worker load in an interactive
// TUI, the scheduler-domain replacement for the teacher's ErrorViewer:
// same list-plus-details layout, sortable by executed count instead of
// toggling a resolved flag (there is nothing to resolve here).
type LoadViewer struct {
	config *config.Config
}

// NewLoadViewer creates a new LoadViewer.
func NewLoadViewer(cfg *config.Config) *LoadViewer {
	return &LoadViewer{config: cfg}
}

// View displays a run's worker stats in an interactive TUI.
func (lv *LoadViewer) View(result *domain.RunResult) error {
	if len(result.Workers) == 0 {
		fmt.Println("no worker stats in this run")
		return nil
	}

	workers := make([]domain.WorkerStat, len(result.Workers))
	copy(workers, result.Workers)
	byExecuted := false
	sortWorkers := func() {
		if byExecuted {
			sort.Slice(workers, func(i, j int) bool { return workers[i].Executed > workers[j].Executed })
		} else {
			sort.Slice(workers, func(i, j int) bool { return workers[i].TeamID < workers[j].TeamID })
		}
	}
	sortWorkers()

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	getListItemText := func(index int) string {
		w := workers[index]
		return fmt.Sprintf("[yellow]%d.[white] worker %d — %d executed", index+1, w.TeamID, w.Executed)
	}

	rebuildList := func() {
		list.Clear()
		for i := range workers {
			list.AddItem(getListItemText(i), "", 0, nil)
		}
	}
	rebuildList()

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	statsView := tview.NewTextView().SetDynamicColors(true).SetWrap(false).SetWordWrap(false)
	detailsView := tview.NewTextView().SetDynamicColors(true).SetWrap(true).SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().SetTextAlign(tview.AlignCenter).SetDynamicColors(true)
	updateHeader := func() {
		order := "team id"
		if byExecuted {
			order = "executed desc"
		}
		headerView.SetText(fmt.Sprintf(
			" Worker Load — %s (%d workers, sorted by %s) | ↑↓ navigate, [yellow]S[white] toggle sort, → details, ← back, Ctrl+C exit ",
			result.Meta.Policy, len(workers), order,
		))
	}
	updateHeader()

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(workers) {
			return
		}
		w := workers[index]
		statsView.SetText(lv.formatStatsLine(w, result.Meta))
		detailsView.SetText(lv.formatDetails(w, result.Meta))
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp, tcell.KeyDown:
			return event
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 's' || event.Rune() == 'S' {
				byExecuted = !byExecuted
				sortWorkers()
				rebuildList()
				updateHeader()
				updateDetails()
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func (lv *LoadViewer) formatStatsLine(w domain.WorkerStat, meta domain.RunMeta) string {
	return fmt.Sprintf("[cyan]policy:[white] [yellow]%s[white]  [cyan]worker:[white] [yellow]%d[white]", meta.Policy, w.TeamID)
}

func (lv *LoadViewer) formatDetails(w domain.WorkerStat, meta domain.RunMeta) string {
	var builder strings.Builder
	tw := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "[cyan]Team ID:[white]\t%d\n", w.TeamID)
	fmt.Fprintf(tw, "[cyan]Executed:[white]\t%d\n", w.Executed)
	if w.LocalShare > 0 {
		delta := w.Executed - w.LocalShare
		tag := "[white]"
		if delta > 0 {
			tag = "[green]"
		} else if delta < 0 {
			tag = "[yellow]"
		}
		fmt.Fprintf(tw, "[cyan]Initial Share:[white]\t%d\n", w.LocalShare)
		fmt.Fprintf(tw, "[cyan]Delta vs Share:[white]\t%s%+d[white]\n", tag, delta)
	}
	fmt.Fprintf(tw, "[cyan]Steals Made:[white]\t%d\n", w.StealsMade)
	fmt.Fprintf(tw, "[cyan]Steals Received:[white]\t%d\n", w.StealsReceived)

	tw.Flush()
	return builder.String()
}
