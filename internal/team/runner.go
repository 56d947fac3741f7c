package team

import (
	"sync"
	"time"

	"loopsched/internal/domain"
	"loopsched/internal/sched"
)

// ProgressReporter is the subset of ui.ProgressBar a Runner needs.
// Accepting the interface here instead of the concrete type keeps
// internal/team independent of internal/ui.
type ProgressReporter interface {
	Update(completed, total int64)
	Finish()
}

// Runner drives WorkShare.Nthreads goroutines over one published WorkShare,
// the scheduler-domain analogue of the teacher's WorkerPool: the same
// goroutines-plus-mutex shape, guarding a []WorkerStat instead of
// completedFiles/passedCases/failedCases.
type Runner struct {
	ws       *sched.WorkShare
	policy   sched.Policy
	body     LoopBody
	progress ProgressReporter
}

// NewRunner creates a Runner over an already-initialized WorkShare (see
// InitWorkShare). body is invoked once per claimed range; pass nil to
// only measure scheduling overhead with no per-iteration work.
func NewRunner(ws *sched.WorkShare, body LoopBody) *Runner {
	return &Runner{
		ws:     ws,
		policy: sched.New(ws),
		body:   body,
	}
}

// SetProgress attaches a progress reporter, updated as iterations
// complete across all workers.
func (r *Runner) SetProgress(p ProgressReporter) {
	r.progress = p
}

// Run drains the WorkShare to completion and returns the aggregated
// result. Mirrors Executor.Execute's (results, duration, error) shape,
// folded into RunResult.Meta.Duration.
func (r *Runner) Run() (domain.RunResult, error) {
	nthreads := r.ws.Nthreads
	total := r.ws.NbIterationsLeft()
	stats := make([]domain.WorkerStat, nthreads)

	var mu sync.Mutex
	var completed int64
	startTime := time.Now()

	var wg sync.WaitGroup
	for w := 0; w < nthreads; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			ts := sched.NewThreadState(id, r.ws)
			var executed int64
			for {
				rng, ok := r.policy.Next(ts)
				if !ok {
					break
				}
				n := rng.Len(r.ws.Incr)
				if r.body != nil {
					r.body(rng, r.ws.Incr, id)
				}
				executed += n

				mu.Lock()
				completed += n
				if r.progress != nil {
					r.progress.Update(completed, total)
				}
				mu.Unlock()
			}

			stat := domain.WorkerStat{
				TeamID:     id,
				Executed:   executed,
				StealsMade: ts.StealsMade,
			}
			if len(r.ws.AdaptiveChunks) > id {
				stat.StealsReceived = int(r.ws.AdaptiveChunks[id].StealsReceived())
			}
			mu.Lock()
			stats[id] = stat
			mu.Unlock()
		}(w)
	}
	wg.Wait()
	if r.progress != nil {
		r.progress.Finish()
	}

	duration := time.Since(startTime)
	annotateLocalShares(r.ws, stats)

	result := domain.RunResult{
		Meta: domain.RunMeta{
			Policy:          r.ws.Kind.String(),
			Start:           r.ws.StartT0,
			End:             r.ws.End,
			Incr:            r.ws.Incr,
			ChunkSize:       r.ws.ChunkSize,
			Workers:         nthreads,
			TotalIterations: total,
			Duration:        duration.String(),
			DurationSeconds: duration.Seconds(),
			Timestamp:       time.Now().Format(time.RFC3339),
		},
		Workers:    stats,
		Imbalances: DetectImbalances(stats, total, nthreads, 0.1),
	}
	return result, nil
}

// annotateLocalShares fills in each worker's initial equal-split share
// for adaptive runs, so WorkerStat.LocalShare can be compared against
// Executed to show how much a worker gained or lost to stealing.
func annotateLocalShares(ws *sched.WorkShare, stats []domain.WorkerStat) {
	if ws.Kind != sched.Adaptive {
		return
	}
	for i := range stats {
		chunk := &ws.AdaptiveChunks[i]
		stats[i].LocalShare = chunk.InitialShare(ws.Incr)
	}
}
