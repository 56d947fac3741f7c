package team

import (
	"loopsched/internal/domain"
	"loopsched/internal/sched"
)

// InitWorkShare is the loop-entry collaborator spec.md places outside
// the scheduler packages themselves: the only place allowed to
// construct a sched.WorkShare. It computes the equal initial adaptive
// partition and seeds NbIterationsLeft before the WorkShare is
// published to any worker, the Go counterpart of the extern, undefined
// gomp_loop_adaptive_init_worker. A chunkSize of 0 selects the policy
// default: automatic for static, 1 for dynamic, guided and adaptive.
func InitWorkShare(kind sched.Kind, start, end, incr, chunkSize int64, nthreads int, numa *sched.NumaInfo, cfg sched.Config) *sched.WorkShare {
	if chunkSize == 0 && kind != sched.Static {
		chunkSize = 1
	}
	ws := sched.NewWorkShare(kind, start, end, incr, chunkSize, nthreads, numa, cfg)

	total := sched.TotalIterations(start, end, incr)
	if kind == sched.Adaptive {
		q := total / int64(nthreads)
		rem := total % int64(nthreads)
		cursor := start
		for id := 0; id < nthreads; id++ {
			share := q
			if int64(id) < rem {
				share++
			}
			begin := cursor
			cursor = begin + share*incr
			ws.AdaptiveChunks[id].SetRange(begin, cursor)
		}
	}
	ws.SetNbIterationsLeft(total)
	return ws
}

// DetectImbalances flags workers whose executed share deviates from an
// even split of total by more than threshold (a fraction of the even
// share, e.g. 0.1 for 10%).
func DetectImbalances(stats []domain.WorkerStat, total int64, nthreads int, threshold float64) []domain.Imbalance {
	if nthreads == 0 {
		return nil
	}
	expected := total / int64(nthreads)
	if expected == 0 {
		return nil
	}

	var out []domain.Imbalance
	for _, s := range stats {
		delta := s.Executed - expected
		pct := float64(delta) / float64(expected)
		if pct < 0 {
			pct = -pct
		}
		if pct > threshold {
			out = append(out, domain.Imbalance{
				WorkerID:      s.TeamID,
				ExpectedShare: expected,
				ActualShare:   s.Executed,
				Delta:         delta,
				DeltaPercent:  pct * 100,
			})
		}
	}
	return out
}
