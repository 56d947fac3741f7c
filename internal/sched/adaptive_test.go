package sched

import (
	"sync"
	"testing"
)

// evenSplit mirrors team.InitWorkShare's equal-partition step without
// importing internal/team (which itself imports sched).
func evenSplit(ws *WorkShare, nthreads int) {
	n := remaining(ws.StartT0, ws.End, ws.Incr)
	var total int64
	q := n / int64(nthreads)
	rem := n % int64(nthreads)
	cursor := ws.StartT0
	for id := 0; id < nthreads; id++ {
		share := q
		if int64(id) < rem {
			share++
		}
		begin := cursor
		end := begin + share*ws.Incr
		ws.AdaptiveChunks[id].SetRange(begin, end)
		cursor = end
		total += share
	}
	ws.SetNbIterationsLeft(total)
}

func runAdaptive(t *testing.T, ws *WorkShare, nthreads int, cost func(worker int)) map[int]int64 {
	t.Helper()
	evenSplit(ws, nthreads)
	a := NewAdaptiveScheduler(ws)

	executed := make(map[int]int64)
	var mu sync.Mutex
	var wg sync.WaitGroup
	for w := 0; w < nthreads; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			ts := NewThreadState(id, ws)
			var local int64
			for {
				r, ok := a.Next(ts)
				if !ok {
					break
				}
				local += r.Len(ws.Incr)
				if cost != nil {
					cost(id)
				}
			}
			mu.Lock()
			executed[id] = local
			mu.Unlock()
		}(w)
	}
	wg.Wait()
	return executed
}

func TestAdaptiveCoverageNoStealNeeded(t *testing.T) {
	ws := NewWorkShare(Adaptive, 0, 800, 1, 4, 8, nil, DefaultConfig())
	executed := runAdaptive(t, ws, 8, nil)

	var total int64
	for _, n := range executed {
		total += n
	}
	if total != 800 {
		t.Fatalf("total executed = %d, want 800", total)
	}
	for id, n := range executed {
		if n != 100 {
			t.Errorf("worker %d executed %d, want exactly its initial share of 100 (no imbalance, no stealing should occur)", id, n)
		}
	}
}

func TestAdaptiveCoverageDisjointConcurrent(t *testing.T) {
	for _, tc := range []struct {
		start, end, incr, chunk int64
		nthreads                int
	}{
		{0, 1000, 1, 3, 8},
		{0, 997, 1, 5, 16},
		{500, -3, -1, 7, 5},
	} {
		ws := NewWorkShare(Adaptive, tc.start, tc.end, tc.incr, tc.chunk, tc.nthreads, nil, DefaultConfig())
		evenSplit(ws, tc.nthreads)
		a := NewAdaptiveScheduler(ws)

		seen := make(map[int64]int)
		var mu sync.Mutex
		var wg sync.WaitGroup
		for w := 0; w < tc.nthreads; w++ {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				ts := NewThreadState(id, ws)
				for {
					r, ok := a.Next(ts)
					if !ok {
						return
					}
					mu.Lock()
					for i := r.Start; i != r.End; i += tc.incr {
						seen[i]++
					}
					mu.Unlock()
				}
			}(w)
		}
		wg.Wait()

		var want int64
		for i := tc.start; i != tc.end; i += tc.incr {
			want++
			if seen[i] != 1 {
				t.Fatalf("%+v: iteration %d seen %d times, want 1", tc, i, seen[i])
			}
		}
		if int64(len(seen)) != want {
			t.Fatalf("%+v: got %d distinct iterations, want %d", tc, len(seen), want)
		}
	}
}

func TestAdaptiveImbalanceTriggersStealing(t *testing.T) {
	ws := NewWorkShare(Adaptive, 0, 8000, 1, 8, 4, nil, DefaultConfig())

	// Worker 0's iterations are free; everyone else's are artificially
	// expensive, so worker 0 should end up executing more than its
	// initial 2000-iteration share once it starts stealing.
	cost := func(worker int) {
		if worker != 0 {
			for i := 0; i < 2000; i++ {
				_ = i * i
			}
		}
	}
	executed := runAdaptive(t, ws, 4, cost)

	var total int64
	for _, n := range executed {
		total += n
	}
	if total != 8000 {
		t.Fatalf("total executed = %d, want 8000", total)
	}
	if executed[0] <= 2000 {
		t.Fatalf("fast worker executed %d, want more than its initial share of 2000 (expected stealing)", executed[0])
	}
}

func TestAdaptiveNumaAwareVictimSelectionCoverage(t *testing.T) {
	const nthreads = 8
	numa := EvenNumaInfo(nthreads, 2)
	cfg := DefaultConfig()
	cfg.NumaAware = true
	ws := NewWorkShare(Adaptive, 0, 4000, 1, 5, nthreads, numa, cfg)
	executed := runAdaptive(t, ws, nthreads, nil)

	var total int64
	for _, n := range executed {
		total += n
	}
	if total != 4000 {
		t.Fatalf("total executed = %d, want 4000", total)
	}
}

func TestAdaptivePWSStrictForbidsCrossNuma(t *testing.T) {
	const nthreads = 4
	// Two singleton nodes: with PWSStrict set, a worker whose own node has
	// no other members can never steal cross-node, so stealing is a
	// no-op and each worker only ever completes its own initial share.
	numa := EvenNumaInfo(nthreads, nthreads)
	cfg := DefaultConfig()
	cfg.NumaAware = true
	cfg.PWSStrict = true
	ws := NewWorkShare(Adaptive, 0, 400, 1, 4, nthreads, numa, cfg)
	executed := runAdaptive(t, ws, nthreads, nil)

	for id, n := range executed {
		if n != 100 {
			t.Fatalf("worker %d executed %d, want exactly its own share of 100 under PWS strict isolation", id, n)
		}
	}
}

func TestAdaptiveStealDisabledStopsAtLocalShare(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StealEnabled = false
	ws := NewWorkShare(Adaptive, 0, 100, 1, 5, 4, nil, cfg)
	executed := runAdaptive(t, ws, 4, nil)

	for id, n := range executed {
		if n != 25 {
			t.Fatalf("worker %d executed %d with stealing disabled, want its own share of 25", id, n)
		}
	}
}
