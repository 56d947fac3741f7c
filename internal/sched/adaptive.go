package sched

import (
	"runtime"
	"sync/atomic"
)

// AdaptiveScheduler implements spec.md §4.4: a per-worker deque of
// remaining iterations with random-victim work stealing, optionally
// biased toward the stealing thread's NUMA node.
//
// The owner advances AdaptiveChunk.Begin; a thief shrinks
// AdaptiveChunk.End. Both sides use atomic loads/stores on Begin/End,
// which on the Go memory model gives the sequentially-consistent
// publish-then-read ordering spec.md §9 calls "a full memory barrier" —
// the owner store to Begin is visible to a thief's load of Begin (and
// vice versa for End) without either side needing a separate fence
// primitive.
type AdaptiveScheduler struct {
	ws *WorkShare
}

func NewAdaptiveScheduler(ws *WorkShare) *AdaptiveScheduler {
	return &AdaptiveScheduler{ws: ws}
}

// Next is gomp_iter_adaptive_next: try local work, then steal until the
// loop is finished.
func (a *AdaptiveScheduler) Next(ts *ThreadState) (Range, bool) {
	ws := a.ws
	local := &ws.AdaptiveChunks[ts.TeamID]
	if !local.IsInit {
		panic("sched: adaptive worker used before its deque was initialized")
	}

	chunk := ws.ChunkSize
	if chunk <= 0 {
		chunk = 1
	}

	if r, ok := a.tryLocalWork(local, chunk); ok {
		return r, true
	}

	remainder := atomic.AddInt64(&ws.nbIterationsLeft, -local.NbExec)
	local.NbExec = 0
	if remainder <= 0 {
		return Range{}, false
	}

	if !ws.Config.StealEnabled {
		return Range{}, false
	}

	for atomic.LoadInt64(&ws.nbIterationsLeft) > 0 {
		if r, ok := a.steal(ts, local, chunk); ok {
			return r, true
		}
		runtime.Gosched()
	}
	return Range{}, false
}

// tryLocalWork implements gomp_iter_adaptive_try_local_work: the owner's
// non-atomic-then-validated pop from the head of its own deque.
func (a *AdaptiveScheduler) tryLocalWork(local *AdaptiveChunk, chunk int64) (Range, bool) {
	begin := local.loadBegin()
	begin += chunk
	local.storeBegin(begin)

	end := local.loadEnd()
	if begin < end {
		r := Range{Start: begin - chunk, End: begin}
		local.NbExec += chunk
		return r, true
	}

	// Collided with a thief shrinking End (or simply drained): roll back
	// and take the lock to split whatever is left.
	begin -= chunk
	local.storeBegin(begin)

	local.Lock.Lock()
	size := local.loadEnd() - begin
	if size > 0 {
		if size > chunk {
			size = chunk
		}
		begin += size
		local.storeBegin(begin)
	}
	local.Lock.Unlock()

	if size <= 0 {
		return Range{}, false
	}
	r := Range{Start: begin - size, End: begin}
	local.NbExec += size
	return r, true
}

// steal implements gomp_iter_adaptive_steal: pick a victim, take half of
// its remaining deque, keep up to chunk iterations for the thief's
// current range and deposit the rest into the thief's own deque.
func (a *AdaptiveScheduler) steal(ts *ThreadState, local *AdaptiveChunk, chunk int64) (Range, bool) {
	victim := a.pickVictim(ts)
	if victim == nil {
		return Range{}, false
	}

	if victim.loadEnd() <= victim.loadBegin() {
		return Range{}, false
	}

	victim.Lock.Lock()
	end := victim.loadEnd()
	size := (end - victim.loadBegin()) / 2
	if size <= 0 {
		victim.Lock.Unlock()
		return Range{}, false
	}

	newEnd := end - size
	victim.storeEnd(newEnd)

	if newEnd < victim.loadBegin() {
		// The owner popped concurrently and won the race; revert.
		victim.storeEnd(end)
		victim.Lock.Unlock()
		return Range{}, false
	}
	victim.Lock.Unlock()

	keep := size
	if keep > chunk {
		keep = chunk
	}
	pstart, pend := newEnd, newEnd+keep

	local.Lock.Lock()
	local.storeBegin(pend)
	local.storeEnd(newEnd + size)
	local.Lock.Unlock()

	local.NbExec += pend - pstart
	atomic.AddInt64(&victim.stealsReceived, 1)
	ts.StealsMade++
	return Range{Start: pstart, End: pend}, true
}

// pickVictim implements the NUMA-aware/non-NUMA victim selection of
// spec.md §4.4 step 1.
func (a *AdaptiveScheduler) pickVictim(ts *ThreadState) *AdaptiveChunk {
	ws := a.ws

	if ws.Config.NumaAware && ws.Numa != nil {
		node := ws.Numa.Nodes[ts.NumaID]
		localSize := len(node)
		if localSize > 1 {
			attempts := 1 + localSize/2
			for i := 0; i < attempts; i++ {
				victimID := a.randomTeammateInNode(ts, node)
				v := &ws.AdaptiveChunks[victimID]
				if v.loadEnd() > v.loadBegin() {
					return v
				}
			}
		}
		if atomic.LoadInt64(&ws.nbIterationsLeft) <= 0 {
			return nil
		}
		if ws.Config.PWSStrict {
			return nil
		}
		// Fall back to a uniformly random global victim.
		return a.randomTeammate(ts)
	}

	return a.randomTeammate(ts)
}

// randomTeammate draws a uniformly random team index other than ts,
// redrawing on self, using ts's private PRNG.
func (a *AdaptiveScheduler) randomTeammate(ts *ThreadState) *AdaptiveChunk {
	nthreads := a.ws.Nthreads
	if nthreads <= 1 {
		return nil
	}
	for {
		id := randIntn(&ts.Seed, nthreads)
		if id != ts.TeamID {
			return &a.ws.AdaptiveChunks[id]
		}
	}
}

// randomTeammateInNode draws a uniformly random team index from node,
// excluding ts, redrawing on self.
func (a *AdaptiveScheduler) randomTeammateInNode(ts *ThreadState, node []int) int {
	for {
		id := node[randIntn(&ts.Seed, len(node))]
		if id != ts.TeamID {
			return id
		}
	}
}
