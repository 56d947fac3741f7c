package sched

import "sync/atomic"

// DynamicScheduler implements spec.md §4.2: a single shared cursor
// advanced by atomic fetch-and-add when the overflow-free Mode fast path
// applies, otherwise a CAS retry loop; NextLocked runs the same
// arithmetic under ws.Lock for callers without atomics.
//
// ChunkSize is always a non-negative iteration count; Incr's sign fixes
// which direction the cursor actually moves, so every claim size is
// converted to a signed delta via claim*Incr before it ever touches
// ws.next.
type DynamicScheduler struct {
	ws *WorkShare
}

func NewDynamicScheduler(ws *WorkShare) *DynamicScheduler {
	return &DynamicScheduler{ws: ws}
}

// Next is the lock-free path: gomp_iter_dynamic_next.
func (d *DynamicScheduler) Next(ts *ThreadState) (Range, bool) {
	ws := d.ws
	incr, chunk := ws.Incr, ws.ChunkSize

	if ws.Config.AtomicsAvailable && ws.Mode {
		delta := chunk * incr
		newVal := atomic.AddInt64(&ws.next, delta)
		tmp := newVal - delta
		if pastEnd(tmp, ws.End, incr) {
			return Range{}, false
		}
		nend := clampToEnd(newVal, ws.End, incr)
		return Range{Start: tmp, End: nend}, true
	}

	if !ws.Config.AtomicsAvailable {
		return d.NextLocked(ts)
	}

	start := atomic.LoadInt64(&ws.next)
	for {
		if start == ws.End {
			return Range{}, false
		}
		claim := chunk
		if left := remaining(start, ws.End, incr); claim > left {
			claim = left
		}
		nend := start + claim*incr
		if atomic.CompareAndSwapInt64(&ws.next, start, nend) {
			return Range{Start: start, End: nend}, true
		}
		start = atomic.LoadInt64(&ws.next)
	}
}

// NextLocked is gomp_iter_dynamic_next_locked: runs the same arithmetic
// as Next's CAS path but under ws.Lock, for callers that don't have
// atomics (or that force the locked path for comparison, per
// SPEC_FULL.md §5).
func (d *DynamicScheduler) NextLocked(ts *ThreadState) (Range, bool) {
	ws := d.ws
	ws.Lock.Lock()
	defer ws.Lock.Unlock()

	start := ws.next
	if start == ws.End {
		return Range{}, false
	}
	claim := ws.ChunkSize
	if left := remaining(start, ws.End, ws.Incr); claim > left {
		claim = left
	}
	end := start + claim*ws.Incr
	ws.next = end
	return Range{Start: start, End: end}, true
}
