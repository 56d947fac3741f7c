package sched

// Status distinguishes the three static_next outcomes spec.md §6
// requires: a non-terminal range, no range (done), and the absolutely
// final range (last).
type Status int

const (
	More Status = iota
	Done
	Last
)

// StaticScheduler implements the closed-form, wait-free partitioning of
// spec.md §4.1. It never writes to shared WorkShare state; only
// ThreadState.StaticTrip mutates, and only on the calling goroutine.
type StaticScheduler struct {
	ws *WorkShare
}

func NewStaticScheduler(ws *WorkShare) *StaticScheduler {
	return &StaticScheduler{ws: ws}
}

// Next implements gomp_iter_static_next. Once ts.StaticTrip == -1, every
// subsequent call returns Done without touching shared state. Last is
// reserved for the one call that actually hands out the team's final
// range; a thread whose own share is simply exhausted, without that
// range being the team's last, returns Done instead.
func (s *StaticScheduler) Next(ts *ThreadState) (Range, Status) {
	ws := s.ws
	nthreads := ws.Nthreads
	if nthreads <= 0 {
		nthreads = 1
	}

	if ts.StaticTrip == -1 {
		return Range{}, Done
	}

	if nthreads == 1 {
		start, end := ws.StartT0, ws.End
		ts.StaticTrip = -1
		if start == end {
			return Range{}, Done
		}
		return Range{Start: start, End: end}, Last
	}

	if ws.ChunkSize == 0 {
		return s.nextOneTrip(ts, nthreads)
	}
	return s.nextChunked(ts, nthreads)
}

// nextOneTrip implements the chunk_size == 0 "one trip per thread" mode:
// split the whole iteration space into nthreads contiguous, near-equal
// blocks.
func (s *StaticScheduler) nextOneTrip(ts *ThreadState, nthreads int) (Range, Status) {
	ws := s.ws
	if ts.StaticTrip > 0 {
		return Range{}, Done
	}

	n := ceilDiv(ws.End-ws.StartT0, ws.Incr)
	if n < 0 {
		n = 0
	}

	q := n / int64(nthreads)
	if q*int64(nthreads) != n {
		q++
	}

	i := int64(ts.TeamID)
	s0 := q * i
	e0 := s0 + q
	if e0 > n {
		e0 = n
	}

	if s0 >= e0 {
		ts.StaticTrip = 1
		return Range{}, Done
	}

	start := s0*ws.Incr + ws.StartT0
	end := e0*ws.Incr + ws.StartT0

	if e0 == n {
		ts.StaticTrip = -1
		return Range{Start: start, End: end}, Last
	}
	ts.StaticTrip = 1
	return Range{Start: start, End: end}, More
}

// nextChunked implements the chunk_size > 0 round-robin mode: thread i
// takes the (t*nthreads+i)'th chunk of size ChunkSize on trip t.
func (s *StaticScheduler) nextChunked(ts *ThreadState, nthreads int) (Range, Status) {
	ws := s.ws

	n := ceilDiv(ws.End-ws.StartT0, ws.Incr)
	if n < 0 {
		n = 0
	}
	c := ws.ChunkSize
	i := int64(ts.TeamID)

	s0 := (int64(ts.StaticTrip)*int64(nthreads) + i) * c
	e0 := s0 + c

	if s0 >= n {
		return Range{}, Done
	}
	if e0 > n {
		e0 = n
	}

	start := s0*ws.Incr + ws.StartT0
	end := e0*ws.Incr + ws.StartT0

	if e0 == n {
		ts.StaticTrip = -1
		return Range{Start: start, End: end}, Last
	}
	ts.StaticTrip++
	return Range{Start: start, End: end}, More
}

// Next2 is the bool-returning convenience wrapper other policies share
// via the Policy interface: true means a range was produced (More or
// Last), false means Done.
func (s *StaticScheduler) Next2(ts *ThreadState) (Range, bool) {
	r, status := s.Next(ts)
	return r, status != Done
}
