package sched

import "testing"

func TestStaticOneTripFourThreads(t *testing.T) {
	want := []Range{{0, 3}, {3, 6}, {6, 9}, {9, 10}}
	wantStatus := []Status{More, More, More, Last}
	for id, w := range want {
		ws := NewWorkShare(Static, 0, 10, 1, 0, 4, nil, DefaultConfig())
		s := NewStaticScheduler(ws)
		ts := NewThreadState(id, ws)

		r, status := s.Next(ts)
		if r != w {
			t.Fatalf("thread %d: got %+v, want %+v", id, r, w)
		}
		if status != wantStatus[id] {
			t.Fatalf("thread %d: status = %v, want %v", id, status, wantStatus[id])
		}

		// Once a thread's own share is exhausted, every further call must
		// report Done so the Policy interface's bool wrapper returns
		// ok=false and callers like team.Runner stop calling Next.
		r2, status2 := s.Next(ts)
		if status2 != Done {
			t.Fatalf("thread %d: second call status = %v, want Done", id, status2)
		}
		if r2 != (Range{}) {
			t.Fatalf("thread %d: second call produced %+v, want empty", id, r2)
		}
	}
}

func TestStaticChunkedThreeThreads(t *testing.T) {
	want := [][]Range{
		{{0, 2}, {6, 8}, {12, 13}},
		{{2, 4}, {8, 10}},
		{{4, 6}, {10, 12}},
	}
	for id, ranges := range want {
		ws := NewWorkShare(Static, 0, 13, 1, 2, 3, nil, DefaultConfig())
		s := NewStaticScheduler(ws)
		ts := NewThreadState(id, ws)

		var got []Range
		for {
			r, status := s.Next(ts)
			if status == Done {
				break
			}
			got = append(got, r)
			if status == Last {
				break
			}
		}
		if len(got) != len(ranges) {
			t.Fatalf("thread %d: got %+v, want %+v", id, got, ranges)
		}
		for i := range ranges {
			if got[i] != ranges[i] {
				t.Fatalf("thread %d range %d: got %+v, want %+v", id, i, got[i], ranges[i])
			}
		}
	}
}

func TestStaticCoverageNoOverlap(t *testing.T) {
	for _, tc := range []struct {
		start, end, incr, chunk int64
		nthreads                int
	}{
		{0, 10, 1, 0, 4},
		{0, 13, 1, 2, 3},
		{0, 1000, 3, 7, 8},
		{10, 0, -1, 0, 3},
		{100, 0, -2, 5, 6},
	} {
		seen := map[int64]int{}
		for id := 0; id < tc.nthreads; id++ {
			ws := NewWorkShare(Static, tc.start, tc.end, tc.incr, tc.chunk, tc.nthreads, nil, DefaultConfig())
			s := NewStaticScheduler(ws)
			ts := NewThreadState(id, ws)
			for {
				r, status := s.Next(ts)
				if status != Done {
					for i := r.Start; i != r.End; i += tc.incr {
						seen[i]++
					}
				}
				if status != More {
					break
				}
			}
		}
		var want []int64
		for i := tc.start; (tc.incr > 0 && i < tc.end) || (tc.incr < 0 && i > tc.end); i += tc.incr {
			want = append(want, i)
		}
		if len(seen) != len(want) {
			t.Fatalf("%+v: got %d distinct iterations, want %d", tc, len(seen), len(want))
		}
		for _, i := range want {
			if seen[i] != 1 {
				t.Fatalf("%+v: iteration %d seen %d times, want 1", tc, i, seen[i])
			}
		}
	}
}

func TestStaticSingleThreadDegenerate(t *testing.T) {
	ws := NewWorkShare(Static, 5, 5, 1, 0, 1, nil, DefaultConfig())
	s := NewStaticScheduler(ws)
	ts := NewThreadState(0, ws)
	r, status := s.Next(ts)
	if status != Done || r != (Range{}) {
		t.Fatalf("empty single-thread loop: got %+v, %v", r, status)
	}
}

func TestStaticTerminalAfterLast(t *testing.T) {
	ws := NewWorkShare(Static, 0, 4, 1, 0, 1, nil, DefaultConfig())
	s := NewStaticScheduler(ws)
	ts := NewThreadState(0, ws)
	r, status := s.Next(ts)
	if status != Last || r != (Range{Start: 0, End: 4}) {
		t.Fatalf("first call: got %+v, %v", r, status)
	}
	for i := 0; i < 3; i++ {
		r, status := s.Next(ts)
		if status != Done || r != (Range{}) {
			t.Fatalf("terminal call %d: got %+v, %v, want Done", i, r, status)
		}
	}
}

// TestStaticPolicyTerminatesMultiThread guards the Policy-interface path
// team.Runner actually drives: every thread's bool Next must eventually
// report ok=false, even the threads whose own share runs out without
// being the team's globally-last chunk.
func TestStaticPolicyTerminatesMultiThread(t *testing.T) {
	for _, tc := range []struct {
		start, end, incr, chunk int64
		nthreads                int
	}{
		{0, 10, 1, 0, 4},
		{100, 103, 1, 0, 4},
		{0, 13, 1, 2, 3},
	} {
		ws := NewWorkShare(Static, tc.start, tc.end, tc.incr, tc.chunk, tc.nthreads, nil, DefaultConfig())
		policy := New(ws)
		for id := 0; id < tc.nthreads; id++ {
			ts := NewThreadState(id, ws)
			const maxCalls = 1000
			calls := 0
			for {
				_, ok := policy.Next(ts)
				calls++
				if !ok {
					break
				}
				if calls > maxCalls {
					t.Fatalf("%+v thread %d: Next never returned ok=false after %d calls", tc, id, maxCalls)
				}
			}
		}
	}
}
