package sched

import (
	"sync"
	"testing"
)

// testConcurrentPolicyCoverage runs nthreads goroutines draining a
// dynamic/guided WorkShare concurrently and asserts every iteration in
// [start,end) by incr is produced exactly once, with well-formed ranges
// (spec.md §8 "Coverage" and "Well-formed ranges").
func testConcurrentPolicyCoverage(t *testing.T, kind Kind, start, end, incr, chunk int64, nthreads int) {
	t.Helper()
	ws := NewWorkShare(kind, start, end, incr, chunk, nthreads, nil, DefaultConfig())
	policy := New(ws)

	seen := make(map[int64]int)
	var mu sync.Mutex
	var wg sync.WaitGroup
	for w := 0; w < nthreads; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			ts := NewThreadState(id, ws)
			for {
				r, ok := policy.Next(ts)
				if !ok {
					return
				}
				if r.Len(incr) < 0 {
					t.Errorf("malformed range %+v for incr %d", r, incr)
				}
				mu.Lock()
				for i := r.Start; i != r.End; i += incr {
					seen[i]++
				}
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()

	var want int64
	for i := start; i != end; i += incr {
		want++
		if seen[i] != 1 {
			t.Fatalf("iteration %d seen %d times, want 1", i, seen[i])
		}
	}
	if int64(len(seen)) != want {
		t.Fatalf("got %d distinct iterations, want %d", len(seen), want)
	}
}

func TestDynamicCoverageConcurrentVaried(t *testing.T) {
	testConcurrentPolicyCoverage(t, Dynamic, 0, 997, 1, 5, 8)
	testConcurrentPolicyCoverage(t, Dynamic, 300, -1, -1, 4, 6)
	testConcurrentPolicyCoverage(t, Dynamic, 0, 50, 1, 6, 16)
}

// TestStaticCoverageConcurrentVaried drives Static through the same
// bool Policy interface internal/team.Runner uses (policy.Next in a
// goroutine-per-worker loop until ok==false), catching regressions where
// a worker whose own share is exhausted never reports Done and spins
// forever instead of terminating.
func TestStaticCoverageConcurrentVaried(t *testing.T) {
	testConcurrentPolicyCoverage(t, Static, 0, 10, 1, 0, 4)
	testConcurrentPolicyCoverage(t, Static, 100, 103, 1, 0, 4)
	testConcurrentPolicyCoverage(t, Static, 0, 997, 1, 5, 8)
	testConcurrentPolicyCoverage(t, Static, 300, -1, -1, 4, 6)
	testConcurrentPolicyCoverage(t, Static, 0, 13, 1, 2, 3)
}

func TestDirectionSymmetry(t *testing.T) {
	// spec.md §8 "Direction symmetry": replacing (start,end,incr) with
	// (end-incr,start-incr,-incr) yields the same multiset of indices,
	// reversed.
	start, end, incr := int64(0), int64(18), int64(3)
	var forward []int64
	for i := start; i < end; i += incr {
		forward = append(forward, i)
	}

	rstart, rend, rincr := end-incr, start-incr, -incr
	var reverse []int64
	for i := rstart; i > rend; i += rincr {
		reverse = append(reverse, i)
	}

	if len(forward) != len(reverse) {
		t.Fatalf("forward %v reverse %v differ in length", forward, reverse)
	}
	for i := range forward {
		if forward[i] != reverse[len(reverse)-1-i] {
			t.Fatalf("forward %v is not reverse(%v)", forward, reverse)
		}
	}
}

func TestCeilDiv(t *testing.T) {
	cases := []struct{ a, b, want int64 }{
		{0, 5, 0},
		{10, 5, 2},
		{11, 5, 3},
		{-10, 5, -2},
		{-11, 5, -2},
		{10, -5, -2},
		{11, -5, -2},
		{-10, -5, 2},
		{-11, -5, 3},
	}
	for _, c := range cases {
		if got := ceilDiv(c.a, c.b); got != c.want {
			t.Errorf("ceilDiv(%d,%d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}
