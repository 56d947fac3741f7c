package sched

import "testing"

func TestGuidedGeometricDecay(t *testing.T) {
	ws := NewWorkShare(Guided, 0, 1000, 1, 1, 4, nil, DefaultConfig())
	g := NewGuidedScheduler(ws)
	ts := NewThreadState(0, ws)

	var lens []int64
	for {
		r, ok := g.Next(ts)
		if !ok {
			break
		}
		lens = append(lens, r.Len(1))
	}

	if len(lens) < 2 {
		t.Fatalf("expected multiple claims, got %v", lens)
	}
	if lens[0] != 250 {
		t.Fatalf("first claim length = %d, want 250", lens[0])
	}
	if lens[1] != 188 {
		t.Fatalf("second claim length = %d, want 188", lens[1])
	}
	for i := 1; i < len(lens); i++ {
		if lens[i] > lens[i-1] {
			t.Fatalf("claim %d (%d) larger than claim %d (%d): not decaying", i, lens[i], i-1, lens[i-1])
		}
	}
	var total int64
	for _, l := range lens {
		total += l
	}
	if total != 1000 {
		t.Fatalf("total claimed = %d, want 1000", total)
	}
}

func TestGuidedNeverBelowFloorUntilRemainder(t *testing.T) {
	const floor = int64(10)
	ws := NewWorkShare(Guided, 0, 37, 1, floor, 4, nil, DefaultConfig())
	g := NewGuidedScheduler(ws)
	ts := NewThreadState(0, ws)

	var lens []int64
	for {
		r, ok := g.Next(ts)
		if !ok {
			break
		}
		lens = append(lens, r.Len(1))
	}
	for i, l := range lens[:len(lens)-1] {
		if l < floor {
			t.Fatalf("claim %d length %d below floor %d before remainder", i, l, floor)
		}
	}
	var total int64
	for _, l := range lens {
		total += l
	}
	if total != 37 {
		t.Fatalf("total = %d, want 37", total)
	}
}

func TestGuidedCoverageConcurrent(t *testing.T) {
	testConcurrentPolicyCoverage(t, Guided, 0, 1000, 1, 1, 8)
	testConcurrentPolicyCoverage(t, Guided, 500, -37, -1, 3, 5)
}
