package sched

// ThreadState is a worker's view of the team and the active loop: which
// team member it is, which WorkShare it is draining, the static
// scheduler's trip counter, and (for adaptive) its own PRNG seed and
// NUMA placement. One per worker per parallel loop.
type ThreadState struct {
	TeamID    int
	WorkShare *WorkShare

	// StaticTrip counts rounds of static round-robin distribution.
	// -1 means terminal: all further static_next calls return Done.
	StaticTrip int

	// Seed is this worker's private 32-bit LCG state. Never shared.
	Seed uint32

	NumaID        int
	IndexNumaNode int

	// StealsMade counts successful adaptive steals this worker performed.
	// Owned exclusively by this worker's goroutine; never touched by a
	// thief, so it needs no atomics.
	StealsMade int
}

// NewThreadState seeds the PRNG from the team id, per spec.md §9's "a
// simple linear-congruential generator seeded from team id ... is
// sufficient; the scheduler must not use a shared PRNG."
func NewThreadState(teamID int, ws *WorkShare) *ThreadState {
	ts := &ThreadState{
		TeamID:    teamID,
		WorkShare: ws,
		Seed:      seedFromTeamID(teamID),
	}
	if ws.Numa != nil {
		ts.NumaID = ws.Numa.NodeOf[teamID]
		ts.IndexNumaNode = ws.Numa.IndexInNode[teamID]
	}
	return ts
}
