package team

import "loopsched/internal/sched"

// LoopBody is invoked once per claimed iteration range, mirroring
// Runner.Run's one-invocation-per-test shape from the teacher. incr is
// the loop's step, needed to turn a range into an iteration count since
// Range itself carries no sign information beyond Start/End.
type LoopBody func(r sched.Range, incr int64, teamID int)

// NewBenchmarkBody returns a LoopBody that busy-spins workPerIter times
// per claimed iteration, long enough to make scheduling overhead and
// load imbalance observable without external side effects.
func NewBenchmarkBody(workPerIter int) LoopBody {
	return func(r sched.Range, incr int64, teamID int) {
		n := r.Len(incr)
		if n < 0 {
			n = -n
		}
		for i := int64(0); i < n; i++ {
			spin(workPerIter)
		}
	}
}

//go:noinline
func spin(n int) {
	x := 0
	for i := 0; i < n; i++ {
		x += i
	}
	_ = x
}
