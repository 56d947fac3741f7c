package sched

// Policy is the common interface every scheduler implements: hand out
// the next iteration range for a worker, or report there is none left.
// It is the bool-returning shape spec.md §6 specifies for
// dynamic/guided/adaptive; Static additionally exposes the tri-state
// Next method (spec.md's "0/1/<0") for callers that care about the
// "absolutely last range" distinction.
type Policy interface {
	Next(ts *ThreadState) (Range, bool)
}

// New builds the Policy implementation matching ws.Kind.
func New(ws *WorkShare) Policy {
	switch ws.Kind {
	case Static:
		return staticPolicy{NewStaticScheduler(ws)}
	case Dynamic:
		return NewDynamicScheduler(ws)
	case Guided:
		return NewGuidedScheduler(ws)
	case Adaptive:
		return NewAdaptiveScheduler(ws)
	default:
		panic("sched: unknown policy kind")
	}
}

// staticPolicy adapts StaticScheduler's tri-state Next to the Policy
// interface's bool-returning shape.
type staticPolicy struct {
	*StaticScheduler
}

func (s staticPolicy) Next(ts *ThreadState) (Range, bool) {
	return s.StaticScheduler.Next2(ts)
}
