// Package sched implements the parallel loop iteration scheduler: a
// shared work-share descriptor plus the four policies (static, dynamic,
// guided, adaptive) that hand iteration ranges out to a team of workers.
package sched

import (
	"sync"
	"sync/atomic"
)

// Kind selects which scheduling policy a WorkShare is drained with.
type Kind int

const (
	Static Kind = iota
	Dynamic
	Guided
	Adaptive
)

func (k Kind) String() string {
	switch k {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	case Guided:
		return "guided"
	case Adaptive:
		return "adaptive"
	default:
		return "unknown"
	}
}

// Config carries the compile-time feature switches spec.md demands as
// runtime knobs, since Go has no preprocessor.
type Config struct {
	// AtomicsAvailable enables the lock-free dynamic/guided fast paths.
	// Always true in practice (sync/atomic is always present); kept as a
	// field so the locked fallback can be exercised and benchmarked.
	AtomicsAvailable bool
	// AdaptiveEnabled gates the adaptive policy entirely.
	AdaptiveEnabled bool
	// NumaAware enables NUMA-biased victim selection in the adaptive
	// steal protocol.
	NumaAware bool
	// PWSStrict forbids cross-NUMA stealing once NUMA-aware selection is
	// exhausted.
	PWSStrict bool
	// StealEnabled gates the adaptive steal loop. Defaults to true; the
	// original source disabled this behind #if 0 for a benchmark, which
	// spec.md identifies as accidental. False reproduces that benchmark
	// mode.
	StealEnabled bool
}

// DefaultConfig returns the steal-enabled, non-NUMA default.
func DefaultConfig() Config {
	return Config{
		AtomicsAvailable: true,
		AdaptiveEnabled:  true,
		NumaAware:        false,
		PWSStrict:        false,
		StealEnabled:     true,
	}
}

// AdaptiveChunk is one worker's deque in the adaptive policy: the owner
// operates at Begin, thieves operate at End.
type AdaptiveChunk struct {
	Lock sync.Mutex

	// Begin and End are published with atomic loads/stores so the owner
	// and a thief can race-detect each other per spec.md §4.4/§9: the
	// owner fences between advancing Begin and reading End, a thief
	// fences between shrinking End and reading Begin.
	begin int64
	end   int64

	// NbExec counts iterations executed by the owner since the last time
	// it was reconciled into ws.NbIterationsLeft.
	NbExec int64

	// stealsReceived counts how many times this chunk was the victim of a
	// successful steal; read by the loop-entry collaborator once the loop
	// has finished to report per-worker imbalance.
	stealsReceived int64

	// initialLen is end-begin as set once by SetRange, kept around so the
	// original equal share survives later Begin/End churn from stealing.
	initialLen int64

	IsInit bool
}

// StealsReceived reports how many times this chunk was stolen from.
func (c *AdaptiveChunk) StealsReceived() int64 {
	return atomic.LoadInt64(&c.stealsReceived)
}

// WorkShare is the shared descriptor for one parallel loop, published to
// every team member once by the loop-entry collaborator (internal/team
// in this repository) and drained by repeated Policy.Next calls.
type WorkShare struct {
	Kind Kind

	StartT0   int64
	End       int64
	Incr      int64
	ChunkSize int64

	// Next is the dynamic/guided shared cursor, advanced atomically.
	next int64

	// Mode is a precomputed optimization: true iff End-Next is always a
	// positive multiple of Incr that fits without overflow when
	// multiplied by ChunkSize, enabling the branch-free fetch-and-add
	// fast path. Computed once at construction; never repurposed.
	Mode bool

	// NbIterationsLeft is decremented by adaptive workers as they
	// reconcile executed work; reaching zero means the loop is finished.
	nbIterationsLeft int64

	AdaptiveChunks []AdaptiveChunk

	// Nthreads is the team size this WorkShare was published to.
	Nthreads int

	Numa *NumaInfo

	// Lock guards the locked-fallback dynamic/guided paths when
	// Config.AtomicsAvailable is false.
	Lock sync.Mutex

	Config Config
}

// NewWorkShare builds the shared descriptor. start/end/incr describe the
// iteration space as in spec.md §3; chunkSize is the policy hint (0 means
// "automatic", static only). It does not perform the adaptive equal-split
// or populate NbIterationsLeft — that is InitWorkShare's job in
// internal/team, mirroring spec.md's "loop-entry collaborator" boundary.
func NewWorkShare(kind Kind, start, end, incr, chunkSize int64, nthreads int, numa *NumaInfo, cfg Config) *WorkShare {
	if incr == 0 {
		panic("sched: incr must be nonzero")
	}
	if incr > 0 && start > end {
		panic("sched: incr > 0 requires start <= end")
	}
	if incr < 0 && start < end {
		panic("sched: incr < 0 requires start >= end")
	}
	if chunkSize < 0 {
		panic("sched: chunkSize must be >= 0")
	}
	if chunkSize == 0 && kind != Static {
		panic("sched: chunkSize == 0 (\"automatic\") is only valid for the static policy")
	}

	ws := &WorkShare{
		Kind:      kind,
		StartT0:   start,
		End:       end,
		Incr:      incr,
		ChunkSize: chunkSize,
		next:      start,
		Nthreads:  nthreads,
		Numa:      numa,
		Config:    cfg,
	}
	ws.Mode = computeMode(start, end, incr, chunkSize)
	if kind == Adaptive {
		ws.AdaptiveChunks = make([]AdaptiveChunk, nthreads)
	}
	return ws
}

// computeMode decides whether the fetch-and-add fast path is provably
// overflow-free, per spec.md §3's Mode field and §9's open question.
func computeMode(start, end, incr, chunkSize int64) bool {
	if chunkSize <= 0 {
		return false
	}
	n := ceilDiv(end-start, incr)
	if n <= 0 {
		return true
	}
	// Overflow-free if (n/chunkSize + 1) claims can't push the atomic
	// counter past what an int64 can represent from start.
	const maxSafe = int64(1) << 62
	return n < maxSafe && chunkSize < maxSafe
}

// SetNbIterationsLeft installs the total iteration count the adaptive
// policy counts down to zero. Called once by the loop-entry collaborator
// before publishing the WorkShare.
func (ws *WorkShare) SetNbIterationsLeft(n int64) {
	atomic.StoreInt64(&ws.nbIterationsLeft, n)
}

// NbIterationsLeft reads the current countdown value.
func (ws *WorkShare) NbIterationsLeft() int64 {
	return atomic.LoadInt64(&ws.nbIterationsLeft)
}

// NewAdaptiveChunk is exposed for tests that want a standalone deque.
func NewAdaptiveChunk() *AdaptiveChunk {
	return &AdaptiveChunk{}
}

// SetRange installs the initial [begin, end) partition for a worker's
// deque. Called once by the loop-entry collaborator (internal/team)
// before the WorkShare is published to any worker.
func (c *AdaptiveChunk) SetRange(begin, end int64) {
	atomic.StoreInt64(&c.begin, begin)
	atomic.StoreInt64(&c.end, end)
	c.initialLen = end - begin
	c.IsInit = true
}

// InitialShare reports how many iterations this chunk started with,
// before any stealing. Unaffected by later Begin/End churn.
func (c *AdaptiveChunk) InitialShare(incr int64) int64 {
	n := c.initialLen / incr
	if n < 0 {
		n = -n
	}
	return n
}

func (c *AdaptiveChunk) loadBegin() int64   { return atomic.LoadInt64(&c.begin) }
func (c *AdaptiveChunk) storeBegin(v int64) { atomic.StoreInt64(&c.begin, v) }
func (c *AdaptiveChunk) loadEnd() int64     { return atomic.LoadInt64(&c.end) }
func (c *AdaptiveChunk) storeEnd(v int64)   { atomic.StoreInt64(&c.end, v) }
