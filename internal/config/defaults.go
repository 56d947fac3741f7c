package config

const (
	// DefaultStart, DefaultEnd, DefaultIncr describe the iteration space
	// of a `run` invoked with no bounds flags: a modest loop big enough
	// to show scheduling behavior without a long benchmark.
	DefaultStart     = int64(0)
	DefaultEnd       = int64(100000)
	DefaultIncr      = int64(1)
	DefaultChunkSize = int64(0)

	// DefaultPolicy is the scheduling policy used when --policy is unset.
	DefaultPolicy = "dynamic"

	// DefaultWorkers is the team size used when --workers is unset.
	DefaultWorkers = 4

	// DefaultWorkPerIter is the busy-work amount per iteration for the
	// built-in benchmark loop body.
	DefaultWorkPerIter = 200

	// DefaultOutputJSONFile is the default output JSON file name.
	DefaultOutputJSONFile = "run-results.json"
	// DefaultSweepJSONFile is the default file the `sweep` command
	// aggregates its per-entry RunResults into.
	DefaultSweepJSONFile = "sweep-results.json"
	// DefaultOutputJSONDir is the default output directory.
	DefaultOutputJSONDir = "storage"
	// DefaultProjectPath anchors relative output/suite paths.
	DefaultProjectPath = "."
	// DefaultSuitePath is the default directory of loop-spec JSON files
	// the `sweep` command loads.
	DefaultSuitePath = "suites"

	// DefaultImbalanceThreshold is the fraction (of an even share) a
	// worker's executed count must deviate by to be reported as an
	// Imbalance.
	DefaultImbalanceThreshold = 0.1
)
