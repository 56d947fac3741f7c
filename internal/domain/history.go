package domain

// HistoryRecord is one row of the `runs` history table: a condensed,
// durable summary of a RunResult, identified by its own database id.
type HistoryRecord struct {
	ID              int64
	Policy          string
	Start           int64
	End             int64
	Incr            int64
	ChunkSize       int64
	Workers         int
	TotalIterations int64
	DurationSeconds float64
	MaxImbalance    float64
	Timestamp       string
}
