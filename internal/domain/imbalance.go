package domain

// Imbalance flags a worker whose executed share deviated from an even
// split of the loop by more than the configured threshold.
type Imbalance struct {
	WorkerID      int     `json:"worker_id"`
	ExpectedShare int64   `json:"expected_share"`
	ActualShare   int64   `json:"actual_share"`
	Delta         int64   `json:"delta"`
	DeltaPercent  float64 `json:"delta_percent"`
}
