package cli

import "loopsched/internal/config"

// Flags holds command-line flags shared across the run/sweep commands.
type Flags struct {
	Start        int64
	End          int64
	Incr         int64
	ChunkSize    int64
	Policy       string
	Workers      int
	NumaGroups   string
	PWSStrict    bool
	StealEnabled bool
	WorkPerIter  int
	Filter       string
	SuitePath    string
	Record       bool
}

// ToConfigFlags converts CLI flags to config flags.
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Start:        f.Start,
		End:          f.End,
		Incr:         f.Incr,
		ChunkSize:    f.ChunkSize,
		Policy:       f.Policy,
		Workers:      f.Workers,
		NumaGroups:   f.NumaGroups,
		PWSStrict:    f.PWSStrict,
		StealEnabled: f.StealEnabled,
		WorkPerIter:  f.WorkPerIter,
		Filter:       f.Filter,
		SuitePath:    f.SuitePath,
		Record:       f.Record,
	}
}
