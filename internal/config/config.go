package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"loopsched/internal/sched"
)

// Config holds all configuration for the application.
type Config struct {
	// Project settings
	ProjectPath string
	SuitePath   string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Loop-share defaults, overridable per command by Flags
	Start     int64
	End       int64
	Incr      int64
	ChunkSize int64
	Policy    string
	Workers   int

	// Feature switches, the runtime knobs sched.Config carries
	NumaGroups   [][]int
	PWSStrict    bool
	StealEnabled bool
	NumaAware    bool

	WorkPerIter int

	// Command flags
	Flags Flags
}

// Flags holds command-line flags.
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

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		ProjectPath:    DefaultProjectPath,
		SuitePath:      DefaultSuitePath,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Start:          DefaultStart,
		End:            DefaultEnd,
		Incr:           DefaultIncr,
		ChunkSize:      DefaultChunkSize,
		Policy:         DefaultPolicy,
		Workers:        DefaultWorkers,
		StealEnabled:   true,
		WorkPerIter:    DefaultWorkPerIter,
		Flags:          Flags{StealEnabled: true},
	}
}

// Load creates a config and applies flags.
func Load(flags Flags) *Config {
	cfg := New()
	cfg.Flags = flags

	if flags.Start != 0 || flags.End != 0 {
		cfg.Start = flags.Start
		cfg.End = flags.End
	}
	if flags.Incr != 0 {
		cfg.Incr = flags.Incr
	}
	if flags.ChunkSize != 0 {
		cfg.ChunkSize = flags.ChunkSize
	}
	if flags.Policy != "" {
		cfg.Policy = flags.Policy
	}
	if flags.Workers > 0 {
		cfg.Workers = flags.Workers
	}
	if flags.WorkPerIter > 0 {
		cfg.WorkPerIter = flags.WorkPerIter
	}
	if flags.SuitePath != "" {
		cfg.SuitePath = flags.SuitePath
	}
	cfg.PWSStrict = flags.PWSStrict
	cfg.StealEnabled = flags.StealEnabled
	cfg.NumaGroups = parseNumaGroups(flags.NumaGroups)
	cfg.NumaAware = len(cfg.NumaGroups) > 0

	return cfg
}

// ParsePolicy maps a policy flag string to a sched.Kind.
func ParsePolicy(name string) (sched.Kind, error) {
	switch name {
	case "static":
		return sched.Static, nil
	case "dynamic":
		return sched.Dynamic, nil
	case "guided":
		return sched.Guided, nil
	case "adaptive":
		return sched.Adaptive, nil
	default:
		return 0, fmt.Errorf("unknown policy %q (want static, dynamic, guided, or adaptive)", name)
	}
}

// SchedConfig builds the sched.Config feature-switch bundle from this
// Config, the runtime counterpart of spec.md's compile-time switches.
func (c *Config) SchedConfig() sched.Config {
	return sched.Config{
		AtomicsAvailable: true,
		AdaptiveEnabled:  true,
		NumaAware:        c.NumaAware,
		PWSStrict:        c.PWSStrict,
		StealEnabled:     c.StealEnabled,
	}
}

// NumaInfo builds a sched.NumaInfo from the configured groups, or nil if
// NUMA awareness was not requested.
func (c *Config) NumaInfo() *sched.NumaInfo {
	if !c.NumaAware || len(c.NumaGroups) == 0 {
		return nil
	}
	return sched.NewNumaInfo(c.NumaGroups)
}

// GetOutputPath returns the full path to the run-results JSON file.
// Resolves to an absolute path so `run` and `watch` always read/write
// the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetSweepOutputPath returns the full path to the sweep-results JSON file.
func (c *Config) GetSweepOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, DefaultSweepJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetSuitePath returns the directory `sweep` loads loop-spec JSON files
// from, relative to ProjectPath unless absolute.
func (c *Config) GetSuitePath() string {
	if filepath.IsAbs(c.SuitePath) {
		return c.SuitePath
	}
	return filepath.Join(c.ProjectPath, c.SuitePath)
}

// GetHistoryDSN builds the MySQL DSN for internal/history from
// environment variables (loaded from .env by the caller via godotenv),
// the same DB_HOST/DB_PORT/DB_USERNAME/DB_PASSWORD convention the
// teacher's migration package used per worker database.
func GetHistoryDSN() string {
	host := getenvDefault("DB_HOST", "127.0.0.1")
	port := getenvDefault("DB_PORT", "3306")
	user := getenvDefault("DB_USERNAME", "root")
	password := os.Getenv("DB_PASSWORD")
	name := getenvDefault("DB_HISTORY_DATABASE", "loopsched_history")
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", user, password, host, port, name)
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parseNumaGroups parses a --numa-groups flag of the form
// "0,1|2,3" (pipe-separated groups, comma-separated worker indices
// within each group) into [][]int.
func parseNumaGroups(raw string) [][]int {
	if raw == "" {
		return nil
	}
	var groups [][]int
	for _, part := range strings.Split(raw, "|") {
		if part == "" {
			continue
		}
		var group []int
		for _, idStr := range strings.Split(part, ",") {
			id, err := strconv.Atoi(strings.TrimSpace(idStr))
			if err == nil {
				group = append(group, id)
			}
		}
		if len(group) > 0 {
			groups = append(groups, group)
		}
	}
	return groups
}
