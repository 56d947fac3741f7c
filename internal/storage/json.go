package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"loopsched/internal/domain"
)

// Save writes a run result to the configured JSON output file.
func (s *JSONStorage) Save(result domain.RunResult) error {
	return s.SaveOutput(&result)
}

// Load reads the last run result from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.RunResult, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var result domain.RunResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &result, nil
}

// SaveOutput writes a full run result verbatim to the configured JSON file.
func (s *JSONStorage) SaveOutput(result *domain.RunResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// SaveSweep writes an aggregated sweep result to its own output file,
// separate from the single-run output path.
func (s *JSONStorage) SaveSweep(result *domain.SweepResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sweep result: %w", err)
	}
	path := s.cfg.GetSweepOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
