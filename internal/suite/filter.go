package suite

import (
	"path/filepath"
	"strings"

	"loopsched/internal/domain"
)

// Filter filters loaded suite entries by name pattern.
type Filter struct{}

// NewFilter creates a new Filter.
func NewFilter() *Filter {
	return &Filter{}
}

// ByName filters entries by name pattern using wildcard matching.
// Supports patterns like "*guided*" or "numa-*".
func (f *Filter) ByName(entries []domain.SuiteEntry, pattern string) []domain.SuiteEntry {
	if pattern == "" {
		return entries
	}

	var filtered []domain.SuiteEntry
	for _, entry := range entries {
		matched, err := filepath.Match(pattern, entry.Name)
		if err == nil && matched {
			filtered = append(filtered, entry)
			continue
		}

		if strings.Contains(pattern, "*") {
			parts := strings.Split(pattern, "*")
			allMatch, hasNonEmpty := true, false
			for _, part := range parts {
				if part == "" {
					continue
				}
				hasNonEmpty = true
				if !strings.Contains(entry.Name, part) {
					allMatch = false
					break
				}
			}
			if hasNonEmpty && allMatch {
				filtered = append(filtered, entry)
			}
			continue
		}

		if strings.Contains(entry.Name, pattern) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}
