package suite

import (
	"testing"

	"loopsched/internal/domain"
)

func entriesNamed(names ...string) []domain.SuiteEntry {
	entries := make([]domain.SuiteEntry, len(names))
	for i, n := range names {
		entries[i] = domain.SuiteEntry{Name: n}
	}
	return entries
}

func TestFilter_ByName(t *testing.T) {
	filter := NewFilter()

	tests := []struct {
		name     string
		entries  []string
		pattern  string
		expected int
	}{
		{
			name:     "empty pattern returns all",
			entries:  []string{"static-small", "guided-big", "adaptive-numa"},
			pattern:  "",
			expected: 3,
		},
		{
			name:     "wildcard pattern matches suffix",
			entries:  []string{"static-small", "guided-big", "adaptive-numa"},
			pattern:  "*-big",
			expected: 1,
		},
		{
			name:     "wildcard pattern matches substring",
			entries:  []string{"static-small", "guided-big", "adaptive-numa", "adaptive-steal"},
			pattern:  "*adaptive*",
			expected: 2,
		},
		{
			name:     "simple contains match",
			entries:  []string{"static-small", "guided-big"},
			pattern:  "guided",
			expected: 1,
		},
		{
			name:     "no matches",
			entries:  []string{"static-small", "guided-big"},
			pattern:  "*nonexistent*",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := filter.ByName(entriesNamed(tt.entries...), tt.pattern)
			if len(result) != tt.expected {
				t.Errorf("expected %d matches, got %d", tt.expected, len(result))
			}
		})
	}
}

func TestFilter_ByName_EdgeCases(t *testing.T) {
	filter := NewFilter()

	t.Run("empty entry list", func(t *testing.T) {
		result := filter.ByName([]domain.SuiteEntry{}, "*adaptive*")
		if len(result) != 0 {
			t.Errorf("expected empty result, got %d items", len(result))
		}
	})

	t.Run("pattern with multiple wildcards", func(t *testing.T) {
		entries := entriesNamed("numa-adaptive-steal", "numa-adaptive-nosteal", "guided-numa")
		result := filter.ByName(entries, "*numa*adaptive*")
		if len(result) < 2 {
			t.Errorf("expected at least 2 matches, got %d", len(result))
		}
	})
}
