package suite

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"loopsched/internal/domain"
)

// Loader walks a directory of loop-spec JSON files, the scheduler-domain
// replacement for scanning a directory of PHPUnit test files.
type Loader struct {
	skipDirs map[string]bool
}

// NewLoader creates a Loader skipping the given directory names.
func NewLoader(skipDirs []string) *Loader {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Loader{skipDirs: skipMap}
}

// Load finds and parses every *.json file under root into a SuiteEntry.
func (l *Loader) Load(root string) ([]domain.SuiteEntry, error) {
	var entries []domain.SuiteEntry

	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("suite path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("suite path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			if strings.HasPrefix(name, ".") && name != "." && name != ".." {
				return filepath.SkipDir
			}
			if l.skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}

		entry, err := loadEntry(path)
		if err != nil {
			return fmt.Errorf("load suite entry %s: %w", path, err)
		}
		entries = append(entries, entry)
		return nil
	})

	return entries, err
}

func loadEntry(path string) (domain.SuiteEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.SuiteEntry{}, err
	}
	var entry domain.SuiteEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return domain.SuiteEntry{}, err
	}
	if entry.Name == "" {
		entry.Name = strings.TrimSuffix(filepath.Base(path), ".json")
	}
	return entry, nil
}
