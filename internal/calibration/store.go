package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/easel-agent/cli/internal/logger"
)

// Store persists calibration profiles as JSON files in a directory,
// one file per profile.
type Store struct {
	dir string
}

// NewStore creates a profile store rooted at dir
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Save writes a profile to disk
func (s *Store) Save(p *Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create profiles directory: %w", err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	path := s.path(p.Name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write profile %s: %w", path, err)
	}

	logger.Info("Saved calibration profile", "name", p.Name, "path", path, "targets", len(p.Targets))
	return nil
}

// Load reads a profile by name
func (s *Store) Load(name string) (*Profile, error) {
	path := s.path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("calibration profile %q not found (run `easel calibrate`)", name)
		}
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}

	if p.Name == "" {
		p.Name = name
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

// List returns the names of all stored profiles, sorted
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read profiles directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}

	sort.Strings(names)
	return names, nil
}

// Delete removes a stored profile
func (s *Store) Delete(name string) error {
	if err := os.Remove(s.path(name)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("calibration profile %q not found", name)
		}
		return fmt.Errorf("failed to delete profile %q: %w", name, err)
	}
	return nil
}
