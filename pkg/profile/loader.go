package profile

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store holds the profiles parsed from configuration files.
type Store struct {
	profiles map[string]Profile
}

type documentFile struct {
	Profiles map[string]Profile `json:"profiles" yaml:"profiles"`
}

// LoadFS walks the provided filesystem and parses every JSON/YAML profile
// file. When fsys is nil or holds no profile files, the returned store is
// empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{profiles: make(map[string]Profile)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isProfileFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("profile: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}
		return store.add(doc, path)
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// LoadFile parses a single profile file from disk.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("profile: read %s: %w", path, err)
	}

	doc, err := parseDocument(data, path)
	if err != nil {
		return nil, err
	}

	store := &Store{profiles: make(map[string]Profile)}
	if err := store.add(doc, path); err != nil {
		return nil, err
	}
	return store, nil
}

// Profile returns the named profile. An empty name picks the sole profile
// when exactly one is defined.
func (s *Store) Profile(name string) (Profile, bool) {
	if s == nil {
		return Profile{}, false
	}

	id := strings.TrimSpace(name)
	if id == "" {
		if len(s.profiles) == 1 {
			for _, p := range s.profiles {
				return p, true
			}
		}
		return Profile{}, false
	}

	p, ok := s.profiles[id]
	return p, ok
}

// Names lists the defined profiles in sorted order.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether any profile is defined.
func (s *Store) Empty() bool {
	return s == nil || len(s.profiles) == 0
}

func (s *Store) add(doc documentFile, source string) error {
	for name, raw := range doc.Profiles {
		id := strings.TrimSpace(name)
		if id == "" {
			return fmt.Errorf("profile: file %s defines an empty profile name", source)
		}
		if _, exists := s.profiles[id]; exists {
			return fmt.Errorf("profile: duplicate profile %q (file %s)", id, source)
		}

		p := raw
		p.Name = id
		p.Source = source
		s.profiles[id] = p
	}
	return nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("profile: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("profile: parse %s: invalid JSON or YAML", source)
}

func isProfileFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
