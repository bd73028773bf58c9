package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int           `toml:"version"`
	Caches  []cacheSchema `toml:"caches"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported cache schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

// cacheSchema holds one store. Entries is the JSON encoding of the store's
// entities, kept verbatim so the file does not need to know every entity type.
type cacheSchema struct {
	Key      string   `toml:"key"`
	Version  int      `toml:"version"`
	Selected string   `toml:"selected,omitempty"`
	Stale    []string `toml:"stale,omitempty"`
	SavedAt  string   `toml:"saved_at,omitempty"`
	Entries  string   `toml:"entries,multiline"`
}
