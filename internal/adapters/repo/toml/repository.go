package toml

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/camp-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	cachePathKey    = "cache.path"
	cacheFileMode   = 0o600
	cacheDirMode    = 0o700
	cacheConfigDir  = ".config/camp"
	cacheFileName   = "cache.toml"
	tempFilePattern = ".cache-*.toml.tmp"
)

// CacheRepository keeps every resource store snapshot in one TOML file, one
// table per storage key. Each table carries its own schema version so stores
// can be invalidated independently.
type CacheRepository struct {
	path string
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.CacheRepository = (*CacheRepository)(nil)

func NewCacheRepository(cfg *viper.Viper) (*CacheRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path := cfg.GetString(cachePathKey)
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(homeDir, cacheConfigDir, cacheFileName)
	}

	path, err := normalizePath(path)
	if err != nil {
		return nil, err
	}

	return &CacheRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *CacheRepository) Path() string {
	return r.path
}

func (r *CacheRepository) Load(ctx context.Context, key string) (ports.CacheSnapshot, bool, error) {
	if err := ctx.Err(); err != nil {
		return ports.CacheSnapshot{}, false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return ports.CacheSnapshot{}, false, err
	}

	for _, entry := range file.Caches {
		if entry.Key == key {
			return fromSchema(entry), true, nil
		}
	}

	return ports.CacheSnapshot{}, false, nil
}

func (r *CacheRepository) Save(ctx context.Context, snapshot ports.CacheSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if snapshot.Key == "" {
		return errors.New("cache key is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(snapshot)
	updated := false
	for i := range file.Caches {
		if file.Caches[i].Key == encoded.Key {
			file.Caches[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Caches = append(file.Caches, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *CacheRepository) Clear(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	kept := file.Caches[:0]
	removed := false
	for _, entry := range file.Caches {
		if entry.Key == key {
			removed = true
			continue
		}
		kept = append(kept, entry)
	}
	if !removed {
		return nil
	}
	file.Caches = kept

	return r.writeSchema(file)
}

func (r *CacheRepository) ClearAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	err := os.Remove(r.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove cache file: %w", err)
	}
	return nil
}

func (r *CacheRepository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read cache file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode cache file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *CacheRepository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.path), cacheDirMode); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode cache file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp cache file: %w", err)
	}

	if err := tempFile.Chmod(cacheFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp cache file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp cache file: %w", err)
	}

	if err := os.Rename(tempName, r.path); err != nil {
		return fmt.Errorf("replace cache file: %w", err)
	}
	cleanup = false

	return nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve cache path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func toSchema(snapshot ports.CacheSnapshot) cacheSchema {
	entries := string(snapshot.Entries)
	if entries == "" {
		entries = "[]"
	}

	return cacheSchema{
		Key:      snapshot.Key,
		Version:  snapshot.Version,
		Selected: snapshot.Selected,
		Stale:    snapshot.Stale,
		SavedAt:  formatTime(snapshot.SavedAt),
		Entries:  entries,
	}
}

func fromSchema(entry cacheSchema) ports.CacheSnapshot {
	var entries json.RawMessage
	if entry.Entries != "" {
		entries = json.RawMessage(entry.Entries)
	}

	return ports.CacheSnapshot{
		Key:      entry.Key,
		Version:  entry.Version,
		Selected: entry.Selected,
		Stale:    entry.Stale,
		Entries:  entries,
		SavedAt:  parseTime(entry.SavedAt),
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339Nano)
}
