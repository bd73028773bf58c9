package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/camp-cli/internal/domain"
	"github.com/bnema/camp-cli/internal/ports"
)

const (
	vaultDirMode  = 0o700
	vaultFileMode = 0o600
	tempPattern   = ".vault-*.tmp"
)

// Vault keeps each key in its own file under root, readable only by the owner.
type Vault struct {
	root string
	mu   sync.RWMutex
}

var _ ports.TokenVault = (*Vault)(nil)

func NewVault(root string) *Vault {
	return &Vault{root: filepath.Clean(root)}
}

func (v *Vault) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := v.pathForKey(key)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), vaultDirMode); err != nil {
		return fmt.Errorf("create vault directory: %w", err)
	}

	// Write then rename so a crash never leaves half a token behind.
	tmp, err := os.CreateTemp(filepath.Dir(path), tempPattern)
	if err != nil {
		return fmt.Errorf("create temp vault file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(vaultFileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod vault entry %q: %w", key, err)
	}
	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write vault entry %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close vault entry %q: %w", key, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("store vault entry %q: %w", key, err)
	}

	return nil
}

func (v *Vault) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := v.pathForKey(key)
	if err != nil {
		return "", err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("vault entry %q: %w", key, domain.ErrTokenNotFound)
		}
		return "", fmt.Errorf("read vault entry %q: %w", key, err)
	}

	return strings.TrimSpace(string(data)), nil
}

func (v *Vault) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := v.pathForKey(key)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	err = os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete vault entry %q: %w", key, err)
	}

	return nil
}

func (v *Vault) pathForKey(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", errors.New("vault key is empty")
	}

	cleaned := filepath.Clean(trimmed)
	if filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") || cleaned == "." {
		return "", fmt.Errorf("invalid vault key %q", key)
	}

	return filepath.Join(v.root, cleaned), nil
}
