package application

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/camp-cli/internal/domain"
	"github.com/bnema/camp-cli/internal/ports"
)

type AdminService struct {
	admin    ports.AdminBridge
	notifier ports.Notifier
}

func NewAdminService(admin ports.AdminBridge, notifier ports.Notifier) *AdminService {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	return &AdminService{admin: admin, notifier: notifier}
}

func (s *AdminService) CacheInfo(ctx context.Context) (domain.CacheInfo, error) {
	info, err := s.admin.CacheInfo(ctx)
	if err != nil {
		s.fail("read server cache", err)
		return domain.CacheInfo{}, fmt.Errorf("cache info: %w", err)
	}
	return info, nil
}

func (s *AdminService) ClearCache(ctx context.Context) error {
	if err := s.admin.ClearCache(ctx); err != nil {
		s.fail("clear server cache", err)
		return fmt.Errorf("clear cache: %w", err)
	}
	s.notifier.Notify(domain.Notification{Level: domain.NotifySuccess, Title: "server cache cleared"})
	return nil
}

func (s *AdminService) Backup(ctx context.Context, collection string, w io.Writer) (int64, error) {
	collection = strings.TrimSpace(collection)
	if collection == "" {
		return 0, fmt.Errorf("%w: collection is required", domain.ErrValidation)
	}

	n, err := s.admin.Backup(ctx, collection, w)
	if err != nil {
		s.fail("back up "+collection, err)
		return n, fmt.Errorf("backup %s: %w", collection, err)
	}
	s.notifier.Notify(domain.Notification{
		Level:   domain.NotifySuccess,
		Title:   collection + " backed up",
		Message: fmt.Sprintf("%d bytes", n),
	})
	return n, nil
}

// Restore uploads a backup file previously produced by Backup.
func (s *AdminService) Restore(ctx context.Context, collection, path string) error {
	collection = strings.TrimSpace(collection)
	if collection == "" {
		return fmt.Errorf("%w: collection is required", domain.ErrValidation)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open backup: %w", err)
	}
	defer f.Close()

	if err := s.admin.Restore(ctx, collection, filepath.Base(path), f); err != nil {
		s.fail("restore "+collection, err)
		return fmt.Errorf("restore %s: %w", collection, err)
	}
	s.notifier.Notify(domain.Notification{Level: domain.NotifySuccess, Title: collection + " restored"})
	return nil
}

func (s *AdminService) fail(action string, err error) {
	s.notifier.Notify(domain.Notification{
		Level:   domain.NotifyError,
		Title:   "could not " + action,
		Message: err.Error(),
	})
}

// ConfirmedRemove deletes id from store only when typed matches the name
// returned by expected for the entry.
func ConfirmedRemove[T domain.Entity](ctx context.Context, store *Store[T], id, typed string, expected func(T) string) error {
	entity, ok := store.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s %s", domain.ErrNotFound, store.Resource(), id)
	}
	if err := domain.ConfirmDeletion(expected(entity), typed); err != nil {
		return err
	}
	return store.Remove(ctx, id)
}
