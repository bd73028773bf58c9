package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bnema/camp-cli/internal/domain"
	"github.com/bnema/camp-cli/internal/ports"
	"github.com/golang/glog"
)

const (
	TokenKey       = "session/token"
	MirrorTokenKey = "session/token.mirror"
	UsernameKey    = "session/username"
)

// SessionService holds the signed-in identity and keeps it in the token vault.
// The bearer token is written twice; the guard falls back to the mirror copy
// when the primary one is gone or stale.
type SessionService struct {
	auth     ports.AuthBridge
	vault    ports.TokenVault
	decoder  ports.TokenDecoder
	notifier ports.Notifier
	clock    ports.Clock

	mu             sync.RWMutex
	current        domain.Session
	expiryNotified bool
	onLogout       []func(context.Context) error
}

func NewSessionService(auth ports.AuthBridge, vault ports.TokenVault, decoder ports.TokenDecoder, notifier ports.Notifier, clock ports.Clock) *SessionService {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &SessionService{
		auth:     auth,
		vault:    vault,
		decoder:  decoder,
		notifier: notifier,
		clock:    clock,
	}
}

// OnLogout registers a hook that runs whenever the session is cleared.
func (s *SessionService) OnLogout(hook func(context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.onLogout = append(s.onLogout, hook)
}

func (s *SessionService) Current() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current
}

// Authenticated reports whether a session exists and has not expired.
func (s *SessionService) Authenticated() bool {
	return !s.Current().Expired(s.clock.Now())
}

func (s *SessionService) IsAdmin() bool {
	return s.Current().HasRole(domain.AdminRole)
}

// Restore loads the session persisted by a previous run. A missing or
// undecodable token leaves the service signed out without an error.
func (s *SessionService) Restore(ctx context.Context) (domain.Session, error) {
	token, err := s.vault.Get(ctx, TokenKey)
	if errors.Is(err, domain.ErrTokenNotFound) {
		return domain.Session{}, nil
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("read session token: %w", err)
	}

	session, err := s.decode(token)
	if err != nil {
		glog.Warningf("ignoring stored session: %v", err)
		return domain.Session{}, nil
	}

	s.mu.Lock()
	s.current = session
	s.mu.Unlock()

	return session, nil
}

func (s *SessionService) Login(ctx context.Context, username, password string) (domain.Session, error) {
	if err := domain.ValidateUsername(username); err != nil {
		return domain.Session{}, err
	}
	if strings.TrimSpace(password) == "" {
		return domain.Session{}, fmt.Errorf("%w: password is required", domain.ErrValidation)
	}

	token, err := s.auth.Login(ctx, strings.TrimSpace(username), password)
	if err != nil {
		s.notifier.Notify(domain.Notification{Level: domain.NotifyError, Title: "sign in failed", Message: err.Error()})
		return domain.Session{}, fmt.Errorf("login: %w", err)
	}

	return s.establish(ctx, username, token)
}

// Register checks the password rules before anything is sent.
func (s *SessionService) Register(ctx context.Context, username, email, password string) (domain.Session, error) {
	if err := domain.ValidateUsername(username); err != nil {
		return domain.Session{}, err
	}
	if err := domain.ValidatePassword(password); err != nil {
		return domain.Session{}, err
	}

	token, err := s.auth.Register(ctx, strings.TrimSpace(username), strings.TrimSpace(email), password)
	if err != nil {
		s.notifier.Notify(domain.Notification{Level: domain.NotifyError, Title: "registration failed", Message: err.Error()})
		return domain.Session{}, fmt.Errorf("register: %w", err)
	}

	return s.establish(ctx, username, token)
}

func (s *SessionService) Logout(ctx context.Context) error {
	err := s.clear(ctx)
	s.notifier.Notify(domain.Notification{Level: domain.NotifyInfo, Title: "signed out"})
	return err
}

// Username returns the last username that signed in on this machine.
func (s *SessionService) Username(ctx context.Context) string {
	username, err := s.vault.Get(ctx, UsernameKey)
	if err != nil {
		return ""
	}
	return username
}

// Token is the bridge's token source. It refuses to hand out an expired token.
func (s *SessionService) Token(_ context.Context) (string, error) {
	session := s.Current()
	if session.Expired(s.clock.Now()) {
		s.notifier.Notify(domain.Notification{Level: domain.NotifyError, Title: "not authenticated", Message: "sign in to continue"})
		return "", domain.ErrNotAuthenticated
	}
	return session.Token, nil
}

var _ ports.TokenSource = (*SessionService)(nil)

func (s *SessionService) establish(ctx context.Context, username, token string) (domain.Session, error) {
	session, err := s.decode(token)
	if err != nil {
		return domain.Session{}, err
	}

	if err := s.persist(ctx, token, username); err != nil {
		return domain.Session{}, err
	}

	s.mu.Lock()
	s.current = session
	s.expiryNotified = false
	s.mu.Unlock()

	s.notifier.Notify(domain.Notification{Level: domain.NotifySuccess, Title: "signed in", Message: session.Username})
	return session, nil
}

func (s *SessionService) persist(ctx context.Context, token, username string) error {
	for _, key := range []string{TokenKey, MirrorTokenKey} {
		if err := s.vault.Put(ctx, key, token); err != nil {
			return fmt.Errorf("store session token: %w", err)
		}
	}
	if username = strings.TrimSpace(username); username != "" {
		if err := s.vault.Put(ctx, UsernameKey, username); err != nil {
			return fmt.Errorf("store username: %w", err)
		}
	}
	return nil
}

func (s *SessionService) decode(token string) (domain.Session, error) {
	claims, err := s.decoder.Decode(token)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", domain.ErrNotAuthenticated, err)
	}
	return domain.NewSession(token, claims)
}

// clear drops the session, both token copies and every registered cache.
func (s *SessionService) clear(ctx context.Context) error {
	s.mu.Lock()
	s.current = domain.Session{}
	hooks := append([]func(context.Context) error(nil), s.onLogout...)
	s.mu.Unlock()

	var errs []error
	for _, key := range []string{TokenKey, MirrorTokenKey} {
		if err := s.vault.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", key, err))
		}
	}
	for _, hook := range hooks {
		if err := hook(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// adopt swaps in a session recovered from the mirror copy and repairs the primary.
func (s *SessionService) adopt(ctx context.Context, session domain.Session) {
	s.mu.Lock()
	s.current = session
	s.mu.Unlock()

	if err := s.vault.Put(ctx, TokenKey, session.Token); err != nil {
		glog.Warningf("repair session token: %v", err)
	}
}

// markExpiryNotified reports whether this call is the first since the last sign in.
func (s *SessionService) markExpiryNotified() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.expiryNotified {
		return false
	}
	s.expiryNotified = true
	return true
}
