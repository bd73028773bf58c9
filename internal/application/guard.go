package application

import (
	"context"
	"time"

	"github.com/bnema/camp-cli/internal/domain"
	"github.com/golang/glog"
)

type Decision struct {
	Allowed bool
	// Redirect is set when the caller must send the user to another route.
	Redirect domain.Route
	// Recovered is true when the mirror token copy replaced an expired primary.
	Recovered bool
	Reason    string
}

// Guard checks the session before a protected route is entered.
type Guard struct {
	sessions *SessionService
}

func NewGuard(sessions *SessionService) *Guard {
	return &Guard{sessions: sessions}
}

func (g *Guard) Check(ctx context.Context, route domain.Route) (Decision, error) {
	s := g.sessions
	now := s.clock.Now()

	current := s.Current()
	if !current.Expired(now) {
		return Decision{Allowed: true}, nil
	}

	if mirror, err := s.vault.Get(ctx, MirrorTokenKey); err == nil {
		if session, err := s.decode(mirror); err == nil && !session.Expired(now) {
			s.adopt(ctx, session)
			glog.V(1).Infof("session restored from mirror token for %s", session.Username)
			return Decision{Allowed: true, Recovered: true}, nil
		}
	}

	switch route {
	case domain.RouteRegister:
		return Decision{Allowed: true}, nil
	case domain.RouteLogin:
		if !current.IsZero() {
			if err := s.clear(ctx); err != nil {
				return Decision{Allowed: true}, err
			}
		}
		return Decision{Allowed: true}, nil
	}

	decision := Decision{Redirect: domain.RouteLogin, Reason: "not signed in"}
	if !current.IsZero() {
		decision.Reason = "session expired"
	}

	err := s.clear(ctx)
	if !current.IsZero() && s.markExpiryNotified() {
		s.notifier.Notify(domain.Notification{
			Level:   domain.NotifyError,
			Title:   "session expired",
			Message: "sign in again to continue",
		})
	}

	return decision, err
}

// Watch re-runs Check every interval against the route reported by route.
// The first redirect is delivered on the returned channel, which is closed
// afterwards or when ctx ends.
func (g *Guard) Watch(ctx context.Context, interval time.Duration, route func() domain.Route) <-chan Decision {
	out := make(chan Decision, 1)

	go func() {
		defer close(out)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			decision, err := g.Check(ctx, route())
			if err != nil {
				glog.Warningf("session check: %v", err)
			}
			if decision.Allowed {
				continue
			}

			select {
			case out <- decision:
			case <-ctx.Done():
			}
			return
		}
	}()

	return out
}
