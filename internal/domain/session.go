package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

type Route string

const (
	RouteLogin    Route = "login"
	RouteRegister Route = "register"
)

const AdminRole = "Admin"

// Claims is what the client reads from a bearer token without verifying it.
type Claims struct {
	UserID    string
	Username  string
	Roles     []string
	ExpiresAt time.Time
}

// Expired is fail-closed: a token without an expiry is treated as expired.
func (c Claims) Expired(now time.Time) bool {
	if c.ExpiresAt.IsZero() {
		return true
	}
	return !now.Before(c.ExpiresAt)
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	UserID    string
	Username  string
	Roles     []string
}

func NewSession(token string, claims Claims) (Session, error) {
	if strings.TrimSpace(token) == "" {
		return Session{}, fmt.Errorf("%w: empty token", ErrNotAuthenticated)
	}
	if claims.ExpiresAt.IsZero() {
		return Session{}, fmt.Errorf("%w: token has no expiry", ErrNotAuthenticated)
	}

	return Session{
		Token:     token,
		ExpiresAt: claims.ExpiresAt,
		UserID:    claims.UserID,
		Username:  claims.Username,
		Roles:     slices.Clone(claims.Roles),
	}, nil
}

func (s Session) IsZero() bool {
	return s.Token == ""
}

func (s Session) Expired(now time.Time) bool {
	if s.IsZero() {
		return true
	}
	return !now.Before(s.ExpiresAt)
}

func (s Session) HasRole(role string) bool {
	return slices.ContainsFunc(s.Roles, func(r string) bool {
		return strings.EqualFold(r, role)
	})
}
