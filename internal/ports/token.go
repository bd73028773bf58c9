package ports

import (
	"context"

	"github.com/bnema/camp-cli/internal/domain"
)

type TokenDecoder interface {
	Decode(token string) (domain.Claims, error)
}

type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type TokenSourceFunc func(ctx context.Context) (string, error)

func (f TokenSourceFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}
