// Package jwt reads the claims the client needs out of an API bearer token.
// Signatures are not checked: the server is the only party that verifies them.
package jwt

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/camp-cli/internal/domain"
	"github.com/bnema/camp-cli/internal/ports"
	gojwt "github.com/golang-jwt/jwt/v5"
)

var ErrMalformedToken = errors.New("malformed bearer token")

// roleList accepts both a single role string and an array of roles.
type roleList []string

func (r *roleList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*r = nil
			return nil
		}
		*r = roleList{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("decode roles: %w", err)
	}
	*r = many
	return nil
}

type apiClaims struct {
	UserID   string   `json:"userId,omitempty"`
	NameID   string   `json:"nameid,omitempty"`
	Username string   `json:"username,omitempty"`
	Unique   string   `json:"unique_name,omitempty"`
	Roles    roleList `json:"roles,omitempty"`
	Role     roleList `json:"role,omitempty"`
	gojwt.RegisteredClaims
}

type Decoder struct {
	parser *gojwt.Parser
}

var _ ports.TokenDecoder = (*Decoder)(nil)

func NewDecoder() *Decoder {
	return &Decoder{parser: gojwt.NewParser(gojwt.WithoutClaimsValidation())}
}

func (d *Decoder) Decode(token string) (domain.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Claims{}, ErrMalformedToken
	}

	var claims apiClaims
	if _, _, err := d.parser.ParseUnverified(token, &claims); err != nil {
		return domain.Claims{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	out := domain.Claims{
		UserID:   firstNonEmpty(claims.UserID, claims.NameID, claims.Subject),
		Username: firstNonEmpty(claims.Username, claims.Unique),
		Roles:    append(append([]string{}, claims.Roles...), claims.Role...),
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}

	return out, nil
}

// IsTokenExpired is fail-closed: undecodable tokens and tokens without exp are expired.
func (d *Decoder) IsTokenExpired(token string, now time.Time) bool {
	claims, err := d.Decode(token)
	if err != nil {
		return true
	}
	return claims.Expired(now)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
