// Package mockapi is an in-memory stand-in for the campaign REST API, used by
// end-to-end tests and for local development through cmd/campmock.
package mockapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	defaultSecret   = "campmock-secret"
	defaultTokenTTL = time.Hour
	adminRole       = "Admin"
	userRole        = "User"
)

// Collections are the resource paths the server answers on.
var Collections = []string{"character", "inventory", "note", "spell", "equipment", "monster", "user", "campaign"}

// adminWrites lists the collections only admins may change.
var adminWrites = map[string]bool{"spell": true, "equipment": true, "monster": true, "user": true}

type account struct {
	ID       string
	Username string
	Email    string
	Password string
	Roles    []string
}

type collection struct {
	order []string
	items map[string]map[string]any
}

func newCollection() *collection {
	return &collection{items: map[string]map[string]any{}}
}

func (c *collection) list() []map[string]any {
	out := make([]map[string]any, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

func (c *collection) put(id string, item map[string]any) {
	if _, ok := c.items[id]; !ok {
		c.order = append(c.order, id)
	}
	item["id"] = id
	c.items[id] = item
}

func (c *collection) remove(id string) bool {
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	c.order = slices.DeleteFunc(c.order, func(v string) bool { return v == id })
	return true
}

type fault struct {
	method string
	path   string
	status int
}

type Server struct {
	mu          sync.Mutex
	secret      []byte
	ttl         time.Duration
	now         func() time.Time
	accounts    map[string]*account
	collections map[string]*collection
	cacheKeys   []string
	faults      []fault
	engine      *gin.Engine
}

type Option func(*Server)

func WithSecret(secret string) Option {
	return func(s *Server) {
		if secret != "" {
			s.secret = []byte(secret)
		}
	}
}

func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Server) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

func New(opts ...Option) *Server {
	s := &Server{
		secret:      []byte(defaultSecret),
		ttl:         defaultTokenTTL,
		now:         time.Now,
		accounts:    map[string]*account{},
		collections: map[string]*collection{},
	}
	for _, name := range Collections {
		s.collections[name] = newCollection()
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

// AddUser registers an account directly, bypassing the register endpoint.
func (s *Server) AddUser(username, password string, roles ...string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(roles) == 0 {
		roles = []string{userRole}
	}
	return s.addAccountLocked(username, "", password, roles).ID
}

// Seed stores items in a collection. Items without an id get one.
func (s *Server) Seed(resource string, items ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll, ok := s.collections[resource]
	if !ok {
		return fmt.Errorf("unknown collection %q", resource)
	}
	for _, item := range items {
		obj, err := toObject(item)
		if err != nil {
			return fmt.Errorf("seed %s: %w", resource, err)
		}
		coll.put(objectID(obj), obj)
	}
	return nil
}

// Item decodes the stored item into out.
func (s *Server) Item(resource, id string, out any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll, ok := s.collections[resource]
	if !ok {
		return false, fmt.Errorf("unknown collection %q", resource)
	}
	item, ok := coll.items[id]
	if !ok {
		return false, nil
	}
	return true, remarshal(item, out)
}

// FailNext makes the next request matching method and path answer with status.
func (s *Server) FailNext(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = append(s.faults, fault{method: method, path: path, status: status})
}

// IssueToken signs a token for an existing account.
func (s *Server) IssueToken(username string) (string, error) {
	s.mu.Lock()
	acct, ok := s.accounts[strings.ToLower(username)]
	s.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("unknown account %q", username)
	}
	return s.sign(acct)
}

type tokenClaims struct {
	UserID   string   `json:"userId"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

func (s *Server) sign(acct *account) (string, error) {
	now := s.now()
	claims := tokenClaims{
		UserID:   acct.ID,
		Username: acct.Username,
		Roles:    slices.Clone(acct.Roles),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acct.ID,
			Issuer:    "campmock",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) verify(raw string) (*tokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	return claims, nil
}

func (s *Server) addAccountLocked(username, email, password string, roles []string) *account {
	acct := &account{
		ID:       uuid.NewString(),
		Username: username,
		Email:    email,
		Password: password,
		Roles:    roles,
	}
	s.accounts[strings.ToLower(username)] = acct

	user := map[string]any{"username": username, "roles": roles}
	if email != "" {
		user["email"] = email
	}
	s.collections["user"].put(acct.ID, user)
	return acct
}

func toObject(v any) (map[string]any, error) {
	obj := map[string]any{}
	if err := remarshal(v, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

func remarshal(in, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func objectID(obj map[string]any) string {
	if id, ok := obj["id"].(string); ok && strings.TrimSpace(id) != "" {
		return id
	}
	return uuid.NewString()
}

var errNoObject = errors.New("request body must be a JSON object")
