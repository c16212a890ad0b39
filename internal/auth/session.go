package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/justsurfingit/career-copilot/internal/models"
)

var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username/email or password")
	ErrInvalidToken       = errors.New("invalid token")
)

// tokenBytes gives 256 bits of entropy per token.
const tokenBytes = 32

// Manager issues, resolves and revokes bearer tokens.
type Manager struct {
	store  *Store
	hasher Hasher
	logger *zap.Logger

	ttl time.Duration
	now func() time.Time

	mu     sync.Mutex
	tokens map[string]models.Session
}

type Option func(*Manager)

// WithTTL makes tokens expire ttl after login. Zero disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) { m.ttl = ttl }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(store *Store, hasher Hasher, logger *zap.Logger, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		hasher: hasher,
		logger: logger,
		now:    time.Now,
		tokens: make(map[string]models.Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register creates a user. An empty email counts as no email.
func (m *Manager) Register(username, password string, email *string) error {
	if email != nil && strings.TrimSpace(*email) == "" {
		email = nil
	}

	hash, err := m.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	u := models.User{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		CreatedAt:    m.now(),
	}
	if err := m.store.Add(u); err != nil {
		m.logger.Info("registration rejected",
			zap.String("username", username),
			zap.Error(err),
		)
		return err
	}

	m.logger.Info("user registered", zap.String("username", username))
	return nil
}

// Login checks the password for the account matching identifier and
// returns a new token bound to that account's username.
func (m *Manager) Login(identifier, password string) (string, error) {
	u, ok := m.store.Lookup(identifier)
	if !ok || !m.hasher.Verify(u.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	token, err := newToken()
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	s := models.Session{Token: token, Username: u.Username}
	if m.ttl > 0 {
		s.ExpiresAt = m.now().Add(m.ttl)
	}

	m.mu.Lock()
	m.tokens[token] = s
	m.mu.Unlock()

	m.logger.Info("user logged in", zap.String("username", u.Username))
	return token, nil
}

// Resolve returns the username bound to token.
func (m *Manager) Resolve(token string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.tokens[token]
	if !ok {
		return "", ErrInvalidToken
	}
	if s.Expired(m.now()) {
		delete(m.tokens, token)
		return "", ErrInvalidToken
	}
	return s.Username, nil
}

// Profile resolves token and returns the bound user record.
func (m *Manager) Profile(token string) (models.User, error) {
	username, err := m.Resolve(token)
	if err != nil {
		return models.User{}, err
	}
	u, ok := m.store.ByUsername(username)
	if !ok {
		return models.User{}, ErrInvalidToken
	}
	return u, nil
}

func (m *Manager) Logout(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.tokens[token]
	if !ok || s.Expired(m.now()) {
		delete(m.tokens, token)
		return ErrInvalidToken
	}
	delete(m.tokens, token)

	m.logger.Info("user logged out", zap.String("username", s.Username))
	return nil
}

// Sweep drops expired tokens and reports how many were removed.
func (m *Manager) Sweep() int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for token, s := range m.tokens {
		if s.Expired(now) {
			delete(m.tokens, token)
			removed++
		}
	}
	return removed
}

func (m *Manager) ActiveSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tokens)
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
