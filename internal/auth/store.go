package auth

import (
	"sync"

	"github.com/justsurfingit/career-copilot/internal/models"
)

// Store is the in-memory credential store. It is reset on restart.
type Store struct {
	mu     sync.RWMutex
	users  map[string]models.User
	emails map[string]string // email -> username
}

func NewStore() *Store {
	return &Store{
		users:  make(map[string]models.User),
		emails: make(map[string]string),
	}
}

// Add inserts u if neither its username nor its email is taken.
// Both checks and the insert happen under one lock.
func (s *Store) Add(u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.Username]; ok {
		return ErrDuplicateUsername
	}
	if u.Email != nil {
		if _, ok := s.emails[*u.Email]; ok {
			return ErrDuplicateEmail
		}
		s.emails[*u.Email] = u.Username
	}
	s.users[u.Username] = u
	return nil
}

func (s *Store) ByUsername(username string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	return u, ok
}

func (s *Store) ByEmail(email string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name, ok := s.emails[email]
	if !ok {
		return models.User{}, false
	}
	u, ok := s.users[name]
	return u, ok
}

// Lookup matches identifier against usernames first, then emails.
func (s *Store) Lookup(identifier string) (models.User, bool) {
	if u, ok := s.ByUsername(identifier); ok {
		return u, true
	}
	if identifier == "" {
		return models.User{}, false
	}
	return s.ByEmail(identifier)
}
