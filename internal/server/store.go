package server

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/goliatone/go-regform/pkg/orchestrator"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("server: session not found")

// Session is one page session. The form is not safe for concurrent use, so
// every access goes through Do.
type Session struct {
	ID      string
	Created time.Time

	mu           sync.Mutex
	form         *orchestrator.Form
	registration *orchestrator.Registration
}

// Do runs fn with exclusive access to the form.
func (s *Session) Do(fn func(form *orchestrator.Form) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.form)
}

// Registration returns the record of the last successful submit while the
// success modal is open.
func (s *Session) Registration() *orchestrator.Registration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registration
}

// Store keeps sessions in memory with sliding expiry.
type Store struct {
	cache   *gocache.Cache
	ttl     time.Duration
	newForm func() *orchestrator.Form
	now     func() time.Time
}

// NewStore creates a store. onEvicted runs for every session removed by
// expiry or Delete.
func NewStore(ttl, cleanupInterval time.Duration, newForm func() *orchestrator.Form, onEvicted func(id string)) *Store {
	if newForm == nil {
		newForm = func() *orchestrator.Form { return orchestrator.New() }
	}
	cache := gocache.New(ttl, cleanupInterval)
	if onEvicted != nil {
		cache.OnEvicted(func(key string, _ any) { onEvicted(key) })
	}
	return &Store{cache: cache, ttl: ttl, newForm: newForm, now: time.Now}
}

// Create starts a fresh form under a new id.
func (s *Store) Create() *Session {
	session := &Session{
		ID:      uuid.NewString(),
		Created: s.now().UTC(),
		form:    s.newForm(),
	}
	s.cache.Set(session.ID, session, s.ttl)
	return session
}

// Get returns the session and extends its lifetime.
func (s *Store) Get(id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSessionNotFound
	}
	value, ok := s.cache.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	session, ok := value.(*Session)
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.cache.Set(id, session, s.ttl)
	return session, nil
}

// Delete drops a session.
func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}

// Len counts live sessions, including expired ones not yet cleaned up.
func (s *Store) Len() int {
	return s.cache.ItemCount()
}
