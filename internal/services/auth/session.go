package auth

import (
	"sync"

	"secretariat/internal/domain"
	"secretariat/internal/errors"
)

// Session holds the provider client for the run. The first Auth call binds
// it; later calls are ignored whatever token they carry.
type Session struct {
	factory domain.RepositoryClientFactory

	once   sync.Once
	mu     sync.RWMutex
	token  string
	client domain.RepositoryCreator
}

// NewSession creates an unbound session.
func NewSession(factory domain.RepositoryClientFactory) *Session {
	return &Session{factory: factory}
}

// Auth binds the session to token.
func (s *Session) Auth(token string) {
	s.once.Do(func() {
		client := s.factory(token)

		s.mu.Lock()
		defer s.mu.Unlock()
		s.token = token
		s.client = client
	})
}

// Client returns the bound client.
func (s *Session) Client() (domain.RepositoryCreator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.client == nil {
		return nil, errors.NewAuthorizationError("use the GitHub client before authenticating", nil)
	}
	return s.client, nil
}

// Token returns the bound token, or "" before Auth.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}
