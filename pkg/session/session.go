// Package session holds the client-local authentication state: the bearer
// token, the username it was issued for, and the role set. The store is an
// explicit dependency of the API client rather than ambient global state, so
// tests and embedders can run several independent sessions side by side.
package session

import "sync"

// Session is the immutable snapshot of one authenticated login.
type Session struct {
	Token    string
	Username string
	Roles    []string
}

// Store guards a Session for concurrent readers. Many in-flight requests
// read the token while only login/logout/401 handling ever write.
type Store struct {
	mu      sync.RWMutex
	current Session
}

// NewStore creates an empty, unauthenticated store.
func NewStore() *Store {
	return &Store{}
}

// Set replaces the current session. Called on successful login.
func (s *Store) Set(sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = sess
}

// Current returns a copy of the stored session.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess := s.current
	sess.Roles = append([]string(nil), s.current.Roles...)
	return sess
}

// Token returns the bearer token, or "" when unauthenticated.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token
}

// Username returns the logged-in username, or "" when unauthenticated.
func (s *Store) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Username
}

// IsAuthenticated reports whether a token is present.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// HasRole reports whether the session carries the given role.
func (s *Store) HasRole(role string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.current.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Clear drops all session state. Called on logout and on a 401 response.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = Session{}
}
