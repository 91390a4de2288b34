// Package session holds the single active identity of a running
// front-end process. It is a value owned by the app, not a package
// global, so the identity is always passed explicitly to services.
package session

import "todokeeper/internal/models"

// Session is a single mutable identity slot. The process model is one
// interactive user at a time, so no locking is applied.
type Session struct {
	current *models.Identity
}

func New() *Session {
	return &Session{}
}

// Set stores the identity snapshot; nil clears the session.
func (s *Session) Set(identity *models.Identity) {
	s.current = identity
}

// Get returns the active identity or nil when logged out.
func (s *Session) Get() *models.Identity {
	return s.current
}

// Clear is equivalent to Set(nil).
func (s *Session) Clear() {
	s.current = nil
}

// Active reports whether someone is logged in.
func (s *Session) Active() bool {
	return s.current != nil
}
