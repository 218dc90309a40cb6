// Package session carries the logged-in operator's identity as an
// explicit capability instead of ambient global state: Login populates
// it, Logout clears it, and pages receive it by injection.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// Roles known to the console. Overviewer is read-only: task detail
// access without mutation rights.
const (
	RoleAdmin      = "admin"
	RoleHOD        = "hod"
	RoleOverviewer = "overviewer"
	RoleEmployee   = "employee"
)

var ErrNotLoggedIn = errors.New("session: not logged in")

// Claims is the backend-issued token payload the console cares about.
type Claims struct {
	jwt.RegisteredClaims
	UserID       string `json:"uid"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	DepartmentID string `json:"dept"`
}

// Session is the current operator's identity snapshot.
type Session struct {
	Token        string
	UserID       string
	Name         string
	Email        string
	Role         string
	DepartmentID string
	ExpiresAt    time.Time
}

func (s *Session) IsAdmin() bool      { return s.Role == RoleAdmin }
func (s *Session) IsOverviewer() bool { return s.Role == RoleOverviewer }

// TokenSource adapts the session for the gateway's HTTP client.
func (s *Session) TokenSource() oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: s.Token})
}

// Store holds at most one active session.
type Store struct {
	mu  sync.Mutex
	cur *Session
}

func NewStore() *Store {
	return &Store{}
}

// Login reads identity claims out of a backend-issued bearer token and
// installs the session. The signature is NOT verified here: the console
// never holds the backend's signing secret, and the claims are used only
// for display and navigation — enforcement stays server-side, where a
// tampered token simply gets a 403.
func (s *Store) Login(token string) (*Session, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("session.Login: %w", err)
	}

	sess := &Session{
		Token:        token,
		UserID:       claims.UserID,
		Name:         claims.Name,
		Email:        claims.Email,
		Role:         claims.Role,
		DepartmentID: claims.DepartmentID,
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}

	s.mu.Lock()
	s.cur = sess
	s.mu.Unlock()

	return sess, nil
}

// Current returns the active session, or ErrNotLoggedIn.
func (s *Store) Current() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cur == nil {
		return nil, ErrNotLoggedIn
	}
	return s.cur, nil
}

// Logout clears the session.
func (s *Store) Logout() {
	s.mu.Lock()
	s.cur = nil
	s.mu.Unlock()
}
