// Package session tracks who is acting. Login trusts the username it is
// given; anything stronger belongs here, not in the store.
package session

import (
	"context"

	"github.com/emilythestrangee/reddit-lite/internal/store"
)

// Directory is the part of the store a session needs.
type Directory interface {
	UserExists(ctx context.Context, username string) (bool, error)
}

// Session holds at most one active username.
type Session struct {
	users    Directory
	username string
}

func New(users Directory) *Session {
	return &Session{users: users}
}

// As returns a session already logged in as username, for callers that
// verified the user some other way (e.g. a signed token).
func As(users Directory, username string) *Session {
	return &Session{users: users, username: username}
}

// Login makes username the active user. Unknown users are rejected and
// leave the current user unchanged.
func (s *Session) Login(ctx context.Context, username string) error {
	ok, err := s.users.UserExists(ctx, username)
	if err != nil {
		return err
	}
	if !ok {
		return store.ErrUserNotFound
	}
	s.username = username
	return nil
}

func (s *Session) Logout() {
	s.username = ""
}

// Current returns the active username, if any.
func (s *Session) Current() (string, bool) {
	return s.username, s.username != ""
}
