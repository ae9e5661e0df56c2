package auth

// Package auth contains domain-level types for the client-side session.
// It is pure and free of framework/adapter concerns.

import "strings"

// StorageKey is the fixed storage key under which the serialized user is persisted.
const StorageKey = "user"

// Status is the authentication state machine position.
type Status string

const (
	StatusAnonymous     Status = "anonymous"
	StatusAuthenticated Status = "authenticated"
)

// User is the persisted user record. Only the username is known client-side.
type User struct {
	Username string `json:"username"`
}

// Valid reports whether the user carries enough data to count as a session.
func (u User) Valid() bool { return strings.TrimSpace(u.Username) != "" }

// State is the in-memory session. Authentication is derived from User so
// IsAuthenticated() == (User != nil) always holds.
type State struct {
	User *User
}

// IsAuthenticated reports whether a user is present.
func (s State) IsAuthenticated() bool { return s.User != nil }

// Status returns the state machine position for s.
func (s State) Status() Status {
	if s.IsAuthenticated() {
		return StatusAuthenticated
	}
	return StatusAnonymous
}

// Username returns the current username or "" when anonymous.
func (s State) Username() string {
	if s.User == nil {
		return ""
	}
	return s.User.Username
}

// Transition is emitted by the session store on every Login and Logout.
// User is the user after the transition (nil when To is anonymous).
type Transition struct {
	From Status
	To   Status
	User *User
}
