// Package session holds server-side session state keyed by an opaque token.
// The token travels in a cookie; everything else stays in the store.
package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a token does not correspond to a live session.
var ErrNotFound = errors.New("session not found")

// Data is the state held for one session. Email is empty for anonymous
// visitors who only carry flash messages.
type Data struct {
	Email   string   `json:"email"`
	Flashes []string `json:"flashes,omitempty"`
}

// Store persists sessions. All mutations are keyed by the opaque token
// returned from Create.
type Store interface {
	// Create registers a new empty session and returns its token.
	Create(ctx context.Context) (string, error)
	// Get returns the session state for token, or ErrNotFound.
	Get(ctx context.Context, token string) (*Data, error)
	// SetIdentity marks the session as belonging to the user with this email.
	SetIdentity(ctx context.Context, token, email string) error
	// ClearIdentity resets the session to anonymous, keeping it alive.
	ClearIdentity(ctx context.Context, token string) error
	// AddFlash appends a one-shot message to the session.
	AddFlash(ctx context.Context, token, message string) error
	// PopFlashes returns the pending messages and removes them.
	PopFlashes(ctx context.Context, token string) ([]string, error)
	// Delete removes the session entirely.
	Delete(ctx context.Context, token string) error
}
