// Package session owns the client's authentication state: the single
// in-process Session, its transitions, and the durable credential that backs
// it. The manager is the sole writer of the credential store.
package session

import "github.com/labjournal/labctl/internal/client/models"

// Status is the authentication state of the client process.
type Status string

const (
	StatusAnonymous      Status = "anonymous"
	StatusAuthenticating Status = "authenticating"
	StatusAuthenticated  Status = "authenticated"
	StatusFailed         Status = "failed"
)

// Snapshot is an immutable copy of the session handed to observers and
// readers. User is non-nil exactly when Status is StatusAuthenticated.
type Snapshot struct {
	User      *models.User
	Status    Status
	LastError string
}

// Authenticated reports whether the snapshot carries a signed-in user.
func (s Snapshot) Authenticated() bool {
	return s.Status == StatusAuthenticated
}

// Options tune manager behavior.
type Options struct {
	// StrictRestore surfaces a failed startup restoration as StatusFailed
	// with a visible message. When false (the default), a missing or invalid
	// stored token silently lands the session in StatusAnonymous.
	StrictRestore bool
}
