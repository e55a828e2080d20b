// Package verification implements the email verification ledger used to gate
// registration: short-lived 6-digit codes keyed by email, stored in an
// injected expiring store and delivered by an email collaborator.
package verification

import "context"

// CodeStore is an expiring key-value store for pending verification codes.
// At most one live code exists per email; Put overwrites any prior entry and
// restarts its TTL. Implementations own expiry: Get must never return an
// entry older than the configured TTL.
type CodeStore interface {
	// Put stores code under email, replacing any pending code.
	Put(ctx context.Context, email, code string) error

	// Get returns the pending code for email, or ok=false if none exists
	// or the entry has expired.
	Get(ctx context.Context, email string) (code string, ok bool, err error)

	// Delete removes the pending code for email, if any.
	Delete(ctx context.Context, email string) error
}
