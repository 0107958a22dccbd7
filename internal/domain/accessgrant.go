package domain

import "time"

const (
	// AccessGrantTTL bounds the whole handshake.
	AccessGrantTTL = 15 * time.Minute

	// AccessGrantMaxAttempts caps failed code entries before the
	// record is discarded.
	AccessGrantMaxAttempts = 3
)

// AccessGrantRequest is the ephemeral pairing record. It lives only in
// process memory: a restart silently discards pending requests.
//
// Lifecycle: created unapproved, the owner's approval assigns the
// one-time code, and a successful verify (or rejection, expiry, or
// exhausted attempts) removes the record.
type AccessGrantRequest struct {
	ID         string
	OwnerID    string
	AccountID  string
	DeviceInfo string
	Code       string
	Approved   bool
	Attempts   int
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

// Expired reports whether the record is past its TTL at now.
func (r *AccessGrantRequest) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}
