package domain

import "time"

// User is an account owner.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is the authenticated identity attached to a request. A
// shared-access session was obtained through the access-grant handshake
// and is blocked from sensitive operations like password changes.
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	SharedAccess bool      `json:"shared_access"`
	CreatedAt    time.Time `json:"created_at"`
}
