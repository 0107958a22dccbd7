package domain

import "time"

// Notification is a persisted in-app feed item. Creation is
// best-effort: failures are logged, never surfaced to the mutation
// that triggered them.
type Notification struct {
	ID        string
	UserID    string
	Type      string
	Title     string
	Message   string
	Icon      string
	Meta      map[string]any
	IsRead    bool
	CreatedAt time.Time
}
