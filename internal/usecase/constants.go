package usecase

import "time"

const (
	// SessionTTL is how long an authenticated session lives in the store.
	SessionTTL = 7 * 24 * time.Hour

	// RecentTransactionLimit caps the dashboard's recent feed.
	RecentTransactionLimit = 10

	// NotificationFeedLimit caps the in-app notification list.
	NotificationFeedLimit = 50
)
