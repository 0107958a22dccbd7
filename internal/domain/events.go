package domain

// Realtime event names pushed to connected clients.
const (
	EventAccountsUpdated     = "accounts:updated"
	EventTransactionsUpdated = "transactions:updated"
	EventDashboardUpdated    = "dashboard:updated"
	EventCategoriesUpdated   = "categories:updated"
	EventAccessRequest       = "access:request"
	EventAccessCode          = "access:code"
	EventNotification        = "notification:new"
)

// AccessRequestEvent tells the owner's devices a pairing was requested.
type AccessRequestEvent struct {
	RequestID   string `json:"request_id"`
	OwnerID     string `json:"owner_id"`
	AccountID   string `json:"account_id,omitempty"`
	AccountName string `json:"account_name"`
	DeviceInfo  string `json:"device_info,omitempty"`
	ExpiresAt   string `json:"expires_at"`
}

// AccessCodeEvent carries the one-time code to the owner's devices
// after approval.
type AccessCodeEvent struct {
	RequestID string `json:"request_id"`
	OwnerID   string `json:"owner_id"`
	Code      string `json:"code"`
	ExpiresAt string `json:"expires_at"`
}
