package domain

import "time"

// List of notification recipient models
const (
	RecipientUser   = "User"
	RecipientSeller = "Seller"
	RecipientAdmin  = "Admin"
)

// Notification is a user-facing notification record. Creation is always
// best-effort: a failed write is logged and dropped, never retried.
type Notification struct {
	ID        string
	UserID    string
	UserModel string
	Type      string
	Title     string
	Message   string
	Metadata  map[string]string
	CreatedAt time.Time
}
