package domain

import "time"

// AuditLog represents one recorded auth or resource event. UserEmail may be
// empty for events with no resolved identity.
type AuditLog struct {
	ID        string
	UserEmail string
	Action    string
	Resource  string
	IP        string
	Metadata  string
	CreatedAt time.Time
}
