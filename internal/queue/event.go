// Package queue defines message payloads exchanged over the message broker.
package queue

// StatusChangedEvent is published whenever an application's lifecycle
// or admin status is updated through the API.  It carries enough
// context for downstream consumers (notifications, audit, analytics)
// to act without querying the primary database.
type StatusChangedEvent struct {
	ApplicationID string `json:"application_id"`
	Sub           string `json:"sub"`
	FullName      string `json:"full_name"`
	Status        string `json:"status"`
	AdminStatus   string `json:"admin_status"`
	ChangedAt     string `json:"changed_at"`
}
