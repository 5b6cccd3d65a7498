package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSyncCompleted EventType = "sync_completed"
	EventSyncFailed    EventType = "sync_failed"
)

// Event represents an application event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Domain    string      `json:"domain"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SyncCompletedPayload describes the outcome of a reconciliation pass.
type SyncCompletedPayload struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// SyncFailedPayload carries the failure message of a reconciliation pass.
type SyncFailedPayload struct {
	Message string `json:"message"`
}
