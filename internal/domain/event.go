package domain

import "time"

// EventType enumerates the kinds of scheduled org events.
type EventType string

const (
	EventTypeMission  EventType = "MISSION"
	EventTypeTraining EventType = "TRAINING"
	EventTypeSocial   EventType = "SOCIAL"
	EventTypeMeeting  EventType = "MEETING"
	EventTypeOther    EventType = "OTHER"
)

// AttendeeStatus enumerates RSVP states.
type AttendeeStatus string

const (
	AttendeeStatusAttending AttendeeStatus = "ATTENDING"
	AttendeeStatusMaybe     AttendeeStatus = "MAYBE"
	AttendeeStatusDeclined  AttendeeStatus = "DECLINED"
)

// Attendee is an embedded RSVP record on an event.
type Attendee struct {
	UserID string         `json:"user_id"`
	Status AttendeeStatus `json:"status"`
}

// Event is a scheduled org activity. Title plus start time form the natural
// key used when matching external records.
type Event struct {
	ID                string
	Title             string
	Description       string
	Type              EventType
	Location          string
	StartTime         time.Time
	EndTime           *time.Time
	Recurring         bool
	RecurrencePattern string
	OrganizerID       string
	Attendees         []Attendee
	Capacity          int // 0 = unlimited
	Private           bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ParseEventType maps a free-form string onto an EventType, defaulting to OTHER.
func ParseEventType(s string) EventType {
	switch EventType(normalizeEnum(s)) {
	case EventTypeMission:
		return EventTypeMission
	case EventTypeTraining:
		return EventTypeTraining
	case EventTypeSocial:
		return EventTypeSocial
	case EventTypeMeeting:
		return EventTypeMeeting
	default:
		return EventTypeOther
	}
}
