package events

import "time"

type CustomFieldDeletedEvent struct {
	EventType        string    `json:"event_type"`
	RequestID        string    `json:"request_id,omitempty"`
	FieldID          string    `json:"field_id"`
	FieldName        string    `json:"field_name"`
	UserID           string    `json:"user_id"`
	EmployeesTouched int       `json:"employees_touched"`
	OccurredAt       time.Time `json:"occurred_at"`
}
