package domain

import "time"

const (
	EventShiftAssigned     = "shift_assigned"
	EventShiftRemoved      = "shift_removed"
	EventAutoFillCompleted = "autofill_completed"
)

// RosterEvent is the message published to the roster_events queue and
// consumed by the notifier worker.
type RosterEvent struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

type ShiftEventData struct {
	SiteName     string    `json:"siteName"`
	Day          string    `json:"day"` // ISO date
	ShiftType    ShiftType `json:"shiftType"`
	EmployeeName string    `json:"employeeName,omitempty"`
}

type AutoFillEventData struct {
	Year        int `json:"year"`
	Month       int `json:"month"`
	FilledCount int `json:"filledCount"`
}
