package domain

import (
	"errors"
	"fmt"
)

// ErrSlotTaken is returned when an insert loses the race for a
// (site, day, shift type) slot to a concurrent writer.
var ErrSlotTaken = errors.New("shift slot is already taken")

type FreeReason string

const (
	FreeReasonNone            FreeReason = ""
	FreeReasonDayOff          FreeReason = "day_off"
	FreeReasonAlreadyAssigned FreeReason = "already_assigned"
)

// FreeResult is the outcome of the free-time check for one
// (employee, day) pair. SiteName is set only for already_assigned.
type FreeResult struct {
	Free     bool       `json:"free"`
	Reason   FreeReason `json:"reason,omitempty"`
	SiteName string     `json:"siteName,omitempty"`
}

// ConflictError means the employee is not free on the requested day,
// either because of a day off or a shift held at some site.
type ConflictError struct {
	Reason   FreeReason
	SiteName string
}

func (e *ConflictError) Error() string {
	if e.Reason == FreeReasonDayOff {
		return "employee has a day off"
	}
	return fmt.Sprintf("employee already works at site %q", e.SiteName)
}

// PreferenceMismatchError means the employee's stored shift preference
// does not allow the requested shift type.
type PreferenceMismatchError struct {
	Preference Preference
}

func (e *PreferenceMismatchError) Error() string {
	return fmt.Sprintf("shift type is incompatible with preference %s", e.Preference)
}
