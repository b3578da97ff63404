package domain

import "time"

// DayOff marks an employee as unavailable for the whole calendar day.
// At most one record may exist per (employee, day).
type DayOff struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employeeID"`
	Day        time.Time `json:"day"`
}
