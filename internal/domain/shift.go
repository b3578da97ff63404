package domain

import "time"

type ShiftType string

const (
	ShiftDay            ShiftType = "D"  // 12h day duty
	ShiftNight          ShiftType = "N"  // 12h night duty
	ShiftTwentyFourHour ShiftType = "24" // 24h duty
)

// FillOrder is the fixed slot enumeration order used by the auto-fill
// scheduler and by the month view.
var FillOrder = []ShiftType{ShiftDay, ShiftNight, ShiftTwentyFourHour}

func (t ShiftType) Hours() int {
	if t == ShiftTwentyFourHour {
		return 24
	}
	return 12
}

func (t ShiftType) Valid() bool {
	switch t {
	case ShiftDay, ShiftNight, ShiftTwentyFourHour:
		return true
	}
	return false
}

// Shift binds an employee to one (site, day, shift type) slot.
// A slot holds at most one shift.
type Shift struct {
	ID         int64     `json:"id"`
	SiteID     int64     `json:"siteID"`
	Day        time.Time `json:"day"`
	Type       ShiftType `json:"shiftType"`
	EmployeeID int64     `json:"employeeID"`
	CreatedAt  time.Time `json:"createdAt"`
}

// MonthSlot is one occupied slot in the month snapshot, denormalized
// with the employee name for rendering.
type MonthSlot struct {
	SiteID       int64     `json:"siteID"`
	Day          string    `json:"day"` // ISO date
	Type         ShiftType `json:"shiftType"`
	EmployeeID   int64     `json:"employeeID"`
	EmployeeName string    `json:"employeeName"`
}
