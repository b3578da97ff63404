package scheduler

import (
	"time"

	"github.com/grafiki-ochrony/guard-roster/backend/internal/domain"
)

// Ledger is the slice of the assignment store the scheduler needs. It
// is satisfied by *repository.Repository and by an in-memory fake in
// tests.
type Ledger interface {
	EmployeeHoursInRange(employeeID int64, start, end time.Time) (int, error)
	CheckEmployeeFree(employeeID int64, day time.Time) (*domain.FreeResult, error)
	AssignShift(shift *domain.Shift) error
}

// SlotKey identifies one (site, day, shift type) slot within a month.
type SlotKey struct {
	SiteID int64
	Day    string // ISO date
	Type   domain.ShiftType
}
