// Package scheduler fills the empty roster slots of a month with a
// deterministic greedy pass: slots are visited day by day, site by
// site, shift type in the fixed D, N, 24 order, and each one gets the
// best-ranked free, eligible employee. Slots nobody can take stay
// empty; the pass itself never fails on a per-slot problem.
package scheduler

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/grafiki-ochrony/guard-roster/backend/internal/domain"
)

type Scheduler struct {
	ledger    Ledger
	employees []*domain.Employee
	sites     []*domain.Site
	year      int
	month     int
	occupied  map[SlotKey]bool
	hours     map[int64]int // running month-to-date tally
}

// New prepares a fill pass over the given month. sites keeps the order
// it was passed in; snapshot is the current occupancy of the month.
// The month-to-date hour totals are precomputed from the ledger so the
// pass can balance load without re-querying per slot.
func New(ledger Ledger, employees []*domain.Employee, sites []*domain.Site, year, month int, snapshot []*domain.MonthSlot) (*Scheduler, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month %d is out of range", month)
	}

	s := &Scheduler{
		ledger:    ledger,
		employees: employees,
		sites:     sites,
		year:      year,
		month:     month,
		occupied:  make(map[SlotKey]bool),
		hours:     make(map[int64]int),
	}

	for _, slot := range snapshot {
		s.occupied[SlotKey{SiteID: slot.SiteID, Day: slot.Day, Type: slot.Type}] = true
	}

	start, end := monthBounds(year, month)
	for _, employee := range employees {
		hours, err := ledger.EmployeeHoursInRange(employee.ID, start, end)
		if err != nil {
			return nil, err
		}
		s.hours[employee.ID] = hours
	}

	return s, nil
}

// Fill walks every empty slot of the month once and returns how many
// it managed to assign. Per-slot conflicts, preference mismatches and
// lost slot races only skip forward; an infrastructure error from the
// ledger aborts the pass.
func (s *Scheduler) Fill() (int, error) {
	filled := 0
	start, end := monthBounds(s.year, s.month)

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		for _, site := range s.sites {
			for _, shiftType := range domain.FillOrder {
				key := SlotKey{SiteID: site.ID, Day: day.Format("2006-01-02"), Type: shiftType}
				if s.occupied[key] {
					continue
				}

				candidates := s.rankCandidates(shiftType)

				for _, employee := range candidates {
					free, err := s.ledger.CheckEmployeeFree(employee.ID, day)
					if err != nil {
						return filled, err
					}
					if !free.Free {
						continue
					}

					shift := &domain.Shift{
						SiteID:     site.ID,
						Day:        day,
						Type:       shiftType,
						EmployeeID: employee.ID,
					}

					if err := s.ledger.AssignShift(shift); err != nil {
						if errors.Is(err, domain.ErrSlotTaken) {
							// a concurrent writer got here first
							s.occupied[key] = true
							break
						}
						if isRecoverable(err) {
							continue
						}
						return filled, err
					}

					s.hours[employee.ID] += shiftType.Hours()
					s.occupied[key] = true
					filled++
					break
				}
			}
		}
	}

	return filled, nil
}

// rankCandidates returns the employees eligible for the shift type,
// employment-contract holders first, then by fewest running hours;
// ties break on id so the pass is deterministic.
func (s *Scheduler) rankCandidates(shiftType domain.ShiftType) []*domain.Employee {
	candidates := make([]*domain.Employee, 0, len(s.employees))
	for _, employee := range s.employees {
		if employee.Preference.Allows(shiftType) {
			candidates = append(candidates, employee)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		ri, rj := contractRank(candidates[i].ContractType), contractRank(candidates[j].ContractType)
		if ri != rj {
			return ri < rj
		}
		hi, hj := s.hours[candidates[i].ID], s.hours[candidates[j].ID]
		if hi != hj {
			return hi < hj
		}
		return candidates[i].ID < candidates[j].ID
	})

	return candidates
}

func isRecoverable(err error) bool {
	var conflict *domain.ConflictError
	var mismatch *domain.PreferenceMismatchError
	return errors.As(err, &conflict) || errors.As(err, &mismatch)
}

func monthBounds(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}
