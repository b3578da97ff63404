package scheduler

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grafiki-ochrony/guard-roster/backend/internal/domain"
)

// fakeLedger implements Ledger in memory with the same semantics as the
// database-backed repository.
type fakeLedger struct {
	employees map[int64]*domain.Employee
	siteNames map[int64]string
	daysOff   map[int64]map[string]bool
	taken     map[SlotKey]bool
	shifts    []*domain.Shift
}

func newFakeLedger(employees []*domain.Employee, sites []*domain.Site) *fakeLedger {
	l := &fakeLedger{
		employees: make(map[int64]*domain.Employee),
		siteNames: make(map[int64]string),
		daysOff:   make(map[int64]map[string]bool),
		taken:     make(map[SlotKey]bool),
	}
	for _, e := range employees {
		l.employees[e.ID] = e
	}
	for _, s := range sites {
		l.siteNames[s.ID] = s.Name
	}
	return l
}

func (l *fakeLedger) addDayOff(employeeID int64, day time.Time) {
	if l.daysOff[employeeID] == nil {
		l.daysOff[employeeID] = make(map[string]bool)
	}
	l.daysOff[employeeID][day.Format("2006-01-02")] = true
}

func (l *fakeLedger) EmployeeHoursInRange(employeeID int64, start, end time.Time) (int, error) {
	total := 0
	for _, s := range l.shifts {
		if s.EmployeeID == employeeID && !s.Day.Before(start) && !s.Day.After(end) {
			total += s.Type.Hours()
		}
	}
	return total, nil
}

func (l *fakeLedger) CheckEmployeeFree(employeeID int64, day time.Time) (*domain.FreeResult, error) {
	if l.daysOff[employeeID][day.Format("2006-01-02")] {
		return &domain.FreeResult{Free: false, Reason: domain.FreeReasonDayOff}, nil
	}
	for _, s := range l.shifts {
		if s.EmployeeID == employeeID && s.Day.Equal(day) {
			return &domain.FreeResult{
				Free:     false,
				Reason:   domain.FreeReasonAlreadyAssigned,
				SiteName: l.siteNames[s.SiteID],
			}, nil
		}
	}
	return &domain.FreeResult{Free: true}, nil
}

func (l *fakeLedger) AssignShift(shift *domain.Shift) error {
	key := SlotKey{SiteID: shift.SiteID, Day: shift.Day.Format("2006-01-02"), Type: shift.Type}
	if l.taken[key] {
		return domain.ErrSlotTaken
	}

	free, err := l.CheckEmployeeFree(shift.EmployeeID, shift.Day)
	if err != nil {
		return err
	}
	if !free.Free {
		return &domain.ConflictError{Reason: free.Reason, SiteName: free.SiteName}
	}

	employee := l.employees[shift.EmployeeID]
	if !employee.Preference.Allows(shift.Type) {
		return &domain.PreferenceMismatchError{Preference: employee.Preference}
	}

	l.taken[key] = true
	l.shifts = append(l.shifts, shift)
	return nil
}

func employee(id int64, contract domain.ContractType, preference domain.Preference) *domain.Employee {
	return &domain.Employee{
		ID:           id,
		FirstName:    "Employee",
		LastName:     fmt.Sprintf("%d", id),
		ContractType: contract,
		Preference:   preference,
	}
}

func TestFillTwoGuardsOneSite(t *testing.T) {
	// January 2025: a day-only UOP guard and a night-only UZ guard can
	// cover the D and N slots every day, the 24h slots stay empty.
	anna := employee(1, domain.ContractEmployment, domain.PreferenceOnlyDay)
	bartek := employee(2, domain.ContractCivil, domain.PreferenceOnlyNight)
	employees := []*domain.Employee{anna, bartek}
	sites := []*domain.Site{{ID: 1, Name: "Magazyn"}}

	ledger := newFakeLedger(employees, sites)
	s, err := New(ledger, employees, sites, 2025, 1, nil)
	require.NoError(t, err)

	filled, err := s.Fill()
	require.NoError(t, err)
	assert.Equal(t, 62, filled)

	hours := map[int64]int{}
	for _, shift := range ledger.shifts {
		hours[shift.EmployeeID] += shift.Type.Hours()
		switch shift.EmployeeID {
		case anna.ID:
			assert.Equal(t, domain.ShiftDay, shift.Type)
		case bartek.ID:
			assert.Equal(t, domain.ShiftNight, shift.Type)
		}
		assert.NotEqual(t, domain.ShiftTwentyFourHour, shift.Type)
	}

	assert.Equal(t, 31*12, hours[anna.ID])
	assert.Equal(t, 31*12, hours[bartek.ID])
}

func TestFillTwoGuardsSharedEligibility(t *testing.T) {
	// January 2025 again, but both guards take any shift type, so the
	// contract rank and the running hour tally decide every slot. Of
	// the 93 slots considered, the daily 24h one stays empty because
	// both guards are already working by then.
	anna := employee(1, domain.ContractEmployment, domain.PreferenceNone)
	bartek := employee(2, domain.ContractCivil, domain.PreferenceNone)
	employees := []*domain.Employee{anna, bartek}
	sites := []*domain.Site{{ID: 1, Name: "Magazyn"}}

	ledger := newFakeLedger(employees, sites)
	s, err := New(ledger, employees, sites, 2025, 1, nil)
	require.NoError(t, err)

	filled, err := s.Fill()
	require.NoError(t, err)
	assert.Equal(t, 62, filled)

	// replay the assignments in fill order: the load never drifts
	// apart by more than one 24h shift at any point of the pass
	hours := map[int64]int{}
	for _, shift := range ledger.shifts {
		hours[shift.EmployeeID] += shift.Type.Hours()
		diff := hours[anna.ID] - hours[bartek.ID]
		if diff < 0 {
			diff = -diff
		}
		assert.LessOrEqual(t, diff, 24)
		assert.Zero(t, hours[shift.EmployeeID]%12)
	}

	assert.Equal(t, 31*12, hours[anna.ID])
	assert.Equal(t, 31*12, hours[bartek.ID])
}

func TestFillNeverAssignsIneligible(t *testing.T) {
	employees := []*domain.Employee{
		employee(1, domain.ContractEmployment, domain.PreferenceOnlyDay),
		employee(2, domain.ContractCivil, domain.PreferenceOnly24h),
		employee(3, domain.ContractCivil, domain.PreferenceNone),
	}
	sites := []*domain.Site{{ID: 1, Name: "Biurowiec"}, {ID: 2, Name: "Parking"}}

	ledger := newFakeLedger(employees, sites)
	s, err := New(ledger, employees, sites, 2025, 2, nil)
	require.NoError(t, err)

	_, err = s.Fill()
	require.NoError(t, err)

	for _, shift := range ledger.shifts {
		assert.True(t, ledger.employees[shift.EmployeeID].Preference.Allows(shift.Type),
			"employee %d got shift %s", shift.EmployeeID, shift.Type)
	}
}

func TestFillRespectsDaysOff(t *testing.T) {
	only := employee(1, domain.ContractEmployment, domain.PreferenceNone)
	employees := []*domain.Employee{only}
	sites := []*domain.Site{{ID: 1, Name: "Hala"}}

	ledger := newFakeLedger(employees, sites)
	dayOff := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	ledger.addDayOff(only.ID, dayOff)

	s, err := New(ledger, employees, sites, 2025, 3, nil)
	require.NoError(t, err)

	_, err = s.Fill()
	require.NoError(t, err)

	for _, shift := range ledger.shifts {
		assert.False(t, shift.Day.Equal(dayOff), "assigned on a day off")
	}
}

func TestFillDailyExclusivity(t *testing.T) {
	employees := []*domain.Employee{
		employee(1, domain.ContractEmployment, domain.PreferenceNone),
		employee(2, domain.ContractCivil, domain.PreferenceNone),
	}
	sites := []*domain.Site{{ID: 1, Name: "Osiedle"}, {ID: 2, Name: "Galeria"}}

	ledger := newFakeLedger(employees, sites)
	s, err := New(ledger, employees, sites, 2025, 4, nil)
	require.NoError(t, err)

	_, err = s.Fill()
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, shift := range ledger.shifts {
		key := fmt.Sprintf("%d/%s", shift.EmployeeID, shift.Day.Format("2006-01-02"))
		assert.False(t, seen[key], "employee %d works twice on %s", shift.EmployeeID, shift.Day)
		seen[key] = true
	}
}

func TestFillSkipsOccupiedSlots(t *testing.T) {
	guard := employee(1, domain.ContractEmployment, domain.PreferenceOnlyDay)
	other := employee(2, domain.ContractCivil, domain.PreferenceOnlyDay)
	employees := []*domain.Employee{guard}
	sites := []*domain.Site{{ID: 1, Name: "Magazyn"}}

	// the D slot on May 1st is already held by someone outside the pass
	ledger := newFakeLedger([]*domain.Employee{guard, other}, sites)
	require.NoError(t, ledger.AssignShift(&domain.Shift{
		SiteID:     1,
		Day:        time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
		Type:       domain.ShiftDay,
		EmployeeID: other.ID,
	}))

	snapshot := []*domain.MonthSlot{
		{SiteID: 1, Day: "2025-05-01", Type: domain.ShiftDay, EmployeeID: other.ID},
	}

	s, err := New(ledger, employees, sites, 2025, 5, snapshot)
	require.NoError(t, err)

	filled, err := s.Fill()
	require.NoError(t, err)
	assert.Equal(t, 30, filled) // 31 D slots minus the occupied one

	for _, shift := range ledger.shifts {
		if shift.EmployeeID == guard.ID {
			assert.False(t, shift.Day.Equal(time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)))
		}
	}
}

func TestFillSurvivesLostSlotRace(t *testing.T) {
	// the slot is taken in the ledger but missing from the snapshot, as
	// when a concurrent writer lands between snapshot and fill
	guard := employee(1, domain.ContractEmployment, domain.PreferenceOnlyDay)
	rival := employee(2, domain.ContractCivil, domain.PreferenceOnlyDay)
	employees := []*domain.Employee{guard}
	sites := []*domain.Site{{ID: 1, Name: "Magazyn"}}

	ledger := newFakeLedger([]*domain.Employee{guard, rival}, sites)
	require.NoError(t, ledger.AssignShift(&domain.Shift{
		SiteID:     1,
		Day:        time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		Type:       domain.ShiftDay,
		EmployeeID: rival.ID,
	}))

	s, err := New(ledger, employees, sites, 2025, 6, nil)
	require.NoError(t, err)

	filled, err := s.Fill()
	require.NoError(t, err)
	assert.Equal(t, 29, filled) // 30 D slots minus the lost one
}

func TestFillBalancesHours(t *testing.T) {
	// four guards for three daily slots, so the least-loaded guard
	// always catches up the next day
	employees := []*domain.Employee{
		employee(1, domain.ContractCivil, domain.PreferenceNone),
		employee(2, domain.ContractCivil, domain.PreferenceNone),
		employee(3, domain.ContractCivil, domain.PreferenceNone),
		employee(4, domain.ContractCivil, domain.PreferenceNone),
	}
	sites := []*domain.Site{{ID: 1, Name: "Magazyn"}}

	ledger := newFakeLedger(employees, sites)
	s, err := New(ledger, employees, sites, 2025, 7, nil)
	require.NoError(t, err)

	filled, err := s.Fill()
	require.NoError(t, err)
	assert.Equal(t, 31*3, filled)

	hours := map[int64]int{}
	for _, shift := range ledger.shifts {
		hours[shift.EmployeeID] += shift.Type.Hours()
	}

	minHours, maxHours := -1, 0
	for _, e := range employees {
		h := hours[e.ID]
		assert.Zero(t, h%12, "hours are whole shift multiples")
		if minHours == -1 || h < minHours {
			minHours = h
		}
		if h > maxHours {
			maxHours = h
		}
	}

	// greedy pick of the least-loaded guard keeps the spread within one
	// 24h shift
	assert.LessOrEqual(t, maxHours-minHours, 24)
}

func TestRankCandidatesPrefersEmploymentContract(t *testing.T) {
	uz := employee(1, domain.ContractCivil, domain.PreferenceNone)
	uop := employee(2, domain.ContractEmployment, domain.PreferenceNone)
	employees := []*domain.Employee{uz, uop}
	sites := []*domain.Site{{ID: 1, Name: "Magazyn"}}

	ledger := newFakeLedger(employees, sites)
	s, err := New(ledger, employees, sites, 2025, 8, nil)
	require.NoError(t, err)

	// UOP outranks UZ even with more accumulated hours
	s.hours[uop.ID] = 48
	s.hours[uz.ID] = 0

	candidates := s.rankCandidates(domain.ShiftDay)
	require.Len(t, candidates, 2)
	assert.Equal(t, uop.ID, candidates[0].ID)
}

func TestRankCandidatesFiltersByPreference(t *testing.T) {
	employees := []*domain.Employee{
		employee(1, domain.ContractEmployment, domain.PreferenceOnlyNight),
		employee(2, domain.ContractCivil, domain.PreferenceNone),
	}
	sites := []*domain.Site{{ID: 1, Name: "Magazyn"}}

	ledger := newFakeLedger(employees, sites)
	s, err := New(ledger, employees, sites, 2025, 9, nil)
	require.NoError(t, err)

	candidates := s.rankCandidates(domain.ShiftDay)
	require.Len(t, candidates, 1)
	assert.Equal(t, int64(2), candidates[0].ID)
}

func TestNewRejectsInvalidMonth(t *testing.T) {
	ledger := newFakeLedger(nil, nil)

	_, err := New(ledger, nil, nil, 2025, 0, nil)
	assert.Error(t, err)

	_, err = New(ledger, nil, nil, 2025, 13, nil)
	assert.Error(t, err)
}
