package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/grafiki-ochrony/guard-roster/backend/internal/domain"
)

// CheckEmployeeFree decides whether the employee may take a new shift
// on the given day: a day off blocks everything, otherwise a shift held
// at any site that day blocks too.
func (r *Repository) CheckEmployeeFree(employeeID int64, day time.Time) (*domain.FreeResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT EXISTS (SELECT 1 FROM days_off WHERE employee_id = $1 AND day = $2)
	`

	var hasDayOff bool
	if err := r.dbpool.QueryRowContext(ctx, query, employeeID, day).Scan(&hasDayOff); err != nil {
		return nil, err
	}
	if hasDayOff {
		return &domain.FreeResult{Free: false, Reason: domain.FreeReasonDayOff}, nil
	}

	query = `
		SELECT s.name
		FROM shifts sh
		JOIN sites s ON s.id = sh.site_id
		WHERE sh.employee_id = $1 AND sh.day = $2
		LIMIT 1
	`

	var siteName string
	err := r.dbpool.QueryRowContext(ctx, query, employeeID, day).Scan(&siteName)
	switch {
	case err == nil:
		return &domain.FreeResult{Free: false, Reason: domain.FreeReasonAlreadyAssigned, SiteName: siteName}, nil
	case errors.Is(err, sql.ErrNoRows):
		return &domain.FreeResult{Free: true}, nil
	default:
		return nil, err
	}
}

// AssignShift fills one (site, day, shift type) slot with the employee.
// The free-time check, the preference check and the insert run in a
// single transaction; the employee row is locked first, so two
// concurrent assignments for the same employee cannot both pass the
// same-day check. A lost race on the slot itself surfaces as
// domain.ErrSlotTaken from the uniqueness constraint.
func (r *Repository) AssignShift(shift *domain.Shift) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		SELECT preference FROM employees WHERE id = $1 FOR UPDATE
	`

	var preference domain.Preference
	if err := tx.QueryRowContext(ctx, query, shift.EmployeeID).Scan(&preference); err != nil {
		return err
	}

	query = `
		SELECT EXISTS (SELECT 1 FROM days_off WHERE employee_id = $1 AND day = $2)
	`

	var hasDayOff bool
	if err := tx.QueryRowContext(ctx, query, shift.EmployeeID, shift.Day).Scan(&hasDayOff); err != nil {
		return err
	}
	if hasDayOff {
		return &domain.ConflictError{Reason: domain.FreeReasonDayOff}
	}

	query = `
		SELECT s.name
		FROM shifts sh
		JOIN sites s ON s.id = sh.site_id
		WHERE sh.employee_id = $1 AND sh.day = $2
		LIMIT 1
	`

	var busySite string
	err = tx.QueryRowContext(ctx, query, shift.EmployeeID, shift.Day).Scan(&busySite)
	switch {
	case err == nil:
		return &domain.ConflictError{Reason: domain.FreeReasonAlreadyAssigned, SiteName: busySite}
	case errors.Is(err, sql.ErrNoRows):
		// free that day
	default:
		return err
	}

	if !preference.Allows(shift.Type) {
		return &domain.PreferenceMismatchError{Preference: preference}
	}

	query = `
		INSERT INTO shifts (site_id, day, shift_type, employee_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	args := []any{shift.SiteID, shift.Day, shift.Type, shift.EmployeeID}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&shift.ID, &shift.CreatedAt); err != nil {
		return mapShiftInsertError(err)
	}

	return tx.Commit()
}

// mapShiftInsertError translates a slot-uniqueness violation into
// domain.ErrSlotTaken; everything else passes through unchanged.
func mapShiftInsertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName == "shifts_site_id_day_shift_type_key" {
		return domain.ErrSlotTaken
	}
	return err
}

// RemoveShift clears the slot. Removing an empty slot is a no-op.
func (r *Repository) RemoveShift(siteID int64, day time.Time, shiftType domain.ShiftType) error {
	query := `
		DELETE FROM shifts WHERE site_id = $1 AND day = $2 AND shift_type = $3
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, siteID, day, shiftType); err != nil {
		return err
	}

	return nil
}

// ShiftsForMonth returns the occupied slots of the month with employee
// names, for rendering. The snapshot is not refreshed against writers
// that commit after the call returns.
func (r *Repository) ShiftsForMonth(year, month int) ([]*domain.MonthSlot, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	query := `
		SELECT sh.site_id, sh.day, sh.shift_type, sh.employee_id, e.first_name, e.last_name
		FROM shifts sh
		JOIN employees e ON e.id = sh.employee_id
		WHERE sh.day >= $1 AND sh.day < $2
		ORDER BY sh.day, sh.site_id, sh.shift_type
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]*domain.MonthSlot, 0)
	for rows.Next() {
		var day time.Time
		var firstName, lastName string
		slot := &domain.MonthSlot{}
		dst := []any{&slot.SiteID, &day, &slot.Type, &slot.EmployeeID, &firstName, &lastName}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		slot.Day = day.Format("2006-01-02")
		slot.EmployeeName = firstName + " " + lastName
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return slots, nil
}

// EmployeeHoursInRange sums the hour value of every shift the employee
// holds with day in [start, end] inclusive.
func (r *Repository) EmployeeHoursInRange(employeeID int64, start, end time.Time) (int, error) {
	query := `
		SELECT shift_type FROM shifts WHERE employee_id = $1 AND day >= $2 AND day <= $3
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, employeeID, start, end)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	hours := 0
	for rows.Next() {
		var shiftType domain.ShiftType
		if err := rows.Scan(&shiftType); err != nil {
			return 0, err
		}
		hours += shiftType.Hours()
	}

	if err := rows.Err(); err != nil {
		return 0, err
	}

	return hours, nil
}

// HoursByEmployeeInRange aggregates hours for all employees at once,
// for the monthly report.
func (r *Repository) HoursByEmployeeInRange(start, end time.Time) (map[int64]int, error) {
	query := `
		SELECT employee_id, shift_type, COUNT(*)
		FROM shifts
		WHERE day >= $1 AND day <= $2
		GROUP BY employee_id, shift_type
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hours := make(map[int64]int)
	for rows.Next() {
		var employeeID int64
		var shiftType domain.ShiftType
		var count int
		if err := rows.Scan(&employeeID, &shiftType, &count); err != nil {
			return nil, err
		}
		hours[employeeID] += shiftType.Hours() * count
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return hours, nil
}
