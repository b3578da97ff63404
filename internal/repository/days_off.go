package repository

import (
	"context"
	"time"

	"github.com/grafiki-ochrony/guard-roster/backend/internal/domain"
)

// AddDayOff inserts a day off for the employee. Inserting the same
// (employee, day) pair again is a no-op.
func (r *Repository) AddDayOff(dayOff *domain.DayOff) error {
	query := `
		INSERT INTO days_off (employee_id, day)
		VALUES ($1, $2)
		ON CONFLICT (employee_id, day) DO NOTHING
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, dayOff.EmployeeID, dayOff.Day); err != nil {
		return err
	}

	return nil
}

func (r *Repository) RemoveDayOff(employeeID int64, day time.Time) error {
	query := `
		DELETE FROM days_off WHERE employee_id = $1 AND day = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, employeeID, day); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetDaysOffByEmployee(employeeID int64) ([]*domain.DayOff, error) {
	query := `
		SELECT id, day FROM days_off WHERE employee_id = $1 ORDER BY day
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	daysOff := make([]*domain.DayOff, 0)
	for rows.Next() {
		dayOff := &domain.DayOff{
			EmployeeID: employeeID,
		}
		if err := rows.Scan(&dayOff.ID, &dayOff.Day); err != nil {
			return nil, err
		}
		daysOff = append(daysOff, dayOff)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return daysOff, nil
}
