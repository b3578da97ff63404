package handler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestEmployeeReferenced(t *testing.T) {
	rosterFK := &pgconn.PgError{Code: "23503", ConstraintName: "shifts_employee_id_fkey"}
	assert.True(t, employeeReferenced(rosterFK))

	wrapped := fmt.Errorf("delete failed: %w", rosterFK)
	assert.True(t, employeeReferenced(wrapped))

	// other Postgres errors are not a roster reference
	otherConstraint := &pgconn.PgError{Code: "23503", ConstraintName: "days_off_employee_id_fkey"}
	assert.False(t, employeeReferenced(otherConstraint))

	assert.False(t, employeeReferenced(errors.New("connection reset")))
}
