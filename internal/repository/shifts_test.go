package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/grafiki-ochrony/guard-roster/backend/internal/domain"
)

func TestMapShiftInsertError(t *testing.T) {
	slotErr := &pgconn.PgError{Code: "23505", ConstraintName: "shifts_site_id_day_shift_type_key"}
	assert.ErrorIs(t, mapShiftInsertError(slotErr), domain.ErrSlotTaken)

	wrapped := fmt.Errorf("insert failed: %w", slotErr)
	assert.ErrorIs(t, mapShiftInsertError(wrapped), domain.ErrSlotTaken)

	otherConstraint := &pgconn.PgError{Code: "23503", ConstraintName: "shifts_site_id_fkey"}
	assert.Equal(t, error(otherConstraint), mapShiftInsertError(otherConstraint))

	plain := errors.New("connection reset")
	assert.Equal(t, plain, mapShiftInsertError(plain))
}
