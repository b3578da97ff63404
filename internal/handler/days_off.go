package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/grafiki-ochrony/guard-roster/backend/internal/domain"
)

func parseISODay(value string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q", value)
	}
	return day.UTC(), nil
}

// AddDayOff records a day off for the employee. Adding the same day
// twice is a no-op.
func (h *Handler) AddDayOff(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)

	var req struct {
		Day string `json:"day" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	day, err := parseISODay(req.Day)
	if err != nil {
		h.errorResponse(w, r, "invalid day, expected YYYY-MM-DD")
		return
	}

	dayOff := &domain.DayOff{
		EmployeeID: employee.ID,
		Day:        day,
	}

	if err := h.repository.AddDayOff(dayOff); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "day off added", dayOff)
}

// RemoveDayOff deletes a day off: DELETE .../days-off?day=YYYY-MM-DD.
// Removing a day that was never recorded is a no-op.
func (h *Handler) RemoveDayOff(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)

	day, err := parseISODay(r.URL.Query().Get("day"))
	if err != nil {
		h.errorResponse(w, r, "invalid day, expected YYYY-MM-DD")
		return
	}

	if err := h.repository.RemoveDayOff(employee.ID, day); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "day off removed", nil)
}

func (h *Handler) GetEmployeeDaysOff(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)

	daysOff, err := h.repository.GetDaysOffByEmployee(employee.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "days off fetched", daysOff)
}
