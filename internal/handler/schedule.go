package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"github.com/grafiki-ochrony/guard-roster/backend/internal/domain"
	"github.com/grafiki-ochrony/guard-roster/backend/internal/scheduler"
)

func (h *Handler) AssignShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SiteID     int64  `json:"siteID" validate:"required"`
		Day        string `json:"day" validate:"required"`
		ShiftType  string `json:"shiftType" validate:"required,oneof=D N 24"`
		EmployeeID int64  `json:"employeeID" validate:"required"`
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

	shift := &domain.Shift{
		SiteID:     req.SiteID,
		Day:        day,
		Type:       domain.ShiftType(req.ShiftType),
		EmployeeID: req.EmployeeID,
	}

	if err := h.repository.AssignShift(shift); err != nil {
		var conflict *domain.ConflictError
		var mismatch *domain.PreferenceMismatchError
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &conflict):
			h.errorResponse(w, r, "conflict: "+conflict.Error())
		case errors.As(err, &mismatch):
			h.errorResponse(w, r, mismatch.Error())
		case errors.Is(err, domain.ErrSlotTaken):
			h.errorResponse(w, r, "shift slot is already taken")
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "employee does not exist")
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "shifts_site_id_fkey":
			h.errorResponse(w, r, "site does not exist")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.invalidateScheduleCache(day.Year(), int(day.Month()))
	h.publishShiftEvent(domain.EventShiftAssigned, shift)

	h.successResponse(w, r, "shift assigned", shift)
}

// RemoveShift clears one slot: DELETE /shifts?siteID=&day=&shiftType=.
// Clearing an empty slot succeeds without effect.
func (h *Handler) RemoveShift(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	siteID, err := parseID(query.Get("siteID"))
	if err != nil {
		h.errorResponse(w, r, "invalid site id")
		return
	}

	day, err := parseISODay(query.Get("day"))
	if err != nil {
		h.errorResponse(w, r, "invalid day, expected YYYY-MM-DD")
		return
	}

	shiftType := domain.ShiftType(query.Get("shiftType"))
	if !shiftType.Valid() {
		h.errorResponse(w, r, "invalid shift type, expected D, N or 24")
		return
	}

	if err := h.repository.RemoveShift(siteID, day, shiftType); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.invalidateScheduleCache(day.Year(), int(day.Month()))
	h.publishShiftEvent(domain.EventShiftRemoved, &domain.Shift{SiteID: siteID, Day: day, Type: shiftType})

	h.successResponse(w, r, "shift removed", nil)
}

// GetMonthSchedule returns the month's occupancy snapshot, served from
// the Redis cache when fresh. Mutations delete the month key, so a
// cache hit is at most one TTL old.
func (h *Handler) GetMonthSchedule(w http.ResponseWriter, r *http.Request) {
	ym := r.Context().Value(YearMonthCtx).(YearMonth)

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	cached, err := h.redisClient.Get(ctx, scheduleCacheKey(ym.Year, ym.Month)).Result()
	if err == nil {
		h.successResponse(w, r, "schedule fetched", json.RawMessage(cached))
		return
	}
	if !errors.Is(err, redis.Nil) {
		h.logInternalServerError(r, err) // cache trouble is not fatal, fall through to the DB
	}

	slots, err := h.repository.ShiftsForMonth(ym.Year, ym.Month)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if encoded, err := json.Marshal(slots); err == nil {
		ttl := time.Duration(h.config.Redis.ScheduleCacheTTL) * time.Second
		if err := h.redisClient.Set(ctx, scheduleCacheKey(ym.Year, ym.Month), encoded, ttl).Err(); err != nil {
			h.logInternalServerError(r, err)
		}
	}

	h.successResponse(w, r, "schedule fetched", slots)
}

// AutoFill runs the greedy scheduler over the month's empty slots.
// The optional body {"siteIDs": [...]} restricts the fill to a subset
// of sites; otherwise every site is filled.
func (h *Handler) AutoFill(w http.ResponseWriter, r *http.Request) {
	ym := r.Context().Value(YearMonthCtx).(YearMonth)

	var req struct {
		SiteIDs []int64 `json:"siteIDs"`
	}

	if err := h.readJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.badRequest(w, r, err)
		return
	}

	employees, err := h.repository.GetAllEmployees()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	sites, err := h.repository.GetAllSites()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if len(req.SiteIDs) > 0 {
		selected := make([]*domain.Site, 0, len(req.SiteIDs))
		for _, site := range sites {
			if slices.Contains(req.SiteIDs, site.ID) {
				selected = append(selected, site)
			}
		}
		sites = selected
	}

	snapshot, err := h.repository.ShiftsForMonth(ym.Year, ym.Month)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	sched, err := scheduler.New(h.repository, employees, sites, ym.Year, ym.Month, snapshot)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	filled, err := sched.Fill()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.invalidateScheduleCache(ym.Year, ym.Month)
	h.publishEvent(domain.EventAutoFillCompleted, domain.AutoFillEventData{
		Year:        ym.Year,
		Month:       ym.Month,
		FilledCount: filled,
	})

	h.successResponse(w, r, "auto-fill completed", map[string]int{"filledCount": filled})
}
