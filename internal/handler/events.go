package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/grafiki-ochrony/guard-roster/backend/internal/domain"
)

func parseID(value string) (int64, error) {
	return strconv.ParseInt(value, 10, 64)
}

func scheduleCacheKey(year, month int) string {
	return fmt.Sprintf("schedule_%d_%02d", year, month)
}

// invalidateScheduleCache drops the month snapshot from Redis. Failure
// only shortens cache freshness, so it is logged and swallowed.
func (h *Handler) invalidateScheduleCache(year, month int) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	if err := h.redisClient.Del(ctx, scheduleCacheKey(year, month)).Err(); err != nil {
		slog.Error("unable to invalidate schedule cache", "year", year, "month", month, "error", err)
	}
}

// publishEvent sends a roster event to the notification queue.
// Best effort: a broker problem must not fail the mutation that
// already committed.
func (h *Handler) publishEvent(eventType string, data any) {
	event := domain.RosterEvent{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}

	body, err := json.Marshal(event)
	if err != nil {
		slog.Error("unable to serialize roster event", "type", eventType, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.eventsChannel.PublishWithContext(
		ctx,
		"",
		"roster_events",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	); err != nil {
		slog.Error("unable to publish roster event", "type", eventType, "error", err)
	}
}

// publishShiftEvent resolves the site and employee names so the
// notifier can write a readable message.
func (h *Handler) publishShiftEvent(eventType string, shift *domain.Shift) {
	data := domain.ShiftEventData{
		Day:       shift.Day.Format("2006-01-02"),
		ShiftType: shift.Type,
	}

	site, err := h.repository.GetSiteByID(shift.SiteID)
	switch {
	case err == nil:
		data.SiteName = site.Name
	case errors.Is(err, sql.ErrNoRows):
		data.SiteName = fmt.Sprintf("site %d", shift.SiteID)
	default:
		slog.Error("unable to resolve site for roster event", "siteID", shift.SiteID, "error", err)
		data.SiteName = fmt.Sprintf("site %d", shift.SiteID)
	}

	if shift.EmployeeID != 0 {
		employee, err := h.repository.GetEmployeeByID(shift.EmployeeID)
		if err != nil {
			slog.Error("unable to resolve employee for roster event", "employeeID", shift.EmployeeID, "error", err)
			data.EmployeeName = fmt.Sprintf("employee %d", shift.EmployeeID)
		} else {
			data.EmployeeName = employee.FullName()
		}
	}

	h.publishEvent(eventType, data)
}
