package handler

import (
	"net/http"
	"time"

	"github.com/grafiki-ochrony/guard-roster/backend/internal/domain"
	"github.com/grafiki-ochrony/guard-roster/backend/internal/workcal"
)

type reportRow struct {
	EmployeeID   int64               `json:"employeeID"`
	EmployeeName string              `json:"employeeName"`
	ContractType domain.ContractType `json:"contractType"`
	Preference   domain.Preference   `json:"preference"`
	Hours        int                 `json:"hours"`
	Norm         *int                `json:"norm"`    // monthly norm, employment contracts only
	Surplus      *int                `json:"surplus"` // hours - norm
}

type monthReport struct {
	Year          int         `json:"year"`
	Month         int         `json:"month"`
	Quarter       int         `json:"quarter"`
	BusinessDays  int         `json:"businessDays"`
	MonthlyNorm   int         `json:"monthlyNorm"`
	QuarterlyNorm int         `json:"quarterlyNorm"`
	Rows          []reportRow `json:"rows"`
}

// GetMonthReport aggregates per-employee hours for the month and sets
// them against the statutory norm. The norm and surplus only apply to
// employment-contract (UOP) guards.
func (h *Handler) GetMonthReport(w http.ResponseWriter, r *http.Request) {
	ym := r.Context().Value(YearMonthCtx).(YearMonth)

	businessDays, err := workcal.BusinessDaysInMonth(ym.Year, ym.Month)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	monthlyNorm, err := workcal.MonthlyNorm(ym.Year, ym.Month)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	quarter := workcal.QuarterOfMonth(ym.Month)
	quarterlyNorm, err := workcal.QuarterlyNorm(ym.Year, quarter)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	employees, err := h.repository.GetAllEmployees()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	start := time.Date(ym.Year, time.Month(ym.Month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	hours, err := h.repository.HoursByEmployeeInRange(start, end)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	report := monthReport{
		Year:          ym.Year,
		Month:         ym.Month,
		Quarter:       quarter,
		BusinessDays:  businessDays,
		MonthlyNorm:   monthlyNorm,
		QuarterlyNorm: quarterlyNorm,
		Rows:          make([]reportRow, 0, len(employees)),
	}

	for _, employee := range employees {
		row := reportRow{
			EmployeeID:   employee.ID,
			EmployeeName: employee.FullName(),
			ContractType: employee.ContractType,
			Preference:   employee.Preference,
			Hours:        hours[employee.ID],
		}

		if employee.ContractType == domain.ContractEmployment {
			norm := monthlyNorm
			surplus := row.Hours - norm
			row.Norm = &norm
			row.Surplus = &surplus
		}

		report.Rows = append(report.Rows, row)
	}

	h.successResponse(w, r, "report generated", report)
}
