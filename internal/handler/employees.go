package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/grafiki-ochrony/guard-roster/backend/internal/domain"
)

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName    string `json:"firstName" validate:"required"`
		LastName     string `json:"lastName" validate:"required"`
		ContractType string `json:"contractType" validate:"required,oneof=UOP UZ"`
		Preference   string `json:"preference" validate:"required,oneof=BRAK 24H DNIOWKI NOCKI"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	employee := &domain.Employee{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		ContractType: domain.ContractType(req.ContractType),
		Preference:   domain.Preference(req.Preference),
	}

	if err := h.repository.CreateEmployee(employee); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "employee created", employee)
}

func (h *Handler) GetAllEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.repository.GetAllEmployees()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "employees fetched", employees)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)

	h.successResponse(w, r, "employee fetched", employee)
}

// UpdateEmployee edits name, contract type or preference. A preference
// change is not re-validated against shifts assigned earlier.
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)

	var req struct {
		FirstName    *string `json:"firstName"`
		LastName     *string `json:"lastName"`
		ContractType *string `json:"contractType" validate:"omitempty,oneof=UOP UZ"`
		Preference   *string `json:"preference" validate:"omitempty,oneof=BRAK 24H DNIOWKI NOCKI"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.FirstName != nil {
		employee.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		employee.LastName = *req.LastName
	}
	if req.ContractType != nil {
		employee.ContractType = domain.ContractType(*req.ContractType)
	}
	if req.Preference != nil {
		employee.Preference = domain.Preference(*req.Preference)
	}

	if err := h.repository.UpdateEmployee(employee); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "employee was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "employee updated", employee)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)

	if err := h.repository.DeleteEmployee(employee.ID); err != nil {
		if employeeReferenced(err) {
			h.errorResponse(w, r, "employee is still referenced by the roster")
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "employee deleted", nil)
}

// employeeReferenced reports whether a delete failed on the roster
// foreign key, i.e. the employee still holds shifts.
func employeeReferenced(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.ConstraintName == "shifts_employee_id_fkey"
}

// CheckEmployeeFree exposes the free-time check: GET .../free?day=YYYY-MM-DD.
func (h *Handler) CheckEmployeeFree(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)

	day, err := parseISODay(r.URL.Query().Get("day"))
	if err != nil {
		h.errorResponse(w, r, "invalid day, expected YYYY-MM-DD")
		return
	}

	result, err := h.repository.CheckEmployeeFree(employee.ID, day)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "free-time check done", result)
}
