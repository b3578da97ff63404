package handler

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/grafiki-ochrony/guard-roster/backend/internal/domain"
)

func (h *Handler) CreateSite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	site := &domain.Site{
		Name: req.Name,
	}

	if err := h.repository.CreateSite(site); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "sites_name_key":
				h.errorResponse(w, r, "site name already exists")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "site created", site)
}

func (h *Handler) GetAllSites(w http.ResponseWriter, r *http.Request) {
	sites, err := h.repository.GetAllSites()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "sites fetched", sites)
}

func (h *Handler) GetSite(w http.ResponseWriter, r *http.Request) {
	site := r.Context().Value(SiteCtx).(*domain.Site)

	h.successResponse(w, r, "site fetched", site)
}

func (h *Handler) DeleteSite(w http.ResponseWriter, r *http.Request) {
	site := r.Context().Value(SiteCtx).(*domain.Site)

	if err := h.repository.DeleteSite(site.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "site deleted", nil)
}
