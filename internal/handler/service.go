package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/SUSHIbit/ProjectRara/internal/db"
	"github.com/SUSHIbit/ProjectRara/internal/domain"
	"github.com/SUSHIbit/ProjectRara/internal/repository"
	"github.com/SUSHIbit/ProjectRara/internal/server/authctx"
	"github.com/go-chi/chi/v5"
)

type ServiceHandler struct {
	Repo    repository.ServiceRepository
	Catalog repository.ServiceTypeRepository
}

func (h ServiceHandler) RegisterRoutes(r chi.Router) {
	r.Post("/services", h.create)
	r.Get("/services/mine", h.mine)
	r.Get("/services/{id}", h.show)
	r.Get("/customers/{id}/services", h.customerServices)
}

func (h ServiceHandler) create(w http.ResponseWriter, r *http.Request) {
	employee := authctx.FromContext(r.Context())
	if employee == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req struct {
		UserID      int64  `json:"user_id" validate:"required"`
		ServiceType string `json:"service_type" validate:"required"`
		Notes       string `json:"notes"`
		Date        string `json:"date" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeFieldErrors(w, fieldErrors(err))
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		writeFieldErrors(w, map[string]string{"date": "must be a date (YYYY-MM-DD)"})
		return
	}
	if _, err := h.Catalog.GetByName(r.Context(), req.ServiceType); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeFieldErrors(w, map[string]string{"service_type": "unknown service type"})
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	svc, err := h.Repo.Create(r.Context(), repository.CreateServiceParams{
		UserID:      req.UserID,
		EmployeeID:  employee.ID,
		ServiceType: req.ServiceType,
		Notes:       req.Notes,
		Date:        date,
	})
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			writeError(w, http.StatusNotFound, "customer not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, serviceJSON(*svc))
}

func (h ServiceHandler) show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	svc, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "service not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, serviceJSON(*svc))
}

// mine lists services performed by the calling employee.
func (h ServiceHandler) mine(w http.ResponseWriter, r *http.Request) {
	employee := authctx.FromContext(r.Context())
	if employee == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	items, err := h.Repo.ListByEmployee(r.Context(), employee.ID, page, 15)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, serviceListJSON(items))
}

func (h ServiceHandler) customerServices(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	items, err := h.Repo.ListByCustomer(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, serviceListJSON(items))
}

func serviceListJSON(items []domain.Service) []map[string]any {
	resp := make([]map[string]any, 0, len(items))
	for _, s := range items {
		resp = append(resp, serviceJSON(s))
	}
	return resp
}

func serviceJSON(s domain.Service) map[string]any {
	return map[string]any{
		"id":           s.ID,
		"user_id":      s.UserID,
		"employee_id":  s.EmployeeID,
		"service_type": s.ServiceType,
		"notes":        s.Notes,
		"date":         s.Date.Format(dateLayout),
	}
}
