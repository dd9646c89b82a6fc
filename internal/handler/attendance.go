package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/SUSHIbit/ProjectRara/internal/domain"
	"github.com/SUSHIbit/ProjectRara/internal/repository"
	"github.com/SUSHIbit/ProjectRara/internal/server/authctx"
	"github.com/SUSHIbit/ProjectRara/internal/service"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler struct {
	Service service.AttendanceService
}

// RegisterRoutes mounts the self-service clock endpoints (any staff).
func (h AttendanceHandler) RegisterRoutes(r chi.Router) {
	r.Post("/clock-in", h.clockIn)
	r.Post("/clock-out", h.clockOut)
	r.Get("/attendance/current", h.current)
}

// RegisterAdminRoutes mounts the manager oversight endpoints.
func (h AttendanceHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/attendance", h.list)
	r.Put("/attendance/{id}", h.update)
}

func (h AttendanceHandler) clockIn(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	a, err := h.Service.ClockIn(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyClockedIn) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, attendanceJSON(*a))
}

func (h AttendanceHandler) clockOut(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	a, err := h.Service.ClockOut(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveSession) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, attendanceJSON(*a))
}

func (h AttendanceHandler) current(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	status, err := h.Service.CurrentStatus(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := map[string]any{
		"clocked_in": status.ClockedIn,
		"id":         status.ID,
		"clock_in":   nil,
	}
	if status.ClockIn != nil {
		resp["clock_in"] = status.ClockIn.Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h AttendanceHandler) list(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	items, total, err := h.Service.List(r.Context(), page)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, a := range items {
		resp = append(resp, attendanceJSON(a))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"attendances": resp,
		"total":       total,
	})
}

func (h AttendanceHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		ClockIn  *time.Time `json:"clock_in"`
		ClockOut *time.Time `json:"clock_out"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	a, err := h.Service.Update(r.Context(), id, req.ClockIn, req.ClockOut)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "attendance record not found")
		case errors.Is(err, service.ErrClockOutBeforeIn):
			writeFieldErrors(w, map[string]string{"clock_out": err.Error()})
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, attendanceJSON(*a))
}

func attendanceJSON(a domain.Attendance) map[string]any {
	out := map[string]any{
		"id":        a.ID,
		"user_id":   a.UserID,
		"date":      a.Date.Format(dateLayout),
		"clock_in":  a.ClockIn.Format(time.RFC3339),
		"clock_out": timeOrNil(a.ClockOut),
	}
	if a.UserName != "" {
		out["user_name"] = a.UserName
	}
	return out
}

func timeOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}
