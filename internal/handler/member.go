package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/SUSHIbit/ProjectRara/internal/repository"
	"github.com/SUSHIbit/ProjectRara/internal/service"
	"github.com/go-chi/chi/v5"
)

type MemberHandler struct {
	Service service.MembershipService
}

func (h MemberHandler) RegisterRoutes(r chi.Router) {
	r.Get("/members", h.list)
	r.Get("/members/{id}", h.details)
	r.Put("/members/{id}/approve", h.approve)
	r.Put("/members/{id}/reject", h.reject)
}

func (h MemberHandler) list(w http.ResponseWriter, r *http.Request) {
	members, err := h.Service.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(members))
	for _, m := range members {
		resp = append(resp, userJSON(m))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h MemberHandler) details(w http.ResponseWriter, r *http.Request) {
	id, ok := memberID(w, r)
	if !ok {
		return
	}
	details, err := h.Service.Details(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "member not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	benefits := make([]map[string]any, 0, len(details.Benefits))
	for _, b := range details.Benefits {
		benefits = append(benefits, benefitJSON(b))
	}
	txs := make([]map[string]any, 0, len(details.Transactions))
	for _, t := range details.Transactions {
		txs = append(txs, transactionJSON(t))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"member":       userJSON(details.Member),
		"benefits":     benefits,
		"transactions": txs,
	})
}

func (h MemberHandler) approve(w http.ResponseWriter, r *http.Request) {
	id, ok := memberID(w, r)
	if !ok {
		return
	}
	member, err := h.Service.Approve(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no pending membership request")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Membership approved successfully",
		"member":  userJSON(*member),
	})
}

func (h MemberHandler) reject(w http.ResponseWriter, r *http.Request) {
	id, ok := memberID(w, r)
	if !ok {
		return
	}
	member, err := h.Service.Reject(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no pending membership request")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Membership rejected successfully",
		"member":  userJSON(*member),
	})
}

func memberID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
