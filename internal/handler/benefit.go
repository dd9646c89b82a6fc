package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/SUSHIbit/ProjectRara/internal/domain"
	"github.com/SUSHIbit/ProjectRara/internal/repository"
	"github.com/SUSHIbit/ProjectRara/internal/service"
	"github.com/go-chi/chi/v5"
)

type BenefitHandler struct {
	Service service.BenefitService
}

func (h BenefitHandler) RegisterRoutes(r chi.Router) {
	r.Get("/benefits", h.list)
	r.Post("/benefits", h.create)
	r.Put("/benefits/{id}", h.update)
	r.Delete("/benefits/{id}", h.delete)
	r.Get("/members/{id}/benefits", h.memberBenefits)
}

type benefitRequest struct {
	UserID    int64    `json:"user_id"`
	Type      string   `json:"type" validate:"required,oneof=discount loyalty"`
	Value     *float64 `json:"value" validate:"required_if=Type discount,omitempty,min=0,max=100"`
	Threshold *int     `json:"threshold" validate:"required_if=Type loyalty,omitempty,min=1"`
	IsActive  *bool    `json:"is_active"`
}

func (req benefitRequest) input() service.BenefitInput {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return service.BenefitInput{
		Type:      domain.BenefitType(req.Type),
		Value:     req.Value,
		Threshold: req.Threshold,
		IsActive:  active,
	}
}

func (h BenefitHandler) list(w http.ResponseWriter, r *http.Request) {
	benefits, err := h.Service.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, benefitListJSON(benefits))
}

func (h BenefitHandler) create(w http.ResponseWriter, r *http.Request) {
	var req benefitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.UserID == 0 {
		writeFieldErrors(w, map[string]string{"user_id": "this field is required"})
		return
	}
	if err := validate.Struct(req); err != nil {
		writeFieldErrors(w, fieldErrors(err))
		return
	}
	benefit, err := h.Service.Create(r.Context(), req.UserID, req.input())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, benefitJSON(*benefit))
}

func (h BenefitHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req benefitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeFieldErrors(w, fieldErrors(err))
		return
	}
	benefit, err := h.Service.Update(r.Context(), id, req.input())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, benefitJSON(*benefit))
}

func (h BenefitHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Benefit deleted successfully"})
}

func (h BenefitHandler) memberBenefits(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	benefits, err := h.Service.ListForMember(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, benefitListJSON(benefits))
}

func (h BenefitHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrNotMember):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrDiscountValue):
		writeFieldErrors(w, map[string]string{"value": err.Error()})
	case errors.Is(err, service.ErrLoyaltyThreshold):
		writeFieldErrors(w, map[string]string{"threshold": err.Error()})
	case errors.Is(err, service.ErrBadBenefitType):
		writeFieldErrors(w, map[string]string{"type": err.Error()})
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func benefitListJSON(benefits []domain.MemberBenefit) []map[string]any {
	resp := make([]map[string]any, 0, len(benefits))
	for _, b := range benefits {
		resp = append(resp, benefitJSON(b))
	}
	return resp
}
