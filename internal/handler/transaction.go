package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/SUSHIbit/ProjectRara/internal/domain"
	"github.com/SUSHIbit/ProjectRara/internal/pdf"
	"github.com/SUSHIbit/ProjectRara/internal/repository"
	"github.com/SUSHIbit/ProjectRara/internal/service"
	"github.com/go-chi/chi/v5"
)

type TransactionHandler struct {
	Billing  service.BillingService
	Receipts repository.TransactionRepository
	Currency string
}

func (h TransactionHandler) RegisterRoutes(r chi.Router) {
	r.Post("/transactions", h.create)
}

func (h TransactionHandler) RegisterReceiptRoutes(r chi.Router) {
	r.Get("/receipt/{id}", h.receipt)
}

// create bills a recorded service. Pricing and benefit application run
// server-side; the request only picks the service and whether to apply
// member benefits.
func (h TransactionHandler) create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerID    int64 `json:"customer_id" validate:"required"`
		ServiceID     int64 `json:"service_id" validate:"required"`
		ApplyBenefits *bool `json:"apply_benefits"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeFieldErrors(w, fieldErrors(err))
		return
	}
	apply := true
	if req.ApplyBenefits != nil {
		apply = *req.ApplyBenefits
	}

	res, err := h.Billing.Checkout(r.Context(), service.CheckoutInput{
		CustomerID:    req.CustomerID,
		ServiceID:     req.ServiceID,
		ApplyBenefits: apply,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "service or customer not found")
		case errors.Is(err, service.ErrAlreadyBilled),
			errors.Is(err, service.ErrCustomerMismatch),
			errors.Is(err, service.ErrUnknownServiceType):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"transaction": transactionJSON(res.Transaction),
		"base_price":  res.Evaluation.BasePrice,
	})
}

func (h TransactionHandler) receipt(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	rc, err := h.Receipts.GetReceipt(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	data, err := pdf.Receipt(*rc, h.Currency)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	servePDF(w, fmt.Sprintf("receipt_%d.pdf", id), data)
}

func servePDF(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func transactionJSON(t domain.Transaction) map[string]any {
	return map[string]any{
		"id":               t.ID,
		"customer_id":      t.CustomerID,
		"service_id":       t.ServiceID,
		"total_price":      t.TotalPrice.Amount,
		"discount_applied": t.DiscountApplied.Amount,
		"free_visit":       t.FreeVisit,
	}
}
