package handler

import (
	"errors"
	"net/http"

	"github.com/SUSHIbit/ProjectRara/internal/domain"
	"github.com/SUSHIbit/ProjectRara/internal/repository"
	"github.com/go-chi/chi/v5"
)

type CustomerHandler struct {
	Users    repository.UserRepository
	Benefits repository.BenefitRepository
	Catalog  repository.ServiceTypeRepository
}

func (h CustomerHandler) RegisterRoutes(r chi.Router) {
	r.Get("/customers/search", h.search)
	r.Get("/service-types", h.serviceTypes)
}

// search looks a customer up by phone for the point of sale, returning
// active benefits when the customer is a member.
func (h CustomerHandler) search(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		writeFieldErrors(w, map[string]string{"phone": "this field is required"})
		return
	}
	customer, err := h.Users.GetCustomerByPhone(r.Context(), phone)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Customer not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	benefits := []map[string]any{}
	if customer.IsMember {
		list, err := h.Benefits.ListByUser(r.Context(), customer.ID, true)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		for _, b := range list {
			benefits = append(benefits, benefitJSON(b))
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"customer": userJSON(*customer),
		"benefits": benefits,
	})
}

func (h CustomerHandler) serviceTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Catalog.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(types))
	for _, st := range types {
		resp = append(resp, map[string]any{
			"name":  st.Name,
			"label": st.Label,
			"price": st.Price.Amount,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func benefitJSON(b domain.MemberBenefit) map[string]any {
	out := map[string]any{
		"id":        b.ID,
		"user_id":   b.UserID,
		"type":      string(b.Type),
		"value":     b.Value,
		"threshold": b.Threshold,
		"is_active": b.IsActive,
	}
	if b.UserName != "" {
		out["user_name"] = b.UserName
	}
	return out
}
