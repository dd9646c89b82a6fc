package repository

import (
	"context"

	"github.com/SUSHIbit/ProjectRara/internal/domain"
)

func (r ServiceTypeRepository) SeedDefaults(ctx context.Context) error {
	defaults := []domain.ServiceType{
		{Name: "haircut", Label: "Haircut", Price: domain.Money{Amount: 3500}},
		{Name: "styling", Label: "Styling", Price: domain.Money{Amount: 5000}},
		{Name: "coloring", Label: "Coloring", Price: domain.Money{Amount: 7500}},
		{Name: "treatment", Label: "Treatment", Price: domain.Money{Amount: 6000}},
		{Name: "manicure", Label: "Manicure", Price: domain.Money{Amount: 4000}},
		{Name: "pedicure", Label: "Pedicure", Price: domain.Money{Amount: 4500}},
	}

	for _, st := range defaults {
		// Idempotent: service_types.name is unique.
		_, err := r.DB.Pool.Exec(ctx, `
			INSERT INTO service_types (name, label, price)
			VALUES ($1,$2,$3)
			ON CONFLICT (name) DO NOTHING
		`, st.Name, st.Label, st.Price.Amount)
		if err != nil {
			return err
		}
	}
	return nil
}
