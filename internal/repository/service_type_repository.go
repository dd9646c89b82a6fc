package repository

import (
	"context"
	"errors"

	"github.com/SUSHIbit/ProjectRara/internal/db"
	"github.com/SUSHIbit/ProjectRara/internal/domain"
	"github.com/jackc/pgx/v5"
)

type ServiceTypeRepository struct {
	DB *db.Postgres
}

func (r ServiceTypeRepository) List(ctx context.Context) ([]domain.ServiceType, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, name, label, price
		FROM service_types
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.ServiceType
	for rows.Next() {
		var st domain.ServiceType
		if err := rows.Scan(&st.ID, &st.Name, &st.Label, &st.Price.Amount); err != nil {
			return nil, err
		}
		items = append(items, st)
	}
	return items, rows.Err()
}

// GetByName resolves a catalog entry, used to price a recorded service.
func (r ServiceTypeRepository) GetByName(ctx context.Context, name string) (*domain.ServiceType, error) {
	var st domain.ServiceType
	err := r.DB.Pool.QueryRow(ctx, `
		SELECT id, name, label, price
		FROM service_types
		WHERE name=$1
	`, name).Scan(&st.ID, &st.Name, &st.Label, &st.Price.Amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &st, nil
}
