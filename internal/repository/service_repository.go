package repository

import (
	"context"
	"errors"
	"time"

	"github.com/SUSHIbit/ProjectRara/internal/db"
	"github.com/SUSHIbit/ProjectRara/internal/domain"
	"github.com/jackc/pgx/v5"
)

type ServiceRepository struct {
	DB *db.Postgres
}

type CreateServiceParams struct {
	UserID      int64
	EmployeeID  int64
	ServiceType string
	Notes       string
	Date        time.Time
}

func (r ServiceRepository) Create(ctx context.Context, p CreateServiceParams) (*domain.Service, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO services (user_id, employee_id, service_type, notes, service_date, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5, now(), now())
		RETURNING id, user_id, employee_id, service_type, notes, service_date, created_at, updated_at
	`, p.UserID, p.EmployeeID, p.ServiceType, p.Notes, p.Date.Format("2006-01-02"))
	return scanService(row)
}

func (r ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT id, user_id, employee_id, service_type, notes, service_date, created_at, updated_at
		FROM services
		WHERE id=$1
	`, id)
	s, err := scanService(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return s, err
}

// ListByEmployee returns services performed by one employee, newest first.
func (r ServiceRepository) ListByEmployee(ctx context.Context, employeeID int64, page, perPage int) ([]domain.Service, error) {
	if page < 1 {
		page = 1
	}
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, user_id, employee_id, service_type, notes, service_date, created_at, updated_at
		FROM services
		WHERE employee_id=$1
		ORDER BY service_date DESC, id DESC
		LIMIT $2 OFFSET $3
	`, employeeID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectServices(rows)
}

// ListByCustomer returns a customer's service history, newest first.
func (r ServiceRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Service, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, user_id, employee_id, service_type, notes, service_date, created_at, updated_at
		FROM services
		WHERE user_id=$1
		ORDER BY service_date DESC, id DESC
	`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectServices(rows)
}

func collectServices(rows pgx.Rows) ([]domain.Service, error) {
	var items []domain.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	return items, rows.Err()
}

func scanService(row pgx.Row) (*domain.Service, error) {
	var s domain.Service
	if err := row.Scan(&s.ID, &s.UserID, &s.EmployeeID, &s.ServiceType, &s.Notes, &s.Date, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
