package repository

import (
	"context"
	"errors"
	"time"

	"github.com/SUSHIbit/ProjectRara/internal/db"
	"github.com/SUSHIbit/ProjectRara/internal/domain"
	"github.com/jackc/pgx/v5"
)

type TransactionRepository struct {
	DB *db.Postgres
}

type CreateTransactionParams struct {
	CustomerID      int64
	ServiceID       int64
	TotalPrice      int64
	DiscountApplied int64
	FreeVisit       bool
}

// Receipt carries a transaction joined with its customer, service and
// performing employee, ready for PDF rendering.
type Receipt struct {
	Transaction   domain.Transaction
	CustomerName  string
	CustomerPhone string
	EmployeeName  string
	ServiceType   string
	ServiceLabel  string
	BasePrice     int64
	ServiceDate   time.Time
}

func (r TransactionRepository) Create(ctx context.Context, p CreateTransactionParams) (*domain.Transaction, error) {
	var t domain.Transaction
	err := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO transactions (customer_id, service_id, total_price, discount_applied, free_visit, created_at)
		VALUES ($1,$2,$3,$4,$5, now())
		RETURNING id, customer_id, service_id, total_price, discount_applied, free_visit, created_at
	`, p.CustomerID, p.ServiceID, p.TotalPrice, p.DiscountApplied, p.FreeVisit).
		Scan(&t.ID, &t.CustomerID, &t.ServiceID, &t.TotalPrice.Amount, &t.DiscountApplied.Amount, &t.FreeVisit, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r TransactionRepository) GetReceipt(ctx context.Context, id int64) (*Receipt, error) {
	var rc Receipt
	err := r.DB.Pool.QueryRow(ctx, `
		SELECT t.id, t.customer_id, t.service_id, t.total_price, t.discount_applied, t.free_visit, t.created_at,
		       c.name, c.phone, e.name, s.service_type, st.label, st.price, s.service_date
		FROM transactions t
		JOIN users c ON c.id = t.customer_id
		JOIN services s ON s.id = t.service_id
		JOIN users e ON e.id = s.employee_id
		JOIN service_types st ON st.name = s.service_type
		WHERE t.id=$1
	`, id).Scan(
		&rc.Transaction.ID, &rc.Transaction.CustomerID, &rc.Transaction.ServiceID,
		&rc.Transaction.TotalPrice.Amount, &rc.Transaction.DiscountApplied.Amount,
		&rc.Transaction.FreeVisit, &rc.Transaction.CreatedAt,
		&rc.CustomerName, &rc.CustomerPhone, &rc.EmployeeName,
		&rc.ServiceType, &rc.ServiceLabel, &rc.BasePrice, &rc.ServiceDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rc, nil
}

// ListByServiceDate returns transactions whose service was performed on
// the given calendar day.
func (r TransactionRepository) ListByServiceDate(ctx context.Context, date time.Time) ([]domain.Transaction, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT t.id, t.customer_id, t.service_id, t.total_price, t.discount_applied, t.free_visit, s.service_date, t.created_at
		FROM transactions t
		JOIN services s ON s.id = t.service_id
		WHERE s.service_date = $1
		ORDER BY t.id ASC
	`, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransactions(rows)
}

// ListByMonth returns transactions whose service date falls in the month.
func (r TransactionRepository) ListByMonth(ctx context.Context, year int, month time.Month) ([]domain.Transaction, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT t.id, t.customer_id, t.service_id, t.total_price, t.discount_applied, t.free_visit, s.service_date, t.created_at
		FROM transactions t
		JOIN services s ON s.id = t.service_id
		WHERE s.service_date >= $1 AND s.service_date < $1 + interval '1 month'
		ORDER BY s.service_date ASC, t.id ASC
	`, start.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransactions(rows)
}

// ListRecentByCustomer returns the customer's latest transactions.
func (r TransactionRepository) ListRecentByCustomer(ctx context.Context, customerID int64, limit int) ([]domain.Transaction, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT t.id, t.customer_id, t.service_id, t.total_price, t.discount_applied, t.free_visit, s.service_date, t.created_at
		FROM transactions t
		JOIN services s ON s.id = t.service_id
		WHERE t.customer_id=$1
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT $2
	`, customerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransactions(rows)
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	var items []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.CustomerID, &t.ServiceID, &t.TotalPrice.Amount, &t.DiscountApplied.Amount, &t.FreeVisit, &t.ServiceDate, &t.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}
