package repository

import (
	"context"
	"errors"

	"github.com/SUSHIbit/ProjectRara/internal/db"
	"github.com/SUSHIbit/ProjectRara/internal/domain"
	"github.com/jackc/pgx/v5"
)

type BenefitRepository struct {
	DB *db.Postgres
}

type CreateBenefitParams struct {
	UserID    int64
	Type      domain.BenefitType
	Value     *float64
	Threshold *int
	IsActive  bool
}

type UpdateBenefitParams struct {
	Type      domain.BenefitType
	Value     *float64
	Threshold *int
	IsActive  bool
}

func (r BenefitRepository) Create(ctx context.Context, p CreateBenefitParams) (*domain.MemberBenefit, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO member_benefits (user_id, type, value, threshold, is_active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5, now(), now())
		RETURNING id, user_id, type, value, threshold, is_active, created_at, updated_at
	`, p.UserID, p.Type, p.Value, p.Threshold, p.IsActive)
	return scanBenefit(row)
}

func (r BenefitRepository) Update(ctx context.Context, id int64, p UpdateBenefitParams) (*domain.MemberBenefit, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		UPDATE member_benefits
		SET type=$2, value=$3, threshold=$4, is_active=$5, updated_at=now()
		WHERE id=$1
		RETURNING id, user_id, type, value, threshold, is_active, created_at, updated_at
	`, id, p.Type, p.Value, p.Threshold, p.IsActive)
	b, err := scanBenefit(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return b, err
}

func (r BenefitRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Pool.Exec(ctx, `DELETE FROM member_benefits WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r BenefitRepository) GetByID(ctx context.Context, id int64) (*domain.MemberBenefit, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT id, user_id, type, value, threshold, is_active, created_at, updated_at
		FROM member_benefits
		WHERE id=$1
	`, id)
	b, err := scanBenefit(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return b, err
}

// List returns all benefits with the owning member's name.
func (r BenefitRepository) List(ctx context.Context) ([]domain.MemberBenefit, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT b.id, b.user_id, b.type, b.value, b.threshold, b.is_active, b.created_at, b.updated_at, u.name
		FROM member_benefits b
		JOIN users u ON u.id = b.user_id
		ORDER BY b.id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.MemberBenefit
	for rows.Next() {
		var (
			b   domain.MemberBenefit
			typ string
		)
		if err := rows.Scan(&b.ID, &b.UserID, &typ, &b.Value, &b.Threshold, &b.IsActive, &b.CreatedAt, &b.UpdatedAt, &b.UserName); err != nil {
			return nil, err
		}
		b.Type = domain.BenefitType(typ)
		items = append(items, b)
	}
	return items, rows.Err()
}

// ListByUser returns a member's benefits, optionally only active ones.
func (r BenefitRepository) ListByUser(ctx context.Context, userID int64, activeOnly bool) ([]domain.MemberBenefit, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, user_id, type, value, threshold, is_active, created_at, updated_at
		FROM member_benefits
		WHERE user_id=$1 AND (NOT $2 OR is_active)
		ORDER BY id ASC
	`, userID, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.MemberBenefit
	for rows.Next() {
		b, err := scanBenefit(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *b)
	}
	return items, rows.Err()
}

func scanBenefit(row pgx.Row) (*domain.MemberBenefit, error) {
	var (
		b   domain.MemberBenefit
		typ string
	)
	if err := row.Scan(&b.ID, &b.UserID, &typ, &b.Value, &b.Threshold, &b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.Type = domain.BenefitType(typ)
	return &b, nil
}
