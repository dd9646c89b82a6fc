package repository

import (
	"context"
	"errors"

	"github.com/SUSHIbit/ProjectRara/internal/db"
	"github.com/SUSHIbit/ProjectRara/internal/domain"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	DB *db.Postgres
}

type CreateUserParams struct {
	Name              string
	Email             string
	Phone             string
	Role              domain.UserRole
	PasswordHash      *string
	MembershipPending bool
}

const userColumns = `id, name, email, phone, role, is_member, membership_pending, login_count, password_hash, created_at, updated_at`

func (r UserRepository) Create(ctx context.Context, p CreateUserParams) (*domain.User, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO users (name, email, phone, role, is_member, membership_pending, login_count, password_hash, created_at, updated_at)
		VALUES ($1,$2,$3,$4,false,$5,0,$6, now(), now())
		RETURNING `+userColumns,
		p.Name, p.Email, p.Phone, p.Role, p.MembershipPending, p.PasswordHash)
	return scanUser(row)
}

func (r UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email=$1 AND deleted_at IS NULL
	`, email)
	return scanUserNotFound(row)
}

func (r UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id=$1 AND deleted_at IS NULL
	`, id)
	return scanUserNotFound(row)
}

// GetCustomerByPhone looks up a customer for the point-of-sale search.
func (r UserRepository) GetCustomerByPhone(ctx context.Context, phone string) (*domain.User, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE phone=$1 AND role='customer' AND deleted_at IS NULL
	`, phone)
	return scanUserNotFound(row)
}

// IncrementLoginCount bumps the login counter and returns the new value.
// The counter doubles as the loyalty visit proxy.
func (r UserRepository) IncrementLoginCount(ctx context.Context, id int64) (int, error) {
	var count int
	err := r.DB.Pool.QueryRow(ctx, `
		UPDATE users SET login_count = login_count + 1, updated_at = now()
		WHERE id=$1 AND deleted_at IS NULL
		RETURNING login_count
	`, id).Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	return count, err
}

// ListMembers returns customers that are members or have a pending request.
func (r UserRepository) ListMembers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE role='customer' AND (is_member OR membership_pending) AND deleted_at IS NULL
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// GetMember returns a customer only if they are a member or pending one.
func (r UserRepository) GetMember(ctx context.Context, id int64) (*domain.User, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id=$1 AND role='customer' AND (is_member OR membership_pending) AND deleted_at IS NULL
	`, id)
	return scanUserNotFound(row)
}

// ResolvePending settles a pending membership request in one statement.
// Returns ErrNotFound when the user has no pending request, which keeps
// approve/reject idempotence checks inside the store.
func (r UserRepository) ResolvePending(ctx context.Context, id int64, approve bool) (*domain.User, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		UPDATE users
		SET is_member = is_member OR $2, membership_pending = false, updated_at = now()
		WHERE id=$1 AND role='customer' AND membership_pending AND deleted_at IS NULL
		RETURNING `+userColumns,
		id, approve)
	return scanUserNotFound(row)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u    domain.User
		role string
	)
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&role,
		&u.IsMember,
		&u.MembershipPending,
		&u.LoginCount,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	u.Role = domain.UserRole(role)
	return &u, nil
}

func scanUserNotFound(row pgx.Row) (*domain.User, error) {
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// IsDuplicate detects unique constraint violation.
func IsDuplicate(err error) bool {
	return db.IsUniqueViolation(err)
}
