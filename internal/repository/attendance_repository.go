package repository

import (
	"context"
	"errors"
	"time"

	"github.com/SUSHIbit/ProjectRara/internal/db"
	"github.com/SUSHIbit/ProjectRara/internal/domain"
	"github.com/jackc/pgx/v5"
)

type AttendanceRepository struct {
	DB *db.Postgres
}

// Insert opens a session for the user on the given day. The partial
// unique index on (user_id, attendance_date) WHERE clock_out IS NULL
// rejects a second open session, so the caller gets a unique violation
// instead of a check-then-act race.
func (r AttendanceRepository) Insert(ctx context.Context, userID int64, day time.Time, clockIn time.Time) (*domain.Attendance, error) {
	var a domain.Attendance
	err := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO attendance (user_id, attendance_date, clock_in, created_at)
		VALUES ($1, $2, $3, now())
		RETURNING id, user_id, attendance_date, clock_in, clock_out, created_at
	`, userID, day.Format("2006-01-02"), clockIn).
		Scan(&a.ID, &a.UserID, &a.Date, &a.ClockIn, &a.ClockOut, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// FindOpen returns the open session for the user on the given day.
func (r AttendanceRepository) FindOpen(ctx context.Context, userID int64, day time.Time) (*domain.Attendance, error) {
	var a domain.Attendance
	err := r.DB.Pool.QueryRow(ctx, `
		SELECT id, user_id, attendance_date, clock_in, clock_out, created_at
		FROM attendance
		WHERE user_id=$1 AND attendance_date=$2 AND clock_out IS NULL
	`, userID, day.Format("2006-01-02")).
		Scan(&a.ID, &a.UserID, &a.Date, &a.ClockIn, &a.ClockOut, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// CloseOpen stamps clock_out on the user's open session for the day.
// Single statement, so two devices racing a clock-out cannot both win.
func (r AttendanceRepository) CloseOpen(ctx context.Context, userID int64, day time.Time, clockOut time.Time) (*domain.Attendance, error) {
	var a domain.Attendance
	err := r.DB.Pool.QueryRow(ctx, `
		UPDATE attendance SET clock_out=$3
		WHERE user_id=$1 AND attendance_date=$2 AND clock_out IS NULL
		RETURNING id, user_id, attendance_date, clock_in, clock_out, created_at
	`, userID, day.Format("2006-01-02"), clockOut).
		Scan(&a.ID, &a.UserID, &a.Date, &a.ClockIn, &a.ClockOut, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r AttendanceRepository) GetByID(ctx context.Context, id int64) (*domain.Attendance, error) {
	var a domain.Attendance
	err := r.DB.Pool.QueryRow(ctx, `
		SELECT id, user_id, attendance_date, clock_in, clock_out, created_at
		FROM attendance
		WHERE id=$1
	`, id).Scan(&a.ID, &a.UserID, &a.Date, &a.ClockIn, &a.ClockOut, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Update overwrites clock_in/clock_out on a record (manager edit).
func (r AttendanceRepository) Update(ctx context.Context, id int64, clockIn time.Time, clockOut *time.Time) (*domain.Attendance, error) {
	var a domain.Attendance
	err := r.DB.Pool.QueryRow(ctx, `
		UPDATE attendance SET clock_in=$2, clock_out=$3
		WHERE id=$1
		RETURNING id, user_id, attendance_date, clock_in, clock_out, created_at
	`, id, clockIn, clockOut).
		Scan(&a.ID, &a.UserID, &a.Date, &a.ClockIn, &a.ClockOut, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListStaff returns attendance for employees and managers, newest first.
func (r AttendanceRepository) ListStaff(ctx context.Context, page, perPage int) ([]domain.Attendance, int64, error) {
	if page < 1 {
		page = 1
	}
	var total int64
	err := r.DB.Pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM attendance a
		JOIN users u ON u.id = a.user_id
		WHERE u.role IN ('employee','manager') AND u.deleted_at IS NULL
	`).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.Pool.Query(ctx, `
		SELECT a.id, a.user_id, u.name, a.attendance_date, a.clock_in, a.clock_out, a.created_at
		FROM attendance a
		JOIN users u ON u.id = a.user_id
		WHERE u.role IN ('employee','manager') AND u.deleted_at IS NULL
		ORDER BY a.attendance_date DESC, a.id DESC
		LIMIT $1 OFFSET $2
	`, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.Attendance
	for rows.Next() {
		var a domain.Attendance
		if err := rows.Scan(&a.ID, &a.UserID, &a.UserName, &a.Date, &a.ClockIn, &a.ClockOut, &a.CreatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}
