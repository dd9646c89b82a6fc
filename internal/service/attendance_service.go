package service

import (
	"context"
	"errors"
	"time"

	"github.com/SUSHIbit/ProjectRara/internal/db"
	"github.com/SUSHIbit/ProjectRara/internal/domain"
	"github.com/SUSHIbit/ProjectRara/internal/repository"
)

var (
	ErrAlreadyClockedIn = errors.New("you are already clocked in")
	ErrNoActiveSession  = errors.New("no active clock-in found")
	ErrClockOutBeforeIn = errors.New("clock_out must not be before clock_in")
)

// Clock supplies the current time so tests can pin it.
type Clock func() time.Time

// AttendanceStore is the persistence surface the tracker needs.
type AttendanceStore interface {
	Insert(ctx context.Context, userID int64, day, clockIn time.Time) (*domain.Attendance, error)
	FindOpen(ctx context.Context, userID int64, day time.Time) (*domain.Attendance, error)
	CloseOpen(ctx context.Context, userID int64, day, clockOut time.Time) (*domain.Attendance, error)
	GetByID(ctx context.Context, id int64) (*domain.Attendance, error)
	Update(ctx context.Context, id int64, clockIn time.Time, clockOut *time.Time) (*domain.Attendance, error)
	ListStaff(ctx context.Context, page, perPage int) ([]domain.Attendance, int64, error)
}

type AttendanceService struct {
	Store AttendanceStore
	Now   Clock
}

// Status reports whether the user has an open session today.
type Status struct {
	ClockedIn bool
	ID        *int64
	ClockIn   *time.Time
}

const attendancePerPage = 15

func (s AttendanceService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ClockIn opens today's session. The store's partial unique index is
// the only guard against a double clock-in, so two concurrent requests
// cannot both succeed.
func (s AttendanceService) ClockIn(ctx context.Context, userID int64) (*domain.Attendance, error) {
	now := s.now()
	a, err := s.Store.Insert(ctx, userID, now, now)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrAlreadyClockedIn
		}
		return nil, err
	}
	return a, nil
}

// ClockOut closes today's open session.
func (s AttendanceService) ClockOut(ctx context.Context, userID int64) (*domain.Attendance, error) {
	now := s.now()
	a, err := s.Store.CloseOpen(ctx, userID, now, now)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActiveSession
		}
		return nil, err
	}
	return a, nil
}

func (s AttendanceService) CurrentStatus(ctx context.Context, userID int64) (Status, error) {
	a, err := s.Store.FindOpen(ctx, userID, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Status{}, nil
		}
		return Status{}, err
	}
	return Status{ClockedIn: true, ID: &a.ID, ClockIn: &a.ClockIn}, nil
}

// Update is the manager edit: either timestamp may be overwritten.
// The merged record must keep clock_out at or after clock_in; beyond
// that no history consistency is enforced here.
func (s AttendanceService) Update(ctx context.Context, id int64, clockIn, clockOut *time.Time) (*domain.Attendance, error) {
	existing, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newIn := existing.ClockIn
	if clockIn != nil {
		newIn = *clockIn
	}
	newOut := existing.ClockOut
	if clockOut != nil {
		newOut = clockOut
	}
	if newOut != nil && newOut.Before(newIn) {
		return nil, ErrClockOutBeforeIn
	}
	return s.Store.Update(ctx, id, newIn, newOut)
}

func (s AttendanceService) List(ctx context.Context, page int) ([]domain.Attendance, int64, error) {
	return s.Store.ListStaff(ctx, page, attendancePerPage)
}
