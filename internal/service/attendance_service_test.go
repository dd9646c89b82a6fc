package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SUSHIbit/ProjectRara/internal/domain"
	"github.com/SUSHIbit/ProjectRara/internal/repository"
	"github.com/jackc/pgx/v5/pgconn"
)

// memAttendanceStore mimics the Postgres repository, including the
// partial unique index on open sessions.
type memAttendanceStore struct {
	nextID  int64
	records map[int64]*domain.Attendance
}

func newMemAttendanceStore() *memAttendanceStore {
	return &memAttendanceStore{records: make(map[int64]*domain.Attendance)}
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

func (m *memAttendanceStore) findOpen(userID int64, day time.Time) *domain.Attendance {
	for _, a := range m.records {
		if a.UserID == userID && sameDay(a.Date, day) && a.ClockOut == nil {
			return a
		}
	}
	return nil
}

func (m *memAttendanceStore) Insert(_ context.Context, userID int64, day, clockIn time.Time) (*domain.Attendance, error) {
	if m.findOpen(userID, day) != nil {
		return nil, &pgconn.PgError{Code: "23505"}
	}
	m.nextID++
	a := &domain.Attendance{ID: m.nextID, UserID: userID, Date: day, ClockIn: clockIn}
	m.records[a.ID] = a
	return a, nil
}

func (m *memAttendanceStore) FindOpen(_ context.Context, userID int64, day time.Time) (*domain.Attendance, error) {
	if a := m.findOpen(userID, day); a != nil {
		return a, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memAttendanceStore) CloseOpen(_ context.Context, userID int64, day, clockOut time.Time) (*domain.Attendance, error) {
	a := m.findOpen(userID, day)
	if a == nil {
		return nil, repository.ErrNotFound
	}
	out := clockOut
	a.ClockOut = &out
	return a, nil
}

func (m *memAttendanceStore) GetByID(_ context.Context, id int64) (*domain.Attendance, error) {
	a, ok := m.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return a, nil
}

func (m *memAttendanceStore) Update(_ context.Context, id int64, clockIn time.Time, clockOut *time.Time) (*domain.Attendance, error) {
	a, ok := m.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	a.ClockIn = clockIn
	a.ClockOut = clockOut
	return a, nil
}

func (m *memAttendanceStore) ListStaff(_ context.Context, page, perPage int) ([]domain.Attendance, int64, error) {
	var items []domain.Attendance
	for _, a := range m.records {
		items = append(items, *a)
	}
	return items, int64(len(items)), nil
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

var noon = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestClockInTwiceSameDayFails(t *testing.T) {
	svc := AttendanceService{Store: newMemAttendanceStore(), Now: fixedClock(noon)}
	ctx := context.Background()

	if _, err := svc.ClockIn(ctx, 1); err != nil {
		t.Fatalf("first clock-in: %v", err)
	}
	if _, err := svc.ClockIn(ctx, 1); !errors.Is(err, ErrAlreadyClockedIn) {
		t.Fatalf("second clock-in: got %v, want ErrAlreadyClockedIn", err)
	}
}

func TestClockOutWithoutClockInFails(t *testing.T) {
	svc := AttendanceService{Store: newMemAttendanceStore(), Now: fixedClock(noon)}

	if _, err := svc.ClockOut(context.Background(), 1); !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("clock-out: got %v, want ErrNoActiveSession", err)
	}
}

func TestClockInThenOutClearsStatus(t *testing.T) {
	svc := AttendanceService{Store: newMemAttendanceStore(), Now: fixedClock(noon)}
	ctx := context.Background()

	a, err := svc.ClockIn(ctx, 7)
	if err != nil {
		t.Fatalf("clock-in: %v", err)
	}

	status, err := svc.CurrentStatus(ctx, 7)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.ClockedIn || status.ID == nil || *status.ID != a.ID {
		t.Fatalf("status after clock-in = %+v, want clocked in with id %d", status, a.ID)
	}

	if _, err := svc.ClockOut(ctx, 7); err != nil {
		t.Fatalf("clock-out: %v", err)
	}

	status, err = svc.CurrentStatus(ctx, 7)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.ClockedIn {
		t.Fatalf("status after clock-out = %+v, want not clocked in", status)
	}
}

func TestClockInAgainAfterClockOutSameDay(t *testing.T) {
	// Closing the session frees the day: only *open* sessions are unique.
	svc := AttendanceService{Store: newMemAttendanceStore(), Now: fixedClock(noon)}
	ctx := context.Background()

	if _, err := svc.ClockIn(ctx, 1); err != nil {
		t.Fatalf("clock-in: %v", err)
	}
	if _, err := svc.ClockOut(ctx, 1); err != nil {
		t.Fatalf("clock-out: %v", err)
	}
	if _, err := svc.ClockIn(ctx, 1); err != nil {
		t.Fatalf("second clock-in after clock-out: %v", err)
	}
}

func TestManagerUpdateValidatesOrder(t *testing.T) {
	store := newMemAttendanceStore()
	svc := AttendanceService{Store: store, Now: fixedClock(noon)}
	ctx := context.Background()

	a, err := svc.ClockIn(ctx, 2)
	if err != nil {
		t.Fatalf("clock-in: %v", err)
	}

	before := noon.Add(-2 * time.Hour)
	if _, err := svc.Update(ctx, a.ID, nil, &before); !errors.Is(err, ErrClockOutBeforeIn) {
		t.Fatalf("update with clock_out before clock_in: got %v, want ErrClockOutBeforeIn", err)
	}

	after := noon.Add(4 * time.Hour)
	updated, err := svc.Update(ctx, a.ID, nil, &after)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ClockOut == nil || !updated.ClockOut.Equal(after) {
		t.Fatalf("clock_out = %v, want %v", updated.ClockOut, after)
	}
}

func TestManagerUpdateMissingRecord(t *testing.T) {
	svc := AttendanceService{Store: newMemAttendanceStore(), Now: fixedClock(noon)}

	if _, err := svc.Update(context.Background(), 99, nil, nil); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("update: got %v, want ErrNotFound", err)
	}
}
