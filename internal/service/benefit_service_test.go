package service

import (
	"context"
	"errors"
	"testing"

	"github.com/SUSHIbit/ProjectRara/internal/domain"
	"github.com/SUSHIbit/ProjectRara/internal/repository"
)

type memBenefitStore struct {
	nextID   int64
	benefits map[int64]*domain.MemberBenefit
}

func newMemBenefitStore() *memBenefitStore {
	return &memBenefitStore{benefits: make(map[int64]*domain.MemberBenefit)}
}

func (m *memBenefitStore) Create(_ context.Context, p repository.CreateBenefitParams) (*domain.MemberBenefit, error) {
	m.nextID++
	b := &domain.MemberBenefit{
		ID:        m.nextID,
		UserID:    p.UserID,
		Type:      p.Type,
		Value:     p.Value,
		Threshold: p.Threshold,
		IsActive:  p.IsActive,
	}
	m.benefits[b.ID] = b
	return b, nil
}

func (m *memBenefitStore) Update(_ context.Context, id int64, p repository.UpdateBenefitParams) (*domain.MemberBenefit, error) {
	b, ok := m.benefits[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	b.Type = p.Type
	b.Value = p.Value
	b.Threshold = p.Threshold
	b.IsActive = p.IsActive
	return b, nil
}

func (m *memBenefitStore) Delete(_ context.Context, id int64) error {
	if _, ok := m.benefits[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.benefits, id)
	return nil
}

func (m *memBenefitStore) GetByID(_ context.Context, id int64) (*domain.MemberBenefit, error) {
	b, ok := m.benefits[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return b, nil
}

func (m *memBenefitStore) List(_ context.Context) ([]domain.MemberBenefit, error) {
	var out []domain.MemberBenefit
	for _, b := range m.benefits {
		out = append(out, *b)
	}
	return out, nil
}

func (m *memBenefitStore) ListByUser(_ context.Context, userID int64, activeOnly bool) ([]domain.MemberBenefit, error) {
	var out []domain.MemberBenefit
	for _, b := range m.benefits {
		if b.UserID == userID && (!activeOnly || b.IsActive) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func TestCreateBenefitForMember(t *testing.T) {
	svc := BenefitService{
		Users: stubCustomers{1: {ID: 1, IsMember: true}},
		Store: newMemBenefitStore(),
	}
	value := 15.0

	b, err := svc.Create(context.Background(), 1, BenefitInput{
		Type:     domain.BenefitDiscount,
		Value:    &value,
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if b.UserID != 1 || *b.Value != 15.0 || !b.IsActive {
		t.Errorf("benefit = %+v", b)
	}
}

func TestCreateBenefitForNonMemberFails(t *testing.T) {
	svc := BenefitService{
		Users: stubCustomers{1: {ID: 1, IsMember: false}},
		Store: newMemBenefitStore(),
	}
	value := 15.0

	_, err := svc.Create(context.Background(), 1, BenefitInput{
		Type:  domain.BenefitDiscount,
		Value: &value,
	})
	if !errors.Is(err, ErrNotMember) {
		t.Fatalf("Create: got %v, want ErrNotMember", err)
	}
}

func TestBenefitValidation(t *testing.T) {
	bad := 150.0
	negative := -5.0
	zero := 0
	tests := []struct {
		name string
		in   BenefitInput
		want error
	}{
		{"discount without value", BenefitInput{Type: domain.BenefitDiscount}, ErrDiscountValue},
		{"discount above 100", BenefitInput{Type: domain.BenefitDiscount, Value: &bad}, ErrDiscountValue},
		{"negative discount", BenefitInput{Type: domain.BenefitDiscount, Value: &negative}, ErrDiscountValue},
		{"loyalty without threshold", BenefitInput{Type: domain.BenefitLoyalty}, ErrLoyaltyThreshold},
		{"loyalty threshold below one", BenefitInput{Type: domain.BenefitLoyalty, Threshold: &zero}, ErrLoyaltyThreshold},
		{"unknown type", BenefitInput{Type: "cashback"}, ErrBadBenefitType},
	}

	svc := BenefitService{
		Users: stubCustomers{1: {ID: 1, IsMember: true}},
		Store: newMemBenefitStore(),
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), 1, tt.in); !errors.Is(err, tt.want) {
				t.Errorf("Create: got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUpdateAndDeleteBenefit(t *testing.T) {
	store := newMemBenefitStore()
	svc := BenefitService{
		Users: stubCustomers{1: {ID: 1, IsMember: true}},
		Store: store,
	}
	ctx := context.Background()
	value := 10.0

	b, err := svc.Create(ctx, 1, BenefitInput{Type: domain.BenefitDiscount, Value: &value, IsActive: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(ctx, b.ID, BenefitInput{Type: domain.BenefitDiscount, Value: &value, IsActive: false})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.IsActive {
		t.Errorf("benefit still active after deactivation")
	}

	if err := svc.Delete(ctx, b.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.GetByID(ctx, b.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("GetByID after delete: got %v, want ErrNotFound", err)
	}
}
