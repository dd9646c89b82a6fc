package service

import (
	"context"
	"errors"

	"github.com/SUSHIbit/ProjectRara/internal/domain"
	"github.com/SUSHIbit/ProjectRara/internal/repository"
)

var (
	ErrNotMember        = errors.New("user is not a member")
	ErrDiscountValue    = errors.New("discount value must be between 0 and 100")
	ErrLoyaltyThreshold = errors.New("loyalty threshold must be at least 1")
	ErrBadBenefitType   = errors.New("type must be discount or loyalty")
)

type BenefitStore interface {
	Create(ctx context.Context, p repository.CreateBenefitParams) (*domain.MemberBenefit, error)
	Update(ctx context.Context, id int64, p repository.UpdateBenefitParams) (*domain.MemberBenefit, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.MemberBenefit, error)
	List(ctx context.Context) ([]domain.MemberBenefit, error)
	ListByUser(ctx context.Context, userID int64, activeOnly bool) ([]domain.MemberBenefit, error)
}

// BenefitService manages benefit configuration. Value/threshold bounds
// are enforced here at write time, which is what keeps the evaluator's
// arithmetic from ever producing a negative total.
type BenefitService struct {
	Users CustomerGetter
	Store BenefitStore
}

type BenefitInput struct {
	Type      domain.BenefitType
	Value     *float64
	Threshold *int
	IsActive  bool
}

func (s BenefitService) Create(ctx context.Context, userID int64, in BenefitInput) (*domain.MemberBenefit, error) {
	if err := validateBenefit(in); err != nil {
		return nil, err
	}
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsMember {
		return nil, ErrNotMember
	}
	return s.Store.Create(ctx, repository.CreateBenefitParams{
		UserID:    userID,
		Type:      in.Type,
		Value:     in.Value,
		Threshold: in.Threshold,
		IsActive:  in.IsActive,
	})
}

func (s BenefitService) Update(ctx context.Context, id int64, in BenefitInput) (*domain.MemberBenefit, error) {
	if err := validateBenefit(in); err != nil {
		return nil, err
	}
	return s.Store.Update(ctx, id, repository.UpdateBenefitParams{
		Type:      in.Type,
		Value:     in.Value,
		Threshold: in.Threshold,
		IsActive:  in.IsActive,
	})
}

func (s BenefitService) Delete(ctx context.Context, id int64) error {
	return s.Store.Delete(ctx, id)
}

func (s BenefitService) List(ctx context.Context) ([]domain.MemberBenefit, error) {
	return s.Store.List(ctx)
}

func (s BenefitService) ListForMember(ctx context.Context, userID int64) ([]domain.MemberBenefit, error) {
	return s.Store.ListByUser(ctx, userID, false)
}

func validateBenefit(in BenefitInput) error {
	switch in.Type {
	case domain.BenefitDiscount:
		if in.Value == nil || *in.Value < 0 || *in.Value > 100 {
			return ErrDiscountValue
		}
	case domain.BenefitLoyalty:
		if in.Threshold == nil || *in.Threshold < 1 {
			return ErrLoyaltyThreshold
		}
	default:
		return ErrBadBenefitType
	}
	return nil
}
