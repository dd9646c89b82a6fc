package service

import (
	"context"
	"errors"

	"github.com/SUSHIbit/ProjectRara/internal/db"
	"github.com/SUSHIbit/ProjectRara/internal/domain"
	"github.com/SUSHIbit/ProjectRara/internal/repository"
)

var (
	ErrAlreadyBilled      = errors.New("service already has a transaction")
	ErrCustomerMismatch   = errors.New("service does not belong to this customer")
	ErrUnknownServiceType = errors.New("unknown service type")
)

type ServiceGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

type PriceResolver interface {
	GetByName(ctx context.Context, name string) (*domain.ServiceType, error)
}

type CustomerGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type BenefitLister interface {
	ListByUser(ctx context.Context, userID int64, activeOnly bool) ([]domain.MemberBenefit, error)
}

type TransactionCreator interface {
	Create(ctx context.Context, p repository.CreateTransactionParams) (*domain.Transaction, error)
}

// BillingService prices a recorded service and persists the resulting
// transaction. Prices always come from the catalog and the benefit
// evaluation runs server-side; callers only choose whether benefits
// apply at all.
type BillingService struct {
	Services     ServiceGetter
	Catalog      PriceResolver
	Customers    CustomerGetter
	Benefits     BenefitLister
	Transactions TransactionCreator
}

type CheckoutInput struct {
	CustomerID    int64
	ServiceID     int64
	ApplyBenefits bool
}

type CheckoutResult struct {
	Transaction domain.Transaction
	Evaluation  Evaluation
}

func (s BillingService) Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	svc, err := s.Services.GetByID(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc.UserID != in.CustomerID {
		return nil, ErrCustomerMismatch
	}

	st, err := s.Catalog.GetByName(ctx, svc.ServiceType)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnknownServiceType
		}
		return nil, err
	}

	customer, err := s.Customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}

	apply := in.ApplyBenefits && customer.IsMember
	var benefits []domain.MemberBenefit
	if apply {
		benefits, err = s.Benefits.ListByUser(ctx, customer.ID, true)
		if err != nil {
			return nil, err
		}
	}

	// login_count stands in for the loyalty visit count.
	eval := EvaluateBenefits(st.Price.Amount, apply, benefits, customer.LoginCount)

	tx, err := s.Transactions.Create(ctx, repository.CreateTransactionParams{
		CustomerID:      in.CustomerID,
		ServiceID:       in.ServiceID,
		TotalPrice:      eval.TotalPrice,
		DiscountApplied: eval.DiscountAmount,
		FreeVisit:       eval.FreeVisit,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrAlreadyBilled
		}
		return nil, err
	}
	return &CheckoutResult{Transaction: *tx, Evaluation: eval}, nil
}
