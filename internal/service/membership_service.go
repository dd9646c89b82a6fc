package service

import (
	"context"

	"github.com/SUSHIbit/ProjectRara/internal/domain"
)

type MemberStore interface {
	ListMembers(ctx context.Context) ([]domain.User, error)
	GetMember(ctx context.Context, id int64) (*domain.User, error)
	ResolvePending(ctx context.Context, id int64, approve bool) (*domain.User, error)
}

type RecentTransactionLister interface {
	ListRecentByCustomer(ctx context.Context, customerID int64, limit int) ([]domain.Transaction, error)
}

// MembershipService drives the pending -> member/none workflow and the
// manager's member views.
type MembershipService struct {
	Users        MemberStore
	Benefits     BenefitLister
	Transactions RecentTransactionLister
}

type MemberDetails struct {
	Member       domain.User
	Benefits     []domain.MemberBenefit
	Transactions []domain.Transaction
}

const recentTransactionLimit = 10

func (s MembershipService) List(ctx context.Context) ([]domain.User, error) {
	return s.Users.ListMembers(ctx)
}

func (s MembershipService) Details(ctx context.Context, id int64) (*MemberDetails, error) {
	member, err := s.Users.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}
	benefits, err := s.Benefits.ListByUser(ctx, id, false)
	if err != nil {
		return nil, err
	}
	txs, err := s.Transactions.ListRecentByCustomer(ctx, id, recentTransactionLimit)
	if err != nil {
		return nil, err
	}
	return &MemberDetails{Member: *member, Benefits: benefits, Transactions: txs}, nil
}

// Approve turns a pending request into a membership. The store only
// matches currently-pending customers, so approving twice (or a
// non-pending user) reports not found.
func (s MembershipService) Approve(ctx context.Context, id int64) (*domain.User, error) {
	return s.Users.ResolvePending(ctx, id, true)
}

// Reject clears the pending flag and leaves is_member untouched.
func (s MembershipService) Reject(ctx context.Context, id int64) (*domain.User, error) {
	return s.Users.ResolvePending(ctx, id, false)
}
