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

type stubServices map[int64]*domain.Service

func (s stubServices) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	if svc, ok := s[id]; ok {
		return svc, nil
	}
	return nil, repository.ErrNotFound
}

type stubCatalog map[string]*domain.ServiceType

func (s stubCatalog) GetByName(_ context.Context, name string) (*domain.ServiceType, error) {
	if st, ok := s[name]; ok {
		return st, nil
	}
	return nil, repository.ErrNotFound
}

type stubCustomers map[int64]*domain.User

func (s stubCustomers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

type stubBenefits []domain.MemberBenefit

func (s stubBenefits) ListByUser(_ context.Context, userID int64, activeOnly bool) ([]domain.MemberBenefit, error) {
	var out []domain.MemberBenefit
	for _, b := range s {
		if b.UserID == userID && (!activeOnly || b.IsActive) {
			out = append(out, b)
		}
	}
	return out, nil
}

type captureTransactions struct {
	created   *repository.CreateTransactionParams
	duplicate bool
}

func (c *captureTransactions) Create(_ context.Context, p repository.CreateTransactionParams) (*domain.Transaction, error) {
	if c.duplicate {
		return nil, &pgconn.PgError{Code: "23505"}
	}
	c.created = &p
	return &domain.Transaction{
		ID:              1,
		CustomerID:      p.CustomerID,
		ServiceID:       p.ServiceID,
		TotalPrice:      domain.Money{Amount: p.TotalPrice},
		DiscountApplied: domain.Money{Amount: p.DiscountApplied},
		FreeVisit:       p.FreeVisit,
	}, nil
}

func newBillingFixture(customer *domain.User, benefits []domain.MemberBenefit) (BillingService, *captureTransactions) {
	txs := &captureTransactions{}
	svc := BillingService{
		Services: stubServices{
			10: {ID: 10, UserID: customer.ID, EmployeeID: 2, ServiceType: "haircut", Date: time.Now()},
		},
		Catalog: stubCatalog{
			"haircut": {Name: "haircut", Label: "Haircut", Price: domain.Money{Amount: 3500}},
		},
		Customers:    stubCustomers{customer.ID: customer},
		Benefits:     stubBenefits(benefits),
		Transactions: txs,
	}
	return svc, txs
}

func TestCheckoutAppliesMemberDiscount(t *testing.T) {
	member := &domain.User{ID: 5, IsMember: true, LoginCount: 2}
	value := 20.0
	svc, txs := newBillingFixture(member, []domain.MemberBenefit{
		{UserID: 5, Type: domain.BenefitDiscount, Value: &value, IsActive: true},
	})

	res, err := svc.Checkout(context.Background(), CheckoutInput{CustomerID: 5, ServiceID: 10, ApplyBenefits: true})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if txs.created.TotalPrice != 2800 || txs.created.DiscountApplied != 700 || txs.created.FreeVisit {
		t.Errorf("created = %+v, want total 2800 discount 700", txs.created)
	}
	if res.Evaluation.BasePrice != 3500 {
		t.Errorf("base price = %d, want 3500", res.Evaluation.BasePrice)
	}
}

func TestCheckoutFreeVisit(t *testing.T) {
	member := &domain.User{ID: 5, IsMember: true, LoginCount: 12}
	threshold := 10
	svc, txs := newBillingFixture(member, []domain.MemberBenefit{
		{UserID: 5, Type: domain.BenefitLoyalty, Threshold: &threshold, IsActive: true},
	})

	_, err := svc.Checkout(context.Background(), CheckoutInput{CustomerID: 5, ServiceID: 10, ApplyBenefits: true})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if !txs.created.FreeVisit || txs.created.TotalPrice != 0 {
		t.Errorf("created = %+v, want comped visit", txs.created)
	}
}

func TestCheckoutBenefitsDisabled(t *testing.T) {
	member := &domain.User{ID: 5, IsMember: true, LoginCount: 99}
	value := 50.0
	svc, txs := newBillingFixture(member, []domain.MemberBenefit{
		{UserID: 5, Type: domain.BenefitDiscount, Value: &value, IsActive: true},
	})

	_, err := svc.Checkout(context.Background(), CheckoutInput{CustomerID: 5, ServiceID: 10, ApplyBenefits: false})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if txs.created.TotalPrice != 3500 || txs.created.DiscountApplied != 0 {
		t.Errorf("created = %+v, want full base price", txs.created)
	}
}

func TestCheckoutNonMemberPaysFull(t *testing.T) {
	customer := &domain.User{ID: 5, IsMember: false}
	svc, txs := newBillingFixture(customer, nil)

	_, err := svc.Checkout(context.Background(), CheckoutInput{CustomerID: 5, ServiceID: 10, ApplyBenefits: true})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if txs.created.TotalPrice != 3500 {
		t.Errorf("total = %d, want 3500", txs.created.TotalPrice)
	}
}

func TestCheckoutCustomerMismatch(t *testing.T) {
	customer := &domain.User{ID: 5}
	svc, _ := newBillingFixture(customer, nil)

	_, err := svc.Checkout(context.Background(), CheckoutInput{CustomerID: 6, ServiceID: 10, ApplyBenefits: true})
	if !errors.Is(err, ErrCustomerMismatch) {
		t.Fatalf("Checkout: got %v, want ErrCustomerMismatch", err)
	}
}

func TestCheckoutDuplicateService(t *testing.T) {
	customer := &domain.User{ID: 5}
	svc, txs := newBillingFixture(customer, nil)
	txs.duplicate = true

	_, err := svc.Checkout(context.Background(), CheckoutInput{CustomerID: 5, ServiceID: 10, ApplyBenefits: true})
	if !errors.Is(err, ErrAlreadyBilled) {
		t.Fatalf("Checkout: got %v, want ErrAlreadyBilled", err)
	}
}

func TestCheckoutMissingService(t *testing.T) {
	customer := &domain.User{ID: 5}
	svc, _ := newBillingFixture(customer, nil)

	_, err := svc.Checkout(context.Background(), CheckoutInput{CustomerID: 5, ServiceID: 404, ApplyBenefits: true})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("Checkout: got %v, want ErrNotFound", err)
	}
}
