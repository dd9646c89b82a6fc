package service

import (
	"context"
	"time"

	"github.com/SUSHIbit/ProjectRara/internal/domain"
)

// SalesSummary is one aggregation bucket over transactions.
type SalesSummary struct {
	TotalSales       int64
	TotalDiscounts   int64
	FreeVisits       int
	NetSales         int64
	TransactionCount int
}

type DailySales struct {
	Date         time.Time
	Summary      SalesSummary
	Transactions []domain.Transaction
}

// MonthlySales carries month totals plus per-day buckets keyed by
// day-of-month. Days without transactions are absent from Daily.
type MonthlySales struct {
	Year         int
	Month        time.Month
	Summary      SalesSummary
	Daily        map[int]SalesSummary
	Transactions []domain.Transaction
}

type SalesStore interface {
	ListByServiceDate(ctx context.Context, date time.Time) ([]domain.Transaction, error)
	ListByMonth(ctx context.Context, year int, month time.Month) ([]domain.Transaction, error)
}

type SalesService struct {
	Store SalesStore
}

func (s SalesService) Daily(ctx context.Context, date time.Time) (*DailySales, error) {
	txs, err := s.Store.ListByServiceDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return &DailySales{Date: date, Summary: Summarize(txs), Transactions: txs}, nil
}

func (s SalesService) Monthly(ctx context.Context, year int, month time.Month) (*MonthlySales, error) {
	txs, err := s.Store.ListByMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}

	daily := make(map[int]SalesSummary)
	for _, t := range txs {
		day := t.ServiceDate.Day()
		bucket := daily[day]
		addTransaction(&bucket, t)
		daily[day] = bucket
	}

	return &MonthlySales{
		Year:         year,
		Month:        month,
		Summary:      Summarize(txs),
		Daily:        daily,
		Transactions: txs,
	}, nil
}

// Summarize folds transactions into one bucket.
func Summarize(txs []domain.Transaction) SalesSummary {
	var sum SalesSummary
	for _, t := range txs {
		addTransaction(&sum, t)
	}
	return sum
}

func addTransaction(sum *SalesSummary, t domain.Transaction) {
	sum.TotalSales += t.TotalPrice.Amount
	sum.TotalDiscounts += t.DiscountApplied.Amount
	if t.FreeVisit {
		sum.FreeVisits++
	}
	sum.NetSales = sum.TotalSales - sum.TotalDiscounts
	sum.TransactionCount++
}
