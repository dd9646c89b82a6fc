package service

import (
	"testing"

	"github.com/SUSHIbit/ProjectRara/internal/domain"
)

func discount(value float64, active bool) domain.MemberBenefit {
	return domain.MemberBenefit{Type: domain.BenefitDiscount, Value: &value, IsActive: active}
}

func loyalty(threshold int, active bool) domain.MemberBenefit {
	return domain.MemberBenefit{Type: domain.BenefitLoyalty, Threshold: &threshold, IsActive: active}
}

func TestEvaluateBenefits(t *testing.T) {
	tests := []struct {
		name       string
		basePrice  int64
		isMember   bool
		benefits   []domain.MemberBenefit
		visitCount int
		want       Evaluation
	}{
		{
			name:      "non-member pays base price",
			basePrice: 3500,
			isMember:  false,
			benefits:  []domain.MemberBenefit{discount(50, true)},
			want:      Evaluation{BasePrice: 3500, TotalPrice: 3500},
		},
		{
			name:      "member without benefits pays base price",
			basePrice: 3500,
			isMember:  true,
			want:      Evaluation{BasePrice: 3500, TotalPrice: 3500},
		},
		{
			name:      "discount percentage applies",
			basePrice: 10000,
			isMember:  true,
			benefits:  []domain.MemberBenefit{discount(10, true)},
			want:      Evaluation{BasePrice: 10000, DiscountAmount: 1000, TotalPrice: 9000},
		},
		{
			name:      "discount rounds to nearest cent",
			basePrice: 3500,
			isMember:  true,
			benefits:  []domain.MemberBenefit{discount(33.33, true)},
			want:      Evaluation{BasePrice: 3500, DiscountAmount: 1167, TotalPrice: 2333},
		},
		{
			name:       "loyalty threshold met comps the visit",
			basePrice:  5000,
			isMember:   true,
			benefits:   []domain.MemberBenefit{loyalty(5, true)},
			visitCount: 5,
			want:       Evaluation{BasePrice: 5000, FreeVisit: true, TotalPrice: 0},
		},
		{
			name:       "loyalty threshold not met charges full price",
			basePrice:  5000,
			isMember:   true,
			benefits:   []domain.MemberBenefit{loyalty(5, true)},
			visitCount: 4,
			want:       Evaluation{BasePrice: 5000, TotalPrice: 5000},
		},
		{
			name:       "free visit supersedes discount",
			basePrice:  5000,
			isMember:   true,
			benefits:   []domain.MemberBenefit{discount(20, true), loyalty(3, true)},
			visitCount: 10,
			want:       Evaluation{BasePrice: 5000, DiscountAmount: 1000, FreeVisit: true, TotalPrice: 0},
		},
		{
			name:      "highest discount wins among several",
			basePrice: 10000,
			isMember:  true,
			benefits:  []domain.MemberBenefit{discount(5, true), discount(25, true), discount(15, true)},
			want:      Evaluation{BasePrice: 10000, DiscountAmount: 2500, TotalPrice: 7500},
		},
		{
			name:       "lowest loyalty threshold wins among several",
			basePrice:  10000,
			isMember:   true,
			benefits:   []domain.MemberBenefit{loyalty(20, true), loyalty(8, true)},
			visitCount: 10,
			want:       Evaluation{BasePrice: 10000, FreeVisit: true, TotalPrice: 0},
		},
		{
			name:       "inactive benefits are ignored",
			basePrice:  10000,
			isMember:   true,
			benefits:   []domain.MemberBenefit{discount(50, false), loyalty(1, false)},
			visitCount: 100,
			want:       Evaluation{BasePrice: 10000, TotalPrice: 10000},
		},
		{
			name:     "zero base price yields zero everything",
			isMember: true,
			benefits: []domain.MemberBenefit{discount(50, true)},
			want:     Evaluation{},
		},
		{
			name:      "hundred percent discount comps the price",
			basePrice: 4000,
			isMember:  true,
			benefits:  []domain.MemberBenefit{discount(100, true)},
			want:      Evaluation{BasePrice: 4000, DiscountAmount: 4000, TotalPrice: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateBenefits(tt.basePrice, tt.isMember, tt.benefits, tt.visitCount)
			if got != tt.want {
				t.Errorf("EvaluateBenefits() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
