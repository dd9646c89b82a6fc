package service

import (
	"math"

	"github.com/SUSHIbit/ProjectRara/internal/domain"
)

// Evaluation is the priced outcome of applying member benefits to a
// base price. Transactions are recorded from an Evaluation only, so a
// client can never submit an arbitrary discount.
type Evaluation struct {
	BasePrice      int64
	DiscountAmount int64
	FreeVisit      bool
	TotalPrice     int64
}

// EvaluateBenefits computes the charge for a service.
//
// Non-members (or a checkout with benefits switched off) pay the base
// price. For members, one discount benefit and one loyalty benefit may
// apply: when several are active, the highest-value discount and the
// lowest-threshold loyalty benefit win. A loyalty free visit supersedes
// the discount and the total is zero; otherwise the discounted amount
// is subtracted from the base price.
func EvaluateBenefits(basePrice int64, isMember bool, benefits []domain.MemberBenefit, visitCount int) Evaluation {
	eval := Evaluation{BasePrice: basePrice, TotalPrice: basePrice}
	if !isMember || len(benefits) == 0 {
		return eval
	}

	if d := pickDiscount(benefits); d != nil {
		eval.DiscountAmount = discountOf(basePrice, *d.Value)
	}
	if l := pickLoyalty(benefits); l != nil && visitCount >= *l.Threshold {
		eval.FreeVisit = true
	}

	if eval.FreeVisit {
		eval.TotalPrice = 0
	} else {
		eval.TotalPrice = basePrice - eval.DiscountAmount
	}
	return eval
}

func pickDiscount(benefits []domain.MemberBenefit) *domain.MemberBenefit {
	var best *domain.MemberBenefit
	for i := range benefits {
		b := &benefits[i]
		if !b.IsActive || b.Type != domain.BenefitDiscount || b.Value == nil {
			continue
		}
		if best == nil || *b.Value > *best.Value {
			best = b
		}
	}
	return best
}

func pickLoyalty(benefits []domain.MemberBenefit) *domain.MemberBenefit {
	var best *domain.MemberBenefit
	for i := range benefits {
		b := &benefits[i]
		if !b.IsActive || b.Type != domain.BenefitLoyalty || b.Threshold == nil {
			continue
		}
		if best == nil || *b.Threshold < *best.Threshold {
			best = b
		}
	}
	return best
}

// discountOf rounds half away from zero to the nearest cent.
func discountOf(basePrice int64, percent float64) int64 {
	return int64(math.Round(float64(basePrice) * percent / 100))
}
