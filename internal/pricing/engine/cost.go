package engine

import (
	"math"

	pricingdomain "github.com/antarlabs/antar/internal/pricing/domain"
)

// AnalyzeCost derives margin and break-even volume from a total platform fee.
// Every strategy delegates here so break-even semantics stay identical across
// calculators.
func (e *Engine) AnalyzeCost(totalFee int64) pricingdomain.CostAnalysis {
	if totalFee < 0 {
		totalFee = 0
	}

	grossMargin := totalFee - e.variableCost

	var marginPercent int64
	if totalFee > 0 {
		marginPercent = roundMoney(float64(grossMargin) / float64(totalFee) * 100)
	}

	analysis := pricingdomain.CostAnalysis{
		VariableCost:  e.variableCost,
		GrossMargin:   grossMargin,
		MarginPercent: marginPercent,
		Sustainable:   grossMargin > 0,
	}
	if grossMargin > 0 {
		analysis.BreakEven = pricingdomain.BreakEven{
			Possible:     true,
			Transactions: int64(math.Ceil(float64(e.fixedMonthlyCost) / float64(grossMargin))),
		}
	}
	return analysis
}
