package engine

import (
	pricingdomain "github.com/antarlabs/antar/internal/pricing/domain"
)

const (
	splitFeePercent float64 = 6
	splitFeeMinimum int64   = 7000
)

// CalculateSplitFee splits the platform fee exactly in half between customer
// and driver. When the fee is odd the driver side absorbs the extra Rupiah,
// so CustomerFee + DriverFee always equals PlatformFee.
//
// DriverNetEarning may go negative when the delivery fee and tip are small.
// That is deliberate: it feeds the worthwhile-order check downstream and is
// not clamped here.
func (e *Engine) CalculateSplitFee(in pricingdomain.QuoteInput) pricingdomain.FeeBreakdown {
	in = normalizeInput(in)

	totalFee := splitFeeMinimum
	if in.ItemPrice >= highValueThreshold {
		totalFee = maxMoney(percentOf(in.ItemPrice, splitFeePercent), splitFeeMinimum)
	}

	customerFee := roundMoney(float64(totalFee) / 2)
	driverFee := totalFee - customerFee

	totalPayment := in.ItemPrice + in.DeliveryFee + in.TipAmount + customerFee
	driverGross := in.DeliveryFee + in.TipAmount
	driverNet := driverGross - driverFee

	breakdown := pricingdomain.FeeBreakdown{
		Strategy:             pricingdomain.StrategySplit,
		ItemPrice:            in.ItemPrice,
		DeliveryFee:          in.DeliveryFee,
		TipAmount:            in.TipAmount,
		CustomerFee:          customerFee,
		DriverFee:            driverFee,
		PlatformFee:          totalFee,
		TotalCustomerPayment: totalPayment,
		DriverGrossEarning:   driverGross,
		DriverNetEarning:     driverNet,
		CompanyRevenue:       totalFee,
		Cost:                 e.AnalyzeCost(totalFee),
		Fairness:             splitFairness(customerFee, totalPayment, driverFee, driverGross),
	}
	return breakdown
}

func splitFairness(customerFee, totalPayment, driverFee, driverGross int64) *pricingdomain.FairnessMetrics {
	metrics := &pricingdomain.FairnessMetrics{}
	if totalPayment > 0 {
		metrics.CustomerFeeShareOfPayment = roundMoney(float64(customerFee) / float64(totalPayment) * 100)
	}
	if driverGross > 0 {
		metrics.DriverFeeShareOfGross = roundMoney(float64(driverFee) / float64(driverGross) * 100)
	}
	return metrics
}
