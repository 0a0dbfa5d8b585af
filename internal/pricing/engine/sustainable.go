package engine

import (
	pricingdomain "github.com/antarlabs/antar/internal/pricing/domain"
)

const (
	// sustainableFloor is the minimum combined fee a quote must carry to
	// stay above the per-order variable cost with some headroom.
	sustainableFloor int64 = 6000

	bootstrapFeeMinimum int64 = 7000

	growthCustomerPercent float64 = 4
	growthCustomerMinimum int64   = 4000
	growthDriverPercent   float64 = 10

	matureCustomerFee   int64   = 2000
	matureDriverPercent float64 = 25
	matureDriverMinimum int64   = 4000
)

// CalculateSustainableFee allocates the platform fee between customer and
// driver according to the business phase. Unknown phases fall back to
// bootstrap, the most customer-funded allocation.
//
//   - bootstrap: the customer absorbs the full fee, the driver pays nothing.
//   - growth: a smaller customer fee plus a slice of the delivery fee from
//     the driver; any shortfall under the sustainability floor is added to
//     the customer side only, never the driver's.
//   - mature: a flat transparency fee from the customer, the rest taken from
//     driver earnings with an absolute minimum.
func (e *Engine) CalculateSustainableFee(in pricingdomain.QuoteInput) pricingdomain.FeeBreakdown {
	in = normalizeInput(in)

	var feeToCustomer, feeFromDriver int64
	switch in.Phase {
	case pricingdomain.PhaseGrowth:
		feeToCustomer = growthCustomerMinimum
		if in.ItemPrice >= highValueThreshold {
			feeToCustomer = maxMoney(percentOf(in.ItemPrice, growthCustomerPercent), growthCustomerMinimum)
		}
		feeFromDriver = percentOf(in.DeliveryFee, growthDriverPercent)
		if shortfall := sustainableFloor - (feeToCustomer + feeFromDriver); shortfall > 0 {
			feeToCustomer += shortfall
		}
	case pricingdomain.PhaseMature:
		feeToCustomer = matureCustomerFee
		feeFromDriver = maxMoney(percentOf(in.DeliveryFee+in.TipAmount, matureDriverPercent), matureDriverMinimum)
	default: // bootstrap
		feeToCustomer = bootstrapFeeMinimum
		if in.ItemPrice >= highValueThreshold {
			feeToCustomer = maxMoney(percentOf(in.ItemPrice, splitFeePercent), sustainableFloor)
		}
		feeFromDriver = 0
	}

	totalFee := feeToCustomer + feeFromDriver
	totalPayment := in.ItemPrice + in.DeliveryFee + in.TipAmount + feeToCustomer
	driverGross := in.DeliveryFee + in.TipAmount
	driverNet := driverGross - feeFromDriver

	return pricingdomain.FeeBreakdown{
		Strategy:             pricingdomain.StrategySustainable,
		ItemPrice:            in.ItemPrice,
		DeliveryFee:          in.DeliveryFee,
		TipAmount:            in.TipAmount,
		CustomerFee:          feeToCustomer,
		DriverFee:            feeFromDriver,
		PlatformFee:          totalFee,
		TotalCustomerPayment: totalPayment,
		DriverGrossEarning:   driverGross,
		DriverNetEarning:     driverNet,
		CompanyRevenue:       totalFee,
		Cost:                 e.AnalyzeCost(totalFee),
	}
}
