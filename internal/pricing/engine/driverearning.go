package engine

import (
	pricingdomain "github.com/antarlabs/antar/internal/pricing/domain"
)

const (
	driverFlatEarning     int64   = 10000
	driverPlatformPercent float64 = 25
	worthwhileThreshold   int64   = 7500
	assumedTripHours      float64 = 1.5
)

// distancePercent keys the percentage-of-item-price earning by distance
// bucket for high-value orders.
var distancePercent = map[pricingdomain.DistanceClass]float64{
	pricingdomain.DistanceNear:   3,
	pricingdomain.DistanceMedium: 4,
	pricingdomain.DistanceFar:    5,
}

// conditionMultiplier scales the active base earning. rain_night is its own
// entry at 2.0, worse than rain (1.5) times night (1.2): a business rule,
// not a derived value.
var conditionMultiplier = map[pricingdomain.ConditionClass]float64{
	pricingdomain.ConditionNormal:    1.0,
	pricingdomain.ConditionRain:      1.5,
	pricingdomain.ConditionTraffic:   1.3,
	pricingdomain.ConditionNight:     1.2,
	pricingdomain.ConditionRainNight: 2.0,
}

// CalculateDriverEarning prices an order from the driver's seat: a flat or
// distance-percentage base scaled by road conditions, tip on top, and a flat
// 25% platform take. Rounding happens at the fee step so net amounts
// reproduce exactly.
func (e *Engine) CalculateDriverEarning(in pricingdomain.QuoteInput) pricingdomain.FeeBreakdown {
	in = normalizeInput(in)

	base := driverFlatEarning
	if in.ItemPrice >= highValueThreshold {
		pct, ok := distancePercent[in.DistanceClass]
		if !ok {
			pct = distancePercent[pricingdomain.DistanceNear]
		}
		base = percentOf(in.ItemPrice, pct)
	}

	mult, ok := conditionMultiplier[in.ConditionClass]
	if !ok {
		mult = 1.0
	}
	scaled := roundMoney(float64(base) * mult)

	gross := scaled + in.TipAmount
	platformFee := roundMoney(float64(gross) * driverPlatformPercent / 100)
	net := gross - platformFee

	var effectiveRate int64
	if in.ItemPrice > 0 {
		effectiveRate = roundMoney(float64(net) / float64(in.ItemPrice) * 100)
	}

	return pricingdomain.FeeBreakdown{
		Strategy:             pricingdomain.StrategyDriverEarning,
		ItemPrice:            in.ItemPrice,
		DeliveryFee:          scaled,
		TipAmount:            in.TipAmount,
		CustomerFee:          0,
		DriverFee:            platformFee,
		PlatformFee:          platformFee,
		TotalCustomerPayment: in.ItemPrice + scaled + in.TipAmount,
		DriverGrossEarning:   gross,
		DriverNetEarning:     net,
		CompanyRevenue:       platformFee,
		Cost:                 e.AnalyzeCost(platformFee),
		Driver: &pricingdomain.DriverMetrics{
			EffectiveRatePercent: effectiveRate,
			EarningPerHour:       roundMoney(float64(net) / assumedTripHours),
			Worthwhile:           net >= worthwhileThreshold,
		},
	}
}
