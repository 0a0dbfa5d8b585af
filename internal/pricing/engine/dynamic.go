package engine

import (
	"strings"

	pricingdomain "github.com/antarlabs/antar/internal/pricing/domain"
)

const (
	dynamicFlatEarning int64 = 10000

	// The company's own take is fixed regardless of surge: dynamic pricing
	// moves only the driver-service-fee component.
	companyFeeFromCustomer int64 = 5000
	companyFeeFromDriver   int64 = 3000

	floodCompoundBonus    float64 = 1.5
	mountainCompoundBonus float64 = 1.3
	touristCompoundBonus  float64 = 1.2
	rushHourCompoundBonus float64 = 1.5
)

// CalculateDynamicPricing prices the driver service fee from the city profile
// and real-time conditions. The base fee percent is scaled by the product of
// the applicable multipliers, then capped so surge can never push the fee
// past the ceiling. Multiplications commute, so the order of events does not
// matter.
func (e *Engine) CalculateDynamicPricing(in pricingdomain.QuoteInput) pricingdomain.FeeBreakdown {
	in = normalizeInput(in)

	city := e.tables.City(in.CityName)
	cond := in.Conditions

	multiplier := 1.0
	if city.WeatherSensitive {
		multiplier *= e.tables.Weather(cond.Weather)
	}
	if city.TrafficSensitive {
		multiplier *= e.tables.Traffic(cond.Traffic)
	}
	for _, event := range cond.Events {
		multiplier *= e.tables.Event(event)
	}
	multiplier *= e.tables.TimeOfDay(cond.TimeOfDay)
	if cond.DemandSurge > 0 {
		multiplier *= cond.DemandSurge
	}
	multiplier *= compoundAdjustment(city, cond)

	feePercent := city.BaseFeePercent * multiplier
	if feePercent > e.feeCapPercent {
		feePercent = e.feeCapPercent
	}
	finalPercent := round2(feePercent)

	driverEarning := dynamicFlatEarning
	if in.ItemPrice >= highValueThreshold {
		driverEarning = percentOf(in.ItemPrice, finalPercent)
	}

	// The driver service fee is what the customer pays for delivery, so it
	// takes the delivery-fee slot in the breakdown.
	totalPayment := in.ItemPrice + driverEarning + companyFeeFromCustomer
	driverNet := driverEarning - companyFeeFromDriver
	totalFee := companyFeeFromCustomer + companyFeeFromDriver

	return pricingdomain.FeeBreakdown{
		Strategy:             pricingdomain.StrategyDynamic,
		ItemPrice:            in.ItemPrice,
		DeliveryFee:          driverEarning,
		TipAmount:            0,
		CustomerFee:          companyFeeFromCustomer,
		DriverFee:            companyFeeFromDriver,
		PlatformFee:          totalFee,
		TotalCustomerPayment: totalPayment,
		DriverGrossEarning:   driverEarning,
		DriverNetEarning:     driverNet,
		CompanyRevenue:       totalFee,
		Cost:                 e.AnalyzeCost(totalFee),
		City: &pricingdomain.CityMeta{
			CityName:          strings.TrimSpace(in.CityName),
			Tier:              city.Tier,
			BaseFeePercent:    city.BaseFeePercent,
			AppliedMultiplier: round2(multiplier),
			FinalFeePercent:   finalPercent,
		},
	}
}

// compoundAdjustment boosts the multiplier when a city's sensitivity flags
// line up with the live conditions.
func compoundAdjustment(city pricingdomain.CityProfile, cond pricingdomain.Conditions) float64 {
	bonus := 1.0
	weather := strings.ToLower(strings.TrimSpace(cond.Weather))
	timeOfDay := strings.ToLower(strings.TrimSpace(cond.TimeOfDay))
	traffic := strings.ToLower(strings.TrimSpace(cond.Traffic))

	if city.FloodProne && (weather == "heavy_rain" || weather == "storm") {
		bonus *= floodCompoundBonus
	}
	if city.MountainCity && weather == "fog" {
		bonus *= mountainCompoundBonus
	}
	if city.TouristCity && timeOfDay == "evening_rush" {
		bonus *= touristCompoundBonus
	}
	if city.TrafficSensitive && (traffic == "heavy" || traffic == "gridlock") &&
		(timeOfDay == "morning_rush" || timeOfDay == "evening_rush") {
		bonus *= rushHourCompoundBonus
	}
	return bonus
}
