// Package domain contains the value records exchanged with the fee engine.
// Everything here is immutable once computed; amounts are integer Rupiah.
package domain

import (
	"encoding/json"
	"errors"
	"strings"
)

var (
	ErrInvalidStrategy       = errors.New("pricing: invalid strategy")
	ErrInvalidPhase          = errors.New("pricing: invalid business phase")
	ErrInvalidDistanceClass  = errors.New("pricing: invalid distance class")
	ErrInvalidConditionClass = errors.New("pricing: invalid condition class")
)

// Strategy selects which fee calculator prices a quote.
type Strategy string

const (
	StrategySplit         Strategy = "split"
	StrategySustainable   Strategy = "sustainable"
	StrategyDynamic       Strategy = "dynamic"
	StrategyDriverEarning Strategy = "driver_earning"
)

func ParseStrategy(value string) (Strategy, error) {
	switch Strategy(strings.TrimSpace(strings.ToLower(value))) {
	case StrategySplit:
		return StrategySplit, nil
	case StrategySustainable:
		return StrategySustainable, nil
	case StrategyDynamic:
		return StrategyDynamic, nil
	case StrategyDriverEarning:
		return StrategyDriverEarning, nil
	default:
		return "", ErrInvalidStrategy
	}
}

// Phase is the business lifecycle stage deciding how the sustainable fee is
// allocated between customer and driver.
type Phase string

const (
	PhaseBootstrap Phase = "bootstrap"
	PhaseGrowth    Phase = "growth"
	PhaseMature    Phase = "mature"
)

func ParsePhase(value string) (Phase, error) {
	switch Phase(strings.TrimSpace(strings.ToLower(value))) {
	case PhaseBootstrap:
		return PhaseBootstrap, nil
	case PhaseGrowth:
		return PhaseGrowth, nil
	case PhaseMature:
		return PhaseMature, nil
	default:
		return "", ErrInvalidPhase
	}
}

// DistanceClass is the driver-entered rough distance bucket for an order.
type DistanceClass string

const (
	DistanceNear   DistanceClass = "near"
	DistanceMedium DistanceClass = "medium"
	DistanceFar    DistanceClass = "far"
)

func ParseDistanceClass(value string) (DistanceClass, error) {
	switch DistanceClass(strings.TrimSpace(strings.ToLower(value))) {
	case DistanceNear:
		return DistanceNear, nil
	case DistanceMedium:
		return DistanceMedium, nil
	case DistanceFar:
		return DistanceFar, nil
	default:
		return "", ErrInvalidDistanceClass
	}
}

// ConditionClass is the driver-entered road condition bucket. RainNight is an
// independent table entry, deliberately worse than rain and night combined.
type ConditionClass string

const (
	ConditionNormal    ConditionClass = "normal"
	ConditionRain      ConditionClass = "rain"
	ConditionTraffic   ConditionClass = "traffic"
	ConditionNight     ConditionClass = "night"
	ConditionRainNight ConditionClass = "rain_night"
)

func ParseConditionClass(value string) (ConditionClass, error) {
	switch ConditionClass(strings.TrimSpace(strings.ToLower(value))) {
	case ConditionNormal:
		return ConditionNormal, nil
	case ConditionRain:
		return ConditionRain, nil
	case ConditionTraffic:
		return ConditionTraffic, nil
	case ConditionNight:
		return ConditionNight, nil
	case ConditionRainNight:
		return ConditionRainNight, nil
	default:
		return "", ErrInvalidConditionClass
	}
}

// CityTier groups cities by market size.
type CityTier string

const (
	CityTier1 CityTier = "tier_1"
	CityTier2 CityTier = "tier_2"
	CityTier3 CityTier = "tier_3"
)

// CityProfile describes how a city reacts to real-time conditions.
type CityProfile struct {
	Tier             CityTier `json:"tier"`
	BaseFeePercent   float64  `json:"base_fee_percent"`
	TrafficSensitive bool     `json:"traffic_sensitive"`
	WeatherSensitive bool     `json:"weather_sensitive"`
	FloodProne       bool     `json:"flood_prone"`
	MountainCity     bool     `json:"mountain_city"`
	TouristCity      bool     `json:"tourist_city"`
	HeatSensitive    bool     `json:"heat_sensitive"`
	PremiumMarket    bool     `json:"premium_market"`
	IndustrialCity   bool     `json:"industrial_city"`
}

// Conditions carries the real-time context for dynamic pricing. Absent fields
// are neutral: unknown keys resolve to a 1.0 multiplier.
type Conditions struct {
	Weather     string   `json:"weather,omitempty"`
	Traffic     string   `json:"traffic,omitempty"`
	Events      []string `json:"events,omitempty"`
	TimeOfDay   string   `json:"time_of_day,omitempty"`
	DemandSurge float64  `json:"demand_surge,omitempty"`
}

// QuoteInput is the single input record shared by every fee strategy. Fields
// irrelevant to a given strategy are ignored by it.
type QuoteInput struct {
	ItemPrice      int64          `json:"item_price"`
	DeliveryFee    int64          `json:"delivery_fee"`
	TipAmount      int64          `json:"tip_amount"`
	CityName       string         `json:"city_name,omitempty"`
	Conditions     Conditions     `json:"conditions,omitempty"`
	DistanceClass  DistanceClass  `json:"distance_class,omitempty"`
	ConditionClass ConditionClass `json:"condition_class,omitempty"`
	Phase          Phase          `json:"phase,omitempty"`
}

// BreakEven is the monthly transaction count needed to cover fixed costs at
// the quote's margin. It serializes as the number, or "Not possible" when the
// margin cannot cover fixed costs at any volume.
type BreakEven struct {
	Possible     bool
	Transactions int64
}

func (b BreakEven) MarshalJSON() ([]byte, error) {
	if !b.Possible {
		return json.Marshal("Not possible")
	}
	return json.Marshal(b.Transactions)
}

func (b *BreakEven) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*b = BreakEven{Possible: true, Transactions: n}
		return nil
	}
	*b = BreakEven{}
	return nil
}

// CostAnalysis reports whether the platform fee on a single quote covers the
// per-order variable cost, and at what volume it covers fixed costs.
type CostAnalysis struct {
	VariableCost  int64     `json:"variable_cost"`
	GrossMargin   int64     `json:"gross_margin"`
	MarginPercent int64     `json:"margin_percent"`
	Sustainable   bool      `json:"sustainable"`
	BreakEven     BreakEven `json:"break_even_transactions"`
}

// FairnessMetrics describes how a split fee lands on each side.
type FairnessMetrics struct {
	CustomerFeeShareOfPayment int64 `json:"customer_fee_share_of_payment"`
	DriverFeeShareOfGross     int64 `json:"driver_fee_share_of_gross"`
}

// CityMeta is attached by the dynamic strategy for auditability.
type CityMeta struct {
	CityName          string   `json:"city_name"`
	Tier              CityTier `json:"tier"`
	BaseFeePercent    float64  `json:"base_fee_percent"`
	AppliedMultiplier float64  `json:"applied_multiplier"`
	FinalFeePercent   float64  `json:"final_fee_percent"`
}

// DriverMetrics is attached by the driver-earning strategy.
type DriverMetrics struct {
	EffectiveRatePercent int64 `json:"effective_rate_percent"`
	EarningPerHour       int64 `json:"earning_per_hour"`
	Worthwhile           bool  `json:"worthwhile"`
}

// FeeBreakdown is the output of every strategy. Two invariants hold for all
// of them, in exact integer arithmetic:
//
//	TotalCustomerPayment == ItemPrice + DeliveryFee + TipAmount + CustomerFee
//	DriverNetEarning     == DriverGrossEarning - DriverFee
type FeeBreakdown struct {
	Strategy             Strategy         `json:"strategy"`
	ItemPrice            int64            `json:"item_price"`
	DeliveryFee          int64            `json:"delivery_fee"`
	TipAmount            int64            `json:"tip_amount"`
	CustomerFee          int64            `json:"customer_fee"`
	DriverFee            int64            `json:"driver_fee"`
	PlatformFee          int64            `json:"platform_fee"`
	TotalCustomerPayment int64            `json:"total_customer_payment"`
	DriverGrossEarning   int64            `json:"driver_gross_earning"`
	DriverNetEarning     int64            `json:"driver_net_earning"`
	CompanyRevenue       int64            `json:"company_revenue"`
	Cost                 CostAnalysis     `json:"cost_analysis"`
	Fairness             *FairnessMetrics `json:"fairness,omitempty"`
	City                 *CityMeta        `json:"city,omitempty"`
	Driver               *DriverMetrics   `json:"driver_metrics,omitempty"`
}

// FeeStrategy is the single polymorphic shape all calculators implement.
type FeeStrategy interface {
	Compute(in QuoteInput) FeeBreakdown
}
