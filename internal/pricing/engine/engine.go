// Package engine implements the fee calculation strategies. Every calculator
// is a pure function over its input: no I/O, no shared mutable state, safe
// for any number of concurrent callers.
package engine

import (
	"math"

	pricingdomain "github.com/antarlabs/antar/internal/pricing/domain"
)

const (
	// DefaultDeliveryFee is assumed when a caller omits the delivery fee.
	DefaultDeliveryFee int64 = 5000

	// highValueThreshold switches calculators from flat fees to
	// percentage-of-item-price fees.
	highValueThreshold int64 = 100_000

	defaultVariableCost     int64   = 4000
	defaultFixedMonthlyCost int64   = 8_400_000
	defaultFeeCapPercent    float64 = 15
)

// Options tune the engine. Zero values fall back to the built-in defaults so
// Engine{} from New(Options{}) is fully usable.
type Options struct {
	Tables           Tables
	VariableCost     int64
	FixedMonthlyCost int64
	FeeCapPercent    float64
}

// Engine exposes the fee strategies over a shared set of lookup tables and
// cost constants.
type Engine struct {
	tables           Tables
	variableCost     int64
	fixedMonthlyCost int64
	feeCapPercent    float64
}

func New(opts Options) *Engine {
	e := &Engine{
		tables:           opts.Tables,
		variableCost:     opts.VariableCost,
		fixedMonthlyCost: opts.FixedMonthlyCost,
		feeCapPercent:    opts.FeeCapPercent,
	}
	if e.tables.cities == nil {
		e.tables = DefaultTables()
	}
	if e.variableCost <= 0 {
		e.variableCost = defaultVariableCost
	}
	if e.fixedMonthlyCost <= 0 {
		e.fixedMonthlyCost = defaultFixedMonthlyCost
	}
	if e.feeCapPercent <= 0 {
		e.feeCapPercent = defaultFeeCapPercent
	}
	return e
}

// Tables returns the lookup data the engine was built with.
func (e *Engine) Tables() Tables { return e.tables }

// Strategy returns the named calculator as a FeeStrategy value.
func (e *Engine) Strategy(s pricingdomain.Strategy) (pricingdomain.FeeStrategy, error) {
	switch s {
	case pricingdomain.StrategySplit:
		return strategyFunc(e.CalculateSplitFee), nil
	case pricingdomain.StrategySustainable:
		return strategyFunc(e.CalculateSustainableFee), nil
	case pricingdomain.StrategyDynamic:
		return strategyFunc(e.CalculateDynamicPricing), nil
	case pricingdomain.StrategyDriverEarning:
		return strategyFunc(e.CalculateDriverEarning), nil
	default:
		return nil, pricingdomain.ErrInvalidStrategy
	}
}

// Compute dispatches to the named strategy.
func (e *Engine) Compute(s pricingdomain.Strategy, in pricingdomain.QuoteInput) (pricingdomain.FeeBreakdown, error) {
	strategy, err := e.Strategy(s)
	if err != nil {
		return pricingdomain.FeeBreakdown{}, err
	}
	return strategy.Compute(in), nil
}

type strategyFunc func(in pricingdomain.QuoteInput) pricingdomain.FeeBreakdown

func (f strategyFunc) Compute(in pricingdomain.QuoteInput) pricingdomain.FeeBreakdown {
	return f(in)
}

// normalizeInput makes the engine total over its numeric domain: negative
// amounts collapse to zero and a missing delivery fee takes the default.
// Degenerate inputs produce degenerate but well-defined breakdowns.
func normalizeInput(in pricingdomain.QuoteInput) pricingdomain.QuoteInput {
	if in.ItemPrice < 0 {
		in.ItemPrice = 0
	}
	if in.DeliveryFee < 0 {
		in.DeliveryFee = 0
	}
	if in.DeliveryFee == 0 {
		in.DeliveryFee = DefaultDeliveryFee
	}
	if in.TipAmount < 0 {
		in.TipAmount = 0
	}
	return in
}

func roundMoney(v float64) int64 {
	return int64(math.Round(v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func maxMoney(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// percentOf rounds a percentage share of an amount to whole Rupiah.
func percentOf(amount int64, percent float64) int64 {
	return roundMoney(float64(amount) * percent / 100)
}
