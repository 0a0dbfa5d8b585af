package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	pricingdomain "github.com/antarlabs/antar/internal/pricing/domain"
)

func TestSustainableFeeBootstrapCustomerAbsorbsAll(t *testing.T) {
	e := New(Options{})

	out := e.CalculateSustainableFee(pricingdomain.QuoteInput{
		ItemPrice:   50000,
		DeliveryFee: 5000,
		Phase:       pricingdomain.PhaseBootstrap,
	})

	assert.Equal(t, int64(7000), out.CustomerFee)
	assert.Equal(t, int64(0), out.DriverFee)
	assert.Equal(t, int64(5000), out.DriverNetEarning) // driver keeps everything
	assertBreakdownInvariants(t, out)
}

func TestSustainableFeeBootstrapHighValuePercentage(t *testing.T) {
	e := New(Options{})

	out := e.CalculateSustainableFee(pricingdomain.QuoteInput{
		ItemPrice:   200000,
		DeliveryFee: 5000,
		Phase:       pricingdomain.PhaseBootstrap,
	})

	assert.Equal(t, int64(12000), out.CustomerFee) // 6% of 200000
	assert.Equal(t, int64(0), out.DriverFee)
	assertBreakdownInvariants(t, out)
}

func TestSustainableFeeGrowthSplitsFee(t *testing.T) {
	e := New(Options{})

	out := e.CalculateSustainableFee(pricingdomain.QuoteInput{
		ItemPrice:   200000,
		DeliveryFee: 10000,
		Phase:       pricingdomain.PhaseGrowth,
	})

	assert.Equal(t, int64(8000), out.CustomerFee) // 4% of 200000
	assert.Equal(t, int64(1000), out.DriverFee)   // 10% of delivery fee
	assert.Equal(t, int64(9000), out.PlatformFee)
	assertBreakdownInvariants(t, out)
}

func TestSustainableFeeGrowthShortfallLandsOnCustomer(t *testing.T) {
	e := New(Options{})

	out := e.CalculateSustainableFee(pricingdomain.QuoteInput{
		ItemPrice:   50000,
		DeliveryFee: 5000,
		Phase:       pricingdomain.PhaseGrowth,
	})

	// Base allocation 4000 + 500 = 4500 is under the 6000 floor; the
	// 1500 shortfall is charged to the customer, never the driver.
	assert.Equal(t, int64(5500), out.CustomerFee)
	assert.Equal(t, int64(500), out.DriverFee)
	assert.Equal(t, int64(6000), out.PlatformFee)
	assertBreakdownInvariants(t, out)
}

func TestSustainableFeeMature(t *testing.T) {
	e := New(Options{})

	out := e.CalculateSustainableFee(pricingdomain.QuoteInput{
		ItemPrice:   90000,
		DeliveryFee: 5000,
		Phase:       pricingdomain.PhaseMature,
	})

	assert.Equal(t, int64(2000), out.CustomerFee)
	// 25% of 5000 = 1250, under the 4000 minimum.
	assert.Equal(t, int64(4000), out.DriverFee)
	assert.Equal(t, int64(1000), out.DriverNetEarning)
	assertBreakdownInvariants(t, out)
}

func TestSustainableFeeMatureLargeDeliveryUsesPercentage(t *testing.T) {
	e := New(Options{})

	out := e.CalculateSustainableFee(pricingdomain.QuoteInput{
		ItemPrice:   90000,
		DeliveryFee: 20000,
		TipAmount:   4000,
		Phase:       pricingdomain.PhaseMature,
	})

	assert.Equal(t, int64(6000), out.DriverFee) // 25% of 24000
	assert.Equal(t, int64(18000), out.DriverNetEarning)
	assertBreakdownInvariants(t, out)
}

func TestSustainableFeeNeverNegativeCombined(t *testing.T) {
	e := New(Options{})

	for _, phase := range []pricingdomain.Phase{pricingdomain.PhaseBootstrap, pricingdomain.PhaseGrowth, pricingdomain.PhaseMature} {
		for _, price := range []int64{0, 1000, 99_999, 100_000, 1_000_000} {
			out := e.CalculateSustainableFee(pricingdomain.QuoteInput{
				ItemPrice:   price,
				DeliveryFee: 5000,
				Phase:       phase,
			})
			assert.GreaterOrEqual(t, out.CustomerFee+out.DriverFee, int64(0), "phase %s price %d", phase, price)
			assertBreakdownInvariants(t, out)
		}
	}
}

func TestSustainableFeeCostAnalysisAttached(t *testing.T) {
	e := New(Options{})

	out := e.CalculateSustainableFee(pricingdomain.QuoteInput{
		ItemPrice:   150000,
		DeliveryFee: 5000,
		Phase:       pricingdomain.PhaseBootstrap,
	})

	assert.Equal(t, int64(4000), out.Cost.VariableCost)
	assert.Equal(t, out.PlatformFee-4000, out.Cost.GrossMargin)
}
