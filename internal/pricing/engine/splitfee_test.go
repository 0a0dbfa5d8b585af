package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	pricingdomain "github.com/antarlabs/antar/internal/pricing/domain"
)

func TestSplitFeeHighValueOrder(t *testing.T) {
	e := New(Options{})

	out := e.CalculateSplitFee(pricingdomain.QuoteInput{
		ItemPrice:   150000,
		DeliveryFee: 5000,
	})

	assert.Equal(t, int64(9000), out.PlatformFee) // 6% of 150000
	assert.Equal(t, int64(4500), out.CustomerFee)
	assert.Equal(t, int64(4500), out.DriverFee)
	assert.Equal(t, int64(159500), out.TotalCustomerPayment)
	assert.Equal(t, int64(5000), out.DriverGrossEarning)
	assert.Equal(t, int64(500), out.DriverNetEarning)
}

func TestSplitFeeLowValueOrderIsFlat(t *testing.T) {
	e := New(Options{})

	out := e.CalculateSplitFee(pricingdomain.QuoteInput{
		ItemPrice:   50000,
		DeliveryFee: 5000,
	})

	assert.Equal(t, int64(7000), out.PlatformFee)
	assert.Equal(t, int64(3500), out.CustomerFee)
	assert.Equal(t, int64(3500), out.DriverFee)
	assert.Equal(t, int64(58500), out.TotalCustomerPayment)
}

func TestSplitFeeDriverAbsorbsOddResidue(t *testing.T) {
	e := New(Options{})

	// 6% of 125_050 = 7503, an odd fee.
	out := e.CalculateSplitFee(pricingdomain.QuoteInput{ItemPrice: 125050, DeliveryFee: 5000})

	assert.Equal(t, int64(7503), out.PlatformFee)
	assert.Equal(t, int64(3752), out.CustomerFee) // rounded half
	assert.Equal(t, int64(3751), out.DriverFee)   // remainder
	assert.Equal(t, out.PlatformFee, out.CustomerFee+out.DriverFee)
}

func TestSplitFeeResidueInvariantHolds(t *testing.T) {
	e := New(Options{})

	for _, price := range []int64{0, 1, 99_999, 100_000, 100_017, 123_456, 999_999, 5_000_000} {
		out := e.CalculateSplitFee(pricingdomain.QuoteInput{ItemPrice: price, DeliveryFee: 5000})
		assert.Equal(t, out.PlatformFee, out.CustomerFee+out.DriverFee, "item price %d", price)
		assertBreakdownInvariants(t, out)
	}
}

func TestSplitFeeNetEarningCanGoNegative(t *testing.T) {
	e := New(Options{})

	// Tiny delivery fee: the driver's half of the fee exceeds the gross.
	out := e.CalculateSplitFee(pricingdomain.QuoteInput{ItemPrice: 50000, DeliveryFee: 2000})

	assert.Equal(t, int64(2000), out.DriverGrossEarning)
	assert.Negative(t, out.DriverNetEarning)
	assertBreakdownInvariants(t, out)
}

func TestSplitFeeNegativeInputsReadAsZero(t *testing.T) {
	e := New(Options{})

	out := e.CalculateSplitFee(pricingdomain.QuoteInput{ItemPrice: -500, DeliveryFee: -1, TipAmount: -10})

	assert.Equal(t, int64(0), out.ItemPrice)
	assert.Equal(t, DefaultDeliveryFee, out.DeliveryFee)
	assert.Equal(t, int64(0), out.TipAmount)
	assert.Equal(t, int64(7000), out.PlatformFee)
	assertBreakdownInvariants(t, out)
}

func TestSplitFeeFairnessMetrics(t *testing.T) {
	e := New(Options{})

	out := e.CalculateSplitFee(pricingdomain.QuoteInput{ItemPrice: 150000, DeliveryFee: 5000})

	assert.NotNil(t, out.Fairness)
	assert.Equal(t, int64(3), out.Fairness.CustomerFeeShareOfPayment) // 4500/159500
	assert.Equal(t, int64(90), out.Fairness.DriverFeeShareOfGross)    // 4500/5000
}

// assertBreakdownInvariants checks the two equalities every strategy must
// preserve in exact integer arithmetic.
func assertBreakdownInvariants(t *testing.T, out pricingdomain.FeeBreakdown) {
	t.Helper()
	assert.Equal(t, out.CustomerFee, out.TotalCustomerPayment-out.ItemPrice-out.DeliveryFee-out.TipAmount)
	assert.Equal(t, out.DriverFee, out.DriverGrossEarning-out.DriverNetEarning)
}
