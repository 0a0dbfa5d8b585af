package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	pricingdomain "github.com/antarlabs/antar/internal/pricing/domain"
	"github.com/antarlabs/antar/internal/pricing/engine"
	ruledomain "github.com/antarlabs/antar/internal/pricingrule/domain"
	quotedomain "github.com/antarlabs/antar/internal/quote/domain"
	"github.com/antarlabs/antar/pkg/db/pagination"
)

// -- Mocks --

type rulesMock struct {
	mock.Mock
}

func (m *rulesMock) Match(ctx context.Context, snap ruledomain.ConditionSnapshot) (*ruledomain.PricingRule, error) {
	args := m.Called(ctx, snap)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ruledomain.PricingRule), args.Error(1)
}

func (m *rulesMock) Create(context.Context, ruledomain.CreateRequest) (*ruledomain.PricingRule, error) {
	return nil, nil
}
func (m *rulesMock) Get(context.Context, string) (*ruledomain.PricingRule, error) {
	return nil, nil
}
func (m *rulesMock) List(context.Context, ruledomain.ListRequest) ([]ruledomain.PricingRule, pagination.PageInfo, error) {
	return nil, pagination.PageInfo{}, nil
}

type surgeStub struct {
	factor   float64
	observed []string
}

func (s *surgeStub) Observe(_ context.Context, city string) { s.observed = append(s.observed, city) }
func (s *surgeStub) Factor(context.Context, string) float64 { return s.factor }

type fixedClock struct{ now time.Time }

func (c fixedClock) Now(context.Context) time.Time { return c.now }

func newTestService(t *testing.T, rules *rulesMock, tracker *surgeStub) quotedomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&quotedomain.QuoteRecord{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewService(Params{
		DB:     db,
		Log:    zap.NewNop(),
		GenID:  node,
		Clock:  fixedClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
		Engine: engine.New(engine.Options{}),
		Rules:  rules,
		Surge:  tracker,
	})
}

// -- Tests --

func TestCreateQuoteSplitPersistsRecord(t *testing.T) {
	svc := newTestService(t, &rulesMock{}, &surgeStub{factor: 1.0})
	ctx := context.Background()

	resp, err := svc.CreateQuote(ctx, quotedomain.CreateQuoteRequest{
		Strategy:    "split",
		ItemPrice:   150000,
		DeliveryFee: 5000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9000), resp.Breakdown.PlatformFee)

	record, err := svc.Get(ctx, resp.QuoteID)
	require.NoError(t, err)
	assert.Equal(t, "split", record.Strategy)
	assert.Equal(t, int64(159500), record.TotalCustomerPayment)
	assert.Equal(t, buildQuoteChecksum(record), record.Checksum)
}

func TestCreateQuoteRejectsUnknownStrategy(t *testing.T) {
	svc := newTestService(t, &rulesMock{}, &surgeStub{factor: 1.0})

	_, err := svc.CreateQuote(context.Background(), quotedomain.CreateQuoteRequest{Strategy: "auction"})
	assert.ErrorIs(t, err, pricingdomain.ErrInvalidStrategy)
}

func TestCreateQuoteSustainableDefaultsToBootstrap(t *testing.T) {
	svc := newTestService(t, &rulesMock{}, &surgeStub{factor: 1.0})

	resp, err := svc.CreateQuote(context.Background(), quotedomain.CreateQuoteRequest{
		Strategy:    "sustainable",
		ItemPrice:   50000,
		DeliveryFee: 5000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7000), resp.Breakdown.CustomerFee)
	assert.Equal(t, int64(0), resp.Breakdown.DriverFee)

	_, err = svc.CreateQuote(context.Background(), quotedomain.CreateQuoteRequest{
		Strategy: "sustainable",
		Phase:    "unicorn",
	})
	assert.ErrorIs(t, err, pricingdomain.ErrInvalidPhase)
}

func TestCreateQuoteDriverEarningValidatesClasses(t *testing.T) {
	svc := newTestService(t, &rulesMock{}, &surgeStub{factor: 1.0})

	resp, err := svc.CreateQuote(context.Background(), quotedomain.CreateQuoteRequest{
		Strategy:       "driver_earning",
		ItemPrice:      50000,
		ConditionClass: "rain",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15000), resp.Breakdown.DriverGrossEarning)

	_, err = svc.CreateQuote(context.Background(), quotedomain.CreateQuoteRequest{
		Strategy:      "driver_earning",
		DistanceClass: "orbit",
	})
	assert.ErrorIs(t, err, pricingdomain.ErrInvalidDistanceClass)
}

func TestCreateQuoteDynamicAppliesTrackedSurgeAndRule(t *testing.T) {
	rules := &rulesMock{}
	tracker := &surgeStub{factor: 1.2}
	svc := newTestService(t, rules, tracker)

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	rule := &ruledomain.PricingRule{ID: node.Generate(), Name: "storm", Multiplier: 1.5}

	rules.On("Match", mock.Anything, mock.MatchedBy(func(snap ruledomain.ConditionSnapshot) bool {
		return snap.City == "jakarta" && snap.DemandSurge == 1.2
	})).Return(rule, nil)

	resp, err := svc.CreateQuote(context.Background(), quotedomain.CreateQuoteRequest{
		Strategy:  "dynamic",
		ItemPrice: 150000,
		CityName:  "jakarta",
		Conditions: pricingdomain.Conditions{
			Weather:   "clear",
			Traffic:   "low",
			TimeOfDay: "normal",
		},
	})
	require.NoError(t, err)

	// Tracked 1.2 scaled by the rule's 1.5.
	assert.InDelta(t, 1.8, resp.DemandSurge, 1e-9)
	assert.Equal(t, rule.ID.String(), resp.RuleID)
	assert.Equal(t, []string{"jakarta"}, tracker.observed)

	record, err := svc.Get(context.Background(), resp.QuoteID)
	require.NoError(t, err)
	require.NotNil(t, record.RuleID)
	assert.Equal(t, rule.ID, *record.RuleID)
	assert.InDelta(t, 1.8, record.DemandSurge, 1e-9)
	rules.AssertExpectations(t)
}

func TestCreateQuoteDynamicRuleCapBoundsSurge(t *testing.T) {
	rules := &rulesMock{}
	svc := newTestService(t, rules, &surgeStub{factor: 2.0})

	node, err := snowflake.NewNode(3)
	require.NoError(t, err)
	rule := &ruledomain.PricingRule{ID: node.Generate(), Multiplier: 3.0, MaxMultiplier: 2.5}
	rules.On("Match", mock.Anything, mock.Anything).Return(rule, nil)

	resp, err := svc.CreateQuote(context.Background(), quotedomain.CreateQuoteRequest{
		Strategy:  "dynamic",
		ItemPrice: 150000,
		CityName:  "jakarta",
	})
	require.NoError(t, err)
	assert.InDelta(t, 2.5, resp.DemandSurge, 1e-9)
}

func TestCreateQuoteDynamicCallerSurgeSkipsTracker(t *testing.T) {
	rules := &rulesMock{}
	rules.On("Match", mock.Anything, mock.Anything).Return(nil, nil)
	svc := newTestService(t, rules, &surgeStub{factor: 99.0})

	resp, err := svc.CreateQuote(context.Background(), quotedomain.CreateQuoteRequest{
		Strategy:   "dynamic",
		ItemPrice:  150000,
		CityName:   "jakarta",
		Conditions: pricingdomain.Conditions{DemandSurge: 1.3},
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.3, resp.DemandSurge, 1e-9)
	assert.Empty(t, resp.RuleID)
}

func TestGetQuoteErrors(t *testing.T) {
	svc := newTestService(t, &rulesMock{}, &surgeStub{factor: 1.0})
	ctx := context.Background()

	_, err := svc.Get(ctx, "bogus")
	assert.ErrorIs(t, err, quotedomain.ErrInvalidID)

	_, err = svc.Get(ctx, "1234567890123456789")
	assert.ErrorIs(t, err, quotedomain.ErrQuoteNotFound)
}

func TestListQuotesFiltersByStrategy(t *testing.T) {
	svc := newTestService(t, &rulesMock{}, &surgeStub{factor: 1.0})
	ctx := context.Background()

	for _, strategy := range []string{"split", "split", "sustainable"} {
		_, err := svc.CreateQuote(ctx, quotedomain.CreateQuoteRequest{
			Strategy:  strategy,
			ItemPrice: 50000,
		})
		require.NoError(t, err)
	}

	splits, _, err := svc.List(ctx, quotedomain.ListRequest{Strategy: "split"})
	require.NoError(t, err)
	assert.Len(t, splits, 2)

	all, info, err := svc.List(ctx, quotedomain.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, 25, info.PageSize)
}
