package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	ruledomain "github.com/antarlabs/antar/internal/pricingrule/domain"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now(context.Context) time.Time { return c.now }

func newTestService(t *testing.T) ruledomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&ruledomain.PricingRule{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewService(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fixedClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
	})
}

func TestCreateAndGetRule(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, ruledomain.CreateRequest{
		Name:       "Weekday Rush",
		Active:     true,
		Priority:   10,
		Cities:     []string{" Jakarta ", "SURABAYA"},
		Multiplier: 1.2,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, []string{"jakarta", "surabaya"}, created.Cities)

	got, err := svc.Get(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)
}

func TestCreateRuleValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, ruledomain.CreateRequest{Name: "  ", Multiplier: 1.2})
	assert.ErrorIs(t, err, ruledomain.ErrInvalidName)

	_, err = svc.Create(ctx, ruledomain.CreateRequest{Name: "r", Multiplier: 0})
	assert.ErrorIs(t, err, ruledomain.ErrInvalidMultiplier)

	_, err = svc.Create(ctx, ruledomain.CreateRequest{Name: "r", Multiplier: 1.2, MaxMultiplier: -1})
	assert.ErrorIs(t, err, ruledomain.ErrInvalidCap)

	_, err = svc.Create(ctx, ruledomain.CreateRequest{Name: "r", Multiplier: 1.2, Priority: -5})
	assert.ErrorIs(t, err, ruledomain.ErrInvalidPriority)
}

func TestCreateRuleIdempotency(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	req := ruledomain.CreateRequest{
		Name:           "Storm Surge",
		Active:         true,
		Multiplier:     1.5,
		IdempotencyKey: "retry-1",
	}

	first, err := svc.Create(ctx, req)
	require.NoError(t, err)

	second, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestGetRuleErrors(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, "not-a-snowflake")
	assert.ErrorIs(t, err, ruledomain.ErrInvalidID)

	_, err = svc.Get(ctx, "1234567890123456789")
	assert.ErrorIs(t, err, ruledomain.ErrRuleNotFound)
}

func TestMatchPicksHighestPriority(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, ruledomain.CreateRequest{
		Name:       "catch-all",
		Active:     true,
		Priority:   1,
		Multiplier: 1.1,
	})
	require.NoError(t, err)

	specific, err := svc.Create(ctx, ruledomain.CreateRequest{
		Name:       "jakarta-storm",
		Active:     true,
		Priority:   50,
		Cities:     []string{"jakarta"},
		Weather:    []string{"storm"},
		Multiplier: 1.4,
	})
	require.NoError(t, err)

	matched, err := svc.Match(ctx, ruledomain.ConditionSnapshot{City: "Jakarta", Weather: "storm"})
	require.NoError(t, err)
	require.NotNil(t, matched)
	assert.Equal(t, specific.ID, matched.ID)

	// Outside the specific rule's weather list the catch-all wins.
	fallback, err := svc.Match(ctx, ruledomain.ConditionSnapshot{City: "jakarta", Weather: "clear"})
	require.NoError(t, err)
	require.NotNil(t, fallback)
	assert.Equal(t, "catch-all", fallback.Name)
}

func TestMatchRespectsSurgeFloorAndActiveFlag(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, ruledomain.CreateRequest{
		Name:           "high-demand",
		Active:         true,
		Priority:       5,
		MinDemandSurge: 1.5,
		Multiplier:     1.3,
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, ruledomain.CreateRequest{
		Name:       "disabled",
		Active:     false,
		Priority:   99,
		Multiplier: 2.0,
	})
	require.NoError(t, err)

	none, err := svc.Match(ctx, ruledomain.ConditionSnapshot{DemandSurge: 1.0})
	require.NoError(t, err)
	assert.Nil(t, none)

	matched, err := svc.Match(ctx, ruledomain.ConditionSnapshot{DemandSurge: 1.5})
	require.NoError(t, err)
	require.NotNil(t, matched)
	assert.Equal(t, "high-demand", matched.Name)
}

func TestListRulesPagination(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, ruledomain.CreateRequest{
			Name:       "rule",
			Active:     i%2 == 0,
			Multiplier: 1.1,
		})
		require.NoError(t, err)
	}

	all, info, err := svc.List(ctx, ruledomain.ListRequest{PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.NotEmpty(t, info.NextPageToken)

	active, _, err := svc.List(ctx, ruledomain.ListRequest{ActiveOnly: true})
	require.NoError(t, err)
	assert.Len(t, active, 2)
}
