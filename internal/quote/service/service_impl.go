package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/antarlabs/antar/internal/clock"
	pricingdomain "github.com/antarlabs/antar/internal/pricing/domain"
	"github.com/antarlabs/antar/internal/pricing/engine"
	ruledomain "github.com/antarlabs/antar/internal/pricingrule/domain"
	quotedomain "github.com/antarlabs/antar/internal/quote/domain"
	"github.com/antarlabs/antar/internal/quote/repository"
	"github.com/antarlabs/antar/internal/surge"
	"github.com/antarlabs/antar/pkg/db/pagination"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Clock  clock.Clock
	Engine *engine.Engine
	Rules  ruledomain.Service
	Surge  surge.Provider
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node
	clock  clock.Clock
	engine *engine.Engine
	rules  ruledomain.Service
	surge  surge.Provider
	repo   quotedomain.Repository
}

func NewService(p Params) quotedomain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("quote.service"),
		genID:  p.GenID,
		clock:  p.Clock,
		engine: p.Engine,
		rules:  p.Rules,
		surge:  p.Surge,
		repo:   repository.NewRepository(),
	}
}

func (s *Service) CreateQuote(ctx context.Context, req quotedomain.CreateQuoteRequest) (*quotedomain.QuoteResponse, error) {
	strategy, err := pricingdomain.ParseStrategy(req.Strategy)
	if err != nil {
		return nil, err
	}

	in := pricingdomain.QuoteInput{
		ItemPrice:   req.ItemPrice,
		DeliveryFee: req.DeliveryFee,
		TipAmount:   req.TipAmount,
		CityName:    req.CityName,
		Conditions:  req.Conditions,
	}

	var ruleID *snowflake.ID
	switch strategy {
	case pricingdomain.StrategySustainable:
		in.Phase = pricingdomain.PhaseBootstrap
		if req.Phase != "" {
			in.Phase, err = pricingdomain.ParsePhase(req.Phase)
			if err != nil {
				return nil, err
			}
		}
	case pricingdomain.StrategyDriverEarning:
		in.DistanceClass = pricingdomain.DistanceNear
		if req.DistanceClass != "" {
			in.DistanceClass, err = pricingdomain.ParseDistanceClass(req.DistanceClass)
			if err != nil {
				return nil, err
			}
		}
		in.ConditionClass = pricingdomain.ConditionNormal
		if req.ConditionClass != "" {
			in.ConditionClass, err = pricingdomain.ParseConditionClass(req.ConditionClass)
			if err != nil {
				return nil, err
			}
		}
	case pricingdomain.StrategyDynamic:
		in.Conditions.DemandSurge, ruleID, err = s.resolveSurge(ctx, req)
		if err != nil {
			return nil, err
		}
		s.surge.Observe(ctx, req.CityName)
	}

	breakdown, err := s.engine.Compute(strategy, in)
	if err != nil {
		return nil, err
	}

	record := s.buildRecord(ctx, strategy, req, breakdown, in.Conditions.DemandSurge, ruleID)
	if err := s.repo.Insert(ctx, s.db, record); err != nil {
		return nil, err
	}

	s.log.Info("quote created",
		zap.String("quote_id", record.ID.String()),
		zap.String("strategy", string(strategy)),
		zap.Int64("total_customer_payment", breakdown.TotalCustomerPayment),
	)

	resp := &quotedomain.QuoteResponse{
		QuoteID:     record.ID.String(),
		Breakdown:   breakdown,
		DemandSurge: record.DemandSurge,
	}
	if ruleID != nil {
		resp.RuleID = ruleID.String()
	}
	return resp, nil
}

// resolveSurge combines the caller-supplied surge, the tracked demand factor,
// and the highest-priority matching pricing rule into the final demand-surge
// scalar for the dynamic calculator.
func (s *Service) resolveSurge(ctx context.Context, req quotedomain.CreateQuoteRequest) (float64, *snowflake.ID, error) {
	factor := req.Conditions.DemandSurge
	if factor <= 0 {
		factor = s.surge.Factor(ctx, req.CityName)
	}

	rule, err := s.rules.Match(ctx, ruledomain.ConditionSnapshot{
		City:        req.CityName,
		Weather:     req.Conditions.Weather,
		Traffic:     req.Conditions.Traffic,
		TimeOfDay:   req.Conditions.TimeOfDay,
		DemandSurge: factor,
	})
	if err != nil {
		return 0, nil, err
	}
	if rule == nil {
		return factor, nil, nil
	}

	factor *= rule.Multiplier
	if rule.MaxMultiplier > 0 && factor > rule.MaxMultiplier {
		factor = rule.MaxMultiplier
	}
	id := rule.ID
	return factor, &id, nil
}

func (s *Service) buildRecord(
	ctx context.Context,
	strategy pricingdomain.Strategy,
	req quotedomain.CreateQuoteRequest,
	breakdown pricingdomain.FeeBreakdown,
	demandSurge float64,
	ruleID *snowflake.ID,
) *quotedomain.QuoteRecord {
	now := s.clock.Now(ctx)

	record := &quotedomain.QuoteRecord{
		ID:                   s.genID.Generate(),
		Strategy:             string(strategy),
		CityName:             strings.ToLower(strings.TrimSpace(req.CityName)),
		ItemPrice:            breakdown.ItemPrice,
		DeliveryFee:          breakdown.DeliveryFee,
		TipAmount:            breakdown.TipAmount,
		CustomerFee:          breakdown.CustomerFee,
		DriverFee:            breakdown.DriverFee,
		PlatformFee:          breakdown.PlatformFee,
		TotalCustomerPayment: breakdown.TotalCustomerPayment,
		DriverGrossEarning:   breakdown.DriverGrossEarning,
		DriverNetEarning:     breakdown.DriverNetEarning,
		RuleID:               ruleID,
		CreatedAt:            now,
	}
	if breakdown.City != nil {
		record.AppliedMultiplier = breakdown.City.AppliedMultiplier
		record.FinalFeePercent = breakdown.City.FinalFeePercent
		record.DemandSurge = demandSurge
	}
	record.Checksum = buildQuoteChecksum(record)
	return record
}

func buildQuoteChecksum(record *quotedomain.QuoteRecord) string {
	payload := fmt.Sprintf("%s|%d|%d|%d|%s|%d|%d|%d|%d",
		record.Strategy,
		record.ItemPrice,
		record.DeliveryFee,
		record.TipAmount,
		record.CityName,
		record.CustomerFee,
		record.DriverFee,
		record.TotalCustomerPayment,
		record.CreatedAt.Unix(),
	)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

func (s *Service) Get(ctx context.Context, id string) (*quotedomain.QuoteRecord, error) {
	quoteID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, quotedomain.ErrInvalidID
	}

	record, err := s.repo.FindByID(ctx, s.db, quoteID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, quotedomain.ErrQuoteNotFound
	}
	return record, nil
}

func (s *Service) List(ctx context.Context, req quotedomain.ListRequest) ([]quotedomain.QuoteRecord, pagination.PageInfo, error) {
	page := pagination.Pagination{PageToken: req.PageToken, PageSize: req.PageSize}

	records, err := s.repo.List(ctx, s.db, req, page)
	if err != nil {
		return nil, pagination.PageInfo{}, err
	}

	info := pagination.PageInfo{
		NextPageToken: page.NextToken(len(records)),
		PageSize:      page.Limit(),
	}
	return records, info, nil
}
