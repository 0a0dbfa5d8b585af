package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/antarlabs/antar/internal/clock"
	ruledomain "github.com/antarlabs/antar/internal/pricingrule/domain"
	"github.com/antarlabs/antar/internal/pricingrule/repository"
	"github.com/antarlabs/antar/pkg/db/pagination"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  ruledomain.Repository
}

func NewService(p Params) ruledomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("pricingrule.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  repository.NewRepository(),
	}
}

func (s *Service) Create(ctx context.Context, req ruledomain.CreateRequest) (*ruledomain.PricingRule, error) {
	idempotencyKey := strings.TrimSpace(req.IdempotencyKey)
	if idempotencyKey != "" {
		existing, err := s.repo.FindByIdempotencyKey(ctx, s.db, idempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	}

	if err := validateCreate(req); err != nil {
		return nil, err
	}

	now := s.clock.Now(ctx)
	rule := &ruledomain.PricingRule{
		ID:             s.genID.Generate(),
		Name:           strings.TrimSpace(req.Name),
		Description:    strings.TrimSpace(req.Description),
		Active:         req.Active,
		Priority:       req.Priority,
		Cities:         normalizeKeys(req.Cities),
		Weather:        normalizeKeys(req.Weather),
		Traffic:        normalizeKeys(req.Traffic),
		TimesOfDay:     normalizeKeys(req.TimesOfDay),
		MinDemandSurge: req.MinDemandSurge,
		Multiplier:     req.Multiplier,
		MaxMultiplier:  req.MaxMultiplier,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if idempotencyKey != "" {
		rule.IdempotencyKey = &idempotencyKey
	}

	if err := s.repo.Insert(ctx, s.db, rule); err != nil {
		if idempotencyKey != "" && errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, findErr := s.repo.FindByIdempotencyKey(ctx, s.db, idempotencyKey)
			if findErr != nil {
				return nil, findErr
			}
			if existing != nil {
				return existing, nil
			}
		}
		return nil, err
	}

	s.log.Info("pricing rule created",
		zap.String("rule_id", rule.ID.String()),
		zap.String("name", rule.Name),
		zap.Int("priority", rule.Priority),
	)
	return rule, nil
}

func (s *Service) Get(ctx context.Context, id string) (*ruledomain.PricingRule, error) {
	ruleID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, ruledomain.ErrInvalidID
	}

	rule, err := s.repo.FindByID(ctx, s.db, ruleID)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, ruledomain.ErrRuleNotFound
	}
	return rule, nil
}

func (s *Service) List(ctx context.Context, req ruledomain.ListRequest) ([]ruledomain.PricingRule, pagination.PageInfo, error) {
	page := pagination.Pagination{PageToken: req.PageToken, PageSize: req.PageSize}

	rules, err := s.repo.List(ctx, s.db, req.ActiveOnly, page)
	if err != nil {
		return nil, pagination.PageInfo{}, err
	}

	info := pagination.PageInfo{
		NextPageToken: page.NextToken(len(rules)),
		PageSize:      page.Limit(),
	}
	return rules, info, nil
}

func (s *Service) Match(ctx context.Context, snapshot ruledomain.ConditionSnapshot) (*ruledomain.PricingRule, error) {
	rules, err := s.repo.ListActiveByPriority(ctx, s.db)
	if err != nil {
		return nil, err
	}

	for i := range rules {
		if ruleMatches(&rules[i], snapshot) {
			return &rules[i], nil
		}
	}
	return nil, nil
}

// ruleMatches checks every non-empty eligibility list; an empty list means
// the rule does not constrain that dimension.
func ruleMatches(rule *ruledomain.PricingRule, snap ruledomain.ConditionSnapshot) bool {
	if !containsOrEmpty(rule.Cities, snap.City) {
		return false
	}
	if !containsOrEmpty(rule.Weather, snap.Weather) {
		return false
	}
	if !containsOrEmpty(rule.Traffic, snap.Traffic) {
		return false
	}
	if !containsOrEmpty(rule.TimesOfDay, snap.TimeOfDay) {
		return false
	}
	return snap.DemandSurge >= rule.MinDemandSurge
}

func containsOrEmpty(keys []string, value string) bool {
	if len(keys) == 0 {
		return true
	}
	value = strings.ToLower(strings.TrimSpace(value))
	for _, key := range keys {
		if key == value {
			return true
		}
	}
	return false
}

func normalizeKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		key = strings.ToLower(strings.TrimSpace(key))
		if key != "" {
			out = append(out, key)
		}
	}
	return out
}

func validateCreate(req ruledomain.CreateRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return ruledomain.ErrInvalidName
	}
	if req.Multiplier <= 0 {
		return ruledomain.ErrInvalidMultiplier
	}
	if req.MaxMultiplier < 0 {
		return ruledomain.ErrInvalidCap
	}
	if req.Priority < 0 {
		return ruledomain.ErrInvalidPriority
	}
	return nil
}
