package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	ruledomain "github.com/antarlabs/antar/internal/pricingrule/domain"
	"github.com/antarlabs/antar/pkg/db/pagination"
)

type Repository struct{}

func NewRepository() ruledomain.Repository {
	return &Repository{}
}

func (r *Repository) Insert(ctx context.Context, db *gorm.DB, rule *ruledomain.PricingRule) error {
	return db.WithContext(ctx).Create(rule).Error
}

func (r *Repository) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ruledomain.PricingRule, error) {
	var rule ruledomain.PricingRule
	err := db.WithContext(ctx).First(&rule, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *Repository) FindByIdempotencyKey(ctx context.Context, db *gorm.DB, key string) (*ruledomain.PricingRule, error) {
	var rule ruledomain.PricingRule
	err := db.WithContext(ctx).First(&rule, "idempotency_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *Repository) List(ctx context.Context, db *gorm.DB, activeOnly bool, page pagination.Pagination) ([]ruledomain.PricingRule, error) {
	query := db.WithContext(ctx).Model(&ruledomain.PricingRule{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var rules []ruledomain.PricingRule
	err := query.
		Order("priority DESC, id ASC").
		Limit(page.Limit()).
		Offset(page.Offset()).
		Find(&rules).Error
	return rules, err
}

func (r *Repository) ListActiveByPriority(ctx context.Context, db *gorm.DB) ([]ruledomain.PricingRule, error) {
	var rules []ruledomain.PricingRule
	err := db.WithContext(ctx).
		Where("active = ?", true).
		Order("priority DESC, id ASC").
		Find(&rules).Error
	return rules, err
}
