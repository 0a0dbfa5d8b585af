package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/antarlabs/antar/pkg/db/pagination"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, rule *PricingRule) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*PricingRule, error)
	FindByIdempotencyKey(ctx context.Context, db *gorm.DB, key string) (*PricingRule, error)
	List(ctx context.Context, db *gorm.DB, activeOnly bool, page pagination.Pagination) ([]PricingRule, error)
	ListActiveByPriority(ctx context.Context, db *gorm.DB) ([]PricingRule, error)
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*PricingRule, error)
	Get(ctx context.Context, id string) (*PricingRule, error)
	List(ctx context.Context, req ListRequest) ([]PricingRule, pagination.PageInfo, error)
	// Match returns the highest-priority active rule eligible for the
	// snapshot, or nil when no rule applies.
	Match(ctx context.Context, snapshot ConditionSnapshot) (*PricingRule, error)
}
