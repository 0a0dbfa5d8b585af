// Package domain contains the quote audit record and service contracts.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	pricingdomain "github.com/antarlabs/antar/internal/pricing/domain"
	"github.com/antarlabs/antar/pkg/db/pagination"
)

var (
	ErrInvalidID     = errors.New("quote: invalid id")
	ErrQuoteNotFound = errors.New("quote: quote not found")
)

// QuoteRecord is the persisted, auditable copy of a computed breakdown. The
// checksum ties the stored amounts to the inputs so a record can be verified
// against a recomputation.
type QuoteRecord struct {
	ID                   snowflake.ID  `gorm:"primaryKey" json:"id"`
	Strategy             string        `gorm:"type:text;not null;index" json:"strategy"`
	CityName             string        `gorm:"type:text;index" json:"city_name,omitempty"`
	ItemPrice            int64         `gorm:"not null" json:"item_price"`
	DeliveryFee          int64         `gorm:"not null" json:"delivery_fee"`
	TipAmount            int64         `gorm:"not null" json:"tip_amount"`
	CustomerFee          int64         `gorm:"not null" json:"customer_fee"`
	DriverFee            int64         `gorm:"not null" json:"driver_fee"`
	PlatformFee          int64         `gorm:"not null" json:"platform_fee"`
	TotalCustomerPayment int64         `gorm:"not null" json:"total_customer_payment"`
	DriverGrossEarning   int64         `gorm:"not null" json:"driver_gross_earning"`
	DriverNetEarning     int64         `gorm:"not null" json:"driver_net_earning"`
	AppliedMultiplier    float64       `json:"applied_multiplier,omitempty"`
	FinalFeePercent      float64       `json:"final_fee_percent,omitempty"`
	DemandSurge          float64       `json:"demand_surge,omitempty"`
	RuleID               *snowflake.ID `gorm:"index" json:"rule_id,omitempty"`
	Checksum             string        `gorm:"type:text;not null;index" json:"checksum"`
	CreatedAt            time.Time     `gorm:"not null;index" json:"created_at"`
}

// TableName sets the database table name.
func (QuoteRecord) TableName() string { return "quote_records" }

// CreateQuoteRequest carries the order fields a caller quotes against.
type CreateQuoteRequest struct {
	Strategy       string                   `json:"strategy"`
	ItemPrice      int64                    `json:"item_price"`
	DeliveryFee    int64                    `json:"delivery_fee"`
	TipAmount      int64                    `json:"tip_amount"`
	CityName       string                   `json:"city_name"`
	Conditions     pricingdomain.Conditions `json:"conditions"`
	DistanceClass  string                   `json:"distance_class"`
	ConditionClass string                   `json:"condition_class"`
	Phase          string                   `json:"phase"`
}

// QuoteResponse is the computed breakdown plus the audit identity it was
// stored under.
type QuoteResponse struct {
	QuoteID     string                     `json:"quote_id"`
	Breakdown   pricingdomain.FeeBreakdown `json:"breakdown"`
	RuleID      string                     `json:"rule_id,omitempty"`
	DemandSurge float64                    `json:"demand_surge,omitempty"`
}

type ListRequest struct {
	Strategy  string
	CityName  string
	PageToken string
	PageSize  int
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, record *QuoteRecord) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*QuoteRecord, error)
	List(ctx context.Context, db *gorm.DB, req ListRequest, page pagination.Pagination) ([]QuoteRecord, error)
	DeleteOlderThan(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error)
}

type Service interface {
	CreateQuote(ctx context.Context, req CreateQuoteRequest) (*QuoteResponse, error)
	Get(ctx context.Context, id string) (*QuoteRecord, error)
	List(ctx context.Context, req ListRequest) ([]QuoteRecord, pagination.PageInfo, error)
}
