package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	quotedomain "github.com/antarlabs/antar/internal/quote/domain"
	"github.com/antarlabs/antar/pkg/db/pagination"
)

type Repository struct{}

func NewRepository() quotedomain.Repository {
	return &Repository{}
}

func (r *Repository) Insert(ctx context.Context, db *gorm.DB, record *quotedomain.QuoteRecord) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *Repository) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*quotedomain.QuoteRecord, error) {
	var record quotedomain.QuoteRecord
	err := db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *Repository) List(ctx context.Context, db *gorm.DB, req quotedomain.ListRequest, page pagination.Pagination) ([]quotedomain.QuoteRecord, error) {
	query := db.WithContext(ctx).Model(&quotedomain.QuoteRecord{})
	if req.Strategy != "" {
		query = query.Where("strategy = ?", req.Strategy)
	}
	if req.CityName != "" {
		query = query.Where("city_name = ?", req.CityName)
	}

	var records []quotedomain.QuoteRecord
	err := query.
		Order("created_at DESC, id DESC").
		Limit(page.Limit()).
		Offset(page.Offset()).
		Find(&records).Error
	return records, err
}

func (r *Repository) DeleteOlderThan(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.WithContext(ctx).Delete(&quotedomain.QuoteRecord{}, "created_at < ?", cutoff)
	return result.RowsAffected, result.Error
}
