package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/souq/backend/internal/domain/order"
	"github.com/souq/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCommissionRecordRepository implements order.CommissionRecordRepository using GORM
type GormCommissionRecordRepository struct {
	db *gorm.DB
}

// NewGormCommissionRecordRepository creates a new GormCommissionRecordRepository
func NewGormCommissionRecordRepository(db *gorm.DB) *GormCommissionRecordRepository {
	return &GormCommissionRecordRepository{db: db}
}

// FindByOrderID finds the commission record for an order
func (r *GormCommissionRecordRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*order.CommissionRecord, error) {
	var record order.CommissionRecord
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Save persists a commission record
func (r *GormCommissionRecordRepository) Save(ctx context.Context, record *order.CommissionRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

var _ order.CommissionRecordRepository = (*GormCommissionRecordRepository)(nil)
