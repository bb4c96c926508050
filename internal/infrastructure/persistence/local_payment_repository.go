package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/souq/backend/internal/domain/order"
	"github.com/souq/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormLocalPaymentRepository implements order.LocalPaymentRepository using GORM
type GormLocalPaymentRepository struct {
	db *gorm.DB
}

// NewGormLocalPaymentRepository creates a new GormLocalPaymentRepository
func NewGormLocalPaymentRepository(db *gorm.DB) *GormLocalPaymentRepository {
	return &GormLocalPaymentRepository{db: db}
}

// FindByID finds a local payment by ID
func (r *GormLocalPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.LocalPayment, error) {
	var payment order.LocalPayment
	if err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// FindByOrderID finds the local payment attached to an order
func (r *GormLocalPaymentRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*order.LocalPayment, error) {
	var payment order.LocalPayment
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// FindByTransactionNumber finds a local payment by its transaction reference
func (r *GormLocalPaymentRepository) FindByTransactionNumber(ctx context.Context, txNumber string) (*order.LocalPayment, error) {
	var payment order.LocalPayment
	if err := r.db.WithContext(ctx).
		Where("transaction_number = ?", strings.TrimSpace(txNumber)).
		First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// FindAll lists local payments, optionally filtered by verification state
func (r *GormLocalPaymentRepository) FindAll(ctx context.Context, verified *bool, filter shared.Filter) ([]order.LocalPayment, int64, error) {
	query := r.db.WithContext(ctx).Model(&order.LocalPayment{})
	if verified != nil {
		query = query.Where("is_verified = ?", *verified)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []order.LocalPayment
	if err := query.
		Order("created_at desc").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&payments).Error; err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

// Save persists a local payment. A unique-constraint violation on the
// transaction number surfaces as DUPLICATE_REFERENCE so racing submissions
// of the same reference cannot both land.
func (r *GormLocalPaymentRepository) Save(ctx context.Context, payment *order.LocalPayment) error {
	if err := r.db.WithContext(ctx).Save(payment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrDuplicateReference
		}
		return err
	}
	return nil
}

var _ order.LocalPaymentRepository = (*GormLocalPaymentRepository)(nil)
