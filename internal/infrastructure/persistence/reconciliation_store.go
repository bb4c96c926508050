package persistence

import (
	"context"
	"errors"

	"github.com/souq/backend/internal/domain/order"
	"github.com/souq/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormReconciliationStore implements order.ReconciliationStore using a single
// GORM transaction per settlement.
type GormReconciliationStore struct {
	db *gorm.DB
}

// NewGormReconciliationStore creates a new GormReconciliationStore
func NewGormReconciliationStore(db *gorm.DB) *GormReconciliationStore {
	return &GormReconciliationStore{db: db}
}

// SubmitLocal writes the local payment and the order transition in one
// transaction. A unique-constraint violation on the transaction number
// rolls the order update back and surfaces as DUPLICATE_REFERENCE.
func (s *GormReconciliationStore) SubmitLocal(ctx context.Context, payment *order.LocalPayment, o *order.Order) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return shared.ErrDuplicateReference
			}
			return err
		}
		return updateOrderWithVersion(tx, o)
	})
}

// Settle writes the verified flag, the order transition and the commission
// record in one transaction. The payment update is conditional on
// is_verified = false, so of two racing approvers exactly one wins; the
// loser's transaction rolls back with ALREADY_PROCESSED.
func (s *GormReconciliationStore) Settle(ctx context.Context, payment *order.LocalPayment, o *order.Order, commission *order.CommissionRecord) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&order.LocalPayment{}).
			Where("id = ? AND is_verified = ?", payment.ID, false).
			Updates(map[string]interface{}{
				"is_verified": true,
				"verified_at": payment.VerifiedAt,
				"updated_at":  payment.UpdatedAt,
				"version":     payment.Version + 1,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrAlreadyProcessed
		}
		payment.Version++

		if err := updateOrderWithVersion(tx, o); err != nil {
			return err
		}

		return tx.Create(commission).Error
	})
}

// SettleGateway writes the order transition and the commission record in one
// transaction for a gateway-confirmed order.
func (s *GormReconciliationStore) SettleGateway(ctx context.Context, o *order.Order, commission *order.CommissionRecord) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateOrderWithVersion(tx, o); err != nil {
			return err
		}
		return tx.Create(commission).Error
	})
}

// updateOrderWithVersion applies the order's in-memory state with an
// optimistic version check inside the caller's transaction.
func updateOrderWithVersion(tx *gorm.DB, o *order.Order) error {
	var currentVersion int
	if err := tx.Model(&order.Order{}).
		Where("id = ?", o.ID).
		Select("version").
		Scan(&currentVersion).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.ErrNotFound
		}
		return err
	}

	if currentVersion != o.Version {
		return shared.ErrConcurrentConflict
	}

	o.Version++

	result := tx.Model(&order.Order{}).
		Where("id = ? AND version = ?", o.ID, currentVersion).
		Updates(map[string]interface{}{
			"status":         o.Status,
			"payment_method": o.PaymentMethod,
			"paid_at":        o.PaidAt,
			"version":        o.Version,
			"updated_at":     o.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrentConflict
	}
	return nil
}

var _ order.ReconciliationStore = (*GormReconciliationStore)(nil)
