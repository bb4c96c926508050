package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/souq/backend/internal/domain/order"
	"github.com/souq/backend/internal/domain/shared"
	"github.com/souq/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupOrderTestDB creates an in-memory SQLite database with the order tables
func setupOrderTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&order.Order{}, &order.LocalPayment{}, &order.CommissionRecord{})
	require.NoError(t, err)

	return db
}

func createPersistedOrder(t *testing.T, db *gorm.DB, total int64) *order.Order {
	o, err := order.NewOrder(uuid.New(), valueobject.NewMoneyMRU(decimal.NewFromInt(total)))
	require.NoError(t, err)
	require.NoError(t, NewGormOrderRepository(db).Save(context.Background(), o))
	return o
}

func createPersistedPayment(t *testing.T, db *gorm.DB, orderID uuid.UUID, txNumber string) *order.LocalPayment {
	p, err := order.NewLocalPayment(orderID, txNumber)
	require.NoError(t, err)
	require.NoError(t, NewGormLocalPaymentRepository(db).Save(context.Background(), p))
	return p
}

func TestGormReconciliationStore_SubmitLocal(t *testing.T) {
	t.Run("payment and order transition land together", func(t *testing.T) {
		db := setupOrderTestDB(t)
		store := NewGormReconciliationStore(db)
		ctx := context.Background()

		o := createPersistedOrder(t, db, 1000)
		payment, err := order.NewLocalPayment(o.ID, "TX123")
		require.NoError(t, err)
		require.NoError(t, o.MarkAwaitingConfirmation())

		require.NoError(t, store.SubmitLocal(ctx, payment, o))

		storedPayment, err := NewGormLocalPaymentRepository(db).FindByID(ctx, payment.ID)
		require.NoError(t, err)
		assert.Equal(t, o.ID, storedPayment.OrderID)

		storedOrder, err := NewGormOrderRepository(db).FindByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusAwaitingConfirmation, storedOrder.Status)
	})

	t.Run("failed order update leaves no payment behind", func(t *testing.T) {
		db := setupOrderTestDB(t)
		store := NewGormReconciliationStore(db)
		ctx := context.Background()

		o := createPersistedOrder(t, db, 1000)
		repo := NewGormOrderRepository(db)

		stale, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)

		// Another writer moves the order first
		require.NoError(t, o.MarkAwaitingConfirmation())
		require.NoError(t, repo.SaveWithLock(ctx, o))

		payment, err := order.NewLocalPayment(stale.ID, "TX999")
		require.NoError(t, err)
		require.NoError(t, stale.MarkAwaitingConfirmation())

		err = store.SubmitLocal(ctx, payment, stale)
		assert.ErrorIs(t, err, shared.ErrConcurrentConflict)

		// The whole submission rolled back, no orphaned payment row
		var count int64
		require.NoError(t, db.Model(&order.LocalPayment{}).Where("order_id = ?", o.ID).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})
}

func TestGormReconciliationStore_Settle(t *testing.T) {
	t.Run("settles payment, order and commission together", func(t *testing.T) {
		db := setupOrderTestDB(t)
		store := NewGormReconciliationStore(db)
		ctx := context.Background()

		o := createPersistedOrder(t, db, 1000)
		payment := createPersistedPayment(t, db, o.ID, "TX123")

		require.NoError(t, o.MarkAwaitingConfirmation())
		require.NoError(t, NewGormOrderRepository(db).SaveWithLock(ctx, o))

		require.NoError(t, payment.Verify())
		require.NoError(t, o.MarkPaid(order.PaymentMethodBankily))
		commission, err := order.NewCommissionRecord(o, &payment.ID, order.PaymentMethodBankily, decimal.NewFromFloat(0.05))
		require.NoError(t, err)

		require.NoError(t, store.Settle(ctx, payment, o, commission))

		// Everything landed
		storedPayment, err := NewGormLocalPaymentRepository(db).FindByID(ctx, payment.ID)
		require.NoError(t, err)
		assert.True(t, storedPayment.IsVerified)

		storedOrder, err := NewGormOrderRepository(db).FindByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusPaid, storedOrder.Status)

		storedCommission, err := NewGormCommissionRecordRepository(db).FindByOrderID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, "50.00", storedCommission.Amount.StringFixed(2))
	})

	t.Run("second settle of the same payment loses", func(t *testing.T) {
		db := setupOrderTestDB(t)
		store := NewGormReconciliationStore(db)
		ctx := context.Background()

		o := createPersistedOrder(t, db, 1000)
		payment := createPersistedPayment(t, db, o.ID, "TX123")

		require.NoError(t, o.MarkAwaitingConfirmation())
		require.NoError(t, NewGormOrderRepository(db).SaveWithLock(ctx, o))

		// Two approvers load the same state
		repoOrder := NewGormOrderRepository(db)
		repoPayment := NewGormLocalPaymentRepository(db)

		o1, err := repoOrder.FindByID(ctx, o.ID)
		require.NoError(t, err)
		p1, err := repoPayment.FindByID(ctx, payment.ID)
		require.NoError(t, err)

		o2, err := repoOrder.FindByID(ctx, o.ID)
		require.NoError(t, err)
		p2, err := repoPayment.FindByID(ctx, payment.ID)
		require.NoError(t, err)

		settle := func(p *order.LocalPayment, ord *order.Order) error {
			if err := p.Verify(); err != nil {
				return err
			}
			if err := ord.MarkPaid(order.PaymentMethodBankily); err != nil {
				return err
			}
			c, err := order.NewCommissionRecord(ord, &p.ID, order.PaymentMethodBankily, decimal.NewFromFloat(0.05))
			if err != nil {
				return err
			}
			return store.Settle(ctx, p, ord, c)
		}

		require.NoError(t, settle(p1, o1))

		err = settle(p2, o2)
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrAlreadyProcessed)

		// Exactly one commission record exists
		var count int64
		require.NoError(t, db.Model(&order.CommissionRecord{}).Where("order_id = ?", o.ID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func TestGormReconciliationStore_SettleGateway(t *testing.T) {
	db := setupOrderTestDB(t)
	store := NewGormReconciliationStore(db)
	ctx := context.Background()

	o := createPersistedOrder(t, db, 2000)
	require.NoError(t, o.MarkPaid(order.PaymentMethodStripe))
	commission, err := order.NewCommissionRecord(o, nil, order.PaymentMethodStripe, decimal.NewFromFloat(0.05))
	require.NoError(t, err)

	require.NoError(t, store.SettleGateway(ctx, o, commission))

	storedOrder, err := NewGormOrderRepository(db).FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPaid, storedOrder.Status)

	storedCommission, err := NewGormCommissionRecordRepository(db).FindByOrderID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "100.00", storedCommission.Amount.StringFixed(2))
	assert.Nil(t, storedCommission.LocalPaymentID)
}
