package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/souq/backend/internal/domain/order"
	"github.com/souq/backend/internal/domain/shared"
	"github.com/souq/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockReconciliationStore creates a GormReconciliationStore over a mocked
// SQL connection, for asserting the exact statements settlement issues.
func newMockReconciliationStore(t *testing.T) (*GormReconciliationStore, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormReconciliationStore(gormDB), mock, mockDB
}

func settlementFixtures(t *testing.T) (*order.LocalPayment, *order.Order, *order.CommissionRecord) {
	o, err := order.NewOrder(uuid.New(), valueobject.NewMoneyMRU(decimal.NewFromInt(1000)))
	require.NoError(t, err)
	require.NoError(t, o.MarkAwaitingConfirmation())

	payment, err := order.NewLocalPayment(o.ID, "TX123")
	require.NoError(t, err)
	require.NoError(t, payment.Verify())
	require.NoError(t, o.MarkPaid(order.PaymentMethodBankily))

	commission, err := order.NewCommissionRecord(o, &payment.ID, order.PaymentMethodBankily, decimal.NewFromFloat(0.05))
	require.NoError(t, err)

	return payment, o, commission
}

func TestGormReconciliationStore_SettleSQL(t *testing.T) {
	t.Run("verified flag update is conditional on is_verified = false", func(t *testing.T) {
		store, mock, mockDB := newMockReconciliationStore(t)
		defer mockDB.Close()

		payment, o, commission := settlementFixtures(t)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "local_payments" SET .+ WHERE id = \$\d+ AND is_verified = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := store.Settle(context.Background(), payment, o, commission)

		assert.ErrorIs(t, err, shared.ErrAlreadyProcessed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("order update is version checked", func(t *testing.T) {
		store, mock, mockDB := newMockReconciliationStore(t)
		defer mockDB.Close()

		payment, o, commission := settlementFixtures(t)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "local_payments" SET .+ WHERE id = \$\d+ AND is_verified = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT .?version.? FROM "orders" WHERE id = \$\d+`).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(o.Version + 7))
		mock.ExpectRollback()

		err := store.Settle(context.Background(), payment, o, commission)

		assert.ErrorIs(t, err, shared.ErrConcurrentConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
