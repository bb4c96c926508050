package handler

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	orderapp "github.com/souq/backend/internal/application/order"
	"github.com/souq/backend/internal/domain/order"
	"github.com/souq/backend/internal/domain/shared"
	"github.com/souq/backend/internal/domain/shared/valueobject"
	"github.com/souq/backend/internal/infrastructure/auth"
	"github.com/souq/backend/internal/infrastructure/cache"
	"github.com/souq/backend/internal/infrastructure/config"
	"github.com/souq/backend/internal/infrastructure/payment"
	"github.com/souq/backend/internal/interfaces/http/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByBuyer(ctx context.Context, buyerID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, buyerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveWithLock(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

// MockLocalPaymentRepository is a mock implementation of order.LocalPaymentRepository
type MockLocalPaymentRepository struct {
	mock.Mock
}

func (m *MockLocalPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.LocalPayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.LocalPayment), args.Error(1)
}

func (m *MockLocalPaymentRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*order.LocalPayment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.LocalPayment), args.Error(1)
}

func (m *MockLocalPaymentRepository) FindByTransactionNumber(ctx context.Context, txNumber string) (*order.LocalPayment, error) {
	args := m.Called(ctx, txNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.LocalPayment), args.Error(1)
}

func (m *MockLocalPaymentRepository) FindAll(ctx context.Context, verified *bool, filter shared.Filter) ([]order.LocalPayment, int64, error) {
	args := m.Called(ctx, verified, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]order.LocalPayment), args.Get(1).(int64), args.Error(2)
}

func (m *MockLocalPaymentRepository) Save(ctx context.Context, p *order.LocalPayment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockReconciliationStore is a mock implementation of order.ReconciliationStore
type MockReconciliationStore struct {
	mock.Mock
}

func (m *MockReconciliationStore) SubmitLocal(ctx context.Context, p *order.LocalPayment, o *order.Order) error {
	args := m.Called(ctx, p, o)
	return args.Error(0)
}

func (m *MockReconciliationStore) Settle(ctx context.Context, p *order.LocalPayment, o *order.Order, c *order.CommissionRecord) error {
	args := m.Called(ctx, p, o, c)
	return args.Error(0)
}

func (m *MockReconciliationStore) SettleGateway(ctx context.Context, o *order.Order, c *order.CommissionRecord) error {
	args := m.Called(ctx, o, c)
	return args.Error(0)
}

// MockPaymentGateway is a mock implementation of orderapp.PaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateIntent(ctx context.Context, o *order.Order) (string, error) {
	args := m.Called(ctx, o)
	return args.String(0), args.Error(1)
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key-32-characters-long",
		TokenExpiration: time.Hour,
		Issuer:          "souq-test",
	})
}

func bearerToken(t *testing.T, svc *auth.JWTService, userID uuid.UUID, isAdmin bool) string {
	token, err := svc.GenerateToken(auth.GenerateTokenInput{
		UserID:   userID,
		Username: "aminata",
		IsAdmin:  isAdmin,
	})
	require.NoError(t, err)
	return "Bearer " + token.Value
}

type paymentHandlerFixture struct {
	orderRepo   *MockOrderRepository
	paymentRepo *MockLocalPaymentRepository
	reconStore  *MockReconciliationStore
	gateway     *MockPaymentGateway
	jwtService  *auth.JWTService
	engine      *gin.Engine
}

func newPaymentHandlerFixture(t *testing.T) *paymentHandlerFixture {
	f := &paymentHandlerFixture{
		orderRepo:   new(MockOrderRepository),
		paymentRepo: new(MockLocalPaymentRepository),
		reconStore:  new(MockReconciliationStore),
		gateway:     new(MockPaymentGateway),
		jwtService:  testJWTService(),
	}

	idempotency := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = idempotency.Close() })

	service := orderapp.NewPaymentService(
		f.orderRepo,
		f.paymentRepo,
		f.reconStore,
		f.gateway,
		idempotency,
		orderapp.NewFixedCommissionPolicy(decimal.NewFromFloat(0.05)),
		zap.NewNop(),
	)

	verifier := payment.NewStripeWebhookVerifier(config.StripeConfig{WebhookSecret: "whsec_test"}, zap.NewNop())
	h := NewPaymentHandler(service, verifier, f.jwtService, zap.NewNop())

	f.engine = gin.New()
	router.NewRouter(f.engine).Register(h).Setup()
	return f
}

func pendingOrder(t *testing.T, buyerID uuid.UUID, total int64) *order.Order {
	o, err := order.NewOrder(buyerID, valueobject.NewMoneyMRU(decimal.NewFromInt(total)))
	require.NoError(t, err)
	return o
}

func postJSON(t *testing.T, engine *gin.Engine, path, authHeader string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestPaymentHandler_Initiate(t *testing.T) {
	t.Run("bankily submission parks the order", func(t *testing.T) {
		f := newPaymentHandlerFixture(t)
		buyerID := uuid.New()
		o := pendingOrder(t, buyerID, 1000)

		f.orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		f.paymentRepo.On("FindByTransactionNumber", mock.Anything, "TX123").Return(nil, shared.ErrNotFound)
		f.reconStore.On("SubmitLocal", mock.Anything, mock.AnythingOfType("*order.LocalPayment"), o).Return(nil)

		w := postJSON(t, f.engine, "/api/v1/payments", bearerToken(t, f.jwtService, buyerID, false), gin.H{
			"order_id":           o.ID,
			"method":             "BANKILY",
			"transaction_number": "TX123",
		})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), "AWAITING_CONFIRMATION")
		assert.Contains(t, w.Body.String(), "local_payment_id")
	})

	t.Run("unsupported method is a 400", func(t *testing.T) {
		f := newPaymentHandlerFixture(t)
		buyerID := uuid.New()

		w := postJSON(t, f.engine, "/api/v1/payments", bearerToken(t, f.jwtService, buyerID, false), gin.H{
			"order_id": uuid.New(),
			"method":   "CASH",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "UNSUPPORTED_METHOD")
	})

	t.Run("duplicate reference is a 409", func(t *testing.T) {
		f := newPaymentHandlerFixture(t)
		buyerID := uuid.New()
		o := pendingOrder(t, buyerID, 1000)

		existing, err := order.NewLocalPayment(uuid.New(), "TX123")
		require.NoError(t, err)

		f.orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		f.paymentRepo.On("FindByTransactionNumber", mock.Anything, "TX123").Return(existing, nil)

		w := postJSON(t, f.engine, "/api/v1/payments", bearerToken(t, f.jwtService, buyerID, false), gin.H{
			"order_id":           o.ID,
			"method":             "BANKILY",
			"transaction_number": "TX123",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "DUPLICATE_REFERENCE")
	})

	t.Run("someone else's order is forbidden", func(t *testing.T) {
		f := newPaymentHandlerFixture(t)
		o := pendingOrder(t, uuid.New(), 1000)

		f.orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		w := postJSON(t, f.engine, "/api/v1/payments", bearerToken(t, f.jwtService, uuid.New(), false), gin.H{
			"order_id": o.ID,
			"method":   "STRIPE",
		})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing token is a 401", func(t *testing.T) {
		f := newPaymentHandlerFixture(t)

		w := postJSON(t, f.engine, "/api/v1/payments", "", gin.H{
			"order_id": uuid.New(),
			"method":   "STRIPE",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("gateway failure surfaces as 502", func(t *testing.T) {
		f := newPaymentHandlerFixture(t)
		buyerID := uuid.New()
		o := pendingOrder(t, buyerID, 1000)

		f.orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		f.gateway.On("CreateIntent", mock.Anything, o).Return("", assert.AnError)

		w := postJSON(t, f.engine, "/api/v1/payments", bearerToken(t, f.jwtService, buyerID, false), gin.H{
			"order_id": o.ID,
			"method":   "STRIPE",
		})

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "EXTERNAL_SERVICE")
	})
}

// stripeSignature produces a valid Stripe-Signature header for the payload
func stripeSignature(payload []byte, secret string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestPaymentHandler_StripeWebhook(t *testing.T) {
	t.Run("succeeded event settles the order", func(t *testing.T) {
		f := newPaymentHandlerFixture(t)
		o := pendingOrder(t, uuid.New(), 1000)

		f.orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		f.reconStore.On("SettleGateway", mock.Anything, o,
			mock.AnythingOfType("*order.CommissionRecord")).Return(nil)

		intent, err := json.Marshal(gin.H{
			"id":       "pi_test_123",
			"object":   "payment_intent",
			"metadata": gin.H{"order_id": o.ID.String()},
		})
		require.NoError(t, err)
		payload, err := json.Marshal(gin.H{
			"id":   "evt_test_123",
			"type": "payment_intent.succeeded",
			"data": gin.H{"object": json.RawMessage(intent)},
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/stripe/webhook",
			bytes.NewReader(payload))
		req.Header.Set("Stripe-Signature", stripeSignature(payload, "whsec_test"))
		w := httptest.NewRecorder()
		f.engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), "evt_test_123")
		f.reconStore.AssertExpectations(t)
	})

	t.Run("bad signature is rejected", func(t *testing.T) {
		f := newPaymentHandlerFixture(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/stripe/webhook",
			bytes.NewReader([]byte(`{"type":"payment_intent.succeeded"}`)))
		req.Header.Set("Stripe-Signature", "t=1,v1=bogus")
		w := httptest.NewRecorder()
		f.engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
