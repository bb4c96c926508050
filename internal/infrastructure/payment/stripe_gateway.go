package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/souq/backend/internal/domain/order"
	"github.com/souq/backend/internal/infrastructure/config"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"go.uber.org/zap"
)

// StripeGateway creates payment intents for card payments
type StripeGateway struct {
	config config.StripeConfig
	logger *zap.Logger
}

// NewStripeGateway creates a new Stripe gateway and initializes the client
func NewStripeGateway(cfg config.StripeConfig, logger *zap.Logger) (*StripeGateway, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("stripe: secret key is required")
	}

	stripe.Key = cfg.SecretKey

	return &StripeGateway{
		config: cfg,
		logger: logger,
	}, nil
}

// CreateIntent opens a payment intent for the order's stored total. The amount
// is always taken from the order row, never from anything the client sent.
func (g *StripeGateway) CreateIntent(ctx context.Context, o *order.Order) (string, error) {
	money := o.TotalMoney()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(money.MinorUnits()),
		Currency: stripe.String(strings.ToLower(string(money.Currency()))),
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
	}
	params.Context = ctx
	params.Metadata = map[string]string{
		"order_id": o.ID.String(),
		"buyer_id": o.BuyerID.String(),
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		g.logger.Error("Failed to create payment intent",
			zap.String("order_id", o.ID.String()),
			zap.Error(err))
		return "", fmt.Errorf("stripe: failed to create payment intent: %w", err)
	}

	g.logger.Info("Created payment intent",
		zap.String("order_id", o.ID.String()),
		zap.String("intent_id", intent.ID),
		zap.Int64("amount", intent.Amount))

	return intent.ClientSecret, nil
}
