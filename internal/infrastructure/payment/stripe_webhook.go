package payment

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/souq/backend/internal/infrastructure/config"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"
	"go.uber.org/zap"
)

// Confirmation is a verified gateway notification that a payment succeeded
type Confirmation struct {
	EventID  string
	OrderID  uuid.UUID
	IntentID string
}

// StripeWebhookVerifier checks webhook signatures and extracts the order a
// succeeded payment intent belongs to
type StripeWebhookVerifier struct {
	webhookSecret string
	logger        *zap.Logger
}

// NewStripeWebhookVerifier creates a new StripeWebhookVerifier
func NewStripeWebhookVerifier(cfg config.StripeConfig, logger *zap.Logger) *StripeWebhookVerifier {
	return &StripeWebhookVerifier{
		webhookSecret: cfg.WebhookSecret,
		logger:        logger,
	}
}

// VerifyConfirmation verifies the event signature and, for a
// payment_intent.succeeded event, returns the confirmation carrying the order
// ID from the intent metadata. Other event types return (nil, nil) so the
// caller can acknowledge them without acting.
func (v *StripeWebhookVerifier) VerifyConfirmation(payload []byte, signature string) (*Confirmation, error) {
	// Accounts pinned to an older API version deliver events tagged with
	// that version; the signature check is what matters here.
	event, err := webhook.ConstructEventWithOptions(payload, signature, v.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		v.logger.Warn("Webhook signature verification failed", zap.Error(err))
		return nil, fmt.Errorf("stripe: webhook signature verification failed: %w", err)
	}

	if event.Type != "payment_intent.succeeded" {
		v.logger.Debug("Ignoring webhook event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)))
		return nil, nil
	}

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return nil, fmt.Errorf("stripe: failed to unmarshal payment intent: %w", err)
	}

	orderID, err := uuid.Parse(intent.Metadata["order_id"])
	if err != nil {
		return nil, fmt.Errorf("stripe: payment intent %s has no valid order_id metadata: %w", intent.ID, err)
	}

	v.logger.Info("Verified payment confirmation",
		zap.String("event_id", event.ID),
		zap.String("intent_id", intent.ID),
		zap.String("order_id", orderID.String()))

	return &Confirmation{
		EventID:  event.ID,
		OrderID:  orderID,
		IntentID: intent.ID,
	}, nil
}
