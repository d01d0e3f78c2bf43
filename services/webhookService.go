package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisheksh99/Food-Delivery-App-v2/payment"
)

type WebhookService struct {
	verifier WebhookVerifier
	orders   OrderStore
	ledger   EventLedger
	notifier OrderNotifier
	now      func() time.Time
}

func NewWebhookService(verifier WebhookVerifier, orders OrderStore, ledger EventLedger, notifier OrderNotifier) *WebhookService {
	return &WebhookService{verifier: verifier, orders: orders, ledger: ledger, notifier: notifier, now: time.Now}
}

// HandleWebhook verifies a payment event and confirms the order it refers to.
//
// Errors are an InvalidSignature when verification fails, a NotFound when the
// order does not exist, and anything else for failures after verification.
// Redelivered events and orders that are no longer pending are no-ops.
func (s *WebhookService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.verifier.VerifyEvent(payload, signature)
	if err != nil {
		return err
	}
	if event.Type != payment.EventCheckoutCompleted {
		return nil
	}

	log := slog.With("eventId", event.ID, "orderId", event.OrderID)

	seen, err := s.ledger.Seen(ctx, event.ID)
	if err != nil {
		// The pending guard on the order still absorbs a duplicate.
		log.WarnContext(ctx, "processed event lookup failed", "error", err)
	} else if seen {
		log.InfoContext(ctx, "duplicate payment event ignored")
		return nil
	}

	id, err := objectID(event.OrderID, "Order not found")
	if err != nil {
		return err
	}
	if _, err := s.orders.FindByID(ctx, id); err != nil {
		return err
	}

	order, confirmed, err := s.orders.Confirm(ctx, id, event.AmountTotal, s.now())
	if err != nil {
		return fmt.Errorf("confirm order: %w", err)
	}
	if confirmed {
		log.InfoContext(ctx, "order confirmed", "totalAmount", order.TotalAmount)
		if err := s.notifier.OrderStatusChanged(ctx, *order); err != nil {
			log.WarnContext(ctx, "order status notification failed", "error", err)
		}
	} else {
		log.InfoContext(ctx, "order already past pending")
	}

	if err := s.ledger.MarkProcessed(ctx, event.ID); err != nil {
		log.WarnContext(ctx, "failed to record processed event", "error", err)
	}
	return nil
}
