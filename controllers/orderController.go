package controller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/abhisheksh99/Food-Delivery-App-v2/helper"
	middleware "github.com/abhisheksh99/Food-Delivery-App-v2/middlewares"
	"github.com/abhisheksh99/Food-Delivery-App-v2/services"
)

const (
	SignatureHeader = "Stripe-Signature"
	maxWebhookBody  = 65536
)

type OrderController struct {
	checkout CheckoutServiceInterface
	webhooks WebhookServiceInterface
	hub      TrackingHub
}

func NewOrderController(checkout CheckoutServiceInterface, webhooks WebhookServiceInterface, hub TrackingHub) *OrderController {
	return &OrderController{checkout: checkout, webhooks: webhooks, hub: hub}
}

func (c *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	orders, err := c.checkout.GetOrders(ctx, middleware.UserIDFromContext(r.Context()))
	if err != nil {
		helper.WriteError(w, r, err)
		return
	}
	helper.WriteJSON(w, http.StatusOK, helper.Envelope{"orders": orders})
}

func (c *OrderController) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var input services.CheckoutRequest
	if err := helper.DecodeJSON(r.Body, &input); err != nil {
		helper.WriteError(w, r, err)
		return
	}

	session, err := c.checkout.CreateCheckoutSession(ctx, middleware.UserIDFromContext(r.Context()), input)
	if err != nil {
		helper.WriteError(w, r, err)
		return
	}
	helper.WriteJSON(w, http.StatusOK, helper.Envelope{"session": session})
}

// StripeWebhook receives payment events. It answers 400 for a bad signature
// and 404 for an unknown order. Once an event is authentic any other failure
// is logged and acknowledged with 200 so the processor does not redeliver it;
// such events are left unrecorded for manual replay.
func (c *OrderController) StripeWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		helper.WriteError(w, r, &helper.AppError{Kind: helper.KindInvalidSignature, Message: "Webhook error: unreadable body", Err: err})
		return
	}

	err = c.webhooks.HandleWebhook(r.Context(), payload, r.Header.Get(SignatureHeader))
	switch {
	case err == nil:
	case errors.Is(err, helper.ErrInvalidSignature), errors.Is(err, helper.ErrNotFound):
		helper.WriteError(w, r, err)
		return
	default:
		slog.ErrorContext(r.Context(), "payment event not applied", "error", err)
	}
	helper.WriteJSON(w, http.StatusOK, helper.Envelope{"received": true})
}

// TrackOrders upgrades to a websocket that streams status changes of the
// caller's orders.
func (c *OrderController) TrackOrders(w http.ResponseWriter, r *http.Request) {
	if err := c.hub.ServeWS(w, r, middleware.UserIDFromContext(r.Context())); err != nil {
		slog.WarnContext(r.Context(), "tracking upgrade failed", "error", err)
	}
}
