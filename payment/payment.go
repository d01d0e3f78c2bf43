// Package payment talks to the hosted-checkout payment processor.
package payment

import (
	"context"
	"errors"
)

// EventCheckoutCompleted is the processor event confirming a paid session.
const EventCheckoutCompleted = "checkout.session.completed"

// Metadata keys carried on a hosted session and echoed back in its events.
const (
	MetadataOrderID = "orderId"
	MetadataImages  = "images"
)

type LineItem struct {
	Name       string
	Image      string
	UnitAmount int64
	Quantity   int64
}

type CheckoutRequest struct {
	OrderID          string
	Currency         string
	LineItems        []LineItem
	SuccessURL       string
	CancelURL        string
	AllowedCountries []string
}

type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Event is the part of a verified processor event the reconciler needs.
type Event struct {
	ID          string
	Type        string
	OrderID     string
	AmountTotal *int64
}

var ErrNotConfigured = errors.New("payment processor is not configured")

// Unconfigured is used when no processor credentials are set; every call fails.
type Unconfigured struct{}

func (Unconfigured) CreateCheckoutSession(context.Context, CheckoutRequest) (*CheckoutSession, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) ExpireCheckoutSession(context.Context, string) error {
	return ErrNotConfigured
}
