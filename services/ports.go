// Package services holds the marketplace use cases. Storage and every remote
// collaborator are reached through the interfaces below.
package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhisheksh99/Food-Delivery-App-v2/cache"
	"github.com/abhisheksh99/Food-Delivery-App-v2/events"
	"github.com/abhisheksh99/Food-Delivery-App-v2/helper"
	"github.com/abhisheksh99/Food-Delivery-App-v2/mailer"
	"github.com/abhisheksh99/Food-Delivery-App-v2/media"
	"github.com/abhisheksh99/Food-Delivery-App-v2/models"
	"github.com/abhisheksh99/Food-Delivery-App-v2/payment"
	"github.com/abhisheksh99/Food-Delivery-App-v2/repository"
	"github.com/abhisheksh99/Food-Delivery-App-v2/tracking"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByVerificationToken(ctx context.Context, code string, now time.Time) (*models.User, error)
	FindByResetToken(ctx context.Context, token string, now time.Time) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

type RestaurantStore interface {
	Create(ctx context.Context, restaurant *models.Restaurant) error
	FindByOwner(ctx context.Context, ownerID primitive.ObjectID) (*models.Restaurant, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Restaurant, error)
	Update(ctx context.Context, restaurant *models.Restaurant) error
	AppendMenu(ctx context.Context, ownerID, menuID primitive.ObjectID) (*models.Restaurant, error)
	Search(ctx context.Context, filter models.SearchFilter) ([]models.Restaurant, error)
}

type MenuStore interface {
	Create(ctx context.Context, menu *models.Menu) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Menu, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Menu, error)
	Update(ctx context.Context, menu *models.Menu) error
}

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.OrderDetail, error)
	ListByRestaurant(ctx context.Context, restaurantID primitive.ObjectID) ([]models.OrderDetail, error)
	Confirm(ctx context.Context, id primitive.ObjectID, amountTotal *int64, now time.Time) (*models.Order, bool, error)
	UpdateStatus(ctx context.Context, order *models.Order, next models.OrderStatus, now time.Time) (*models.Order, error)
}

type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error)
	ExpireCheckoutSession(ctx context.Context, sessionID string) error
}

type WebhookVerifier interface {
	VerifyEvent(payload []byte, signatureHeader string) (*payment.Event, error)
}

// ImageUploader stores an image and returns its public URL. file is anything
// the asset host accepts: an io.Reader, a data URI or a remote URL.
type ImageUploader interface {
	Upload(ctx context.Context, file interface{}) (string, error)
}

type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// EventLedger records payment events that were fully applied.
type EventLedger interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	MarkProcessed(ctx context.Context, eventID string) error
}

type OrderNotifier interface {
	OrderStatusChanged(ctx context.Context, order models.Order) error
}

var (
	_ UserStore       = (*repository.UserRepository)(nil)
	_ RestaurantStore = (*repository.RestaurantRepository)(nil)
	_ MenuStore       = (*repository.MenuRepository)(nil)
	_ OrderStore      = (*repository.OrderRepository)(nil)
	_ PaymentGateway  = (*payment.StripeGateway)(nil)
	_ PaymentGateway  = payment.Unconfigured{}
	_ WebhookVerifier = (*payment.StripeWebhookVerifier)(nil)
	_ ImageUploader   = (*media.CloudinaryUploader)(nil)
	_ ImageUploader   = media.Unconfigured{}
	_ Mailer          = (*mailer.SendGridMailer)(nil)
	_ Mailer          = mailer.LogMailer{}
	_ EventLedger     = (*cache.ProcessedEvents)(nil)
	_ EventLedger     = cache.NoopLedger{}
	_ OrderNotifier   = events.Fanout{}
	_ OrderNotifier   = (*tracking.Hub)(nil)
)

// objectID parses a hex id. Malformed ids can never match a document, so they
// are reported the same way as a missing one.
func objectID(hex, notFoundMessage string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, helper.NotFound(notFoundMessage)
	}
	return id, nil
}
