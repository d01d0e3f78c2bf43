package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/abhisheksh99/Food-Delivery-App-v2/models"
	"github.com/abhisheksh99/Food-Delivery-App-v2/payment"
	"github.com/abhisheksh99/Food-Delivery-App-v2/services"
)

// requestTimeout bounds the work a handler does on behalf of one request.
const requestTimeout = 30 * time.Second

type AuthServiceInterface interface {
	Signup(ctx context.Context, in services.SignupInput) (*models.User, error)
	Login(ctx context.Context, in services.LoginInput) (*models.User, error)
	VerifyEmail(ctx context.Context, code string) (*models.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	CheckAuth(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, in models.ProfileUpdate) (*models.User, error)
}

type SessionIssuer interface {
	IssueSession(w http.ResponseWriter, userID string) (string, error)
}

type RestaurantServiceInterface interface {
	Create(ctx context.Context, ownerID string, attrs models.RestaurantAttrs, image interface{}) (*models.Restaurant, error)
	Get(ctx context.Context, ownerID string) (*models.RestaurantDetail, error)
	Update(ctx context.Context, ownerID string, attrs models.RestaurantAttrs, image interface{}) (*models.Restaurant, error)
	GetSingle(ctx context.Context, restaurantID string) (*models.RestaurantDetail, error)
	Search(ctx context.Context, filter models.SearchFilter) ([]models.Restaurant, error)
	Orders(ctx context.Context, ownerID string) ([]models.OrderDetail, error)
	UpdateOrderStatus(ctx context.Context, ownerID, orderID string, next models.OrderStatus) (*models.Order, error)
}

type MenuServiceInterface interface {
	AddMenu(ctx context.Context, ownerID string, attrs models.MenuAttrs, image interface{}) (*models.Menu, error)
	EditMenu(ctx context.Context, menuID string, patch models.MenuPatch, image interface{}) (*models.Menu, error)
}

type CheckoutServiceInterface interface {
	CreateCheckoutSession(ctx context.Context, userID string, req services.CheckoutRequest) (*payment.CheckoutSession, error)
	GetOrders(ctx context.Context, userID string) ([]models.OrderDetail, error)
}

type WebhookServiceInterface interface {
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type TrackingHub interface {
	ServeWS(w http.ResponseWriter, r *http.Request, userID string) error
}

var (
	_ AuthServiceInterface       = (*services.AuthService)(nil)
	_ RestaurantServiceInterface = (*services.RestaurantService)(nil)
	_ MenuServiceInterface       = (*services.MenuService)(nil)
	_ CheckoutServiceInterface   = (*services.CheckoutService)(nil)
	_ WebhookServiceInterface    = (*services.WebhookService)(nil)
)
