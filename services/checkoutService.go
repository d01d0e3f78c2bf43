package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhisheksh99/Food-Delivery-App-v2/helper"
	"github.com/abhisheksh99/Food-Delivery-App-v2/models"
	"github.com/abhisheksh99/Food-Delivery-App-v2/payment"
)

// CheckoutRequest is the cart a customer wants to pay for. Client-supplied
// names, images and prices in the cart are ignored.
type CheckoutRequest struct {
	CartItems       []models.CartItem      `json:"cartItems" validate:"required,min=1,dive"`
	DeliveryDetails models.DeliveryDetails `json:"deliveryDetails"`
	RestaurantID    string                 `json:"restaurantId" validate:"required"`
}

type CheckoutOptions struct {
	Currency         string
	FrontendURL      string
	PaymentTimeout   time.Duration
	AllowedCountries []string
}

type CheckoutService struct {
	restaurants RestaurantStore
	menus       MenuStore
	orders      OrderStore
	gateway     PaymentGateway
	opts        CheckoutOptions
	now         func() time.Time
}

func NewCheckoutService(restaurants RestaurantStore, menus MenuStore, orders OrderStore, gateway PaymentGateway, opts CheckoutOptions) *CheckoutService {
	if opts.AllowedCountries == nil {
		opts.AllowedCountries = []string{"GB", "US", "CA"}
	}
	return &CheckoutService{
		restaurants: restaurants,
		menus:       menus,
		orders:      orders,
		gateway:     gateway,
		opts:        opts,
		now:         time.Now,
	}
}

// CreateCheckoutSession prices the cart from the restaurant's current menu,
// opens a hosted payment session for it and stores the pending order. The
// order is written only once the processor has returned a session URL.
func (s *CheckoutService) CreateCheckoutSession(ctx context.Context, userID string, req CheckoutRequest) (*payment.CheckoutSession, error) {
	if err := helper.ValidateStruct(req); err != nil {
		return nil, err
	}
	user, err := objectID(userID, "User not found")
	if err != nil {
		return nil, err
	}
	restaurantID, err := objectID(req.RestaurantID, "Restaurant not found.")
	if err != nil {
		return nil, err
	}

	restaurant, err := s.restaurants.FindByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	menus, err := s.menus.FindByIDs(ctx, restaurant.Menus)
	if err != nil {
		return nil, err
	}
	detail := models.RestaurantDetail{Restaurant: *restaurant, Menus: menus}

	snapshot, lineItems, err := priceCart(&detail, req.CartItems)
	if err != nil {
		return nil, err
	}

	now := s.now()
	order := &models.Order{
		ID:              primitive.NewObjectID(),
		Restaurant:      restaurant.ID,
		User:            user,
		DeliveryDetails: req.DeliveryDetails,
		CartItems:       snapshot,
		TotalAmount:     models.ComputeTotal(snapshot),
		Status:          models.StatusPending,
		Created_at:      now,
		Updated_at:      now,
	}

	payCtx, cancel := context.WithTimeout(ctx, s.opts.PaymentTimeout)
	defer cancel()
	session, err := s.gateway.CreateCheckoutSession(payCtx, payment.CheckoutRequest{
		OrderID:          order.ID.Hex(),
		Currency:         s.opts.Currency,
		LineItems:        lineItems,
		SuccessURL:       s.opts.FrontendURL + "/order/status",
		CancelURL:        s.opts.FrontendURL + "/cart",
		AllowedCountries: s.opts.AllowedCountries,
	})
	if err != nil {
		return nil, helper.BadGateway("Error while creating session", err)
	}
	if session == nil || session.URL == "" {
		return nil, helper.BadGateway("Error while creating session", nil)
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.expireSession(ctx, session.ID)
		return nil, err
	}
	return session, nil
}

func (s *CheckoutService) GetOrders(ctx context.Context, userID string) ([]models.OrderDetail, error) {
	user, err := objectID(userID, "User not found")
	if err != nil {
		return nil, err
	}
	return s.orders.ListByUser(ctx, user)
}

// expireSession closes a hosted session whose order could not be stored, so
// the customer cannot pay for an order that does not exist.
func (s *CheckoutService) expireSession(ctx context.Context, sessionID string) {
	expireCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.PaymentTimeout)
	defer cancel()
	if err := s.gateway.ExpireCheckoutSession(expireCtx, sessionID); err != nil {
		slog.ErrorContext(ctx, "failed to expire checkout session", "sessionId", sessionID, "error", err)
	}
}

// priceCart resolves every cart line against the restaurant's menu. Any line
// naming an item the restaurant does not offer fails the whole cart.
func priceCart(restaurant *models.RestaurantDetail, cart []models.CartItem) ([]models.CartItem, []payment.LineItem, error) {
	snapshot := make([]models.CartItem, 0, len(cart))
	lineItems := make([]payment.LineItem, 0, len(cart))
	for _, item := range cart {
		menu, ok := restaurant.MenuByID(item.MenuID)
		if !ok {
			return nil, nil, helper.Validation(fmt.Sprintf("Menu item %s not found", item.MenuID))
		}
		snapshot = append(snapshot, models.CartItem{
			MenuID:   item.MenuID,
			Name:     menu.Name,
			Image:    menu.Image,
			Price:    menu.Price,
			Quantity: item.Quantity,
		})
		lineItems = append(lineItems, payment.LineItem{
			Name:       menu.Name,
			Image:      menu.Image,
			UnitAmount: models.ToMinorUnits(menu.Price),
			Quantity:   item.Quantity,
		})
	}
	return snapshot, lineItems, nil
}
