package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhisheksh99/Food-Delivery-App-v2/helper"
	"github.com/abhisheksh99/Food-Delivery-App-v2/models"
)

type RestaurantService struct {
	restaurants RestaurantStore
	menus       MenuStore
	orders      OrderStore
	uploader    ImageUploader
	notifier    OrderNotifier
	now         func() time.Time
}

func NewRestaurantService(restaurants RestaurantStore, menus MenuStore, orders OrderStore, uploader ImageUploader, notifier OrderNotifier) *RestaurantService {
	return &RestaurantService{
		restaurants: restaurants,
		menus:       menus,
		orders:      orders,
		uploader:    uploader,
		notifier:    notifier,
		now:         time.Now,
	}
}

// Create registers the owner's only restaurant. image is required.
func (s *RestaurantService) Create(ctx context.Context, ownerID string, attrs models.RestaurantAttrs, image interface{}) (*models.Restaurant, error) {
	if err := helper.ValidateStruct(attrs); err != nil {
		return nil, err
	}
	owner, err := objectID(ownerID, "User not found")
	if err != nil {
		return nil, err
	}

	_, err = s.restaurants.FindByOwner(ctx, owner)
	if err == nil {
		return nil, helper.Conflict("Restaurant already exists for this user")
	} else if !errors.Is(err, helper.ErrNotFound) {
		return nil, err
	}
	if image == nil {
		return nil, helper.Validation("Image is required")
	}

	imageURL, err := s.uploader.Upload(ctx, image)
	if err != nil {
		return nil, helper.BadGateway("Failed to upload image", err)
	}

	now := s.now()
	restaurant := &models.Restaurant{
		ID:             primitive.NewObjectID(),
		User:           owner,
		RestaurantName: attrs.RestaurantName,
		City:           attrs.City,
		Country:        attrs.Country,
		DeliveryTime:   attrs.DeliveryTime,
		Cuisines:       attrs.Cuisines,
		ImageURL:       imageURL,
		Menus:          []primitive.ObjectID{},
		Created_at:     now,
		Updated_at:     now,
	}
	if err := s.restaurants.Create(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

// Get returns the owner's restaurant with its menu.
func (s *RestaurantService) Get(ctx context.Context, ownerID string) (*models.RestaurantDetail, error) {
	restaurant, err := s.ownedRestaurant(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, restaurant)
}

// Update overwrites the attributes; a nil image keeps the current one.
func (s *RestaurantService) Update(ctx context.Context, ownerID string, attrs models.RestaurantAttrs, image interface{}) (*models.Restaurant, error) {
	if err := helper.ValidateStruct(attrs); err != nil {
		return nil, err
	}
	restaurant, err := s.ownedRestaurant(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	restaurant.RestaurantName = attrs.RestaurantName
	restaurant.City = attrs.City
	restaurant.Country = attrs.Country
	restaurant.DeliveryTime = attrs.DeliveryTime
	restaurant.Cuisines = attrs.Cuisines
	if image != nil {
		imageURL, err := s.uploader.Upload(ctx, image)
		if err != nil {
			return nil, helper.BadGateway("Failed to upload image", err)
		}
		restaurant.ImageURL = imageURL
	}
	restaurant.Updated_at = s.now()

	if err := s.restaurants.Update(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

// GetSingle is the public restaurant page: the restaurant and its menu, newest first.
func (s *RestaurantService) GetSingle(ctx context.Context, restaurantID string) (*models.RestaurantDetail, error) {
	id, err := objectID(restaurantID, "Restaurant not found")
	if err != nil {
		return nil, err
	}
	restaurant, err := s.restaurants.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, restaurant)
}

func (s *RestaurantService) Search(ctx context.Context, filter models.SearchFilter) ([]models.Restaurant, error) {
	return s.restaurants.Search(ctx, filter)
}

// Orders lists the orders placed at the owner's restaurant.
func (s *RestaurantService) Orders(ctx context.Context, ownerID string) ([]models.OrderDetail, error) {
	restaurant, err := s.ownedRestaurant(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.orders.ListByRestaurant(ctx, restaurant.ID)
}

// UpdateOrderStatus advances an order of the owner's restaurant through
// fulfilment. Orders of other restaurants are reported as not found.
func (s *RestaurantService) UpdateOrderStatus(ctx context.Context, ownerID, orderID string, next models.OrderStatus) (*models.Order, error) {
	if !next.Valid() {
		return nil, helper.Validation(fmt.Sprintf("Invalid order status %q", next))
	}
	restaurant, err := s.ownedRestaurant(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	id, err := objectID(orderID, "Order not found")
	if err != nil {
		return nil, err
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Restaurant != restaurant.ID {
		return nil, helper.NotFound("Order not found")
	}
	if !order.Status.CanFulfil(next) {
		return nil, helper.Conflict(fmt.Sprintf("Cannot move order from %s to %s", order.Status, next))
	}

	updated, err := s.orders.UpdateStatus(ctx, order, next, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.notifier.OrderStatusChanged(ctx, *updated); err != nil {
		slog.WarnContext(ctx, "order status notification failed", "orderId", orderID, "error", err)
	}
	return updated, nil
}

func (s *RestaurantService) ownedRestaurant(ctx context.Context, ownerID string) (*models.Restaurant, error) {
	owner, err := objectID(ownerID, "Restaurant not found")
	if err != nil {
		return nil, err
	}
	return s.restaurants.FindByOwner(ctx, owner)
}

func (s *RestaurantService) expand(ctx context.Context, restaurant *models.Restaurant) (*models.RestaurantDetail, error) {
	menus, err := s.menus.FindByIDs(ctx, restaurant.Menus)
	if err != nil {
		return nil, err
	}
	return &models.RestaurantDetail{Restaurant: *restaurant, Menus: menus}, nil
}
