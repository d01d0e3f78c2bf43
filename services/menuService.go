package services

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhisheksh99/Food-Delivery-App-v2/helper"
	"github.com/abhisheksh99/Food-Delivery-App-v2/models"
)

type MenuService struct {
	restaurants RestaurantStore
	menus       MenuStore
	uploader    ImageUploader
	now         func() time.Time
}

func NewMenuService(restaurants RestaurantStore, menus MenuStore, uploader ImageUploader) *MenuService {
	return &MenuService{restaurants: restaurants, menus: menus, uploader: uploader, now: time.Now}
}

// AddMenu creates a menu item and appends it to the owner's restaurant. The
// item is removed again if it could not be attached.
func (s *MenuService) AddMenu(ctx context.Context, ownerID string, attrs models.MenuAttrs, image interface{}) (*models.Menu, error) {
	if err := helper.ValidateStruct(attrs); err != nil {
		return nil, err
	}
	if image == nil {
		return nil, helper.Validation("Image is required")
	}
	owner, err := objectID(ownerID, "Restaurant not found")
	if err != nil {
		return nil, err
	}
	if _, err := s.restaurants.FindByOwner(ctx, owner); err != nil {
		return nil, err
	}

	imageURL, err := s.uploader.Upload(ctx, image)
	if err != nil {
		return nil, helper.BadGateway("Failed to upload image", err)
	}

	now := s.now()
	menu := &models.Menu{
		ID:          primitive.NewObjectID(),
		Name:        attrs.Name,
		Description: attrs.Description,
		Price:       attrs.Price,
		Image:       imageURL,
		Created_at:  now,
		Updated_at:  now,
	}
	if err := s.menus.Create(ctx, menu); err != nil {
		return nil, err
	}

	if _, err := s.restaurants.AppendMenu(ctx, owner, menu.ID); err != nil {
		if delErr := s.menus.Delete(ctx, menu.ID); delErr != nil {
			slog.ErrorContext(ctx, "orphaned menu item", "menuId", menu.ID.Hex(), "error", delErr)
		}
		return nil, err
	}
	return menu, nil
}

// EditMenu applies a partial update to a menu item. It does not check that
// the caller owns the restaurant offering the item.
func (s *MenuService) EditMenu(ctx context.Context, menuID string, patch models.MenuPatch, image interface{}) (*models.Menu, error) {
	if err := helper.ValidateStruct(patch); err != nil {
		return nil, err
	}
	id, err := objectID(menuID, "Menu not found!")
	if err != nil {
		return nil, err
	}
	menu, err := s.menus.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if image != nil {
		imageURL, err := s.uploader.Upload(ctx, image)
		if err != nil {
			return nil, helper.BadGateway("Failed to upload image", err)
		}
		patch.Image = &imageURL
	}
	patch.Apply(menu)
	menu.Updated_at = s.now()

	if err := s.menus.Update(ctx, menu); err != nil {
		return nil, err
	}
	return menu, nil
}
