package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhisheksh99/Food-Delivery-App-v2/helper"
	"github.com/abhisheksh99/Food-Delivery-App-v2/models"
)

func margheritaAttrs() models.MenuAttrs {
	return models.MenuAttrs{Name: "Margherita", Description: "Tomato and mozzarella", Price: 12}
}

func TestMenuService_AddMenu(t *testing.T) {
	ctx := context.Background()
	restaurant := &models.Restaurant{ID: primitive.NewObjectID(), User: primitive.NewObjectID()}
	restaurants := newFakeRestaurants(restaurant)
	menus := newFakeMenus()
	image := strings.NewReader("png")

	uploader := &mockUploader{}
	uploader.On("Upload", ctx, image).Return("https://cdn/margherita.png", nil).Once()

	menu, err := NewMenuService(restaurants, menus, uploader).AddMenu(ctx, restaurant.User.Hex(), margheritaAttrs(), image)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/margherita.png", menu.Image)
	assert.Equal(t, []primitive.ObjectID{menu.ID}, restaurants.get(restaurant.ID).Menus)
	assert.Equal(t, 1, menus.count())
	uploader.AssertExpectations(t)
}

func TestMenuService_AddMenuFailures(t *testing.T) {
	ctx := context.Background()
	restaurant := &models.Restaurant{ID: primitive.NewObjectID(), User: primitive.NewObjectID()}

	tests := []struct {
		name          string
		ownerID       string
		image         interface{}
		appendErr     error
		prepareMocks  func(uploader *mockUploader)
		expectedError error
	}{
		{
			name:          "no_restaurant",
			ownerID:       primitive.NewObjectID().Hex(),
			image:         "data:image/png;base64,AAAA",
			prepareMocks:  func(*mockUploader) {},
			expectedError: helper.ErrNotFound,
		},
		{
			name:          "missing_image",
			ownerID:       restaurant.User.Hex(),
			prepareMocks:  func(*mockUploader) {},
			expectedError: helper.ErrValidation,
		},
		{
			name:    "upload_failure",
			ownerID: restaurant.User.Hex(),
			image:   "data:image/png;base64,AAAA",
			prepareMocks: func(uploader *mockUploader) {
				uploader.On("Upload", ctx, mock.Anything).Return("", errors.New("quota exceeded")).Once()
			},
			expectedError: helper.ErrBadGateway,
		},
		{
			name:      "attach_failure_removes_item",
			ownerID:   restaurant.User.Hex(),
			image:     "data:image/png;base64,AAAA",
			appendErr: errors.New("restaurant write failed"),
			prepareMocks: func(uploader *mockUploader) {
				uploader.On("Upload", ctx, mock.Anything).Return("https://cdn/x.png", nil).Once()
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			restaurants := newFakeRestaurants(restaurant)
			restaurants.appendErr = testCase.appendErr
			menus := newFakeMenus()
			uploader := &mockUploader{}
			testCase.prepareMocks(uploader)

			menu, err := NewMenuService(restaurants, menus, uploader).AddMenu(ctx, testCase.ownerID, margheritaAttrs(), testCase.image)
			require.Error(t, err)
			if testCase.expectedError != nil {
				assert.ErrorIs(t, err, testCase.expectedError)
			}
			assert.Nil(t, menu)
			assert.Equal(t, 0, menus.count())
			assert.Empty(t, restaurants.get(restaurant.ID).Menus)
			uploader.AssertExpectations(t)
		})
	}
}

func TestMenuService_EditMenu(t *testing.T) {
	ctx := context.Background()
	existing := &models.Menu{ID: primitive.NewObjectID(), Name: "Margherita", Description: "Classic", Price: 12, Image: "https://cdn/old.png"}
	menus := newFakeMenus(existing)
	svc := NewMenuService(newFakeRestaurants(), menus, &mockUploader{})

	price := 13.5
	edited, err := svc.EditMenu(ctx, existing.ID.Hex(), models.MenuPatch{Price: &price}, nil)
	require.NoError(t, err)
	assert.Equal(t, 13.5, edited.Price)
	assert.Equal(t, "Margherita", edited.Name)
	assert.Equal(t, "https://cdn/old.png", edited.Image)

	stored, err := menus.FindByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, *edited, *stored)
}

func TestMenuService_EditMenuWithImage(t *testing.T) {
	ctx := context.Background()
	existing := &models.Menu{ID: primitive.NewObjectID(), Name: "Margherita", Price: 12}
	uploader := &mockUploader{}
	uploader.On("Upload", ctx, "data:image/png;base64,AAAA").Return("https://cdn/new.png", nil).Once()

	edited, err := NewMenuService(newFakeRestaurants(), newFakeMenus(existing), uploader).
		EditMenu(ctx, existing.ID.Hex(), models.MenuPatch{}, "data:image/png;base64,AAAA")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/new.png", edited.Image)
	uploader.AssertExpectations(t)
}

func TestMenuService_EditMenuFailures(t *testing.T) {
	svc := NewMenuService(newFakeRestaurants(), newFakeMenus(), &mockUploader{})

	_, err := svc.EditMenu(context.Background(), primitive.NewObjectID().Hex(), models.MenuPatch{}, nil)
	assert.ErrorIs(t, err, helper.ErrNotFound)

	negative := -1.0
	_, err = svc.EditMenu(context.Background(), primitive.NewObjectID().Hex(), models.MenuPatch{Price: &negative}, nil)
	assert.ErrorIs(t, err, helper.ErrValidation)
}
