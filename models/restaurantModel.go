package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Restaurant struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	User           primitive.ObjectID   `bson:"user" json:"user"`
	RestaurantName string               `bson:"restaurantName" json:"restaurantName"`
	City           string               `bson:"city" json:"city"`
	Country        string               `bson:"country" json:"country"`
	DeliveryTime   int                  `bson:"deliveryTime" json:"deliveryTime"`
	Cuisines       []string             `bson:"cuisines" json:"cuisines"`
	ImageURL       string               `bson:"imageUrl" json:"imageUrl"`
	Menus          []primitive.ObjectID `bson:"menus" json:"menus"`
	Created_at     time.Time            `bson:"createdAt" json:"createdAt"`
	Updated_at     time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// RestaurantDetail is a restaurant with its menu references resolved.
type RestaurantDetail struct {
	Restaurant
	Menus []Menu `json:"menus"`
}

// RestaurantAttrs are the owner-editable restaurant attributes.
type RestaurantAttrs struct {
	RestaurantName string   `validate:"required,min=1,max=100"`
	City           string   `validate:"required,max=100"`
	Country        string   `validate:"required,max=100"`
	DeliveryTime   int      `validate:"required,gt=0"`
	Cuisines       []string `validate:"required,min=1,dive,required"`
}

// SearchFilter holds the restaurant search predicates. Every non-empty field
// narrows the result set.
type SearchFilter struct {
	SearchText       string
	SearchQuery      string
	SelectedCuisines []string
}

// MenuByID returns the menu item with the given hex id, if the restaurant offers it.
func (d *RestaurantDetail) MenuByID(id string) (Menu, bool) {
	for _, m := range d.Menus {
		if m.ID.Hex() == id {
			return m, true
		}
	}
	return Menu{}, false
}
