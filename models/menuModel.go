package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Menu struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Image       string             `bson:"image" json:"image"`
	Created_at  time.Time          `bson:"createdAt" json:"createdAt"`
	Updated_at  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// MaxMenuPrice caps a unit price so prices stay finite and totals in minor
// units fit in an int64.
const MaxMenuPrice = 100000

// MenuAttrs are the fields of a new menu item.
type MenuAttrs struct {
	Name        string  `validate:"required,min=1,max=100"`
	Description string  `validate:"required,max=500"`
	Price       float64 `validate:"required,gt=0,lte=100000"`
}

// MenuPatch is a partial menu update; nil fields are left untouched.
type MenuPatch struct {
	Name        *string  `validate:"omitempty,min=1,max=100"`
	Description *string  `validate:"omitempty,max=500"`
	Price       *float64 `validate:"omitempty,gt=0,lte=100000"`
	Image       *string
}

// Apply overwrites every field set in the patch.
func (p MenuPatch) Apply(m *Menu) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.Price != nil {
		m.Price = *p.Price
	}
	if p.Image != nil {
		m.Image = *p.Image
	}
}
