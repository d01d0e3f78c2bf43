package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "outfordelivery"
	StatusDelivered      OrderStatus = "delivered"
)

var statusRank = map[OrderStatus]int{
	StatusPending:        0,
	StatusConfirmed:      1,
	StatusPreparing:      2,
	StatusOutForDelivery: 3,
	StatusDelivered:      4,
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanFulfil reports whether a restaurant may move an order from s to next.
// Fulfilment only starts once payment is confirmed and never moves backwards;
// pending -> confirmed is reserved for the payment webhook.
func (s OrderStatus) CanFulfil(next OrderStatus) bool {
	from, ok := statusRank[s]
	if !ok || from < statusRank[StatusConfirmed] {
		return false
	}
	to, ok := statusRank[next]
	return ok && to > from
}

type CartItem struct {
	MenuID   string  `bson:"menuId" json:"menuId" validate:"required"`
	Name     string  `bson:"name" json:"name"`
	Image    string  `bson:"image" json:"image"`
	Price    float64 `bson:"price" json:"price"`
	Quantity int64   `bson:"quantity" json:"quantity" validate:"gte=1,lte=1000"`
}

type DeliveryDetails struct {
	Name    string `bson:"name" json:"name" validate:"required"`
	Email   string `bson:"email" json:"email" validate:"required,email"`
	Address string `bson:"address" json:"address" validate:"required"`
	City    string `bson:"city" json:"city" validate:"required"`
	Country string `bson:"country" json:"country" validate:"required"`
	Contact string `bson:"contact" json:"contact" validate:"required"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Restaurant      primitive.ObjectID `bson:"restaurant" json:"restaurant"`
	User            primitive.ObjectID `bson:"user" json:"user"`
	DeliveryDetails DeliveryDetails    `bson:"deliveryDetails" json:"deliveryDetails"`
	CartItems       []CartItem         `bson:"cartItems" json:"cartItems"`
	TotalAmount     int64              `bson:"totalAmount" json:"totalAmount"`
	Status          OrderStatus        `bson:"status" json:"status"`
	Version         int64              `bson:"version" json:"-"`
	Created_at      time.Time          `bson:"createdAt" json:"createdAt"`
	Updated_at      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OrderDetail is an order with its restaurant and user expanded.
type OrderDetail struct {
	Order
	Restaurant *Restaurant `json:"restaurant"`
	User       *User       `json:"user"`
}

// ToMinorUnits converts a decimal price to integer cents.
func ToMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// ComputeTotal sums unit price times quantity over the snapshot in minor units.
// Each unit price is rounded before multiplying so the total equals what the
// payment processor charges for the same line items.
func ComputeTotal(items []CartItem) int64 {
	var total int64
	for _, item := range items {
		total += ToMinorUnits(item.Price) * item.Quantity
	}
	return total
}
