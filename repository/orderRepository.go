package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abhisheksh99/Food-Delivery-App-v2/config"
	"github.com/abhisheksh99/Food-Delivery-App-v2/helper"
	"github.com/abhisheksh99/Food-Delivery-App-v2/models"
)

type OrderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{collection: db.Collection(config.OrderCollection)}
}

func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	if _, err := r.collection.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, helper.NotFound("Order not found")
	} else if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &order, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.OrderDetail, error) {
	return r.listExpanded(ctx, bson.D{{Key: "user", Value: userID}})
}

func (r *OrderRepository) ListByRestaurant(ctx context.Context, restaurantID primitive.ObjectID) ([]models.OrderDetail, error) {
	return r.listExpanded(ctx, bson.D{{Key: "restaurant", Value: restaurantID}})
}

// Confirm moves a pending order to confirmed. The status guard makes repeated
// deliveries no-ops: confirmed reports false when the order was not pending.
// A non-nil amountTotal replaces the locally computed total.
func (r *OrderRepository) Confirm(ctx context.Context, id primitive.ObjectID, amountTotal *int64, now time.Time) (*models.Order, bool, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	err := r.collection.FindOneAndUpdate(ctx, confirmFilter(id), confirmUpdate(amountTotal, now), opts).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("confirm order: %w", err)
	}
	return &order, true, nil
}

// confirmFilter only matches an order still awaiting payment, so a repeated
// confirmation finds nothing.
func confirmFilter(id primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "status": models.StatusPending}
}

func confirmUpdate(amountTotal *int64, now time.Time) bson.M {
	set := bson.M{"status": models.StatusConfirmed, "updatedAt": now}
	if amountTotal != nil {
		set["totalAmount"] = *amountTotal
	}
	return bson.M{"$set": set, "$inc": bson.M{"version": 1}}
}

// UpdateStatus sets a new status if the order still has the status and
// version the caller read.
func (r *OrderRepository) UpdateStatus(ctx context.Context, order *models.Order, next models.OrderStatus, now time.Time) (*models.Order, error) {
	filter := bson.M{"_id": order.ID, "status": order.Status, "version": order.Version}
	update := bson.M{
		"$set": bson.M{"status": next, "updatedAt": now},
		"$inc": bson.M{"version": 1},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Order
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, helper.Conflict("Order was modified by another request, reload and retry")
	} else if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return &updated, nil
}

type orderLookup struct {
	models.Order  `bson:",inline"`
	RestaurantDoc []models.Restaurant `bson:"restaurantDoc"`
	UserDoc       []models.User       `bson:"userDoc"`
}

func (r *OrderRepository) listExpanded(ctx context.Context, match bson.D) ([]models.OrderDetail, error) {
	matchStage := bson.D{{Key: "$match", Value: match}}
	sortStage := bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}}
	restaurantStage := bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: config.RestaurantCollection},
		{Key: "localField", Value: "restaurant"},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: "restaurantDoc"},
	}}}
	userStage := bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: config.UserCollection},
		{Key: "localField", Value: "user"},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: "userDoc"},
	}}}
	projectStage := bson.D{{Key: "$project", Value: bson.D{
		{Key: "userDoc.password", Value: 0},
		{Key: "userDoc.resetPasswordToken", Value: 0},
		{Key: "userDoc.verificationToken", Value: 0},
	}}}

	cursor, err := r.collection.Aggregate(ctx, mongo.Pipeline{matchStage, sortStage, restaurantStage, userStage, projectStage})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []orderLookup
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	orders := make([]models.OrderDetail, 0, len(rows))
	for _, row := range rows {
		detail := models.OrderDetail{Order: row.Order}
		if len(row.RestaurantDoc) > 0 {
			detail.Restaurant = &row.RestaurantDoc[0]
		}
		if len(row.UserDoc) > 0 {
			detail.User = &row.UserDoc[0]
		}
		orders = append(orders, detail)
	}
	return orders, nil
}
