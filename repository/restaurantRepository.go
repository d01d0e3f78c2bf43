package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abhisheksh99/Food-Delivery-App-v2/config"
	"github.com/abhisheksh99/Food-Delivery-App-v2/helper"
	"github.com/abhisheksh99/Food-Delivery-App-v2/models"
)

var errRestaurantNotFound = helper.NotFound("Restaurant not found")

type RestaurantRepository struct {
	collection *mongo.Collection
}

func NewRestaurantRepository(db *mongo.Database) *RestaurantRepository {
	return &RestaurantRepository{collection: db.Collection(config.RestaurantCollection)}
}

// Create inserts a restaurant. The unique index on user turns a racing second
// insert for the same owner into a Conflict.
func (r *RestaurantRepository) Create(ctx context.Context, restaurant *models.Restaurant) error {
	if _, err := r.collection.InsertOne(ctx, restaurant); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return helper.Conflict("Restaurant already exists for this user")
		}
		return fmt.Errorf("insert restaurant: %w", err)
	}
	return nil
}

func (r *RestaurantRepository) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) (*models.Restaurant, error) {
	return r.findOne(ctx, bson.M{"user": ownerID})
}

func (r *RestaurantRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Restaurant, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// Update overwrites the owner-editable attributes of the restaurant.
func (r *RestaurantRepository) Update(ctx context.Context, restaurant *models.Restaurant) error {
	update := bson.M{"$set": bson.M{
		"restaurantName": restaurant.RestaurantName,
		"city":           restaurant.City,
		"country":        restaurant.Country,
		"deliveryTime":   restaurant.DeliveryTime,
		"cuisines":       restaurant.Cuisines,
		"imageUrl":       restaurant.ImageURL,
		"updatedAt":      restaurant.Updated_at,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": restaurant.ID}, update)
	if err != nil {
		return fmt.Errorf("update restaurant: %w", err)
	}
	if result.MatchedCount == 0 {
		return errRestaurantNotFound
	}
	return nil
}

// AppendMenu pushes menuID onto the owner's restaurant menu list.
func (r *RestaurantRepository) AppendMenu(ctx context.Context, ownerID, menuID primitive.ObjectID) (*models.Restaurant, error) {
	update := bson.M{
		"$push": bson.M{"menus": menuID},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var restaurant models.Restaurant
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"user": ownerID}, update, opts).Decode(&restaurant)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errRestaurantNotFound
	} else if err != nil {
		return nil, fmt.Errorf("append menu: %w", err)
	}
	return &restaurant, nil
}

// Search returns every restaurant matching the filter; there is no pagination.
func (r *RestaurantRepository) Search(ctx context.Context, filter models.SearchFilter) ([]models.Restaurant, error) {
	cursor, err := r.collection.Find(ctx, BuildSearchFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("search restaurants: %w", err)
	}
	defer cursor.Close(ctx)

	restaurants := []models.Restaurant{}
	if err := cursor.All(ctx, &restaurants); err != nil {
		return nil, fmt.Errorf("decode restaurants: %w", err)
	}
	return restaurants, nil
}

// BuildSearchFilter turns the search predicates into a Mongo filter. Free text
// is matched as a literal case-insensitive substring; the searchText and
// searchQuery predicates are combined with $and so both must hold.
func BuildSearchFilter(f models.SearchFilter) bson.M {
	var clauses []bson.M

	if f.SearchText != "" {
		rx := substring(f.SearchText)
		clauses = append(clauses, bson.M{"$or": bson.A{
			bson.M{"restaurantName": rx},
			bson.M{"city": rx},
			bson.M{"country": rx},
		}})
	}

	if f.SearchQuery != "" {
		rx := substring(f.SearchQuery)
		clauses = append(clauses, bson.M{"$or": bson.A{
			bson.M{"restaurantName": rx},
			bson.M{"cuisines": rx},
		}})
	}

	if len(f.SelectedCuisines) > 0 {
		tags := bson.A{}
		for _, cuisine := range f.SelectedCuisines {
			tags = append(tags, primitive.Regex{Pattern: "^" + regexp.QuoteMeta(cuisine) + "$", Options: "i"})
		}
		clauses = append(clauses, bson.M{"cuisines": bson.M{"$in": tags}})
	}

	switch len(clauses) {
	case 0:
		return bson.M{}
	case 1:
		return clauses[0]
	default:
		and := bson.A{}
		for _, c := range clauses {
			and = append(and, c)
		}
		return bson.M{"$and": and}
	}
}

func substring(text string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}
}

func (r *RestaurantRepository) findOne(ctx context.Context, filter bson.M) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.collection.FindOne(ctx, filter).Decode(&restaurant)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errRestaurantNotFound
	} else if err != nil {
		return nil, fmt.Errorf("find restaurant: %w", err)
	}
	return &restaurant, nil
}
