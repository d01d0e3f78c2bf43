package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abhisheksh99/Food-Delivery-App-v2/config"
	"github.com/abhisheksh99/Food-Delivery-App-v2/helper"
	"github.com/abhisheksh99/Food-Delivery-App-v2/models"
)

type MenuRepository struct {
	collection *mongo.Collection
}

func NewMenuRepository(db *mongo.Database) *MenuRepository {
	return &MenuRepository{collection: db.Collection(config.MenuCollection)}
}

func (r *MenuRepository) Create(ctx context.Context, menu *models.Menu) error {
	if _, err := r.collection.InsertOne(ctx, menu); err != nil {
		return fmt.Errorf("insert menu: %w", err)
	}
	return nil
}

func (r *MenuRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete menu: %w", err)
	}
	return nil
}

func (r *MenuRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Menu, error) {
	var menu models.Menu
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&menu)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, helper.NotFound("Menu not found!")
	} else if err != nil {
		return nil, fmt.Errorf("find menu: %w", err)
	}
	return &menu, nil
}

// FindByIDs resolves a restaurant's menu references, newest first.
func (r *MenuRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Menu, error) {
	menus := []models.Menu{}
	if len(ids) == 0 {
		return menus, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find menus: %w", err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &menus); err != nil {
		return nil, fmt.Errorf("decode menus: %w", err)
	}
	return menus, nil
}

func (r *MenuRepository) Update(ctx context.Context, menu *models.Menu) error {
	update := bson.M{"$set": bson.M{
		"name":        menu.Name,
		"description": menu.Description,
		"price":       menu.Price,
		"image":       menu.Image,
		"updatedAt":   menu.Updated_at,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": menu.ID}, update)
	if err != nil {
		return fmt.Errorf("update menu: %w", err)
	}
	if result.MatchedCount == 0 {
		return helper.NotFound("Menu not found!")
	}
	return nil
}
