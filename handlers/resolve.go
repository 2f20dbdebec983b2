package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/neha222222/property-listing-system/models"
)

// loadUsers fetches the public projection for a set of user ids in one
// query, for resolving owners, senders and recipients in list payloads.
func loadUsers(ctx context.Context, users *mongo.Collection, ids []primitive.ObjectID) (map[primitive.ObjectID]models.PublicUser, error) {
	result := make(map[primitive.ObjectID]models.PublicUser, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	cursor, err := users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var docs []models.User
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	for _, u := range docs {
		result[u.ID] = u.Public()
	}
	return result, nil
}

func loadProperties(ctx context.Context, properties *mongo.Collection, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Property, error) {
	result := make(map[primitive.ObjectID]models.Property, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	cursor, err := properties.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var docs []models.Property
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	for _, p := range docs {
		result[p.ID] = p
	}
	return result, nil
}
