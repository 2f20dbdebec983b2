package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Favorite struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user" json:"userId"`
	PropertyID primitive.ObjectID `bson:"property" json:"propertyId"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// FavoriteDetail carries the resolved property so list responses do not
// force clients into a second round trip.
type FavoriteDetail struct {
	ID        primitive.ObjectID `json:"id"`
	Property  *Property          `json:"property,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}
