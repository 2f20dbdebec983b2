package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusAvailable = "available"
	StatusSold      = "sold"
	StatusPending   = "pending"
)

type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

type Location struct {
	Address     string       `bson:"address" json:"address" validate:"required"`
	City        string       `bson:"city" json:"city" validate:"required"`
	State       string       `bson:"state" json:"state" validate:"required"`
	ZipCode     string       `bson:"zipCode" json:"zipCode" validate:"required"`
	Coordinates *Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
}

type Property struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	Price        float64            `bson:"price" json:"price"`
	Location     Location           `bson:"location" json:"location"`
	PropertyType string             `bson:"propertyType" json:"propertyType"`
	Bedrooms     int                `bson:"bedrooms" json:"bedrooms"`
	Bathrooms    float64            `bson:"bathrooms" json:"bathrooms"`
	Area         float64            `bson:"area" json:"area"`
	Amenities    []string           `bson:"amenities" json:"amenities"`
	Images       []string           `bson:"images" json:"images"`
	Status       string             `bson:"status" json:"status"`
	CreatedBy    primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PropertyDetail is a Property with its owner resolved to a public
// projection, the shape list and detail endpoints return.
type PropertyDetail struct {
	Property `bson:",inline"`
	Owner    *PublicUser `json:"owner,omitempty"`
}

type PropertyInput struct {
	Title        string   `json:"title" validate:"required,min=3"`
	Description  string   `json:"description" validate:"required"`
	Price        float64  `json:"price" validate:"required,gte=0"`
	Location     Location `json:"location" validate:"required"`
	PropertyType string   `json:"propertyType" validate:"required,oneof=apartment house condo townhouse land commercial"`
	Bedrooms     int      `json:"bedrooms" validate:"gte=0"`
	Bathrooms    float64  `json:"bathrooms" validate:"gte=0"`
	Area         float64  `json:"area" validate:"gte=0"`
	Amenities    []string `json:"amenities"`
	Images       []string `json:"images"`
	Status       string   `json:"status" validate:"omitempty,oneof=available sold pending"`
}
