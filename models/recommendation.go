package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RecommendationPending  = "pending"
	RecommendationAccepted = "accepted"
	RecommendationRejected = "rejected"
)

type Recommendation struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SenderID    primitive.ObjectID `bson:"sender" json:"senderId"`
	RecipientID primitive.ObjectID `bson:"recipient" json:"recipientId"`
	PropertyID  primitive.ObjectID `bson:"property" json:"propertyId"`
	Message     string             `bson:"message,omitempty" json:"message,omitempty"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CanTransitionTo enforces the one-way status machine: a pending
// recommendation may become accepted or rejected, and nothing moves after
// that.
func (r *Recommendation) CanTransitionTo(status string) error {
	if status != RecommendationAccepted && status != RecommendationRejected {
		return fmt.Errorf("invalid status %q", status)
	}
	if r.Status != RecommendationPending {
		return fmt.Errorf("recommendation already %s", r.Status)
	}
	return nil
}

type RecommendationDetail struct {
	ID        primitive.ObjectID `json:"id"`
	Sender    *PublicUser        `json:"sender,omitempty"`
	Recipient *PublicUser        `json:"recipient,omitempty"`
	Property  *Property          `json:"property,omitempty"`
	Message   string             `json:"message,omitempty"`
	Status    string             `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

type CreateRecommendationRequest struct {
	RecipientEmail string `json:"recipientEmail" validate:"required,email"`
	PropertyID     string `json:"propertyId" validate:"required"`
	Message        string `json:"message" validate:"max=500"`
}

type UpdateRecommendationStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
