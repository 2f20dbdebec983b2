package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/neha222222/property-listing-system/cache"
	"github.com/neha222222/property-listing-system/config"
	"github.com/neha222222/property-listing-system/middleware"
	"github.com/neha222222/property-listing-system/models"
	"github.com/neha222222/property-listing-system/utils"
)

type RecommendationHandler struct {
	recommendations *mongo.Collection
	users           *mongo.Collection
	properties      *mongo.Collection
	cache           *cache.Cache
	cfg             *config.Config
}

func NewRecommendationHandler(db *mongo.Database, c *cache.Cache, cfg *config.Config) *RecommendationHandler {
	return &RecommendationHandler{
		recommendations: db.Collection(config.RecommendationsCollection),
		users:           db.Collection(config.UsersCollection),
		properties:      db.Collection(config.PropertiesCollection),
		cache:           c,
		cfg:             cfg,
	}
}

func (h *RecommendationHandler) Create(c echo.Context) error {
	sender := middleware.CurrentUser(c)

	var req models.CreateRecommendationRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequest("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	ctx := c.Request().Context()

	var recipient models.User
	err := h.users.FindOne(ctx, bson.M{"email": req.RecipientEmail}).Decode(&recipient)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return utils.NotFound("Recipient user not found")
		}
		return err
	}

	propertyID, err := primitive.ObjectIDFromHex(req.PropertyID)
	if err != nil {
		return utils.BadRequest("Invalid property ID")
	}
	count, err := h.properties.CountDocuments(ctx, bson.M{"_id": propertyID})
	if err != nil {
		return err
	}
	if count == 0 {
		return utils.NotFound("Property not found")
	}

	// Fast-path triple check; the unique (sender, recipient, property)
	// index is the authoritative guard.
	triple := bson.M{"sender": sender.ID, "recipient": recipient.ID, "property": propertyID}
	count, err = h.recommendations.CountDocuments(ctx, triple)
	if err != nil {
		return err
	}
	if count > 0 {
		return utils.BadRequest("Recommendation already sent")
	}

	now := time.Now()
	recommendation := models.Recommendation{
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		PropertyID:  propertyID,
		Message:     req.Message,
		Status:      models.RecommendationPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	res, err := h.recommendations.InsertOne(ctx, recommendation)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.BadRequest("Recommendation already sent")
		}
		return err
	}
	recommendation.ID = res.InsertedID.(primitive.ObjectID)

	h.cache.Invalidate(ctx,
		cache.RecommendationsSentKey(sender.ID.Hex()),
		cache.RecommendationsReceivedKey(recipient.ID.Hex()),
	)

	return c.JSON(http.StatusCreated, models.OK(map[string]any{"recommendation": recommendation}))
}

func (h *RecommendationHandler) ListReceived(c echo.Context) error {
	user := middleware.CurrentUser(c)
	return h.list(c, cache.RecommendationsReceivedKey(user.ID.Hex()), bson.M{"recipient": user.ID})
}

func (h *RecommendationHandler) ListSent(c echo.Context) error {
	user := middleware.CurrentUser(c)
	return h.list(c, cache.RecommendationsSentKey(user.ID.Hex()), bson.M{"sender": user.ID})
}

func (h *RecommendationHandler) list(c echo.Context, key string, filter bson.M) error {
	recommendations, err := cache.GetOrCompute(c.Request().Context(), h.cache, key, h.cfg.ListCacheTTL,
		func(ctx context.Context) ([]models.RecommendationDetail, error) {
			opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
			cursor, err := h.recommendations.Find(ctx, filter, opts)
			if err != nil {
				return nil, err
			}
			var recs []models.Recommendation
			if err := cursor.All(ctx, &recs); err != nil {
				return nil, err
			}
			return h.resolve(ctx, recs)
		})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, models.OK(map[string]any{"recommendations": recommendations}))
}

func (h *RecommendationHandler) UpdateStatus(c echo.Context) error {
	user := middleware.CurrentUser(c)
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return utils.NotFound("Recommendation not found")
	}

	var req models.UpdateRecommendationStatusRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequest("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	ctx := c.Request().Context()

	// Only the recipient may act on a recommendation.
	var recommendation models.Recommendation
	err = h.recommendations.FindOne(ctx, bson.M{"_id": id, "recipient": user.ID}).Decode(&recommendation)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return utils.NotFound("Recommendation not found")
		}
		return err
	}

	if err := recommendation.CanTransitionTo(req.Status); err != nil {
		return utils.BadRequest(err.Error())
	}

	// The update is conditional on the document still being pending, so of
	// two concurrent transitions exactly one wins.
	var updated models.Recommendation
	err = h.recommendations.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": models.RecommendationPending},
		bson.M{"$set": bson.M{"status": req.Status, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return utils.BadRequest("Recommendation already processed")
		}
		return err
	}

	h.cache.Invalidate(ctx,
		cache.RecommendationsSentKey(updated.SenderID.Hex()),
		cache.RecommendationsReceivedKey(user.ID.Hex()),
	)

	return c.JSON(http.StatusOK, models.OK(map[string]any{"recommendation": updated}))
}

func (h *RecommendationHandler) resolve(ctx context.Context, recs []models.Recommendation) ([]models.RecommendationDetail, error) {
	userIDs := make([]primitive.ObjectID, 0, len(recs)*2)
	propertyIDs := make([]primitive.ObjectID, 0, len(recs))
	for _, r := range recs {
		userIDs = append(userIDs, r.SenderID, r.RecipientID)
		propertyIDs = append(propertyIDs, r.PropertyID)
	}

	users, err := loadUsers(ctx, h.users, userIDs)
	if err != nil {
		return nil, err
	}
	properties, err := loadProperties(ctx, h.properties, propertyIDs)
	if err != nil {
		return nil, err
	}

	details := make([]models.RecommendationDetail, 0, len(recs))
	for _, r := range recs {
		detail := models.RecommendationDetail{
			ID:        r.ID,
			Message:   r.Message,
			Status:    r.Status,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		}
		if u, ok := users[r.SenderID]; ok {
			detail.Sender = &u
		}
		if u, ok := users[r.RecipientID]; ok {
			detail.Recipient = &u
		}
		if p, ok := properties[r.PropertyID]; ok {
			detail.Property = &p
		}
		details = append(details, detail)
	}
	return details, nil
}
