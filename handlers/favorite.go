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

type FavoriteHandler struct {
	favorites  *mongo.Collection
	properties *mongo.Collection
	cache      *cache.Cache
	cfg        *config.Config
}

func NewFavoriteHandler(db *mongo.Database, c *cache.Cache, cfg *config.Config) *FavoriteHandler {
	return &FavoriteHandler{
		favorites:  db.Collection(config.FavoritesCollection),
		properties: db.Collection(config.PropertiesCollection),
		cache:      c,
		cfg:        cfg,
	}
}

func (h *FavoriteHandler) List(c echo.Context) error {
	user := middleware.CurrentUser(c)

	favorites, err := cache.GetOrCompute(c.Request().Context(), h.cache,
		cache.FavoritesKey(user.ID.Hex()), h.cfg.ListCacheTTL,
		func(ctx context.Context) ([]models.FavoriteDetail, error) {
			opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
			cursor, err := h.favorites.Find(ctx, bson.M{"user": user.ID}, opts)
			if err != nil {
				return nil, err
			}
			var favorites []models.Favorite
			if err := cursor.All(ctx, &favorites); err != nil {
				return nil, err
			}

			ids := make([]primitive.ObjectID, 0, len(favorites))
			for _, f := range favorites {
				ids = append(ids, f.PropertyID)
			}
			properties, err := loadProperties(ctx, h.properties, ids)
			if err != nil {
				return nil, err
			}

			details := make([]models.FavoriteDetail, 0, len(favorites))
			for _, f := range favorites {
				detail := models.FavoriteDetail{ID: f.ID, CreatedAt: f.CreatedAt}
				if p, ok := properties[f.PropertyID]; ok {
					detail.Property = &p
				}
				details = append(details, detail)
			}
			return details, nil
		})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, models.OK(map[string]any{"favorites": favorites}))
}

func (h *FavoriteHandler) Add(c echo.Context) error {
	user := middleware.CurrentUser(c)
	propertyID, err := primitive.ObjectIDFromHex(c.Param("propertyId"))
	if err != nil {
		return utils.BadRequest("Invalid property ID")
	}
	ctx := c.Request().Context()

	count, err := h.properties.CountDocuments(ctx, bson.M{"_id": propertyID})
	if err != nil {
		return err
	}
	if count == 0 {
		return utils.NotFound("Property not found")
	}

	// Fast-path duplicate check; the unique (user, property) index is the
	// authoritative guard under concurrent requests.
	pair := bson.M{"user": user.ID, "property": propertyID}
	count, err = h.favorites.CountDocuments(ctx, pair)
	if err != nil {
		return err
	}
	if count > 0 {
		return utils.BadRequest("Property already in favorites")
	}

	favorite := models.Favorite{
		UserID:     user.ID,
		PropertyID: propertyID,
		CreatedAt:  time.Now(),
	}
	res, err := h.favorites.InsertOne(ctx, favorite)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.BadRequest("Property already in favorites")
		}
		return err
	}
	favorite.ID = res.InsertedID.(primitive.ObjectID)

	h.cache.Invalidate(ctx, cache.FavoritesKey(user.ID.Hex()))

	return c.JSON(http.StatusCreated, models.OK(map[string]any{"favorite": favorite}))
}

func (h *FavoriteHandler) Remove(c echo.Context) error {
	user := middleware.CurrentUser(c)
	propertyID, err := primitive.ObjectIDFromHex(c.Param("propertyId"))
	if err != nil {
		return utils.BadRequest("Invalid property ID")
	}
	ctx := c.Request().Context()

	res, err := h.favorites.DeleteOne(ctx, bson.M{"user": user.ID, "property": propertyID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return utils.NotFound("Favorite not found")
	}

	h.cache.Invalidate(ctx, cache.FavoritesKey(user.ID.Hex()))

	return c.JSON(http.StatusOK, models.OK(nil))
}
