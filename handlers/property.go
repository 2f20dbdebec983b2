package handlers

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
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

type PropertyHandler struct {
	properties *mongo.Collection
	users      *mongo.Collection
	cache      *cache.Cache
	cfg        *config.Config
}

func NewPropertyHandler(db *mongo.Database, c *cache.Cache, cfg *config.Config) *PropertyHandler {
	return &PropertyHandler{
		properties: db.Collection(config.PropertiesCollection),
		users:      db.Collection(config.UsersCollection),
		cache:      c,
		cfg:        cfg,
	}
}

// buildPropertyFilter turns recognized query parameters into a mongo filter
// and the normalized parameter bag the cache key is computed from. Only
// recognized parameters enter the bag, so junk parameters cannot multiply
// cache entries.
func buildPropertyFilter(values url.Values) (bson.M, map[string]string) {
	query := bson.M{}
	params := map[string]string{}

	price := bson.M{}
	if v := values.Get("minPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			price["$gte"] = f
			params["minPrice"] = v
		}
	}
	if v := values.Get("maxPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			price["$lte"] = f
			params["maxPrice"] = v
		}
	}
	if len(price) > 0 {
		query["price"] = price
	}

	if v := values.Get("propertyType"); v != "" {
		query["propertyType"] = v
		params["propertyType"] = v
	}
	if v := values.Get("bedrooms"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			query["bedrooms"] = n
			params["bedrooms"] = v
		}
	}
	if v := values.Get("bathrooms"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			query["bathrooms"] = f
			params["bathrooms"] = v
		}
	}

	area := bson.M{}
	if v := values.Get("minArea"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			area["$gte"] = f
			params["minArea"] = v
		}
	}
	if v := values.Get("maxArea"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			area["$lte"] = f
			params["maxArea"] = v
		}
	}
	if len(area) > 0 {
		query["area"] = area
	}

	if v := values.Get("city"); v != "" {
		query["location.city"] = primitive.Regex{Pattern: regexp.QuoteMeta(v), Options: "i"}
		params["city"] = v
	}
	if v := values.Get("state"); v != "" {
		query["location.state"] = primitive.Regex{Pattern: regexp.QuoteMeta(v), Options: "i"}
		params["state"] = v
	}
	if v := values.Get("amenities"); v != "" {
		amenities := strings.Split(v, ",")
		for i := range amenities {
			amenities[i] = strings.TrimSpace(amenities[i])
		}
		query["amenities"] = bson.M{"$all": amenities}
		params["amenities"] = v
	}
	if v := values.Get("status"); v != "" {
		query["status"] = v
		params["status"] = v
	}

	return query, params
}

func parsePagination(values url.Values) (page, limit int) {
	page, limit = 1, 10
	if v := values.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := values.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	return page, limit
}

func (h *PropertyHandler) List(c echo.Context) error {
	values := c.QueryParams()
	query, params := buildPropertyFilter(values)
	page, limit := parsePagination(values)
	params["page"] = strconv.Itoa(page)
	params["limit"] = strconv.Itoa(limit)

	key := cache.QueryKey("properties", params)

	result, err := cache.GetOrCompute(c.Request().Context(), h.cache, key, h.cfg.ListCacheTTL,
		func(ctx context.Context) (models.PropertyList, error) {
			total, err := h.properties.CountDocuments(ctx, query)
			if err != nil {
				return models.PropertyList{}, err
			}

			opts := options.Find().
				SetSort(bson.D{{Key: "createdAt", Value: -1}}).
				SetSkip(int64((page - 1) * limit)).
				SetLimit(int64(limit))
			cursor, err := h.properties.Find(ctx, query, opts)
			if err != nil {
				return models.PropertyList{}, err
			}
			var properties []models.Property
			if err := cursor.All(ctx, &properties); err != nil {
				return models.PropertyList{}, err
			}

			details, err := h.resolveOwners(ctx, properties)
			if err != nil {
				return models.PropertyList{}, err
			}

			pages := int64(0)
			if total > 0 {
				pages = (total + int64(limit) - 1) / int64(limit)
			}
			return models.PropertyList{
				Properties: details,
				Pagination: models.Pagination{Total: total, Page: page, Limit: limit, Pages: pages},
			}, nil
		})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, models.OK(result))
}

func (h *PropertyHandler) Get(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return utils.BadRequest("Invalid property ID")
	}

	property, err := cache.GetOrCompute(c.Request().Context(), h.cache,
		cache.PropertyKey(id.Hex()), h.cfg.ListCacheTTL,
		func(ctx context.Context) (models.PropertyDetail, error) {
			return h.findDetail(ctx, id)
		})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, models.OK(map[string]any{"property": property}))
}

func (h *PropertyHandler) Create(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var input models.PropertyInput
	if err := c.Bind(&input); err != nil {
		return utils.BadRequest("Invalid request body")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}
	ctx := c.Request().Context()

	property := propertyFromInput(&input)
	property.CreatedBy = user.ID
	property.CreatedAt = time.Now()
	property.UpdatedAt = property.CreatedAt

	res, err := h.properties.InsertOne(ctx, property)
	if err != nil {
		return err
	}
	property.ID = res.InsertedID.(primitive.ObjectID)

	// A new property can land in any filtered list, so the whole list
	// namespace goes.
	h.cache.InvalidatePattern(ctx, cache.PropertyListPattern)

	return c.JSON(http.StatusCreated, models.OK(map[string]any{"property": property}))
}

func (h *PropertyHandler) Update(c echo.Context) error {
	user := middleware.CurrentUser(c)
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return utils.BadRequest("Invalid property ID")
	}
	ctx := c.Request().Context()

	var existing models.Property
	if err := h.properties.FindOne(ctx, bson.M{"_id": id}).Decode(&existing); err != nil {
		if err == mongo.ErrNoDocuments {
			return utils.NotFound("Property not found")
		}
		return err
	}
	if existing.CreatedBy != user.ID {
		return utils.Forbidden("Not authorized to update this property")
	}

	var input models.PropertyInput
	if err := c.Bind(&input); err != nil {
		return utils.BadRequest("Invalid request body")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	update := propertyFromInput(&input)
	var updated models.Property
	err = h.properties.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"title":        update.Title,
			"description":  update.Description,
			"price":        update.Price,
			"location":     update.Location,
			"propertyType": update.PropertyType,
			"bedrooms":     update.Bedrooms,
			"bathrooms":    update.Bathrooms,
			"area":         update.Area,
			"amenities":    update.Amenities,
			"images":       update.Images,
			"status":       update.Status,
			"updatedAt":    time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		return err
	}

	h.cache.Invalidate(ctx, cache.PropertyKey(id.Hex()))
	h.cache.InvalidatePattern(ctx, cache.PropertyListPattern)

	return c.JSON(http.StatusOK, models.OK(map[string]any{"property": updated}))
}

func (h *PropertyHandler) Delete(c echo.Context) error {
	user := middleware.CurrentUser(c)
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return utils.BadRequest("Invalid property ID")
	}
	ctx := c.Request().Context()

	var existing models.Property
	if err := h.properties.FindOne(ctx, bson.M{"_id": id}).Decode(&existing); err != nil {
		if err == mongo.ErrNoDocuments {
			return utils.NotFound("Property not found")
		}
		return err
	}
	if existing.CreatedBy != user.ID {
		return utils.Forbidden("Not authorized to delete this property")
	}

	if _, err := h.properties.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return err
	}

	h.cache.Invalidate(ctx, cache.PropertyKey(id.Hex()))
	h.cache.InvalidatePattern(ctx, cache.PropertyListPattern)

	return c.JSON(http.StatusOK, models.OK(nil))
}

func (h *PropertyHandler) findDetail(ctx context.Context, id primitive.ObjectID) (models.PropertyDetail, error) {
	var property models.Property
	err := h.properties.FindOne(ctx, bson.M{"_id": id}).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.PropertyDetail{}, utils.NotFound("Property not found")
		}
		return models.PropertyDetail{}, err
	}
	details, err := h.resolveOwners(ctx, []models.Property{property})
	if err != nil {
		return models.PropertyDetail{}, err
	}
	return details[0], nil
}

// resolveOwners attaches the public owner projection to each property with
// a single users query.
func (h *PropertyHandler) resolveOwners(ctx context.Context, properties []models.Property) ([]models.PropertyDetail, error) {
	owners, err := loadUsers(ctx, h.users, ownerIDs(properties))
	if err != nil {
		return nil, err
	}
	details := make([]models.PropertyDetail, 0, len(properties))
	for _, p := range properties {
		detail := models.PropertyDetail{Property: p}
		if owner, ok := owners[p.CreatedBy]; ok {
			detail.Owner = &owner
		}
		details = append(details, detail)
	}
	return details, nil
}

func ownerIDs(properties []models.Property) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(properties))
	for _, p := range properties {
		ids = append(ids, p.CreatedBy)
	}
	return ids
}

func propertyFromInput(input *models.PropertyInput) models.Property {
	status := input.Status
	if status == "" {
		status = models.StatusAvailable
	}
	amenities := input.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	images := input.Images
	if images == nil {
		images = []string{}
	}
	return models.Property{
		Title:        input.Title,
		Description:  input.Description,
		Price:        input.Price,
		Location:     input.Location,
		PropertyType: input.PropertyType,
		Bedrooms:     input.Bedrooms,
		Bathrooms:    input.Bathrooms,
		Area:         input.Area,
		Amenities:    amenities,
		Images:       images,
		Status:       status,
	}
}
