package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/neha222222/property-listing-system/cache"
	"github.com/neha222222/property-listing-system/config"
	"github.com/neha222222/property-listing-system/middleware"
	"github.com/neha222222/property-listing-system/models"
	"github.com/neha222222/property-listing-system/utils"
)

type AuthHandler struct {
	users *mongo.Collection
	cache *cache.Cache
	cfg   *config.Config
}

func NewAuthHandler(db *mongo.Database, c *cache.Cache, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		users: db.Collection(config.UsersCollection),
		cache: c,
		cfg:   cfg,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequest("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	ctx := c.Request().Context()

	count, err := h.users.CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		return err
	}
	if count > 0 {
		return utils.BadRequest("Email already registered")
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return err
	}

	now := time.Now()
	user := models.User{
		Email:     req.Email,
		Password:  hashed,
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	res, err := h.users.InsertOne(ctx, user)
	if err != nil {
		// Unique index on email catches a concurrent register for the
		// same address.
		if mongo.IsDuplicateKeyError(err) {
			return utils.BadRequest("Email already registered")
		}
		return err
	}
	user.ID = res.InsertedID.(primitive.ObjectID)

	token, err := utils.GenerateJWT(user.ID, user.Email, h.cfg.JWTSecret, h.cfg.JWTExpiry)
	if err != nil {
		return err
	}

	public := user.Public()
	h.cache.Set(ctx, cache.UserKey(user.ID.Hex()), public, h.cfg.UserCacheTTL)

	return c.JSON(http.StatusCreated, models.OK(models.AuthResponse{User: public, Token: token}))
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequest("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	ctx := c.Request().Context()

	// Unknown email and wrong password answer identically so the response
	// does not reveal which one failed.
	var user models.User
	err := h.users.FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return utils.Unauthorized("Invalid credentials")
		}
		return err
	}
	if utils.CheckPassword(user.Password, req.Password) != nil {
		return utils.Unauthorized("Invalid credentials")
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, h.cfg.JWTSecret, h.cfg.JWTExpiry)
	if err != nil {
		return err
	}

	public := user.Public()
	h.cache.Set(ctx, cache.UserKey(user.ID.Hex()), public, h.cfg.UserCacheTTL)

	return c.JSON(http.StatusOK, models.OK(models.AuthResponse{User: public, Token: token}))
}

func (h *AuthHandler) Me(c echo.Context) error {
	auth := middleware.CurrentUser(c)

	user, err := cache.GetOrCompute(c.Request().Context(), h.cache,
		cache.UserKey(auth.ID.Hex()), h.cfg.UserCacheTTL,
		func(ctx context.Context) (models.PublicUser, error) {
			var u models.User
			err := h.users.FindOne(ctx, bson.M{"_id": auth.ID}).Decode(&u)
			if err != nil {
				if err == mongo.ErrNoDocuments {
					return models.PublicUser{}, utils.NotFound("User not found")
				}
				return models.PublicUser{}, err
			}
			return u.Public(), nil
		})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, models.OK(map[string]any{"user": user}))
}
