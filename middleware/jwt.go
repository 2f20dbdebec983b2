package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/neha222222/property-listing-system/utils"
)

const userContextKey = "auth_user"

// AuthUser is the identity the auth middleware attaches to the request
// context. Handlers read it through CurrentUser instead of poking at raw
// context values.
type AuthUser struct {
	ID    primitive.ObjectID
	Email string
}

func JWT(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return utils.Unauthorized("Authorization header is required")
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return utils.Unauthorized("Invalid authorization header format")
			}

			claims, err := utils.ValidateJWT(tokenParts[1], secret)
			if err != nil {
				return utils.Unauthorized("Invalid token")
			}

			WithUser(c, AuthUser{ID: claims.UserID, Email: claims.Email})
			return next(c)
		}
	}
}

// WithUser attaches an authenticated identity to the context, as the JWT
// middleware does after verifying a token.
func WithUser(c echo.Context, user AuthUser) {
	c.Set(userContextKey, user)
}

// CurrentUser returns the authenticated identity. It must only be used on
// routes behind the JWT middleware.
func CurrentUser(c echo.Context) AuthUser {
	user, _ := c.Get(userContextKey).(AuthUser)
	return user
}
