package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestJWTRoundTrip(t *testing.T) {
	userID := primitive.NewObjectID()
	token, err := GenerateJWT(userID, "a@b.com", "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(primitive.NewObjectID(), "a@b.com", "secret", time.Hour)
	require.NoError(t, err)

	_, err = ValidateJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestJWTExpired(t *testing.T) {
	token, err := GenerateJWT(primitive.NewObjectID(), "a@b.com", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateJWT(token, "secret")
	assert.Error(t, err)
}

func TestJWTMissingSecret(t *testing.T) {
	_, err := GenerateJWT(primitive.NewObjectID(), "a@b.com", "", time.Hour)
	assert.Error(t, err)

	_, err = ValidateJWT("whatever", "")
	assert.Error(t, err)
}
