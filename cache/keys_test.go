package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryKeySortsParams(t *testing.T) {
	key := QueryKey("properties", map[string]string{
		"page":     "1",
		"minPrice": "100000",
		"city":     "Austin",
		"limit":    "10",
	})
	assert.Equal(t, "properties:city=Austin&limit=10&minPrice=100000&page=1", key)
}

func TestQueryKeyDeterministic(t *testing.T) {
	a := map[string]string{"minPrice": "1", "maxPrice": "2", "page": "1"}
	b := map[string]string{"page": "1", "maxPrice": "2", "minPrice": "1"}
	assert.Equal(t, QueryKey("properties", a), QueryKey("properties", b))
}

func TestQueryKeyDistinguishesBags(t *testing.T) {
	a := QueryKey("properties", map[string]string{"minPrice": "1"})
	b := QueryKey("properties", map[string]string{"minPrice": "2"})
	c := QueryKey("properties", map[string]string{"maxPrice": "1"})
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, b, c)
}

func TestQueryKeyEmptyBag(t *testing.T) {
	assert.Equal(t, "properties:", QueryKey("properties", nil))
}

func TestEntityKeys(t *testing.T) {
	assert.Equal(t, "user:abc", UserKey("abc"))
	assert.Equal(t, "property:abc", PropertyKey("abc"))
	assert.Equal(t, "favorites:abc", FavoritesKey("abc"))
	assert.Equal(t, "recommendations:sent:abc", RecommendationsSentKey("abc"))
	assert.Equal(t, "recommendations:received:abc", RecommendationsReceivedKey("abc"))
}
