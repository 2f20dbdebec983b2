package handlers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/neha222222/property-listing-system/cache"
)

func TestBuildPropertyFilterPriceRange(t *testing.T) {
	query, params := buildPropertyFilter(url.Values{
		"minPrice": {"150000"},
		"maxPrice": {"500000"},
	})

	price, ok := query["price"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, 150000.0, price["$gte"])
	assert.Equal(t, 500000.0, price["$lte"])

	// Of {100000, 300000, 600000} only 300000 falls inside the bounds.
	inRange := func(p float64) bool {
		return p >= price["$gte"].(float64) && p <= price["$lte"].(float64)
	}
	assert.False(t, inRange(100000))
	assert.True(t, inRange(300000))
	assert.False(t, inRange(600000))

	assert.Equal(t, map[string]string{"minPrice": "150000", "maxPrice": "500000"}, params)
}

func TestBuildPropertyFilterLocationIsCaseInsensitive(t *testing.T) {
	query, _ := buildPropertyFilter(url.Values{
		"city":  {"austin"},
		"state": {"tx"},
	})

	city, ok := query["location.city"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "austin", city.Pattern)
	assert.Equal(t, "i", city.Options)

	state, ok := query["location.state"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "tx", state.Pattern)
	assert.Equal(t, "i", state.Options)
}

func TestBuildPropertyFilterAmenitiesSupersetMatch(t *testing.T) {
	query, _ := buildPropertyFilter(url.Values{
		"amenities": {"pool, gym,parking"},
	})

	amenities, ok := query["amenities"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, []string{"pool", "gym", "parking"}, amenities["$all"])
}

func TestBuildPropertyFilterExactAndRangeFields(t *testing.T) {
	query, params := buildPropertyFilter(url.Values{
		"propertyType": {"house"},
		"bedrooms":     {"3"},
		"bathrooms":    {"2.5"},
		"minArea":      {"1000"},
		"maxArea":      {"2000"},
		"status":       {"available"},
	})

	assert.Equal(t, "house", query["propertyType"])
	assert.Equal(t, 3, query["bedrooms"])
	assert.Equal(t, 2.5, query["bathrooms"])
	assert.Equal(t, "available", query["status"])

	area, ok := query["area"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, 1000.0, area["$gte"])
	assert.Equal(t, 2000.0, area["$lte"])

	assert.Len(t, params, 6)
}

func TestBuildPropertyFilterIgnoresJunk(t *testing.T) {
	query, params := buildPropertyFilter(url.Values{
		"bedrooms":   {"not-a-number"},
		"sortOrder":  {"desc"},
		"utm_source": {"newsletter"},
	})

	assert.Empty(t, query)
	assert.Empty(t, params, "unrecognized params must not widen the cache keyspace")
}

func TestListCacheKeyStableAcrossParamOrder(t *testing.T) {
	first, firstParams := buildPropertyFilter(url.Values{
		"minPrice": {"100"},
		"city":     {"Austin"},
	})
	_, secondParams := buildPropertyFilter(url.Values{
		"city":     {"Austin"},
		"minPrice": {"100"},
	})

	require.NotEmpty(t, first)
	assert.Equal(t,
		cache.QueryKey("properties", firstParams),
		cache.QueryKey("properties", secondParams),
	)
}

func TestParsePaginationDefaults(t *testing.T) {
	page, limit := parsePagination(url.Values{})
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	page, limit = parsePagination(url.Values{"page": {"0"}, "limit": {"-5"}})
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	page, limit = parsePagination(url.Values{"page": {"3"}, "limit": {"25"}})
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, limit)
}
