// Package cache implements the side-cache layer: deterministic key
// construction, a pluggable key-value store, and the cache-aside accessor
// the handlers drive. Redis is never the source of truth; every entry is
// reconstructible from MongoDB.
package cache

import (
	"sort"
	"strings"
)

// PropertyListPattern matches every cached filtered property query. Any
// property write invalidates the whole namespace; the entries are
// short-lived and writes are rare, so correctness wins over hit rate.
const PropertyListPattern = "properties:*"

// QueryKey builds a cache key for a parameterized query. Parameter names
// are sorted before serialization so permutations of the same bag always
// produce the same key.
func QueryKey(prefix string, params map[string]string) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte(':')
	for i, name := range names {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(params[name])
	}
	return b.String()
}

func UserKey(id string) string { return "user:" + id }

func PropertyKey(id string) string { return "property:" + id }

func FavoritesKey(userID string) string { return "favorites:" + userID }

func RecommendationsSentKey(userID string) string {
	return "recommendations:sent:" + userID
}

func RecommendationsReceivedKey(userID string) string {
	return "recommendations:received:" + userID
}
