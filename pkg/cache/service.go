package cache

import (
	"fmt"
	"time"
)

// CacheService defines the behavior for caching mechanisms
type CacheService interface {
	// Get retrieves a value from the cache
	// Returns value, true if found
	// Returns nil, false if not found
	Get(key string) (interface{}, bool)

	// Set adds a value to the cache with a duration
	Set(key string, value interface{}, duration time.Duration)

	// Delete removes a value from the cache
	Delete(key string)

	// Flush removes all items
	Flush()
}

const (
	ZonePrefix     = "shipping:zone:"
	ZoneListKey    = "shipping:zones"
	MethodTypesKey = "shipping:method-types"
)

func ZoneKey(id int64) string {
	return fmt.Sprintf("%s%d", ZonePrefix, id)
}

// GetAs fetches key and asserts it to T. A value of another type counts as a miss.
func GetAs[T any](c CacheService, key string) (T, bool) {
	var zero T
	v, found := c.Get(key)
	if !found {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}
