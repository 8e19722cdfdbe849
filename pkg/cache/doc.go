// Package cache provides a generic, thread-safe LRU cache with optional
// time-to-live, used by the desk to memoise transit-time lookups so that
// re-running a matching for the same student does not hit the directions API
// again.
//
//	durations := cache.NewLRUCache[string, int](2048, cache.WithTTL(24*time.Hour))
//	durations.Put(key, 35)
//	if minutes, ok := durations.Get(key); ok {
//		// use minutes
//	}
//
// Expiry is checked lazily on Get; Len may count entries that have expired
// but were not read since.
package cache
