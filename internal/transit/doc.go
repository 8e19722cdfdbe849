// Package transit estimates public-transport travel time between a student's
// home and a tutor's address.
//
// Estimates are taken for a fixed reference departure, NextDeparture, so that
// two runs on the same day rank tutors identically. DirectionsEstimator asks
// the Google Directions API; CachedEstimator memoises any Estimator in an
// in-process LRU or in Redis; Batch fans lookups out with bounded
// parallelism and never fails as a whole.
//
//	est := transit.NewCachedEstimator(directions, transit.NewLRUCache(2048, 24*time.Hour))
//	minutes := transit.Batch(ctx, est, origin, addresses, transit.NextDeparture(time.Now()), 4, log)
package transit
