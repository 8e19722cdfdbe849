package ratelimiter

import "errors"

var (
	ErrInvalidConfig     = errors.New("ratelimiter: invalid configuration")
	ErrInvalidTokenCount = errors.New("ratelimiter: invalid token count")

	// ErrLimitExceeded is handed to the middleware's error handler when a
	// request is denied.
	ErrLimitExceeded = errors.New("ratelimiter: limit exceeded")
)
