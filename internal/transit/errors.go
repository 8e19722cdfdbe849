package transit

import "errors"

var (
	ErrEmptyAddress     = errors.New("transit: origin or destination is empty")
	ErrNoRoute          = errors.New("transit: no route found")
	ErrDirections       = errors.New("transit: directions request failed")
	ErrInvalidConfig    = errors.New("transit: invalid configuration")
	ErrCacheUnavailable = errors.New("transit: cache unavailable")
)
