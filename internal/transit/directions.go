package transit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"googlemaps.github.io/maps"
)

// Estimator returns the transit duration in whole minutes between two
// addresses for a given departure.
type Estimator interface {
	Minutes(ctx context.Context, origin, destination string, departure time.Time) (int, error)
}

// EstimatorFunc adapts a function to Estimator.
type EstimatorFunc func(ctx context.Context, origin, destination string, departure time.Time) (int, error)

func (f EstimatorFunc) Minutes(ctx context.Context, origin, destination string, departure time.Time) (int, error) {
	return f(ctx, origin, destination, departure)
}

// Config configures the directions lookups.
type Config struct {
	GoogleAPIKey string        `env:"GOOGLE_API_KEY"`
	Timezone     string        `env:"TRANSIT_TIMEZONE" envDefault:"Europe/Paris"`
	Parallelism  int           `env:"TRANSIT_PARALLELISM" envDefault:"4"`
	Cache        string        `env:"TRANSIT_CACHE" envDefault:"memory"` // memory, redis or none
	CacheSize    int           `env:"TRANSIT_CACHE_SIZE" envDefault:"2048"`
	CacheTTL     time.Duration `env:"TRANSIT_CACHE_TTL" envDefault:"24h"`
	Language     string        `env:"TRANSIT_LANGUAGE" envDefault:"fr"`
}

// Enabled reports whether an API key is configured.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.GoogleAPIKey) != ""
}

// Location resolves Timezone, falling back to time.Local.
func (c Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

type directionsClient interface {
	Directions(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error)
}

// DirectionsEstimator asks the Google Directions API for transit routes.
type DirectionsEstimator struct {
	client   directionsClient
	language string
}

// DirectionsOption configures a DirectionsEstimator.
type DirectionsOption func(*directionsOptions)

type directionsOptions struct {
	clientOpts []maps.ClientOption
	language   string
}

// WithBaseURL points the client at another Directions endpoint.
func WithBaseURL(url string) DirectionsOption {
	return func(o *directionsOptions) {
		o.clientOpts = append(o.clientOpts, maps.WithBaseURL(url))
	}
}

// WithLanguage sets the response language.
func WithLanguage(lang string) DirectionsOption {
	return func(o *directionsOptions) { o.language = lang }
}

func NewDirectionsEstimator(apiKey string, opts ...DirectionsOption) (*DirectionsEstimator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: api key is required", ErrInvalidConfig)
	}
	o := directionsOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, o.clientOpts...)...)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	return &DirectionsEstimator{client: client, language: o.language}, nil
}

// Minutes returns the first route's first leg duration, truncated to minutes.
func (e *DirectionsEstimator) Minutes(ctx context.Context, origin, destination string, departure time.Time) (int, error) {
	origin, destination = strings.TrimSpace(origin), strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return 0, ErrEmptyAddress
	}

	routes, _, err := e.client.Directions(ctx, &maps.DirectionsRequest{
		Origin:        origin,
		Destination:   destination,
		Mode:          maps.TravelModeTransit,
		DepartureTime: strconv.FormatInt(departure.Unix(), 10),
		Language:      e.language,
	})
	if err != nil {
		if strings.Contains(err.Error(), "ZERO_RESULTS") || strings.Contains(err.Error(), "NOT_FOUND") {
			return 0, errors.Join(ErrNoRoute, err)
		}
		return 0, errors.Join(ErrDirections, err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return 0, ErrNoRoute
	}
	return int(routes[0].Legs[0].Duration / time.Minute), nil
}
