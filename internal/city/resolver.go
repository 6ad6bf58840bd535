package city

import (
	"context"
	"fmt"

	"github.com/saadsfaoui/cityscope/internal/common"
)

// ResolveResult is the outcome of a successful search: the concrete city
// to aggregate, whether it came from the seed list, and the ad-hoc
// marker to draw when it did not.
type ResolveResult struct {
	City   City    `json:"city"`
	Seeded bool    `json:"seeded"`
	Marker *Marker `json:"marker,omitempty"`
}

// Resolver translates free-text queries into concrete cities. It first
// matches against the seed list, then falls back to a live lookup
// against the weather provider.
type Resolver struct {
	seeds   []City
	weather WeatherProvider
}

// NewResolver creates a Resolver over an explicit seed list. The seeds
// are passed in rather than read from ambient state so callers control
// exactly which cities the map starts with.
func NewResolver(seeds []City, weather WeatherProvider) *Resolver {
	return &Resolver{
		seeds:   seeds,
		weather: weather,
	}
}

// Seeds returns the seed city list.
func (r *Resolver) Seeds() []City {
	return r.seeds
}

// Resolve matches query against the seed list by case-insensitive
// substring on name or country. On a miss it asks the weather provider
// to resolve the raw query; an unresolvable query yields ErrCityNotFound
// and no other effect.
func (r *Resolver) Resolve(ctx context.Context, query string) (*ResolveResult, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", ErrCityNotFound)
	}

	for _, seed := range r.seeds {
		if common.ContainsFold(seed.Name, query) || common.ContainsFold(seed.Country, query) {
			return &ResolveResult{City: seed, Seeded: true}, nil
		}
	}

	loc, err := r.weather.Lookup(ctx, query)
	if err != nil {
		return nil, err
	}

	resolved := City{
		Name:    loc.Name,
		Country: loc.Country,
		Lat:     loc.Lat,
		Lon:     loc.Lon,
	}
	return &ResolveResult{
		City: resolved,
		Marker: &Marker{
			Name:        loc.Name,
			Lat:         loc.Lat,
			Lon:         loc.Lon,
			Highlighted: true,
		},
	}, nil
}
