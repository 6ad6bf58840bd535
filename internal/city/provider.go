package city

import (
	"context"
	"errors"
)

var (
	// ErrCityNotFound is returned when the weather provider cannot resolve
	// the requested name. This is the only fetch error that escalates out
	// of an aggregation.
	ErrCityNotFound = errors.New("city not found")

	// ErrNoBikeNetwork is returned when no bike-share network matches the
	// city. Aggregation absorbs it into an absent bikes field.
	ErrNoBikeNetwork = errors.New("no bike network for city")

	// ErrSuperseded is returned when a newer request started before this
	// one finished; the stale result must be discarded.
	ErrSuperseded = errors.New("request superseded by a newer one")
)

// WeatherProvider resolves city names and serves current conditions plus
// a short forecast. A name the provider does not know yields
// ErrCityNotFound from both methods.
type WeatherProvider interface {
	// Forecast fetches current conditions and the multi-day forecast for
	// a free-text city query.
	Forecast(ctx context.Context, query string) (*WeatherSnapshot, error)

	// Lookup resolves a free-text query to canonical location metadata
	// without fetching a forecast.
	Lookup(ctx context.Context, query string) (Location, error)
}

// AirQualityProvider serves the latest air quality observation for a city.
type AirQualityProvider interface {
	Feed(ctx context.Context, cityName string) (*AirQualitySnapshot, error)
}

// EventsProvider searches upcoming events in a city. A city with no
// events yields an empty slice, not an error.
type EventsProvider interface {
	Search(ctx context.Context, cityName string) ([]Event, error)
}

// BikeShareProvider locates the bike-share network serving a city and
// returns its stations. No matching network yields ErrNoBikeNetwork.
type BikeShareProvider interface {
	FindNetwork(ctx context.Context, cityName string) (*BikeNetworkSnapshot, error)
}

// MusicCatalog exposes the playlist and artist endpoints used to derive
// a country music profile. All IDs are opaque provider IDs obtained from
// prior calls.
type MusicCatalog interface {
	SearchPlaylists(ctx context.Context, query string, limit int) ([]Playlist, error)
	PlaylistTracks(ctx context.Context, playlistID string, limit int) ([]Track, error)
	ArtistTopTracks(ctx context.Context, artistID string, limit int) ([]Track, error)
}

// ImageProvider searches representative images for a city.
type ImageProvider interface {
	Search(ctx context.Context, query string, perPage int) ([]Image, error)
}

// ResponseCache stores the last successful weather, air quality, and
// bike responses per literal city key. Implementations never expire or
// evict entries; lifetime is bound to the owning session.
type ResponseCache interface {
	Weather(key string) (*WeatherSnapshot, bool)
	PutWeather(key string, snap *WeatherSnapshot)
	AirQuality(key string) (*AirQualitySnapshot, bool)
	PutAirQuality(key string, snap *AirQualitySnapshot)
	Bikes(key string) (*BikeNetworkSnapshot, bool)
	PutBikes(key string, snap *BikeNetworkSnapshot)
}
