package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadsfaoui/cityscope/internal/city"
)

var _ city.ResponseCache = (*SessionCache)(nil)

func TestSessionCacheRoundTrip(t *testing.T) {
	c := New()

	_, ok := c.Weather("Paris")
	assert.False(t, ok)

	snap := &city.WeatherSnapshot{Location: city.Location{Name: "Paris"}}
	c.PutWeather("Paris", snap)

	got, ok := c.Weather("Paris")
	require.True(t, ok)
	assert.Same(t, snap, got)
}

// Keys are literal: differently-cased names are distinct entries.
func TestSessionCacheKeysAreCaseSensitive(t *testing.T) {
	c := New()

	c.PutWeather("Paris", &city.WeatherSnapshot{Location: city.Location{Name: "Paris"}})

	_, ok := c.Weather("paris")
	assert.False(t, ok, "\"paris\" must miss against \"Paris\"")

	c.PutWeather("paris", &city.WeatherSnapshot{Location: city.Location{Name: "paris"}})
	assert.Equal(t, 2, c.Len())
}

// The three data kinds share a store but never collide on a city name.
func TestSessionCacheKindsAreIndependent(t *testing.T) {
	c := New()

	c.PutWeather("Tokyo", &city.WeatherSnapshot{})

	_, ok := c.AirQuality("Tokyo")
	assert.False(t, ok)
	_, ok = c.Bikes("Tokyo")
	assert.False(t, ok)

	c.PutAirQuality("Tokyo", &city.AirQualitySnapshot{AQI: city.KnownReading(42)})
	c.PutBikes("Tokyo", &city.BikeNetworkSnapshot{Name: "docomo"})

	air, ok := c.AirQuality("Tokyo")
	require.True(t, ok)
	assert.Equal(t, city.KnownReading(42), air.AQI)

	bikes, ok := c.Bikes("Tokyo")
	require.True(t, ok)
	assert.Equal(t, "docomo", bikes.Name)
}

func TestSessionCachePutOverwritesWithNewerSuccess(t *testing.T) {
	c := New()

	c.PutBikes("Paris", &city.BikeNetworkSnapshot{Name: "velib"})
	c.PutBikes("Paris", &city.BikeNetworkSnapshot{Name: "velib metropole"})

	got, ok := c.Bikes("Paris")
	require.True(t, ok)
	assert.Equal(t, "velib metropole", got.Name)
	assert.Equal(t, 1, c.Len())
}
