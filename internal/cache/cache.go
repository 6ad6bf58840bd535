package cache

import (
	gocache "github.com/patrickmn/go-cache"

	"github.com/saadsfaoui/cityscope/internal/city"
)

// Key prefixes, one namespace per cached data kind.
const (
	kindWeather = "weather:"
	kindAir     = "air:"
	kindBikes   = "bikes:"
)

// SessionCache implements city.ResponseCache for one map session. Keys
// are the literal city strings as typed; entries never expire and are
// only written after a successful fetch, so a failed re-fetch can never
// erase a good value.
type SessionCache struct {
	store *gocache.Cache
}

// New creates an empty session cache.
func New() *SessionCache {
	return &SessionCache{
		store: gocache.New(gocache.NoExpiration, 0),
	}
}

func (c *SessionCache) Weather(key string) (*city.WeatherSnapshot, bool) {
	v, ok := c.store.Get(kindWeather + key)
	if !ok {
		return nil, false
	}
	snap, ok := v.(*city.WeatherSnapshot)
	return snap, ok
}

func (c *SessionCache) PutWeather(key string, snap *city.WeatherSnapshot) {
	c.store.Set(kindWeather+key, snap, gocache.NoExpiration)
}

func (c *SessionCache) AirQuality(key string) (*city.AirQualitySnapshot, bool) {
	v, ok := c.store.Get(kindAir + key)
	if !ok {
		return nil, false
	}
	snap, ok := v.(*city.AirQualitySnapshot)
	return snap, ok
}

func (c *SessionCache) PutAirQuality(key string, snap *city.AirQualitySnapshot) {
	c.store.Set(kindAir+key, snap, gocache.NoExpiration)
}

func (c *SessionCache) Bikes(key string) (*city.BikeNetworkSnapshot, bool) {
	v, ok := c.store.Get(kindBikes + key)
	if !ok {
		return nil, false
	}
	snap, ok := v.(*city.BikeNetworkSnapshot)
	return snap, ok
}

func (c *SessionCache) PutBikes(key string, snap *city.BikeNetworkSnapshot) {
	c.store.Set(kindBikes+key, snap, gocache.NoExpiration)
}

// Len returns the number of cached entries across all kinds.
func (c *SessionCache) Len() int {
	return c.store.ItemCount()
}
