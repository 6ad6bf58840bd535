package city

import (
	"context"
	"sync"
)

type fakeWeather struct {
	mu            sync.Mutex
	forecastCalls int
	lookupCalls   int
	snap          *WeatherSnapshot
	loc           Location
	forecastErr   error
	lookupErr     error
}

func (f *fakeWeather) Forecast(ctx context.Context, query string) (*WeatherSnapshot, error) {
	f.mu.Lock()
	f.forecastCalls++
	f.mu.Unlock()
	if f.forecastErr != nil {
		return nil, f.forecastErr
	}
	return f.snap, nil
}

func (f *fakeWeather) Lookup(ctx context.Context, query string) (Location, error) {
	f.mu.Lock()
	f.lookupCalls++
	f.mu.Unlock()
	if f.lookupErr != nil {
		return Location{}, f.lookupErr
	}
	return f.loc, nil
}

func (f *fakeWeather) calls() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.forecastCalls, f.lookupCalls
}

type fakeAir struct {
	mu    sync.Mutex
	count int
	snap  *AirQualitySnapshot
	err   error
}

func (f *fakeAir) Feed(ctx context.Context, cityName string) (*AirQualitySnapshot, error) {
	f.mu.Lock()
	f.count++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.snap, nil
}

func (f *fakeAir) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count
}

type fakeEvents struct {
	mu     sync.Mutex
	count  int
	events []Event
	err    error
}

func (f *fakeEvents) Search(ctx context.Context, cityName string) ([]Event, error) {
	f.mu.Lock()
	f.count++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

type fakeBikes struct {
	mu    sync.Mutex
	count int
	snap  *BikeNetworkSnapshot
	err   error
}

func (f *fakeBikes) FindNetwork(ctx context.Context, cityName string) (*BikeNetworkSnapshot, error) {
	f.mu.Lock()
	f.count++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.snap, nil
}

func (f *fakeBikes) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count
}

type fakeImages struct {
	mu     sync.Mutex
	count  int
	images []Image
	err    error
}

func (f *fakeImages) Search(ctx context.Context, query string, perPage int) ([]Image, error) {
	f.mu.Lock()
	f.count++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.images, nil
}

// fakeMusic serves playlists starting at a configurable phrasing index
// and records every search query in order.
type fakeMusic struct {
	mu             sync.Mutex
	searchQueries  []string
	emptyFirstN    int // searches before this index return no playlists
	searchErr      error
	playlists      []Playlist
	playlistTracks []Track
	tracksErr      error
	topTracks      map[string][]Track
	topCalls       int
}

func (f *fakeMusic) SearchPlaylists(ctx context.Context, query string, limit int) ([]Playlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := len(f.searchQueries)
	f.searchQueries = append(f.searchQueries, query)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if idx < f.emptyFirstN {
		return nil, nil
	}
	return f.playlists, nil
}

func (f *fakeMusic) PlaylistTracks(ctx context.Context, playlistID string, limit int) ([]Track, error) {
	if f.tracksErr != nil {
		return nil, f.tracksErr
	}
	tracks := f.playlistTracks
	if len(tracks) > limit {
		tracks = tracks[:limit]
	}
	return tracks, nil
}

func (f *fakeMusic) ArtistTopTracks(ctx context.Context, artistID string, limit int) ([]Track, error) {
	f.mu.Lock()
	f.topCalls++
	f.mu.Unlock()
	if f.topTracks == nil {
		return nil, nil
	}
	return f.topTracks[artistID], nil
}

func (f *fakeMusic) queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.searchQueries))
	copy(out, f.searchQueries)
	return out
}

// memCache is a plain map implementation of ResponseCache for tests.
type memCache struct {
	mu      sync.Mutex
	weather map[string]*WeatherSnapshot
	air     map[string]*AirQualitySnapshot
	bikes   map[string]*BikeNetworkSnapshot
}

func newMemCache() *memCache {
	return &memCache{
		weather: make(map[string]*WeatherSnapshot),
		air:     make(map[string]*AirQualitySnapshot),
		bikes:   make(map[string]*BikeNetworkSnapshot),
	}
}

func (m *memCache) Weather(key string) (*WeatherSnapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.weather[key]
	return s, ok
}

func (m *memCache) PutWeather(key string, snap *WeatherSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.weather[key] = snap
}

func (m *memCache) AirQuality(key string) (*AirQualitySnapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.air[key]
	return s, ok
}

func (m *memCache) PutAirQuality(key string, snap *AirQualitySnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.air[key] = snap
}

func (m *memCache) Bikes(key string) (*BikeNetworkSnapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.bikes[key]
	return s, ok
}

func (m *memCache) PutBikes(key string, snap *BikeNetworkSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bikes[key] = snap
}
