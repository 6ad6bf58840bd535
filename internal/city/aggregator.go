package city

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// imagesPerCity is how many image candidates are requested; the first
// one returned is the cover image.
const imagesPerCity = 5

// Providers bundles the external data sources one aggregation fans out to.
type Providers struct {
	Weather WeatherProvider
	Air     AirQualityProvider
	Events  EventsProvider
	Bikes   BikeShareProvider
	Music   MusicCatalog
	Images  ImageProvider
}

// Aggregator fans out to the configured providers for one city and
// merges whatever settles into an Overview. Every source is guarded
// independently: a failing source leaves its field absent, and only an
// unresolvable city name escalates to the caller.
type Aggregator struct {
	providers Providers
	cache     ResponseCache
	logger    *zap.Logger
}

// NewAggregator creates an Aggregator over the given providers and
// per-session response cache.
func NewAggregator(p Providers, cache ResponseCache, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		providers: p,
		cache:     cache,
		logger:    logger,
	}
}

// Aggregate fetches weather, air quality, events, bikes, and images
// concurrently, runs the sequential music chain alongside them, and
// assembles the merged view once every fetch has settled.
//
// Weather, air quality, and bike results are served from the session
// cache when present and stored there on success; a failed fetch never
// replaces a cached value.
func (a *Aggregator) Aggregate(ctx context.Context, q Query) (*Overview, error) {
	start := time.Now()
	ov := &Overview{
		RunID:  uuid.NewString(),
		Query:  q,
		Events: []Event{},
		Images: []Image{},
	}
	log := a.logger.With(zap.String("run_id", ov.RunID), zap.String("city", q.City))

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		weatherErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		snap, err := a.fetchWeather(ctx, q)
		if err != nil {
			if errors.Is(err, ErrCityNotFound) {
				mu.Lock()
				weatherErr = err
				mu.Unlock()
				return
			}
			log.Warn("weather fetch failed", zap.Error(err))
			return
		}
		mu.Lock()
		ov.Weather = snap
		mu.Unlock()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		snap, err := a.fetchAirQuality(ctx, q)
		if err != nil {
			log.Warn("air quality fetch failed", zap.Error(err))
			return
		}
		mu.Lock()
		ov.AirQuality = snap
		mu.Unlock()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		events, err := a.providers.Events.Search(ctx, q.City)
		if err != nil {
			log.Warn("events fetch failed", zap.Error(err))
			return
		}
		mu.Lock()
		ov.Events = events
		mu.Unlock()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		snap, err := a.fetchBikes(ctx, q)
		if err != nil {
			// No matching network is an ordinary absence, logged at a
			// lower level than a transport failure.
			if errors.Is(err, ErrNoBikeNetwork) {
				log.Debug("no bike network", zap.Error(err))
			} else {
				log.Warn("bike fetch failed", zap.Error(err))
			}
			return
		}
		mu.Lock()
		ov.Bikes = snap
		mu.Unlock()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		images, err := a.providers.Images.Search(ctx, q.City, imagesPerCity)
		if err != nil {
			log.Warn("image fetch failed", zap.Error(err))
			return
		}
		mu.Lock()
		ov.Images = images
		mu.Unlock()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		profile, err := a.musicProfile(ctx, q.City)
		if err != nil {
			log.Warn("music chain failed", zap.Error(err))
			return
		}
		if profile == nil {
			log.Debug("no music profile for city")
			return
		}
		mu.Lock()
		ov.Music = profile
		mu.Unlock()
	}()

	wg.Wait()

	if weatherErr != nil {
		return nil, weatherErr
	}

	log.Info("aggregation settled",
		zap.Bool("weather", ov.Weather != nil),
		zap.Bool("air_quality", ov.AirQuality != nil),
		zap.Int("events", len(ov.Events)),
		zap.Bool("bikes", ov.Bikes != nil),
		zap.Int("images", len(ov.Images)),
		zap.Bool("music", ov.Music != nil),
		zap.Duration("took", time.Since(start)),
	)

	return ov, nil
}

// WarmCache refreshes the cached data kinds (weather, air quality,
// bikes) for one city. Used by the background warmer for seeded cities;
// failures only log, and the put-on-success-only cache keeps the last
// good values in place.
func (a *Aggregator) WarmCache(ctx context.Context, q Query) {
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		snap, err := a.providers.Weather.Forecast(ctx, q.City)
		if err != nil {
			a.logger.Warn("warm weather fetch failed", zap.String("city", q.City), zap.Error(err))
			return
		}
		a.cache.PutWeather(q.Key(), snap)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		snap, err := a.providers.Air.Feed(ctx, q.City)
		if err != nil {
			a.logger.Warn("warm air quality fetch failed", zap.String("city", q.City), zap.Error(err))
			return
		}
		a.cache.PutAirQuality(q.Key(), snap)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		snap, err := a.providers.Bikes.FindNetwork(ctx, q.City)
		if err != nil {
			if !errors.Is(err, ErrNoBikeNetwork) {
				a.logger.Warn("warm bike fetch failed", zap.String("city", q.City), zap.Error(err))
			}
			return
		}
		a.cache.PutBikes(q.Key(), snap)
	}()

	wg.Wait()
}

func (a *Aggregator) fetchWeather(ctx context.Context, q Query) (*WeatherSnapshot, error) {
	if snap, ok := a.cache.Weather(q.Key()); ok {
		return snap, nil
	}
	snap, err := a.providers.Weather.Forecast(ctx, q.City)
	if err != nil {
		return nil, err
	}
	a.cache.PutWeather(q.Key(), snap)
	return snap, nil
}

func (a *Aggregator) fetchAirQuality(ctx context.Context, q Query) (*AirQualitySnapshot, error) {
	if snap, ok := a.cache.AirQuality(q.Key()); ok {
		return snap, nil
	}
	snap, err := a.providers.Air.Feed(ctx, q.City)
	if err != nil {
		return nil, err
	}
	a.cache.PutAirQuality(q.Key(), snap)
	return snap, nil
}

func (a *Aggregator) fetchBikes(ctx context.Context, q Query) (*BikeNetworkSnapshot, error) {
	if snap, ok := a.cache.Bikes(q.Key()); ok {
		return snap, nil
	}
	snap, err := a.providers.Bikes.FindNetwork(ctx, q.City)
	if err != nil {
		return nil, err
	}
	a.cache.PutBikes(q.Key(), snap)
	return snap, nil
}
