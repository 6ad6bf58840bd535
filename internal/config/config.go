package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/saadsfaoui/cityscope/internal/city"
)

// AppConfig holds everything the service reads from the environment.
type AppConfig struct {
	// Provider credentials. Deezer and CityBik.es need none.
	WeatherAPIKey   string
	WAQIToken       string
	TicketmasterKey string
	UnsplashKey     string

	// FetchTimeout bounds the weather, events, and bike-share calls.
	// Air quality, images, and music calls are deliberately unbounded.
	FetchTimeout time.Duration

	// WarmInterval controls how often the seeded cities are refreshed.
	WarmInterval time.Duration

	// Seeds are the cities the map starts with.
	Seeds []city.City

	Port string
}

// defaultSeeds are the four cities the map UI ships with.
var defaultSeeds = []city.City{
	{Name: "New York", Country: "United States", Lat: 40.7128, Lon: -74.006},
	{Name: "Paris", Country: "France", Lat: 48.8566, Lon: 2.3522},
	{Name: "London", Country: "United Kingdom", Lat: 51.5074, Lon: -0.1278},
	{Name: "Tokyo", Country: "Japan", Lat: 35.6762, Lon: 139.6503},
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_KEY")
	cfg.WAQIToken = os.Getenv("WAQI_TOKEN")
	cfg.TicketmasterKey = os.Getenv("TICKETMASTER_API_KEY")
	cfg.UnsplashKey = os.Getenv("UNSPLASH_ACCESS_KEY")

	fetchTimeoutStr := getenvDefault("FETCH_TIMEOUT", "12s")
	fetchTimeout, err := time.ParseDuration(fetchTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_TIMEOUT: %w", err)
	}
	cfg.FetchTimeout = fetchTimeout

	warmIntervalStr := getenvDefault("WARM_INTERVAL", "15m")
	warmInterval, err := time.ParseDuration(warmIntervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid WARM_INTERVAL: %w", err)
	}
	cfg.WarmInterval = warmInterval

	cfg.Port = getenvDefault("PORT", "8080")

	seeds, err := loadSeeds()
	if err != nil {
		return nil, err
	}
	cfg.Seeds = seeds

	return cfg, nil
}

// loadSeeds parses SEED_CITIES ("name|country|lat|lon;..."), falling
// back to the built-in list when unset.
func loadSeeds() ([]city.City, error) {
	raw := os.Getenv("SEED_CITIES")
	if raw == "" {
		return defaultSeeds, nil
	}

	var seeds []city.City
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, "|")
		if len(parts) != 4 {
			return nil, fmt.Errorf("invalid SEED_CITIES entry %q: want name|country|lat|lon", entry)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude in SEED_CITIES entry %q: %w", entry, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude in SEED_CITIES entry %q: %w", entry, err)
		}
		seeds = append(seeds, city.City{
			Name:    strings.TrimSpace(parts[0]),
			Country: strings.TrimSpace(parts[1]),
			Lat:     lat,
			Lon:     lon,
		})
	}
	if len(seeds) == 0 {
		return nil, fmt.Errorf("SEED_CITIES is set but contains no entries")
	}
	return seeds, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
