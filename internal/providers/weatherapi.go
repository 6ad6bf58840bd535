package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/saadsfaoui/cityscope/internal/city"
	"github.com/saadsfaoui/cityscope/internal/common"
)

// weatherAPINotFound is the provider error code for an unresolvable name.
const weatherAPINotFound = 1006

// WeatherAPIProvider implements city.WeatherProvider against
// WeatherAPI.com. Forecast calls are bounded by a fixed timeout; Lookup
// calls are not, matching the behaviour the map UI relies on.
type WeatherAPIProvider struct {
	apiKey       string
	baseURL      string
	fetchTimeout time.Duration
	client       *apiClient
}

func NewWeatherAPIProvider(client *http.Client, apiKey string, fetchTimeout time.Duration) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		apiKey:       apiKey,
		baseURL:      "https://api.weatherapi.com/v1",
		fetchTimeout: fetchTimeout,
		client:       newAPIClient(client, "weatherapi"),
	}
}

type weatherAPICondition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
}

type weatherAPILocation struct {
	Name      string  `json:"name"`
	Region    string  `json:"region"`
	Country   string  `json:"country"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	TzID      string  `json:"tz_id"`
	Localtime string  `json:"localtime"`
}

type weatherAPIForecastResponse struct {
	Location weatherAPILocation `json:"location"`
	Current  struct {
		TempC      float64             `json:"temp_c"`
		FeelsLikeC float64             `json:"feelslike_c"`
		Humidity   int                 `json:"humidity"`
		WindKph    float64             `json:"wind_kph"`
		WindDir    string              `json:"wind_dir"`
		VisKm      float64             `json:"vis_km"`
		Condition  weatherAPICondition `json:"condition"`
	} `json:"current"`
	Forecast struct {
		ForecastDay []struct {
			Date string `json:"date"`
			Day  struct {
				MaxTempC          float64             `json:"maxtemp_c"`
				MinTempC          float64             `json:"mintemp_c"`
				DailyChanceOfRain int                 `json:"daily_chance_of_rain"`
				MaxWindKph        float64             `json:"maxwind_kph"`
				Condition         weatherAPICondition `json:"condition"`
			} `json:"day"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

func (p *WeatherAPIProvider) Forecast(ctx context.Context, query string) (*city.WeatherSnapshot, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("weatherapi key is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, p.fetchTimeout)
	defer cancel()

	values := url.Values{}
	values.Set("key", p.apiKey)
	values.Set("q", query)
	values.Set("days", "3")
	values.Set("aqi", "no")
	values.Set("alerts", "no")

	var payload weatherAPIForecastResponse
	if err := p.client.getJSON(ctx, p.baseURL+"/forecast.json?"+values.Encode(), &payload); err != nil {
		return nil, p.mapError(err)
	}

	snap := &city.WeatherSnapshot{
		Location: mapWeatherAPILocation(payload.Location),
		Current: city.CurrentConditions{
			TempC:      payload.Current.TempC,
			FeelsLikeC: payload.Current.FeelsLikeC,
			Humidity:   payload.Current.Humidity,
			WindKph:    payload.Current.WindKph,
			WindDir:    payload.Current.WindDir,
			VisKm:      payload.Current.VisKm,
			Condition:  city.Condition(payload.Current.Condition),
		},
	}

	for _, d := range payload.Forecast.ForecastDay {
		snap.Forecast = append(snap.Forecast, city.ForecastDay{
			Date:         d.Date,
			MaxTempC:     d.Day.MaxTempC,
			MinTempC:     d.Day.MinTempC,
			ChanceOfRain: d.Day.DailyChanceOfRain,
			MaxWindKph:   d.Day.MaxWindKph,
			Condition:    city.Condition(d.Day.Condition),
		})
	}

	return snap, nil
}

func (p *WeatherAPIProvider) Lookup(ctx context.Context, query string) (city.Location, error) {
	if p.apiKey == "" {
		return city.Location{}, fmt.Errorf("weatherapi key is not configured")
	}

	values := url.Values{}
	values.Set("key", p.apiKey)
	values.Set("q", query)

	var payload struct {
		Location weatherAPILocation `json:"location"`
	}
	if err := p.client.getJSON(ctx, p.baseURL+"/current.json?"+values.Encode(), &payload); err != nil {
		return city.Location{}, p.mapError(err)
	}

	return mapWeatherAPILocation(payload.Location), nil
}

// mapError inspects provider error payloads and maps "no matching
// location" responses to city.ErrCityNotFound.
func (p *WeatherAPIProvider) mapError(err error) error {
	var se *statusError
	if !errors.As(err, &se) {
		return err
	}

	var body struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if jsonErr := json.Unmarshal(se.body, &body); jsonErr != nil || body.Error.Message == "" {
		return err
	}

	if body.Error.Code == weatherAPINotFound || common.HasAnyFold(body.Error.Message, "no matching location", "not found") {
		return fmt.Errorf("%w: %s", city.ErrCityNotFound, body.Error.Message)
	}
	return fmt.Errorf("weatherapi error: %s", body.Error.Message)
}

func mapWeatherAPILocation(l weatherAPILocation) city.Location {
	return city.Location{
		Name:      l.Name,
		Region:    l.Region,
		Country:   l.Country,
		Lat:       l.Lat,
		Lon:       l.Lon,
		Timezone:  l.TzID,
		Localtime: l.Localtime,
	}
}
