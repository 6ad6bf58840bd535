package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/saadsfaoui/cityscope/internal/city"
)

// WAQIProvider implements city.AirQualityProvider against the World Air
// Quality Index feed endpoint.
type WAQIProvider struct {
	token   string
	baseURL string
	client  *apiClient
}

func NewWAQIProvider(client *http.Client, token string) *WAQIProvider {
	return &WAQIProvider{
		token:   token,
		baseURL: "https://api.waqi.info",
		client:  newAPIClient(client, "waqi"),
	}
}

// waqiMetric is a single iaqi entry; a pointer field distinguishes a
// pollutant the station never reported from a measured zero.
type waqiMetric struct {
	V *float64 `json:"v"`
}

func (m *waqiMetric) reading() city.Reading {
	if m == nil || m.V == nil {
		return city.Reading{}
	}
	return city.KnownReading(*m.V)
}

func (p *WAQIProvider) Feed(ctx context.Context, cityName string) (*city.AirQualitySnapshot, error) {
	if p.token == "" {
		return nil, fmt.Errorf("waqi token is not configured")
	}

	u := fmt.Sprintf("%s/feed/%s/?token=%s", p.baseURL, url.PathEscape(cityName), url.QueryEscape(p.token))

	var payload struct {
		Status string `json:"status"`
		Data   *struct {
			AQI         city.Reading `json:"aqi"`
			DominentPol string       `json:"dominentpol"`
			City        struct {
				Name string `json:"name"`
			} `json:"city"`
			IAQI struct {
				PM25 *waqiMetric `json:"pm25"`
				PM10 *waqiMetric `json:"pm10"`
				NO2  *waqiMetric `json:"no2"`
				CO   *waqiMetric `json:"co"`
				O3   *waqiMetric `json:"o3"`
			} `json:"iaqi"`
			Time struct {
				S string `json:"s"`
			} `json:"time"`
		} `json:"data"`
	}

	if err := p.client.getJSON(ctx, u, &payload); err != nil {
		return nil, err
	}

	if payload.Status != "ok" || payload.Data == nil {
		return nil, fmt.Errorf("air quality data not found for %s", cityName)
	}

	station := payload.Data.City.Name
	if station == "" {
		station = cityName
	}
	observedAt := payload.Data.Time.S
	if observedAt == "" {
		observedAt = "N/A"
	}

	return &city.AirQualitySnapshot{
		AQI:               payload.Data.AQI,
		DominantPollutant: payload.Data.DominentPol,
		Station:           station,
		PM25:              payload.Data.IAQI.PM25.reading(),
		PM10:              payload.Data.IAQI.PM10.reading(),
		NO2:               payload.Data.IAQI.NO2.reading(),
		CO:                payload.Data.IAQI.CO.reading(),
		O3:                payload.Data.IAQI.O3.reading(),
		ObservedAt:        observedAt,
	}, nil
}
