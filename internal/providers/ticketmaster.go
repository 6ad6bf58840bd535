package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/saadsfaoui/cityscope/internal/city"
)

// TicketmasterProvider implements city.EventsProvider against the
// Ticketmaster Discovery API.
type TicketmasterProvider struct {
	apiKey       string
	baseURL      string
	pageSize     int
	fetchTimeout time.Duration
	client       *apiClient
}

func NewTicketmasterProvider(client *http.Client, apiKey string, fetchTimeout time.Duration) *TicketmasterProvider {
	return &TicketmasterProvider{
		apiKey:       apiKey,
		baseURL:      "https://app.ticketmaster.com/discovery/v2/events.json",
		pageSize:     10,
		fetchTimeout: fetchTimeout,
		client:       newAPIClient(client, "ticketmaster"),
	}
}

type ticketmasterEvent struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Dates struct {
		Start struct {
			LocalDate string `json:"localDate"`
			LocalTime string `json:"localTime"`
		} `json:"start"`
		Status struct {
			Code string `json:"code"`
		} `json:"status"`
	} `json:"dates"`
	PriceRanges []struct {
		Min      float64 `json:"min"`
		Max      float64 `json:"max"`
		Currency string  `json:"currency"`
	} `json:"priceRanges"`
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
	Embedded struct {
		Venues []struct {
			Name string `json:"name"`
			City struct {
				Name string `json:"name"`
			} `json:"city"`
			Country struct {
				Name string `json:"name"`
			} `json:"country"`
		} `json:"venues"`
	} `json:"_embedded"`
}

func (p *TicketmasterProvider) Search(ctx context.Context, cityName string) ([]city.Event, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("ticketmaster api key is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, p.fetchTimeout)
	defer cancel()

	values := url.Values{}
	values.Set("apikey", p.apiKey)
	values.Set("city", cityName)
	values.Set("size", fmt.Sprintf("%d", p.pageSize))

	var payload struct {
		Embedded *struct {
			Events []ticketmasterEvent `json:"events"`
		} `json:"_embedded"`
	}
	if err := p.client.getJSON(ctx, p.baseURL+"?"+values.Encode(), &payload); err != nil {
		return nil, err
	}

	// A missing embedded collection means the city has no events.
	if payload.Embedded == nil {
		return []city.Event{}, nil
	}

	events := make([]city.Event, 0, len(payload.Embedded.Events))
	for _, ev := range payload.Embedded.Events {
		events = append(events, mapTicketmasterEvent(ev))
	}
	return events, nil
}

func mapTicketmasterEvent(ev ticketmasterEvent) city.Event {
	out := city.Event{
		Name:   ev.Name,
		Date:   "Unknown",
		Venue:  "Unknown",
		Price:  "N/A",
		Status: "N/A",
		URL:    ev.URL,
	}

	if ev.Dates.Start.LocalDate != "" {
		out.Date = ev.Dates.Start.LocalDate
	}
	out.Time = ev.Dates.Start.LocalTime
	if ev.Dates.Status.Code != "" {
		out.Status = ev.Dates.Status.Code
	}

	if len(ev.Embedded.Venues) > 0 {
		venue := ev.Embedded.Venues[0]
		if venue.Name != "" {
			out.Venue = venue.Name
		}
		out.City = venue.City.Name
		out.Country = venue.Country.Name
	}

	if len(ev.PriceRanges) > 0 {
		pr := ev.PriceRanges[0]
		out.Price = fmt.Sprintf("%g - %g", pr.Min, pr.Max)
		out.Currency = pr.Currency
	}

	if len(ev.Images) > 0 {
		out.Image = ev.Images[0].URL
	}

	return out
}
