package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/saadsfaoui/cityscope/internal/city"
	"github.com/saadsfaoui/cityscope/internal/common"
)

// maxBikeStations bounds the station list returned per network.
const maxBikeStations = 30

// CityBikesProvider implements city.BikeShareProvider against the
// CityBik.es directory. The directory has no credential; the global
// network list is fetched and filtered client-side.
type CityBikesProvider struct {
	baseURL      string
	fetchTimeout time.Duration
	client       *apiClient
}

func NewCityBikesProvider(client *http.Client, fetchTimeout time.Duration) *CityBikesProvider {
	return &CityBikesProvider{
		baseURL:      "https://api.citybik.es/v2",
		fetchTimeout: fetchTimeout,
		client:       newAPIClient(client, "citybikes"),
	}
}

type cityBikesNetworkRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location struct {
		City string `json:"city"`
	} `json:"location"`
}

func (p *CityBikesProvider) FindNetwork(ctx context.Context, cityName string) (*city.BikeNetworkSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, p.fetchTimeout)
	defer cancel()

	var directory struct {
		Networks []cityBikesNetworkRef `json:"networks"`
	}
	if err := p.client.getJSON(ctx, p.baseURL+"/networks", &directory); err != nil {
		return nil, err
	}

	// Case-insensitive substring match on network city or name; first
	// match in provider order wins.
	var match *cityBikesNetworkRef
	for i := range directory.Networks {
		n := &directory.Networks[i]
		if common.ContainsFold(n.Location.City, cityName) || common.ContainsFold(n.Name, cityName) {
			match = n
			break
		}
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %s", city.ErrNoBikeNetwork, cityName)
	}

	var detail struct {
		Network struct {
			Name     string `json:"name"`
			Stations []struct {
				Name       string  `json:"name"`
				FreeBikes  int     `json:"free_bikes"`
				EmptySlots int     `json:"empty_slots"`
				Latitude   float64 `json:"latitude"`
				Longitude  float64 `json:"longitude"`
			} `json:"stations"`
		} `json:"network"`
	}
	if err := p.client.getJSON(ctx, p.baseURL+"/networks/"+url.PathEscape(match.ID), &detail); err != nil {
		return nil, err
	}

	name := detail.Network.Name
	if name == "" {
		name = match.ID
	}

	snap := &city.BikeNetworkSnapshot{Name: name}
	for i, s := range detail.Network.Stations {
		if i >= maxBikeStations {
			break
		}
		snap.Stations = append(snap.Stations, city.BikeStation{
			Name:       s.Name,
			FreeBikes:  s.FreeBikes,
			EmptySlots: s.EmptySlots,
			Lat:        s.Latitude,
			Lon:        s.Longitude,
		})
	}

	return snap, nil
}
