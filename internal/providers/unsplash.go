package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/saadsfaoui/cityscope/internal/city"
)

// UnsplashProvider implements city.ImageProvider against the Unsplash
// search endpoint.
type UnsplashProvider struct {
	accessKey string
	baseURL   string
	client    *apiClient
}

func NewUnsplashProvider(client *http.Client, accessKey string) *UnsplashProvider {
	return &UnsplashProvider{
		accessKey: accessKey,
		baseURL:   "https://api.unsplash.com",
		client:    newAPIClient(client, "unsplash"),
	}
}

func (p *UnsplashProvider) Search(ctx context.Context, query string, perPage int) ([]city.Image, error) {
	if p.accessKey == "" {
		return nil, fmt.Errorf("unsplash access key is not configured")
	}

	values := url.Values{}
	values.Set("query", query)
	values.Set("per_page", fmt.Sprintf("%d", perPage))
	values.Set("client_id", p.accessKey)

	var payload struct {
		Results []struct {
			URLs struct {
				Regular string `json:"regular"`
			} `json:"urls"`
			User struct {
				Name string `json:"name"`
			} `json:"user"`
		} `json:"results"`
	}
	if err := p.client.getJSON(ctx, p.baseURL+"/search/photos?"+values.Encode(), &payload); err != nil {
		return nil, err
	}

	images := make([]city.Image, 0, len(payload.Results))
	for _, r := range payload.Results {
		images = append(images, city.Image{
			URL:    r.URLs.Regular,
			Author: r.User.Name,
		})
	}
	return images, nil
}
