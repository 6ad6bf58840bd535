package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/saadsfaoui/cityscope/internal/cache"
	"github.com/saadsfaoui/cityscope/internal/city"
)

func testApp() *fiber.App {
	app := fiber.New()

	seeds := []city.City{
		{Name: "Paris", Country: "France", Lat: 48.8566, Lon: 2.3522},
		{Name: "Tokyo", Country: "Japan", Lat: 35.6762, Lon: 139.6503},
	}

	// Validation paths never reach the providers, so nil providers are
	// fine here.
	agg := city.NewAggregator(city.Providers{}, cache.New(), nil)
	resolver := city.NewResolver(seeds, nil)
	sess := city.NewSession(agg, resolver)
	RegisterRoutes(app, agg, sess, resolver)

	return app
}

func TestOverviewValidation(t *testing.T) {
	app := testApp()

	// Missing city parameter should return 400.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/city/overview", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// A latitude without a longitude should also return 400.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/city/overview?city=Paris&lat=48.85", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestSearchValidation(t *testing.T) {
	app := testApp()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestCompareValidation(t *testing.T) {
	app := testApp()

	// Missing second city.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/compare?first=Paris", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// Comparing a city with itself.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/compare?first=Paris&second=Paris", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestCitiesListsSeeds(t *testing.T) {
	app := testApp()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cities", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("unexpected error reading body: %v", err)
	}

	var payload struct {
		Cities []city.City `json:"cities"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("unexpected error decoding body: %v", err)
	}
	if len(payload.Cities) != 2 {
		t.Fatalf("expected 2 seed cities, got %d", len(payload.Cities))
	}
	if payload.Cities[0].Name != "Paris" {
		t.Errorf("unexpected first seed %q", payload.Cities[0].Name)
	}
}
