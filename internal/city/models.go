package city

// City is a place the map knows about, with precomputed coordinates.
type City struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Query identifies the city a caller wants aggregated. The name is taken
// as typed by the user; coordinates are set when the caller already knows
// them (seed list or a prior search).
type Query struct {
	City string   `json:"city"`
	Lat  *float64 `json:"lat,omitempty"`
	Lon  *float64 `json:"lon,omitempty"`
}

// Key returns the cache key for this query: the literal city name, no
// normalization. "Paris" and "paris" are distinct entries.
func (q Query) Key() string {
	return q.City
}

// Location is the canonical place metadata returned by the weather provider.
type Location struct {
	Name      string  `json:"name"`
	Region    string  `json:"region,omitempty"`
	Country   string  `json:"country"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Timezone  string  `json:"timezone,omitempty"`
	Localtime string  `json:"localtime,omitempty"`
}

// Condition is a textual weather condition plus its provider icon.
type Condition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
}

// CurrentConditions holds the current observation for a city.
type CurrentConditions struct {
	TempC      float64   `json:"tempC"`
	FeelsLikeC float64   `json:"feelsLikeC"`
	Humidity   int       `json:"humidity"`
	WindKph    float64   `json:"windKph"`
	WindDir    string    `json:"windDir"`
	VisKm      float64   `json:"visKm"`
	Condition  Condition `json:"condition"`
}

// ForecastDay is one day of the short forecast.
type ForecastDay struct {
	Date         string    `json:"date"`
	MaxTempC     float64   `json:"maxTempC"`
	MinTempC     float64   `json:"minTempC"`
	ChanceOfRain int       `json:"chanceOfRain"`
	MaxWindKph   float64   `json:"maxWindKph"`
	Condition    Condition `json:"condition"`
}

// WeatherSnapshot is the normalized weather view for one city, immutable
// once fetched.
type WeatherSnapshot struct {
	Location Location          `json:"location"`
	Current  CurrentConditions `json:"current"`
	Forecast []ForecastDay     `json:"forecast"`
}

// AirQualitySnapshot holds the air quality index and pollutant
// concentrations. Values the upstream station does not report stay
// unknown and serialize as "n/a"; they are never coerced to zero.
type AirQualitySnapshot struct {
	AQI               Reading `json:"aqi"`
	DominantPollutant string  `json:"dominantPollutant"`
	Station           string  `json:"station"`
	PM25              Reading `json:"pm25"`
	PM10              Reading `json:"pm10"`
	NO2               Reading `json:"no2"`
	CO                Reading `json:"co"`
	O3                Reading `json:"o3"`
	ObservedAt        string  `json:"observedAt"`
}

// Event is a single upcoming event in a city.
type Event struct {
	Name     string `json:"name"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Venue    string `json:"venue"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Price    string `json:"price"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Image    string `json:"image"`
	URL      string `json:"url"`
}

// BikeStation is one station of a bike-share network.
type BikeStation struct {
	Name       string  `json:"name"`
	FreeBikes  int     `json:"freeBikes"`
	EmptySlots int     `json:"emptySlots"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
}

// BikeNetworkSnapshot is the matched network and its first stations.
type BikeNetworkSnapshot struct {
	Name     string        `json:"name"`
	Stations []BikeStation `json:"stations"`
}

// Image is one candidate city image with attribution. The first element
// of an image list is the cover image by convention.
type Image struct {
	URL    string `json:"url"`
	Author string `json:"author"`
}

// TrackArtist is the artist metadata carried on a track.
type TrackArtist struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Track is a single track from the music catalog.
type Track struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Artist      TrackArtist `json:"artist"`
	AlbumCover  string      `json:"albumCover"`
	DurationSec int         `json:"durationSec"`
	Link        string      `json:"link"`
}

// Playlist is a catalog playlist reference.
type Playlist struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Picture string `json:"picture"`
	Link    string `json:"link"`
}

// Artist is a ranked artist within a playlist sample, annotated with
// their own top tracks.
type Artist struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Picture    string  `json:"picture"`
	TrackCount int     `json:"trackCount"`
	TopTracks  []Track `json:"topTracks"`
}

// MusicProfile is the derived music view for a city's country.
type MusicProfile struct {
	Country  string   `json:"country"`
	Playlist Playlist `json:"playlist"`
	Tracks   []Track  `json:"tracks"`
	Artists  []Artist `json:"artists"`
}

// Overview is the merged view model for one city. Every field except the
// query is optional: a nil pointer or empty slice means that source
// failed or had nothing, and the overview is still renderable.
type Overview struct {
	RunID      string               `json:"runId"`
	Query      Query                `json:"query"`
	Weather    *WeatherSnapshot     `json:"weather,omitempty"`
	AirQuality *AirQualitySnapshot  `json:"airQuality,omitempty"`
	Events     []Event              `json:"events"`
	Bikes      *BikeNetworkSnapshot `json:"bikes,omitempty"`
	Images     []Image              `json:"images"`
	Music      *MusicProfile        `json:"music,omitempty"`
}

// Marker is a map marker for a search result outside the seed list.
type Marker struct {
	Name        string  `json:"name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Highlighted bool    `json:"highlighted"`
}
