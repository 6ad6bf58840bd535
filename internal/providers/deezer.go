package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/saadsfaoui/cityscope/internal/city"
)

// DeezerProvider implements city.MusicCatalog against the public Deezer
// API. No credential is required.
type DeezerProvider struct {
	baseURL string
	client  *apiClient
}

func NewDeezerProvider(client *http.Client) *DeezerProvider {
	return &DeezerProvider{
		baseURL: "https://api.deezer.com",
		client:  newAPIClient(client, "deezer"),
	}
}

// deezerID converts Deezer's numeric IDs to the opaque string IDs the
// rest of the chain uses.
type deezerID int64

func (id deezerID) String() string {
	return fmt.Sprintf("%d", int64(id))
}

type deezerTrack struct {
	ID     deezerID `json:"id"`
	Title  string   `json:"title"`
	Link   string   `json:"link"`
	Artist struct {
		ID            deezerID `json:"id"`
		Name          string   `json:"name"`
		PictureMedium string   `json:"picture_medium"`
	} `json:"artist"`
	Album struct {
		CoverMedium string `json:"cover_medium"`
	} `json:"album"`
	Duration int `json:"duration"`
}

func (t deezerTrack) toTrack() city.Track {
	return city.Track{
		ID:    t.ID.String(),
		Title: t.Title,
		Artist: city.TrackArtist{
			ID:      t.Artist.ID.String(),
			Name:    t.Artist.Name,
			Picture: t.Artist.PictureMedium,
		},
		AlbumCover:  t.Album.CoverMedium,
		DurationSec: t.Duration,
		Link:        t.Link,
	}
}

func (p *DeezerProvider) SearchPlaylists(ctx context.Context, query string, limit int) ([]city.Playlist, error) {
	values := url.Values{}
	values.Set("q", query)
	values.Set("limit", fmt.Sprintf("%d", limit))

	var payload struct {
		Data []struct {
			ID            deezerID `json:"id"`
			Title         string   `json:"title"`
			PictureMedium string   `json:"picture_medium"`
			Link          string   `json:"link"`
		} `json:"data"`
	}
	if err := p.client.getJSON(ctx, p.baseURL+"/search/playlist?"+values.Encode(), &payload); err != nil {
		return nil, err
	}

	playlists := make([]city.Playlist, 0, len(payload.Data))
	for _, pl := range payload.Data {
		playlists = append(playlists, city.Playlist{
			ID:      pl.ID.String(),
			Title:   pl.Title,
			Picture: pl.PictureMedium,
			Link:    pl.Link,
		})
	}
	return playlists, nil
}

func (p *DeezerProvider) PlaylistTracks(ctx context.Context, playlistID string, limit int) ([]city.Track, error) {
	u := fmt.Sprintf("%s/playlist/%s/tracks?limit=%d", p.baseURL, url.PathEscape(playlistID), limit)

	var payload struct {
		Data []deezerTrack `json:"data"`
	}
	if err := p.client.getJSON(ctx, u, &payload); err != nil {
		return nil, err
	}

	tracks := make([]city.Track, 0, len(payload.Data))
	for _, t := range payload.Data {
		tracks = append(tracks, t.toTrack())
	}
	return tracks, nil
}

func (p *DeezerProvider) ArtistTopTracks(ctx context.Context, artistID string, limit int) ([]city.Track, error) {
	u := fmt.Sprintf("%s/artist/%s/top?limit=%d", p.baseURL, url.PathEscape(artistID), limit)

	var payload struct {
		Data []deezerTrack `json:"data"`
	}
	if err := p.client.getJSON(ctx, u, &payload); err != nil {
		return nil, err
	}

	tracks := make([]city.Track, 0, len(payload.Data))
	for _, t := range payload.Data {
		tracks = append(tracks, t.toTrack())
	}
	return tracks, nil
}
