package city

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

const (
	playlistSearchLimit = 5
	playlistSampleSize  = 50
	topArtistCount      = 10
	artistTopTrackCount = 5
	profileTrackCap     = 10
)

// playlistPhrasings are the search queries tried against the music
// catalog, in priority order. The first phrasing returning any playlist
// wins.
func playlistPhrasings(country string) []string {
	return []string{
		fmt.Sprintf("Top %s", country),
		fmt.Sprintf("Top 50 %s", country),
		fmt.Sprintf("%s Top", country),
		fmt.Sprintf("%s Top 50", country),
		fmt.Sprintf("Top Hits %s", country),
	}
}

// musicProfile runs the sequential music chain for a city: resolve the
// country, find a representative country playlist, sample its tracks,
// rank the artists, then annotate each top artist with their own top
// tracks. A nil profile with nil error means no playlist was found.
func (a *Aggregator) musicProfile(ctx context.Context, cityName string) (*MusicProfile, error) {
	loc, err := a.providers.Weather.Lookup(ctx, cityName)
	if err != nil {
		return nil, fmt.Errorf("resolve country: %w", err)
	}

	playlist := a.findCountryPlaylist(ctx, loc.Country)
	if playlist == nil {
		return nil, nil
	}

	tracks, err := a.providers.Music.PlaylistTracks(ctx, playlist.ID, playlistSampleSize)
	if err != nil {
		return nil, fmt.Errorf("playlist tracks: %w", err)
	}

	artists := rankArtists(tracks, topArtistCount)

	// Secondary fan-out: each ranked artist's top tracks, fetched in
	// parallel. A failed fetch leaves that artist's list empty.
	var wg sync.WaitGroup
	for i := range artists {
		wg.Add(1)
		go func(artist *Artist) {
			defer wg.Done()
			top, topErr := a.providers.Music.ArtistTopTracks(ctx, artist.ID, artistTopTrackCount)
			if topErr != nil {
				a.logger.Debug("artist top tracks failed",
					zap.String("artist_id", artist.ID), zap.Error(topErr))
				return
			}
			artist.TopTracks = top
		}(&artists[i])
	}
	wg.Wait()

	capped := tracks
	if len(capped) > profileTrackCap {
		capped = capped[:profileTrackCap]
	}

	return &MusicProfile{
		Country:  loc.Country,
		Playlist: *playlist,
		Tracks:   capped,
		Artists:  artists,
	}, nil
}

// findCountryPlaylist tries each phrasing in order and returns the first
// playlist of the first phrasing that yields any result, or nil when all
// phrasings come up empty.
func (a *Aggregator) findCountryPlaylist(ctx context.Context, country string) *Playlist {
	for _, q := range playlistPhrasings(country) {
		playlists, err := a.providers.Music.SearchPlaylists(ctx, q, playlistSearchLimit)
		if err != nil {
			a.logger.Debug("playlist search failed", zap.String("query", q), zap.Error(err))
			continue
		}
		if len(playlists) > 0 {
			return &playlists[0]
		}
	}
	return nil
}

// rankArtists groups tracks by artist identity and ranks artists by
// descending track count within the sample. The sort is stable, so
// artists with equal counts keep their discovery order.
func rankArtists(tracks []Track, topN int) []Artist {
	byID := make(map[string]*Artist)
	var order []string

	for _, t := range tracks {
		if t.Artist.ID == "" {
			continue
		}
		artist, ok := byID[t.Artist.ID]
		if !ok {
			artist = &Artist{
				ID:      t.Artist.ID,
				Name:    t.Artist.Name,
				Picture: t.Artist.Picture,
			}
			byID[t.Artist.ID] = artist
			order = append(order, t.Artist.ID)
		}
		artist.TrackCount++
	}

	ranked := make([]Artist, 0, len(order))
	for _, id := range order {
		ranked = append(ranked, *byID[id])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TrackCount > ranked[j].TrackCount
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
