package city

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trackBy(artistID, artistName, trackID string) Track {
	return Track{
		ID:     trackID,
		Title:  "Track " + trackID,
		Artist: TrackArtist{ID: artistID, Name: artistName},
	}
}

func TestPlaylistPhrasingPriorityOrder(t *testing.T) {
	expected := []string{
		"Top France",
		"Top 50 France",
		"France Top",
		"France Top 50",
		"Top Hits France",
	}
	assert.Equal(t, expected, playlistPhrasings("France"))
}

// The first phrasing yielding a non-empty result is selected and no
// further phrasings are attempted.
func TestFindCountryPlaylistStopsAtFirstHit(t *testing.T) {
	for _, firstHit := range []int{0, 1, 2, 3, 4} {
		provs, _, _, _, _, _, music := testProviders()
		music.emptyFirstN = firstHit
		agg := NewAggregator(provs, newMemCache(), nil)

		playlist := agg.findCountryPlaylist(context.Background(), "Japan")
		require.NotNil(t, playlist, "phrasing index %d", firstHit)
		assert.Len(t, music.queries(), firstHit+1, "call count must be index of first success + 1")
	}
}

func TestFindCountryPlaylistAllPhrasingsEmpty(t *testing.T) {
	provs, _, _, _, _, _, music := testProviders()
	music.emptyFirstN = 5
	agg := NewAggregator(provs, newMemCache(), nil)

	playlist := agg.findCountryPlaylist(context.Background(), "Japan")
	assert.Nil(t, playlist)
	assert.Len(t, music.queries(), 5)
}

// Search errors on one phrasing fall through to the next.
func TestFindCountryPlaylistSkipsFailedPhrasings(t *testing.T) {
	provs, _, _, _, _, _, music := testProviders()
	music.searchErr = errors.New("rate limited")
	agg := NewAggregator(provs, newMemCache(), nil)

	playlist := agg.findCountryPlaylist(context.Background(), "Japan")
	assert.Nil(t, playlist)
	assert.Len(t, music.queries(), 5)
}

func TestMusicProfileAbsentWhenNoPlaylist(t *testing.T) {
	provs, _, _, _, _, _, music := testProviders()
	music.emptyFirstN = 5
	agg := NewAggregator(provs, newMemCache(), nil)

	profile, err := agg.musicProfile(context.Background(), "Tokyo")
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestMusicProfileCapsTracksAndAnnotatesArtists(t *testing.T) {
	provs, _, _, _, _, _, music := testProviders()

	var tracks []Track
	for i := 0; i < 15; i++ {
		tracks = append(tracks, trackBy("ar1", "Headliner", fmt.Sprintf("t%d", i)))
	}
	music.playlistTracks = tracks
	music.topTracks = map[string][]Track{
		"ar1": {trackBy("ar1", "Headliner", "hit1"), trackBy("ar1", "Headliner", "hit2")},
	}

	agg := NewAggregator(provs, newMemCache(), nil)

	profile, err := agg.musicProfile(context.Background(), "Tokyo")
	require.NoError(t, err)
	require.NotNil(t, profile)

	assert.Equal(t, "Japan", profile.Country)
	assert.Len(t, profile.Tracks, 10)
	require.Len(t, profile.Artists, 1)
	assert.Equal(t, 15, profile.Artists[0].TrackCount)
	assert.Len(t, profile.Artists[0].TopTracks, 2)
}

func TestRankArtistsByDescendingCount(t *testing.T) {
	tracks := []Track{
		trackBy("a", "A", "1"),
		trackBy("b", "B", "2"),
		trackBy("b", "B", "3"),
		trackBy("c", "C", "4"),
		trackBy("b", "B", "5"),
		trackBy("c", "C", "6"),
	}

	ranked := rankArtists(tracks, 10)
	require.Len(t, ranked, 3)
	assert.Equal(t, "b", ranked[0].ID)
	assert.Equal(t, 3, ranked[0].TrackCount)
	assert.Equal(t, "c", ranked[1].ID)
	assert.Equal(t, "a", ranked[2].ID)
}

// Equal counts keep discovery order: the artist appearing earlier in
// playlist order ranks first.
func TestRankArtistsStableTieBreak(t *testing.T) {
	tracks := []Track{
		trackBy("x", "X", "1"),
		trackBy("y", "Y", "2"),
		trackBy("x", "X", "3"),
		trackBy("y", "Y", "4"),
	}

	ranked := rankArtists(tracks, 10)
	require.Len(t, ranked, 2)
	assert.Equal(t, "x", ranked[0].ID)
	assert.Equal(t, "y", ranked[1].ID)
}

func TestRankArtistsCapsAtTopN(t *testing.T) {
	var tracks []Track
	for i := 0; i < 15; i++ {
		id := fmt.Sprintf("ar%d", i)
		tracks = append(tracks, trackBy(id, "Artist "+id, fmt.Sprintf("t%d", i)))
	}

	ranked := rankArtists(tracks, 10)
	assert.Len(t, ranked, 10)
}

func TestRankArtistsSkipsTracksWithoutArtistID(t *testing.T) {
	tracks := []Track{
		trackBy("", "Unknown", "1"),
		trackBy("a", "A", "2"),
	}

	ranked := rankArtists(tracks, 10)
	require.Len(t, ranked, 1)
	assert.Equal(t, "a", ranked[0].ID)
}
