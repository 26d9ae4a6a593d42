// /internal/music/resolver/spotify.go
package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/zmb3/spotify"
	"golang.org/x/oauth2/clientcredentials"
)

// SpotifyRef is a dereferenced Spotify URL: the immediate items plus, for
// albums and playlists, the collection description. Items are metadata
// only; they must be cross-resolved before playback.
type SpotifyRef struct {
	Items    []SpotifyItem
	Playlist *PlaylistInfo // nil for single-track references
}

// Spotify fetches track, album and playlist metadata through the Web API
// using the client-credentials flow.
type Spotify struct {
	client spotify.Client
}

func NewSpotify(ctx context.Context, clientID, clientSecret string) (*Spotify, error) {
	if clientID == "" || clientSecret == "" {
		return nil, errors.New("missing Spotify credentials")
	}

	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotify.TokenURL,
	}

	// The oauth2 client refreshes the token transparently.
	httpClient := cfg.Client(ctx)
	return &Spotify{client: spotify.NewClient(httpClient)}, nil
}

// Fetch dereferences a Spotify URL into its items.
func (s *Spotify) Fetch(rawURL string) (*SpotifyRef, error) {
	m := spotifyURLPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return nil, fmt.Errorf("not a recognized Spotify URL: %q", rawURL)
	}

	kind, id := m[1], spotify.ID(m[2])
	switch kind {
	case "track":
		return s.fetchTrack(id)
	case "album":
		return s.fetchAlbum(id, rawURL)
	default:
		return s.fetchPlaylist(id, rawURL)
	}
}

func (s *Spotify) fetchTrack(id spotify.ID) (*SpotifyRef, error) {
	full, err := s.client.GetTrack(id)
	if err != nil {
		return nil, fmt.Errorf("spotify track fetch: %w", err)
	}
	return &SpotifyRef{Items: []SpotifyItem{{
		Name:   full.Name,
		Artist: primaryArtist(full.Artists),
	}}}, nil
}

func (s *Spotify) fetchAlbum(id spotify.ID, rawURL string) (*SpotifyRef, error) {
	album, err := s.client.GetAlbum(id)
	if err != nil {
		return nil, fmt.Errorf("spotify album fetch: %w", err)
	}

	items := make([]SpotifyItem, 0, len(album.Tracks.Tracks))
	for _, t := range album.Tracks.Tracks {
		items = append(items, SpotifyItem{
			Name:   t.Name,
			Artist: primaryArtist(t.Artists),
		})
	}

	return &SpotifyRef{
		Items: items,
		Playlist: &PlaylistInfo{
			Name:        album.Name,
			Author:      primaryArtist(album.Artists),
			URL:         rawURL,
			Thumbnail:   firstImage(album.Images),
			TotalTracks: len(items),
		},
	}, nil
}

func (s *Spotify) fetchPlaylist(id spotify.ID, rawURL string) (*SpotifyRef, error) {
	playlist, err := s.client.GetPlaylist(id)
	if err != nil {
		return nil, fmt.Errorf("spotify playlist fetch: %w", err)
	}

	items := make([]SpotifyItem, 0, len(playlist.Tracks.Tracks))
	for _, pt := range playlist.Tracks.Tracks {
		if pt.Track.Name == "" {
			continue // removed or region-locked entries
		}
		items = append(items, SpotifyItem{
			Name:   pt.Track.Name,
			Artist: primaryArtist(pt.Track.Artists),
		})
	}

	return &SpotifyRef{
		Items: items,
		Playlist: &PlaylistInfo{
			Name:        playlist.Name,
			Author:      playlist.Owner.DisplayName,
			URL:         rawURL,
			Thumbnail:   firstImage(playlist.Images),
			TotalTracks: len(items),
		},
	}, nil
}

func primaryArtist(artists []spotify.SimpleArtist) string {
	if len(artists) == 0 {
		return "Unknown"
	}
	return artists[0].Name
}

func firstImage(images []spotify.Image) string {
	if len(images) == 0 {
		return ""
	}
	return images[0].URL
}
