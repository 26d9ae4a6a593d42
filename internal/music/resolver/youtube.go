// /internal/music/resolver/youtube.go
package resolver

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kkdai/youtube/v2"

	"github.com/STWJXSX/Roxy-music/internal/music/track"
)

var (
	ErrNoVideoMatch  = errors.New("no video found for the given query")
	ErrEmptyPlaylist = errors.New("no videos found in the playlist")
)

// YouTube resolves metadata from the primary provider. Search goes through
// the public results page; item metadata comes from the youtube client.
type YouTube struct {
	BaseURL string
	Client  *http.Client

	yt *youtube.Client
}

func NewYouTube() *YouTube {
	return &YouTube{
		BaseURL: "https://www.youtube.com",
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
		yt: &youtube.Client{},
	}
}

// SearchVideoIDs scrapes the results page for up to limit video IDs in
// ranking order, duplicates removed.
func (y *YouTube) SearchVideoIDs(query string, limit int) ([]string, error) {
	searchURL := fmt.Sprintf("%s/results?search_query=%s", y.BaseURL, url.QueryEscape(query))

	resp, err := y.Client.Get(searchURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("YouTube search failed with status code %v", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	matches := watchURLPattern.FindAllStringSubmatch(string(body), -1)
	seen := make(map[string]struct{}, limit)
	var ids []string
	for _, m := range matches {
		if len(m) < 2 {
			continue
		}
		id := m[1]
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
		if len(ids) == limit {
			break
		}
	}

	if len(ids) == 0 {
		return nil, ErrNoVideoMatch
	}
	return ids, nil
}

// SearchFirstVideo returns the top search hit as a playable track.
func (y *YouTube) SearchFirstVideo(query, requestedBy string) (*track.Track, error) {
	ids, err := y.SearchVideoIDs(query, 1)
	if err != nil {
		return nil, err
	}
	return y.VideoByID(ids[0], requestedBy)
}

// VideoByURL fetches metadata for a direct video URL.
func (y *YouTube) VideoByURL(rawURL, requestedBy string) (*track.Track, error) {
	id, err := youtube.ExtractVideoID(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid YouTube URL: %w", err)
	}
	return y.VideoByID(id, requestedBy)
}

// VideoByID fetches metadata for a video ID.
func (y *YouTube) VideoByID(id, requestedBy string) (*track.Track, error) {
	video, err := y.yt.GetVideo(id)
	if err != nil {
		return nil, fmt.Errorf("youtube client error: %w", err)
	}

	return &track.Track{
		Title:       video.Title,
		URL:         watchURL(video.ID),
		Duration:    video.Duration,
		Thumbnail:   firstThumbnail(video.Thumbnails),
		RequestedBy: requestedBy,
		Source:      track.SourceYouTube,
	}, nil
}

// Playlist fetches a playlist's description and all of its entries as
// playable tracks in collection order. Entries carry metadata from the
// playlist listing; no per-entry fetch happens here.
func (y *YouTube) Playlist(rawURL, requestedBy string) (*PlaylistInfo, []*track.Track, error) {
	playlist, err := y.yt.GetPlaylist(rawURL)
	if err != nil {
		return nil, nil, fmt.Errorf("youtube playlist error: %w", err)
	}
	if len(playlist.Videos) == 0 {
		return nil, nil, ErrEmptyPlaylist
	}

	entries := make([]*track.Track, 0, len(playlist.Videos))
	for _, v := range playlist.Videos {
		if v == nil || v.ID == "" {
			continue
		}
		entries = append(entries, &track.Track{
			Title:       v.Title,
			URL:         watchURL(v.ID),
			Duration:    v.Duration,
			Thumbnail:   firstThumbnail(v.Thumbnails),
			RequestedBy: requestedBy,
			Source:      track.SourceYouTube,
		})
	}
	if len(entries) == 0 {
		return nil, nil, ErrEmptyPlaylist
	}

	info := &PlaylistInfo{
		Name:        playlist.Title,
		Author:      playlist.Author,
		URL:         rawURL,
		Thumbnail:   entries[0].Thumbnail,
		TotalTracks: len(entries),
	}
	return info, entries, nil
}

func watchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

func extractVideoID(rawURL string) (string, error) {
	return youtube.ExtractVideoID(rawURL)
}

func firstThumbnail(thumbnails youtube.Thumbnails) string {
	if len(thumbnails) == 0 {
		return ""
	}
	return thumbnails[0].URL
}
