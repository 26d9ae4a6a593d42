// /internal/music/resolver/resolver.go
package resolver

import (
	"log"

	"github.com/STWJXSX/Roxy-music/internal/music/track"
)

const searchLimit = 5

// PlaylistInfo describes a multi-item reference (album or playlist) for
// presentation purposes.
type PlaylistInfo struct {
	Name        string
	Author      string
	URL         string
	Thumbnail   string
	TotalTracks int
}

// SpotifyItem is a not-yet-playable Spotify reference awaiting
// cross-resolution through YouTube search.
type SpotifyItem struct {
	Name   string
	Artist string
}

// DeferredFill is the background-fill payload attached to multi-item
// results. Exactly one of SpotifyItems, Entries and PlaylistURL is
// populated.
type DeferredFill struct {
	// SpotifyItems still need a YouTube search each.
	SpotifyItems []SpotifyItem
	// Entries are playlist tracks already described by the provider.
	Entries []*track.Track
	// PlaylistURL is a lazy handle to a provider playlist whose entries
	// have not been listed yet.
	PlaylistURL string
	// SkipVideoID marks the entry that already started playing so the
	// listing does not enqueue it twice.
	SkipVideoID string
}

// Result is the outcome of resolving a query. An empty Tracks slice means
// "no tracks found" - a steady-state outcome, not a fault.
type Result struct {
	Tracks   []*track.Track
	Playlist *PlaylistInfo
	Deferred *DeferredFill
}

func (r *Result) HasTracks() bool {
	return r != nil && len(r.Tracks) > 0
}

// Resolver turns user queries and URLs into playable track descriptors.
// YouTube is the primary provider; Spotify references are cross-resolved
// through YouTube search.
type Resolver struct {
	yt *YouTube
	sp *Spotify // nil when no credentials are configured
}

func New(yt *YouTube, sp *Spotify) *Resolver {
	return &Resolver{yt: yt, sp: sp}
}

// Resolve maps a query to a playable result. Provider failures and empty
// searches are reported as an empty result, never as a panic or error the
// caller must branch on.
func (r *Resolver) Resolve(query, requestedBy string) *Result {
	switch {
	case isSpotifyURL(query):
		return r.resolveSpotify(query, requestedBy)

	case isYouTubePlaylistURL(query):
		return r.resolveYouTubePlaylist(query, requestedBy)

	case isYouTubeVideoURL(query):
		t, err := r.yt.VideoByURL(query, requestedBy)
		if err != nil {
			log.Printf("[Resolver] Video lookup failed for %q: %v", query, err)
			return &Result{}
		}
		return &Result{Tracks: []*track.Track{t}}

	case isURL(query):
		// Unrecognized URL schemes are not probed.
		log.Printf("[Resolver] Unsupported URL: %q", query)
		return &Result{}

	default:
		return r.Search(query, requestedBy, searchLimit)
	}
}

// Search performs a free-text YouTube search and returns up to limit
// playable candidates in ranking order.
func (r *Resolver) Search(query, requestedBy string, limit int) *Result {
	ids, err := r.yt.SearchVideoIDs(query, limit)
	if err != nil {
		log.Printf("[Resolver] Search failed for %q: %v", query, err)
		return &Result{}
	}

	var tracks []*track.Track
	for _, id := range ids {
		t, err := r.yt.VideoByID(id, requestedBy)
		if err != nil {
			log.Printf("[Resolver] Skipping candidate %s: %v", id, err)
			continue
		}
		tracks = append(tracks, t)
	}
	return &Result{Tracks: tracks}
}

// CrossResolve finds the playable YouTube track for a Spotify item.
func (r *Resolver) CrossResolve(item SpotifyItem, requestedBy string) (*track.Track, error) {
	t, err := r.yt.SearchFirstVideo(item.Artist+" "+item.Name, requestedBy)
	if err != nil {
		return nil, err
	}
	t.Title = item.Artist + " - " + item.Name
	t.Source = track.SourceSpotify
	return t, nil
}

func (r *Resolver) resolveSpotify(query, requestedBy string) *Result {
	if r.sp == nil {
		log.Printf("[Resolver] Spotify URL given but no Spotify credentials configured")
		return &Result{}
	}

	ref, err := r.sp.Fetch(query)
	if err != nil {
		log.Printf("[Resolver] Spotify fetch failed for %q: %v", query, err)
		return &Result{}
	}
	if len(ref.Items) == 0 {
		return &Result{}
	}

	first, err := r.CrossResolve(ref.Items[0], requestedBy)
	if err != nil {
		log.Printf("[Resolver] Cross-resolution failed for %q: %v", ref.Items[0].Name, err)
		return &Result{}
	}

	result := &Result{Tracks: []*track.Track{first}}
	if ref.Playlist == nil {
		// Single track reference.
		return result
	}

	result.Playlist = ref.Playlist
	if len(ref.Items) > 1 {
		result.Deferred = &DeferredFill{SpotifyItems: ref.Items[1:]}
	}
	return result
}

func (r *Resolver) resolveYouTubePlaylist(query, requestedBy string) *Result {
	// A watch URL carrying a list parameter can start playing without the
	// listing fetch, which paginates through the whole playlist. The
	// listing itself is enumerated lazily in the background.
	if isYouTubeVideoURL(query) {
		t, err := r.yt.VideoByURL(query, requestedBy)
		if err == nil {
			id, _ := extractVideoID(query)
			return &Result{
				Tracks:   []*track.Track{t},
				Deferred: &DeferredFill{PlaylistURL: query, SkipVideoID: id},
			}
		}
		log.Printf("[Resolver] Video lookup failed for %q, falling back to the listing: %v", query, err)
	}

	// A bare playlist URL has no playable entry until the listing is
	// fetched, so the first page cannot be deferred.
	info, entries, err := r.yt.Playlist(query, requestedBy)
	if err != nil {
		log.Printf("[Resolver] Playlist fetch failed for %q: %v", query, err)
		return &Result{}
	}
	if len(entries) == 0 {
		return &Result{}
	}

	result := &Result{
		Tracks:   entries[:1],
		Playlist: info,
	}
	if len(entries) > 1 {
		result.Deferred = &DeferredFill{Entries: entries[1:]}
	}
	return result
}

// PlaylistEntries materializes a deferred playlist handle, dropping the
// entry that already started playing.
func (r *Resolver) PlaylistEntries(playlistURL, skipVideoID, requestedBy string) (*PlaylistInfo, []*track.Track, error) {
	info, entries, err := r.yt.Playlist(playlistURL, requestedBy)
	if err != nil {
		return nil, nil, err
	}
	return info, dropPlaylistEntry(entries, skipVideoID), nil
}

// dropPlaylistEntry removes the entry for skipVideoID, keeping order.
func dropPlaylistEntry(entries []*track.Track, skipVideoID string) []*track.Track {
	if skipVideoID == "" {
		return entries
	}
	skip := watchURL(skipVideoID)
	kept := entries[:0]
	for _, t := range entries {
		if t.URL == skip {
			continue
		}
		kept = append(kept, t)
	}
	return kept
}
