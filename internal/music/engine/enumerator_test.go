package engine

import (
	"fmt"
	"sync"
	"testing"

	"github.com/STWJXSX/Roxy-music/internal/music/resolver"
	"github.com/STWJXSX/Roxy-music/internal/music/track"
)

// countingNotifier records playlist announcements.
type countingNotifier struct {
	NopNotifier
	mu       sync.Mutex
	progress int
	loaded   int
	failed   int
	done     bool
}

func (n *countingNotifier) PlaylistProgress(channelID, name string, loaded, total int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.progress++
}

func (n *countingNotifier) PlaylistLoaded(channelID string, info *resolver.PlaylistInfo, loaded, failed int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.done = true
	n.loaded = loaded
	n.failed = failed
}

func TestFillFromEntries(t *testing.T) {
	n := &countingNotifier{}
	h := newHarness(Options{Notifier: n})

	q, _ := h.registry.GetOrCreate("g1", "voice", "text")
	entries := make([]*track.Track, 7)
	for i := range entries {
		entries[i] = mkTrack(string(rune('a' + i)))
	}

	info := &resolver.PlaylistInfo{Name: "mix", TotalTracks: 8}
	h.engine.fillInBackground(q, info, &resolver.DeferredFill{Entries: entries}, "user")

	if q.PendingLen() != 7 {
		t.Errorf("PendingLen = %d, want 7", q.PendingLen())
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.done {
		t.Error("fill should announce completion")
	}
	if n.loaded != 7 || n.failed != 0 {
		t.Errorf("summary = %d loaded / %d failed, want 7/0", n.loaded, n.failed)
	}
}

func TestFillProgressAnnouncements(t *testing.T) {
	n := &countingNotifier{}
	h := newHarness(Options{Notifier: n})

	q, _ := h.registry.GetOrCreate("g1", "voice", "text")
	entries := make([]*track.Track, 120)
	for i := range entries {
		entries[i] = mkTrack(fmt.Sprintf("t%03d", i))
	}

	info := &resolver.PlaylistInfo{Name: "big", TotalTracks: 121}
	h.engine.fillInBackground(q, info, &resolver.DeferredFill{Entries: entries}, "user")

	n.mu.Lock()
	defer n.mu.Unlock()
	// 120 appended tracks cross the threshold at 50 and 100.
	if n.progress != 2 {
		t.Errorf("progress announcements = %d, want 2", n.progress)
	}
	if n.loaded != 120 || n.failed != 0 {
		t.Errorf("summary = %d loaded / %d failed, want 120/0", n.loaded, n.failed)
	}
}

func TestFillFromSpotifyItems(t *testing.T) {
	n := &countingNotifier{}
	h := newHarness(Options{Notifier: n})

	q, _ := h.registry.GetOrCreate("g1", "voice", "text")
	items := []resolver.SpotifyItem{
		{Name: "one", Artist: "x"},
		{Name: "two", Artist: "y"},
		{Name: "three", Artist: "z"},
		{Name: "four", Artist: "w"},
	}

	h.engine.fillInBackground(q, &resolver.PlaylistInfo{Name: "sp", TotalTracks: 5}, &resolver.DeferredFill{SpotifyItems: items}, "user")

	if q.PendingLen() != 4 {
		t.Errorf("PendingLen = %d, want 4", q.PendingLen())
	}
	pending := q.Pending()
	if pending[0].Title != "x - one" {
		t.Errorf("first filled title = %q, want cross-resolved form", pending[0].Title)
	}
}

func TestFillAbortsWhenGuildGone(t *testing.T) {
	n := &countingNotifier{}
	h := newHarness(Options{Notifier: n})

	q, _ := h.registry.GetOrCreate("g1", "voice", "text")
	h.registry.Destroy("g1")

	// A replacement queue under the same guild id must not receive the
	// stale fill either.
	fresh, _ := h.registry.GetOrCreate("g1", "voice", "text")

	entries := []*track.Track{mkTrack("a"), mkTrack("b")}
	h.engine.fillInBackground(q, nil, &resolver.DeferredFill{Entries: entries}, "user")

	if fresh.PendingLen() != 0 {
		t.Errorf("fresh queue received %d stale tracks", fresh.PendingLen())
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.done {
		t.Error("aborted fill should not announce completion")
	}
}

func TestFillFromPlaylistHandle(t *testing.T) {
	n := &countingNotifier{}
	h := newHarness(Options{Notifier: n})

	q, _ := h.registry.GetOrCreate("g1", "voice", "text")
	h.resolver.playlists["https://yt/list"] = &playlistListing{
		info:    &resolver.PlaylistInfo{Name: "lazy", TotalTracks: 4},
		entries: []*track.Track{mkTrack("b"), mkTrack("c"), mkTrack("d")},
	}

	// No playlist info at play time; the listing supplies it.
	fill := &resolver.DeferredFill{PlaylistURL: "https://yt/list", SkipVideoID: "a"}
	h.engine.fillInBackground(q, nil, fill, "user")

	if q.PendingLen() != 3 {
		t.Errorf("PendingLen = %d, want 3", q.PendingLen())
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.done {
		t.Error("listed fill should announce completion")
	}
	if n.loaded != 3 || n.failed != 0 {
		t.Errorf("summary = %d loaded / %d failed, want 3/0", n.loaded, n.failed)
	}
}

func TestPlayWithPlaylistHandleFillsLazily(t *testing.T) {
	h := newHarness(Options{})
	h.resolver.results["watchlist"] = &resolver.Result{
		Tracks:   []*track.Track{mkTrack("first")},
		Deferred: &resolver.DeferredFill{PlaylistURL: "https://yt/list"},
	}
	h.resolver.playlists["https://yt/list"] = &playlistListing{
		info:    &resolver.PlaylistInfo{Name: "mix", TotalTracks: 3},
		entries: []*track.Track{mkTrack("second"), mkTrack("third")},
	}

	if _, err := h.engine.Play("g1", "voice", "text", "watchlist", "user"); err != nil {
		t.Fatal(err)
	}

	q, _ := h.registry.Get("g1")
	waitFor(t, "listed entries", func() bool { return q.PendingLen() == 2 })
	if cur := q.Current(); cur == nil || cur.Title != "first" {
		t.Errorf("current = %v, want first", cur)
	}
}

func TestPlayStartsDeferredFill(t *testing.T) {
	h := newHarness(Options{})
	first := mkTrack("first")
	rest := []*track.Track{mkTrack("second"), mkTrack("third")}
	h.resolver.results["playlist"] = &resolver.Result{
		Tracks:   []*track.Track{first},
		Playlist: &resolver.PlaylistInfo{Name: "mix", TotalTracks: 3},
		Deferred: &resolver.DeferredFill{Entries: rest},
	}

	res, err := h.engine.Play("g1", "voice", "text", "playlist", "user")
	if err != nil {
		t.Fatal(err)
	}
	if res.Playlist == nil || res.Playlist.Name != "mix" {
		t.Errorf("Playlist = %v, want mix", res.Playlist)
	}

	q, _ := h.registry.Get("g1")
	waitFor(t, "deferred entries", func() bool { return q.PendingLen() == 2 })
	if cur := q.Current(); cur == nil || cur.Title != "first" {
		t.Errorf("current = %v, want first", cur)
	}
}
