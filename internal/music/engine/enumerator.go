// /internal/music/engine/enumerator.go
package engine

import (
	"context"
	"log"
	"sync"

	"golang.org/x/time/rate"

	"github.com/STWJXSX/Roxy-music/internal/music/queue"
	"github.com/STWJXSX/Roxy-music/internal/music/resolver"
	"github.com/STWJXSX/Roxy-music/internal/music/track"
)

const (
	// fillBatchSize bounds concurrent per-item lookups during a
	// background playlist fill.
	fillBatchSize = 3
	// fillProgressEvery is how many loaded tracks between progress
	// announcements.
	fillProgressEvery = 50
	// fillSearchesPerSecond caps outbound YouTube searches across a fill.
	fillSearchesPerSecond = 4
)

// fillInBackground enqueues the remainder of a multi-item reference after
// Play already started its first track. Spotify items each need a YouTube
// search; provider playlist entries arrive ready; a playlist handle is
// listed here so the paginated fetch never runs on the interaction path.
// The fill aborts between batches when the guild queue it was started for
// is gone, loses partial batches without failing the whole fill, and
// reports progress and a final summary through the notifier.
func (e *Engine) fillInBackground(q *queue.GuildQueue, info *resolver.PlaylistInfo, fill *resolver.DeferredFill, requestedBy string) {
	entries := fill.Entries
	if fill.PlaylistURL != "" {
		listed, listedEntries, err := e.resolver.PlaylistEntries(fill.PlaylistURL, fill.SkipVideoID, requestedBy)
		if err != nil {
			log.Printf("[Enumerator] Playlist listing failed for guild %s: %v", q.GuildID, err)
			return
		}
		if info == nil {
			info = listed
		}
		entries = listedEntries
	}

	name := "playlist"
	total := 0
	if info != nil {
		name = info.Name
		total = info.TotalTracks
	}

	var loaded, failed int
	if len(fill.SpotifyItems) > 0 {
		loaded, failed = e.fillFromSpotify(q, name, total, fill.SpotifyItems, requestedBy)
	} else {
		loaded, failed = e.fillFromEntries(q, name, total, entries)
	}
	if loaded == 0 && failed == 0 {
		// Aborted: the guild was destroyed mid-fill.
		return
	}

	log.Printf("[Enumerator] Finished %q for guild %s: %d loaded, %d failed", name, q.GuildID, loaded, failed)
	e.notifier.PlaylistLoaded(q.TextChannelID, info, loaded, failed)
}

// alive reports whether q is still the registered queue for its guild.
// A destroy-then-replay race leaves a fresh queue under the same id, and
// this fill must not leak tracks into it.
func (e *Engine) alive(q *queue.GuildQueue) bool {
	cur, ok := e.registry.Get(q.GuildID)
	return ok && cur == q
}

func (e *Engine) fillFromSpotify(q *queue.GuildQueue, name string, total int, items []resolver.SpotifyItem, requestedBy string) (loaded, failed int) {
	limiter := rate.NewLimiter(rate.Limit(fillSearchesPerSecond), fillBatchSize)
	ctx := context.Background()

	for start := 0; start < len(items); start += fillBatchSize {
		if !e.alive(q) {
			log.Printf("[Enumerator] Guild %s gone, aborting fill of %q", q.GuildID, name)
			return 0, 0
		}

		end := start + fillBatchSize
		if end > len(items) {
			end = len(items)
		}
		batch := items[start:end]
		results := make([]*track.Track, len(batch))

		var wg sync.WaitGroup
		for i, item := range batch {
			if err := limiter.Wait(ctx); err != nil {
				return loaded, failed
			}
			wg.Add(1)
			go func(i int, item resolver.SpotifyItem) {
				defer wg.Done()
				t, err := e.resolver.CrossResolve(item, requestedBy)
				if err != nil {
					log.Printf("[Enumerator] No match for %q - %q: %v", item.Artist, item.Name, err)
					return
				}
				results[i] = t
			}(i, item)
		}
		wg.Wait()

		for _, t := range results {
			if t == nil {
				failed++
				continue
			}
			q.Enqueue(t)
			loaded++
			e.stats.IncrementSongsPlayed(1)
			if loaded%fillProgressEvery == 0 {
				e.notifier.PlaylistProgress(q.TextChannelID, name, loaded, total)
			}
		}
	}
	return loaded, failed
}

func (e *Engine) fillFromEntries(q *queue.GuildQueue, name string, total int, entries []*track.Track) (loaded, failed int) {
	for start := 0; start < len(entries); start += fillBatchSize {
		if !e.alive(q) {
			log.Printf("[Enumerator] Guild %s gone, aborting fill of %q", q.GuildID, name)
			return 0, 0
		}

		end := start + fillBatchSize
		if end > len(entries) {
			end = len(entries)
		}
		for _, t := range entries[start:end] {
			q.Enqueue(t)
			loaded++
			e.stats.IncrementSongsPlayed(1)
			if loaded%fillProgressEvery == 0 {
				e.notifier.PlaylistProgress(q.TextChannelID, name, loaded, total)
			}
		}
	}
	return loaded, failed
}
