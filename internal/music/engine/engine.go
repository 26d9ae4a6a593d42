// /internal/music/engine/engine.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/STWJXSX/Roxy-music/internal/music/pipeline"
	"github.com/STWJXSX/Roxy-music/internal/music/queue"
	"github.com/STWJXSX/Roxy-music/internal/music/resolver"
	"github.com/STWJXSX/Roxy-music/internal/music/track"
)

var (
	ErrNoQueue         = errors.New("nothing is playing in this server")
	ErrNoTrackPlaying  = errors.New("no track is currently playing")
	ErrNoTracksFound   = errors.New("no tracks found")
	ErrAlreadyPaused   = errors.New("playback is already paused")
	ErrNotPaused       = errors.New("playback is not paused")
	ErrBadVolume       = errors.New("volume must be between 0 and 100")
	ErrSeekUnsupported = errors.New("this track cannot be seeked")
	ErrBadPosition     = errors.New("position is outside the track")
	ErrNoTracksInQueue = errors.New("no tracks in queue")
)

// Connector joins voice channels. The production implementation wraps a
// discordgo session.
type Connector interface {
	Join(guildID, channelID string) (queue.VoiceSession, error)
}

// TrackResolver turns user queries into playable tracks. Satisfied by
// resolver.Resolver.
type TrackResolver interface {
	Resolve(query, requestedBy string) *resolver.Result
	Search(query, requestedBy string, limit int) *resolver.Result
	CrossResolve(item resolver.SpotifyItem, requestedBy string) (*track.Track, error)
	PlaylistEntries(playlistURL, skipVideoID, requestedBy string) (*resolver.PlaylistInfo, []*track.Track, error)
}

// Counter is the durable played-tracks counter.
type Counter interface {
	IncrementSongsPlayed(n int64) int64
}

type nopCounter struct{}

func (nopCounter) IncrementSongsPlayed(n int64) int64 { return 0 }

// Options tunes an Engine. Zero values fall back to production defaults.
type Options struct {
	Opener   pipeline.Opener
	Notifier Notifier
	Stats    Counter

	// DefaultStay seeds a new guild queue's 24/7 flag, typically from
	// the guild's stored preference.
	DefaultStay func(guildID string) bool

	QueueEndGrace       time.Duration
	EmptyChannelTimeout time.Duration
	ConnectTimeout      time.Duration
}

// Engine drives every guild queue's playback transitions: resolve, connect,
// spawn the decode pipeline, stream, advance on completion. One Engine
// serves all guilds; per-guild state lives in the queue registry.
type Engine struct {
	registry  *queue.Registry
	resolver  TrackResolver
	connector Connector
	opener    pipeline.Opener
	notifier  Notifier
	stats     Counter

	defaultStay func(guildID string) bool

	queueEndGrace       time.Duration
	emptyChannelTimeout time.Duration
	connectTimeout      time.Duration
}

func New(registry *queue.Registry, res TrackResolver, connector Connector, opts Options) *Engine {
	if opts.Opener == nil {
		opts.Opener = pipeline.New()
	}
	if opts.Notifier == nil {
		opts.Notifier = NopNotifier{}
	}
	if opts.Stats == nil {
		opts.Stats = nopCounter{}
	}
	if opts.QueueEndGrace <= 0 {
		opts.QueueEndGrace = time.Minute
	}
	if opts.EmptyChannelTimeout <= 0 {
		opts.EmptyChannelTimeout = time.Minute
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 30 * time.Second
	}

	return &Engine{
		registry:            registry,
		resolver:            res,
		connector:           connector,
		opener:              opts.Opener,
		notifier:            opts.Notifier,
		stats:               opts.Stats,
		defaultStay:         opts.DefaultStay,
		queueEndGrace:       opts.QueueEndGrace,
		emptyChannelTimeout: opts.EmptyChannelTimeout,
		connectTimeout:      opts.ConnectTimeout,
	}
}

// Registry exposes the queue registry for read-side presentation.
func (e *Engine) Registry() *queue.Registry {
	return e.registry
}

// PlayResult tells the caller what Play did with its query.
type PlayResult struct {
	Track    *track.Track
	Playlist *resolver.PlaylistInfo
	// Started is false when the track was only appended behind a
	// playing queue.
	Started bool
	// Position is the number of tracks ahead of the new one.
	Position int
}

// Play resolves a query and enqueues its first track, connecting and
// starting playback when the guild is not already playing. Multi-item
// references spawn a background fill.
func (e *Engine) Play(guildID, voiceChannelID, textChannelID, query, requestedBy string) (*PlayResult, error) {
	result := e.resolver.Resolve(query, requestedBy)
	if !result.HasTracks() {
		return nil, ErrNoTracksFound
	}

	q, created := e.registry.GetOrCreate(guildID, voiceChannelID, textChannelID)
	if created && e.defaultStay != nil && e.defaultStay(guildID) {
		q.SetStay(true)
	}
	first := result.Tracks[0]
	position := q.PendingLen()
	q.Enqueue(first)
	e.stats.IncrementSongsPlayed(1)

	started := false
	if created || !q.Playing() {
		if q.Conn() == nil {
			conn, err := e.connect(guildID, q.VoiceChannelID)
			if err != nil {
				e.registry.Destroy(guildID)
				return nil, fmt.Errorf("failed to join voice channel: %w", err)
			}
			q.SetConn(conn)
		}
		e.advance(q)
		started = true
	}

	if result.Deferred != nil {
		go e.fillInBackground(q, result.Playlist, result.Deferred, requestedBy)
	}

	return &PlayResult{
		Track:    first,
		Playlist: result.Playlist,
		Started:  started,
		Position: position,
	}, nil
}

// Search returns up to limit playable matches for a free-text query.
func (e *Engine) Search(query, requestedBy string, limit int) []*track.Track {
	return e.resolver.Search(query, requestedBy, limit).Tracks
}

// connect joins the voice channel, bounded by the configured timeout.
// A join that outlives the timeout is disconnected when it completes.
func (e *Engine) connect(guildID, channelID string) (queue.VoiceSession, error) {
	type joined struct {
		conn queue.VoiceSession
		err  error
	}
	ch := make(chan joined, 1)

	go func() {
		conn, err := e.connector.Join(guildID, channelID)
		ch <- joined{conn, err}
	}()

	select {
	case j := <-ch:
		return j.conn, j.err
	case <-time.After(e.connectTimeout):
		go func() {
			if j := <-ch; j.conn != nil {
				j.conn.Disconnect()
			}
		}()
		return nil, fmt.Errorf("voice connection not ready after %v", e.connectTimeout)
	}
}

// advance pops the queue head into the current slot and starts its decode
// pipeline, skipping tracks whose stream cannot be acquired. With nothing
// pending it settles the queue into idle and, without 24/7 mode, schedules
// the grace-period teardown. Guarded so concurrent track-end and command
// paths cannot double-advance.
func (e *Engine) advance(q *queue.GuildQueue) {
	if !q.TryBeginAdvance() {
		log.Printf("[Engine] Advance already in flight for guild %s", q.GuildID)
		return
	}
	defer q.EndAdvance()

	for {
		t, ok := q.PopNext()
		if !ok {
			q.SetIdle()
			if q.Stay() {
				log.Printf("[Engine] Queue empty for guild %s, staying (24/7)", q.GuildID)
				return
			}
			e.notifier.QueueEnded(q.TextChannelID, e.queueEndGrace)
			e.scheduleTeardown(q)
			return
		}

		pipe, err := e.opener.Open(context.Background(), t.URL, 0)
		if err != nil {
			log.Printf("[Engine] Skipping track %q for guild %s: %v", t.Title, q.GuildID, err)
			continue
		}

		e.startPlayback(q, t, pipe, true)
		return
	}
}

// startPlayback hands the pipeline to a streaming goroutine. The session
// id fences stale goroutines: whoever no longer owns the current session
// exits without advancing.
func (e *Engine) startPlayback(q *queue.GuildQueue, t *track.Track, pipe *pipeline.Stream, announce bool) {
	session, stop := q.BeginPlayback(pipe)

	if announce {
		e.notifier.TrackStarted(q.TextChannelID, t)
		log.Printf("[Engine] Now playing %q in guild %s", t.Title, q.GuildID)
	}

	go func() {
		if err := e.streamPCM(pipe, q, stop); err != nil {
			log.Printf("[Engine] Playback error for %q in guild %s: %v", t.Title, q.GuildID, err)
		}
		e.onTrackEnd(q, session, t)
	}()
}

// onTrackEnd is the single completion path for natural end, skip, and
// pipeline failure. It does nothing when the queue was destroyed or the
// playback session was replaced (seek) while the stream drained.
func (e *Engine) onTrackEnd(q *queue.GuildQueue, session int, finished *track.Track) {
	cur, ok := e.registry.Get(q.GuildID)
	if !ok || cur != q {
		return
	}
	if q.Session() != session {
		return
	}

	q.ApplyLoopPolicy(finished)
	e.advance(q)
}

// scheduleTeardown arms the grace-period leave. The callback re-validates
// playback and 24/7 state, so a play issued during the grace period
// implicitly cancels the teardown. Tracks that arrived while idle, from
// a background fill landing after the last track failed, restart playback
// instead of leaving them stranded.
func (e *Engine) scheduleTeardown(q *queue.GuildQueue) {
	time.AfterFunc(e.queueEndGrace, func() {
		cur, ok := e.registry.Get(q.GuildID)
		if !ok || cur != q {
			return
		}
		if cur.Playing() || cur.Stay() {
			return
		}
		if cur.PendingLen() > 0 {
			e.advance(cur)
			return
		}
		e.notifier.LeftChannel(q.TextChannelID, LeaveQueueEnded)
		e.registry.Destroy(q.GuildID)
	})
}

// Skip stops the active pipeline; completion handling then applies the
// loop policy and advances, exactly as a natural track end.
func (e *Engine) Skip(guildID string) (*track.Track, error) {
	q, ok := e.registry.Get(guildID)
	if !ok {
		return nil, ErrNoQueue
	}
	cur := q.Current()
	if cur == nil {
		return nil, ErrNoTrackPlaying
	}
	q.StopPlayback()
	return cur, nil
}

// Stop clears the queue and tears the guild down unconditionally, 24/7
// mode included.
func (e *Engine) Stop(guildID string) error {
	q, ok := e.registry.Get(guildID)
	if !ok {
		return ErrNoQueue
	}
	q.Clear()
	q.SetLoop(queue.LoopOff)
	e.registry.Destroy(guildID)
	return nil
}

// Pause suspends playback. Pausing an already-paused or idle queue fails
// explicitly without mutating anything.
func (e *Engine) Pause(guildID string) error {
	q, ok := e.registry.Get(guildID)
	if !ok {
		return ErrNoQueue
	}
	if !q.Playing() {
		return ErrNoTrackPlaying
	}
	if !q.SetPaused(true) {
		return ErrAlreadyPaused
	}
	return nil
}

// Resume continues paused playback.
func (e *Engine) Resume(guildID string) error {
	q, ok := e.registry.Get(guildID)
	if !ok {
		return ErrNoQueue
	}
	if !q.Paused() {
		return ErrNotPaused
	}
	q.SetPaused(false)
	return nil
}

// SetVolume stores a percentage volume, applied live to the active stream.
// Out-of-range values are rejected with no state change.
func (e *Engine) SetVolume(guildID string, percent int) error {
	q, ok := e.registry.Get(guildID)
	if !ok {
		return ErrNoQueue
	}
	if percent < 0 || percent > 100 {
		return ErrBadVolume
	}
	q.SetVolume(float64(percent) / 100)
	return nil
}

// SetLoop sets the loop mode.
func (e *Engine) SetLoop(guildID string, mode queue.LoopMode) error {
	q, ok := e.registry.Get(guildID)
	if !ok {
		return ErrNoQueue
	}
	q.SetLoop(mode)
	return nil
}

// Shuffle permutes the pending list.
func (e *Engine) Shuffle(guildID string) (int, error) {
	q, ok := e.registry.Get(guildID)
	if !ok {
		return 0, ErrNoQueue
	}
	n := q.PendingLen()
	if n == 0 {
		return 0, ErrNoTracksInQueue
	}
	q.Shuffle()
	return n, nil
}

// Jump drops every pending track ahead of index n and skips to it.
func (e *Engine) Jump(guildID string, n int) (*track.Track, error) {
	q, ok := e.registry.Get(guildID)
	if !ok {
		return nil, ErrNoQueue
	}
	if err := q.DropBefore(n); err != nil {
		return nil, err
	}
	target := q.Pending()[0]
	q.StopPlayback()
	return target, nil
}

// Remove deletes the pending track at index n.
func (e *Engine) Remove(guildID string, n int) (*track.Track, error) {
	q, ok := e.registry.Get(guildID)
	if !ok {
		return nil, ErrNoQueue
	}
	return q.Remove(n)
}

// Clear drops all pending tracks, leaving the current one playing.
func (e *Engine) Clear(guildID string) (int, error) {
	q, ok := e.registry.Get(guildID)
	if !ok {
		return 0, ErrNoQueue
	}
	return q.Clear(), nil
}

// SetStay flips 24/7 mode.
func (e *Engine) SetStay(guildID string, stay bool) error {
	q, ok := e.registry.Get(guildID)
	if !ok {
		return ErrNoQueue
	}
	q.SetStay(stay)
	return nil
}

// Seek restarts the decode pipeline at the requested offset. Tracks
// without a known duration cannot be seeked and fail explicitly rather
// than restarting from zero.
func (e *Engine) Seek(guildID string, pos time.Duration) error {
	q, ok := e.registry.Get(guildID)
	if !ok {
		return ErrNoQueue
	}
	cur := q.Current()
	if cur == nil {
		return ErrNoTrackPlaying
	}
	if cur.Live() {
		return ErrSeekUnsupported
	}
	if pos < 0 || pos > cur.Duration {
		return ErrBadPosition
	}

	pipe, err := e.opener.Open(context.Background(), cur.URL, pos)
	if err != nil {
		return fmt.Errorf("failed to restart stream at %v: %w", pos, err)
	}

	e.startPlayback(q, cur, pipe, false)
	return nil
}

// ChannelEmptied arms the delayed leave after every listener left the
// bot's channel. stillEmpty is re-evaluated when the timer fires, and a
// listener returning in time cancels via ChannelOccupied.
func (e *Engine) ChannelEmptied(guildID string, stillEmpty func() bool) {
	q, ok := e.registry.Get(guildID)
	if !ok || q.Stay() {
		return
	}

	armed := q.StartEmptyTimer(e.emptyChannelTimeout, func() {
		cur, ok := e.registry.Get(guildID)
		if !ok || cur != q || cur.Stay() {
			return
		}
		if !stillEmpty() {
			return
		}
		log.Printf("[Engine] Channel still empty, leaving guild %s", guildID)
		e.notifier.LeftChannel(q.TextChannelID, LeaveChannelEmpty)
		e.registry.Destroy(guildID)
	})
	if armed {
		log.Printf("[Engine] Channel empty in guild %s, leaving in %v", guildID, e.emptyChannelTimeout)
	}
}

// ChannelOccupied cancels a pending empty-channel leave.
func (e *Engine) ChannelOccupied(guildID string) {
	if q, ok := e.registry.Get(guildID); ok {
		q.CancelEmptyTimer()
	}
}
