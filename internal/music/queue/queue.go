// /internal/music/queue/queue.go
package queue

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/STWJXSX/Roxy-music/internal/music/pipeline"
	"github.com/STWJXSX/Roxy-music/internal/music/track"
)

// LoopMode controls what happens to a track when it finishes.
type LoopMode int

const (
	LoopOff LoopMode = iota
	LoopTrack
	LoopQueue
)

func (m LoopMode) String() string {
	switch m {
	case LoopTrack:
		return "track"
	case LoopQueue:
		return "queue"
	default:
		return "off"
	}
}

// ParseLoopMode maps the user-facing mode names.
func ParseLoopMode(s string) (LoopMode, error) {
	switch s {
	case "off":
		return LoopOff, nil
	case "track":
		return LoopTrack, nil
	case "queue":
		return LoopQueue, nil
	}
	return LoopOff, errors.New("loop mode must be off, track or queue")
}

var ErrBadIndex = errors.New("track index out of range")

// VoiceSession is the live voice-channel connection as the playback code
// needs it. The production implementation wraps a discordgo voice
// connection.
type VoiceSession interface {
	Send() chan<- []byte
	Speaking(bool) error
	Disconnect() error
}

// GuildQueue is the per-guild playback state. All exported methods are safe
// for concurrent use; the zero value is not usable, construct via the
// Registry.
type GuildQueue struct {
	GuildID        string
	VoiceChannelID string
	TextChannelID  string

	mu      sync.Mutex
	tracks  []*track.Track
	current *track.Track
	loop    LoopMode
	volume  float64
	stay    bool
	playing bool
	paused  bool

	// pausedByMute marks a pause forced by a server mute, so an unmute
	// can resume automatically.
	pausedByMute bool

	conn     VoiceSession
	pipe     *pipeline.Stream
	session  int
	stop     chan struct{}
	stopOnce *sync.Once

	advanceInFlight bool

	emptyTimer *time.Timer
}

func newGuildQueue(guildID, voiceChannelID, textChannelID string, volume float64) *GuildQueue {
	return &GuildQueue{
		GuildID:        guildID,
		VoiceChannelID: voiceChannelID,
		TextChannelID:  textChannelID,
		volume:         clampVolume(volume),
	}
}

// Enqueue appends tracks to the pending list.
func (q *GuildQueue) Enqueue(tracks ...*track.Track) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tracks = append(q.tracks, tracks...)
}

// PopNext moves the queue head into the current slot and marks the queue
// playing. Returns false when nothing is pending.
func (q *GuildQueue) PopNext() (*track.Track, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.tracks) == 0 {
		return nil, false
	}
	q.current = q.tracks[0]
	q.tracks = q.tracks[1:]
	q.playing = true
	q.paused = false
	return q.current, true
}

// SetIdle clears the current slot and playing state after the queue runs
// out.
func (q *GuildQueue) SetIdle() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.current = nil
	q.playing = false
	q.paused = false
}

// ApplyLoopPolicy re-files a finished track according to the loop mode.
func (q *GuildQueue) ApplyLoopPolicy(finished *track.Track) {
	if finished == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	switch q.loop {
	case LoopTrack:
		q.tracks = append([]*track.Track{finished}, q.tracks...)
	case LoopQueue:
		q.tracks = append(q.tracks, finished)
	}
}

// Current returns the track in the current slot, if any.
func (q *GuildQueue) Current() *track.Track {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.current
}

// Pending returns a snapshot of the pending list.
func (q *GuildQueue) Pending() []*track.Track {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]*track.Track, len(q.tracks))
	copy(out, q.tracks)
	return out
}

// PendingLen returns the number of pending tracks.
func (q *GuildQueue) PendingLen() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tracks)
}

// Remove deletes the pending track at index i and returns it.
func (q *GuildQueue) Remove(i int) (*track.Track, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if i < 0 || i >= len(q.tracks) {
		return nil, ErrBadIndex
	}
	removed := q.tracks[i]
	q.tracks = append(q.tracks[:i], q.tracks[i+1:]...)
	return removed, nil
}

// Clear drops all pending tracks. The current track keeps playing.
func (q *GuildQueue) Clear() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.tracks)
	q.tracks = nil
	return n
}

// DropBefore removes all pending tracks ahead of index n, so the track at
// n becomes the queue head.
func (q *GuildQueue) DropBefore(n int) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if n < 0 || n >= len(q.tracks) {
		return ErrBadIndex
	}
	q.tracks = q.tracks[n:]
	return nil
}

// Shuffle permutes the pending list in place (Fisher-Yates).
func (q *GuildQueue) Shuffle() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i := len(q.tracks) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		q.tracks[i], q.tracks[j] = q.tracks[j], q.tracks[i]
	}
}

func (q *GuildQueue) Loop() LoopMode {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.loop
}

func (q *GuildQueue) SetLoop(mode LoopMode) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.loop = mode
}

// Volume returns the playback gain in [0,1].
func (q *GuildQueue) Volume() float64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.volume
}

// SetVolume stores the playback gain, clamped to [0,1]. The streaming loop
// reads it per frame, so a live track picks the change up immediately.
func (q *GuildQueue) SetVolume(v float64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.volume = clampVolume(v)
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (q *GuildQueue) Stay() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.stay
}

func (q *GuildQueue) SetStay(stay bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.stay = stay
}

// Playing reports whether a track occupies the current slot, paused or not.
func (q *GuildQueue) Playing() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.playing
}

func (q *GuildQueue) Paused() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.paused
}

// SetPaused flips the pause flag. It reports failure when the queue is not
// playing or is already in the requested state.
func (q *GuildQueue) SetPaused(paused bool) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.playing || q.paused == paused {
		return false
	}
	q.paused = paused
	if !paused {
		q.pausedByMute = false
	}
	return true
}

func (q *GuildQueue) PausedByMute() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pausedByMute
}

func (q *GuildQueue) SetPausedByMute(v bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pausedByMute = v
}

// TryBeginAdvance acquires the advance reentrancy guard. At most one
// advance runs per queue at any instant; a losing caller must not retry,
// the winner covers the transition.
func (q *GuildQueue) TryBeginAdvance() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.advanceInFlight {
		return false
	}
	q.advanceInFlight = true
	return true
}

func (q *GuildQueue) EndAdvance() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.advanceInFlight = false
}

// Conn returns the voice session, if connected.
func (q *GuildQueue) Conn() VoiceSession {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.conn
}

func (q *GuildQueue) SetConn(conn VoiceSession) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.conn = conn
}

// BeginPlayback installs a fresh decode pipeline, killing any prior one
// first - there is never more than one live pipeline per queue. It returns
// the playback session id and the stop channel the streaming loop must
// honor.
func (q *GuildQueue) BeginPlayback(pipe *pipeline.Stream) (int, <-chan struct{}) {
	q.mu.Lock()
	old := q.pipe
	q.pipe = pipe
	q.session++
	session := q.session
	q.stop = make(chan struct{})
	q.stopOnce = &sync.Once{}
	stop := q.stop
	q.mu.Unlock()

	if old != nil {
		old.Kill()
	}
	return session, stop
}

// Session returns the id of the playback session currently owning the
// pipeline. A streaming goroutine whose session id no longer matches must
// exit without advancing.
func (q *GuildQueue) Session() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.session
}

// StopPlayback kills the live pipeline and releases the streaming loop.
// Idempotent.
func (q *GuildQueue) StopPlayback() {
	q.mu.Lock()
	pipe := q.pipe
	once := q.stopOnce
	stop := q.stop
	q.mu.Unlock()

	if once != nil {
		once.Do(func() { close(stop) })
	}
	if pipe != nil {
		pipe.Kill()
	}
}

// StartEmptyTimer schedules fn after d unless a timer is already pending.
// Used by the voice-presence handler when the bot's channel empties.
func (q *GuildQueue) StartEmptyTimer(d time.Duration, fn func()) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.emptyTimer != nil {
		return false
	}
	q.emptyTimer = time.AfterFunc(d, func() {
		q.mu.Lock()
		q.emptyTimer = nil
		q.mu.Unlock()
		fn()
	})
	return true
}

// CancelEmptyTimer stops a pending empty-channel timer, if any.
func (q *GuildQueue) CancelEmptyTimer() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.emptyTimer != nil {
		q.emptyTimer.Stop()
		q.emptyTimer = nil
	}
}

// teardown releases every owned resource. Called by the registry under
// Destroy; not exported so teardown and map removal stay atomic.
func (q *GuildQueue) teardown() {
	q.StopPlayback()
	q.CancelEmptyTimer()

	q.mu.Lock()
	conn := q.conn
	q.conn = nil
	q.tracks = nil
	q.current = nil
	q.playing = false
	q.paused = false
	q.mu.Unlock()

	if conn != nil {
		conn.Disconnect()
	}
}
