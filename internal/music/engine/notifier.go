// /internal/music/engine/notifier.go
package engine

import (
	"time"

	"github.com/STWJXSX/Roxy-music/internal/music/resolver"
	"github.com/STWJXSX/Roxy-music/internal/music/track"
)

// LeaveReason says why the bot left a voice channel on its own.
type LeaveReason int

const (
	LeaveQueueEnded LeaveReason = iota
	LeaveChannelEmpty
)

// Notifier receives fire-and-forget playback announcements for a guild's
// bound text channel. Implementations must not block; delivery failures
// are theirs to swallow.
type Notifier interface {
	TrackStarted(channelID string, t *track.Track)
	PlaylistProgress(channelID, name string, loaded, total int)
	PlaylistLoaded(channelID string, info *resolver.PlaylistInfo, loaded, failed int)
	QueueEnded(channelID string, grace time.Duration)
	LeftChannel(channelID string, reason LeaveReason)
}

// NopNotifier discards everything. Used when no announcement surface is
// wired, and in tests.
type NopNotifier struct{}

func (NopNotifier) TrackStarted(string, *track.Track)                       {}
func (NopNotifier) PlaylistProgress(string, string, int, int)               {}
func (NopNotifier) PlaylistLoaded(string, *resolver.PlaylistInfo, int, int) {}
func (NopNotifier) QueueEnded(string, time.Duration)                        {}
func (NopNotifier) LeftChannel(string, LeaveReason)                         {}
