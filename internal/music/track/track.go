// /internal/music/track/track.go
package track

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Source identifies which provider a track was resolved from.
type Source string

const (
	SourceYouTube Source = "youtube"
	// SourceSpotify marks tracks referenced on Spotify and cross-resolved
	// to a playable YouTube URL.
	SourceSpotify Source = "spotify"
)

// Track is an immutable playable track descriptor. It is created at resolve
// time and never mutated; a track belongs to exactly one guild queue.
type Track struct {
	Title       string
	URL         string
	Duration    time.Duration
	Thumbnail   string
	RequestedBy string
	Source      Source
}

// Live reports whether the track has no known duration (live stream or
// metadata gap). Such tracks cannot be seeked.
func (t *Track) Live() bool {
	return t.Duration <= 0
}

// DurationString renders the duration as m:ss or h:mm:ss.
func (t *Track) DurationString() string {
	if t.Live() {
		return "LIVE"
	}
	return FormatDuration(t.Duration)
}

// FormatDuration renders d as m:ss, or h:mm:ss past the hour mark.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// ParsePosition parses a user-entered playback position in the forms
// "s", "m:ss" or "h:mm:ss". Malformed input yields an error and no value.
func ParsePosition(input string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(input), ":")
	if len(parts) == 0 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time format: %q", input)
	}

	vals := make([]int, 0, 3)
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid time format: %q", input)
		}
		vals = append(vals, n)
	}

	var secs int
	switch len(vals) {
	case 3:
		secs = vals[0]*3600 + vals[1]*60 + vals[2]
	case 2:
		secs = vals[0]*60 + vals[1]
	default:
		secs = vals[0]
	}

	return time.Duration(secs) * time.Second, nil
}
