// /internal/music/resolver/utils.go
package resolver

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	watchURLPattern = regexp.MustCompile(`"url":"/watch\?v=([a-zA-Z0-9_-]{11})`)

	// Handles open.spotify.com links, including the intl-xx/ prefix.
	spotifyURLPattern = regexp.MustCompile(`spotify\.com/(?:intl-[a-z]{2}/)?(track|album|playlist)/([a-zA-Z0-9]+)`)

	youtubeHostPattern = regexp.MustCompile(`(?:https?://)?(?:www\.|music\.)?(youtube\.com|youtu\.be)/\S+`)
)

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func isSpotifyURL(s string) bool {
	return spotifyURLPattern.MatchString(s)
}

func isYouTubeVideoURL(s string) bool {
	if !youtubeHostPattern.MatchString(s) {
		return false
	}
	return strings.Contains(s, "watch?v=") || strings.Contains(s, "youtu.be/")
}

func isYouTubePlaylistURL(s string) bool {
	if !youtubeHostPattern.MatchString(s) {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Query().Get("list") != ""
}
