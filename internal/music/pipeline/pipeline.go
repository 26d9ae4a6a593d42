// /internal/music/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"
)

const (
	channels   = 2
	sampleRate = 48000

	urlTimeout = 15 * time.Second
)

// Stream is a live decode pipeline: a yt-dlp URL extraction followed by an
// ffmpeg transcode to raw s16le PCM. Kill stops the external process; the
// reader then drains and reports EOF or a read error.
type Stream struct {
	io.ReadCloser
	kill func()
}

// Kill terminates the pipeline's processes. Safe to call more than once.
func (s *Stream) Kill() {
	if s.kill != nil {
		s.kill()
	}
}

// NewStream wraps an arbitrary reader as a Stream. kill may be nil.
func NewStream(rc io.ReadCloser, kill func()) *Stream {
	return &Stream{ReadCloser: rc, kill: kill}
}

// Opener produces PCM streams for track URLs. The engine depends on this
// interface so tests can substitute a fake.
type Opener interface {
	Open(ctx context.Context, trackURL string, offset time.Duration) (*Stream, error)
}

// YTDLP is the production Opener. It resolves a direct audio URL with
// yt-dlp, then transcodes it with ffmpeg, asking ffmpeg to start at the
// requested offset.
type YTDLP struct{}

func New() *YTDLP {
	return &YTDLP{}
}

func (y *YTDLP) Open(ctx context.Context, trackURL string, offset time.Duration) (*Stream, error) {
	audioURL, err := y.streamURL(ctx, trackURL)
	if err != nil {
		return nil, err
	}

	ffmpeg := exec.Command("ffmpeg",
		"-ss", fmt.Sprintf("%.3f", offset.Seconds()),
		"-reconnect", "1",
		"-reconnect_streamed", "1",
		"-reconnect_delay_max", "5",
		"-i", audioURL,
		"-f", "s16le",
		"-ar", fmt.Sprintf("%d", sampleRate),
		"-ac", fmt.Sprintf("%d", channels),
		"-loglevel", "warning",
		"pipe:1",
	)

	reader, err := ffmpeg.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe error: %w", err)
	}

	if err := ffmpeg.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}

	// Reap the process once it exits so kills don't leave zombies.
	done := make(chan struct{})
	go func() {
		ffmpeg.Wait()
		close(done)
	}()

	kill := func() {
		ffmpeg.Process.Kill()
		<-done
	}

	return &Stream{ReadCloser: reader, kill: kill}, nil
}

// streamURL asks yt-dlp for the direct bestaudio URL, bounded by a timeout
// so a wedged extractor cannot stall the queue.
func (y *YTDLP) streamURL(ctx context.Context, trackURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, urlTimeout)
	defer cancel()

	ytdlp := exec.CommandContext(ctx, "yt-dlp",
		"-f", "bestaudio/best",
		"-g",
		"--no-warnings",
		"--no-playlist",
		trackURL,
	)

	output, err := ytdlp.Output()
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("yt-dlp timed out for %s", trackURL)
		}
		return "", fmt.Errorf("yt-dlp error: %w", err)
	}

	link := strings.TrimSpace(string(output))
	if link == "" {
		return "", errors.New("empty URL returned from yt-dlp")
	}
	return link, nil
}
