// /internal/music/engine/stream.go
package engine

import (
	"encoding/binary"
	"errors"
	"io"
	"time"

	"layeh.com/gopus"

	"github.com/STWJXSX/Roxy-music/internal/music/queue"
)

const (
	channels  = 2
	frameRate = 48000
	// frameSize is samples per channel per opus frame (20ms at 48kHz).
	frameSize = 960
	maxBytes  = frameSize * channels * 2
)

// streamPCM reads s16le frames from the decode pipeline, applies the
// queue's live volume, encodes to opus and pushes frames to the voice
// session until the source drains or stop closes. EOF is the normal
// track end and is not an error.
func (e *Engine) streamPCM(src io.Reader, q *queue.GuildQueue, stop <-chan struct{}) error {
	conn := q.Conn()
	if conn == nil {
		return errors.New("no voice session attached")
	}

	enc, err := gopus.NewEncoder(frameRate, channels, gopus.Audio)
	if err != nil {
		return err
	}

	conn.Speaking(true)
	defer conn.Speaking(false)

	raw := make([]byte, maxBytes)
	pcm := make([]int16, frameSize*channels)

	for {
		select {
		case <-stop:
			return nil
		default:
		}

		if q.Paused() {
			select {
			case <-stop:
				return nil
			case <-time.After(100 * time.Millisecond):
			}
			continue
		}

		if _, err := io.ReadFull(src, raw); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil
			}
			select {
			case <-stop:
				// The pipeline was killed under the reader.
				return nil
			default:
			}
			return err
		}

		vol := q.Volume()
		for i := range pcm {
			s := int16(binary.LittleEndian.Uint16(raw[i*2:]))
			pcm[i] = scaleSample(s, vol)
		}

		frame, err := enc.Encode(pcm, frameSize, maxBytes)
		if err != nil {
			return err
		}

		select {
		case conn.Send() <- frame:
		case <-stop:
			return nil
		}
	}
}

func scaleSample(s int16, vol float64) int16 {
	v := float64(s) * vol
	switch {
	case v > 32767:
		return 32767
	case v < -32768:
		return -32768
	default:
		return int16(v)
	}
}
