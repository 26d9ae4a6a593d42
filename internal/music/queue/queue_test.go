package queue

import (
	"testing"
	"time"

	"github.com/STWJXSX/Roxy-music/internal/music/track"
)

func mkTracks(titles ...string) []*track.Track {
	out := make([]*track.Track, len(titles))
	for i, title := range titles {
		out[i] = &track.Track{Title: title, Duration: time.Minute}
	}
	return out
}

func newTestQueue() *GuildQueue {
	return newGuildQueue("g1", "voice", "text", 0.5)
}

func TestPopNextAndIdle(t *testing.T) {
	q := newTestQueue()
	q.Enqueue(mkTracks("a", "b")...)

	got, ok := q.PopNext()
	if !ok || got.Title != "a" {
		t.Fatalf("PopNext = %v, %v; want a, true", got, ok)
	}
	if !q.Playing() {
		t.Error("queue should be playing after PopNext")
	}
	if q.Current() != got {
		t.Error("Current should be the popped track")
	}
	if q.PendingLen() != 1 {
		t.Errorf("PendingLen = %d, want 1", q.PendingLen())
	}

	q.PopNext()
	if _, ok := q.PopNext(); ok {
		t.Error("PopNext on empty queue should report false")
	}

	q.SetIdle()
	if q.Playing() || q.Current() != nil {
		t.Error("SetIdle should clear playing state and current slot")
	}
}

func TestApplyLoopPolicy(t *testing.T) {
	finished := &track.Track{Title: "done"}

	q := newTestQueue()
	q.Enqueue(mkTracks("next")...)
	q.ApplyLoopPolicy(finished)
	if q.PendingLen() != 1 {
		t.Errorf("LoopOff should not re-file the track, got %d pending", q.PendingLen())
	}

	q.SetLoop(LoopTrack)
	q.ApplyLoopPolicy(finished)
	if got := q.Pending()[0].Title; got != "done" {
		t.Errorf("LoopTrack should re-file at the front, head is %q", got)
	}

	q2 := newTestQueue()
	q2.Enqueue(mkTracks("next")...)
	q2.SetLoop(LoopQueue)
	q2.ApplyLoopPolicy(finished)
	pending := q2.Pending()
	if got := pending[len(pending)-1].Title; got != "done" {
		t.Errorf("LoopQueue should re-file at the back, tail is %q", got)
	}
}

func TestRemoveAndDropBefore(t *testing.T) {
	q := newTestQueue()
	q.Enqueue(mkTracks("a", "b", "c", "d")...)

	removed, err := q.Remove(1)
	if err != nil || removed.Title != "b" {
		t.Fatalf("Remove(1) = %v, %v; want b, nil", removed, err)
	}
	if _, err := q.Remove(10); err != ErrBadIndex {
		t.Errorf("Remove(10) error = %v, want ErrBadIndex", err)
	}
	if _, err := q.Remove(-1); err != ErrBadIndex {
		t.Errorf("Remove(-1) error = %v, want ErrBadIndex", err)
	}

	if err := q.DropBefore(2); err != nil {
		t.Fatalf("DropBefore(2): %v", err)
	}
	if got := q.Pending()[0].Title; got != "d" {
		t.Errorf("head after DropBefore = %q, want d", got)
	}
	if err := q.DropBefore(5); err != ErrBadIndex {
		t.Errorf("DropBefore(5) error = %v, want ErrBadIndex", err)
	}
}

func TestClearKeepsCurrent(t *testing.T) {
	q := newTestQueue()
	q.Enqueue(mkTracks("a", "b", "c")...)
	q.PopNext()

	if n := q.Clear(); n != 2 {
		t.Errorf("Clear = %d, want 2", n)
	}
	if q.Current() == nil || !q.Playing() {
		t.Error("Clear should not touch the current track")
	}
}

func TestShufflePreservesMembership(t *testing.T) {
	q := newTestQueue()
	q.Enqueue(mkTracks("a", "b", "c", "d", "e")...)

	q.Shuffle()

	pending := q.Pending()
	if len(pending) != 5 {
		t.Fatalf("Shuffle changed length to %d", len(pending))
	}
	seen := map[string]bool{}
	for _, tr := range pending {
		seen[tr.Title] = true
	}
	for _, want := range []string{"a", "b", "c", "d", "e"} {
		if !seen[want] {
			t.Errorf("track %q missing after shuffle", want)
		}
	}
}

func TestVolumeClamp(t *testing.T) {
	q := newTestQueue()
	if q.Volume() != 0.5 {
		t.Errorf("initial volume = %v, want 0.5", q.Volume())
	}

	q.SetVolume(1.7)
	if q.Volume() != 1 {
		t.Errorf("volume above range should clamp to 1, got %v", q.Volume())
	}
	q.SetVolume(-0.3)
	if q.Volume() != 0 {
		t.Errorf("volume below range should clamp to 0, got %v", q.Volume())
	}
}

func TestSetPaused(t *testing.T) {
	q := newTestQueue()

	if q.SetPaused(true) {
		t.Error("pausing an idle queue should fail")
	}

	q.Enqueue(mkTracks("a")...)
	q.PopNext()

	if !q.SetPaused(true) {
		t.Error("pausing a playing queue should succeed")
	}
	if q.SetPaused(true) {
		t.Error("double pause should fail")
	}

	q.SetPausedByMute(true)
	if !q.SetPaused(false) {
		t.Error("resume should succeed")
	}
	if q.PausedByMute() {
		t.Error("resume should clear the muted-pause marker")
	}
}

func TestAdvanceGuard(t *testing.T) {
	q := newTestQueue()

	if !q.TryBeginAdvance() {
		t.Fatal("first TryBeginAdvance should win")
	}
	if q.TryBeginAdvance() {
		t.Error("second TryBeginAdvance should lose while the first holds")
	}
	q.EndAdvance()
	if !q.TryBeginAdvance() {
		t.Error("TryBeginAdvance should win again after EndAdvance")
	}
}

func TestStopPlaybackIdempotent(t *testing.T) {
	q := newTestQueue()
	_, stop := q.BeginPlayback(nil)

	q.StopPlayback()
	q.StopPlayback()

	select {
	case <-stop:
	default:
		t.Error("stop channel should be closed after StopPlayback")
	}
}

func TestBeginPlaybackBumpsSession(t *testing.T) {
	q := newTestQueue()

	s1, stop1 := q.BeginPlayback(nil)
	s2, _ := q.BeginPlayback(nil)
	if s2 <= s1 {
		t.Errorf("session did not advance: %d then %d", s1, s2)
	}
	if q.Session() != s2 {
		t.Errorf("Session = %d, want %d", q.Session(), s2)
	}

	// The first session's channel stays open; its goroutine exits on the
	// session mismatch instead.
	select {
	case <-stop1:
		t.Error("old stop channel should not close on replacement")
	default:
	}
}

func TestEmptyTimer(t *testing.T) {
	q := newTestQueue()
	fired := make(chan struct{})

	if !q.StartEmptyTimer(10*time.Millisecond, func() { close(fired) }) {
		t.Fatal("first StartEmptyTimer should arm")
	}
	if q.StartEmptyTimer(10*time.Millisecond, func() {}) {
		t.Error("second StartEmptyTimer should report already pending")
	}

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("empty timer never fired")
	}

	if !q.StartEmptyTimer(time.Hour, func() { t.Error("cancelled timer fired") }) {
		t.Error("timer should re-arm after firing")
	}
	q.CancelEmptyTimer()
	time.Sleep(20 * time.Millisecond)
}

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry(0.5)

	q1, created := r.GetOrCreate("g1", "voice", "text")
	if !created {
		t.Fatal("first GetOrCreate should create")
	}
	q2, created := r.GetOrCreate("g1", "other-voice", "other-text")
	if created || q2 != q1 {
		t.Error("second GetOrCreate should return the same queue")
	}
	if r.Count() != 1 {
		t.Errorf("Count = %d, want 1", r.Count())
	}

	r.Destroy("g1")
	if _, ok := r.Get("g1"); ok {
		t.Error("queue should be gone after Destroy")
	}
	// Destroying an absent guild is a no-op.
	r.Destroy("g1")

	r.GetOrCreate("g1", "voice", "text")
	r.GetOrCreate("g2", "voice", "text")
	r.DestroyAll()
	if r.Count() != 0 {
		t.Errorf("Count after DestroyAll = %d, want 0", r.Count())
	}
}

func TestDestroyDisconnects(t *testing.T) {
	r := NewRegistry(0.5)
	q, _ := r.GetOrCreate("g1", "voice", "text")

	conn := &fakeConn{send: make(chan []byte, 1)}
	q.SetConn(conn)
	q.Enqueue(mkTracks("a")...)
	q.PopNext()

	r.Destroy("g1")
	if !conn.disconnected {
		t.Error("Destroy should disconnect the voice session")
	}
	if q.Current() != nil || q.Playing() {
		t.Error("Destroy should clear playback state")
	}
}

type fakeConn struct {
	send         chan []byte
	disconnected bool
}

func (f *fakeConn) Send() chan<- []byte { return f.send }
func (f *fakeConn) Speaking(bool) error { return nil }
func (f *fakeConn) Disconnect() error   { f.disconnected = true; return nil }
