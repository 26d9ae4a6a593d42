package storage

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	s, err := New(ctx, filepath.Join(t.TempDir(), "datastore.json"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		cancel()
		s.Close()
	})
	return s
}

func TestGuildRecordDefaults(t *testing.T) {
	s := newTestStorage(t)

	if s.IsPremiumGuild("g1") {
		t.Error("unknown guild should not be premium")
	}
	if s.DefaultStay("g1") {
		t.Error("unknown guild should not default to 24/7")
	}
}

func TestGuildRecordRoundtrip(t *testing.T) {
	s := newTestStorage(t)

	if err := s.SetPremiumGuild("g1", true); err != nil {
		t.Fatal(err)
	}
	if err := s.SetDefaultStay("g1", true); err != nil {
		t.Fatal(err)
	}

	if !s.IsPremiumGuild("g1") {
		t.Error("premium flag lost")
	}
	if !s.DefaultStay("g1") {
		t.Error("stay preference lost")
	}
	if s.IsPremiumGuild("g2") {
		t.Error("flags should not leak across guilds")
	}

	if err := s.SetPremiumGuild("g1", false); err != nil {
		t.Fatal(err)
	}
	if s.IsPremiumGuild("g1") {
		t.Error("premium flag should clear")
	}
	if !s.DefaultStay("g1") {
		t.Error("clearing premium should not touch the stay preference")
	}
}

func TestReopenKeepsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datastore.json")

	ctx, cancel := context.WithCancel(context.Background())
	s, err := New(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetDefaultStay("g1", true); err != nil {
		t.Fatal(err)
	}
	s.IncrementSongsPlayed(4)
	cancel()
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	ctx2, cancel2 := context.WithCancel(context.Background())
	s2, err := New(ctx2, path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		cancel2()
		s2.Close()
	}()

	if !s2.DefaultStay("g1") {
		t.Error("stay preference lost across reopen")
	}
	if got := s2.SongsPlayed(); got != 4 {
		t.Errorf("counter after reopen = %d, want 4", got)
	}
}

func TestSongsPlayedCounter(t *testing.T) {
	s := newTestStorage(t)

	if got := s.SongsPlayed(); got != 0 {
		t.Errorf("initial counter = %d, want 0", got)
	}
	if got := s.IncrementSongsPlayed(3); got != 3 {
		t.Errorf("after +3 = %d, want 3", got)
	}
	if got := s.IncrementSongsPlayed(2); got != 5 {
		t.Errorf("after +2 = %d, want 5", got)
	}
	if got := s.SongsPlayed(); got != 5 {
		t.Errorf("read back = %d, want 5", got)
	}
}

func TestSongsPlayedConcurrent(t *testing.T) {
	s := newTestStorage(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.IncrementSongsPlayed(1)
		}()
	}
	wg.Wait()

	if got := s.SongsPlayed(); got != 20 {
		t.Errorf("counter = %d, want 20 (lost increments)", got)
	}
}
