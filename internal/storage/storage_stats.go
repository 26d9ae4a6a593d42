// /internal/storage/storage_stats.go
package storage

import (
	"time"
)

const statsKey = "stats"

// StatsRecord is the durable playback counter.
type StatsRecord struct {
	SongsPlayed int64     `json:"songs_played"`
	LastUpdated time.Time `json:"last_updated"`
}

func (s *Storage) getStats() (*StatsRecord, error) {
	var record StatsRecord
	exists, err := s.ds.Get(statsKey, &record)
	if err != nil {
		return nil, err
	}
	if !exists {
		return &StatsRecord{}, nil
	}
	return &record, nil
}

// SongsPlayed returns the all-time played track counter.
func (s *Storage) SongsPlayed() int64 {
	record, err := s.getStats()
	if err != nil {
		return 0
	}
	return record.SongsPlayed
}

// IncrementSongsPlayed bumps the played counter by n and returns the new
// value. The read-modify-write is serialized so concurrent guilds cannot
// lose increments.
func (s *Storage) IncrementSongsPlayed(n int64) int64 {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	record, err := s.getStats()
	if err != nil {
		record = &StatsRecord{}
	}
	record.SongsPlayed += n
	record.LastUpdated = time.Now().UTC()
	// Set fails only for an unmarshalable record or a closed store;
	// neither is recoverable here.
	_ = s.ds.Set(statsKey, record)
	return record.SongsPlayed
}
