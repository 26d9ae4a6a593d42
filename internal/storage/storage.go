// /internal/storage/storage.go
package storage

import (
	"context"
	"sync"

	"github.com/keshon/datastore"
)

// Storage wraps the JSON datastore. It holds per-guild settings and the
// process-wide playback stats; queue state itself is never persisted.
type Storage struct {
	ds      *datastore.DataStore
	statsMu sync.Mutex
}

// GuildRecord is the persisted per-guild state.
type GuildRecord struct {
	Premium     bool `json:"premium"`
	DefaultStay bool `json:"default_stay"` // restore 24/7 on next session
}

// New opens the store at filePath. The context bounds the datastore's
// background save loop; cancel it before Close, which waits for that
// loop to exit and performs the final flush.
func New(ctx context.Context, filePath string) (*Storage, error) {
	ds, err := datastore.New(ctx, filePath)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

func (s *Storage) getGuildRecord(guildID string) (*GuildRecord, error) {
	var record GuildRecord
	exists, err := s.ds.Get("guild:"+guildID, &record)
	if err != nil {
		return nil, err
	}
	if !exists {
		return &GuildRecord{}, nil
	}
	return &record, nil
}

func (s *Storage) putGuildRecord(guildID string, record *GuildRecord) error {
	return s.ds.Set("guild:"+guildID, record)
}

// IsPremiumGuild reports whether the guild has an active premium entitlement.
// Lookup failures count as not premium.
func (s *Storage) IsPremiumGuild(guildID string) bool {
	record, err := s.getGuildRecord(guildID)
	if err != nil {
		return false
	}
	return record.Premium
}

// SetPremiumGuild flips the premium entitlement for a guild.
func (s *Storage) SetPremiumGuild(guildID string, premium bool) error {
	record, err := s.getGuildRecord(guildID)
	if err != nil {
		return err
	}
	record.Premium = premium
	return s.putGuildRecord(guildID, record)
}

// SetDefaultStay persists the 24/7 preference for a guild.
func (s *Storage) SetDefaultStay(guildID string, stay bool) error {
	record, err := s.getGuildRecord(guildID)
	if err != nil {
		return err
	}
	record.DefaultStay = stay
	return s.putGuildRecord(guildID, record)
}

// DefaultStay reports the persisted 24/7 preference for a guild.
func (s *Storage) DefaultStay(guildID string) bool {
	record, err := s.getGuildRecord(guildID)
	if err != nil {
		return false
	}
	return record.DefaultStay
}
