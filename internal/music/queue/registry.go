// /internal/music/queue/registry.go
package queue

import (
	"log"
	"sync"
)

// Registry is the process-wide map of guild id to guild queue. Creation
// and destruction go through it exclusively; every other operation mutates
// an existing queue in place.
type Registry struct {
	mu            sync.Mutex
	queues        map[string]*GuildQueue
	defaultVolume float64
}

func NewRegistry(defaultVolume float64) *Registry {
	return &Registry{
		queues:        make(map[string]*GuildQueue),
		defaultVolume: defaultVolume,
	}
}

// GetOrCreate returns the guild's queue, constructing a fresh one when none
// exists. The second return value reports whether a queue was created.
func (r *Registry) GetOrCreate(guildID, voiceChannelID, textChannelID string) (*GuildQueue, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if q, ok := r.queues[guildID]; ok {
		return q, false
	}

	q := newGuildQueue(guildID, voiceChannelID, textChannelID, r.defaultVolume)
	r.queues[guildID] = q
	log.Printf("[QUEUE] Created queue for guild %s | Active queues: %d", guildID, len(r.queues))
	return q, true
}

// Get looks a queue up without side effects.
func (r *Registry) Get(guildID string) (*GuildQueue, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.queues[guildID]
	return q, ok
}

// Destroy tears the guild's queue down and removes it from the map.
// No-op when the guild has no queue.
func (r *Registry) Destroy(guildID string) {
	r.mu.Lock()
	q, ok := r.queues[guildID]
	if ok {
		delete(r.queues, guildID)
	}
	remaining := len(r.queues)
	r.mu.Unlock()

	if !ok {
		return
	}

	q.teardown()
	log.Printf("[QUEUE] Destroyed queue for guild %s | Active queues: %d", guildID, remaining)
}

// DestroyAll tears down every queue. Used on shutdown.
func (r *Registry) DestroyAll() {
	r.mu.Lock()
	ids := make([]string, 0, len(r.queues))
	for id := range r.queues {
		ids = append(ids, id)
	}
	r.mu.Unlock()

	for _, id := range ids {
		r.Destroy(id)
	}
}

// Count returns the number of active queues.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queues)
}
