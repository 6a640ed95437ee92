package redis

import (
	"context"
	"time"
)

// SessionPresence mirrors live room membership into Redis sets so the REST
// API can report participant counts without reaching into the
// coordinator's in-memory state. Writes are best-effort.
type SessionPresence struct {
	store *Store
	ttl   time.Duration
}

// Presence returns a presence mirror writing through this store.
func (s *Store) Presence(ttl time.Duration) *SessionPresence {
	return &SessionPresence{store: s, ttl: ttl}
}

// Add records a participant handle as present in a session.
func (p *SessionPresence) Add(sessionID, handle string) {
	ctx := context.Background()
	p.store.client.SAdd(ctx, peersKey(sessionID), handle)
	p.store.client.Expire(ctx, peersKey(sessionID), p.ttl)
}

// Remove clears a participant handle from a session.
func (p *SessionPresence) Remove(sessionID, handle string) {
	p.store.client.SRem(context.Background(), peersKey(sessionID), handle)
}
