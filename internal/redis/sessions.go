package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/skillswap/signaling-server/internal/models"
)

// SaveSession stores session metadata and its join-code mapping, both
// expiring together.
func (s *Store) SaveSession(ctx context.Context, session *models.Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, sessionKey(session.ID), data, ttl).Err(); err != nil {
		return err
	}
	return s.client.Set(ctx, codeKey(session.Code), session.ID, ttl).Err()
}

// LookupSession resolves a join code or session id to stored metadata.
func (s *Store) LookupSession(ctx context.Context, identifier string) (*models.Session, error) {
	sessionID := identifier
	// A join code is 6 chars; anything else is treated as a session id
	if len(identifier) == models.JoinCodeLength {
		id, err := s.client.Get(ctx, codeKey(identifier)).Result()
		if err != nil {
			return nil, err
		}
		sessionID = id
	}

	data, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return nil, err
	}

	var session models.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteSession removes metadata, join code and the presence set.
func (s *Store) DeleteSession(ctx context.Context, session *models.Session) {
	s.client.Del(ctx, sessionKey(session.ID))
	s.client.Del(ctx, codeKey(session.Code))
	s.client.Del(ctx, peersKey(session.ID))
}

// PeerCount returns the number of participants currently in a session,
// read from the presence mirror.
func (s *Store) PeerCount(ctx context.Context, sessionID string) int64 {
	n, _ := s.client.SCard(ctx, peersKey(sessionID)).Result()
	return n
}
