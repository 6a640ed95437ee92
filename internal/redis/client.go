package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/skillswap/signaling-server/config"
)

// Store wraps the Redis connection behind the two things this service
// keeps there: scheduling metadata for skill-swap sessions (with TTL) and
// the live presence mirror. Live room state never lives here; that belongs
// to the coordinator's in-memory registry.
type Store struct {
	client *redis.Client
}

// NewStore connects to Redis and verifies the connection.
func NewStore(cfg config.RedisConfig) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Store{client: client}, nil
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

func codeKey(code string) string {
	return "code:" + code
}

func peersKey(sessionID string) string {
	return "session:" + sessionID + ":peers"
}
