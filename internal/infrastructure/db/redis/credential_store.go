package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/safecall/crm-console/internal/core/ports"
)

const defaultSessionTTL = 24 * time.Hour

// CredentialStore persists the console's token pair in Redis.
// Key format: session:<key>
type CredentialStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewCredentialStore creates a CredentialStore wrapping the given Redis client.
func NewCredentialStore(client *redis.Client, key string, ttl time.Duration) *CredentialStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &CredentialStore{client: client, key: key, ttl: ttl}
}

// Load returns the stored credentials, or nil when none are stored.
func (s *CredentialStore) Load(ctx context.Context) (*ports.Credentials, error) {
	raw, err := s.client.Get(ctx, s.redisKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load credentials: %w", err)
	}

	var creds ports.Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, fmt.Errorf("decode credentials: %w", err)
	}
	return &creds, nil
}

// Save stores the credentials (expires after ttl).
func (s *CredentialStore) Save(ctx context.Context, creds ports.Credentials) error {
	raw, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := s.client.Set(ctx, s.redisKey(), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

// Clear removes the stored credentials.
func (s *CredentialStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.redisKey()).Err(); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

func (s *CredentialStore) redisKey() string {
	return fmt.Sprintf("session:%s", s.key)
}
