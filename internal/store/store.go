package store

import (
	"context"
	"encoding/json"
	"fmt"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// Persisted state keys. Each key holds one serialized document; the full set
// is the entire durable footprint of the terminal.
const (
	KeySession       = "pluto:user_session"
	KeyPeerRegistry  = "pluto:peer_registry"
	KeyPublished     = "pluto:protocol_published"
	KeyRegistryCache = "pluto:full_registry:v2"
	KeyPublicNodes   = "pluto:public_registry"
)

// Store is the serialize/deserialize boundary for all persisted terminal
// state. Reads are best-effort: a missing key or an undecodable value
// degrades to the zero value rather than failing the caller.
type Store struct {
	client   *redis.Client
	embedded *miniredis.Miniredis
}

// Open connects to the key-value backend. An empty url starts an embedded
// in-process instance, which is the default deployment mode: the registry
// and session cache are local to the device running the terminal.
func Open(ctx context.Context, url string) (*Store, error) {
	if url == "" {
		mr, err := miniredis.Run()
		if err != nil {
			return nil, fmt.Errorf("start embedded store: %w", err)
		}
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		return &Store{client: client, embedded: mr}, nil
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse store url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping store: %w", err)
	}
	return &Store{client: client}, nil
}

// Client exposes the underlying redis client for middleware that layers its
// own keyspace on top (idempotency, rate limiting).
func (s *Store) Client() *redis.Client {
	return s.client
}

// GetJSON loads and decodes the value at key into dest. The boolean reports
// whether a usable value was present; decode failures degrade to absence.
func (s *Store) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, nil
	}
	return true, nil
}

// SetJSON serializes value and stores it at key with no expiry.
func (s *Store) SetJSON(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, payload, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// GetFlag reads a boolean marker; absent or malformed values read as false.
func (s *Store) GetFlag(ctx context.Context, key string) bool {
	raw, err := s.client.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return raw == "true"
}

// SetFlag writes a boolean marker.
func (s *Store) SetFlag(ctx context.Context, key string, value bool) error {
	raw := "false"
	if value {
		raw = "true"
	}
	return s.client.Set(ctx, key, raw, 0).Err()
}

// Delete removes the value at key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// Reset wipes every persisted key, returning the terminal to its initial
// state. Used by the self-destruct action.
func (s *Store) Reset(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

// Close releases the client and stops the embedded instance if one was
// started.
func (s *Store) Close() error {
	err := s.client.Close()
	if s.embedded != nil {
		s.embedded.Close()
	}
	return err
}
