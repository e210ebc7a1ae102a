package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/happycyhe/Happyfamily-Lotto/internal/domain"
)

const (
	// KeyPrefix namespaces session keys.
	KeyPrefix = "happyfamily:session:"

	// DefaultMaxRetries bounds optimistic transaction retries in Update.
	DefaultMaxRetries = 5
)

// Store keeps sessions as JSON values in Redis. Every write refreshes the
// TTL, so idle sessions expire on their own.
type Store struct {
	client     *redis.Client
	ttl        time.Duration
	maxRetries int
	now        func() time.Time
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client:     client,
		ttl:        ttl,
		maxRetries: DefaultMaxRetries,
		now:        time.Now,
	}
}

func Key(id string) string { return KeyPrefix + id }

func (s *Store) Get(ctx context.Context, id string) (domain.Session, error) {
	return s.read(ctx, s.client, id)
}

// Update runs fn inside WATCH/MULTI so concurrent writers to the same
// session retry instead of overwriting each other.
func (s *Store) Update(ctx context.Context, id string, fn func(*domain.Session) error) (domain.Session, error) {
	key := Key(id)

	var out domain.Session
	txf := func(tx *redis.Tx) error {
		sess, err := s.read(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(&sess); err != nil {
			return err
		}

		data, err := json.Marshal(sess)
		if err != nil {
			return fmt.Errorf("encode session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, string(data), s.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		out = sess
		return nil
	}

	for range s.maxRetries {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return domain.Session{}, err
		}
		return out, nil
	}
	return domain.Session{}, fmt.Errorf("update session %s: %w", id, redis.TxFailedErr)
}

func (s *Store) read(ctx context.Context, c redis.Cmdable, id string) (domain.Session, error) {
	raw, err := c.Get(ctx, Key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.NewSession(id, s.now()), nil
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("read session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return domain.Session{}, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}
