package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNoValue is returned by Lookup when a key was reserved but nothing has
// been remembered under it yet.
var ErrNoValue = errors.New("idempotency key reserved without value")

type Store struct {
	rdb    *redis.Client
	prefix string
}

func New(addr, password string, db int) *Store {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Store{rdb: rdb, prefix: "devopstile:idempo:"}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

func (s *Store) key(scope, key string) string {
	return s.prefix + scope + ":" + key
}

// Reserve claims key within scope for ttl. It reports false when the key
// was already claimed.
func (s *Store) Reserve(ctx context.Context, scope, key string, ttl time.Duration) (bool, error) {
	return s.rdb.SetNX(ctx, s.key(scope, key), "", ttl).Result()
}

// Remember stores the result for a reserved key, keeping its TTL.
func (s *Store) Remember(ctx context.Context, scope, key, value string) error {
	return s.rdb.SetArgs(ctx, s.key(scope, key), value, redis.SetArgs{Mode: "XX", KeepTTL: true}).Err()
}

// Lookup returns redis.Nil when the key is unknown and ErrNoValue while
// the first request is still in flight.
func (s *Store) Lookup(ctx context.Context, scope, key string) (string, error) {
	v, err := s.rdb.Get(ctx, s.key(scope, key)).Result()
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", ErrNoValue
	}
	return v, nil
}
