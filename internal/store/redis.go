package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379/0")
	URL string

	// KeyPrefix is prepended to every namespace.
	KeyPrefix string

	ConnectTimeout time.Duration
}

// RedisStore implements Store with one Redis hash per namespace holding the
// blob, its version and the last update time.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	redisOpts.DialTimeout = opts.ConnectTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	return &RedisStore{client: client, prefix: opts.KeyPrefix}, nil
}

func (s *RedisStore) key(ns string) string {
	return s.prefix + ns
}

func (s *RedisStore) GetItem(ctx context.Context, ns string) (string, error) {
	blob, err := s.client.HGet(ctx, s.key(ns), "blob").Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, ns)
	}
	if err != nil {
		return "", fmt.Errorf("get item %s: %w", ns, err)
	}
	return blob, nil
}

func (s *RedisStore) SetItem(ctx context.Context, ns, blob string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.key(ns), "blob", blob, "updated_at", now)
		pipe.HIncrBy(ctx, s.key(ns), "version", 1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("set item %s: %w", ns, err)
	}
	return nil
}

func (s *RedisStore) RemoveItem(ctx context.Context, ns string) error {
	if err := s.client.Del(ctx, s.key(ns)).Err(); err != nil {
		return fmt.Errorf("remove item %s: %w", ns, err)
	}
	return nil
}

func (s *RedisStore) Items(ctx context.Context) ([]Item, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan items: %w", err)
	}
	sort.Strings(keys)

	items := make([]Item, 0, len(keys))
	for _, k := range keys {
		fields, err := s.client.HGetAll(ctx, k).Result()
		if err != nil {
			return nil, fmt.Errorf("read item %s: %w", k, err)
		}
		it := Item{
			NS:        strings.TrimPrefix(k, s.prefix),
			Blob:      fields["blob"],
			UpdatedAt: fields["updated_at"],
		}
		it.Version, _ = strconv.Atoi(fields["version"])
		items = append(items, it)
	}
	return items, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
