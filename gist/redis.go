package gist

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisPrefix namespaces gist hashes.
const redisPrefix = "codeshot:gist:"

// Hash fields.
const (
	fieldSource    = "source"
	fieldHint      = "hint"
	fieldSyntax    = "syntax"
	fieldPNG       = "png"
	fieldEphemeral = "ephemeral"
	fieldCreatedAt = "created_at"
)

// RedisStore keeps each gist in a hash. Ephemeral gists carry a key TTL
// equal to the retention period, so Redis expires them even when no
// Sweeper runs; promotion removes the TTL.
type RedisStore struct {
	client    *redis.Client
	retention time.Duration
}

// NewRedisStore connects to the server at url (redis://host:port/db) and
// verifies the connection.
func NewRedisStore(ctx context.Context, url string, retention time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("gist: redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("gist: redis ping: %w", err)
	}
	return NewRedisStoreFromClient(client, retention), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client, retention time.Duration) *RedisStore {
	return &RedisStore{client: client, retention: retention}
}

func redisKey(id string) string {
	return redisPrefix + id
}

// Put writes the gist hash and its TTL in one transaction.
func (s *RedisStore) Put(ctx context.Context, g *Gist) error {
	key := redisKey(g.ID)
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, key)
		p.HSet(ctx, key,
			fieldSource, g.Source,
			fieldHint, g.Hint,
			fieldSyntax, g.Syntax,
			fieldPNG, g.PNG,
			fieldEphemeral, boolField(g.Ephemeral),
			fieldCreatedAt, strconv.FormatInt(g.CreatedAt.UnixNano(), 10),
		)
		if g.Ephemeral && s.retention > 0 {
			p.Expire(ctx, key, s.retention)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("gist: redis put %s: %w", g.ID, err)
	}
	return nil
}

// Get reads a gist hash.
func (s *RedisStore) Get(ctx context.Context, id string) (*Gist, error) {
	fields, err := s.client.HGetAll(ctx, redisKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("gist: redis get %s: %w", id, err)
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}

	nanos, err := strconv.ParseInt(fields[fieldCreatedAt], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("gist: redis get %s: created_at: %w", id, err)
	}
	return &Gist{
		ID:        id,
		Source:    fields[fieldSource],
		Hint:      fields[fieldHint],
		Syntax:    fields[fieldSyntax],
		PNG:       []byte(fields[fieldPNG]),
		Ephemeral: fields[fieldEphemeral] == "1",
		CreatedAt: time.Unix(0, nanos).UTC(),
	}, nil
}

// setEphemeralScript updates the flag and TTL only if the hash exists, so
// an expiry racing with promotion cannot leave a partial hash behind.
// KEYS[1] is the gist key; ARGV holds the field, the flag and the TTL in ms.
var setEphemeralScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return 0
end
redis.call("HSET", KEYS[1], ARGV[1], ARGV[2])
local ttl = tonumber(ARGV[3])
if ARGV[2] == "1" and ttl > 0 then
	redis.call("PEXPIRE", KEYS[1], ttl)
else
	redis.call("PERSIST", KEYS[1])
end
return 1
`)

// SetEphemeral flips the flag and sets or clears the key TTL.
func (s *RedisStore) SetEphemeral(ctx context.Context, id string, ephemeral bool) error {
	found, err := setEphemeralScript.Run(ctx, s.client,
		[]string{redisKey(id)}, fieldEphemeral, boolField(ephemeral), s.retention.Milliseconds()).Int()
	if err != nil {
		return fmt.Errorf("gist: redis set ephemeral %s: %w", id, err)
	}
	if found == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteExpired scans gist hashes and deletes ephemeral ones created before
// cutoff. Key TTLs normally remove them first; the scan catches hashes
// written while retention was longer.
func (s *RedisStore) DeleteExpired(ctx context.Context, cutoff time.Time) (int, error) {
	deleted := 0
	iter := s.client.Scan(ctx, 0, redisPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		vals, err := s.client.HMGet(ctx, key, fieldEphemeral, fieldCreatedAt).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return deleted, fmt.Errorf("gist: redis sweep %s: %w", key, err)
		}
		if !expired(vals, cutoff) {
			continue
		}
		n, err := s.client.Del(ctx, key).Result()
		if err != nil {
			return deleted, fmt.Errorf("gist: redis sweep %s: %w", key, err)
		}
		deleted += int(n)
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("gist: redis scan: %w", err)
	}
	return deleted, nil
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// expired interprets an HMGET of (ephemeral, created_at).
func expired(vals []any, cutoff time.Time) bool {
	if len(vals) != 2 {
		return false
	}
	eph, _ := vals[0].(string)
	created, _ := vals[1].(string)
	if eph != "1" {
		return false
	}
	nanos, err := strconv.ParseInt(created, 10, 64)
	if err != nil {
		return false
	}
	return time.Unix(0, nanos).Before(cutoff)
}

func boolField(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
