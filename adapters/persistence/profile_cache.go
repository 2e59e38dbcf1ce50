package persistence

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/career-path/internal/domain/profile"
)

type redisProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisProfileCache stores gzip-compressed JSON snapshots that expire after ttl.
func NewRedisProfileCache(client *redis.Client, ttl time.Duration) profile.Cache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &redisProfileCache{client: client, ttl: ttl}
}

// setIfNewer replaces the snapshot unless the stored one carries a higher version.
// KEYS[1] profile key; ARGV[1] version, ARGV[2] payload, ARGV[3] ttl in ms.
var setIfNewer = redis.NewScript(`
local current = redis.call('HGET', KEYS[1], 'version')
if current and tonumber(current) > tonumber(ARGV[1]) then
	return 0
end
redis.call('HSET', KEYS[1], 'version', ARGV[1], 'data', ARGV[2])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return 1
`)

func profileKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("profile:%s", ownerID.String())
}

func (c *redisProfileCache) Get(ctx context.Context, ownerID uuid.UUID) (*profile.UserProfile, error) {
	val, err := c.client.HGet(ctx, profileKey(ownerID), "data").Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	decompressed, err := decompress(val)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	if decompressed == nil {
		return nil, nil
	}

	p := profile.NewUserProfile(ownerID)
	if err := json.Unmarshal(decompressed, p); err != nil {
		return nil, err
	}
	p.Normalize()
	return p, nil
}

func (c *redisProfileCache) Set(ctx context.Context, p *profile.UserProfile) error {
	val, err := json.Marshal(p)
	if err != nil {
		return err
	}

	compressed, err := compress(val)
	if err != nil {
		return fmt.Errorf("failed to compress: %w", err)
	}

	return setIfNewer.Run(ctx, c.client, []string{profileKey(p.OwnerID)}, p.Version, compressed, c.ttl.Milliseconds()).Err()
}

func (c *redisProfileCache) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	return c.client.Del(ctx, profileKey(ownerID)).Err()
}

func compress(data []byte) ([]byte, error) {
	var b bytes.Buffer
	w := gzip.NewWriter(&b)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
