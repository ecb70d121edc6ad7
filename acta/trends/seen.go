package trends

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	"uqbar/types"
)

const (
	seenKey       = "trends:bloom"
	seenTTL       = 72 * time.Hour
	seenCapacity  = 100000
	seenErrorRate = 0.001
	redisTimeout  = 5 * time.Second
)

// SeenFilter is a RedisBloom-backed filter that drops trends already
// processed by a recent run. Optional: a nil *SeenFilter is a no-op.
type SeenFilter struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewSeenFilter connects to Redis and reserves the bloom filter key if it
// does not exist yet. BF.RESERVE failures are non-fatal; BF.ADD can
// auto-create the filter.
func NewSeenFilter(addr, password string, db int) (*SeenFilter, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}

	sf := &SeenFilter{client: client, key: seenKey, ttl: seenTTL}

	exists, err := client.Exists(ctx, sf.key).Result()
	if err == nil && exists == 0 {
		reserveErr := client.Do(ctx, "BF.RESERVE", sf.key,
			fmt.Sprintf("%f", seenErrorRate), seenCapacity).Err()
		if reserveErr != nil {
			log.Warn("bloom reserve failed, relying on BF.ADD auto-create", "err", reserveErr)
		}
	}

	return sf, nil
}

// Close releases the Redis connection.
func (sf *SeenFilter) Close() error {
	if sf == nil {
		return nil
	}
	return sf.client.Close()
}

// Filter returns the trends whose titles have not been seen, and records
// the kept titles. Redis failures degrade to keeping everything.
func (sf *SeenFilter) Filter(items []*types.Trend) []*types.Trend {
	if sf == nil {
		return items
	}

	kept := make([]*types.Trend, 0, len(items))
	for _, trend := range items {
		hash := titleHash(trend.Title)

		seen, err := sf.exists(hash)
		if err != nil {
			log.Warn("bloom check failed, keeping trend", "title", trend.Title, "err", err)
			kept = append(kept, trend)
			continue
		}
		if seen {
			log.Info("skipping seen trend", "title", trend.Title)
			continue
		}

		if err := sf.add(hash); err != nil {
			log.Warn("bloom add failed", "title", trend.Title, "err", err)
		}
		kept = append(kept, trend)
	}
	return kept
}

func (sf *SeenFilter) exists(hash string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	res, err := sf.client.Do(ctx, "BF.EXISTS", sf.key, hash).Result()
	if err != nil {
		return false, err
	}
	switch v := res.(type) {
	case int64:
		return v == 1, nil
	case string:
		return v == "1", nil
	default:
		return false, fmt.Errorf("unexpected BF.EXISTS response type %T", res)
	}
}

func (sf *SeenFilter) add(hash string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	if err := sf.client.Do(ctx, "BF.ADD", sf.key, hash).Err(); err != nil {
		return err
	}
	// Sliding expiry: the filter stays alive for ttl past the last insert.
	return sf.client.Expire(ctx, sf.key, sf.ttl).Err()
}

// titleHash normalizes a trend title (lowercase, collapsed whitespace)
// and returns its SHA-256 hex digest.
func titleHash(title string) string {
	norm := strings.Join(strings.Fields(strings.ToLower(title)), " ")
	sum := sha256.Sum256([]byte(norm))
	return hex.EncodeToString(sum[:])
}
