package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dailyvote/api/internal/core/domain"
	"github.com/dailyvote/api/internal/core/ports"
)

const (
	candidatesKey       = "cache:candidates"
	generationKey       = "cache:candidates:generation"
	DefaultCandidateTTL = 5 * time.Minute
)

var errStaleGeneration = errors.New("candidate cache generation changed")

type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewClient connects to Redis and pings it once.
func NewClient(ctx context.Context, opts Options) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

type candidateCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCandidateCache(client *redis.Client, ttl time.Duration) ports.CandidateCache {
	if ttl <= 0 {
		ttl = DefaultCandidateTTL
	}
	return &candidateCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *candidateCache) Get(ctx context.Context) ([]domain.Candidate, bool, error) {
	raw, err := c.client.Get(ctx, candidatesKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read candidates: %w", err)
	}

	var candidates []domain.Candidate
	if err := json.Unmarshal(raw, &candidates); err != nil {
		return nil, false, fmt.Errorf("failed to decode candidates: %w", err)
	}
	return candidates, true, nil
}

func (c *candidateCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("failed to read candidate generation: %w", err)
	}
	return gen, nil
}

// Set writes the list under WATCH on the generation key, so an Invalidate
// landing between the check and the write aborts the transaction.
func (c *candidateCache) Set(ctx context.Context, generation int64, candidates []domain.Candidate) (bool, error) {
	raw, err := json.Marshal(candidates)
	if err != nil {
		return false, fmt.Errorf("failed to encode candidates: %w", err)
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, generationKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, candidatesKey, raw, c.ttl)
			return nil
		})
		return err
	}, generationKey)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errStaleGeneration), errors.Is(err, redis.TxFailedErr):
		return false, nil
	default:
		return false, fmt.Errorf("failed to write candidates: %w", err)
	}
}

func (c *candidateCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey)
		pipe.Del(ctx, candidatesKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate candidates: %w", err)
	}
	return nil
}

type nopCache struct{}

// NewNopCache returns a cache that never holds anything, used when Redis is
// not configured.
func NewNopCache() ports.CandidateCache {
	return nopCache{}
}

func (nopCache) Get(context.Context) ([]domain.Candidate, bool, error) { return nil, false, nil }
func (nopCache) Generation(context.Context) (int64, error)             { return 0, nil }
func (nopCache) Set(context.Context, int64, []domain.Candidate) (bool, error) {
	return false, nil
}
func (nopCache) Invalidate(context.Context) error { return nil }
