package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vlatan/media-hub/internal/drivers/rdb"
	"github.com/vlatan/media-hub/internal/models"
)

// Redis key prefix of the cached list.
// The full key carries the current generation.
const listCacheKey = "submissions"

// Redis counter bumped on every write
const generationKey = "submissions:generation"

type bypassKey struct{}

// WithoutCache marks the context so that reads go straight to the store
func WithoutCache(ctx context.Context) context.Context {
	return context.WithValue(ctx, bypassKey{}, true)
}

func cacheBypassed(ctx context.Context) bool {
	bypass, _ := ctx.Value(bypassKey{}).(bool)
	return bypass
}

// Cached keeps the list in Redis.
// Adds and deletes invalidate it.
type Cached struct {
	Store
	rdb *rdb.Service
	ttl time.Duration
}

// NewCached wraps the store with a Redis cached list
func NewCached(s Store, rdb *rdb.Service, ttl time.Duration) *Cached {
	return &Cached{Store: s, rdb: rdb, ttl: ttl}
}

func (c *Cached) List(ctx context.Context) (models.Submissions, error) {
	useCache := !cacheBypassed(ctx)

	key := listCacheKey
	if useCache {
		key = c.listKey(ctx)
	}

	items, err := rdb.GetItems(
		useCache,
		ctx,
		c.rdb,
		key,
		c.ttl,
		func() (models.Submissions, error) {
			return c.Store.List(ctx)
		},
	)

	if err != nil {
		return nil, Classify("list", err)
	}

	return items, nil
}

// listKey returns the cache key of the current generation.
// A list read before a write is stored under the old key and never served again.
func (c *Cached) listKey(ctx context.Context) string {
	if c.rdb == nil {
		return listCacheKey
	}

	generation, err := c.rdb.Client.Get(ctx, generationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		log.Printf("failed to get the '%s' counter; %v", generationKey, err)
	}

	return fmt.Sprintf("%s:%d", listCacheKey, generation)
}

func (c *Cached) Add(ctx context.Context, fields models.SubmissionFields) (string, error) {
	id, err := c.Store.Add(ctx, fields)
	if err != nil {
		return "", err
	}

	c.invalidate(ctx)
	return id, nil
}

func (c *Cached) DeleteByID(ctx context.Context, id string) error {
	if err := c.Store.DeleteByID(ctx, id); err != nil {
		return err
	}

	c.invalidate(ctx)
	return nil
}

// invalidate moves the list to a new generation.
// A failure only leaves the list stale until it expires.
func (c *Cached) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}

	if err := c.rdb.Client.Incr(context.WithoutCancel(ctx), generationKey).Err(); err != nil {
		log.Printf("failed to invalidate the '%s' cache; %v", listCacheKey, err)
	}
}
