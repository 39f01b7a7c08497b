package utils

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// CacheInvalidator purges cached GET responses after a write so the next
// read reflects ground truth rather than a stale list.
type CacheInvalidator struct{ rdb *redis.Client }

func NewCacheInvalidator(rdb *redis.Client) *CacheInvalidator { return &CacheInvalidator{rdb} }

func (ci *CacheInvalidator) purgePrefix(ctx context.Context, prefix string) {
	iter := ci.rdb.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		_ = ci.rdb.Del(ctx, iter.Val()).Err()
	}
}

func (ci *CacheInvalidator) PurgeEventsList(ctx context.Context) {
	ci.purgePrefix(ctx, "cache:events:list:")
}

// item keys embed a sha1 of the request, so a single event cannot be
// targeted; the whole item namespace goes.
func (ci *CacheInvalidator) PurgeEventItems(ctx context.Context) {
	ci.purgePrefix(ctx, "cache:events:item:")
}

func (ci *CacheInvalidator) PurgePostsList(ctx context.Context) {
	ci.purgePrefix(ctx, "cache:posts:list:")
}
