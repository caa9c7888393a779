package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Client is the part of go-redis the save slot repository needs. Slots are
// written in a transaction pipeline and read with plain commands.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	HMGet(ctx context.Context, key string, fields ...string) *redis.SliceCmd
	ZRevRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	TxPipeline() redis.Pipeliner
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

var _ Client = (*redis.Client)(nil)
