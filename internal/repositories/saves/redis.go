package saves

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-director/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-director/internal/redis"
)

const (
	// Key pattern: save:{slot_id}
	slotKeyPrefix = "save:"
	// Sorted set of slot ids scored by save time
	slotIndexKey = "save:index"
	// Hash of slot id to summary JSON
	summaryKey = "save:summaries"
)

// RedisConfig contains configuration for the Redis save repository
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
}

// NewRedis creates a Redis-backed save repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{client: cfg.Client}, nil
}

// redisRecord is the stored form of a slot
type redisRecord struct {
	Summary  Summary         `json:"summary"`
	Document json.RawMessage `json:"document"`
}

func (r *redisRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	if msg := validateSlot(input.Slot); msg != "" {
		return nil, errors.InvalidArgument(msg)
	}
	if !json.Valid(input.Slot.Document) {
		return nil, errors.InvalidArgument("slot document must be JSON")
	}

	data, err := json.Marshal(redisRecord{Summary: input.Slot.Summary, Document: input.Slot.Document})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal save slot")
	}
	summary, err := json.Marshal(input.Slot.Summary)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal save summary")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, slotKeyPrefix+input.Slot.ID, data, 0)
	pipe.ZAdd(ctx, slotIndexKey, redis.Z{
		Score:  float64(input.Slot.SavedAt.UnixMilli()),
		Member: input.Slot.ID,
	})
	pipe.HSet(ctx, summaryKey, input.Slot.ID, summary)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Upstream(err, "failed to store save slot")
	}

	return &PutOutput{Summary: input.Slot.Summary}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSlotIDEmpty)
	}

	result, err := r.client.Get(ctx, slotKeyPrefix+input.ID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errors.NotFoundf("save slot %s not found", input.ID)
		}
		return nil, errors.Upstream(err, "failed to get save slot")
	}

	var rec redisRecord
	if err := json.Unmarshal([]byte(result), &rec); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to unmarshal save slot")
	}

	return &GetOutput{Slot: &Slot{Summary: rec.Summary, Document: []byte(rec.Document)}}, nil
}

func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	ids, err := r.client.ZRevRange(ctx, slotIndexKey, 0, -1).Result()
	if err != nil {
		return nil, errors.Upstream(err, "failed to list save slots")
	}
	if len(ids) == 0 {
		return &ListOutput{Summaries: []Summary{}}, nil
	}

	raw, err := r.client.HMGet(ctx, summaryKey, ids...).Result()
	if err != nil {
		return nil, errors.Upstream(err, "failed to read save summaries")
	}

	out := make([]Summary, 0, len(raw))
	for i, v := range raw {
		s, ok := v.(string)
		if !ok {
			// Index entry without a summary; skip it rather than fail the listing
			continue
		}
		var summary Summary
		if err := json.Unmarshal([]byte(s), &summary); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to unmarshal summary for "+ids[i])
		}
		out = append(out, summary)
	}
	sortSummaries(out)

	return &ListOutput{Summaries: out}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSlotIDEmpty)
	}

	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, slotKeyPrefix+input.ID)
	pipe.ZRem(ctx, slotIndexKey, input.ID)
	pipe.HDel(ctx, summaryKey, input.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Upstream(err, "failed to delete save slot")
	}
	if del.Val() == 0 {
		return nil, errors.NotFoundf("save slot %s not found", input.ID)
	}

	return &DeleteOutput{}, nil
}
