// Package results: Redis Store for persistent evaluation history.
package results

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisKey = "worldwise:results:evals"

// RedisStore implements Store using Redis (sorted set by timestamp, value =
// JSON EvalRecord).
type RedisStore struct {
	client redis.UniversalClient
	key    string
}

// NewRedisStore creates a store that uses the given Redis client.
func NewRedisStore(client redis.UniversalClient, key string) *RedisStore {
	if key == "" {
		key = defaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

type redisRecord struct {
	Model         string  `json:"model"`
	Culture       string  `json:"culture"`
	Scenario      string  `json:"scenario"`
	Trial         int     `json:"trial"`
	Alignment     float64 `json:"alignment"`
	Stereotype    float64 `json:"stereotype"`
	LowConfidence bool    `json:"low_confidence"`
	At            string  `json:"at"` // RFC3339
}

// Record implements Store.
func (r *RedisStore) Record(ctx context.Context, rec EvalRecord) error {
	if rec.At.IsZero() {
		rec.At = time.Now()
	}
	score := float64(rec.At.UnixNano()) / 1e9
	payload := redisRecord{
		Model:         rec.Model,
		Culture:       rec.Culture,
		Scenario:      rec.Scenario,
		Trial:         rec.Trial,
		Alignment:     rec.Alignment,
		Stereotype:    rec.Stereotype,
		LowConfidence: rec.LowConfidence,
		At:            rec.At.Format(time.RFC3339),
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return r.client.ZAdd(ctx, r.key, redis.Z{Score: score, Member: string(raw)}).Err()
}

// Query implements Store by reading from the sorted set and aggregating in
// memory, same logic as MemoryStore.
func (r *RedisStore) Query(ctx context.Context, q Query) ([]Aggregate, error) {
	min, max := "-inf", "+inf"
	if !q.From.IsZero() {
		min = strconv.FormatFloat(float64(q.From.UnixNano())/1e9, 'f', -1, 64)
	}
	if !q.To.IsZero() {
		max = strconv.FormatFloat(float64(q.To.UnixNano())/1e9, 'f', -1, 64)
	}
	const batch = 10000
	var records []EvalRecord
	for offset := int64(0); ; offset += batch {
		vals, err := r.client.ZRangeByScoreWithScores(ctx, r.key, &redis.ZRangeBy{
			Min: min, Max: max, Offset: offset, Count: batch,
		}).Result()
		if err != nil {
			return nil, err
		}
		for _, z := range vals {
			mem, ok := z.Member.(string)
			if !ok {
				continue
			}
			var rr redisRecord
			if err := json.Unmarshal([]byte(mem), &rr); err != nil {
				continue
			}
			at, _ := time.Parse(time.RFC3339, rr.At)
			records = append(records, EvalRecord{
				Model:         rr.Model,
				Culture:       rr.Culture,
				Scenario:      rr.Scenario,
				Trial:         rr.Trial,
				Alignment:     rr.Alignment,
				Stereotype:    rr.Stereotype,
				LowConfidence: rr.LowConfidence,
				At:            at,
			})
		}
		if len(vals) < batch {
			break
		}
	}
	return aggregateRecords(records, q), nil
}
