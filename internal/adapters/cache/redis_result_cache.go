package cache

import (
	"context"
	"delivery-hub-service/internal/domain"
	"delivery-hub-service/internal/platform/metrics"
	"delivery-hub-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
)

// OpenRedis returns a client for addr, or nil when addr is empty.
func OpenRedis(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
}

// RedisResultCache stores scenario results as JSON under a TTL.
// A nil client turns every call into a miss.
type RedisResultCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisResultCache(client *redis.Client, ttl time.Duration) *RedisResultCache {
	return &RedisResultCache{Client: client, TTL: ttl}
}

type cachedPlacement struct {
	RunID       string       `json:"run_id"`
	Strategy    string       `json:"strategy"`
	Hubs        [][2]float64 `json:"hubs"`
	Score       *float64     `json:"score"`
	TotalMiles  float64      `json:"total_miles"`
	Evaluations int64        `json:"evaluations"`
	Iterations  int          `json:"iterations"`
	Converged   bool         `json:"converged"`
	DurationNS  int64        `json:"duration_ns"`
	CreatedAt   time.Time    `json:"created_at"`
}

func (c *RedisResultCache) Get(ctx context.Context, key string) (_ []domain.HubPlacement, found bool, err error) {
	defer obs.Time(ctx, "results.cache.Get")(&err)

	if c == nil || c.Client == nil {
		return nil, false, nil
	}

	raw, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.ResultCache.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		metrics.ResultCache.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("get result cache %q: %w", key, err)
	}

	var entries []cachedPlacement
	if err := json.Unmarshal(raw, &entries); err != nil {
		metrics.ResultCache.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("get result cache %q: decode: %w", key, err)
	}

	out := make([]domain.HubPlacement, len(entries))
	for i, e := range entries {
		out[i] = e.placement()
	}

	metrics.ResultCache.WithLabelValues("hit").Inc()
	return out, true, nil
}

func (c *RedisResultCache) Put(ctx context.Context, key string, results []domain.HubPlacement) (err error) {
	defer obs.Time(ctx, "results.cache.Put")(&err)

	if c == nil || c.Client == nil {
		return nil
	}

	entries := make([]cachedPlacement, len(results))
	for i, r := range results {
		entries[i] = newCachedPlacement(r)
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("put result cache %q: encode: %w", key, err)
	}

	if err := c.Client.Set(ctx, key, raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("put result cache %q: %w", key, err)
	}
	return nil
}

func newCachedPlacement(r domain.HubPlacement) cachedPlacement {
	e := cachedPlacement{
		RunID:       r.RunID,
		Strategy:    r.Strategy,
		Hubs:        make([][2]float64, len(r.Hubs)),
		TotalMiles:  r.TotalDistanceMiles,
		Evaluations: r.Evaluations,
		Iterations:  r.Iterations,
		Converged:   r.Converged,
		DurationNS:  int64(r.Duration),
		CreatedAt:   r.CreatedAt,
	}
	for i, h := range r.Hubs {
		e.Hubs[i] = [2]float64{h.Lat, h.Lon}
	}
	// JSON has no infinity; a nil score is a zero-distance layout.
	if !math.IsInf(r.Score, 0) {
		score := r.Score
		e.Score = &score
	}
	return e
}

func (e cachedPlacement) placement() domain.HubPlacement {
	p := domain.HubPlacement{
		RunID:              e.RunID,
		Strategy:           e.Strategy,
		Hubs:               make([]domain.Coordinates, len(e.Hubs)),
		Score:              math.Inf(1),
		TotalDistanceMiles: e.TotalMiles,
		Evaluations:        e.Evaluations,
		Iterations:         e.Iterations,
		Converged:          e.Converged,
		Duration:           time.Duration(e.DurationNS),
		CreatedAt:          e.CreatedAt,
	}
	for i, h := range e.Hubs {
		p.Hubs[i] = domain.Coordinates{Lat: h[0], Lon: h[1]}
	}
	if e.Score != nil {
		p.Score = *e.Score
	}
	return p
}
