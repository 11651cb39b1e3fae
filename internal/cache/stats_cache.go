package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	dom "taskboard/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	keyGeneration = "tasks:gen"
	keyStats      = "tasks:stats:"
)

// StatsCache caches task stats in Redis. Entries are keyed by a global generation
// counter, so bumping the generation on any task write invalidates every user's entries
// at once; stale generations simply expire.
type StatsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStatsCache returns a new StatsCache.
func NewStatsCache(rdb *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{rdb: rdb, ttl: ttl}
}

// StatsKey identifies one stats request.
type StatsKey struct {
	UserID    string
	ProjectID string
	Days      int
}

func (k StatsKey) String() string {
	return k.UserID + ":" + k.ProjectID + ":" + strconv.Itoa(k.Days)
}

func (c *StatsCache) generation(ctx context.Context) (int64, error) {
	n, err := c.rdb.Get(ctx, keyGeneration).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

func entryKey(gen int64, k StatsKey) string {
	return keyStats + strconv.FormatInt(gen, 10) + ":" + k.String()
}

// Get returns cached stats for k, or ok=false on a miss. gen is the generation the
// lookup resolved and is the one to hand back to Set after loading.
func (c *StatsCache) Get(ctx context.Context, k StatsKey) (st dom.TaskStats, gen int64, ok bool, err error) {
	gen, err = c.generation(ctx)
	if err != nil {
		return dom.TaskStats{}, 0, false, err
	}
	b, err := c.rdb.Get(ctx, entryKey(gen, k)).Bytes()
	if errors.Is(err, redis.Nil) {
		return dom.TaskStats{}, gen, false, nil
	}
	if err != nil {
		return dom.TaskStats{}, gen, false, err
	}
	st, err = decodeStats(b)
	if err != nil {
		return dom.TaskStats{}, gen, false, err
	}
	return st, gen, true, nil
}

// Set stores stats under generation gen. Stats loaded before an Invalidate land in a
// generation nobody reads anymore.
func (c *StatsCache) Set(ctx context.Context, k StatsKey, gen int64, st dom.TaskStats) error {
	b, err := encodeStats(st)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, entryKey(gen, k), b, c.ttl).Err()
}

// Invalidate bumps the generation (cache invalidation on write).
func (c *StatsCache) Invalidate(ctx context.Context) error {
	return c.rdb.Incr(ctx, keyGeneration).Err()
}

type cachedStats struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"byStatus"`
	ByPriority map[string]int `json:"byPriority"`
	Overdue    int            `json:"overdue"`
	Completed  int            `json:"completed"`
	Upcoming   int            `json:"upcoming"`
	AvgDays    float64        `json:"avgDays"`
	Rate       float64        `json:"rate"`
}

func encodeStats(st dom.TaskStats) ([]byte, error) {
	c := cachedStats{
		Total:      st.TotalTasks,
		ByStatus:   make(map[string]int, len(st.ByStatus)),
		ByPriority: make(map[string]int, len(st.ByPriority)),
		Overdue:    st.OverdueTasks,
		Completed:  st.CompletedInPeriod,
		Upcoming:   st.UpcomingTasks,
		AvgDays:    st.AverageCompletionDays,
		Rate:       st.CompletionRate,
	}
	for k, v := range st.ByStatus {
		c.ByStatus[string(k)] = v
	}
	for k, v := range st.ByPriority {
		c.ByPriority[string(k)] = v
	}
	return json.Marshal(c)
}

func decodeStats(b []byte) (dom.TaskStats, error) {
	var c cachedStats
	if err := json.Unmarshal(b, &c); err != nil {
		return dom.TaskStats{}, err
	}
	st := dom.TaskStats{
		TotalTasks:            c.Total,
		ByStatus:              make(map[dom.Status]int, len(c.ByStatus)),
		ByPriority:            make(map[dom.Priority]int, len(c.ByPriority)),
		OverdueTasks:          c.Overdue,
		CompletedInPeriod:     c.Completed,
		UpcomingTasks:         c.Upcoming,
		AverageCompletionDays: c.AvgDays,
		CompletionRate:        c.Rate,
	}
	for k, v := range c.ByStatus {
		st.ByStatus[dom.Status(k)] = v
	}
	for k, v := range c.ByPriority {
		st.ByPriority[dom.Priority(k)] = v
	}
	return st, nil
}
