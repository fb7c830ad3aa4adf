package counter

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	recipesDailyKey   = "recipe:counters:daily"
	recipesBrewersKey = "recipe:counters:brewers"
	dayLayout         = "2006-01-02"
)

// Usage is the recipe generation tally shown on the admin dashboard.
type Usage struct {
	Today    int64            `json:"today"`
	Total    int64            `json:"total"`
	ByBrewer map[string]int64 `json:"by_brewer"`
	LastDays map[string]int64 `json:"last_days"`
}

// Counter keeps recipe generation counts in two Redis hashes: one keyed by
// day, one keyed by brewer.
type Counter struct {
	rdb  redis.Cmdable
	now  func() time.Time
	days int
}

func New(rdb redis.Cmdable) *Counter {
	return &Counter{rdb: rdb, now: time.Now, days: 7}
}

// AddRecipe records one successful generation for the brewer.
func (c *Counter) AddRecipe(ctx context.Context, brewer string) error {
	day := c.now().UTC().Format(dayLayout)
	brewer = strings.TrimSpace(brewer)
	if brewer == "" {
		brewer = "unknown"
	}
	_, err := c.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HIncrBy(ctx, recipesDailyKey, day, 1)
		p.HIncrBy(ctx, recipesBrewersKey, brewer, 1)
		return nil
	})
	return err
}

// Usage reads both hashes. Days older than the window are left out of
// LastDays but still count toward Total.
func (c *Counter) Usage(ctx context.Context) (*Usage, error) {
	daily, err := c.rdb.HGetAll(ctx, recipesDailyKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}
	brewers, err := c.rdb.HGetAll(ctx, recipesBrewersKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	now := c.now().UTC()
	today := now.Format(dayLayout)
	cutoff := now.AddDate(0, 0, -(c.days - 1)).Format(dayLayout)

	u := &Usage{ByBrewer: map[string]int64{}, LastDays: map[string]int64{}}
	for day, raw := range daily {
		n, perr := strconv.ParseInt(raw, 10, 64)
		if perr != nil {
			continue
		}
		u.Total += n
		if day == today {
			u.Today = n
		}
		// ISO dates compare lexically.
		if day >= cutoff {
			u.LastDays[day] = n
		}
	}
	for brewer, raw := range brewers {
		if n, perr := strconv.ParseInt(raw, 10, 64); perr == nil {
			u.ByBrewer[brewer] = n
		}
	}
	return u, nil
}
