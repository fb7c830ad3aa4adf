package statistics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/brewlogic/BrewLogic/app/models"
	"github.com/brewlogic/BrewLogic/internal/pkg/cache"
	"github.com/brewlogic/BrewLogic/internal/pkg/metrics/counter"
)

const (
	CacheKeyDashboard = "statistics:dashboard"
	CacheExpiration   = 5 * time.Minute
)

// Dashboard holds the admin overview totals. Amounts are in rupiah.
type Dashboard struct {
	TotalUsers     int64          `json:"total_users"`
	ActiveMembers  int64          `json:"active_members"`
	PendingMembers int64          `json:"pending_members"`
	Revenue        int64          `json:"revenue"`
	PendingAmount  int64          `json:"pending_amount"`
	Recipes        *counter.Usage `json:"recipes,omitempty"`
	GeneratedAt    time.Time      `json:"generated_at"`
}

type UserCounter interface {
	Count() (int64, error)
	CountActiveMembers(now time.Time) (int64, error)
	CountPendingMembers() (int64, error)
}

type TransactionSummer interface {
	SumAmountByStatus(statuses []string) (int64, error)
}

// UsageReader reports recipe generation counts.
type UsageReader interface {
	Usage(ctx context.Context) (*counter.Usage, error)
}

// Cache is the subset of cache.Store used for the dashboard snapshot.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}

type Service struct {
	users UserCounter
	txs   TransactionSummer
	cache Cache
	usage UsageReader
	now   func() time.Time
}

func NewService(users UserCounter, txs TransactionSummer, c Cache) *Service {
	return &Service{users: users, txs: txs, cache: c, now: time.Now}
}

// WithUsage adds recipe generation counts to the dashboard.
func (s *Service) WithUsage(u UsageReader) *Service {
	s.usage = u
	return s
}

// GetDashboard returns the cached snapshot or computes a fresh one. Cache
// failures only cost a recomputation.
func (s *Service) GetDashboard(ctx context.Context) (*Dashboard, error) {
	if s.cache != nil {
		val, err := s.cache.Get(ctx, CacheKeyDashboard)
		if err == nil {
			var d Dashboard
			if jerr := json.Unmarshal([]byte(val), &d); jerr == nil {
				return &d, nil
			}
		} else if !cache.IsMiss(err) {
			log.Warnf("[Statistics] cache read failed: %v", err)
		}
	}

	d, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		raw, _ := json.Marshal(d)
		if err := s.cache.Set(ctx, CacheKeyDashboard, string(raw), CacheExpiration); err != nil {
			log.Warnf("[Statistics] cache write failed: %v", err)
		}
	}
	return d, nil
}

// Invalidate drops the snapshot after a change that moves the totals.
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, CacheKeyDashboard); err != nil {
		log.Warnf("[Statistics] cache invalidation failed: %v", err)
	}
}

func (s *Service) compute(ctx context.Context) (*Dashboard, error) {
	now := s.now()
	d := &Dashboard{GeneratedAt: now}
	var err error

	if d.TotalUsers, err = s.users.Count(); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if d.ActiveMembers, err = s.users.CountActiveMembers(now); err != nil {
		return nil, fmt.Errorf("count active members: %w", err)
	}
	if d.PendingMembers, err = s.users.CountPendingMembers(); err != nil {
		return nil, fmt.Errorf("count pending members: %w", err)
	}
	if d.Revenue, err = s.txs.SumAmountByStatus(models.PaidStatuses); err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}
	if d.PendingAmount, err = s.txs.SumAmountByStatus(models.OpenStatuses); err != nil {
		return nil, fmt.Errorf("sum pending: %w", err)
	}
	if s.usage != nil {
		// Counters live in Redis; the totals above stay useful without them.
		if u, uerr := s.usage.Usage(ctx); uerr != nil {
			log.Warnf("[Statistics] recipe usage unavailable: %v", uerr)
		} else {
			d.Recipes = u
		}
	}

	log.Infof("[Statistics] dashboard refreshed: users=%d active=%d pending=%d revenue=%d",
		d.TotalUsers, d.ActiveMembers, d.PendingMembers, d.Revenue)
	return d, nil
}
