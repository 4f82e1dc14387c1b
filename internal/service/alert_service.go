package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/dto"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// alertCacheKey holds the memoized alert list in Redis. The TTL is the
// bounded-staleness contract: callers must tolerate alerts up to the
// configured TTL old.
const alertCacheKey = "alerts:current"

// invalidateAlertCache drops the memoized alert list after a mutation. Best
// effort: the TTL is the staleness contract, so a failed delete is harmless.
// Every mutation path calls this, including usage recording.
func invalidateAlertCache(ctx context.Context, rdb *redis.Client) {
	if rdb != nil {
		rdb.Del(ctx, alertCacheKey)
	}
}

// AlertService derives low-stock and expiration alerts from the current
// reagent rows. Evaluation is stateless; Current memoizes the result.
type AlertService interface {
	// Current returns the alert list, served from cache when fresh enough.
	Current(ctx context.Context) (*dto.AlertListResponse, error)
	// Evaluate always scans the store and recomputes.
	Evaluate(ctx context.Context) (*dto.AlertListResponse, error)
	Overview(ctx context.Context) (*dto.OverviewResponse, error)
}

type alertService struct {
	repo repository.ReagentRepository
	rdb  *redis.Client
	ttl  time.Duration
}

func NewAlertService(repo repository.ReagentRepository, rdb *redis.Client, ttl time.Duration) AlertService {
	return &alertService{repo: repo, rdb: rdb, ttl: ttl}
}

func (s *alertService) Current(ctx context.Context) (*dto.AlertListResponse, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, alertCacheKey).Bytes(); err == nil {
			var cached dto.AlertListResponse
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	fresh, err := s.Evaluate(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(fresh); err == nil {
			if err := s.rdb.Set(ctx, alertCacheKey, raw, s.ttl).Err(); err != nil {
				log.Warn().Err(err).Msg("alert cache write failed")
			}
		}
	}
	return fresh, nil
}

func (s *alertService) Evaluate(ctx context.Context) (*dto.AlertListResponse, error) {
	reagents, err := s.repo.List(ctx, dto.ReagentFilter{})
	if err != nil {
		return nil, err
	}

	today := todayDate()
	alerts := make([]dto.AlertResponse, 0)
	for i := range reagents {
		r := &reagents[i]
		// Low stock is inclusive: quantity == threshold flags.
		if r.Quantity.Cmp(r.LowStockThreshold) <= 0 {
			alerts = append(alerts, dto.AlertResponse{
				Kind:      dto.AlertLowStock,
				ReagentID: r.ID.String(),
				Message:   fmt.Sprintf("Low Stock: %s (%s %s)", r.Name, r.Quantity.String(), r.Unit),
			})
		}
		// Expired is strict: a reagent expiring today is not yet expired.
		if r.ExpirationDate != nil && r.ExpirationDate.Before(today) {
			alerts = append(alerts, dto.AlertResponse{
				Kind:      dto.AlertExpired,
				ReagentID: r.ID.String(),
				Message:   fmt.Sprintf("Expired: %s (%s)", r.Name, r.ExpirationDate.Format(dateLayout)),
			})
		}
	}

	return &dto.AlertListResponse{
		Alerts:      alerts,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (s *alertService) Overview(ctx context.Context) (*dto.OverviewResponse, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	fresh, err := s.Evaluate(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.OverviewResponse{TotalReagents: total}
	for _, a := range fresh.Alerts {
		switch a.Kind {
		case dto.AlertLowStock:
			resp.LowStock++
		case dto.AlertExpired:
			resp.Expired++
		}
	}
	return resp, nil
}
