package memory

import (
	"context"
	"sync"

	"github.com/obhl/rinkside/internal/domain/playerstats"
)

type PlayerStatsRepository struct {
	mu    sync.RWMutex
	stats map[string]playerstats.SeasonStats
	order []string
}

func NewPlayerStatsRepository() *PlayerStatsRepository {
	return &PlayerStatsRepository{stats: make(map[string]playerstats.SeasonStats)}
}

func (r *PlayerStatsRepository) GetByPlayer(_ context.Context, playerID string) (playerstats.SeasonStats, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats, ok := r.stats[playerID]
	return stats, ok, nil
}

func (r *PlayerStatsRepository) List(_ context.Context) ([]playerstats.SeasonStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]playerstats.SeasonStats, 0, len(r.order))
	for _, playerID := range r.order {
		out = append(out, r.stats[playerID])
	}

	return out, nil
}

func (r *PlayerStatsRepository) Upsert(_ context.Context, stats playerstats.SeasonStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.stats[stats.PlayerID]; !ok {
		r.order = append(r.order, stats.PlayerID)
	}
	r.stats[stats.PlayerID] = stats

	return nil
}

func (r *PlayerStatsRepository) Reset(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stats = make(map[string]playerstats.SeasonStats)
	r.order = nil

	return nil
}
