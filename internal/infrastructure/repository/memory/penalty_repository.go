package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/obhl/rinkside/internal/domain/penalty"
)

type PenaltyRepository struct {
	mu   sync.RWMutex
	rows []penalty.Tracking
}

func NewPenaltyRepository() *PenaltyRepository {
	return &PenaltyRepository{}
}

func (r *PenaltyRepository) GetByPlayerAndGame(_ context.Context, playerID, gameID string) (penalty.Tracking, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, row := range r.rows {
		if row.PlayerID == playerID && row.GameID == gameID {
			return row, true, nil
		}
	}

	return penalty.Tracking{}, false, nil
}

func (r *PenaltyRepository) ListByPlayer(_ context.Context, playerID string) ([]penalty.Tracking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []penalty.Tracking
	for _, row := range r.rows {
		if row.PlayerID == playerID {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *PenaltyRepository) Upsert(_ context.Context, t penalty.Tracking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.rows {
		if r.rows[idx].PlayerID == t.PlayerID && r.rows[idx].GameID == t.GameID {
			r.rows[idx] = t
			return nil
		}
	}
	r.rows = append(r.rows, t)

	return nil
}
