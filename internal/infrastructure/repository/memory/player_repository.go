package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/obhl/rinkside/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players []player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	return &PlayerRepository{players: append([]player.Player(nil), players...)}
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.players))
	out = append(out, r.players...)

	return out, nil
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []player.Player
	for _, item := range r.players {
		if item.TeamID == teamID {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.players {
		if item.ID == playerID {
			return item, true, nil
		}
	}

	return player.Player{}, false, nil
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.players {
		if item.ID == p.ID {
			return fmt.Errorf("player %s already exists", p.ID)
		}
	}
	r.players = append(r.players, p)

	return nil
}

func (r *PlayerRepository) Update(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.players {
		if r.players[idx].ID == p.ID {
			r.players[idx] = p
			return nil
		}
	}

	return fmt.Errorf("player %s not found", p.ID)
}
