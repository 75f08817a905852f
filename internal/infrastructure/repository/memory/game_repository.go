package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/obhl/rinkside/internal/domain/game"
)

type GameRepository struct {
	mu    sync.RWMutex
	games []game.Game
}

func NewGameRepository(games []game.Game) *GameRepository {
	return &GameRepository{games: append([]game.Game(nil), games...)}
}

func (r *GameRepository) List(_ context.Context) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0, len(r.games))
	out = append(out, r.games...)

	return out, nil
}

func (r *GameRepository) ListByStatus(_ context.Context, status string) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []game.Game
	for _, item := range r.games {
		if item.Status == status {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *GameRepository) GetByID(_ context.Context, gameID string) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.games {
		if item.ID == gameID {
			return item, true, nil
		}
	}

	return game.Game{}, false, nil
}

func (r *GameRepository) Create(_ context.Context, g game.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.games {
		if item.ID == g.ID {
			return fmt.Errorf("game %s already exists", g.ID)
		}
	}
	r.games = append(r.games, g)

	return nil
}

func (r *GameRepository) Update(_ context.Context, g game.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.games {
		if r.games[idx].ID == g.ID {
			r.games[idx] = g
			return nil
		}
	}

	return fmt.Errorf("game %s not found", g.ID)
}

// EventRepository keeps scoresheet events in insertion order per game.
type EventRepository struct {
	mu     sync.RWMutex
	events map[string][]game.Event
}

func NewEventRepository() *EventRepository {
	return &EventRepository{events: make(map[string][]game.Event)}
}

func (r *EventRepository) ListByGame(_ context.Context, gameID string) ([]game.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := r.events[gameID]
	out := make([]game.Event, 0, len(events))
	out = append(out, events...)

	return out, nil
}

func (r *EventRepository) Insert(_ context.Context, e game.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.events[e.GameID] {
		if item.ID == e.ID {
			return fmt.Errorf("event %s already exists", e.ID)
		}
	}
	r.events[e.GameID] = append(r.events[e.GameID], e)

	return nil
}

func (r *EventRepository) Update(_ context.Context, e game.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := r.events[e.GameID]
	for idx := range events {
		if events[idx].ID == e.ID {
			events[idx] = e
			return nil
		}
	}

	return fmt.Errorf("event %s not found", e.ID)
}

func (r *EventRepository) Delete(_ context.Context, gameID, eventID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := r.events[gameID]
	for idx := range events {
		if events[idx].ID == eventID {
			r.events[gameID] = append(events[:idx], events[idx+1:]...)
			return nil
		}
	}

	return fmt.Errorf("event %s not found", eventID)
}
