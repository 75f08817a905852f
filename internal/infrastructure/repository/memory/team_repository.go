package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/obhl/rinkside/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	teams []team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	return &TeamRepository{teams: append([]team.Team(nil), teams...)}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.teams))
	out = append(out, r.teams...)

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.teams {
		if item.ID == teamID {
			return item, true, nil
		}
	}

	return team.Team{}, false, nil
}

func (r *TeamRepository) Create(_ context.Context, t team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.teams {
		if item.ID == t.ID {
			return fmt.Errorf("team %s already exists", t.ID)
		}
	}
	r.teams = append(r.teams, t)

	return nil
}

func (r *TeamRepository) Update(_ context.Context, t team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.teams {
		if r.teams[idx].ID == t.ID {
			r.teams[idx] = t
			return nil
		}
	}

	return fmt.Errorf("team %s not found", t.ID)
}
