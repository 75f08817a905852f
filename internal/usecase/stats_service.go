package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/obhl/rinkside/internal/domain/game"
	"github.com/obhl/rinkside/internal/domain/playerstats"
	"github.com/obhl/rinkside/internal/platform/logging"
)

const (
	statsUpsertConcurrency = 4
	recalcPoolSize         = 8
)

// StatsService maintains per-player season lines. Games feed in one at
// a time at finalize, with a full recalculation available when old
// scoresheets get edited.
type StatsService struct {
	statsRepo playerstats.Repository
	gameRepo  game.Repository
	eventRepo game.EventRepository
	logger    *logging.Logger
}

func NewStatsService(statsRepo playerstats.Repository, gameRepo game.Repository, eventRepo game.EventRepository, logger *logging.Logger) *StatsService {
	if logger == nil {
		logger = logging.Default()
	}

	return &StatsService{
		statsRepo: statsRepo,
		gameRepo:  gameRepo,
		eventRepo: eventRepo,
		logger:    logger,
	}
}

// ApplyGame folds one finalized game's events into season totals.
func (s *StatsService) ApplyGame(ctx context.Context, events []game.Event) error {
	ctx, span := startUsecaseSpan(ctx, "StatsService.ApplyGame")
	defer span.End()

	lines := collectGameLines(events)
	if len(lines) == 0 {
		return nil
	}

	p := pool.New().WithErrors().WithMaxGoroutines(statsUpsertConcurrency)
	for _, line := range lines {
		line := line
		p.Go(func() error {
			return s.addLine(ctx, line)
		})
	}
	if err := p.Wait(); err != nil {
		return fmt.Errorf("apply game stats: %w", err)
	}

	return nil
}

// List returns every season line.
func (s *StatsService) List(ctx context.Context) ([]playerstats.SeasonStats, error) {
	items, err := s.statsRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list season stats: %w", err)
	}
	return items, nil
}

// GetByPlayer returns one player's season line, zeroed when the player
// has not appeared yet.
func (s *StatsService) GetByPlayer(ctx context.Context, playerID string) (playerstats.SeasonStats, error) {
	if playerID == "" {
		return playerstats.SeasonStats{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	stats, exists, err := s.statsRepo.GetByPlayer(ctx, playerID)
	if err != nil {
		return playerstats.SeasonStats{}, fmt.Errorf("get season stats: %w", err)
	}
	if !exists {
		return playerstats.SeasonStats{PlayerID: playerID}, nil
	}

	return stats, nil
}

// RecalculateSeason rebuilds every season line from the completed games
// on file. Per-game event loads fan out over a worker pool, then the
// merged lines are written in one pass.
func (s *StatsService) RecalculateSeason(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "StatsService.RecalculateSeason")
	defer span.End()

	games, err := s.gameRepo.ListByStatus(ctx, game.StatusCompleted)
	if err != nil {
		return fmt.Errorf("list completed games: %w", err)
	}

	workers, err := ants.NewPool(recalcPoolSize)
	if err != nil {
		return fmt.Errorf("create recalc pool: %w", err)
	}
	defer workers.Release()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
		totals   = make(map[string]*playerstats.SeasonStats)
	)

	for _, g := range games {
		g := g
		wg.Add(1)
		submitErr := workers.Submit(func() {
			defer wg.Done()

			events, loadErr := s.eventRepo.ListByGame(ctx, g.ID)

			mu.Lock()
			defer mu.Unlock()
			if loadErr != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("list events for game %s: %w", g.ID, loadErr)
				}
				return
			}
			for playerID, line := range collectGameLines(events) {
				stats, ok := totals[playerID]
				if !ok {
					stats = &playerstats.SeasonStats{PlayerID: playerID}
					totals[playerID] = stats
				}
				stats.Add(line)
			}
		})
		if submitErr != nil {
			wg.Done()
			return fmt.Errorf("submit recalc job: %w", submitErr)
		}
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}

	if err := s.statsRepo.Reset(ctx); err != nil {
		return fmt.Errorf("reset season stats: %w", err)
	}
	for _, stats := range totals {
		if err := s.statsRepo.Upsert(ctx, *stats); err != nil {
			return fmt.Errorf("save season stats: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "season stats recalculated",
		"games", len(games),
		"players", len(totals),
	)

	return nil
}

func (s *StatsService) addLine(ctx context.Context, line playerstats.GameLine) error {
	stats, exists, err := s.statsRepo.GetByPlayer(ctx, line.PlayerID)
	if err != nil {
		return fmt.Errorf("get season stats: %w", err)
	}
	if !exists {
		stats = playerstats.SeasonStats{PlayerID: line.PlayerID}
	}

	stats.Add(line)
	if err := s.statsRepo.Upsert(ctx, stats); err != nil {
		return fmt.Errorf("save season stats: %w", err)
	}

	return nil
}

// collectGameLines reduces one game's events to per-player lines. The
// scorer gets a goal, each credited assist an assist, and penalty
// minutes accumulate straight off the events.
func collectGameLines(events []game.Event) map[string]playerstats.GameLine {
	lines := make(map[string]playerstats.GameLine)

	touch := func(playerID string) playerstats.GameLine {
		return lines[playerID]
	}

	for _, e := range events {
		switch e.Type {
		case game.EventGoal:
			line := touch(e.PlayerID)
			line.PlayerID = e.PlayerID
			line.Goals++
			lines[e.PlayerID] = line

			for _, assist := range []string{e.Assist1PlayerID, e.Assist2PlayerID} {
				if assist == "" {
					continue
				}
				line := touch(assist)
				line.PlayerID = assist
				line.Assists++
				lines[assist] = line
			}
		case game.EventPenalty:
			line := touch(e.PlayerID)
			line.PlayerID = e.PlayerID
			line.PenaltyMinutes += e.PenaltyMinutes
			lines[e.PlayerID] = line
		}
	}

	return lines
}
