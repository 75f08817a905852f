package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/obhl/rinkside/internal/domain/penalty"
	"github.com/obhl/rinkside/internal/platform/id"
)

// PenaltyService owns the escalation rules judged against persisted
// penalty tracking: three penalties in one game is an ejection, four
// across the current and previous game is an ejection plus a one game
// suspension.
type PenaltyService struct {
	trackingRepo penalty.Repository
	idGen        id.Generator
	now          func() time.Time
}

func NewPenaltyService(trackingRepo penalty.Repository, idGen id.Generator) *PenaltyService {
	return &PenaltyService{
		trackingRepo: trackingRepo,
		idGen:        idGen,
		now:          time.Now,
	}
}

// ValidatePenalty counts the incoming penalty and rules on escalation.
// The tracking row is updated as a side effect, so each call represents
// exactly one recorded penalty.
func (s *PenaltyService) ValidatePenalty(ctx context.Context, playerID, gameID string) (penalty.Ruling, error) {
	ctx, span := startUsecaseSpan(ctx, "PenaltyService.ValidatePenalty")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	gameID = strings.TrimSpace(gameID)
	if playerID == "" || gameID == "" {
		return penalty.Ruling{}, fmt.Errorf("%w: player id and game id are required", ErrInvalidInput)
	}

	tracking, exists, err := s.trackingRepo.GetByPlayerAndGame(ctx, playerID, gameID)
	if err != nil {
		return penalty.Ruling{}, fmt.Errorf("get penalty tracking: %w", err)
	}
	if !exists {
		newID, idErr := s.idGen.NewID()
		if idErr != nil {
			return penalty.Ruling{}, fmt.Errorf("generate tracking id: %w", idErr)
		}
		tracking = penalty.Tracking{
			ID:        newID,
			PlayerID:  playerID,
			GameID:    gameID,
			CreatedAt: s.now(),
		}
	}

	tracking.PenaltyCount++
	tracking.UpdatedAt = s.now()

	if tracking.PenaltyCount >= penalty.EjectionThreshold {
		tracking.Ejected = true
		if err := s.trackingRepo.Upsert(ctx, tracking); err != nil {
			return penalty.Ruling{}, fmt.Errorf("save penalty tracking: %w", err)
		}

		return penalty.Ruling{
			Ejected:      true,
			PenaltyCount: tracking.PenaltyCount,
			Message:      "EJECTION: Player has received 3 penalties in this game and must be ejected immediately.",
			WarningType:  penalty.WarningEjection,
		}, nil
	}

	previous, err := s.previousGameTracking(ctx, playerID, gameID)
	if err != nil {
		return penalty.Ruling{}, err
	}

	if previous != nil && tracking.PenaltyCount+previous.PenaltyCount >= penalty.SuspensionThreshold {
		tracking.Ejected = true
		tracking.SuspendedNextGame = true
		if err := s.trackingRepo.Upsert(ctx, tracking); err != nil {
			return penalty.Ruling{}, fmt.Errorf("save penalty tracking: %w", err)
		}

		total := tracking.PenaltyCount + previous.PenaltyCount
		return penalty.Ruling{
			Ejected:      true,
			Suspended:    true,
			PenaltyCount: tracking.PenaltyCount,
			Message: fmt.Sprintf(
				"EJECTION + SUSPENSION: Player has %d penalties in this game and %d in the previous game (total: %d). Player must be ejected from this game AND is suspended for the next game.",
				tracking.PenaltyCount, previous.PenaltyCount, total),
			WarningType: penalty.WarningEjectionAndSuspended,
		}, nil
	}

	if err := s.trackingRepo.Upsert(ctx, tracking); err != nil {
		return penalty.Ruling{}, fmt.Errorf("save penalty tracking: %w", err)
	}

	return penalty.Ruling{
		PenaltyCount: tracking.PenaltyCount,
		Message:      fmt.Sprintf("Penalty recorded. Player now has %d penalties in this game.", tracking.PenaltyCount),
		WarningType:  penalty.WarningNormal,
	}, nil
}

// IsPlayerSuspended reports whether the player's most recent tracking
// row carries an unserved suspension.
func (s *PenaltyService) IsPlayerSuspended(ctx context.Context, playerID string) (bool, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return false, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	rows, err := s.trackingRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return false, fmt.Errorf("list penalty tracking: %w", err)
	}
	if len(rows) == 0 {
		return false, nil
	}

	return rows[0].SuspendedNextGame, nil
}

// ClearSuspension lifts the most recent suspension once it has been
// served.
func (s *PenaltyService) ClearSuspension(ctx context.Context, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "PenaltyService.ClearSuspension")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	rows, err := s.trackingRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return fmt.Errorf("list penalty tracking: %w", err)
	}

	for _, row := range rows {
		if row.SuspendedNextGame {
			row.SuspendedNextGame = false
			row.UpdatedAt = s.now()
			if err := s.trackingRepo.Upsert(ctx, row); err != nil {
				return fmt.Errorf("save penalty tracking: %w", err)
			}
			return nil
		}
	}

	return nil
}

// Ejections returns the players already ejected in a game, used to seed
// a rebuilt ledger.
func (s *PenaltyService) Ejections(ctx context.Context, gameID string, playerIDs []string) ([]string, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return nil, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	var ejected []string
	for _, playerID := range playerIDs {
		tracking, exists, err := s.trackingRepo.GetByPlayerAndGame(ctx, playerID, gameID)
		if err != nil {
			return nil, fmt.Errorf("get penalty tracking: %w", err)
		}
		if exists && tracking.Ejected {
			ejected = append(ejected, playerID)
		}
	}

	return ejected, nil
}

// previousGameTracking finds the most recent tracking row for a
// different game than the current one.
func (s *PenaltyService) previousGameTracking(ctx context.Context, playerID, gameID string) (*penalty.Tracking, error) {
	rows, err := s.trackingRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("list penalty tracking: %w", err)
	}

	for i := range rows {
		if rows[i].GameID != gameID {
			return &rows[i], nil
		}
	}

	return nil, nil
}
