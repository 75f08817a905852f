package httpapi

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/obhl/rinkside/internal/platform/logging"
	"github.com/obhl/rinkside/internal/usecase"
)

type Handler struct {
	teamService         *usecase.TeamService
	playerService       *usecase.PlayerService
	gameService         *usecase.GameService
	scorekeepingService *usecase.ScorekeepingService
	penaltyService      *usecase.PenaltyService
	standingsService    *usecase.StandingsService
	statsService        *usecase.StatsService
	scheduleService     *usecase.ScheduleService
	logger              *logging.Logger
	validator           *validator.Validate
}

func NewHandler(
	teamService *usecase.TeamService,
	playerService *usecase.PlayerService,
	gameService *usecase.GameService,
	scorekeepingService *usecase.ScorekeepingService,
	penaltyService *usecase.PenaltyService,
	standingsService *usecase.StandingsService,
	statsService *usecase.StatsService,
	scheduleService *usecase.ScheduleService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		teamService:         teamService,
		playerService:       playerService,
		gameService:         gameService,
		scorekeepingService: scorekeepingService,
		penaltyService:      penaltyService,
		standingsService:    standingsService,
		statsService:        statsService,
		scheduleService:     scheduleService,
		logger:              logger,
		validator:           validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
