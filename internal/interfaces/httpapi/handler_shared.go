package httpapi

import (
	"context"
	"time"

	"github.com/obhl/rinkside/internal/domain/game"
	"github.com/obhl/rinkside/internal/domain/penalty"
	"github.com/obhl/rinkside/internal/domain/player"
	"github.com/obhl/rinkside/internal/domain/playerstats"
	"github.com/obhl/rinkside/internal/domain/scoring"
	"github.com/obhl/rinkside/internal/domain/team"
	"github.com/obhl/rinkside/internal/usecase"
)

type upsertTeamRequest struct {
	Name     string `json:"name" validate:"required,max=80"`
	Short    string `json:"short" validate:"required,max=8"`
	Division string `json:"division" validate:"omitempty,max=40"`
	HomeRink string `json:"home_rink" validate:"omitempty,max=80"`
}

type upsertPlayerRequest struct {
	TeamID       string `json:"team_id" validate:"required"`
	Name         string `json:"name" validate:"required,max=80"`
	Position     string `json:"position" validate:"required,oneof=C LW RW D G"`
	JerseyNumber int    `json:"jersey_number" validate:"gte=0,lte=99"`
	SkillRating  int    `json:"skill_rating" validate:"required,gte=1,lte=10"`
}

type createGameRequest struct {
	HomeTeamID  string `json:"home_team_id" validate:"required"`
	AwayTeamID  string `json:"away_team_id" validate:"required,nefield=HomeTeamID"`
	Week        int    `json:"week" validate:"required,gt=0"`
	Rink        string `json:"rink" validate:"omitempty,max=80"`
	GameType    string `json:"game_type" validate:"omitempty,oneof=REGULAR_SEASON PLAYOFF"`
	ScheduledAt string `json:"scheduled_at" validate:"required"`
}

type recordGoalRequest struct {
	TeamID          string `json:"team_id" validate:"required"`
	PlayerID        string `json:"player_id" validate:"required"`
	Period          int    `json:"period" validate:"required,gte=1,lte=5"`
	TimeMinutes     int    `json:"time_minutes" validate:"gte=0,lte=59"`
	TimeSeconds     int    `json:"time_seconds" validate:"gte=0,lte=59"`
	Description     string `json:"description" validate:"omitempty,max=200"`
	Assist1PlayerID string `json:"assist1_player_id"`
	Assist2PlayerID string `json:"assist2_player_id"`
	Override        bool   `json:"override"`
}

type checkGoalRequest struct {
	TeamID   string `json:"team_id" validate:"required"`
	PlayerID string `json:"player_id" validate:"required"`
}

type recordPenaltyRequest struct {
	TeamID         string `json:"team_id" validate:"required"`
	PlayerID       string `json:"player_id" validate:"required"`
	Period         int    `json:"period" validate:"required,gte=1,lte=5"`
	TimeMinutes    int    `json:"time_minutes" validate:"gte=0,lte=59"`
	TimeSeconds    int    `json:"time_seconds" validate:"gte=0,lte=59"`
	Description    string `json:"description" validate:"omitempty,max=200"`
	PenaltyMinutes int    `json:"penalty_minutes" validate:"required,oneof=2 3 4 6 10"`
}

type editEventRequest struct {
	Type            string `json:"type" validate:"required,oneof=goal penalty"`
	TeamID          string `json:"team_id" validate:"required"`
	PlayerID        string `json:"player_id" validate:"required"`
	Period          int    `json:"period" validate:"required,gte=1,lte=5"`
	TimeMinutes     int    `json:"time_minutes" validate:"gte=0,lte=59"`
	TimeSeconds     int    `json:"time_seconds" validate:"gte=0,lte=59"`
	Description     string `json:"description" validate:"omitempty,max=200"`
	Assist1PlayerID string `json:"assist1_player_id"`
	Assist2PlayerID string `json:"assist2_player_id"`
	PenaltyMinutes  int    `json:"penalty_minutes" validate:"omitempty,oneof=2 3 4 6 10"`
}

type finalizeGameRequest struct {
	EndedInOT bool `json:"ended_in_ot"`
}

type generateScheduleRequest struct {
	Weeks   int    `json:"weeks" validate:"required,gt=0,lte=52"`
	StartAt string `json:"start_at" validate:"required"`
	Rink    string `json:"rink" validate:"omitempty,max=80"`
}

type teamDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Short    string `json:"short"`
	Division string `json:"division,omitempty"`
	HomeRink string `json:"homeRink,omitempty"`
}

type playerDTO struct {
	ID           string `json:"id"`
	TeamID       string `json:"teamId"`
	Name         string `json:"name"`
	Position     string `json:"position"`
	JerseyNumber int    `json:"jerseyNumber"`
	SkillRating  int    `json:"skillRating"`
}

type gameDTO struct {
	ID             string `json:"id"`
	HomeTeamID     string `json:"homeTeamId"`
	AwayTeamID     string `json:"awayTeamId"`
	Week           int    `json:"week"`
	Rink           string `json:"rink,omitempty"`
	GameType       string `json:"gameType"`
	ScheduledAt    string `json:"scheduledAt"`
	Status         string `json:"status"`
	HomeScore      int    `json:"homeScore"`
	AwayScore      int    `json:"awayScore"`
	EndedInOT      bool   `json:"endedInOT"`
	HomeTeamPoints int    `json:"homeTeamPoints"`
	AwayTeamPoints int    `json:"awayTeamPoints"`
	CompletedAt    string `json:"completedAt,omitempty"`
}

type eventDTO struct {
	ID              string `json:"id"`
	GameID          string `json:"gameId"`
	TeamID          string `json:"teamId"`
	PlayerID        string `json:"playerId"`
	Type            string `json:"type"`
	Period          int    `json:"period"`
	TimeMinutes     int    `json:"timeMinutes"`
	TimeSeconds     int    `json:"timeSeconds"`
	Description     string `json:"description,omitempty"`
	Assist1PlayerID string `json:"assist1PlayerId,omitempty"`
	Assist2PlayerID string `json:"assist2PlayerId,omitempty"`
	PenaltyMinutes  int    `json:"penaltyMinutes,omitempty"`
}

type goalRulingDTO struct {
	Allowed     bool   `json:"allowed"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	MercyRule   bool   `json:"mercyRule"`
	GoalsScored int    `json:"goalsScored"`
	Limit       int    `json:"limit"`
}

type penaltyRulingDTO struct {
	Ejected      bool   `json:"ejected"`
	Suspended    bool   `json:"suspended"`
	PenaltyCount int    `json:"penaltyCount"`
	Message      string `json:"message"`
	WarningType  string `json:"warningType"`
}

type goalOutcomeDTO struct {
	Ruling    goalRulingDTO `json:"ruling"`
	Event     eventDTO      `json:"event"`
	HomeScore int           `json:"homeScore"`
	AwayScore int           `json:"awayScore"`
}

type penaltyOutcomeDTO struct {
	Ruling    penaltyRulingDTO `json:"ruling"`
	Event     eventDTO         `json:"event"`
	HomeScore int              `json:"homeScore"`
	AwayScore int              `json:"awayScore"`
}

type scoreDTO struct {
	GameID    string `json:"gameId"`
	HomeScore int    `json:"homeScore"`
	AwayScore int    `json:"awayScore"`
}

type standingRowDTO struct {
	Rank           int    `json:"rank"`
	TeamID         string `json:"teamId"`
	TeamName       string `json:"teamName"`
	GamesPlayed    int    `json:"gamesPlayed"`
	Wins           int    `json:"wins"`
	Losses         int    `json:"losses"`
	Ties           int    `json:"ties"`
	OvertimeWins   int    `json:"overtimeWins"`
	OvertimeLosses int    `json:"overtimeLosses"`
	Points         int    `json:"points"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDiff       int    `json:"goalDiff"`
}

type seasonStatsDTO struct {
	PlayerID       string `json:"playerId"`
	GamesPlayed    int    `json:"gamesPlayed"`
	Goals          int    `json:"goals"`
	Assists        int    `json:"assists"`
	Points         int    `json:"points"`
	PenaltyMinutes int    `json:"penaltyMinutes"`
}

type suspensionDTO struct {
	PlayerID  string `json:"playerId"`
	Suspended bool   `json:"suspended"`
}

func teamToDTO(ctx context.Context, v team.Team) teamDTO {
	ctx, span := startSpan(ctx, "httpapi.teamToDTO")
	defer span.End()
	_ = ctx

	return teamDTO{
		ID:       v.ID,
		Name:     v.Name,
		Short:    v.Short,
		Division: v.Division,
		HomeRink: v.HomeRink,
	}
}

func playerToDTO(ctx context.Context, v player.Player) playerDTO {
	ctx, span := startSpan(ctx, "httpapi.playerToDTO")
	defer span.End()
	_ = ctx

	return playerDTO{
		ID:           v.ID,
		TeamID:       v.TeamID,
		Name:         v.Name,
		Position:     string(v.Position),
		JerseyNumber: v.JerseyNumber,
		SkillRating:  v.SkillRating,
	}
}

func gameToDTO(ctx context.Context, v game.Game) gameDTO {
	ctx, span := startSpan(ctx, "httpapi.gameToDTO")
	defer span.End()
	_ = ctx

	completedAt := ""
	if v.CompletedAt != nil {
		completedAt = v.CompletedAt.UTC().Format(time.RFC3339)
	}

	return gameDTO{
		ID:             v.ID,
		HomeTeamID:     v.HomeTeamID,
		AwayTeamID:     v.AwayTeamID,
		Week:           v.Week,
		Rink:           v.Rink,
		GameType:       v.GameType,
		ScheduledAt:    v.ScheduledAt.UTC().Format(time.RFC3339),
		Status:         v.Status,
		HomeScore:      v.HomeScore,
		AwayScore:      v.AwayScore,
		EndedInOT:      v.EndedInOT,
		HomeTeamPoints: v.HomeTeamPoints,
		AwayTeamPoints: v.AwayTeamPoints,
		CompletedAt:    completedAt,
	}
}

func eventToDTO(ctx context.Context, v game.Event) eventDTO {
	ctx, span := startSpan(ctx, "httpapi.eventToDTO")
	defer span.End()
	_ = ctx

	return eventDTO{
		ID:              v.ID,
		GameID:          v.GameID,
		TeamID:          v.TeamID,
		PlayerID:        v.PlayerID,
		Type:            v.Type,
		Period:          v.Period,
		TimeMinutes:     v.TimeMinutes,
		TimeSeconds:     v.TimeSeconds,
		Description:     v.Description,
		Assist1PlayerID: v.Assist1PlayerID,
		Assist2PlayerID: v.Assist2PlayerID,
		PenaltyMinutes:  v.PenaltyMinutes,
	}
}

func goalRulingToDTO(v scoring.GoalRuling) goalRulingDTO {
	return goalRulingDTO{
		Allowed:     v.Allowed,
		Severity:    v.Severity,
		Message:     v.Message,
		MercyRule:   v.MercyRule,
		GoalsScored: v.GoalsScored,
		Limit:       v.Limit,
	}
}

func penaltyRulingToDTO(v penalty.Ruling) penaltyRulingDTO {
	return penaltyRulingDTO{
		Ejected:      v.Ejected,
		Suspended:    v.Suspended,
		PenaltyCount: v.PenaltyCount,
		Message:      v.Message,
		WarningType:  v.WarningType,
	}
}

func goalOutcomeToDTO(ctx context.Context, v usecase.GoalOutcome) goalOutcomeDTO {
	ctx, span := startSpan(ctx, "httpapi.goalOutcomeToDTO")
	defer span.End()

	return goalOutcomeDTO{
		Ruling:    goalRulingToDTO(v.Ruling),
		Event:     eventToDTO(ctx, v.Event),
		HomeScore: v.HomeScore,
		AwayScore: v.AwayScore,
	}
}

func penaltyOutcomeToDTO(ctx context.Context, v usecase.PenaltyOutcome) penaltyOutcomeDTO {
	ctx, span := startSpan(ctx, "httpapi.penaltyOutcomeToDTO")
	defer span.End()

	return penaltyOutcomeDTO{
		Ruling:    penaltyRulingToDTO(v.Ruling),
		Event:     eventToDTO(ctx, v.Event),
		HomeScore: v.HomeScore,
		AwayScore: v.AwayScore,
	}
}

func standingRowToDTO(ctx context.Context, v usecase.TableRow) standingRowDTO {
	ctx, span := startSpan(ctx, "httpapi.standingRowToDTO")
	defer span.End()
	_ = ctx

	return standingRowDTO{
		Rank:           v.Rank,
		TeamID:         v.TeamID,
		TeamName:       v.TeamName,
		GamesPlayed:    v.GamesPlayed,
		Wins:           v.Wins,
		Losses:         v.Losses,
		Ties:           v.Ties,
		OvertimeWins:   v.OvertimeWins,
		OvertimeLosses: v.OvertimeLosses,
		Points:         v.Points,
		GoalsFor:       v.GoalsFor,
		GoalsAgainst:   v.GoalsAgainst,
		GoalDiff:       v.GoalDiff,
	}
}

func seasonStatsToDTO(ctx context.Context, v playerstats.SeasonStats) seasonStatsDTO {
	ctx, span := startSpan(ctx, "httpapi.seasonStatsToDTO")
	defer span.End()
	_ = ctx

	return seasonStatsDTO{
		PlayerID:       v.PlayerID,
		GamesPlayed:    v.GamesPlayed,
		Goals:          v.Goals,
		Assists:        v.Assists,
		Points:         v.Points,
		PenaltyMinutes: v.PenaltyMinutes,
	}
}
