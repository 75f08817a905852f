package postgres

import (
	"database/sql"
	"time"
)

type gameTableModel struct {
	ID             int64          `db:"id"`
	PublicID       string         `db:"public_id"`
	HomeTeamID     string         `db:"home_team_public_id"`
	AwayTeamID     string         `db:"away_team_public_id"`
	Week           int            `db:"week"`
	Rink           sql.NullString `db:"rink"`
	GameType       string         `db:"game_type"`
	ScheduledAt    time.Time      `db:"scheduled_at"`
	Status         string         `db:"status"`
	HomeScore      int            `db:"home_score"`
	AwayScore      int            `db:"away_score"`
	EndedInOT      bool           `db:"ended_in_ot"`
	HomeTeamPoints int            `db:"home_team_points"`
	AwayTeamPoints int            `db:"away_team_points"`
	CompletedAt    sql.NullTime   `db:"completed_at"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
	DeletedAt      *time.Time     `db:"deleted_at"`
}

type gameEventTableModel struct {
	ID              int64          `db:"id"`
	PublicID        string         `db:"public_id"`
	GameID          string         `db:"game_public_id"`
	TeamID          string         `db:"team_public_id"`
	PlayerID        string         `db:"player_public_id"`
	EventType       string         `db:"event_type"`
	Period          int            `db:"period"`
	TimeMinutes     int            `db:"time_minutes"`
	TimeSeconds     int            `db:"time_seconds"`
	Description     sql.NullString `db:"description"`
	Assist1PlayerID sql.NullString `db:"assist1_player_public_id"`
	Assist2PlayerID sql.NullString `db:"assist2_player_public_id"`
	PenaltyMinutes  int            `db:"penalty_minutes"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
	DeletedAt       *time.Time     `db:"deleted_at"`
}
