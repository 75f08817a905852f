package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/obhl/rinkside/internal/domain/team"
	qb "github.com/obhl/rinkside/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.IsNull("deleted_at")).
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}

	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(
			qb.Eq("public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team: %w", err)
	}

	return teamFromRow(row), true, nil
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) error {
	query, args, err := qb.InsertInto("teams").
		Columns("public_id", "name", "short", "division", "home_rink").
		Values(t.ID, t.Name, t.Short, stringToNullString(t.Division), stringToNullString(t.HomeRink)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert team: %w", err)
	}

	return nil
}

func (r *TeamRepository) Update(ctx context.Context, t team.Team) error {
	query, args, err := qb.Update("teams").
		Set("name", t.Name).
		Set("short", t.Short).
		Set("division", stringToNullString(t.Division)).
		Set("home_rink", stringToNullString(t.HomeRink)).
		SetExpr("updated_at", "now()").
		Where(
			qb.Eq("public_id", t.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update team: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update team: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update team: not found")
	}

	return nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:       row.PublicID,
		Name:     row.Name,
		Short:    row.Short,
		Division: nullStringToString(row.Division),
		HomeRink: nullStringToString(row.HomeRink),
	}
}
