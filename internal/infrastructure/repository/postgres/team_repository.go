package postgres

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/court-sense/internal/domain/roster"
	"github.com/riskibarqy/court-sense/internal/infrastructure/repository/document"
	qb "github.com/riskibarqy/court-sense/internal/platform/querybuilder"
)

const teamsTable = "teams"

type TeamRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db, now: time.Now}
}

func (r *TeamRepository) LoadTeams(ctx context.Context) ([]roster.Team, error) {
	query, args, err := qb.Select("id", "document").From(teamsTable).OrderBy("position").ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build load teams query")
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select teams")
	}

	out := make([]roster.Team, 0, len(rows))
	for _, row := range rows {
		t, err := document.DecodeTeam([]byte(row.Document))
		if err != nil {
			return nil, errors.Wrapf(err, "team %s", row.ID)
		}
		out = append(out, t)
	}
	return out, nil
}

// SaveTeams drops teams missing from the list and upserts the rest with their list position.
func (r *TeamRepository) SaveTeams(ctx context.Context, teams []roster.Team) error {
	teams = uniqueByID(teams)
	now := r.now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin save teams tx")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	keep := make([]any, 0, len(teams))
	for _, t := range teams {
		keep = append(keep, t.ID)
	}
	query, args, err := qb.DeleteFrom(teamsTable).Where(qb.NotIn("id", keep)).ToSQL()
	if err != nil {
		return errors.Wrap(err, "build prune teams query")
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "prune teams")
	}

	for i, t := range teams {
		doc, err := document.EncodeTeam(t)
		if err != nil {
			return err
		}
		query, args, err := qb.UpsertModel(teamsTable, teamRow(t, i, doc, now), "id")
		if err != nil {
			return errors.Wrap(err, "build upsert team query")
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return errors.Wrapf(err, "upsert team %s", t.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit save teams tx")
	}
	return nil
}

func teamRow(t roster.Team, position int, doc []byte, now time.Time) teamTableModel {
	names := make([]string, 0, len(t.Players))
	for _, p := range t.Players {
		names = append(names, p.Name)
	}
	return teamTableModel{
		ID:          t.ID,
		Position:    position,
		Name:        t.Name,
		PlayerNames: names,
		Document:    string(doc),
		UpdatedAt:   now,
	}
}

// uniqueByID keeps the last team for a repeated id, at the position of its first occurrence.
func uniqueByID(teams []roster.Team) []roster.Team {
	index := make(map[string]int, len(teams))
	out := make([]roster.Team, 0, len(teams))
	for _, t := range teams {
		if i, ok := index[t.ID]; ok {
			out[i] = t
			continue
		}
		index[t.ID] = len(out)
		out = append(out, t)
	}
	return out
}
