package postgres

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/court-sense/internal/domain/game"
	"github.com/riskibarqy/court-sense/internal/infrastructure/repository/document"
	qb "github.com/riskibarqy/court-sense/internal/platform/querybuilder"
)

// seq is assigned by the database on first insert and never written by upserts, so it
// carries list order.
const gamesTable = "games"

type GameRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db, now: time.Now}
}

func (r *GameRepository) LoadGames(ctx context.Context) ([]game.Game, error) {
	query, args, err := qb.Select("id", "document").From(gamesTable).OrderBy("seq").ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build load games query")
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select games")
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		g, err := document.DecodeGame([]byte(row.Document))
		if err != nil {
			return nil, errors.Wrapf(err, "game %s", row.ID)
		}
		out = append(out, g)
	}
	return out, nil
}

func (r *GameRepository) GetGame(ctx context.Context, id string) (game.Game, bool, error) {
	query, args, err := qb.Select("id", "document").From(gamesTable).Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return game.Game{}, false, errors.Wrap(err, "build get game query")
	}

	var row gameTableModel
	err = r.db.GetContext(ctx, &row, query, args...)
	if isUnnamedPreparedStatementMissing(err) {
		err = r.db.GetContext(ctx, &row, query, args...)
	}
	if err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, errors.Wrapf(err, "get game %s", id)
	}

	g, err := document.DecodeGame([]byte(row.Document))
	if err != nil {
		return game.Game{}, false, errors.Wrapf(err, "game %s", id)
	}
	return g, true, nil
}

func (r *GameRepository) SaveGame(ctx context.Context, g game.Game) error {
	query, args, err := r.upsertGameQuery(g)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "upsert game %s", g.ID)
	}
	return nil
}

// SaveGames replaces the table contents inside one transaction.
func (r *GameRepository) SaveGames(ctx context.Context, games []game.Game) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin save games tx")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.DeleteFrom(gamesTable).ToSQL()
	if err != nil {
		return errors.Wrap(err, "build clear games query")
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "clear games")
	}

	for _, g := range games {
		query, args, err := r.upsertGameQuery(g)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return errors.Wrapf(err, "insert game %s", g.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit save games tx")
	}
	return nil
}

func (r *GameRepository) DeleteGame(ctx context.Context, id string) error {
	query, args, err := qb.DeleteFrom(gamesTable).Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return errors.Wrap(err, "build delete game query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "delete game %s", id)
	}
	return nil
}

func (r *GameRepository) upsertGameQuery(g game.Game) (string, []any, error) {
	doc, err := document.EncodeGame(g)
	if err != nil {
		return "", nil, err
	}

	row := gameRow(g, doc, r.now().UTC())
	query, args, err := qb.UpsertModel(gamesTable, row, "id")
	if err != nil {
		return "", nil, errors.Wrap(err, "build upsert game query")
	}
	return query, args, nil
}

// gameRow denormalizes the list-card fields next to the document.
func gameRow(g game.Game, doc []byte, now time.Time) gameTableModel {
	return gameTableModel{
		ID:           g.ID,
		Document:     string(doc),
		TeamName:     g.YourTeam.Name,
		OpponentName: g.OpponentTeam.Name,
		GameDate:     nullString(g.Date),
		OffenseCount: len(g.Offenses),
		UpdatedAt:    now,
	}
}
