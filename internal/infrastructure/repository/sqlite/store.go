// Package sqlite keeps games and teams in a single-file database through gorm, the
// on-device equivalent of the browser storage the app started with.
package sqlite

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/riskibarqy/court-sense/internal/domain/game"
	"github.com/riskibarqy/court-sense/internal/domain/roster"
	"github.com/riskibarqy/court-sense/internal/infrastructure/repository/document"
)

type Store struct {
	db *gorm.DB
}

// Open creates the database file when missing and migrates the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "create sqlite dir %s", dir)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open sqlite %s", path)
	}
	if err := db.AutoMigrate(&gameRow{}, &teamRow{}); err != nil {
		return nil, errors.Wrap(err, "migrate sqlite schema")
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) LoadGames(ctx context.Context) ([]game.Game, error) {
	var rows []gameRow
	if err := s.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
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

func (s *Store) GetGame(ctx context.Context, id string) (game.Game, bool, error) {
	var row gameRow
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return game.Game{}, false, nil
	}
	if err != nil {
		return game.Game{}, false, errors.Wrapf(err, "get game %s", id)
	}

	g, err := document.DecodeGame([]byte(row.Document))
	if err != nil {
		return game.Game{}, false, errors.Wrapf(err, "game %s", id)
	}
	return g, true, nil
}

// SaveGame updates an existing row in place, so a game keeps its list position.
func (s *Store) SaveGame(ctx context.Context, g game.Game) error {
	row, err := newGameRow(g, 0)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing gameRow
		err := tx.Select("id", "position").Where("id = ?", g.ID).First(&existing).Error
		switch {
		case err == nil:
			row.Position = existing.Position
			return tx.Save(&row).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			var last int64
			if err := tx.Model(&gameRow{}).Select("COALESCE(MAX(position), -1)").Row().Scan(&last); err != nil {
				return err
			}
			row.Position = last + 1
			return tx.Create(&row).Error
		default:
			return err
		}
	})
	if err != nil {
		return errors.Wrapf(err, "save game %s", g.ID)
	}
	return nil
}

func (s *Store) SaveGames(ctx context.Context, games []game.Game) error {
	rows := make([]gameRow, 0, len(games))
	for i, g := range games {
		row, err := newGameRow(g, int64(i))
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&gameRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return errors.Wrap(err, "save games")
	}
	return nil
}

func (s *Store) DeleteGame(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&gameRow{}).Error; err != nil {
		return errors.Wrapf(err, "delete game %s", id)
	}
	return nil
}

func (s *Store) LoadTeams(ctx context.Context) ([]roster.Team, error) {
	var rows []teamRow
	if err := s.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
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

func (s *Store) SaveTeams(ctx context.Context, teams []roster.Team) error {
	rows := make([]teamRow, 0, len(teams))
	seen := make(map[string]int, len(teams))
	for i, t := range teams {
		doc, err := document.EncodeTeam(t)
		if err != nil {
			return err
		}
		row := teamRow{ID: t.ID, Position: i, Name: t.Name, Document: string(doc)}
		if at, ok := seen[t.ID]; ok {
			row.Position = rows[at].Position
			rows[at] = row
			continue
		}
		seen[t.ID] = len(rows)
		rows = append(rows, row)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&teamRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return errors.Wrap(err, "save teams")
	}
	return nil
}

func newGameRow(g game.Game, position int64) (gameRow, error) {
	doc, err := document.EncodeGame(g)
	if err != nil {
		return gameRow{}, err
	}
	return gameRow{
		ID:           g.ID,
		Position:     position,
		Document:     string(doc),
		TeamName:     g.YourTeam.Name,
		OpponentName: g.OpponentTeam.Name,
		GameDate:     g.Date,
		OffenseCount: len(g.Offenses),
	}, nil
}
