// Package file stores games and teams in one JSON document on local disk. Every write
// replaces the file atomically.
package file

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/court-sense/internal/domain/game"
	"github.com/riskibarqy/court-sense/internal/domain/roster"
	"github.com/riskibarqy/court-sense/internal/infrastructure/repository/document"
)

type Store struct {
	mu   sync.Mutex
	path string
}

func New(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("file store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrapf(err, "create store dir for %s", path)
	}
	return &Store{path: path}, nil
}

func (s *Store) LoadGames(ctx context.Context) ([]game.Game, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.GameList(), nil
}

func (s *Store) SaveGames(ctx context.Context, games []game.Game) error {
	return s.update(ctx, func(snap *document.Snapshot) {
		snap.Games = document.GameRecords(games)
	})
}

func (s *Store) GetGame(ctx context.Context, id string) (game.Game, bool, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return game.Game{}, false, err
	}
	for _, rec := range snap.Games {
		if rec.ID == id {
			return rec.Game(), true, nil
		}
	}
	return game.Game{}, false, nil
}

func (s *Store) SaveGame(ctx context.Context, g game.Game) error {
	return s.update(ctx, func(snap *document.Snapshot) {
		rec := document.FromGame(g)
		i := slices.IndexFunc(snap.Games, func(r document.GameRecord) bool { return r.ID == g.ID })
		if i >= 0 {
			snap.Games[i] = rec
			return
		}
		snap.Games = append(snap.Games, rec)
	})
}

func (s *Store) DeleteGame(ctx context.Context, id string) error {
	return s.update(ctx, func(snap *document.Snapshot) {
		snap.Games = slices.DeleteFunc(snap.Games, func(r document.GameRecord) bool { return r.ID == id })
	})
}

func (s *Store) LoadTeams(ctx context.Context) ([]roster.Team, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.TeamList(), nil
}

func (s *Store) SaveTeams(ctx context.Context, teams []roster.Team) error {
	return s.update(ctx, func(snap *document.Snapshot) {
		snap.Teams = document.TeamRecords(teams)
	})
}

func (s *Store) snapshot(ctx context.Context) (document.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return document.Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.read()
}

func (s *Store) update(ctx context.Context, mutate func(*document.Snapshot)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.read()
	if err != nil {
		return err
	}
	mutate(&snap)
	return s.write(snap)
}

func (s *Store) read() (document.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return document.Snapshot{}, nil
	}
	if err != nil {
		return document.Snapshot{}, errors.Wrapf(err, "read %s", s.path)
	}
	if len(data) == 0 {
		return document.Snapshot{}, nil
	}

	var snap document.Snapshot
	if err := sonic.Unmarshal(data, &snap); err != nil {
		return document.Snapshot{}, errors.Wrapf(err, "decode %s", s.path)
	}
	return snap, nil
}

func (s *Store) write(snap document.Snapshot) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	enc := sonic.ConfigStd.NewEncoder(buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return errors.Wrap(err, "encode store snapshot")
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(buf.B); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "write %s", tmpName)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "sync %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "close %s", tmpName)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return errors.Wrapf(err, "replace %s", s.path)
	}
	return nil
}
