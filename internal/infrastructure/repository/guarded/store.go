// Package guarded wraps a storage backend with a circuit breaker and an optional
// read-through cache.
package guarded

import (
	"context"
	"fmt"

	"github.com/riskibarqy/court-sense/internal/domain/game"
	"github.com/riskibarqy/court-sense/internal/domain/roster"
	"github.com/riskibarqy/court-sense/internal/platform/cache"
	"github.com/riskibarqy/court-sense/internal/platform/resilience"
)

const (
	gameKeyPrefix = "game:"
	teamsKey      = "teams"
)

type cachedGame struct {
	value  game.Game
	exists bool
}

type Options struct {
	// Breaker may be nil, which disables fail-fast.
	Breaker *resilience.CircuitBreaker
	// Cache may be nil. Without it concurrent GetGame calls for one id are still collapsed.
	Cache *cache.Store
}

type Store struct {
	games   game.Repository
	teams   roster.Repository
	breaker *resilience.CircuitBreaker
	cache   *cache.Store
	flight  resilience.SingleFlight[cachedGame]
}

func New(games game.Repository, teams roster.Repository, opts Options) *Store {
	return &Store{
		games:   games,
		teams:   teams,
		breaker: opts.Breaker,
		cache:   opts.Cache,
	}
}

func (s *Store) LoadGames(ctx context.Context) ([]game.Game, error) {
	var out []game.Game
	err := s.breaker.Execute(func() error {
		var err error
		out, err = s.games.LoadGames(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load games: %w", err)
	}
	return out, nil
}

func (s *Store) GetGame(ctx context.Context, id string) (game.Game, bool, error) {
	load := func(ctx context.Context) (cachedGame, error) {
		var out cachedGame
		err := s.breaker.Execute(func() error {
			g, ok, err := s.games.GetGame(ctx, id)
			out = cachedGame{value: g, exists: ok}
			return err
		})
		return out, err
	}

	var (
		got cachedGame
		err error
	)
	if s.cache != nil {
		var v any
		v, err = s.cache.GetOrLoad(ctx, gameKeyPrefix+id, func(ctx context.Context) (any, error) {
			return load(ctx)
		})
		got, _ = v.(cachedGame)
	} else {
		got, err, _ = s.flight.Do(id, func() (cachedGame, error) {
			return load(ctx)
		})
	}
	if err != nil {
		return game.Game{}, false, fmt.Errorf("get game %s: %w", id, err)
	}
	if !got.exists {
		return game.Game{}, false, nil
	}
	return got.value.Clone(), true, nil
}

func (s *Store) SaveGame(ctx context.Context, g game.Game) error {
	s.invalidateGame(ctx, g.ID)
	err := s.breaker.Execute(func() error {
		return s.games.SaveGame(ctx, g)
	})
	s.invalidateGame(ctx, g.ID)
	if err != nil {
		return fmt.Errorf("save game %s: %w", g.ID, err)
	}
	return nil
}

func (s *Store) SaveGames(ctx context.Context, games []game.Game) error {
	err := s.breaker.Execute(func() error {
		return s.games.SaveGames(ctx, games)
	})
	if s.cache != nil {
		s.cache.DeletePrefix(ctx, gameKeyPrefix)
	}
	if err != nil {
		return fmt.Errorf("save games: %w", err)
	}
	return nil
}

func (s *Store) DeleteGame(ctx context.Context, id string) error {
	err := s.breaker.Execute(func() error {
		return s.games.DeleteGame(ctx, id)
	})
	s.invalidateGame(ctx, id)
	if err != nil {
		return fmt.Errorf("delete game %s: %w", id, err)
	}
	return nil
}

func (s *Store) LoadTeams(ctx context.Context) ([]roster.Team, error) {
	load := func(ctx context.Context) (any, error) {
		var out []roster.Team
		err := s.breaker.Execute(func() error {
			var err error
			out, err = s.teams.LoadTeams(ctx)
			return err
		})
		return out, err
	}

	var (
		v   any
		err error
	)
	if s.cache != nil {
		v, err = s.cache.GetOrLoad(ctx, teamsKey, load)
	} else {
		v, err = load(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("load teams: %w", err)
	}

	teams, _ := v.([]roster.Team)
	out := make([]roster.Team, 0, len(teams))
	for _, t := range teams {
		out = append(out, t.Clone())
	}
	return out, nil
}

func (s *Store) SaveTeams(ctx context.Context, teams []roster.Team) error {
	err := s.breaker.Execute(func() error {
		return s.teams.SaveTeams(ctx, teams)
	})
	if s.cache != nil {
		s.cache.Delete(ctx, teamsKey)
	}
	if err != nil {
		return fmt.Errorf("save teams: %w", err)
	}
	return nil
}

func (s *Store) invalidateGame(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(ctx, gameKeyPrefix+id)
}
