package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/riskibarqy/court-sense/internal/domain/game"
)

// GameRepository keeps games in insertion order.
type GameRepository struct {
	mu    sync.RWMutex
	games []game.Game
}

func NewGameRepository(games ...game.Game) *GameRepository {
	return &GameRepository{games: cloneGames(games)}
}

func (r *GameRepository) LoadGames(_ context.Context) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return cloneGames(r.games), nil
}

func (r *GameRepository) SaveGames(_ context.Context, games []game.Game) error {
	next := cloneGames(games)

	r.mu.Lock()
	r.games = next
	r.mu.Unlock()
	return nil
}

func (r *GameRepository) GetGame(_ context.Context, id string) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return game.Game{}, false, nil
	}
	return r.games[i].Clone(), true, nil
}

func (r *GameRepository) SaveGame(_ context.Context, g game.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(g.ID); i >= 0 {
		r.games[i] = g.Clone()
		return nil
	}
	r.games = append(r.games, g.Clone())
	return nil
}

func (r *GameRepository) DeleteGame(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(id); i >= 0 {
		r.games = slices.Delete(r.games, i, i+1)
	}
	return nil
}

func (r *GameRepository) indexOf(id string) int {
	return slices.IndexFunc(r.games, func(g game.Game) bool { return g.ID == id })
}

func cloneGames(games []game.Game) []game.Game {
	out := make([]game.Game, 0, len(games))
	for _, g := range games {
		out = append(out, g.Clone())
	}
	return out
}
