package game

import "context"

// Repository is the durable key-value store for games. SaveGames replaces the whole
// collection in one step; SaveGame upserts by id.
type Repository interface {
	LoadGames(ctx context.Context) ([]Game, error)
	SaveGames(ctx context.Context, games []Game) error
	GetGame(ctx context.Context, id string) (Game, bool, error)
	SaveGame(ctx context.Context, g Game) error
	DeleteGame(ctx context.Context, id string) error
}
