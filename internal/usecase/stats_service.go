package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/court-sense/internal/domain/stats"
)

const defaultSummaryWorkers = 8

// StatsService derives the read-only views of a game log.
type StatsService struct {
	games   *GameService
	workers int
}

func NewStatsService(games *GameService, workers int) *StatsService {
	if workers < 1 {
		workers = defaultSummaryWorkers
	}
	return &StatsService{games: games, workers: workers}
}

func (s *StatsService) Chronological(ctx context.Context, gameID string) ([]stats.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Chronological")
	defer span.End()

	g, err := s.games.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return stats.Chronological(g), nil
}

func (s *StatsService) Dashboard(ctx context.Context, gameID string) (stats.Dashboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Dashboard")
	defer span.End()

	g, err := s.games.GetGame(ctx, gameID)
	if err != nil {
		return stats.Dashboard{}, err
	}
	return stats.BuildDashboard(g), nil
}

func (s *StatsService) Lineups(ctx context.Context, gameID string) ([]stats.LineupGroup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Lineups")
	defer span.End()

	g, err := s.games.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return stats.Lineups(g), nil
}

// ListSummaries builds the game list cards on a worker pool, keeping stored order.
func (s *StatsService) ListSummaries(ctx context.Context) ([]stats.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.ListSummaries")
	defer span.End()

	games, err := s.games.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]stats.Summary, len(games))
	if len(games) == 0 {
		return out, nil
	}

	pool, err := ants.NewPool(min(s.workers, len(games)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i := range games {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			out[i] = stats.Summarize(games[i])
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit summary task to worker pool: %w", err)
		}
	}
	workers.Wait()

	return out, nil
}
