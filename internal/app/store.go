package app

import (
	"context"
	"fmt"

	"github.com/riskibarqy/court-sense/internal/config"
	"github.com/riskibarqy/court-sense/internal/domain/game"
	"github.com/riskibarqy/court-sense/internal/domain/roster"
	"github.com/riskibarqy/court-sense/internal/infrastructure/repository/file"
	"github.com/riskibarqy/court-sense/internal/infrastructure/repository/guarded"
	"github.com/riskibarqy/court-sense/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/court-sense/internal/infrastructure/repository/postgres"
	redisstore "github.com/riskibarqy/court-sense/internal/infrastructure/repository/redis"
	"github.com/riskibarqy/court-sense/internal/infrastructure/repository/sqlite"
	"github.com/riskibarqy/court-sense/internal/platform/cache"
	"github.com/riskibarqy/court-sense/internal/platform/logging"
	"github.com/riskibarqy/court-sense/internal/platform/resilience"
)

type store struct {
	games game.Repository
	teams roster.Repository
	close func() error
}

func openStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (*store, error) {
	noop := func() error { return nil }

	switch cfg.StoreBackend {
	case config.StoreMemory:
		logger.Info("store selected", "backend", cfg.StoreBackend)
		return &store{games: memory.NewGameRepository(), teams: memory.NewTeamRepository(), close: noop}, nil

	case config.StoreFile:
		fs, err := file.New(cfg.StoreFilePath)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		logger.Info("store selected", "backend", cfg.StoreBackend, "path", cfg.StoreFilePath)
		return &store{games: fs, teams: fs, close: noop}, nil

	case config.StoreRedis:
		client, err := redisstore.Open(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("open redis store: %w", err)
		}
		rs := redisstore.New(client, cfg.RedisKeyPrefix)
		logger.Info("store selected", "backend", cfg.StoreBackend, "prefix", cfg.RedisKeyPrefix)
		return &store{games: rs, teams: rs, close: client.Close}, nil

	case config.StorePostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return nil, err
		}
		logger.Info("store selected", "backend", cfg.StoreBackend, "db_name", dbNameFromURL(cfg.DBURL))
		return &store{
			games: postgres.NewGameRepository(db),
			teams: postgres.NewTeamRepository(db),
			close: db.Close,
		}, nil

	case config.StoreSQLite:
		ss, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		logger.Info("store selected", "backend", cfg.StoreBackend, "path", cfg.SQLitePath)
		return &store{games: ss, teams: ss, close: ss.Close}, nil

	default:
		return nil, fmt.Errorf("unsupported store backend %q", cfg.StoreBackend)
	}
}

// guard puts the circuit breaker and the read cache in front of the backend.
func guard(cfg config.Config, st *store, logger *logging.Logger) *guarded.Store {
	opts := guarded.Options{
		Breaker: resilience.NewCircuitBreakerFromConfig(resilience.CircuitBreakerConfig{
			Enabled:          cfg.StoreCircuitEnabled,
			FailureThreshold: cfg.StoreCircuitFailureCount,
			OpenTimeout:      cfg.StoreCircuitOpenTimeout,
			HalfOpenProbes:   cfg.StoreCircuitHalfOpenMaxReq,
			OnStateChange: func(from, to resilience.CircuitState) {
				logger.Warn("store circuit changed", "backend", cfg.StoreBackend, "from", from, "to", to)
			},
		}),
	}
	if cfg.StoreCacheTTL > 0 {
		opts.Cache = cache.NewStore(cfg.StoreCacheTTL)
	}
	return guarded.New(st.games, st.teams, opts)
}
