package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/court-sense/internal/config"
	"github.com/riskibarqy/court-sense/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/court-sense/internal/platform/id"
	"github.com/riskibarqy/court-sense/internal/platform/logging"
	"github.com/riskibarqy/court-sense/internal/platform/scheduler"
	"github.com/riskibarqy/court-sense/internal/usecase"
)

// Server is the assembled API. Close ends live sessions and releases the store.
type Server struct {
	HTTP     *http.Server
	sessions *usecase.SessionService
	store    *store
}

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	guardedStore := guard(cfg, st, logger)
	locks := usecase.NewGameLocks()
	ids := idgen.NewTimeOrderedGenerator()

	teamSvc := usecase.NewTeamService(guardedStore)
	gameSvc := usecase.NewGameService(guardedStore, teamSvc, locks, ids, logger)
	sessionSvc := usecase.NewSessionService(guardedStore, locks, ids, logger, usecase.SessionServiceConfig{
		Scheduler:    scheduler.NewTicker(logger),
		TickInterval: cfg.ClockTickInterval,
	})
	gameSvc.AttachSessions(sessionSvc)
	statsSvc := usecase.NewStatsService(gameSvc, cfg.SummaryWorkers)

	handler := httpapi.NewHandler(gameSvc, teamSvc, sessionSvc, statsSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	return &Server{
		HTTP: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		sessions: sessionSvc,
		store:    st,
	}, nil
}

func (s *Server) Close() error {
	s.sessions.CloseAll()
	return s.store.close()
}
