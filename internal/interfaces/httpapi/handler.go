package httpapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/court-sense/internal/platform/logging"
	"github.com/riskibarqy/court-sense/internal/usecase"
)

type Handler struct {
	gameService    *usecase.GameService
	teamService    *usecase.TeamService
	sessionService *usecase.SessionService
	statsService   *usecase.StatsService
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	gameService *usecase.GameService,
	teamService *usecase.TeamService,
	sessionService *usecase.SessionService,
	statsService *usecase.StatsService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		gameService:    gameService,
		teamService:    teamService,
		sessionService: sessionService,
		statsService:   statsService,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}
