package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/court-sense/internal/domain/game"
	"github.com/riskibarqy/court-sense/internal/domain/roster"
	"github.com/riskibarqy/court-sense/internal/domain/session"
	"github.com/riskibarqy/court-sense/internal/platform/id"
	"github.com/riskibarqy/court-sense/internal/platform/logging"
	"github.com/riskibarqy/court-sense/internal/platform/scheduler"
)

// SessionResult is what every classifier action reports back.
type SessionResult struct {
	Session    session.Snapshot
	Transition session.Kind
	Offense    *game.Offense
	// Persisted is false when a recorded offense could not be written to the store. The
	// offense is still returned and the live state has been reset; it is retried with the
	// next recorded offense of the same game.
	Persisted bool
	// Unsaved counts offenses of this game still waiting for a successful write.
	Unsaved int
}

type SessionServiceConfig struct {
	Scheduler    scheduler.Scheduler
	TickInterval time.Duration
	Now          func() time.Time
}

// SessionService keeps at most one live session per game and turns terminal classifier
// transitions into appended offenses.
type SessionService struct {
	gameRepo game.Repository
	locks    *GameLocks
	ids      id.Generator
	logger   *logging.Logger
	cfg      SessionServiceConfig

	mu       sync.Mutex
	sessions map[string]*session.Session
	// unsaved holds recorded offenses whose write failed, keyed by game, oldest first.
	unsaved map[string][]game.Offense
}

func NewSessionService(
	gameRepo game.Repository,
	locks *GameLocks,
	ids id.Generator,
	logger *logging.Logger,
	cfg SessionServiceConfig,
) *SessionService {
	if logger == nil {
		logger = logging.Default()
	}
	if locks == nil {
		locks = NewGameLocks()
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = scheduler.NewTicker(logger)
	}
	return &SessionService{
		gameRepo: gameRepo,
		locks:    locks,
		ids:      ids,
		logger:   logger,
		cfg:      cfg,
		sessions: make(map[string]*session.Session),
		unsaved:  make(map[string][]game.Offense),
	}
}

// Open starts a live session for the game. Opening an already open game returns the
// existing session unchanged.
func (s *SessionService) Open(ctx context.Context, gameID string) (session.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Open")
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return session.Snapshot{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	unlock := s.locks.Lock(gameID)
	defer unlock()

	if live, ok := s.lookup(gameID); ok {
		return live.Snapshot(), nil
	}

	g, ok, err := s.gameRepo.GetGame(ctx, gameID)
	if err != nil {
		return session.Snapshot{}, fmt.Errorf("%w: get game: %w", ErrDependencyUnavailable, err)
	}
	if !ok {
		return session.Snapshot{}, fmt.Errorf("%w: game=%s", ErrNotFound, gameID)
	}

	live := session.New(gameID, session.Config{
		Team:         g.YourTeam,
		Scheduler:    s.cfg.Scheduler,
		TickInterval: s.cfg.TickInterval,
		Now:          s.cfg.Now,
		NewID:        s.ids.NewID,
	})

	s.mu.Lock()
	s.sessions[gameID] = live
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "live session opened", "game_id", gameID)
	return live.Snapshot(), nil
}

func (s *SessionService) Get(gameID string) (session.Snapshot, error) {
	live, err := s.require(gameID)
	if err != nil {
		return session.Snapshot{}, err
	}
	return live.Snapshot(), nil
}

// Close tears the session down and stops its clock timer.
func (s *SessionService) Close(gameID string) error {
	if !s.CloseSession(gameID) {
		return fmt.Errorf("%w: no live session for game=%s", ErrNotFound, gameID)
	}
	return nil
}

func (s *SessionService) CloseSession(gameID string) bool {
	gameID = strings.TrimSpace(gameID)

	s.mu.Lock()
	live, ok := s.sessions[gameID]
	delete(s.sessions, gameID)
	dropped := len(s.unsaved[gameID])
	delete(s.unsaved, gameID)
	s.mu.Unlock()

	if dropped > 0 {
		s.logger.Warn("live session closed with unsaved offenses", "game_id", gameID, "count", dropped)
	}
	if ok {
		live.Close()
	}
	return ok
}

// CloseAll stops every live session. Used on shutdown.
func (s *SessionService) CloseAll() {
	s.mu.Lock()
	live := s.sessions
	s.sessions = make(map[string]*session.Session)
	for gameID, queued := range s.unsaved {
		s.logger.Warn("shutting down with unsaved offenses", "game_id", gameID, "count", len(queued))
	}
	s.unsaved = make(map[string][]game.Offense)
	s.mu.Unlock()

	for _, sess := range live {
		sess.Close()
	}
}

func (s *SessionService) RefreshTeam(gameID string, team roster.Team) {
	if live, ok := s.lookup(gameID); ok {
		live.SetTeam(team)
	}
}

func (s *SessionService) StartClock(gameID string) (session.Snapshot, error) {
	return s.control(gameID, (*session.Session).StartClock)
}

func (s *SessionService) PauseClock(gameID string) (session.Snapshot, error) {
	return s.control(gameID, (*session.Session).PauseClock)
}

func (s *SessionService) AdjustClock(gameID string, deltaSeconds int) (session.Snapshot, error) {
	return s.control(gameID, func(live *session.Session) error {
		return live.AdjustClock(deltaSeconds)
	})
}

func (s *SessionService) IncrementPasses(gameID string) (session.Snapshot, error) {
	return s.control(gameID, (*session.Session).IncrementPasses)
}

func (s *SessionService) DecrementPasses(gameID string) (session.Snapshot, error) {
	return s.control(gameID, (*session.Session).DecrementPasses)
}

func (s *SessionService) ToggleLineup(gameID, playerID string) (session.Snapshot, error) {
	return s.control(gameID, func(live *session.Session) error {
		_, err := live.ToggleLineup(playerID)
		return err
	})
}

func (s *SessionService) BeginTurnover(ctx context.Context, gameID string) (SessionResult, error) {
	return s.act(ctx, gameID, (*session.Session).BeginTurnover)
}

func (s *SessionService) BeginShot(ctx context.Context, gameID string) (SessionResult, error) {
	return s.act(ctx, gameID, (*session.Session).BeginShot)
}

func (s *SessionService) SelectPlayer(ctx context.Context, gameID, playerID string) (SessionResult, error) {
	return s.act(ctx, gameID, func(live *session.Session) (session.Result, error) {
		return live.SelectPlayer(playerID)
	})
}

func (s *SessionService) SelectShotType(ctx context.Context, gameID string, shot game.ShotType) (SessionResult, error) {
	return s.act(ctx, gameID, func(live *session.Session) (session.Result, error) {
		return live.SelectShotType(shot)
	})
}

func (s *SessionService) SelectResult(ctx context.Context, gameID string, result game.ResultType) (SessionResult, error) {
	return s.act(ctx, gameID, func(live *session.Session) (session.Result, error) {
		return live.SelectResult(result)
	})
}

func (s *SessionService) SelectRebound(ctx context.Context, gameID string, offensive bool) (SessionResult, error) {
	return s.act(ctx, gameID, func(live *session.Session) (session.Result, error) {
		return live.SelectRebound(offensive)
	})
}

func (s *SessionService) MarkFreeThrow(ctx context.Context, gameID string, slot int, mark session.FreeThrowMark) (SessionResult, error) {
	return s.act(ctx, gameID, func(live *session.Session) (session.Result, error) {
		return live.MarkFreeThrow(slot, mark)
	})
}

func (s *SessionService) Confirm(ctx context.Context, gameID string) (SessionResult, error) {
	return s.act(ctx, gameID, (*session.Session).Confirm)
}

func (s *SessionService) Back(ctx context.Context, gameID string) (SessionResult, error) {
	return s.act(ctx, gameID, (*session.Session).Back)
}

func (s *SessionService) Cancel(ctx context.Context, gameID string) (SessionResult, error) {
	return s.act(ctx, gameID, (*session.Session).Cancel)
}

func (s *SessionService) control(gameID string, fn func(*session.Session) error) (session.Snapshot, error) {
	live, err := s.require(gameID)
	if err != nil {
		return session.Snapshot{}, err
	}
	if err := fn(live); err != nil {
		return live.Snapshot(), classifySessionError(err)
	}
	return live.Snapshot(), nil
}

// act runs one classifier action. A recorded offense is appended and saved under the
// game lock, so the action, the append and the live reset happen as one step.
func (s *SessionService) act(ctx context.Context, gameID string, fn func(*session.Session) (session.Result, error)) (SessionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Action")
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	unlock := s.locks.Lock(gameID)
	defer unlock()

	live, err := s.require(gameID)
	if err != nil {
		return SessionResult{}, err
	}

	res, err := fn(live)
	if err != nil {
		return SessionResult{Session: live.Snapshot()}, classifySessionError(err)
	}

	out := SessionResult{
		Transition: res.Kind,
		Offense:    res.Offense,
		Persisted:  true,
	}
	if res.Kind == session.KindRecorded && res.Offense != nil {
		out.Persisted = s.persistOffense(ctx, gameID, *res.Offense)
	}
	out.Unsaved = s.unsavedCount(gameID)
	out.Session = live.Snapshot()
	return out, nil
}

// persistOffense appends o, together with any earlier offenses whose write failed, to
// the stored log. Failures are logged and reported, never returned: the live state has
// already moved on to the next offense. The caller holds the game lock.
func (s *SessionService) persistOffense(ctx context.Context, gameID string, o game.Offense) bool {
	s.mu.Lock()
	queue := append(s.unsaved[gameID], o)
	s.unsaved[gameID] = queue
	s.mu.Unlock()

	g, ok, err := s.gameRepo.GetGame(ctx, gameID)
	if err != nil {
		s.logger.ErrorContext(ctx, "load game for offense failed", "game_id", gameID, "offense_id", o.ID, "error", err)
		return false
	}
	if !ok {
		s.logger.WarnContext(ctx, "game disappeared before offense was saved", "game_id", gameID, "offense_id", o.ID)
		return false
	}
	for _, queued := range queue {
		if err := g.Append(queued); err != nil && !errors.Is(err, game.ErrDuplicateOffense) {
			s.logger.ErrorContext(ctx, "append offense rejected", "game_id", gameID, "offense_id", queued.ID, "error", err)
			s.dropUnsaved(gameID, queued.ID)
		}
	}
	if err := s.gameRepo.SaveGame(ctx, g); err != nil {
		s.logger.ErrorContext(ctx, "save offense failed", "game_id", gameID, "offense_id", o.ID, "unsaved", s.unsavedCount(gameID), "error", err)
		return false
	}

	s.mu.Lock()
	delete(s.unsaved, gameID)
	s.mu.Unlock()
	if len(queue) > 1 {
		s.logger.InfoContext(ctx, "flushed unsaved offenses", "game_id", gameID, "count", len(queue)-1)
	}
	return g.HasOffense(o.ID)
}

func (s *SessionService) unsavedCount(gameID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.unsaved[gameID])
}

// dropUnsaved forgets an offense the log will never accept.
func (s *SessionService) dropUnsaved(gameID, offenseID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	queue := s.unsaved[gameID]
	kept := queue[:0:0]
	for _, o := range queue {
		if o.ID != offenseID {
			kept = append(kept, o)
		}
	}
	s.unsaved[gameID] = kept
}

func (s *SessionService) lookup(gameID string) (*session.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	live, ok := s.sessions[gameID]
	return live, ok
}

func (s *SessionService) require(gameID string) (*session.Session, error) {
	live, ok := s.lookup(strings.TrimSpace(gameID))
	if !ok {
		return nil, fmt.Errorf("%w: no live session for game=%s", ErrNotFound, gameID)
	}
	return live, nil
}

// classifySessionError keeps the domain error in the chain so callers can still match it.
func classifySessionError(err error) error {
	switch {
	case errors.Is(err, session.ErrInvalidShotType),
		errors.Is(err, session.ErrInvalidSlot),
		errors.Is(err, session.ErrUnknownPlayer),
		errors.Is(err, session.ErrPlayerNotOnCourt):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
}
