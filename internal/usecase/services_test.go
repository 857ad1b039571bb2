package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/court-sense/internal/domain/game"
	"github.com/riskibarqy/court-sense/internal/domain/roster"
	"github.com/riskibarqy/court-sense/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/court-sense/internal/platform/id"
	"github.com/riskibarqy/court-sense/internal/platform/logging"
	"github.com/riskibarqy/court-sense/internal/platform/scheduler"
)

var errStoreDown = errors.New("store down")

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// flakyGames fails SaveGame on demand.
type flakyGames struct {
	*memory.GameRepository
	mu       sync.Mutex
	failSave bool
}

func (f *flakyGames) SaveGame(ctx context.Context, g game.Game) error {
	f.mu.Lock()
	fail := f.failSave
	f.mu.Unlock()
	if fail {
		return errStoreDown
	}
	return f.GameRepository.SaveGame(ctx, g)
}

func (f *flakyGames) setFailSave(v bool) {
	f.mu.Lock()
	f.failSave = v
	f.mu.Unlock()
}

type testServices struct {
	games    *flakyGames
	teamRepo *memory.TeamRepository
	clock    *testClock
	sched    *scheduler.Manual
	game     *GameService
	team     *TeamService
	session  *SessionService
	stats    *StatsService
}

func newTestServices(t *testing.T, seed ...game.Game) *testServices {
	t.Helper()

	clock := &testClock{now: time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC)}
	games := &flakyGames{GameRepository: memory.NewGameRepository(seed...)}
	teamRepo := memory.NewTeamRepository()
	sched := scheduler.NewManual()
	locks := NewGameLocks()
	logger := logging.NewNop()

	teams := NewTeamService(teamRepo)
	gameSvc := NewGameService(games, teams, locks, &id.Sequence{Prefix: "id-"}, logger)
	gameSvc.now = clock.Now
	sessions := NewSessionService(games, locks, &id.Sequence{Prefix: "o"}, logger, SessionServiceConfig{
		Scheduler: sched,
		Now:       clock.Now,
	})
	gameSvc.AttachSessions(sessions)
	t.Cleanup(sessions.CloseAll)

	return &testServices{
		games:    games,
		teamRepo: teamRepo,
		clock:    clock,
		sched:    sched,
		game:     gameSvc,
		team:     teams,
		session:  sessions,
		stats:    NewStatsService(gameSvc, 4),
	}
}

func rosterOf(n int) roster.Team {
	names := []string{"Ana", "Ben", "Cai", "Dee", "Eli", "Fay", "Gus"}
	team := roster.Team{ID: "t1", Name: "Hawks"}
	for i := range n {
		team.Players = append(team.Players, roster.Player{
			ID:     names[i][:1] + "1",
			Name:   names[i],
			Number: 4 + i,
		})
	}
	return team
}
