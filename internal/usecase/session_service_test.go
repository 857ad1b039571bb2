package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/court-sense/internal/domain/game"
	"github.com/riskibarqy/court-sense/internal/domain/session"
)

func TestSessionService_OpenIsIdempotent(t *testing.T) {
	ctx := t.Context()
	svc := newTestServices(t, game.Game{ID: "g1", YourTeam: rosterOf(7)})

	snap, err := svc.session.Open(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "B1", "C1", "D1", "E1"}, snap.OnCourt)

	_, err = svc.session.IncrementPasses("g1")
	require.NoError(t, err)

	again, err := svc.session.Open(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Passes, "second open keeps the running session")

	_, err = svc.session.Open(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionService_RecordsScore(t *testing.T) {
	ctx := t.Context()
	svc := newTestServices(t, game.Game{ID: "g1", YourTeam: rosterOf(5)})
	_, err := svc.session.Open(ctx, "g1")
	require.NoError(t, err)

	_, err = svc.session.StartClock("g1")
	require.NoError(t, err)
	svc.clock.Advance(8*time.Second + 400*time.Millisecond)
	svc.sched.Fire()
	for range 3 {
		_, err = svc.session.IncrementPasses("g1")
		require.NoError(t, err)
	}

	steps := []func() (SessionResult, error){
		func() (SessionResult, error) { return svc.session.BeginShot(ctx, "g1") },
		func() (SessionResult, error) { return svc.session.SelectShotType(ctx, "g1", game.ShotThree) },
		func() (SessionResult, error) { return svc.session.SelectPlayer(ctx, "g1", "C1") },
	}
	for _, step := range steps {
		res, err := step()
		require.NoError(t, err)
		assert.Equal(t, session.KindPending, res.Transition)
	}

	res, err := svc.session.SelectResult(ctx, "g1", game.ResultScore)
	require.NoError(t, err)
	assert.Equal(t, session.KindRecorded, res.Transition)
	assert.True(t, res.Persisted)
	require.NotNil(t, res.Offense)
	assert.Equal(t, 8, res.Offense.Time)
	assert.Equal(t, 3, res.Offense.Passes)
	assert.Equal(t, 3, res.Offense.Result.Points)
	assert.Equal(t, session.ClockIdle, res.Session.Clock)
	assert.Equal(t, 0, res.Session.Passes)
	assert.Equal(t, session.StepIdle, res.Session.Step)

	g, err := svc.game.GetGame(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, g.Offenses, 1)
	assert.Equal(t, res.Offense.ID, g.Offenses[0].ID)
}

func TestSessionService_ZeroElapsedIsDiscarded(t *testing.T) {
	ctx := t.Context()
	svc := newTestServices(t, game.Game{ID: "g1", YourTeam: rosterOf(5)})
	_, err := svc.session.Open(ctx, "g1")
	require.NoError(t, err)

	_, err = svc.session.BeginTurnover(ctx, "g1")
	require.NoError(t, err)
	res, err := svc.session.Confirm(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, session.KindDiscarded, res.Transition)
	assert.Nil(t, res.Offense)

	g, err := svc.game.GetGame(ctx, "g1")
	require.NoError(t, err)
	assert.Empty(t, g.Offenses)
}

func TestSessionService_FailedWriteIsRetriedWithNextOffense(t *testing.T) {
	ctx := t.Context()
	svc := newTestServices(t, game.Game{ID: "g1", YourTeam: rosterOf(5)})
	_, err := svc.session.Open(ctx, "g1")
	require.NoError(t, err)

	recordTurnover := func() SessionResult {
		t.Helper()
		_, err := svc.session.StartClock("g1")
		require.NoError(t, err)
		svc.clock.Advance(5 * time.Second)
		_, err = svc.session.BeginTurnover(ctx, "g1")
		require.NoError(t, err)
		_, err = svc.session.SelectPlayer(ctx, "g1", "A1")
		require.NoError(t, err)
		res, err := svc.session.Confirm(ctx, "g1")
		require.NoError(t, err)
		require.Equal(t, session.KindRecorded, res.Transition)
		return res
	}

	svc.games.setFailSave(true)
	first := recordTurnover()
	assert.False(t, first.Persisted)
	assert.Equal(t, 1, first.Unsaved)
	assert.Equal(t, session.ClockIdle, first.Session.Clock, "live state resets even when the write fails")

	g, err := svc.game.GetGame(ctx, "g1")
	require.NoError(t, err)
	assert.Empty(t, g.Offenses)

	svc.games.setFailSave(false)
	second := recordTurnover()
	assert.True(t, second.Persisted)
	assert.Equal(t, 0, second.Unsaved)

	g, err = svc.game.GetGame(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, g.Offenses, 2)
	assert.Equal(t, first.Offense.ID, g.Offenses[0].ID)
	assert.Equal(t, second.Offense.ID, g.Offenses[1].ID)
}

func TestSessionService_PaddedGameIDSharesSession(t *testing.T) {
	ctx := t.Context()
	svc := newTestServices(t, game.Game{ID: "g1", YourTeam: rosterOf(5)})
	_, err := svc.session.Open(ctx, " g1 ")
	require.NoError(t, err)

	res, err := svc.session.BeginShot(ctx, "g1 ")
	require.NoError(t, err)
	assert.Equal(t, session.KindPending, res.Transition)

	require.NoError(t, svc.game.DeleteGame(ctx, " g1"))
	_, err = svc.session.Get("g1")
	assert.ErrorIs(t, err, ErrNotFound, "deleting the game closes its live session")
}

func TestSessionService_ErrorClassification(t *testing.T) {
	ctx := t.Context()
	svc := newTestServices(t, game.Game{ID: "g1", YourTeam: rosterOf(7)})
	_, err := svc.session.Open(ctx, "g1")
	require.NoError(t, err)

	_, err = svc.session.ToggleLineup("g1", "F1")
	require.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, err, session.ErrLineupFull)

	_, err = svc.session.ToggleLineup("g1", "nobody")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.session.BeginShot(ctx, "g1")
	require.NoError(t, err)
	_, err = svc.session.StartClock("g1")
	require.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, err, session.ErrFlowActive)

	_, err = svc.session.SelectShotType(ctx, "g1", game.ShotType(4))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.session.Confirm(ctx, "g1")
	assert.ErrorIs(t, err, ErrConflict)

	res, err := svc.session.Cancel(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, session.KindCancelled, res.Transition)

	_, err = svc.session.Get("other")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionService_FoulRequiresFreeThrow(t *testing.T) {
	ctx := t.Context()
	svc := newTestServices(t, game.Game{ID: "g1", YourTeam: rosterOf(5)})
	_, err := svc.session.Open(ctx, "g1")
	require.NoError(t, err)
	_, err = svc.session.StartClock("g1")
	require.NoError(t, err)
	svc.clock.Advance(3 * time.Second)

	_, err = svc.session.BeginShot(ctx, "g1")
	require.NoError(t, err)
	_, err = svc.session.SelectShotType(ctx, "g1", game.ShotTwo)
	require.NoError(t, err)
	_, err = svc.session.SelectResult(ctx, "g1", game.ResultFoul)
	require.NoError(t, err)

	_, err = svc.session.Confirm(ctx, "g1")
	require.ErrorIs(t, err, session.ErrNoFreeThrows)

	_, err = svc.session.MarkFreeThrow(ctx, "g1", 0, session.FreeThrowMade)
	require.NoError(t, err)
	_, err = svc.session.MarkFreeThrow(ctx, "g1", 2, session.FreeThrowMissed)
	require.NoError(t, err)
	res, err := svc.session.Confirm(ctx, "g1")
	require.NoError(t, err)
	require.NotNil(t, res.Offense)

	made, taken := res.Offense.Result.FreeThrows()
	assert.Equal(t, 1, made)
	assert.Equal(t, 2, taken)
	assert.Empty(t, res.Offense.Result.PlayerID)
}

func TestSessionService_RosterEditsReachLiveSession(t *testing.T) {
	ctx := t.Context()
	svc := newTestServices(t, game.Game{ID: "g1", YourTeam: rosterOf(5)})
	_, err := svc.session.Open(ctx, "g1")
	require.NoError(t, err)

	require.NoError(t, svc.game.RemovePlayer(ctx, "g1", "B1"))
	snap, err := svc.session.Get("g1")
	require.NoError(t, err)
	assert.NotContains(t, snap.OnCourt, "B1")
	assert.False(t, snap.Team.HasPlayer("B1"))

	added, err := svc.game.AddPlayer(ctx, "g1", "Zed", nil)
	require.NoError(t, err)
	_, err = svc.session.ToggleLineup("g1", added.ID)
	require.NoError(t, err)
	snap, err = svc.session.Get("g1")
	require.NoError(t, err)
	assert.Contains(t, snap.OnCourt, added.ID)
}

func TestSessionService_CloseStopsTimer(t *testing.T) {
	ctx := t.Context()
	svc := newTestServices(t, game.Game{ID: "g1", YourTeam: rosterOf(5)})
	_, err := svc.session.Open(ctx, "g1")
	require.NoError(t, err)
	_, err = svc.session.StartClock("g1")
	require.NoError(t, err)
	require.Equal(t, 1, svc.sched.Active())

	require.NoError(t, svc.session.Close("g1"))
	assert.Equal(t, 0, svc.sched.Active())

	if err := svc.session.Close("g1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second close, got %v", err)
	}
}
