package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/court-sense/internal/domain/game"
	"github.com/riskibarqy/court-sense/internal/domain/roster"
)

func TestGameService_CreateGame(t *testing.T) {
	ctx := t.Context()
	svc := newTestServices(t)

	t.Run("empty team dated today", func(t *testing.T) {
		g, err := svc.game.CreateGame(ctx, CreateGameInput{})
		require.NoError(t, err)
		assert.Equal(t, "2026-03-01", g.Date)
		assert.Empty(t, g.YourTeam.Players)
		assert.Empty(t, g.OpponentTeam.Name)
		assert.Empty(t, g.Offenses)
	})

	t.Run("from stored team gets a fresh team id", func(t *testing.T) {
		require.NoError(t, svc.team.SaveTeam(ctx, rosterOf(3)))

		g, err := svc.game.CreateGame(ctx, CreateGameInput{TeamName: "Hawks"})
		require.NoError(t, err)
		assert.NotEqual(t, "t1", g.YourTeam.ID)
		assert.Equal(t, "Hawks", g.YourTeam.Name)
		assert.Len(t, g.YourTeam.Players, 3)
	})

	t.Run("unknown stored team", func(t *testing.T) {
		_, err := svc.game.CreateGame(ctx, CreateGameInput{TeamName: "Nobody"})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestGameService_GetGameMigratesMissingNumbers(t *testing.T) {
	ctx := t.Context()
	seed := game.Game{
		ID: "g1",
		YourTeam: roster.Team{ID: "t1", Name: "Hawks", Players: []roster.Player{
			{ID: "p1", Name: "Ana", Number: roster.NumberUnset},
			{ID: "p2", Name: "Ben", Number: 11},
			{ID: "p3", Name: "Cai", Number: roster.NumberUnset},
		}},
	}
	svc := newTestServices(t, seed)

	g, err := svc.game.GetGame(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, []int{4, 11, 6}, []int{g.YourTeam.Players[0].Number, g.YourTeam.Players[1].Number, g.YourTeam.Players[2].Number})

	stored, ok, err := svc.games.GetGame(ctx, "g1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 4, stored.YourTeam.Players[0].Number, "migration is persisted")

	_, err = svc.game.GetGame(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGameService_UpdateSetup(t *testing.T) {
	ctx := t.Context()
	svc := newTestServices(t, game.Game{ID: "g1", YourTeam: rosterOf(2)})

	_, err := svc.game.UpdateSetup(ctx, "g1", GameSetupInput{TeamName: "  "})
	require.ErrorIs(t, err, ErrInvalidInput)

	quarter := 2
	g, err := svc.game.UpdateSetup(ctx, "g1", GameSetupInput{TeamName: " Eagles ", CurrentQuarter: &quarter})
	require.NoError(t, err)
	assert.Equal(t, "Eagles", g.YourTeam.Name)
	assert.Equal(t, "Opponent", g.OpponentTeam.Name)
	assert.Equal(t, 2, g.CurrentQuarter)

	names, err := svc.team.ListTeamNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Eagles"}, names, "setup saves the team for reuse")

	bad := "03/01/2026"
	_, err = svc.game.UpdateSetup(ctx, "g1", GameSetupInput{TeamName: "Eagles", Date: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGameService_Players(t *testing.T) {
	ctx := t.Context()
	svc := newTestServices(t, game.Game{ID: "g1", YourTeam: roster.Team{ID: "t1"}})

	first, err := svc.game.AddPlayer(ctx, "g1", " Ana ", nil)
	require.NoError(t, err)
	assert.Equal(t, "Ana", first.Name)
	assert.Equal(t, 4, first.Number, "empty roster starts at four")

	twenty := 20
	_, err = svc.game.AddPlayer(ctx, "g1", "Ben", &twenty)
	require.NoError(t, err)

	next, err := svc.game.AddPlayer(ctx, "g1", "Cai", nil)
	require.NoError(t, err)
	assert.Equal(t, 21, next.Number)

	_, err = svc.game.AddPlayer(ctx, "g1", "", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.game.UpdatePlayerNumber(ctx, "g1", first.ID, 100)
	assert.ErrorIs(t, err, ErrInvalidInput)
	updated, err := svc.game.UpdatePlayerNumber(ctx, "g1", first.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Number)

	require.NoError(t, svc.game.RemovePlayer(ctx, "g1", first.ID))
	err = svc.game.RemovePlayer(ctx, "g1", first.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	g, err := svc.game.GetGame(ctx, "g1")
	require.NoError(t, err)
	assert.Len(t, g.YourTeam.Players, 2)
}

func TestGameService_DeleteOffenseAndGame(t *testing.T) {
	ctx := t.Context()
	seed := game.Game{
		ID:       "g1",
		YourTeam: rosterOf(1),
		Offenses: []game.Offense{
			{ID: "o1", Time: 5, Result: game.TurnoverResult("")},
			{ID: "o2", Time: 7, Result: game.ScoreResult("A1", game.ShotTwo)},
		},
	}
	svc := newTestServices(t, seed)

	require.NoError(t, svc.game.DeleteOffense(ctx, "g1", "o1"))
	err := svc.game.DeleteOffense(ctx, "g1", "o1")
	assert.ErrorIs(t, err, ErrNotFound)

	g, err := svc.game.GetGame(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, g.Offenses, 1)
	assert.Equal(t, "o2", g.Offenses[0].ID)

	_, err = svc.session.Open(ctx, "g1")
	require.NoError(t, err)

	require.NoError(t, svc.game.DeleteGame(ctx, "g1"))
	if _, err := svc.session.Get("g1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected live session to be closed with the game, got %v", err)
	}
	assert.ErrorIs(t, svc.game.DeleteGame(ctx, "g1"), ErrNotFound)
}
