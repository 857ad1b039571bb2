package redis

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/court-sense/internal/domain/game"
	"github.com/riskibarqy/court-sense/internal/domain/roster"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return New(client, "cs-test"), mr
}

func TestStore_SaveGameKeepsInsertionOrder(t *testing.T) {
	ctx := t.Context()
	s, mr := newTestStore(t)

	for _, id := range []string{"g1", "g2", "g3"} {
		require.NoError(t, s.SaveGame(ctx, game.Game{ID: id}))
	}
	require.NoError(t, s.SaveGame(ctx, game.Game{ID: "g2", Date: "2026-03-01"}))

	games, err := s.LoadGames(ctx)
	require.NoError(t, err)
	require.Len(t, games, 3)
	assert.Equal(t, []string{"g1", "g2", "g3"}, []string{games[0].ID, games[1].ID, games[2].ID})
	assert.Equal(t, "2026-03-01", games[1].Date)

	order, err := mr.List("cs-test:games:order")
	require.NoError(t, err)
	assert.Equal(t, []string{"g1", "g2", "g3"}, order, "upsert does not duplicate the id")
}

func TestStore_GetAndDeleteGame(t *testing.T) {
	ctx := t.Context()
	s, _ := newTestStore(t)

	g := game.Game{
		ID:       "g1",
		YourTeam: roster.Team{ID: "t1", Name: "Hawks", Players: []roster.Player{{ID: "p1", Name: "Ana", Number: 4}}},
		Offenses: []game.Offense{{ID: "o1", Time: 7, Result: game.MissResult("p1", game.ShotThree, false), PlayersOnCourt: []string{"p1"}}},
	}
	require.NoError(t, s.SaveGame(ctx, g))

	got, ok, err := s.GetGame(ctx, "g1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, g.Offenses[0].Result, got.Offenses[0].Result)

	require.NoError(t, s.DeleteGame(ctx, "g1"))
	_, ok, err = s.GetGame(ctx, "g1")
	require.NoError(t, err)
	assert.False(t, ok)

	games, err := s.LoadGames(ctx)
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestStore_SaveGamesOverwrites(t *testing.T) {
	ctx := t.Context()
	s, _ := newTestStore(t)

	require.NoError(t, s.SaveGame(ctx, game.Game{ID: "old"}))
	require.NoError(t, s.SaveGames(ctx, []game.Game{{ID: "b"}, {ID: "a"}}))

	games, err := s.LoadGames(ctx)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "b", games[0].ID)
	assert.Equal(t, "a", games[1].ID)

	require.NoError(t, s.SaveGames(ctx, nil))
	games, err = s.LoadGames(ctx)
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestStore_Teams(t *testing.T) {
	ctx := t.Context()
	s, _ := newTestStore(t)

	teams, err := s.LoadTeams(ctx)
	require.NoError(t, err)
	assert.Empty(t, teams)

	require.NoError(t, s.SaveTeams(ctx, []roster.Team{{ID: "t1", Name: "Hawks", Players: []roster.Player{{ID: "p1", Name: "Ana", Number: roster.NumberUnset}}}}))
	teams, err = s.LoadTeams(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, roster.NumberUnset, teams[0].Players[0].Number)
}

func TestStore_ConnectionFailure(t *testing.T) {
	s, mr := newTestStore(t)
	mr.Close()

	_, err := s.LoadGames(t.Context())
	assert.Error(t, err)
}
