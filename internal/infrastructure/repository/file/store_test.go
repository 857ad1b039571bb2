package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/court-sense/internal/domain/game"
	"github.com/riskibarqy/court-sense/internal/domain/roster"
)

func TestStore_GamesSurviveReopen(t *testing.T) {
	ctx := t.Context()
	path := filepath.Join(t.TempDir(), "nested", "store.json")

	s, err := New(path)
	require.NoError(t, err)

	g := game.Game{
		ID:       "g1",
		YourTeam: roster.Team{ID: "t1", Name: "Hawks", Players: []roster.Player{{ID: "p1", Name: "Ana", Number: 4}}},
		Date:     "2026-03-01",
		Offenses: []game.Offense{{
			ID: "o1", Time: 8, Passes: 2,
			Result:         game.ScoreResult("p1", game.ShotTwo),
			PlayersOnCourt: []string{"p1"},
			Timestamp:      time.UnixMilli(1700000000000).UTC(),
		}},
	}
	require.NoError(t, s.SaveGame(ctx, g))
	require.NoError(t, s.SaveGame(ctx, game.Game{ID: "g2"}))

	reopened, err := New(path)
	require.NoError(t, err)

	got, ok, err := reopened.GetGame(ctx, "g1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, g.Offenses[0].Result, got.Offenses[0].Result)
	assert.Equal(t, g.Offenses[0].Timestamp, got.Offenses[0].Timestamp)
	assert.Equal(t, g.YourTeam, got.YourTeam)

	require.NoError(t, reopened.DeleteGame(ctx, "g1"))
	games, err := reopened.LoadGames(ctx)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "g2", games[0].ID)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestStore_EmptyFileAndTeams(t *testing.T) {
	ctx := t.Context()
	s, err := New(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)

	games, err := s.LoadGames(ctx)
	require.NoError(t, err)
	assert.Empty(t, games)

	teams := []roster.Team{{ID: "t1", Name: "Hawks"}, {ID: "t2", Name: "Owls"}}
	require.NoError(t, s.SaveTeams(ctx, teams))
	got, err := s.LoadTeams(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Owls", got[1].Name)

	_, ok, err := s.GetGame(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := New(path)
	require.NoError(t, err)
	_, err = s.LoadGames(t.Context())
	assert.Error(t, err)
}
