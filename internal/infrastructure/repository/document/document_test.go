package document

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/court-sense/internal/domain/game"
	"github.com/riskibarqy/court-sense/internal/domain/roster"
)

func TestDecodeGame_LegacyRecord(t *testing.T) {
	raw := []byte(`{
		"id": "1700000000000",
		"yourTeam": {"id": "t1", "name": "Hawks", "players": [
			{"id": "p1", "name": "Ana"},
			{"id": "p2", "name": "Ben", "number": 0}
		]},
		"opponentTeam": {"name": "Owls"},
		"date": "2026-03-01",
		"offenses": [
			{"id": "o1", "time": 12, "passes": 3, "playersOnCourt": ["p1", "p2"], "timestamp": 1700000001000,
			 "result": {"type": "miss", "playerId": "p1", "shotType": 3, "offensiveRebound": false}},
			{"id": "o2", "time": 4, "passes": 0, "playersOnCourt": ["p2"], "timestamp": 1700000002000,
			 "result": {"type": "foul", "shotType": 2, "foulShots": [{"made": true}, {"made": false}]}}
		]
	}`)

	g, err := DecodeGame(raw)
	require.NoError(t, err)

	assert.Equal(t, roster.NumberUnset, g.YourTeam.Players[0].Number, "missing number is flagged for migration")
	assert.Equal(t, 0, g.YourTeam.Players[1].Number)
	assert.Equal(t, 0, g.CurrentQuarter)
	assert.Nil(t, g.YourTeamScore)

	require.Len(t, g.Offenses, 2)
	assert.Equal(t, game.MissResult("p1", game.ShotThree, false), g.Offenses[0].Result)
	assert.Equal(t, time.UnixMilli(1700000001000).UTC(), g.Offenses[0].Timestamp)

	made, taken := g.Offenses[1].Result.FreeThrows()
	assert.Equal(t, 1, made)
	assert.Equal(t, 2, taken)
	assert.Empty(t, g.Offenses[1].Result.PlayerID)
}

func TestEncodeGame_OmitsAbsentFields(t *testing.T) {
	score := 41
	g := game.Game{
		ID:             "g1",
		YourTeam:       roster.Team{ID: "t1", Name: "Hawks", Players: []roster.Player{{ID: "p1", Name: "Ana", Number: 7}}},
		CurrentQuarter: 2,
		YourTeamScore:  &score,
		Offenses: []game.Offense{
			{ID: "o1", Time: 5, Result: game.TurnoverResult(""), PlayersOnCourt: []string{"p1"}, Timestamp: time.UnixMilli(1700000000000)},
		},
	}

	b, err := EncodeGame(g)
	require.NoError(t, err)

	s := string(b)
	assert.Contains(t, s, `"currentQuarter":2`)
	assert.Contains(t, s, `"yourTeamScore":41`)
	assert.NotContains(t, s, `"opponentScore"`)
	assert.Contains(t, s, `"result":{"type":"turnover"}`)

	back, err := DecodeGame(b)
	require.NoError(t, err)
	assert.Equal(t, g.Clone().Offenses[0].Result, back.Offenses[0].Result)
	assert.Equal(t, 2, back.CurrentQuarter)
	require.NotNil(t, back.YourTeamScore)
	assert.Equal(t, 41, *back.YourTeamScore)
}

func TestDecodeTeam_Invalid(t *testing.T) {
	_, err := DecodeTeam([]byte(`{"id": 5`))
	assert.Error(t, err)
}
