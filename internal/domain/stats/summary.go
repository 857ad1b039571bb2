package stats

import (
	"strings"

	"github.com/riskibarqy/court-sense/internal/domain/game"
)

const (
	UnnamedTeam     = "Unnamed Team"
	DefaultOpponent = "Opponent"
)

// Summary is the card shown in the game list.
type Summary struct {
	GameID       string
	TeamName     string
	OpponentName string
	Date         string
	Offenses     int
	Points       int
}

func Summarize(g game.Game) Summary {
	team := strings.TrimSpace(g.YourTeam.Name)
	if team == "" {
		team = UnnamedTeam
	}
	opponent := strings.TrimSpace(g.OpponentTeam.Name)
	if opponent == "" {
		opponent = DefaultOpponent
	}

	points := 0
	for _, o := range g.Offenses {
		points += o.Result.PointsScored()
	}

	return Summary{
		GameID:       g.ID,
		TeamName:     team,
		OpponentName: opponent,
		Date:         g.Date,
		Offenses:     len(g.Offenses),
		Points:       points,
	}
}
