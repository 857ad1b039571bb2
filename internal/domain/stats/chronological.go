package stats

import (
	"fmt"

	"github.com/riskibarqy/court-sense/internal/domain/game"
	"github.com/riskibarqy/court-sense/internal/domain/roster"
)

const (
	TeamActorName    = "Team"
	UnknownActorName = "Unknown"
)

type Entry struct {
	Offense    game.Offense
	Label      string
	TimeLabel  string
	PlayerName string
}

// Chronological returns the log in insertion order with display labels.
func Chronological(g game.Game) []Entry {
	out := make([]Entry, 0, len(g.Offenses))
	for _, o := range g.Offenses {
		out = append(out, Entry{
			Offense:    o.Clone(),
			Label:      Label(o.Result),
			TimeLabel:  FormatSeconds(o.Time),
			PlayerName: actorName(g.YourTeam, o.Result.PlayerID),
		})
	}
	return out
}

func Label(r game.OffenseResult) string {
	switch r.Type {
	case game.ResultTurnover:
		return "Turnover"
	case game.ResultScore:
		return fmt.Sprintf("%d-pt Score (%d pts)", r.ShotType, r.Points)
	case game.ResultMiss:
		label := fmt.Sprintf("%d-pt Miss", r.ShotType)
		if r.OffensiveRebound {
			label += " (OR)"
		}
		return label
	case game.ResultFoul:
		made, taken := r.FreeThrows()
		return fmt.Sprintf("Foul (%d/%d FTs)", made, taken)
	default:
		return string(r.Type)
	}
}

func actorName(team roster.Team, playerID string) string {
	if playerID == "" {
		return TeamActorName
	}
	if p, ok := team.Player(playerID); ok {
		return p.Name
	}
	return UnknownActorName
}
