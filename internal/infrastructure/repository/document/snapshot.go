package document

import (
	"github.com/riskibarqy/court-sense/internal/domain/game"
	"github.com/riskibarqy/court-sense/internal/domain/roster"
)

// Snapshot is the whole store as a single document.
type Snapshot struct {
	Games []GameRecord `json:"games"`
	Teams []TeamRecord `json:"teams"`
}

func (s Snapshot) GameList() []game.Game {
	out := make([]game.Game, 0, len(s.Games))
	for _, g := range s.Games {
		out = append(out, g.Game())
	}
	return out
}

func (s Snapshot) TeamList() []roster.Team {
	out := make([]roster.Team, 0, len(s.Teams))
	for _, t := range s.Teams {
		out = append(out, t.Team())
	}
	return out
}

func GameRecords(games []game.Game) []GameRecord {
	out := make([]GameRecord, 0, len(games))
	for _, g := range games {
		out = append(out, FromGame(g))
	}
	return out
}

func TeamRecords(teams []roster.Team) []TeamRecord {
	out := make([]TeamRecord, 0, len(teams))
	for _, t := range teams {
		out = append(out, FromTeam(t))
	}
	return out
}
