package stats

import (
	"github.com/riskibarqy/court-sense/internal/domain/game"
	"github.com/riskibarqy/court-sense/internal/domain/roster"
)

// ActorRow is one per-actor dashboard row. An empty PlayerID is the team bucket.
type ActorRow struct {
	PlayerID string
	Name     string
	Number   int
	OnRoster bool
	Line
}

type Dashboard struct {
	Totals Line
	Actors []ActorRow
	// GrandTotal is derived from the full log, not from the actor rows.
	GrandTotal Line
}

// BuildDashboard computes the aggregate, the per-actor rows and the grand total. Roster
// players come first in roster order, then ids missing from the roster in order of first
// appearance, then the team bucket. Actors without offenses are omitted.
func BuildDashboard(g game.Game) Dashboard {
	byActor := make(map[string][]game.Offense)
	var unknown []string
	for _, o := range g.Offenses {
		id := o.Result.PlayerID
		if _, seen := byActor[id]; !seen && id != "" && !g.YourTeam.HasPlayer(id) {
			unknown = append(unknown, id)
		}
		byActor[id] = append(byActor[id], o)
	}

	rows := make([]ActorRow, 0, len(byActor))
	for _, p := range g.YourTeam.Players {
		offenses, ok := byActor[p.ID]
		if !ok {
			continue
		}
		rows = append(rows, ActorRow{PlayerID: p.ID, Name: p.Name, Number: p.Number, OnRoster: true, Line: tally(offenses)})
	}
	for _, id := range unknown {
		rows = append(rows, ActorRow{PlayerID: id, Name: UnknownActorName, Number: roster.NumberUnset, Line: tally(byActor[id])})
	}
	if offenses, ok := byActor[""]; ok {
		rows = append(rows, ActorRow{Name: TeamActorName, Number: roster.NumberUnset, Line: tally(offenses)})
	}

	return Dashboard{
		Totals:     tally(g.Offenses),
		Actors:     rows,
		GrandTotal: tally(g.Offenses),
	}
}

// Consistent reports whether the actor rows add up to the grand total.
func (d Dashboard) Consistent() bool {
	var sum Line
	for _, r := range d.Actors {
		sum.Offenses += r.Offenses
		sum.TotalTime += r.TotalTime
		sum.TotalPasses += r.TotalPasses
		sum.Scores += r.Scores
		sum.Misses += r.Misses
		sum.Fouls += r.Fouls
		sum.Turnovers += r.Turnovers
		sum.Points += r.Points
		sum.FreeThrowsMade += r.FreeThrowsMade
		sum.FreeThrowsAttempted += r.FreeThrowsAttempted
		sum.TwoPoint.Attempts += r.TwoPoint.Attempts
		sum.TwoPoint.Made += r.TwoPoint.Made
		sum.ThreePoint.Attempts += r.ThreePoint.Attempts
		sum.ThreePoint.Made += r.ThreePoint.Made
	}
	sum.finish()
	return sum == d.GrandTotal
}
