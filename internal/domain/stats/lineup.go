package stats

import (
	"slices"
	"strings"

	"github.com/riskibarqy/court-sense/internal/domain/game"
)

type LineupGroup struct {
	Key       string
	PlayerIDs []string
	Names     []string
	Line
}

// LineupKey identifies an on-court set regardless of order.
func LineupKey(playerIDs []string) string {
	sorted := slices.Clone(playerIDs)
	slices.Sort(sorted)
	return strings.Join(sorted, ",")
}

// Lineups groups offenses by on-court set. Groups appear in order of first use and list
// players as they were recorded on that first offense.
func Lineups(g game.Game) []LineupGroup {
	index := make(map[string]int)
	var groups []LineupGroup
	var members [][]game.Offense

	for _, o := range g.Offenses {
		key := LineupKey(o.PlayersOnCourt)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			names := make([]string, 0, len(o.PlayersOnCourt))
			for _, id := range o.PlayersOnCourt {
				names = append(names, lineupName(g, id))
			}
			groups = append(groups, LineupGroup{Key: key, PlayerIDs: slices.Clone(o.PlayersOnCourt), Names: names})
			members = append(members, nil)
		}
		members[i] = append(members[i], o)
	}

	for i := range groups {
		groups[i].Line = tally(members[i])
	}
	return groups
}

func lineupName(g game.Game, playerID string) string {
	if p, ok := g.YourTeam.Player(playerID); ok {
		return p.Name
	}
	return UnknownActorName
}
