package session

import (
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/court-sense/internal/domain/game"
	"github.com/riskibarqy/court-sense/internal/domain/roster"
)

// Lineup is the on-court set, kept in the order players were added.
type Lineup struct {
	ids []string
}

// DefaultLineup puts the first five roster players on court.
func DefaultLineup(team roster.Team) Lineup {
	ids := team.PlayerIDs()
	if len(ids) > game.MaxOnCourt {
		ids = ids[:game.MaxOnCourt]
	}
	return Lineup{ids: ids}
}

func (l *Lineup) Contains(playerID string) bool {
	return slices.Contains(l.ids, playerID)
}

// Toggle takes a player off court or puts them on. A sixth player is refused and the
// lineup is left unchanged.
func (l *Lineup) Toggle(playerID string) (onCourt bool, err error) {
	if i := slices.Index(l.ids, playerID); i >= 0 {
		l.ids = slices.Delete(slices.Clone(l.ids), i, i+1)
		return false, nil
	}
	if len(l.ids) >= game.MaxOnCourt {
		return false, errors.Wrapf(ErrLineupFull, "player %s", playerID)
	}
	l.ids = append(slices.Clone(l.ids), playerID)
	return true, nil
}

// Retain drops players that are no longer on the roster.
func (l *Lineup) Retain(team roster.Team) {
	out := make([]string, 0, len(l.ids))
	for _, id := range l.ids {
		if team.HasPlayer(id) {
			out = append(out, id)
		}
	}
	l.ids = out
}

// Snapshot returns an independent copy of the on-court ids.
func (l *Lineup) Snapshot() []string {
	return slices.Clone(l.ids)
}

func (l *Lineup) Len() int {
	return len(l.ids)
}
