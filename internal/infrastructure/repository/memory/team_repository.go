package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/court-sense/internal/domain/roster"
)

type TeamRepository struct {
	mu    sync.RWMutex
	teams []roster.Team
}

func NewTeamRepository(teams ...roster.Team) *TeamRepository {
	return &TeamRepository{teams: cloneTeams(teams)}
}

func (r *TeamRepository) LoadTeams(_ context.Context) ([]roster.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return cloneTeams(r.teams), nil
}

func (r *TeamRepository) SaveTeams(_ context.Context, teams []roster.Team) error {
	next := cloneTeams(teams)

	r.mu.Lock()
	r.teams = next
	r.mu.Unlock()
	return nil
}

func cloneTeams(teams []roster.Team) []roster.Team {
	out := make([]roster.Team, 0, len(teams))
	for _, t := range teams {
		out = append(out, t.Clone())
	}
	return out
}
