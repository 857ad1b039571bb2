package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/riskibarqy/court-sense/internal/domain/roster"
)

// TeamService manages the reusable team list. Teams are keyed by name: saving a name
// that already exists merges rosters instead of adding a second entry.
type TeamService struct {
	teamRepo roster.Repository
	// saveMu serializes the load, merge and save of the whole list.
	saveMu sync.Mutex
}

func NewTeamService(teamRepo roster.Repository) *TeamService {
	return &TeamService{teamRepo: teamRepo}
}

func (s *TeamService) SaveTeam(ctx context.Context, team roster.Team) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.SaveTeam")
	defer span.End()

	team.Name = strings.TrimSpace(team.Name)
	if team.Name == "" {
		return fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	stored, err := s.teamRepo.LoadTeams(ctx)
	if err != nil {
		return fmt.Errorf("%w: load teams: %w", ErrDependencyUnavailable, err)
	}

	if err := s.teamRepo.SaveTeams(ctx, roster.MergeIntoStored(stored, team)); err != nil {
		return fmt.Errorf("%w: save teams: %w", ErrDependencyUnavailable, err)
	}
	return nil
}

// GetTeamByName returns the first stored team with the name, carrying the merged roster
// of every team sharing it.
func (s *TeamService) GetTeamByName(ctx context.Context, name string) (roster.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeamByName")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return roster.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	stored, err := s.teamRepo.LoadTeams(ctx)
	if err != nil {
		return roster.Team{}, fmt.Errorf("%w: load teams: %w", ErrDependencyUnavailable, err)
	}

	team, ok := roster.FindMerged(stored, name)
	if !ok {
		return roster.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, name)
	}
	return team, nil
}

func (s *TeamService) ListTeamNames(ctx context.Context) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListTeamNames")
	defer span.End()

	stored, err := s.teamRepo.LoadTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load teams: %w", ErrDependencyUnavailable, err)
	}
	return roster.Names(stored), nil
}
