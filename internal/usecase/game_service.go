package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/court-sense/internal/domain/game"
	"github.com/riskibarqy/court-sense/internal/domain/roster"
	"github.com/riskibarqy/court-sense/internal/domain/stats"
	"github.com/riskibarqy/court-sense/internal/platform/id"
	"github.com/riskibarqy/court-sense/internal/platform/logging"
)

const gameDateLayout = "2006-01-02"

// liveSessions is the part of the session registry that roster edits must keep in sync.
type liveSessions interface {
	RefreshTeam(gameID string, team roster.Team)
	CloseSession(gameID string) bool
}

type CreateGameInput struct {
	// TeamName, when set, seeds the game with the merged stored roster of that name.
	TeamName string
}

type GameSetupInput struct {
	TeamName       string
	OpponentName   string
	Date           *string
	CurrentQuarter *int
	YourTeamScore  *int
	OpponentScore  *int
}

type GameService struct {
	gameRepo game.Repository
	teams    *TeamService
	locks    *GameLocks
	ids      id.Generator
	now      func() time.Time
	logger   *logging.Logger
	sessions liveSessions
}

func NewGameService(
	gameRepo game.Repository,
	teams *TeamService,
	locks *GameLocks,
	ids id.Generator,
	logger *logging.Logger,
) *GameService {
	if logger == nil {
		logger = logging.Default()
	}
	if locks == nil {
		locks = NewGameLocks()
	}
	return &GameService{
		gameRepo: gameRepo,
		teams:    teams,
		locks:    locks,
		ids:      ids,
		now:      time.Now,
		logger:   logger,
	}
}

// AttachSessions lets roster edits and deletions reach open live sessions.
func (s *GameService) AttachSessions(sessions liveSessions) {
	s.sessions = sessions
}

func (s *GameService) CreateGame(ctx context.Context, input CreateGameInput) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.CreateGame")
	defer span.End()

	gameID, err := s.ids.NewID()
	if err != nil {
		return game.Game{}, fmt.Errorf("generate game id: %w", err)
	}
	teamID, err := s.ids.NewID()
	if err != nil {
		return game.Game{}, fmt.Errorf("generate team id: %w", err)
	}

	team := roster.Team{ID: teamID, Players: []roster.Player{}}
	if name := strings.TrimSpace(input.TeamName); name != "" {
		stored, err := s.teams.GetTeamByName(ctx, name)
		if err != nil {
			return game.Game{}, err
		}
		team = stored.Clone()
		team.ID = teamID
	}

	g := game.Game{
		ID:       gameID,
		YourTeam: team,
		Date:     s.now().Format(gameDateLayout),
		Offenses: []game.Offense{},
	}
	if err := s.gameRepo.SaveGame(ctx, g); err != nil {
		return game.Game{}, fmt.Errorf("%w: save game: %w", ErrDependencyUnavailable, err)
	}
	return g, nil
}

func (s *GameService) ListGames(ctx context.Context) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.ListGames")
	defer span.End()

	games, err := s.gameRepo.LoadGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load games: %w", ErrDependencyUnavailable, err)
	}
	return games, nil
}

// GetGame loads a game and gives players stored without a number the value 4+index. The
// migration is persisted; a failed write is logged and the migrated game still returned.
func (s *GameService) GetGame(ctx context.Context, gameID string) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.GetGame")
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return game.Game{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	unlock := s.locks.Lock(gameID)
	defer unlock()

	g, err := s.loadGame(ctx, gameID)
	if err != nil {
		return game.Game{}, err
	}

	players, changed := roster.AssignMissingNumbers(g.YourTeam.Players)
	if !changed {
		return g, nil
	}
	g.YourTeam.Players = players
	if err := s.gameRepo.SaveGame(ctx, g); err != nil {
		s.logger.WarnContext(ctx, "persist player number migration failed", "game_id", gameID, "error", err)
	}
	return g, nil
}

func (s *GameService) DeleteGame(ctx context.Context, gameID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.DeleteGame")
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	unlock := s.locks.Lock(gameID)
	defer unlock()

	if _, err := s.loadGame(ctx, gameID); err != nil {
		return err
	}
	if err := s.gameRepo.DeleteGame(ctx, gameID); err != nil {
		return fmt.Errorf("%w: delete game: %w", ErrDependencyUnavailable, err)
	}
	if s.sessions != nil {
		s.sessions.CloseSession(gameID)
	}
	return nil
}

// UpdateSetup saves team and opponent names plus the optional score fields, then stores
// the team for reuse.
func (s *GameService) UpdateSetup(ctx context.Context, gameID string, input GameSetupInput) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.UpdateSetup")
	defer span.End()

	teamName := strings.TrimSpace(input.TeamName)
	if teamName == "" {
		return game.Game{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	opponent := strings.TrimSpace(input.OpponentName)
	if opponent == "" {
		opponent = stats.DefaultOpponent
	}
	if input.Date != nil {
		if _, err := time.Parse(gameDateLayout, strings.TrimSpace(*input.Date)); err != nil {
			return game.Game{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
		}
	}
	for name, v := range map[string]*int{
		"current quarter": input.CurrentQuarter,
		"your team score": input.YourTeamScore,
		"opponent score":  input.OpponentScore,
	} {
		if v != nil && *v < 0 {
			return game.Game{}, fmt.Errorf("%w: %s must be >= 0", ErrInvalidInput, name)
		}
	}

	g, err := s.mutate(ctx, gameID, func(g *game.Game) error {
		g.YourTeam.Name = teamName
		g.OpponentTeam.Name = opponent
		if input.Date != nil {
			g.Date = strings.TrimSpace(*input.Date)
		}
		if input.CurrentQuarter != nil {
			g.CurrentQuarter = *input.CurrentQuarter
		}
		if input.YourTeamScore != nil {
			v := *input.YourTeamScore
			g.YourTeamScore = &v
		}
		if input.OpponentScore != nil {
			v := *input.OpponentScore
			g.OpponentScore = &v
		}
		return nil
	})
	if err != nil {
		return game.Game{}, err
	}

	if err := s.teams.SaveTeam(ctx, g.YourTeam); err != nil {
		return game.Game{}, err
	}
	return g, nil
}

// AddPlayer appends a player. Without an explicit number the next free one is used.
func (s *GameService) AddPlayer(ctx context.Context, gameID, name string, number *int) (roster.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.AddPlayer")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return roster.Player{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	if number != nil {
		if err := roster.ValidateNumber(*number); err != nil {
			return roster.Player{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}
	playerID, err := s.ids.NewID()
	if err != nil {
		return roster.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	var added roster.Player
	_, err = s.mutate(ctx, gameID, func(g *game.Game) error {
		added = roster.Player{ID: playerID, Name: name, Number: roster.NextNumber(g.YourTeam.Players)}
		if number != nil {
			added.Number = *number
		}
		g.YourTeam.Players = append(g.YourTeam.Players, added)
		return nil
	})
	if err != nil {
		return roster.Player{}, err
	}
	return added, nil
}

func (s *GameService) UpdatePlayerNumber(ctx context.Context, gameID, playerID string, number int) (roster.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.UpdatePlayerNumber")
	defer span.End()

	if err := roster.ValidateNumber(number); err != nil {
		return roster.Player{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	var updated roster.Player
	_, err := s.mutate(ctx, gameID, func(g *game.Game) error {
		for i, p := range g.YourTeam.Players {
			if p.ID == playerID {
				g.YourTeam.Players[i].Number = number
				updated = g.YourTeam.Players[i]
				return nil
			}
		}
		return fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	})
	if err != nil {
		return roster.Player{}, err
	}
	return updated, nil
}

// RemovePlayer drops a player from the roster. Offenses already recorded keep the id.
func (s *GameService) RemovePlayer(ctx context.Context, gameID, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.RemovePlayer")
	defer span.End()

	_, err := s.mutate(ctx, gameID, func(g *game.Game) error {
		players := make([]roster.Player, 0, len(g.YourTeam.Players))
		for _, p := range g.YourTeam.Players {
			if p.ID != playerID {
				players = append(players, p)
			}
		}
		if len(players) == len(g.YourTeam.Players) {
			return fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
		}
		g.YourTeam.Players = players
		return nil
	})
	return err
}

func (s *GameService) DeleteOffense(ctx context.Context, gameID, offenseID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.DeleteOffense")
	defer span.End()

	_, err := s.mutate(ctx, gameID, func(g *game.Game) error {
		if err := g.RemoveOffense(offenseID); err != nil {
			if errors.Is(err, game.ErrOffenseNotFound) {
				return fmt.Errorf("%w: offense=%s", ErrNotFound, offenseID)
			}
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return nil
	})
	return err
}

// mutate applies fn to the stored game under the game lock, saves it and pushes the
// roster to a live session.
func (s *GameService) mutate(ctx context.Context, gameID string, fn func(*game.Game) error) (game.Game, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return game.Game{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	unlock := s.locks.Lock(gameID)
	defer unlock()

	g, err := s.loadGame(ctx, gameID)
	if err != nil {
		return game.Game{}, err
	}
	if err := fn(&g); err != nil {
		return game.Game{}, err
	}
	if err := s.gameRepo.SaveGame(ctx, g); err != nil {
		return game.Game{}, fmt.Errorf("%w: save game: %w", ErrDependencyUnavailable, err)
	}

	if s.sessions != nil {
		s.sessions.RefreshTeam(gameID, g.YourTeam)
	}
	return g, nil
}

func (s *GameService) loadGame(ctx context.Context, gameID string) (game.Game, error) {
	g, ok, err := s.gameRepo.GetGame(ctx, gameID)
	if err != nil {
		return game.Game{}, fmt.Errorf("%w: get game: %w", ErrDependencyUnavailable, err)
	}
	if !ok {
		return game.Game{}, fmt.Errorf("%w: game=%s", ErrNotFound, gameID)
	}
	return g, nil
}
