package memory

import (
	"testing"

	"github.com/riskibarqy/court-sense/internal/domain/game"
	"github.com/riskibarqy/court-sense/internal/domain/roster"
)

func TestGameRepository_UpsertKeepsOrder(t *testing.T) {
	ctx := t.Context()
	repo := NewGameRepository()

	for _, id := range []string{"g1", "g2", "g3"} {
		if err := repo.SaveGame(ctx, game.Game{ID: id}); err != nil {
			t.Fatalf("save game %s: %v", id, err)
		}
	}
	if err := repo.SaveGame(ctx, game.Game{ID: "g2", Date: "2026-03-01"}); err != nil {
		t.Fatalf("update game: %v", err)
	}

	games, err := repo.LoadGames(ctx)
	if err != nil {
		t.Fatalf("load games: %v", err)
	}
	if len(games) != 3 || games[1].ID != "g2" || games[1].Date != "2026-03-01" {
		t.Fatalf("unexpected games after upsert: %+v", games)
	}

	if err := repo.DeleteGame(ctx, "g2"); err != nil {
		t.Fatalf("delete game: %v", err)
	}
	if _, ok, _ := repo.GetGame(ctx, "g2"); ok {
		t.Fatalf("expected g2 to be deleted")
	}
	if err := repo.DeleteGame(ctx, "missing"); err != nil {
		t.Fatalf("delete missing game: %v", err)
	}
}

func TestGameRepository_ReturnsCopies(t *testing.T) {
	ctx := t.Context()
	repo := NewGameRepository(game.Game{ID: "g1", Offenses: []game.Offense{{ID: "o1", PlayersOnCourt: []string{"p1"}}}})

	g, ok, err := repo.GetGame(ctx, "g1")
	if err != nil || !ok {
		t.Fatalf("get game: ok=%v err=%v", ok, err)
	}
	g.Offenses[0].PlayersOnCourt[0] = "changed"

	again, _, _ := repo.GetGame(ctx, "g1")
	if again.Offenses[0].PlayersOnCourt[0] != "p1" {
		t.Fatalf("stored game was mutated through a returned copy")
	}
}

func TestTeamRepository_SaveTeamsOverwrites(t *testing.T) {
	ctx := t.Context()
	repo := NewTeamRepository(roster.Team{ID: "t1", Name: "Hawks"})

	if err := repo.SaveTeams(ctx, []roster.Team{{ID: "t2", Name: "Owls"}}); err != nil {
		t.Fatalf("save teams: %v", err)
	}
	teams, err := repo.LoadTeams(ctx)
	if err != nil {
		t.Fatalf("load teams: %v", err)
	}
	if len(teams) != 1 || teams[0].ID != "t2" {
		t.Fatalf("unexpected teams: %+v", teams)
	}
}
