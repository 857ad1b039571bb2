// Package document defines the stored JSON shape of games and teams. Every backend that
// keeps records as opaque documents (file, redis, postgres, sqlite) goes through it, so a
// record written by one backend can be read by any other.
package document

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/court-sense/internal/domain/game"
	"github.com/riskibarqy/court-sense/internal/domain/roster"
)

type PlayerRecord struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Number *int   `json:"number,omitempty"`
}

type TeamRecord struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Players []PlayerRecord `json:"players"`
}

type OpponentRecord struct {
	Name string `json:"name"`
}

type FoulShotRecord struct {
	Made bool `json:"made"`
}

type ResultRecord struct {
	Type             string           `json:"type"`
	PlayerID         string           `json:"playerId,omitempty"`
	Points           int              `json:"points,omitempty"`
	ShotType         int              `json:"shotType,omitempty"`
	OffensiveRebound *bool            `json:"offensiveRebound,omitempty"`
	FoulShots        []FoulShotRecord `json:"foulShots,omitempty"`
}

type OffenseRecord struct {
	ID             string       `json:"id"`
	Time           int          `json:"time"`
	Passes         int          `json:"passes"`
	Result         ResultRecord `json:"result"`
	PlayersOnCourt []string     `json:"playersOnCourt"`
	// Timestamp is epoch milliseconds.
	Timestamp int64 `json:"timestamp"`
}

type GameRecord struct {
	ID             string          `json:"id"`
	YourTeam       TeamRecord      `json:"yourTeam"`
	OpponentTeam   OpponentRecord  `json:"opponentTeam"`
	Date           string          `json:"date"`
	Offenses       []OffenseRecord `json:"offenses"`
	CurrentQuarter *int            `json:"currentQuarter,omitempty"`
	YourTeamScore  *int            `json:"yourTeamScore,omitempty"`
	OpponentScore  *int            `json:"opponentScore,omitempty"`
}

func FromTeam(t roster.Team) TeamRecord {
	players := make([]PlayerRecord, 0, len(t.Players))
	for _, p := range t.Players {
		rec := PlayerRecord{ID: p.ID, Name: p.Name}
		if p.Number != roster.NumberUnset {
			n := p.Number
			rec.Number = &n
		}
		players = append(players, rec)
	}
	return TeamRecord{ID: t.ID, Name: t.Name, Players: players}
}

// Team converts a stored team. A missing number becomes roster.NumberUnset so callers can
// migrate it.
func (r TeamRecord) Team() roster.Team {
	players := make([]roster.Player, 0, len(r.Players))
	for _, p := range r.Players {
		number := roster.NumberUnset
		if p.Number != nil {
			number = *p.Number
		}
		players = append(players, roster.Player{ID: p.ID, Name: p.Name, Number: number})
	}
	return roster.Team{ID: r.ID, Name: r.Name, Players: players}
}

func fromResult(r game.OffenseResult) ResultRecord {
	rec := ResultRecord{
		Type:     string(r.Type),
		PlayerID: r.PlayerID,
		Points:   r.Points,
		ShotType: int(r.ShotType),
	}
	if r.Type == game.ResultMiss {
		or := r.OffensiveRebound
		rec.OffensiveRebound = &or
	}
	for _, s := range r.FoulShots {
		rec.FoulShots = append(rec.FoulShots, FoulShotRecord{Made: s.Made})
	}
	return rec
}

func (r ResultRecord) result() game.OffenseResult {
	out := game.OffenseResult{
		Type:     game.ResultType(r.Type),
		PlayerID: r.PlayerID,
		Points:   r.Points,
		ShotType: game.ShotType(r.ShotType),
	}
	if r.OffensiveRebound != nil {
		out.OffensiveRebound = *r.OffensiveRebound
	}
	for _, s := range r.FoulShots {
		out.FoulShots = append(out.FoulShots, game.FoulShot{Made: s.Made})
	}
	return out
}

func FromGame(g game.Game) GameRecord {
	offenses := make([]OffenseRecord, 0, len(g.Offenses))
	for _, o := range g.Offenses {
		offenses = append(offenses, OffenseRecord{
			ID:             o.ID,
			Time:           o.Time,
			Passes:         o.Passes,
			Result:         fromResult(o.Result),
			PlayersOnCourt: append([]string{}, o.PlayersOnCourt...),
			Timestamp:      o.Timestamp.UnixMilli(),
		})
	}

	rec := GameRecord{
		ID:            g.ID,
		YourTeam:      FromTeam(g.YourTeam),
		OpponentTeam:  OpponentRecord{Name: g.OpponentTeam.Name},
		Date:          g.Date,
		Offenses:      offenses,
		YourTeamScore: copyInt(g.YourTeamScore),
		OpponentScore: copyInt(g.OpponentScore),
	}
	if g.CurrentQuarter > 0 {
		q := g.CurrentQuarter
		rec.CurrentQuarter = &q
	}
	return rec
}

func (r GameRecord) Game() game.Game {
	offenses := make([]game.Offense, 0, len(r.Offenses))
	for _, o := range r.Offenses {
		offenses = append(offenses, game.Offense{
			ID:             o.ID,
			Time:           o.Time,
			Passes:         o.Passes,
			Result:         o.Result.result(),
			PlayersOnCourt: append([]string(nil), o.PlayersOnCourt...),
			Timestamp:      time.UnixMilli(o.Timestamp).UTC(),
		})
	}

	g := game.Game{
		ID:            r.ID,
		YourTeam:      r.YourTeam.Team(),
		OpponentTeam:  roster.OpponentTeam{Name: r.OpponentTeam.Name},
		Date:          r.Date,
		Offenses:      offenses,
		YourTeamScore: copyInt(r.YourTeamScore),
		OpponentScore: copyInt(r.OpponentScore),
	}
	if r.CurrentQuarter != nil {
		g.CurrentQuarter = *r.CurrentQuarter
	}
	return g
}

func EncodeGame(g game.Game) ([]byte, error) {
	b, err := sonic.Marshal(FromGame(g))
	if err != nil {
		return nil, errors.Wrapf(err, "encode game %s", g.ID)
	}
	return b, nil
}

func DecodeGame(b []byte) (game.Game, error) {
	var rec GameRecord
	if err := sonic.Unmarshal(b, &rec); err != nil {
		return game.Game{}, errors.Wrap(err, "decode game")
	}
	return rec.Game(), nil
}

func EncodeTeam(t roster.Team) ([]byte, error) {
	b, err := sonic.Marshal(FromTeam(t))
	if err != nil {
		return nil, errors.Wrapf(err, "encode team %s", t.ID)
	}
	return b, nil
}

func DecodeTeam(b []byte) (roster.Team, error) {
	var rec TeamRecord
	if err := sonic.Unmarshal(b, &rec); err != nil {
		return roster.Team{}, errors.Wrap(err, "decode team")
	}
	return rec.Team(), nil
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
