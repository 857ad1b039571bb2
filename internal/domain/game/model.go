package game

import (
	"time"

	"github.com/riskibarqy/court-sense/internal/domain/roster"
)

// MaxOnCourt bounds the lineup recorded on an offense.
const MaxOnCourt = 5

// ResultType tags the OffenseResult variant.
type ResultType string

const (
	ResultTurnover ResultType = "turnover"
	ResultScore    ResultType = "score"
	ResultMiss     ResultType = "miss"
	ResultFoul     ResultType = "foul"
)

// ShotType is the field-goal value of an attempt. Zero means no shot was taken.
type ShotType int

const (
	ShotNone  ShotType = 0
	ShotTwo   ShotType = 2
	ShotThree ShotType = 3
)

func (s ShotType) Valid() bool {
	return s == ShotTwo || s == ShotThree
}

// FoulShot is one free throw that was actually attempted.
type FoulShot struct {
	Made bool
}

// OffenseResult is the outcome of a possession. Which fields are meaningful depends on Type:
// turnover uses PlayerID only; score adds Points and ShotType; miss adds ShotType and
// OffensiveRebound; foul adds ShotType and FoulShots.
type OffenseResult struct {
	Type             ResultType
	PlayerID         string
	Points           int
	ShotType         ShotType
	OffensiveRebound bool
	FoulShots        []FoulShot
}

// Offense is one finalized possession. Records are never edited after they are appended.
type Offense struct {
	ID             string
	Time           int
	Passes         int
	Result         OffenseResult
	PlayersOnCourt []string
	Timestamp      time.Time
}

// Game owns the ordered event log of offenses.
type Game struct {
	ID             string
	YourTeam       roster.Team
	OpponentTeam   roster.OpponentTeam
	Date           string
	Offenses       []Offense
	CurrentQuarter int
	YourTeamScore  *int
	OpponentScore  *int
}

func TurnoverResult(playerID string) OffenseResult {
	return OffenseResult{Type: ResultTurnover, PlayerID: playerID}
}

func ScoreResult(playerID string, shot ShotType) OffenseResult {
	return OffenseResult{Type: ResultScore, PlayerID: playerID, ShotType: shot, Points: int(shot)}
}

func MissResult(playerID string, shot ShotType, offensiveRebound bool) OffenseResult {
	return OffenseResult{Type: ResultMiss, PlayerID: playerID, ShotType: shot, OffensiveRebound: offensiveRebound}
}

func FoulResult(playerID string, shot ShotType, shots []FoulShot) OffenseResult {
	return OffenseResult{Type: ResultFoul, PlayerID: playerID, ShotType: shot, FoulShots: append([]FoulShot(nil), shots...)}
}

// HasShot reports whether the result carries a field-goal attempt.
func (r OffenseResult) HasShot() bool {
	return r.ShotType.Valid()
}

// FreeThrows returns made and attempted free throws for a foul result.
func (r OffenseResult) FreeThrows() (made, taken int) {
	for _, s := range r.FoulShots {
		taken++
		if s.Made {
			made++
		}
	}
	return made, taken
}

// PointsScored counts field-goal points plus made free throws.
func (r OffenseResult) PointsScored() int {
	switch r.Type {
	case ResultScore:
		return r.Points
	case ResultFoul:
		made, _ := r.FreeThrows()
		return made
	default:
		return 0
	}
}

func (o Offense) Clone() Offense {
	copied := o
	copied.PlayersOnCourt = append([]string(nil), o.PlayersOnCourt...)
	copied.Result.FoulShots = append([]FoulShot(nil), o.Result.FoulShots...)
	return copied
}

func (g Game) Clone() Game {
	copied := g
	copied.YourTeam = g.YourTeam.Clone()
	copied.Offenses = make([]Offense, 0, len(g.Offenses))
	for _, o := range g.Offenses {
		copied.Offenses = append(copied.Offenses, o.Clone())
	}
	if g.YourTeamScore != nil {
		v := *g.YourTeamScore
		copied.YourTeamScore = &v
	}
	if g.OpponentScore != nil {
		v := *g.OpponentScore
		copied.OpponentScore = &v
	}
	return copied
}
