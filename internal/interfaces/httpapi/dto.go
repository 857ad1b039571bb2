package httpapi

import (
	"time"

	"github.com/riskibarqy/court-sense/internal/domain/game"
	"github.com/riskibarqy/court-sense/internal/domain/roster"
	"github.com/riskibarqy/court-sense/internal/domain/session"
	"github.com/riskibarqy/court-sense/internal/domain/stats"
	"github.com/riskibarqy/court-sense/internal/usecase"
)

type playerDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Number int    `json:"number"`
}

type teamDTO struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Players []playerDTO `json:"players"`
}

type opponentDTO struct {
	Name string `json:"name"`
}

type foulShotDTO struct {
	Made bool `json:"made"`
}

type resultDTO struct {
	Type             string        `json:"type"`
	PlayerID         string        `json:"player_id,omitempty"`
	Points           int           `json:"points,omitempty"`
	ShotType         int           `json:"shot_type,omitempty"`
	OffensiveRebound *bool         `json:"offensive_rebound,omitempty"`
	FoulShots        []foulShotDTO `json:"foul_shots,omitempty"`
}

type offenseDTO struct {
	ID             string    `json:"id"`
	Time           int       `json:"time"`
	Passes         int       `json:"passes"`
	Result         resultDTO `json:"result"`
	PlayersOnCourt []string  `json:"players_on_court"`
	Timestamp      time.Time `json:"timestamp"`
}

type gameDTO struct {
	ID             string       `json:"id"`
	YourTeam       teamDTO      `json:"your_team"`
	OpponentTeam   opponentDTO  `json:"opponent_team"`
	Date           string       `json:"date"`
	Offenses       []offenseDTO `json:"offenses"`
	CurrentQuarter int          `json:"current_quarter,omitempty"`
	YourTeamScore  *int         `json:"your_team_score,omitempty"`
	OpponentScore  *int         `json:"opponent_score,omitempty"`
}

type summaryDTO struct {
	GameID       string `json:"game_id"`
	TeamName     string `json:"team_name"`
	OpponentName string `json:"opponent_name"`
	Date         string `json:"date"`
	Offenses     int    `json:"offenses"`
	Points       int    `json:"points"`
}

type entryDTO struct {
	Offense    offenseDTO `json:"offense"`
	Label      string     `json:"label"`
	TimeLabel  string     `json:"time_label"`
	PlayerName string     `json:"player_name"`
}

type shotSplitDTO struct {
	Attempts int `json:"attempts"`
	Made     int `json:"made"`
}

type lineDTO struct {
	Offenses            int          `json:"offenses"`
	TotalTime           int          `json:"total_time"`
	TotalPasses         int          `json:"total_passes"`
	AvgTime             float64      `json:"avg_time"`
	AvgTimeLabel        string       `json:"avg_time_label"`
	AvgPasses           float64      `json:"avg_passes"`
	ScorePct            float64      `json:"score_pct"`
	Scores              int          `json:"scores"`
	Misses              int          `json:"misses"`
	Fouls               int          `json:"fouls"`
	Turnovers           int          `json:"turnovers"`
	Points              int          `json:"points"`
	FreeThrowsMade      int          `json:"free_throws_made"`
	FreeThrowsAttempted int          `json:"free_throws_attempted"`
	TwoPoint            shotSplitDTO `json:"two_point"`
	ThreePoint          shotSplitDTO `json:"three_point"`
}

type actorRowDTO struct {
	PlayerID string  `json:"player_id,omitempty"`
	Name     string  `json:"name"`
	Number   *int    `json:"number,omitempty"`
	OnRoster bool    `json:"on_roster"`
	Line     lineDTO `json:"line"`
}

type dashboardDTO struct {
	Totals     lineDTO       `json:"totals"`
	Actors     []actorRowDTO `json:"actors"`
	GrandTotal lineDTO       `json:"grand_total"`
}

type lineupDTO struct {
	Key       string   `json:"key"`
	PlayerIDs []string `json:"player_ids"`
	Names     []string `json:"names"`
	Line      lineDTO  `json:"line"`
}

type flowDTO struct {
	Step       string   `json:"step"`
	PlayerID   string   `json:"player_id,omitempty"`
	ShotType   int      `json:"shot_type,omitempty"`
	FreeThrows []string `json:"free_throws,omitempty"`
}

type sessionDTO struct {
	GameID    string    `json:"game_id"`
	Clock     string    `json:"clock"`
	Display   string    `json:"display"`
	ElapsedMs int64     `json:"elapsed_ms"`
	Seconds   int       `json:"seconds"`
	Passes    int       `json:"passes"`
	OnCourt   []string  `json:"on_court"`
	Flow      flowDTO   `json:"flow"`
	Team      teamDTO   `json:"team"`
	OpenedAt  time.Time `json:"opened_at"`
}

type sessionResultDTO struct {
	Session    sessionDTO  `json:"session"`
	Transition string      `json:"transition"`
	Offense    *offenseDTO `json:"offense,omitempty"`
	Persisted  bool        `json:"persisted"`
	Unsaved    int         `json:"unsaved"`
}

func teamToDTO(t roster.Team) teamDTO {
	players := make([]playerDTO, 0, len(t.Players))
	for _, p := range t.Players {
		players = append(players, playerDTO{ID: p.ID, Name: p.Name, Number: p.Number})
	}
	return teamDTO{ID: t.ID, Name: t.Name, Players: players}
}

func resultToDTO(r game.OffenseResult) resultDTO {
	out := resultDTO{
		Type:     string(r.Type),
		PlayerID: r.PlayerID,
		Points:   r.Points,
		ShotType: int(r.ShotType),
	}
	if r.Type == game.ResultMiss {
		v := r.OffensiveRebound
		out.OffensiveRebound = &v
	}
	for _, s := range r.FoulShots {
		out.FoulShots = append(out.FoulShots, foulShotDTO{Made: s.Made})
	}
	return out
}

func offenseToDTO(o game.Offense) offenseDTO {
	return offenseDTO{
		ID:             o.ID,
		Time:           o.Time,
		Passes:         o.Passes,
		Result:         resultToDTO(o.Result),
		PlayersOnCourt: append([]string{}, o.PlayersOnCourt...),
		Timestamp:      o.Timestamp,
	}
}

func gameToDTO(g game.Game) gameDTO {
	offenses := make([]offenseDTO, 0, len(g.Offenses))
	for _, o := range g.Offenses {
		offenses = append(offenses, offenseToDTO(o))
	}
	return gameDTO{
		ID:             g.ID,
		YourTeam:       teamToDTO(g.YourTeam),
		OpponentTeam:   opponentDTO{Name: g.OpponentTeam.Name},
		Date:           g.Date,
		Offenses:       offenses,
		CurrentQuarter: g.CurrentQuarter,
		YourTeamScore:  g.YourTeamScore,
		OpponentScore:  g.OpponentScore,
	}
}

func summaryToDTO(s stats.Summary) summaryDTO {
	return summaryDTO{
		GameID:       s.GameID,
		TeamName:     s.TeamName,
		OpponentName: s.OpponentName,
		Date:         s.Date,
		Offenses:     s.Offenses,
		Points:       s.Points,
	}
}

func entryToDTO(e stats.Entry) entryDTO {
	return entryDTO{
		Offense:    offenseToDTO(e.Offense),
		Label:      e.Label,
		TimeLabel:  e.TimeLabel,
		PlayerName: e.PlayerName,
	}
}

func lineToDTO(l stats.Line) lineDTO {
	return lineDTO{
		Offenses:            l.Offenses,
		TotalTime:           l.TotalTime,
		TotalPasses:         l.TotalPasses,
		AvgTime:             l.AvgTime,
		AvgTimeLabel:        stats.FormatAverage(l.AvgTime),
		AvgPasses:           l.AvgPasses,
		ScorePct:            l.ScorePct,
		Scores:              l.Scores,
		Misses:              l.Misses,
		Fouls:               l.Fouls,
		Turnovers:           l.Turnovers,
		Points:              l.Points,
		FreeThrowsMade:      l.FreeThrowsMade,
		FreeThrowsAttempted: l.FreeThrowsAttempted,
		TwoPoint:            shotSplitDTO{Attempts: l.TwoPoint.Attempts, Made: l.TwoPoint.Made},
		ThreePoint:          shotSplitDTO{Attempts: l.ThreePoint.Attempts, Made: l.ThreePoint.Made},
	}
}

func dashboardToDTO(d stats.Dashboard) dashboardDTO {
	actors := make([]actorRowDTO, 0, len(d.Actors))
	for _, a := range d.Actors {
		row := actorRowDTO{
			PlayerID: a.PlayerID,
			Name:     a.Name,
			OnRoster: a.OnRoster,
			Line:     lineToDTO(a.Line),
		}
		if a.OnRoster {
			n := a.Number
			row.Number = &n
		}
		actors = append(actors, row)
	}
	return dashboardDTO{
		Totals:     lineToDTO(d.Totals),
		Actors:     actors,
		GrandTotal: lineToDTO(d.GrandTotal),
	}
}

func lineupToDTO(l stats.LineupGroup) lineupDTO {
	return lineupDTO{
		Key:       l.Key,
		PlayerIDs: append([]string{}, l.PlayerIDs...),
		Names:     append([]string{}, l.Names...),
		Line:      lineToDTO(l.Line),
	}
}

func flowToDTO(f session.FlowState) flowDTO {
	out := flowDTO{Step: string(f.Step())}
	switch st := f.(type) {
	case session.TurnoverEntry:
		out.PlayerID = st.PlayerID
	case session.PlayerAndResultEntry:
		out.PlayerID = st.PlayerID
		out.ShotType = int(st.ShotType)
	case session.ReboundEntry:
		out.PlayerID = st.PlayerID
		out.ShotType = int(st.ShotType)
	case session.FoulEntry:
		out.PlayerID = st.PlayerID
		out.ShotType = int(st.ShotType)
		for _, m := range st.Slots {
			out.FreeThrows = append(out.FreeThrows, string(m))
		}
	}
	return out
}

func sessionToDTO(s session.Snapshot) sessionDTO {
	out := sessionDTO{
		GameID:    s.GameID,
		Clock:     string(s.Clock),
		Display:   s.Display,
		ElapsedMs: s.Elapsed.Milliseconds(),
		Seconds:   s.Seconds,
		Passes:    s.Passes,
		OnCourt:   append([]string{}, s.OnCourt...),
		Team:      teamToDTO(s.Team),
		OpenedAt:  s.OpenedAt,
	}
	if s.Flow != nil {
		out.Flow = flowToDTO(s.Flow)
	}
	return out
}

func sessionResultToDTO(r usecase.SessionResult) sessionResultDTO {
	out := sessionResultDTO{
		Session:    sessionToDTO(r.Session),
		Transition: string(r.Transition),
		Persisted:  r.Persisted,
		Unsaved:    r.Unsaved,
	}
	if r.Offense != nil {
		o := offenseToDTO(*r.Offense)
		out.Offense = &o
	}
	return out
}
