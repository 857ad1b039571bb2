package stats

import (
	"fmt"
	"math"

	"github.com/riskibarqy/court-sense/internal/domain/game"
)

// ShotSplit counts field-goal attempts and makes for one shot type.
type ShotSplit struct {
	Attempts int
	Made     int
}

// Line is the tally of a set of offenses. Every dashboard row, lineup group and total is a Line.
type Line struct {
	Offenses    int
	TotalTime   int
	TotalPasses int
	AvgTime     float64
	AvgPasses   float64
	ScorePct    float64

	Scores    int
	Misses    int
	Fouls     int
	Turnovers int

	Points              int
	FreeThrowsMade      int
	FreeThrowsAttempted int

	TwoPoint   ShotSplit
	ThreePoint ShotSplit
}

func (l *Line) add(o game.Offense) {
	l.Offenses++
	l.TotalTime += o.Time
	l.TotalPasses += o.Passes

	r := o.Result
	switch r.Type {
	case game.ResultScore:
		l.Scores++
	case game.ResultMiss:
		l.Misses++
	case game.ResultFoul:
		l.Fouls++
		made, taken := r.FreeThrows()
		l.FreeThrowsMade += made
		l.FreeThrowsAttempted += taken
	case game.ResultTurnover:
		l.Turnovers++
	}
	l.Points += r.PointsScored()

	// A foul counts as an attempt but never as a make at the field-goal level.
	if split := l.split(r.ShotType); split != nil {
		split.Attempts++
		if r.Type == game.ResultScore {
			split.Made++
		}
	}
}

func (l *Line) split(shot game.ShotType) *ShotSplit {
	switch shot {
	case game.ShotTwo:
		return &l.TwoPoint
	case game.ShotThree:
		return &l.ThreePoint
	default:
		return nil
	}
}

func (l *Line) finish() {
	l.AvgTime = ratio(l.TotalTime, l.Offenses)
	l.AvgPasses = ratio(l.TotalPasses, l.Offenses)
	l.ScorePct = ratio(l.Scores*100, l.Offenses)
}

// FieldGoalAttempts is the number of offenses in the line that carried a shot type.
func (l Line) FieldGoalAttempts() int {
	return l.TwoPoint.Attempts + l.ThreePoint.Attempts
}

func tally(offenses []game.Offense) Line {
	var l Line
	for _, o := range offenses {
		l.add(o)
	}
	l.finish()
	return l
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// FormatSeconds renders whole seconds as m:ss.
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// FormatAverage rounds an average number of seconds and renders it as m:ss.
func FormatAverage(seconds float64) string {
	return FormatSeconds(int(math.Round(seconds)))
}
