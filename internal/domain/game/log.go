package game

import (
	"github.com/cockroachdb/errors"
)

const maxFoulShots = 3

var (
	ErrZeroTime          = errors.New("offense time must be greater than zero")
	ErrInvalidResult     = errors.New("invalid offense result")
	ErrTooManyOnCourt    = errors.New("more than five players on court")
	ErrOffenseNotFound   = errors.New("offense not found")
	ErrDuplicateOffense  = errors.New("offense id already recorded")
	ErrNegativePassCount = errors.New("pass count cannot be negative")
)

func (r OffenseResult) Validate() error {
	switch r.Type {
	case ResultTurnover:
		if r.ShotType != ShotNone {
			return errors.Wrap(ErrInvalidResult, "turnover cannot carry a shot type")
		}
	case ResultScore:
		if !r.ShotType.Valid() {
			return errors.Wrapf(ErrInvalidResult, "score shot type %d", r.ShotType)
		}
		if r.Points != int(r.ShotType) {
			return errors.Wrapf(ErrInvalidResult, "score of %d points on a %d-pt shot", r.Points, r.ShotType)
		}
	case ResultMiss:
		if !r.ShotType.Valid() {
			return errors.Wrapf(ErrInvalidResult, "miss shot type %d", r.ShotType)
		}
	case ResultFoul:
		if !r.ShotType.Valid() {
			return errors.Wrapf(ErrInvalidResult, "foul shot type %d", r.ShotType)
		}
		if len(r.FoulShots) > maxFoulShots {
			return errors.Wrapf(ErrInvalidResult, "%d free throws", len(r.FoulShots))
		}
	default:
		return errors.Wrapf(ErrInvalidResult, "unknown result type %q", r.Type)
	}
	return nil
}

func (o Offense) Validate() error {
	if o.ID == "" {
		return errors.New("offense id is required")
	}
	if o.Time <= 0 {
		return errors.Wrapf(ErrZeroTime, "offense %s", o.ID)
	}
	if o.Passes < 0 {
		return errors.Wrapf(ErrNegativePassCount, "offense %s", o.ID)
	}
	if len(o.PlayersOnCourt) > MaxOnCourt {
		return errors.Wrapf(ErrTooManyOnCourt, "offense %s has %d", o.ID, len(o.PlayersOnCourt))
	}
	return o.Result.Validate()
}

// Append adds a finalized offense to the end of the log.
func (g *Game) Append(o Offense) error {
	if err := o.Validate(); err != nil {
		return err
	}
	for _, existing := range g.Offenses {
		if existing.ID == o.ID {
			return errors.Wrapf(ErrDuplicateOffense, "offense %s", o.ID)
		}
	}
	g.Offenses = append(g.Offenses, o.Clone())
	return nil
}

func (g Game) HasOffense(id string) bool {
	for _, o := range g.Offenses {
		if o.ID == id {
			return true
		}
	}
	return false
}

// RemoveOffense deletes one record by id. Nothing else in the log changes.
func (g *Game) RemoveOffense(id string) error {
	for i, o := range g.Offenses {
		if o.ID != id {
			continue
		}
		out := make([]Offense, 0, len(g.Offenses)-1)
		out = append(out, g.Offenses[:i]...)
		out = append(out, g.Offenses[i+1:]...)
		g.Offenses = out
		return nil
	}
	return errors.Wrapf(ErrOffenseNotFound, "offense %s", id)
}
