package session

import (
	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/court-sense/internal/domain/game"
)

type Step string

const (
	StepIdle            Step = "idle"
	StepTurnover        Step = "turnover"
	StepShotType        Step = "shot_type"
	StepPlayerAndResult Step = "player_and_result"
	StepRebound         Step = "rebound"
	StepFreeThrows      Step = "free_throws"
)

// FlowState is one step of the offense classification flow. The set of
// implementations is closed.
type FlowState interface {
	Step() Step
	isFlowState()
}

type Idle struct{}

type TurnoverEntry struct {
	PlayerID string
}

type ShotTypeEntry struct{}

type PlayerAndResultEntry struct {
	ShotType game.ShotType
	PlayerID string
}

type ReboundEntry struct {
	ShotType game.ShotType
	PlayerID string
}

// FreeThrowSlots is the number of free throw slots shown after a foul.
const FreeThrowSlots = 3

type FreeThrowMark string

const (
	FreeThrowNotTaken FreeThrowMark = "not_taken"
	FreeThrowMade     FreeThrowMark = "made"
	FreeThrowMissed   FreeThrowMark = "missed"
)

func (m FreeThrowMark) Valid() bool {
	switch m {
	case FreeThrowNotTaken, FreeThrowMade, FreeThrowMissed:
		return true
	default:
		return false
	}
}

type FoulEntry struct {
	ShotType game.ShotType
	PlayerID string
	Slots    [FreeThrowSlots]FreeThrowMark
}

func (Idle) Step() Step                 { return StepIdle }
func (TurnoverEntry) Step() Step        { return StepTurnover }
func (ShotTypeEntry) Step() Step        { return StepShotType }
func (PlayerAndResultEntry) Step() Step { return StepPlayerAndResult }
func (ReboundEntry) Step() Step         { return StepRebound }
func (FoulEntry) Step() Step            { return StepFreeThrows }

func (Idle) isFlowState()                 {}
func (TurnoverEntry) isFlowState()        {}
func (ShotTypeEntry) isFlowState()        {}
func (PlayerAndResultEntry) isFlowState() {}
func (ReboundEntry) isFlowState()         {}
func (FoulEntry) isFlowState()            {}

// Taken returns the marked slots in slot order.
func (f FoulEntry) Taken() []game.FoulShot {
	out := make([]game.FoulShot, 0, FreeThrowSlots)
	for _, m := range f.Slots {
		switch m {
		case FreeThrowMade:
			out = append(out, game.FoulShot{Made: true})
		case FreeThrowMissed:
			out = append(out, game.FoulShot{Made: false})
		}
	}
	return out
}

type Outcome string

const (
	// OutcomePending moves to another step that waits for input.
	OutcomePending Outcome = "pending"
	// OutcomeTerminal ends the flow with a result to record.
	OutcomeTerminal Outcome = "terminal"
	// OutcomeContinued ends the flow without a record and keeps the offense live.
	OutcomeContinued Outcome = "continued"
	// OutcomeCancelled drops the flow and restores the pre-entry offense.
	OutcomeCancelled Outcome = "cancelled"
)

type Transition struct {
	Next    FlowState
	Outcome Outcome
	// Result is set only when Outcome is OutcomeTerminal.
	Result game.OffenseResult
}

func pending(next FlowState) Transition {
	return Transition{Next: next, Outcome: OutcomePending}
}

func terminal(result game.OffenseResult) Transition {
	return Transition{Next: Idle{}, Outcome: OutcomeTerminal, Result: result}
}

func illegal(s FlowState, action string) error {
	return errors.Wrapf(ErrIllegalStep, "%s at step %s", action, s.Step())
}

func BeginTurnover(s FlowState) (Transition, error) {
	if _, ok := s.(Idle); !ok {
		return Transition{}, errors.Wrapf(ErrFlowActive, "begin turnover at step %s", s.Step())
	}
	return pending(TurnoverEntry{}), nil
}

func BeginShot(s FlowState) (Transition, error) {
	if _, ok := s.(Idle); !ok {
		return Transition{}, errors.Wrapf(ErrFlowActive, "begin shot at step %s", s.Step())
	}
	return pending(ShotTypeEntry{}), nil
}

// SelectPlayer attributes the flow to a player. An empty id attributes it to the team.
func SelectPlayer(s FlowState, playerID string) (Transition, error) {
	switch st := s.(type) {
	case TurnoverEntry:
		st.PlayerID = playerID
		return pending(st), nil
	case PlayerAndResultEntry:
		st.PlayerID = playerID
		return pending(st), nil
	default:
		return Transition{}, illegal(s, "select player")
	}
}

func SelectShotType(s FlowState, shot game.ShotType) (Transition, error) {
	if _, ok := s.(ShotTypeEntry); !ok {
		return Transition{}, illegal(s, "select shot type")
	}
	if !shot.Valid() {
		return Transition{}, errors.Wrapf(ErrInvalidShotType, "got %d", shot)
	}
	return pending(PlayerAndResultEntry{ShotType: shot}), nil
}

func SelectResult(s FlowState, result game.ResultType) (Transition, error) {
	st, ok := s.(PlayerAndResultEntry)
	if !ok {
		return Transition{}, illegal(s, "select result")
	}

	switch result {
	case game.ResultScore:
		return terminal(game.ScoreResult(st.PlayerID, st.ShotType)), nil
	case game.ResultMiss:
		return pending(ReboundEntry{ShotType: st.ShotType, PlayerID: st.PlayerID}), nil
	case game.ResultFoul:
		foul := FoulEntry{ShotType: st.ShotType, PlayerID: st.PlayerID}
		for i := range foul.Slots {
			foul.Slots[i] = FreeThrowNotTaken
		}
		return pending(foul), nil
	default:
		return Transition{}, errors.Wrapf(ErrIllegalStep, "result %q after a shot", result)
	}
}

// SelectRebound closes a missed shot. An offensive rebound keeps the offense alive and
// records nothing.
func SelectRebound(s FlowState, offensive bool) (Transition, error) {
	st, ok := s.(ReboundEntry)
	if !ok {
		return Transition{}, illegal(s, "select rebound")
	}
	if offensive {
		return Transition{Next: Idle{}, Outcome: OutcomeContinued}, nil
	}
	return terminal(game.MissResult(st.PlayerID, st.ShotType, false)), nil
}

// MarkFreeThrow sets one slot. Marking a slot with its current value clears it.
func MarkFreeThrow(s FlowState, slot int, mark FreeThrowMark) (Transition, error) {
	st, ok := s.(FoulEntry)
	if !ok {
		return Transition{}, illegal(s, "mark free throw")
	}
	if slot < 0 || slot >= FreeThrowSlots {
		return Transition{}, errors.Wrapf(ErrInvalidSlot, "slot %d", slot)
	}
	if !mark.Valid() {
		return Transition{}, errors.Wrapf(ErrIllegalStep, "free throw mark %q", mark)
	}

	if st.Slots[slot] == mark {
		st.Slots[slot] = FreeThrowNotTaken
	} else {
		st.Slots[slot] = mark
	}
	return pending(st), nil
}

// Confirm finishes a turnover or a foul.
func Confirm(s FlowState) (Transition, error) {
	switch st := s.(type) {
	case TurnoverEntry:
		return terminal(game.TurnoverResult(st.PlayerID)), nil
	case FoulEntry:
		taken := st.Taken()
		if len(taken) == 0 {
			return Transition{}, ErrNoFreeThrows
		}
		return terminal(game.FoulResult(st.PlayerID, st.ShotType, taken)), nil
	default:
		return Transition{}, illegal(s, "confirm")
	}
}

// Back returns from the rebound or free throw step to result selection, keeping the
// shot type and player.
func Back(s FlowState) (Transition, error) {
	switch st := s.(type) {
	case ReboundEntry:
		return pending(PlayerAndResultEntry{ShotType: st.ShotType, PlayerID: st.PlayerID}), nil
	case FoulEntry:
		return pending(PlayerAndResultEntry{ShotType: st.ShotType, PlayerID: st.PlayerID}), nil
	default:
		return Transition{}, illegal(s, "back")
	}
}

func Cancel(s FlowState) (Transition, error) {
	if _, ok := s.(Idle); ok {
		return Transition{}, ErrNoFlow
	}
	return Transition{Next: Idle{}, Outcome: OutcomeCancelled}, nil
}
