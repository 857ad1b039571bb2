package session

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/court-sense/internal/domain/game"
)

func run(t *testing.T, s FlowState, steps ...func(FlowState) (Transition, error)) Transition {
	t.Helper()

	var tr Transition
	for i, step := range steps {
		var err error
		tr, err = step(s)
		require.NoErrorf(t, err, "step %d", i)
		s = tr.Next
	}
	return tr
}

func selectShot(shot game.ShotType) func(FlowState) (Transition, error) {
	return func(s FlowState) (Transition, error) { return SelectShotType(s, shot) }
}

func selectPlayer(id string) func(FlowState) (Transition, error) {
	return func(s FlowState) (Transition, error) { return SelectPlayer(s, id) }
}

func selectResult(r game.ResultType) func(FlowState) (Transition, error) {
	return func(s FlowState) (Transition, error) { return SelectResult(s, r) }
}

func selectRebound(offensive bool) func(FlowState) (Transition, error) {
	return func(s FlowState) (Transition, error) { return SelectRebound(s, offensive) }
}

func mark(slot int, m FreeThrowMark) func(FlowState) (Transition, error) {
	return func(s FlowState) (Transition, error) { return MarkFreeThrow(s, slot, m) }
}

func TestClassifier_ScorePath(t *testing.T) {
	tr := run(t, Idle{}, BeginShot, selectShot(game.ShotThree), selectPlayer("p1"), selectResult(game.ResultScore))

	require.Equal(t, OutcomeTerminal, tr.Outcome)
	assert.Equal(t, game.ScoreResult("p1", game.ShotThree), tr.Result)
	assert.Equal(t, 3, tr.Result.Points)
	assert.Equal(t, StepIdle, tr.Next.Step())
}

func TestClassifier_UnassignedShotGoesToTeam(t *testing.T) {
	tr := run(t, Idle{}, BeginShot, selectShot(game.ShotTwo), selectResult(game.ResultScore))

	require.Equal(t, OutcomeTerminal, tr.Outcome)
	assert.Empty(t, tr.Result.PlayerID)
}

func TestClassifier_ReboundBranches(t *testing.T) {
	t.Run("defensive rebound records a miss", func(t *testing.T) {
		tr := run(t, Idle{}, BeginShot, selectShot(game.ShotTwo), selectPlayer("p2"), selectResult(game.ResultMiss), selectRebound(false))
		require.Equal(t, OutcomeTerminal, tr.Outcome)
		assert.Equal(t, game.MissResult("p2", game.ShotTwo, false), tr.Result)
	})

	t.Run("offensive rebound continues without a result", func(t *testing.T) {
		tr := run(t, Idle{}, BeginShot, selectShot(game.ShotTwo), selectResult(game.ResultMiss), selectRebound(true))
		require.Equal(t, OutcomeContinued, tr.Outcome)
		assert.Equal(t, game.OffenseResult{}, tr.Result)
		assert.Equal(t, StepIdle, tr.Next.Step())
	})
}

func TestClassifier_FreeThrows(t *testing.T) {
	foul := run(t, Idle{}, BeginShot, selectShot(game.ShotTwo), selectPlayer("p1"), selectResult(game.ResultFoul)).Next
	require.Equal(t, StepFreeThrows, foul.Step())

	t.Run("confirm with nothing taken is refused", func(t *testing.T) {
		_, err := Confirm(foul)
		assert.True(t, errors.Is(err, ErrNoFreeThrows))
	})

	t.Run("toggling the active mark clears the slot", func(t *testing.T) {
		s := run(t, foul, mark(0, FreeThrowMade), mark(0, FreeThrowMade)).Next
		_, err := Confirm(s)
		assert.True(t, errors.Is(err, ErrNoFreeThrows))
	})

	t.Run("records taken slots in slot order", func(t *testing.T) {
		s := run(t, foul, mark(0, FreeThrowMade), mark(1, FreeThrowMissed)).Next
		tr, err := Confirm(s)
		require.NoError(t, err)
		require.Equal(t, OutcomeTerminal, tr.Outcome)
		assert.Equal(t, []game.FoulShot{{Made: true}, {Made: false}}, tr.Result.FoulShots)

		made, taken := tr.Result.FreeThrows()
		assert.Equal(t, 1, made)
		assert.Equal(t, 2, taken)
	})

	t.Run("a gap in the slots is allowed", func(t *testing.T) {
		s := run(t, foul, mark(1, FreeThrowMade)).Next
		tr, err := Confirm(s)
		require.NoError(t, err)
		assert.Equal(t, []game.FoulShot{{Made: true}}, tr.Result.FoulShots)
	})

	t.Run("slot out of range", func(t *testing.T) {
		_, err := MarkFreeThrow(foul, 3, FreeThrowMade)
		assert.True(t, errors.Is(err, ErrInvalidSlot))
	})
}

func TestClassifier_TurnoverPath(t *testing.T) {
	tr := run(t, Idle{}, BeginTurnover, selectPlayer("p4"), Confirm)
	require.Equal(t, OutcomeTerminal, tr.Outcome)
	assert.Equal(t, game.TurnoverResult("p4"), tr.Result)
	assert.Equal(t, game.ShotNone, tr.Result.ShotType)
}

func TestClassifier_BackAndCancel(t *testing.T) {
	rebound := run(t, Idle{}, BeginShot, selectShot(game.ShotThree), selectPlayer("p1"), selectResult(game.ResultMiss)).Next

	tr, err := Back(rebound)
	require.NoError(t, err)
	assert.Equal(t, PlayerAndResultEntry{ShotType: game.ShotThree, PlayerID: "p1"}, tr.Next)

	tr, err = Cancel(rebound)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCancelled, tr.Outcome)
	assert.Equal(t, StepIdle, tr.Next.Step())

	_, err = Cancel(Idle{})
	assert.True(t, errors.Is(err, ErrNoFlow))
}

func TestClassifier_IllegalSteps(t *testing.T) {
	cases := []struct {
		name string
		from FlowState
		step func(FlowState) (Transition, error)
		want error
	}{
		{name: "second flow", from: ShotTypeEntry{}, step: BeginTurnover, want: ErrFlowActive},
		{name: "result before shot type", from: ShotTypeEntry{}, step: selectResult(game.ResultScore), want: ErrIllegalStep},
		{name: "invalid shot type", from: ShotTypeEntry{}, step: selectShot(game.ShotType(1)), want: ErrInvalidShotType},
		{name: "turnover as shot result", from: PlayerAndResultEntry{ShotType: game.ShotTwo}, step: selectResult(game.ResultTurnover), want: ErrIllegalStep},
		{name: "confirm a shot type", from: ShotTypeEntry{}, step: Confirm, want: ErrIllegalStep},
		{name: "back from turnover", from: TurnoverEntry{}, step: Back, want: ErrIllegalStep},
		{name: "rebound while idle", from: Idle{}, step: selectRebound(true), want: ErrIllegalStep},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.step(tc.from)
			if !errors.Is(err, tc.want) {
				t.Fatalf("unexpected error: got=%v want=%v", err, tc.want)
			}
		})
	}
}
