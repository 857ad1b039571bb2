package session

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/court-sense/internal/domain/game"
	"github.com/riskibarqy/court-sense/internal/domain/roster"
	"github.com/riskibarqy/court-sense/internal/platform/scheduler"
)

const DefaultTickInterval = 10 * time.Millisecond

// Kind is what an action did to the live offense.
type Kind string

const (
	KindPending   Kind = "pending"
	KindRecorded  Kind = "recorded"
	KindDiscarded Kind = "discarded"
	KindContinued Kind = "continued"
	KindCancelled Kind = "cancelled"
)

// Result describes the outcome of one session action. Offense is set only for KindRecorded.
type Result struct {
	Kind    Kind
	Offense *game.Offense
}

type Config struct {
	Team         roster.Team
	Scheduler    scheduler.Scheduler
	TickInterval time.Duration
	Now          func() time.Time
	NewID        func() (string, error)
}

type Snapshot struct {
	GameID   string
	Clock    ClockState
	Elapsed  time.Duration
	Display  string
	Seconds  int
	Passes   int
	OnCourt  []string
	Step     Step
	Flow     FlowState
	Team     roster.Team
	OpenedAt time.Time
}

type entrySnapshot struct {
	elapsed time.Duration
	passes  int
}

// Session holds the ephemeral state of one live game: clock, passes, on-court set and
// the classification flow. All methods are safe for concurrent use.
type Session struct {
	mu sync.Mutex

	gameID   string
	team     roster.Team
	clock    *Clock
	passes   PassCounter
	lineup   Lineup
	flow     FlowState
	preEntry entrySnapshot
	openedAt time.Time

	sched  scheduler.Scheduler
	tick   time.Duration
	handle scheduler.Handle
	now    func() time.Time
	newID  func() (string, error)
	closed bool
}

func New(gameID string, cfg Config) *Session {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	tick := cfg.TickInterval
	if tick <= 0 {
		tick = DefaultTickInterval
	}
	sched := cfg.Scheduler
	if sched == nil {
		sched = scheduler.NewTicker(nil)
	}
	newID := cfg.NewID
	if newID == nil {
		newID = func() (string, error) {
			return now().UTC().Format("20060102T150405.000000000"), nil
		}
	}

	team := cfg.Team.Clone()
	return &Session{
		gameID:   gameID,
		team:     team,
		clock:    NewClock(now),
		lineup:   DefaultLineup(team),
		flow:     Idle{},
		openedAt: now(),
		sched:    sched,
		tick:     tick,
		now:      now,
		newID:    newID,
	}
}

func (s *Session) GameID() string {
	return s.gameID
}

// Close stops the clock timer. The session must not be used afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimer()
	s.closed = true
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		GameID:   s.gameID,
		Clock:    s.clock.State(),
		Elapsed:  s.clock.Elapsed(),
		Display:  s.clock.Display(),
		Seconds:  s.clock.Seconds(),
		Passes:   s.passes.Count(),
		OnCourt:  s.lineup.Snapshot(),
		Step:     s.flow.Step(),
		Flow:     s.flow,
		Team:     s.team.Clone(),
		OpenedAt: s.openedAt,
	}
}

func (s *Session) StartClock() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireIdleFlow("start clock"); err != nil {
		return err
	}
	return s.startClock()
}

func (s *Session) PauseClock() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireIdleFlow("pause clock"); err != nil {
		return err
	}
	return s.pauseClock()
}

func (s *Session) AdjustClock(deltaSeconds int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireIdleFlow("adjust clock"); err != nil {
		return err
	}
	return s.clock.Adjust(deltaSeconds)
}

func (s *Session) IncrementPasses() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireIdleFlow("increment passes"); err != nil {
		return err
	}
	s.passes.Increment()
	return nil
}

func (s *Session) DecrementPasses() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireIdleFlow("decrement passes"); err != nil {
		return err
	}
	s.passes.Decrement()
	return nil
}

// ToggleLineup is allowed only while the clock is stopped and no flow is active.
func (s *Session) ToggleLineup(playerID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireIdleFlow("toggle lineup"); err != nil {
		return false, err
	}
	if s.clock.Running() {
		return false, errors.Wrap(ErrClockRunning, "toggle lineup")
	}
	if !s.team.HasPlayer(playerID) {
		return false, errors.Wrapf(ErrUnknownPlayer, "player %s", playerID)
	}
	return s.lineup.Toggle(playerID)
}

// SetTeam refreshes the roster after an edit. Players no longer on the roster leave the court.
func (s *Session) SetTeam(team roster.Team) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.team = team.Clone()
	s.lineup.Retain(s.team)
}

func (s *Session) BeginTurnover() (Result, error) {
	return s.apply(BeginTurnover)
}

func (s *Session) BeginShot() (Result, error) {
	return s.apply(BeginShot)
}

// SelectPlayer accepts an on-court player or "" for the team.
func (s *Session) SelectPlayer(playerID string) (Result, error) {
	return s.apply(func(st FlowState) (Transition, error) {
		if playerID != "" && !s.lineup.Contains(playerID) {
			return Transition{}, errors.Wrapf(ErrPlayerNotOnCourt, "player %s", playerID)
		}
		return SelectPlayer(st, playerID)
	})
}

func (s *Session) SelectShotType(shot game.ShotType) (Result, error) {
	return s.apply(func(st FlowState) (Transition, error) {
		return SelectShotType(st, shot)
	})
}

func (s *Session) SelectResult(result game.ResultType) (Result, error) {
	return s.apply(func(st FlowState) (Transition, error) {
		return SelectResult(st, result)
	})
}

func (s *Session) SelectRebound(offensive bool) (Result, error) {
	return s.apply(func(st FlowState) (Transition, error) {
		return SelectRebound(st, offensive)
	})
}

func (s *Session) MarkFreeThrow(slot int, mark FreeThrowMark) (Result, error) {
	return s.apply(func(st FlowState) (Transition, error) {
		return MarkFreeThrow(st, slot, mark)
	})
}

func (s *Session) Confirm() (Result, error) {
	return s.apply(Confirm)
}

func (s *Session) Back() (Result, error) {
	return s.apply(Back)
}

func (s *Session) Cancel() (Result, error) {
	return s.apply(Cancel)
}

func (s *Session) apply(step func(FlowState) (Transition, error)) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tr, err := step(s.flow)
	if err != nil {
		return Result{}, err
	}

	switch tr.Outcome {
	case OutcomePending:
		if _, wasIdle := s.flow.(Idle); wasIdle {
			s.enterFlow()
		}
		s.flow = tr.Next
		return Result{Kind: KindPending}, nil
	case OutcomeContinued:
		s.flow = Idle{}
		if err := s.startClock(); err != nil {
			return Result{}, err
		}
		return Result{Kind: KindContinued}, nil
	case OutcomeCancelled:
		s.flow = Idle{}
		s.clock.restore(s.preEntry.elapsed)
		s.passes.count = s.preEntry.passes
		if err := s.startClock(); err != nil {
			return Result{}, err
		}
		return Result{Kind: KindCancelled}, nil
	case OutcomeTerminal:
		return s.finalize(tr.Result)
	default:
		return Result{}, errors.Newf("unknown transition outcome %q", tr.Outcome)
	}
}

// enterFlow pauses the clock and remembers the offense state cancel restores.
func (s *Session) enterFlow() {
	if s.clock.Running() {
		_ = s.pauseClock()
	}
	s.preEntry = entrySnapshot{elapsed: s.clock.Elapsed(), passes: s.passes.Count()}
}

// finalize builds the offense record and resets the live offense. An offense shorter
// than one whole second is discarded.
func (s *Session) finalize(result game.OffenseResult) (Result, error) {
	seconds := s.clock.Seconds()
	if seconds == 0 {
		s.resetOffense()
		return Result{Kind: KindDiscarded}, nil
	}

	id, err := s.newID()
	if err != nil {
		return Result{}, errors.Wrap(err, "generate offense id")
	}

	offense := game.Offense{
		ID:             id,
		Time:           seconds,
		Passes:         s.passes.Count(),
		Result:         result,
		PlayersOnCourt: s.lineup.Snapshot(),
		Timestamp:      s.now().UTC(),
	}
	if err := offense.Validate(); err != nil {
		return Result{}, err
	}

	s.resetOffense()
	return Result{Kind: KindRecorded, Offense: &offense}, nil
}

func (s *Session) resetOffense() {
	s.flow = Idle{}
	s.stopTimer()
	s.clock.Reset()
	s.passes.Reset()
	s.preEntry = entrySnapshot{}
}

func (s *Session) requireIdleFlow(action string) error {
	if _, ok := s.flow.(Idle); !ok {
		return errors.Wrapf(ErrFlowActive, "%s at step %s", action, s.flow.Step())
	}
	return nil
}

func (s *Session) startClock() error {
	if err := s.clock.Start(); err != nil {
		return err
	}
	if !s.closed {
		s.handle = s.sched.Schedule(s.onTick, s.tick)
	}
	return nil
}

func (s *Session) pauseClock() error {
	if err := s.clock.Pause(); err != nil {
		return err
	}
	s.stopTimer()
	return nil
}

func (s *Session) stopTimer() {
	if s.handle != nil {
		s.handle.Cancel()
		s.handle = nil
	}
}

func (s *Session) onTick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clock.Tick()
}
