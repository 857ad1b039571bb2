package session

import "github.com/cockroachdb/errors"

var (
	ErrClockRunning     = errors.New("clock is running")
	ErrClockNotRunning  = errors.New("clock is not running")
	ErrFlowActive       = errors.New("an offense flow is in progress")
	ErrNoFlow           = errors.New("no offense flow is in progress")
	ErrIllegalStep      = errors.New("action not allowed at this step")
	ErrInvalidShotType  = errors.New("shot type must be 2 or 3")
	ErrInvalidSlot      = errors.New("free throw slot out of range")
	ErrNoFreeThrows     = errors.New("at least one free throw must be taken")
	ErrLineupFull       = errors.New("maximum 5 players on court")
	ErrPlayerNotOnCourt = errors.New("player is not on court")
	ErrUnknownPlayer    = errors.New("player is not on the roster")
)
