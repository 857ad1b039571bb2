package usecase

import "sync"

// GameLocks serializes read-modify-write cycles on one game across services.
type GameLocks struct {
	mu    sync.Mutex
	locks map[string]*gameLock
}

type gameLock struct {
	mu   sync.Mutex
	refs int
}

func NewGameLocks() *GameLocks {
	return &GameLocks{locks: make(map[string]*gameLock)}
}

// Lock blocks until the game is free and returns the matching unlock.
func (l *GameLocks) Lock(gameID string) func() {
	l.mu.Lock()
	lock, ok := l.locks[gameID]
	if !ok {
		lock = &gameLock{}
		l.locks[gameID] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()

		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, gameID)
		}
		l.mu.Unlock()
	}
}
