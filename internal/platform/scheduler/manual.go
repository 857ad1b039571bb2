package scheduler

import (
	"sync"
	"time"
)

// Manual fires callbacks only when Fire is called. Used to drive clocks deterministically.
type Manual struct {
	mu    sync.Mutex
	tasks []*manualHandle
}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) Schedule(callback func(), period time.Duration) Handle {
	h := &manualHandle{callback: callback, period: period}

	m.mu.Lock()
	m.tasks = append(m.tasks, h)
	m.mu.Unlock()

	return h
}

// Fire runs every active callback once.
func (m *Manual) Fire() {
	m.mu.Lock()
	active := make([]*manualHandle, 0, len(m.tasks))
	for _, h := range m.tasks {
		if !h.cancelled() {
			active = append(active, h)
		}
	}
	m.tasks = active
	m.mu.Unlock()

	for _, h := range active {
		h.callback()
	}
}

// Active returns the number of scheduled tasks that have not been cancelled.
func (m *Manual) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, h := range m.tasks {
		if !h.cancelled() {
			n++
		}
	}
	return n
}

type manualHandle struct {
	callback func()
	period   time.Duration

	mu          sync.Mutex
	cancelCount int
}

func (h *manualHandle) Cancel() {
	h.mu.Lock()
	h.cancelCount++
	h.mu.Unlock()
}

func (h *manualHandle) cancelled() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cancelCount > 0
}
