package scheduler

import (
	"sync"
	"time"

	"github.com/sourcegraph/conc/panics"

	"github.com/riskibarqy/court-sense/internal/platform/logging"
)

// Scheduler runs a callback periodically until its handle is cancelled.
type Scheduler interface {
	Schedule(callback func(), period time.Duration) Handle
}

// Handle cancels a scheduled task. Cancel is safe to call more than once.
type Handle interface {
	Cancel()
}

type Ticker struct {
	logger *logging.Logger
}

func NewTicker(logger *logging.Logger) *Ticker {
	if logger == nil {
		logger = logging.Default()
	}
	return &Ticker{logger: logger}
}

func (t *Ticker) Schedule(callback func(), period time.Duration) Handle {
	h := &tickerHandle{
		ticker: time.NewTicker(period),
		done:   make(chan struct{}),
	}

	go func() {
		for {
			select {
			case <-h.done:
				return
			case <-h.ticker.C:
				var pc panics.Catcher
				pc.Try(callback)
				if r := pc.Recovered(); r != nil {
					t.logger.Error("scheduled callback panicked", "error", r.AsError())
				}
			}
		}
	}()

	return h
}

type tickerHandle struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (h *tickerHandle) Cancel() {
	h.once.Do(func() {
		h.ticker.Stop()
		close(h.done)
	})
}
