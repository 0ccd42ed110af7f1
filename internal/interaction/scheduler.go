package interaction

import (
	"context"
	"sync"
	"time"
)

// DefaultFrameInterval approximates one display refresh at 60 Hz.
const DefaultFrameInterval = 16 * time.Millisecond

// RedrawScheduler coalesces redraw requests into at most one flush per
// frame interval. Request is idempotent within a frame: any number of
// state changes between two flushes produce a single render pass. Stop
// cancels a pending frame, so tearing down the owning surface cannot race
// a late flush.
type RedrawScheduler struct {
	flush    func()
	interval time.Duration

	pending chan struct{}
	cancel  context.CancelFunc
	done    sync.WaitGroup
	once    sync.Once
}

// NewRedrawScheduler starts a scheduler invoking flush on its own
// goroutine. flush must be safe to call from that goroutine (the fyne
// raster Refresh is).
func NewRedrawScheduler(interval time.Duration, flush func()) *RedrawScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &RedrawScheduler{
		flush:    flush,
		interval: interval,
		pending:  make(chan struct{}, 1),
		cancel:   cancel,
	}
	s.done.Add(1)
	go s.run(ctx)
	return s
}

// Request asks for a redraw. Safe to call from any goroutine; calls while
// a frame is already pending are absorbed.
func (s *RedrawScheduler) Request() {
	select {
	case s.pending <- struct{}{}:
	default:
	}
}

// Stop cancels any pending frame and waits for the consumer goroutine to
// exit. Further Requests are no-ops.
func (s *RedrawScheduler) Stop() {
	s.once.Do(func() {
		s.cancel()
		s.done.Wait()
	})
}

func (s *RedrawScheduler) run(ctx context.Context) {
	defer s.done.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.pending:
		}

		s.flush()

		// Absorb further requests for the rest of the frame interval so
		// a burst of input events renders once.
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.interval):
		}
	}
}
