package dashboard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"kitchen-dashboard/internal/domain"
)

// DefaultRefreshInterval is how often the dashboard re-polls the backend.
const DefaultRefreshInterval = 5 * time.Second

var ErrAlreadyStarted = errors.New("dashboard controller already started")

// Gateway is the remote side of the dashboard.
// Satisfied by *gateway.HTTPGateway; narrow interface for testability.
type Gateway interface {
	FetchSnapshot(ctx context.Context) (*domain.DashboardSnapshot, error)
	CompleteOrder(ctx context.Context, orderID int) error
}

// Controller owns the dashboard state. Every fetch takes a sequence number
// when it is issued and its result is applied only if no later fetch has
// already been applied. Failures never leave the controller; they become
// PhaseError states.
type Controller struct {
	gateway  Gateway
	logger   *zap.Logger
	interval time.Duration
	now      func() time.Time

	issued atomic.Uint64

	mu      sync.Mutex
	state   State
	applied uint64
	started bool
	closed  bool
	subs    map[int]chan State
	nextSub int
}

func NewController(gateway Gateway, interval time.Duration, logger *zap.Logger) *Controller {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Controller{
		gateway:  gateway,
		logger:   logger,
		interval: interval,
		now:      time.Now,
		state:    State{Phase: PhaseLoading},
		subs:     make(map[int]chan State),
	}
}

func (c *Controller) Current() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start refreshes immediately and then on every tick until the handle is
// stopped. A tick does not wait for a refresh that is still in flight.
func (c *Controller) Start(ctx context.Context) (*RefreshHandle, error) {
	c.mu.Lock()
	if c.started || c.closed {
		c.mu.Unlock()
		return nil, ErrAlreadyStarted
	}
	c.started = true
	c.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	h := &RefreshHandle{
		ctrl:   c,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go h.run(ctx, c.interval)

	c.logger.Info("dashboard polling started", zap.Duration("interval", c.interval))
	return h, nil
}

func (c *Controller) Refresh(ctx context.Context) State {
	if c.isClosed() {
		return c.Current()
	}

	seq := c.issued.Add(1)
	snapshot, err := c.gateway.FetchSnapshot(ctx)
	if err != nil {
		c.logger.Warn("dashboard refresh failed", zap.Uint64("seq", seq), zap.Error(err))
		return c.apply(seq, func(prev State) State {
			return errorState(prev, MessageFetchFailed, err)
		})
	}

	return c.apply(seq, func(State) State {
		return readyState(snapshot)
	})
}

// Retry is the manual retry offered on the error screen.
func (c *Controller) Retry(ctx context.Context) State {
	c.logger.Info("manual dashboard retry")
	return c.Refresh(ctx)
}

// MarkComplete completes an order and, when that succeeds, refreshes once.
// A failure shows MessageCompleteFailed; polling carries on regardless.
func (c *Controller) MarkComplete(ctx context.Context, orderID int) State {
	if c.isClosed() {
		return c.Current()
	}

	if err := c.gateway.CompleteOrder(ctx, orderID); err != nil {
		c.logger.Warn("marking order complete failed", zap.Int("orderId", orderID), zap.Error(err))
		seq := c.issued.Add(1)
		return c.apply(seq, func(prev State) State {
			return errorState(prev, MessageCompleteFailed, err)
		})
	}

	c.logger.Info("order marked complete", zap.Int("orderId", orderID))
	return c.Refresh(ctx)
}

// Subscribe returns a channel that always holds the newest state. A reader
// that falls behind skips intermediate states. The channel is closed by the
// returned cancel func or when the controller is torn down.
func (c *Controller) Subscribe() (<-chan State, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan State, 1)
	if c.closed {
		close(ch)
		return ch, func() {}
	}

	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	ch <- c.state

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(sub)
		}
	}
}

func (c *Controller) apply(seq uint64, next func(prev State) State) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return c.state
	}
	if seq <= c.applied {
		c.logger.Debug("discarding stale dashboard result",
			zap.Uint64("seq", seq), zap.Uint64("applied", c.applied))
		return c.state
	}

	st := next(c.state)
	st.Seq = seq
	st.UpdatedAt = c.now()
	c.state = st
	c.applied = seq
	c.publish(st)

	return st
}

// publish must be called with mu held.
func (c *Controller) publish(st State) {
	for _, ch := range c.subs {
		select {
		case ch <- st:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- st
		}
	}
}

func (c *Controller) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Controller) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
}
