package dashboard

import (
	"context"
	"sync"
	"time"
)

// RefreshHandle is the periodic refresh acquired by Controller.Start.
type RefreshHandle struct {
	ctrl   *Controller
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func (h *RefreshHandle) run(ctx context.Context, interval time.Duration) {
	defer close(h.done)

	var inflight sync.WaitGroup
	defer inflight.Wait()

	refresh := func() {
		inflight.Add(1)
		go func() {
			defer inflight.Done()
			h.ctrl.Refresh(ctx)
		}()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	refresh()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refresh()
		}
	}
}

// Stop tears the controller down. It is safe to call more than once and
// returns after every refresh it started has returned. Results that land
// after Stop are dropped.
func (h *RefreshHandle) Stop() {
	h.once.Do(func() {
		h.ctrl.close()
		h.cancel()
		<-h.done
		h.ctrl.logger.Info("dashboard polling stopped")
	})
}

// Done is closed once the refresh loop has exited.
func (h *RefreshHandle) Done() <-chan struct{} {
	return h.done
}
