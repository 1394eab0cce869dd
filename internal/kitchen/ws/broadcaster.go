package ws

import (
	"context"
	"time"

	"go.uber.org/zap"

	"kitchen-dashboard/internal/kitchen/dashboard"
	"kitchen-dashboard/internal/kitchen/view"
)

// Forward renders every state from updates and publishes it to the hub. It
// returns when updates is closed or ctx is done.
func Forward(ctx context.Context, hub *Hub, updates <-chan dashboard.State, opts view.Options, logger *zap.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-updates:
			if !ok {
				return
			}
			event := Event{Event: EventDashboardUpdate, Data: view.Build(st, time.Now(), opts)}
			if err := hub.Publish(event); err != nil {
				logger.Error("failed to publish dashboard update", zap.Error(err))
			}
		}
	}
}
