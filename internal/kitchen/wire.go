package kitchen

import (
	"net/http"

	"go.uber.org/zap"

	"kitchen-dashboard/internal/config"
	"kitchen-dashboard/internal/kitchen/controller"
	"kitchen-dashboard/internal/kitchen/dashboard"
	"kitchen-dashboard/internal/kitchen/gateway"
	"kitchen-dashboard/internal/kitchen/view"
	"kitchen-dashboard/internal/kitchen/ws"
)

type Module struct {
	Dashboard  *dashboard.Controller
	Controller *controller.KitchenController
	Hub        *ws.Hub
	Options    view.Options
}

func NewModule(cfg *config.Config, logger *zap.Logger) *Module {
	client := &http.Client{Timeout: cfg.Backend.ClientTimeout}
	gw := gateway.NewHTTPGateway(cfg.Backend.BaseURL, client, logger)

	dash := dashboard.NewController(gw, cfg.Dashboard.RefreshInterval, logger)

	opts := view.Options{
		MaxItemsShown:    cfg.Dashboard.ItemsShown,
		ShowStaleOnError: cfg.Dashboard.ShowStaleOnError,
	}

	return &Module{
		Dashboard:  dash,
		Controller: controller.NewKitchenController(dash, opts, logger),
		Hub:        ws.NewHub(logger),
		Options:    opts,
	}
}
