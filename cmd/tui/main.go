package main

import (
	"context"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"kitchen-dashboard/internal/commons"
	"kitchen-dashboard/internal/infrastructure/logger"
	"kitchen-dashboard/internal/kitchen"
	"kitchen-dashboard/internal/tui"
)

func main() {
	cfg, err := commons.LoadConfig(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.NewFile("kitchen-tui", cfg.Log.Level, cfg.Log.File)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	module := kitchen.NewModule(cfg, zapLogger)

	updates, unsubscribe := module.Dashboard.Subscribe()
	defer unsubscribe()

	handle, err := module.Dashboard.Start(context.Background())
	if err != nil {
		zapLogger.Fatal("starting dashboard refresh", zap.Error(err))
	}
	defer handle.Stop()

	program := tea.NewProgram(tui.New(module.Dashboard, updates, module.Options), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		zapLogger.Error("terminal board failed", zap.Error(err))
		handle.Stop()
		os.Exit(1)
	}

	zapLogger.Info("terminal board closed")
}
