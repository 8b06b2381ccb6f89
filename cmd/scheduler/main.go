package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/veertradingvadi-ship-it/laboros-sub001/config"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/schedule"
	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/logger"
	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/snowflake"
	"github.com/veertradingvadi-ship-it/laboros-sub001/storage"
)

func main() {

	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Logger.Info("Scheduler received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage for scheduler", zap.Error(err))
	}
	defer storage.Close()

	// 考虑与 worker 和 server 作区分
	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake for scheduler", zap.Error(err))
	}

	logger.Logger.Info("Scheduler service starting",
		zap.String("service", "laboros-scheduler"),
		zap.String("environment", config.Cfg.Environment),
	)

	schedule.GetScheduler().Run(ctx)

	logger.Logger.Info("Scheduler service shutting down gracefully")
}
