package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/veertradingvadi-ship-it/laboros-sub001/config"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/queue"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/service"
	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/logger"
	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/sms"
	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/snowflake"
	"github.com/veertradingvadi-ship-it/laboros-sub001/storage"
)

func main() {

	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Logger.Info("Received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close()

	// worker 和 server 共用机器号配置，部署时通过环境变量区分
	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake", zap.Error(err))
	}

	if err := sms.Init(); err != nil {
		logger.Logger.Warn("Failed to initialize SMS service", zap.Error(err))
		logger.Logger.Info("SMS service will be disabled, SMS features may not work")
	}

	// 设置通知服务, 因为所有消费者都需要这一环节
	queue.SetNotificationService(service.Notifications())

	logger.Logger.Info("Worker service starting",
		zap.String("service", "laboros-worker"),
		zap.String("environment", config.Cfg.Environment),
	)

	//启动所有的消费者部分
	queue.StartAllConsumers(ctx)

	<-ctx.Done()

	logger.Logger.Info("Worker service shutting down gracefully")
}
