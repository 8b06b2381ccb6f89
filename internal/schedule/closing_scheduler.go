package schedule

// 日结调度器：每天在配置时刻扫描还没做日结的活跃站点，发提醒消息

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/veertradingvadi-ship-it/laboros-sub001/config"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/cache"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/queue"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/service"
	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/logger"
	"github.com/veertradingvadi-ship-it/laboros-sub001/utils"
)

var (
	schedulerOnce sync.Once
	schedulerInst *ClosingScheduler
)

type ClosingScheduler struct {
	logger *zap.Logger
	loc    *time.Location

	jobMu      sync.Mutex
	jobRunning bool
}

func GetScheduler() *ClosingScheduler {
	schedulerOnce.Do(func() {
		loc, err := time.LoadLocation(config.Cfg.Timezone)
		if err != nil {
			panic("failed to load timezone " + config.Cfg.Timezone + ": " + err.Error())
		}
		schedulerInst = &ClosingScheduler{
			logger: logger.Logger,
			loc:    loc,
		}
	})
	return schedulerInst
}

// Run 阻塞运行，每天到点触发一次提醒扫描
func (s *ClosingScheduler) Run(ctx context.Context) {
	for {
		next := s.nextRunTime(time.Now().In(s.loc))
		s.logger.Info("Closing reminder scheduled",
			zap.Time("next_run", next),
		)

		select {
		case <-ctx.Done():
			s.logger.Info("Closing scheduler stopped")
			return
		case <-time.After(time.Until(next)):
		}

		if err := s.RemindPendingClosings(ctx); err != nil {
			s.logger.Error("Closing reminder sweep failed", zap.Error(err))
		}
	}
}

// RemindPendingClosings 扫描当天没有日结的活跃站点，逐个发提醒
func (s *ClosingScheduler) RemindPendingClosings(ctx context.Context) error {
	s.jobMu.Lock()
	if s.jobRunning {
		s.jobMu.Unlock()
		s.logger.Info("Reminder job already running, skipping")
		return nil
	}
	s.jobRunning = true
	s.jobMu.Unlock()

	defer func() {
		s.jobMu.Lock()
		s.jobRunning = false
		s.jobMu.Unlock()
	}()

	now := time.Now().In(s.loc)
	today := utils.DateOf(now, s.loc)
	dateKey := utils.FormatDate(today)

	// 多实例部署时只让一个实例扫
	locked, err := cache.TryLock(ctx, "closing_reminder:"+dateKey, time.Hour)
	if err != nil {
		s.logger.Warn("Failed to acquire reminder lock, proceeding anyway", zap.Error(err))
	} else if !locked {
		s.logger.Info("Another instance is sweeping reminders, skipping",
			zap.String("date", dateKey),
		)
		return nil
	}

	pending, err := service.Closing().PendingReminderSites(ctx, today)
	if err != nil {
		return err
	}

	if len(pending) == 0 {
		s.logger.Info("All active sites already closed for today",
			zap.String("date", dateKey),
		)
		return nil
	}

	sent := 0
	for _, site := range pending {
		if err := queue.Events().ClosingReminder(ctx, site, today); err != nil {
			s.logger.Error("Failed to publish closing reminder",
				zap.Int64("site_id", site.ID),
				zap.Error(err),
			)
			continue
		}
		sent++
	}

	s.logger.Info("Closing reminder sweep finished",
		zap.String("date", dateKey),
		zap.Int("pending_sites", len(pending)),
		zap.Int("reminders_sent", sent),
	)

	return nil
}

// nextRunTime 当天配置时刻未到就今天跑，过了就明天
func (s *ClosingScheduler) nextRunTime(now time.Time) time.Time {
	run := time.Date(now.Year(), now.Month(), now.Day(),
		config.Cfg.ClosingReminderHour, config.Cfg.ClosingReminderMinute, 0, 0, s.loc)
	if !run.After(now) {
		run = run.AddDate(0, 0, 1)
	}
	return run
}
