package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/model"
	pkgerrors "github.com/veertradingvadi-ship-it/laboros-sub001/pkg/errors"
)

// AttendanceRepo 考勤记录存取
type AttendanceRepo struct {
	db *gorm.DB
}

func NewAttendanceRepo(db *gorm.DB) *AttendanceRepo {
	return &AttendanceRepo{db: db}
}

// Create 落一条签到记录
// (worker_id, work_date) 唯一索引兜底并发：冲突翻译为 DUPLICATE_CHECK_IN
func (r *AttendanceRepo) Create(ctx context.Context, log *model.AttendanceLog) error {
	err := r.db.WithContext(ctx).Create(log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return pkgerrors.DuplicateCheckIn
		}
		return err
	}
	return nil
}

// GetOpenByWorkerAndDate 查当日开放记录（已签到未签退），没有则返回 nil
func (r *AttendanceRepo) GetOpenByWorkerAndDate(ctx context.Context, workerID int64, workDate time.Time) (*model.AttendanceLog, error) {
	var log model.AttendanceLog
	err := r.db.WithContext(ctx).
		Where("worker_id = ? AND work_date = ? AND status = ?",
			workerID, workDate, model.AttendanceStatusCheckedIn).
		First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}

// CloseSession 签退：置签退时间、工时与终态
// 条件更新限定 status = checked_in，已签退的记录不会被改写
func (r *AttendanceRepo) CloseSession(ctx context.Context, logID int64, checkOutAt time.Time, hoursWorked float64) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.AttendanceLog{}).
		Where("id = ? AND status = ?", logID, model.AttendanceStatusCheckedIn).
		Updates(map[string]interface{}{
			"check_out_at": checkOutAt,
			"hours_worked": hoursWorked,
			"status":       model.AttendanceStatusCheckedOut,
		})
	return res.RowsAffected, res.Error
}

// CountDistinctWorkers 站点当日扫到的工人数，日结的 scanned 口径
func (r *AttendanceRepo) CountDistinctWorkers(ctx context.Context, siteID int64, workDate time.Time) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.AttendanceLog{}).
		Where("site_id = ? AND work_date = ?", siteID, workDate).
		Distinct("worker_id").
		Count(&count).Error
	return int(count), err
}

// ListByWorker 按工人和日期范围翻页查询
func (r *AttendanceRepo) ListByWorker(ctx context.Context, workerID int64, fromDate, toDate time.Time, cursorID int64, limit int) ([]*model.AttendanceLog, error) {
	q := r.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Where("work_date >= ? AND work_date <= ?", fromDate, toDate)

	if cursorID > 0 {
		q = q.Where("id < ?", cursorID)
	}

	var logs []*model.AttendanceLog
	err := q.Order("id DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
