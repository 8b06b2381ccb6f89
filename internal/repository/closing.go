package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/model"
	pkgerrors "github.com/veertradingvadi-ship-it/laboros-sub001/pkg/errors"
)

// ClosingRepo 日结记录存取，追加式
type ClosingRepo struct {
	db *gorm.DB
}

func NewClosingRepo(db *gorm.DB) *ClosingRepo {
	return &ClosingRepo{db: db}
}

func (r *ClosingRepo) Create(ctx context.Context, closing *model.DailyClosing) error {
	return r.db.WithContext(ctx).Create(closing).Error
}

func (r *ClosingRepo) GetByID(ctx context.Context, closingID int64) (*model.DailyClosing, error) {
	var closing model.DailyClosing
	err := r.db.WithContext(ctx).Where("id = ?", closingID).First(&closing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ClosingNotFound
		}
		return nil, err
	}
	return &closing, nil
}

// UpdateNote 差异说明补录，唯一允许的事后改写
func (r *ClosingRepo) UpdateNote(ctx context.Context, closingID int64, note string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.DailyClosing{}).
		Where("id = ?", closingID).
		Update("note", note)
	return res.RowsAffected, res.Error
}

// ExistsForDate 站点当日是否已有日结，调度器发提醒前查
func (r *ClosingRepo) ExistsForDate(ctx context.Context, siteID int64, closingDate time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.DailyClosing{}).
		Where("site_id = ? AND closing_date = ?", siteID, closingDate).
		Count(&count).Error
	return count > 0, err
}

func (r *ClosingRepo) List(ctx context.Context, siteID int64, fromDate, toDate time.Time, cursorID int64, limit int) ([]*model.DailyClosing, error) {
	q := r.db.WithContext(ctx)
	if siteID > 0 {
		q = q.Where("site_id = ?", siteID)
	}
	q = q.Where("closing_date >= ? AND closing_date <= ?", fromDate, toDate)
	if cursorID > 0 {
		q = q.Where("id < ?", cursorID)
	}

	var closings []*model.DailyClosing
	err := q.Order("id DESC").Limit(limit).Find(&closings).Error
	return closings, err
}

// DeleteByIDs 管理端批量删除，硬删
func (r *ClosingRepo) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	res := r.db.WithContext(ctx).Unscoped().
		Where("id IN ?", ids).
		Delete(&model.DailyClosing{})
	return res.RowsAffected, res.Error
}

// DeleteOlderThan 按账龄删除
func (r *ClosingRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Unscoped().
		Where("closing_date < ?", cutoff).
		Delete(&model.DailyClosing{})
	return res.RowsAffected, res.Error
}
