package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/model"
	pkgerrors "github.com/veertradingvadi-ship-it/laboros-sub001/pkg/errors"
)

// WorkerRepo 工人档案存取
type WorkerRepo struct {
	db *gorm.DB
}

func NewWorkerRepo(db *gorm.DB) *WorkerRepo {
	return &WorkerRepo{db: db}
}

func (r *WorkerRepo) Create(ctx context.Context, worker *model.Worker) error {
	return r.db.WithContext(ctx).Create(worker).Error
}

// GetByPublicID API 中 worker_id 一律是 public_id
func (r *WorkerRepo) GetByPublicID(ctx context.Context, publicID int64) (*model.Worker, error) {
	var worker model.Worker
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&worker).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.WorkerNotFound
		}
		return nil, err
	}
	return &worker, nil
}

func (r *WorkerRepo) Updates(ctx context.Context, workerID int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Worker{}).
		Where("id = ?", workerID).
		Updates(fields).Error
}

// SetDescriptor 录入特征向量
func (r *WorkerRepo) SetDescriptor(ctx context.Context, workerID int64, descriptor model.Descriptor) error {
	return r.db.WithContext(ctx).Model(&model.Worker{}).
		Where("id = ?", workerID).
		Update("enrolled_descriptor", descriptor).Error
}

// ClearDescriptor 强制重录：录入态 -> 未录入态，单向降级
func (r *WorkerRepo) ClearDescriptor(ctx context.Context, workerID int64) error {
	return r.db.WithContext(ctx).Model(&model.Worker{}).
		Where("id = ?", workerID).
		Update("enrolled_descriptor", nil).Error
}

// CountActiveBySite 站点在册工人数，日结 expected 的 assigned 口径
func (r *WorkerRepo) CountActiveBySite(ctx context.Context, siteID int64) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Worker{}).
		Where("assigned_site_id = ? AND active = ?", siteID, true).
		Count(&count).Error
	return int(count), err
}

func (r *WorkerRepo) List(ctx context.Context, cursorID int64, limit int) ([]*model.Worker, error) {
	q := r.db.WithContext(ctx)
	if cursorID > 0 {
		q = q.Where("id < ?", cursorID)
	}

	var workers []*model.Worker
	err := q.Order("id DESC").Limit(limit).Find(&workers).Error
	return workers, err
}
