package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/model"
	pkgerrors "github.com/veertradingvadi-ship-it/laboros-sub001/pkg/errors"
)

// AccessRequestRepo 补卡申请存取
type AccessRequestRepo struct {
	db *gorm.DB
}

func NewAccessRequestRepo(db *gorm.DB) *AccessRequestRepo {
	return &AccessRequestRepo{db: db}
}

func (r *AccessRequestRepo) Create(ctx context.Context, req *model.AccessRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *AccessRequestRepo) GetByID(ctx context.Context, requestID int64) (*model.AccessRequest, error) {
	var req model.AccessRequest
	err := r.db.WithContext(ctx).Where("id = ?", requestID).First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.AccessRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

// Resolve 终态裁决：条件更新限定 status = pending，
// 并发审批时恰好一方生效，另一方 RowsAffected = 0
func (r *AccessRequestRepo) Resolve(ctx context.Context, requestID int64, status model.AccessRequestStatus, adminID int64, resolvedAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.AccessRequest{}).
		Where("id = ? AND status = ?", requestID, model.AccessRequestStatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"resolved_by": adminID,
			"resolved_at": resolvedAt,
		})
	return res.RowsAffected, res.Error
}

func (r *AccessRequestRepo) List(ctx context.Context, siteID int64, status string, cursorID int64, limit int) ([]*model.AccessRequest, error) {
	q := r.db.WithContext(ctx)
	if siteID > 0 {
		q = q.Where("site_id = ?", siteID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if cursorID > 0 {
		q = q.Where("id < ?", cursorID)
	}

	var reqs []*model.AccessRequest
	err := q.Order("id DESC").Limit(limit).Find(&reqs).Error
	return reqs, err
}
