package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/model"
	pkgerrors "github.com/veertradingvadi-ship-it/laboros-sub001/pkg/errors"
)

// SiteRepo 站点存取
type SiteRepo struct {
	db *gorm.DB
}

func NewSiteRepo(db *gorm.DB) *SiteRepo {
	return &SiteRepo{db: db}
}

func (r *SiteRepo) Create(ctx context.Context, site *model.Site) error {
	return r.db.WithContext(ctx).Create(site).Error
}

func (r *SiteRepo) GetByID(ctx context.Context, siteID int64) (*model.Site, error) {
	var site model.Site
	err := r.db.WithContext(ctx).Where("id = ?", siteID).First(&site).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.SiteNotFound
		}
		return nil, err
	}
	return &site, nil
}

func (r *SiteRepo) Updates(ctx context.Context, siteID int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Site{}).
		Where("id = ?", siteID).
		Updates(fields).Error
}

// ListActive 在营站点，调度器扫日结提醒用
func (r *SiteRepo) ListActive(ctx context.Context) ([]*model.Site, error) {
	var sites []*model.Site
	err := r.db.WithContext(ctx).Where("active = ?", true).Find(&sites).Error
	return sites, err
}

func (r *SiteRepo) List(ctx context.Context, cursorID int64, limit int) ([]*model.Site, error) {
	q := r.db.WithContext(ctx)
	if cursorID > 0 {
		q = q.Where("id < ?", cursorID)
	}

	var sites []*model.Site
	err := q.Order("id DESC").Limit(limit).Find(&sites).Error
	return sites, err
}
