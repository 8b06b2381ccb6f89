package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/model"
	pkgerrors "github.com/veertradingvadi-ship-it/laboros-sub001/pkg/errors"
)

// AdminRepo 管理端账号存取
type AdminRepo struct {
	db *gorm.DB
}

func NewAdminRepo(db *gorm.DB) *AdminRepo {
	return &AdminRepo{db: db}
}

func (r *AdminRepo) Create(ctx context.Context, admin *model.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *AdminRepo) GetByPhoneHash(ctx context.Context, phoneHash string) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.WithContext(ctx).Where("phone_hash = ?", phoneHash).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.LoginFailed
		}
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepo) GetByPublicID(ctx context.Context, publicID int64) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Unauthorized
		}
		return nil, err
	}
	return &admin, nil
}
