package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/model"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/repository"
	pkgerrors "github.com/veertradingvadi-ship-it/laboros-sub001/pkg/errors"
	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/logger"
	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/token"
	"github.com/veertradingvadi-ship-it/laboros-sub001/storage/database"
	"github.com/veertradingvadi-ship-it/laboros-sub001/utils"
)

// AuthService 管理端登录与令牌续期
type AuthService struct {
	admins AdminStore
}

var (
	authService *AuthService
	authOnce    sync.Once
)

func Auth() *AuthService {
	authOnce.Do(func() {
		authService = NewAuthService(repository.NewAdminRepo(database.DB()))
	})

	return authService
}

func NewAuthService(admins AdminStore) *AuthService {
	return &AuthService{admins: admins}
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
}

// Login 手机号加密码登录。手机号不落明文，按哈希查账号。
func (s *AuthService) Login(ctx context.Context, phone, password string) (*model.Admin, *TokenPair, error) {
	if !utils.ValidatePhone(phone) {
		return nil, nil, pkgerrors.LoginFailed
	}

	admin, err := s.admins.GetByPhoneHash(ctx, utils.HashPhone(phone))
	if err != nil {
		return nil, nil, err
	}
	if !admin.Active {
		return nil, nil, pkgerrors.LoginFailed
	}

	if admin.PasswordHash != utils.HashPassword(password) {
		logger.Logger.Warn("Login attempt with wrong password",
			zap.Int64("admin_id", admin.PublicID),
		)
		return nil, nil, pkgerrors.LoginFailed
	}

	pair, err := s.issueTokens(admin.PublicID)
	if err != nil {
		return nil, nil, err
	}

	logger.Logger.Info("Admin logged in",
		zap.Int64("admin_id", admin.PublicID),
		zap.String("role", string(admin.Role)),
	)

	return admin, pair, nil
}

// Refresh 用 refresh token 换新令牌对
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := token.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, pkgerrors.InvalidRefreshToken
	}

	adminID, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return nil, pkgerrors.InvalidRefreshToken
	}

	admin, err := s.admins.GetByPublicID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if !admin.Active {
		return nil, pkgerrors.Unauthorized
	}

	return s.issueTokens(admin.PublicID)
}

func (s *AuthService) issueTokens(adminPublicID int64) (*TokenPair, error) {
	access, refresh, expiresIn, err := token.GenerateTokenPair(strconv.FormatInt(adminPublicID, 10))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token pair: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    expiresIn,
	}, nil
}
