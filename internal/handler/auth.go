package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/model/dto"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/service"
	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/response"
)

// Login 管理端登录
// POST /v1/auth/login
func Login(ctx context.Context, c *app.RequestContext) {
	var req dto.LoginRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	admin, pair, err := service.Auth().Login(ctx, req.Phone, req.Password)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{
		"admin": map[string]interface{}{
			"display_name": admin.DisplayName,
			"role":         string(admin.Role),
		},
		"tokens": dto.TokenPairResponse{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
			ExpiresIn:    pair.ExpiresIn,
		},
	})
}

// RefreshToken 刷新令牌
// POST /v1/auth/refresh
func RefreshToken(ctx context.Context, c *app.RequestContext) {
	var req dto.RefreshTokenRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	pair, err := service.Auth().Refresh(ctx, req.RefreshToken)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, dto.TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	})
}
