package dto

// LoginRequest 管理端登录
type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// RefreshTokenRequest 刷新 token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenPairResponse 登录与刷新共用的响应
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}
