package dto

// CreateSiteRequest 建站请求
type CreateSiteRequest struct {
	Name            string   `json:"name"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	RadiusM         *float64 `json:"radius_m,omitempty"` // 缺省用配置默认半径
	SupervisorPhone string   `json:"supervisor_phone,omitempty"`
}

// UpdateSiteRequest 站点编辑请求，零值字段不更新
type UpdateSiteRequest struct {
	Name            *string  `json:"name,omitempty"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	RadiusM         *float64 `json:"radius_m,omitempty"`
	SupervisorPhone *string  `json:"supervisor_phone,omitempty"`
	Active          *bool    `json:"active,omitempty"`
}

// SiteItem 站点视图
type SiteItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	RadiusM   float64 `json:"radius_m"`
	Active    bool    `json:"active"`
}
