package dto

// CreateWorkerRequest 建档请求
type CreateWorkerRequest struct {
	DisplayName    string `json:"display_name"`
	Phone          string `json:"phone,omitempty"`
	DailyRatePaise int64  `json:"daily_rate_paise"`
	AssignedSiteID *int64 `json:"assigned_site_id,omitempty"`
	Shift          *string `json:"shift,omitempty"`
}

// UpdateWorkerRequest 工人编辑请求
type UpdateWorkerRequest struct {
	DisplayName    *string `json:"display_name,omitempty"`
	DailyRatePaise *int64  `json:"daily_rate_paise,omitempty"`
	AssignedSiteID *int64  `json:"assigned_site_id,omitempty"`
	Shift          *string `json:"shift,omitempty"`
	Active         *bool   `json:"active,omitempty"`
}

// EnrollDescriptorRequest 特征录入请求
type EnrollDescriptorRequest struct {
	Descriptor []float64 `json:"descriptor"`
}

// WorkerItem 工人视图
type WorkerItem struct {
	ID             string  `json:"id"`
	DisplayName    string  `json:"display_name"`
	DailyRatePaise int64   `json:"daily_rate_paise"`
	AssignedSiteID *int64  `json:"assigned_site_id,omitempty"`
	Shift          *string `json:"shift,omitempty"`
	Enrolled       bool    `json:"enrolled"`
	Active         bool    `json:"active"`
}
