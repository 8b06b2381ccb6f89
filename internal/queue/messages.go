package queue

// AccessRequestCreatedMessage 围栏外打卡申请事件，消费侧短信通知工头
type AccessRequestCreatedMessage struct {
	MessageID  string  `json:"message_id"`
	RequestID  int64   `json:"request_id"`
	WorkerID   int64   `json:"worker_id"`
	SiteID     int64   `json:"site_id"`
	DistanceM  float64 `json:"distance_m"`
	OccurredAt string  `json:"occurred_at"`
}

// ClosingMismatchMessage 日结对不上账的告警事件
type ClosingMismatchMessage struct {
	MessageID     string `json:"message_id"`
	ClosingID     int64  `json:"closing_id"`
	SiteID        int64  `json:"site_id"`
	ClosingDate   string `json:"closing_date"`
	ExpectedCount int    `json:"expected_count"`
	ScannedCount  int    `json:"scanned_count"`
	Difference    int    `json:"difference"`
	OccurredAt    string `json:"occurred_at"`
}

// ClosingReminderMessage 当日未做日结的站点提醒，调度器发出
type ClosingReminderMessage struct {
	MessageID   string `json:"message_id"`
	SiteID      int64  `json:"site_id"`
	SiteName    string `json:"site_name"`
	ClosingDate string `json:"closing_date"`
	OccurredAt  string `json:"occurred_at"`
}
