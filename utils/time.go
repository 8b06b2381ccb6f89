package utils

import (
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate 解析 YYYY-MM-DD 日期串，落在给定时区的零点
func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	parsed, err := time.ParseInLocation(DateLayout, dateStr, loc)
	if err != nil {
		return time.Time{}, err
	}
	return parsed, nil
}

// DateOf 取时间所在自然日的零点，考勤与日结都用它对齐日期
func DateOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// FormatDate 统一日期展示格式
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
