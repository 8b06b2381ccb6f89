package utils

import (
	"regexp"
)

// 印度手机号：10 位，6-9 开头
var phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// ValidateCoordinates 坐标范围校验，围栏计算前的调用方契约
func ValidateCoordinates(lat, lon float64) bool {
	if lat < -90 || lat > 90 {
		return false
	}
	if lon < -180 || lon > 180 {
		return false
	}
	return true
}
