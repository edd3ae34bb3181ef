package util

import (
	"strconv"
	"strings"
	"time"
)

// ParseDuration parses duration string, supports 'd' (day) suffix
// ParseDuration 解析时间字符串，支持 'd' (天) 后缀
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "d") {
		daysStr := strings.TrimSuffix(s, "d")
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			return 0, err
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	// 纯数字默认按秒
	if _, err := strconv.Atoi(s); err == nil {
		s += "s"
	}
	return time.ParseDuration(s)
}
