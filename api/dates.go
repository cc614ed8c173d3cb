package api

import (
	"errors"
	"strings"
	"time"
)

// ISO-8601 日期解析支持的格式，按顺序尝试
var isoDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseISODate 解析 ISO-8601 日期字符串（UTC）
// 写接口使用：格式非法时返回错误，由调用方拒绝请求
func parseISODate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("日期为空")
	}
	for _, layout := range isoDateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New("日期格式错误，应为 ISO-8601")
}

// parseDateQuery 解析查询参数中的日期边界
// 读接口使用：格式非法时按无约束处理，返回 nil
func parseDateQuery(value string) *time.Time {
	t, err := parseISODate(value)
	if err != nil {
		return nil
	}
	return &t
}
