package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// round2 四舍五入保留两位小数，仅在输出边界调用，中间计算保持全精度
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// startOfMonth 当月第一天 00:00:00（UTC）
func startOfMonth(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}
