package analytics

import (
	"sort"
	"time"

	"gorm.io/gorm"
)

// CategoryBreakdownEntry 单个类别的消费占比
type CategoryBreakdownEntry struct {
	Category   string  `json:"category"`
	Total      float64 `json:"total"`
	Percentage float64 `json:"percentage"`
}

// GetCategoryBreakdown 按类别统计消费占比
// start/end 为可选的时间范围，nil 表示不限制
func GetCategoryBreakdown(db *gorm.DB, userID uint, start, end *time.Time) []CategoryBreakdownEntry {
	rows := expensesByCategory(db, userID, start, end)
	return buildBreakdown(rows)
}

// buildBreakdown 计算占比并按金额降序排列，纯函数
func buildBreakdown(rows []categoryTotal) []CategoryBreakdownEntry {
	var totalExpenses float64
	for _, row := range rows {
		totalExpenses += row.Total
	}

	breakdown := make([]CategoryBreakdownEntry, 0, len(rows))
	for _, row := range rows {
		percentage := 0.0
		if totalExpenses > 0 {
			percentage = row.Total / totalExpenses * 100
		}
		breakdown = append(breakdown, CategoryBreakdownEntry{
			Category:   row.Category,
			Total:      round2(row.Total),
			Percentage: round2(percentage),
		})
	}

	// 稳定排序，金额相同时保持分组出现顺序
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Total > breakdown[j].Total
	})

	return breakdown
}
