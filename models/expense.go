package models

import (
	"time"
)

// Expense 消费记录模型
// Date 为记账日期（统计口径），CreatedAt 仅作审计用途
type Expense struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	Amount      float64   `json:"amount" gorm:"type:decimal(10,2);not null"`
	Category    string    `json:"category" gorm:"size:50;not null"`
	Description string    `json:"description" gorm:"size:255"`
	Date        time.Time `json:"date" gorm:"index;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName 设置表名
func (Expense) TableName() string {
	return "expenses"
}

// Category 消费类别常量（固定枚举，不支持自定义）
const (
	CategoryFood   = "Food"
	CategoryRent   = "Rent"
	CategoryTravel = "Travel"
	CategoryMisc   = "Misc."
	CategoryOthers = "Others"
)

// GetCategories 获取所有消费类别
func GetCategories() []string {
	return []string{
		CategoryFood,
		CategoryRent,
		CategoryTravel,
		CategoryMisc,
		CategoryOthers,
	}
}

// IsValidCategory 判断类别是否合法
func IsValidCategory(category string) bool {
	for _, c := range GetCategories() {
		if c == category {
			return true
		}
	}
	return false
}
