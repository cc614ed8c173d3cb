package models

import (
	"time"
)

// 储蓄操作方向，金额本身始终为正数
const (
	SavingsActionDeposit  = "deposit"
	SavingsActionWithdraw = "withdraw"
)

// SavingsTransaction 储蓄存取记录模型，创建后不可修改
type SavingsTransaction struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	Amount      float64   `json:"amount" gorm:"type:decimal(10,2);not null"`
	Action      string    `json:"action" gorm:"size:20;not null"` // deposit / withdraw
	Description string    `json:"description" gorm:"size:255"`
	Date        time.Time `json:"date" gorm:"index;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName 设置表名
func (SavingsTransaction) TableName() string {
	return "savings_transactions"
}

// IsValidSavingsAction 判断储蓄操作是否合法
func IsValidSavingsAction(action string) bool {
	return action == SavingsActionDeposit || action == SavingsActionWithdraw
}
