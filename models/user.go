package models

import (
	"time"
)

// User 用户模型
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:120;not null"`
	Password  string    `json:"-" gorm:"size:255;not null"` // bcrypt 哈希
	Name      string    `json:"name" gorm:"size:100;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联记录，删除用户时级联删除
	Expenses            []Expense            `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Incomes             []Income             `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	SavingsTransactions []SavingsTransaction `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName 设置表名
func (User) TableName() string {
	return "users"
}
