package models

import (
	"time"
)

// Expense 消费记录模型
// category 和 notes 入库前去除首尾空白；金额允许为负（退款等场景），不做业务范围校验
type Expense struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Date      Date      `json:"date" gorm:"type:char(10);not null;index"`
	Category  string    `json:"category" gorm:"size:50;not null;index"`
	Amount    float64   `json:"amount" gorm:"type:decimal(10,2);not null"`
	Notes     string    `json:"notes" gorm:"size:255"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Expense) TableName() string {
	return "expenses"
}
