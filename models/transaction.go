package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction 收支记录模型
// Amount 为有符号金额，正数收入、负数支出均可；Description 同时作为统计分组键
type Transaction struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Amount      float64   `json:"amount" gorm:"type:decimal(12,2);not null"`
	Date        Date      `json:"date" gorm:"type:date;not null;index"`
	Description string    `json:"description" gorm:"size:255;not null"`
	Category    *string   `json:"category,omitempty" gorm:"size:50"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName 设置表名
func (Transaction) TableName() string {
	return "transactions"
}

// BeforeCreate 创建前分配 ID，已有 ID 的记录保持不变
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// CategoryName 返回类别，未设置时为空串
func (t Transaction) CategoryName() string {
	if t.Category == nil {
		return ""
	}
	return *t.Category
}
